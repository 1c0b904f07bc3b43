package main

import (
	"fmt"

	"finboard/internal/catalog"
	"finboard/internal/config"
	"finboard/internal/format"
	"finboard/internal/log"
	"finboard/internal/storage"
)

// app holds the collaborators shared by the subcommands.
type app struct {
	cfg       *config.Config
	logger    *log.Logger
	catalog   catalog.Lookup
	formatter format.Formatter
	repo      *storage.SQLiteRepository
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadApp builds the catalog and formatter. With a database configured the
// catalog reads through SQLite and falls back to the seed file.
func loadApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger()
	log.SetDefault(logger)

	formatter, err := format.NewCurrency(cfg.Locale, cfg.Currency)
	if err != nil {
		return nil, fmt.Errorf("currency formatter: %w", err)
	}

	seed, err := catalog.NewMemoryFromFile(cfg.CategorySeedFile)
	if err != nil {
		return nil, fmt.Errorf("load category seed: %w", err)
	}

	a := &app{cfg: cfg, logger: logger, catalog: seed, formatter: formatter}
	if cfg.SQLiteDBPath != "" {
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath, logger)
		if err != nil {
			return nil, err
		}
		a.repo = repo
		a.catalog = catalog.NewReadThrough(repo, catalog.ReadThroughOptions{
			TTL:      cfg.CategoryCacheTTL,
			Fallback: seed,
			Logger:   logger,
		})
		logger.Info("Category catalog backed by SQLite", log.FieldPath, cfg.SQLiteDBPath)
	} else {
		logger.Debug("Category catalog loaded from seed file", log.FieldPath, cfg.CategorySeedFile)
	}
	return a, nil
}

func (a *app) Close() {
	if a.repo == nil {
		return
	}
	if err := a.repo.Close(); err != nil {
		a.logger.Error("Failed to close database", log.FieldError, err)
	}
}
