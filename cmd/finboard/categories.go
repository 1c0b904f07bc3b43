package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"finboard/internal/catalog"
	"finboard/internal/log"
	"finboard/internal/storage"
)

func newCategoriesCmd() *cobra.Command {
	categories := &cobra.Command{Use: "categories", Short: "Manage the SQLite category catalog"}

	categories.AddCommand(&cobra.Command{
		Use:   "seed <file>",
		Short: "Load name|icon|color lines into the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, logger, err := openRepository()
			if err != nil {
				return err
			}
			defer repo.Close()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			styles, err := catalog.ParseSeed(f)
			if err != nil {
				return err
			}
			cats := make([]storage.Category, 0, len(styles))
			for _, s := range styles {
				cats = append(cats, storage.Category{Name: s.Name, Icon: s.Icon, Color: s.Color})
			}

			n, err := repo.SeedCategories(cmd.Context(), cats)
			if err != nil {
				return err
			}
			logger.Info("Categories seeded", log.FieldPath, args[0], "count", n)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d categories\n", n)
			return nil
		},
	})

	categories.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List catalog categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, _, err := openRepository()
			if err != nil {
				return err
			}
			defer repo.Close()

			cats, err := repo.ListCategories(cmd.Context())
			if err != nil {
				return err
			}
			if len(cats) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no categories")
				return nil
			}
			for _, c := range cats {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", c.Name, c.Icon, c.Color)
			}
			return nil
		},
	})
	return categories
}

func openRepository() (*storage.SQLiteRepository, *log.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if cfg.SQLiteDBPath == "" {
		return nil, nil, errors.New("SQLITE_DB_PATH is not set")
	}
	logger := cfg.Logger()
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath, logger)
	if err != nil {
		return nil, nil, err
	}
	return repo, logger, nil
}
