package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"finboard/internal/log"

	_ "modernc.org/sqlite"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrEmptyCategoryName = errors.New("empty category name")
)

// Category is the persisted display style of a transaction category.
type Category struct {
	Name      string
	Icon      string
	Color     string
	UpdatedAt time.Time
}

type SQLiteRepository struct {
	db     *sql.DB
	logger *log.Logger
}

// NewSQLiteRepository opens the database at dbPath and applies pending
// migrations. A nil logger discards output.
func NewSQLiteRepository(dbPath string, logger *log.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = log.Discard()
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if _, err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:     db,
		logger: logger.WithComponent(log.ComponentStorage),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const upsertCategorySQL = `
INSERT INTO categories (name, icon, color)
VALUES (?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
    icon = excluded.icon,
    color = excluded.color,
    updated_at = CURRENT_TIMESTAMP`

// UpsertCategory inserts c or replaces the icon and color of an existing
// category with the same name.
func (r *SQLiteRepository) UpsertCategory(ctx context.Context, c Category) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return ErrEmptyCategoryName
	}
	if _, err := r.db.ExecContext(ctx, upsertCategorySQL, name, strings.TrimSpace(c.Icon), strings.TrimSpace(c.Color)); err != nil {
		return fmt.Errorf("upsert category %s: %w", name, err)
	}

	r.logger.DebugContext(ctx, "Category saved",
		log.FieldCategory, name,
		log.FieldOperation, log.OpUpsert)
	return nil
}

// SeedCategories upserts all categories in a single transaction and returns
// how many were written.
func (r *SQLiteRepository) SeedCategories(ctx context.Context, cats []Category) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertCategorySQL)
	if err != nil {
		return 0, fmt.Errorf("prepare seed statement: %w", err)
	}
	defer stmt.Close()

	written := 0
	for _, c := range cats {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return 0, ErrEmptyCategoryName
		}
		if _, err := stmt.ExecContext(ctx, name, strings.TrimSpace(c.Icon), strings.TrimSpace(c.Color)); err != nil {
			return 0, fmt.Errorf("seed category %s: %w", name, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed transaction: %w", err)
	}

	r.logger.InfoContext(ctx, "Categories seeded",
		"count", written,
		log.FieldOperation, log.OpSeed)
	return written, nil
}

// GetCategory returns ErrCategoryNotFound when name is not stored.
func (r *SQLiteRepository) GetCategory(ctx context.Context, name string) (Category, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT name, icon, color, updated_at FROM categories WHERE name = ?`,
		strings.TrimSpace(name))

	var c Category
	if err := row.Scan(&c.Name, &c.Icon, &c.Color, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Category{}, ErrCategoryNotFound
		}
		return Category{}, fmt.Errorf("get category %s: %w", name, err)
	}
	return c, nil
}

// ListCategories returns every stored category ordered by name.
func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, icon, color, updated_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.Name, &c.Icon, &c.Color, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return out, nil
}
