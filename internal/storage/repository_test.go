package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "data", "finboard.db"), nil)
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRepository_UpsertAndGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.UpsertCategory(ctx, Category{Name: "Food", Icon: "utensils", Color: "#ff8800"}); err != nil {
		t.Fatalf("UpsertCategory: %v", err)
	}
	got, err := repo.GetCategory(ctx, "Food")
	if err != nil {
		t.Fatalf("GetCategory: %v", err)
	}
	if got.Icon != "utensils" || got.Color != "#ff8800" {
		t.Errorf("got %+v", got)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not populated")
	}

	if err := repo.UpsertCategory(ctx, Category{Name: "Food", Icon: "cart", Color: "#00aa00"}); err != nil {
		t.Fatalf("UpsertCategory (update): %v", err)
	}
	got, _ = repo.GetCategory(ctx, "Food")
	if got.Icon != "cart" || got.Color != "#00aa00" {
		t.Errorf("update not applied: %+v", got)
	}
}

func TestSQLiteRepository_GetMissing(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetCategory(context.Background(), "Nope")
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("err = %v, want ErrCategoryNotFound", err)
	}
}

func TestSQLiteRepository_RejectsEmptyName(t *testing.T) {
	repo := newTestRepository(t)

	if err := repo.UpsertCategory(context.Background(), Category{Name: "  "}); !errors.Is(err, ErrEmptyCategoryName) {
		t.Fatalf("err = %v, want ErrEmptyCategoryName", err)
	}
	if _, err := repo.SeedCategories(context.Background(), []Category{{Name: "A"}, {Name: ""}}); !errors.Is(err, ErrEmptyCategoryName) {
		t.Fatalf("seed err = %v, want ErrEmptyCategoryName", err)
	}
	cats, err := repo.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(cats) != 0 {
		t.Errorf("failed seed should roll back, got %v", cats)
	}
}

func TestSQLiteRepository_SeedAndList(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	n, err := repo.SeedCategories(ctx, []Category{
		{Name: "Transport", Icon: "bus", Color: "#3366ff"},
		{Name: "Food", Icon: "utensils", Color: "#ff8800"},
		{Name: "Home", Icon: "house", Color: "#888888"},
	})
	if err != nil {
		t.Fatalf("SeedCategories: %v", err)
	}
	if n != 3 {
		t.Fatalf("seeded %d, want 3", n)
	}

	cats, err := repo.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	want := []string{"Food", "Home", "Transport"}
	if len(cats) != len(want) {
		t.Fatalf("got %d categories, want %d", len(cats), len(want))
	}
	for i, name := range want {
		if cats[i].Name != name {
			t.Errorf("cats[%d] = %q, want %q", i, cats[i].Name, name)
		}
	}
}

func TestSQLiteRepository_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finboard.db")
	ctx := context.Background()

	repo, err := NewSQLiteRepository(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := repo.UpsertCategory(ctx, Category{Name: "Food"}); err != nil {
		t.Fatalf("UpsertCategory: %v", err)
	}
	repo.Close()

	repo, err = NewSQLiteRepository(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer repo.Close()
	if _, err := repo.GetCategory(ctx, "Food"); err != nil {
		t.Fatalf("GetCategory after reopen: %v", err)
	}
}

func TestRunMigrations_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finboard.db")

	for i := 0; i < 2; i++ {
		version, err := RunMigrations(path)
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if version != 1 {
			t.Fatalf("run %d: version = %d, want 1", i, version)
		}
	}
}
