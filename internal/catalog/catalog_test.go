package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"finboard/internal/clock"
	"finboard/internal/storage"
)

func TestParseSeed(t *testing.T) {
	in := `# name|icon|color
Food|utensils|#ff8800

Transport|bus
Home
  |orphan|#000000
`
	styles, err := ParseSeed(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseSeed: %v", err)
	}
	want := []Style{
		{Name: "Food", Icon: "utensils", Color: "#ff8800"},
		{Name: "Transport", Icon: "bus"},
		{Name: "Home"},
	}
	if len(styles) != len(want) {
		t.Fatalf("got %d styles, want %d: %+v", len(styles), len(want), styles)
	}
	for i := range want {
		if styles[i] != want[i] {
			t.Errorf("styles[%d] = %+v, want %+v", i, styles[i], want[i])
		}
	}
}

func TestMemory_FirstEntryWinsAndDefaults(t *testing.T) {
	m := NewMemory([]Style{
		{Name: "Food", Icon: "utensils", Color: "#ff8800"},
		{Name: " Food ", Icon: "cart", Color: "#000000"},
		{Name: "Home"},
		{Name: ""},
	})

	if got := m.Style("Food"); got.Icon != "utensils" {
		t.Errorf("duplicate overrode first entry: %+v", got)
	}
	if got := m.Style("Home"); got.Icon != DefaultIcon || got.Color != DefaultColor {
		t.Errorf("missing icon/color not defaulted: %+v", got)
	}
	if got := m.Style("Unknown"); got != Neutral("Unknown") {
		t.Errorf("unknown = %+v, want neutral", got)
	}
	if n := len(m.Styles()); n != 2 {
		t.Errorf("Styles() has %d entries, want 2", n)
	}
}

func TestNewMemoryFromFile(t *testing.T) {
	dir := t.TempDir()

	m, err := NewMemoryFromFile(filepath.Join(dir, "missing.txt"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if len(m.Styles()) != 0 {
		t.Error("missing file should give an empty catalog")
	}

	path := filepath.Join(dir, "seed.txt")
	if err := os.WriteFile(path, []byte("Food|utensils|#ff8800\nFood|x|y\n"), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	m, err = NewMemoryFromFile(path)
	if err != nil {
		t.Fatalf("NewMemoryFromFile: %v", err)
	}
	if got := m.Style("Food"); got.Color != "#ff8800" {
		t.Errorf("got %+v", got)
	}
}

type fakeSource struct {
	calls int
	cats  map[string]storage.Category
	err   error
}

func (f *fakeSource) GetCategory(_ context.Context, name string) (storage.Category, error) {
	f.calls++
	if f.err != nil {
		return storage.Category{}, f.err
	}
	c, ok := f.cats[name]
	if !ok {
		return storage.Category{}, storage.ErrCategoryNotFound
	}
	return c, nil
}

func TestReadThrough_CachesHits(t *testing.T) {
	src := &fakeSource{cats: map[string]storage.Category{
		"Food": {Name: "Food", Icon: "utensils", Color: "#ff8800"},
	}}
	clk := clock.NewManual(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	rt := NewReadThrough(src, ReadThroughOptions{TTL: time.Minute, Clock: clk})

	for i := 0; i < 3; i++ {
		if got := rt.Style("Food"); got.Icon != "utensils" {
			t.Fatalf("got %+v", got)
		}
	}
	if src.calls != 1 {
		t.Errorf("source called %d times, want 1", src.calls)
	}

	clk.Advance(time.Minute)
	rt.Style("Food")
	if src.calls != 2 {
		t.Errorf("expired entry not reloaded, calls = %d", src.calls)
	}

	rt.Invalidate("Food")
	rt.Style("Food")
	if src.calls != 3 {
		t.Errorf("invalidated entry not reloaded, calls = %d", src.calls)
	}
}

func TestReadThrough_NotFoundUsesFallback(t *testing.T) {
	src := &fakeSource{cats: map[string]storage.Category{}}
	fallback := NewMemory([]Style{{Name: "Gifts", Icon: "gift", Color: "#cc00cc"}})
	rt := NewReadThrough(src, ReadThroughOptions{Fallback: fallback})

	if got := rt.Style("Gifts"); got.Icon != "gift" {
		t.Errorf("got %+v, want fallback style", got)
	}
	if got := rt.Style("Other"); got != Neutral("Other") {
		t.Errorf("got %+v, want neutral", got)
	}
	rt.Style("Gifts")
	if src.calls != 2 {
		t.Errorf("not-found answers should be cached, calls = %d", src.calls)
	}
}

func TestReadThrough_SourceErrorIsNotCached(t *testing.T) {
	src := &fakeSource{err: errors.New("database is locked")}
	rt := NewReadThrough(src, ReadThroughOptions{})

	if got := rt.Style("Food"); got != Neutral("Food") {
		t.Errorf("got %+v, want neutral", got)
	}
	rt.Style("Food")
	if src.calls != 2 {
		t.Errorf("errors should not be cached, calls = %d", src.calls)
	}
}

func TestReadThrough_OverSQLite(t *testing.T) {
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "finboard.db"), nil)
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	defer repo.Close()

	if err := repo.UpsertCategory(context.Background(), storage.Category{Name: "Food", Icon: "utensils", Color: "#ff8800"}); err != nil {
		t.Fatalf("UpsertCategory: %v", err)
	}

	rt := NewReadThrough(repo, ReadThroughOptions{})
	if got := rt.Style("Food"); got.Icon != "utensils" || got.Color != "#ff8800" {
		t.Errorf("got %+v", got)
	}
	if got := rt.Style("Rent"); got != Neutral("Rent") {
		t.Errorf("got %+v, want neutral", got)
	}
}
