package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("SQLITE_DB_PATH", "")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func fixture(name string) string {
	return filepath.Join("..", "..", "internal", "scenario", "testdata", name)
}

func TestReplayCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantErr  error
		contains []string
	}{
		{
			name:     "passing scenarios",
			args:     []string{"replay", "--assert", fixture("hint.yaml"), fixture("swipe_below_threshold.yaml")},
			contains: []string{"PASS\thint previews and springs back", "PASS\tswipe below threshold springs back"},
		},
		{
			name:     "strict failure",
			args:     []string{"replay", "--assert", fixture("wrong_expectation.yaml")},
			wantErr:  errScenariosFailed,
			contains: []string{"FAIL\twrong expectation", "gesture = tap, want swipe"},
		},
		{
			name:     "log-only failure",
			args:     []string{"replay", fixture("wrong_expectation.yaml")},
			contains: []string{"FAIL\twrong expectation"},
		},
		{
			name:     "selection summary",
			args:     []string{"replay", "--concurrency", "2", fixture("long_press_select.yaml")},
			contains: []string{"selected 1: € 9,00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("replay error = %v\n%s", err, out)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("replay error = %v, want %v", err, tt.wantErr)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestReplayCommand_PublishNeedsURL(t *testing.T) {
	t.Setenv("AMQP_URL", "")
	if _, err := execute(t, "replay", "--publish", fixture("hint.yaml")); err == nil {
		t.Error("replay --publish without AMQP_URL succeeded")
	}
}

func TestConfigCommand(t *testing.T) {
	t.Setenv("SWIPE_DISTANCE_THRESHOLD", "64")
	out, err := execute(t, "config")
	if err != nil {
		t.Fatalf("config error = %v", err)
	}
	for _, want := range []string{"platform: touch", "distance_threshold: 64", "long_press_delay_ms: 500", "1.234,50"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigCommand_InvalidEnvironment(t *testing.T) {
	t.Setenv("POINTER_PLATFORM", "watch")
	if _, err := execute(t, "config"); err == nil {
		t.Error("config accepted an invalid platform")
	}
}

func TestCategoriesCommand(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	dir := t.TempDir()
	seed := filepath.Join("..", "..", "data", "seed_categories.txt")

	run := func(args ...string) string {
		t.Helper()
		t.Setenv("SQLITE_DB_PATH", filepath.Join(dir, "catalog.db"))
		var out bytes.Buffer
		root := newRootCmd()
		root.SetOut(&out)
		root.SetArgs(args)
		if err := root.Execute(); err != nil {
			t.Fatalf("%v error = %v", args, err)
		}
		return out.String()
	}

	if out := run("categories", "list"); !strings.Contains(out, "no categories") {
		t.Errorf("empty list output = %q", out)
	}
	if out := run("categories", "seed", seed); !strings.Contains(out, "seeded") {
		t.Errorf("seed output = %q", out)
	}
	if out := run("categories", "list"); !strings.Contains(out, "Food\t") {
		t.Errorf("list output missing Food:\n%s", out)
	}
}

func TestCategoriesCommand_NeedsDatabase(t *testing.T) {
	if _, err := execute(t, "categories", "list"); err == nil {
		t.Error("categories list without SQLITE_DB_PATH succeeded")
	}
}
