package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stitch.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Tables.TitleProximity != 120 || cfg.Tables.MaxSeparation != 3200 {
		t.Errorf("tables defaults = %+v", cfg.Tables)
	}
	if cfg.Columns.NumericThreshold != 0.7 {
		t.Errorf("numeric threshold = %v", cfg.Columns.NumericThreshold)
	}
}

func TestNewManager_File(t *testing.T) {
	path := writeConfig(t, `
tables:
  max_separation: 1000
naming:
  provider: none
export:
  formats: [csv, xlsx]
`)

	mgr, err := NewManager(path)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	cfg := mgr.Get()
	if cfg.Tables.MaxSeparation != 1000 {
		t.Errorf("max_separation = %d, want 1000", cfg.Tables.MaxSeparation)
	}
	if cfg.Tables.TitleProximity != 120 {
		t.Errorf("title_proximity default lost: %d", cfg.Tables.TitleProximity)
	}
	if strings.Join(cfg.Export.Formats, ",") != "csv,xlsx" {
		t.Errorf("formats = %v", cfg.Export.Formats)
	}
	if mgr.File() != path {
		t.Errorf("File() = %q, want %q", mgr.File(), path)
	}
}

func TestNewManager_EnvOverride(t *testing.T) {
	t.Setenv("STITCH_TABLES_TITLE_PROXIMITY", "40")
	t.Setenv("STITCH_WORKERS", "9")

	mgr, err := NewManager(writeConfig(t, "workers: 2\n"))
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	cfg := mgr.Get()
	if cfg.Tables.TitleProximity != 40 {
		t.Errorf("title_proximity = %d, want 40", cfg.Tables.TitleProximity)
	}
	if cfg.Workers != 9 {
		t.Errorf("workers = %d, want 9", cfg.Workers)
	}
}

func TestNewManager_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown provider", "naming:\n  provider: mystery\n"},
		{"unknown format", "export:\n  formats: [pdf]\n"},
		{"threshold out of range", "columns:\n  numeric_threshold: 1.5\n"},
		{"no workers", "workers: 0\n"},
		{"negative separation", "tables:\n  max_separation: -1\n"},
		{"malformed yaml", "tables: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewManager(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestWriteDefault_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stitch.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# Stitch configuration") {
		t.Error("missing header comment")
	}

	mgr, err := NewManager(path)
	if err != nil {
		t.Fatalf("failed to load written defaults: %v", err)
	}
	cfg := mgr.Get()
	want := DefaultConfig()
	if cfg.Tables != want.Tables || cfg.Naming != want.Naming || cfg.Workers != want.Workers {
		t.Errorf("round trip changed config:\n%+v\n%+v", cfg, want)
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Run("resolves environment variable", func(t *testing.T) {
		t.Setenv("STITCH_TEST_KEY", "secret123")
		if got := ResolveEnvVars("${STITCH_TEST_KEY}"); got != "secret123" {
			t.Errorf("expected secret123, got %s", got)
		}
	})

	t.Run("returns empty for missing env var", func(t *testing.T) {
		if got := ResolveEnvVars("${DEFINITELY_NOT_SET_12345}"); got != "" {
			t.Errorf("expected empty string, got %s", got)
		}
	})

	t.Run("expands inside a string", func(t *testing.T) {
		t.Setenv("STITCH_TEST_HOST", "db")
		if got := ResolveEnvVars("postgres://${STITCH_TEST_HOST}:5432/x"); got != "postgres://db:5432/x" {
			t.Errorf("got %s", got)
		}
	})

	t.Run("leaves literal values unchanged", func(t *testing.T) {
		if got := ResolveEnvVars("literal-value"); got != "literal-value" {
			t.Errorf("expected literal-value, got %s", got)
		}
	})
}

func TestManager_WatchConfig(t *testing.T) {
	path := writeConfig(t, "tables:\n  max_separation: 100\n")

	mgr, err := NewManager(path)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	var callbackCount atomic.Int32
	var lastValue atomic.Int64
	mgr.OnChange(func(cfg *Config) {
		callbackCount.Add(1)
		lastValue.Store(int64(cfg.Tables.MaxSeparation))
	})

	mgr.WatchConfig()

	// Give fsnotify time to set up the watcher
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(path, []byte("tables:\n  max_separation: 200\n"), 0o644); err != nil {
		t.Fatalf("failed to write updated config file: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if callbackCount.Load() > 0 {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	if callbackCount.Load() == 0 {
		t.Fatal("callback was not invoked after config file change")
	}
	if got := mgr.Get().Tables.MaxSeparation; got != 200 {
		t.Errorf("config not updated: got %d", got)
	}
	if lastValue.Load() != 200 {
		t.Errorf("callback received %d", lastValue.Load())
	}
}
