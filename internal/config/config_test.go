package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage != "sqlite" {
		t.Errorf("expected storage 'sqlite', got %q", cfg.Storage)
	}
	if cfg.Theme.Preset != "default-dark" {
		t.Errorf("expected preset 'default-dark', got %q", cfg.Theme.Preset)
	}
	if cfg.Search.PageSize != 20 || cfg.Search.PreviewLength != 250 || cfg.Search.RecentLimit != 10 {
		t.Errorf("unexpected search defaults: %+v", cfg.Search)
	}
	if d, _ := cfg.DebounceDuration(); d != 300*time.Millisecond {
		t.Errorf("debounce = %v, want 300ms", d)
	}
	if d, _ := cfg.TimeoutDuration(); d != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", d)
	}
	if l, _ := cfg.SlogLevel(); l != slog.LevelInfo {
		t.Errorf("log level = %v, want info", l)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	content := `
storage = "markdown"
user_id = "7c1f0e1a-4a1e-4c2b-9d3e-2f6a8b9c0d1e"
log_level = "debug"

[search]
page_size = 5
debounce = "150ms"
timeout = "2s"

[theme]
preset = "default-light"
highlight = "#FFFF00"
markdown_style = "light"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage != "markdown" {
		t.Errorf("expected storage 'markdown', got %q", cfg.Storage)
	}
	if cfg.Search.PageSize != 5 {
		t.Errorf("expected page_size 5, got %d", cfg.Search.PageSize)
	}
	if cfg.Search.PreviewLength != 250 {
		t.Errorf("unset keys keep defaults, got preview_length %d", cfg.Search.PreviewLength)
	}
	if d, _ := cfg.DebounceDuration(); d != 150*time.Millisecond {
		t.Errorf("debounce = %v", d)
	}
	if cfg.Theme.Highlight != "#FFFF00" {
		t.Errorf("expected highlight '#FFFF00', got %q", cfg.Theme.Highlight)
	}
	if l, _ := cfg.SlogLevel(); l != slog.LevelDebug {
		t.Errorf("log level = %v, want debug", l)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MOODLOG_STORAGE", "markdown")
	t.Setenv("MOODLOG_SEARCH_DEBOUNCE", "1s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage != "markdown" {
		t.Errorf("expected env storage override, got %q", cfg.Storage)
	}
	if d, _ := cfg.DebounceDuration(); d != time.Second {
		t.Errorf("expected env debounce override, got %v", d)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	bad := []Config{
		{Storage: "postgres"},
		{Storage: "sqlite", Search: SearchConfig{Debounce: "soon"}},
		{Storage: "sqlite", Search: SearchConfig{Timeout: "-1s"}},
		{Storage: "sqlite", LogLevel: "chatty"},
	}
	for _, c := range bad {
		if err := c.Validate(); err == nil {
			t.Errorf("expected validation error for %+v", c)
		}
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}
