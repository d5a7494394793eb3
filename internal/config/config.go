package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ThemeConfig holds TUI color configuration. Empty fields fall back to the preset.
type ThemeConfig struct {
	Preset        string `mapstructure:"preset"`
	Primary       string `mapstructure:"primary"`
	Secondary     string `mapstructure:"secondary"`
	Accent        string `mapstructure:"accent"`
	Muted         string `mapstructure:"muted"`
	Danger        string `mapstructure:"danger"`
	Highlight     string `mapstructure:"highlight"`
	Background    string `mapstructure:"background"`
	MarkdownStyle string `mapstructure:"markdown_style"`
}

// SearchConfig holds search tuning. Durations are Go duration strings.
type SearchConfig struct {
	PageSize      int    `mapstructure:"page_size"`
	PreviewLength int    `mapstructure:"preview_length"`
	Debounce      string `mapstructure:"debounce"`
	Timeout       string `mapstructure:"timeout"`
	RecentLimit   int    `mapstructure:"recent_limit"`
}

// Config holds the application configuration.
type Config struct {
	Storage  string       `mapstructure:"storage"`
	DataDir  string       `mapstructure:"data_dir"`
	UserID   string       `mapstructure:"user_id"`
	LogLevel string       `mapstructure:"log_level"`
	MaxWidth int          `mapstructure:"max_width"`
	Search   SearchConfig `mapstructure:"search"`
	Theme    ThemeConfig  `mapstructure:"theme"`
}

// DefaultDataDir returns the default data directory (~/.moodlog/).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".moodlog")
	}
	return filepath.Join(home, ".moodlog")
}

// Load reads configuration from file, environment variables, and defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("storage", "sqlite")
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("user_id", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("max_width", 100)
	v.SetDefault("search.page_size", 20)
	v.SetDefault("search.preview_length", 250)
	v.SetDefault("search.debounce", "300ms")
	v.SetDefault("search.timeout", "10s")
	v.SetDefault("search.recent_limit", 10)
	v.SetDefault("theme.preset", "default-dark")

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// XDG support
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "moodlog"))
		}
		v.AddConfigPath(DefaultDataDir())
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	// Environment variables: MOODLOG_STORAGE, MOODLOG_SEARCH_DEBOUNCE, etc.
	v.SetEnvPrefix("MOODLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (ignore not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error if it's not a "file not found" error
			if configPath != "" {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that cannot be corrected silently.
func (c *Config) Validate() error {
	switch c.Storage {
	case "sqlite", "markdown":
	default:
		return fmt.Errorf("unknown storage backend: %q", c.Storage)
	}
	if _, err := c.DebounceDuration(); err != nil {
		return err
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// DebounceDuration parses search.debounce. Empty means 300ms.
func (c *Config) DebounceDuration() (time.Duration, error) {
	return parsePositiveDuration("search.debounce", c.Search.Debounce, 300*time.Millisecond)
}

// TimeoutDuration parses search.timeout. Empty means 10s.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	return parsePositiveDuration("search.timeout", c.Search.Timeout, 10*time.Second)
}

// SlogLevel maps log_level onto a slog level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	name := c.LogLevel
	if name == "" {
		name = "info"
	}
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

func parsePositiveDuration(key, s string, fallback time.Duration) (time.Duration, error) {
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, s)
	}
	return d, nil
}
