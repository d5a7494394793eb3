package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/chris-regnier/moodlog/internal/config"
	"github.com/chris-regnier/moodlog/internal/recent"
	"github.com/chris-regnier/moodlog/internal/search"
	"github.com/chris-regnier/moodlog/internal/session"
	"github.com/chris-regnier/moodlog/internal/storage"
	"github.com/chris-regnier/moodlog/internal/storage/markdown"
	"github.com/chris-regnier/moodlog/internal/storage/sqlite"
	"github.com/chris-regnier/moodlog/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const logFileName = "moodlog.log"

var (
	cfgFile        string
	jsonOutput     bool
	storageBackend string
	appConfig      *config.Config
	store          storage.Storage
	identity       session.Provider
	recentSearches *recent.Store
	logger         = slog.New(slog.NewTextHandler(io.Discard, nil))
)

var rootCmd = &cobra.Command{
	Use:   "moodlog",
	Short: "Search your mood journal",
	Long: `moodlog finds journal entries by keyword, mood and date range.

Run it without arguments in a terminal to open the interactive search screen.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		appConfig = cfg

		if storageBackend != "" {
			appConfig.Storage = storageBackend
		}

		level, err := appConfig.SlogLevel()
		if err != nil {
			return err
		}
		logger = newLogger(os.Stderr, level)

		identity, err = session.FromConfig(appConfig.UserID)
		if err != nil {
			return fmt.Errorf("resolving user: %w", err)
		}

		store, err = openStore(appConfig)
		if err != nil {
			return err
		}
		recentSearches = recent.New(appConfig.DataDir, appConfig.Search.RecentLimit)

		logger.Debug("initialized",
			"storage", appConfig.Storage,
			"data_dir", appConfig.DataDir)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store == nil {
			return nil
		}
		return store.Close()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return cmd.Help()
		}
		return runTUI()
	},
}

// Execute runs the root command. An interrupt cancels the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&storageBackend, "storage", "", "storage backend (markdown|sqlite)")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func openStore(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage {
	case "markdown":
		s, err := markdown.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initializing markdown storage: %w", err)
		}
		return s, nil
	case "sqlite":
		s, err := sqlite.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initializing sqlite storage: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage)
	}
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openLogFile points the logger at <data_dir>/moodlog.log for commands that
// own the terminal. The caller closes the returned file.
func openLogFile() (*os.File, error) {
	level, err := appConfig.SlogLevel()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(appConfig.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(appConfig.DataDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	logger = newLogger(f, level)
	return f, nil
}

// newSearchClient builds a search client from the loaded configuration.
func newSearchClient() (*search.Client, error) {
	timeout, err := appConfig.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	return search.NewClient(store, identity,
		search.WithTimeout(timeout),
		search.WithPageSize(appConfig.Search.PageSize),
		search.WithLogger(logger),
	), nil
}

func theme() ui.Theme {
	return ui.ResolveTheme(appConfig.Theme)
}
