package cmd

import (
	"github.com/chris-regnier/moodlog/internal/ui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive search screen",
	Long: `Open the interactive search screen. Results update as you type.

Keys:
  tab / shift+tab   move between the keyword and date fields
  ctrl+o            cycle the mood filter
  up / down, enter  select and open an entry
  ctrl+n            load more results
  ctrl+p            recall a recent search
  ctrl+x            clear recent searches
  ctrl+r            retry a failed search
  esc               quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI() error {
	logFile, err := openLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()

	client, err := newSearchClient()
	if err != nil {
		return err
	}
	debounce, err := appConfig.DebounceDuration()
	if err != nil {
		return err
	}

	logger.Info("starting search screen", "storage", appConfig.Storage)
	return ui.RunSearch(ui.SearchConfig{
		Client:        client,
		Recent:        recentSearches,
		Theme:         theme(),
		Debounce:      debounce,
		PreviewLength: appConfig.Search.PreviewLength,
		MaxWidth:      appConfig.MaxWidth,
		Logger:        logger,
	})
}
