package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/moodlog/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	recentClear bool
	recentYes   bool
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List or clear recent searches",
	Example: `  moodlog recent
  moodlog recent --json
  moodlog recent --clear`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if recentClear {
			confirmed := recentYes || !term.IsTerminal(int(os.Stdin.Fd()))
			if !confirmed {
				ok, err := ui.Confirm("Clear recent searches?", theme())
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
			}
			return runRecentClear(cmd.OutOrStdout())
		}
		return runRecentList(cmd.OutOrStdout())
	},
}

func init() {
	recentCmd.Flags().BoolVar(&recentClear, "clear", false, "forget all recent searches")
	recentCmd.Flags().BoolVarP(&recentYes, "yes", "y", false, "clear without asking")
	rootCmd.AddCommand(recentCmd)
}

func runRecentList(w io.Writer) error {
	entries, err := recentSearches.Entries()
	if err != nil {
		return err
	}
	if jsonOutput {
		return ui.FormatJSON(w, entries)
	}
	ui.FormatRecentSearches(w, entries)
	return nil
}

func runRecentClear(w io.Writer) error {
	if err := recentSearches.Clear(); err != nil {
		return err
	}
	if jsonOutput {
		return ui.FormatJSON(w, map[string]bool{"cleared": true})
	}
	fmt.Fprintln(w, "Cleared recent searches.")
	return nil
}
