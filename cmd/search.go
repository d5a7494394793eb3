package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chris-regnier/moodlog/internal/mood"
	"github.com/chris-regnier/moodlog/internal/search"
	"github.com/chris-regnier/moodlog/internal/ui"
	"github.com/spf13/cobra"
)

var (
	searchMood   string
	searchFrom   string
	searchTo     string
	searchOffset int
	searchLimit  int
)

const emptySearchHint = "Nothing to search for: give a keyword, --mood, --from or --to."

var searchCmd = &cobra.Command{
	Use:   "search [keyword...]",
	Short: "Search journal entries",
	Long: `Search your journal entries, newest first.

The keyword matches anywhere in an entry, ignoring case. Dates are calendar
days (YYYY-MM-DD) and both bounds are inclusive. Keyword searches are
remembered; see "moodlog recent".`,
	Example: `  moodlog search stress
  moodlog search work --mood anxious
  moodlog search --from 2025-01-01 --to 2025-01-31
  moodlog search deadline --offset 20 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(cmd.Context(), cmd.OutOrStdout(), strings.Join(args, " "))
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchMood, "mood", "", "only entries with this mood ("+mood.Labels()+")")
	searchCmd.Flags().StringVar(&searchFrom, "from", "", "earliest date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchTo, "to", "", "latest date (YYYY-MM-DD)")
	searchCmd.Flags().IntVar(&searchOffset, "offset", 0, "skip this many results")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "results per page (default from config)")
	rootCmd.AddCommand(searchCmd)
}

func searchFilter(keyword string) (search.Filter, error) {
	m, err := mood.Parse(searchMood)
	if err != nil {
		return search.Filter{}, err
	}
	start, err := search.ParseDate(searchFrom)
	if err != nil {
		return search.Filter{}, fmt.Errorf("--from: %w", err)
	}
	end, err := search.ParseDate(searchTo)
	if err != nil {
		return search.Filter{}, fmt.Errorf("--to: %w", err)
	}
	return search.Filter{Keyword: keyword, Mood: m, Start: start, End: end}, nil
}

func runSearch(ctx context.Context, w io.Writer, keyword string) error {
	f, err := searchFilter(keyword)
	if err != nil {
		return err
	}
	if f.IsEmpty() {
		fmt.Fprintln(w, emptySearchHint)
		return nil
	}

	client, err := newSearchClient()
	if err != nil {
		return err
	}
	page, err := client.Search(ctx, f, searchOffset, searchLimit)
	if err != nil {
		return err
	}

	if term := f.Term(); term != "" {
		if err := recentSearches.Record(term); err != nil {
			logger.Warn("could not remember search", "keyword", term, "error", err)
		}
	}

	if jsonOutput {
		return ui.FormatJSON(w, ui.ToSearchPageJSON(page, f, appConfig.Search.PreviewLength))
	}
	var buf bytes.Buffer
	ui.FormatSearchPage(&buf, page, f, appConfig.Search.PreviewLength, theme())
	return ui.Pager{Theme: theme(), MaxWidth: appConfig.MaxWidth}.Write(w, buf.String())
}
