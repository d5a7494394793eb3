package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/moodlog/internal/entry"
	"github.com/chris-regnier/moodlog/internal/mood"
	"github.com/chris-regnier/moodlog/internal/storage"
	"github.com/chris-regnier/moodlog/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const defaultRenderWidth = 80

var showContentOnly bool

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a journal entry",
	Long:  "Display the full content and metadata of a journal entry found by search.",
	Example: `  moodlog show a3kf9x2m
  moodlog show a3kf9x2m --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func init() {
	showCmd.Flags().BoolVar(&showContentOnly, "content-only", false, "print just the entry content")
	rootCmd.AddCommand(showCmd)
}

func runShow(ctx context.Context, w io.Writer, id string) error {
	if err := entry.ValidateID(id); err != nil {
		return err
	}
	owner, err := identity.CurrentUser(ctx)
	if err != nil {
		return err
	}
	e, err := store.Get(owner, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("entry %s not found", id)
		}
		return err
	}

	switch {
	case showContentOnly:
		fmt.Fprintln(w, e.Content)
		return nil
	case jsonOutput:
		return ui.FormatJSON(w, e)
	}

	t := theme()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Entry: %s\n", e.ID)
	fmt.Fprintf(&buf, "Created: %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04"))
	if e.Mood != mood.None {
		fmt.Fprintf(&buf, "Mood: %s\n", e.Mood)
	}
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, ui.RenderMarkdown(e.Content, renderWidth(w), t.MarkdownStyle))
	return ui.Pager{Theme: t, MaxWidth: appConfig.MaxWidth}.Write(w, buf.String())
}

// renderWidth is max_width, narrowed to the terminal when w is one.
func renderWidth(w io.Writer) int {
	width := appConfig.MaxWidth
	if width <= 0 {
		width = defaultRenderWidth
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			width = min(width, tw)
		}
	}
	return width
}
