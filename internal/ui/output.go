package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/chris-regnier/moodlog/internal/entry"
	"github.com/chris-regnier/moodlog/internal/highlight"
	"github.com/chris-regnier/moodlog/internal/mood"
	"github.com/chris-regnier/moodlog/internal/recent"
	"github.com/chris-regnier/moodlog/internal/search"
)

const timeLayout = "2006-01-02 15:04"

// FormatJSON writes any value as indented JSON to the writer.
func FormatJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatSearchPage writes one page of results with keyword matches styled
// by the theme. Each entry is a metadata line followed by its preview.
func FormatSearchPage(w io.Writer, page search.Page, f search.Filter, previewLength int, theme Theme) {
	if len(page.Entries) == 0 {
		if page.Offset > 0 {
			fmt.Fprintln(w, "No more entries.")
			return
		}
		fmt.Fprintln(w, "No entries match.")
		return
	}

	for i, e := range page.Entries {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s  %s", theme.AccentStyle().Render(e.ID), e.CreatedAt.Local().Format(timeLayout))
		if e.Mood != mood.None {
			fmt.Fprintf(w, "  %s", theme.MoodStyle(true).Render(e.Mood.String()))
		}
		fmt.Fprintln(w)
		preview := highlight.Highlight(e.Content, f.Term(), previewLength)
		fmt.Fprintf(w, "  %s\n", preview.Terminal(theme.PreviewStyle(), theme.MatchStyle()))
	}

	if page.HasMore {
		fmt.Fprintf(w, "\nMore entries available: --offset %d\n", page.Offset+len(page.Entries))
	}
}

// SearchHit is the JSON form of one search result.
type SearchHit struct {
	ID          string    `json:"id"`
	Mood        string    `json:"mood,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Preview     string    `json:"preview"`
	PreviewHTML string    `json:"preview_html"`
	Matches     int       `json:"matches"`
}

// SearchPageJSON is the JSON form of one page of results. NextOffset is
// set only when another page exists.
type SearchPageJSON struct {
	Entries    []SearchHit `json:"entries"`
	Offset     int         `json:"offset"`
	HasMore    bool        `json:"has_more"`
	NextOffset *int        `json:"next_offset,omitempty"`
}

// ToSearchHits converts entries to JSON hits, highlighting the keyword in
// each preview.
func ToSearchHits(entries []entry.Entry, keyword string, previewLength int) []SearchHit {
	hits := make([]SearchHit, len(entries))
	for i, e := range entries {
		r := highlight.Highlight(e.Content, keyword, previewLength)
		hits[i] = SearchHit{
			ID:          e.ID,
			Mood:        string(e.Mood),
			CreatedAt:   e.CreatedAt,
			UpdatedAt:   e.UpdatedAt,
			Preview:     r.Plain(),
			PreviewHTML: r.HTML(),
			Matches:     r.Matches(),
		}
	}
	return hits
}

// ToSearchPageJSON builds the JSON form of a page.
func ToSearchPageJSON(page search.Page, f search.Filter, previewLength int) SearchPageJSON {
	out := SearchPageJSON{
		Entries: ToSearchHits(page.Entries, f.Term(), previewLength),
		Offset:  page.Offset,
		HasMore: page.HasMore,
	}
	if page.HasMore {
		next := page.Offset + len(page.Entries)
		out.NextOffset = &next
	}
	return out
}

// FormatRecentSearches lists recent searches, most recent first.
func FormatRecentSearches(w io.Writer, entries []recent.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No recent searches.")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %s\n", e.UsedAt.Local().Format(timeLayout), e.Query)
	}
}
