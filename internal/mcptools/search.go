package mcptools

import (
	"context"
	"errors"

	"github.com/chris-regnier/moodlog/internal/highlight"
	"github.com/chris-regnier/moodlog/internal/search"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ErrEmptyFilter is returned when search_entries is called with no
// constraint at all.
var ErrEmptyFilter = errors.New("provide at least one of keyword, mood, start_date or end_date")

// SearchHandler returns the handler function for the search_entries MCP tool.
// Tool calls are independent, so every call gets its own client from
// newClient and never supersedes a concurrent call.
func SearchHandler(newClient func() *search.Client, previewLength int) func(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
		f, err := toFilter(input)
		if err != nil {
			return nil, SearchOutput{}, err
		}
		if f.IsEmpty() {
			return nil, SearchOutput{}, ErrEmptyFilter
		}

		page, err := newClient().Search(ctx, f, input.Offset, input.Limit)
		if err != nil {
			return nil, SearchOutput{}, err
		}

		out := SearchOutput{
			Entries: make([]EntryResult, 0, len(page.Entries)),
			Offset:  page.Offset,
			HasMore: page.HasMore,
		}
		for _, e := range page.Entries {
			r := highlight.Highlight(e.Content, f.Term(), previewLength)
			out.Entries = append(out.Entries, EntryResult{
				ID:          e.ID,
				Date:        formatDate(e.CreatedAt),
				Mood:        string(e.Mood),
				Preview:     r.Plain(),
				PreviewHTML: r.HTML(),
				Matches:     r.Matches(),
			})
		}
		if page.HasMore {
			next := page.Offset + len(page.Entries)
			out.NextOffset = &next
		}
		return nil, out, nil
	}
}
