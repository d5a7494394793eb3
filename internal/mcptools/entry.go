package mcptools

import (
	"context"
	"time"

	"github.com/chris-regnier/moodlog/internal/session"
	"github.com/chris-regnier/moodlog/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GetEntryHandler returns the handler function for the get_entry MCP tool.
// Only entries owned by the current user are visible.
func GetEntryHandler(store storage.Storage, identity session.Provider) func(ctx context.Context, req *mcp.CallToolRequest, input GetEntryInput) (*mcp.CallToolResult, GetEntryOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetEntryInput) (*mcp.CallToolResult, GetEntryOutput, error) {
		owner, err := identity.CurrentUser(ctx)
		if err != nil {
			return nil, GetEntryOutput{}, err
		}
		e, err := store.Get(owner, input.ID)
		if err != nil {
			return nil, GetEntryOutput{}, err
		}
		return nil, GetEntryOutput{
			ID:        e.ID,
			Date:      formatDate(e.CreatedAt),
			Mood:      string(e.Mood),
			Content:   e.Content,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
			UpdatedAt: e.UpdatedAt.Format(time.RFC3339),
		}, nil
	}
}
