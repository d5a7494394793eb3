package mcptools

import (
	"context"

	"github.com/chris-regnier/moodlog/internal/mood"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListMoodsHandler returns the handler function for the list_moods MCP tool.
func ListMoodsHandler() func(ctx context.Context, req *mcp.CallToolRequest, input ListMoodsInput) (*mcp.CallToolResult, ListMoodsOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListMoodsInput) (*mcp.CallToolResult, ListMoodsOutput, error) {
		all := mood.All()
		out := ListMoodsOutput{Moods: make([]string, len(all))}
		for i, m := range all {
			out.Moods[i] = string(m)
		}
		return nil, out, nil
	}
}
