package mcptools

import (
	"context"
	"io"
	"log/slog"

	"github.com/chris-regnier/moodlog/internal/highlight"
	"github.com/chris-regnier/moodlog/internal/search"
	"github.com/chris-regnier/moodlog/internal/session"
	"github.com/chris-regnier/moodlog/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Deps are the services the MCP tools run against.
type Deps struct {
	Store         storage.Storage
	Identity      session.Provider
	ClientOptions []search.Option
	PreviewLength int
	Logger        *slog.Logger
	Version       string
}

// CreateMCPServer creates an MCP server with the journal search tools registered.
func CreateMCPServer(d Deps) *mcp.Server {
	if d.PreviewLength <= 0 {
		d.PreviewLength = highlight.DefaultPreviewLength
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if d.Version == "" {
		d.Version = "dev"
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "moodlog",
		Version: d.Version,
	}, &mcp.ServerOptions{Logger: d.Logger})

	newClient := func() *search.Client {
		opts := append([]search.Option{search.WithLogger(d.Logger)}, d.ClientOptions...)
		return search.NewClient(d.Store, d.Identity, opts...)
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_entries",
		Description: "Search journal entries by keyword, mood and date range, newest first. Previews highlight keyword matches.",
	}, SearchHandler(newClient, d.PreviewLength))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_entry",
		Description: "Fetch the full content of one journal entry by ID",
	}, GetEntryHandler(d.Store, d.Identity))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_moods",
		Description: "List the mood names accepted by search_entries",
	}, ListMoodsHandler())

	return server
}

// NewInMemoryServer creates a server connected to an in-memory transport
// and returns the client side of it.
func NewInMemoryServer(d Deps) (*mcp.Server, mcp.Transport) {
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	server := CreateMCPServer(d)
	go func() {
		_, _ = server.Connect(context.Background(), serverTransport, nil)
	}()

	return server, clientTransport
}
