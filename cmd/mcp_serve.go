package cmd

import (
	"github.com/chris-regnier/moodlog/internal/mcptools"
	"github.com/chris-regnier/moodlog/internal/search"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X .../cmd.version=...".
var version = "dev"

var mcpServeCmd = &cobra.Command{
	Use:   "mcp-serve",
	Short: "Run MCP server on stdio",
	Long: `Starts a Model Context Protocol (MCP) server that exposes journal search
over stdio transport. Results are always scoped to the configured user.

Available tools:
  - search_entries: Search by keyword, mood and date range with highlighted previews
  - get_entry: Fetch the full content of one entry
  - list_moods: List the accepted mood names

Example client config:
  {
    "mcpServers": {
      "moodlog": {
        "command": "/path/to/moodlog",
        "args": ["mcp-serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	rootCmd.AddCommand(mcpServeCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	timeout, err := appConfig.TimeoutDuration()
	if err != nil {
		return err
	}

	// stdout carries the protocol; logger already writes to stderr.
	server := mcptools.CreateMCPServer(mcptools.Deps{
		Store:    store,
		Identity: identity,
		ClientOptions: []search.Option{
			search.WithTimeout(timeout),
			search.WithPageSize(appConfig.Search.PageSize),
		},
		PreviewLength: appConfig.Search.PreviewLength,
		Logger:        logger,
		Version:       version,
	})

	logger.Info("starting MCP server",
		"transport", "stdio",
		"storage", appConfig.Storage,
		"data_dir", appConfig.DataDir)

	return server.Run(cmd.Context(), &mcp.StdioTransport{})
}
