package mcptools

// SearchInput is the input schema for the search_entries MCP tool. At least
// one of keyword, mood, start_date or end_date must be set.
type SearchInput struct {
	Keyword   string `json:"keyword,omitempty" jsonschema:"Case-insensitive text to find in entry content"`
	Mood      string `json:"mood,omitempty" jsonschema:"Only entries tagged with this mood (see list_moods)"`
	StartDate string `json:"start_date,omitempty" jsonschema:"Earliest entry date, YYYY-MM-DD, inclusive"`
	EndDate   string `json:"end_date,omitempty" jsonschema:"Latest entry date, YYYY-MM-DD, inclusive"`
	Offset    int    `json:"offset,omitempty" jsonschema:"Number of results to skip"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of results to return"`
}

// SearchOutput is the output schema for the search_entries MCP tool.
type SearchOutput struct {
	Entries    []EntryResult `json:"entries"`
	Offset     int           `json:"offset"`
	HasMore    bool          `json:"has_more"`
	NextOffset *int          `json:"next_offset,omitempty"`
}

// EntryResult is one search hit. PreviewHTML is escaped HTML with keyword
// matches wrapped in <mark>.
type EntryResult struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Mood        string `json:"mood,omitempty"`
	Preview     string `json:"preview"`
	PreviewHTML string `json:"preview_html"`
	Matches     int    `json:"matches"`
}

// GetEntryInput is the input schema for the get_entry MCP tool.
type GetEntryInput struct {
	ID string `json:"id" jsonschema:"Entry ID as returned by search_entries"`
}

// GetEntryOutput is the output schema for the get_entry MCP tool.
type GetEntryOutput struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Mood      string `json:"mood,omitempty"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ListMoodsInput is the input schema for the list_moods MCP tool.
type ListMoodsInput struct{}

// ListMoodsOutput is the output schema for the list_moods MCP tool.
type ListMoodsOutput struct {
	Moods []string `json:"moods"`
}
