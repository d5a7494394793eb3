package ui

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/chris-regnier/moodlog/internal/config"
	"github.com/chris-regnier/moodlog/internal/entry"
	"github.com/chris-regnier/moodlog/internal/mood"
	"github.com/chris-regnier/moodlog/internal/recent"
	"github.com/chris-regnier/moodlog/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSearchPage(t *testing.T) {
	page := search.Page{
		Entries: []entry.Entry{
			{ID: "u0000003", Content: "work was fine, less stress", Mood: mood.Neutral, CreatedAt: day(3, 9)},
			{ID: "u0000001", Content: "Stress at work again", CreatedAt: day(1, 9)},
		},
		HasMore: true,
		Offset:  20,
	}

	var buf bytes.Buffer
	FormatSearchPage(&buf, page, search.Filter{Keyword: " stress "}, 250, ResolveTheme(config.ThemeConfig{}))
	out := stripANSI(buf.String())

	assert.Contains(t, out, "u0000003  2025-03-03 09:00  neutral")
	assert.Contains(t, out, "  work was fine, less stress")
	assert.Contains(t, out, "u0000001  2025-03-01 09:00\n")
	assert.Contains(t, out, "More entries available: --offset 22")
}

func TestFormatSearchPageEmpty(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{})

	var buf bytes.Buffer
	FormatSearchPage(&buf, search.Page{}, search.Filter{Keyword: "x"}, 250, theme)
	assert.Equal(t, "No entries match.\n", buf.String())

	buf.Reset()
	FormatSearchPage(&buf, search.Page{Offset: 40}, search.Filter{Keyword: "x"}, 250, theme)
	assert.Equal(t, "No more entries.\n", buf.String())
}

func TestToSearchPageJSON(t *testing.T) {
	page := search.Page{
		Entries: []entry.Entry{
			{ID: "u0000009", Content: "<b>Stress</b> & more stress", Mood: mood.Anxious, CreatedAt: day(9, 9), UpdatedAt: day(9, 9)},
		},
		HasMore: true,
	}

	got := ToSearchPageJSON(page, search.Filter{Keyword: "stress"}, 250)
	require.Len(t, got.Entries, 1)
	hit := got.Entries[0]
	assert.Equal(t, "anxious", hit.Mood)
	assert.Equal(t, "<b>Stress</b> & more stress", hit.Preview)
	assert.Equal(t, "&lt;b&gt;<mark>Stress</mark>&lt;/b&gt; &amp; more <mark>stress</mark>", hit.PreviewHTML)
	assert.Equal(t, 2, hit.Matches)
	require.NotNil(t, got.NextOffset)
	assert.Equal(t, 1, *got.NextOffset)

	var buf bytes.Buffer
	require.NoError(t, FormatJSON(&buf, got))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, true, decoded["has_more"])
	assert.EqualValues(t, 1, decoded["next_offset"])
}

func TestToSearchPageJSONLastPage(t *testing.T) {
	got := ToSearchPageJSON(search.Page{Entries: []entry.Entry{}}, search.Filter{Mood: mood.Calm}, 250)
	assert.Nil(t, got.NextOffset)
	assert.NotNil(t, got.Entries)

	var buf bytes.Buffer
	require.NoError(t, FormatJSON(&buf, got))
	assert.NotContains(t, buf.String(), "next_offset")
	assert.Contains(t, buf.String(), `"entries": []`)
}

func TestFormatRecentSearches(t *testing.T) {
	var buf bytes.Buffer
	FormatRecentSearches(&buf, nil)
	assert.Equal(t, "No recent searches.\n", buf.String())

	buf.Reset()
	used := time.Date(2025, 3, 4, 18, 30, 0, 0, time.Local)
	FormatRecentSearches(&buf, []recent.Entry{
		{Query: "Stress", UsedAt: used},
		{Query: "work", UsedAt: used.Add(-time.Hour)},
	})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{"2025-03-04 18:30  Stress", "2025-03-04 17:30  work"}, lines)
}
