package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

const (
	defaultMarkdownWidth = 80
	defaultMarkdownStyle = "dark"
)

// markdownCache keeps one glamour renderer, rebuilt only when the wrap
// width or style changes.
type markdownCache struct {
	mu       sync.Mutex
	renderer *glamour.TermRenderer
	width    int
	style    string
}

var entryMarkdown markdownCache

func (c *markdownCache) get(width int, style string) (*glamour.TermRenderer, error) {
	if width < 1 {
		width = defaultMarkdownWidth
	}
	if style == "" {
		style = defaultMarkdownStyle
	}
	if c.renderer != nil && c.width == width && c.style == style {
		return c.renderer, nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	c.renderer, c.width, c.style = r, width, style
	return r, nil
}

func (c *markdownCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderer, c.width, c.style = nil, 0, ""
}

// RenderMarkdown renders an entry body for the terminal with the given
// glamour style ("dark", "light", "notty", ...). When rendering fails the
// body is returned unchanged so an entry is never hidden by a bad style.
func RenderMarkdown(content string, width int, style string) string {
	if content == "" {
		return ""
	}

	entryMarkdown.mu.Lock()
	defer entryMarkdown.mu.Unlock()

	r, err := entryMarkdown.get(width, style)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}
