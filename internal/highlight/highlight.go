// Package highlight builds preview excerpts of journal text with keyword
// matches marked. Marks are kept as segments rather than inline markup, so a
// renderer styles them without ever parsing the user's text.
package highlight

import (
	"html"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DefaultPreviewLength is the preview window size in runes.
const DefaultPreviewLength = 250

// Segment is a run of preview text. Match segments equal the keyword
// case-insensitively and keep the body's original casing.
type Segment struct {
	Text  string
	Match bool
}

// Result is a highlighted preview window over a body.
type Result struct {
	Segments       []Segment
	TruncatedStart bool // text was cut before the window
	TruncatedEnd   bool // text was cut after the window
}

// Highlight returns a preview of body at most previewLength runes long.
// When keyword occurs in body the window is centred on its first
// occurrence, and every occurrence inside the window is a Match segment.
func Highlight(body, keyword string, previewLength int) Result {
	if previewLength <= 0 {
		previewLength = DefaultPreviewLength
	}
	text := []rune(Sanitize(body))
	kw := []rune(strings.TrimSpace(keyword))

	first := -1
	if len(kw) > 0 {
		first = indexFold(text, kw, 0)
	}

	start := 0
	if first >= 0 && len(text) > previewLength {
		start = first - (previewLength-len(kw))/2
		start = max(0, min(start, len(text)-previewLength, first))
	}
	end := min(len(text), start+previewLength)
	window := text[start:end]

	res := Result{TruncatedStart: start > 0, TruncatedEnd: end < len(text)}
	if first < 0 {
		res.Segments = plain(window)
		return res
	}
	if len(kw) > len(window) {
		// The window opens on the match and cannot hold all of it.
		res.Segments = []Segment{{Text: string(window), Match: true}}
		return res
	}

	pos := 0
	for pos < len(window) {
		i := indexFold(window, kw, pos)
		if i < 0 {
			break
		}
		if i > pos {
			res.Segments = append(res.Segments, Segment{Text: string(window[pos:i])})
		}
		res.Segments = append(res.Segments, Segment{Text: string(window[i : i+len(kw)]), Match: true})
		pos = i + len(kw)
	}
	if pos < len(window) {
		res.Segments = append(res.Segments, Segment{Text: string(window[pos:])})
	}
	return res
}

// Sanitize is the escape step applied to body text before matching:
// terminal escape sequences and control characters are removed. Newlines
// and tabs are kept, so the preview is the body's own text.
func Sanitize(body string) string {
	stripped := ansi.Strip(body)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, stripped)
}

// flatten puts text on one line for single-line renderers.
func flatten(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return ' '
		}
		return r
	}, s)
}

func plain(window []rune) []Segment {
	if len(window) == 0 {
		return nil
	}
	return []Segment{{Text: string(window)}}
}

// indexFold returns the rune index of the first case-insensitive occurrence
// of kw in text at or after from, or -1.
func indexFold(text, kw []rune, from int) int {
	for i := from; i+len(kw) <= len(text); i++ {
		if equalFold(text[i:i+len(kw)], kw) {
			return i
		}
	}
	return -1
}

func equalFold(a, b []rune) bool {
	for i := range a {
		if a[i] == b[i] {
			continue
		}
		if !strings.EqualFold(string(a[i]), string(b[i])) {
			return false
		}
	}
	return true
}

// Matches returns the number of match segments.
func (r Result) Matches() int {
	n := 0
	for _, s := range r.Segments {
		if s.Match {
			n++
		}
	}
	return n
}

// Plain returns the window text with no marks.
func (r Result) Plain() string {
	var b strings.Builder
	for _, s := range r.Segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Markers wraps matches in open and close. Intended for plain-text sinks
// such as logs; the markers are not escaped out of the body.
func (r Result) Markers(open, close string) string {
	var b strings.Builder
	for _, s := range r.Segments {
		if s.Match {
			b.WriteString(open)
			b.WriteString(s.Text)
			b.WriteString(close)
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}

// HTML escapes every segment and wraps matches in <mark>. Truncated ends
// are shown with an ellipsis.
func (r Result) HTML() string {
	var b strings.Builder
	if r.TruncatedStart {
		b.WriteString("…")
	}
	for _, s := range r.Segments {
		if s.Match {
			b.WriteString("<mark>")
			b.WriteString(html.EscapeString(s.Text))
			b.WriteString("</mark>")
			continue
		}
		b.WriteString(html.EscapeString(s.Text))
	}
	if r.TruncatedEnd {
		b.WriteString("…")
	}
	return b.String()
}

// Terminal renders the preview on one line for a terminal, styling matches
// with match and everything else with base. Newlines and tabs become spaces.
func (r Result) Terminal(base, match lipgloss.Style) string {
	var b strings.Builder
	if r.TruncatedStart {
		b.WriteString(base.Render("…"))
	}
	for _, s := range r.Segments {
		if s.Match {
			b.WriteString(match.Render(flatten(s.Text)))
			continue
		}
		b.WriteString(base.Render(flatten(s.Text)))
	}
	if r.TruncatedEnd {
		b.WriteString(base.Render("…"))
	}
	return b.String()
}
