package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/moodlog/internal/config"
)

// Theme holds the colours of the search screens and CLI output. Highlight
// backs keyword matches in previews.
type Theme struct {
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Accent        lipgloss.Color
	Muted         lipgloss.Color
	Danger        lipgloss.Color
	Highlight     lipgloss.Color
	Background    lipgloss.Color
	MarkdownStyle string
}

const defaultPreset = "default-dark"

var presets = map[string]Theme{
	"default-dark": {
		Primary: "15", Secondary: "243", Accent: "33", Muted: "241",
		Danger: "9", Highlight: "178", Background: "235",
		MarkdownStyle: "dark",
	},
	"default-light": {
		Primary: "0", Secondary: "240", Accent: "27", Muted: "245",
		Danger: "1", Highlight: "221", Background: "254",
		MarkdownStyle: "light",
	},
	"high-contrast": {
		Primary: "#FFFFFF", Secondary: "#D0D0D0", Accent: "#00D7FF", Muted: "#A8A8A8",
		Danger: "#FF5F5F", Highlight: "#FFFF00", Background: "#000000",
		MarkdownStyle: "dark",
	},
}

// ResolveTheme starts from the configured preset (default-dark when unknown)
// and applies every non-empty override.
func ResolveTheme(cfg config.ThemeConfig) Theme {
	theme, ok := presets[cfg.Preset]
	if !ok {
		theme = presets[defaultPreset]
	}
	for _, o := range []struct {
		dst *lipgloss.Color
		val string
	}{
		{&theme.Primary, cfg.Primary},
		{&theme.Secondary, cfg.Secondary},
		{&theme.Accent, cfg.Accent},
		{&theme.Muted, cfg.Muted},
		{&theme.Danger, cfg.Danger},
		{&theme.Highlight, cfg.Highlight},
		{&theme.Background, cfg.Background},
	} {
		if o.val != "" {
			*o.dst = lipgloss.Color(o.val)
		}
	}
	if cfg.MarkdownStyle != "" {
		theme.MarkdownStyle = cfg.MarkdownStyle
	}
	return theme
}

func (t Theme) fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c).Background(t.Background)
}

// HelpStyle is for hints, counts and footers.
func (t Theme) HelpStyle() lipgloss.Style { return t.fg(t.Muted) }

// HeaderStyle is for screen titles and the entry date line.
func (t Theme) HeaderStyle() lipgloss.Style { return t.fg(t.Primary).Bold(true) }

// AccentStyle marks the focused input, the selected row and entry ids.
func (t Theme) AccentStyle() lipgloss.Style { return t.fg(t.Accent) }

// DangerStyle is for failures and invalid input markers.
func (t Theme) DangerStyle() lipgloss.Style { return t.fg(t.Danger) }

// ViewPaneStyle is the plain body text style.
func (t Theme) ViewPaneStyle() lipgloss.Style { return t.fg(t.Primary) }

// PreviewStyle styles the unmatched text of a highlighted preview.
func (t Theme) PreviewStyle() lipgloss.Style { return t.fg(t.Secondary) }

// MatchStyle styles keyword matches inside a highlighted preview.
func (t Theme) MatchStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Background).Background(t.Highlight)
}

// MoodStyle styles a mood label. Unset moods render muted.
func (t Theme) MoodStyle(set bool) lipgloss.Style {
	if !set {
		return t.HelpStyle()
	}
	return t.fg(t.Accent).Italic(true)
}

// backgroundSGR is the raw escape selecting the background colour, needed
// in front of an erase-line so the cleared cells take the theme colour.
func (t Theme) backgroundSGR() string {
	s := string(t.Background)
	if len(s) == 7 && s[0] == '#' {
		if rgb, err := strconv.ParseUint(s[1:], 16, 32); err == nil {
			return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", rgb>>16, rgb>>8&0xff, rgb&0xff)
		}
	}
	return "\x1b[48;5;" + s + "m"
}

// PaintScreen lays content out as a full termWidth x termHeight screen on
// the theme background, centring it when contentWidth is narrower than the
// terminal. Every line ends with an erase-line so no cell keeps the
// terminal's own background.
func (t Theme) PaintScreen(content string, termWidth, termHeight, contentWidth int) string {
	fill := lipgloss.NewStyle().Background(t.Background)
	eraseLine := t.backgroundSGR() + "\x1b[K"
	pad := func(n int) string {
		if n <= 0 {
			return ""
		}
		return fill.Render(strings.Repeat(" ", n))
	}

	indent := 0
	if contentWidth > 0 && contentWidth < termWidth {
		indent = (termWidth - contentWidth) / 2
	}

	out := make([]string, 0, termHeight)
	for _, line := range strings.Split(content, "\n") {
		if len(out) == termHeight {
			break
		}
		out = append(out, pad(indent)+line+pad(termWidth-indent-lipgloss.Width(line))+eraseLine)
	}
	for len(out) < termHeight {
		out = append(out, pad(termWidth)+eraseLine)
	}
	return strings.Join(out, "\n")
}
