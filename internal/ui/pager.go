package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// pagerModel scrolls long CLI output such as a page of search results.
type pagerModel struct {
	viewport viewport.Model
	content  string
	theme    Theme
	ready    bool
	maxWidth int // 0 = no limit
	width    int
	height   int
}

func (m pagerModel) Init() tea.Cmd {
	return nil
}

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if !m.ready {
			m.viewport = viewport.New(m.contentWidth(), max(msg.Height-1, 1))
			m.ready = true
		} else {
			m.viewport.Width = m.contentWidth()
			m.viewport.Height = max(msg.Height-1, 1)
		}
		m.viewport.Style = m.theme.ViewPaneStyle()
		m.viewport.SetContent(m.content)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m pagerModel) contentWidth() int {
	if m.maxWidth > 0 && m.width > m.maxWidth {
		return m.maxWidth
	}
	return m.width
}

func (m pagerModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	footer := m.theme.HelpStyle().Render(fmt.Sprintf("↑/↓ scroll • q quit • %3.f%%", m.viewport.ScrollPercent()*100))
	return m.theme.PaintScreen(m.viewport.View()+"\n"+footer, m.width, m.height, m.contentWidth())
}

// Pager writes CLI output, switching to a scrollable full-screen pager
// when stdout is a terminal and the content is taller than it.
type Pager struct {
	Theme    Theme
	MaxWidth int
}

// Write sends content to w. Only os.Stdout on a TTY is ever paged, so
// redirected or captured output is written as-is.
func (p Pager) Write(w io.Writer, content string) error {
	f, ok := w.(*os.File)
	if !ok || f != os.Stdout || !term.IsTerminal(int(f.Fd())) {
		_, err := fmt.Fprint(w, content)
		return err
	}

	_, height, err := term.GetSize(int(f.Fd()))
	if err != nil || strings.Count(content, "\n")+1 <= height-2 {
		_, err := fmt.Fprint(w, content)
		return err
	}

	prog := tea.NewProgram(pagerModel{content: content, theme: p.Theme, maxWidth: p.MaxWidth}, tea.WithAltScreen())
	_, err = prog.Run()
	return err
}
