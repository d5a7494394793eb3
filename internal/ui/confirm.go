package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// confirmModel is a one-line y/N prompt. Anything but "y" declines.
type confirmModel struct {
	prompt    string
	theme     Theme
	confirmed bool
	done      bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch strings.ToLower(k.String()) {
	case "y":
		m.confirmed, m.done = true, true
		return m, tea.Quit
	case "n", "enter", "esc", "ctrl+c":
		m.confirmed, m.done = false, true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	return m.theme.HeaderStyle().Render(m.prompt) + " " + m.theme.DangerStyle().Render("[y/N]") + " "
}

// Confirm asks a yes/no question on the terminal and reports whether the
// user answered yes.
func Confirm(prompt string, theme Theme) (bool, error) {
	result, err := tea.NewProgram(confirmModel{prompt: prompt, theme: theme}).Run()
	if err != nil {
		return false, err
	}
	return result.(confirmModel).confirmed, nil
}
