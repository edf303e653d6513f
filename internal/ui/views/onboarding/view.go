package onboarding

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tvshell/internal/ui/theme"
)

// DoneMsg is emitted once the user dismisses the welcome screen.
type DoneMsg struct{}

type Model struct {
	width  int
	height int
}

func New() Model { return Model{} }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if msg.String() == "enter" {
			return m, func() tea.Msg { return DoneMsg{} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	lines := []string{
		theme.Title.Render("Welcome to tvshell"),
		"",
		"Browse with the arrow keys and enter, like a remote.",
		"ctrl+o opens the home overlay with your pinned sites.",
		"Turbo mode blocks trackers and is on by default.",
		"",
		theme.Hot.Render("press enter to start"),
	}
	box := theme.Overlay.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
