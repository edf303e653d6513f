package settings

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tvshell/internal/modules/settings/dto"
	"tvshell/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the minimal interface this view needs from the settings use-case.
type Port interface {
	Snapshot(ctx context.Context) (dto.Snapshot, error)
	ResetUnpinToastCounter(ctx context.Context) error
}

// ─── messages ────────────────────────────────────────────────────────────────

type snapshotMsg struct {
	snap dto.Snapshot
	err  error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port   Port
	snap   dto.Snapshot
	err    error
	loaded bool
	width  int
	height int
}

func New(port Port) Model {
	return Model{port: port}
}

// Reload re-reads every preference.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.port.Snapshot(context.Background())
		return snapshotMsg{snap: snap, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case snapshotMsg:
		m.loaded = true
		m.snap = msg.snap
		m.err = msg.err

	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, m.resetCmd()
		}
	}
	return m, nil
}

func (m Model) resetCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.port.ResetUnpinToastCounter(context.Background()); err != nil {
			return snapshotMsg{snap: m.snap, err: err}
		}
		snap, err := m.port.Snapshot(context.Background())
		return snapshotMsg{snap: snap, err: err}
	}
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Settings") + "\n\n")
	if !m.loaded {
		sb.WriteString(theme.Muted.Render("loading…"))
	} else {
		turbo := "off"
		if m.snap.BlockingEnabled {
			turbo = theme.Hot.Render("on")
		}
		rows := [][2]string{
			{"Turbo mode (tracking protection)", turbo},
			{"Unpin hints shown", fmt.Sprintf("%d of 3", m.snap.UnpinToastsShown)},
			{"Onboarding seen", yesNo(m.snap.OnboardingShown)},
			{"Bundled tiles installed", yesNo(m.snap.TilesSeeded)},
		}
		for _, r := range rows {
			sb.WriteString(lipgloss.NewStyle().Width(36).Render(r[0]) + r[1] + "\n")
		}
		if m.err != nil {
			sb.WriteString("\n" + theme.Hot.Render("settings unavailable: "+m.err.Error()) + "\n")
		}
	}
	sb.WriteString("\n" + theme.Muted.Render("r: reset unpin hints  esc: back  turbo is toggled from the home overlay"))
	return theme.Page.Width(max(20, m.width-2)).Height(max(3, m.height-2)).Render(sb.String())
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
