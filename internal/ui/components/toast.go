package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tvshell/internal/ui/theme"
)

// ToastDuration is how long a toast stays on screen.
const ToastDuration = 3 * time.Second

// ToastExpiredMsg hides the toast that was shown with the same sequence.
type ToastExpiredMsg struct{ seq int }

// Toast is a single transient message. A newer toast replaces an older one.
type Toast struct {
	text string
	seq  int
}

func (t *Toast) Show(text string) tea.Cmd {
	t.seq++
	t.text = text
	seq := t.seq
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg { return ToastExpiredMsg{seq: seq} })
}

func (t Toast) Update(msg tea.Msg) Toast {
	if m, ok := msg.(ToastExpiredMsg); ok && m.seq == t.seq {
		t.text = ""
	}
	return t
}

func (t Toast) Text() string { return t.text }

func (t Toast) View() string {
	if t.text == "" {
		return ""
	}
	return theme.Toast.Render(t.text)
}
