package components

import (
	tea "github.com/charmbracelet/bubbletea"

	"tvshell/internal/ui/theme"
)

// ConfirmMsg carries the answer of a Confirm dialog.
type ConfirmMsg struct {
	Key string
	OK  bool
}

// Confirm is a yes/no question that captures all input while open.
type Confirm struct {
	key      string
	question string
	visible  bool
}

// Ask opens the dialog. key is echoed back in the ConfirmMsg.
func (c *Confirm) Ask(key, question string) {
	c.key = key
	c.question = question
	c.visible = true
}

func (c Confirm) Visible() bool { return c.visible }

func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || !c.visible {
		return c, nil
	}
	var answer bool
	switch km.String() {
	case "y", "enter":
		answer = true
	case "n", "esc":
	default:
		return c, nil
	}
	c.visible = false
	key := c.key
	return c, func() tea.Msg { return ConfirmMsg{Key: key, OK: answer} }
}

func (c Confirm) View() string {
	if !c.visible {
		return ""
	}
	return theme.Dialog.Render(c.question + "\n\n" + theme.Muted.Render("y/enter: yes  n/esc: no"))
}
