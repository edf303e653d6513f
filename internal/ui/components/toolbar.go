package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tvshell/internal/ui/theme"
)

// Toolbar is the always-visible strip showing the active page address and
// load progress.
type Toolbar struct {
	url      string
	progress int
}

func (t *Toolbar) SetURL(url string)        { t.url = url }
func (t *Toolbar) SetProgress(progress int) { t.progress = progress }
func (t Toolbar) URL() string               { return t.url }
func (t Toolbar) Progress() int             { return t.progress }

func (t Toolbar) View(width int, screen string) string {
	left := theme.Hot.Render("tvshell") + "  " + theme.Muted.Render(screen)
	url := t.url
	if url == "" {
		url = "home"
	}
	left += "  " + url
	right := ""
	if t.progress > 0 && t.progress < 100 {
		right = theme.Muted.Render(fmt.Sprintf("%3d%%", t.progress))
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return theme.Bar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
