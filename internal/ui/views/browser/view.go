package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	browserin "tvshell/internal/modules/browser/port/in"
	overlay "tvshell/internal/modules/overlay/domain"
	overlayin "tvshell/internal/modules/overlay/port/in"
	tiles "tvshell/internal/modules/tiles/domain"
	"tvshell/internal/platform/urlutil"
	"tvshell/internal/ui/theme"
)

// visibleRows matches how far the overlay scrolls per row.
const visibleRows = 3

// ─── model ───────────────────────────────────────────────────────────────────

// Model draws one browser screen with its home-tile overlay and turns remote
// keys into overlay calls. It holds no browsing state of its own.
type Model struct {
	screen   browserin.Screen
	input    textinput.Model
	spinner  spinner.Model
	progress progress.Model
	width    int
	height   int
}

func New() Model {
	ti := textinput.New()
	ti.Placeholder = "search or enter address"
	ti.Prompt = "⌕ "
	ti.CharLimit = 2048
	ti.ShowSuggestions = true

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		input:    ti,
		spinner:  sp,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

func (m Model) Init() tea.Cmd { return m.spinner.Tick }

// Bind switches the view to s. Passing nil shows an empty screen.
func (m *Model) Bind(s browserin.Screen) {
	if m.screen == s {
		return
	}
	m.screen = s
	m.input.Reset()
	m.Sync()
}

func (m Model) Screen() browserin.Screen { return m.screen }

// Typing reports whether key presses belong to the URL field.
func (m Model) Typing() bool {
	ov, ok := m.overlay()
	return ok && ov.Visible() && ov.FocusArea() == overlay.AreaURL
}

// OverlayVisible is false when no screen is bound.
func (m Model) OverlayVisible() bool {
	ov, ok := m.overlay()
	return ok && ov.Visible()
}

// Sync copies the URL field into the text input. Call it after anything that
// may have changed the overlay.
func (m *Model) Sync() {
	ov, ok := m.overlay()
	if !ok {
		m.input.Blur()
		return
	}
	field := ov.URLField()
	if m.input.Value() != field.Text() {
		m.input.SetValue(field.Text())
		m.input.CursorEnd()
	}
	if field.Suggestion() != "" {
		m.input.SetSuggestions([]string{field.Cached().Text})
	} else {
		m.input.SetSuggestions(nil)
	}
	if ov.Visible() && field.Focused() {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(10, msg.Width-8)
		m.input.Width = max(10, msg.Width-12)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		ov, ok := m.overlay()
		if !ok || !ov.Visible() {
			return m, nil
		}
		return m.handleOverlayKey(ov, msg)
	}
	return m, nil
}

func (m Model) handleOverlayKey(ov overlayin.Overlay, msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch ov.FocusArea() {
	case overlay.AreaURL:
		switch msg.String() {
		case "enter":
			m.typed(ov)
			ov.CommitURL()
		case "up":
			ov.Move(overlay.Up)
		case "down":
			ov.Move(overlay.Down)
		default:
			m.input, cmd = m.input.Update(msg)
			m.typed(ov)
		}
	default:
		switch msg.String() {
		case "up":
			ov.Move(overlay.Up)
		case "down":
			ov.Move(overlay.Down)
		case "left":
			ov.Move(overlay.Left)
		case "right":
			ov.Move(overlay.Right)
		case "enter":
			ov.ActivateFocused()
		case "m":
			ov.LongPressFocused()
		}
	}
	m.Sync()
	return m, cmd
}

func (m *Model) typed(ov overlayin.Overlay) {
	if v := m.input.Value(); v != ov.URLField().Text() {
		ov.TypeURL(v)
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.screen == nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" starting…")
	}
	if ov, ok := m.overlay(); ok && ov.Visible() {
		return m.renderOverlay(ov)
	}
	return m.renderPage()
}

func (m Model) renderPage() string {
	page := m.screen.Page()
	var sb strings.Builder
	title := page.Title
	if title == "" {
		title = urlutil.StripCommonPrefixes(page.URL)
	}
	sb.WriteString(theme.Title.Render(title) + "\n")
	sb.WriteString(theme.Muted.Render(page.URL) + "\n\n")
	if page.Loading() {
		sb.WriteString(m.spinner.View() + " loading\n")
	}
	sb.WriteString(m.progress.ViewAs(float64(page.Progress) / 100))
	sb.WriteString("\n\n" + theme.Muted.Render("ctrl+o: menu  esc: back  b/f/r: back/forward/reload"))
	return theme.Page.Width(max(20, m.width-2)).Height(max(3, m.height-2)).Render(sb.String())
}

func (m Model) renderOverlay(ov overlayin.Overlay) string {
	sections := []string{
		m.renderNav(ov),
		m.renderURL(ov),
		m.renderGrid(ov),
	}
	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return theme.Overlay.Width(max(20, m.width-2)).Render(body)
}

func (m Model) renderNav(ov overlayin.Overlay) string {
	parts := make([]string, 0, len(overlay.NavButtons))
	for i, st := range ov.NavButtons() {
		label := navLabel(st)
		style := theme.Button
		switch {
		case ov.FocusArea() == overlay.AreaNav && ov.FocusedNav() == i:
			style = theme.ButtonFocused
		case !st.Enabled:
			style = theme.ButtonOff
		case st.Checked:
			style = theme.ButtonChecked
		}
		parts = append(parts, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...) + "\n"
}

func navLabel(st overlay.NavState) string {
	switch st.Button {
	case overlay.NavBack:
		return "◀ back"
	case overlay.NavForward:
		return "▶ forward"
	case overlay.NavReload:
		return "⟳ reload"
	case overlay.NavPin:
		if st.Checked {
			return "★ pinned"
		}
		return "☆ pin"
	case overlay.NavTurbo:
		if st.Checked {
			return "⚡ turbo on"
		}
		return "⚡ turbo off"
	case overlay.NavSettings:
		return "⚙ settings"
	}
	return st.Button.String()
}

func (m Model) renderURL(ov overlayin.Overlay) string {
	style := lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(theme.Surface1)
	if ov.FocusArea() == overlay.AreaURL {
		style = style.BorderForeground(theme.Peach)
	}
	return style.Render(m.input.View())
}

func (m Model) renderGrid(ov overlayin.Overlay) string {
	list := ov.Tiles()
	if len(list) == 0 {
		return theme.Muted.Render("\nno pinned sites")
	}
	focused, hasFocus := ov.FocusedTile()
	first := ov.ScrollRow()
	last := min(overlay.Rows(len(list)), first+visibleRows)

	rows := make([]string, 0, visibleRows)
	for r := first; r < last; r++ {
		cells := make([]string, 0, overlay.GridColumns)
		for c := 0; c < overlay.GridColumns; c++ {
			i := r*overlay.GridColumns + c
			if i >= len(list) {
				break
			}
			cells = append(cells, m.renderTile(ov, list[i], hasFocus && i == focused))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	footer := theme.Muted.Render(fmt.Sprintf("rows %d-%d of %d  m: tile menu", first+1, last, overlay.Rows(len(list))))
	return lipgloss.JoinVertical(lipgloss.Left, append(rows, footer)...)
}

func (m Model) renderTile(ov overlayin.Overlay, t tiles.Tile, focused bool) string {
	style := theme.Tile
	if focused {
		style = theme.TileFocused
	}
	mark := " "
	if ov.HasThumbnail(t.ID) {
		mark = "▣"
	}
	title := truncate(t.Title, 14)
	host := truncate(urlutil.StripCommonPrefixes(t.URL), 16)
	return style.Render(mark + " " + title + "\n" + theme.Muted.Render(host))
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) overlay() (overlayin.Overlay, bool) {
	if m.screen == nil {
		return nil, false
	}
	ov := m.screen.Overlay()
	return ov, ov != nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
