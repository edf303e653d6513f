package app

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	browserin "tvshell/internal/modules/browser/port/in"
	intentdto "tvshell/internal/modules/intent/dto"
	intentin "tvshell/internal/modules/intent/port/in"
	navigation "tvshell/internal/modules/navigation/domain"
	navigationin "tvshell/internal/modules/navigation/port/in"
	overlay "tvshell/internal/modules/overlay/domain"
	screen "tvshell/internal/modules/screen/domain"
	screenin "tvshell/internal/modules/screen/port/in"
	"tvshell/internal/ui/components"
	"tvshell/internal/ui/theme"
	browserview "tvshell/internal/ui/views/browser"
	onboardingview "tvshell/internal/ui/views/onboarding"
	settingsview "tvshell/internal/ui/views/settings"
)

// ─── messages ────────────────────────────────────────────────────────────────

type startMsg struct{}

type openFailedMsg struct{ err error }

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Menu    key.Binding
	Back    key.Binding
	Select  key.Binding
	Move    key.Binding
	Tile    key.Binding
	Nav     key.Binding
	Palette key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Menu:    key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "home overlay")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Move:    key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("←↑↓→", "move focus")),
		Tile:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "tile menu")),
		Nav:     key.NewBinding(key.WithKeys("b", "f", "r"), key.WithHelp("b/f/r", "back/forward/reload")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "commands")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Menu, k.Back, k.Palette, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Menu, k.Back, k.Select, k.Move},
		{k.Tile, k.Nav},
		{k.Palette, k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

type Deps struct {
	Controller screenin.Controller
	Dispatcher navigationin.Dispatcher
	Settings   settingsview.Port
	Intent     intentin.Usecase
	Shell      *Shell

	ShowOnboarding bool
	// OpenURL is validated like any outside request once the shell is up.
	OpenURL string
}

// Model is the root Bubble Tea model and the host of the screen controller.
// Screen selection and browsing state live in the services; this model only
// forwards input and draws.
type Model struct {
	deps Deps

	browserView    browserview.Model
	settingsView   settingsview.Model
	onboardingView onboardingview.Model

	palette  components.Palette
	toast    components.Toast
	confirm  components.Confirm
	keys     keyMap
	help     help.Model
	showHelp bool
	lastKind screen.Kind
	width    int
	height   int
}

func NewModel(deps Deps) Model {
	return Model{
		deps:           deps,
		browserView:    browserview.New(),
		settingsView:   settingsview.New(deps.Settings),
		onboardingView: onboardingview.New(),
		palette:        components.NewPalette(),
		keys:           defaultKeys(),
		help:           help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return startMsg{} },
		m.browserView.Init(),
	)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	return m.settle(cmd)
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case postMsg:
		msg()
		return m, nil

	case startMsg:
		m.deps.Controller.Start(m.deps.ShowOnboarding)
		if m.deps.OpenURL != "" {
			return m, m.openCmd(m.deps.OpenURL)
		}
		return m, nil

	case openFailedMsg:
		cmd := m.toast.Show("cannot open: " + msg.err.Error())
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.palette.SetWidth(min(m.width-4, 80))
		m.propagateSize()
		return m, nil

	case components.ToastExpiredMsg:
		m.toast = m.toast.Update(msg)
		return m, nil

	case components.ConfirmMsg:
		if msg.OK {
			if s, ok := m.activeScreen(); ok {
				s.UnpinTile(msg.Key)
			}
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case onboardingview.DoneMsg:
		m.deps.Controller.CompleteOnboarding()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.browserView, cmd = m.browserView.Update(msg)
	cmds = append(cmds, cmd)
	m.settingsView, cmd = m.settingsView.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.confirm.Visible() {
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	}
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}
	if m.showHelp {
		if msg.String() == "?" || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.deps.Controller.State().Kind {
	case screen.KindOnboarding:
		m.onboardingView, cmd = m.onboardingView.Update(msg)
		return m, cmd

	case screen.KindSettings:
		switch msg.String() {
		case "esc", "backspace":
			m.deps.Controller.Back()
		case "q":
			return m, tea.Quit
		default:
			m.settingsView, cmd = m.settingsView.Update(msg)
		}
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		m.deps.Controller.Back()
		return m, nil
	case "ctrl+o":
		if s, ok := m.activeScreen(); ok {
			s.ToggleOverlay()
		}
		return m, nil
	}
	if m.browserView.Typing() {
		m.browserView, cmd = m.browserView.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.showHelp = true
		return m, nil
	case ":":
		cmd = m.palette.Open()
		return m, cmd
	}
	if m.browserView.OverlayVisible() {
		m.browserView, cmd = m.browserView.Update(msg)
		return m, cmd
	}
	switch msg.String() {
	case "b":
		m.dispatch(navigation.New(navigation.KindBack, "", m.origin()))
	case "f":
		m.dispatch(navigation.New(navigation.KindForward, "", m.origin()))
	case "r":
		m.dispatch(navigation.New(navigation.KindReload, "", m.origin()))
	}
	return m, nil
}

// settle runs after every message: it rebinds the browser view, follows screen
// changes and turns recorded shell effects into commands.
func (m Model) settle(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{cmd}

	s, _ := m.activeScreen()
	if s != nil {
		s.SetOnTileMenu(m.deps.Shell.OpenTileMenu)
	}
	m.browserView.Bind(s)
	m.browserView.Sync()

	kind := m.deps.Controller.State().Kind
	if kind != m.lastKind {
		m.lastKind = kind
		if kind == screen.KindSettings {
			cmds = append(cmds, m.settingsView.Reload())
		}
	}

	fx := m.deps.Shell.take()
	for _, text := range fx.toasts {
		cmds = append(cmds, m.toast.Show(text))
	}
	for _, tile := range fx.menu {
		m.confirm.Ask(tile.ID, "Remove "+theme.Hot.Render(tile.Title)+" from your pinned sites?")
	}
	if fx.exit {
		cmds = append(cmds, tea.Quit)
	}
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	kind := m.deps.Controller.State().Kind
	bar := m.deps.Shell.toolbar.View(m.width, string(kind))
	status := m.renderStatusBar()
	contentH := max(1, m.height-lipgloss.Height(bar)-lipgloss.Height(status))

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.confirm.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.confirm.View())
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView(kind)
	}
	return lipgloss.JoinVertical(lipgloss.Left, bar, content, status)
}

func (m Model) activeView(kind screen.Kind) string {
	switch kind {
	case screen.KindOnboarding:
		return m.onboardingView.View()
	case screen.KindSettings:
		return m.settingsView.View()
	default:
		return m.browserView.View()
	}
}

func (m Model) renderStatusBar() string {
	left := m.toast.View()
	right := theme.Muted.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, strings.Repeat(" ", gap), right)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	switch parts[0] {
	case "open":
		target := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		if target == "" {
			cmd := m.toast.Show("usage: open <url or search>")
			return m, cmd
		}
		m.deps.Controller.OnURLEntered(target)
	case "home":
		if s, ok := m.activeScreen(); ok && !s.Overlay().Visible() {
			s.ToggleOverlay()
		}
	case "back":
		m.dispatch(navigation.New(navigation.KindBack, "", m.origin()))
	case "forward":
		m.dispatch(navigation.New(navigation.KindForward, "", m.origin()))
	case "reload":
		m.dispatch(navigation.New(navigation.KindReload, "", m.origin()))
	case "pin", "unpin":
		m.dispatch(navigation.Toggle(navigation.KindPinAction, parts[0] == "pin", m.origin()))
	case "turbo":
		if len(parts) < 2 || (parts[1] != "on" && parts[1] != "off") {
			cmd := m.toast.Show("usage: turbo <on|off>")
			return m, cmd
		}
		m.setTurbo(parts[1] == "on")
	case "settings":
		m.dispatch(navigation.New(navigation.KindSettings, "", m.origin()))
	case "quit":
		return m, tea.Quit
	default:
		cmd := m.toast.Show("unknown command: " + parts[0])
		return m, cmd
	}
	return m, nil
}

// setTurbo goes through the overlay button so its checked state stays in
// step with the setting.
func (m Model) setTurbo(on bool) {
	s, ok := m.activeScreen()
	if !ok {
		return
	}
	ov := s.Overlay()
	for _, st := range ov.NavButtons() {
		if st.Button == overlay.NavTurbo && st.Checked != on {
			ov.ClickNav(overlay.NavTurbo)
		}
	}
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) activeScreen() (browserin.Screen, bool) {
	b, ok := m.deps.Controller.FindByTag(screen.BrowserTag)
	if !ok {
		return nil, false
	}
	s, ok := b.(browserin.Screen)
	return s, ok
}

func (m Model) origin() navigation.Origin {
	o := navigation.Origin{Surface: navigation.SurfaceKeys}
	o.PinChecked = m.deps.Controller.ToolbarState().IsURLPinned()
	if s, ok := m.activeScreen(); ok {
		for _, st := range s.Overlay().NavButtons() {
			if st.Button == overlay.NavTurbo {
				o.TurboChecked = st.Checked
			}
		}
	}
	return o
}

func (m Model) dispatch(ev navigation.Event) {
	m.deps.Dispatcher.OnEvent(ev)
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 2}
	m.browserView, _ = m.browserView.Update(sz)
	m.settingsView, _ = m.settingsView.Update(sz)
	m.onboardingView, _ = m.onboardingView.Update(sz)
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) openCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if m.deps.Intent == nil {
			return nil
		}
		_, err := m.deps.Intent.Open(context.Background(), intentdto.OpenInput{URL: url, Source: "view"})
		if err != nil {
			return openFailedMsg{err: err}
		}
		return nil
	}
}
