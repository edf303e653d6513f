package service

import (
	"context"
	"log/slog"

	navigation "tvshell/internal/modules/navigation/domain"
	"tvshell/internal/modules/screen/domain"
	screenin "tvshell/internal/modules/screen/port/in"
	screenout "tvshell/internal/modules/screen/port/out"
	session "tvshell/internal/modules/session/domain"
	sessionin "tvshell/internal/modules/session/port/in"
)

type Deps struct {
	Sessions   sessionin.Store
	Browsers   screenout.BrowserFactory
	Host       screenout.Host
	Toolbar    screenout.Toolbar
	Onboarding screenout.OnboardingFlag
	Telemetry  screenout.Telemetry
}

// Controller picks the visible top-level screen from session changes and
// explicit requests. It runs on the UI context only.
type Controller struct {
	ctx  context.Context
	deps Deps

	state          domain.State
	browser        screenout.BrowserScreen
	toolbarURL     string
	pendingHome    bool
	onboardingDone bool
	stopObserving  func()
}

func NewController(ctx context.Context, deps Deps) *Controller {
	return &Controller{ctx: ctx, deps: deps}
}

var _ screenin.Controller = (*Controller)(nil)

func (c *Controller) State() domain.State { return c.state }

// Start shows onboarding when asked, then follows the session store.
func (c *Controller) Start(showOnboarding bool) {
	if showOnboarding && !c.onboardingDone {
		c.transition(domain.KindOnboarding)
	}
	if c.stopObserving == nil {
		c.stopObserving = c.deps.Sessions.Observe(c.OnSessions)
	}
}

func (c *Controller) Stop() {
	if c.stopObserving != nil {
		c.stopObserving()
		c.stopObserving = nil
	}
	c.unbind()
}

// OnSessions handles one store emission. An empty list asks for a fresh home
// session; the binding follows on the emission that session causes.
func (c *Controller) OnSessions(list []session.Session) {
	if len(list) == 0 {
		if c.pendingHome {
			return
		}
		c.pendingHome = true
		c.deps.Sessions.Create(session.HomeURL, session.SourceNone)
		return
	}
	c.pendingHome = false
	current, ok := c.deps.Sessions.Current()
	if !ok {
		current = list[len(list)-1]
	}
	if c.browser != nil && c.browser.SessionID() == current.ID {
		return
	}
	c.bind(current)
}

func (c *Controller) bind(s session.Session) {
	c.unbind()
	b := c.deps.Browsers(c.ctx, s)
	b.SetOnURLUpdate(c.onBrowserURL)
	b.SetOnProgress(func(p int) {
		if c.deps.Toolbar != nil {
			c.deps.Toolbar.SetProgress(p)
		}
	})
	c.browser = b
	c.state.SessionID = s.ID
	if c.deps.Telemetry != nil {
		c.deps.Telemetry.SessionStarted(s.ID, string(s.Source))
	}
	c.onBrowserURL(s.URL)

	switch c.state.Kind {
	case domain.KindOnboarding, domain.KindSettings:
		b.SetVisible(false)
	default:
		c.transition(domain.KindBrowser)
		b.SetVisible(true)
	}
}

func (c *Controller) unbind() {
	if c.browser == nil {
		return
	}
	old := c.browser
	c.browser = nil
	c.state.SessionID = ""
	if c.deps.Telemetry != nil {
		c.deps.Telemetry.SessionStopped(old.SessionID())
	}
	old.Close()
}

func (c *Controller) onBrowserURL(url string) {
	switch url {
	case "":
		return
	case session.HomeURL:
		c.toolbarURL = ""
	default:
		c.toolbarURL = url
	}
	if c.deps.Toolbar != nil {
		c.deps.Toolbar.SetURL(c.toolbarURL)
	}
}

func (c *Controller) transition(to domain.Kind) bool {
	if !domain.CanTransition(c.state.Kind, to) {
		slog.Debug("screen transition refused", "from", string(c.state.Kind), "to", string(to))
		return false
	}
	changed := c.state.Kind != to
	c.state.Kind = to
	if changed && c.deps.Host != nil {
		c.deps.Host.ScreenChanged(string(to))
	}
	return true
}

func (c *Controller) ShowSettings() {
	if c.state.Kind != domain.KindBrowser || !c.transition(domain.KindSettings) {
		return
	}
	if c.browser != nil {
		c.browser.SetVisible(false)
	}
}

func (c *Controller) DismissSettings() {
	if c.state.Kind != domain.KindSettings {
		return
	}
	c.showBrowser()
}

// CompleteOnboarding is one-shot; onboarding is never shown again by this
// controller.
func (c *Controller) CompleteOnboarding() {
	if c.state.Kind != domain.KindOnboarding {
		return
	}
	c.onboardingDone = true
	if c.deps.Onboarding != nil {
		if err := c.deps.Onboarding.MarkOnboardingShown(c.ctx); err != nil {
			slog.Warn("onboarding flag not saved", "error", err)
		}
	}
	c.showBrowser()
}

func (c *Controller) showBrowser() {
	if !c.transition(domain.KindBrowser) {
		return
	}
	if c.browser != nil {
		c.browser.SetVisible(true)
	}
}

// ShowBrowserFor opens url in a new session and brings the browser forward.
func (c *Controller) ShowBrowserFor(url string, source session.Source) {
	s := c.deps.Sessions.Create(url, source)
	if c.browser == nil || c.browser.SessionID() != s.ID {
		c.bind(s)
	}
	if c.state.Kind == domain.KindSettings {
		c.showBrowser()
	}
}

func (c *Controller) OnURLEntered(url string) {
	if b, ok := c.ActiveBrowser(); ok {
		b.HandleEvent(navigation.New(navigation.KindLoadURL, url, navigation.Origin{Surface: navigation.SurfaceToolbar}))
		return
	}
	c.ShowBrowserFor(url, session.SourceUserEntered)
}

// Back offers the request to the visible browser first. Unhandled requests
// close Settings or leave the host.
func (c *Controller) Back() {
	if b, ok := c.ActiveBrowser(); ok && b.OnBackPressed() {
		return
	}
	if c.state.Kind == domain.KindSettings {
		c.DismissSettings()
		return
	}
	if c.deps.Host != nil {
		c.deps.Host.Exit()
	}
}

func (c *Controller) ActiveBrowser() (screenout.BrowserScreen, bool) {
	if c.browser == nil || c.state.Kind != domain.KindBrowser || !c.browser.Visible() {
		return nil, false
	}
	return c.browser, true
}

func (c *Controller) FindByTag(tag string) (screenout.BrowserScreen, bool) {
	if c.browser == nil || c.browser.Tag() != tag {
		return nil, false
	}
	return c.browser, true
}

func (c *Controller) ToolbarURL() string { return c.toolbarURL }

func (c *Controller) ToolbarState() screenin.ToolbarStateProvider {
	return toolbarState{c: c}
}

type toolbarState struct {
	c *Controller
}

func (t toolbarState) bound() (screenout.BrowserScreen, bool) {
	return t.c.FindByTag(domain.BrowserTag)
}

func (t toolbarState) IsBackEnabled() bool {
	b, ok := t.bound()
	return ok && b.CanGoBack()
}

func (t toolbarState) IsForwardEnabled() bool {
	b, ok := t.bound()
	return ok && b.CanGoForward()
}

func (t toolbarState) CurrentURL() string {
	b, ok := t.bound()
	if !ok {
		return ""
	}
	return b.URL()
}

func (t toolbarState) IsURLPinned() bool {
	b, ok := t.bound()
	return ok && b.IsURLPinned()
}

func (t toolbarState) IsPinEnabled() bool {
	url := t.CurrentURL()
	return url != "" && url != session.HomeURL
}

func (t toolbarState) IsRefreshEnabled() bool {
	return t.IsPinEnabled()
}
