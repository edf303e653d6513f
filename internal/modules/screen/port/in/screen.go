package in

import (
	"tvshell/internal/modules/screen/domain"
	screenout "tvshell/internal/modules/screen/port/out"
	session "tvshell/internal/modules/session/domain"
)

// ToolbarStateProvider answers toolbar queries for the active browser, with
// disabled or empty defaults when none is bound.
type ToolbarStateProvider interface {
	IsBackEnabled() bool
	IsForwardEnabled() bool
	IsRefreshEnabled() bool
	IsPinEnabled() bool
	IsURLPinned() bool
	CurrentURL() string
}

type Controller interface {
	Start(showOnboarding bool)
	Stop()
	State() domain.State
	ShowSettings()
	DismissSettings()
	CompleteOnboarding()
	ShowBrowserFor(url string, source session.Source)
	OnURLEntered(url string)
	Back()
	ActiveBrowser() (screenout.BrowserScreen, bool)
	FindByTag(tag string) (screenout.BrowserScreen, bool)
	ToolbarState() ToolbarStateProvider
}
