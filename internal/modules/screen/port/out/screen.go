package out

import (
	"context"

	navigation "tvshell/internal/modules/navigation/domain"
	session "tvshell/internal/modules/session/domain"
)

// BrowserScreen is a browser view bound to one session.
type BrowserScreen interface {
	Tag() string
	SessionID() string
	HandleEvent(ev navigation.Event)
	Visible() bool
	SetVisible(visible bool)
	// OnBackPressed reports whether the screen consumed the back request.
	OnBackPressed() bool
	CanGoBack() bool
	CanGoForward() bool
	URL() string
	IsURLPinned() bool
	SetOnURLUpdate(fn func(url string))
	SetOnProgress(fn func(progress int))
	Close()
}

type BrowserFactory func(ctx context.Context, s session.Session) BrowserScreen

// Host owns the window the screens live in.
type Host interface {
	ScreenChanged(kind string)
	Exit()
}

type Toolbar interface {
	SetURL(url string)
	SetProgress(progress int)
}

type OnboardingFlag interface {
	MarkOnboardingShown(ctx context.Context) error
}

// Telemetry must not block.
type Telemetry interface {
	SessionStarted(sessionID string, source string)
	SessionStopped(sessionID string)
}
