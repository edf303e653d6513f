package out

import (
	"context"

	"tvshell/internal/modules/navigation/domain"
)

// Handler is a screen that consumes navigation events.
type Handler interface {
	HandleEvent(ev domain.Event)
}

type Router interface {
	ShowSettings()
	// ActiveBrowser returns the visible Browser screen, if any.
	ActiveBrowser() (Handler, bool)
}

type BlockingSetting interface {
	SetBlockingEnabled(ctx context.Context, enabled bool) error
}

// Telemetry must not block.
type Telemetry interface {
	NavigationEvent(ev domain.Event)
}
