package service

import (
	"context"
	"log/slog"

	"tvshell/internal/modules/navigation/domain"
	navigationin "tvshell/internal/modules/navigation/port/in"
	navigationout "tvshell/internal/modules/navigation/port/out"
)

type Bus struct {
	router    navigationout.Router
	blocking  navigationout.BlockingSetting
	telemetry navigationout.Telemetry
}

func NewBus(router navigationout.Router, blocking navigationout.BlockingSetting, telemetry navigationout.Telemetry) *Bus {
	return &Bus{router: router, blocking: blocking, telemetry: telemetry}
}

var _ navigationin.Dispatcher = (*Bus)(nil)

// OnEvent routes ev: SETTINGS goes to the router only; TURBO is persisted and
// then forwarded like everything else to the visible browser. Nothing here
// panics into the caller.
func (b *Bus) OnEvent(ev domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("navigation dispatch panicked", "event", ev.String(), "panic", r)
		}
	}()
	b.report(ev)

	if ev.Kind == domain.KindSettings {
		b.router.ShowSettings()
		return
	}
	if ev.Kind == domain.KindTurbo && b.blocking != nil {
		if err := b.blocking.SetBlockingEnabled(context.Background(), ev.Checked()); err != nil {
			slog.Warn("blocking setting not saved", "error", err)
		}
	}
	handler, ok := b.router.ActiveBrowser()
	if !ok || handler == nil {
		slog.Debug("navigation event dropped, no visible browser", "event", ev.String())
		return
	}
	handler.HandleEvent(ev)
}

func (b *Bus) report(ev domain.Event) {
	if b.telemetry == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("telemetry panicked", "panic", r)
		}
	}()
	b.telemetry.NavigationEvent(ev)
}
