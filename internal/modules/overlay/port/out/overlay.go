package out

import "context"

// ToolbarState is the pull-based view of the active browser.
type ToolbarState interface {
	IsBackEnabled() bool
	IsForwardEnabled() bool
	IsRefreshEnabled() bool
	IsPinEnabled() bool
	IsURLPinned() bool
	CurrentURL() string
}

type ToastBudget interface {
	TryConsumeUnpinToast(ctx context.Context) (bool, error)
}

type BlockingState interface {
	IsBlockingEnabled(ctx context.Context) bool
}

type ToastPresenter interface {
	ShowToast(text string)
}

// Telemetry must not block. Toggle states are the overlay's own at click time.
type Telemetry interface {
	OverlayClick(control string, turboChecked, pinChecked bool)
}
