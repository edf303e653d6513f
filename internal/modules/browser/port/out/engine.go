package out

import (
	"context"

	"tvshell/internal/modules/browser/domain"
)

// Engine renders one tab. Calls block and are made from a single worker
// goroutine; the listener may be invoked from any goroutine.
type Engine interface {
	Load(ctx context.Context, url string) error
	GoBack(ctx context.Context) error
	GoForward(ctx context.Context) error
	Reload(ctx context.Context) error
	SetBlockingEnabled(ctx context.Context, enabled bool) error
	Screenshot(ctx context.Context) ([]byte, error)
	SetListener(fn func(domain.PageState))
	Close() error
}

type EngineFactory func(ctx context.Context) (Engine, error)
