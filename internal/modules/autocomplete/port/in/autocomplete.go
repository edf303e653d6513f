package in

import (
	"context"

	"tvshell/internal/modules/autocomplete/domain"
)

// IndexBuilder builds a completion index. Build may block and is meant for
// the worker context.
type IndexBuilder interface {
	Build(ctx context.Context, customURLs []string) (*domain.Index, error)
}
