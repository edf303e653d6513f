package out

import "context"

// KeyValueStore is the persisted preference store. Every call may fail.
type KeyValueStore interface {
	GetBool(ctx context.Context, key string) (value bool, found bool, err error)
	SetBool(ctx context.Context, key string, value bool) error
	GetInt(ctx context.Context, key string) (value int, found bool, err error)
	SetInt(ctx context.Context, key string, value int) error
	// UpdateInt reads key (0 when absent), calls fn, and writes next when
	// write is true, all as one atomic step. It returns the stored value.
	UpdateInt(ctx context.Context, key string, fn func(current int) (next int, write bool)) (int, error)
}
