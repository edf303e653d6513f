package out

import (
	"context"

	"tvshell/internal/modules/tiles/domain"
)

type TileStore interface {
	List(ctx context.Context) ([]domain.Tile, error)
	Get(ctx context.Context, id string) (domain.Tile, error)
	FindByURL(ctx context.Context, url string) (domain.Tile, bool, error)
	Append(ctx context.Context, tile domain.Tile) error
	Delete(ctx context.Context, id string) error
}

type ThumbnailStore interface {
	Save(ctx context.Context, tileID string, png []byte) (string, error)
	Load(ctx context.Context, ref string) ([]byte, error)
	Delete(ctx context.Context, ref string) error
}

// BundledSource yields the default tiles shipped with the shell.
type BundledSource interface {
	Bundled() ([]domain.Tile, error)
}

// SeedMarker remembers whether the bundled tiles were already written, so a
// user who unpins them does not get them back on next start.
type SeedMarker interface {
	TilesSeeded(ctx context.Context) bool
	MarkTilesSeeded(ctx context.Context) error
}
