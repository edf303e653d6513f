package in

import (
	"context"

	"tvshell/internal/modules/tiles/domain"
	"tvshell/internal/modules/tiles/dto"
)

// Cache is the in-memory tile set shown by the home overlay. It is only
// touched from the UI scheduling context.
type Cache interface {
	Tiles() []domain.Tile
	Replace(tiles []domain.Tile) error
	Insert(tile domain.Tile) bool
	Remove(id string) bool
	FindByURL(url string) (domain.Tile, bool)
	IsPinned(url string) bool
}

// Usecase is the persisted side of the tile set. Calls may block and run on
// the worker context.
type Usecase interface {
	Load(ctx context.Context) ([]domain.Tile, error)
	Pin(ctx context.Context, input dto.PinInput) (domain.Tile, error)
	Unpin(ctx context.Context, id string) error
	UnpinURL(ctx context.Context, url string) (bool, error)
	Thumbnail(ctx context.Context, tile domain.Tile) ([]byte, error)
	List(ctx context.Context) ([]dto.TileOutput, error)
}
