package out

import (
	"context"
	"fmt"
	"sync"

	"tvshell/internal/modules/tiles/domain"
	tilesout "tvshell/internal/modules/tiles/port/out"
	apperrors "tvshell/internal/platform/errors"
)

// MemoryTileStore backs ephemeral runs and tests.
type MemoryTileStore struct {
	mu    sync.Mutex
	tiles []domain.Tile
}

func NewMemoryTileStore() *MemoryTileStore {
	return &MemoryTileStore{}
}

var _ tilesout.TileStore = (*MemoryTileStore)(nil)

func (s *MemoryTileStore) List(context.Context) ([]domain.Tile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Tile(nil), s.tiles...), nil
}

func (s *MemoryTileStore) Get(_ context.Context, id string) (domain.Tile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := domain.IndexOf(s.tiles, id); idx >= 0 {
		return s.tiles[idx], nil
	}
	return domain.Tile{}, fmt.Errorf("%w: tile %s", apperrors.ErrNotFound, id)
}

func (s *MemoryTileStore) FindByURL(_ context.Context, url string) (domain.Tile, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tiles {
		if t.URL == url {
			return t, true, nil
		}
	}
	return domain.Tile{}, false, nil
}

func (s *MemoryTileStore) Append(_ context.Context, tile domain.Tile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tiles {
		if t.ID == tile.ID || t.URL == tile.URL {
			return fmt.Errorf("%w: tile %s already stored", apperrors.ErrInvalidInput, tile.ID)
		}
	}
	s.tiles = append(s.tiles, tile)
	return nil
}

func (s *MemoryTileStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := domain.IndexOf(s.tiles, id); idx >= 0 {
		s.tiles = append(s.tiles[:idx], s.tiles[idx+1:]...)
	}
	return nil
}
