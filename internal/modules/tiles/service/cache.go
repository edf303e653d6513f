package service

import (
	"tvshell/internal/modules/tiles/domain"
	tilesin "tvshell/internal/modules/tiles/port/in"
)

type Cache struct {
	tiles []domain.Tile
}

func NewCache() *Cache {
	return &Cache{}
}

var _ tilesin.Cache = (*Cache)(nil)

func (c *Cache) Tiles() []domain.Tile {
	return append([]domain.Tile(nil), c.tiles...)
}

func (c *Cache) Replace(tiles []domain.Tile) error {
	if err := domain.ValidateSet(tiles); err != nil {
		return err
	}
	c.tiles = append([]domain.Tile(nil), tiles...)
	return nil
}

// Insert appends tile unless its id is already present.
func (c *Cache) Insert(tile domain.Tile) bool {
	if tile.Validate() != nil || domain.IndexOf(c.tiles, tile.ID) >= 0 {
		return false
	}
	c.tiles = append(c.tiles, tile)
	return true
}

// Remove is a no-op for unknown ids.
func (c *Cache) Remove(id string) bool {
	idx := domain.IndexOf(c.tiles, id)
	if idx < 0 {
		return false
	}
	c.tiles = append(c.tiles[:idx:idx], c.tiles[idx+1:]...)
	return true
}

func (c *Cache) FindByURL(url string) (domain.Tile, bool) {
	for _, t := range c.tiles {
		if t.URL == url {
			return t, true
		}
	}
	return domain.Tile{}, false
}

func (c *Cache) IsPinned(url string) bool {
	_, ok := c.FindByURL(url)
	return ok
}
