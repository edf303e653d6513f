package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"tvshell/internal/modules/tiles/domain"
	"tvshell/internal/modules/tiles/dto"
	tilesin "tvshell/internal/modules/tiles/port/in"
	tilesout "tvshell/internal/modules/tiles/port/out"
	"tvshell/internal/platform/clock"
	apperrors "tvshell/internal/platform/errors"
	"tvshell/internal/platform/id"
	"tvshell/internal/platform/urlutil"
)

type TileService struct {
	store      tilesout.TileStore
	thumbnails tilesout.ThumbnailStore
	bundled    tilesout.BundledSource
	seed       tilesout.SeedMarker
	clock      clock.Clock
	ids        id.Generator
}

func NewTileService(store tilesout.TileStore, thumbnails tilesout.ThumbnailStore, bundled tilesout.BundledSource, seed tilesout.SeedMarker, clock clock.Clock, ids id.Generator) tilesin.Usecase {
	return &TileService{store: store, thumbnails: thumbnails, bundled: bundled, seed: seed, clock: clock, ids: ids}
}

// Load returns the persisted tile set, writing the bundled defaults the first
// time it runs against a store.
func (s *TileService) Load(ctx context.Context) ([]domain.Tile, error) {
	if s.bundled != nil && s.seed != nil && !s.seed.TilesSeeded(ctx) {
		if err := s.seedBundled(ctx); err != nil {
			return nil, err
		}
	}
	tiles, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tiles: %w", err)
	}
	if err := domain.ValidateSet(tiles); err != nil {
		return nil, fmt.Errorf("stored tiles: %w", err)
	}
	return tiles, nil
}

func (s *TileService) seedBundled(ctx context.Context) error {
	tiles, err := s.bundled.Bundled()
	if err != nil {
		return fmt.Errorf("load bundled tiles: %w", err)
	}
	for _, t := range tiles {
		_, found, err := s.store.FindByURL(ctx, t.URL)
		if err != nil {
			return err
		}
		if found {
			continue
		}
		t.PinnedAt = s.clock.Now().UTC()
		if err := s.store.Append(ctx, t); err != nil {
			return fmt.Errorf("seed tile %s: %w", t.ID, err)
		}
	}
	if err := s.seed.MarkTilesSeeded(ctx); err != nil {
		slog.Warn("tiles seeded but flag not saved", "error", err)
	}
	return nil
}

// Pin stores a custom tile for input.URL. Pinning a URL that is already
// pinned returns the existing tile.
func (s *TileService) Pin(ctx context.Context, input dto.PinInput) (domain.Tile, error) {
	url := strings.TrimSpace(input.URL)
	if url == "" {
		return domain.Tile{}, fmt.Errorf("%w: url is required", apperrors.ErrInvalidInput)
	}
	existing, found, err := s.store.FindByURL(ctx, url)
	if err != nil {
		return domain.Tile{}, err
	}
	if found {
		return existing, nil
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = urlutil.StripCommonPrefixes(url)
	}
	tile := domain.Tile{
		ID:       s.ids.New(),
		URL:      url,
		Title:    title,
		Kind:     domain.KindCustom,
		PinnedAt: s.clock.Now().UTC(),
	}
	if len(input.Screenshot) > 0 && s.thumbnails != nil {
		ref, err := s.thumbnails.Save(ctx, tile.ID, input.Screenshot)
		if err != nil {
			slog.Warn("thumbnail not saved", "tile", tile.ID, "error", err)
		} else {
			tile.Thumbnail = ref
		}
	}
	if err := s.store.Append(ctx, tile); err != nil {
		return domain.Tile{}, fmt.Errorf("pin %s: %w", url, err)
	}
	return tile, nil
}

// Unpin is a no-op for unknown ids.
func (s *TileService) Unpin(ctx context.Context, id string) error {
	tile, err := s.store.Get(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.remove(ctx, tile)
}

func (s *TileService) UnpinURL(ctx context.Context, url string) (bool, error) {
	tile, found, err := s.store.FindByURL(ctx, strings.TrimSpace(url))
	if err != nil || !found {
		return false, err
	}
	return true, s.remove(ctx, tile)
}

func (s *TileService) remove(ctx context.Context, tile domain.Tile) error {
	if err := s.store.Delete(ctx, tile.ID); err != nil {
		return fmt.Errorf("unpin %s: %w", tile.ID, err)
	}
	if tile.Thumbnail != "" && s.thumbnails != nil {
		if err := s.thumbnails.Delete(ctx, tile.Thumbnail); err != nil {
			slog.Warn("thumbnail not removed", "tile", tile.ID, "error", err)
		}
	}
	return nil
}

func (s *TileService) Thumbnail(ctx context.Context, tile domain.Tile) ([]byte, error) {
	if tile.Thumbnail == "" || s.thumbnails == nil {
		return nil, apperrors.ErrNotFound
	}
	return s.thumbnails.Load(ctx, tile.Thumbnail)
}

func (s *TileService) List(ctx context.Context) ([]dto.TileOutput, error) {
	tiles, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TileOutput, 0, len(tiles))
	for _, t := range tiles {
		out = append(out, dto.TileOutput{ID: t.ID, URL: t.URL, Title: t.Title, Kind: string(t.Kind), Thumbnail: t.Thumbnail})
	}
	return out, nil
}
