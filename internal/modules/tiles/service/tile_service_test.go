package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	tilesout "tvshell/internal/modules/tiles/adapter/out"
	"tvshell/internal/modules/tiles/domain"
	"tvshell/internal/modules/tiles/dto"
	"tvshell/internal/modules/tiles/service"
	"tvshell/internal/platform/clock"
	"tvshell/internal/platform/id"
	"tvshell/internal/platform/sqlitedb"
)

type seedFlag struct {
	seeded bool
	marks  int
}

func (f *seedFlag) TilesSeeded(context.Context) bool { return f.seeded }

func (f *seedFlag) MarkTilesSeeded(context.Context) error {
	f.seeded = true
	f.marks++
	return nil
}

const twoBundled = `
- id: one
  url: https://one.example/
  title: One
- id: two
  url: https://two.example/
  title: Two
`

var fixedNow = clock.Fixed(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

func TestLoadSeedsBundledTilesOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := tilesout.NewMemoryTileStore()
	seed := &seedFlag{}
	svc := service.NewTileService(store, nil, tilesout.NewYAMLBundledSource([]byte(twoBundled)), seed, fixedNow, id.ULID{})

	tiles, err := svc.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"one", "two"}, domain.IDs(tiles))
	require.Equal(t, 1, seed.marks)

	require.NoError(t, svc.Unpin(ctx, "one"))
	tiles, err = svc.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"two"}, domain.IDs(tiles), "unpinned bundled tile must not come back")
	require.Equal(t, 1, seed.marks)
}

func TestPinStoresThumbnailAndIsIdempotentPerURL(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	thumbs := tilesout.NewFileThumbnailStore(t.TempDir())
	svc := service.NewTileService(tilesout.NewMemoryTileStore(), thumbs, nil, nil, fixedNow, id.ULID{})

	first, err := svc.Pin(ctx, dto.PinInput{URL: "https://www.example.com/page", Screenshot: []byte("png")})
	require.NoError(t, err)
	require.Equal(t, domain.KindCustom, first.Kind)
	require.Equal(t, "example.com/page", first.Title)
	require.NotEmpty(t, first.Thumbnail)

	data, err := svc.Thumbnail(ctx, first)
	require.NoError(t, err)
	require.Equal(t, []byte("png"), data)

	again, err := svc.Pin(ctx, dto.PinInput{URL: "https://www.example.com/page"})
	require.NoError(t, err)
	require.Equal(t, first.ID, again.ID)

	removed, err := svc.UnpinURL(ctx, first.URL)
	require.NoError(t, err)
	require.True(t, removed)
	_, err = svc.Thumbnail(ctx, first)
	require.Error(t, err)

	require.NoError(t, svc.Unpin(ctx, "missing"), "unknown ids are ignored")
}

func TestPinRejectsEmptyURL(t *testing.T) {
	t.Parallel()
	svc := service.NewTileService(tilesout.NewMemoryTileStore(), nil, nil, nil, fixedNow, id.ULID{})
	_, err := svc.Pin(context.Background(), dto.PinInput{URL: "  "})
	require.Error(t, err)
}

func TestSQLiteTileStoreKeepsOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db, err := sqlitedb.Open(filepath.Join(t.TempDir(), "tiles.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	seed := &seedFlag{}
	svc := service.NewTileService(tilesout.NewSQLiteTileStore(db), nil, tilesout.NewYAMLBundledSource([]byte(twoBundled)), seed, fixedNow, id.ULID{})
	_, err = svc.Load(ctx)
	require.NoError(t, err)
	pinned, err := svc.Pin(ctx, dto.PinInput{URL: "https://three.example/", Title: "Three"})
	require.NoError(t, err)

	tiles, err := svc.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"one", "two", pinned.ID}, domain.IDs(tiles))
	require.True(t, tiles[2].PinnedAt.Equal(time.Time(fixedNow)))
}
