package service_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tvshell/internal/modules/tiles/domain"
	"tvshell/internal/modules/tiles/service"
)

func TestCacheInsertRemove(t *testing.T) {
	t.Parallel()
	c := service.NewCache()
	a := domain.Tile{ID: "a", URL: "https://a.example/", Kind: domain.KindBundled}
	b := domain.Tile{ID: "b", URL: "https://b.example/", Kind: domain.KindCustom}

	require.True(t, c.Insert(a))
	require.True(t, c.Insert(b))
	require.False(t, c.Insert(a), "duplicate id")
	require.True(t, c.IsPinned("https://b.example/"))

	snapshot := c.Tiles()
	snapshot[0].ID = "mutated"
	require.Equal(t, []string{"a", "b"}, domain.IDs(c.Tiles()))

	require.False(t, c.Remove("zzz"))
	require.True(t, c.Remove("a"))
	require.Equal(t, []string{"b"}, domain.IDs(c.Tiles()))

	require.Error(t, c.Replace([]domain.Tile{b, b}))
	require.Equal(t, []string{"b"}, domain.IDs(c.Tiles()))
}
