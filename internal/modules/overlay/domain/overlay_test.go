package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	autocomplete "tvshell/internal/modules/autocomplete/domain"
	"tvshell/internal/modules/overlay/domain"
	tiles "tvshell/internal/modules/tiles/domain"
)

func TestCommitCarriesCompletionCapturedBeforeSetText(t *testing.T) {
	t.Parallel()
	var f domain.URLField
	f.SetIndex(autocomplete.NewIndex([]string{"mozilla.org"}, nil))
	f.Focus()
	f.Type("m")
	f.Type("mo")
	require.Equal(t, "zilla.org", f.Suggestion())

	text, result, ok := f.Commit()
	require.True(t, ok)
	require.Equal(t, "mozilla.org", text)
	require.Equal(t, "mozilla.org", result.Text)
	require.True(t, f.Cached().Empty(), "setting the text clears the cache")
	require.Equal(t, "mozilla.org", f.Text())
}

func TestCommitWithoutCompletionKeepsTypedText(t *testing.T) {
	t.Parallel()
	var f domain.URLField
	f.Focus()
	f.Type("news today")
	text, result, ok := f.Commit()
	require.True(t, ok)
	require.Equal(t, "news today", text)
	require.True(t, result.Empty())

	f.SetText("   ")
	_, _, ok = f.Commit()
	require.False(t, ok)
}

func TestDeletingDoesNotComplete(t *testing.T) {
	t.Parallel()
	var f domain.URLField
	f.SetIndex(autocomplete.NewIndex([]string{"mozilla.org"}, nil))
	f.Focus()
	f.Type("moz")
	require.NotEmpty(t, f.Suggestion())
	f.Type("mo")
	require.Empty(t, f.Suggestion())
}

func TestUserChangedFlagGuardsDisplayURL(t *testing.T) {
	t.Parallel()
	var f domain.URLField
	f.SetDisplayURL("https://a.example/")
	require.Equal(t, "https://a.example/", f.Text())

	f.Focus()
	f.Type("b")
	f.SetDisplayURL("https://c.example/")
	require.Equal(t, "b", f.Text())

	f.Blur()
	require.False(t, f.UserChanged(), "losing focus ends the edit")
	f.SetDisplayURL("https://c.example/")
	require.Equal(t, "https://c.example/", f.Text())
}

func TestGridMoves(t *testing.T) {
	t.Parallel()
	g := domain.NewGrid(nil)
	n := 6
	require.True(t, g.Move(domain.Right, n))
	require.Equal(t, 1, g.Focus())
	require.True(t, g.Move(domain.Down, n))
	require.Equal(t, 5, g.Focus())
	require.True(t, g.Move(domain.Right, n))
	require.Equal(t, 5, g.Focus(), "no cell to the right")
	require.True(t, g.Move(domain.Up, n))
	require.Equal(t, 1, g.Focus())
	require.False(t, g.Move(domain.Up, n), "top row leaves the grid")

	g.SetFocus(2, n)
	require.True(t, g.Move(domain.Down, n))
	require.Equal(t, 5, g.Focus(), "short last row snaps to its last cell")

	g.SetFocus(10, n)
	require.Equal(t, 5, g.Focus())
	require.Equal(t, 2, domain.Rows(n))
}

func TestGridLongPressSlotIsRebindable(t *testing.T) {
	t.Parallel()
	g := domain.NewGrid(nil)
	require.False(t, g.LongPress(tiles.Tile{ID: "a"}))
	var got string
	g.SetOnLongPress(func(t tiles.Tile) { got = t.ID })
	require.True(t, g.LongPress(tiles.Tile{ID: "a"}))
	require.Equal(t, "a", got)
}
