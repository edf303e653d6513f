package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	browserout "tvshell/internal/modules/browser/adapter/out"
	enginepkg "tvshell/internal/modules/browser/port/out"
	"tvshell/internal/modules/browser/service"
	navigation "tvshell/internal/modules/navigation/domain"
	overlay "tvshell/internal/modules/overlay/service"
	session "tvshell/internal/modules/session/domain"
	sessionservice "tvshell/internal/modules/session/service"
	tilesout "tvshell/internal/modules/tiles/adapter/out"
	tiles "tvshell/internal/modules/tiles/domain"
	tilesservice "tvshell/internal/modules/tiles/service"
	"tvshell/internal/platform/clock"
	"tvshell/internal/platform/id"
	"tvshell/internal/platform/mainloop"
)

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("s%d", s.n)
}

type fixture struct {
	q        *mainloop.Queue
	sessions *sessionservice.SessionStore
	cache    *tilesservice.Cache
	store    *tilesout.MemoryTileStore
	engine   *browserout.HistoryEngine
	deps     service.Deps
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		q:        mainloop.NewQueue(),
		sessions: sessionservice.NewSessionStore(clock.Fixed(time.Unix(0, 0)), &seqID{}),
		cache:    tilesservice.NewCache(),
		store:    tilesout.NewMemoryTileStore(),
		engine:   browserout.NewHistoryEngine(),
	}
	usecase := tilesservice.NewTileService(f.store, tilesout.NewFileThumbnailStore(t.TempDir()), nil, nil, clock.SystemClock{}, id.ULID{})
	f.deps = service.Deps{
		Engines:        func(context.Context) (enginepkg.Engine, error) { return f.engine, nil },
		Sessions:       f.sessions,
		Cache:          f.cache,
		Tiles:          usecase,
		Overlays:       overlay.NewFactory(overlay.Deps{Cache: f.cache, Tiles: usecase, Poster: f.q}),
		Poster:         f.q,
		SearchTemplate: "https://search.example/?q=%s",
	}
	return f
}

func (f *fixture) pump(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		f.q.Drain()
		if cond() {
			return
		}
		select {
		case <-f.q.Ready():
		case <-deadline:
			require.FailNow(t, "condition not reached")
		}
	}
}

func (f *fixture) open(t *testing.T, url string) *service.Screen {
	t.Helper()
	s := f.sessions.Create(url, session.SourceUserEntered)
	b := service.New(context.Background(), f.deps, s)
	b.SetVisible(true)
	t.Cleanup(b.Close)
	return b
}

func load(url string) navigation.Event {
	return navigation.New(navigation.KindLoadURL, url, navigation.Origin{})
}

func TestHomeScreenShowsOverlayAndDoesNotHandleBack(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	b := f.open(t, session.HomeURL)
	require.True(t, b.Overlay().Visible())
	require.False(t, b.OnBackPressed())

	b.ToggleOverlay()
	require.True(t, b.Overlay().Visible(), "overlay stays on the home page")
}

func TestLoadMirrorsURLIntoSessionAndToolbar(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	b := f.open(t, session.HomeURL)
	var urls []string
	b.SetOnURLUpdate(func(u string) { urls = append(urls, u) })

	b.HandleEvent(load("mozilla.org"))
	require.False(t, b.Overlay().Visible())
	f.pump(t, func() bool { return b.Page().Progress == 100 })

	require.Equal(t, "http://mozilla.org", b.URL())
	cur, _ := f.sessions.Current()
	require.Equal(t, "http://mozilla.org", cur.URL)
	require.Equal(t, 100, cur.Progress)
	require.Contains(t, urls, "http://mozilla.org")

	b.HandleEvent(load("cats in hats"))
	f.pump(t, func() bool { return b.CanGoBack() })
	require.Equal(t, "https://search.example/?q=cats+in+hats", b.URL())

	b.HandleEvent(load("javascript:alert(1)"))
	f.q.Drain()
	require.Equal(t, "https://search.example/?q=cats+in+hats", b.URL())
}

func TestAbandonedEditDoesNotHideLoadedURL(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	b := f.open(t, session.HomeURL)
	b.Overlay().TypeURL("foo")

	b.HandleEvent(navigation.New(navigation.KindLoadTile, "https://tile.example/", navigation.Origin{}))
	f.pump(t, func() bool { return b.URL() == "https://tile.example/" && b.Page().Progress == 100 })

	b.ToggleOverlay()
	require.True(t, b.Overlay().Visible())
	field := b.Overlay().URLField()
	require.False(t, field.UserChanged())
	require.Equal(t, "https://tile.example/", field.Text())
}

func TestBackHidesOverlayThenWalksHistory(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	b := f.open(t, "https://a.example/")
	f.pump(t, func() bool { return b.Page().Progress == 100 })
	b.HandleEvent(load("https://b.example/"))
	f.pump(t, func() bool { return b.URL() == "https://b.example/" && b.Page().Progress == 100 })

	b.ToggleOverlay()
	require.True(t, b.Overlay().Visible())
	require.True(t, b.OnBackPressed())
	require.False(t, b.Overlay().Visible())

	require.True(t, b.OnBackPressed())
	f.pump(t, func() bool { return b.URL() == "https://a.example/" })
	require.False(t, b.CanGoBack())
	require.True(t, b.CanGoForward())
	require.False(t, b.OnBackPressed())
}

func TestPinAndUnpinCurrentPage(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	b := f.open(t, "https://pin.example/")
	f.pump(t, func() bool { return b.Page().Progress == 100 })

	b.HandleEvent(navigation.Toggle(navigation.KindPinAction, true, navigation.Origin{}))
	f.pump(t, b.IsURLPinned)
	require.Equal(t, tiles.IDs(f.cache.Tiles()), tiles.IDs(b.Overlay().Tiles()))
	stored, _, err := f.store.FindByURL(context.Background(), "https://pin.example/")
	require.NoError(t, err)
	require.NotEmpty(t, stored.Thumbnail)

	b.HandleEvent(navigation.Toggle(navigation.KindPinAction, false, navigation.Origin{}))
	require.False(t, b.IsURLPinned())
	require.Empty(t, b.Overlay().Tiles())
	require.Eventually(t, func() bool {
		_, found, _ := f.store.FindByURL(context.Background(), "https://pin.example/")
		return !found
	}, 2*time.Second, 10*time.Millisecond)
}

func TestTurboAppliesBlockingToEngine(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	b := f.open(t, "https://a.example/")
	f.pump(t, func() bool { return b.Page().Progress == 100 })

	b.HandleEvent(navigation.Toggle(navigation.KindTurbo, false, navigation.Origin{}))
	require.Eventually(t, func() bool { return !f.engine.BlockingEnabled() }, 2*time.Second, 10*time.Millisecond)
}

func TestClosedScreenIgnoresLateResults(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	b := f.open(t, session.HomeURL)
	b.HandleEvent(load("https://late.example/"))
	b.Close()
	f.q.Drain()
	require.False(t, b.Visible())
	b.HandleEvent(load("https://later.example/"))
	require.NotEqual(t, "https://later.example/", b.URL())
}
