package service_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	autocomplete "tvshell/internal/modules/autocomplete/domain"
	navigation "tvshell/internal/modules/navigation/domain"
	"tvshell/internal/modules/overlay/domain"
	"tvshell/internal/modules/overlay/service"
	settingsout "tvshell/internal/modules/settings/adapter/out"
	settingsdomain "tvshell/internal/modules/settings/domain"
	settings "tvshell/internal/modules/settings/service"
	tiles "tvshell/internal/modules/tiles/domain"
	tilesservice "tvshell/internal/modules/tiles/service"
	"tvshell/internal/platform/mainloop"
)

type events struct{ got []navigation.Event }

func (e *events) OnEvent(ev navigation.Event) { e.got = append(e.got, ev) }

type toasts struct{ shown int }

func (t *toasts) ShowToast(string) { t.shown++ }

type click struct {
	control      string
	turboChecked bool
	pinned       bool
}

type clicks struct{ got []click }

func (c *clicks) OverlayClick(control string, turboChecked, pinChecked bool) {
	c.got = append(c.got, click{control, turboChecked, pinChecked})
}

type pinnedState struct{ pinned bool }

func (pinnedState) IsBackEnabled() bool    { return true }
func (pinnedState) IsForwardEnabled() bool { return false }
func (pinnedState) IsRefreshEnabled() bool { return true }
func (pinnedState) IsPinEnabled() bool     { return true }
func (s pinnedState) IsURLPinned() bool    { return s.pinned }
func (pinnedState) CurrentURL() string     { return "https://a.example/" }

func tile(id string) tiles.Tile {
	return tiles.Tile{ID: id, URL: "https://" + id + ".example/", Title: id, Kind: tiles.KindCustom}
}

func newCache(t *testing.T, ids ...string) *tilesservice.Cache {
	t.Helper()
	c := tilesservice.NewCache()
	for _, id := range ids {
		require.True(t, c.Insert(tile(id)))
	}
	return c
}

func drainUntil(t *testing.T, q *mainloop.Queue, cond func() bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		q.Drain()
		if cond() {
			return
		}
		select {
		case <-q.Ready():
		case <-deadline:
			require.FailNow(t, "condition not reached")
		}
	}
}

func TestToastFiresOnceWithCounterAtTwo(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := settingsout.NewMemoryKeyValueStore()
	require.NoError(t, kv.SetInt(ctx, settingsdomain.KeyUnpinToastCounter, 2))
	budget := settings.NewSettingsService(kv)
	shown := &toasts{}
	q := mainloop.NewQueue()
	deps := service.Deps{Cache: newCache(t, "a", "b", "c"), Budget: budget, Presenter: shown, Poster: q}

	first := service.New(ctx, deps, nil)
	first.Start()
	for i := 0; i < 4; i++ {
		first.FocusTile(i % 3)
	}
	require.Zero(t, shown.shown, "the counter is updated off the UI context")
	drainUntil(t, q, func() bool { return shown.shown == 1 })
	counter, _, err := kv.GetInt(ctx, settingsdomain.KeyUnpinToastCounter)
	require.NoError(t, err)
	require.Equal(t, 3, counter)
	first.Teardown()

	second := service.New(ctx, deps, nil)
	second.Start()
	second.FocusTile(0)
	second.Move(domain.Right)
	second.Teardown()
	q.Drain()
	require.Equal(t, 1, shown.shown, "budget is spent for future overlays")
	counter, _, _ = kv.GetInt(ctx, settingsdomain.KeyUnpinToastCounter)
	require.Equal(t, 3, counter)
}

func TestDisplayedTilesTrackCache(t *testing.T) {
	t.Parallel()
	cache := newCache(t, "a", "b")
	o := service.New(context.Background(), service.Deps{Cache: cache, Poster: mainloop.NewQueue()}, nil)
	o.Start()
	o.FocusTile(1)

	same := func() {
		t.Helper()
		require.Equal(t, tiles.IDs(cache.Tiles()), tiles.IDs(o.Tiles()))
	}

	require.True(t, cache.Insert(tile("c")))
	o.RefreshTilesForInsertion()
	same()
	idx, ok := o.FocusedTile()
	require.True(t, ok)
	require.Equal(t, "b", o.Tiles()[idx].ID, "focus stays on the same tile")

	require.True(t, cache.Insert(tile("d")))
	require.True(t, cache.Insert(tile("e")))
	o.RefreshTilesForInsertion()
	same()

	o.RemovePinnedSiteFromTiles("a")
	same()
	idx, _ = o.FocusedTile()
	require.Equal(t, "b", o.Tiles()[idx].ID)

	o.RemovePinnedSiteFromTiles("nope")
	same()
	for _, id := range []string{"b", "c", "d", "e"} {
		o.RemovePinnedSiteFromTiles(id)
		same()
	}
	require.Equal(t, domain.AreaURL, o.FocusArea())
}

func TestCommitEmitsOneLoadURLWithCachedCompletion(t *testing.T) {
	t.Parallel()
	sink := &events{}
	o := service.New(context.Background(), service.Deps{Dispatcher: sink, Poster: mainloop.NewQueue()}, pinnedState{})
	o.Start()
	o.URLField().SetIndex(autocomplete.NewIndex([]string{"wikipedia.org"}, nil))
	o.SetVisible(true)
	o.TypeURL("w")
	o.TypeURL("wi")
	o.CommitURL()

	require.Len(t, sink.got, 1)
	ev := sink.got[0]
	require.Equal(t, navigation.KindLoadURL, ev.Kind)
	require.Equal(t, "wikipedia.org", ev.Value)
	require.NotNil(t, ev.Autocomplete)
	require.Equal(t, "wikipedia.org", ev.Autocomplete.Text)
	require.Equal(t, navigation.SurfaceOverlay, ev.Origin.Surface)

	o.URLField().SetText("")
	o.CommitURL()
	require.Len(t, sink.got, 1, "blank input is ignored")
}

func TestVisibilityListenerRunsFirst(t *testing.T) {
	t.Parallel()
	o := service.New(context.Background(), service.Deps{Cache: newCache(t, "a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m", "n"), Poster: mainloop.NewQueue()}, nil)
	o.Start()
	o.FocusTile(13)
	require.Positive(t, o.ScrollRow())

	var seenVisible []bool
	o.SetOnPreVisibilityChange(func(visible bool) {
		require.NotEqual(t, visible, o.Visible(), "listener runs before the change")
		seenVisible = append(seenVisible, visible)
	})
	o.SetVisible(true)
	require.Equal(t, 0, o.ScrollRow())
	require.Equal(t, domain.AreaURL, o.FocusArea())
	require.True(t, o.URLField().Focused())
	o.SetVisible(false)
	require.Equal(t, []bool{true, false}, seenVisible)
}

func TestLongPressSlotSurvivesGridRebuild(t *testing.T) {
	t.Parallel()
	o := service.New(context.Background(), service.Deps{Cache: newCache(t, "a"), Poster: mainloop.NewQueue()}, nil)
	var pressed []string
	o.SetOnTileLongPress(func(t tiles.Tile) { pressed = append(pressed, t.ID) })
	o.Start()
	o.FocusTile(0)
	o.LongPressFocused()
	require.Equal(t, []string{"a"}, pressed)
}

func TestNavButtonsCarryToggleStates(t *testing.T) {
	t.Parallel()
	sink := &events{}
	recorded := &clicks{}
	o := service.New(context.Background(), service.Deps{Dispatcher: sink, Telemetry: recorded, Poster: mainloop.NewQueue()}, pinnedState{pinned: true})
	o.Start()

	o.ClickNav(domain.NavForward)
	require.Empty(t, sink.got, "disabled buttons do nothing")

	o.ClickNav(domain.NavPin)
	o.ClickNav(domain.NavTurbo)
	o.ClickNav(domain.NavSettings)
	require.Len(t, sink.got, 3)
	require.Equal(t, "PIN_ACTION(unchecked)", sink.got[0].String())
	require.False(t, sink.got[0].Origin.PinChecked)
	require.Equal(t, "TURBO(checked)", sink.got[1].String())
	require.True(t, sink.got[1].Origin.TurboChecked)
	require.Equal(t, navigation.KindSettings, sink.got[2].Kind)

	require.Equal(t, []click{
		{control: domain.NavPin.String(), turboChecked: false, pinned: true},
		{control: domain.NavTurbo.String(), turboChecked: false, pinned: true},
		{control: domain.NavSettings.String(), turboChecked: true, pinned: true},
	}, recorded.got)
}

type blockingBuilder struct {
	started   chan struct{}
	cancelled atomic.Bool
}

func (b *blockingBuilder) Build(ctx context.Context, _ []string) (*autocomplete.Index, error) {
	close(b.started)
	<-ctx.Done()
	b.cancelled.Store(true)
	return autocomplete.NewIndex([]string{"late.example"}, nil), nil
}

func TestTeardownCancelsBackgroundWork(t *testing.T) {
	t.Parallel()
	q := mainloop.NewQueue()
	builder := &blockingBuilder{started: make(chan struct{})}
	o := service.New(context.Background(), service.Deps{Index: builder, Poster: q}, nil)
	o.Start()

	select {
	case <-builder.started:
	case <-time.After(2 * time.Second):
		require.FailNow(t, "index build did not start")
	}
	o.Teardown()
	o.Teardown()

	require.Eventually(t, builder.cancelled.Load, 2*time.Second, 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	q.Drain()
	require.False(t, o.URLField().HasIndex(), "results after teardown are discarded")
}

func TestIndexBuiltInBackgroundIsApplied(t *testing.T) {
	t.Parallel()
	q := mainloop.NewQueue()
	o := service.New(context.Background(), service.Deps{Index: staticBuilder{}, Poster: q}, nil)
	o.Start()

	deadline := time.After(2 * time.Second)
	for !o.URLField().HasIndex() {
		select {
		case <-q.Ready():
			q.Drain()
		case <-deadline:
			require.FailNow(t, "index never applied")
		}
	}
}

type staticBuilder struct{}

func (staticBuilder) Build(context.Context, []string) (*autocomplete.Index, error) {
	return autocomplete.NewIndex([]string{"mozilla.org"}, nil), nil
}
