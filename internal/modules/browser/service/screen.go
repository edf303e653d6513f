package service

import (
	"context"
	"log/slog"
	"sync"

	"tvshell/internal/modules/browser/domain"
	browserin "tvshell/internal/modules/browser/port/in"
	browserout "tvshell/internal/modules/browser/port/out"
	navigation "tvshell/internal/modules/navigation/domain"
	overlayin "tvshell/internal/modules/overlay/port/in"
	screen "tvshell/internal/modules/screen/domain"
	screenout "tvshell/internal/modules/screen/port/out"
	session "tvshell/internal/modules/session/domain"
	sessionin "tvshell/internal/modules/session/port/in"
	tiles "tvshell/internal/modules/tiles/domain"
	"tvshell/internal/modules/tiles/dto"
	tilesin "tvshell/internal/modules/tiles/port/in"
	"tvshell/internal/platform/mainloop"
	"tvshell/internal/platform/scope"
	"tvshell/internal/platform/urlutil"
)

type Deps struct {
	Engines        browserout.EngineFactory
	Sessions       sessionin.Store
	Cache          tilesin.Cache
	Tiles          tilesin.Usecase
	Overlays       overlayin.Factory
	Poster         mainloop.Poster
	SearchTemplate string
}

// op runs on the screen's engine worker. A non-nil apply is run back on the
// UI context.
type op func(ctx context.Context, e browserout.Engine) (apply func(), err error)

// Screen is the browser view bound to one session. It hosts one overlay and
// one engine tab.
type Screen struct {
	deps      Deps
	scope     *scope.Scope
	sessionID string

	page       domain.PageState
	overlay    overlayin.Overlay
	visible    bool
	closed     bool
	onURL      func(string)
	onProgress func(int)
	onTileMenu func(tiles.Tile)

	mu   sync.Mutex
	ops  []op
	wake chan struct{}
}

func NewFactory(deps Deps) screenout.BrowserFactory {
	return func(ctx context.Context, s session.Session) screenout.BrowserScreen {
		return New(ctx, deps, s)
	}
}

func New(ctx context.Context, deps Deps, s session.Session) *Screen {
	b := &Screen{
		deps:      deps,
		scope:     scope.New(ctx, deps.Poster),
		sessionID: s.ID,
		wake:      make(chan struct{}, 1),
	}
	start := ""
	if !s.IsHome() {
		start = urlutil.Normalize(s.URL, deps.SearchTemplate)
		if urlutil.IsBlockedScheme(start) {
			start = ""
		}
		b.page.URL = start
	}
	b.overlay = deps.Overlays(b.scope.Context(), overlayState{b: b})
	b.overlay.SetOnTileLongPress(b.tileLongPressed)
	b.overlay.SetOnPreVisibilityChange(func(visible bool) {
		if visible {
			b.overlay.SetDisplayURL(displayURL(b.page.URL))
		}
	})
	b.overlay.Start()
	b.startWorker()
	if start == "" {
		b.overlay.SetVisible(true)
	} else {
		b.enqueueLoad(start)
	}
	return b
}

var (
	_ screenout.BrowserScreen = (*Screen)(nil)
	_ browserin.Screen        = (*Screen)(nil)
)

func (b *Screen) Tag() string                       { return screen.BrowserTag }
func (b *Screen) SessionID() string                 { return b.sessionID }
func (b *Screen) Page() domain.PageState            { return b.page }
func (b *Screen) Overlay() overlayin.Overlay        { return b.overlay }
func (b *Screen) Visible() bool                     { return b.visible && !b.closed }
func (b *Screen) SetVisible(visible bool)           { b.visible = visible }
func (b *Screen) CanGoBack() bool                   { return b.page.CanGoBack }
func (b *Screen) CanGoForward() bool                { return b.page.CanGoForward }
func (b *Screen) URL() string                       { return b.page.URL }
func (b *Screen) SetOnURLUpdate(fn func(string))    { b.onURL = fn }
func (b *Screen) SetOnProgress(fn func(int))        { b.onProgress = fn }
func (b *Screen) SetOnTileMenu(fn func(tiles.Tile)) { b.onTileMenu = fn }

func (b *Screen) IsURLPinned() bool {
	return b.deps.Cache != nil && b.page.URL != "" && b.deps.Cache.IsPinned(b.page.URL)
}

func (b *Screen) isHome() bool {
	return b.page.URL == "" || b.page.URL == session.HomeURL
}

// Close tears the overlay down and stops the engine worker. Results still in
// flight are dropped.
func (b *Screen) Close() {
	if b.closed {
		return
	}
	b.closed = true
	b.overlay.Teardown()
	b.scope.Cancel()
}

// ─── events ─────────────────────────────────────────────────────────────────

func (b *Screen) HandleEvent(ev navigation.Event) {
	if b.closed {
		return
	}
	switch ev.Kind {
	case navigation.KindLoadURL, navigation.KindLoadTile:
		b.loadInput(ev.Value)
	case navigation.KindBack:
		if b.page.CanGoBack {
			b.hideOverlay()
			b.enqueue(func(ctx context.Context, e browserout.Engine) (func(), error) { return nil, e.GoBack(ctx) })
		}
	case navigation.KindForward:
		if b.page.CanGoForward {
			b.hideOverlay()
			b.enqueue(func(ctx context.Context, e browserout.Engine) (func(), error) { return nil, e.GoForward(ctx) })
		}
	case navigation.KindReload:
		if !b.isHome() {
			b.hideOverlay()
			b.enqueue(func(ctx context.Context, e browserout.Engine) (func(), error) { return nil, e.Reload(ctx) })
		}
	case navigation.KindTurbo:
		enabled := ev.Checked()
		reload := !b.isHome()
		b.enqueue(func(ctx context.Context, e browserout.Engine) (func(), error) {
			if err := e.SetBlockingEnabled(ctx, enabled); err != nil {
				return nil, err
			}
			if !reload {
				return nil, nil
			}
			return nil, e.Reload(ctx)
		})
	case navigation.KindPinAction:
		if ev.Checked() {
			b.pinCurrent()
		} else {
			b.unpinCurrent()
		}
	}
}

func (b *Screen) loadInput(input string) {
	if urlutil.IsBlockedScheme(input) {
		slog.Debug("load refused", "input", input)
		return
	}
	target := urlutil.Normalize(input, b.deps.SearchTemplate)
	if target == "" {
		slog.Debug("load ignored", "input", input)
		return
	}
	b.hideOverlay()
	b.enqueueLoad(target)
}

func (b *Screen) enqueueLoad(url string) {
	b.enqueue(func(ctx context.Context, e browserout.Engine) (func(), error) {
		return nil, e.Load(ctx, url)
	})
}

func (b *Screen) pinCurrent() {
	if b.isHome() || b.deps.Tiles == nil || b.IsURLPinned() {
		return
	}
	input := dto.PinInput{URL: b.page.URL, Title: b.page.Title}
	b.enqueue(func(ctx context.Context, e browserout.Engine) (func(), error) {
		png, err := e.Screenshot(ctx)
		if err != nil {
			slog.Warn("screenshot failed, pinning without thumbnail", "url", input.URL, "error", err)
		}
		input.Screenshot = png
		tile, err := b.deps.Tiles.Pin(ctx, input)
		if err != nil {
			return nil, err
		}
		return func() {
			if b.deps.Cache.Insert(tile) {
				b.overlay.RefreshTilesForInsertion()
			}
		}, nil
	})
}

func (b *Screen) unpinCurrent() {
	if b.deps.Cache == nil {
		return
	}
	tile, ok := b.deps.Cache.FindByURL(b.page.URL)
	if !ok {
		return
	}
	b.UnpinTile(tile.ID)
}

// UnpinTile removes the tile from the overlay and the cache right away and
// from storage in the background.
func (b *Screen) UnpinTile(id string) {
	b.overlay.RemovePinnedSiteFromTiles(id)
	if b.deps.Tiles == nil {
		return
	}
	b.scope.Go(func(ctx context.Context) func() {
		if err := b.deps.Tiles.Unpin(ctx, id); err != nil {
			slog.Warn("unpin not persisted", "tile", id, "error", err)
		}
		return nil
	})
}

func (b *Screen) tileLongPressed(t tiles.Tile) {
	if b.onTileMenu != nil {
		b.onTileMenu(t)
		return
	}
	b.UnpinTile(t.ID)
}

// ─── overlay ────────────────────────────────────────────────────────────────

// OnBackPressed hides the overlay over a loaded page, then walks engine
// history. It reports false when there is nothing left to go back to.
func (b *Screen) OnBackPressed() bool {
	if b.closed {
		return false
	}
	if b.overlay.Visible() && !b.isHome() {
		b.overlay.SetVisible(false)
		return true
	}
	if b.page.CanGoBack {
		b.enqueue(func(ctx context.Context, e browserout.Engine) (func(), error) { return nil, e.GoBack(ctx) })
		return true
	}
	return false
}

// ToggleOverlay is the menu key. The overlay cannot be hidden on the home
// page.
func (b *Screen) ToggleOverlay() {
	if b.overlay.Visible() {
		if !b.isHome() {
			b.overlay.SetVisible(false)
		}
		return
	}
	b.overlay.SetVisible(true)
}

func (b *Screen) hideOverlay() {
	if b.overlay.Visible() {
		b.overlay.SetVisible(false)
	}
}

func displayURL(url string) string {
	if url == session.HomeURL {
		return ""
	}
	return url
}

// ─── engine worker ──────────────────────────────────────────────────────────

func (b *Screen) enqueue(o op) {
	b.mu.Lock()
	b.ops = append(b.ops, o)
	b.mu.Unlock()
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

func (b *Screen) next() (op, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.ops) == 0 {
		return nil, false
	}
	o := b.ops[0]
	b.ops = b.ops[1:]
	return o, true
}

// startWorker runs every engine call in order on one goroutine owned by the
// screen's scope.
func (b *Screen) startWorker() {
	if b.deps.Engines == nil {
		return
	}
	b.scope.Go(func(ctx context.Context) func() {
		engine, err := b.deps.Engines(ctx)
		if err != nil {
			slog.Error("rendering engine unavailable", "session", b.sessionID, "error", err)
			return nil
		}
		defer func() {
			if err := engine.Close(); err != nil {
				slog.Warn("engine close failed", "error", err)
			}
		}()
		engine.SetListener(func(st domain.PageState) {
			b.post(func() { b.applyPage(st) })
		})
		for {
			for {
				o, ok := b.next()
				if !ok {
					break
				}
				apply, err := o(ctx, engine)
				if err != nil {
					slog.Warn("engine call failed", "session", b.sessionID, "error", err)
				}
				if apply != nil {
					b.post(apply)
				}
			}
			select {
			case <-ctx.Done():
				return nil
			case <-b.wake:
			}
		}
	})
}

func (b *Screen) post(fn func()) {
	if b.scope.Context().Err() != nil {
		return
	}
	b.deps.Poster.Post(func() {
		if b.closed {
			return
		}
		fn()
	})
}

func (b *Screen) applyPage(st domain.PageState) {
	if st.URL == "" {
		st.URL = b.page.URL
	}
	st.Progress = session.ClampProgress(st.Progress)
	b.page = st
	if b.deps.Sessions != nil {
		if st.URL != "" {
			b.deps.Sessions.UpdateURL(b.sessionID, st.URL)
		}
		b.deps.Sessions.UpdateProgress(b.sessionID, st.Progress)
	}
	if b.onURL != nil {
		b.onURL(st.URL)
	}
	if b.onProgress != nil {
		b.onProgress(st.Progress)
	}
	b.overlay.SetDisplayURL(displayURL(st.URL))
}

type overlayState struct {
	b *Screen
}

func (s overlayState) IsBackEnabled() bool    { return s.b.CanGoBack() }
func (s overlayState) IsForwardEnabled() bool { return s.b.CanGoForward() }
func (s overlayState) IsRefreshEnabled() bool { return !s.b.isHome() }
func (s overlayState) IsPinEnabled() bool     { return !s.b.isHome() }
func (s overlayState) IsURLPinned() bool      { return s.b.IsURLPinned() }
func (s overlayState) CurrentURL() string     { return s.b.URL() }
