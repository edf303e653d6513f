package service

import (
	"context"
	"log/slog"

	autocompletein "tvshell/internal/modules/autocomplete/port/in"
	navigation "tvshell/internal/modules/navigation/domain"
	navigationin "tvshell/internal/modules/navigation/port/in"
	"tvshell/internal/modules/overlay/domain"
	overlayin "tvshell/internal/modules/overlay/port/in"
	overlayout "tvshell/internal/modules/overlay/port/out"
	tiles "tvshell/internal/modules/tiles/domain"
	tilesin "tvshell/internal/modules/tiles/port/in"
	"tvshell/internal/platform/mainloop"
	"tvshell/internal/platform/scope"
)

const UnpinToastText = "Press and hold a tile to remove it from Home"

// visibleRows is how many grid rows fit below the URL field.
const visibleRows = 3

type Deps struct {
	Cache      tilesin.Cache
	Tiles      tilesin.Usecase
	Index      autocompletein.IndexBuilder
	Dispatcher navigationin.Dispatcher
	Budget     overlayout.ToastBudget
	Blocking   overlayout.BlockingState
	Presenter  overlayout.ToastPresenter
	Telemetry  overlayout.Telemetry
	Poster     mainloop.Poster
}

type Overlay struct {
	deps  Deps
	scope *scope.Scope
	state overlayout.ToolbarState

	displayed   []tiles.Tile
	thumbnails  map[string][]byte
	grid        *domain.Grid
	onLongPress func(tiles.Tile)

	field        domain.URLField
	area         domain.Area
	navFocus     int
	turboChecked bool

	visible       bool
	scrollRow     int
	preVisibility func(bool)

	canShowUnpinToast bool
	tornDown          bool
}

func NewFactory(deps Deps) overlayin.Factory {
	return func(parent context.Context, state overlayout.ToolbarState) overlayin.Overlay {
		return New(parent, deps, state)
	}
}

func New(parent context.Context, deps Deps, state overlayout.ToolbarState) *Overlay {
	if state == nil {
		state = noToolbar{}
	}
	return &Overlay{
		deps:              deps,
		scope:             scope.New(parent, deps.Poster),
		state:             state,
		thumbnails:        map[string][]byte{},
		grid:              domain.NewGrid(nil),
		canShowUnpinToast: true,
	}
}

var _ overlayin.Overlay = (*Overlay)(nil)

// Start initialises the grid from the cache and kicks off the background
// tile load and autocomplete index build.
func (o *Overlay) Start() {
	o.initGrid()
	if o.deps.Cache != nil {
		o.applyFull(o.deps.Cache.Tiles())
	}
	if o.deps.Blocking != nil {
		o.turboChecked = o.deps.Blocking.IsBlockingEnabled(o.scope.Context())
	}
	if o.deps.Tiles == nil || o.deps.Cache == nil {
		o.buildIndex()
		return
	}
	o.scope.Go(func(ctx context.Context) func() {
		loaded, err := o.deps.Tiles.Load(ctx)
		if err != nil {
			slog.Warn("tiles not loaded", "error", err)
			return o.buildIndex
		}
		return func() {
			if err := o.deps.Cache.Replace(loaded); err != nil {
				slog.Warn("tiles rejected by cache", "error", err)
			}
			o.applyFull(o.deps.Cache.Tiles())
			o.buildIndex()
		}
	})
}

// Teardown cancels every background operation of this instance. Later
// results are dropped.
func (o *Overlay) Teardown() {
	if o.tornDown {
		return
	}
	o.tornDown = true
	o.scope.Cancel()
}

func (o *Overlay) initGrid() {
	o.grid = domain.NewGrid(o.onLongPress)
}

// SetOnTileLongPress stores fn and binds it to the current grid. The slot is
// re-applied whenever the grid is rebuilt.
func (o *Overlay) SetOnTileLongPress(fn func(tiles.Tile)) {
	o.onLongPress = fn
	if o.grid != nil {
		o.grid.SetOnLongPress(fn)
	}
}

// ─── visibility ─────────────────────────────────────────────────────────────

func (o *Overlay) Visible() bool { return o.visible }

func (o *Overlay) ScrollRow() int { return o.scrollRow }

func (o *Overlay) SetOnPreVisibilityChange(fn func(visible bool)) { o.preVisibility = fn }

func (o *Overlay) SetVisible(visible bool) {
	if o.preVisibility != nil {
		o.preVisibility(visible)
	}
	o.visible = visible
	if !visible {
		o.field.Blur()
		return
	}
	o.scrollRow = 0
	o.focusURL()
}

func (o *Overlay) focusURL() {
	o.area = domain.AreaURL
	o.field.Focus()
}

// ─── tiles ──────────────────────────────────────────────────────────────────

func (o *Overlay) Tiles() []tiles.Tile {
	return append([]tiles.Tile(nil), o.displayed...)
}

func (o *Overlay) HasThumbnail(id string) bool {
	_, ok := o.thumbnails[id]
	return ok
}

func (o *Overlay) FocusArea() domain.Area { return o.area }

func (o *Overlay) FocusedTile() (int, bool) {
	if o.area != domain.AreaGrid || len(o.displayed) == 0 {
		return 0, false
	}
	return o.grid.Focus(), true
}

func (o *Overlay) FocusTile(i int) {
	if len(o.displayed) == 0 || o.grid == nil {
		return
	}
	o.leaveURL()
	o.area = domain.AreaGrid
	o.grid.SetFocus(i, len(o.displayed))
	o.ensureFocusVisible()
	o.onTileFocused()
}

// onTileFocused spends one unit of the toast budget on the worker context.
// The instance flag is cleared before the write; a failed write re-arms it.
func (o *Overlay) onTileFocused() {
	if !o.canShowUnpinToast || o.deps.Budget == nil {
		return
	}
	o.canShowUnpinToast = false
	o.scope.Go(func(ctx context.Context) func() {
		ok, err := o.deps.Budget.TryConsumeUnpinToast(ctx)
		if err != nil {
			slog.Warn("unpin toast counter unavailable", "error", err)
			return func() { o.canShowUnpinToast = true }
		}
		if !ok || o.deps.Presenter == nil {
			return nil
		}
		return func() { o.deps.Presenter.ShowToast(UnpinToastText) }
	})
}

func (o *Overlay) ensureFocusVisible() {
	row := domain.Row(o.grid.Focus())
	switch {
	case row < o.scrollRow:
		o.scrollRow = row
	case row >= o.scrollRow+visibleRows:
		o.scrollRow = row - visibleRows + 1
	}
}

func (o *Overlay) ActivateFocused() {
	switch o.area {
	case domain.AreaURL:
		o.CommitURL()
	case domain.AreaNav:
		o.ClickNav(domain.NavButtons[o.navFocus])
	case domain.AreaGrid:
		if len(o.displayed) == 0 {
			return
		}
		tile := o.displayed[o.grid.Focus()]
		o.click("tile")
		o.dispatch(navigation.New(navigation.KindLoadTile, tile.URL, o.origin()))
	}
}

func (o *Overlay) LongPressFocused() {
	if o.area != domain.AreaGrid || len(o.displayed) == 0 {
		return
	}
	o.grid.LongPress(o.displayed[o.grid.Focus()])
}

// RefreshTilesForInsertion re-reads the cache and inserts the one new tile in
// place. Any other difference falls back to a full replace.
func (o *Overlay) RefreshTilesForInsertion() {
	if o.deps.Cache == nil {
		return
	}
	next := o.deps.Cache.Tiles()
	idx, added, ok := tiles.SingleInsertion(o.displayed, next)
	if !ok {
		o.applyFull(next)
		return
	}
	o.displayed = append(o.displayed[:idx:idx], append([]tiles.Tile{added}, o.displayed[idx:]...)...)
	if len(o.displayed) > 1 && idx <= o.grid.Focus() {
		o.grid.SetFocus(o.grid.Focus()+1, len(o.displayed))
	}
	o.loadThumbnail(added)
}

// RemovePinnedSiteFromTiles drops one tile from the grid and the cache. Unknown
// ids are ignored.
func (o *Overlay) RemovePinnedSiteFromTiles(id string) {
	if idx := tiles.IndexOf(o.displayed, id); idx >= 0 {
		o.displayed = append(o.displayed[:idx:idx], o.displayed[idx+1:]...)
		delete(o.thumbnails, id)
		focus := o.grid.Focus()
		if idx < focus {
			focus--
		}
		o.grid.SetFocus(focus, len(o.displayed))
		if len(o.displayed) == 0 && o.area == domain.AreaGrid {
			o.focusURL()
		}
	}
	if o.deps.Cache != nil {
		o.deps.Cache.Remove(id)
	}
}

func (o *Overlay) applyFull(next []tiles.Tile) {
	focusedID := ""
	if o.grid != nil && len(o.displayed) > 0 {
		focusedID = o.displayed[o.grid.Focus()].ID
	}
	o.displayed = append([]tiles.Tile(nil), next...)
	kept := make(map[string][]byte, len(o.thumbnails))
	for _, t := range o.displayed {
		if data, ok := o.thumbnails[t.ID]; ok {
			kept[t.ID] = data
		} else {
			o.loadThumbnail(t)
		}
	}
	o.thumbnails = kept
	if o.grid == nil {
		return
	}
	focus := tiles.IndexOf(o.displayed, focusedID)
	if focus < 0 {
		focus = o.grid.Focus()
	}
	o.grid.SetFocus(focus, len(o.displayed))
}

func (o *Overlay) loadThumbnail(t tiles.Tile) {
	if t.Thumbnail == "" || o.deps.Tiles == nil {
		return
	}
	o.scope.Go(func(ctx context.Context) func() {
		data, err := o.deps.Tiles.Thumbnail(ctx, t)
		if err != nil {
			slog.Debug("thumbnail not loaded", "tile", t.ID, "error", err)
			return nil
		}
		return func() {
			if tiles.IndexOf(o.displayed, t.ID) >= 0 {
				o.thumbnails[t.ID] = data
			}
		}
	})
}

func (o *Overlay) buildIndex() {
	if o.deps.Index == nil {
		return
	}
	urls := make([]string, 0, len(o.displayed))
	for _, t := range o.displayed {
		urls = append(urls, t.URL)
	}
	o.scope.Go(func(ctx context.Context) func() {
		idx, err := o.deps.Index.Build(ctx, urls)
		if err != nil {
			slog.Debug("autocomplete index not built", "error", err)
			return nil
		}
		return func() { o.field.SetIndex(idx) }
	})
}

// ─── url field ──────────────────────────────────────────────────────────────

func (o *Overlay) URLField() *domain.URLField { return &o.field }

func (o *Overlay) TypeURL(text string) {
	if o.area != domain.AreaURL {
		o.focusURL()
	}
	o.field.Type(text)
}

func (o *Overlay) CommitURL() {
	text, result, ok := o.field.Commit()
	if !ok {
		return
	}
	o.dispatch(navigation.LoadURL(text, result, o.origin()))
}

func (o *Overlay) SetDisplayURL(url string) { o.field.SetDisplayURL(url) }

func (o *Overlay) leaveURL() {
	if o.area == domain.AreaURL {
		o.field.Blur()
	}
}

// ─── navigation ─────────────────────────────────────────────────────────────

func (o *Overlay) Move(d domain.Direction) {
	switch o.area {
	case domain.AreaURL:
		switch d {
		case domain.Up:
			o.leaveURL()
			o.area = domain.AreaNav
		case domain.Down:
			if len(o.displayed) > 0 {
				o.FocusTile(o.grid.Focus())
			}
		}
	case domain.AreaNav:
		switch d {
		case domain.Left:
			if o.navFocus > 0 {
				o.navFocus--
			}
		case domain.Right:
			if o.navFocus < len(domain.NavButtons)-1 {
				o.navFocus++
			}
		case domain.Down:
			o.focusURL()
		}
	case domain.AreaGrid:
		before := o.grid.Focus()
		if !o.grid.Move(d, len(o.displayed)) {
			o.focusURL()
			return
		}
		if o.grid.Focus() != before {
			o.ensureFocusVisible()
			o.onTileFocused()
		}
	}
}

func (o *Overlay) FocusedNav() int {
	if o.area != domain.AreaNav {
		return -1
	}
	return o.navFocus
}

func (o *Overlay) NavButtons() []domain.NavState {
	out := make([]domain.NavState, 0, len(domain.NavButtons))
	for _, b := range domain.NavButtons {
		out = append(out, o.navState(b))
	}
	return out
}

func (o *Overlay) navState(b domain.NavButton) domain.NavState {
	s := domain.NavState{Button: b, Enabled: true}
	switch b {
	case domain.NavBack:
		s.Enabled = o.state.IsBackEnabled()
	case domain.NavForward:
		s.Enabled = o.state.IsForwardEnabled()
	case domain.NavReload:
		s.Enabled = o.state.IsRefreshEnabled()
	case domain.NavPin:
		s.Enabled = o.state.IsPinEnabled()
		s.Checked = o.state.IsURLPinned()
	case domain.NavTurbo:
		s.Checked = o.turboChecked
	}
	return s
}

func (o *Overlay) ClickNav(b domain.NavButton) {
	if !o.navState(b).Enabled {
		return
	}
	o.click(b.String())
	switch b {
	case domain.NavBack:
		o.dispatch(navigation.New(navigation.KindBack, "", o.origin()))
	case domain.NavForward:
		o.dispatch(navigation.New(navigation.KindForward, "", o.origin()))
	case domain.NavReload:
		o.dispatch(navigation.New(navigation.KindReload, "", o.origin()))
	case domain.NavPin:
		origin := o.origin()
		origin.PinChecked = !o.state.IsURLPinned()
		o.dispatch(navigation.Toggle(navigation.KindPinAction, origin.PinChecked, origin))
	case domain.NavTurbo:
		o.turboChecked = !o.turboChecked
		o.dispatch(navigation.Toggle(navigation.KindTurbo, o.turboChecked, o.origin()))
	case domain.NavSettings:
		o.dispatch(navigation.New(navigation.KindSettings, "", o.origin()))
	}
}

func (o *Overlay) origin() navigation.Origin {
	return navigation.Origin{
		Surface:      navigation.SurfaceOverlay,
		TurboChecked: o.turboChecked,
		PinChecked:   o.state.IsURLPinned(),
	}
}

func (o *Overlay) dispatch(ev navigation.Event) {
	if o.deps.Dispatcher != nil {
		o.deps.Dispatcher.OnEvent(ev)
	}
}

func (o *Overlay) click(control string) {
	if o.deps.Telemetry != nil {
		o.deps.Telemetry.OverlayClick(control, o.turboChecked, o.state.IsURLPinned())
	}
}

type noToolbar struct{}

func (noToolbar) IsBackEnabled() bool    { return false }
func (noToolbar) IsForwardEnabled() bool { return false }
func (noToolbar) IsRefreshEnabled() bool { return false }
func (noToolbar) IsPinEnabled() bool     { return false }
func (noToolbar) IsURLPinned() bool      { return false }
func (noToolbar) CurrentURL() string     { return "" }
