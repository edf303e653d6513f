package in

import (
	"context"

	"tvshell/internal/modules/overlay/domain"
	overlayout "tvshell/internal/modules/overlay/port/out"
	tiles "tvshell/internal/modules/tiles/domain"
)

// Overlay is one home-tile overlay instance. Every method runs on the UI
// context.
type Overlay interface {
	Start()
	Teardown()

	Visible() bool
	SetVisible(visible bool)
	SetOnPreVisibilityChange(fn func(visible bool))
	ScrollRow() int

	Tiles() []tiles.Tile
	HasThumbnail(id string) bool
	FocusArea() domain.Area
	FocusedTile() (int, bool)
	FocusTile(i int)
	Move(d domain.Direction)
	ActivateFocused()
	LongPressFocused()
	SetOnTileLongPress(fn func(tiles.Tile))
	RefreshTilesForInsertion()
	RemovePinnedSiteFromTiles(id string)

	URLField() *domain.URLField
	TypeURL(text string)
	CommitURL()
	SetDisplayURL(url string)

	NavButtons() []domain.NavState
	FocusedNav() int
	ClickNav(b domain.NavButton)
}

// Factory creates an overlay whose background work lives under parent.
type Factory func(parent context.Context, state overlayout.ToolbarState) Overlay
