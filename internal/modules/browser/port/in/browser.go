package in

import (
	"tvshell/internal/modules/browser/domain"
	overlayin "tvshell/internal/modules/overlay/port/in"
	tiles "tvshell/internal/modules/tiles/domain"
)

// Screen is the part of a browser screen the terminal views draw and drive.
type Screen interface {
	Page() domain.PageState
	Overlay() overlayin.Overlay
	ToggleOverlay()
	SetOnTileMenu(fn func(tiles.Tile))
	UnpinTile(id string)
}
