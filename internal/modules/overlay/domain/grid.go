package domain

import tiles "tvshell/internal/modules/tiles/domain"

const GridColumns = 4

type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Grid tracks the focused cell over a tile list of length n. The long-press
// slot is rebindable after construction.
type Grid struct {
	focus       int
	onLongPress func(tiles.Tile)
}

func NewGrid(onLongPress func(tiles.Tile)) *Grid {
	return &Grid{onLongPress: onLongPress}
}

func (g *Grid) SetOnLongPress(fn func(tiles.Tile)) { g.onLongPress = fn }

func (g *Grid) LongPress(t tiles.Tile) bool {
	if g.onLongPress == nil {
		return false
	}
	g.onLongPress(t)
	return true
}

func (g *Grid) Focus() int { return g.focus }

// SetFocus clamps i into [0, n).
func (g *Grid) SetFocus(i, n int) {
	switch {
	case n <= 0:
		g.focus = 0
	case i < 0:
		g.focus = 0
	case i >= n:
		g.focus = n - 1
	default:
		g.focus = i
	}
}

// Move reports whether focus stayed inside the grid. Moving up from the first
// row leaves the grid.
func (g *Grid) Move(d Direction, n int) bool {
	if n == 0 {
		return false
	}
	next := g.focus
	switch d {
	case Left:
		if next%GridColumns == 0 {
			return true
		}
		next--
	case Right:
		if next%GridColumns == GridColumns-1 || next+1 >= n {
			return true
		}
		next++
	case Up:
		if next < GridColumns {
			return false
		}
		next -= GridColumns
	case Down:
		if next+GridColumns >= n {
			if Row(n-1) > Row(next) {
				next = n - 1
			}
			break
		}
		next += GridColumns
	}
	g.focus = next
	return true
}

func Row(i int) int { return i / GridColumns }

func Rows(n int) int { return (n + GridColumns - 1) / GridColumns }
