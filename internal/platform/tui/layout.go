package tui

import "github.com/vovakirdan/tui-reflex/internal/core"

// Screen regions, in terminal rows.
const (
	hudRows    = 2 // Status line and time bar
	footerRows = 1 // Key hints
)

// unitsPerRow is the number of playfield units per terminal row. Terminal
// cells are roughly twice as tall as they are wide, so one row spans two units
// and one column spans one; targets then look round.
const unitsPerRow = 2

// Layout maps between terminal cells and playfield units.
type Layout struct {
	Width  int // Terminal columns
	Height int // Terminal rows
}

// NewLayout creates a layout for a terminal of the given size.
func NewLayout(width, height int) Layout {
	return Layout{Width: width, Height: height}
}

// PlayfieldRect returns the terminal cells that make up the playfield.
func (l Layout) PlayfieldRect() core.Rect {
	return core.NewRect(0, hudRows, max(l.Width, 0), max(l.Height-hudRows-footerRows, 0))
}

// PlayfieldSize returns the playfield size in playfield units.
func (l Layout) PlayfieldSize() (width, height int) {
	r := l.PlayfieldRect()
	return r.W, r.H * unitsPerRow
}

// CellCentre returns the playfield point at the centre of a terminal cell.
func (l Layout) CellCentre(x, y int) core.Point {
	r := l.PlayfieldRect()
	return core.Pt(x-r.X, (y-r.Y)*unitsPerRow+unitsPerRow/2)
}

// CellToPlayfield converts a terminal cell to a playfield point. It reports
// false for cells outside the playfield.
func (l Layout) CellToPlayfield(x, y int) (core.Point, bool) {
	if !l.PlayfieldRect().Contains(x, y) {
		return core.Point{}, false
	}
	return l.CellCentre(x, y), true
}
