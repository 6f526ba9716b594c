package app

import (
	"github.com/nelieo/aios/internal/config"
	"github.com/nelieo/aios/internal/dock"
	"github.com/nelieo/aios/internal/geometry"
)

// CellRect is a rectangle in terminal cells.
type CellRect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r CellRect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Viewport returns the pixel viewport the terminal represents.
func (m *OS) Viewport() geometry.Viewport {
	return geometry.Viewport{
		Width:  m.Width * config.CellWidth,
		Height: m.Height * config.CellHeight,
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}

// ToCells maps a pixel rectangle onto the cell grid. Every window keeps at
// least a title bar, one content row and a bottom border.
func ToCells(r geometry.Rect) CellRect {
	x := floorDiv(r.X, config.CellWidth)
	y := floorDiv(r.Y, config.CellHeight)
	right := ceilDiv(r.Right(), config.CellWidth)
	bottom := ceilDiv(r.Bottom(), config.CellHeight)
	return CellRect{
		X:      x,
		Y:      y,
		Width:  max(right-x, 4),
		Height: max(bottom-y, 3),
	}
}

// PointerPixels returns the pixel at the center of cell (col, row).
func PointerPixels(col, row int) (int, int) {
	return col*config.CellWidth + config.CellWidth/2, row*config.CellHeight + config.CellHeight/2
}

// DockBounds returns the cell rectangle of the dock, centered at the top of
// the screen.
func (m *OS) DockBounds() CellRect {
	n := m.Desktop.Dock.Len()
	width := ceilDiv(dock.Width(n), config.CellWidth) + 2
	return CellRect{
		X:      max((m.Width-width)/2, 0),
		Y:      0,
		Width:  width,
		Height: config.DockRows,
	}
}

// DockOffset converts a screen column into a pixel offset from the first
// icon slot.
func (m *OS) DockOffset(col int) float64 {
	b := m.DockBounds()
	return float64((col-b.X-1)*config.CellWidth + config.CellWidth/2)
}

// DockIconColumn returns the screen column at the center of icon i.
func (m *OS) DockIconColumn(i int) int {
	b := m.DockBounds()
	center := (float64(i) + 0.5) * dock.IconPitch
	return b.X + 1 + int(center)/config.CellWidth
}

// DockScales returns the magnification of every dock icon for the current
// pointer position.
func (m *OS) DockScales() []float64 {
	return dock.Scales(m.DockPointerPX, m.DockHover, m.Desktop.Dock.Len())
}

// Zone identifies the part of the screen under the pointer.
type Zone int

const (
	// ZoneDesktop is bare wallpaper.
	ZoneDesktop Zone = iota
	// ZoneDock is the dock bar, DockIndex holds the icon or -1.
	ZoneDock
	// ZoneTitle is a window title bar.
	ZoneTitle
	// ZoneMinimize is the minimize button.
	ZoneMinimize
	// ZoneMaximize is the maximize button.
	ZoneMaximize
	// ZoneClose is the close button.
	ZoneClose
	// ZoneResize is the bottom-right resize handle.
	ZoneResize
	// ZoneContent is the body of a window.
	ZoneContent
)

// Hit is the result of a hit test.
type Hit struct {
	Zone      Zone
	WindowID  string
	DockIndex int
}

// Title bar button columns, counted back from the right edge of the window.
// Each button covers its glyph and the space after it.
const (
	minimizeButtonOffset = 7
	maximizeButtonOffset = 5
	closeButtonOffset    = 3

	// minChromeWidth is the narrowest window that still draws a title and buttons
	minChromeWidth = 14
)

// HitTest resolves the cell (col, row). The dock sits above every window,
// then windows are checked top to bottom.
func (m *OS) HitTest(col, row int) Hit {
	if b := m.DockBounds(); b.Contains(col, row) {
		idx := dock.IconAt(m.DockOffset(col), m.Desktop.Dock.Len())
		return Hit{Zone: ZoneDock, DockIndex: idx}
	}

	stacked := m.Desktop.Store.Stacked()
	for i := len(stacked) - 1; i >= 0; i-- {
		w := stacked[i]
		r := ToCells(w.Geometry)
		if !r.Contains(col, row) {
			continue
		}
		return Hit{Zone: windowZone(r, col-r.X, row-r.Y), WindowID: w.ID, DockIndex: -1}
	}
	return Hit{Zone: ZoneDesktop, DockIndex: -1}
}

func windowZone(r CellRect, relX, relY int) Zone {
	if relY == 0 {
		if r.Width >= minChromeWidth {
			switch relX {
			case r.Width - minimizeButtonOffset, r.Width - minimizeButtonOffset + 1:
				return ZoneMinimize
			case r.Width - maximizeButtonOffset, r.Width - maximizeButtonOffset + 1:
				return ZoneMaximize
			case r.Width - closeButtonOffset, r.Width - closeButtonOffset + 1:
				return ZoneClose
			}
		}
		return ZoneTitle
	}
	h := config.ResizeHandleCells
	if (relY == r.Height-1 && relX >= r.Width-h) || (relX == r.Width-1 && relY >= r.Height-h) {
		return ZoneResize
	}
	return ZoneContent
}
