// Package geometry computes window placement for the AIOS desktop.
//
// Every function here is pure: the viewport is always passed in explicitly
// and nothing is read from the environment. Out-of-range inputs are clamped
// rather than rejected.
package geometry

import "math"

// Placement constants, in viewport pixels.
const (
	// MinWidth is the smallest width a window may have.
	MinWidth = 320
	// MinHeight is the smallest height a window may have.
	MinHeight = 180

	// DockClearance is the minimum top offset that keeps windows below the dock.
	DockClearance = 88

	// WideViewport is the viewport width from which new windows get a fixed width.
	WideViewport = 768
	// DefaultWidth is the width of a new window on wide viewports.
	DefaultWidth = 760
	// NarrowWidthRatio is the share of the viewport a new window takes on narrow viewports.
	NarrowWidthRatio = 0.92
	// HeightRatio is the share of the viewport height a new window takes.
	HeightRatio = 0.66

	// TileSidePadding is the left/right margin of a tiled family.
	TileSidePadding = 24
	// TileMaxWidth caps the width of a single tiled window.
	TileMaxWidth = 1100
	// TileTop is the top offset shared by all tiled windows.
	TileTop = 96
	// TileMaxHeight caps the height of tiled windows.
	TileMaxHeight = 640
	// TileVerticalReserve is subtracted from the viewport height for tiled windows.
	TileVerticalReserve = 240

	// SnapThreshold is the distance from a viewport edge that triggers edge-snap.
	SnapThreshold = 48
	// SnapInset is the margin around a snapped half.
	SnapInset = 8
	// SnapGutter is removed from each half of the viewport.
	SnapGutter = 16
	// SnapVerticalReserve is subtracted from the viewport height for snapped windows.
	SnapVerticalReserve = 200

	// GridPad is the padding between and around grid cells.
	GridPad = 16
	// GridVerticalReserve is the height reserved for chrome in grid layouts.
	GridVerticalReserve = 140
	// GridMinCellWidth floors grid cell width.
	GridMinCellWidth = 360
	// GridMinCellHeight floors grid cell height.
	GridMinCellHeight = 240
)

// Viewport is the size of the desktop surface.
type Viewport struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Rect is a window rectangle in viewport pixels.
type Rect struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Right returns the x coordinate one past the right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y coordinate one past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersects reports whether two rectangles share any area.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// ClampSize raises width and height to the minimum window size.
func ClampSize(r Rect) Rect {
	r.Width = max(r.Width, MinWidth)
	r.Height = max(r.Height, MinHeight)
	return r
}

// sanitize keeps degenerate viewports from producing negative layouts.
func sanitize(vp Viewport) Viewport {
	vp.Width = max(vp.Width, 0)
	vp.Height = max(vp.Height, 0)
	return vp
}

// DefaultPlacement returns the centered rectangle used for new windows.
func DefaultPlacement(vp Viewport) Rect {
	vp = sanitize(vp)

	width := DefaultWidth
	if vp.Width < WideViewport {
		width = int(math.Floor(float64(vp.Width) * NarrowWidthRatio))
	}
	height := int(math.Floor(float64(vp.Height) * HeightRatio))

	return ClampSize(Rect{
		X:      max(0, (vp.Width-width)/2),
		Y:      max(DockClearance, (vp.Height-height)/2),
		Width:  width,
		Height: height,
	})
}

// Tile lays out a family of n same-application windows side by side.
// It returns nil when n is below two, meaning the family is left as is.
func Tile(vp Viewport, n int) []Rect {
	if n <= 1 {
		return nil
	}
	vp = sanitize(vp)

	available := max(0, vp.Width-2*TileSidePadding)
	width := min(TileMaxWidth, available/n)
	height := min(TileMaxHeight, vp.Height-TileVerticalReserve)

	rects := make([]Rect, n)
	for i := range rects {
		rects[i] = Rect{
			X:      TileSidePadding + i*width,
			Y:      TileTop,
			Width:  width,
			Height: height,
		}
	}
	return rects
}

// EdgeSnap evaluates a drag release at (x, y) for a window of the given width.
// When the window is dropped within SnapThreshold of the left or right edge it
// returns the snapped half-viewport rectangle and true. The left edge wins
// when both apply. Otherwise the caller keeps its own size and commits (x, y).
func EdgeSnap(vp Viewport, x, y, width int) (Rect, bool) {
	vp = sanitize(vp)

	nearLeft := x <= SnapThreshold
	nearRight := vp.Width-(x+width) <= SnapThreshold
	if !nearLeft && !nearRight {
		return Rect{}, false
	}

	half := vp.Width/2 - SnapGutter
	snapped := Rect{
		X:      half + SnapInset,
		Y:      DockClearance,
		Width:  half - SnapGutter,
		Height: vp.Height - SnapVerticalReserve,
	}
	if nearLeft {
		snapped.X = SnapInset
	}
	return snapped, true
}

// GridShape returns the column and row count used to arrange n windows.
func GridShape(n int) (cols, rows int) {
	if n <= 0 {
		return 0, 0
	}
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	rows = (n + cols - 1) / cols
	return cols, rows
}

// Grid assigns n windows to the cells of a square-ish grid, row by row.
func Grid(vp Viewport, n int) []Rect {
	cols, rows := GridShape(n)
	if cols == 0 {
		return nil
	}
	vp = sanitize(vp)

	cellW := max(GridMinCellWidth, (vp.Width-2*GridPad)/cols-GridPad)
	cellH := max(GridMinCellHeight, (vp.Height-2*GridPad-GridVerticalReserve)/rows-GridPad)

	rects := make([]Rect, n)
	for i := range rects {
		col := i % cols
		row := i / cols
		rects[i] = Rect{
			X:      GridPad + col*(cellW+GridPad),
			Y:      DockClearance + row*(cellH+GridPad),
			Width:  cellW,
			Height: cellH,
		}
	}
	return rects
}

// Maximized returns the rectangle a maximized window occupies.
func Maximized(vp Viewport) Rect {
	vp = sanitize(vp)
	return ClampSize(Rect{
		X:      SnapInset,
		Y:      DockClearance,
		Width:  vp.Width - 2*SnapInset,
		Height: vp.Height - DockClearance - SnapInset,
	})
}
