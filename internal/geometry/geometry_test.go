package geometry

import (
	"testing"
)

func TestDefaultPlacement(t *testing.T) {
	tests := []struct {
		name string
		vp   Viewport
		want Rect
	}{
		{
			name: "wide viewport uses fixed width",
			vp:   Viewport{Width: 1440, Height: 900},
			want: Rect{X: 340, Y: 153, Width: 760, Height: 594},
		},
		{
			name: "narrow viewport uses share of width",
			vp:   Viewport{Width: 600, Height: 800},
			want: Rect{X: 24, Y: 136, Width: 552, Height: 528},
		},
		{
			name: "short viewport keeps dock clearance",
			vp:   Viewport{Width: 1024, Height: 200},
			want: Rect{X: 132, Y: 88, Width: 760, Height: 180},
		},
		{
			name: "tiny viewport is clamped to minimum size",
			vp:   Viewport{Width: 200, Height: 100},
			want: Rect{X: 8, Y: 88, Width: 320, Height: 180},
		},
		{
			name: "negative viewport treated as empty",
			vp:   Viewport{Width: -10, Height: -10},
			want: Rect{X: 0, Y: 88, Width: 320, Height: 180},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultPlacement(tt.vp)
			if got != tt.want {
				t.Errorf("DefaultPlacement(%+v) = %+v, want %+v", tt.vp, got, tt.want)
			}
		})
	}
}

func TestTile(t *testing.T) {
	t.Run("single member is left untouched", func(t *testing.T) {
		if got := Tile(Viewport{Width: 1200, Height: 900}, 1); got != nil {
			t.Errorf("Tile(n=1) = %v, want nil", got)
		}
	})

	tests := []struct {
		name      string
		vp        Viewport
		n         int
		wantWidth int
		wantH     int
	}{
		{"two windows", Viewport{Width: 1200, Height: 900}, 2, 576, 640},
		{"three windows short viewport", Viewport{Width: 1200, Height: 700}, 3, 384, 460},
		{"width capped", Viewport{Width: 3000, Height: 1200}, 2, 1100, 640},
		{"many windows", Viewport{Width: 1366, Height: 768}, 7, 188, 528},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rects := Tile(tt.vp, tt.n)
			if len(rects) != tt.n {
				t.Fatalf("Tile returned %d rects, want %d", len(rects), tt.n)
			}

			total := 0
			for i, r := range rects {
				if r.Width != tt.wantWidth {
					t.Errorf("rect %d width = %d, want %d", i, r.Width, tt.wantWidth)
				}
				if r.Height != tt.wantH {
					t.Errorf("rect %d height = %d, want %d", i, r.Height, tt.wantH)
				}
				if r.Y != TileTop {
					t.Errorf("rect %d y = %d, want %d", i, r.Y, TileTop)
				}
				if i > 0 && r.X < rects[i-1].Right() {
					t.Errorf("rect %d overlaps rect %d horizontally", i, i-1)
				}
				total += r.Width
			}

			if rects[0].X != TileSidePadding {
				t.Errorf("first rect x = %d, want %d", rects[0].X, TileSidePadding)
			}
			if available := tt.vp.Width - 2*TileSidePadding; total > available {
				t.Errorf("combined width %d exceeds available %d", total, available)
			}
		})
	}
}

func TestEdgeSnap(t *testing.T) {
	vp := Viewport{Width: 1200, Height: 800}

	tests := []struct {
		name     string
		x, y, w  int
		wantSnap bool
		want     Rect
	}{
		{
			name:     "left edge",
			x:        0,
			y:        300,
			w:        760,
			wantSnap: true,
			want:     Rect{X: 8, Y: 88, Width: 568, Height: 600},
		},
		{
			name:     "just inside left threshold",
			x:        48,
			y:        10,
			w:        400,
			wantSnap: true,
			want:     Rect{X: 8, Y: 88, Width: 568, Height: 600},
		},
		{
			name:     "right edge",
			x:        780,
			y:        200,
			w:        400,
			wantSnap: true,
			want:     Rect{X: 592, Y: 88, Width: 568, Height: 600},
		},
		{
			name:     "middle of screen",
			x:        600,
			y:        200,
			w:        400,
			wantSnap: false,
		},
		{
			name:     "just outside left threshold",
			x:        49,
			y:        200,
			w:        400,
			wantSnap: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, snapped := EdgeSnap(vp, tt.x, tt.y, tt.w)
			if snapped != tt.wantSnap {
				t.Fatalf("EdgeSnap(%d, %d, %d) snapped = %v, want %v", tt.x, tt.y, tt.w, snapped, tt.wantSnap)
			}
			if snapped && got != tt.want {
				t.Errorf("EdgeSnap(%d, %d, %d) = %+v, want %+v", tt.x, tt.y, tt.w, got, tt.want)
			}
		})
	}
}

func TestEdgeSnapLeftWins(t *testing.T) {
	// A window wider than the viewport is near both edges.
	got, ok := EdgeSnap(Viewport{Width: 600, Height: 600}, 10, 10, 590)
	if !ok {
		t.Fatal("expected snap")
	}
	if got.X != SnapInset {
		t.Errorf("x = %d, want left half at %d", got.X, SnapInset)
	}
}

func TestGridShape(t *testing.T) {
	tests := []struct {
		n, cols, rows int
	}{
		{0, 0, 0},
		{1, 1, 1},
		{2, 2, 1},
		{3, 2, 2},
		{4, 2, 2},
		{5, 3, 2},
		{9, 3, 3},
		{10, 4, 3},
		{17, 5, 4},
	}

	for _, tt := range tests {
		cols, rows := GridShape(tt.n)
		if cols != tt.cols || rows != tt.rows {
			t.Errorf("GridShape(%d) = (%d, %d), want (%d, %d)", tt.n, cols, rows, tt.cols, tt.rows)
		}
	}
}

func TestGridCoverage(t *testing.T) {
	vp := Viewport{Width: 1440, Height: 900}

	for n := 1; n <= 20; n++ {
		rects := Grid(vp, n)
		if len(rects) != n {
			t.Fatalf("Grid(n=%d) returned %d rects", n, len(rects))
		}
		cols, rows := GridShape(n)
		if cols*rows < n {
			t.Errorf("Grid(n=%d) shape %dx%d cannot hold every window", n, cols, rows)
		}

		seen := make(map[[2]int]bool)
		for i, r := range rects {
			if r.Width < GridMinCellWidth || r.Height < GridMinCellHeight {
				t.Errorf("Grid(n=%d) rect %d = %+v below minimum cell", n, i, r)
			}
			col := (r.X - GridPad) / (r.Width + GridPad)
			row := (r.Y - DockClearance) / (r.Height + GridPad)
			if col >= cols || row >= rows {
				t.Errorf("Grid(n=%d) rect %d at cell (%d,%d) outside %dx%d", n, i, row, col, rows, cols)
			}
			key := [2]int{row, col}
			if seen[key] {
				t.Errorf("Grid(n=%d) cell (%d,%d) assigned twice", n, row, col)
			}
			seen[key] = true
		}
	}
}

func TestGridPositions(t *testing.T) {
	rects := Grid(Viewport{Width: 1440, Height: 900}, 5)
	want := []Rect{
		{X: 16, Y: 88, Width: 453, Height: 348},
		{X: 485, Y: 88, Width: 453, Height: 348},
		{X: 954, Y: 88, Width: 453, Height: 348},
		{X: 16, Y: 452, Width: 453, Height: 348},
		{X: 485, Y: 452, Width: 453, Height: 348},
	}
	for i := range want {
		if rects[i] != want[i] {
			t.Errorf("Grid rect %d = %+v, want %+v", i, rects[i], want[i])
		}
	}
}

func TestMaximized(t *testing.T) {
	got := Maximized(Viewport{Width: 1280, Height: 800})
	want := Rect{X: 8, Y: 88, Width: 1264, Height: 704}
	if got != want {
		t.Errorf("Maximized = %+v, want %+v", got, want)
	}
}

func TestRectHelpers(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}

	if !r.Contains(10, 20) || r.Contains(110, 20) || r.Contains(10, 70) {
		t.Error("Contains should be inclusive of the origin and exclusive of the far edges")
	}
	if !r.Intersects(Rect{X: 100, Y: 60, Width: 10, Height: 10}) {
		t.Error("expected overlapping corner to intersect")
	}
	if r.Intersects(Rect{X: 110, Y: 20, Width: 10, Height: 10}) {
		t.Error("touching edges must not intersect")
	}
	if got := ClampSize(Rect{Width: -5, Height: 0}); got.Width != MinWidth || got.Height != MinHeight {
		t.Errorf("ClampSize = %+v", got)
	}
}
