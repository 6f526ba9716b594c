package input

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/nelieo/aios/internal/app"
	"github.com/nelieo/aios/internal/geometry"
)

func click(o *app.OS, x, y int, button tea.MouseButton) {
	HandleInput(tea.MouseClickMsg{X: x, Y: y, Button: button}, o)
}

func motion(o *app.OS, x, y int) {
	HandleInput(tea.MouseMotionMsg{X: x, Y: y, Button: tea.MouseLeft}, o)
}

func release(o *app.OS, x, y int) {
	HandleInput(tea.MouseReleaseMsg{X: x, Y: y, Button: tea.MouseLeft}, o)
}

func TestDockClick(t *testing.T) {
	o := newTestOS(t)

	click(o, o.DockIconColumn(1), 1, tea.MouseLeft)
	w, ok := o.FocusedWindow()
	if !ok || w.AppID != "gmail" {
		t.Fatalf("dock click opened %+v, want gmail", w)
	}

	// each click opens another window
	click(o, o.DockIconColumn(1), 1, tea.MouseLeft)
	if o.Desktop.Store.Len() != 2 {
		t.Errorf("store has %d windows, want 2", o.Desktop.Store.Len())
	}

	o.DockSelection = 3
	click(o, o.DockIconColumn(3), 1, tea.MouseRight)
	if o.Desktop.Dock.IsPinned("slack") {
		t.Error("right click should unpin")
	}
	if o.DockSelection != 2 {
		t.Errorf("selection = %d, want it clamped to 2", o.DockSelection)
	}
	if o.Desktop.Store.Len() != 2 {
		t.Error("right click must not launch")
	}
}

func TestDockHoverTracksPointer(t *testing.T) {
	o := newTestOS(t)
	col := o.DockIconColumn(2)

	motion(o, col, 1)
	if !o.DockHover || o.DockPointerPX != o.DockOffset(col) {
		t.Errorf("hover = %v at %v", o.DockHover, o.DockPointerPX)
	}
	motion(o, col, 20)
	if o.DockHover {
		t.Error("pointer left the dock")
	}
}

func TestTitleBarDrag(t *testing.T) {
	o := newTestOS(t)
	w := o.Desktop.Launch("gmail")
	r := app.ToCells(w.Geometry) // {32, 8, 96, 34}

	click(o, r.X+8, r.Y, tea.MouseLeft)
	if !o.Dragging || o.ActiveWindow != w.ID {
		t.Fatal("title click should start a drag")
	}

	motion(o, r.X+18, r.Y+4)
	got, _ := o.Desktop.Store.Get(w.ID)
	if got.Geometry.X != w.Geometry.X+80 || got.Geometry.Y != w.Geometry.Y+64 {
		t.Errorf("dragged to %+v", got.Geometry)
	}

	release(o, r.X+18, r.Y+4)
	if o.Interacting() {
		t.Error("release should end the drag")
	}
	got, _ = o.Desktop.Store.Get(w.ID)
	if got.Geometry.Width != w.Geometry.Width {
		t.Errorf("drop away from the edges must keep the size, got %+v", got.Geometry)
	}
}

func TestDragSnapsAtEdge(t *testing.T) {
	o := newTestOS(t)
	w := o.Desktop.Launch("gmail")
	r := app.ToCells(w.Geometry)

	click(o, r.X+8, r.Y, tea.MouseLeft)
	motion(o, 2, r.Y+2)
	release(o, 2, r.Y+2)

	got, _ := o.Desktop.Store.Get(w.ID)
	want, _ := geometry.EdgeSnap(o.Viewport(), -44, 0, w.Geometry.Width)
	if got.Geometry != geometry.ClampSize(want) {
		t.Errorf("geometry = %+v, want left half %+v", got.Geometry, want)
	}
}

func TestResizeHandleDrag(t *testing.T) {
	o := newTestOS(t)
	w := o.Desktop.Launch("gmail")
	r := app.ToCells(w.Geometry)

	click(o, r.X+r.Width-1, r.Y+r.Height-1, tea.MouseLeft)
	if !o.Resizing {
		t.Fatal("corner click should start a resize")
	}
	motion(o, r.X+r.Width+9, r.Y+r.Height+2)
	release(o, r.X+r.Width+9, r.Y+r.Height+2)

	got, _ := o.Desktop.Store.Get(w.ID)
	want := geometry.Rect{X: 260, Y: 136, Width: 844, Height: 584}
	if got.Geometry != want {
		t.Errorf("geometry = %+v, want %+v", got.Geometry, want)
	}

	// shrinking past the minimum clamps
	grown := app.ToCells(got.Geometry)
	click(o, grown.X+grown.Width-1, grown.Y+grown.Height-1, tea.MouseLeft)
	motion(o, r.X+1, r.Y+1)
	release(o, r.X+1, r.Y+1)
	got, _ = o.Desktop.Store.Get(w.ID)
	if got.Geometry.Width != geometry.MinWidth || got.Geometry.Height != geometry.MinHeight {
		t.Errorf("geometry = %+v, want minimum size", got.Geometry)
	}
}

func TestTitleBarButtons(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		check  func(t *testing.T, o *app.OS, id string)
	}{
		{"close", 3, func(t *testing.T, o *app.OS, id string) {
			if _, ok := o.Desktop.Store.Get(id); ok {
				t.Error("window still open")
			}
		}},
		{"minimize", 7, func(t *testing.T, o *app.OS, id string) {
			if w, _ := o.Desktop.Store.Get(id); !w.Minimized {
				t.Error("window not minimized")
			}
		}},
		{"maximize", 5, func(t *testing.T, o *app.OS, id string) {
			w, _ := o.Desktop.Store.Get(id)
			if !w.Maximized || w.Geometry != geometry.Maximized(o.Viewport()) {
				t.Errorf("window not maximized: %+v", w)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestOS(t)
			w := o.Desktop.Launch("gmail")
			r := app.ToCells(w.Geometry)
			click(o, r.X+r.Width-tt.offset, r.Y, tea.MouseLeft)
			if o.Interacting() {
				t.Error("buttons must not start a drag")
			}
			tt.check(t, o, w.ID)
		})
	}
}

func TestClickFocusesWindow(t *testing.T) {
	o := newTestOS(t)
	bottom := o.Desktop.Launch("gmail")
	o.Desktop.Launch("notion")
	o.Desktop.Store.Move(bottom.ID, 0, 400)

	// a part of gmail that notion does not cover
	click(o, 2, 30, tea.MouseLeft)
	if w, _ := o.FocusedWindow(); w.ID != bottom.ID {
		t.Errorf("focused %s, want gmail", w.AppID)
	}
}

func TestEscCancelsDrag(t *testing.T) {
	o := newTestOS(t)
	w := o.Desktop.Launch("gmail")
	r := app.ToCells(w.Geometry)

	click(o, r.X+8, r.Y, tea.MouseLeft)
	press(o, special(tea.KeyEscape, 0))
	if o.Interacting() {
		t.Error("esc should cancel the drag")
	}
	motion(o, r.X+30, r.Y+5)
	if got, _ := o.Desktop.Store.Get(w.ID); got.Geometry != w.Geometry {
		t.Error("motion after cancel must not move the window")
	}
}
