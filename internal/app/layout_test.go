package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/nelieo/aios/internal/desktop"
	"github.com/nelieo/aios/internal/geometry"
	"github.com/nelieo/aios/internal/registry"
)

// newTestOS returns a 160x50 cell shell, which maps to a 1280x800 viewport
// at the default cell size.
func newTestOS(t *testing.T) *OS {
	t.Helper()
	d := desktop.New(desktop.Options{Apps: registry.New()})
	o := NewOS(Options{Desktop: d})
	o.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	return o
}

func TestToCells(t *testing.T) {
	tests := []struct {
		name string
		rect geometry.Rect
		want CellRect
	}{
		{"aligned", geometry.Rect{X: 80, Y: 160, Width: 320, Height: 240}, CellRect{X: 10, Y: 10, Width: 40, Height: 15}},
		{"partial cells round outward", geometry.Rect{X: 260, Y: 136, Width: 760, Height: 528}, CellRect{X: 32, Y: 8, Width: 96, Height: 34}},
		{"negative origin", geometry.Rect{X: -10, Y: -20, Width: 320, Height: 180}, CellRect{X: -2, Y: -2, Width: 41, Height: 12}},
		{"tiny rect keeps chrome", geometry.Rect{X: 0, Y: 0, Width: 1, Height: 1}, CellRect{X: 0, Y: 0, Width: 4, Height: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToCells(tt.rect); got != tt.want {
				t.Errorf("ToCells(%+v) = %+v, want %+v", tt.rect, got, tt.want)
			}
		})
	}
}

func TestViewportFollowsWindowSize(t *testing.T) {
	o := newTestOS(t)
	want := geometry.Viewport{Width: 1280, Height: 800}
	if got := o.Desktop.Store.Viewport(); got != want {
		t.Errorf("desktop viewport = %+v, want %+v", got, want)
	}
}

func TestDockBoundsAndIcons(t *testing.T) {
	o := newTestOS(t)

	// four default icons: 152px of slots, 19 cells plus borders
	b := o.DockBounds()
	if b != (CellRect{X: 69, Y: 0, Width: 21, Height: 3}) {
		t.Fatalf("DockBounds() = %+v", b)
	}

	for i := range o.Desktop.Dock.Len() {
		col := o.DockIconColumn(i)
		hit := o.HitTest(col, 1)
		if hit.Zone != ZoneDock || hit.DockIndex != i {
			t.Errorf("icon %d at column %d hit %+v", i, col, hit)
		}
	}

	if hit := o.HitTest(b.X, 1); hit.Zone != ZoneDock || hit.DockIndex != -1 {
		t.Errorf("dock border hit = %+v, want dock with no icon", hit)
	}
	if hit := o.HitTest(0, 1); hit.Zone != ZoneDesktop {
		t.Errorf("left of dock hit = %+v, want desktop", hit)
	}
}

func TestWindowZones(t *testing.T) {
	r := CellRect{X: 0, Y: 0, Width: 96, Height: 34}
	tests := []struct {
		name       string
		relX, relY int
		want       Zone
	}{
		{"title", 10, 0, ZoneTitle},
		{"minimize glyph", 89, 0, ZoneMinimize},
		{"minimize trailing space", 90, 0, ZoneMinimize},
		{"maximize", 91, 0, ZoneMaximize},
		{"close", 93, 0, ZoneClose},
		{"close trailing space", 94, 0, ZoneClose},
		{"top right corner is title", 95, 0, ZoneTitle},
		{"bottom right corner", 95, 33, ZoneResize},
		{"bottom edge near corner", 94, 33, ZoneResize},
		{"right edge near corner", 95, 32, ZoneResize},
		{"bottom edge far from corner", 50, 33, ZoneContent},
		{"body", 5, 5, ZoneContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := windowZone(r, tt.relX, tt.relY); got != tt.want {
				t.Errorf("windowZone(%d, %d) = %v, want %v", tt.relX, tt.relY, got, tt.want)
			}
		})
	}

	narrow := CellRect{Width: 10, Height: 5}
	if got := windowZone(narrow, 7, 0); got != ZoneTitle {
		t.Errorf("narrow window has no buttons, got %v", got)
	}
}

func TestHitTestPrefersTopmostWindow(t *testing.T) {
	o := newTestOS(t)

	bottom := o.Desktop.Launch("gmail")
	top := o.Desktop.Launch("notion")

	// both open at the same default placement; the later one is on top
	r := ToCells(top.Geometry)
	hit := o.HitTest(r.X+5, r.Y+5)
	if hit.WindowID != top.ID {
		t.Errorf("hit %s, want topmost %s", hit.WindowID, top.ID)
	}

	o.Desktop.Store.Focus(bottom.ID)
	if hit := o.HitTest(r.X+5, r.Y+5); hit.WindowID != bottom.ID {
		t.Errorf("after focus hit %s, want %s", hit.WindowID, bottom.ID)
	}

	o.Desktop.Store.SetMinimized(bottom.ID, true)
	if hit := o.HitTest(r.X+5, r.Y+5); hit.WindowID != top.ID {
		t.Errorf("minimized windows must not be hit, got %s", hit.WindowID)
	}
}
