package desktop

import (
	"testing"

	"github.com/nelieo/aios/internal/geometry"
	"github.com/nelieo/aios/internal/persist"
	"github.com/nelieo/aios/internal/registry"
)

func newTestDesktop(t *testing.T, state persist.Adapter) *Desktop {
	t.Helper()
	return New(Options{
		Apps:     registry.New(registry.WithStreamBase("http://xpra.local")),
		State:    state,
		Viewport: geometry.Viewport{Width: 1200, Height: 800},
	})
}

func TestAppOpenedMatchesDockLaunch(t *testing.T) {
	d := newTestDesktop(t, nil)

	fromDock, ok := d.LaunchDockIcon(0)
	if !ok {
		t.Fatal("LaunchDockIcon(0) failed")
	}
	fromEvent := d.AppOpened(d.Dock.Pinned()[0])

	if fromDock.AppID != fromEvent.AppID || fromDock.Title != fromEvent.Title || fromDock.Payload != fromEvent.Payload {
		t.Errorf("dock launch %+v differs from app-opened launch %+v", fromDock, fromEvent)
	}
	if fromEvent.Z <= fromDock.Z {
		t.Errorf("later launch z = %d, want above %d", fromEvent.Z, fromDock.Z)
	}
	if fromEvent.Payload.URL != "http://xpra.local/?app=chrome" {
		t.Errorf("payload url = %q", fromEvent.Payload.URL)
	}
}

func TestAppOpenedUnknownFallsBack(t *testing.T) {
	d := newTestDesktop(t, nil)
	w := d.AppOpened("winamp")
	if w.AppID != "chrome" {
		t.Errorf("AppID = %q, want chrome", w.AppID)
	}
}

func TestLaunchAll(t *testing.T) {
	d := newTestDesktop(t, nil)
	windows := d.LaunchAll()

	ids := d.Apps.IDs()
	if len(windows) != len(ids) || d.Store.Len() != len(ids) {
		t.Fatalf("LaunchAll opened %d windows, want %d", len(windows), len(ids))
	}
	for i, w := range windows {
		if w.AppID != ids[i] {
			t.Errorf("window %d app = %q, want %q", i, w.AppID, ids[i])
		}
	}
}

func TestSwitchAndClose(t *testing.T) {
	d := newTestDesktop(t, nil)
	mail := d.Launch("gmail")
	d.Launch("notion")
	d.Store.SetMinimized(mail.ID, true)

	got, ok := d.Switch("Gmail")
	if !ok || got.ID != mail.ID {
		t.Fatalf("Switch(Gmail) = %+v, %v", got, ok)
	}
	if got.Minimized {
		t.Error("Switch should restore a minimized window")
	}
	if top, _ := d.Store.Topmost(); top.ID != mail.ID {
		t.Errorf("Topmost = %s, want %s", top.ID, mail.ID)
	}

	if _, ok := d.Switch("slack"); ok {
		t.Error("Switch to a window that is not open should fail")
	}

	closed, ok := d.CloseMatching("notion")
	if !ok || closed.AppID != "notion" || d.Store.Len() != 1 {
		t.Errorf("CloseMatching(notion) = %+v, %v; %d left", closed, ok, d.Store.Len())
	}
}

func TestWallpaperPersists(t *testing.T) {
	state := persist.NewMemory()
	d := newTestDesktop(t, state)

	if d.Wallpaper().Value != persist.DefaultWallpaper {
		t.Errorf("initial wallpaper = %q", d.Wallpaper().Value)
	}

	d.SetWallpaper("https://example.com/beach.jpg")
	if raw, _ := state.Get(persist.KeyWallpaper); raw != "https://example.com/beach.jpg" {
		t.Errorf("persisted wallpaper = %q", raw)
	}

	again := newTestDesktop(t, state)
	if again.Wallpaper().Kind() != "url" {
		t.Errorf("reloaded wallpaper kind = %s", again.Wallpaper().Kind())
	}
}

func TestDockStateSurvivesRestart(t *testing.T) {
	state := persist.NewMemory()
	d := newTestDesktop(t, state)
	d.Dock.Pin("zoom")
	d.Dock.Unpin("gmail")

	again := newTestDesktop(t, state)
	got := again.Dock.Pinned()
	want := []string{"chrome", "notion", "slack", "zoom"}
	if len(got) != len(want) {
		t.Fatalf("Pinned() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Pinned()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestResizeRelayouts(t *testing.T) {
	d := newTestDesktop(t, nil)
	a := d.Launch("slack")
	d.Launch("slack")

	vp := geometry.Viewport{Width: 1600, Height: 1000}
	d.Resize(vp)

	got, _ := d.Store.Get(a.ID)
	if want := geometry.Tile(vp, 2)[0]; got.Geometry != want {
		t.Errorf("after resize = %+v, want %+v", got.Geometry, want)
	}
}

func TestSnapshot(t *testing.T) {
	d := newTestDesktop(t, nil)
	d.Launch("gmail")
	w := d.Launch("notion")

	s := d.Snapshot()
	if len(s.Windows) != 2 || s.Focused != w.ID {
		t.Errorf("Snapshot = %+v", s)
	}
	if s.WallpaperKind != "gradient" || len(s.Pinned) != 4 {
		t.Errorf("Snapshot settings = %s / %v", s.WallpaperKind, s.Pinned)
	}
}
