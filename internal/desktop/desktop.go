// Package desktop wires the window store, dock, application registry and
// persisted state into the single object every host drives.
package desktop

import (
	"charm.land/log/v2"
	"github.com/nelieo/aios/internal/dock"
	"github.com/nelieo/aios/internal/geometry"
	"github.com/nelieo/aios/internal/persist"
	"github.com/nelieo/aios/internal/registry"
	"github.com/nelieo/aios/internal/wm"
)

// Window is a desktop window carrying a content payload.
type Window = wm.Window[registry.Payload]

// Options configures a Desktop.
type Options struct {
	Apps          *registry.Registry
	State         persist.Adapter
	Viewport      geometry.Viewport
	DefaultPinned []string
	Logger        *log.Logger
}

// Desktop is the window manager core plus its persisted settings. It is not
// safe for concurrent use; hosts serialize access.
type Desktop struct {
	Store *wm.Store[registry.Payload]
	Dock  *dock.Dock
	Apps  *registry.Registry

	state     persist.Adapter
	wallpaper persist.Wallpaper
	logger    *log.Logger
}

// New builds a desktop and loads the persisted dock and wallpaper.
func New(opts Options) *Desktop {
	apps := opts.Apps
	if apps == nil {
		apps = registry.New()
	}
	state := opts.State
	if state == nil {
		state = persist.NewMemory()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	d := &Desktop{
		Store: wm.NewStore[registry.Payload](wm.Options{
			Catalog:  apps,
			Fallback: apps.Fallback(),
			Viewport: opts.Viewport,
		}),
		Dock:   dock.New(apps, state, dock.WithDefaults(opts.DefaultPinned), dock.WithLogger(logger)),
		Apps:   apps,
		state:  state,
		logger: logger,
	}
	d.Dock.Load()

	raw, _ := state.Get(persist.KeyWallpaper)
	d.wallpaper = persist.ParseWallpaper(raw)
	return d
}

// Open opens a window directly.
func (d *Desktop) Open(spec wm.Spec[registry.Payload]) Window {
	return d.Store.Open(spec)
}

// Launch runs the registry launch routine for appID. Unknown IDs launch the
// fallback application.
func (d *Desktop) Launch(appID string) Window {
	w := d.Apps.Launch(appID, d.Store.Open)
	d.logger.Debug("launched", "app", w.AppID, "window", w.ID)
	return w
}

// AppOpened handles an external "app opened" notification exactly like a
// dock click on that application.
func (d *Desktop) AppOpened(appID string) Window {
	return d.Launch(appID)
}

// LaunchDockIcon launches the pinned application at icon index i.
func (d *Desktop) LaunchDockIcon(i int) (Window, bool) {
	return d.Dock.LaunchAt(i, d.Store.Open)
}

// LaunchAll opens one window for every registered application, in catalog
// order.
func (d *Desktop) LaunchAll() []Window {
	var out []Window
	for _, app := range d.Apps.Apps() {
		out = append(out, app.Launch(d.Store.Open))
	}
	return out
}

// Resize records a new viewport and recomputes viewport-dependent layout.
func (d *Desktop) Resize(vp geometry.Viewport) {
	if vp == d.Store.Viewport() {
		return
	}
	d.Store.SetViewport(vp)
	d.Store.Relayout()
}

// Switch focuses the window matching identifier, restoring it first when
// minimized.
func (d *Desktop) Switch(identifier string) (Window, bool) {
	w, ok := d.Store.Find(identifier)
	if !ok {
		return Window{}, false
	}
	if w.Minimized {
		d.Store.SetMinimized(w.ID, false)
	} else {
		d.Store.Focus(w.ID)
	}
	return d.Store.Get(w.ID)
}

// CloseMatching closes the window matching identifier.
func (d *Desktop) CloseMatching(identifier string) (Window, bool) {
	w, ok := d.Store.Find(identifier)
	if !ok {
		return Window{}, false
	}
	d.Store.Close(w.ID)
	return w, true
}

// Wallpaper returns the current wallpaper.
func (d *Desktop) Wallpaper() persist.Wallpaper {
	return d.wallpaper
}

// SetWallpaper changes and persists the wallpaper. A blank value restores the
// default.
func (d *Desktop) SetWallpaper(value string) persist.Wallpaper {
	d.wallpaper = persist.ParseWallpaper(value)
	if err := d.state.Set(persist.KeyWallpaper, d.wallpaper.Value); err != nil {
		d.logger.Warn("failed to persist wallpaper", "err", err)
	}
	return d.wallpaper
}

// Snapshot is a serializable view of the desktop.
type Snapshot struct {
	Viewport      geometry.Viewport `json:"viewport" yaml:"viewport"`
	Focused       string            `json:"focused,omitempty" yaml:"focused,omitempty"`
	Windows       []Window          `json:"windows" yaml:"windows"`
	Pinned        []string          `json:"pinned" yaml:"pinned"`
	Wallpaper     string            `json:"wallpaper" yaml:"wallpaper"`
	WallpaperKind string            `json:"wallpaper_kind" yaml:"wallpaper_kind"`
}

// Snapshot captures the current state.
func (d *Desktop) Snapshot() Snapshot {
	s := Snapshot{
		Viewport:      d.Store.Viewport(),
		Windows:       d.Store.Windows(),
		Pinned:        d.Dock.Pinned(),
		Wallpaper:     d.wallpaper.Value,
		WallpaperKind: d.wallpaper.Kind(),
	}
	if top, ok := d.Store.Topmost(); ok {
		s.Focused = top.ID
	}
	return s
}
