package control

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/nelieo/aios/internal/desktop"
	"github.com/nelieo/aios/internal/registry"
)

// ErrNoWindow is returned when a request names a window that is not open.
var ErrNoWindow = errors.New("no matching window")

// DockState is returned by the dock actions.
type DockState struct {
	Pinned  []string                 `json:"pinned" yaml:"pinned"`
	Apps    []registry.AppDefinition `json:"apps,omitempty" yaml:"apps,omitempty"`
	Changed bool                     `json:"changed" yaml:"changed"`
}

// WallpaperState is returned by the wallpaper action.
type WallpaperState struct {
	Value string `json:"value" yaml:"value"`
	Kind  string `json:"kind" yaml:"kind"`
}

// Pong answers a ping.
type Pong struct {
	Windows  int    `json:"windows" yaml:"windows"`
	Focused  string `json:"focused,omitempty" yaml:"focused,omitempty"`
	Viewport string `json:"viewport" yaml:"viewport"`
}

// Apply performs req against d. The desktop is not locked; callers
// serialize access.
func Apply(d *desktop.Desktop, req Request) (any, error) {
	p := params(req.Params)

	switch req.Action {
	case ActionPing:
		pong := Pong{Windows: d.Store.Len()}
		vp := d.Store.Viewport()
		pong.Viewport = fmt.Sprintf("%dx%d", vp.Width, vp.Height)
		if top, ok := d.Store.Topmost(); ok {
			pong.Focused = top.ID
		}
		return pong, nil

	case ActionApps:
		return d.Apps.Apps(), nil

	case ActionAppOpened:
		app, err := p.requireString("app")
		if err != nil {
			return nil, err
		}
		return d.AppOpened(app), nil

	case ActionLaunchAll:
		return d.LaunchAll(), nil

	case ActionList:
		return d.Snapshot(), nil

	case ActionFocus, ActionSwitch:
		w, ok := d.Switch(p.getString("target"))
		if !ok {
			return nil, targetError(p)
		}
		return w, nil

	case ActionClose:
		w, err := target(d, p)
		if err != nil {
			return nil, err
		}
		d.Store.Close(w.ID)
		return w, nil

	case ActionMinimize:
		w, err := target(d, p)
		if err != nil {
			return nil, err
		}
		d.Store.SetMinimized(w.ID, !p.getBool("restore"))
		return refreshed(d, w.ID)

	case ActionRestoreAll:
		d.Store.RestoreAll()
		return d.Store.Windows(), nil

	case ActionMaximize:
		w, err := target(d, p)
		if err != nil {
			return nil, err
		}
		d.Store.ToggleMaximized(w.ID)
		return refreshed(d, w.ID)

	case ActionMove:
		w, err := target(d, p)
		if err != nil {
			return nil, err
		}
		x, err := p.requireInt("x")
		if err != nil {
			return nil, err
		}
		y, err := p.requireInt("y")
		if err != nil {
			return nil, err
		}
		if p.getBool("snap") {
			d.Store.DragEnd(w.ID, x, y)
		} else {
			d.Store.Move(w.ID, x, y)
		}
		return refreshed(d, w.ID)

	case ActionResize:
		w, err := target(d, p)
		if err != nil {
			return nil, err
		}
		width, err := p.requireInt("width")
		if err != nil {
			return nil, err
		}
		height, err := p.requireInt("height")
		if err != nil {
			return nil, err
		}
		x := p.intOr("x", w.Geometry.X)
		y := p.intOr("y", w.Geometry.Y)
		d.Store.Resize(w.ID, width, height, x, y)
		return refreshed(d, w.ID)

	case ActionArrange:
		d.Store.ArrangeGrid()
		return d.Store.Windows(), nil

	case ActionPin, ActionUnpin:
		app, err := p.requireString("app")
		if err != nil {
			return nil, err
		}
		var changed bool
		if req.Action == ActionPin {
			if !d.Apps.Has(app) {
				return nil, fmt.Errorf("%w: %s", registry.ErrUnknownApp, app)
			}
			changed = d.Dock.Pin(app)
		} else {
			changed = d.Dock.Unpin(app)
		}
		return DockState{Pinned: d.Dock.Pinned(), Changed: changed}, nil

	case ActionDock:
		return DockState{Pinned: d.Dock.Pinned(), Apps: d.Dock.Icons()}, nil

	case ActionWallpaper:
		if value, ok := p["value"]; ok || p.getBool("reset") {
			s, _ := value.(string)
			d.SetWallpaper(s)
		}
		w := d.Wallpaper()
		return WallpaperState{Value: w.Value, Kind: w.Kind()}, nil

	default:
		return nil, fmt.Errorf("unknown action %q", req.Action)
	}
}

// Serialized returns a Handler that applies requests to d while holding mu.
func Serialized(d *desktop.Desktop, mu *sync.Mutex) Handler {
	return func(_ context.Context, req Request) (any, error) {
		mu.Lock()
		defer mu.Unlock()
		return Apply(d, req)
	}
}

// target resolves the "target" param, defaulting to the topmost window.
func target(d *desktop.Desktop, p params) (desktop.Window, error) {
	if id := p.getString("target"); id != "" {
		if w, ok := d.Store.Find(id); ok {
			return w, nil
		}
		return desktop.Window{}, targetError(p)
	}
	if w, ok := d.Store.Topmost(); ok {
		return w, nil
	}
	return desktop.Window{}, ErrNoWindow
}

func targetError(p params) error {
	if id := p.getString("target"); id != "" {
		return fmt.Errorf("%w: %s", ErrNoWindow, id)
	}
	return ErrNoWindow
}

func refreshed(d *desktop.Desktop, id string) (desktop.Window, error) {
	w, ok := d.Store.Get(id)
	if !ok {
		return desktop.Window{}, fmt.Errorf("%w: %s", ErrNoWindow, id)
	}
	return w, nil
}

// params reads loosely typed request parameters. CBOR decodes integers into
// uint64 or int64, JSON-minded callers may send floats.
type params map[string]any

func (p params) getString(key string) string {
	s, _ := p[key].(string)
	return s
}

func (p params) requireString(key string) (string, error) {
	s := p.getString(key)
	if s == "" {
		return "", fmt.Errorf("missing required param %q", key)
	}
	return s, nil
}

func (p params) getBool(key string) bool {
	b, _ := p[key].(bool)
	return b
}

func (p params) getInt(key string) (int, bool, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	switch n := v.(type) {
	case int:
		return n, true, nil
	case int64:
		return int(n), true, nil
	case uint64:
		if n > math.MaxInt32 {
			return 0, true, fmt.Errorf("param %q out of range", key)
		}
		return int(n), true, nil
	case float64:
		return int(math.Round(n)), true, nil
	default:
		return 0, true, fmt.Errorf("param %q must be a number, got %T", key, v)
	}
}

func (p params) requireInt(key string) (int, error) {
	n, ok, err := p.getInt(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("missing required param %q", key)
	}
	return n, nil
}

func (p params) intOr(key string, fallback int) int {
	n, ok, err := p.getInt(key)
	if !ok || err != nil {
		return fallback
	}
	return n
}
