package wm

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/nelieo/aios/internal/geometry"
)

// Options configures a Store.
type Options struct {
	// Catalog decides which application IDs are known. A nil catalog accepts
	// every non-empty ID.
	Catalog Catalog

	// Fallback is the application used when Open gets an empty or unknown ID.
	Fallback string

	// Viewport is the initial desktop size.
	Viewport geometry.Viewport

	// NewID generates window identifiers. Defaults to random UUIDs.
	NewID func() string
}

// Store owns the window collection and the stacking counter. It is not safe
// for concurrent use: hosts drive it from a single event loop.
type Store[P any] struct {
	windows   []*Window[P]
	nextZ     int
	viewport  geometry.Viewport
	catalog   Catalog
	fallback  string
	newID     func() string
	listeners []func(Event)
}

// NewStore returns an empty store.
func NewStore[P any](opts Options) *Store[P] {
	newID := opts.NewID
	if newID == nil {
		newID = createID
	}
	return &Store[P]{
		nextZ:    BaseZ,
		viewport: opts.Viewport,
		catalog:  opts.Catalog,
		fallback: opts.Fallback,
		newID:    newID,
	}
}

func createID() string {
	return uuid.New().String()
}

// Subscribe registers fn to be called after every mutation.
func (s *Store[P]) Subscribe(fn func(Event)) {
	s.listeners = append(s.listeners, fn)
}

func (s *Store[P]) emit(kind EventKind, w *Window[P]) {
	ev := Event{Kind: kind}
	if w != nil {
		ev.WindowID = w.ID
		ev.AppID = w.AppID
	}
	for _, fn := range s.listeners {
		fn(ev)
	}
}

// bumpZ advances the stacking counter and returns the new top value.
func (s *Store[P]) bumpZ() int {
	s.nextZ++
	return s.nextZ
}

// Viewport returns the desktop size the store lays windows out against.
func (s *Store[P]) Viewport() geometry.Viewport {
	return s.viewport
}

// SetViewport changes the desktop size. Existing windows keep their geometry
// until Relayout is called.
func (s *Store[P]) SetViewport(vp geometry.Viewport) {
	s.viewport = vp
}

func (s *Store[P]) resolveApp(appID string) (string, string) {
	if s.catalog == nil {
		if appID == "" {
			appID = s.fallback
		}
		return appID, appID
	}
	if name, ok := s.catalog.Lookup(appID); ok && appID != "" {
		return appID, name
	}
	name, _ := s.catalog.Lookup(s.fallback)
	return s.fallback, name
}

// Open creates a window from spec and returns a copy of it. Unknown or empty
// application IDs fall back to the store's fallback application. When the new
// window joins a family of same-application windows, the family is tiled.
func (s *Store[P]) Open(spec Spec[P]) Window[P] {
	appID, displayName := s.resolveApp(spec.AppID)

	title := spec.Title
	if title == "" {
		title = displayName
	}
	if title == "" {
		title = appID
	}

	geom := geometry.DefaultPlacement(s.viewport)
	if !spec.Geometry.Empty() {
		geom = geometry.ClampSize(spec.Geometry.Apply(geom))
	}

	w := &Window[P]{
		ID:       s.newID(),
		AppID:    appID,
		Title:    title,
		Geometry: geom,
		Z:        s.bumpZ(),
		Payload:  spec.Payload,
	}
	s.windows = append(s.windows, w)
	s.emit(EventOpened, w)

	s.tileFamily(appID)
	return *w
}

// tileFamily lays out the visible windows of appID side by side when there
// are at least two of them. Tiled rects are not raised to the minimum size,
// so large families stay non-overlapping on narrow viewports.
func (s *Store[P]) tileFamily(appID string) {
	var family []*Window[P]
	for _, w := range s.windows {
		if w.AppID == appID && !w.Minimized {
			family = append(family, w)
		}
	}

	rects := geometry.Tile(s.viewport, len(family))
	if rects == nil {
		return
	}
	for i, w := range family {
		w.Geometry = rects[i]
		w.Maximized = false
	}
	s.emit(EventTiled, family[0])
}

func (s *Store[P]) find(id string) *Window[P] {
	for _, w := range s.windows {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// Focus raises the window above every other window. Absent IDs are ignored.
func (s *Store[P]) Focus(id string) {
	w := s.find(id)
	if w == nil {
		return
	}
	w.Z = s.bumpZ()
	s.emit(EventFocused, w)
}

// Close removes the window. Absent IDs are ignored.
func (s *Store[P]) Close(id string) {
	idx := slices.IndexFunc(s.windows, func(w *Window[P]) bool { return w.ID == id })
	if idx < 0 {
		return
	}
	w := s.windows[idx]
	s.windows = slices.Delete(s.windows, idx, idx+1)
	s.emit(EventClosed, w)
}

// Move sets the window's position. Used for live drag updates.
func (s *Store[P]) Move(id string, x, y int) {
	w := s.find(id)
	if w == nil {
		return
	}
	w.Geometry.X = x
	w.Geometry.Y = y
	s.emit(EventMoved, w)
}

// Resize sets the window's rectangle, clamping the size to the minimum.
func (s *Store[P]) Resize(id string, width, height, x, y int) {
	w := s.find(id)
	if w == nil {
		return
	}
	w.Geometry = geometry.ClampSize(geometry.Rect{X: x, Y: y, Width: width, Height: height})
	w.Maximized = false
	s.emit(EventResized, w)
}

// DragEnd commits a drag released at (x, y). Dropping near the left or right
// edge snaps the window to that half of the viewport and focuses it.
func (s *Store[P]) DragEnd(id string, x, y int) {
	w := s.find(id)
	if w == nil {
		return
	}

	snapped, ok := geometry.EdgeSnap(s.viewport, x, y, w.Geometry.Width)
	if !ok {
		w.Geometry.X = x
		w.Geometry.Y = y
		s.emit(EventMoved, w)
		return
	}

	w.Geometry = geometry.ClampSize(snapped)
	w.Maximized = false
	s.emit(EventSnapped, w)
	s.Focus(id)
}

// ArrangeGrid lays every window out on a grid in collection order. IDs and
// stacking values are preserved.
func (s *Store[P]) ArrangeGrid() {
	rects := geometry.Grid(s.viewport, len(s.windows))
	for i, w := range s.windows {
		w.Geometry = rects[i]
		w.Maximized = false
	}
	s.emit(EventArranged, nil)
}

// Relayout recomputes viewport-dependent geometry after a resize: every
// family of two or more visible windows is re-tiled and maximized windows
// are refit.
func (s *Store[P]) Relayout() {
	seen := make(map[string]bool)
	for _, w := range s.windows {
		if w.Maximized {
			w.Geometry = geometry.Maximized(s.viewport)
		}
		if seen[w.AppID] {
			continue
		}
		seen[w.AppID] = true
		s.tileFamily(w.AppID)
	}
}

// SetMinimized hides or shows a window. Restoring raises it. The window's
// family is re-tiled because tiling only counts visible windows.
func (s *Store[P]) SetMinimized(id string, minimized bool) {
	w := s.find(id)
	if w == nil || w.Minimized == minimized {
		return
	}
	w.Minimized = minimized
	if minimized {
		s.emit(EventMinimized, w)
	} else {
		s.emit(EventRestored, w)
		s.Focus(id)
	}
	s.tileFamily(w.AppID)
}

// RestoreAll shows every minimized window.
func (s *Store[P]) RestoreAll() {
	for _, w := range s.windows {
		if w.Minimized {
			s.SetMinimized(w.ID, false)
		}
	}
}

// ToggleMaximized fills the desktop with the window, or returns it to the
// rectangle it had before.
func (s *Store[P]) ToggleMaximized(id string) {
	w := s.find(id)
	if w == nil {
		return
	}
	if w.Maximized {
		w.Geometry = w.restore
		w.Maximized = false
		s.emit(EventResized, w)
		return
	}
	w.restore = w.Geometry
	w.Geometry = geometry.Maximized(s.viewport)
	w.Maximized = true
	s.emit(EventMaximized, w)
	s.Focus(id)
}

// CycleFocus focuses the next visible window after the topmost one in
// collection order, or the previous one when forward is false. It returns
// the focused window's ID, or "" when nothing is visible.
func (s *Store[P]) CycleFocus(forward bool) string {
	var visible []*Window[P]
	for _, w := range s.windows {
		if !w.Minimized {
			visible = append(visible, w)
		}
	}
	if len(visible) == 0 {
		return ""
	}

	cur := 0
	top := s.topmost(visible)
	for i, w := range visible {
		if w == top {
			cur = i
		}
	}

	step := 1
	if !forward {
		step = len(visible) - 1
	}
	next := visible[(cur+step)%len(visible)]
	s.Focus(next.ID)
	return next.ID
}

func (s *Store[P]) topmost(ws []*Window[P]) *Window[P] {
	var top *Window[P]
	for _, w := range ws {
		if top == nil || w.Z > top.Z {
			top = w
		}
	}
	return top
}

// Len returns the number of windows.
func (s *Store[P]) Len() int {
	return len(s.windows)
}

// Windows returns a copy of every window in collection order.
func (s *Store[P]) Windows() []Window[P] {
	out := make([]Window[P], len(s.windows))
	for i, w := range s.windows {
		out[i] = *w
	}
	return out
}

// Stacked returns the visible windows ordered bottom to top.
func (s *Store[P]) Stacked() []Window[P] {
	out := make([]Window[P], 0, len(s.windows))
	for _, w := range s.windows {
		if !w.Minimized {
			out = append(out, *w)
		}
	}
	slices.SortStableFunc(out, func(a, b Window[P]) int { return a.Z - b.Z })
	return out
}

// Get returns a copy of the window with the given ID.
func (s *Store[P]) Get(id string) (Window[P], bool) {
	w := s.find(id)
	if w == nil {
		return Window[P]{}, false
	}
	return *w, true
}

// Topmost returns the visible window with the highest stacking value.
func (s *Store[P]) Topmost() (Window[P], bool) {
	var visible []*Window[P]
	for _, w := range s.windows {
		if !w.Minimized {
			visible = append(visible, w)
		}
	}
	top := s.topmost(visible)
	if top == nil {
		return Window[P]{}, false
	}
	return *top, true
}

// Find resolves a window by ID, then by case-insensitive title, then by
// application ID. Title and application matches return the first window in
// collection order.
func (s *Store[P]) Find(identifier string) (Window[P], bool) {
	if w := s.find(identifier); w != nil {
		return *w, true
	}
	for _, w := range s.windows {
		if strings.EqualFold(w.Title, identifier) {
			return *w, true
		}
	}
	for _, w := range s.windows {
		if strings.EqualFold(w.AppID, identifier) {
			return *w, true
		}
	}
	return Window[P]{}, false
}
