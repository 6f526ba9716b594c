// Package wm implements the AIOS window store: the ordered collection of
// live windows and the stacking counter that orders them.
package wm

import (
	"github.com/nelieo/aios/internal/geometry"
)

// BaseZ is the stacking value reserved for static desktop chrome.
// The first window opened by a store receives BaseZ+1.
const BaseZ = 10

// Window is one floating pane on the desktop. The payload is carried for the
// content renderer and is never inspected by the store.
type Window[P any] struct {
	ID        string        `json:"id" yaml:"id"`
	AppID     string        `json:"app_id" yaml:"app_id"`
	Title     string        `json:"title" yaml:"title"`
	Geometry  geometry.Rect `json:"geometry" yaml:"geometry"`
	Z         int           `json:"z" yaml:"z"`
	Minimized bool          `json:"minimized" yaml:"minimized"`
	Maximized bool          `json:"maximized" yaml:"maximized"`
	Payload   P             `json:"payload" yaml:"payload"`

	// restore holds the rectangle to return to when un-maximizing.
	restore geometry.Rect
}

// GeometryOverride lets a caller pin individual fields of a new window's
// rectangle. Nil fields take the default placement.
type GeometryOverride struct {
	X      *int
	Y      *int
	Width  *int
	Height *int
}

// Apply returns base with every non-nil override applied.
func (o GeometryOverride) Apply(base geometry.Rect) geometry.Rect {
	if o.X != nil {
		base.X = *o.X
	}
	if o.Y != nil {
		base.Y = *o.Y
	}
	if o.Width != nil {
		base.Width = *o.Width
	}
	if o.Height != nil {
		base.Height = *o.Height
	}
	return base
}

// Empty reports whether no field is overridden.
func (o GeometryOverride) Empty() bool {
	return o.X == nil && o.Y == nil && o.Width == nil && o.Height == nil
}

// Spec is the partial description passed to Open.
type Spec[P any] struct {
	AppID    string
	Title    string
	Geometry GeometryOverride
	Payload  P
}

// Catalog resolves application identifiers for the store. It decides which
// IDs are known and what title a window gets when none is supplied.
type Catalog interface {
	Lookup(appID string) (displayName string, ok bool)
}

// EventKind names a store mutation.
type EventKind string

// Store mutation kinds.
const (
	EventOpened    EventKind = "opened"
	EventFocused   EventKind = "focused"
	EventClosed    EventKind = "closed"
	EventMoved     EventKind = "moved"
	EventResized   EventKind = "resized"
	EventSnapped   EventKind = "snapped"
	EventTiled     EventKind = "tiled"
	EventArranged  EventKind = "arranged"
	EventMinimized EventKind = "minimized"
	EventRestored  EventKind = "restored"
	EventMaximized EventKind = "maximized"
)

// Event describes a single store mutation. WindowID is empty for events that
// touch several windows at once.
type Event struct {
	Kind     EventKind
	WindowID string
	AppID    string
}
