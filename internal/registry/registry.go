// Package registry holds the table of applications the desktop can launch.
package registry

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"charm.land/log/v2"
	"github.com/nelieo/aios/internal/wm"
)

// ErrUnknownApp is returned when an application ID is not registered.
var ErrUnknownApp = errors.New("unknown application")

// DefaultFallback is the application opened for unknown IDs.
const DefaultFallback = "chrome"

// DefaultStreamBase is where streamed applications are served from.
const DefaultStreamBase = "http://localhost:10000"

// Payload is the per-window configuration handed to the content renderer.
type Payload struct {
	URL          string `json:"url" yaml:"url"`
	HideControls bool   `json:"hide_controls" yaml:"hide_controls"`
	Streaming    bool   `json:"streaming" yaml:"streaming"`
}

// Opener opens a window. It is the store's Open operation, possibly wrapped
// by a host.
type Opener func(wm.Spec[Payload]) wm.Window[Payload]

// AppDefinition describes one launchable application.
type AppDefinition struct {
	ID           string `json:"id" yaml:"id"`
	DisplayName  string `json:"name" yaml:"name"`
	Icon         string `json:"icon" yaml:"icon"`
	URL          string `json:"url" yaml:"url"`
	Streaming    bool   `json:"streaming" yaml:"streaming"`
	HideControls bool   `json:"hide_controls" yaml:"hide_controls"`

	streamBase string
}

// Payload builds the window payload for this application.
func (a AppDefinition) Payload() Payload {
	p := Payload{
		URL:          a.URL,
		HideControls: a.HideControls,
		Streaming:    a.Streaming,
	}
	if a.Streaming && a.streamBase != "" {
		p.URL = strings.TrimRight(a.streamBase, "/") + "/?app=" + url.QueryEscape(a.ID)
	}
	return p
}

// Launch opens exactly one window for the application and returns it.
func (a AppDefinition) Launch(open Opener) wm.Window[Payload] {
	return open(wm.Spec[Payload]{
		AppID:   a.ID,
		Title:   a.DisplayName,
		Payload: a.Payload(),
	})
}

// Registry maps application IDs to their definitions. It is filled once at
// startup and read-only afterwards.
type Registry struct {
	apps       map[string]AppDefinition
	order      []string
	fallback   string
	streamBase string
}

// Option configures a Registry.
type Option func(*Registry)

// WithStreamBase sets the base URL streamed applications resolve against.
func WithStreamBase(base string) Option {
	return func(r *Registry) {
		if base != "" {
			r.streamBase = base
		}
	}
}

// WithFallback sets the application used for unknown IDs. It is ignored when
// the ID is not registered once all options have been applied.
func WithFallback(id string) Option {
	return func(r *Registry) {
		if id != "" {
			r.fallback = id
		}
	}
}

// WithApps registers additional applications after the defaults.
func WithApps(apps ...AppDefinition) Option {
	return func(r *Registry) {
		for _, a := range apps {
			if err := r.register(a); err != nil {
				log.Warn("skipping application", "name", a.DisplayName, "url", a.URL, "err", err)
			}
		}
	}
}

// WithoutDefaults starts from an empty table.
func WithoutDefaults() Option {
	return func(r *Registry) {
		r.apps = make(map[string]AppDefinition)
		r.order = nil
	}
}

// New builds a registry holding the default applications.
func New(opts ...Option) *Registry {
	r := &Registry{
		apps:       make(map[string]AppDefinition),
		fallback:   DefaultFallback,
		streamBase: DefaultStreamBase,
	}
	for _, a := range defaultApps {
		_ = r.register(a)
	}
	for _, opt := range opts {
		opt(r)
	}
	if _, ok := r.apps[r.fallback]; !ok && len(r.order) > 0 {
		r.fallback = r.order[0]
	}
	for id, a := range r.apps {
		a.streamBase = r.streamBase
		r.apps[id] = a
	}
	return r
}

func (r *Registry) register(a AppDefinition) error {
	a.ID = strings.ToLower(strings.TrimSpace(a.ID))
	if a.ID == "" {
		return fmt.Errorf("application has no id")
	}
	if a.DisplayName == "" {
		a.DisplayName = a.ID
	}
	if a.Icon == "" {
		a.Icon = strings.ToUpper(a.ID[:1])
	}
	if _, exists := r.apps[a.ID]; !exists {
		r.order = append(r.order, a.ID)
	}
	r.apps[a.ID] = a
	return nil
}

// Get returns the definition for id.
func (r *Registry) Get(id string) (AppDefinition, bool) {
	a, ok := r.apps[id]
	return a, ok
}

// Resolve returns the definition for id or ErrUnknownApp.
func (r *Registry) Resolve(id string) (AppDefinition, error) {
	a, ok := r.apps[id]
	if !ok {
		return AppDefinition{}, fmt.Errorf("%w: %q", ErrUnknownApp, id)
	}
	return a, nil
}

// Lookup returns the display name for id. It lets the registry act as the
// window store's catalog.
func (r *Registry) Lookup(id string) (string, bool) {
	a, ok := r.apps[id]
	return a.DisplayName, ok
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.apps[id]
	return ok
}

// IDs returns every registered ID in registration order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// Apps returns every definition in registration order.
func (r *Registry) Apps() []AppDefinition {
	out := make([]AppDefinition, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.apps[id])
	}
	return out
}

// Fallback returns the application used for unknown IDs.
func (r *Registry) Fallback() string {
	return r.fallback
}

// Launch opens a window for id. Unknown IDs launch the fallback application,
// matching how the store treats them.
func (r *Registry) Launch(id string, open Opener) wm.Window[Payload] {
	a, ok := r.apps[id]
	if !ok {
		a = r.apps[r.fallback]
	}
	return a.Launch(open)
}
