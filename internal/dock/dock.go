// Package dock manages the pinned application bar and its magnification.
package dock

import (
	"slices"

	"charm.land/log/v2"
	"github.com/nelieo/aios/internal/persist"
	"github.com/nelieo/aios/internal/registry"
	"github.com/nelieo/aios/internal/wm"
)

// Dock is the ordered set of pinned applications. Every mutation is written
// through to the persistence adapter; the in-memory list stays authoritative
// when a write fails.
type Dock struct {
	pinned   []string
	apps     *registry.Registry
	store    persist.Adapter
	defaults []string
	logger   *log.Logger
}

// Option configures a Dock.
type Option func(*Dock)

// WithDefaults sets the list used when nothing usable is stored.
func WithDefaults(ids []string) Option {
	return func(d *Dock) {
		if len(ids) > 0 {
			d.defaults = append([]string(nil), ids...)
		}
	}
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(l *log.Logger) Option {
	return func(d *Dock) {
		if l != nil {
			d.logger = l
		}
	}
}

// New returns a dock restricted to the applications in apps. Call Load to
// read the stored list.
func New(apps *registry.Registry, store persist.Adapter, opts ...Option) *Dock {
	d := &Dock{
		apps:     apps,
		store:    store,
		defaults: registry.DefaultPinned,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// filter keeps registered, unique IDs in order.
func (d *Dock) filter(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if d.apps.Has(id) && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// Load reads the pinned list from storage. Unregistered entries are dropped
// and the defaults are used when nothing remains.
func (d *Dock) Load() {
	var stored []string
	if raw, ok := d.store.Get(persist.KeyPinned); ok {
		stored = persist.DecodeList(raw)
	}

	d.pinned = d.filter(stored)
	if len(d.pinned) == 0 {
		d.pinned = d.filter(d.defaults)
	}
}

func (d *Dock) save() {
	if err := d.store.Set(persist.KeyPinned, persist.EncodeList(d.pinned)); err != nil {
		d.logger.Warn("failed to persist dock", "err", err)
	}
}

// Pinned returns the pinned IDs in display order.
func (d *Dock) Pinned() []string {
	return append([]string(nil), d.pinned...)
}

// Len returns the number of pinned applications.
func (d *Dock) Len() int {
	return len(d.pinned)
}

// IsPinned reports whether id is on the dock.
func (d *Dock) IsPinned(id string) bool {
	return slices.Contains(d.pinned, id)
}

// Pin appends id. It returns false when id is unregistered or already pinned,
// in which case the list is unchanged.
func (d *Dock) Pin(id string) bool {
	if !d.apps.Has(id) || d.IsPinned(id) {
		return false
	}
	d.pinned = append(d.pinned, id)
	d.save()
	return true
}

// Unpin removes id. It returns false when id was not pinned.
func (d *Dock) Unpin(id string) bool {
	idx := slices.Index(d.pinned, id)
	if idx < 0 {
		return false
	}
	d.pinned = slices.Delete(d.pinned, idx, idx+1)
	d.save()
	return true
}

// Launch opens the application behind a pinned icon.
func (d *Dock) Launch(id string, open registry.Opener) (wm.Window[registry.Payload], error) {
	app, err := d.apps.Resolve(id)
	if err != nil {
		return wm.Window[registry.Payload]{}, err
	}
	return app.Launch(open), nil
}

// LaunchAt opens the application under icon index i.
func (d *Dock) LaunchAt(i int, open registry.Opener) (wm.Window[registry.Payload], bool) {
	if i < 0 || i >= len(d.pinned) {
		return wm.Window[registry.Payload]{}, false
	}
	w, err := d.Launch(d.pinned[i], open)
	return w, err == nil
}

// Icons returns the definitions of the pinned applications in order.
func (d *Dock) Icons() []registry.AppDefinition {
	out := make([]registry.AppDefinition, 0, len(d.pinned))
	for _, id := range d.pinned {
		if a, ok := d.apps.Get(id); ok {
			out = append(out, a)
		}
	}
	return out
}
