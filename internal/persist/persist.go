// Package persist stores the small amount of desktop state that survives a
// restart: the pinned dock applications and the wallpaper.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Keys written by the desktop.
const (
	KeyPinned    = "aios.dock.pinned"
	KeyWallpaper = "aios.wallpaper"
)

// ErrUnknownBackend is returned by Open for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown persistence backend")

// Adapter is durable string key/value storage.
type Adapter interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open returns the adapter for backend. An empty path selects the backend's
// default location under the XDG state directory. The returned close
// function releases any resources held by the adapter.
func Open(backend, path string) (Adapter, func() error, error) {
	noop := func() error { return nil }

	switch backend {
	case "", BackendFile:
		f, err := OpenFile(path)
		if err != nil {
			return nil, nil, err
		}
		return f, noop, nil
	case BackendSQLite:
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case BackendMemory:
		return NewMemory(), noop, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// EncodeList serializes an ordered list of identifiers.
func EncodeList(ids []string) string {
	if ids == nil {
		ids = []string{}
	}
	data, _ := json.Marshal(ids)
	return string(data)
}

// DecodeList parses a value written by EncodeList. Malformed input yields nil.
func DecodeList(s string) []string {
	var ids []string
	if err := json.Unmarshal([]byte(s), &ids); err != nil {
		return nil
	}
	return ids
}

// Memory is an in-process Adapter.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty Memory adapter.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get implements Adapter.
func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Set implements Adapter.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
