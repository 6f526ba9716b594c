package persist

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// fileState is the TOML document written by File.
type fileState struct {
	Values map[string]string `toml:"values"`
}

// File is an Adapter backed by a TOML document. Every Set rewrites the file.
type File struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// DefaultFilePath returns ~/.local/state/aios/state.toml.
func DefaultFilePath() (string, error) {
	path, err := xdg.StateFile("aios/state.toml")
	if err != nil {
		return "", fmt.Errorf("failed to get state path: %w", err)
	}
	return path, nil
}

// OpenFile loads the state file at path, or the default path when empty.
// A missing file is not an error.
func OpenFile(path string) (*File, error) {
	if path == "" {
		var err error
		if path, err = DefaultFilePath(); err != nil {
			return nil, err
		}
	}

	f := &File{path: path, values: make(map[string]string)}

	// #nosec G304 - path is the user's own state file
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var st fileState
	if err := toml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	for k, v := range st.Values {
		f.values[k] = v
	}
	return f, nil
}

// Path returns the file location.
func (f *File) Path() string {
	return f.path
}

// Get implements Adapter.
func (f *File) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok
}

// Set implements Adapter. The value is kept in memory even when writing the
// file fails.
func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return f.flush()
}

func (f *File) flush() error {
	data, err := toml.Marshal(fileState{Values: f.values})
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0750); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".state-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
