// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"charm.land/log/v2"
	"github.com/adrg/xdg"
)

// New returns a leveled logger writing to w. Unknown levels fall back to
// info.
func New(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "aios",
		Level:           lvl,
	})
}

// DefaultFilePath is where the shell logs while it owns the terminal.
func DefaultFilePath() (string, error) {
	return xdg.StateFile("aios/aios.log")
}

// OpenFile opens (appending) the log file at path, or the default path when
// path is empty, and returns a logger writing to it. The caller closes the
// returned file.
func OpenFile(path, level string) (*log.Logger, *os.File, error) {
	if path == "" {
		p, err := DefaultFilePath()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve log path: %w", err)
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	// #nosec G304 - path comes from user config or the XDG state dir
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return New(f, level), f, nil
}
