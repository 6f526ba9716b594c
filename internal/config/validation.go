package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"charm.land/log/v2"
)

// ValidationIssue is a single problem found in a user config.
type ValidationIssue struct {
	Field   string // config section, e.g. "appearance"
	Key     string
	Message string
}

// ValidationResult collects errors, which stop startup, and warnings, which
// are logged.
type ValidationResult struct {
	Errors   []ValidationIssue
	Warnings []ValidationIssue
}

// HasErrors reports whether any errors were found.
func (v *ValidationResult) HasErrors() bool { return len(v.Errors) > 0 }

// HasWarnings reports whether any warnings were found.
func (v *ValidationResult) HasWarnings() bool { return len(v.Warnings) > 0 }

func (v *ValidationResult) addError(field, key, format string, args ...any) {
	v.Errors = append(v.Errors, ValidationIssue{field, key, fmt.Sprintf(format, args...)})
}

func (v *ValidationResult) addWarning(field, key, format string, args ...any) {
	v.Warnings = append(v.Warnings, ValidationIssue{field, key, fmt.Sprintf(format, args...)})
}

var validBackends = []string{"file", "sqlite", "memory"}

// ValidateConfig checks cfg for values the shell cannot run with.
func ValidateConfig(cfg *UserConfig) *ValidationResult {
	v := &ValidationResult{}

	cellSizes := []struct {
		key  string
		size int
	}{
		{"cell_width", cfg.Appearance.CellWidth},
		{"cell_height", cfg.Appearance.CellHeight},
	}
	for _, c := range cellSizes {
		if c.size < MinCellSize || c.size > MaxCellSize {
			v.addError("appearance", c.key, "must be between %d and %d, got %d", MinCellSize, MaxCellSize, c.size)
		}
	}

	if !slices.Contains(validBackends, cfg.Persistence.Backend) {
		v.addError("persistence", "backend", "must be one of %s, got %q", strings.Join(validBackends, ", "), cfg.Persistence.Backend)
	}
	if cfg.Persistence.Backend == "memory" && cfg.Persistence.Path != "" {
		v.addWarning("persistence", "path", "ignored by the memory backend")
	}

	if u, err := url.Parse(cfg.Desktop.StreamBase); err != nil || u.Scheme == "" || u.Host == "" {
		v.addError("desktop", "stream_base", "must be an absolute URL, got %q", cfg.Desktop.StreamBase)
	}

	if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
		v.addError("log", "level", "unknown level %q", cfg.Log.Level)
	}

	known := DefaultKeybindings()
	seen := make(map[string]string)
	actions := make([]string, 0, len(cfg.Keybindings))
	for action := range cfg.Keybindings {
		actions = append(actions, action)
	}
	slices.Sort(actions)
	for _, action := range actions {
		if _, ok := known[action]; !ok {
			v.addWarning("keybindings", action, "unknown action")
			continue
		}
		for _, key := range cfg.Keybindings[action] {
			if other, dup := seen[key]; dup {
				v.addWarning("keybindings", action, "key %q is also bound to %s", key, other)
				continue
			}
			seen[key] = action
		}
	}

	return v
}
