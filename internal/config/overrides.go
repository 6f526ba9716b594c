package config

import (
	"charm.land/log/v2"
	"github.com/nelieo/aios/internal/theme"
)

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and should use the user config default.
type Overrides struct {
	// ASCIIOnly uses ASCII initials instead of dock glyphs
	ASCIIOnly bool

	// HideClock overrides hiding the clock
	HideClock bool

	// NoStats hides the CPU and memory readout
	NoStats bool

	// CellWidth overrides pixels per column (0 means use config)
	CellWidth int

	// CellHeight overrides pixels per row (0 means use config)
	CellHeight int

	// ThemeName is the theme to load
	ThemeName string
}

// ApplyOverrides applies CLI flag overrides to global config, falling back to user config defaults.
// If userConfig is nil, only CLI flag values (when set) are applied.
func ApplyOverrides(overrides Overrides, userConfig *UserConfig) {
	// ASCII Only - OR of CLI flag and user config
	UseASCIIOnly = overrides.ASCIIOnly || (userConfig != nil && userConfig.Appearance.ASCIIOnly)

	// Hide Clock - OR of CLI flag and user config
	HideClock = overrides.HideClock || (userConfig != nil && userConfig.Appearance.HideClock)

	// Stats - disabled by flag, otherwise user config
	switch {
	case overrides.NoStats:
		ShowStats = false
	case userConfig != nil && userConfig.Appearance.ShowStats != nil:
		ShowStats = *userConfig.Appearance.ShowStats
	}

	// Cell size - CLI flag takes precedence, otherwise use user config
	CellWidth = pickCellSize(overrides.CellWidth, userConfig, true)
	CellHeight = pickCellSize(overrides.CellHeight, userConfig, false)

	// Theme - CLI flag takes precedence, otherwise use user config
	themeName := overrides.ThemeName
	if themeName == "" && userConfig != nil && userConfig.Appearance.Theme != "" {
		themeName = userConfig.Appearance.Theme
	}
	if themeName != "" {
		if err := theme.Initialize(themeName); err != nil {
			log.Warn("failed to load theme", "theme", themeName, "err", err)
		}
	}
}

func pickCellSize(flag int, userConfig *UserConfig, horizontal bool) int {
	size := flag
	if size == 0 && userConfig != nil {
		if horizontal {
			size = userConfig.Appearance.CellWidth
		} else {
			size = userConfig.Appearance.CellHeight
		}
	}
	if size == 0 {
		if horizontal {
			return DefaultCellWidth
		}
		return DefaultCellHeight
	}
	return max(MinCellSize, min(size, MaxCellSize))
}
