// Package config provides configuration constants, keybindings and user settings.
package config

import (
	"time"
)

// =============================================================================
// Viewport Mapping
// =============================================================================

const (
	// DefaultCellWidth is how many viewport pixels one terminal column covers
	DefaultCellWidth = 8

	// DefaultCellHeight is how many viewport pixels one terminal row covers
	DefaultCellHeight = 16

	// MinCellSize is the smallest accepted cell dimension
	MinCellSize = 2

	// MaxCellSize is the largest accepted cell dimension
	MaxCellSize = 64
)

// =============================================================================
// Layout
// =============================================================================

const (
	// DockRows is the number of terminal rows reserved for the dock
	DockRows = 3

	// StatusRows is the number of rows used by the status line at the bottom
	StatusRows = 1

	// TitleBarRows is the height of a window's title bar in rows
	TitleBarRows = 1

	// ResizeHandleCells is the size of the bottom-right resize grab area
	ResizeHandleCells = 2

	// KeyboardMoveStep is how far, in viewport pixels, one move key shifts a window
	KeyboardMoveStep = 32

	// KeyboardResizeStep is how much one resize key grows or shrinks a window
	KeyboardResizeStep = 40
)

// =============================================================================
// Z-Index Layers
// =============================================================================

const (
	// ZIndexWallpaper is the desktop background
	ZIndexWallpaper = 0

	// ZIndexWindowBase is added to a window's stacking value
	ZIndexWindowBase = 10

	// ZIndexDock keeps the dock above every window
	ZIndexDock = 1 << 30

	// ZIndexDockIcon draws icons over the dock background
	ZIndexDockIcon = ZIndexDock + 1

	// ZIndexStatus is the bottom status line
	ZIndexStatus = ZIndexDock + 2

	// ZIndexNotifications stacks toasts above the chrome
	ZIndexNotifications = ZIndexDock + 3

	// ZIndexLogs is the log viewer overlay
	ZIndexLogs = ZIndexDock + 4

	// ZIndexHelp is the keybinding overlay
	ZIndexHelp = ZIndexDock + 5
)

// =============================================================================
// Timeouts and Intervals
// =============================================================================

const (
	// StatsUpdateInterval is the interval between CPU and memory samples
	StatsUpdateInterval = 2 * time.Second

	// ClockUpdateInterval is how often the clock is redrawn
	ClockUpdateInterval = time.Second

	// NotificationDuration is how long a notification stays on screen
	NotificationDuration = 2 * time.Second

	// ControlRequestTimeout bounds a single control socket round trip
	ControlRequestTimeout = 5 * time.Second
)

// =============================================================================
// FPS and Refresh Rates
// =============================================================================

const (
	// NormalFPS is the refresh rate during regular operation
	NormalFPS = 60

	// InteractionFPS is the refresh rate while dragging or resizing
	InteractionFPS = 30
)

// =============================================================================
// Logging
// =============================================================================

const (
	// MaxLogMessages is the size of the in-app log ring
	MaxLogMessages = 200
)

// =============================================================================
// Runtime Settings (set from user config and CLI flags)
// =============================================================================

var (
	// CellWidth is the active horizontal pixel-per-column ratio
	CellWidth = DefaultCellWidth

	// CellHeight is the active vertical pixel-per-row ratio
	CellHeight = DefaultCellHeight

	// UseASCIIOnly replaces dock glyphs with ASCII initials
	UseASCIIOnly = false

	// HideClock hides the clock in the status line
	HideClock = false

	// ShowStats shows CPU and memory usage in the status line
	ShowStats = true
)
