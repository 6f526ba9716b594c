// Package theme provides color themes and styling for the AIOS desktop.
package theme

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/log/v2"
	tint "github.com/lrstanley/bubbletint/v2"
	"github.com/lucasb-eyer/go-colorful"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup.
// If themeName is empty, theming will be disabled and the built-in palette is used.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	// Load custom themes from user's themes directory
	if themesDir, err := GetThemesDir(); err == nil {
		if _, err := LoadCustomThemes(themesDir); err != nil {
			log.Warn("error loading custom themes", "err", err)
		}
	}

	if !tint.SetTintID(themeName) {
		tint.SetTintID("default")
		return fmt.Errorf("unknown theme %q, using default", themeName)
	}
	return nil
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// Available lists every registered theme ID.
func Available() []string {
	tint.NewDefaultRegistry()
	if themesDir, err := GetThemesDir(); err == nil {
		_, _ = LoadCustomThemes(themesDir)
	}
	return tint.TintIDs()
}

// DesktopBg is painted behind the windows when the wallpaper has no colors
// of its own (an image URL).
func DesktopBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#1e1b4b")
	}
	return t.Bg
}

// WindowBg returns the background of a window's content area.
func WindowBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#0f172a")
	}
	return t.Black
}

// WindowFg returns the text color inside a window.
func WindowFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#e2e8f0")
	}
	return t.Fg
}

// BorderFocused returns the border color of the topmost window.
func BorderFocused() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#a5b4fc")
	}
	return t.BrightCyan
}

// BorderUnfocused returns the border color of every other window.
func BorderUnfocused() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#475569")
	}
	return t.BrightBlack
}

// TitleFg returns the title bar text color.
func TitleFg(focused bool) color.Color {
	if focused {
		return BorderFocused()
	}
	return lipgloss.Color("#94a3b8")
}

// ButtonClose returns the color of the close button.
func ButtonClose() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#f87171")
	}
	return t.Red
}

// ButtonMinimize returns the color of the minimize button.
func ButtonMinimize() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#fbbf24")
	}
	return t.Yellow
}

// ButtonMaximize returns the color of the maximize button.
func ButtonMaximize() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#4ade80")
	}
	return t.Green
}

// URLFg is used for the streamed URL shown in a window body.
func URLFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#7dd3fc")
	}
	return t.Blue
}

// DockBg returns the background color for the dock.
func DockBg() color.Color {
	return lipgloss.Color("#2a2a3e")
}

// DockFg returns the foreground color for the dock.
func DockFg() color.Color {
	return lipgloss.Color("#a0a0a8")
}

// DockHighlight returns the color of the hovered dock icon.
func DockHighlight() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#ffffff")
	}
	return t.BrightWhite
}

// DockRunning marks apps with at least one open window.
func DockRunning() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#4ade80")
	}
	return t.BrightGreen
}

// DockSeparator returns the separator color for the dock.
func DockSeparator() color.Color {
	return lipgloss.Color("#303040")
}

// StatusBg returns the status line background.
func StatusBg() color.Color {
	return lipgloss.Color("#111827")
}

// StatusFg returns the status line text color.
func StatusFg() color.Color {
	return lipgloss.Color("#9ca3af")
}

func LogViewerTitle() color.Color { return lipgloss.Color("14") }
func LogViewerError() color.Color { return lipgloss.Color("9") }
func LogViewerWarn() color.Color  { return lipgloss.Color("11") }
func LogViewerInfo() color.Color  { return lipgloss.Color("10") }
func LogViewerDebug() color.Color { return lipgloss.Color("8") }
func LogViewerBg() color.Color    { return lipgloss.Color("#1a1a2a") }

// HelpKeyBadge returns the color for key badges in the help overlay.
func HelpKeyBadge() color.Color {
	return lipgloss.Color("5")
}

// HelpBorder returns the border color for the help overlay.
func HelpBorder() color.Color {
	return lipgloss.Color("14")
}

// HelpTitle returns the section title color for the help overlay.
func HelpTitle() color.Color {
	return lipgloss.Color("12")
}

// NotificationBg returns the background of transient notifications.
func NotificationBg() color.Color {
	return lipgloss.Color("#1f2937")
}

// NotificationFg returns the color of notification text for a log level.
func NotificationFg(level string) color.Color {
	switch level {
	case "error":
		return LogViewerError()
	case "warn":
		return LogViewerWarn()
	default:
		return LogViewerInfo()
	}
}

// ParseHex converts "#rgb" or "#rrggbb" into a color. ok is false for
// anything else.
func ParseHex(s string) (color.Color, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 3 && len(s) != 6 {
		return nil, false
	}
	c, err := colorful.Hex("#" + s)
	if err != nil {
		return nil, false
	}
	return c, true
}

// Blend linearly interpolates between two colors in RGB, t in [0, 1].
func Blend(a, b color.Color, t float64) color.Color {
	t = max(0, min(t, 1))
	ca, _ := colorful.MakeColor(a)
	cb, _ := colorful.MakeColor(b)
	return ca.BlendRgb(cb, t).Clamped()
}

// ColorToString converts a color.Color to a hex string
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
