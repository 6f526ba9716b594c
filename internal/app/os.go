// Package app provides the terminal shell that hosts the AIOS desktop.
package app

import (
	"fmt"
	"time"

	"charm.land/log/v2"
	"github.com/google/uuid"
	"github.com/nelieo/aios/internal/config"
	"github.com/nelieo/aios/internal/desktop"
	"github.com/nelieo/aios/internal/wm"
)

// OS is the bubbletea model for the desktop shell. All desktop mutations
// happen on the update goroutine; control requests are funneled through it.
type OS struct {
	Desktop *desktop.Desktop

	// Terminal size in cells
	Width  int
	Height int

	// Pointer interaction state
	Dragging     bool
	Resizing     bool
	ActiveWindow string // window being dragged or resized
	DragOffsetX  int    // pointer offset from the window origin, in pixels
	DragOffsetY  int
	LastPointerX int // last pointer position during a drag, in pixels
	LastPointerY int

	// Dock pointer state. DockPointerPX is measured from the dock's left edge.
	DockHover     bool
	DockPointerPX float64
	DockSelection int

	ShowHelp        bool
	ShowLogs        bool
	LogScrollOffset int
	LogMessages     []LogMessage
	Notifications   []Notification

	CPUUsage        float64
	RAMUsage        float64
	LastStatsUpdate time.Time

	KeybindRegistry *config.KeybindRegistry
	ControlChan     chan ControlRequest

	// Logger mirrors the in-app log to a file when set.
	Logger *log.Logger

	wallpaperCache wallpaperCache
}

// Options configures NewOS.
type Options struct {
	Desktop  *desktop.Desktop
	Keybinds *config.KeybindRegistry
	Logger   *log.Logger
}

// Notification represents a temporary notification message.
type Notification struct {
	ID        string
	Message   string
	Type      string // "info", "success", "warning", "error"
	StartTime time.Time
	Duration  time.Duration
}

// LogMessage represents a log entry with timestamp and level.
type LogMessage struct {
	Time    time.Time
	Level   string // INFO, WARN, ERROR
	Message string
}

// NewOS creates the shell model around d.
func NewOS(opts Options) *OS {
	d := opts.Desktop
	if d == nil {
		d = desktop.New(desktop.Options{})
	}
	keybinds := opts.Keybinds
	if keybinds == nil {
		keybinds = config.NewKeybindRegistry(config.DefaultConfig())
	}

	m := &OS{
		Desktop:         d,
		KeybindRegistry: keybinds,
		ControlChan:     make(chan ControlRequest),
		Logger:          opts.Logger,
	}
	d.Store.Subscribe(m.logEvent)
	return m
}

func createID() string {
	return uuid.New().String()
}

// logEvent records store mutations. Live drag and resize updates are
// skipped so the log stays readable.
func (m *OS) logEvent(ev wm.Event) {
	switch ev.Kind {
	case wm.EventMoved, wm.EventResized:
		return
	}
	if ev.WindowID == "" {
		m.LogInfo("%s", ev.Kind)
		return
	}
	m.LogInfo("%s %s (%s)", ev.Kind, ev.AppID, shortID(ev.WindowID))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Log adds a new log message to the log buffer.
func (m *OS) Log(level, format string, args ...any) {
	message := fmt.Sprintf(format, args...)

	_, maxScroll := LogScrollBounds(m.Height, len(m.LogMessages))
	wasAtBottom := m.LogScrollOffset >= maxScroll-2

	m.LogMessages = append(m.LogMessages, LogMessage{
		Time:    time.Now(),
		Level:   level,
		Message: message,
	})
	if len(m.LogMessages) > config.MaxLogMessages {
		m.LogMessages = m.LogMessages[len(m.LogMessages)-config.MaxLogMessages:]
	}

	// sticky scroll
	if m.ShowLogs && wasAtBottom {
		_, m.LogScrollOffset = LogScrollBounds(m.Height, len(m.LogMessages))
	}

	if m.Logger != nil {
		switch level {
		case "ERROR":
			m.Logger.Error(message)
		case "WARN":
			m.Logger.Warn(message)
		default:
			m.Logger.Info(message)
		}
	}
}

// LogInfo logs an informational message.
func (m *OS) LogInfo(format string, args ...any) {
	m.Log("INFO", format, args...)
}

// LogWarn logs a warning message.
func (m *OS) LogWarn(format string, args ...any) {
	m.Log("WARN", format, args...)
}

// LogError logs an error message.
func (m *OS) LogError(format string, args ...any) {
	m.Log("ERROR", format, args...)
}

// LogScrollBounds computes the scrollable range for the log viewer overlay.
// It returns the number of visible entries and the maximum scroll offset.
func LogScrollBounds(screenHeight, totalLogs int) (logsPerPage, maxScroll int) {
	maxDisplayHeight := max(screenHeight-8, 8)

	// title, blank, blank, hint
	fixedLines := 4
	if totalLogs > maxDisplayHeight-fixedLines {
		fixedLines = 6
	}
	logsPerPage = max(maxDisplayHeight-fixedLines, 1)
	maxScroll = max(totalLogs-logsPerPage, 0)
	return logsPerPage, maxScroll
}

// ShowNotification displays a temporary notification and mirrors it to the log.
func (m *OS) ShowNotification(message, notifType string, duration time.Duration) {
	m.Notifications = append(m.Notifications, Notification{
		ID:        createID(),
		Message:   message,
		Type:      notifType,
		StartTime: time.Now(),
		Duration:  duration,
	})

	switch notifType {
	case "error":
		m.LogError("%s", message)
	case "warning":
		m.LogWarn("%s", message)
	default:
		m.LogInfo("%s", message)
	}
}

// CleanupNotifications removes expired notifications.
func (m *OS) CleanupNotifications() {
	now := time.Now()
	var active []Notification
	for _, notif := range m.Notifications {
		if now.Sub(notif.StartTime) < notif.Duration {
			active = append(active, notif)
		}
	}
	m.Notifications = active
}

// FocusedWindow returns the topmost visible window.
func (m *OS) FocusedWindow() (desktop.Window, bool) {
	return m.Desktop.Store.Topmost()
}

// MinimizedCount returns how many windows are hidden.
func (m *OS) MinimizedCount() int {
	n := 0
	for _, w := range m.Desktop.Store.Windows() {
		if w.Minimized {
			n++
		}
	}
	return n
}

// IsRunning reports whether appID has at least one open window.
func (m *OS) IsRunning(appID string) bool {
	for _, w := range m.Desktop.Store.Windows() {
		if w.AppID == appID {
			return true
		}
	}
	return false
}

// LaunchDockIcon launches the pinned app at index i and reports the result.
func (m *OS) LaunchDockIcon(i int) bool {
	w, ok := m.Desktop.LaunchDockIcon(i)
	if !ok {
		return false
	}
	m.DockSelection = i
	m.ShowNotification("Opened "+w.Title, "info", config.NotificationDuration)
	return true
}

// StopInteraction ends any drag or resize in progress.
func (m *OS) StopInteraction() {
	m.Dragging = false
	m.Resizing = false
	m.ActiveWindow = ""
}

// Interacting reports whether a window is being dragged or resized.
func (m *OS) Interacting() bool {
	return m.Dragging || m.Resizing
}
