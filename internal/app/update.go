package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/nelieo/aios/internal/config"
)

// TickerMsg represents a periodic tick used to refresh the clock and expire
// notifications.
type TickerMsg time.Time

// AppOpenedMsg is the external "app opened" notification. It launches the
// app exactly like a dock click.
type AppOpenedMsg struct {
	AppID string
}

// InputHandler is a function type that handles input messages.
// This allows the Update method to delegate to the input package without creating a circular dependency.
type InputHandler func(msg tea.Msg, o *OS) (tea.Model, tea.Cmd)

var inputHandler InputHandler

// SetInputHandler registers the input handler function.
// This must be called during initialization before the Update loop runs.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// Init starts the clock, the stats sampler and the control listener.
func (m *OS) Init() tea.Cmd {
	cmds := []tea.Cmd{
		TickCmd(),
		ListenForControl(m.ControlChan),
	}
	if config.ShowStats {
		cmds = append(cmds, func() tea.Msg { return SampleStats(time.Now()) })
	}
	return tea.Batch(cmds...)
}

// TickCmd schedules the next clock tick.
func TickCmd() tea.Cmd {
	return tea.Tick(config.ClockUpdateInterval, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// Update handles every message for the shell.
func (m *OS) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickerMsg:
		m.CleanupNotifications()
		return m, TickCmd()

	case StatsMsg:
		m.applyStats(msg)
		if !config.ShowStats {
			return m, nil
		}
		return m, StatsCmd()

	case ControlMsg:
		m.handleControl(msg)
		return m, ListenForControl(m.ControlChan)

	case AppOpenedMsg:
		w := m.Desktop.AppOpened(msg.AppID)
		m.ShowNotification("Opened "+w.Title, "info", config.NotificationDuration)
		return m, nil

	case tea.KeyPressMsg, tea.MouseClickMsg, tea.MouseMotionMsg,
		tea.MouseReleaseMsg, tea.MouseWheelMsg:
		if inputHandler != nil {
			return inputHandler(msg, m)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Desktop.Resize(m.Viewport())
		m.LogInfo("viewport %dx%d (%dx%d cells)", m.Viewport().Width, m.Viewport().Height, msg.Width, msg.Height)
		return m, nil
	}

	return m, nil
}
