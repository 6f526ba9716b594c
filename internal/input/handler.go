// Package input implements keyboard and mouse handling for the desktop shell.
package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/nelieo/aios/internal/app"
)

// HandleInput is the main input coordinator that routes messages to appropriate handlers
func HandleInput(msg tea.Msg, o *app.OS) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return HandleKeyPress(msg, o)
	case tea.MouseClickMsg:
		return handleMouseClick(msg, o)
	case tea.MouseMotionMsg:
		return handleMouseMotion(msg, o)
	case tea.MouseReleaseMsg:
		return handleMouseRelease(msg, o)
	case tea.MouseWheelMsg:
		return handleMouseWheel(msg, o)
	}
	return o, nil
}

// HandleKeyPress handles all keyboard input. Overlays take the keyboard
// while open; otherwise keys are resolved through the keybind registry.
func HandleKeyPress(msg tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	key := msg.String()

	if o.ShowHelp {
		switch key {
		case "?", "esc", "q":
			o.ShowHelp = false
		}
		return o, nil
	}

	if o.ShowLogs {
		return handleLogViewerKey(msg, o)
	}

	// Escape cancels a drag in progress
	if key == "esc" {
		if o.Interacting() {
			o.StopInteraction()
		}
		return o, nil
	}

	if idx, ok := dockDigit(key); ok {
		if !o.LaunchDockIcon(idx) {
			o.ShowNotification("No app pinned at "+key, "warning", notificationDuration)
		}
		return o, nil
	}

	action := o.KeybindRegistry.GetAction(key)
	if action == "" {
		return o, nil
	}
	return GetDispatcher().Dispatch(action, msg, o)
}

// dockDigit maps "1".."9" to a dock index.
func dockDigit(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	return int(key[0] - '1'), true
}

func handleLogViewerKey(msg tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	key := msg.String()

	if key == "q" || key == "esc" {
		o.ShowLogs = false
		o.LogScrollOffset = 0
		return o, nil
	}

	logsPerPage, maxScroll := app.LogScrollBounds(o.Height, len(o.LogMessages))
	pageSize := max(logsPerPage/2, 1)

	switch key {
	case "up", "k":
		o.LogScrollOffset = max(o.LogScrollOffset-1, 0)
	case "down", "j":
		o.LogScrollOffset = min(o.LogScrollOffset+1, maxScroll)
	case "pgup", "ctrl+u":
		o.LogScrollOffset = max(o.LogScrollOffset-pageSize, 0)
	case "pgdown", "ctrl+d":
		o.LogScrollOffset = min(o.LogScrollOffset+pageSize, maxScroll)
	case "g", "home":
		o.LogScrollOffset = 0
	case "G", "end":
		o.LogScrollOffset = maxScroll
	}
	return o, nil
}
