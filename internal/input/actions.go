package input

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/nelieo/aios/internal/app"
	"github.com/nelieo/aios/internal/config"
)

const notificationDuration = config.NotificationDuration

// ActionHandler is a function that handles a specific action
type ActionHandler func(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd)

// ActionDispatcher maps action names to handler functions
type ActionDispatcher struct {
	handlers map[string]ActionHandler
}

// NewActionDispatcher creates a new action dispatcher with all handlers registered
func NewActionDispatcher() *ActionDispatcher {
	d := &ActionDispatcher{
		handlers: make(map[string]ActionHandler),
	}
	d.registerHandlers()
	return d
}

func (d *ActionDispatcher) registerHandlers() {
	// Windows
	d.Register(config.ActionNextWindow, makeCycleHandler(true))
	d.Register(config.ActionPrevWindow, makeCycleHandler(false))
	d.Register(config.ActionCloseWindow, handleCloseWindow)
	d.Register(config.ActionMinimizeWindow, handleMinimizeWindow)
	d.Register(config.ActionRestoreAll, handleRestoreAll)
	d.Register(config.ActionToggleMaximize, handleToggleMaximize)

	// Layout
	d.Register(config.ActionArrangeGrid, handleArrangeGrid)
	d.Register(config.ActionMoveLeft, makeMoveHandler(-config.KeyboardMoveStep, 0))
	d.Register(config.ActionMoveRight, makeMoveHandler(config.KeyboardMoveStep, 0))
	d.Register(config.ActionMoveUp, makeMoveHandler(0, -config.KeyboardMoveStep))
	d.Register(config.ActionMoveDown, makeMoveHandler(0, config.KeyboardMoveStep))
	d.Register(config.ActionGrowWidth, makeResizeHandler(config.KeyboardResizeStep, 0))
	d.Register(config.ActionShrinkWidth, makeResizeHandler(-config.KeyboardResizeStep, 0))
	d.Register(config.ActionGrowHeight, makeResizeHandler(0, config.KeyboardResizeStep))
	d.Register(config.ActionShrinkHeight, makeResizeHandler(0, -config.KeyboardResizeStep))

	// Apps
	d.Register(config.ActionLaunchDock, handleLaunchDock)
	d.Register(config.ActionDockNext, makeDockSelectHandler(1))
	d.Register(config.ActionDockPrev, makeDockSelectHandler(-1))
	d.Register(config.ActionLaunchAll, handleLaunchAll)

	// System
	d.Register(config.ActionToggleHelp, handleToggleHelp)
	d.Register(config.ActionToggleLogs, handleToggleLogs)
	d.Register(config.ActionQuit, handleQuit)
}

// Register adds an action handler
func (d *ActionDispatcher) Register(action string, handler ActionHandler) {
	d.handlers[action] = handler
}

// Dispatch executes the handler for a given action
func (d *ActionDispatcher) Dispatch(action string, msg tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	if handler, ok := d.handlers[action]; ok {
		return handler(msg, o)
	}
	return o, nil
}

// HasAction checks if an action is registered
func (d *ActionDispatcher) HasAction(action string) bool {
	_, ok := d.handlers[action]
	return ok
}

var globalDispatcher = NewActionDispatcher()

// GetDispatcher returns the global action dispatcher
func GetDispatcher() *ActionDispatcher {
	return globalDispatcher
}

// ============================================================================
// Window Action Handlers
// ============================================================================

func makeCycleHandler(forward bool) ActionHandler {
	return func(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
		o.Desktop.Store.CycleFocus(forward)
		return o, nil
	}
}

func handleCloseWindow(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	if w, ok := o.FocusedWindow(); ok {
		o.Desktop.Store.Close(w.ID)
	}
	return o, nil
}

func handleMinimizeWindow(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	if w, ok := o.FocusedWindow(); ok {
		o.Desktop.Store.SetMinimized(w.ID, true)
	}
	return o, nil
}

func handleRestoreAll(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	if o.MinimizedCount() == 0 {
		return o, nil
	}
	o.Desktop.Store.RestoreAll()
	return o, nil
}

func handleToggleMaximize(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	if w, ok := o.FocusedWindow(); ok {
		o.Desktop.Store.ToggleMaximized(w.ID)
	}
	return o, nil
}

// ============================================================================
// Layout Action Handlers
// ============================================================================

func handleArrangeGrid(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	if o.Desktop.Store.Len() > 0 {
		o.Desktop.Store.ArrangeGrid()
	}
	return o, nil
}

// makeMoveHandler shifts the focused window. The step is committed like a
// drag release, so keyboard moves snap at the edges too.
func makeMoveHandler(dx, dy int) ActionHandler {
	return func(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
		w, ok := o.FocusedWindow()
		if !ok {
			return o, nil
		}
		o.Desktop.Store.DragEnd(w.ID, w.Geometry.X+dx, w.Geometry.Y+dy)
		return o, nil
	}
}

func makeResizeHandler(dw, dh int) ActionHandler {
	return func(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
		w, ok := o.FocusedWindow()
		if !ok {
			return o, nil
		}
		g := w.Geometry
		o.Desktop.Store.Resize(w.ID, g.Width+dw, g.Height+dh, g.X, g.Y)
		return o, nil
	}
}

// ============================================================================
// App Action Handlers
// ============================================================================

func handleLaunchDock(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	o.LaunchDockIcon(o.DockSelection)
	return o, nil
}

func makeDockSelectHandler(delta int) ActionHandler {
	return func(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
		n := o.Desktop.Dock.Len()
		if n == 0 {
			return o, nil
		}
		o.DockSelection = ((o.DockSelection+delta)%n + n) % n
		return o, nil
	}
}

func handleLaunchAll(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	opened := o.Desktop.LaunchAll()
	o.ShowNotification(fmt.Sprintf("Opened %d apps", len(opened)), "info", notificationDuration)
	return o, nil
}

// ============================================================================
// System Action Handlers
// ============================================================================

func handleToggleHelp(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	o.ShowHelp = !o.ShowHelp
	return o, nil
}

func handleToggleLogs(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	wasShowing := o.ShowLogs
	o.ShowLogs = !o.ShowLogs
	if o.ShowLogs && !wasShowing {
		o.LogInfo("Log viewer opened")
		_, maxScroll := app.LogScrollBounds(o.Height, len(o.LogMessages))
		o.LogScrollOffset = maxScroll
	}
	return o, nil
}

func handleQuit(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	o.StopInteraction()
	return o, tea.Quit
}

