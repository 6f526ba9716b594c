package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/nelieo/aios/internal/app"
	"github.com/nelieo/aios/internal/config"
)

// handleMouseClick handles mouse click events
func handleMouseClick(msg tea.MouseClickMsg, o *app.OS) (*app.OS, tea.Cmd) {
	mouse := msg.Mouse()
	if o.ShowHelp || o.ShowLogs {
		return o, nil
	}

	hit := o.HitTest(mouse.X, mouse.Y)
	if hit.Zone == app.ZoneDock {
		return handleDockClick(mouse, hit.DockIndex, o)
	}
	if mouse.Button != tea.MouseLeft || hit.WindowID == "" {
		return o, nil
	}

	store := o.Desktop.Store
	switch hit.Zone {
	case app.ZoneClose:
		store.Close(hit.WindowID)
	case app.ZoneMinimize:
		store.SetMinimized(hit.WindowID, true)
	case app.ZoneMaximize:
		store.ToggleMaximized(hit.WindowID)
	case app.ZoneTitle:
		store.Focus(hit.WindowID)
		startInteraction(o, hit.WindowID, mouse, false)
	case app.ZoneResize:
		store.Focus(hit.WindowID)
		startInteraction(o, hit.WindowID, mouse, true)
	default:
		store.Focus(hit.WindowID)
	}
	return o, nil
}

// handleDockClick launches on left click and unpins on right click.
func handleDockClick(mouse tea.Mouse, idx int, o *app.OS) (*app.OS, tea.Cmd) {
	if idx < 0 {
		return o, nil
	}
	switch mouse.Button {
	case tea.MouseLeft:
		o.LaunchDockIcon(idx)
	case tea.MouseRight:
		pinned := o.Desktop.Dock.Pinned()
		if idx >= len(pinned) {
			return o, nil
		}
		if o.Desktop.Dock.Unpin(pinned[idx]) {
			o.ShowNotification("Unpinned "+pinned[idx], "info", notificationDuration)
			o.DockSelection = max(0, min(o.DockSelection, o.Desktop.Dock.Len()-1))
		}
	}
	return o, nil
}

func startInteraction(o *app.OS, id string, mouse tea.Mouse, resize bool) {
	w, ok := o.Desktop.Store.Get(id)
	if !ok {
		return
	}
	px, py := app.PointerPixels(mouse.X, mouse.Y)
	o.ActiveWindow = id
	o.Dragging = !resize
	o.Resizing = resize
	o.DragOffsetX = px - w.Geometry.X
	o.DragOffsetY = py - w.Geometry.Y
	o.LastPointerX = px
	o.LastPointerY = py
}

// handleMouseMotion tracks the dock pointer and drives drags and resizes.
func handleMouseMotion(msg tea.MouseMotionMsg, o *app.OS) (*app.OS, tea.Cmd) {
	mouse := msg.Mouse()

	b := o.DockBounds()
	o.DockHover = b.Contains(mouse.X, mouse.Y)
	if o.DockHover {
		o.DockPointerPX = o.DockOffset(mouse.X)
	}

	if !o.Interacting() {
		return o, nil
	}
	w, ok := o.Desktop.Store.Get(o.ActiveWindow)
	if !ok {
		o.StopInteraction()
		return o, nil
	}

	px, py := app.PointerPixels(mouse.X, mouse.Y)
	o.LastPointerX, o.LastPointerY = px, py

	if o.Dragging {
		o.Desktop.Store.Move(w.ID, px-o.DragOffsetX, py-o.DragOffsetY)
		return o, nil
	}

	// The bottom-right corner follows the far edge of the cell under the pointer
	g := w.Geometry
	width := px - g.X + config.CellWidth/2
	height := py - g.Y + config.CellHeight/2
	o.Desktop.Store.Resize(w.ID, width, height, g.X, g.Y)
	return o, nil
}

// handleMouseRelease commits a drag. Drops near the left or right edge snap.
func handleMouseRelease(_ tea.MouseReleaseMsg, o *app.OS) (*app.OS, tea.Cmd) {
	if o.Dragging {
		if w, ok := o.Desktop.Store.Get(o.ActiveWindow); ok {
			o.Desktop.Store.DragEnd(w.ID, w.Geometry.X, w.Geometry.Y)
		}
	}
	o.StopInteraction()
	return o, nil
}

// handleMouseWheel scrolls the log viewer.
func handleMouseWheel(msg tea.MouseWheelMsg, o *app.OS) (*app.OS, tea.Cmd) {
	if !o.ShowLogs {
		return o, nil
	}
	_, maxScroll := app.LogScrollBounds(o.Height, len(o.LogMessages))
	switch msg.Mouse().Button {
	case tea.MouseWheelUp:
		o.LogScrollOffset = max(o.LogScrollOffset-1, 0)
	case tea.MouseWheelDown:
		o.LogScrollOffset = min(o.LogScrollOffset+1, maxScroll)
	}
	return o, nil
}
