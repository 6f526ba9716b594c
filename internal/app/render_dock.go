package app

import (
	"strings"
	"unicode"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/nelieo/aios/internal/config"
	"github.com/nelieo/aios/internal/registry"
	"github.com/nelieo/aios/internal/theme"
)

// Magnification tiers used to style dock icons. A terminal cannot scale a
// glyph, so larger scales become bolder and brighter.
const (
	dockScaleBold      = 1.15
	dockScaleHighlight = 1.5
)

// dockGlyph returns the icon drawn for an app.
func dockGlyph(app registry.AppDefinition) string {
	if !config.UseASCIIOnly && app.Icon != "" {
		return app.Icon
	}
	for _, r := range app.DisplayName {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return string(unicode.ToUpper(r))
		}
	}
	return "?"
}

// renderDock draws the dock bar, one layer per icon, and a label under the
// icon nearest the pointer.
func (m *OS) renderDock() []*lipgloss.Layer {
	b := m.DockBounds()
	if b.Width > m.Width || m.Height < config.DockRows+config.StatusRows {
		return nil
	}

	bar := lipgloss.NewStyle().
		Border(getBorder()).
		BorderForeground(theme.DockSeparator()).
		BorderBackground(theme.DockBg()).
		Background(theme.DockBg()).
		Width(b.Width).
		Height(b.Height).
		Render("")

	layers := []*lipgloss.Layer{
		lipgloss.NewLayer(bar).X(b.X).Y(b.Y).Z(config.ZIndexDock).ID("dock"),
	}

	icons := m.Desktop.Dock.Icons()
	scales := m.DockScales()
	focus, bestScale := -1, 0.0
	for i, app := range icons {
		scale := scales[i]
		style := lipgloss.NewStyle().Foreground(theme.DockFg()).Background(theme.DockBg())
		if m.IsRunning(app.ID) {
			style = style.Foreground(theme.DockRunning())
		}
		switch {
		case scale >= dockScaleHighlight:
			style = style.Bold(true).Foreground(theme.DockHighlight())
		case scale >= dockScaleBold:
			style = style.Bold(true)
		}
		if !m.DockHover && i == m.DockSelection {
			style = style.Underline(true)
		}

		glyph := style.Render(dockGlyph(app))
		x := m.DockIconColumn(i) - lipgloss.Width(glyph)/2
		layers = append(layers, lipgloss.NewLayer(glyph).
			X(x).Y(b.Y+1).Z(config.ZIndexDockIcon).ID("dock-"+app.ID))

		if scale > bestScale {
			focus, bestScale = i, scale
		}
	}

	// Tooltip for the icon under the pointer
	if m.DockHover && focus >= 0 && bestScale > 1 {
		app := icons[focus]
		label := lipgloss.NewStyle().
			Foreground(theme.DockHighlight()).
			Background(theme.DockBg()).
			Padding(0, 1).
			Render(ansi.Truncate(app.DisplayName, 24, "…"))
		x := max(0, min(m.DockIconColumn(focus)-lipgloss.Width(label)/2, m.Width-lipgloss.Width(label)))
		layers = append(layers, lipgloss.NewLayer(label).
			X(x).Y(b.Y+b.Height).Z(config.ZIndexDockIcon).ID("dock-tooltip"))
	}

	return layers
}

// dockHint summarizes the dock for the status line.
func (m *OS) dockHint() string {
	icons := m.Desktop.Dock.Icons()
	if len(icons) == 0 {
		return "dock empty"
	}
	i := max(0, min(m.DockSelection, len(icons)-1))
	return strings.TrimSpace(dockGlyph(icons[i]) + " " + icons[i].DisplayName)
}
