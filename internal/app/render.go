package app

import (
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/nelieo/aios/internal/config"
	"github.com/nelieo/aios/internal/desktop"
	"github.com/nelieo/aios/internal/geometry"
	"github.com/nelieo/aios/internal/theme"
)

func getBorder() lipgloss.Border {
	if config.UseASCIIOnly {
		return lipgloss.ASCIIBorder()
	}
	return lipgloss.RoundedBorder()
}

// GetCanvas composes the wallpaper, windows, dock and overlays.
func (m *OS) GetCanvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas(m.Width, m.Height)

	layers := []*lipgloss.Layer{
		lipgloss.NewLayer(m.renderWallpaper()).X(0).Y(0).Z(config.ZIndexWallpaper).ID("wallpaper"),
	}

	// Screen bounds in pixels
	screen := geometry.Rect{Width: m.Width * config.CellWidth, Height: m.Height * config.CellHeight}

	top, hasTop := m.FocusedWindow()
	for _, w := range m.Desktop.Store.Stacked() {
		if !w.Geometry.Intersects(screen) {
			continue
		}
		r := ToCells(w.Geometry)
		focused := hasTop && w.ID == top.ID
		content, x, y := clipWindowContent(renderWindow(w, r, focused), r.X, r.Y, m.Width, m.Height)
		if content == "" {
			continue
		}
		layers = append(layers, lipgloss.NewLayer(content).
			X(x).Y(y).Z(config.ZIndexWindowBase+w.Z).ID(w.ID))
	}

	layers = append(layers, m.renderDock()...)
	layers = append(layers, m.renderOverlays()...)

	for _, layer := range layers {
		canvas.Compose(layer)
	}
	return canvas
}

// View renders the desktop.
func (m *OS) View() tea.View {
	var view tea.View
	if m.Width <= 0 || m.Height <= 0 {
		view.SetContent("")
		return view
	}
	view.SetContent(lipgloss.Sprint(m.GetCanvas().Render()))
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	return view
}

// renderWindow draws a window frame at its cell size: a title bar with the
// window controls on the top border and the streamed app in the body.
func renderWindow(w desktop.Window, r CellRect, focused bool) string {
	borderColor := theme.BorderUnfocused()
	if focused {
		borderColor = theme.BorderFocused()
	}

	box := lipgloss.NewStyle().
		Border(getBorder()).
		BorderTop(false).
		BorderForeground(borderColor).
		BorderBackground(theme.WindowBg()).
		Background(theme.WindowBg()).
		Foreground(theme.WindowFg()).
		Width(r.Width).
		Height(r.Height - 1)

	body := box.Render(windowBody(w, r.Width-2, r.Height-2))
	return titleBar(w.Title, r.Width, borderColor, focused) + "\n" + body
}

func windowBody(w desktop.Window, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	bg := theme.WindowBg()

	lines := []string{
		lipgloss.NewStyle().Foreground(theme.URLFg()).Background(bg).
			Render(ansi.Truncate(w.Payload.URL, width, "…")),
	}
	var tags []string
	if w.Payload.Streaming {
		tags = append(tags, "streaming")
	}
	if w.Payload.HideControls {
		tags = append(tags, "kiosk")
	}
	if w.Maximized {
		tags = append(tags, "maximized")
	}
	if len(tags) > 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.BorderUnfocused()).Background(bg).
			Render(ansi.Truncate(strings.Join(tags, " · "), width, "…")))
	}

	head := strings.Join(lines, "\n")
	rest := height - len(lines)
	if rest <= 0 {
		return head
	}
	label := lipgloss.NewStyle().Bold(true).Foreground(theme.WindowFg()).Background(bg).
		Render(ansi.Truncate(w.Title, width, "…"))
	center := lipgloss.Place(width, rest, lipgloss.Center, lipgloss.Center, label,
		lipgloss.WithWhitespaceStyle(lipgloss.NewStyle().Background(bg)))
	return head + "\n" + center
}

// titleBar builds the top border line: "╭─ Title ──── − □ × ╮".
func titleBar(title string, width int, borderColor color.Color, focused bool) string {
	border := getBorder()
	edge := lipgloss.NewStyle().Foreground(borderColor).Background(theme.WindowBg())

	if width < minChromeWidth {
		return edge.Render(border.TopLeft + strings.Repeat(border.Top, max(width-2, 0)) + border.TopRight)
	}

	minGlyph, maxGlyph, closeGlyph := "−", "□", "×"
	if config.UseASCIIOnly {
		minGlyph, maxGlyph, closeGlyph = "_", "o", "x"
	}

	// "╭─ " title " " fill " − □ × ╮" leaves 13 cells of chrome
	if maxTitle := width - minChromeWidth; maxTitle > 1 {
		title = ansi.Truncate(title, maxTitle, "…")
	} else {
		title = ""
	}
	fill := width - 13 - ansi.StringWidth(title)

	titleStyle := lipgloss.NewStyle().Foreground(theme.TitleFg(focused)).Background(theme.WindowBg()).Bold(focused)
	button := func(glyph string, c color.Color) string {
		return lipgloss.NewStyle().Foreground(c).Background(theme.WindowBg()).Render(glyph)
	}

	var sb strings.Builder
	sb.WriteString(edge.Render(border.TopLeft + border.Top + " "))
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString(edge.Render(" " + strings.Repeat(border.Top, max(fill, 0)) + " "))
	sb.WriteString(button(minGlyph, theme.ButtonMinimize()))
	sb.WriteString(edge.Render(" "))
	sb.WriteString(button(maxGlyph, theme.ButtonMaximize()))
	sb.WriteString(edge.Render(" "))
	sb.WriteString(button(closeGlyph, theme.ButtonClose()))
	sb.WriteString(edge.Render(" " + border.TopRight))
	return sb.String()
}

// clipWindowContent trims the parts of a rendered window that fall outside
// the screen and returns the new origin. Layers may not start at negative
// coordinates.
func clipWindowContent(content string, x, y, viewportWidth, viewportHeight int) (string, int, int) {
	lines := strings.Split(content, "\n")
	windowWidth := 0
	if len(lines) > 0 {
		windowWidth = ansi.StringWidth(lines[0])
	}

	if x+windowWidth <= 0 || x >= viewportWidth || y+len(lines) <= 0 || y >= viewportHeight {
		return "", max(x, 0), max(y, 0)
	}

	clipTop := max(-y, 0)
	clipLeft := max(-x, 0)
	finalX, finalY := max(x, 0), max(y, 0)

	lines = lines[clipTop:]
	if visible := viewportHeight - finalY; visible < len(lines) {
		lines = lines[:visible]
	}

	right := clipLeft + viewportWidth - finalX
	if clipLeft > 0 || x+windowWidth > viewportWidth {
		for i, line := range lines {
			lines[i] = ansi.Cut(line, clipLeft, right)
		}
	}
	return strings.Join(lines, "\n"), finalX, finalY
}
