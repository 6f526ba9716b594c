package app

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/nelieo/aios/internal/config"
	"github.com/nelieo/aios/internal/theme"
)

func (m *OS) renderOverlays() []*lipgloss.Layer {
	var layers []*lipgloss.Layer

	if status := m.renderStatusLine(); status != "" {
		layers = append(layers, lipgloss.NewLayer(status).
			X(0).Y(m.Height-config.StatusRows).Z(config.ZIndexStatus).ID("status"))
	}

	if m.Desktop.Store.Len() == 0 {
		layers = append(layers, m.renderWelcome())
	}

	layers = append(layers, m.renderNotifications()...)

	if m.ShowLogs {
		layers = append(layers, lipgloss.NewLayer(m.renderLogViewer()).
			X(0).Y(0).Z(config.ZIndexLogs).ID("logs"))
	}

	if m.ShowHelp {
		layers = append(layers, lipgloss.NewLayer(m.RenderHelpMenu(m.Width, m.Height)).
			X(0).Y(0).Z(config.ZIndexHelp).ID("help"))
	}

	return layers
}

// renderStatusLine draws the bottom bar: focused window on the left, dock
// selection, stats and clock on the right.
func (m *OS) renderStatusLine() string {
	if m.Width <= 0 {
		return ""
	}
	base := lipgloss.NewStyle().Background(theme.StatusBg()).Foreground(theme.StatusFg())

	left := fmt.Sprintf(" %d windows", m.Desktop.Store.Len())
	if w, ok := m.FocusedWindow(); ok {
		left = " " + w.Title + " · " + left[1:]
	}
	if n := m.MinimizedCount(); n > 0 {
		left += fmt.Sprintf(" · %d minimized", n)
	}

	var right []string
	right = append(right, "dock: "+m.dockHint())
	if config.ShowStats && !m.LastStatsUpdate.IsZero() {
		right = append(right, fmt.Sprintf("CPU %2.0f%%  RAM %2.0f%%", m.CPUUsage, m.RAMUsage))
	}
	if !config.HideClock {
		right = append(right, time.Now().Format("15:04:05"))
	}
	rightText := strings.Join(right, " │ ") + " "

	room := m.Width - lipgloss.Width(rightText)
	if room < 1 {
		return base.Render(ansi.Truncate(rightText, m.Width, ""))
	}
	left = ansi.Truncate(left, room, "…")
	gap := strings.Repeat(" ", max(room-lipgloss.Width(left), 0))
	return base.Render(left + gap + rightText)
}

func (m *OS) renderWelcome() *lipgloss.Layer {
	title := lipgloss.NewStyle().
		Foreground(theme.BorderFocused()).
		Bold(true).
		Render("A I O S")

	subtitle := lipgloss.NewStyle().
		Foreground(theme.StatusFg()).
		Render("Streaming desktop")

	instruction := lipgloss.NewStyle().
		Foreground(theme.WindowFg()).
		Render("Click a dock icon or press 1-9 to open an app, '?' for help")

	box := lipgloss.NewStyle().
		Border(getBorder()).
		BorderForeground(theme.BorderUnfocused()).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Center, title, "", subtitle, "", instruction))

	x := max((m.Width-lipgloss.Width(box))/2, 0)
	y := max((m.Height-lipgloss.Height(box))/2, config.DockRows+1)
	return lipgloss.NewLayer(box).X(x).Y(y).Z(config.ZIndexWindowBase).ID("welcome")
}

func (m *OS) renderNotifications() []*lipgloss.Layer {
	var layers []*lipgloss.Layer
	y := config.DockRows + 1
	for _, n := range m.Notifications {
		level := n.Type
		if level == "warning" {
			level = "warn"
		}
		text := lipgloss.NewStyle().
			Foreground(theme.NotificationFg(level)).
			Background(theme.NotificationBg()).
			Padding(0, 1).
			Render(ansi.Truncate(n.Message, max(m.Width/2, 10), "…"))

		x := max(m.Width-lipgloss.Width(text)-2, 0)
		layers = append(layers, lipgloss.NewLayer(text).
			X(x).Y(y).Z(config.ZIndexNotifications).ID("notification-"+n.ID))
		y++
	}
	return layers
}

func (m *OS) renderLogViewer() string {
	title := lipgloss.NewStyle().
		Foreground(theme.LogViewerTitle()).
		Bold(true).
		Render("System Logs")

	logsPerPage, maxScroll := LogScrollBounds(m.Height, len(m.LogMessages))
	m.LogScrollOffset = max(0, min(m.LogScrollOffset, maxScroll))

	lines := []string{title, ""}
	start := m.LogScrollOffset
	shown := 0
	for i := start; i < len(m.LogMessages) && shown < logsPerPage; i++ {
		msg := m.LogMessages[i]

		levelColor := theme.LogViewerInfo()
		switch msg.Level {
		case "ERROR":
			levelColor = theme.LogViewerError()
		case "WARN":
			levelColor = theme.LogViewerWarn()
		}
		level := lipgloss.NewStyle().Foreground(levelColor).Render("[" + msg.Level + "]")
		lines = append(lines, ansi.Truncate(fmt.Sprintf("%s %s %s", msg.Time.Format("15:04:05"), level, msg.Message), 74, "…"))
		shown++
	}

	hint := lipgloss.NewStyle().Foreground(theme.LogViewerDebug())
	if maxScroll > 0 {
		lines = append(lines, "", hint.Render(fmt.Sprintf("Showing %d-%d of %d logs (↑/↓ to scroll)",
			start+1, start+shown, len(m.LogMessages))))
	}
	lines = append(lines, "", hint.Render("Press 'q'/'esc' to exit, j/k or ↑/↓ to scroll"))

	box := lipgloss.NewStyle().
		Border(getBorder()).
		BorderForeground(theme.HelpBorder()).
		Padding(1, 2).
		Width(min(80, m.Width)).
		Background(theme.LogViewerBg()).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, box)
}

// RenderHelpMenu draws the keybinding overlay centered in width x height.
func (m *OS) RenderHelpMenu(width, height int) string {
	sections := config.GetKeybindings(m.KeybindRegistry)

	keyStyle := lipgloss.NewStyle().Foreground(theme.HelpKeyBadge()).Bold(true)
	titleStyle := lipgloss.NewStyle().Foreground(theme.HelpTitle()).Bold(true)

	keyWidth := 0
	for _, s := range sections {
		for _, b := range s.Bindings {
			keyWidth = max(keyWidth, lipgloss.Width(b.Key))
		}
	}

	var lines []string
	for i, s := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, titleStyle.Render(s.Title))
		for _, b := range s.Bindings {
			key := b.Key + strings.Repeat(" ", keyWidth-lipgloss.Width(b.Key))
			lines = append(lines, "  "+keyStyle.Render(key)+"  "+b.Description)
		}
	}

	// Keep the overlay on screen; drop whole trailing lines when short.
	if limit := height - 6; limit > 0 && len(lines) > limit {
		lines = append(lines[:limit-1], "…")
	}
	lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.LogViewerDebug()).Render("Press '?' or esc to close"))

	box := lipgloss.NewStyle().
		Border(getBorder()).
		BorderForeground(theme.HelpBorder()).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
