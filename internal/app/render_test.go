package app

import (
	"math"
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/nelieo/aios/internal/config"
	"github.com/nelieo/aios/internal/persist"
	"github.com/nelieo/aios/internal/theme"
)

func plainLines(s string) []string {
	return strings.Split(ansi.Strip(s), "\n")
}

func TestTitleBar(t *testing.T) {
	tests := []struct {
		name  string
		title string
		width int
	}{
		{"roomy", "Gmail", 40},
		{"truncated", "A very long application title indeed", 24},
		{"no room for a title", "Slack", 15},
		{"too narrow for buttons", "Slack", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := []rune(ansi.Strip(titleBar(tt.title, tt.width, theme.BorderFocused(), true)))
			if len(bar) != tt.width {
				t.Fatalf("title bar is %d cells wide, want %d: %q", len(bar), tt.width, string(bar))
			}
			if tt.width < minChromeWidth {
				if strings.ContainsRune(string(bar), '×') {
					t.Errorf("narrow bar should not carry buttons: %q", string(bar))
				}
				return
			}
			if bar[tt.width-3] != '×' || bar[tt.width-5] != '□' || bar[tt.width-7] != '−' {
				t.Errorf("buttons misplaced: %q", string(bar))
			}
		})
	}
}

func TestTitleBarASCII(t *testing.T) {
	config.UseASCIIOnly = true
	t.Cleanup(func() { config.UseASCIIOnly = false })

	bar := ansi.Strip(titleBar("Notion", 30, theme.BorderFocused(), false))
	if !strings.HasPrefix(bar, "+- Notion ") || !strings.HasSuffix(bar, " _ o x +") {
		t.Errorf("ascii title bar = %q", bar)
	}
}

func TestRenderWindowSize(t *testing.T) {
	o := newTestOS(t)
	w := o.Desktop.Launch("gmail")
	r := ToCells(w.Geometry)

	lines := plainLines(renderWindow(w, r, true))
	if len(lines) != r.Height {
		t.Fatalf("window has %d rows, want %d", len(lines), r.Height)
	}
	for i, line := range lines {
		if got := ansi.StringWidth(line); got != r.Width {
			t.Errorf("row %d is %d cells, want %d", i, got, r.Width)
		}
	}
	if !strings.Contains(strings.Join(lines, "\n"), w.Payload.URL) {
		t.Error("window body should show the app URL")
	}
}

func TestCanvasShowsWindowsAndDock(t *testing.T) {
	o := newTestOS(t)
	o.Desktop.Launch("notion")

	out := ansi.Strip(o.GetCanvas().Render())
	for _, want := range []string{"Notion", "×", "1 window"} {
		if !strings.Contains(out, want) {
			t.Errorf("canvas is missing %q", want)
		}
	}
}

func TestCanvasSkipsOffscreenWindows(t *testing.T) {
	o := newTestOS(t)
	w := o.Desktop.Launch("notion")
	o.Desktop.Store.Move(w.ID, 5000, 5000)

	out := ansi.Strip(o.GetCanvas().Render())
	if strings.Contains(out, "×") {
		t.Error("window outside the screen should not be drawn")
	}
}

func TestCanvasWelcomeWhenEmpty(t *testing.T) {
	o := newTestOS(t)
	out := ansi.Strip(o.GetCanvas().Render())
	if !strings.Contains(out, "A I O S") {
		t.Error("empty desktop should show the welcome banner")
	}
}

func TestClipWindowContent(t *testing.T) {
	content := strings.Join([]string{"abcdef", "ghijkl", "mnopqr"}, "\n")
	tests := []struct {
		name         string
		x, y, vw, vh int
		want         string
		wantX, wantY int
	}{
		{"inside", 1, 1, 20, 10, content, 1, 1},
		{"clipped left", -2, 0, 20, 10, "cdef\nijkl\nopqr", 0, 0},
		{"clipped right", 16, 0, 20, 10, "abcd\nghij\nmnop", 16, 0},
		{"clipped top", 0, -1, 20, 10, "ghijkl\nmnopqr", 0, 0},
		{"clipped bottom", 0, 8, 20, 10, "abcdef\nghijkl", 0, 8},
		{"off screen", 30, 0, 20, 10, "", 30, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, x, y := clipWindowContent(content, tt.x, tt.y, tt.vw, tt.vh)
			if got != tt.want || x != tt.wantX || y != tt.wantY {
				t.Errorf("clipWindowContent = %q at (%d, %d), want %q at (%d, %d)",
					got, x, y, tt.want, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestPaintWallpaper(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"linear", "linear-gradient(135deg, #1e3c72 0%, #2a5298 100%)"},
		{"radial", "radial-gradient(circle, #ff7e5f, #feb47b)"},
		{"conic", "conic-gradient(#000000, #ffffff, #000000)"},
		{"url", "https://example.com/bg.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := plainLines(paintWallpaper(persist.ParseWallpaper(tt.value), 37, 9))
			if len(lines) != 9 {
				t.Fatalf("wallpaper has %d rows, want 9", len(lines))
			}
			for i, line := range lines {
				if line != strings.Repeat(" ", 37) {
					t.Errorf("row %d = %q", i, line)
				}
			}
		})
	}

	if got := paintWallpaper(persist.ParseWallpaper("#000"), 0, 5); got != "" {
		t.Errorf("zero width wallpaper = %q", got)
	}
}

func TestPaintWallpaperURLIsSolid(t *testing.T) {
	out := paintWallpaper(persist.ParseWallpaper("https://example.com/bg.jpg"), 12, 3)
	want := lipgloss.NewStyle().Background(theme.DesktopBg()).Render(strings.Repeat(" ", 12))
	for i, line := range strings.Split(out, "\n") {
		if line != want {
			t.Errorf("row %d is not the solid desktop color", i)
		}
	}
}

func TestGradientPosition(t *testing.T) {
	near := func(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

	g, ok := parseGradient(persist.ParseWallpaper("linear-gradient(90deg, #000000, #ffffff)"))
	if !ok {
		t.Fatal("gradient did not parse")
	}
	if g.kind != "linear" || g.angle != 90 || len(g.stops) != 2 {
		t.Fatalf("parsed %+v", g)
	}
	if !near(g.position(0, 0.5), 0) || !near(g.position(1, 0.5), 1) || !near(g.position(0.5, 0.1), 0.5) {
		t.Error("90deg should run left to right")
	}

	g.angle = 180
	if !near(g.position(0.3, 0), 0) || !near(g.position(0.3, 1), 1) {
		t.Error("180deg should run top to bottom")
	}

	radial := gradient{kind: "radial"}
	if !near(radial.position(0.5, 0.5), 0) || !near(radial.position(0, 0), 1) {
		t.Error("radial should grow from the center to the corners")
	}
}

func TestGradientRejectsURL(t *testing.T) {
	if _, ok := parseGradient(persist.ParseWallpaper("https://example.com/a.png")); ok {
		t.Error("a URL is not a gradient")
	}
}
