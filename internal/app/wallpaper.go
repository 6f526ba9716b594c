package app

import (
	"image/color"
	"math"
	"regexp"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/nelieo/aios/internal/persist"
	"github.com/nelieo/aios/internal/theme"
)

// gradientSteps bounds how many distinct colors a wallpaper row uses.
const gradientSteps = 48

var angleRe = regexp.MustCompile(`(-?\d+(?:\.\d+)?)deg`)

type wallpaperCache struct {
	value   string
	width   int
	height  int
	themed  bool
	content string
}

// gradient is a parsed CSS-style gradient reduced to what a terminal can
// show: evenly spaced color stops along a direction.
type gradient struct {
	kind  string // linear, radial or conic
	angle float64
	stops []color.Color
}

func parseGradient(w persist.Wallpaper) (gradient, bool) {
	if !w.IsGradient() {
		return gradient{}, false
	}
	var stops []color.Color
	for _, hex := range w.Colors() {
		if c, ok := theme.ParseHex(hex); ok {
			stops = append(stops, c)
		}
	}
	if len(stops) == 0 {
		return gradient{}, false
	}

	g := gradient{kind: "linear", angle: 180, stops: stops}
	v := strings.ToLower(w.Value)
	switch {
	case strings.Contains(v, "radial-gradient("):
		g.kind = "radial"
	case strings.Contains(v, "conic-gradient("):
		g.kind = "conic"
	}
	if m := angleRe.FindStringSubmatch(v); m != nil {
		if a, err := strconv.ParseFloat(m[1], 64); err == nil {
			g.angle = a
		}
	}
	return g, true
}

// position returns the gradient parameter in [0, 1] for normalized
// coordinates u, v in [0, 1].
func (g gradient) position(u, v float64) float64 {
	switch g.kind {
	case "radial":
		dx, dy := u-0.5, v-0.5
		return math.Min(1, math.Hypot(dx, dy)/math.Sqrt2*2)
	case "conic":
		a := math.Atan2(u-0.5, -(v - 0.5))
		if a < 0 {
			a += 2 * math.Pi
		}
		return a / (2 * math.Pi)
	default:
		rad := g.angle * math.Pi / 180
		dx, dy := math.Sin(rad), -math.Cos(rad)
		span := (math.Abs(dx) + math.Abs(dy)) / 2
		if span == 0 {
			return 0
		}
		return ((u-0.5)*dx+(v-0.5)*dy)/span*0.5 + 0.5
	}
}

// at returns the color at gradient parameter t.
func (g gradient) at(t float64) color.Color {
	if len(g.stops) == 1 {
		return g.stops[0]
	}
	t = math.Max(0, math.Min(t, 1))
	seg := t * float64(len(g.stops)-1)
	i := min(int(seg), len(g.stops)-2)
	return theme.Blend(g.stops[i], g.stops[i+1], seg-float64(i))
}

// renderWallpaper paints the desktop background. The result is cached until
// the wallpaper, the terminal size or the theme changes.
func (m *OS) renderWallpaper() string {
	wp := m.Desktop.Wallpaper()
	c := &m.wallpaperCache
	if c.content != "" && c.value == wp.Value && c.width == m.Width && c.height == m.Height && c.themed == theme.IsEnabled() {
		return c.content
	}

	*c = wallpaperCache{value: wp.Value, width: m.Width, height: m.Height, themed: theme.IsEnabled()}
	c.content = paintWallpaper(wp, m.Width, m.Height)
	return c.content
}

func paintWallpaper(wp persist.Wallpaper, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	g, ok := parseGradient(wp)
	if !ok {
		row := lipgloss.NewStyle().Background(theme.DesktopBg()).Render(strings.Repeat(" ", width))
		return strings.TrimSuffix(strings.Repeat(row+"\n", height), "\n")
	}

	var sb strings.Builder
	for y := range height {
		v := (float64(y) + 0.5) / float64(height)
		runStart, runStep := 0, -1
		flush := func(end int) {
			if runStep < 0 || end <= runStart {
				return
			}
			bg := g.at(float64(runStep) / gradientSteps)
			sb.WriteString(lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", end-runStart)))
		}
		for x := range width {
			u := (float64(x) + 0.5) / float64(width)
			step := int(math.Round(g.position(u, v) * gradientSteps))
			if step != runStep {
				flush(x)
				runStart, runStep = x, step
			}
		}
		flush(width)
		if y < height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
