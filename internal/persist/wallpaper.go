package persist

import (
	"regexp"
	"strings"
)

// DefaultWallpaper is used on first run.
const DefaultWallpaper = "linear-gradient(135deg, #1e1b4b 0%, #312e81 50%, #0f172a 100%)"

var gradientPrefixes = []string{
	"linear-gradient(",
	"radial-gradient(",
	"conic-gradient(",
	"repeating-linear-gradient(",
	"repeating-radial-gradient(",
}

var hexColor = regexp.MustCompile(`#(?:[0-9a-fA-F]{6}|[0-9a-fA-F]{3})\b`)

// Wallpaper is the desktop background: either an image URL or a CSS-style
// gradient.
type Wallpaper struct {
	Value string
}

// ParseWallpaper classifies s. Blank input selects the default wallpaper.
func ParseWallpaper(s string) Wallpaper {
	s = strings.TrimSpace(s)
	if s == "" {
		s = DefaultWallpaper
	}
	return Wallpaper{Value: s}
}

// IsGradient reports whether the wallpaper is a gradient rather than a URL.
func (w Wallpaper) IsGradient() bool {
	v := strings.ToLower(w.Value)
	for _, p := range gradientPrefixes {
		if strings.HasPrefix(v, p) {
			return true
		}
	}
	return false
}

// Kind returns "gradient" or "url".
func (w Wallpaper) Kind() string {
	if w.IsGradient() {
		return "gradient"
	}
	return "url"
}

// Colors returns the hex color stops of a gradient, in order. URLs have none.
func (w Wallpaper) Colors() []string {
	if !w.IsGradient() {
		return nil
	}
	return hexColor.FindAllString(w.Value, -1)
}

func (w Wallpaper) String() string {
	return w.Value
}
