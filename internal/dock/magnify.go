package dock

import "math"

// Magnification parameters, in pixels.
const (
	IconSize      = 28
	IconPitch     = IconSize + 10
	InfluenceSpan = 140.0
	MaxBoost      = 0.8
)

// Magnify returns the scale of icon i for a pointer at horizontal offset px
// from the dock's left edge. Outside the dock every icon is at scale 1.
func Magnify(px float64, inside bool, i int) float64 {
	if !inside || i < 0 {
		return 1
	}
	center := (float64(i) + 0.5) * IconPitch
	dist := math.Abs(px - center)
	influence := math.Max(0, 1-dist/InfluenceSpan)
	return 1 + influence*MaxBoost
}

// Scales returns the scale of each of n icons.
func Scales(px float64, inside bool, n int) []float64 {
	out := make([]float64, max(n, 0))
	for i := range out {
		out[i] = Magnify(px, inside, i)
	}
	return out
}

// Width returns the unscaled dock width for n icons.
func Width(n int) int {
	return max(n, 0) * IconPitch
}

// IconAt returns the index of the icon slot under px, or -1.
func IconAt(px float64, n int) int {
	if px < 0 {
		return -1
	}
	i := int(px / IconPitch)
	if i >= n {
		return -1
	}
	return i
}
