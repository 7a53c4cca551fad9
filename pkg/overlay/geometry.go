package overlay

import "math"

// Point is a coordinate in screen units, used for pointers and surface centres.
type Point struct {
	X float64
	Y float64
}

// Position is the top-left corner of the bubble surface in screen units.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Size is a width/height pair in screen units.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Bubble geometry defaults.
const (
	DefaultOverlaySize = 40
	MinOverlaySize     = 30
	MaxOverlaySize     = 80

	// EdgeMargin is the gap left between a settled bubble and the screen edge.
	EdgeMargin = 20
)

// MinOpacityPercent is the faintest the bubble may be drawn.
const MinOpacityPercent = 10

// MinAlpha is MinOpacityPercent as an alpha value.
const MinAlpha = MinOpacityPercent / 100.0

// DefaultPosition is where the bubble appears on first run.
var DefaultPosition = Position{X: 20, Y: 100}

// Square returns a Size with both sides equal to d.
func Square(d int) Size {
	return Size{Width: d, Height: d}
}

// Empty reports whether either dimension is not positive.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Center returns the centre of a surface of size s whose top-left is p.
func (p Position) Center(s Size) Point {
	return Point{
		X: float64(p.X) + float64(s.Width)/2,
		Y: float64(p.Y) + float64(s.Height)/2,
	}
}

// Offset returns p moved by (dx, dy), truncated to whole units.
func (p Position) Offset(dx, dy float64) Position {
	return Position{X: p.X + int(math.Round(dx)), Y: p.Y + int(math.Round(dy))}
}

// Clamp keeps a surface of size s fully on a screen of the given size.
// When the surface is larger than the screen it is pinned to the origin.
func (p Position) Clamp(screen, s Size) Position {
	if screen.Empty() {
		return p
	}
	return Position{
		X: clampInt(p.X, 0, screen.Width-s.Width),
		Y: clampInt(p.Y, 0, screen.Height-s.Height),
	}
}

// ClampOverlaySize forces a diameter into [MinOverlaySize, MaxOverlaySize].
// Zero or negative input yields DefaultOverlaySize.
func ClampOverlaySize(d int) int {
	if d <= 0 {
		return DefaultOverlaySize
	}
	return clampInt(d, MinOverlaySize, MaxOverlaySize)
}

// ValidOverlaySize reports whether d is inside the supported diameter range.
func ValidOverlaySize(d int) bool {
	return d >= MinOverlaySize && d <= MaxOverlaySize
}

// Transform is the visual state applied on top of a surface position.
// Rotation is in degrees.
type Transform struct {
	Rotation float64
	Scale    float64
	Alpha    float64
}

// Identity returns the untransformed state with the given alpha.
func Identity(alpha float64) Transform {
	return Transform{Rotation: 0, Scale: 1, Alpha: alpha}
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
