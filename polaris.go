package polaris

import (
	"image/color"
	"math"
	"math/rand/v2"
	"time"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint.
var ColorWhite = Color{1, 1, 1, 1}

// RGBA converts to a premultiplied color.RGBA suitable for ebiten draw calls.
func (c Color) RGBA() color.RGBA {
	a := Clamp(c.A, 0, 1)
	return color.RGBA{
		R: uint8(Clamp(c.R, 0, 1) * a * 255),
		G: uint8(Clamp(c.G, 0, 1) * a * 255),
		B: uint8(Clamp(c.B, 0, 1) * a * 255),
		A: uint8(a * 255),
	}
}

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A *= a
	return c
}

// Vec2 is a 2D vector used for positions and offsets on the page canvas.
type Vec2 struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Polar returns the point at the given angle (radians) and distance from the origin.
func Polar(angle, dist float64) Vec2 {
	return Vec2{math.Cos(angle) * dist, math.Sin(angle) * dist}
}

// LerpVec2 interpolates componentwise with [Lerp].
func LerpVec2(a, b Vec2, t float64) Vec2 {
	return Vec2{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t)}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Range is a general-purpose min/max range.
type Range struct {
	Min, Max float64
}

// Random returns a random float64 in [Min, Max) drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// At interpolates from Min to Max by t.
func (r Range) At(t float64) float64 {
	return Lerp(r.Min, r.Max, t)
}

// Lerp linearly interpolates between a and b by t. It is exact at both ends:
// Lerp(a, b, 0) == a and Lerp(a, b, 1) == b.
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// Approach moves current toward target by factor of the remaining distance.
// With 0 < factor < 1 and a fixed target it converges without overshooting.
func Approach(current, target, factor float64) float64 {
	return current + (target-current)*factor
}

// Clamp restricts v to [lo, hi]. NaN maps to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SafeRatio returns num/den, or 0 when den is not a positive finite number
// or the result is not finite.
func SafeRatio(num, den float64) float64 {
	if !(den > 0) || math.IsInf(den, 0) {
		return 0
	}
	r := num / den
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

// ClampDelta clamps a tick delta so accumulators never run backward.
func ClampDelta(dt time.Duration) time.Duration {
	if dt < 0 {
		return 0
	}
	return dt
}
