// Package ease maps normalized progress in [0, 1] to normalized progress.
//
// The functions are thin adapters over [gween/ease] so the same curves are
// shared by one-shot tweens (which use gween directly) and by code that only
// needs the normalized shape, such as scroll-driven interpolation.
//
// [gween/ease]: https://github.com/tanema/gween
package ease

import (
	"math"

	gease "github.com/tanema/gween/ease"
)

// Func maps t in [0, 1] to an eased value. Every Func in this package
// returns exactly 0 at t=0 and exactly 1 at t=1, and clamps t outside [0, 1].
type Func func(t float64) float64

// FromTween adapts a gween TweenFunc (t, begin, change, duration) to the
// normalized domain. The endpoints are pinned so float32 rounding inside the
// tween function cannot leak past 0 or 1.
func FromTween(fn gease.TweenFunc) Func {
	return func(t float64) float64 {
		t = Clamp01(t)
		switch t {
		case 0:
			return 0
		case 1:
			return 1
		}
		return float64(fn(float32(t), 0, 1, 1))
	}
}

var (
	// Linear is the identity curve.
	Linear Func = Clamp01

	// InOutCubic accelerates through the first half and decelerates through
	// the second. Used for particle morphs.
	InOutCubic = FromTween(gease.InOutCubic)

	// OutCubic decelerates toward the end. Used for the model entrance and
	// scroll-driven targets.
	OutCubic = FromTween(gease.OutCubic)

	// InCubic accelerates from rest.
	InCubic = FromTween(gease.InCubic)
)

// Clamp01 restricts t to [0, 1]. NaN maps to 0.
func Clamp01(t float64) float64 {
	if math.IsNaN(t) || t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t
}
