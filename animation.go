package polaris

import (
	"time"

	"github.com/tanema/gween"
	gease "github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// the convenience constructors (TweenValue, TweenVec2, TweenColor) and call
// Update(dt) each tick. Values are written straight to the fields.
//
// There is no global animation manager; owners call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool

	// OnDone runs once, on the tick the last tween finishes.
	OnDone func()
}

// Update advances all tweens by dt and writes values to the target fields.
func (g *TweenGroup) Update(dt time.Duration) {
	if g.Done {
		return
	}
	step := float32(ClampDelta(dt).Seconds())

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(step)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	if g.Done && g.OnDone != nil {
		g.OnDone()
	}
}

// Stop ends the group where it is without running OnDone.
func (g *TweenGroup) Stop() {
	g.Done = true
}

func (g *TweenGroup) add(field *float64, to float64, duration time.Duration, fn gease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), float32(duration.Seconds()), fn)
	g.fields[g.count] = field
	g.count++
}

// TweenValue creates a TweenGroup that animates *field to the target value
// over the specified duration using the easing function.
func TweenValue(field *float64, to float64, duration time.Duration, fn gease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(field, to, duration, fn)
	return g
}

// TweenVec2 creates a TweenGroup that animates both components of *v.
func TweenVec2(v *Vec2, to Vec2, duration time.Duration, fn gease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&v.X, to.X, duration, fn)
	g.add(&v.Y, to.Y, duration, fn)
	return g
}

// TweenColor creates a TweenGroup that animates all four components of *c
// (R, G, B, A) to the target color over the specified duration.
func TweenColor(c *Color, to Color, duration time.Duration, fn gease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&c.R, to.R, duration, fn)
	g.add(&c.G, to.G, duration, fn)
	g.add(&c.B, to.B, duration, fn)
	g.add(&c.A, to.A, duration, fn)
	return g
}
