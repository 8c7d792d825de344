package ease

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var curves = map[string]Func{
	"Linear":     Linear,
	"InOutCubic": InOutCubic,
	"OutCubic":   OutCubic,
	"InCubic":    InCubic,
}

func TestEndpoints(t *testing.T) {
	for name, fn := range curves {
		assert.Equal(t, 0.0, fn(0), "%s(0)", name)
		assert.Equal(t, 1.0, fn(1), "%s(1)", name)
	}
}

func TestMonotonic(t *testing.T) {
	const steps = 1000
	for name, fn := range curves {
		prev := fn(0)
		for i := 1; i <= steps; i++ {
			v := fn(float64(i) / steps)
			if v < prev {
				t.Fatalf("%s decreases at t=%v: %v < %v", name, float64(i)/steps, v, prev)
			}
			prev = v
		}
	}
}

func TestClampsOutOfRange(t *testing.T) {
	for name, fn := range curves {
		assert.Equal(t, 0.0, fn(-0.5), "%s(-0.5)", name)
		assert.Equal(t, 1.0, fn(2), "%s(2)", name)
		assert.Equal(t, 0.0, fn(math.NaN()), "%s(NaN)", name)
	}
}

func TestCubicShapes(t *testing.T) {
	// 4t^3 below the midpoint, 1-(-2t+2)^3/2 above it.
	assert.InDelta(t, 4*0.25*0.25*0.25, InOutCubic(0.25), 1e-6)
	assert.InDelta(t, 0.5, InOutCubic(0.5), 1e-6)
	assert.InDelta(t, 1-math.Pow(-2*0.75+2, 3)/2, InOutCubic(0.75), 1e-6)

	// 1-(1-t)^3
	assert.InDelta(t, 1-math.Pow(1-0.3, 3), OutCubic(0.3), 1e-6)
	assert.InDelta(t, 0.3*0.3*0.3, InCubic(0.3), 1e-6)
}
