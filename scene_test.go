package polaris

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestStageDefaultLights(t *testing.T) {
	s := NewStage(nil)
	assert.Len(t, s.Lights, 3)
	assert.InDelta(t, 0.7, s.AmbientIntensity(), 1e-12)
	assert.Nil(t, s.Model())
}

func TestStageAddReplacesModel(t *testing.T) {
	s := NewStage(quietLogger())
	a := NewBoxModel("a", mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})
	b := NewBoxModel("b", mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})
	s.Add(a)
	s.Add(a)
	assert.NotNil(t, a.Root, "re-adding the same model keeps it")

	s.Add(b)
	assert.Same(t, b, s.Model())
	assert.Nil(t, a.Root)

	s.Remove()
	s.Remove()
	assert.Nil(t, s.Model())
	assert.Nil(t, b.Root)
}

func TestStageShade(t *testing.T) {
	s := NewStage(nil)
	assert.InDelta(t, 0.7, s.Shade(mgl64.Vec3{}), 1e-12)

	// Facing the key light is brighter than facing away from every light.
	lit := s.Shade(mgl64.Vec3{1, 2, 3})
	dark := s.Shade(mgl64.Vec3{0, -1, 0})
	assert.Greater(t, lit, dark)
	assert.LessOrEqual(t, lit, 1.0)
	assert.GreaterOrEqual(t, dark, 0.7)
}
