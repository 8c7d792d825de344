package polaris

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxModelBounds(t *testing.T) {
	m := NewBoxModel("box", mgl64.Vec3{5, 5, 5}, mgl64.Vec3{2, 1, 4})
	assert.Equal(t, 4.0, m.MaxDim())
	assert.Equal(t, mgl64.Vec3{5, 5, 5}, m.Bounds().Center())
	assert.Equal(t, 1.0, m.Scale)
	assert.Equal(t, 1.0, m.Opacity())
}

func TestModelCenterOnOrigin(t *testing.T) {
	m := NewBoxModel("box", mgl64.Vec3{5, -3, 2}, mgl64.Vec3{2, 2, 2})
	m.CenterOnOrigin()
	c := mgl64.TransformCoordinate(m.Bounds().Center(), m.Matrix())
	assert.InDelta(t, 0, c.Len(), 1e-12)
}

func TestModelMatrixOrder(t *testing.T) {
	m := NewBoxModel("box", mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})
	m.Position = mgl64.Vec3{0, 0, 10}
	m.RotationY = math.Pi / 2
	m.Scale = 2

	// Scale, then rotate about Y, then translate.
	p := mgl64.TransformCoordinate(mgl64.Vec3{1, 0, 0}, m.Matrix())
	assert.InDelta(t, 0, p[0], 1e-9)
	assert.InDelta(t, 8, p[2], 1e-9)
}

func TestModelOpacityAndSurface(t *testing.T) {
	root := NewNode("root")
	a, b := NewNode("a"), NewNode("b")
	a.Mesh = &Mesh{Bounds: Box3{Max: mgl64.Vec3{1, 1, 1}}}
	b.Mesh = &Mesh{Bounds: Box3{Min: mgl64.Vec3{-1, -1, -1}}}
	b.Material = &Material{Color: ColorWhite, Opacity: 1}
	root.AddChild(a)
	root.AddChild(b)
	m := NewModel("m", root)

	m.ApplySurface(0.05, 0.9)
	require.NotNil(t, a.Material)
	assert.Equal(t, 0.05, a.Material.Metalness)
	assert.Equal(t, 0.9, b.Material.Roughness)
	assert.Nil(t, root.Material)

	m.SetOpacity(0.25)
	assert.Equal(t, 0.25, a.Material.Opacity)
	assert.True(t, b.Material.Transparent)

	m.SetOpacity(3)
	assert.Equal(t, 1.0, m.Opacity())
	assert.Equal(t, 1.0, b.Material.Opacity)
}

func TestModelDispose(t *testing.T) {
	m := NewBoxModel("box", mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})
	root := m.Root
	m.Dispose()
	m.Dispose()
	assert.Nil(t, m.Root)
	assert.True(t, root.IsDisposed())
	m.SetOpacity(0.5)
	m.ApplySurface(0, 0)
}
