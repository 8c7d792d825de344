package polaris

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectStageWithoutModel(t *testing.T) {
	assert.Nil(t, ProjectStage(NewStage(nil), NewCamera(45, 1, 0.1, 100), 100, 100))
}

func TestProjectStageCentersModel(t *testing.T) {
	stage := NewStage(nil)
	m := NewBoxModel("box", mgl64.Vec3{4, 4, 4}, mgl64.Vec3{1, 1, 1})
	m.CenterOnOrigin()
	m.SetOpacity(0.5)
	stage.Add(m)

	cam := NewCamera(45, 1, 0.1, 100)
	meshes := ProjectStage(stage, cam, 200, 200)
	require.Len(t, meshes, 1)
	pm := meshes[0]
	assert.Equal(t, 0.5, pm.Opacity)
	require.Len(t, pm.Points, 8)

	var sx, sy float64
	for _, p := range pm.Points {
		sx += p.X
		sy += p.Y
		assert.GreaterOrEqual(t, p.Brightness, 0.0)
		assert.LessOrEqual(t, p.Brightness, 1.0)
	}
	assert.InDelta(t, 100, sx/8, 1e-6)
	assert.InDelta(t, 100, sy/8, 1e-6)
	for _, v := range pm.Visible {
		assert.True(t, v)
	}
}

func TestCoverFit(t *testing.T) {
	tests := []struct {
		iw, ih, w, h  float64
		scale, dx, dy float64
	}{
		{1920, 1080, 1920, 1080, 1, 0, 0},
		{1920, 1080, 960, 1080, 1, -480, 0},
		{1000, 1000, 2000, 1000, 2, 0, -500},
		{0, 1000, 100, 100, 0, 0, 0},
	}
	for _, tt := range tests {
		scale, dx, dy := coverFit(tt.iw, tt.ih, tt.w, tt.h)
		assert.Equal(t, tt.scale, scale)
		assert.Equal(t, tt.dx, dx)
		assert.Equal(t, tt.dy, dy)
	}
}

func TestFrameViewTop(t *testing.T) {
	g := ContainerGeometry{Top: 300, Bottom: 5300}
	assert.Equal(t, 300.0, frameViewTop(FrameState{Region: RegionBefore}, g, 1000))
	assert.Equal(t, 0.0, frameViewTop(FrameState{Region: RegionInside}, g, 1000))
	g = ContainerGeometry{Top: -4500, Bottom: 500}
	assert.Equal(t, -500.0, frameViewTop(FrameState{Region: RegionAfter}, g, 1000))
}

func TestProgressLabel(t *testing.T) {
	assert.Equal(t, "Frame 11 / 80 | Scroll activo | 14%",
		ProgressLabel(FrameState{Frame: 11, Pinned: true}, 80, 14))
	assert.Equal(t, "Frame 1 / 80 | Normal | 1%",
		ProgressLabel(FrameState{Frame: 1}, 80, 1))
	assert.Equal(t, "Cargando frames... 40%", loadingLabel(40))
}

func TestNullRendererIsRenderer(t *testing.T) {
	var r Renderer = NullRenderer{}
	r.Resize(10, 10)
	r.Render(NewStage(nil), NewCamera(45, 1, 0.1, 100))
	r.Dispose()
}
