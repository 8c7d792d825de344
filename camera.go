package polaris

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera looking at a fixed target. The projection
// and view matrices are cached and recomputed only after a change.
type Camera struct {
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Aspect is the viewport width divided by its height.
	Aspect float64
	// Near and Far are the clip plane distances.
	Near, Far float64

	// Position is the eye position in world space.
	Position mgl64.Vec3
	// Target is the point the camera looks at.
	Target mgl64.Vec3
	// Up is the world up direction.
	Up mgl64.Vec3

	projection      mgl64.Mat4
	view            mgl64.Mat4
	projectionDirty bool
	viewDirty       bool

	// projectionUpdates counts projection rebuilds; read by tests and the
	// debug logger.
	projectionUpdates int
}

// NewCamera creates a camera at (0, 0, 5) looking at the origin.
func NewCamera(fov, aspect, near, far float64) *Camera {
	if !(aspect > 0) {
		aspect = 1
	}
	return &Camera{
		FOV:             fov,
		Aspect:          aspect,
		Near:            near,
		Far:             far,
		Position:        mgl64.Vec3{0, 0, 5},
		Up:              mgl64.Vec3{0, 1, 0},
		projectionDirty: true,
		viewDirty:       true,
	}
}

// SetFOV changes the field of view and flags the projection for rebuild
// when the value actually changes.
func (c *Camera) SetFOV(fov float64) {
	if fov != c.FOV {
		c.FOV = fov
		c.projectionDirty = true
	}
}

// SetAspect changes the aspect ratio. Non-positive or non-finite values are
// ignored so a zero-height viewport cannot poison the projection.
func (c *Camera) SetAspect(aspect float64) {
	if !(aspect > 0) || math.IsInf(aspect, 0) || aspect == c.Aspect {
		return
	}
	c.Aspect = aspect
	c.projectionDirty = true
}

// SetPosition moves the eye.
func (c *Camera) SetPosition(p mgl64.Vec3) {
	if p != c.Position {
		c.Position = p
		c.viewDirty = true
	}
}

// SetZ moves the eye along the Z axis only.
func (c *Camera) SetZ(z float64) {
	c.SetPosition(mgl64.Vec3{c.Position[0], c.Position[1], z})
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target mgl64.Vec3) {
	if target != c.Target {
		c.Target = target
		c.viewDirty = true
	}
}

// UpdateProjectionMatrix rebuilds the projection if FOV, aspect, or clip
// planes changed since the last rebuild.
func (c *Camera) UpdateProjectionMatrix() {
	if !c.projectionDirty {
		return
	}
	c.projectionDirty = false
	c.projection = mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
	c.projectionUpdates++
}

// Projection returns the current projection matrix.
func (c *Camera) Projection() mgl64.Mat4 {
	c.UpdateProjectionMatrix()
	return c.projection
}

// View returns the current view matrix.
func (c *Camera) View() mgl64.Mat4 {
	if c.viewDirty {
		c.viewDirty = false
		c.view = mgl64.LookAtV(c.Position, c.Target, c.Up)
	}
	return c.view
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.Projection().Mul4(c.View())
}

// WorldToScreen projects a world point into a viewport of the given size.
// ok is false for points behind the camera.
func (c *Camera) WorldToScreen(p mgl64.Vec3, width, height float64) (x, y float64, ok bool) {
	clip := c.ViewProjection().Mul4x1(p.Vec4(1))
	if clip[3] <= 0 {
		return 0, 0, false
	}
	ndcX := clip[0] / clip[3]
	ndcY := clip[1] / clip[3]
	return (ndcX + 1) / 2 * width, (1 - ndcY) / 2 * height, true
}

// MarkDirty forces both matrices to be recomputed.
func (c *Camera) MarkDirty() {
	c.projectionDirty = true
	c.viewDirty = true
}
