package polaris

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Model is the in-memory handle of a loaded asset: a node tree plus the pose
// the scene controller animates. Pose follows the usual T·R·S order, so
// Position offsets the already-rotated and scaled geometry.
type Model struct {
	Name string
	Root *Node

	Position  mgl64.Vec3
	RotationY float64
	Scale     float64

	bounds  Box3
	opacity float64
}

// NewModel wraps root and computes its model-space bounds.
func NewModel(name string, root *Node) *Model {
	m := &Model{Name: name, Root: root, Scale: 1, opacity: 1}
	m.bounds = m.localBounds()
	return m
}

func (m *Model) localBounds() Box3 {
	b := EmptyBox3()
	if m.Root == nil {
		return b
	}
	m.Root.Traverse(func(n *Node) {
		if n.Mesh != nil {
			b = b.Union(n.Mesh.Bounds.Transform(n.World()))
		}
	})
	return b
}

// Bounds returns the model-space bounding box, ignoring the pose.
func (m *Model) Bounds() Box3 {
	return m.bounds
}

// MaxDim returns the largest extent of the bounding box.
func (m *Model) MaxDim() float64 {
	return m.bounds.MaxDim()
}

// CenterOnOrigin offsets the model so its bounding box center sits at the
// world origin.
func (m *Model) CenterOnOrigin() {
	m.Position = m.bounds.Center().Mul(-1)
}

// Matrix returns the pose transform T·Ry·S.
func (m *Model) Matrix() mgl64.Mat4 {
	return mgl64.Translate3D(m.Position[0], m.Position[1], m.Position[2]).
		Mul4(mgl64.HomogRotate3DY(m.RotationY)).
		Mul4(mgl64.Scale3D(m.Scale, m.Scale, m.Scale))
}

// Traverse visits every node of the model.
func (m *Model) Traverse(fn func(*Node)) {
	if m.Root != nil {
		m.Root.Traverse(fn)
	}
}

// SetOpacity writes o to every mesh material. Materials become transparent
// while o < 1.
func (m *Model) SetOpacity(o float64) {
	o = Clamp(o, 0, 1)
	m.opacity = o
	m.Traverse(func(n *Node) {
		if n.Mesh == nil || n.Material == nil {
			return
		}
		n.Material.Opacity = o
		if o < 1 {
			n.Material.Transparent = true
		}
	})
}

// Opacity returns the last value passed to SetOpacity.
func (m *Model) Opacity() float64 {
	return m.opacity
}

// ApplySurface sets metalness and roughness on every mesh material, creating
// a default material where a mesh has none.
func (m *Model) ApplySurface(metalness, roughness float64) {
	m.Traverse(func(n *Node) {
		if n.Mesh == nil {
			return
		}
		if n.Material == nil {
			n.Material = &Material{Color: ColorWhite, Opacity: m.opacity}
		}
		n.Material.Metalness = metalness
		n.Material.Roughness = roughness
	})
}

// Dispose releases the node tree.
func (m *Model) Dispose() {
	if m.Root != nil {
		m.Root.Dispose()
		m.Root = nil
	}
}

// NewBoxModel builds a single-mesh model of the given size centered at
// center. Used where no asset is available, such as the headless inspector.
func NewBoxModel(name string, center, size mgl64.Vec3) *Model {
	half := size.Mul(0.5)
	box := Box3{Min: center.Sub(half), Max: center.Add(half)}
	corners := box.Corners()
	root := NewNode(name)
	root.Mesh = &Mesh{Points: corners[:], Bounds: box}
	root.Material = &Material{Color: ColorWhite, Opacity: 1}
	return NewModel(name, root)
}
