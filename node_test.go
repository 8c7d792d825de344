package polaris

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestBox3Empty(t *testing.T) {
	b := EmptyBox3()
	assert.True(t, b.IsEmpty())
	assert.Equal(t, mgl64.Vec3{}, b.Size())
	assert.Equal(t, 0.0, b.MaxDim())

	b = b.ExpandByPoint(mgl64.Vec3{1, 2, 3})
	assert.False(t, b.IsEmpty())
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, b.Center())
	assert.Equal(t, b, b.Union(EmptyBox3()))
}

func TestBox3Transform(t *testing.T) {
	b := Box3{Min: mgl64.Vec3{-1, -2, -3}, Max: mgl64.Vec3{1, 2, 3}}
	assert.Equal(t, 6.0, b.MaxDim())

	moved := b.Transform(mgl64.Translate3D(10, 0, 0))
	assert.InDelta(t, 9, moved.Min[0], 1e-12)
	assert.InDelta(t, 11, moved.Max[0], 1e-12)

	// A quarter turn about Y swaps the X and Z extents.
	turned := b.Transform(mgl64.HomogRotate3DY(mgl64.DegToRad(90)))
	s := turned.Size()
	assert.InDelta(t, 6, s[0], 1e-9)
	assert.InDelta(t, 2, s[2], 1e-9)
}

func TestAddChildReparent(t *testing.T) {
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	a.AddChild(c)
	b.AddChild(c)
	assert.Empty(t, a.Children())
	assert.Equal(t, []*Node{c}, b.Children())
	assert.Same(t, b, c.Parent)
}

func TestAddChildPanics(t *testing.T) {
	a, b := NewNode("a"), NewNode("b")
	a.AddChild(b)
	assert.PanicsWithValue(t, "polaris: cannot add nil child", func() { a.AddChild(nil) })
	assert.PanicsWithValue(t, "polaris: adding child would create a cycle", func() { b.AddChild(a) })
	assert.PanicsWithValue(t, "polaris: adding child would create a cycle", func() { a.AddChild(a) })
}

func TestNodeWorldComposesParents(t *testing.T) {
	root, child := NewNode("root"), NewNode("child")
	root.Local = mgl64.Translate3D(1, 0, 0)
	child.Local = mgl64.Translate3D(0, 2, 0)
	root.AddChild(child)

	p := mgl64.TransformCoordinate(mgl64.Vec3{}, child.World())
	assert.InDelta(t, 1, p[0], 1e-12)
	assert.InDelta(t, 2, p[1], 1e-12)
}

func TestNodeDispose(t *testing.T) {
	root, child, leaf := NewNode("root"), NewNode("child"), NewNode("leaf")
	root.AddChild(child)
	child.AddChild(leaf)
	leaf.Mesh = &Mesh{}

	child.Dispose()
	child.Dispose()
	assert.Empty(t, root.Children())
	assert.True(t, child.IsDisposed())
	assert.True(t, leaf.IsDisposed())
	assert.Nil(t, leaf.Mesh)
	assert.Nil(t, leaf.Parent)
	assert.False(t, root.IsDisposed())
}

func TestTraverseDepthFirst(t *testing.T) {
	root, a, b, a1 := NewNode("root"), NewNode("a"), NewNode("b"), NewNode("a1")
	root.AddChild(a)
	root.AddChild(b)
	a.AddChild(a1)

	var names []string
	root.Traverse(func(n *Node) { names = append(names, n.Name) })
	assert.Equal(t, []string{"root", "a", "a1", "b"}, names)
}
