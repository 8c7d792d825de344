package polaris

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

var (
	// ErrNoGeometry is returned when an asset has no mesh with positions.
	ErrNoGeometry = errors.New("polaris: asset has no geometry")
	// ErrModelNotReady is returned by operations that need a loaded model.
	ErrModelNotReady = errors.New("polaris: model not ready")
)

// ModelLoader loads a model asset from path.
type ModelLoader func(ctx context.Context, path string) (*Model, error)

// LoadModelAsync starts loader on a background goroutine.
func LoadModelAsync(ctx context.Context, path string, loader ModelLoader) *Future[*Model] {
	if loader == nil {
		loader = LoadGLTF
	}
	return Async(ctx, func(ctx context.Context) (*Model, error) {
		return loader(ctx, path)
	})
}

// LoadGLTF reads a .gltf or .glb file into a Model. Node transforms are baked
// into the node tree; mesh bounds come from the POSITION accessors' min/max,
// and the points are read from the buffers when available.
func LoadGLTF(ctx context.Context, path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root := NewNode(filepath.Base(path))
	for _, idx := range sceneRoots(doc) {
		root.AddChild(convertNode(doc, idx))
	}

	m := NewModel(root.Name, root)
	if m.Bounds().IsEmpty() {
		m.Dispose()
		return nil, fmt.Errorf("load model %s: %w", path, ErrNoGeometry)
	}
	return m, nil
}

// sceneRoots returns the root node indices of the default scene, falling
// back to the first scene, then to every node without a parent.
func sceneRoots(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		s := 0
		if doc.Scene != nil {
			s = int(*doc.Scene)
		}
		if s >= 0 && s < len(doc.Scenes) {
			roots := make([]int, 0, len(doc.Scenes[s].Nodes))
			for _, n := range doc.Scenes[s].Nodes {
				roots = append(roots, int(n))
			}
			return roots
		}
	}
	isChild := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			isChild[c] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !isChild[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func convertNode(doc *gltf.Document, idx int) *Node {
	src := doc.Nodes[idx]
	n := NewNode(src.Name)
	n.Local = nodeMatrix(src)
	if src.Mesh != nil {
		if mesh := convertMesh(doc, int(*src.Mesh)); mesh != nil {
			n.Mesh = mesh
			n.Material = &Material{Color: ColorWhite, Opacity: 1}
		}
	}
	for _, c := range src.Children {
		n.AddChild(convertNode(doc, int(c)))
	}
	return n
}

// nodeMatrix returns the node's local transform. A zero matrix, scale or
// rotation is treated as the glTF default.
func nodeMatrix(src *gltf.Node) mgl64.Mat4 {
	var zero [16]float64
	if src.Matrix != zero && mgl64.Mat4(src.Matrix) != mgl64.Ident4() {
		return mgl64.Mat4(src.Matrix)
	}
	t := src.Translation
	r := src.Rotation
	s := src.Scale
	if s == [3]float64{} {
		s = [3]float64{1, 1, 1}
	}
	q := mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}
	if r == [4]float64{} {
		q = mgl64.QuatIdent()
	}
	return mgl64.Translate3D(t[0], t[1], t[2]).
		Mul4(q.Normalize().Mat4()).
		Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
}

func convertMesh(doc *gltf.Document, idx int) *Mesh {
	if idx < 0 || idx >= len(doc.Meshes) {
		return nil
	}
	mesh := &Mesh{Bounds: EmptyBox3()}
	for _, prim := range doc.Meshes[idx].Primitives {
		accIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok || int(accIdx) >= len(doc.Accessors) {
			continue
		}
		acc := doc.Accessors[accIdx]
		if len(acc.Min) >= 3 && len(acc.Max) >= 3 {
			mesh.Bounds = mesh.Bounds.
				ExpandByPoint(mgl64.Vec3{acc.Min[0], acc.Min[1], acc.Min[2]}).
				ExpandByPoint(mgl64.Vec3{acc.Max[0], acc.Max[1], acc.Max[2]})
		}
		pos, err := modeler.ReadPosition(doc, acc, nil)
		if err != nil {
			continue
		}
		for _, p := range pos {
			v := mgl64.Vec3{float64(p[0]), float64(p[1]), float64(p[2])}
			mesh.Points = append(mesh.Points, v)
			mesh.Bounds = mesh.Bounds.ExpandByPoint(v)
		}
	}
	if mesh.Bounds.IsEmpty() {
		return nil
	}
	return mesh
}
