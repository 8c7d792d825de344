package polaris

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// triangleGLTF is one triangle (0,0,0) (1,0,0) (0,2,0) under a node moved
// to z=3, with the vertex buffer embedded as a data URI.
const triangleGLTF = `{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"nodes": [0]}],
  "nodes": [{"name": "tri", "mesh": 0, "translation": [0, 0, 3]}],
  "meshes": [{"primitives": [{"attributes": {"POSITION": 0}}]}],
  "accessors": [{
    "bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3",
    "min": [0, 0, 0], "max": [1, 2, 0]
  }],
  "bufferViews": [{"buffer": 0, "byteLength": 36}],
  "buffers": [{
    "byteLength": 36,
    "uri": "data:application/octet-stream;base64,AAAAAAAAAAAAAAAAAACAPwAAAAAAAAAAAAAAAAAAAEAAAAAA"
  }]
}`

const emptyGLTF = `{
  "asset": {"version": "2.0"},
  "scenes": [{"nodes": [0]}],
  "nodes": [{"name": "empty"}]
}`

func writeAsset(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadGLTF(t *testing.T) {
	path := writeAsset(t, "tri.gltf", triangleGLTF)
	m, err := LoadGLTF(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "tri.gltf", m.Name)
	b := m.Bounds()
	assert.InDelta(t, 2, m.MaxDim(), 1e-6)
	assert.InDelta(t, 3, b.Min[2], 1e-6)
	assert.InDelta(t, 3, b.Max[2], 1e-6)

	var meshes int
	m.Traverse(func(n *Node) {
		if n.Mesh != nil {
			meshes++
			assert.Len(t, n.Mesh.Points, 3)
			assert.NotNil(t, n.Material)
		}
	})
	assert.Equal(t, 1, meshes)
}

func TestLoadGLTFNoGeometry(t *testing.T) {
	path := writeAsset(t, "empty.gltf", emptyGLTF)
	_, err := LoadGLTF(context.Background(), path)
	assert.ErrorIs(t, err, ErrNoGeometry)
}

func TestLoadGLTFMissingFile(t *testing.T) {
	_, err := LoadGLTF(context.Background(), filepath.Join(t.TempDir(), "nope.glb"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.glb")
}

func TestLoadModelAsync(t *testing.T) {
	path := writeAsset(t, "tri.gltf", triangleGLTF)
	f := LoadModelAsync(context.Background(), path, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	m, err := f.Await(ctx)
	require.NoError(t, err)
	assert.NotNil(t, m)

	_, state, _ := f.Poll()
	assert.Equal(t, FutureReady, state)
}

func TestLoadModelAsyncCustomLoader(t *testing.T) {
	boom := errors.New("boom")
	f := LoadModelAsync(context.Background(), "x.glb", func(_ context.Context, path string) (*Model, error) {
		assert.Equal(t, "x.glb", path)
		return nil, boom
	})
	_, err := f.Await(context.Background())
	assert.ErrorIs(t, err, boom)
}
