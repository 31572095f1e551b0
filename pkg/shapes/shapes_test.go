package shapes

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/meshforge/pkg/mesh"
)

func countShared(m *mesh.Mesh) int {
	n := 0
	for _, e := range m.Edges() {
		if e.IsShared() {
			n++
		}
	}
	return n
}

func TestTriangle(t *testing.T) {
	m, err := Triangle(2, mesh.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, 1, m.TriangleCount())
	for _, v := range m.Vertices() {
		assert.InDelta(t, 1, v.Normal[2], 1e-5)
	}
	assert.InDelta(t, 2, m.BoundingBox().Size()[0], 1e-5)
}

func TestQuad(t *testing.T) {
	m, err := Quad(2, 4, mesh.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, 2, m.TriangleCount())
	assert.Equal(t, 2, countShared(m))
	for _, tri := range m.Triangles() {
		assert.InDelta(t, 1, tri.FaceNormal[2], 1e-5)
	}
	assert.Equal(t, mgl32.Vec3{2, 4, 0}, m.BoundingBox().Size())
}

func TestUnitCube(t *testing.T) {
	m, err := Cuboid(mgl32.Vec3{1, 1, 1}, mesh.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 24, m.VertexCount())
	assert.Equal(t, 12, m.TriangleCount())
	assert.Equal(t, 36, m.EdgeCount())
	assert.Equal(t, 12, countShared(m))
	assert.True(t, m.IsOpen())

	box := m.BoundingBox()
	assert.Equal(t, mgl32.Vec3{-0.5, -0.5, -0.5}, box.Min)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, box.Max)
	assert.InDelta(t, 0.5, m.BoundingSphere().Radius, 1e-6)
	assert.InDelta(t, 0, m.Centroid().Len(), 1e-6)

	// every face normal points away from the center and matches its vertices
	for _, tri := range m.Triangles() {
		center := m.Vertex(tri.VertexIdx[0]).Position
		assert.Greater(t, tri.FaceNormal.Dot(center), float32(0))
		for _, vi := range tri.VertexIdx {
			assert.Equal(t, tri.FaceNormal, m.Vertex(vi).Normal)
		}
	}
}

func TestCubeCenteredAtBottom(t *testing.T) {
	opts := mesh.DefaultOptions()
	opts.CenterAtBottom = true
	m, err := Cuboid(mgl32.Vec3{2, 2, 2}, opts)
	require.NoError(t, err)
	assert.Equal(t, float32(0), m.BoundingBox().Min[1])
	assert.Equal(t, float32(2), m.BoundingBox().Max[1])
}

func TestSphere(t *testing.T) {
	m, err := Sphere(1, 8, 4, mesh.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 48, m.TriangleCount())
	assert.Equal(t, 43, m.VertexCount())
	for _, v := range m.Vertices() {
		assert.InDelta(t, 1, v.Position.Len(), 1e-5)
		assert.InDelta(t, 1, v.Normal.Dot(v.Position), 1e-5)
	}
	for _, tri := range m.Triangles() {
		center := m.Vertex(tri.VertexIdx[0]).Position.
			Add(m.Vertex(tri.VertexIdx[1]).Position).
			Add(m.Vertex(tri.VertexIdx[2]).Position)
		assert.Greater(t, tri.FaceNormal.Dot(center), float32(0))
	}
	assert.InDelta(t, 1, m.RadiusFromOrigin(), 1e-5)
}

func TestDisk(t *testing.T) {
	m, err := Disk(1, 6, mesh.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 7, m.VertexCount())
	assert.Equal(t, 6, m.TriangleCount())
	// spokes are shared, the rim is open
	assert.Equal(t, 12, countShared(m))
	assert.True(t, m.IsOpen())
	for _, tri := range m.Triangles() {
		assert.InDelta(t, 1, tri.FaceNormal[1], 1e-5)
	}
}

func TestGenerate(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			m, err := Generate(kind, Params{Size: 2, Slices: 12, Stacks: 6}, mesh.DefaultOptions())
			require.NoError(t, err)
			assert.False(t, m.IsEmpty())
			assert.InDelta(t, 2, m.BoundingBox().HighestLength(), 1e-4)
		})
	}

	_, err := Generate("torus", Params{Size: 1}, mesh.DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = Generate(KindSphere, Params{Size: 1, Slices: 2, Stacks: 2}, mesh.DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = Cuboid(mgl32.Vec3{1, 0, 1}, mesh.DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
