package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quad(t *testing.T) *Mesh {
	t.Helper()
	m := New()
	b := NewBuilder(m, DefaultOptions())
	require.NoError(t, b.BeginConstruction(TriangleStrip))
	z := mgl32.Vec3{0, 0, 1}
	feed(t, b,
		At(mgl32.Vec3{-1, -1, 0}).WithNormal(z).WithUV(mgl32.Vec2{0, 0}),
		At(mgl32.Vec3{-1, 1, 0}).WithNormal(z).WithUV(mgl32.Vec2{0, 1}),
		At(mgl32.Vec3{1, -1, 0}).WithNormal(z).WithUV(mgl32.Vec2{1, 0}),
		At(mgl32.Vec3{1, 1, 0}).WithNormal(z).WithUV(mgl32.Vec2{1, 1}).WithColor(mgl32.Vec4{1, 0, 0, 1}),
	)
	require.NoError(t, b.EndConstruction())
	return m
}

func TestLayoutValidation(t *testing.T) {
	valid := []VertexLayout{
		{PositionSize: 2},
		{PositionSize: 4, NormalSize: 4, TangentSpace: true, UVSize: 4, ColorSize: 4},
		{PositionSize: 3, TangentSpace: true},
	}
	for _, l := range valid {
		assert.NoError(t, l.Validate(), "%+v", l)
	}

	invalid := []VertexLayout{
		{PositionSize: 1},
		{PositionSize: 5},
		{PositionSize: 3, NormalSize: 2},
		{PositionSize: 3, UVSize: 1},
		{PositionSize: 3, ColorSize: 5},
	}
	for _, l := range invalid {
		assert.ErrorIs(t, l.Validate(), ErrInvalidLayout, "%+v", l)
	}

	assert.Equal(t, 14, DefaultLayout.Stride())
	assert.Equal(t, 3, VertexLayout{PositionSize: 3, TangentSpace: true}.Stride())
}

func TestCreateVerticesBuffer(t *testing.T) {
	m := quad(t)
	require.Equal(t, 4, m.VertexCount())

	buf, stride, err := m.CreateVerticesBuffer(VertexLayout{
		PositionSize: 4,
		NormalSize:   3,
		TangentSpace: true,
		UVSize:       3,
		ColorSize:    4,
	})
	require.NoError(t, err)
	assert.Equal(t, 4+9+3+4, stride)
	require.Len(t, buf, 4*stride)

	last := buf[3*stride:]
	assert.Equal(t, []float32{1, 1, 0, 1}, last[0:4])
	assert.InDeltaSlice(t, []float32{1, 0, 0}, last[4:7], 1e-5)
	assert.InDeltaSlice(t, []float32{0, 1, 0}, last[7:10], 1e-5)
	assert.Equal(t, []float32{0, 0, 1}, last[10:13])
	assert.Equal(t, []float32{1, 1, 0}, last[13:16])
	assert.Equal(t, []float32{1, 0, 0, 1}, last[16:20])

	first := buf[:stride]
	assert.Equal(t, []float32{1, 1, 1, 1}, first[16:20])
}

func TestCreateVerticesBufferErrors(t *testing.T) {
	_, _, err := New().CreateVerticesBuffer(DefaultLayout)
	assert.ErrorIs(t, err, ErrEmptyMesh)

	m := tetrahedron(t, LookupLinear)
	_, _, err = m.CreateVerticesBuffer(VertexLayout{PositionSize: 3, ColorSize: 4})
	assert.ErrorIs(t, err, ErrNoVertexColors)

	_, _, err = m.CreateVerticesBuffer(VertexLayout{PositionSize: 7})
	assert.ErrorIs(t, err, ErrInvalidLayout)

	buf, stride, err := m.CreateVerticesBuffer(VertexLayout{PositionSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, stride)
	assert.Len(t, buf, 8)
}

func TestCreateIndicesBuffer(t *testing.T) {
	m := quad(t)
	assert.Equal(t, []uint32{0, 1, 2, 2, 1, 3}, m.CreateIndicesBuffer())

	m.FlipSurface()
	assert.True(t, m.IsWindingReversed())
	assert.Equal(t, []uint32{2, 1, 0, 3, 1, 2}, m.CreateIndicesBuffer())
	m.FlipSurface()
	assert.False(t, m.IsWindingReversed())
}

func TestIndicesFollowFirstSeenOrder(t *testing.T) {
	m := New()
	for _, p := range []mgl32.Vec3{{9, 9, 9}, {0, 0, 0}, {1, 0, 0}, {0, 1, 0}} {
		m.AddVertex(p)
	}
	_, err := m.AddTriangle(NewTriangle(3, 1, 2))
	require.NoError(t, err)

	buf, _, err := m.CreateVerticesBuffer(VertexLayout{PositionSize: 3})
	require.NoError(t, err)
	// the unused vertex is not exported
	assert.Equal(t, []float32{0, 1, 0, 0, 0, 0, 1, 0, 0}, buf)
	assert.Equal(t, []uint32{0, 1, 2}, m.CreateIndicesBuffer())
	assert.Equal(t, [3]int{3, 1, 2}, m.Triangles()[0].VertexIdx)

	reversed := New()
	for _, p := range []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}} {
		reversed.AddVertex(p)
	}
	_, err = reversed.AddTriangle(NewTriangle(2, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2}, reversed.CreateIndicesBuffer())
}
