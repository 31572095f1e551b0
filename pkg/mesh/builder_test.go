package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pA = mgl32.Vec3{0, 0, 0}
	pB = mgl32.Vec3{1, 0, 0}
	pC = mgl32.Vec3{0, 1, 0}
)

func feed(t *testing.T, b *Builder, vertices ...VertexData) {
	t.Helper()
	for _, v := range vertices {
		require.NoError(t, b.NewVertex(v))
	}
}

func TestBuildSingleTriangle(t *testing.T) {
	m := New()
	b := NewBuilder(m, DefaultOptions())
	require.NoError(t, b.BeginConstruction(Triangles))
	assert.Equal(t, Constructing, b.State())
	feed(t, b, At(pA), At(pB), At(pC))
	require.NoError(t, b.EndConstruction())
	assert.Equal(t, Idle, b.State())

	require.Equal(t, 3, m.VertexCount())
	require.Equal(t, 1, m.TriangleCount())
	require.Equal(t, 3, m.EdgeCount())
	assert.True(t, m.IsOpen())
	for _, e := range m.Edges() {
		assert.False(t, e.IsShared())
	}

	tri := m.Triangles()[0]
	assert.Equal(t, [3]int{0, 1, 2}, tri.VertexIdx)
	assertVec3(t, mgl32.Vec3{0, 0, -1}, tri.FaceNormal)
	assertVec3(t, mgl32.Vec3{-1, 0, 0}, tri.FaceTangent)
	for _, v := range m.Vertices() {
		assertVec3(t, mgl32.Vec3{0, 0, -1}, v.Normal)
		assertVec3(t, mgl32.Vec3{-1, 0, 0}, v.Tangent)
	}
	assert.Equal(t, []mgl32.Vec4{DefaultColor}, m.VertexColors())
	assert.True(t, m.PropertiesValid())

	buf, stride, err := m.CreateVerticesBuffer(VertexLayout{PositionSize: 3, NormalSize: 3, UVSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 8, stride)
	require.Len(t, buf, 24)
	// second vertex: position, normal, then cubic UV of the -Z face
	assert.Equal(t, []float32{1, 0, 0}, buf[8:11])
	assert.InDeltaSlice(t, []float32{0, 0, -1}, buf[11:14], 1e-5)
	assert.InDeltaSlice(t, []float32{-0.5, 0.5}, buf[14:16], 1e-5)
	assert.Equal(t, []uint32{0, 1, 2}, m.CreateIndicesBuffer())
}

func TestBuildStrip(t *testing.T) {
	for _, lookup := range lookups {
		t.Run(lookup.String(), func(t *testing.T) {
			m := New()
			opts := DefaultOptions()
			opts.Lookup = lookup
			b := NewBuilder(m, opts)
			require.NoError(t, b.BeginConstruction(TriangleStrip))
			feed(t, b,
				At(mgl32.Vec3{0, 0, 0}),
				At(mgl32.Vec3{0, 1, 0}),
				At(mgl32.Vec3{1, 0, 0}),
				At(mgl32.Vec3{1, 1, 0}),
				At(mgl32.Vec3{2, 0, 0}),
			)
			require.NoError(t, b.EndConstruction())

			require.Equal(t, 3, m.TriangleCount())
			assert.Equal(t, [3]int{0, 1, 2}, m.Triangles()[0].VertexIdx)
			assert.Equal(t, [3]int{2, 1, 3}, m.Triangles()[1].VertexIdx)
			assert.Equal(t, [3]int{2, 3, 4}, m.Triangles()[2].VertexIdx)
			assert.Equal(t, 5, m.VertexCount())
			assert.Equal(t, 9, m.EdgeCount())

			shared := 0
			for _, e := range m.Edges() {
				if e.IsShared() {
					shared++
				}
			}
			assert.Equal(t, 4, shared)
		})
	}
}

func TestBuildFan(t *testing.T) {
	m := New()
	b := NewBuilder(m, DefaultOptions())
	require.NoError(t, b.BeginConstruction(TriangleFan))
	feed(t, b,
		At(mgl32.Vec3{0, 0, 0}),
		At(mgl32.Vec3{1, 0, 0}),
		At(mgl32.Vec3{1, 1, 0}),
		At(mgl32.Vec3{0, 1, 0}),
	)
	require.NoError(t, b.EndConstruction())

	require.Equal(t, 2, m.TriangleCount())
	assert.Equal(t, [3]int{0, 1, 2}, m.Triangles()[0].VertexIdx)
	assert.Equal(t, [3]int{0, 2, 3}, m.Triangles()[1].VertexIdx)
}

func TestBuilderUsageErrors(t *testing.T) {
	m := New()
	b := NewBuilder(m, DefaultOptions())

	assert.ErrorIs(t, b.NewVertex(At(pA)), ErrNotConstructing)
	assert.ErrorIs(t, b.EndConstruction(), ErrNotConstructing)
	assert.ErrorIs(t, b.NewGroup(), ErrNotConstructing)
	assert.True(t, m.IsEmpty())
	assert.Equal(t, 0, m.VertexCount())

	require.NoError(t, b.BeginConstruction(Triangles))
	assert.ErrorIs(t, b.BeginConstruction(TriangleFan), ErrAlreadyConstructing)
	assert.Equal(t, Triangles, b.Mode())
	assert.ErrorIs(t, b.SetDestination(New()), ErrAlreadyConstructing)
	require.NoError(t, b.EndConstruction())

	assert.Error(t, b.BeginConstruction(ModeNone))
	assert.ErrorIs(t, NewBuilder(nil, DefaultOptions()).BeginConstruction(Triangles), ErrNoDestination)
}

func TestDegenerateTriangleIsSkipped(t *testing.T) {
	m := New()
	b := NewBuilder(m, DefaultOptions())
	require.NoError(t, b.BeginConstruction(Triangles))
	require.NoError(t, b.NewVertex(At(pA)))
	require.NoError(t, b.NewVertex(At(pA)))
	assert.ErrorIs(t, b.NewVertex(At(pB)), ErrDegenerateTriangle)
	assert.Equal(t, 0, m.VertexCount())
	assert.Equal(t, 0, m.TriangleCount())

	// the session goes on
	feed(t, b, At(pA), At(pB), At(pC))
	require.NoError(t, b.EndConstruction())
	assert.Equal(t, 1, m.TriangleCount())
}

func TestNonManifoldTriangleIsRolledBack(t *testing.T) {
	for _, lookup := range lookups {
		t.Run(lookup.String(), func(t *testing.T) {
			m := New()
			opts := DefaultOptions()
			opts.Lookup = lookup
			b := NewBuilder(m, opts)

			d := mgl32.Vec3{1, 1, 0}
			e := mgl32.Vec3{0, 0, 1}
			require.NoError(t, b.BeginConstruction(Triangles))
			feed(t, b, At(pA), At(pB), At(pC))
			feed(t, b, At(pB), At(pA), At(d))
			require.Equal(t, 4, m.VertexCount())

			require.NoError(t, b.NewVertex(At(pA)))
			require.NoError(t, b.NewVertex(At(pB)))
			err := b.NewVertex(At(e).WithColor(mgl32.Vec4{1, 0, 0, 1}))
			assert.ErrorIs(t, err, ErrNonManifold)
			assert.Equal(t, 4, m.VertexCount())
			assert.Len(t, m.VertexColors(), 1)
			assert.Equal(t, 2, m.TriangleCount())
			assert.Equal(t, 6, m.EdgeCount())

			// the rolled back vertex comes back at the same index
			feed(t, b, At(pA), At(e), At(pC))
			assert.Equal(t, [3]int{0, 4, 2}, m.Triangles()[2].VertexIdx)
			require.NoError(t, b.EndConstruction())
		})
	}
}

func TestExplicitNormalDisablesGeneration(t *testing.T) {
	m := New()
	b := NewBuilder(m, DefaultOptions())
	up := mgl32.Vec3{0, 1, 0}
	require.NoError(t, b.BeginConstruction(Triangles))
	feed(t, b, At(pA).WithNormal(up), At(pB), At(pC))
	assert.Equal(t, Feed(0), b.Feed())
	require.NoError(t, b.EndConstruction())

	assert.Equal(t, up, m.Vertex(0).Normal)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, m.Vertex(1).Normal)
	assertVec3(t, mgl32.Vec3{0, 0, -1}, m.Triangles()[0].FaceNormal)
}

func TestGlobalNormal(t *testing.T) {
	t.Run("recomputed from faces", func(t *testing.T) {
		m := New()
		opts := DefaultOptions()
		opts.EnableGlobalNormal(mgl32.Vec3{0, 0, 1})
		b := NewBuilder(m, opts)
		require.NoError(t, b.BeginConstruction(Triangles))
		feed(t, b, At(pA), At(pB), At(pC))
		require.NoError(t, b.EndConstruction())

		face := m.Triangles()[0].FaceNormal
		assert.Equal(t, mgl32.Vec3{0, 0, -1}, face)
		for _, v := range m.Vertices() {
			assert.Equal(t, face, v.Normal)
		}
	})

	t.Run("explicit normal wins", func(t *testing.T) {
		m := New()
		opts := DefaultOptions()
		opts.EnableGlobalNormal(mgl32.Vec3{0, 0, 1})
		b := NewBuilder(m, opts)
		require.NoError(t, b.BeginConstruction(Triangles))
		feed(t, b, At(pA).WithNormal(mgl32.Vec3{0, 0, 1}), At(pB), At(pC))
		require.NoError(t, b.EndConstruction())

		for _, v := range m.Vertices() {
			assert.Equal(t, mgl32.Vec3{0, 0, 1}, v.Normal)
		}
	})
}

func TestExplicitAttributes(t *testing.T) {
	m := New()
	opts := DefaultOptions()
	opts.SetTextureCoordinatesMultiplier(2, -3)
	b := NewBuilder(m, opts)
	red := mgl32.Vec4{1, 0, 0, 1}
	tangent := mgl32.Vec3{0, 1, 0}

	require.NoError(t, b.BeginConstruction(Triangles))
	v := At(pA).WithUV(mgl32.Vec2{1, 1}).WithColor(red).WithTangent(tangent)
	assert.True(t, v.Feed().Has(FeedUV|FeedColor|FeedTangent))
	assert.False(t, v.Feed().Has(FeedNormal))
	feed(t, b, v, At(pB).WithUV(mgl32.Vec2{0, 1}), At(pC).WithUV(mgl32.Vec2{0, 0}))
	require.NoError(t, b.EndConstruction())

	assert.Equal(t, mgl32.Vec2{2, 3}, m.Vertex(0).UV)
	assert.Equal(t, mgl32.Vec2{0, 0}, m.Vertex(2).UV)
	assert.Equal(t, tangent, m.Vertex(0).Tangent)
	assert.Equal(t, red, m.VertexColor(m.Triangles()[0].ColorIdx[0]))
	assert.Equal(t, DefaultColor, m.VertexColor(m.Triangles()[0].ColorIdx[1]))
}

func TestColorDerivation(t *testing.T) {
	t.Run("global", func(t *testing.T) {
		m := New()
		opts := DefaultOptions()
		opts.EnableGlobalVertexColor(mgl32.Vec4{0, 0, 1, 1})
		b := NewBuilder(m, opts)
		require.NoError(t, b.BeginConstruction(Triangles))
		feed(t, b, At(pA), At(pB), At(pC))
		require.NoError(t, b.EndConstruction())
		assert.Equal(t, []mgl32.Vec4{{0, 0, 1, 1}}, m.VertexColors())
	})

	t.Run("generated", func(t *testing.T) {
		m := New()
		opts := DefaultOptions()
		opts.EnableGlobalVertexColor(mgl32.Vec4{0, 0, 1, 1})
		opts.EnableVertexColorGeneration(true)
		assert.False(t, opts.GlobalColor.Present)
		b := NewBuilder(m, opts)
		require.NoError(t, b.BeginConstruction(Triangles))
		feed(t, b, At(mgl32.Vec3{2, 0, 0}), At(mgl32.Vec3{0, 3, 0}), At(mgl32.Vec3{0, 0, 4}))
		require.NoError(t, b.EndConstruction())
		assert.Equal(t, []mgl32.Vec4{{1, 0, 0, 1}, {0, 1, 0, 1}, {0, 0, 1, 1}}, m.VertexColors())
	})
}

func TestWithoutDataEconomy(t *testing.T) {
	m := New()
	opts := DefaultOptions()
	opts.DataEconomy = false
	b := NewBuilder(m, opts)
	require.NoError(t, b.BeginConstruction(TriangleStrip))
	feed(t, b,
		At(mgl32.Vec3{0, 0, 0}),
		At(mgl32.Vec3{0, 1, 0}),
		At(mgl32.Vec3{1, 0, 0}),
		At(mgl32.Vec3{1, 1, 0}),
	)
	require.NoError(t, b.EndConstruction())

	assert.Equal(t, 6, m.VertexCount())
	assert.Len(t, m.VertexColors(), 6)
	// nothing is shared without common vertex indices
	assert.Equal(t, 6, m.EdgeCount())
	assert.True(t, m.IsOpen())
	for _, e := range m.Edges() {
		assert.False(t, e.IsShared())
	}
}

func TestCenterAtBottomAndFlip(t *testing.T) {
	m := New()
	opts := DefaultOptions()
	opts.CenterAtBottom = true
	opts.FlipGeometry = true
	b := NewBuilder(m, opts)
	require.NoError(t, b.BeginConstruction(Triangles))
	feed(t, b,
		At(mgl32.Vec3{0, 5, 0}),
		At(mgl32.Vec3{1, 5, 0}),
		At(mgl32.Vec3{0, 6, 0}),
	)
	require.NoError(t, b.EndConstruction())

	assert.Equal(t, float32(0), m.BoundingBox().Min[1])
	assert.True(t, m.IsWindingReversed())
	assertVec3(t, mgl32.Vec3{0, 0, 1}, m.Triangles()[0].FaceNormal)
	assertVec3(t, mgl32.Vec3{0, 0, 1}, m.Vertex(0).Normal)
	assert.Equal(t, []uint32{2, 1, 0}, m.CreateIndicesBuffer())
}

func TestGroupsAndTriangleReset(t *testing.T) {
	m := New()
	b := NewBuilder(m, DefaultOptions())
	require.NoError(t, b.BeginConstruction(TriangleStrip))
	feed(t, b, At(pA), At(pB), At(pC))
	require.NoError(t, b.NewGroup())
	// after a group change the strip starts over
	feed(t, b,
		At(mgl32.Vec3{5, 0, 0}),
		At(mgl32.Vec3{6, 0, 0}),
	)
	assert.Equal(t, 1, m.TriangleCount())
	feed(t, b, At(mgl32.Vec3{5, 1, 0}))
	require.NoError(t, b.EndConstruction())

	assert.Equal(t, []Group{{Offset: 0, Count: 1}, {Offset: 1, Count: 1}}, m.Groups())
	assert.Equal(t, [3]int{3, 4, 5}, m.Triangles()[1].VertexIdx)
}

func TestResetEndsConstruction(t *testing.T) {
	m := New()
	opts := DefaultOptions()
	opts.DataEconomy = false
	b := NewBuilder(m, opts)
	require.NoError(t, b.BeginConstruction(Triangles))
	feed(t, b, At(pA), At(pB), At(pC))
	require.NoError(t, b.Reset())
	assert.Equal(t, Idle, b.State())
	assert.Same(t, m, b.Destination())
	assert.True(t, m.PropertiesValid())

	require.NoError(t, b.Reset())
	assert.Nil(t, b.Destination())
	assert.True(t, b.Options().DataEconomy)
}

func TestEmptySessionCloses(t *testing.T) {
	m := New()
	b := NewBuilder(m, DefaultOptions())
	require.NoError(t, b.BeginConstruction(TriangleFan))
	require.NoError(t, b.NewVertex(At(pA)))
	require.NoError(t, b.EndConstruction())
	assert.True(t, m.IsEmpty())
	assert.Equal(t, Idle, b.State())
}

func TestSphericalProjection(t *testing.T) {
	m := New()
	opts := DefaultOptions()
	opts.Projection = ProjectSpherical
	b := NewBuilder(m, opts)
	require.NoError(t, b.BeginConstruction(Triangles))
	feed(t, b,
		At(mgl32.Vec3{1, 0, 0}),
		At(mgl32.Vec3{0, 1, 0}),
		At(mgl32.Vec3{0, 0, 1}),
	)
	require.NoError(t, b.EndConstruction())

	assert.InDelta(t, 0.5, m.Vertex(0).UV[0], 1e-6)
	assert.InDelta(t, 0, m.Vertex(1).UV[1], 1e-6)
	assert.InDelta(t, 0.75, m.Vertex(2).UV[0], 1e-6)
}
