package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/philipparndt/meshforge/pkg/geometry"
)

// faceNormal returns the normal of t, following the winding flag
func (m *Mesh) faceNormal(t Triangle) mgl32.Vec3 {
	a := m.vertices[t.VertexIdx[0]].Position
	b := m.vertices[t.VertexIdx[1]].Position
	c := m.vertices[t.VertexIdx[2]].Position
	n := geometry.FaceNormal(a, b, c)
	if m.reverseWinding {
		n = n.Mul(-1)
	}
	return n
}

func (m *Mesh) faceTangent(t Triangle, normal mgl32.Vec3) mgl32.Vec3 {
	va := m.vertices[t.VertexIdx[0]]
	vb := m.vertices[t.VertexIdx[1]]
	vc := m.vertices[t.VertexIdx[2]]
	tangent := geometry.FaceTangent(va.Position, vb.Position, vc.Position, va.UV, vb.UV, vc.UV, normal)
	if m.reverseWinding {
		tangent = tangent.Mul(-1)
	}
	return tangent
}

// ComputeTrianglesNormal sets the face normal of every triangle
func (m *Mesh) ComputeTrianglesNormal() error {
	if m.IsEmpty() {
		return ErrEmptyMesh
	}
	for i := range m.triangles {
		m.triangles[i].FaceNormal = m.faceNormal(m.triangles[i])
	}
	return nil
}

// ComputeTrianglesTangent sets the face tangent of every triangle from its
// texture coordinates.
func (m *Mesh) ComputeTrianglesTangent() error {
	if m.IsEmpty() {
		return ErrEmptyMesh
	}
	if !m.uvAvailable {
		return ErrNoTextureCoordinates
	}
	for i := range m.triangles {
		t := &m.triangles[i]
		t.FaceTangent = m.faceTangent(*t, t.FaceNormal)
	}
	return nil
}

// ComputeTrianglesSpace sets both face normal and face tangent
func (m *Mesh) ComputeTrianglesSpace() error {
	if m.IsEmpty() {
		return ErrEmptyMesh
	}
	if !m.uvAvailable {
		return ErrNoTextureCoordinates
	}
	for i := range m.triangles {
		t := &m.triangles[i]
		t.FaceNormal = m.faceNormal(*t)
		t.FaceTangent = m.faceTangent(*t, t.FaceNormal)
	}
	return nil
}

// adjacency lists, for each vertex, the triangles using it
func (m *Mesh) adjacency() [][]int {
	adj := make([][]int, len(m.vertices))
	for ti, t := range m.triangles {
		for _, v := range t.VertexIdx {
			adj[v] = append(adj[v], ti)
		}
	}
	return adj
}

// averageFaces sums a face vector over the triangles of each vertex and
// stores the normalized result. Vertices without triangles are left alone.
func (m *Mesh) averageFaces(adj [][]int, face func(Triangle) mgl32.Vec3, store func(*Vertex, mgl32.Vec3)) {
	for vi, tris := range adj {
		var sum mgl32.Vec3
		for _, ti := range tris {
			sum = sum.Add(face(m.triangles[ti]))
		}
		if n := geometry.Normalize(sum); n.Len() > 0 {
			store(&m.vertices[vi], n)
		}
	}
}

func faceNormalOf(t Triangle) mgl32.Vec3  { return t.FaceNormal }
func faceTangentOf(t Triangle) mgl32.Vec3 { return t.FaceTangent }

func storeNormal(v *Vertex, n mgl32.Vec3)  { v.Normal = n }
func storeTangent(v *Vertex, t mgl32.Vec3) { v.Tangent = t }

// ComputeVerticesNormal averages the face normals around each vertex. Face
// normals must be up to date.
func (m *Mesh) ComputeVerticesNormal() error {
	if m.IsEmpty() {
		return ErrEmptyMesh
	}
	m.averageFaces(m.adjacency(), faceNormalOf, storeNormal)
	m.invalidateLookup()
	return nil
}

// ComputeVerticesTangent averages the face tangents around each vertex
func (m *Mesh) ComputeVerticesTangent() error {
	if m.IsEmpty() {
		return ErrEmptyMesh
	}
	if !m.uvAvailable {
		return ErrNoTextureCoordinates
	}
	m.averageFaces(m.adjacency(), faceTangentOf, storeTangent)
	return nil
}

// ComputeVerticesSpace averages both face normals and face tangents
func (m *Mesh) ComputeVerticesSpace() error {
	if m.IsEmpty() {
		return ErrEmptyMesh
	}
	if !m.uvAvailable {
		return ErrNoTextureCoordinates
	}
	adj := m.adjacency()
	m.averageFaces(adj, faceNormalOf, storeNormal)
	m.averageFaces(adj, faceTangentOf, storeTangent)
	m.invalidateLookup()
	return nil
}

// ComputeSurfaceSpace runs the face then the vertex frame passes
func (m *Mesh) ComputeSurfaceSpace() error {
	if err := m.ComputeTrianglesSpace(); err != nil {
		return err
	}
	return m.ComputeVerticesSpace()
}

// GenerateTextureCoordinates assigns cubic-projected UVs scaled by u and v
func (m *Mesh) GenerateTextureCoordinates(u, v float32) error {
	return m.projectTextureCoordinates(u, v, func(vx Vertex) mgl32.Vec2 {
		return geometry.CubicCoordinates(vx.Position, vx.Normal)
	})
}

// GenerateSphericalTextureCoordinates assigns UVs from a spherical
// projection around the origin, scaled by u and v.
func (m *Mesh) GenerateSphericalTextureCoordinates(u, v float32) error {
	return m.projectTextureCoordinates(u, v, func(vx Vertex) mgl32.Vec2 {
		return geometry.SphericalCoordinates(vx.Position)
	})
}

func (m *Mesh) projectTextureCoordinates(u, v float32, project func(Vertex) mgl32.Vec2) error {
	if m.IsEmpty() {
		return ErrEmptyMesh
	}
	for i := range m.vertices {
		uv := project(m.vertices[i])
		m.vertices[i].UV = mgl32.Vec2{uv[0] * u, uv[1] * v}
	}
	m.uvAvailable = true
	m.invalidateLookup()
	return nil
}
