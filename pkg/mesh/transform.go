package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/philipparndt/meshforge/pkg/geometry"
)

// Transform applies m to every position. Normals and tangents, of both the
// vertices and the faces, are transformed without translation and
// renormalized.
func (m *Mesh) Transform(mat mgl32.Mat4, updateProperties bool) {
	for i := range m.vertices {
		v := &m.vertices[i]
		v.Position = geometry.TransformPoint(mat, v.Position)
		v.Tangent = geometry.TransformDirection(mat, v.Tangent)
		v.Normal = geometry.TransformDirection(mat, v.Normal)
	}
	for i := range m.triangles {
		t := &m.triangles[i]
		t.FaceTangent = geometry.TransformDirection(mat, t.FaceTangent)
		t.FaceNormal = geometry.TransformDirection(mat, t.FaceNormal)
	}
	m.invalidateLookup()

	if updateProperties {
		m.UpdateProperties()
	}
}

// SetCenterAtBottom translates the mesh so that its lowest point lies on Y = 0
func (m *Mesh) SetCenterAtBottom(updateProperties bool) {
	if len(m.vertices) == 0 {
		return
	}
	box := geometry.NewBox()
	for _, v := range m.vertices {
		box.Extend(v.Position)
	}
	m.Transform(mgl32.Translate3D(0, -box.Min[1], 0), updateProperties)
}

// FlipSurface turns the surface inside out: face and vertex frames are
// negated and exported indices are emitted in reverse order.
func (m *Mesh) FlipSurface() {
	for i := range m.triangles {
		t := &m.triangles[i]
		t.FaceNormal = t.FaceNormal.Mul(-1)
		t.FaceTangent = t.FaceTangent.Mul(-1)
	}
	for i := range m.vertices {
		v := &m.vertices[i]
		v.Normal = v.Normal.Mul(-1)
		v.Tangent = v.Tangent.Mul(-1)
	}
	m.reverseWinding = !m.reverseWinding
	m.invalidateLookup()
}

// FlipYAxis mirrors the mesh across the XZ plane
func (m *Mesh) FlipYAxis() {
	for i := range m.vertices {
		v := &m.vertices[i]
		v.Position[1] = -v.Position[1]
		v.Tangent[1] = -v.Tangent[1]
		v.Normal[1] = -v.Normal[1]
	}
	for i := range m.triangles {
		t := &m.triangles[i]
		t.FaceTangent[1] = -t.FaceTangent[1]
		t.FaceNormal[1] = -t.FaceNormal[1]
	}
	m.invalidateLookup()
}

// SetGlobalVertexColor replaces all colors with c
func (m *Mesh) SetGlobalVertexColor(c mgl32.Vec4) {
	m.colors = []mgl32.Vec4{c}
	for i := range m.triangles {
		m.triangles[i].ColorIdx = [3]int{}
	}
	m.invalidateLookup()
}
