package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/philipparndt/meshforge/pkg/geometry"
)

// UpdateProperties recomputes the centroid, the bounding box, the bounding
// sphere and the farthest distance from the origin.
func (m *Mesh) UpdateProperties() {
	box := geometry.NewBox()
	var sum mgl32.Vec3
	var radius float32
	for _, v := range m.vertices {
		box.Extend(v.Position)
		sum = sum.Add(v.Position)
		if l := v.Position.Len(); l > radius {
			radius = l
		}
	}

	m.box = box
	m.radiusFromOrigin = radius
	m.centroid = mgl32.Vec3{}
	if len(m.vertices) > 0 {
		m.centroid = sum.Mul(1 / float32(len(m.vertices)))
	}
	m.sphere = geometry.SphereAroundBox(m.centroid, box)
	m.propertiesValid = true
}

// PropertiesValid reports whether the derived properties reflect the
// geometry as of the last UpdateProperties call.
func (m *Mesh) PropertiesValid() bool {
	return m.propertiesValid
}

// BoundingBox returns the axis-aligned bounding box
func (m *Mesh) BoundingBox() geometry.Box {
	return m.box
}

// BoundingSphere returns a sphere around the centroid whose radius is half of
// the longest side of the bounding box.
func (m *Mesh) BoundingSphere() geometry.Sphere {
	return m.sphere
}

// Centroid returns the mean vertex position
func (m *Mesh) Centroid() mgl32.Vec3 {
	return m.centroid
}

// RadiusFromOrigin returns the distance of the farthest vertex from the origin
func (m *Mesh) RadiusFromOrigin() float32 {
	return m.radiusFromOrigin
}
