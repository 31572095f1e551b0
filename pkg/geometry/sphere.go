package geometry

import "github.com/go-gl/mathgl/mgl32"

// Sphere is a bounding sphere
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

// SphereAroundBox returns the sphere centered on center whose radius is
// half of the longest side of the box.
func SphereAroundBox(center mgl32.Vec3, box Box) Sphere {
	return Sphere{Center: center, Radius: box.HighestLength() * 0.5}
}

// IsEmpty reports whether the sphere has no extent
func (s Sphere) IsEmpty() bool {
	return s.Radius <= 0
}

// Contains reports whether the point lies inside or on the sphere
func (s Sphere) Contains(point mgl32.Vec3) bool {
	return point.Sub(s.Center).Len() <= s.Radius
}
