package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// FaceNormal returns the unit normal of triangle (a, b, c), computed as
// normalize(cross(c-a, b-a)). Degenerate triangles yield the zero vector.
func FaceNormal(a, b, c mgl32.Vec3) mgl32.Vec3 {
	return Normalize(c.Sub(a).Cross(b.Sub(a)))
}

// FaceTangent returns the unit tangent of a textured triangle, following the
// direction of increasing U. When the texture coordinates do not span the
// triangle, any unit vector perpendicular to normal is returned.
func FaceTangent(pa, pb, pc mgl32.Vec3, ta, tb, tc mgl32.Vec2, normal mgl32.Vec3) mgl32.Vec3 {
	e1 := pb.Sub(pa)
	e2 := pc.Sub(pa)
	d1 := tb.Sub(ta)
	d2 := tc.Sub(ta)

	det := d1[0]*d2[1] - d2[0]*d1[1]
	if det == 0 || math32.IsNaN(det) {
		return Perpendicular(normal)
	}
	r := 1 / det
	tangent := Normalize(e1.Mul(d2[1]).Sub(e2.Mul(d1[1])).Mul(r))
	if tangent.Len() == 0 {
		return Perpendicular(normal)
	}
	return tangent
}

// Area returns the surface area of triangle (a, b, c)
func Area(a, b, c mgl32.Vec3) float32 {
	return b.Sub(a).Cross(c.Sub(a)).Len() / 2
}

// EdgeLengths returns the lengths of ab, bc and ca
func EdgeLengths(a, b, c mgl32.Vec3) [3]float32 {
	return [3]float32{
		b.Sub(a).Len(),
		c.Sub(b).Len(),
		a.Sub(c).Len(),
	}
}

// Perimeter returns the total length of all edges
func Perimeter(a, b, c mgl32.Vec3) float32 {
	l := EdgeLengths(a, b, c)
	return l[0] + l[1] + l[2]
}

// Center returns the centroid of the triangle
func Center(a, b, c mgl32.Vec3) mgl32.Vec3 {
	return a.Add(b).Add(c).Mul(1.0 / 3.0)
}

// SignedVolume returns the signed volume of the tetrahedron spanned by the
// triangle and the origin. Summed over a closed surface it yields the
// enclosed volume.
func SignedVolume(a, b, c mgl32.Vec3) float32 {
	return a.Dot(b.Cross(c)) / 6
}
