package geometry

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Canonical axes
var (
	PositiveX = mgl32.Vec3{1, 0, 0}
	PositiveY = mgl32.Vec3{0, 1, 0}
	PositiveZ = mgl32.Vec3{0, 0, 1}
)

// Normalize returns a unit vector in the same direction, or the zero vector
// when v has no length.
func Normalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 || math32.IsNaN(l) {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// Perpendicular returns a unit vector orthogonal to v
func Perpendicular(v mgl32.Vec3) mgl32.Vec3 {
	axis := PositiveX
	if math32.Abs(v[0]) > math32.Abs(v[1]) {
		axis = PositiveY
	}
	return Normalize(v.Cross(axis))
}

// WithoutTranslation returns m with its translation column cleared
func WithoutTranslation(m mgl32.Mat4) mgl32.Mat4 {
	m.SetCol(3, mgl32.Vec4{0, 0, 0, 1})
	return m
}

// TransformPoint applies m to a position
func TransformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// TransformDirection applies m without its translation to a direction and
// renormalizes the result.
func TransformDirection(m mgl32.Mat4, d mgl32.Vec3) mgl32.Vec3 {
	return Normalize(WithoutTranslation(m).Mul4x1(d.Vec4(0)).Vec3())
}

// PositionColor maps a position to a color: the normalized position with
// an opaque alpha.
func PositionColor(p mgl32.Vec3) mgl32.Vec4 {
	return Normalize(p).Vec4(1)
}

// FormatVector returns a readable string for a vector
func FormatVector(v mgl32.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v[0], v[1], v[2])
}
