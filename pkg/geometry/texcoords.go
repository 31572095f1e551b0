package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// CubicCoordinates projects a position onto the cube face selected by the
// dominant axis of normal. A unit cube centered on the origin maps every
// face onto [0, 1].
func CubicCoordinates(p, normal mgl32.Vec3) mgl32.Vec2 {
	ax := math32.Abs(normal[0])
	ay := math32.Abs(normal[1])
	az := math32.Abs(normal[2])

	var u, v float32
	switch {
	case ax >= ay && ax >= az:
		u, v = p[2], p[1]
		if normal[0] > 0 {
			u = -u
		}
	case ay >= az:
		u, v = p[0], p[2]
		if normal[1] > 0 {
			v = -v
		}
	default:
		u, v = p[0], p[1]
		if normal[2] < 0 {
			u = -u
		}
	}
	return mgl32.Vec2{u + 0.5, v + 0.5}
}

// SphericalCoordinates projects a position onto a sphere centered on the
// origin: U follows the longitude around Y, V the latitude from the north pole.
func SphericalCoordinates(p mgl32.Vec3) mgl32.Vec2 {
	l := p.Len()
	if l == 0 {
		return mgl32.Vec2{0.5, 0.5}
	}
	u := 0.5 + math32.Atan2(p[2], p[0])/(2*math32.Pi)
	v := 0.5 - math32.Asin(clamp(p[1]/l, -1, 1))/math32.Pi
	return mgl32.Vec2{u, v}
}

func clamp(x, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, x))
}
