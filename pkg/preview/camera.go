package preview

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/philipparndt/meshforge/pkg/geometry"
)

// nearPlane is the closest camera distance a point may have to be drawn
const nearPlane = 0.01

// Camera orbits a target point
type Camera struct {
	Position  mgl32.Vec3
	Target    mgl32.Vec3
	Up        mgl32.Vec3
	FOV       float32 // vertical field of view in radians
	Distance  float32
	RotationX float32 // elevation
	RotationY float32 // azimuth
}

// NewCamera creates a camera looking at the center of box from +Z, far
// enough away for the whole box to fit.
func NewCamera(box geometry.Box) *Camera {
	distance := box.Diagonal() * 1.5
	if distance <= 0 {
		distance = 1
	}
	c := &Camera{
		Target:   box.Center(),
		Up:       mgl32.Vec3{0, 1, 0},
		FOV:      math32.Pi / 4,
		Distance: distance,
	}
	c.UpdatePosition()
	return c
}

// UpdatePosition places the camera on its orbit
func (c *Camera) UpdatePosition() {
	sx, cx := math32.Sincos(c.RotationX)
	sy, cy := math32.Sincos(c.RotationY)
	c.Position = c.Target.Add(mgl32.Vec3{cx * sy, sx, cx * cy}.Mul(c.Distance))
}

// Rotate moves the camera along its orbit. The elevation stays clear of the
// poles.
func (c *Camera) Rotate(deltaX, deltaY float32) {
	maxAngle := math32.Pi/2 - 0.1
	c.RotationX = mgl32.Clamp(c.RotationX+deltaX, -maxAngle, maxAngle)
	c.RotationY += deltaY
	c.UpdatePosition()
}

// Zoom scales the camera distance by 1+delta
func (c *Camera) Zoom(delta float32) {
	c.Distance = math32.Max(c.Distance*(1+delta), 0.1)
	c.UpdatePosition()
}

// View returns the world to camera matrix
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// Project maps a world point to screen coordinates. The third value is the
// distance along the view direction; points behind the near plane report
// false.
func (c *Camera) Project(view mgl32.Mat4, point mgl32.Vec3, width, height float32) (mgl32.Vec3, bool) {
	p := view.Mul4x1(point.Vec4(1))
	z := -p.Z()
	if z <= nearPlane {
		return mgl32.Vec3{}, false
	}
	scale := math32.Tan(c.FOV / 2)
	aspect := width / height
	x := p.X()/(z*scale*aspect)*(width/2) + width/2
	y := -p.Y()/(z*scale)*(height/2) + height/2
	return mgl32.Vec3{x, y, z}, true
}
