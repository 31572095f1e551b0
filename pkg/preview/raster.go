package preview

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// canvas is an image with a depth buffer
type canvas struct {
	img   *image.RGBA
	depth []float32
}

func newCanvas(width, height int) *canvas {
	c := &canvas{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		depth: make([]float32, width*height),
	}
	for i := range c.depth {
		c.depth[i] = math32.MaxFloat32
	}
	return c
}

// plot sets a pixel when z is closer than what is there
func (c *canvas) plot(x, y int, z float32, col color.RGBA) {
	b := c.img.Bounds()
	if x < 0 || y < 0 || x >= b.Max.X || y >= b.Max.Y {
		return
	}
	idx := y*b.Max.X + x
	if z < c.depth[idx] {
		c.depth[idx] = z
		c.img.SetRGBA(x, y, col)
	}
}

// fillTriangle rasterizes a screen space triangle with scanlines,
// interpolating depth along both the edges and the spans.
func (c *canvas) fillTriangle(v [3]mgl32.Vec3, col color.RGBA) {
	if v[0].Y() > v[1].Y() {
		v[0], v[1] = v[1], v[0]
	}
	if v[1].Y() > v[2].Y() {
		v[1], v[2] = v[2], v[1]
	}
	if v[0].Y() > v[1].Y() {
		v[0], v[1] = v[1], v[0]
	}

	maxY := float32(c.img.Bounds().Max.Y - 1)
	for y := int(max(0, v[0].Y())); y <= int(min(maxY, v[2].Y())); y++ {
		fy := float32(y)

		var ends [2]mgl32.Vec2 // x, z
		found := 0
		for _, e := range [3][2]int{{0, 2}, {0, 1}, {1, 2}} {
			a, b := v[e[0]], v[e[1]]
			if found == 2 || a.Y() == b.Y() || fy < a.Y() || fy > b.Y() {
				continue
			}
			t := (fy - a.Y()) / (b.Y() - a.Y())
			ends[found] = mgl32.Vec2{a.X() + t*(b.X()-a.X()), a.Z() + t*(b.Z()-a.Z())}
			found++
		}
		if found < 2 {
			continue
		}
		if ends[0].X() > ends[1].X() {
			ends[0], ends[1] = ends[1], ends[0]
		}

		for x := int(max(0, ends[0].X())); x <= int(min(float32(c.img.Bounds().Max.X-1), ends[1].X())); x++ {
			var t float32
			if span := ends[1].X() - ends[0].X(); span != 0 {
				t = (float32(x) - ends[0].X()) / span
			}
			c.plot(x, y, ends[0].Y()+t*(ends[1].Y()-ends[0].Y()), col)
		}
	}
}

// drawLine draws a line with Bresenham's algorithm. Lines are pulled
// slightly towards the camera so they win against the faces they bound.
func (c *canvas) drawLine(a, b mgl32.Vec3, col color.RGBA) {
	x1, y1 := int(a.X()), int(a.Y())
	x2, y2 := int(b.X()), int(b.Y())

	dx, dy := abs(x2-x1), abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	steps := max(dx, dy)

	err := dx - dy
	for i := 0; ; i++ {
		var t float32
		if steps > 0 {
			t = float32(i) / float32(steps)
		}
		c.plot(x1, y1, (a.Z()+t*(b.Z()-a.Z()))*0.999, col)

		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
