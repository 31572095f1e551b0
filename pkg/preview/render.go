// Package preview renders meshes into images on the CPU. Faces are flat
// shaded with a light at the camera and depth tested per pixel.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"

	"github.com/philipparndt/meshforge/pkg/mesh"
)

// ErrInvalidSize is returned for images without pixels
var ErrInvalidSize = errors.New("preview: invalid image size")

// Options control the rendered image
type Options struct {
	Width, Height int
	// Samples renders at Samples times the size and scales down
	Samples int

	Background color.RGBA
	// Color is the surface color, tinted by the vertex colors
	Color     color.RGBA
	Wireframe bool
	WireColor color.RGBA

	// Caption is printed into the top left corner
	Caption      string
	CaptionColor color.RGBA

	// RotationX and RotationY turn the camera away from +Z, Zoom scales
	// its distance by 1+Zoom.
	RotationX, RotationY float32
	Zoom                 float32
}

// DefaultOptions returns an 800x600 three quarter view
func DefaultOptions() Options {
	return Options{
		Width:      800,
		Height:     600,
		Samples:    2,
		Background: color.RGBA{R: 32, G: 32, B: 36, A: 255},
		Color:      color.RGBA{R: 190, G: 190, B: 200, A: 255},
		WireColor:  color.RGBA{R: 20, G: 20, B: 20, A: 255},
		RotationX:  0.5,
		RotationY:  0.6,

		CaptionColor: color.RGBA{R: 240, G: 240, B: 240, A: 255},
	}
}

// Render draws m with a camera framing its bounding box
func Render(m *mesh.Mesh, opts Options) (*image.RGBA, error) {
	if m.IsEmpty() {
		return nil, mesh.ErrEmptyMesh
	}
	if !m.PropertiesValid() {
		m.UpdateProperties()
	}
	cam := NewCamera(m.BoundingBox())
	cam.Rotate(opts.RotationX, opts.RotationY)
	if opts.Zoom != 0 {
		cam.Zoom(opts.Zoom)
	}
	return RenderCamera(m, cam, opts)
}

// RenderCamera draws m as seen from cam. Triangles reaching behind the
// camera are skipped.
func RenderCamera(m *mesh.Mesh, cam *Camera, opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, opts.Width, opts.Height)
	}
	samples := max(opts.Samples, 1)
	width, height := opts.Width*samples, opts.Height*samples

	c := newCanvas(width, height)
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	view := cam.View()
	light := cam.Position.Sub(cam.Target).Normalize()
	colors := m.VertexColors()

	for _, tri := range m.Triangles() {
		var screen [3]mgl32.Vec3
		visible := true
		for i, vi := range tri.VertexIdx {
			p, ok := cam.Project(view, m.Vertex(vi).Position, float32(width), float32(height))
			if !ok {
				visible = false
				break
			}
			screen[i] = p
		}
		if !visible {
			continue
		}

		tint := mesh.DefaultColor
		if len(colors) > 0 {
			tint = colors[tri.ColorIdx[0]].Add(colors[tri.ColorIdx[1]]).Add(colors[tri.ColorIdx[2]]).Mul(1.0 / 3)
		}
		c.fillTriangle(screen, shade(opts.Color, tint, tri.FaceNormal, light))
		if opts.Wireframe {
			for i := 0; i < 3; i++ {
				c.drawLine(screen[i], screen[(i+1)%3], opts.WireColor)
			}
		}
	}

	out := c.img
	if samples > 1 {
		out = image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
		draw.CatmullRom.Scale(out, out.Bounds(), c.img, c.img.Bounds(), draw.Src, nil)
	}
	drawCaption(out, opts.Caption, opts.CaptionColor)
	return out, nil
}

// shade lights a face from both sides with some ambient light
func shade(base color.RGBA, tint mgl32.Vec4, normal, light mgl32.Vec3) color.RGBA {
	f := 0.25 + 0.75*math32.Abs(normal.Dot(light))
	channel := func(v uint8, t float32) uint8 {
		return uint8(mgl32.Clamp(float32(v)*mgl32.Clamp(t, 0, 1)*f, 0, 255))
	}
	return color.RGBA{
		R: channel(base.R, tint[0]),
		G: channel(base.G, tint[1]),
		B: channel(base.B, tint[2]),
		A: 255,
	}
}
