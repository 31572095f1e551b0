package preview

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/meshforge/pkg/geometry"
	"github.com/philipparndt/meshforge/pkg/mesh"
	"github.com/philipparndt/meshforge/pkg/shapes"
)

func smallOptions() Options {
	opts := DefaultOptions()
	opts.Width, opts.Height = 64, 64
	opts.Samples = 1
	return opts
}

func cube(t *testing.T, opts mesh.Options) *mesh.Mesh {
	t.Helper()
	m, err := shapes.Cuboid(mgl32.Vec3{1, 1, 1}, opts)
	require.NoError(t, err)
	return m
}

func TestCameraProjectsTargetToCenter(t *testing.T) {
	box := geometry.NewBox()
	box.Extend(mgl32.Vec3{-1, -1, -1})
	box.Extend(mgl32.Vec3{1, 1, 1})
	cam := NewCamera(box)

	p, ok := cam.Project(cam.View(), mgl32.Vec3{}, 200, 100)
	require.True(t, ok)
	assert.InDelta(t, 100, p.X(), 1e-3)
	assert.InDelta(t, 50, p.Y(), 1e-3)
	assert.InDelta(t, cam.Distance, p.Z(), 1e-4)

	_, ok = cam.Project(cam.View(), cam.Position.Add(cam.Position.Sub(cam.Target)), 200, 100)
	assert.False(t, ok, "point behind the camera")

	// +Y is up on screen
	up, ok := cam.Project(cam.View(), mgl32.Vec3{0, 0.5, 0}, 200, 100)
	require.True(t, ok)
	assert.Less(t, up.Y(), p.Y())
}

func TestCameraRotateClampsElevation(t *testing.T) {
	cam := NewCamera(geometry.Box{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 1, 1}})
	cam.Rotate(10, 0)
	assert.Less(t, cam.RotationX, float32(1.571))
	assert.InDelta(t, cam.Distance, cam.Position.Sub(cam.Target).Len(), 1e-4)

	before := cam.Distance
	cam.Zoom(-0.5)
	assert.InDelta(t, before/2, cam.Distance, 1e-5)
}

func TestRenderCube(t *testing.T) {
	opts := smallOptions()
	img, err := Render(cube(t, mesh.DefaultOptions()), opts)
	require.NoError(t, err)

	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())
	assert.NotEqual(t, opts.Background, img.RGBAAt(32, 32), "cube covers the center")
	assert.Equal(t, opts.Background, img.RGBAAt(0, 0), "corner shows the background")
}

func TestRenderTintsWithVertexColors(t *testing.T) {
	mopts := mesh.DefaultOptions()
	mopts.EnableGlobalVertexColor(mgl32.Vec4{1, 0, 0, 1})

	img, err := Render(cube(t, mopts), smallOptions())
	require.NoError(t, err)

	c := img.RGBAAt(32, 32)
	assert.Greater(t, c.R, uint8(0))
	assert.Zero(t, c.G)
	assert.Zero(t, c.B)
}

func TestRenderWireframe(t *testing.T) {
	opts := smallOptions()
	opts.Wireframe = true
	opts.WireColor = color.RGBA{R: 255, A: 255}

	img, err := Render(cube(t, mesh.DefaultOptions()), opts)
	require.NoError(t, err)

	wire := 0
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if img.RGBAAt(x, y) == opts.WireColor {
				wire++
			}
		}
	}
	assert.Greater(t, wire, 20)
}

func TestRenderSupersampled(t *testing.T) {
	opts := smallOptions()
	opts.Samples = 3
	img, err := Render(cube(t, mesh.DefaultOptions()), opts)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.NotEqual(t, opts.Background, img.RGBAAt(32, 32))
}

func TestRenderErrors(t *testing.T) {
	_, err := Render(mesh.New(), smallOptions())
	assert.ErrorIs(t, err, mesh.ErrEmptyMesh)

	opts := smallOptions()
	opts.Width = 0
	_, err = Render(cube(t, mesh.DefaultOptions()), opts)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestRenderCaption(t *testing.T) {
	opts := smallOptions()
	opts.Caption = "cube"
	opts.CaptionColor = color.RGBA{G: 255, A: 255}

	img, err := Render(cube(t, mesh.DefaultOptions()), opts)
	require.NoError(t, err)

	text := 0
	for y := 0; y < 21; y++ {
		for x := 0; x < 36; x++ {
			if img.RGBAAt(x, y) == opts.CaptionColor {
				text++
			}
		}
	}
	assert.Greater(t, text, 10)
	assert.Equal(t, opts.Background, img.RGBAAt(63, 63))
}
