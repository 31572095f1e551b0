// Package shapes generates parametric meshes by driving a mesh.Builder.
package shapes

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/philipparndt/meshforge/pkg/mesh"
)

// ErrInvalidParameter is returned for sizes or subdivisions out of range
var ErrInvalidParameter = errors.New("shapes: invalid parameter")

// Kind names a generator
type Kind string

const (
	KindTriangle Kind = "triangle"
	KindQuad     Kind = "quad"
	KindCube     Kind = "cube"
	KindSphere   Kind = "sphere"
	KindDisk     Kind = "disk"
)

// Kinds lists the available generators
var Kinds = []Kind{KindTriangle, KindQuad, KindCube, KindSphere, KindDisk}

// Params are the generator inputs. Size is the edge length or the diameter;
// Slices and Stacks subdivide round shapes.
type Params struct {
	Size   float32
	Slices int
	Stacks int
}

// Generate builds the named shape
func Generate(kind Kind, p Params, opts mesh.Options) (*mesh.Mesh, error) {
	switch kind {
	case KindTriangle:
		return Triangle(p.Size, opts)
	case KindQuad:
		return Quad(p.Size, p.Size, opts)
	case KindCube:
		return Cuboid(mgl32.Vec3{p.Size, p.Size, p.Size}, opts)
	case KindSphere:
		return Sphere(p.Size/2, p.Slices, p.Stacks, opts)
	case KindDisk:
		return Disk(p.Size/2, p.Slices, opts)
	}
	return nil, fmt.Errorf("%w: unknown shape %q", ErrInvalidParameter, kind)
}

func build(mode mesh.Mode, opts mesh.Options, fn func(b *mesh.Builder) error) (*mesh.Mesh, error) {
	m := mesh.New()
	b := mesh.NewBuilder(m, opts)
	if err := b.BeginConstruction(mode); err != nil {
		return nil, err
	}
	if err := fn(b); err != nil {
		_ = b.EndConstruction()
		return nil, err
	}
	if err := b.EndConstruction(); err != nil {
		return nil, err
	}
	return m, nil
}

func feed(b *mesh.Builder, vertices ...mesh.VertexData) error {
	for _, v := range vertices {
		if err := b.NewVertex(v); err != nil {
			return err
		}
	}
	return nil
}

// Triangle builds an equilateral triangle facing +Z. Normals are left to
// the builder.
func Triangle(size float32, opts mesh.Options) (*mesh.Mesh, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size %v", ErrInvalidParameter, size)
	}
	h := size * math32.Sqrt(3) / 2
	return build(mesh.Triangles, opts, func(b *mesh.Builder) error {
		return feed(b,
			mesh.At(mgl32.Vec3{0, h / 2, 0}),
			mesh.At(mgl32.Vec3{size / 2, -h / 2, 0}),
			mesh.At(mgl32.Vec3{-size / 2, -h / 2, 0}),
		)
	})
}

// Quad builds a rectangle in the XY plane facing +Z as a two-triangle strip
func Quad(width, height float32, opts mesh.Options) (*mesh.Mesh, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: quad %vx%v", ErrInvalidParameter, width, height)
	}
	x, y := width/2, height/2
	n := mgl32.Vec3{0, 0, 1}
	return build(mesh.TriangleStrip, opts, func(b *mesh.Builder) error {
		return feed(b,
			mesh.At(mgl32.Vec3{-x, -y, 0}).WithNormal(n).WithUV(mgl32.Vec2{0, 0}),
			mesh.At(mgl32.Vec3{-x, y, 0}).WithNormal(n).WithUV(mgl32.Vec2{0, 1}),
			mesh.At(mgl32.Vec3{x, -y, 0}).WithNormal(n).WithUV(mgl32.Vec2{1, 0}),
			mesh.At(mgl32.Vec3{x, y, 0}).WithNormal(n).WithUV(mgl32.Vec2{1, 1}),
		)
	})
}

// cuboidFace lists a face normal and its four corners in strip order, as
// signs of the half extents.
type cuboidFace struct {
	normal  mgl32.Vec3
	corners [4]mgl32.Vec3
}

var cuboidFaces = []cuboidFace{
	{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{1, -1, -1}, {1, -1, 1}, {1, 1, -1}, {1, 1, 1}}},
	{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-1, -1, 1}, {-1, -1, -1}, {-1, 1, 1}, {-1, 1, -1}}},
	{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-1, 1, -1}, {1, 1, -1}, {-1, 1, 1}, {1, 1, 1}}},
	{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-1, -1, 1}, {1, -1, 1}, {-1, -1, -1}, {1, -1, -1}}},
	{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-1, -1, 1}, {-1, 1, 1}, {1, -1, 1}, {1, 1, 1}}},
	{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{1, -1, -1}, {1, 1, -1}, {-1, -1, -1}, {-1, 1, -1}}},
}

var stripUV = [4]mgl32.Vec2{{0, 0}, {0, 1}, {1, 0}, {1, 1}}

// Cuboid builds a box centered on the origin. Every face is a strip with its
// own global normal, so faces do not share vertices.
func Cuboid(size mgl32.Vec3, opts mesh.Options) (*mesh.Mesh, error) {
	if size[0] <= 0 || size[1] <= 0 || size[2] <= 0 {
		return nil, fmt.Errorf("%w: cuboid %v", ErrInvalidParameter, size)
	}
	half := size.Mul(0.5)
	return build(mesh.TriangleStrip, opts, func(b *mesh.Builder) error {
		defer b.Options().DisableGlobalNormal()
		for _, face := range cuboidFaces {
			b.Options().EnableGlobalNormal(face.normal)
			b.ResetCurrentTriangle()
			for i, c := range face.corners {
				p := mgl32.Vec3{c[0] * half[0], c[1] * half[1], c[2] * half[2]}
				if err := b.NewVertex(mesh.At(p).WithUV(stripUV[i])); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Sphere builds a UV sphere of the given radius around the origin. Poles
// are single triangles, every other cell is two triangles.
func Sphere(radius float32, slices, stacks int, opts mesh.Options) (*mesh.Mesh, error) {
	if radius <= 0 || slices < 3 || stacks < 2 {
		return nil, fmt.Errorf("%w: sphere r=%v slices=%d stacks=%d", ErrInvalidParameter, radius, slices, stacks)
	}
	point := func(i, j int) mesh.VertexData {
		phi := math32.Pi * float32(i) / float32(stacks)
		theta := 2 * math32.Pi * float32(j) / float32(slices)
		n := mgl32.Vec3{
			math32.Sin(phi) * math32.Cos(theta),
			math32.Cos(phi),
			math32.Sin(phi) * math32.Sin(theta),
		}
		uv := mgl32.Vec2{float32(j) / float32(slices), float32(i) / float32(stacks)}
		return mesh.At(n.Mul(radius)).WithNormal(n).WithUV(uv)
	}
	return build(mesh.Triangles, opts, func(b *mesh.Builder) error {
		for i := 0; i < stacks; i++ {
			for j := 0; j < slices; j++ {
				if i > 0 {
					if err := feed(b, point(i, j), point(i+1, j), point(i, j+1)); err != nil {
						return err
					}
				}
				if i < stacks-1 {
					if err := feed(b, point(i, j+1), point(i+1, j), point(i+1, j+1)); err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
}

// Disk builds a disk in the XZ plane facing +Y as a triangle fan
func Disk(radius float32, slices int, opts mesh.Options) (*mesh.Mesh, error) {
	if radius <= 0 || slices < 3 {
		return nil, fmt.Errorf("%w: disk r=%v slices=%d", ErrInvalidParameter, radius, slices)
	}
	up := mgl32.Vec3{0, 1, 0}
	rim := make([]mgl32.Vec3, slices)
	for k := range rim {
		theta := 2 * math32.Pi * float32(k) / float32(slices)
		rim[k] = mgl32.Vec3{radius * math32.Cos(theta), 0, radius * math32.Sin(theta)}
	}
	return build(mesh.TriangleFan, opts, func(b *mesh.Builder) error {
		if err := b.NewVertex(mesh.At(mgl32.Vec3{}).WithNormal(up)); err != nil {
			return err
		}
		for k := 0; k < slices+1; k++ {
			if err := b.NewVertex(mesh.At(rim[k%slices]).WithNormal(up)); err != nil {
				return err
			}
		}
		return nil
	})
}
