package mesh

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Projection selects how missing texture coordinates are generated
type Projection int

const (
	ProjectCubic Projection = iota
	ProjectSpherical
)

func (p Projection) String() string {
	if p == ProjectSpherical {
		return "spherical"
	}
	return "cubic"
}

// ParseProjection converts a projection name back to its value
func ParseProjection(name string) (Projection, bool) {
	switch name {
	case "cubic", "":
		return ProjectCubic, true
	case "spherical":
		return ProjectSpherical, true
	}
	return ProjectCubic, false
}

// DefaultColor is used when no color is supplied or derived
var DefaultColor = mgl32.Vec4{1, 1, 1, 1}

// Options control how the Builder derives attributes and post-processes
// the mesh.
type Options struct {
	// DataEconomy shares identical vertices and colors instead of
	// appending a copy for every triangle corner.
	DataEconomy bool
	Lookup      Lookup

	GlobalNormal         Attribute[mgl32.Vec3]
	GlobalColor          Attribute[mgl32.Vec4]
	GenerateVertexColors bool

	TextureMultiplier mgl32.Vec2
	Projection        Projection

	CenterAtBottom bool
	FlipGeometry   bool
}

// DefaultOptions returns the options of a fresh builder
func DefaultOptions() Options {
	return Options{
		DataEconomy:       true,
		TextureMultiplier: mgl32.Vec2{1, 1},
	}
}

// Reset restores the defaults
func (o *Options) Reset() {
	*o = DefaultOptions()
}

// EnableGlobalNormal uses n for every vertex without an explicit normal
func (o *Options) EnableGlobalNormal(n mgl32.Vec3) {
	o.GlobalNormal = Some(n)
}

// DisableGlobalNormal stops using the global normal
func (o *Options) DisableGlobalNormal() {
	o.GlobalNormal = Attribute[mgl32.Vec3]{}
}

// EnableGlobalVertexColor uses c for every vertex without an explicit color.
// Color generation is switched off.
func (o *Options) EnableGlobalVertexColor(c mgl32.Vec4) {
	o.GlobalColor = Some(c)
	o.GenerateVertexColors = false
}

// DisableGlobalVertexColor stops using the global color
func (o *Options) DisableGlobalVertexColor() {
	o.GlobalColor = Attribute[mgl32.Vec4]{}
}

// EnableVertexColorGeneration toggles position-derived colors. Enabling it
// drops the global color.
func (o *Options) EnableVertexColorGeneration(enabled bool) {
	o.GenerateVertexColors = enabled
	if enabled {
		o.DisableGlobalVertexColor()
	}
}

// SetTextureCoordinatesMultiplier scales the texture coordinates. Negative
// factors are made positive and a zero v repeats u.
func (o *Options) SetTextureCoordinatesMultiplier(u, v float32) {
	u = math32.Abs(u)
	v = math32.Abs(v)
	if v == 0 {
		v = u
	}
	o.TextureMultiplier = mgl32.Vec2{u, v}
}
