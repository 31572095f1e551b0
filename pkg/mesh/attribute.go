package mesh

import "github.com/go-gl/mathgl/mgl32"

// Attribute is an optional value
type Attribute[T any] struct {
	Value   T
	Present bool
}

// Some returns a present attribute
func Some[T any](v T) Attribute[T] {
	return Attribute[T]{Value: v, Present: true}
}

// Get returns the value and whether it is present
func (a Attribute[T]) Get() (T, bool) {
	return a.Value, a.Present
}

// Feed records which attributes a vertex was given
type Feed uint8

const (
	FeedUV Feed = 1 << iota
	FeedNormal
	FeedTangent
	FeedColor
)

// Has reports whether all attributes of f2 are present in f
func (f Feed) Has(f2 Feed) bool {
	return f&f2 == f2
}

// VertexData is the input of Builder.NewVertex: a position plus optional
// attributes. Missing attributes are derived by the builder.
type VertexData struct {
	Position mgl32.Vec3
	UV       Attribute[mgl32.Vec2]
	Normal   Attribute[mgl32.Vec3]
	Tangent  Attribute[mgl32.Vec3]
	Color    Attribute[mgl32.Vec4]
}

// At starts a vertex at position
func At(position mgl32.Vec3) VertexData {
	return VertexData{Position: position}
}

// WithUV sets the texture coordinates
func (v VertexData) WithUV(uv mgl32.Vec2) VertexData {
	v.UV = Some(uv)
	return v
}

// WithNormal sets the normal
func (v VertexData) WithNormal(n mgl32.Vec3) VertexData {
	v.Normal = Some(n)
	return v
}

// WithTangent sets the tangent
func (v VertexData) WithTangent(t mgl32.Vec3) VertexData {
	v.Tangent = Some(t)
	return v
}

// WithColor sets the vertex color
func (v VertexData) WithColor(c mgl32.Vec4) VertexData {
	v.Color = Some(c)
	return v
}

// Feed returns the set of attributes supplied
func (v VertexData) Feed() Feed {
	var f Feed
	if v.UV.Present {
		f |= FeedUV
	}
	if v.Normal.Present {
		f |= FeedNormal
	}
	if v.Tangent.Present {
		f |= FeedTangent
	}
	if v.Color.Present {
		f |= FeedColor
	}
	return f
}
