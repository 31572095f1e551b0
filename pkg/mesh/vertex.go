package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/philipparndt/meshforge/pkg/geometry"
)

// Vertex is a mesh vertex with its surface frame and texture coordinates
type Vertex struct {
	Position mgl32.Vec3
	Tangent  mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// NewVertex creates a vertex at position with the canonical frame
// (tangent +X, normal +Z).
func NewVertex(position mgl32.Vec3) Vertex {
	return Vertex{
		Position: position,
		Tangent:  geometry.PositiveX,
		Normal:   geometry.PositiveZ,
	}
}

// Binormal returns cross(Normal, Tangent)
func (v Vertex) Binormal() mgl32.Vec3 {
	return v.Normal.Cross(v.Tangent)
}

func (v Vertex) String() string {
	return fmt.Sprintf("p%s n%s t%s uv(%.3f, %.3f)",
		geometry.FormatVector(v.Position), geometry.FormatVector(v.Normal),
		geometry.FormatVector(v.Tangent), v.UV[0], v.UV[1])
}
