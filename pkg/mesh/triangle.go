package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Triangle references three vertices, three colors and the three edges
// v0-v1, v1-v2 and v2-v0, and carries its face frame.
type Triangle struct {
	VertexIdx [3]int
	ColorIdx  [3]int
	EdgeIdx   [3]int

	FaceTangent mgl32.Vec3
	FaceNormal  mgl32.Vec3
}

// NewTriangle creates a triangle over vertices a, b and c using color 0
func NewTriangle(a, b, c int) Triangle {
	return Triangle{VertexIdx: [3]int{a, b, c}}
}

// WithColors returns a copy of t using the given color indices
func (t Triangle) WithColors(a, b, c int) Triangle {
	t.ColorIdx = [3]int{a, b, c}
	return t
}

// FaceBinormal returns cross(FaceNormal, FaceTangent)
func (t Triangle) FaceBinormal() mgl32.Vec3 {
	return t.FaceNormal.Cross(t.FaceTangent)
}

// HasVertex reports whether v is one of the corners
func (t Triangle) HasVertex(v int) bool {
	return t.VertexIdx[0] == v || t.VertexIdx[1] == v || t.VertexIdx[2] == v
}

func (t Triangle) corners() [3][2]int {
	v := t.VertexIdx
	return [3][2]int{{v[0], v[1]}, {v[1], v[2]}, {v[2], v[0]}}
}

func (t Triangle) String() string {
	return fmt.Sprintf("tri v%v c%v e%v", t.VertexIdx, t.ColorIdx, t.EdgeIdx)
}
