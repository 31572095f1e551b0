package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// VertexLayout describes the interleaved vertex buffer produced by
// CreateVerticesBuffer. A zero size omits the attribute.
type VertexLayout struct {
	PositionSize int  // 2, 3 or 4
	NormalSize   int  // 0, 3 or 4
	TangentSpace bool // emit tangent and binormal before the normal, when normals are emitted
	UVSize       int  // 0, 2, 3 or 4
	ColorSize    int  // 0 to 4
}

// DefaultLayout is position, normal, tangent space and 2D texture coordinates
var DefaultLayout = VertexLayout{PositionSize: 3, NormalSize: 3, TangentSpace: true, UVSize: 2}

// Validate checks the attribute sizes
func (l VertexLayout) Validate() error {
	switch {
	case l.PositionSize < 2 || l.PositionSize > 4:
		return fmt.Errorf("%w: position size %d", ErrInvalidLayout, l.PositionSize)
	case l.NormalSize != 0 && l.NormalSize != 3 && l.NormalSize != 4:
		return fmt.Errorf("%w: normal size %d", ErrInvalidLayout, l.NormalSize)
	case l.UVSize == 1 || l.UVSize < 0 || l.UVSize > 4:
		return fmt.Errorf("%w: texture coordinate size %d", ErrInvalidLayout, l.UVSize)
	case l.ColorSize < 0 || l.ColorSize > 4:
		return fmt.Errorf("%w: color size %d", ErrInvalidLayout, l.ColorSize)
	}
	return nil
}

// Stride returns the number of floats per vertex
func (l VertexLayout) Stride() int {
	n := l.PositionSize + l.NormalSize + l.UVSize + l.ColorSize
	if l.TangentSpace {
		n += 2 * l.NormalSize
	}
	return n
}

// exportVertex is a unique (vertex, color) pair in first-seen triangle order
type exportVertex struct {
	vertex int
	color  int
}

// exportOrder walks the triangles and numbers every distinct vertex the
// first time it is met. It returns the unique vertices and, per triangle
// corner, the exported index.
func (m *Mesh) exportOrder() ([]exportVertex, []uint32) {
	seen := make(map[int]uint32, len(m.vertices))
	order := make([]exportVertex, 0, len(m.vertices))
	corners := make([]uint32, 0, len(m.triangles)*3)
	for _, t := range m.triangles {
		for i, v := range t.VertexIdx {
			idx, ok := seen[v]
			if !ok {
				idx = uint32(len(order))
				seen[v] = idx
				order = append(order, exportVertex{vertex: v, color: t.ColorIdx[i]})
			}
			corners = append(corners, idx)
		}
	}
	return order, corners
}

// CreateVerticesBuffer interleaves the attributes of every vertex used by a
// triangle, in first-seen order, and returns the buffer with its stride.
// Position gets w = 1 when four-wide, other padded components are 0.
func (m *Mesh) CreateVerticesBuffer(layout VertexLayout) ([]float32, int, error) {
	if err := layout.Validate(); err != nil {
		return nil, 0, err
	}
	if m.IsEmpty() {
		return nil, 0, ErrEmptyMesh
	}
	if layout.ColorSize > 0 && len(m.colors) == 0 {
		return nil, 0, ErrNoVertexColors
	}

	order, _ := m.exportOrder()
	stride := layout.Stride()
	buf := make([]float32, 0, len(order)*stride)
	for _, ev := range order {
		v := m.vertices[ev.vertex]
		buf = appendVec(buf, v.Position.Vec4(1), layout.PositionSize)
		if layout.NormalSize > 0 {
			if layout.TangentSpace {
				buf = appendVec(buf, v.Tangent.Vec4(0), layout.NormalSize)
				buf = appendVec(buf, v.Binormal().Vec4(0), layout.NormalSize)
			}
			buf = appendVec(buf, v.Normal.Vec4(0), layout.NormalSize)
		}
		if layout.UVSize > 0 {
			buf = appendVec(buf, mgl32.Vec4{v.UV[0], v.UV[1], 0, 0}, layout.UVSize)
		}
		if layout.ColorSize > 0 {
			buf = appendVec(buf, m.colors[ev.color], layout.ColorSize)
		}
	}
	return buf, stride, nil
}

func appendVec(buf []float32, v mgl32.Vec4, n int) []float32 {
	return append(buf, v[:n]...)
}

// CreateIndicesBuffer returns three indices per triangle into the buffer
// produced by CreateVerticesBuffer. Vertices are numbered in first-seen
// order, so the indices differ from Triangle.VertexIdx whenever vertices
// were added out of triangle order or are unused. Reversed winding emits
// (v2, v1, v0).
func (m *Mesh) CreateIndicesBuffer() []uint32 {
	_, corners := m.exportOrder()
	if m.reverseWinding {
		for i := 0; i+2 < len(corners); i += 3 {
			corners[i], corners[i+2] = corners[i+2], corners[i]
		}
	}
	return corners
}
