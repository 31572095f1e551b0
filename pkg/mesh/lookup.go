package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Lookup selects how vertices, colors and edges are matched against existing
// entries when data economy is in effect.
type Lookup int

const (
	// LookupLinear scans the arrays front to back
	LookupLinear Lookup = iota
	// LookupHashed keeps bit-exact hash indices alongside the arrays
	LookupHashed
)

func (l Lookup) String() string {
	switch l {
	case LookupHashed:
		return "hashed"
	default:
		return "linear"
	}
}

// ParseLookup converts a lookup name back to its value
func ParseLookup(name string) (Lookup, bool) {
	switch name {
	case "linear", "":
		return LookupLinear, true
	case "hashed":
		return LookupHashed, true
	}
	return LookupLinear, false
}

type (
	positionKey       [3]uint32
	positionNormalKey [6]uint32
	vertexKey         [8]uint32
	colorKey          [4]uint32
	edgeKey           [2]int
)

// bits returns the bit pattern of f with -0 folded onto +0, so that keys
// match exactly when == would.
func bits(f float32) uint32 {
	return math.Float32bits(f + 0)
}

func keyOfPosition(p mgl32.Vec3) positionKey {
	return positionKey{bits(p[0]), bits(p[1]), bits(p[2])}
}

func keyOfPositionNormal(p, n mgl32.Vec3) positionNormalKey {
	return positionNormalKey{bits(p[0]), bits(p[1]), bits(p[2]), bits(n[0]), bits(n[1]), bits(n[2])}
}

func keyOfVertex(p, n mgl32.Vec3, uv mgl32.Vec2) vertexKey {
	return vertexKey{
		bits(p[0]), bits(p[1]), bits(p[2]),
		bits(n[0]), bits(n[1]), bits(n[2]),
		bits(uv[0]), bits(uv[1]),
	}
}

func keyOfColor(c mgl32.Vec4) colorKey {
	return colorKey{bits(c[0]), bits(c[1]), bits(c[2]), bits(c[3])}
}

func keyOfEdge(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// lookupIndex maps attribute tuples to the first array index holding them
type lookupIndex struct {
	byPosition       map[positionKey]int
	byPositionNormal map[positionNormalKey]int
	byVertex         map[vertexKey]int
	byColor          map[colorKey]int
	byEdge           map[edgeKey]int
}

func newLookupIndex(m *Mesh) *lookupIndex {
	idx := &lookupIndex{
		byPosition:       make(map[positionKey]int, len(m.vertices)),
		byPositionNormal: make(map[positionNormalKey]int, len(m.vertices)),
		byVertex:         make(map[vertexKey]int, len(m.vertices)),
		byColor:          make(map[colorKey]int, len(m.colors)),
		byEdge:           make(map[edgeKey]int, len(m.edges)),
	}
	for i, v := range m.vertices {
		idx.addVertex(i, v)
	}
	for i, c := range m.colors {
		idx.addColor(i, c)
	}
	for i, e := range m.edges {
		idx.addEdge(i, e)
	}
	return idx
}

// hasNaN reports whether any component is NaN. NaN never compares equal,
// so such tuples are kept out of the index to match the linear scan.
func hasNaN(vs ...float32) bool {
	for _, v := range vs {
		if v != v {
			return true
		}
	}
	return false
}

func (idx *lookupIndex) addVertex(i int, v Vertex) {
	p, n, uv := v.Position, v.Normal, v.UV
	if hasNaN(p[:]...) {
		return
	}
	if _, ok := idx.byPosition[keyOfPosition(p)]; !ok {
		idx.byPosition[keyOfPosition(p)] = i
	}
	if hasNaN(n[:]...) {
		return
	}
	if _, ok := idx.byPositionNormal[keyOfPositionNormal(p, n)]; !ok {
		idx.byPositionNormal[keyOfPositionNormal(p, n)] = i
	}
	if hasNaN(uv[:]...) {
		return
	}
	if _, ok := idx.byVertex[keyOfVertex(p, n, uv)]; !ok {
		idx.byVertex[keyOfVertex(p, n, uv)] = i
	}
}

func (idx *lookupIndex) addColor(i int, c mgl32.Vec4) {
	if hasNaN(c[:]...) {
		return
	}
	if _, ok := idx.byColor[keyOfColor(c)]; !ok {
		idx.byColor[keyOfColor(c)] = i
	}
}

func (idx *lookupIndex) addEdge(i int, e Edge) {
	if _, ok := idx.byEdge[keyOfEdge(e.A, e.B)]; !ok {
		idx.byEdge[keyOfEdge(e.A, e.B)] = i
	}
}

// dropVertex removes the entries pointing at i, used when a vertex appended
// for a rejected triangle is rolled back.
func (idx *lookupIndex) dropVertex(i int, v Vertex) {
	if idx.byPosition[keyOfPosition(v.Position)] == i {
		delete(idx.byPosition, keyOfPosition(v.Position))
	}
	if idx.byPositionNormal[keyOfPositionNormal(v.Position, v.Normal)] == i {
		delete(idx.byPositionNormal, keyOfPositionNormal(v.Position, v.Normal))
	}
	if idx.byVertex[keyOfVertex(v.Position, v.Normal, v.UV)] == i {
		delete(idx.byVertex, keyOfVertex(v.Position, v.Normal, v.UV))
	}
}

func (idx *lookupIndex) dropColor(i int, c mgl32.Vec4) {
	if idx.byColor[keyOfColor(c)] == i {
		delete(idx.byColor, keyOfColor(c))
	}
}
