// Package mesh provides an indexed triangle mesh with edge topology and the
// Builder that fills it from a vertex stream.
package mesh

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/philipparndt/meshforge/pkg/geometry"
)

// Mesh is an indexed triangle mesh. Vertices, vertex colors, triangles,
// edges and groups are kept in parallel arrays; triangles refer to the other
// arrays by index. A Mesh is not safe for concurrent mutation.
type Mesh struct {
	vertices  []Vertex
	colors    []mgl32.Vec4
	triangles []Triangle
	edges     []Edge
	groups    []Group

	box              geometry.Box
	sphere           geometry.Sphere
	centroid         mgl32.Vec3
	radiusFromOrigin float32
	propertiesValid  bool

	uvAvailable    bool
	reverseWinding bool

	lookup Lookup
	index  *lookupIndex
}

// New creates an empty mesh
func New() *Mesh {
	m := &Mesh{}
	m.Clear()
	return m
}

// Clear removes all geometry and resets the derived properties
func (m *Mesh) Clear() {
	m.vertices = nil
	m.colors = nil
	m.triangles = nil
	m.edges = nil
	m.groups = []Group{{}}
	m.box = geometry.NewBox()
	m.sphere = geometry.Sphere{}
	m.centroid = mgl32.Vec3{}
	m.radiusFromOrigin = 0
	m.propertiesValid = false
	m.uvAvailable = false
	m.reverseWinding = false
	m.invalidateLookup()
}

// SetLookup selects the matching strategy used by the Add* operations
func (m *Mesh) SetLookup(l Lookup) {
	if m.lookup == l {
		return
	}
	m.lookup = l
	m.invalidateLookup()
}

// Lookup returns the matching strategy
func (m *Mesh) Lookup() Lookup {
	return m.lookup
}

func (m *Mesh) invalidateLookup() {
	m.index = nil
}

// lookupIndex returns the hash index, building it on first use. It returns
// nil for linear lookups.
func (m *Mesh) lookupIndex() *lookupIndex {
	if m.lookup != LookupHashed {
		return nil
	}
	if m.index == nil {
		m.index = newLookupIndex(m)
	}
	return m.index
}

// Reserve grows the capacity of the arrays
func (m *Mesh) Reserve(vertices, colors, triangles, edges int) error {
	if vertices <= 0 && colors <= 0 && triangles <= 0 && edges <= 0 {
		return ErrNothingToReserve
	}
	m.vertices = grow(m.vertices, vertices)
	m.colors = grow(m.colors, colors)
	m.triangles = grow(m.triangles, triangles)
	m.edges = grow(m.edges, edges)
	return nil
}

// ReserveTriangles reserves room for n triangles without any vertex sharing
func (m *Mesh) ReserveTriangles(n int) error {
	return m.Reserve(n*3, n*3, n, n*3)
}

// Resize truncates or extends the arrays to the given lengths. New entries
// are zero valued and must be filled in before use. Triangle and edge
// indices are not rewritten: shrinking vertices, colors or edges below what
// the kept triangles and edges reference leaves those references dangling,
// so arrays should be cut together. Edges whose partner was cut become open.
func (m *Mesh) Resize(vertices, colors, triangles, edges int) {
	m.vertices = resize(m.vertices, vertices)
	m.colors = resize(m.colors, colors)
	m.triangles = resize(m.triangles, triangles)
	m.edges = resize(m.edges, edges)
	for i := range m.edges {
		if p, ok := m.edges[i].SharedWith(); ok && p >= len(m.edges) {
			m.edges[i].unlink()
		}
	}
	m.regroup()
	m.invalidateLookup()
}

func grow[T any](s []T, n int) []T {
	if n <= 0 || cap(s)-len(s) >= n {
		return s
	}
	out := make([]T, len(s), len(s)+n)
	copy(out, s)
	return out
}

func resize[T any](s []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if n <= len(s) {
		return s[:n]
	}
	return append(s, make([]T, n-len(s))...)
}

// AddVertex returns the first vertex at position, appending a new one with
// the canonical frame when none exists.
func (m *Mesh) AddVertex(position mgl32.Vec3) int {
	if idx := m.lookupIndex(); idx != nil {
		if i, ok := idx.byPosition[keyOfPosition(position)]; ok {
			return i
		}
	} else {
		for i, v := range m.vertices {
			if v.Position == position {
				return i
			}
		}
	}
	return m.appendVertex(NewVertex(position))
}

// AddVertexWithNormal returns the first vertex matching position and normal,
// appending a new one when none exists.
func (m *Mesh) AddVertexWithNormal(position, normal mgl32.Vec3) int {
	if idx := m.lookupIndex(); idx != nil {
		if i, ok := idx.byPositionNormal[keyOfPositionNormal(position, normal)]; ok {
			return i
		}
	} else {
		for i, v := range m.vertices {
			if v.Position == position && v.Normal == normal {
				return i
			}
		}
	}
	v := NewVertex(position)
	v.Normal = normal
	return m.appendVertex(v)
}

// AddVertexWithNormalUV returns the first vertex matching all attributes,
// appending a new one when none exists.
func (m *Mesh) AddVertexWithNormalUV(position, normal mgl32.Vec3, uv mgl32.Vec2) int {
	m.uvAvailable = true
	if idx := m.lookupIndex(); idx != nil {
		if i, ok := idx.byVertex[keyOfVertex(position, normal, uv)]; ok {
			return i
		}
	} else {
		for i, v := range m.vertices {
			if v.Position == position && v.Normal == normal && v.UV == uv {
				return i
			}
		}
	}
	return m.SaveVertex(position, normal, uv)
}

// SaveVertex appends a vertex unconditionally
func (m *Mesh) SaveVertex(position, normal mgl32.Vec3, uv mgl32.Vec2) int {
	m.uvAvailable = true
	v := NewVertex(position)
	v.Normal = normal
	v.UV = uv
	return m.appendVertex(v)
}

func (m *Mesh) appendVertex(v Vertex) int {
	i := len(m.vertices)
	m.vertices = append(m.vertices, v)
	if m.index != nil {
		m.index.addVertex(i, v)
	}
	return i
}

// AddVertexColor returns the first matching color, appending it when absent
func (m *Mesh) AddVertexColor(c mgl32.Vec4) int {
	if idx := m.lookupIndex(); idx != nil {
		if i, ok := idx.byColor[keyOfColor(c)]; ok {
			return i
		}
	} else {
		for i, existing := range m.colors {
			if existing == c {
				return i
			}
		}
	}
	return m.SaveVertexColor(c)
}

// SaveVertexColor appends a color unconditionally
func (m *Mesh) SaveVertexColor(c mgl32.Vec4) int {
	i := len(m.colors)
	m.colors = append(m.colors, c)
	if m.index != nil {
		m.index.addColor(i, c)
	}
	return i
}

// findEdge returns the first edge joining a and b
func (m *Mesh) findEdge(a, b int) (int, bool) {
	if idx := m.lookupIndex(); idx != nil {
		i, ok := idx.byEdge[keyOfEdge(a, b)]
		return i, ok
	}
	for i, e := range m.edges {
		if e.Same(a, b) {
			return i, true
		}
	}
	return -1, false
}

// checkEdge reports whether an edge between a and b can still be added
func (m *Mesh) checkEdge(a, b int) error {
	if a == b {
		return ErrDegenerateEdge
	}
	if i, ok := m.findEdge(a, b); ok && m.edges[i].IsShared() {
		return fmt.Errorf("%w: vertices %d and %d", ErrNonManifold, a, b)
	}
	return nil
}

// AddEdge adds an edge between a and b. If an unshared edge with the same
// endpoints exists, the new edge is linked to it. An already shared pair is
// rejected with ErrNonManifold and index -1.
func (m *Mesh) AddEdge(a, b int) (int, error) {
	if err := m.checkEdge(a, b); err != nil {
		return -1, err
	}
	existing, found := m.findEdge(a, b)

	i := len(m.edges)
	e := NewEdge(a, b)
	if found {
		e.link(existing)
		m.edges[existing].link(i)
	}
	m.edges = append(m.edges, e)
	if m.index != nil {
		m.index.addEdge(i, e)
	}
	return i, nil
}

// AddTriangle validates t, creates its three edges and appends it to the
// last group. The face frame of t is kept as given. A rejected triangle
// leaves the mesh unchanged.
func (m *Mesh) AddTriangle(t Triangle) (int, error) {
	for _, v := range t.VertexIdx {
		if v < 0 || v >= len(m.vertices) {
			return -1, fmt.Errorf("%w: vertex %d of %d", ErrIndexOutOfRange, v, len(m.vertices))
		}
	}
	if len(m.colors) > 0 {
		for _, c := range t.ColorIdx {
			if c < 0 || c >= len(m.colors) {
				return -1, fmt.Errorf("%w: color %d of %d", ErrIndexOutOfRange, c, len(m.colors))
			}
		}
	}
	v := t.VertexIdx
	if v[0] == v[1] || v[1] == v[2] || v[2] == v[0] {
		return -1, fmt.Errorf("%w: repeated vertex in %v", ErrDegenerateTriangle, v)
	}

	corners := t.corners()
	for _, c := range corners {
		if err := m.checkEdge(c[0], c[1]); err != nil {
			return -1, err
		}
	}
	for i, c := range corners {
		// cannot fail, the three pairs are distinct and were checked above
		t.EdgeIdx[i], _ = m.AddEdge(c[0], c[1])
	}

	i := len(m.triangles)
	m.triangles = append(m.triangles, t)
	if len(m.groups) == 0 {
		m.groups = append(m.groups, Group{})
	}
	m.groups[len(m.groups)-1].Count++
	return i, nil
}

// NewGroup starts a new group at the current triangle count. It does nothing
// while the mesh has no triangles.
func (m *Mesh) NewGroup() {
	if len(m.triangles) == 0 {
		return
	}
	m.groups = append(m.groups, Group{Offset: len(m.triangles)})
}

// truncate drops vertices and colors appended after a failed triangle
func (m *Mesh) truncate(vertices, colors int) {
	if m.index != nil {
		for i := len(m.vertices) - 1; i >= vertices; i-- {
			m.index.dropVertex(i, m.vertices[i])
		}
		for i := len(m.colors) - 1; i >= colors; i-- {
			m.index.dropColor(i, m.colors[i])
		}
	}
	m.vertices = m.vertices[:vertices]
	m.colors = m.colors[:colors]
}

// regroup fits the groups to the current triangle count
func (m *Mesh) regroup() {
	n := len(m.triangles)
	out := m.groups[:0]
	for _, g := range m.groups {
		if g.Offset > n || (g.Offset == n && len(out) > 0) {
			break
		}
		if g.End() > n {
			g.Count = n - g.Offset
		}
		out = append(out, g)
	}
	if len(out) == 0 {
		out = append(out, Group{})
	}
	if last := &out[len(out)-1]; last.End() < n {
		last.Count = n - last.Offset
	}
	m.groups = out
}

// Vertices returns the vertex array. It must not be modified.
func (m *Mesh) Vertices() []Vertex { return m.vertices }

// VertexColors returns the color array. It must not be modified.
func (m *Mesh) VertexColors() []mgl32.Vec4 { return m.colors }

// Triangles returns the triangle array. It must not be modified.
func (m *Mesh) Triangles() []Triangle { return m.triangles }

// Edges returns the edge array. It must not be modified.
func (m *Mesh) Edges() []Edge { return m.edges }

// Groups returns the triangle groups. It must not be modified.
func (m *Mesh) Groups() []Group { return m.groups }

// Vertex returns vertex i
func (m *Mesh) Vertex(i int) Vertex { return m.vertices[i] }

// VertexColor returns color i
func (m *Mesh) VertexColor(i int) mgl32.Vec4 { return m.colors[i] }

// VertexCount returns the number of vertices
func (m *Mesh) VertexCount() int { return len(m.vertices) }

// TriangleCount returns the number of triangles
func (m *Mesh) TriangleCount() int { return len(m.triangles) }

// EdgeCount returns the number of edge records
func (m *Mesh) EdgeCount() int { return len(m.edges) }

// IsEmpty reports whether the mesh has no vertices or no triangles
func (m *Mesh) IsEmpty() bool {
	return len(m.vertices) == 0 || len(m.triangles) == 0
}

// IsOpen reports whether any edge is used by a single triangle
func (m *Mesh) IsOpen() bool {
	for _, e := range m.edges {
		if !e.IsShared() {
			return true
		}
	}
	return false
}

// HasGroups reports whether the triangles are split in more than one group
func (m *Mesh) HasGroups() bool {
	return len(m.groups) > 1
}

// IsTextureCoordinatesAvailable reports whether the UVs carry information
func (m *Mesh) IsTextureCoordinatesAvailable() bool {
	return m.uvAvailable
}

// IsVertexColorAvailable reports whether the mesh has vertex colors
func (m *Mesh) IsVertexColorAvailable() bool {
	return len(m.colors) > 0
}

// IsWindingReversed reports whether exported indices are emitted in reverse order
func (m *Mesh) IsWindingReversed() bool {
	return m.reverseWinding
}

// String returns a multi-line dump of the mesh
func (m *Mesh) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Mesh: %d vertices, %d colors, %d triangles, %d edges, %d groups\n",
		len(m.vertices), len(m.colors), len(m.triangles), len(m.edges), len(m.groups))
	for i, v := range m.vertices {
		fmt.Fprintf(&sb, "  vertex #%d: %s\n", i, v)
	}
	for i, t := range m.triangles {
		fmt.Fprintf(&sb, "  triangle #%d: %s\n", i, t)
	}
	for i, e := range m.edges {
		fmt.Fprintf(&sb, "  edge #%d: %s\n", i, e)
	}
	for i, g := range m.groups {
		fmt.Fprintf(&sb, "  group #%d: offset %d, count %d\n", i, g.Offset, g.Count)
	}
	return sb.String()
}
