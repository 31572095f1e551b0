package mesh

import "fmt"

// WeldVertices merges vertices with identical position, normal and texture
// coordinates, drops triangles that collapse, removes unused vertices and
// rebuilds the edges. It returns the number of vertices removed. When the
// welded surface would have an edge shared by more than two triangles the
// mesh is left untouched and ErrNonManifold is returned.
func (m *Mesh) WeldVertices() (int, error) {
	if m.IsEmpty() {
		return 0, ErrEmptyMesh
	}

	// canonical index for every vertex
	first := make(map[vertexKey]int, len(m.vertices))
	canonical := make([]int, len(m.vertices))
	for i, v := range m.vertices {
		key := keyOfVertex(v.Position, v.Normal, v.UV)
		if j, ok := first[key]; ok {
			canonical[i] = j
			continue
		}
		first[key] = i
		canonical[i] = i
	}

	// remap triangles and record which group each survivor belongs to
	type kept struct {
		tri   Triangle
		group int
	}
	survivors := make([]kept, 0, len(m.triangles))
	for gi, g := range m.groups {
		for ti := g.Offset; ti < g.End() && ti < len(m.triangles); ti++ {
			t := m.triangles[ti]
			for c := range t.VertexIdx {
				t.VertexIdx[c] = canonical[t.VertexIdx[c]]
			}
			v := t.VertexIdx
			if v[0] == v[1] || v[1] == v[2] || v[2] == v[0] {
				continue
			}
			survivors = append(survivors, kept{tri: t, group: gi})
		}
	}

	// compact the vertex array
	remap := make([]int, len(m.vertices))
	for i := range remap {
		remap[i] = -1
	}
	vertices := make([]Vertex, 0, len(first))
	for i := range survivors {
		t := &survivors[i].tri
		for c, v := range t.VertexIdx {
			if remap[v] < 0 {
				remap[v] = len(vertices)
				vertices = append(vertices, m.vertices[v])
			}
			t.VertexIdx[c] = remap[v]
		}
	}

	// rebuild topology on a scratch mesh so that failure leaves m unchanged
	scratch := &Mesh{
		vertices:    vertices,
		colors:      m.colors,
		groups:      []Group{{}},
		lookup:      LookupHashed,
		uvAvailable: m.uvAvailable,
	}
	lastGroup := 0
	for i, s := range survivors {
		if s.group != lastGroup {
			scratch.NewGroup()
			lastGroup = s.group
		}
		if _, err := scratch.AddTriangle(s.tri); err != nil {
			return 0, fmt.Errorf("weld: triangle %d: %w", i, err)
		}
	}

	removed := len(m.vertices) - len(vertices)
	m.vertices = scratch.vertices
	m.triangles = scratch.triangles
	m.edges = scratch.edges
	m.groups = scratch.groups
	m.invalidateLookup()
	return removed, nil
}
