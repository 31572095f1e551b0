package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/philipparndt/meshforge/pkg/geometry"
	"github.com/philipparndt/meshforge/pkg/mesh"
)

// EdgeInfo describes one undirected edge of the mesh. A shared pair of edge
// records is reported once.
type EdgeInfo struct {
	Index      int
	A, B       int
	Start      mgl32.Vec3
	End        mgl32.Vec3
	Length     float32
	Open       bool
	TriangleID int
}

// MeasurementResult contains the topology and measurements of a mesh
type MeasurementResult struct {
	BoundingBox      geometry.Box
	BoundingSphere   geometry.Sphere
	Centroid         mgl32.Vec3
	RadiusFromOrigin float32
	Dimensions       mgl32.Vec3

	// BoxVolume is the volume of the bounding box. EnclosedVolume is only
	// meaningful when Closed is set.
	BoxVolume      float32
	EnclosedVolume float32
	SurfaceArea    float32

	VertexCount   int
	ColorCount    int
	TriangleCount int
	GroupCount    int
	EdgeRecords   int
	EdgeCount     int
	OpenEdges     int
	SharedEdges   int
	Closed        bool

	MinEdgeLength float32
	MaxEdgeLength float32
	AvgEdgeLength float32
	AllEdges      []EdgeInfo
}

// AnalyzeMesh collects topology statistics and measurements. Derived
// properties are refreshed when the mesh has none.
func AnalyzeMesh(m *mesh.Mesh) *MeasurementResult {
	if !m.PropertiesValid() {
		m.UpdateProperties()
	}
	result := &MeasurementResult{
		BoundingBox:      m.BoundingBox(),
		BoundingSphere:   m.BoundingSphere(),
		Centroid:         m.Centroid(),
		RadiusFromOrigin: m.RadiusFromOrigin(),
		VertexCount:      m.VertexCount(),
		ColorCount:       len(m.VertexColors()),
		TriangleCount:    m.TriangleCount(),
		GroupCount:       len(m.Groups()),
		EdgeRecords:      m.EdgeCount(),
	}
	result.Dimensions = result.BoundingBox.Size()
	result.BoxVolume = result.BoundingBox.Volume()

	// owner triangle of each edge record
	owner := make([]int, m.EdgeCount())
	for ti, tri := range m.Triangles() {
		a := m.Vertex(tri.VertexIdx[0]).Position
		b := m.Vertex(tri.VertexIdx[1]).Position
		c := m.Vertex(tri.VertexIdx[2]).Position
		result.SurfaceArea += geometry.Area(a, b, c)
		// stored winding is opposite to the outward one, see geometry.FaceNormal
		result.EnclosedVolume += geometry.SignedVolume(a, c, b)
		for _, e := range tri.EdgeIdx {
			if e >= 0 && e < len(owner) {
				owner[e] = ti
			}
		}
	}
	if m.IsWindingReversed() {
		result.EnclosedVolume = -result.EnclosedVolume
	}

	minLength := float32(math.MaxFloat32)
	var maxLength, totalLength float32
	for i, e := range m.Edges() {
		partner, shared := e.SharedWith()
		if shared && partner < i {
			continue
		}
		start := m.Vertex(e.A).Position
		end := m.Vertex(e.B).Position
		info := EdgeInfo{
			Index:      i,
			A:          e.A,
			B:          e.B,
			Start:      start,
			End:        end,
			Length:     end.Sub(start).Len(),
			Open:       !shared,
			TriangleID: owner[i],
		}
		result.AllEdges = append(result.AllEdges, info)
		if shared {
			result.SharedEdges++
		} else {
			result.OpenEdges++
		}

		totalLength += info.Length
		minLength = math32.Min(minLength, info.Length)
		maxLength = math32.Max(maxLength, info.Length)
	}

	result.EdgeCount = len(result.AllEdges)
	result.Closed = result.EdgeCount > 0 && result.OpenEdges == 0
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float32(result.EdgeCount)
	}
	return result
}

// OpenEdges returns the edges used by a single triangle
func OpenEdges(result *MeasurementResult) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range result.AllEdges {
		if edge.Open {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindEdgesByLength finds all edges within a length range
func FindEdgesByLength(result *MeasurementResult, minLength, maxLength float32) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range result.AllEdges {
		if edge.Length >= minLength && edge.Length <= maxLength {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindLongestEdges returns the N longest edges in the mesh
func FindLongestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length > b.Length })
}

// FindShortestEdges returns the N shortest edges in the mesh
func FindShortestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length < b.Length })
}

func sortedEdges(result *MeasurementResult, count int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.AllEdges))
	copy(edges, result.AllEdges)
	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i], edges[j])
	})
	if count > len(edges) {
		count = len(edges)
	}
	if count < 0 {
		count = 0
	}
	return edges[:count]
}

// FindNearestVertex finds the vertex nearest to a given point. It returns
// -1 for a mesh without vertices.
func FindNearestVertex(m *mesh.Mesh, point mgl32.Vec3) (int, float32) {
	nearest := -1
	minDistance := float32(math.MaxFloat32)
	for i, v := range m.Vertices() {
		if d := v.Position.Sub(point).Len(); d < minDistance {
			minDistance = d
			nearest = i
		}
	}
	return nearest, minDistance
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float32, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v mgl32.Vec3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v[0], v[1], v[2])
}
