package main

import (
	"fmt"
	"math"
	"sort"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshforge/pkg/analysis"
	"github.com/philipparndt/meshforge/pkg/geometry"
)

var (
	triCount    int
	triLargest  bool
	triSmallest bool
	triFlags    loadFlags
)

type triangleInfo struct {
	Index     int
	Group     int
	Area      float32
	Perimeter float32
	Normal    string
	Vertices  string
}

var trianglesCmd = &cobra.Command{
	Use:   "triangles [file]",
	Short: "Analyze triangles of a model",
	Long:  "Display information about triangles including group, area, perimeter, face normal and vertex positions.",
	Args:  cobra.ExactArgs(1),
	Run:   runTriangles,
}

func init() {
	rootCmd.AddCommand(trianglesCmd)

	trianglesCmd.Flags().IntVarP(&triCount, "count", "n", 10, "Number of triangles to display")
	trianglesCmd.Flags().BoolVarP(&triLargest, "largest", "l", false, "Show largest triangles by area")
	trianglesCmd.Flags().BoolVarP(&triSmallest, "smallest", "s", false, "Show smallest triangles by area")
	trianglesCmd.Flags().BoolVar(&triFlags.flat, "flat", false, "Keep facet normals instead of sharing vertices")
	trianglesCmd.MarkFlagsMutuallyExclusive("largest", "smallest")
}

func runTriangles(cmd *cobra.Command, args []string) {
	m := mustLoad(cmd.Context(), args[0], triFlags).Mesh
	if m.TriangleCount() == 0 {
		fmt.Println("Model has no triangles.")
		return
	}

	triangles := make([]triangleInfo, 0, m.TriangleCount())
	var totalArea, maxArea float32
	minArea := float32(math.MaxFloat32)

	for g, group := range m.Groups() {
		for i := group.Offset; i < group.End(); i++ {
			tri := m.Triangles()[i]
			a := m.Vertex(tri.VertexIdx[0]).Position
			b := m.Vertex(tri.VertexIdx[1]).Position
			c := m.Vertex(tri.VertexIdx[2]).Position
			area := geometry.Area(a, b, c)

			triangles = append(triangles, triangleInfo{
				Index:     i,
				Group:     g,
				Area:      area,
				Perimeter: geometry.Perimeter(a, b, c),
				Normal:    analysis.FormatVector(tri.FaceNormal),
				Vertices: fmt.Sprintf("%s, %s, %s",
					analysis.FormatVector(a),
					analysis.FormatVector(b),
					analysis.FormatVector(c)),
			})

			totalArea += area
			minArea = min(minArea, area)
			maxArea = max(maxArea, area)
		}
	}

	var title string
	switch {
	case triLargest:
		sort.Slice(triangles, func(i, j int) bool {
			return triangles[i].Area > triangles[j].Area
		})
		title = fmt.Sprintf("Top %d Largest Triangles", triCount)
	case triSmallest:
		sort.Slice(triangles, func(i, j int) bool {
			return triangles[i].Area < triangles[j].Area
		})
		title = fmt.Sprintf("Top %d Smallest Triangles", triCount)
	default:
		title = fmt.Sprintf("First %d Triangles", triCount)
	}

	fmt.Println(title)
	fmt.Println("====================")
	fmt.Printf("Total triangles: %d in %d groups\n", len(triangles), len(m.Groups()))
	fmt.Printf("Total surface area: %.6f square units\n", totalArea)
	fmt.Printf("Min triangle area: %.6f square units\n", minArea)
	fmt.Printf("Max triangle area: %.6f square units\n", maxArea)
	fmt.Printf("Avg triangle area: %.6f square units\n\n", totalArea/float32(len(triangles)))

	for i := 0; i < triCount && i < len(triangles); i++ {
		tri := triangles[i]
		fmt.Printf("Triangle #%d (group %d):\n", tri.Index, tri.Group)
		fmt.Printf("  Area: %.6f square units\n", tri.Area)
		fmt.Printf("  Perimeter: %.6f units\n", tri.Perimeter)
		fmt.Printf("  Normal: %s\n", tri.Normal)
		fmt.Printf("  Vertices: %s\n\n", tri.Vertices)
	}
}
