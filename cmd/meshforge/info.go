package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshforge/pkg/analysis"
	"github.com/philipparndt/meshforge/pkg/mesh"
)

var infoFlags loadFlags

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a model",
	Long:  "Show topology, dimensions, surface area, volume and edge statistics of an STL or OpenSCAD model.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolVar(&infoFlags.flat, "flat", false, "Keep facet normals instead of sharing vertices")
	infoCmd.Flags().BoolVar(&infoFlags.hashed, "hashed", false, "Use hashed vertex lookup")
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]
	solid := mustLoad(cmd.Context(), filename, infoFlags)

	fmt.Println("Model Information")
	fmt.Println("=================")
	if solid.Name != "" {
		fmt.Printf("Name: %s\n", solid.Name)
	}
	fmt.Printf("File: %s\n\n", filename)
	printInfo(os.Stdout, solid.Mesh)
}

func printInfo(w io.Writer, m *mesh.Mesh) {
	result := analysis.AnalyzeMesh(m)

	fmt.Fprintln(w, "Topology:")
	fmt.Fprintf(w, "  Vertices: %d\n", result.VertexCount)
	fmt.Fprintf(w, "  Colors: %d\n", result.ColorCount)
	fmt.Fprintf(w, "  Triangles: %d\n", result.TriangleCount)
	fmt.Fprintf(w, "  Groups: %d\n", result.GroupCount)
	fmt.Fprintf(w, "  Edges: %d (%d shared, %d open)\n", result.EdgeCount, result.SharedEdges, result.OpenEdges)
	if result.Closed {
		fmt.Fprintln(w, "  Closed: yes")
	} else {
		fmt.Fprintln(w, "  Closed: no")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Bounding Box:")
	fmt.Fprintf(w, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Fprintf(w, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Fprintf(w, "  Center: %s\n", analysis.FormatVector(result.BoundingBox.Center()))
	fmt.Fprintf(w, "  Sphere Radius: %s\n\n", analysis.FormatMeasurement(result.BoundingSphere.Radius, ""))

	fmt.Fprintln(w, "Dimensions:")
	fmt.Fprintf(w, "  Width (X): %s\n", analysis.FormatMeasurement(result.Dimensions[0], ""))
	fmt.Fprintf(w, "  Depth (Y): %s\n", analysis.FormatMeasurement(result.Dimensions[1], ""))
	fmt.Fprintf(w, "  Height (Z): %s\n", analysis.FormatMeasurement(result.Dimensions[2], ""))
	fmt.Fprintf(w, "  Diagonal: %s\n", analysis.FormatMeasurement(result.BoundingBox.Diagonal(), ""))
	fmt.Fprintf(w, "  Box Volume: %s\n", analysis.FormatMeasurement(result.BoxVolume, "cubic units"))
	if result.Closed {
		fmt.Fprintf(w, "  Enclosed Volume: %s\n", analysis.FormatMeasurement(result.EnclosedVolume, "cubic units"))
	}
	fmt.Fprintf(w, "  Surface Area: %s\n", analysis.FormatMeasurement(result.SurfaceArea, "square units"))
	fmt.Fprintf(w, "  Centroid: %s\n\n", analysis.FormatVector(result.Centroid))

	fmt.Fprintln(w, "Edge Lengths:")
	fmt.Fprintf(w, "  Minimum: %s\n", analysis.FormatMeasurement(result.MinEdgeLength, ""))
	fmt.Fprintf(w, "  Maximum: %s\n", analysis.FormatMeasurement(result.MaxEdgeLength, ""))
	fmt.Fprintf(w, "  Average: %s\n", analysis.FormatMeasurement(result.AvgEdgeLength, ""))
}
