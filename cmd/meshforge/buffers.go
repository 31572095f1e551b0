package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshforge/pkg/mesh"
)

var (
	bufLayout = mesh.DefaultLayout
	bufLimit  int
	bufFlags  loadFlags
)

var buffersCmd = &cobra.Command{
	Use:   "buffers [file]",
	Short: "Export interleaved vertex and index buffers",
	Long: `Build the interleaved vertex buffer and the index buffer of a model as they
would be uploaded to the GPU and print the first entries.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuffers,
}

func init() {
	rootCmd.AddCommand(buffersCmd)

	buffersCmd.Flags().IntVar(&bufLayout.PositionSize, "position", bufLayout.PositionSize, "Position components (2-4)")
	buffersCmd.Flags().IntVar(&bufLayout.NormalSize, "normal", bufLayout.NormalSize, "Normal components (0, 3 or 4)")
	buffersCmd.Flags().BoolVar(&bufLayout.TangentSpace, "tangent-space", bufLayout.TangentSpace, "Emit tangent and binormal with the normal")
	buffersCmd.Flags().IntVar(&bufLayout.UVSize, "uv", bufLayout.UVSize, "Texture coordinate components (0, 2-4)")
	buffersCmd.Flags().IntVar(&bufLayout.ColorSize, "color", bufLayout.ColorSize, "Color components (0-4)")
	buffersCmd.Flags().IntVarP(&bufLimit, "limit", "n", 8, "Number of vertices and triangles to print")
	buffersCmd.Flags().BoolVar(&bufFlags.flat, "flat", false, "Keep facet normals instead of sharing vertices")
}

func runBuffers(cmd *cobra.Command, args []string) error {
	if err := bufLayout.Validate(); err != nil {
		return err
	}
	m := mustLoad(cmd.Context(), args[0], bufFlags).Mesh

	vertices, count, err := m.CreateVerticesBuffer(bufLayout)
	if err != nil {
		return err
	}
	indices := m.CreateIndicesBuffer()
	stride := bufLayout.Stride()

	fmt.Println("Vertex Buffer")
	fmt.Println("=============")
	fmt.Printf("Vertices: %d, stride: %d floats, size: %d bytes\n\n", count, stride, len(vertices)*4)
	for i := 0; i < count && i < bufLimit; i++ {
		fmt.Printf("%6d: %s\n", i, formatFloats(vertices[i*stride:(i+1)*stride]))
	}

	fmt.Println()
	fmt.Println("Index Buffer")
	fmt.Println("============")
	fmt.Printf("Indices: %d, triangles: %d\n\n", len(indices), len(indices)/3)
	for i := 0; i < len(indices)/3 && i < bufLimit; i++ {
		fmt.Printf("%6d: %d %d %d\n", i, indices[i*3], indices[i*3+1], indices[i*3+2])
	}
	return nil
}

func formatFloats(values []float32) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%.4f", v)
	}
	return strings.Join(parts, " ")
}
