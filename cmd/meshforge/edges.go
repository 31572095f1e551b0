package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshforge/pkg/analysis"
)

var (
	edgesCount     int
	edgesLongest   bool
	edgesShortest  bool
	edgesOpen      bool
	edgesMinLength float32
	edgesMaxLength float32
	edgesFlags     loadFlags
)

var edgesCmd = &cobra.Command{
	Use:   "edges [file]",
	Short: "Analyze and measure edges of a model",
	Long:  "Find and measure edges, including open, longest, shortest, or edges within a specific length range.",
	Args:  cobra.ExactArgs(1),
	Run:   runEdges,
}

func init() {
	rootCmd.AddCommand(edgesCmd)

	edgesCmd.Flags().IntVarP(&edgesCount, "count", "n", 10, "Number of edges to display")
	edgesCmd.Flags().BoolVarP(&edgesLongest, "longest", "l", false, "Show longest edges")
	edgesCmd.Flags().BoolVarP(&edgesShortest, "shortest", "s", false, "Show shortest edges")
	edgesCmd.Flags().BoolVarP(&edgesOpen, "open", "o", false, "Show edges used by a single triangle")
	edgesCmd.Flags().Float32Var(&edgesMinLength, "min", 0.0, "Minimum edge length filter")
	edgesCmd.Flags().Float32Var(&edgesMaxLength, "max", 0.0, "Maximum edge length filter")
	edgesCmd.Flags().BoolVar(&edgesFlags.flat, "flat", false, "Keep facet normals instead of sharing vertices")
	edgesCmd.MarkFlagsMutuallyExclusive("longest", "shortest", "open")
}

func runEdges(cmd *cobra.Command, args []string) {
	solid := mustLoad(cmd.Context(), args[0], edgesFlags)
	result := analysis.AnalyzeMesh(solid.Mesh)

	var edges []analysis.EdgeInfo
	var title string

	switch {
	case edgesLongest:
		edges = analysis.FindLongestEdges(result, edgesCount)
		title = fmt.Sprintf("Top %d Longest Edges", len(edges))
	case edgesShortest:
		edges = analysis.FindShortestEdges(result, edgesCount)
		title = fmt.Sprintf("Top %d Shortest Edges", len(edges))
	case edgesOpen:
		edges = analysis.OpenEdges(result)
		title = fmt.Sprintf("Open Edges (found %d)", len(edges))
	case edgesMaxLength > 0:
		edges = analysis.FindEdgesByLength(result, edgesMinLength, edgesMaxLength)
		title = fmt.Sprintf("Edges between %.6f and %.6f units (found %d)", edgesMinLength, edgesMaxLength, len(edges))
	default:
		edges = result.AllEdges
		title = fmt.Sprintf("All Edges (showing first %d of %d)", min(edgesCount, len(edges)), len(edges))
	}
	if len(edges) > edgesCount {
		edges = edges[:edgesCount]
	}

	fmt.Println(title)
	fmt.Println("====================")
	fmt.Printf("Total edges in model: %d (%d open)\n", result.EdgeCount, result.OpenEdges)
	fmt.Printf("Min edge length: %.6f units\n", result.MinEdgeLength)
	fmt.Printf("Max edge length: %.6f units\n", result.MaxEdgeLength)
	fmt.Printf("Avg edge length: %.6f units\n\n", result.AvgEdgeLength)

	if len(edges) == 0 {
		fmt.Println("No edges found matching the criteria.")
		return
	}

	fmt.Printf("%-6s %-10s %-35s %-35s %-12s %s\n", "Edge", "Vertices", "Start", "End", "Length", "State")
	fmt.Println("--------------------------------------------------------------------------------------------------------------")
	for _, edge := range edges {
		state := "shared"
		if edge.Open {
			state = "open"
		}
		fmt.Printf("%-6d %-10s %-35s %-35s %-12.6f %s\n",
			edge.Index,
			fmt.Sprintf("%d-%d", edge.A, edge.B),
			analysis.FormatVector(edge.Start),
			analysis.FormatVector(edge.End),
			edge.Length,
			state)
	}
}
