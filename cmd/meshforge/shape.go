package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshforge/pkg/shapes"
	"github.com/philipparndt/meshforge/pkg/stl"
)

var (
	shapeParams = shapes.Params{Size: 1, Slices: 16, Stacks: 8}
	shapeOut    string
	shapeASCII  bool
)

var shapeCmd = &cobra.Command{
	Use:       "shape [kind]",
	Short:     "Generate a primitive shape",
	Long:      "Generate a triangle, quad, cube, sphere or disk, print its information and optionally save it as STL.",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: kindNames(),
	RunE:      runShape,
}

func init() {
	rootCmd.AddCommand(shapeCmd)

	shapeCmd.Flags().Float32Var(&shapeParams.Size, "size", shapeParams.Size, "Edge length or diameter")
	shapeCmd.Flags().IntVar(&shapeParams.Slices, "slices", shapeParams.Slices, "Subdivisions around round shapes")
	shapeCmd.Flags().IntVar(&shapeParams.Stacks, "stacks", shapeParams.Stacks, "Subdivisions from pole to pole")
	shapeCmd.Flags().StringVarP(&shapeOut, "out", "o", "", "Write the shape to this STL file")
	shapeCmd.Flags().BoolVar(&shapeASCII, "ascii", false, "Write ASCII instead of binary STL")
}

func kindNames() []string {
	names := make([]string, len(shapes.Kinds))
	for i, k := range shapes.Kinds {
		names[i] = string(k)
	}
	return names
}

func runShape(cmd *cobra.Command, args []string) error {
	kind := shapes.Kind(strings.ToLower(args[0]))
	m, err := shapes.Generate(kind, shapeParams, builderOptions)
	if err != nil {
		return err
	}

	fmt.Printf("Shape: %s\n\n", kind)
	printInfo(os.Stdout, m)

	if shapeOut == "" {
		return nil
	}
	if shapeASCII {
		file, err := os.Create(shapeOut)
		if err != nil {
			return err
		}
		if err := stl.EncodeASCII(file, string(kind), m); err != nil {
			file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return err
		}
	} else if err := stl.Save(shapeOut, string(kind), m); err != nil {
		return err
	}
	fmt.Printf("\nSaved to %s\n", shapeOut)
	return nil
}
