package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"

	"github.com/philipparndt/meshforge/pkg/assembler"
	"github.com/philipparndt/meshforge/pkg/mesh"
	"github.com/philipparndt/meshforge/pkg/stl"
)

var (
	mergeSpacing float32
	mergeGroups  bool
	mergeFlags   loadFlags
)

var mergeCmd = &cobra.Command{
	Use:   "merge [output.stl] [file...]",
	Short: "Merge models into one STL file",
	Long: `Merge several models into a single mesh. With --spacing the models are laid
out side by side along X, each placed that far from the previous one.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().Float32Var(&mergeSpacing, "spacing", 0, "Gap along X between merged models, 0 keeps positions")
	mergeCmd.Flags().BoolVar(&mergeGroups, "groups", false, "Put every model into its own group")
	mergeCmd.Flags().BoolVar(&mergeFlags.flat, "flat", false, "Keep facet normals instead of sharing vertices")
}

func runMerge(cmd *cobra.Command, args []string) error {
	out := args[0]
	if !strings.EqualFold(filepath.Ext(out), ".stl") {
		return fmt.Errorf("output must be an STL file: %s", out)
	}

	dst := mesh.New()
	asm := assembler.New(dst)
	asm.SetLogger(logger)

	var offset float32
	for _, path := range args[1:] {
		src := mustLoad(cmd.Context(), path, mergeFlags).Mesh

		opts := []assembler.Option{assembler.WithBuilderOptions(builderOptions)}
		if mergeGroups {
			opts = append(opts, assembler.InNewGroup())
		}
		if mergeSpacing > 0 && !src.IsEmpty() {
			box := src.BoundingBox()
			opts = append(opts, assembler.WithTransform(mgl32.Translate3D(offset-box.Min[0], 0, 0)))
			offset += box.Size()[0] + mergeSpacing
		}

		if err := asm.Merge(src, opts...); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", path, err)
		}
	}

	if err := stl.Save(out, strings.TrimSuffix(filepath.Base(out), filepath.Ext(out)), dst); err != nil {
		return err
	}
	fmt.Printf("Merged %d models into %s\n\n", len(args)-1, out)
	printInfo(os.Stdout, dst)
	return nil
}
