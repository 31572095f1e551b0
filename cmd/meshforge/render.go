package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshforge/pkg/preview"
)

var (
	renderOpts  = preview.DefaultOptions()
	renderOut   string
	renderFlags loadFlags
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a model preview to PNG",
	Long:  "Render a flat shaded preview of a model on the CPU and write it as a PNG image.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "preview.png", "Output PNG file")
	renderCmd.Flags().IntVar(&renderOpts.Width, "width", renderOpts.Width, "Image width in pixels")
	renderCmd.Flags().IntVar(&renderOpts.Height, "height", renderOpts.Height, "Image height in pixels")
	renderCmd.Flags().IntVar(&renderOpts.Samples, "samples", renderOpts.Samples, "Supersampling factor")
	renderCmd.Flags().BoolVarP(&renderOpts.Wireframe, "wireframe", "w", false, "Draw triangle edges")
	renderCmd.Flags().Float32Var(&renderOpts.RotationX, "elevation", renderOpts.RotationX, "Camera elevation in radians")
	renderCmd.Flags().Float32Var(&renderOpts.RotationY, "azimuth", renderOpts.RotationY, "Camera azimuth in radians")
	renderCmd.Flags().Float32Var(&renderOpts.Zoom, "zoom", 0, "Relative change of the camera distance")
	renderCmd.Flags().StringVar(&renderOpts.Caption, "caption", "", "Text printed into the top left corner")
	renderCmd.Flags().BoolVar(&renderFlags.flat, "flat", false, "Keep facet normals instead of sharing vertices")
}

func runRender(cmd *cobra.Command, args []string) error {
	m := mustLoad(cmd.Context(), args[0], renderFlags).Mesh

	img, err := preview.Render(m, renderOpts)
	if err != nil {
		return err
	}

	file, err := os.Create(renderOut)
	if err != nil {
		return err
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	fmt.Printf("Rendered %s (%dx%d) to %s\n", args[0], renderOpts.Width, renderOpts.Height, renderOut)
	return nil
}
