package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshforge/pkg/config"
	"github.com/philipparndt/meshforge/pkg/mesh"
	"github.com/philipparndt/meshforge/version"
)

var (
	optionsFile string
	verbose     bool

	// builderOptions is filled from --options before any command runs
	builderOptions = mesh.DefaultOptions()
	logger         = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
)

var rootCmd = &cobra.Command{
	Use:   "meshforge",
	Short: "Build, inspect and convert triangle meshes",
	Long: `meshforge builds indexed triangle meshes from STL and OpenSCAD models or
from built-in shape generators. It reports topology and measurements, merges
models, exports GPU vertex buffers and watches models for changes.`,
	Version:           version.GetFullVersion(),
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&optionsFile, "options", "", "YAML file with builder options")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log builder diagnostics to stderr")
}

func setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if optionsFile == "" {
		return nil
	}
	opts, err := config.Load(optionsFile)
	if err != nil {
		return err
	}
	builderOptions = opts
	logger.Debug("options loaded", "file", optionsFile, "lookup", opts.Lookup, "projection", opts.Projection)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
