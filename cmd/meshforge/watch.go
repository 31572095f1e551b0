package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshforge/pkg/mesh"
	"github.com/philipparndt/meshforge/pkg/watcher"
)

var (
	watchDebounce time.Duration
	watchFlags    loadFlags
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Print model information on every change",
	Long: `Watch a model and, for OpenSCAD models, every file it uses or includes.
The model information is printed again after each change until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 300*time.Millisecond, "Quiet period before reloading")
	watchCmd.Flags().BoolVar(&watchFlags.flat, "flat", false, "Keep facet normals instead of sharing vertices")
	watchCmd.Flags().BoolVar(&watchFlags.hashed, "hashed", false, "Use hashed vertex lookup")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watcher.New(watchDebounce, func(ctx context.Context, path string) (*mesh.Mesh, []string, error) {
		solid, files, err := loadModel(ctx, path, watchFlags)
		if err != nil {
			return nil, files, err
		}
		return solid.Mesh, files, nil
	})
	if err != nil {
		return err
	}
	w.SetLogger(logger)

	fmt.Printf("Watching %s (Ctrl+C to stop)\n", args[0])
	return w.Run(ctx, args[0], func(r watcher.Reload) {
		fmt.Printf("\n[%s] %s\n", time.Now().Format(time.TimeOnly), r.Path)
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "Error loading model: %v\n", r.Err)
			return
		}
		printInfo(os.Stdout, r.Mesh)
	})
}
