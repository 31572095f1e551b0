package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/meshforge/pkg/mesh"
	"github.com/philipparndt/meshforge/pkg/openscad"
	"github.com/philipparndt/meshforge/pkg/stl"
)

// loadFlags are shared by the commands that read a model
type loadFlags struct {
	flat   bool
	hashed bool
}

func (f loadFlags) options() stl.Options {
	opts := stl.DefaultOptions()
	opts.FlatNormals = f.flat
	opts.Builder = builderOptions
	if f.hashed {
		opts.Builder.Lookup = mesh.LookupHashed
	}
	opts.Logger = logger
	return opts
}

// loadModel reads an STL or OpenSCAD model. The returned files are the
// sources the mesh was built from.
func loadModel(ctx context.Context, path string, flags loadFlags) (*stl.Solid, []string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".stl":
		solid, err := stl.Load(path, flags.options())
		if err != nil {
			return nil, nil, err
		}
		return solid, []string{path}, nil
	case ".scad":
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, nil, err
		}
		r := openscad.NewRenderer(filepath.Dir(abs))
		return r.Load(ctx, abs, flags.options())
	}
	return nil, nil, fmt.Errorf("unsupported file type: %s", path)
}

// mustLoad loads a model or exits
func mustLoad(ctx context.Context, path string, flags loadFlags) *stl.Solid {
	solid, _, err := loadModel(ctx, path, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		os.Exit(1)
	}
	if solid.Rejected > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d of %d facets were rejected\n", solid.Rejected, solid.Facets)
	}
	return solid
}
