// Package stl reads STL files into meshes and writes meshes back as STL.
package stl

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/philipparndt/meshforge/pkg/geometry"
	"github.com/philipparndt/meshforge/pkg/mesh"
)

// Options control how facets become a mesh
type Options struct {
	// FlatNormals feeds the facet normal with every corner, which keeps
	// facets from sharing vertices. Otherwise normals are averaged.
	FlatNormals bool
	Builder     mesh.Options
	Logger      *slog.Logger
}

// DefaultOptions returns smooth normals with the default builder options
func DefaultOptions() Options {
	return Options{Builder: mesh.DefaultOptions()}
}

// Solid is a decoded STL file
type Solid struct {
	Name string
	Mesh *mesh.Mesh
	// Facets counts the facets read, Rejected those the mesh refused
	// because they were degenerate or non-manifold.
	Facets   int
	Rejected int
}

// Load reads and decodes an STL file
func Load(filename string, opts Options) (*Solid, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	solid, err := Decode(file, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return solid, nil
}

// Decode reads facets from r and builds them into a mesh. The corners of a
// facet are fed as (A, C, B) so that the mesh face normals point outward.
func Decode(r io.Reader, opts Options) (*Solid, error) {
	name, facets, err := ParseFacets(r)
	if err != nil {
		return nil, err
	}

	m := mesh.New()
	b := mesh.NewBuilder(m, opts.Builder)
	if opts.Logger != nil {
		b.SetLogger(opts.Logger)
	}
	if err := b.BeginConstruction(mesh.Triangles); err != nil {
		return nil, err
	}

	solid := &Solid{Name: name, Mesh: m, Facets: len(facets)}
	for i, f := range facets {
		for _, p := range []mesh.VertexData{mesh.At(f.A), mesh.At(f.C), mesh.At(f.B)} {
			if n := geometry.Normalize(f.Normal); opts.FlatNormals && n.Len() > 0 {
				p = p.WithNormal(n)
			}
			err = b.NewVertex(p)
		}
		switch {
		case err == nil:
		case errors.Is(err, mesh.ErrDegenerateTriangle), errors.Is(err, mesh.ErrNonManifold):
			solid.Rejected++
		default:
			_ = b.EndConstruction()
			return nil, fmt.Errorf("facet %d: %w", i, err)
		}
	}
	if err := b.EndConstruction(); err != nil {
		return nil, err
	}
	return solid, nil
}
