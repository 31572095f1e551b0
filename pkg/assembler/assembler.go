// Package assembler merges meshes into a destination mesh through a
// triangle-mode builder session.
package assembler

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/philipparndt/meshforge/pkg/geometry"
	"github.com/philipparndt/meshforge/pkg/mesh"
)

var (
	// ErrNoDestination is returned when the assembler has no mesh to write to
	ErrNoDestination = errors.New("assembler: no destination mesh")
	// ErrEmptySource is returned when the mesh to merge has no geometry
	ErrEmptySource = errors.New("assembler: source mesh is empty")
	// ErrRejected wraps the triangles the destination refused
	ErrRejected = errors.New("assembler: triangles rejected")
)

type config struct {
	transform      *mgl32.Mat4
	newGroup       bool
	preserveGroups bool
	options        mesh.Options
}

// Option configures a merge
type Option func(*config)

// WithTransform applies m to the merged positions; normals use m without
// its translation.
func WithTransform(m mgl32.Mat4) Option {
	return func(c *config) {
		c.transform = &m
	}
}

// InNewGroup places the merged triangles in a new group
func InNewGroup() Option {
	return func(c *config) {
		c.newGroup = true
	}
}

// PreserveGroups starts a new group at every group boundary of the source
func PreserveGroups() Option {
	return func(c *config) {
		c.preserveGroups = true
	}
}

// WithBuilderOptions replaces the options of the builder session
func WithBuilderOptions(o mesh.Options) Option {
	return func(c *config) {
		c.options = o
	}
}

// Assembler appends meshes to a destination
type Assembler struct {
	dst    *mesh.Mesh
	logger *slog.Logger
}

// New creates an assembler writing into dst
func New(dst *mesh.Mesh) *Assembler {
	return &Assembler{dst: dst, logger: slog.Default()}
}

// SetLogger replaces the logger passed on to the builder
func (a *Assembler) SetLogger(l *slog.Logger) {
	if l != nil {
		a.logger = l
	}
}

// Destination returns the mesh being written
func (a *Assembler) Destination() *mesh.Mesh {
	return a.dst
}

// Merge appends every triangle of src to the destination. Each corner is
// fed with its position, normal and color, so the destination keeps the
// source attributes. Texture coordinates are fed only when src has them;
// otherwise the builder generates them.
func (a *Assembler) Merge(src *mesh.Mesh, opts ...Option) error {
	if a.dst == nil {
		return ErrNoDestination
	}
	if src == nil || src.IsEmpty() {
		return ErrEmptySource
	}

	cfg := config{options: mesh.DefaultOptions()}
	for _, opt := range opts {
		opt(&cfg)
	}

	b := mesh.NewBuilder(a.dst, cfg.options)
	b.SetLogger(a.logger)
	if err := b.BeginConstruction(mesh.Triangles); err != nil {
		return err
	}
	if cfg.newGroup {
		if err := b.NewGroup(); err != nil {
			return err
		}
	}

	var boundaries map[int]bool
	if cfg.preserveGroups {
		boundaries = make(map[int]bool, len(src.Groups()))
		for _, g := range src.Groups()[1:] {
			boundaries[g.Offset] = true
		}
	}

	colors := src.VertexColors()
	withUV := src.IsTextureCoordinatesAvailable()
	var rejected int
	var firstErr error
	for ti, tri := range src.Triangles() {
		if boundaries[ti] {
			if err := b.NewGroup(); err != nil {
				return err
			}
		}
		var err error
		for c := 0; c < 3; c++ {
			v := src.Vertex(tri.VertexIdx[c])
			data := mesh.At(v.Position).WithNormal(v.Normal)
			if withUV {
				data = data.WithUV(v.UV)
			}
			if cfg.transform != nil {
				data.Position = geometry.TransformPoint(*cfg.transform, v.Position)
				data.Normal.Value = geometry.TransformDirection(*cfg.transform, v.Normal)
			}
			if len(colors) > 0 {
				data = data.WithColor(colors[tri.ColorIdx[c]])
			}
			err = b.NewVertex(data)
		}
		if err != nil {
			rejected++
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if err := b.EndConstruction(); err != nil {
		return fmt.Errorf("assembler: finishing merge: %w", err)
	}
	if rejected > 0 {
		return fmt.Errorf("%w: %d of %d: %w", ErrRejected, rejected, src.TriangleCount(), firstErr)
	}
	return nil
}

// Merge returns a new mesh holding a followed by b. With useGroups, b goes
// into its own group.
func Merge(a, b *mesh.Mesh, useGroups bool) (*mesh.Mesh, error) {
	return MergeAll([]*mesh.Mesh{a, b}, useGroups)
}

// MergeAll returns a new mesh holding every mesh of the list in order.
// Empty meshes are skipped. With useGroups, every mesh gets its own group.
func MergeAll(meshes []*mesh.Mesh, useGroups bool) (*mesh.Mesh, error) {
	out := mesh.New()
	asm := New(out)
	var errs []error
	for i, m := range meshes {
		if m == nil || m.IsEmpty() {
			continue
		}
		var opts []Option
		if useGroups {
			opts = append(opts, InNewGroup())
		}
		if err := asm.Merge(m, opts...); err != nil {
			errs = append(errs, fmt.Errorf("mesh %d: %w", i, err))
		}
	}
	return out, errors.Join(errs...)
}
