package mesh

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/philipparndt/meshforge/pkg/geometry"
)

// Mode is the primitive topology of a construction session
type Mode int

const (
	ModeNone Mode = iota
	Triangles
	TriangleStrip
	TriangleFan
)

func (m Mode) String() string {
	switch m {
	case Triangles:
		return "triangles"
	case TriangleStrip:
		return "triangle strip"
	case TriangleFan:
		return "triangle fan"
	default:
		return "none"
	}
}

// State of a builder
type State int

const (
	Idle State = iota
	Constructing
)

func (s State) String() string {
	if s == Constructing {
		return "constructing"
	}
	return "idle"
}

// slot is one corner of the triangle being assembled
type slot struct {
	position   mgl32.Vec3
	normal     mgl32.Vec3
	uv         mgl32.Vec2
	color      mgl32.Vec4
	tangent    mgl32.Vec3
	hasTangent bool
}

// session is the state of one BeginConstruction/EndConstruction pair
type session struct {
	mode   Mode
	slots  [3]slot
	cursor int

	// assembled counts completed corner triples, rejected ones included,
	// and drives the strip rotation.
	assembled int
	created   int
	rejected  int
	feed      Feed

	// one-way latches: once set, the matching attribute is treated as
	// authoritative for the rest of the session. Only explicit attributes
	// set them; a global normal is still recomputed from the faces.
	normalsGiven  bool
	tangentsGiven bool
	uvGiven       bool
}

// Builder streams vertices into a Mesh, assembling triangles according to
// the session mode and deriving the attributes that were not supplied.
type Builder struct {
	mesh    *Mesh
	options Options
	logger  *slog.Logger
	session session
}

// NewBuilder creates a builder writing into dst
func NewBuilder(dst *Mesh, opts Options) *Builder {
	return &Builder{
		mesh:    dst,
		options: opts,
		logger:  slog.Default(),
	}
}

// SetLogger replaces the logger used for diagnostics
func (b *Builder) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	b.logger = l
}

// SetDestination changes the mesh to write into. It fails while a session is open.
func (b *Builder) SetDestination(m *Mesh) error {
	if b.State() == Constructing {
		b.logger.Warn("builder: destination changed during construction")
		return ErrAlreadyConstructing
	}
	b.session = session{}
	b.mesh = m
	return nil
}

// Destination returns the mesh being written
func (b *Builder) Destination() *Mesh {
	return b.mesh
}

// Options returns the options for in-place changes. They may be changed
// between vertices, for instance to switch the global normal per face.
func (b *Builder) Options() *Options {
	return &b.options
}

// State reports whether a session is open
func (b *Builder) State() State {
	if b.session.mode == ModeNone {
		return Idle
	}
	return Constructing
}

// Mode returns the topology of the open session
func (b *Builder) Mode() Mode {
	return b.session.mode
}

// Feed returns the attributes supplied with the last vertex
func (b *Builder) Feed() Feed {
	return b.session.feed
}

// BeginConstruction opens a session in the given mode
func (b *Builder) BeginConstruction(mode Mode) error {
	if b.mesh == nil {
		b.logger.Warn("builder: construction started without destination")
		return ErrNoDestination
	}
	if b.State() == Constructing {
		b.logger.Warn("builder: construction already in progress", "mode", b.session.mode)
		return ErrAlreadyConstructing
	}
	if mode != Triangles && mode != TriangleStrip && mode != TriangleFan {
		return fmt.Errorf("builder: unsupported mode %d", mode)
	}
	b.mesh.SetLookup(b.options.Lookup)
	b.session = session{mode: mode}
	return nil
}

// ResetCurrentTriangle forgets the corners collected so far, so that a new
// strip or fan can begin within the same session.
func (b *Builder) ResetCurrentTriangle() {
	b.session.cursor = 0
	b.session.assembled = 0
}

// NewGroup starts a new triangle group in the destination
func (b *Builder) NewGroup() error {
	if b.State() != Constructing {
		b.logger.Warn("builder: new group outside construction")
		return ErrNotConstructing
	}
	b.ResetCurrentTriangle()
	b.mesh.NewGroup()
	return nil
}

// NewVertex feeds one vertex. Every third vertex (in triangle mode), or
// every vertex after the first two (strip and fan), completes a triangle.
// A completed triangle that is degenerate or would make an edge
// non-manifold is skipped and its error returned; the session stays usable.
func (b *Builder) NewVertex(v VertexData) error {
	s := &b.session
	if s.mode == ModeNone {
		b.logger.Warn("builder: vertex fed outside construction")
		return ErrNotConstructing
	}

	sl := slot{position: v.Position, tangent: geometry.PositiveX}

	switch {
	case v.Normal.Present:
		sl.normal = v.Normal.Value
		s.normalsGiven = true
	case b.options.GlobalNormal.Present:
		sl.normal = b.options.GlobalNormal.Value
	default:
		sl.normal = geometry.PositiveZ
	}

	if v.Tangent.Present {
		sl.tangent = v.Tangent.Value
		sl.hasTangent = true
		s.tangentsGiven = true
		s.normalsGiven = true
	}

	if v.UV.Present {
		sl.uv = v.UV.Value
		s.uvGiven = true
	} else {
		sl.uv = b.project(sl.position, sl.normal)
	}

	switch {
	case v.Color.Present:
		sl.color = v.Color.Value
	case b.options.GlobalColor.Present:
		sl.color = b.options.GlobalColor.Value
	case b.options.GenerateVertexColors:
		sl.color = geometry.PositionColor(sl.position)
	default:
		sl.color = DefaultColor
	}

	s.feed = v.Feed()
	s.slots[s.cursor] = sl
	s.cursor++
	if s.cursor < 3 {
		return nil
	}
	return b.assemble()
}

func (b *Builder) project(p, n mgl32.Vec3) mgl32.Vec2 {
	if b.options.Projection == ProjectSpherical {
		return geometry.SphericalCoordinates(p)
	}
	return geometry.CubicCoordinates(p, n)
}

// assemble turns the three slots into a triangle and rotates the slots for
// the next one.
func (b *Builder) assemble() error {
	s := &b.session
	err := b.createTriangle(s.slots)
	s.assembled++
	if err != nil {
		s.rejected++
	} else {
		s.created++
	}

	switch s.mode {
	case TriangleStrip:
		if s.assembled%2 == 1 {
			s.slots[0] = s.slots[2]
		} else {
			s.slots[1] = s.slots[2]
		}
		s.cursor = 2
	case TriangleFan:
		s.slots[1] = s.slots[2]
		s.cursor = 2
	default:
		s.cursor = 0
	}
	return err
}

func (b *Builder) createTriangle(slots [3]slot) error {
	p0, p1, p2 := slots[0].position, slots[1].position, slots[2].position
	if p0 == p1 || p1 == p2 || p2 == p0 {
		b.logger.Warn("builder: degenerate triangle skipped",
			"a", geometry.FormatVector(p0), "b", geometry.FormatVector(p1), "c", geometry.FormatVector(p2))
		return ErrDegenerateTriangle
	}

	m := b.mesh
	vertexMark, colorMark := len(m.vertices), len(m.colors)
	scale := b.options.TextureMultiplier

	var t Triangle
	for i, sl := range slots {
		uv := mgl32.Vec2{sl.uv[0] * scale[0], sl.uv[1] * scale[1]}
		if b.options.DataEconomy {
			t.VertexIdx[i] = m.AddVertexWithNormalUV(sl.position, sl.normal, uv)
			t.ColorIdx[i] = m.AddVertexColor(sl.color)
		} else {
			t.VertexIdx[i] = m.SaveVertex(sl.position, sl.normal, uv)
			t.ColorIdx[i] = m.SaveVertexColor(sl.color)
		}
	}
	t.FaceNormal = geometry.FaceNormal(p0, p1, p2)

	if _, err := m.AddTriangle(t); err != nil {
		m.truncate(vertexMark, colorMark)
		b.logger.Warn("builder: triangle rejected", "error", err)
		return err
	}
	for i, sl := range slots {
		if sl.hasTangent {
			m.vertices[t.VertexIdx[i]].Tangent = sl.tangent
		}
	}
	return nil
}

// EndConstruction closes the session and finishes the mesh: optional
// re-centering and flipping, face and vertex frames, texture coordinates
// when none were supplied, and the derived properties. Pass errors are
// joined; the builder returns to Idle in any case.
func (b *Builder) EndConstruction() error {
	s := b.session
	if s.mode == ModeNone {
		b.logger.Warn("builder: construction ended without being started")
		return ErrNotConstructing
	}
	b.session = session{}

	m := b.mesh
	b.logger.Debug("builder: construction finished",
		"mode", s.mode, "created", s.created, "rejected", s.rejected,
		"vertices", m.VertexCount(), "triangles", m.TriangleCount())
	if m.IsEmpty() {
		return nil
	}

	opts := b.options
	if opts.CenterAtBottom {
		m.SetCenterAtBottom(false)
	}
	if opts.FlipGeometry {
		m.FlipSurface()
	}

	var errs []error
	errs = append(errs, m.ComputeTrianglesNormal())
	if !s.normalsGiven {
		errs = append(errs, m.ComputeVerticesNormal())
	}
	if !s.uvGiven {
		u, v := opts.TextureMultiplier[0], opts.TextureMultiplier[1]
		if opts.Projection == ProjectSpherical {
			errs = append(errs, m.GenerateSphericalTextureCoordinates(u, v))
		} else {
			errs = append(errs, m.GenerateTextureCoordinates(u, v))
		}
	}
	errs = append(errs, m.ComputeTrianglesTangent())
	if !s.tangentsGiven {
		errs = append(errs, m.ComputeVerticesTangent())
	}
	m.UpdateProperties()
	return errors.Join(errs...)
}

// Reset ends an open session. When idle it detaches the destination and
// restores the default options.
func (b *Builder) Reset() error {
	if b.State() == Constructing {
		return b.EndConstruction()
	}
	b.mesh = nil
	b.options.Reset()
	b.session = session{}
	return nil
}
