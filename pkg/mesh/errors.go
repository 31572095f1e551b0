package mesh

import "errors"

var (
	// ErrNonManifold is returned when an edge would be shared by more than two triangles
	ErrNonManifold = errors.New("mesh: edge already shared by two triangles")
	// ErrDegenerateEdge is returned for an edge whose endpoints are the same vertex
	ErrDegenerateEdge = errors.New("mesh: edge endpoints are identical")
	// ErrDegenerateTriangle is returned for a triangle with coincident corners
	ErrDegenerateTriangle = errors.New("mesh: degenerate triangle")
	// ErrIndexOutOfRange is returned when a triangle refers to a missing vertex or color
	ErrIndexOutOfRange = errors.New("mesh: index out of range")
	// ErrEmptyMesh is returned by whole-mesh passes on a mesh without triangles
	ErrEmptyMesh = errors.New("mesh: no geometry")
	// ErrNoTextureCoordinates is returned by tangent passes when no UVs are available
	ErrNoTextureCoordinates = errors.New("mesh: texture coordinates unavailable")
	// ErrNothingToReserve is returned by Reserve when every count is zero
	ErrNothingToReserve = errors.New("mesh: nothing to reserve")
	// ErrInvalidLayout is returned for an unsupported vertex buffer layout
	ErrInvalidLayout = errors.New("mesh: invalid vertex layout")
	// ErrNoVertexColors is returned when colors are exported from a mesh without colors
	ErrNoVertexColors = errors.New("mesh: vertex colors unavailable")

	// ErrNotConstructing is returned by builder calls that need an open session
	ErrNotConstructing = errors.New("builder: no construction in progress")
	// ErrAlreadyConstructing is returned when a session is opened twice
	ErrAlreadyConstructing = errors.New("builder: construction already in progress")
	// ErrNoDestination is returned when the builder has no mesh to write to
	ErrNoDestination = errors.New("builder: no destination mesh")
)
