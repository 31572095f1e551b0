package mesh

import "fmt"

// Edge is an undirected link between two vertex indices. An edge is shared
// when a second triangle uses the same pair, in which case both records point
// at each other.
type Edge struct {
	A, B int

	partner int
	linked  bool
}

// NewEdge creates an unshared edge
func NewEdge(a, b int) Edge {
	return Edge{A: a, B: b}
}

// SharedWith returns the index of the partner edge, if any
func (e Edge) SharedWith() (int, bool) {
	return e.partner, e.linked
}

// IsShared reports whether a second triangle uses this edge
func (e Edge) IsShared() bool {
	return e.linked
}

// Same reports whether the edge joins a and b, in either direction
func (e Edge) Same(a, b int) bool {
	return (e.A == a && e.B == b) || (e.A == b && e.B == a)
}

// Other returns the opposite endpoint of v
func (e Edge) Other(v int) int {
	if e.A == v {
		return e.B
	}
	return e.A
}

func (e *Edge) link(partner int) {
	e.partner = partner
	e.linked = true
}

func (e *Edge) unlink() {
	e.partner = 0
	e.linked = false
}

func (e Edge) String() string {
	if e.linked {
		return fmt.Sprintf("edge(%d, %d) shared with %d", e.A, e.B, e.partner)
	}
	return fmt.Sprintf("edge(%d, %d) open", e.A, e.B)
}
