package mesh

// Group is a contiguous range of triangles
type Group struct {
	Offset int
	Count  int
}

// End returns the index one past the last triangle of the group
func (g Group) End() int {
	return g.Offset + g.Count
}
