package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Box represents an axis-aligned bounding box
type Box struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewBox creates an empty bounding box that any point will extend
func NewBox() Box {
	inf := math32.Inf(1)
	return Box{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether no point has been added to the box
func (b Box) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Extend expands the bounding box to include a point
func (b *Box) Extend(point mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		b.Min[i] = math32.Min(b.Min[i], point[i])
		b.Max[i] = math32.Max(b.Max[i], point[i])
	}
}

// Merge expands the bounding box to include another box
func (b *Box) Merge(other Box) {
	if other.IsEmpty() {
		return
	}
	b.Extend(other.Min)
	b.Extend(other.Max)
}

// Size returns the dimensions of the bounding box
func (b Box) Size() mgl32.Vec3 {
	if b.IsEmpty() {
		return mgl32.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the bounding box
func (b Box) Center() mgl32.Vec3 {
	if b.IsEmpty() {
		return mgl32.Vec3{}
	}
	return b.Min.Add(b.Max).Mul(0.5)
}

// Diagonal returns the length of the bounding box diagonal
func (b Box) Diagonal() float32 {
	return b.Size().Len()
}

// HighestLength returns the longest side of the box
func (b Box) HighestLength() float32 {
	s := b.Size()
	return math32.Max(s[0], math32.Max(s[1], s[2]))
}

// Volume returns the volume of the bounding box
func (b Box) Volume() float32 {
	s := b.Size()
	return s[0] * s[1] * s[2]
}

// Contains reports whether the point lies inside or on the box
func (b Box) Contains(point mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if point[i] < b.Min[i] || point[i] > b.Max[i] {
			return false
		}
	}
	return true
}
