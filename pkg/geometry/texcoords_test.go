package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCubicCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		position mgl32.Vec3
		normal   mgl32.Vec3
		expected mgl32.Vec2
	}{
		{"front", mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{0, 0, 1}, mgl32.Vec2{1, 1}},
		{"back", mgl32.Vec3{0.5, 0.5, -0.5}, mgl32.Vec3{0, 0, -1}, mgl32.Vec2{0, 1}},
		{"right", mgl32.Vec3{0.5, -0.5, 0.5}, mgl32.Vec3{1, 0, 0}, mgl32.Vec2{0, 0}},
		{"left", mgl32.Vec3{-0.5, -0.5, 0.5}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec2{1, 0}},
		{"top", mgl32.Vec3{-0.5, 0.5, 0.5}, mgl32.Vec3{0, 1, 0}, mgl32.Vec2{0, 0}},
		{"bottom", mgl32.Vec3{-0.5, -0.5, 0.5}, mgl32.Vec3{0, -1, 0}, mgl32.Vec2{0, 1}},
		{"dominant x", mgl32.Vec3{0, 0.25, 0}, mgl32.Vec3{-0.9, 0.3, 0.1}, mgl32.Vec2{0.5, 0.75}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uv := CubicCoordinates(tt.position, tt.normal)
			assert.InDelta(t, tt.expected[0], uv[0], 1e-6)
			assert.InDelta(t, tt.expected[1], uv[1], 1e-6)
		})
	}
}

func TestSphericalCoordinates(t *testing.T) {
	north := SphericalCoordinates(mgl32.Vec3{0, 2, 0})
	assert.InDelta(t, 0, north[1], 1e-6)

	south := SphericalCoordinates(mgl32.Vec3{0, -1, 0})
	assert.InDelta(t, 1, south[1], 1e-6)

	equator := SphericalCoordinates(mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 0.5, equator[0], 1e-6)
	assert.InDelta(t, 0.5, equator[1], 1e-6)

	quarter := SphericalCoordinates(mgl32.Vec3{0, 0, 1})
	assert.InDelta(t, 0.75, quarter[0], 1e-6)

	assert.Equal(t, mgl32.Vec2{0.5, 0.5}, SphericalCoordinates(mgl32.Vec3{}))
}

func TestTransformHelpers(t *testing.T) {
	m := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.Scale3D(2, 2, 2))

	assert.Equal(t, mgl32.Vec3{3, 2, 3}, TransformPoint(m, mgl32.Vec3{1, 0, 0}))
	assertVec3(t, mgl32.Vec3{1, 0, 0}, TransformDirection(m, mgl32.Vec3{1, 0, 0}))
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, WithoutTranslation(m).Col(3))

	p := Perpendicular(mgl32.Vec3{0, 0, 1})
	assert.InDelta(t, 0, p.Dot(mgl32.Vec3{0, 0, 1}), 1e-6)
	assert.InDelta(t, 1, p.Len(), 1e-6)
	assert.Equal(t, mgl32.Vec3{}, Normalize(mgl32.Vec3{}))
}
