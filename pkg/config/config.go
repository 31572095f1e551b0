// Package config reads builder options from YAML files.
//
//	data_economy: true
//	lookup: hashed
//	global_normal: [0, 0, 1]
//	global_color: [1, 0, 0, 1]
//	generate_vertex_colors: false
//	texture_multiplier: [2, 2]
//	texture_projection: spherical
//	center_at_bottom: true
//	flip_geometry: false
//
// Keys that are left out keep their default value.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/philipparndt/meshforge/pkg/mesh"
)

// ErrInvalid is returned for values that parse but make no sense
var ErrInvalid = errors.New("invalid configuration")

// File mirrors the YAML document. Pointers tell missing keys apart from
// zero values.
type File struct {
	DataEconomy          *bool     `yaml:"data_economy"`
	Lookup               *string   `yaml:"lookup"`
	GlobalNormal         []float32 `yaml:"global_normal"`
	GlobalColor          []float32 `yaml:"global_color"`
	GenerateVertexColors *bool     `yaml:"generate_vertex_colors"`
	TextureMultiplier    []float32 `yaml:"texture_multiplier"`
	TextureProjection    *string   `yaml:"texture_projection"`
	CenterAtBottom       *bool     `yaml:"center_at_bottom"`
	FlipGeometry         *bool     `yaml:"flip_geometry"`
}

// Load reads options from a YAML file
func Load(path string) (mesh.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return mesh.Options{}, fmt.Errorf("failed to read config: %w", err)
	}
	opts, err := Parse(data)
	if err != nil {
		return mesh.Options{}, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}

// Parse reads options from YAML data. Unknown keys are an error.
func Parse(data []byte) (mesh.Options, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return mesh.Options{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return f.Options()
}

// Options applies the file on top of mesh.DefaultOptions
func (f File) Options() (mesh.Options, error) {
	opts := mesh.DefaultOptions()

	if f.DataEconomy != nil {
		opts.DataEconomy = *f.DataEconomy
	}
	if f.Lookup != nil {
		l, ok := mesh.ParseLookup(*f.Lookup)
		if !ok {
			return opts, fmt.Errorf("%w: unknown lookup %q", ErrInvalid, *f.Lookup)
		}
		opts.Lookup = l
	}
	if f.GlobalNormal != nil {
		if len(f.GlobalNormal) != 3 {
			return opts, fmt.Errorf("%w: global_normal needs 3 components, got %d", ErrInvalid, len(f.GlobalNormal))
		}
		n := mgl32.Vec3{f.GlobalNormal[0], f.GlobalNormal[1], f.GlobalNormal[2]}
		if n.Len() == 0 {
			return opts, fmt.Errorf("%w: global_normal is zero", ErrInvalid)
		}
		opts.EnableGlobalNormal(n.Normalize())
	}
	if f.GenerateVertexColors != nil {
		opts.EnableVertexColorGeneration(*f.GenerateVertexColors)
	}
	if f.GlobalColor != nil {
		c, err := color(f.GlobalColor)
		if err != nil {
			return opts, err
		}
		if opts.GenerateVertexColors {
			return opts, fmt.Errorf("%w: global_color and generate_vertex_colors exclude each other", ErrInvalid)
		}
		opts.EnableGlobalVertexColor(c)
	}
	if f.TextureMultiplier != nil {
		switch len(f.TextureMultiplier) {
		case 1:
			opts.SetTextureCoordinatesMultiplier(f.TextureMultiplier[0], 0)
		case 2:
			opts.SetTextureCoordinatesMultiplier(f.TextureMultiplier[0], f.TextureMultiplier[1])
		default:
			return opts, fmt.Errorf("%w: texture_multiplier needs 1 or 2 components, got %d", ErrInvalid, len(f.TextureMultiplier))
		}
	}
	if f.TextureProjection != nil {
		p, ok := mesh.ParseProjection(*f.TextureProjection)
		if !ok {
			return opts, fmt.Errorf("%w: unknown texture_projection %q", ErrInvalid, *f.TextureProjection)
		}
		opts.Projection = p
	}
	if f.CenterAtBottom != nil {
		opts.CenterAtBottom = *f.CenterAtBottom
	}
	if f.FlipGeometry != nil {
		opts.FlipGeometry = *f.FlipGeometry
	}
	return opts, nil
}

// color accepts RGB or RGBA in [0, 1]
func color(v []float32) (mgl32.Vec4, error) {
	c := mgl32.Vec4{0, 0, 0, 1}
	if len(v) != 3 && len(v) != 4 {
		return c, fmt.Errorf("%w: global_color needs 3 or 4 components, got %d", ErrInvalid, len(v))
	}
	for i, x := range v {
		if x < 0 || x > 1 {
			return c, fmt.Errorf("%w: global_color component %d out of [0, 1]: %g", ErrInvalid, i, x)
		}
		c[i] = x
	}
	return c, nil
}
