package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/philipparndt/meshforge/pkg/mesh"
)

// Facets converts the triangles of m back to STL facets
func Facets(m *mesh.Mesh) []Facet {
	facets := make([]Facet, 0, m.TriangleCount())
	for _, t := range m.Triangles() {
		a := m.Vertex(t.VertexIdx[0]).Position
		b := m.Vertex(t.VertexIdx[1]).Position
		c := m.Vertex(t.VertexIdx[2]).Position
		if m.IsWindingReversed() {
			b, c = c, b
		}
		facets = append(facets, Facet{Normal: t.FaceNormal, A: a, B: c, C: b})
	}
	return facets
}

// Encode writes m as binary STL
func Encode(w io.Writer, name string, m *mesh.Mesh) error {
	facets := Facets(m)
	buf := make([]byte, headerSize+4, headerSize+4+len(facets)*facetSize)
	copy(buf[:headerSize], name)
	binary.LittleEndian.PutUint32(buf[headerSize:], uint32(len(facets)))
	for _, f := range facets {
		for _, v := range []mgl32.Vec3{f.Normal, f.A, f.B, f.C} {
			for _, x := range v {
				buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(x))
			}
		}
		buf = append(buf, 0, 0)
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("failed to write STL: %w", err)
	}
	return nil
}

// EncodeASCII writes m as ASCII STL
func EncodeASCII(w io.Writer, name string, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "solid %s\n", name)
	for _, f := range Facets(m) {
		fmt.Fprintf(bw, "  facet normal %g %g %g\n", f.Normal[0], f.Normal[1], f.Normal[2])
		fmt.Fprintln(bw, "    outer loop")
		for _, v := range []mgl32.Vec3{f.A, f.B, f.C} {
			fmt.Fprintf(bw, "      vertex %g %g %g\n", v[0], v[1], v[2])
		}
		fmt.Fprintln(bw, "    endloop")
		fmt.Fprintln(bw, "  endfacet")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)
	return bw.Flush()
}

// Save writes m to filename as binary STL
func Save(filename, name string, m *mesh.Mesh) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Encode(file, name, m); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
