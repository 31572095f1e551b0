package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	headerSize = 80
	facetSize  = 50
)

// ErrTruncated is returned for a binary file shorter than its facet count
var ErrTruncated = errors.New("stl: truncated binary data")

// Facet is one triangle as stored in an STL file: a normal and three
// corners in counter-clockwise order seen from outside.
type Facet struct {
	Normal  mgl32.Vec3
	A, B, C mgl32.Vec3
}

// ParseFacets reads all facets from r. The format is detected from the
// content: data whose length matches the binary layout is binary, otherwise
// data starting with "solid" is ASCII.
func ParseFacets(r io.Reader) (string, []Facet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read STL data: %w", err)
	}
	if !isBinary(data) && bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		return parseASCII(bytes.NewReader(data))
	}
	return parseBinary(data)
}

// isBinary reports whether data has exactly the size a binary STL with the
// stored facet count would have. ASCII files may start with "solid" too.
func isBinary(data []byte) bool {
	if len(data) < headerSize+4 {
		return false
	}
	count := binary.LittleEndian.Uint32(data[headerSize:])
	return uint64(len(data)) == uint64(headerSize+4)+uint64(count)*facetSize
}

// parseASCII parses an ASCII STL file
func parseASCII(reader io.Reader) (string, []Facet, error) {
	scanner := bufio.NewScanner(reader)
	var name string
	var facets []Facet

	var normal mgl32.Vec3
	var corners []mgl32.Vec3
	line := 0

	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 && name == "" {
				name = strings.Join(fields[1:], " ")
			}

		case "facet":
			if len(fields) >= 5 && fields[1] == "normal" {
				v, err := parseVec3(fields[2:5])
				if err != nil {
					return "", nil, fmt.Errorf("line %d: %w", line, err)
				}
				normal = v
			}
			corners = corners[:0]

		case "vertex":
			if len(fields) < 4 {
				return "", nil, fmt.Errorf("line %d: vertex needs three coordinates", line)
			}
			v, err := parseVec3(fields[1:4])
			if err != nil {
				return "", nil, fmt.Errorf("line %d: %w", line, err)
			}
			corners = append(corners, v)

		case "endfacet":
			if len(corners) == 3 {
				facets = append(facets, Facet{Normal: normal, A: corners[0], B: corners[1], C: corners[2]})
			}
			corners = corners[:0]
			normal = mgl32.Vec3{}
		}
	}

	if err := scanner.Err(); err != nil {
		return "", nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}
	return name, facets, nil
}

func parseVec3(fields []string) (mgl32.Vec3, error) {
	var v mgl32.Vec3
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return v, fmt.Errorf("invalid coordinate %q: %w", f, err)
		}
		v[i] = float32(x)
	}
	return v, nil
}

// parseBinary parses a binary STL file
func parseBinary(data []byte) (string, []Facet, error) {
	if len(data) < headerSize+4 {
		return "", nil, fmt.Errorf("%w: %d bytes", ErrTruncated, len(data))
	}
	name := strings.TrimSpace(string(bytes.TrimRight(data[:headerSize], "\x00")))
	count := int(binary.LittleEndian.Uint32(data[headerSize:]))
	body := data[headerSize+4:]
	if len(body) < count*facetSize {
		return "", nil, fmt.Errorf("%w: %d facets announced, room for %d", ErrTruncated, count, len(body)/facetSize)
	}

	facets := make([]Facet, count)
	for i := range facets {
		rec := body[i*facetSize:]
		facets[i] = Facet{
			Normal: readVec3(rec[0:]),
			A:      readVec3(rec[12:]),
			B:      readVec3(rec[24:]),
			C:      readVec3(rec[36:]),
		}
		// the trailing two bytes hold an attribute count nobody uses
	}
	return name, facets, nil
}

func readVec3(b []byte) mgl32.Vec3 {
	return mgl32.Vec3{
		math.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
		math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
		math.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
	}
}
