package mesh

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	stlHeaderSize   = 80
	stlTriangleSize = 50
)

var ErrMalformedSTL = errors.New("mesh: malformed stl")

// LoadSTL reads a binary or ASCII STL file
func LoadSTL(path string) ([]mgl64.Vec3, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: %w", err)
	}

	return DecodeSTL(data)
}

// DecodeSTL decodes STL content. Binary content is recognized by its size
// matching the triangle count of its header, anything else is read as ASCII.
func DecodeSTL(data []byte) ([]mgl64.Vec3, error) {
	if isBinarySTL(data) {
		return decodeBinarySTL(data)
	}

	return decodeASCIISTL(bytes.NewReader(data))
}

func isBinarySTL(data []byte) bool {
	if len(data) < stlHeaderSize+4 {
		return false
	}
	count := binary.LittleEndian.Uint32(data[stlHeaderSize:])

	return int64(len(data)) == stlHeaderSize+4+int64(count)*stlTriangleSize
}

func decodeBinarySTL(data []byte) ([]mgl64.Vec3, error) {
	count := int(binary.LittleEndian.Uint32(data[stlHeaderSize:]))
	points := make([]mgl64.Vec3, 0, count*3)

	offset := stlHeaderSize + 4
	for i := 0; i < count; i++ {
		// skip the facet normal
		v := offset + 12
		for j := 0; j < 3; j++ {
			var p mgl64.Vec3
			for k := 0; k < 3; k++ {
				bits := binary.LittleEndian.Uint32(data[v+4*(3*j+k):])
				p[k] = float64(math.Float32frombits(bits))
			}
			points = append(points, p)
		}
		offset += stlTriangleSize
	}

	return points, nil
}

func decodeASCIISTL(r io.Reader) ([]mgl64.Vec3, error) {
	scanner := bufio.NewScanner(r)

	var points []mgl64.Vec3
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if line == 1 && fields[0] != "solid" {
			return nil, fmt.Errorf("%w: missing solid header", ErrMalformedSTL)
		}
		if fields[0] != "vertex" {
			continue
		}
		if len(fields) != 4 {
			return nil, fmt.Errorf("%w: line %d: expected 3 coordinates", ErrMalformedSTL, line)
		}

		var p mgl64.Vec3
		for k := 0; k < 3; k++ {
			value, err := strconv.ParseFloat(fields[k+1], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedSTL, line, err)
			}
			p[k] = value
		}
		points = append(points, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("mesh: %w", err)
	}
	if len(points)%3 != 0 {
		return nil, fmt.Errorf("%w: %d vertices is not a whole number of triangles", ErrMalformedSTL, len(points))
	}

	return points, nil
}
