// Package mesh loads actor meshes from STL or 3MF files, or generates them from
// procedural primitives.
//
// Every loader returns the vertices triangle by triangle, three per triangle and
// in file order, so that joining consecutive points draws the triangle edges.
package mesh

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/akmonengine/pinhole/actor"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrUnsupportedFormat = errors.New("mesh: unsupported format")
	ErrEmptyMesh         = errors.New("mesh: no triangles")
)

// Load reads the mesh at path, the format is chosen by file extension
func Load(path string) ([]mgl64.Vec3, error) {
	var (
		points []mgl64.Vec3
		err    error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		points, err = LoadSTL(path)
	case ".3mf":
		points, err = Load3MF(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyMesh, path)
	}

	return points, nil
}

// Center translates points so that their bounding box is centered on the origin
func Center(points []mgl64.Vec3) {
	center := actor.BoundsOf(points).Center()
	for i := range points {
		points[i] = points[i].Sub(center)
	}
}
