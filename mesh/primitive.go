package mesh

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultCells is the marching cubes resolution along the longest side
const DefaultCells = 20

var ErrUnknownPrimitive = errors.New("mesh: unknown primitive")

// Primitive generates a solid centered on the origin and returns its surface
// triangles. For a box size holds the three side lengths, for a cylinder along
// z, size.X is the diameter and size.Z the height.
func Primitive(kind string, size mgl64.Vec3, cells int) ([]mgl64.Vec3, error) {
	if size.X() <= 0 || size.Y() <= 0 || size.Z() <= 0 {
		return nil, fmt.Errorf("mesh: %s size must be positive, got %v", kind, size)
	}
	if cells <= 0 {
		cells = DefaultCells
	}

	var (
		solid sdf.SDF3
		err   error
	)
	switch kind {
	case "box":
		solid, err = sdf.Box3D(v3.Vec{X: size.X(), Y: size.Y(), Z: size.Z()}, 0)
	case "cylinder":
		solid, err = sdf.Cylinder3D(size.Z(), size.X()/2, 0)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPrimitive, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("mesh: %s: %w", kind, err)
	}

	triangles := render.ToTriangles(solid, render.NewMarchingCubesUniform(cells))
	if len(triangles) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyMesh, kind)
	}

	points := make([]mgl64.Vec3, 0, len(triangles)*3)
	for _, tri := range triangles {
		for j := 0; j < 3; j++ {
			v := tri[j]
			points = append(points, mgl64.Vec3{v.X, v.Y, v.Z})
		}
	}

	return points, nil
}
