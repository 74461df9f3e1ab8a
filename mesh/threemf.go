package mesh

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hpinc/go3mf"
)

var ErrMalformed3MF = errors.New("mesh: malformed 3mf")

// Load3MF reads every mesh object of a 3MF package, object after object.
// Build item transforms are not applied.
func Load3MF(path string) ([]mgl64.Vec3, error) {
	r, err := go3mf.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: %w", err)
	}
	defer r.Close()

	var model go3mf.Model
	if err := r.Decode(&model); err != nil {
		return nil, fmt.Errorf("mesh: decode %s: %w", path, err)
	}

	return modelPoints(&model)
}

func modelPoints(model *go3mf.Model) ([]mgl64.Vec3, error) {
	var points []mgl64.Vec3
	for _, object := range model.Resources.Objects {
		if object.Mesh == nil {
			continue
		}

		vertices := object.Mesh.Vertices.Vertex
		for i, triangle := range object.Mesh.Triangles.Triangle {
			for _, index := range [3]uint32{triangle.V1, triangle.V2, triangle.V3} {
				if int(index) >= len(vertices) {
					return nil, fmt.Errorf("%w: object %d triangle %d: vertex %d out of range", ErrMalformed3MF, object.ID, i, index)
				}
				v := vertices[index]
				points = append(points, mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])})
			}
		}
	}

	return points, nil
}
