package actor

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrEmptyMesh is returned when a mesh is built from no points
var ErrEmptyMesh = errors.New("mesh has no points")

// Mesh is a homogeneous point cloud, the 4xN matrix stored column by column.
// Consecutive points are joined when drawn, so the order is significant.
type Mesh struct {
	Points []mgl64.Vec4
}

// NewMesh creates a mesh from world points, with w=1 for every column
func NewMesh(points []mgl64.Vec3) (*Mesh, error) {
	if len(points) == 0 {
		return nil, ErrEmptyMesh
	}

	columns := make([]mgl64.Vec4, len(points))
	for i, p := range points {
		columns[i] = p.Vec4(1)
	}

	return &Mesh{Points: columns}, nil
}

// Len returns the number of columns
func (m *Mesh) Len() int {
	return len(m.Points)
}

// Transform left-multiplies every column by movement
func (m *Mesh) Transform(movement mgl64.Mat4) {
	m.TransformRange(movement, 0, len(m.Points))
}

// TransformRange left-multiplies the columns in [start, end) by movement.
// Disjoint ranges may be transformed concurrently.
func (m *Mesh) TransformRange(movement mgl64.Mat4, start, end int) {
	for i := start; i < end; i++ {
		m.Points[i] = movement.Mul4x1(m.Points[i])
	}
}

// Vertices returns the cartesian part of every column
func (m *Mesh) Vertices() []mgl64.Vec3 {
	vertices := make([]mgl64.Vec3, len(m.Points))
	for i, p := range m.Points {
		vertices[i] = p.Vec3()
	}

	return vertices
}

// CameraHousing returns the wireframe drawn for the camera body: the outline of
// a 10x10 base at z=0 with its four posts and the 10x10 rim at z=5.
func CameraHousing() *Mesh {
	outline := []mgl64.Vec3{
		{-5, -5, 0},
		{-5, 5, 0},
		{-5, 5, 5},
		{-5, 5, 0},
		{5, 5, 0},
		{5, 5, 5},
		{5, 5, 0},
		{5, -5, 0},
		{5, -5, 5},
		{5, -5, 0},
		{-5, -5, 0},
		{-5, -5, 5},
		{-5, 5, 5},
		{5, 5, 5},
		{5, -5, 5},
		{-5, -5, 5},
	}

	mesh, _ := NewMesh(outline)
	return mesh
}
