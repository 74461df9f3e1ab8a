package actor

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// =============================================================================
// AABB Tests
// =============================================================================

func TestBoundsOf(t *testing.T) {
	tests := []struct {
		name   string
		points []mgl64.Vec3
		want   AABB
	}{
		{"empty", nil, AABB{}},
		{"single point", []mgl64.Vec3{{1, 2, 3}}, AABB{Min: mgl64.Vec3{1, 2, 3}, Max: mgl64.Vec3{1, 2, 3}}},
		{"away from origin", []mgl64.Vec3{{4, 5, 6}, {7, 5, 9}}, AABB{Min: mgl64.Vec3{4, 5, 6}, Max: mgl64.Vec3{7, 5, 9}}},
		{"mixed signs", []mgl64.Vec3{{1, -2, 3}, {-4, 5, -6}, {0, 0, 0}}, AABB{Min: mgl64.Vec3{-4, -2, -6}, Max: mgl64.Vec3{1, 5, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BoundsOf(tt.points); got != tt.want {
				t.Errorf("BoundsOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoundsOf_CameraHousing(t *testing.T) {
	bounds := BoundsOf(CameraHousing().Vertices())

	want := AABB{Min: mgl64.Vec3{-5, -5, 0}, Max: mgl64.Vec3{5, 5, 5}}
	if bounds != want {
		t.Errorf("BoundsOf() = %v, want %v", bounds, want)
	}
}

func TestAABB_Extend(t *testing.T) {
	box := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}}

	extended := box.Extend(mgl64.Vec3{-2, 3, 0.5})
	want := AABB{Min: mgl64.Vec3{-2, 0, 0}, Max: mgl64.Vec3{1, 3, 1}}
	if extended != want {
		t.Errorf("Extend() = %v, want %v", extended, want)
	}

	if box.Extend(mgl64.Vec3{0.5, 0.5, 0.5}) != box {
		t.Error("Extend() by an inner point should not change the box")
	}
}

func TestAABB_Cube(t *testing.T) {
	box := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{10, 2, 4}}

	cube := box.Cube()
	size := cube.Max.Sub(cube.Min)

	if !vec3AlmostEqual(size, mgl64.Vec3{10, 10, 10}, 1e-12) {
		t.Errorf("cube size = %v, want [10 10 10]", size)
	}
	if !vec3AlmostEqual(cube.Center(), box.Center(), 1e-12) {
		t.Errorf("cube center = %v, want %v", cube.Center(), box.Center())
	}
}

// =============================================================================
// Mesh Tests
// =============================================================================

func TestNewMesh(t *testing.T) {
	mesh, err := NewMesh([]mgl64.Vec3{{1, 2, 3}, {4, 5, 6}})
	if err != nil {
		t.Fatalf("NewMesh() error: %v", err)
	}

	if mesh.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", mesh.Len())
	}
	for i, p := range mesh.Points {
		if p.W() != 1 {
			t.Errorf("point %d w = %v, want 1", i, p.W())
		}
	}
	if mesh.Vertices()[1] != (mgl64.Vec3{4, 5, 6}) {
		t.Errorf("Vertices()[1] = %v, want [4 5 6]", mesh.Vertices()[1])
	}
}

func TestNewMesh_Empty(t *testing.T) {
	_, err := NewMesh(nil)
	if !errors.Is(err, ErrEmptyMesh) {
		t.Fatalf("error = %v, want ErrEmptyMesh", err)
	}
}

func TestMesh_TransformRange(t *testing.T) {
	mesh, _ := NewMesh([]mgl64.Vec3{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}})

	mesh.TransformRange(mgl64.Translate3D(1, 0, 0), 1, 2)

	want := []float64{0, 1, 0}
	for i, p := range mesh.Points {
		if p.X() != want[i] {
			t.Errorf("point %d x = %v, want %v", i, p.X(), want[i])
		}
	}
}

func TestCameraHousing(t *testing.T) {
	mesh := CameraHousing()

	if mesh.Len() != 16 {
		t.Fatalf("Len() = %d, want 16", mesh.Len())
	}
	if mesh.Points[0] != (mgl64.Vec4{-5, -5, 0, 1}) {
		t.Errorf("first point = %v, want [-5 -5 0 1]", mesh.Points[0])
	}
	if mesh.Points[15] != (mgl64.Vec4{-5, -5, 5, 1}) {
		t.Errorf("last point = %v, want [-5 -5 5 1]", mesh.Points[15])
	}

	// each call owns its points
	other := CameraHousing()
	other.Transform(mgl64.Translate3D(1, 1, 1))
	if mesh.Points[0] != (mgl64.Vec4{-5, -5, 0, 1}) {
		t.Error("CameraHousing meshes should not share points")
	}
}
