// Package movement builds the homogeneous rigid-body matrices used to place
// bodies in the scene.
//
// Every matrix follows the column-vector convention: a movement M is applied to
// a point p as M·[p, 1]. The rotation block always comes from one of the three
// principal-axis rotations, so every matrix produced here is rigid and can be
// inverted analytically with Reverse.
package movement

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis names one of the three principal rotation axes.
type Axis int

const (
	// AxisZ is the zero value so an unset axis rotates about Z
	AxisZ Axis = iota
	AxisX
	AxisY
)

// ErrInvalidAxis is returned for an axis outside {x, y, z}.
var ErrInvalidAxis = errors.New("invalid rotation axis")

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Valid reports whether a is one of AxisX, AxisY, AxisZ.
func (a Axis) Valid() bool {
	return a == AxisX || a == AxisY || a == AxisZ
}

// ParseAxis converts a control-surface axis name into an Axis.
// An empty name selects AxisZ.
func ParseAxis(name string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z", "":
		return AxisZ, nil
	}

	return AxisZ, fmt.Errorf("%w: %q", ErrInvalidAxis, name)
}

// RotationMatrix returns the right-handed rotation of angleDeg degrees about axis.
// The angle is not range checked.
func RotationMatrix(angleDeg float64, axis Axis) (mgl64.Mat3, error) {
	angle := mgl64.DegToRad(angleDeg)

	switch axis {
	case AxisX:
		return mgl64.Rotate3DX(angle), nil
	case AxisY:
		return mgl64.Rotate3DY(angle), nil
	case AxisZ:
		return mgl64.Rotate3DZ(angle), nil
	}

	return mgl64.Ident3(), fmt.Errorf("%w: %v", ErrInvalidAxis, axis)
}

// MovementMatrix combines a rotation of angleDeg about axis with the translation
// target - current:
//
//	[R  t]
//	[0  1]
func MovementMatrix(current, target mgl64.Vec3, angleDeg float64, axis Axis) (mgl64.Mat4, error) {
	rotation, err := RotationMatrix(angleDeg, axis)
	if err != nil {
		return mgl64.Ident4(), err
	}

	return compose(rotation, target.Sub(current)), nil
}

// Translation returns the pure translation to target.
func Translation(target mgl64.Vec3) mgl64.Mat4 {
	return mgl64.Translate3D(target.X(), target.Y(), target.Z())
}

// Rotation returns the pure rotation of angleDeg about axis, as a 4x4 matrix.
func Rotation(angleDeg float64, axis Axis) (mgl64.Mat4, error) {
	return MovementMatrix(mgl64.Vec3{}, mgl64.Vec3{}, angleDeg, axis)
}

// Reverse returns the inverse of the rigid movement m, [Rᵀ, -Rᵀ·t].
// It relies on the rotation block of m being orthonormal.
func Reverse(m mgl64.Mat4) mgl64.Mat4 {
	rotation := RotationBlock(m).Transpose()
	translation := TranslationPart(m)

	return compose(rotation, rotation.Mul3x1(translation).Mul(-1))
}

// RotationBlock extracts the upper-left 3x3 block of m.
func RotationBlock(m mgl64.Mat4) mgl64.Mat3 {
	return m.Mat3()
}

// TranslationPart extracts the last column of m without its homogeneous term.
func TranslationPart(m mgl64.Mat4) mgl64.Vec3 {
	return m.Col(3).Vec3()
}

// Apply transforms the point p (w=1) by m.
func Apply(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// IsRigid reports whether m has an orthonormal rotation block and an affine
// bottom row, within eps.
func IsRigid(m mgl64.Mat4, eps float64) bool {
	row := m.Row(3)
	if !withinEps(row[:], []float64{0, 0, 0, 1}, eps) {
		return false
	}

	r := RotationBlock(m)
	if !IsOrthonormal(r, eps) {
		return false
	}

	return math.Abs(r.Det()-1) <= eps
}

// IsOrthonormal reports whether r · rᵀ equals the identity, each entry within eps
func IsOrthonormal(r mgl64.Mat3, eps float64) bool {
	product := r.Mul3(r.Transpose())
	identity := mgl64.Ident3()

	return withinEps(product[:], identity[:], eps)
}

// withinEps compares absolute differences, entries near zero included
func withinEps(a, b []float64, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}

	return true
}

func compose(rotation mgl64.Mat3, translation mgl64.Vec3) mgl64.Mat4 {
	m := rotation.Mat4()
	m.SetCol(3, translation.Vec4(1))

	return m
}
