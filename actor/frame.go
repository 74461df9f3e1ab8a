package actor

import (
	"github.com/akmonengine/pinhole/movement"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultAxisLength is the display length of a frame's axis arrows
const DefaultAxisLength = 10.0

// Frame represents a local coordinate basis placed in world space
type Frame struct {
	Basis  mgl64.Mat3
	Origin mgl64.Vec3
	Length float64
}

// NewFrame creates a frame with the identity basis at origin
func NewFrame(origin mgl64.Vec3) Frame {
	return Frame{
		Basis:  mgl64.Ident3(),
		Origin: origin,
		Length: DefaultAxisLength,
	}
}

// AxisVectors returns the three basis rows, the directions drawn for x, y and z
func (f Frame) AxisVectors() [3]mgl64.Vec3 {
	return [3]mgl64.Vec3{f.Basis.Row(0), f.Basis.Row(1), f.Basis.Row(2)}
}

// ToLocal expresses the world point p in this frame: Basis · (p - Origin)
func (f Frame) ToLocal(p mgl64.Vec3) mgl64.Vec3 {
	return f.Basis.Mul3x1(p.Sub(f.Origin))
}

// IsOrthonormal reports whether Basis · Basisᵀ equals the identity within eps
func (f Frame) IsOrthonormal(eps float64) bool {
	return movement.IsOrthonormal(f.Basis, eps)
}
