package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// BoundsOf returns the box enclosing points, the zero box when there are none
func BoundsOf(points []mgl64.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box = box.Extend(p)
	}

	return box
}

// Extend grows the box so that it contains point
func (a AABB) Extend(point mgl64.Vec3) AABB {
	for i := 0; i < 3; i++ {
		a.Min[i] = math.Min(a.Min[i], point[i])
		a.Max[i] = math.Max(a.Max[i], point[i])
	}

	return a
}

// Center returns the midpoint of the box
func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// Cube returns the cube sharing the box center whose edge is the longest box
// extent, so that the three axes are drawn with equal scale
func (a AABB) Cube() AABB {
	size := a.Max.Sub(a.Min)
	half := math.Max(size.X(), math.Max(size.Y(), size.Z())) / 2
	center := a.Center()
	offset := mgl64.Vec3{half, half, half}

	return AABB{Min: center.Sub(offset), Max: center.Add(offset)}
}
