package camera

import (
	"github.com/akmonengine/pinhole/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// ImagePoint is the projection of one mesh column.
// Points at or behind the camera plane keep their slot with Visible unset.
type ImagePoint struct {
	Position mgl64.Vec2
	Depth    float64
	Visible  bool
}

// Projection holds one ImagePoint per projected column, in column order
type Projection struct {
	Points []ImagePoint
}

// Projector projects world points through a camera pose and intrinsics
type Projector struct {
	pose      actor.Frame
	intrinsic mgl64.Mat3
}

// NewProjector captures the camera pose (extrinsics) and intrinsic matrix
func NewProjector(pose actor.Frame, in Intrinsics) Projector {
	return Projector{
		pose:      pose,
		intrinsic: in.Matrix(),
	}
}

// ProjectPoint maps a homogeneous world point to image coordinates.
//
// The point is moved into camera coordinates, p' = Basis · (p - Origin). A point
// with p'.z <= 0 lies on or behind the image plane and is not visible; otherwise
// the image coordinate is K · [I|0] · [p', 1] divided by p'.z.
func (p Projector) ProjectPoint(point mgl64.Vec4) ImagePoint {
	local := p.pose.ToLocal(point.Vec3())

	z := local.Z()
	if z <= 0 {
		return ImagePoint{Depth: z}
	}

	q := p.intrinsic.Mul3x1(local).Mul(1 / z)

	return ImagePoint{
		Position: mgl64.Vec2{q.X(), q.Y()},
		Depth:    z,
		Visible:  true,
	}
}

// ProjectRange projects points[start:end] into out[start:end].
// Disjoint ranges may be projected concurrently.
func (p Projector) ProjectRange(points []mgl64.Vec4, out []ImagePoint, start, end int) {
	for i := start; i < end; i++ {
		out[i] = p.ProjectPoint(points[i])
	}
}

// Project projects every point through the camera pose and intrinsics
func Project(points []mgl64.Vec4, pose actor.Frame, in Intrinsics) Projection {
	projection := Projection{Points: make([]ImagePoint, len(points))}
	NewProjector(pose, in).ProjectRange(points, projection.Points, 0, len(points))

	return projection
}

// Visible returns the coordinates of the visible points, in column order
func (pr Projection) Visible() []mgl64.Vec2 {
	visible := make([]mgl64.Vec2, 0, len(pr.Points))
	for _, point := range pr.Points {
		if point.Visible {
			visible = append(visible, point.Position)
		}
	}

	return visible
}

// Segments splits the projection into maximal runs of consecutive visible
// points. Each run is one polyline of the camera view.
func (pr Projection) Segments() [][]mgl64.Vec2 {
	var segments [][]mgl64.Vec2
	var current []mgl64.Vec2

	for _, point := range pr.Points {
		if !point.Visible {
			if len(current) > 0 {
				segments = append(segments, current)
				current = nil
			}
			continue
		}
		current = append(current, point.Position)
	}
	if len(current) > 0 {
		segments = append(segments, current)
	}

	return segments
}
