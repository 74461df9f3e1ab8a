// Package render describes what a scene looks like as drawable primitives and
// provides sinks writing them out as SVG or raster images.
package render

import (
	"image/color"

	"github.com/akmonengine/pinhole/actor"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	ColorX    = color.NRGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
	ColorY    = color.NRGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}
	ColorZ    = color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	ColorMesh = color.NRGBA{R: 0x00, G: 0x00, B: 0xff, A: 0xff}
)

// Quiver is an arrow drawn from Origin along Direction, scaled to Length
type Quiver struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
	Length    float64
	Color     color.NRGBA
}

// Tip returns the end point of the arrow
func (q Quiver) Tip() mgl64.Vec3 {
	return q.Origin.Add(q.Direction.Mul(q.Length))
}

// Polyline3D joins consecutive points with straight lines
type Polyline3D struct {
	Points []mgl64.Vec3
	Color  color.NRGBA
}

// World holds the primitives of the 3D world view
type World struct {
	Quivers   []Quiver
	Polylines []Polyline3D
}

// FrameQuivers returns the three axis arrows of a frame: one per basis row,
// colored red, green and blue
func FrameQuivers(frame actor.Frame) []Quiver {
	axes := frame.AxisVectors()
	colors := [3]color.NRGBA{ColorX, ColorY, ColorZ}

	quivers := make([]Quiver, 3)
	for i := range quivers {
		quivers[i] = Quiver{
			Origin:    frame.Origin,
			Direction: axes[i],
			Length:    frame.Length,
			Color:     colors[i],
		}
	}

	return quivers
}

// Bounds returns the equal-aspect cube enclosing every quiver and polyline
func (w World) Bounds() actor.AABB {
	points := make([]mgl64.Vec3, 0, 2*len(w.Quivers))
	for _, q := range w.Quivers {
		points = append(points, q.Origin, q.Tip())
	}
	for _, line := range w.Polylines {
		points = append(points, line.Points...)
	}

	return actor.BoundsOf(points).Cube()
}

// Viewport is the visible rectangle of the camera view in image units
type Viewport struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// DefaultViewport clamps both axes to [-10, 10]
func DefaultViewport() Viewport {
	return Viewport{MinX: -10, MaxX: 10, MinY: -10, MaxY: 10}
}

// Width returns the horizontal extent
func (v Viewport) Width() float64 {
	return v.MaxX - v.MinX
}

// Height returns the vertical extent
func (v Viewport) Height() float64 {
	return v.MaxY - v.MinY
}

// CameraView holds the 2D primitives of the camera view.
// InvertY means image y grows downward.
type CameraView struct {
	Segments [][]mgl64.Vec2
	Viewport Viewport
	InvertY  bool
	Color    color.NRGBA
}

// toPixel maps an image coordinate into a width x height pixel grid
func (cv CameraView) toPixel(p mgl64.Vec2, width, height int) (float64, float64) {
	vp := cv.Viewport
	x := (p.X() - vp.MinX) / vp.Width() * float64(width)
	y := (p.Y() - vp.MinY) / vp.Height() * float64(height)
	if !cv.InvertY {
		y = float64(height) - y
	}

	return x, y
}
