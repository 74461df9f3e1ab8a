package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/go-gl/mathgl/mgl64"
)

// ViewAngles orients the orthographic camera used to flatten the world view
type ViewAngles struct {
	Azimuth   float64 // degrees around z
	Elevation float64 // degrees above the xy plane
}

// DefaultViewAngles matches the usual 3D plot orientation
func DefaultViewAngles() ViewAngles {
	return ViewAngles{Azimuth: -60, Elevation: 30}
}

// flatten projects a world point onto the view plane
func (va ViewAngles) flatten(p mgl64.Vec3) mgl64.Vec2 {
	az := mgl64.DegToRad(va.Azimuth)
	el := mgl64.DegToRad(va.Elevation)

	right := mgl64.Vec3{-math.Sin(az), math.Cos(az), 0}
	up := mgl64.Vec3{-math.Cos(az) * math.Sin(el), -math.Sin(az) * math.Sin(el), math.Cos(el)}

	return mgl64.Vec2{p.Dot(right), p.Dot(up)}
}

// SVG writes views as SVG documents of a fixed pixel size
type SVG struct {
	Width  int
	Height int
	Angles ViewAngles
}

// NewSVG creates an SVG sink with the default view angles
func NewSVG(width, height int) *SVG {
	return &SVG{Width: width, Height: height, Angles: DefaultViewAngles()}
}

// WriteCameraView draws the projected segments inside the view port
func (s *SVG) WriteCameraView(w io.Writer, view CameraView) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(s.Width, s.Height)
	canvas.Rect(0, 0, s.Width, s.Height, "fill:white")

	// principal axes of the image plane
	ox, oy := view.toPixel(mgl64.Vec2{0, view.Viewport.MinY}, s.Width, s.Height)
	ex, ey := view.toPixel(mgl64.Vec2{0, view.Viewport.MaxY}, s.Width, s.Height)
	canvas.Line(round(ox), round(oy), round(ex), round(ey), "stroke:#cccccc")
	ox, oy = view.toPixel(mgl64.Vec2{view.Viewport.MinX, 0}, s.Width, s.Height)
	ex, ey = view.toPixel(mgl64.Vec2{view.Viewport.MaxX, 0}, s.Width, s.Height)
	canvas.Line(round(ox), round(oy), round(ex), round(ey), "stroke:#cccccc")

	style := strokeStyle(view.Color)
	for _, segment := range view.Segments {
		xs := make([]int, len(segment))
		ys := make([]int, len(segment))
		for i, p := range segment {
			x, y := view.toPixel(p, s.Width, s.Height)
			xs[i], ys[i] = round(x), round(y)
		}
		if len(segment) == 1 {
			canvas.Circle(xs[0], ys[0], 1, fillStyle(view.Color))
			continue
		}
		canvas.Polyline(xs, ys, style)
	}

	canvas.End()
	return ew.err
}

// WriteWorld draws the world view flattened by the sink's view angles
func (s *SVG) WriteWorld(w io.Writer, world World) error {
	toPixel := s.worldMapping(world)

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(s.Width, s.Height)
	canvas.Rect(0, 0, s.Width, s.Height, "fill:white")

	for _, line := range world.Polylines {
		if len(line.Points) == 0 {
			continue
		}
		xs := make([]int, len(line.Points))
		ys := make([]int, len(line.Points))
		for i, p := range line.Points {
			xs[i], ys[i] = toPixel(p)
		}
		canvas.Polyline(xs, ys, strokeStyle(line.Color))
	}

	for _, q := range world.Quivers {
		x1, y1 := toPixel(q.Origin)
		x2, y2 := toPixel(q.Tip())
		canvas.Line(x1, y1, x2, y2, strokeStyle(q.Color)+";stroke-width:2")
	}

	canvas.End()
	return ew.err
}

// errWriter keeps the first error of w and drops every write after it,
// since the canvas does not report errors itself
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = fmt.Errorf("svg: %w", err)
	}
	return n, err
}

// worldMapping fits the flattened bounding cube of the world into the canvas
func (s *SVG) worldMapping(world World) func(p mgl64.Vec3) (int, int) {
	bounds := world.Bounds()

	minU, minV := math.Inf(1), math.Inf(1)
	maxU, maxV := math.Inf(-1), math.Inf(-1)
	for i := 0; i < 8; i++ {
		corner := bounds.Min
		if i&1 != 0 {
			corner[0] = bounds.Max[0]
		}
		if i&2 != 0 {
			corner[1] = bounds.Max[1]
		}
		if i&4 != 0 {
			corner[2] = bounds.Max[2]
		}
		uv := s.Angles.flatten(corner)
		minU, maxU = math.Min(minU, uv[0]), math.Max(maxU, uv[0])
		minV, maxV = math.Min(minV, uv[1]), math.Max(maxV, uv[1])
	}

	span := math.Max(maxU-minU, maxV-minV)
	if span == 0 {
		span = 1
	}
	scale := float64(min(s.Width, s.Height)) / span
	centerU, centerV := (minU+maxU)/2, (minV+maxV)/2

	return func(p mgl64.Vec3) (int, int) {
		uv := s.Angles.flatten(p)
		x := float64(s.Width)/2 + (uv[0]-centerU)*scale
		y := float64(s.Height)/2 - (uv[1]-centerV)*scale
		return round(x), round(y)
	}
}

func strokeStyle(c color.NRGBA) string {
	return fmt.Sprintf("fill:none;stroke:#%02x%02x%02x", c.R, c.G, c.B)
}

func fillStyle(c color.NRGBA) string {
	return fmt.Sprintf("fill:#%02x%02x%02x", c.R, c.G, c.B)
}

func round(v float64) int {
	return int(math.Round(v))
}
