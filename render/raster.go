package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/vector"
)

// ErrUnsupportedImageFormat is returned for output extensions other than .png and .webp
var ErrUnsupportedImageFormat = errors.New("unsupported image format")

// Raster draws views into NRGBA images with an anti-aliased vector rasterizer
type Raster struct {
	Width     int
	Height    int
	LineWidth float32
	Angles    ViewAngles
}

// NewRaster creates a raster sink drawing 1.5 pixel wide lines
func NewRaster(width, height int) *Raster {
	return &Raster{Width: width, Height: height, LineWidth: 1.5, Angles: DefaultViewAngles()}
}

// CameraView rasterizes the projected segments
func (r *Raster) CameraView(view CameraView) *image.NRGBA {
	img := r.blank()

	stroke := r.newStroke()
	for _, segment := range view.Segments {
		pixels := make([][2]float32, len(segment))
		for i, p := range segment {
			x, y := view.toPixel(p, r.Width, r.Height)
			pixels[i] = [2]float32{float32(x), float32(y)}
		}
		stroke.polyline(pixels)
	}
	stroke.draw(img, view.Color)

	return img
}

// World rasterizes the world view flattened by the sink's view angles
func (r *Raster) World(world World) *image.NRGBA {
	img := r.blank()
	mapping := (&SVG{Width: r.Width, Height: r.Height, Angles: r.Angles}).worldMapping(world)
	toPixel := func(p mgl64.Vec3) [2]float32 {
		x, y := mapping(p)
		return [2]float32{float32(x), float32(y)}
	}

	for _, line := range world.Polylines {
		stroke := r.newStroke()
		pixels := make([][2]float32, len(line.Points))
		for i, p := range line.Points {
			pixels[i] = toPixel(p)
		}
		stroke.polyline(pixels)
		stroke.draw(img, line.Color)
	}
	for _, q := range world.Quivers {
		stroke := r.newStroke()
		stroke.polyline([][2]float32{toPixel(q.Origin), toPixel(q.Tip())})
		stroke.draw(img, q.Color)
	}

	return img
}

func (r *Raster) blank() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	return img
}

type stroke struct {
	z     *vector.Rasterizer
	width float32
	empty bool
}

func (r *Raster) newStroke() *stroke {
	return &stroke{z: vector.NewRasterizer(r.Width, r.Height), width: r.LineWidth, empty: true}
}

// polyline adds one quad per edge; a single point becomes a small square
func (s *stroke) polyline(points [][2]float32) {
	half := s.width / 2
	if len(points) == 1 {
		p := points[0]
		s.quad(
			[2]float32{p[0] - half, p[1] - half}, [2]float32{p[0] + half, p[1] - half},
			[2]float32{p[0] + half, p[1] + half}, [2]float32{p[0] - half, p[1] + half},
		)
		return
	}

	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		dx, dy := b[0]-a[0], b[1]-a[1]
		length := float32(math.Hypot(float64(dx), float64(dy)))
		if length == 0 {
			continue
		}
		nx, ny := -dy/length*half, dx/length*half
		s.quad(
			[2]float32{a[0] + nx, a[1] + ny}, [2]float32{b[0] + nx, b[1] + ny},
			[2]float32{b[0] - nx, b[1] - ny}, [2]float32{a[0] - nx, a[1] - ny},
		)
	}
}

func (s *stroke) quad(p0, p1, p2, p3 [2]float32) {
	s.z.MoveTo(p0[0], p0[1])
	s.z.LineTo(p1[0], p1[1])
	s.z.LineTo(p2[0], p2[1])
	s.z.LineTo(p3[0], p3[1])
	s.z.ClosePath()
	s.empty = false
}

func (s *stroke) draw(img *image.NRGBA, c color.NRGBA) {
	if s.empty {
		return
	}
	s.z.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
}

// Encode writes img as PNG or WebP depending on the extension of name
func Encode(w io.Writer, name string, img image.Image) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return png.Encode(w, img)
	case ".webp":
		return nativewebp.Encode(w, img, nil)
	}

	return fmt.Errorf("%w: %q", ErrUnsupportedImageFormat, filepath.Ext(name))
}
