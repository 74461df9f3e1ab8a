// Package camera implements the pinhole camera model: intrinsic parameters and
// the projection of world points onto the image plane of a posed camera.
package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidIntrinsics is returned for intrinsics holding NaN or infinite values
var ErrInvalidIntrinsics = errors.New("invalid camera intrinsics")

// Intrinsics holds the pinhole camera parameters: focal length, pixel scale
// factors, skew and principal point offsets.
type Intrinsics struct {
	F  float64 `yaml:"f" json:"f"`
	Sx float64 `yaml:"sx" json:"sx"`
	Sy float64 `yaml:"sy" json:"sy"`
	So float64 `yaml:"so" json:"so"`
	Ox float64 `yaml:"ox" json:"ox"`
	Oy float64 `yaml:"oy" json:"oy"`
}

// DefaultIntrinsics returns f=sx=sy=1 and no skew or offset
func DefaultIntrinsics() Intrinsics {
	return Intrinsics{F: 1, Sx: 1, Sy: 1}
}

// Matrix returns the intrinsic matrix
//
//	[f·sx  f·so  ox]
//	[0     f·sy  oy]
//	[0     0     1 ]
func (in Intrinsics) Matrix() mgl64.Mat3 {
	return mgl64.Mat3FromRows(
		mgl64.Vec3{in.F * in.Sx, in.F * in.So, in.Ox},
		mgl64.Vec3{0, in.F * in.Sy, in.Oy},
		mgl64.Vec3{0, 0, 1},
	)
}

// Check rejects non-finite parameters. Value ranges are left to the caller.
func (in Intrinsics) Check() error {
	values := []struct {
		name  string
		value float64
	}{
		{"f", in.F}, {"sx", in.Sx}, {"sy", in.Sy}, {"so", in.So}, {"ox", in.Ox}, {"oy", in.Oy},
	}
	for _, v := range values {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return fmt.Errorf("%w: %s=%v", ErrInvalidIntrinsics, v.name, v.value)
		}
	}

	return nil
}
