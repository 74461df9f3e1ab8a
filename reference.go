package pinhole

import (
	"errors"
	"fmt"
	"strings"

	"github.com/akmonengine/pinhole/movement"
	"github.com/go-gl/mathgl/mgl64"
)

// ReferenceFrame names the frame a move request is expressed in
type ReferenceFrame int

const (
	// ReferenceWorld is the zero value, moves are relative to the world origin by default
	ReferenceWorld ReferenceFrame = iota
	ReferenceActor
	ReferenceCamera
)

var (
	ErrUnknownReference = errors.New("unknown reference frame")
	ErrUnknownBody      = errors.New("body does not belong to the scene")
	ErrNonFinite        = errors.New("non-finite move request")
)

func (r ReferenceFrame) String() string {
	switch r {
	case ReferenceWorld:
		return "world"
	case ReferenceActor:
		return "actor"
	case ReferenceCamera:
		return "camera"
	default:
		return fmt.Sprintf("ReferenceFrame(%d)", int(r))
	}
}

// ParseReference converts a control-surface reference name.
// An empty name selects the world frame.
func ParseReference(name string) (ReferenceFrame, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "world", "":
		return ReferenceWorld, nil
	case "actor":
		return ReferenceActor, nil
	case "camera":
		return ReferenceCamera, nil
	}

	return ReferenceWorld, fmt.Errorf("%w: %q", ErrUnknownReference, name)
}

// MoveRequest positions a body absolutely: Target and the rotation of Angle
// degrees about Axis are interpreted in the Reference frame.
// The zero value moves the body back to the world origin, unrotated.
type MoveRequest struct {
	Target    mgl64.Vec3
	Angle     float64
	Axis      movement.Axis
	Reference ReferenceFrame
}
