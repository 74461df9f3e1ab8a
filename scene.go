// Package pinhole places a rigid actor mesh and a pinhole camera in a shared
// world frame, repositions either of them relative to the actor, camera or world
// frame, and renders the world view and the camera's projected view.
//
// A Scene is not safe for concurrent use: the caller serializes every call,
// typically one call per user interaction followed by a re-render.
package pinhole

import (
	"fmt"
	"math"

	"github.com/akmonengine/pinhole/actor"
	"github.com/akmonengine/pinhole/camera"
	"github.com/akmonengine/pinhole/movement"
	"github.com/akmonengine/pinhole/render"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DEFAULT_WORKERS = 1

type Scene struct {
	Actor     *actor.RigidBody
	Camera    *actor.RigidBody
	WorldAxis *actor.RigidBody

	// Workers splits mesh transformation and projection across goroutines
	Workers int

	Events Events

	// camera intrinsics, keyed by camera body id
	intrinsics map[uuid.UUID]camera.Intrinsics
	logger     *zap.Logger
}

type Option func(s *Scene)

// WithLogger sets the logger, zap.NewNop() by default
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scene) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithWorkers sets the worker count used for mesh transformation and projection
func WithWorkers(workers int) Option {
	return func(s *Scene) {
		s.Workers = workers
	}
}

// WithIntrinsics sets the initial camera intrinsics
func WithIntrinsics(in camera.Intrinsics) Option {
	return func(s *Scene) {
		s.intrinsics[s.Camera.Id] = in
	}
}

// NewScene creates the world axis, an actor carrying actorMesh and a camera with
// default intrinsics, all at the world origin
func NewScene(actorMesh *actor.Mesh, opts ...Option) (*Scene, error) {
	if actorMesh == nil || actorMesh.Len() == 0 {
		return nil, actor.ErrEmptyMesh
	}

	s := &Scene{
		Actor:      actor.NewRigidBody("actor", actor.BodyKindActor, mgl64.Vec3{}, actorMesh),
		Camera:     actor.NewRigidBody("camera", actor.BodyKindCamera, mgl64.Vec3{}, actor.CameraHousing()),
		WorldAxis:  actor.NewRigidBody("world", actor.BodyKindAxis, mgl64.Vec3{}, nil),
		Workers:    DEFAULT_WORKERS,
		Events:     NewEvents(),
		intrinsics: make(map[uuid.UUID]camera.Intrinsics),
		logger:     zap.NewNop(),
	}
	s.intrinsics[s.Camera.Id] = camera.DefaultIntrinsics()

	for _, opt := range opts {
		opt(s)
	}
	if err := s.intrinsics[s.Camera.Id].Check(); err != nil {
		return nil, err
	}

	s.logger.Debug("scene created",
		zap.Stringer("actor", s.Actor.Id),
		zap.Stringer("camera", s.Camera.Id),
		zap.Int("actor_points", actorMesh.Len()),
	)

	return s, nil
}

// MoveActor moves the actor, see MoveObject
func (s *Scene) MoveActor(req MoveRequest) error {
	return s.MoveObject(s.Actor, req)
}

// MoveCamera moves the camera, see MoveObject
func (s *Scene) MoveCamera(req MoveRequest) error {
	return s.MoveObject(s.Camera, req)
}

// MoveObject repositions body absolutely, relative to req.Reference.
//
// The previous movement of body is undone first, returning it to its neutral
// pose, then a single new movement is applied and recorded:
//   - when body is itself the reference frame, it is rotated about its own
//     origin and translated to req.Target: T(target)·R;
//   - otherwise the target is rotated into the reference orientation and the
//     rotation pivots on the reference origin o: T(o)·R·T(R·target - o).
//
// An invalid request is rejected before anything is mutated.
func (s *Scene) MoveObject(body *actor.RigidBody, req MoveRequest) error {
	if err := s.checkMove(body, req); err != nil {
		s.logger.Warn("move rejected", zap.Error(err))
		return err
	}

	axisOrigin := s.referenceOrigin(req.Reference)

	s.applyMovement(body, movement.Reverse(body.LastMovement))

	rotation, err := movement.Rotation(req.Angle, req.Axis)
	if err != nil {
		return err
	}

	var next mgl64.Mat4
	if s.isReference(body, req.Reference) {
		next = movement.Translation(req.Target).Mul4(rotation)
	} else {
		target := movement.RotationBlock(rotation).Mul3x1(req.Target)
		next = movement.Translation(axisOrigin).
			Mul4(rotation).
			Mul4(movement.Translation(target.Sub(axisOrigin)))
	}

	s.applyMovement(body, next)

	s.logger.Debug("body moved",
		zap.String("body", body.Name),
		zap.Stringer("reference", req.Reference),
		zap.Stringer("axis", req.Axis),
		zap.Float64("angle", req.Angle),
		zap.Float64s("target", req.Target[:]),
		zap.Float64s("position", body.Position[:]),
	)

	s.Events.emit(MoveEvent{Body: body, Request: req, Movement: next})
	s.Events.flush()

	return nil
}

// UpdateCameraParams replaces the camera intrinsics.
// Value ranges are the caller's concern, only non-finite values are rejected.
func (s *Scene) UpdateCameraParams(in camera.Intrinsics) error {
	if err := in.Check(); err != nil {
		s.logger.Warn("intrinsics rejected", zap.Error(err))
		return err
	}

	previous := s.Intrinsics()
	s.intrinsics[s.Camera.Id] = in

	s.logger.Debug("intrinsics updated",
		zap.Float64("f", in.F),
		zap.Float64("sx", in.Sx),
		zap.Float64("sy", in.Sy),
		zap.Float64("so", in.So),
		zap.Float64("ox", in.Ox),
		zap.Float64("oy", in.Oy),
	)

	s.Events.emit(IntrinsicsEvent{Camera: s.Camera, Previous: previous, Intrinsics: in})
	s.Events.flush()

	return nil
}

// Intrinsics returns the current camera intrinsics
func (s *Scene) Intrinsics() camera.Intrinsics {
	if in, ok := s.intrinsics[s.Camera.Id]; ok {
		return in
	}

	return camera.DefaultIntrinsics()
}

// Bodies returns the world axis, the actor and the camera, in drawing order
func (s *Scene) Bodies() []*actor.RigidBody {
	return []*actor.RigidBody{s.WorldAxis, s.Actor, s.Camera}
}

// World returns the primitives of the world view: the axis arrows of every body
// and the mesh polylines of the actor and camera
func (s *Scene) World() render.World {
	var world render.World
	for _, body := range s.Bodies() {
		world.Quivers = append(world.Quivers, render.FrameQuivers(body.Frame)...)
		if body.Mesh != nil {
			world.Polylines = append(world.Polylines, render.Polyline3D{
				Points: body.Mesh.Vertices(),
				Color:  render.ColorMesh,
			})
		}
	}

	return world
}

// Project projects the actor mesh through the camera pose and intrinsics
func (s *Scene) Project() camera.Projection {
	points := s.Actor.Mesh.Points
	projector := camera.NewProjector(s.Camera.Frame, s.Intrinsics())

	projection := camera.Projection{Points: make([]camera.ImagePoint, len(points))}
	task(s.workers(), len(points), func(start, end int) {
		projector.ProjectRange(points, projection.Points, start, end)
	})

	return projection
}

// CameraView returns the primitives of the camera view
func (s *Scene) CameraView() render.CameraView {
	return render.CameraView{
		Segments: s.Project().Segments(),
		Viewport: render.DefaultViewport(),
		InvertY:  true,
		Color:    render.ColorMesh,
	}
}

func (s *Scene) checkMove(body *actor.RigidBody, req MoveRequest) error {
	if body == nil || (body != s.Actor && body != s.Camera) {
		return ErrUnknownBody
	}
	if !req.Axis.Valid() {
		return fmt.Errorf("%w: %v", movement.ErrInvalidAxis, req.Axis)
	}
	switch req.Reference {
	case ReferenceWorld, ReferenceActor, ReferenceCamera:
	default:
		return fmt.Errorf("%w: %v", ErrUnknownReference, req.Reference)
	}

	values := append([]float64{req.Angle}, req.Target[:]...)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %v", ErrNonFinite, v)
		}
	}

	return nil
}

// referenceOrigin returns the world position of the reference frame origin
func (s *Scene) referenceOrigin(reference ReferenceFrame) mgl64.Vec3 {
	switch reference {
	case ReferenceActor:
		return s.Actor.Frame.Origin
	case ReferenceCamera:
		return s.Camera.Frame.Origin
	default:
		return mgl64.Vec3{}
	}
}

// isReference reports whether body is the body that names the reference frame
func (s *Scene) isReference(body *actor.RigidBody, reference ReferenceFrame) bool {
	switch reference {
	case ReferenceActor:
		return body == s.Actor
	case ReferenceCamera:
		return body == s.Camera
	default:
		return false
	}
}

func (s *Scene) applyMovement(body *actor.RigidBody, m mgl64.Mat4) {
	body.ApplyMovementWith(m, func(mesh *actor.Mesh, m mgl64.Mat4) {
		task(s.workers(), mesh.Len(), func(start, end int) {
			mesh.TransformRange(m, start, end)
		})
	})
}

func (s *Scene) workers() int {
	return max(DEFAULT_WORKERS, s.Workers)
}
