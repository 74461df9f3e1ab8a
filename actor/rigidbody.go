package actor

import (
	"github.com/akmonengine/pinhole/movement"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// BodyKind represents the role of a rigid body in the scene
type BodyKind int

const (
	// BodyKindActor bodies carry the loaded mesh that the camera looks at
	BodyKindActor BodyKind = iota

	// BodyKindCamera bodies carry the camera housing and define the projection pose
	BodyKindCamera

	// BodyKindAxis bodies are bare frames without a mesh (e.g. the world axis)
	BodyKindAxis
)

func (k BodyKind) String() string {
	switch k {
	case BodyKindActor:
		return "actor"
	case BodyKindCamera:
		return "camera"
	case BodyKindAxis:
		return "axis"
	default:
		return "unknown"
	}
}

// RigidBody represents an object placed in the scene.
//
// Every movement applied to a body is absolute: it maps the body from its
// neutral pose to the new pose. LastMovement keeps the matrix applied last so
// that it can be undone before the next one.
type RigidBody struct {
	Id   uuid.UUID
	Name string
	Kind BodyKind

	// Spatial properties
	Frame    Frame
	Position mgl64.Vec3

	LastMovement mgl64.Mat4

	// Drawable shape, nil for bare axis bodies
	Mesh *Mesh
}

// NewRigidBody creates a body at origin with an identity basis and no movement applied yet
func NewRigidBody(name string, kind BodyKind, origin mgl64.Vec3, mesh *Mesh) *RigidBody {
	return &RigidBody{
		Id:           uuid.New(),
		Name:         name,
		Kind:         kind,
		Frame:        NewFrame(origin),
		Position:     origin,
		LastMovement: mgl64.Ident4(),
		Mesh:         mesh,
	}
}

// ApplyMovement moves the body, and its mesh, by m.
// The basis is replaced by the rotation block of m, not composed with the
// previous one.
func (rb *RigidBody) ApplyMovement(m mgl64.Mat4) {
	rb.applyFrame(m)

	if rb.Mesh != nil {
		rb.Mesh.Transform(m)
	}
}

// ApplyMovementWith is ApplyMovement with the mesh update delegated to
// transformMesh, which must transform every column before returning
func (rb *RigidBody) ApplyMovementWith(m mgl64.Mat4, transformMesh func(mesh *Mesh, m mgl64.Mat4)) {
	rb.applyFrame(m)

	if rb.Mesh != nil {
		transformMesh(rb.Mesh, m)
	}
}

func (rb *RigidBody) applyFrame(m mgl64.Mat4) {
	rb.Position = movement.Apply(m, rb.Position)

	rb.Frame.Origin = rb.Position
	rb.Frame.Basis = movement.RotationBlock(m)

	rb.LastMovement = m
}
