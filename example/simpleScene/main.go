package main

import (
	"fmt"
	"os"

	"github.com/akmonengine/pinhole"
	"github.com/akmonengine/pinhole/actor"
	"github.com/akmonengine/pinhole/camera"
	"github.com/akmonengine/pinhole/mesh"
	"github.com/akmonengine/pinhole/movement"
	"github.com/akmonengine/pinhole/render"
	"github.com/go-gl/mathgl/mgl64"
)

// SceneDebugger instruments the scene events
type SceneDebugger interface {
	DebugMove(event pinhole.MoveEvent)
	DebugIntrinsics(event pinhole.IntrinsicsEvent)
}

// SimpleDebugger prints the events
type SimpleDebugger struct{}

func (d *SimpleDebugger) DebugMove(event pinhole.MoveEvent) {
	fmt.Printf("🔁 Move Debug:\n")
	fmt.Printf("   Body: %s\n", event.Body.Name)
	fmt.Printf("   Request: target=%v angle=%.1f axis=%v reference=%v\n",
		event.Request.Target, event.Request.Angle, event.Request.Axis, event.Request.Reference)
	fmt.Printf("   Position: %v\n", event.Body.Position)
	fmt.Printf("   Rigid: %v\n", movement.IsRigid(event.Movement, 1e-9))
}

func (d *SimpleDebugger) DebugIntrinsics(event pinhole.IntrinsicsEvent) {
	fmt.Printf("📷 Intrinsics Debug:\n")
	fmt.Printf("   Previous: %+v\n", event.Previous)
	fmt.Printf("   Current:  %+v\n", event.Intrinsics)
}

// SetupScene creates a scene around a 4x4x4 box, with the camera 20 units back
func SetupScene(debugger SceneDebugger) (*pinhole.Scene, error) {
	points, err := mesh.Primitive("box", mgl64.Vec3{4, 4, 4}, 8)
	if err != nil {
		return nil, err
	}
	boxMesh, err := actor.NewMesh(points)
	if err != nil {
		return nil, err
	}

	scene, err := pinhole.NewScene(boxMesh, pinhole.WithWorkers(4))
	if err != nil {
		return nil, err
	}

	scene.Events.Subscribe(pinhole.MOVE, func(event pinhole.Event) {
		debugger.DebugMove(event.(pinhole.MoveEvent))
	})
	scene.Events.Subscribe(pinhole.INTRINSICS_UPDATE, func(event pinhole.Event) {
		debugger.DebugIntrinsics(event.(pinhole.IntrinsicsEvent))
	})

	err = scene.MoveCamera(pinhole.MoveRequest{Target: mgl64.Vec3{0, 0, -20}})
	if err != nil {
		return nil, err
	}

	return scene, nil
}

// OrbitCamera turns the camera around the actor, one step of 30° at a time
func OrbitCamera() error {
	fmt.Println("🧪 Camera orbit around the actor")
	fmt.Println("================================")

	scene, err := SetupScene(&SimpleDebugger{})
	if err != nil {
		return err
	}

	fmt.Printf("Initial setup:\n")
	fmt.Printf("  Actor: position %v, %d points\n", scene.Actor.Position, scene.Actor.Mesh.Len())
	fmt.Printf("  Camera: position %v\n", scene.Camera.Position)
	fmt.Println()

	for step := 0; step <= 12; step++ {
		fmt.Printf("--- STEP %d ---\n", step+1)

		err := scene.MoveCamera(pinhole.MoveRequest{
			Target:    mgl64.Vec3{0, 0, -20},
			Angle:     float64(step * 30),
			Axis:      movement.AxisY,
			Reference: pinhole.ReferenceActor,
		})
		if err != nil {
			return err
		}

		projection := scene.Project()
		fmt.Printf("  Visible points: %d/%d\n", len(projection.Visible()), len(projection.Points))
		fmt.Printf("  Segments: %d\n", len(projection.Segments()))
		fmt.Println()
	}

	// Zoom in, shifting the principal point
	if err := scene.UpdateCameraParams(camera.Intrinsics{F: 2, Sx: 1, Sy: 1, Ox: 1, Oy: 1}); err != nil {
		return err
	}

	f, err := os.Create("camera.svg")
	if err != nil {
		return err
	}
	defer f.Close()
	if err := render.NewSVG(600, 600).WriteCameraView(f, scene.CameraView()); err != nil {
		return err
	}

	fmt.Println("Done, camera view written to camera.svg")
	return nil
}

func main() {
	if err := OrbitCamera(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
