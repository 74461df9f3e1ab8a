package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/akmonengine/pinhole"
	"github.com/akmonengine/pinhole/actor"
	"github.com/akmonengine/pinhole/camera"
	"github.com/akmonengine/pinhole/movement"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sceneYAML = `
mesh:
  path: models/bunny.stl
  center: true
actor:
  target: [0, 0, 0]
camera:
  target: [0, 0, -20]
  reference: world
intrinsics: {f: 2, sx: 1, sy: 1, so: 0, ox: 0.5, oy: 0.5}
steps:
  - body: actor
    target: [1, 2, 3]
    angle: 90
    axis: x
    reference: actor
  - intrinsics: {f: 1, sx: 1, sy: 1, so: 0, ox: 0, oy: 0}
  - body: camera
    target: [0, 0, -15]
    angle: 45
    axis: y
    reference: actor
output:
  world: world.png
workers: 2
log_level: debug
`

func TestLoadYAML(t *testing.T) {
	cfg, err := LoadYAML(strings.NewReader(sceneYAML))
	require.NoError(t, err)

	assert.Equal(t, "models/bunny.stl", cfg.Mesh.Path)
	assert.True(t, cfg.Mesh.Center)
	require.NotNil(t, cfg.Camera)
	assert.Equal(t, [3]float64{0, 0, -20}, cfg.Camera.Target)
	require.NotNil(t, cfg.Intrinsics)
	assert.Equal(t, camera.Intrinsics{F: 2, Sx: 1, Sy: 1, Ox: 0.5, Oy: 0.5}, *cfg.Intrinsics)

	require.Len(t, cfg.Steps, 3)
	assert.Equal(t, "actor", cfg.Steps[0].Body)
	assert.Equal(t, 90.0, cfg.Steps[0].Angle)
	assert.Equal(t, "x", cfg.Steps[0].Axis)
	assert.NotNil(t, cfg.Steps[1].Intrinsics)
	assert.Equal(t, "world.png", cfg.Output.World)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "debug", cfg.LogLevel)

	assert.NoError(t, cfg.Validate())
}

func TestLoadYAML_UnknownField(t *testing.T) {
	_, err := LoadYAML(strings.NewReader("mesh:\n  file: a.stl\n"))
	assert.Error(t, err)
}

func TestLoadYAML_Empty(t *testing.T) {
	cfg, err := LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sceneYAML), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.BaseDir)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "config: read")
}

func TestResolve(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := Config{BaseDir: "/scenes", Mesh: MeshSource{Path: "bunny.stl"}}
		cfg.Resolve(Flags{})

		assert.Equal(t, filepath.Join("/scenes", "bunny.stl"), cfg.Mesh.Path)
		assert.Equal(t, "/scenes", cfg.Output.Dir)
		assert.Equal(t, "world.svg", cfg.Output.World)
		assert.Equal(t, "camera.svg", cfg.Output.Camera)
		assert.Equal(t, 600, cfg.Output.Width)
		assert.Equal(t, runtime.NumCPU(), cfg.Workers)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("flags override", func(t *testing.T) {
		cfg := Config{
			BaseDir: "/scenes",
			Mesh:    MeshSource{Primitive: "box", Size: [3]float64{1, 1, 1}, Center: true},
			Workers: 2,
		}
		cfg.Resolve(Flags{MeshPath: "other.stl", OutputDir: "out", Workers: 6, LogLevel: "warn"})

		assert.Equal(t, MeshSource{Path: "other.stl", Center: true}, cfg.Mesh)
		assert.Equal(t, "out", cfg.Output.Dir)
		assert.Equal(t, 6, cfg.Workers)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("absolute paths kept", func(t *testing.T) {
		cfg := Config{BaseDir: "/scenes", Mesh: MeshSource{Path: "/models/a.stl"}}
		cfg.Resolve(Flags{})

		assert.Equal(t, "/models/a.stl", cfg.Mesh.Path)
	})
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Mesh:  MeshSource{Primitive: "box", Size: [3]float64{2, 2, 2}},
			Steps: []Step{{Body: "actor", Move: Move{Angle: 360, Axis: "z"}}},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		err    error
	}{
		{"valid", func(c *Config) {}, nil},
		{"no mesh", func(c *Config) { c.Mesh = MeshSource{} }, ErrInvalidConfig},
		{"two meshes", func(c *Config) { c.Mesh.Path = "a.stl" }, ErrInvalidConfig},
		{"zero focal", func(c *Config) { c.Intrinsics = &camera.Intrinsics{F: 0, Sx: 1, Sy: 1} }, ErrInvalidConfig},
		{"negative offset", func(c *Config) { c.Intrinsics = &camera.Intrinsics{F: 1, Sx: 1, Sy: 1, Ox: -1} }, ErrInvalidConfig},
		{"bad axis", func(c *Config) { c.Steps[0].Axis = "w" }, movement.ErrInvalidAxis},
		{"bad reference", func(c *Config) { c.Steps[0].Reference = "moon" }, pinhole.ErrUnknownReference},
		{"negative angle", func(c *Config) { c.Steps[0].Angle = -1 }, ErrInvalidConfig},
		{"angle over 360", func(c *Config) { c.Steps[0].Angle = 361 }, ErrInvalidConfig},
		{"unknown body", func(c *Config) { c.Steps[0].Body = "light" }, pinhole.ErrUnknownBody},
		{"bad initial camera", func(c *Config) { c.Camera = &Move{Axis: "q"} }, movement.ErrInvalidAxis},
		{"mixed step", func(c *Config) {
			c.Steps[0].Intrinsics = &camera.Intrinsics{F: 1, Sx: 1, Sy: 1}
		}, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestMove_Request(t *testing.T) {
	req, err := Move{Target: [3]float64{1, 2, 3}, Angle: 30, Axis: "Y", Reference: "camera"}.Request()
	require.NoError(t, err)

	assert.Equal(t, pinhole.MoveRequest{
		Target:    mgl64.Vec3{1, 2, 3},
		Angle:     30,
		Axis:      movement.AxisY,
		Reference: pinhole.ReferenceCamera,
	}, req)

	req, err = Move{}.Request()
	require.NoError(t, err)
	assert.Equal(t, pinhole.MoveRequest{}, req, "empty names select the z axis and the world frame")
}

func TestStep_Apply(t *testing.T) {
	mesh, err := actor.NewMesh([]mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	require.NoError(t, err)
	scene, err := pinhole.NewScene(mesh)
	require.NoError(t, err)

	require.NoError(t, Step{Body: "camera", Move: Move{Target: [3]float64{0, 0, -20}}}.Apply(scene))
	assert.InDelta(t, -20, scene.Camera.Position.Z(), 1e-9)

	require.NoError(t, Step{Body: "Actor", Move: Move{Target: [3]float64{5, 0, 0}, Angle: 90, Reference: "actor"}}.Apply(scene))
	assert.InDelta(t, 5, scene.Actor.Position.X(), 1e-9)

	in := camera.Intrinsics{F: 2, Sx: 1, Sy: 1}
	require.NoError(t, Step{Intrinsics: &in}.Apply(scene))
	assert.Equal(t, in, scene.Intrinsics())

	err = Step{Intrinsics: &camera.Intrinsics{F: -1, Sx: 1, Sy: 1}}.Apply(scene)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, in, scene.Intrinsics())

	err = Step{Body: "light"}.Apply(scene)
	assert.ErrorIs(t, err, pinhole.ErrUnknownBody)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = NewLogger("loud")
	assert.Error(t, err)
}
