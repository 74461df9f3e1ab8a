// Package config reads the scene description of the pinhole CLI and translates
// its control values (axis and reference names, ranges) into engine requests.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/akmonengine/pinhole"
	"github.com/akmonengine/pinhole/camera"
	"github.com/akmonengine/pinhole/movement"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("config: invalid")

// Config holds the scene setup, the scripted interactions and the outputs.
type Config struct {
	Mesh MeshSource `json:"mesh" yaml:"mesh"`

	// Initial placement, applied as the first move of each body
	Actor  *Move `json:"actor,omitempty" yaml:"actor,omitempty"`
	Camera *Move `json:"camera,omitempty" yaml:"camera,omitempty"`

	Intrinsics *camera.Intrinsics `json:"intrinsics,omitempty" yaml:"intrinsics,omitempty"`

	Steps []Step `json:"steps" yaml:"steps"`

	Output Output `json:"output" yaml:"output"`

	Workers  int    `json:"workers" yaml:"workers"`
	LogLevel string `json:"log_level" yaml:"log_level"`

	// Directory of the loaded file, relative paths are resolved against it
	BaseDir string `json:"-" yaml:"-"`
}

// MeshSource selects the actor mesh: a file, or a procedural primitive
type MeshSource struct {
	Path      string     `json:"path,omitempty" yaml:"path,omitempty"`
	Primitive string     `json:"primitive,omitempty" yaml:"primitive,omitempty"`
	Size      [3]float64 `json:"size,omitempty" yaml:"size,omitempty"`
	Cells     int        `json:"cells,omitempty" yaml:"cells,omitempty"`

	// Center translates the loaded points so that their bounding box is centered on the origin
	Center bool `json:"center,omitempty" yaml:"center,omitempty"`
}

// Move is a move request as written by a user
type Move struct {
	Target    [3]float64 `json:"target" yaml:"target"`
	Angle     float64    `json:"angle" yaml:"angle"`
	Axis      string     `json:"axis" yaml:"axis"`
	Reference string     `json:"reference" yaml:"reference"`
}

// Step is one scripted interaction: a move of Body, or an intrinsics update
type Step struct {
	Body string `json:"body,omitempty" yaml:"body,omitempty"`
	Move `yaml:",inline"`

	Intrinsics *camera.Intrinsics `json:"intrinsics,omitempty" yaml:"intrinsics,omitempty"`
}

// Output names the rendered files, the image format follows the extension
type Output struct {
	Dir    string `json:"dir" yaml:"dir"`
	World  string `json:"world" yaml:"world"`
	Camera string `json:"camera" yaml:"camera"`
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	MeshPath  string
	OutputDir string
	Workers   int
	LogLevel  string
}

// Load reads a YAML config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadYAML(f)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.BaseDir = filepath.Dir(path)

	return cfg, nil
}

// LoadYAML decodes a config, unknown fields are rejected
func LoadYAML(r io.Reader) (Config, error) {
	var cfg Config

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}

	return cfg, nil
}

// Resolve fills in empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// Resolve relative paths against the config file directory
	if c.Mesh.Path != "" && !filepath.IsAbs(c.Mesh.Path) && c.BaseDir != "" {
		c.Mesh.Path = filepath.Join(c.BaseDir, c.Mesh.Path)
	}

	// CLI flags override config file
	if flags.MeshPath != "" {
		c.Mesh = MeshSource{Path: flags.MeshPath, Center: c.Mesh.Center}
	}
	if flags.OutputDir != "" {
		c.Output.Dir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	if c.Output.Dir == "" {
		c.Output.Dir = c.BaseDir
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "."
	}
	if c.Output.World == "" {
		c.Output.World = "world.svg"
	}
	if c.Output.Camera == "" {
		c.Output.Camera = "camera.svg"
	}
	if c.Output.Width <= 0 {
		c.Output.Width = 600
	}
	if c.Output.Height <= 0 {
		c.Output.Height = 600
	}

	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate checks the value ranges of the control surface: strictly positive
// focal length and scales, non-negative skew and offsets, angles in [0, 360],
// and known axis, reference and body names.
func (c *Config) Validate() error {
	hasPath, hasPrimitive := c.Mesh.Path != "", c.Mesh.Primitive != ""
	if hasPath == hasPrimitive {
		return fmt.Errorf("%w: mesh needs exactly one of path or primitive", ErrInvalidConfig)
	}

	if c.Intrinsics != nil {
		if err := ValidateIntrinsics(*c.Intrinsics); err != nil {
			return err
		}
	}
	if c.Actor != nil {
		if _, err := c.Actor.Request(); err != nil {
			return fmt.Errorf("actor: %w", err)
		}
	}
	if c.Camera != nil {
		if _, err := c.Camera.Request(); err != nil {
			return fmt.Errorf("camera: %w", err)
		}
	}

	for i, step := range c.Steps {
		if err := step.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}

	return nil
}

// ValidateIntrinsics enforces the control ranges of the camera parameters
func ValidateIntrinsics(in camera.Intrinsics) error {
	if err := in.Check(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if in.F <= 0 || in.Sx <= 0 || in.Sy <= 0 {
		return fmt.Errorf("%w: f, sx and sy must be positive, got %+v", ErrInvalidConfig, in)
	}
	if in.So < 0 || in.Ox < 0 || in.Oy < 0 {
		return fmt.Errorf("%w: so, ox and oy must not be negative, got %+v", ErrInvalidConfig, in)
	}

	return nil
}

// Request translates the move into an engine request, rejecting unknown names
// and angles outside [0, 360]
func (m Move) Request() (pinhole.MoveRequest, error) {
	axis, err := movement.ParseAxis(m.Axis)
	if err != nil {
		return pinhole.MoveRequest{}, err
	}
	reference, err := pinhole.ParseReference(m.Reference)
	if err != nil {
		return pinhole.MoveRequest{}, err
	}
	if m.Angle < 0 || m.Angle > 360 {
		return pinhole.MoveRequest{}, fmt.Errorf("%w: angle %v out of [0, 360]", ErrInvalidConfig, m.Angle)
	}

	return pinhole.MoveRequest{
		Target:    mgl64.Vec3(m.Target),
		Angle:     m.Angle,
		Axis:      axis,
		Reference: reference,
	}, nil
}

// Apply runs the step against scene
func (s Step) Apply(scene *pinhole.Scene) error {
	if s.Intrinsics != nil {
		if err := ValidateIntrinsics(*s.Intrinsics); err != nil {
			return err
		}
		return scene.UpdateCameraParams(*s.Intrinsics)
	}

	req, err := s.Request()
	if err != nil {
		return err
	}

	switch strings.ToLower(s.Body) {
	case "actor":
		return scene.MoveActor(req)
	case "camera":
		return scene.MoveCamera(req)
	default:
		return fmt.Errorf("%w: %q", pinhole.ErrUnknownBody, s.Body)
	}
}

func (s Step) validate() error {
	if s.Intrinsics != nil {
		if s.Body != "" {
			return fmt.Errorf("%w: a step either moves a body or updates intrinsics", ErrInvalidConfig)
		}
		return ValidateIntrinsics(*s.Intrinsics)
	}

	switch strings.ToLower(s.Body) {
	case "actor", "camera":
	default:
		return fmt.Errorf("%w: %q", pinhole.ErrUnknownBody, s.Body)
	}

	_, err := s.Request()
	return err
}
