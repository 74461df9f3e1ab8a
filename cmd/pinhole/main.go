package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akmonengine/pinhole"
	"github.com/akmonengine/pinhole/actor"
	"github.com/akmonengine/pinhole/config"
	"github.com/akmonengine/pinhole/mesh"
	"github.com/akmonengine/pinhole/render"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to scene.yaml file")
	meshPath := flag.String("mesh", "", "Actor mesh (.stl or .3mf), overrides the config mesh")
	outputDir := flag.String("output", "", "Output directory (default: config directory)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	logLevel := flag.String("log-level", "", "debug, info, warn or error (default: info)")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		MeshPath:  *meshPath,
		OutputDir: *outputDir,
		Workers:   *workers,
		LogLevel:  *logLevel,
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("render failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	start := time.Now()

	points, err := loadMesh(cfg.Mesh)
	if err != nil {
		return err
	}
	actorMesh, err := actor.NewMesh(points)
	if err != nil {
		return err
	}

	opts := []pinhole.Option{
		pinhole.WithLogger(logger),
		pinhole.WithWorkers(cfg.Workers),
	}
	if cfg.Intrinsics != nil {
		opts = append(opts, pinhole.WithIntrinsics(*cfg.Intrinsics))
	}
	scene, err := pinhole.NewScene(actorMesh, opts...)
	if err != nil {
		return err
	}
	logger.Info("scene ready", zap.Int("points", actorMesh.Len()), zap.Int("workers", cfg.Workers))

	// Initial placement
	if cfg.Actor != nil {
		if err := (config.Step{Body: "actor", Move: *cfg.Actor}).Apply(scene); err != nil {
			return fmt.Errorf("actor placement: %w", err)
		}
	}
	if cfg.Camera != nil {
		if err := (config.Step{Body: "camera", Move: *cfg.Camera}).Apply(scene); err != nil {
			return fmt.Errorf("camera placement: %w", err)
		}
	}

	for i, step := range cfg.Steps {
		if err := step.Apply(scene); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return err
	}

	worldPath := filepath.Join(cfg.Output.Dir, cfg.Output.World)
	err = writeView(worldPath,
		func(f *os.File) error { return render.NewSVG(cfg.Output.Width, cfg.Output.Height).WriteWorld(f, scene.World()) },
		func() image.Image { return render.NewRaster(cfg.Output.Width, cfg.Output.Height).World(scene.World()) },
	)
	if err != nil {
		return err
	}

	cameraPath := filepath.Join(cfg.Output.Dir, cfg.Output.Camera)
	err = writeView(cameraPath,
		func(f *os.File) error {
			return render.NewSVG(cfg.Output.Width, cfg.Output.Height).WriteCameraView(f, scene.CameraView())
		},
		func() image.Image {
			return render.NewRaster(cfg.Output.Width, cfg.Output.Height).CameraView(scene.CameraView())
		},
	)
	if err != nil {
		return err
	}

	logger.Info("views written",
		zap.String("world", worldPath),
		zap.String("camera", cameraPath),
		zap.Int("steps", len(cfg.Steps)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return nil
}

func loadMesh(source config.MeshSource) ([]mgl64.Vec3, error) {
	var (
		points []mgl64.Vec3
		err    error
	)
	if source.Path != "" {
		points, err = mesh.Load(source.Path)
	} else {
		points, err = mesh.Primitive(source.Primitive, mgl64.Vec3(source.Size), source.Cells)
	}
	if err != nil {
		return nil, err
	}

	if source.Center {
		mesh.Center(points)
	}

	return points, nil
}

// writeView writes an SVG document or an encoded raster image, by extension of path
func writeView(path string, writeSVG func(f *os.File) error, raster func() image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".svg") {
		err = writeSVG(f)
	} else {
		err = render.Encode(f, path, raster())
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return f.Close()
}
