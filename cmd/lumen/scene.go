package main

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/models"
	"github.com/taigrr/lumen/pkg/pixel"
	"github.com/taigrr/lumen/pkg/render"
)

// setup is everything needed to trace a scene: what to draw, where from,
// and how.
type setup struct {
	name   string
	scene  *models.Scene
	eye    math3d.Vec3
	target math3d.Vec3
	fov    float64 // radians
	width  int
	height int
	tracer *render.Tracer
}

// camera returns a fresh camera for the setup. Each concurrent frame needs
// its own.
func (s *setup) camera() *render.Camera {
	cam := render.NewCamera(s.width, s.height)
	cam.SetFOV(s.fov)
	cam.SetPosition(s.eye)
	cam.LookAt(s.target)
	return cam
}

func degrees(d float64) float64 { return d * math.Pi / 180 }

// loadSetup reads the scene named by --scene and applies the flag
// overrides the user set explicitly.
func loadSetup(cmd *cobra.Command, o *options, logger *log.Logger) (*setup, error) {
	st := &setup{
		name:   "reference scene",
		eye:    math3d.V3(0, 0, 0),
		target: math3d.V3(0, 0, 1),
		fov:    degrees(models.DefaultFOV),
		width:  models.DefaultWidth,
		height: models.DefaultHeight,
	}
	maxDistance := models.DefaultMaxDistance
	compositing := render.CompositeLastHit

	// --fov applies before framing so imported scenes fit the chosen view.
	flags := cmd.Flags()
	if flags.Changed("fov") {
		if o.fov <= 0 || o.fov >= 180 {
			return nil, fmt.Errorf("fov %g out of range (0, 180)", o.fov)
		}
		st.fov = degrees(o.fov)
	}

	switch ext := strings.ToLower(filepath.Ext(o.scene)); {
	case o.scene == "":
		st.scene = models.DefaultScene()

	case ext == ".json":
		cfg, err := models.LoadSceneConfig(o.scene)
		if err != nil {
			return nil, err
		}
		if st.scene, err = cfg.Scene(); err != nil {
			return nil, fmt.Errorf("build scene: %w", err)
		}
		if compositing, err = render.ParseCompositing(cfg.Compositing); err != nil {
			return nil, err
		}
		st.name = filepath.Base(o.scene)
		st.eye, st.target = cfg.Camera.Origin(), cfg.Camera.Target()
		if !flags.Changed("fov") {
			st.fov = degrees(cfg.Camera.FOV)
		}
		st.width, st.height = cfg.Camera.Width, cfg.Camera.Height
		maxDistance = *cfg.MaxDistance

	case ext == ".glb" || ext == ".gltf":
		scene, err := models.LoadGLTFScene(o.scene)
		if err != nil {
			return nil, err
		}
		if len(scene.Lights) == 0 {
			logger.Warn("scene has no lights, using the reference lights", "scene", o.scene)
			scene.Lights = models.DefaultScene().Lights
		}
		st.scene = scene
		st.name = filepath.Base(o.scene)
		var reach float64
		st.eye, st.target, reach = frame(scene, st.fov)
		maxDistance = max(maxDistance, reach)

	default:
		return nil, fmt.Errorf("unsupported scene format %q (use .json, .glb or .gltf)", ext)
	}

	if flags.Changed("width") {
		st.width = o.width
	}
	if flags.Changed("height") {
		st.height = o.height
	}
	if st.width < 1 || st.height < 1 {
		return nil, fmt.Errorf("invalid image size %dx%d", st.width, st.height)
	}
	if flags.Changed("max-distance") {
		maxDistance = o.maxDistance
	}
	if flags.Changed("bg") {
		c, err := pixel.Parse(o.bg)
		if err != nil {
			return nil, fmt.Errorf("parse --bg: %w", err)
		}
		st.scene.Background = c
	}
	if o.nearest {
		compositing = render.CompositeNearest
	}
	if err := st.scene.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}

	st.tracer = render.NewTracer(
		render.WithMaxDistance(maxDistance),
		render.WithCompositing(compositing),
		render.WithCulling(!o.noCull),
	)
	logger.Debug("scene loaded",
		"scene", st.name,
		"surfaces", len(st.scene.Surfaces),
		"lights", len(st.scene.Lights),
		"size", fmt.Sprintf("%dx%d", st.width, st.height),
		"maxDistance", maxDistance,
		"compositing", compositing,
	)
	return st, nil
}

// frame places a camera on the -Z side of an imported scene so every
// sphere fits the vertical field of view. reach is how far a ray must go
// to pass the far side of the scene.
func frame(scene *models.Scene, fov float64) (eye, target math3d.Vec3, reach float64) {
	target = scene.Centroid()
	extent := 0.0
	for _, s := range scene.Surfaces {
		sp, ok := s.(*models.Sphere)
		if !ok {
			continue
		}
		extent = max(extent, target.Distance(sp.Position())+sp.Radius())
	}
	if extent == 0 {
		extent = 1
	}
	dist := extent/math.Tan(fov/2) + extent
	eye = target.Sub(math3d.V3(0, 0, dist))
	return eye, target, dist + extent
}
