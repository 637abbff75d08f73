package models

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/pixel"
)

// Defaults applied to scene files that leave a field out.
const (
	DefaultWidth       = 600
	DefaultHeight      = 600
	DefaultFOV         = 60.0
	DefaultMaxDistance = 10.0
)

// Compositing names accepted in scene files.
const (
	CompositeLastHitName = "last-hit"
	CompositeNearestName = "nearest"
)

// SceneConfig is the JSON scene file format.
//
// Surface order matters under last-hit compositing. The scene lists
// Spheres, then Planes, then Surfaces, each in file order; use Surfaces
// alone to interleave kinds. MaxDistance 0 means unbounded rays; leaving it
// out uses DefaultMaxDistance.
type SceneConfig struct {
	Camera      CameraConfig    `json:"camera"`
	Background  string          `json:"background,omitempty"`
	MaxDistance *float64        `json:"maxDistance,omitempty"`
	Compositing string          `json:"compositing,omitempty"`
	Spheres     []SphereConfig  `json:"spheres,omitempty"`
	Planes      []PlaneConfig   `json:"planes,omitempty"`
	Surfaces    []SurfaceConfig `json:"surfaces,omitempty"`
	Lights      []LightConfig   `json:"lights"`
}

// SurfaceConfig is one entry of the ordered surface list. Exactly one of
// Sphere and Plane is set.
type SurfaceConfig struct {
	Sphere *SphereConfig `json:"sphere,omitempty"`
	Plane  *PlaneConfig  `json:"plane,omitempty"`
}

// CameraConfig places the camera. FOV is the vertical field of view in
// degrees, within (0, 180); 0 uses DefaultFOV.
type CameraConfig struct {
	Position [3]float64  `json:"position"`
	LookAt   *[3]float64 `json:"lookAt,omitempty"`
	FOV      float64     `json:"fov,omitempty"`
	Width    int         `json:"width,omitempty"`
	Height   int         `json:"height,omitempty"`
}

// MaterialConfig is a material in a scene file. Diffuse defaults to 1.
type MaterialConfig struct {
	Color     string   `json:"color,omitempty"`
	Ambient   float64  `json:"ambient,omitempty"`
	Diffuse   *float64 `json:"diffuse,omitempty"`
	Shininess float64  `json:"shininess,omitempty"`
}

// SphereConfig is a sphere in a scene file.
type SphereConfig struct {
	Center   [3]float64     `json:"center"`
	Radius   float64        `json:"radius"`
	Material MaterialConfig `json:"material"`
}

// PlaneConfig is a plane in a scene file.
type PlaneConfig struct {
	Point    [3]float64     `json:"point"`
	Normal   [3]float64     `json:"normal"`
	Material MaterialConfig `json:"material"`
}

// LightConfig is a point light in a scene file. Color defaults to white.
type LightConfig struct {
	Position  [3]float64 `json:"position"`
	Intensity float64    `json:"intensity"`
	Color     string     `json:"color,omitempty"`
}

func vec(v [3]float64) math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}

func parseColorOr(s string, def pixel.Color) (pixel.Color, error) {
	if s == "" {
		return def, nil
	}
	return pixel.Parse(s)
}

// LoadSceneConfig reads and validates a JSON scene file.
func LoadSceneConfig(path string) (*SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene config: %w", err)
	}
	cfg, err := ParseSceneConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseSceneConfig decodes a JSON scene and fills in defaults.
func ParseSceneConfig(data []byte) (*SceneConfig, error) {
	var cfg SceneConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode scene config: %w", err)
	}
	switch fov := cfg.Camera.FOV; {
	case fov == 0:
		cfg.Camera.FOV = DefaultFOV
	case fov < 0 || fov >= 180:
		return nil, fmt.Errorf("camera fov %g out of range (0, 180)", fov)
	}
	if cfg.Camera.Width <= 0 {
		cfg.Camera.Width = DefaultWidth
	}
	if cfg.Camera.Height <= 0 {
		cfg.Camera.Height = DefaultHeight
	}
	switch {
	case cfg.MaxDistance == nil:
		d := DefaultMaxDistance
		cfg.MaxDistance = &d
	case *cfg.MaxDistance < 0:
		return nil, fmt.Errorf("maxDistance must be >= 0, got %g", *cfg.MaxDistance)
	}
	switch cfg.Compositing {
	case "":
		cfg.Compositing = CompositeLastHitName
	case CompositeLastHitName, CompositeNearestName:
	default:
		return nil, fmt.Errorf("unknown compositing %q (want %q or %q)",
			cfg.Compositing, CompositeLastHitName, CompositeNearestName)
	}
	if len(cfg.Lights) == 0 {
		return nil, fmt.Errorf("scene config has no lights")
	}
	return &cfg, nil
}

// Build validates and constructs the material.
func (mc MaterialConfig) Build() (Material, error) {
	c, err := parseColorOr(mc.Color, pixel.White)
	if err != nil {
		return Material{}, err
	}
	diffuse := 1.0
	if mc.Diffuse != nil {
		diffuse = *mc.Diffuse
	}
	return NewMaterial(c, mc.Ambient, diffuse, mc.Shininess), nil
}

// Build validates and constructs the sphere.
func (sc SphereConfig) Build() (*Sphere, error) {
	if sc.Radius <= 0 {
		return nil, fmt.Errorf("radius must be > 0, got %g", sc.Radius)
	}
	mat, err := sc.Material.Build()
	if err != nil {
		return nil, err
	}
	return NewSphere(vec(sc.Center), sc.Radius, mat), nil
}

// Build validates and constructs the plane.
func (pc PlaneConfig) Build() (*Plane, error) {
	n := vec(pc.Normal)
	if n.LenSq() == 0 {
		return nil, fmt.Errorf("plane normal must be non-zero")
	}
	mat, err := pc.Material.Build()
	if err != nil {
		return nil, err
	}
	return NewPlane(vec(pc.Point), n, mat), nil
}

// Build validates and constructs the light.
func (lc LightConfig) Build() (Light, error) {
	if lc.Intensity <= 0 {
		return Light{}, fmt.Errorf("intensity must be > 0, got %g", lc.Intensity)
	}
	c, err := parseColorOr(lc.Color, pixel.White)
	if err != nil {
		return Light{}, err
	}
	return NewLight(vec(lc.Position), lc.Intensity, c), nil
}

// Build validates and constructs the surface.
func (sc SurfaceConfig) Build() (Surface, error) {
	switch {
	case sc.Sphere != nil && sc.Plane != nil:
		return nil, fmt.Errorf("surface sets both sphere and plane")
	case sc.Sphere != nil:
		return sc.Sphere.Build()
	case sc.Plane != nil:
		return sc.Plane.Build()
	}
	return nil, fmt.Errorf("surface sets neither sphere nor plane")
}

// Scene builds the scene. Spheres come first, then planes, then the
// ordered surface list.
func (c *SceneConfig) Scene() (*Scene, error) {
	bg, err := parseColorOr(c.Background, pixel.Black)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	opts := []SceneOption{WithBackground(bg)}
	for i, sc := range c.Spheres {
		s, err := sc.Build()
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		opts = append(opts, WithSurfaces(s))
	}
	for i, pc := range c.Planes {
		p, err := pc.Build()
		if err != nil {
			return nil, fmt.Errorf("plane %d: %w", i, err)
		}
		opts = append(opts, WithSurfaces(p))
	}
	for i, sc := range c.Surfaces {
		s, err := sc.Build()
		if err != nil {
			return nil, fmt.Errorf("surface %d: %w", i, err)
		}
		opts = append(opts, WithSurfaces(s))
	}
	for i, lc := range c.Lights {
		l, err := lc.Build()
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		opts = append(opts, WithLights(l))
	}
	return NewScene(opts...), nil
}

// Target returns where the camera looks: LookAt if set, else one unit
// down +Z from the camera.
func (cc CameraConfig) Target() math3d.Vec3 {
	if cc.LookAt != nil {
		return vec(*cc.LookAt)
	}
	return vec(cc.Position).Add(math3d.V3(0, 0, 1))
}

// Origin returns the camera position.
func (cc CameraConfig) Origin() math3d.Vec3 {
	return vec(cc.Position)
}
