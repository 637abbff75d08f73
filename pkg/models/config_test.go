package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/pixel"
)

const sampleScene = `{
  "camera": {"position": [0, 1, -2], "lookAt": [0, 0, 3], "fov": 45, "width": 320, "height": 200},
  "background": "#102030",
  "maxDistance": 50,
  "compositing": "nearest",
  "spheres": [
    {"center": [0, 0, 3], "radius": 1, "material": {"color": "red", "ambient": 0.2, "diffuse": 0.7, "shininess": 20}}
  ],
  "planes": [
    {"point": [0, -1, 0], "normal": [0, 1, 0]}
  ],
  "lights": [
    {"position": [2, 2, 0], "intensity": 3, "color": "0,255,255"}
  ]
}`

func TestParseSceneConfig(t *testing.T) {
	cfg, err := ParseSceneConfig([]byte(sampleScene))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Camera.Width != 320 || cfg.Camera.Height != 200 || cfg.Camera.FOV != 45 {
		t.Errorf("camera = %+v", cfg.Camera)
	}
	if cfg.Camera.Target() != math3d.V3(0, 0, 3) {
		t.Errorf("target = %v", cfg.Camera.Target())
	}
	if cfg.Compositing != CompositeNearestName || *cfg.MaxDistance != 50 {
		t.Errorf("compositing=%q maxDistance=%g", cfg.Compositing, *cfg.MaxDistance)
	}

	scene, err := cfg.Scene()
	if err != nil {
		t.Fatal(err)
	}
	if scene.Background != pixel.RGB(0x10, 0x20, 0x30) {
		t.Errorf("background = %v", scene.Background)
	}
	if len(scene.Surfaces) != 2 {
		t.Fatalf("surfaces = %d", len(scene.Surfaces))
	}
	if _, ok := scene.Surfaces[1].(*Plane); !ok {
		t.Errorf("surface 1 is %T, want *Plane", scene.Surfaces[1])
	}
	mat := scene.Surfaces[0].Material()
	if mat.Color() != pixel.Red || mat.Diffuse() != 0.7 || mat.Shininess() != 20 {
		t.Errorf("sphere material = %+v", mat)
	}
	if pm := scene.Surfaces[1].Material(); pm.Diffuse() != 1 || pm.Color() != pixel.White {
		t.Errorf("plane material defaults = %+v", pm)
	}
	if scene.Lights[0].Color != pixel.Cyan || scene.Lights[0].Intensity != 3 {
		t.Errorf("light = %+v", scene.Lights[0])
	}
}

func TestParseSceneConfigDefaults(t *testing.T) {
	cfg, err := ParseSceneConfig([]byte(`{"lights":[{"position":[0,0,0],"intensity":1}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Camera.Width != DefaultWidth || cfg.Camera.Height != DefaultHeight {
		t.Errorf("size = %dx%d", cfg.Camera.Width, cfg.Camera.Height)
	}
	if cfg.Camera.FOV != DefaultFOV || *cfg.MaxDistance != DefaultMaxDistance {
		t.Errorf("fov=%g maxDistance=%g", cfg.Camera.FOV, *cfg.MaxDistance)
	}
	if cfg.Compositing != CompositeLastHitName {
		t.Errorf("compositing = %q", cfg.Compositing)
	}
	if cfg.Camera.Target() != math3d.V3(0, 0, 1) {
		t.Errorf("default target = %v", cfg.Camera.Target())
	}
}

func TestParseSceneConfigMaxDistance(t *testing.T) {
	tests := []struct {
		name string
		json string
		want float64
	}{
		{"omitted", `{"lights":[{"intensity":1}]}`, DefaultMaxDistance},
		{"unbounded", `{"maxDistance":0,"lights":[{"intensity":1}]}`, 0},
		{"explicit", `{"maxDistance":25,"lights":[{"intensity":1}]}`, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseSceneConfig([]byte(tt.json))
			if err != nil {
				t.Fatal(err)
			}
			if *cfg.MaxDistance != tt.want {
				t.Errorf("maxDistance = %g, want %g", *cfg.MaxDistance, tt.want)
			}
		})
	}
}

func TestSceneConfigSurfaceOrder(t *testing.T) {
	cfg, err := ParseSceneConfig([]byte(`{
  "spheres": [{"center": [0, 0, 9], "radius": 1}],
  "surfaces": [
    {"plane": {"point": [0, -1, 0], "normal": [0, 1, 0]}},
    {"sphere": {"center": [0, 0, 3], "radius": 1}}
  ],
  "lights": [{"intensity": 1}]
}`))
	if err != nil {
		t.Fatal(err)
	}
	scene, err := cfg.Scene()
	if err != nil {
		t.Fatal(err)
	}
	if len(scene.Surfaces) != 3 {
		t.Fatalf("surfaces = %d, want 3", len(scene.Surfaces))
	}
	if _, ok := scene.Surfaces[1].(*Plane); !ok {
		t.Errorf("surface 1 is %T, want *Plane", scene.Surfaces[1])
	}
	last, ok := scene.Surfaces[2].(*Sphere)
	if !ok || last.Position() != math3d.V3(0, 0, 3) {
		t.Errorf("surface 2 = %v, want the sphere listed after the plane", scene.Surfaces[2])
	}
}

func TestParseSceneConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"malformed", `{`},
		{"no lights", `{"spheres":[]}`},
		{"bad compositing", `{"compositing":"depth","lights":[{"intensity":1}]}`},
		{"straight fov", `{"camera":{"fov":180},"lights":[{"intensity":1}]}`},
		{"wide fov", `{"camera":{"fov":270},"lights":[{"intensity":1}]}`},
		{"negative fov", `{"camera":{"fov":-30},"lights":[{"intensity":1}]}`},
		{"negative max distance", `{"maxDistance":-1,"lights":[{"intensity":1}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSceneConfig([]byte(tt.json)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSceneConfigBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"zero radius", `{"spheres":[{"center":[0,0,0],"radius":0}],"lights":[{"intensity":1}]}`},
		{"zero normal", `{"planes":[{"point":[0,0,0],"normal":[0,0,0]}],"lights":[{"intensity":1}]}`},
		{"bad color", `{"background":"nope","lights":[{"intensity":1}]}`},
		{"dark light", `{"lights":[{"intensity":0}]}`},
		{"empty surface", `{"surfaces":[{}],"lights":[{"intensity":1}]}`},
		{"double surface", `{"surfaces":[{"sphere":{"radius":1},"plane":{"normal":[0,1,0]}}],"lights":[{"intensity":1}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseSceneConfig([]byte(tt.json))
			if err != nil {
				t.Fatal(err)
			}
			if _, err := cfg.Scene(); err == nil {
				t.Error("expected build error")
			}
		})
	}
}

func TestLoadSceneConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := os.WriteFile(path, []byte(sampleScene), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSceneConfig(path); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSceneConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
