package session

import (
	"math"
	"slices"
	"testing"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/models"
	"github.com/taigrr/lumen/pkg/pixel"
	"github.com/taigrr/lumen/pkg/render"
)

func newDefault(t *testing.T, w, h int, opts ...Option) *Session {
	t.Helper()
	cam := render.NewCamera(w, h)
	cam.LookAt(math3d.V3(0, 0, 1))
	s, err := New(models.DefaultScene(), cam, render.NewTracer(), math3d.V3(0, 0, 1), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewRejectsNil(t *testing.T) {
	cam := render.NewCamera(4, 4)
	scene := models.DefaultScene()
	tr := render.NewTracer()
	target := math3d.V3(0, 0, 1)

	if _, err := New(nil, cam, tr, target); err == nil {
		t.Error("nil scene accepted")
	}
	if _, err := New(scene, nil, tr, target); err == nil {
		t.Error("nil camera accepted")
	}
	if _, err := New(scene, cam, nil, target); err == nil {
		t.Error("nil tracer accepted")
	}
}

func TestRenderClearsDirty(t *testing.T) {
	s := newDefault(t, 16, 12)
	if !s.Dirty() {
		t.Fatal("new session should need a frame")
	}
	stats, err := s.Render()
	if err != nil {
		t.Fatal(err)
	}
	if s.Dirty() {
		t.Error("still dirty after Render")
	}
	if stats.Rays != 16*12 || s.Stats().Rays != stats.Rays {
		t.Errorf("Rays = %d, Stats().Rays = %d, want %d", stats.Rays, s.Stats().Rays, 16*12)
	}
	if s.Step() {
		t.Error("idle Step asked for a frame")
	}
}

func TestResize(t *testing.T) {
	s := newDefault(t, 16, 12)
	if _, err := s.Render(); err != nil {
		t.Fatal(err)
	}

	s.Resize(16, 12)
	if s.Dirty() {
		t.Error("resize to the same size marked dirty")
	}

	s.Resize(30, 0)
	if !s.Dirty() {
		t.Error("resize did not mark dirty")
	}
	fb := s.Framebuffer()
	if fb.Width != 30 || fb.Height != 1 {
		t.Errorf("framebuffer = %dx%d, want 30x1", fb.Width, fb.Height)
	}
	if s.Camera().Width() != 30 || s.Camera().Height() != 1 {
		t.Errorf("camera = %dx%d, want 30x1", s.Camera().Width(), s.Camera().Height())
	}
	if _, err := s.Render(); err != nil {
		t.Errorf("render after resize: %v", err)
	}
}

func TestSpinOrbitsLights(t *testing.T) {
	s := newDefault(t, 8, 8, WithFPS(30))
	if _, err := s.Render(); err != nil {
		t.Fatal(err)
	}
	before := s.Frame().Lights

	s.Spin(0.1)
	if !s.Step() {
		t.Fatal("Step after Spin did not ask for a frame")
	}
	if s.Angle() <= 0 {
		t.Errorf("Angle = %v, want > 0", s.Angle())
	}
	after := s.Frame().Lights
	if after[0].Position.NearlyEqual(before[0].Position) {
		t.Error("lights did not move")
	}

	for range 600 {
		s.Step()
	}
	if _, err := s.Render(); err != nil {
		t.Fatal(err)
	}
	if s.Step() {
		t.Error("orbit never came to rest")
	}
}

func TestZoom(t *testing.T) {
	s := newDefault(t, 8, 8)

	s.ZoomBy(2)
	for range 600 {
		s.Step()
	}
	if s.Zoom() != 2 {
		t.Fatalf("Zoom = %v, want 2", s.Zoom())
	}
	if _, err := s.Render(); err != nil {
		t.Fatal(err)
	}
	// Eye (0,0,0), target (0,0,1): twice as far puts the camera at z = -1.
	if got := s.Camera().Position(); !got.NearlyEqual(math3d.V3(0, 0, -1)) {
		t.Errorf("camera at %v, want (0, 0, -1)", got)
	}

	s.ZoomBy(1000)
	for range 600 {
		s.Step()
	}
	if math.Abs(s.Zoom()-MaxZoom) > 1e-9 {
		t.Errorf("Zoom = %v, want clamped to %v", s.Zoom(), MaxZoom)
	}

	s.Reset()
	if s.Zoom() != 1 || s.Angle() != 0 {
		t.Errorf("after Reset: zoom %v, angle %v", s.Zoom(), s.Angle())
	}
}

func TestToggleCompositing(t *testing.T) {
	s := newDefault(t, 4, 4)
	if _, err := s.Render(); err != nil {
		t.Fatal(err)
	}

	s.ToggleCompositing()
	if s.Tracer().Compositing() != render.CompositeNearest {
		t.Errorf("compositing = %v, want nearest", s.Tracer().Compositing())
	}
	if !s.Dirty() {
		t.Error("toggle did not mark dirty")
	}
	s.ToggleCompositing()
	if s.Tracer().Compositing() != render.CompositeLastHit {
		t.Errorf("compositing = %v, want last-hit", s.Tracer().Compositing())
	}
}

func TestMarkers(t *testing.T) {
	scene := models.NewScene(
		models.WithSurfaces(models.NewSphere(math3d.V3(0, 0, -6), 1, models.DefaultMaterial())),
		models.WithLights(models.NewLight(math3d.V3(0, 0.5, -3), 10, pixel.White)),
		models.WithBackground(pixel.White),
	)
	frame := func(markers bool) []uint32 {
		s, err := New(scene, render.NewCamera(32, 32), render.NewTracer(), math3d.V3(0, 0, -1), WithMarkers(markers))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := s.Render(); err != nil {
			t.Fatal(err)
		}
		return slices.Clone(s.Framebuffer().Pixels)
	}

	if slices.Equal(frame(false), frame(true)) {
		t.Error("markers did not change the frame")
	}
}
