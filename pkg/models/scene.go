package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/pixel"
)

// Scene is the set of surfaces and lights a frame is rendered from. It must
// not be mutated while a frame is being rendered.
type Scene struct {
	Surfaces   []Surface
	Lights     []Light
	Background pixel.Color
}

// SceneOption configures a Scene. Use the With* functions to create options.
type SceneOption func(s *Scene)

// WithSurfaces appends surfaces in order. Order matters for last-hit
// compositing.
func WithSurfaces(surfaces ...Surface) SceneOption {
	return func(s *Scene) {
		s.Surfaces = append(s.Surfaces, surfaces...)
	}
}

// WithLights appends lights in order.
func WithLights(lights ...Light) SceneOption {
	return func(s *Scene) {
		s.Lights = append(s.Lights, lights...)
	}
}

// WithBackground sets the color of pixels whose ray hits nothing.
func WithBackground(c pixel.Color) SceneOption {
	return func(s *Scene) {
		s.Background = c
	}
}

// NewScene builds a scene. The default background is opaque black.
func NewScene(opts ...SceneOption) *Scene {
	s := &Scene{Background: pixel.Black}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultScene returns the reference scene: three spheres in front of a
// camera at the origin looking down +Z, lit by three cyan lights over a
// green background.
func DefaultScene() *Scene {
	mat := NewMaterial(pixel.White, 0.1, 1, 50)
	return NewScene(
		WithSurfaces(
			NewSphere(math3d.V3(0, 0, 3), 1.0, mat),
			NewSphere(math3d.V3(1, 1, 4), 0.5, mat),
			NewSphere(math3d.V3(-1, -1, 5), 0.75, mat),
		),
		WithLights(
			NewLight(math3d.V3(-1, 0, -1), 4, pixel.Cyan),
			NewLight(math3d.V3(1, 0, 1), 1, pixel.Cyan),
			NewLight(math3d.V3(2, 0, 1), 2, pixel.Cyan),
		),
		WithBackground(pixel.Green),
	)
}

// Validate reports malformed scene data.
func (s *Scene) Validate() error {
	var errs []error
	for i, surf := range s.Surfaces {
		if surf == nil {
			errs = append(errs, fmt.Errorf("surface %d is nil", i))
		}
	}
	for i, l := range s.Lights {
		if l.Intensity < 0 {
			errs = append(errs, fmt.Errorf("light %d: negative intensity %g", i, l.Intensity))
		}
	}
	return errors.Join(errs...)
}

// WithLightsOrbited returns a copy of the scene whose lights are rotated by
// angle radians about the vertical axis through center. Surfaces are shared
// with s.
func (s *Scene) WithLightsOrbited(center math3d.Vec3, angle float64) *Scene {
	q := math3d.QuatAxisAngle(math3d.Up(), angle)
	out := &Scene{
		Surfaces:   s.Surfaces,
		Lights:     make([]Light, len(s.Lights)),
		Background: s.Background,
	}
	for i, l := range s.Lights {
		l.Position = center.Add(q.Rotate(center.VectorTo(l.Position)))
		out.Lights[i] = l
	}
	return out
}

// Centroid returns the mean position of the bounded surfaces. Planes are
// skipped; a scene without bounded surfaces yields the origin.
func (s *Scene) Centroid() math3d.Vec3 {
	var sum math3d.Vec3
	n := 0
	for _, surf := range s.Surfaces {
		if _, ok := surf.(*Plane); ok {
			continue
		}
		sum = sum.Add(surf.Position())
		n++
	}
	if n == 0 {
		return math3d.Vec3{}
	}
	return sum.Scale(1 / float64(n))
}
