package render

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/models"
	"github.com/taigrr/lumen/pkg/pixel"
)

// ErrSizeMismatch is returned when the framebuffer and camera dimensions
// disagree.
var ErrSizeMismatch = errors.New("framebuffer size does not match camera")

// Compositing decides which hit surface colors a pixel when a ray hits
// more than one.
type Compositing int

const (
	// CompositeLastHit colors the pixel from the last surface in scene
	// order that the ray hits, regardless of depth.
	CompositeLastHit Compositing = iota
	// CompositeNearest colors the pixel from the closest hit.
	CompositeNearest
)

func (c Compositing) String() string {
	switch c {
	case CompositeLastHit:
		return models.CompositeLastHitName
	case CompositeNearest:
		return models.CompositeNearestName
	}
	return fmt.Sprintf("Compositing(%d)", int(c))
}

// ParseCompositing parses "last-hit" or "nearest". The empty string is
// last-hit.
func ParseCompositing(s string) (Compositing, error) {
	switch s {
	case "", models.CompositeLastHitName:
		return CompositeLastHit, nil
	case models.CompositeNearestName:
		return CompositeNearest, nil
	}
	return 0, fmt.Errorf("unknown compositing %q", s)
}

// FrameStats counts the work done for one frame.
type FrameStats struct {
	Width, Height int
	// Rays is the number of primary rays cast, one per pixel.
	Rays int
	// Hits counts rays that hit at least one surface.
	Hits int
	// LightEvaluations counts Phong evaluations.
	LightEvaluations int
	// BackFacing counts evaluations rejected because the light was behind
	// the surface.
	BackFacing int
	// Culled is the number of surfaces skipped as outside the view volume.
	Culled   int
	Duration time.Duration
}

// HitRatio returns Hits / Rays, or 0 for an empty frame.
func (s FrameStats) HitRatio() float64 {
	if s.Rays == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Rays)
}

// Tracer renders frames: one primary ray per pixel, tested against every
// surface and shaded by every light.
type Tracer struct {
	maxDistance float64
	compositing Compositing
	cull        bool
}

// TracerOption configures a Tracer.
type TracerOption func(t *Tracer)

// WithMaxDistance bounds how far along a primary ray a hit may lie.
// Zero or negative is unbounded.
func WithMaxDistance(d float64) TracerOption {
	return func(t *Tracer) {
		t.maxDistance = d
	}
}

// WithCompositing sets the compositing mode.
func WithCompositing(c Compositing) TracerOption {
	return func(t *Tracer) {
		t.compositing = c
	}
}

// WithCulling enables or disables skipping surfaces outside the view
// frustum. Culling never changes the image.
func WithCulling(enabled bool) TracerOption {
	return func(t *Tracer) {
		t.cull = enabled
	}
}

// NewTracer creates a tracer. Defaults: max distance 10, last-hit
// compositing, culling on.
func NewTracer(opts ...TracerOption) *Tracer {
	t := &Tracer{
		maxDistance: models.DefaultMaxDistance,
		compositing: CompositeLastHit,
		cull:        true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// MaxDistance returns the primary ray length bound.
func (t *Tracer) MaxDistance() float64 { return t.maxDistance }

// Compositing returns the compositing mode.
func (t *Tracer) Compositing() Compositing { return t.compositing }

// Culling reports whether frustum culling is enabled.
func (t *Tracer) Culling() bool { return t.cull }

// With returns a copy of t with opts applied.
func (t *Tracer) With(opts ...TracerOption) *Tracer {
	c := *t
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}

// Render draws one frame of scene as seen by cam into fb. The scene and
// camera are only read; fb must match the camera's dimensions. Each pixel
// is written exactly once, as packed ARGB at y*width+x.
func (t *Tracer) Render(scene *models.Scene, cam *Camera, fb *Framebuffer) (FrameStats, error) {
	switch {
	case scene == nil:
		return FrameStats{}, errors.New("render: nil scene")
	case cam == nil:
		return FrameStats{}, errors.New("render: nil camera")
	case fb == nil:
		return FrameStats{}, errors.New("render: nil framebuffer")
	}
	w, h := cam.Width(), cam.Height()
	if fb.Width != w || fb.Height != h || len(fb.Pixels) != w*h {
		return FrameStats{}, fmt.Errorf("render: %w: buffer %dx%d (%d pixels), camera %dx%d",
			ErrSizeMismatch, fb.Width, fb.Height, len(fb.Pixels), w, h)
	}
	if err := scene.Validate(); err != nil {
		return FrameStats{}, fmt.Errorf("render: %w", err)
	}

	start := time.Now()
	stats := FrameStats{Width: w, Height: h}

	surfaces := scene.Surfaces
	if t.cull {
		surfaces = cam.Frustum(t.maxDistance).Cull(surfaces)
		stats.Culled = len(scene.Surfaces) - len(surfaces)
	}

	eye := cam.Position()
	for y := range h {
		row := fb.Pixels[y*w : (y+1)*w]
		for x := range w {
			ray, _ := cam.ShootRay(x, y, t.maxDistance)
			stats.Rays++
			row[x] = t.shade(ray, scene, surfaces, eye, &stats).ARGB()
		}
	}

	stats.Duration = time.Since(start)
	return stats, nil
}

// shade computes one pixel. Starting from the background, every hit
// surface (or only ever-nearer ones in nearest mode) recomputes the color
// as light.Color.Blend(material.Color) scaled by the intensity accumulated
// over that surface's lights so far.
func (t *Tracer) shade(ray math3d.Ray, scene *models.Scene, surfaces []models.Surface, eye math3d.Vec3, stats *FrameStats) pixel.Color {
	c := scene.Background
	nearest := math.Inf(1)
	hitAny := false

	for _, s := range surfaces {
		hit, ok := s.Intersect(ray)
		if !ok {
			continue
		}
		hitAny = true
		if t.compositing == CompositeNearest {
			if hit.T >= nearest {
				continue
			}
			nearest = hit.T
		}

		base := s.Material().Color()
		var intensity float64
		for _, l := range scene.Lights {
			v, back := illuminate(s, l, eye, hit.Point)
			stats.LightEvaluations++
			if back {
				stats.BackFacing++
			}
			intensity += v
			c = l.Color.Blend(base).Mul(intensity)
		}
	}

	if hitAny {
		stats.Hits++
	}
	return c
}
