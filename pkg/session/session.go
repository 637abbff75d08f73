// Package session holds the state of an interactive viewer independent of
// where frames are shown: the scene, a camera that zooms toward a fixed
// target, lights orbiting the scene centroid, and the framebuffer frames
// are traced into. The terminal and desktop front ends drive it.
package session

import (
	"errors"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/models"
	"github.com/taigrr/lumen/pkg/motion"
	"github.com/taigrr/lumen/pkg/render"
)

// Zoom limits as a multiple of the initial eye-to-target distance.
const (
	MinZoom = 0.2
	MaxZoom = 5.0
)

// markerBox is the light marker size in pixels.
const markerBox = 4

// Session is the viewer state. It is not safe for concurrent use.
type Session struct {
	scene  *models.Scene
	center math3d.Vec3
	eye    math3d.Vec3
	target math3d.Vec3

	cam    *render.Camera
	tracer *render.Tracer
	fb     *render.Framebuffer

	fps     int
	orbit   motion.Axis
	zoom    motion.Follower
	markers bool

	dirty bool
	stats render.FrameStats
}

// Option configures a Session.
type Option func(s *Session)

// WithFPS sets how many Step calls make one second of animation.
func WithFPS(fps int) Option {
	return func(s *Session) {
		if fps > 0 {
			s.fps = fps
		}
	}
}

// WithMarkers draws light markers over each frame.
func WithMarkers(enabled bool) Option {
	return func(s *Session) {
		s.markers = enabled
	}
}

// New creates a session viewing scene from eye toward target. The initial
// frame size comes from cam, which the session owns from here on.
func New(scene *models.Scene, cam *render.Camera, tracer *render.Tracer, target math3d.Vec3, opts ...Option) (*Session, error) {
	switch {
	case scene == nil:
		return nil, errors.New("new session: nil scene")
	case cam == nil:
		return nil, errors.New("new session: nil camera")
	case tracer == nil:
		return nil, errors.New("new session: nil tracer")
	}

	s := &Session{
		scene:  scene,
		center: scene.Centroid(),
		eye:    cam.Position(),
		target: target,
		cam:    cam,
		tracer: tracer,
		fb:     render.NewFramebuffer(cam.Width(), cam.Height()),
		fps:    60,
		dirty:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s, nil
}

// Camera returns the session camera.
func (s *Session) Camera() *render.Camera { return s.cam }

// Framebuffer returns the buffer frames are traced into.
func (s *Session) Framebuffer() *render.Framebuffer { return s.fb }

// Tracer returns the current tracer.
func (s *Session) Tracer() *render.Tracer { return s.tracer }

// Stats returns the statistics of the last rendered frame.
func (s *Session) Stats() render.FrameStats { return s.stats }

// Angle returns the current light orbit angle in radians.
func (s *Session) Angle() float64 { return s.orbit.Position }

// Zoom returns the current zoom factor; 1 is the initial distance.
func (s *Session) Zoom() float64 { return s.zoom.Value }

// Markers reports whether light markers are drawn.
func (s *Session) Markers() bool { return s.markers }

// Dirty reports whether the framebuffer is stale.
func (s *Session) Dirty() bool { return s.dirty }

// Invalidate forces the next Render.
func (s *Session) Invalidate() { s.dirty = true }

// Resize changes the frame size. It is a no-op when the size is unchanged.
func (s *Session) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if width == s.cam.Width() && height == s.cam.Height() {
		return
	}
	s.cam.SetSize(width, height)
	s.fb.Resize(width, height)
	s.dirty = true
}

// Spin adds angular velocity, in radians per step, to the light orbit.
func (s *Session) Spin(v float64) {
	s.orbit.Impulse(v)
}

// ZoomBy scales the zoom target by factor, within [MinZoom, MaxZoom].
func (s *Session) ZoomBy(factor float64) {
	s.zoom.Target = min(MaxZoom, max(MinZoom, s.zoom.Target*factor))
}

// ToggleCompositing switches between last-hit and nearest compositing.
func (s *Session) ToggleCompositing() {
	next := render.CompositeNearest
	if s.tracer.Compositing() == render.CompositeNearest {
		next = render.CompositeLastHit
	}
	s.tracer = s.tracer.With(render.WithCompositing(next))
	s.dirty = true
}

// ToggleMarkers shows or hides light markers.
func (s *Session) ToggleMarkers() {
	s.markers = !s.markers
	s.dirty = true
}

// Reset stops the orbit and restores the initial view.
func (s *Session) Reset() {
	s.orbit = motion.NewAxis(s.fps)
	s.zoom = motion.NewFollower(s.fps, 1)
	s.dirty = true
}

// Step advances the animation by one tick and reports whether a new frame
// is needed.
func (s *Session) Step() bool {
	if s.orbit.Moving() {
		s.orbit.Update()
		s.dirty = true
	}
	if !s.zoom.Settled() {
		s.zoom.Update()
		if s.zoom.Settled() {
			s.zoom.Snap()
		}
		s.dirty = true
	}
	return s.dirty
}

// placeCamera moves the camera along the eye-target line by the zoom factor.
func (s *Session) placeCamera() {
	s.cam.SetPosition(s.target.Add(s.target.VectorTo(s.eye).Scale(s.zoom.Value)))
	s.cam.LookAt(s.target)
}

// Frame returns the scene as currently lit: the lights orbited by Angle.
func (s *Session) Frame() *models.Scene {
	return s.scene.WithLightsOrbited(s.center, s.orbit.Position)
}

// Render traces a frame into the framebuffer and clears the dirty flag.
func (s *Session) Render() (render.FrameStats, error) {
	s.placeCamera()
	scene := s.Frame()
	stats, err := s.tracer.Render(scene, s.cam, s.fb)
	if err != nil {
		return stats, err
	}
	if s.markers {
		render.NewWireframe(s.cam, s.fb).DrawLights(scene.Lights, markerBox)
	}
	s.stats = stats
	s.dirty = false
	return stats, nil
}
