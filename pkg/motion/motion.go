// Package motion animates the interactive viewers with harmonica springs:
// a free-spinning axis for the light orbit and an eased follower for zoom.
package motion

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Axis is a value driven by a velocity that decays to rest.
type Axis struct {
	Position float64
	Velocity float64

	velSpring harmonica.Spring
	velAccel  float64
}

// NewAxis creates an axis stepped fps times per second. The velocity
// spring is critically damped so the spin never reverses.
func NewAxis(fps int) Axis {
	return Axis{
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update advances the position by the current velocity and decays the
// velocity toward zero.
func (a *Axis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// Impulse adds to the velocity.
func (a *Axis) Impulse(v float64) {
	a.Velocity += v
}

// Moving reports whether the axis is still spinning.
func (a *Axis) Moving() bool {
	return math.Abs(a.Velocity) > 1e-4 || math.Abs(a.velAccel) > 1e-4
}

// Follower eases a value toward a target.
type Follower struct {
	Value  float64
	Target float64

	spring   harmonica.Spring
	velocity float64
}

// NewFollower creates a follower at rest at value.
func NewFollower(fps int, value float64) Follower {
	return Follower{
		Value:  value,
		Target: value,
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

// Update moves one step toward the target.
func (f *Follower) Update() {
	f.Value, f.velocity = f.spring.Update(f.Value, f.velocity, f.Target)
}

// Settled reports whether the value has reached the target.
func (f *Follower) Settled() bool {
	return math.Abs(f.Value-f.Target) < 1e-4 && math.Abs(f.velocity) < 1e-4
}

// Snap jumps to the target and stops.
func (f *Follower) Snap() {
	f.Value, f.velocity = f.Target, 0
}

// OrbitAngles returns n light orbit angles covering one full turn.
//
// Without easing the angles are evenly spaced and the last frame stops one
// step short of 2π so the animation loops cleanly. With easing the angles
// follow a critically damped spring released toward 2π, so the orbit
// starts fast and settles; the final angle is exactly 2π.
func OrbitAngles(n, fps int, eased bool) []float64 {
	if n <= 0 {
		return nil
	}
	angles := make([]float64, n)
	if !eased {
		for i := range angles {
			angles[i] = 2 * math.Pi * float64(i) / float64(n)
		}
		return angles
	}

	f := NewFollower(fps, 0)
	f.Target = 2 * math.Pi
	for i := range angles {
		angles[i] = f.Value
		f.Update()
	}
	// Stretch the path so the last frame lands on the target.
	if last := angles[n-1]; last > 0 {
		for i := range angles {
			angles[i] *= 2 * math.Pi / last
		}
	}
	return angles
}
