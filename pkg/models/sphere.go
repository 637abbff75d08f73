package models

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// Sphere is a sphere surface.
type Sphere struct {
	center   math3d.Vec3
	radius   float64
	material Material
}

// NewSphere creates a sphere. A negative radius is taken by magnitude.
func NewSphere(center math3d.Vec3, radius float64, material Material) *Sphere {
	return &Sphere{center: center, radius: math.Abs(radius), material: material}
}

func (*Sphere) surface() {}

// Position returns the center.
func (s *Sphere) Position() math3d.Vec3 { return s.center }

// SetPosition moves the center.
func (s *Sphere) SetPosition(p math3d.Vec3) { s.center = p }

// Radius returns the radius.
func (s *Sphere) Radius() float64 { return s.radius }

// SetRadius sets the radius by magnitude.
func (s *Sphere) SetRadius(r float64) { s.radius = math.Abs(r) }

// Material returns a copy of the material.
func (s *Sphere) Material() Material { return s.material }

// SetMaterial replaces the material.
func (s *Sphere) SetMaterial(m Material) { s.material = m }

// Intersect returns the nearest non-negative root of |O + tD - C|² = r².
// A tangent ray yields a single hit. Hits beyond the ray's length bound
// are misses.
func (s *Sphere) Intersect(ray math3d.Ray) (Hit, bool) {
	l := s.center.Sub(ray.Origin)
	tca := l.Dot(ray.Direction)
	d2 := l.LenSq() - tca*tca
	r2 := s.radius * s.radius
	if d2 > r2 {
		return Hit{}, false
	}

	thc := math.Sqrt(r2 - d2)
	t0, t1 := tca-thc, tca+thc
	if t1 < 0 {
		// Entirely behind the origin.
		return Hit{}, false
	}
	t := t0
	if t < 0 {
		t = t1
	}
	if !ray.Within(t) {
		return Hit{}, false
	}
	return Hit{Point: ray.At(t), T: t}, true
}

// NormalAt returns the unit vector from the center to p.
func (s *Sphere) NormalAt(p math3d.Vec3) math3d.Vec3 {
	return s.center.VectorTo(p).Normalize()
}
