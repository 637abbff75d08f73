package models

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// Plane is an infinite plane: Normal·P + D = 0.
type Plane struct {
	normal   math3d.Vec3
	d        float64
	material Material
}

// NewPlane creates a plane through point with the given facing normal.
func NewPlane(point, normal math3d.Vec3, material Material) *Plane {
	n := normal.Normalize()
	return &Plane{normal: n, d: -n.Dot(point), material: material}
}

func (*Plane) surface() {}

// Position returns the point of the plane closest to the origin.
func (p *Plane) Position() math3d.Vec3 { return p.normal.Scale(-p.d) }

// Normal returns the unit facing normal.
func (p *Plane) Normal() math3d.Vec3 { return p.normal }

// Material returns a copy of the material.
func (p *Plane) Material() Material { return p.material }

// SetMaterial replaces the material.
func (p *Plane) SetMaterial(m Material) { p.material = m }

// DistanceToPoint returns the signed distance from the plane to pt.
// Positive is on the side the normal faces.
func (p *Plane) DistanceToPoint(pt math3d.Vec3) float64 {
	return p.normal.Dot(pt) + p.d
}

// Intersect returns the forward hit of ray with the plane. Rays parallel
// to the plane never hit.
func (p *Plane) Intersect(ray math3d.Ray) (Hit, bool) {
	denom := p.normal.Dot(ray.Direction)
	if math.Abs(denom) < math3d.Epsilon {
		return Hit{}, false
	}
	t := -p.DistanceToPoint(ray.Origin) / denom
	if t < 0 || !ray.Within(t) {
		return Hit{}, false
	}
	return Hit{Point: ray.At(t), T: t}, true
}

// NormalAt returns the facing normal; it is the same everywhere.
func (p *Plane) NormalAt(math3d.Vec3) math3d.Vec3 {
	return p.normal
}
