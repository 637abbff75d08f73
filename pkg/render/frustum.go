package render

import (
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/models"
)

// ClipPlane is a plane Normal·P + D = 0 bounding the view volume.
type ClipPlane struct {
	Normal math3d.Vec3
	D      float64
}

// Normalize scales the plane equation so the normal has unit length.
func (p *ClipPlane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1.0 / l)
	p.D /= l
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive = inside (same side as normal).
func (p ClipPlane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum is the six planes of a view volume, ordered Left, Right, Bottom,
// Top, Near, Far. Normals point inward.
type Frustum struct {
	Planes [6]ClipPlane
}

// Frustum plane indices.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// NewFrustumFromMatrix extracts frustum planes from a view-projection matrix
// (Gribb/Hartmann). For column-major m, row i column j is m[i+j*4].
func NewFrustumFromMatrix(m math3d.Mat4) Frustum {
	row := func(i int) (math3d.Vec3, float64) {
		return math3d.V3(m[i], m[i+4], m[i+8]), m[i+12]
	}
	n3, d3 := row(3)
	var f Frustum
	for i := range 3 {
		n, d := row(i)
		f.Planes[2*i] = ClipPlane{Normal: n3.Add(n), D: d3 + d}
		f.Planes[2*i+1] = ClipPlane{Normal: n3.Sub(n), D: d3 - d}
	}
	for i := range f.Planes {
		f.Planes[i].Normalize()
	}
	return f
}

// ContainsPoint tests if a point is inside the frustum.
func (f Frustum) ContainsPoint(p math3d.Vec3) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectsSphere tests if a sphere intersects the frustum. It may report
// true for spheres just outside a frustum corner, never false for a sphere
// that overlaps it.
func (f Frustum) IntersectsSphere(center math3d.Vec3, radius float64) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(center) < -radius {
			return false
		}
	}
	return true
}

// Cull returns the surfaces a primary ray inside f could hit, preserving
// order. Spheres wholly outside are dropped; unbounded kinds are kept.
func (f Frustum) Cull(surfaces []models.Surface) []models.Surface {
	out := make([]models.Surface, 0, len(surfaces))
	for _, s := range surfaces {
		if sp, ok := s.(*models.Sphere); ok && !f.IntersectsSphere(sp.Position(), sp.Radius()) {
			continue
		}
		out = append(out, s)
	}
	return out
}
