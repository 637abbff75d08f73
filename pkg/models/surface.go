package models

import "github.com/taigrr/lumen/pkg/math3d"

// Hit is a forward intersection of a ray with a surface.
type Hit struct {
	Point math3d.Vec3
	// T is the distance along the ray's unit direction.
	T float64
}

// Surface is an analytic shape the tracer can intersect. The set of kinds
// is closed: *Sphere and *Plane.
//
// NormalAt is only defined for points returned by Intersect, where it is
// unit length.
type Surface interface {
	Position() math3d.Vec3
	Material() Material
	Intersect(ray math3d.Ray) (Hit, bool)
	NormalAt(p math3d.Vec3) math3d.Vec3

	surface()
}

var (
	_ Surface = (*Sphere)(nil)
	_ Surface = (*Plane)(nil)
)
