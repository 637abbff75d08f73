package render

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/models"
)

// Illuminate returns the Phong intensity in [0, 1] that light contributes at
// point on surface s, seen from eye. point must lie on s.
//
// A light behind the surface (N·L < 0) contributes exactly 0. There is no
// occlusion test against other surfaces.
func Illuminate(s models.Surface, light models.Light, eye, point math3d.Vec3) float64 {
	v, _ := illuminate(s, light, eye, point)
	return v
}

// illuminate also reports whether the light was rejected as back-facing.
func illuminate(s models.Surface, light models.Light, eye, point math3d.Vec3) (float64, bool) {
	toLight := point.VectorTo(light.Position).Normalize()
	normal := s.NormalAt(point)

	cosTheta := normal.Dot(toLight)
	if cosTheta < 0 {
		return 0, true
	}

	mat := s.Material()
	reflection := toLight.Mirror(normal)
	specAngle := math.Max(0, reflection.Dot(point.VectorTo(eye).Normalize()))
	specular := math.Pow(specAngle, mat.Shininess())

	intensity := mat.Ambient() + mat.Diffuse()*cosTheta + mat.Specular()*specular
	return math.Min(1, intensity*light.InverseSquareLaw(point)), false
}
