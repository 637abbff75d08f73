package models

import (
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/pixel"
)

// minFalloffDistSq keeps the falloff finite when a point coincides with a
// light.
const minFalloffDistSq = 1e-6

// Light is a point light.
type Light struct {
	Position  math3d.Vec3
	Intensity float64
	Color     pixel.Color
}

// NewLight creates a point light.
func NewLight(position math3d.Vec3, intensity float64, c pixel.Color) Light {
	return Light{Position: position, Intensity: intensity, Color: c}
}

// InverseSquareLaw returns Intensity / d², where d is the distance from the
// light to p.
func (l Light) InverseSquareLaw(p math3d.Vec3) float64 {
	d2 := l.Position.Sub(p).LenSq()
	if d2 < minFalloffDistSq {
		d2 = minFalloffDistSq
	}
	return l.Intensity / d2
}
