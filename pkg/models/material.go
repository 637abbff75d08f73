package models

import (
	"math"

	"github.com/taigrr/lumen/pkg/pixel"
)

// Material describes how a surface responds to light.
//
// Coefficients are clamped on every mutation and never rejected: ambient,
// diffuse and specular stay in [0, 1] and shininess in [0, +Inf). Diffuse
// and specular always sum to 1; setting one recomputes the other.
type Material struct {
	color     pixel.Color
	ambient   float64
	diffuse   float64
	specular  float64
	shininess float64
}

// DefaultMaterial returns a white, fully diffuse material with no ambient
// term.
func DefaultMaterial() Material {
	return Material{color: pixel.White, diffuse: 1}
}

// NewMaterial creates a material. Specular is derived as 1 - diffuse.
func NewMaterial(c pixel.Color, ambient, diffuse, shininess float64) Material {
	m := Material{color: c}
	m.SetAmbient(ambient)
	m.SetDiffuse(diffuse)
	m.SetShininess(shininess)
	return m
}

// Color returns the base color.
func (m Material) Color() pixel.Color { return m.color }

// Ambient returns the ambient coefficient in [0, 1].
func (m Material) Ambient() float64 { return m.ambient }

// Diffuse returns the diffuse coefficient in [0, 1].
func (m Material) Diffuse() float64 { return m.diffuse }

// Specular returns the specular coefficient in [0, 1].
func (m Material) Specular() float64 { return m.specular }

// Shininess returns the specular exponent.
func (m Material) Shininess() float64 { return m.shininess }

// SetColor sets the base color.
func (m *Material) SetColor(c pixel.Color) { m.color = c }

// SetAmbient sets the ambient coefficient, clamped to [0, 1].
func (m *Material) SetAmbient(v float64) { m.ambient = clamp01(v) }

// SetDiffuse sets the diffuse coefficient, clamped to [0, 1], and the
// specular coefficient to its complement.
func (m *Material) SetDiffuse(v float64) {
	m.diffuse = clamp01(v)
	m.specular = 1 - m.diffuse
}

// SetSpecular sets the specular coefficient, clamped to [0, 1], and the
// diffuse coefficient to its complement.
func (m *Material) SetSpecular(v float64) {
	m.specular = clamp01(v)
	m.diffuse = 1 - m.specular
}

// SetShininess sets the specular exponent, clamped to [0, +Inf).
func (m *Material) SetShininess(v float64) {
	if math.IsNaN(v) || v < 0 {
		v = 0
	}
	m.shininess = v
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(v, 1)
}
