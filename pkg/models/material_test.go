package models

import (
	"math"
	"testing"

	"github.com/taigrr/lumen/pkg/pixel"
)

func TestMaterialDefaults(t *testing.T) {
	m := DefaultMaterial()
	if m.Color() != pixel.White {
		t.Errorf("color = %v, want white", m.Color())
	}
	if m.Ambient() != 0 || m.Diffuse() != 1 || m.Specular() != 0 || m.Shininess() != 0 {
		t.Errorf("unexpected defaults: %+v", m)
	}
}

func TestNewMaterialDerivesSpecular(t *testing.T) {
	m := NewMaterial(pixel.Red, 0.5, 0.1, 0.5)
	if m.Ambient() != 0.5 {
		t.Errorf("ambient = %g", m.Ambient())
	}
	if math.Abs(m.Specular()-0.9) > 1e-12 {
		t.Errorf("specular = %g, want 0.9", m.Specular())
	}
}

func TestMaterialClamping(t *testing.T) {
	tests := []struct {
		name  string
		apply func(*Material)
		check func(Material) bool
	}{
		{"ambient high", func(m *Material) { m.SetAmbient(1.8) }, func(m Material) bool { return m.Ambient() == 1 }},
		{"ambient low", func(m *Material) { m.SetAmbient(-3) }, func(m Material) bool { return m.Ambient() == 0 }},
		{"ambient NaN", func(m *Material) { m.SetAmbient(math.NaN()) }, func(m Material) bool { return m.Ambient() == 0 }},
		{"diffuse high", func(m *Material) { m.SetDiffuse(2) }, func(m Material) bool { return m.Diffuse() == 1 && m.Specular() == 0 }},
		{"diffuse low", func(m *Material) { m.SetDiffuse(-1) }, func(m Material) bool { return m.Diffuse() == 0 && m.Specular() == 1 }},
		{"specular high", func(m *Material) { m.SetSpecular(5) }, func(m Material) bool { return m.Specular() == 1 && m.Diffuse() == 0 }},
		{"shininess negative", func(m *Material) { m.SetShininess(-4) }, func(m Material) bool { return m.Shininess() == 0 }},
		{"shininess large", func(m *Material) { m.SetShininess(1e6) }, func(m Material) bool { return m.Shininess() == 1e6 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := DefaultMaterial()
			tt.apply(&m)
			if !tt.check(m) {
				t.Errorf("unexpected material after mutation: %+v", m)
			}
		})
	}
}

func TestDiffuseSpecularSumToOne(t *testing.T) {
	m := DefaultMaterial()
	for _, v := range []float64{-1, 0, 0.25, 0.5, 0.75, 1, 3} {
		m.SetDiffuse(v)
		if s := m.Diffuse() + m.Specular(); math.Abs(s-1) > 1e-12 {
			t.Errorf("SetDiffuse(%g): sum = %g", v, s)
		}
		m.SetSpecular(v)
		if s := m.Diffuse() + m.Specular(); math.Abs(s-1) > 1e-12 {
			t.Errorf("SetSpecular(%g): sum = %g", v, s)
		}
	}
}
