// Package models provides the scene description for the ray caster:
// materials, analytic surfaces, point lights, and loaders that build scenes
// from JSON files and glTF documents.
package models

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// Mesh is the vertex cloud of one glTF primitive. The ray caster does not
// intersect triangles; a mesh is reduced to its bounding sphere.
type Mesh struct {
	Name      string
	Positions []math3d.Vec3
	// Material indexes the document's materials, -1 for none.
	Material int

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates a mesh from positions and computes its bounds.
func NewMesh(name string, positions []math3d.Vec3, material int) *Mesh {
	m := &Mesh{Name: name, Positions: positions, Material: material}
	m.CalculateBounds()
	return m
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Positions) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Vec3{}, math3d.Vec3{}
		return
	}

	m.BoundsMin = m.Positions[0]
	m.BoundsMax = m.Positions[0]
	for _, p := range m.Positions[1:] {
		m.BoundsMin = m.BoundsMin.Min(p)
		m.BoundsMax = m.BoundsMax.Max(p)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// Transform returns a copy of the mesh with every position transformed by
// mat.
func (m *Mesh) Transform(mat math3d.Mat4) *Mesh {
	out := make([]math3d.Vec3, len(m.Positions))
	for i, p := range m.Positions {
		out[i] = mat.MulVec3(p)
	}
	return NewMesh(m.Name, out, m.Material)
}

// BoundingSphere returns a sphere centered on the bounding box that
// contains every vertex.
func (m *Mesh) BoundingSphere() (center math3d.Vec3, radius float64) {
	center = m.Center()
	var r2 float64
	for _, p := range m.Positions {
		r2 = math.Max(r2, center.Sub(p).LenSq())
	}
	return center, math.Sqrt(r2)
}
