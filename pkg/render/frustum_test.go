package render

import (
	"math"
	"testing"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/models"
)

func TestClipPlaneDistanceToPoint(t *testing.T) {
	plane := ClipPlane{Normal: math3d.V3(0, 0, 1), D: 0}

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected float64
	}{
		{"origin", math3d.V3(0, 0, 0), 0},
		{"in front", math3d.V3(0, 0, 5), 5},
		{"behind", math3d.V3(0, 0, -3), -3},
		{"offset XY", math3d.V3(10, -5, 2), 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dist := plane.DistanceToPoint(tc.point)
			if math.Abs(dist-tc.expected) > 1e-9 {
				t.Errorf("got %v, want %v", dist, tc.expected)
			}
		})
	}
}

func TestClipPlaneNormalize(t *testing.T) {
	plane := ClipPlane{Normal: math3d.V3(0, 3, 4), D: 10}
	plane.Normalize()

	if l := plane.Normal.Len(); math.Abs(l-1.0) > 1e-9 {
		t.Errorf("normalized normal length = %v, want 1.0", l)
	}
	if math.Abs(plane.D-2.0) > 1e-9 {
		t.Errorf("D = %v, want 2.0", plane.D)
	}
}

func TestFrustumContainsPoint(t *testing.T) {
	proj := math3d.Perspective(math.Pi/3, 16.0/9.0, 0.1, 100)
	frustum := NewFrustumFromMatrix(proj)

	for i, plane := range frustum.Planes {
		if l := plane.Normal.Len(); math.Abs(l-1.0) > 1e-6 {
			t.Errorf("plane %d normal length = %v, want 1.0", i, l)
		}
	}

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected bool
	}{
		{"center near", math3d.V3(0, 0, -1), true},
		{"center mid", math3d.V3(0, 0, -50), true},
		{"behind camera", math3d.V3(0, 0, 1), false},
		{"too far", math3d.V3(0, 0, -200), false},
		{"too close", math3d.V3(0, 0, -0.01), false},
		{"far to the right", math3d.V3(100, 0, -5), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := frustum.ContainsPoint(tc.point); got != tc.expected {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tc.point, got, tc.expected)
			}
		})
	}
}

func TestFrustumIntersectsSphere(t *testing.T) {
	frustum := NewFrustumFromMatrix(math3d.Perspective(math.Pi/3, 16.0/9.0, 1.0, 100.0))

	tests := []struct {
		name     string
		center   math3d.Vec3
		radius   float64
		expected bool
	}{
		{"inside", math3d.V3(0, 0, -10), 1.0, true},
		{"straddles near plane", math3d.V3(0, 0, -0.5), 1.0, true},
		{"behind", math3d.V3(0, 0, 5), 1.0, false},
		{"beyond far plane", math3d.V3(0, 0, -150), 10, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := frustum.IntersectsSphere(tc.center, tc.radius); got != tc.expected {
				t.Errorf("IntersectsSphere(%v, %v) = %v, want %v", tc.center, tc.radius, got, tc.expected)
			}
		})
	}
}

func TestCameraFrustumFollowsLookAt(t *testing.T) {
	cam := NewCamera(100, 100)
	cam.LookAt(math3d.V3(10, 0, 0))
	frustum := cam.Frustum(50)

	if !frustum.ContainsPoint(math3d.V3(10, 0, 0)) {
		t.Error("point in front of rotated camera should be visible")
	}
	if frustum.ContainsPoint(math3d.V3(-10, 0, 0)) {
		t.Error("point behind rotated camera should not be visible")
	}
	if frustum.ContainsPoint(math3d.V3(60, 0, 0)) {
		t.Error("point past the far distance should not be visible")
	}
}

func TestFrustumCull(t *testing.T) {
	cam := NewCamera(64, 64)
	cam.LookAt(math3d.V3(0, 0, 1))
	mat := models.DefaultMaterial()

	front := models.NewSphere(math3d.V3(0, 0, 3), 1, mat)
	behind := models.NewSphere(math3d.V3(0, 0, -5), 1, mat)
	far := models.NewSphere(math3d.V3(0, 0, 40), 1, mat)
	floor := models.NewPlane(math3d.V3(0, -1, 0), math3d.Up(), mat)

	got := cam.Frustum(10).Cull([]models.Surface{behind, front, floor, far})
	if len(got) != 2 || got[0] != front || got[1] != floor {
		t.Errorf("Cull kept %v", got)
	}
}

func TestCameraFrustumUnbounded(t *testing.T) {
	cam := NewCamera(64, 64)
	cam.LookAt(math3d.V3(0, 0, 1))
	mat := models.DefaultMaterial()

	beyondFarPlane := models.NewSphere(math3d.V3(0, 0, 2000), 500, mat)
	aroundEye := models.NewSphere(math3d.V3(0, 0, -0.2), 0.25, mat)
	behind := models.NewSphere(math3d.V3(0, 0, -5), 1, mat)

	got := cam.Frustum(0).Cull([]models.Surface{beyondFarPlane, aroundEye, behind})
	if len(got) != 2 || got[0] != beyondFarPlane || got[1] != aroundEye {
		t.Errorf("Cull kept %v", got)
	}
	if !cam.Frustum(0).ContainsPoint(math3d.V3(0, 0, 1e6)) {
		t.Error("unbounded frustum should contain distant points ahead")
	}
}

func BenchmarkFrustumIntersectsSphere(b *testing.B) {
	frustum := NewFrustumFromMatrix(math3d.Perspective(math.Pi/3, 16.0/9.0, 0.1, 100))
	center := math3d.V3(0, 0, -10)

	for b.Loop() {
		_ = frustum.IntersectsSphere(center, 1)
	}
}
