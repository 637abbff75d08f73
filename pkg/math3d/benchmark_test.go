package math3d

import (
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := RotateY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec3(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5))
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = m.MulVec3(v)
	}
}

func BenchmarkTRS(b *testing.B) {
	q := QuatAxisAngle(Up(), 0.5)
	for b.Loop() {
		_ = TRS(V3(1, 2, 3), q, V3(2, 2, 2))
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkVec3Mirror(b *testing.B) {
	v := V3(1, 2, 3).Normalize()
	n := V3(0, 1, 0)

	for b.Loop() {
		_ = v.Mirror(n)
	}
}

func BenchmarkQuatRotate(b *testing.B) {
	q := QuatAxisAngle(V3(1, 1, 0), 0.7)
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = q.Rotate(v)
	}
}

func BenchmarkViewProjection(b *testing.B) {
	view := LookAt(V3(0, 0, 10), V3(0, 0, 0), Up())
	proj := Perspective(1.047, 1.333, 0.1, 100.0)

	for b.Loop() {
		_ = proj.Mul(view)
	}
}
