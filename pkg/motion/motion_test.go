package motion

import (
	"math"
	"testing"
)

func TestAxisDecays(t *testing.T) {
	a := NewAxis(60)
	a.Impulse(0.5)

	prev := a.Position
	for range 600 {
		a.Update()
		if a.Position < prev {
			t.Fatalf("position went backwards: %v after %v", a.Position, prev)
		}
		prev = a.Position
	}
	if a.Moving() {
		t.Errorf("axis still moving after 10s: velocity %v", a.Velocity)
	}
	if a.Position <= 0 {
		t.Errorf("position = %v, want > 0", a.Position)
	}
}

func TestFollowerSettles(t *testing.T) {
	f := NewFollower(60, 5)
	if !f.Settled() {
		t.Fatal("new follower not settled")
	}

	f.Target = 2
	f.Update()
	if f.Settled() {
		t.Fatal("settled after one step")
	}
	if f.Value >= 5 || f.Value < 2 {
		t.Errorf("first step value = %v, want in [2, 5)", f.Value)
	}
	for range 300 {
		f.Update()
	}
	if !f.Settled() {
		t.Errorf("not settled after 5s: value %v", f.Value)
	}

	f.Target = 9
	f.Snap()
	if f.Value != 9 || !f.Settled() {
		t.Errorf("Snap: value %v, settled %v", f.Value, f.Settled())
	}
}

func TestOrbitAngles(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		eased bool
	}{
		{"linear", 8, false},
		{"eased", 30, true},
		{"single eased", 1, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			angles := OrbitAngles(tc.n, 30, tc.eased)
			if len(angles) != tc.n {
				t.Fatalf("len = %d, want %d", len(angles), tc.n)
			}
			if angles[0] != 0 {
				t.Errorf("first angle = %v, want 0", angles[0])
			}
			for i := 1; i < len(angles); i++ {
				if angles[i] < angles[i-1] {
					t.Errorf("angle %d = %v decreases from %v", i, angles[i], angles[i-1])
				}
			}
			last := angles[len(angles)-1]
			if last > 2*math.Pi+1e-9 {
				t.Errorf("last angle %v exceeds a full turn", last)
			}
			if tc.eased && tc.n > 1 && math.Abs(last-2*math.Pi) > 1e-9 {
				t.Errorf("eased last angle = %v, want 2π", last)
			}
		})
	}

	if OrbitAngles(0, 30, true) != nil {
		t.Error("zero frames should yield nil")
	}
}

func TestOrbitAnglesLinearSpacing(t *testing.T) {
	angles := OrbitAngles(4, 30, false)
	want := []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2}
	for i := range want {
		if math.Abs(angles[i]-want[i]) > 1e-12 {
			t.Errorf("angle %d = %v, want %v", i, angles[i], want[i])
		}
	}
}
