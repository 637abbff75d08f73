package math3d

// Ray is a half-line from Origin along the unit Direction. A positive Length
// bounds how far along the ray a hit may lie; zero means unbounded.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	Length    float64
}

// NewRay creates a ray and normalizes its direction.
func NewRay(origin, direction Vec3, length float64) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize(), Length: length}
}

// At returns the point Origin + t·Direction.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Within reports whether distance t is inside the ray's length bound.
func (r Ray) Within(t float64) bool {
	return r.Length <= 0 || t <= r.Length
}
