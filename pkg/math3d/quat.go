package math3d

import "math"

// Quat is a rotation quaternion W + Xi + Yj + Zk.
type Quat struct {
	W, X, Y, Z float64
}

// IdentityQuat returns the rotation that leaves vectors unchanged.
func IdentityQuat() Quat {
	return Quat{W: 1}
}

// QuatAxisAngle returns the rotation of angle radians about axis.
func QuatAxisAngle(axis Vec3, angle float64) Quat {
	axis = axis.Normalize()
	s, c := math.Sincos(angle / 2)
	return Quat{W: c, X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s}
}

// QuatXYZW builds a quaternion from components stored x, y, z, w, the order
// glTF uses for node rotations.
func QuatXYZW(v [4]float64) Quat {
	return Quat{W: v[3], X: v[0], Y: v[1], Z: v[2]}
}

// pure wraps v as a quaternion with zero scalar part.
func pure(v Vec3) Quat {
	return Quat{X: v.X, Y: v.Y, Z: v.Z}
}

// Vec returns the vector part.
func (q Quat) Vec() Vec3 {
	return Vec3{q.X, q.Y, q.Z}
}

// Mul returns the Hamilton product q * p.
func (q Quat) Mul(p Quat) Quat {
	return Quat{
		W: q.W*p.W - q.X*p.X - q.Y*p.Y - q.Z*p.Z,
		X: q.W*p.X + q.X*p.W + q.Y*p.Z - q.Z*p.Y,
		Y: q.W*p.Y - q.X*p.Z + q.Y*p.W + q.Z*p.X,
		Z: q.W*p.Z + q.X*p.Y - q.Y*p.X + q.Z*p.W,
	}
}

// Conjugate returns the inverse rotation of a unit quaternion.
func (q Quat) Conjugate() Quat {
	return Quat{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Len returns the quaternion norm.
func (q Quat) Len() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Normalize returns the unit quaternion. The zero quaternion becomes the
// identity.
func (q Quat) Normalize() Quat {
	l := q.Len()
	if l == 0 {
		return IdentityQuat()
	}
	return Quat{q.W / l, q.X / l, q.Y / l, q.Z / l}
}

// Rotate applies the rotation to v as q·v·q*.
func (q Quat) Rotate(v Vec3) Vec3 {
	return q.Mul(pure(v)).Mul(q.Conjugate()).Vec()
}

// Mat4 returns the rotation matrix of a unit quaternion.
func (q Quat) Mat4() Mat4 {
	x, y, z, w := q.X, q.Y, q.Z, q.W
	return Mat4{
		1 - 2*(y*y+z*z), 2 * (x*y + w*z), 2 * (x*z - w*y), 0,
		2 * (x*y - w*z), 1 - 2*(x*x+z*z), 2 * (y*z + w*x), 0,
		2 * (x*z + w*y), 2 * (y*z - w*x), 1 - 2*(x*x+y*y), 0,
		0, 0, 0, 1,
	}
}

// Sandwich returns n·v·n for a pure unit quaternion n. This is the
// reflection of v through the plane orthogonal to n, so its negation is
// v.Mirror(n).
func Sandwich(v, n Vec3) Vec3 {
	q := pure(n)
	return q.Mul(pure(v)).Mul(q).Vec()
}
