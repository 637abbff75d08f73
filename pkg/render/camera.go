package render

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// maxPitch keeps the camera off the poles where yaw is undefined.
const maxPitch = math.Pi/2 - 0.01

// Camera generates one primary ray per pixel of a Width×Height target.
//
// The basis and matrices are recomputed by every setter, so ShootRay and
// WorldToScreen only read the camera and may be called from several
// goroutines at once.
type Camera struct {
	position   math3d.Vec3
	pitch, yaw float64
	fov        float64 // vertical, radians
	width      int
	height     int
	near, far  float64

	forward, right, up math3d.Vec3
	tanHalfFOV, aspect float64
	view, proj         math3d.Mat4
	viewProj           math3d.Mat4
}

// NewCamera creates a camera at the origin looking down -Z with a 60°
// vertical field of view.
func NewCamera(width, height int) *Camera {
	c := &Camera{
		fov:    math.Pi / 3,
		width:  width,
		height: height,
		near:   0.01,
		far:    1000,
	}
	c.update()
	return c
}

func (c *Camera) update() {
	c.forward = math3d.V3(
		-math.Sin(c.yaw)*math.Cos(c.pitch),
		math.Sin(c.pitch),
		-math.Cos(c.yaw)*math.Cos(c.pitch),
	)
	c.right = math3d.V3(math.Cos(c.yaw), 0, -math.Sin(c.yaw))
	c.up = c.right.Cross(c.forward)

	c.tanHalfFOV = math.Tan(c.fov / 2)
	c.aspect = 1
	if c.height > 0 {
		c.aspect = float64(c.width) / float64(c.height)
	}
	c.view = math3d.LookAt(c.position, c.position.Add(c.forward), c.up)
	c.proj = math3d.Perspective(c.fov, c.aspect, c.near, c.far)
	c.viewProj = c.proj.Mul(c.view)
}

// Position returns the camera position.
func (c *Camera) Position() math3d.Vec3 { return c.position }

// Pitch returns the rotation about the camera's right axis in radians.
func (c *Camera) Pitch() float64 { return c.pitch }

// Yaw returns the rotation about the world up axis in radians.
func (c *Camera) Yaw() float64 { return c.yaw }

// FOV returns the vertical field of view in radians.
func (c *Camera) FOV() float64 { return c.fov }

// Width returns the target width in pixels.
func (c *Camera) Width() int { return c.width }

// Height returns the target height in pixels.
func (c *Camera) Height() int { return c.height }

// Forward returns the unit view direction.
func (c *Camera) Forward() math3d.Vec3 { return c.forward }

// Right returns the unit right direction.
func (c *Camera) Right() math3d.Vec3 { return c.right }

// Up returns the unit up direction.
func (c *Camera) Up() math3d.Vec3 { return c.up }

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.position = pos
	c.update()
}

// SetRotation sets pitch and yaw in radians. Pitch is clamped short of
// straight up or down.
func (c *Camera) SetRotation(pitch, yaw float64) {
	c.pitch = clampPitch(pitch)
	c.yaw = yaw
	c.update()
}

// SetFOV sets the vertical field of view in radians.
func (c *Camera) SetFOV(fov float64) {
	c.fov = fov
	c.update()
}

// SetSize sets the target dimensions. It must be called before rendering
// into a resized buffer.
func (c *Camera) SetSize(width, height int) {
	c.width, c.height = width, height
	c.update()
}

// SetClipPlanes sets the near and far planes used for projection.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.near, c.far = near, far
	c.update()
}

// MoveForward moves the camera along its view direction.
func (c *Camera) MoveForward(distance float64) {
	c.SetPosition(c.position.Add(c.forward.Scale(distance)))
}

// MoveRight moves the camera along its right direction.
func (c *Camera) MoveRight(distance float64) {
	c.SetPosition(c.position.Add(c.right.Scale(distance)))
}

// MoveUp moves the camera along the world up axis.
func (c *Camera) MoveUp(distance float64) {
	c.SetPosition(c.position.Add(math3d.Up().Scale(distance)))
}

// Rotate adds to pitch and yaw.
func (c *Camera) Rotate(deltaPitch, deltaYaw float64) {
	c.SetRotation(c.pitch+deltaPitch, c.yaw+deltaYaw)
}

// LookAt turns the camera toward target.
func (c *Camera) LookAt(target math3d.Vec3) {
	dir := c.position.VectorTo(target).Normalize()
	if dir.LenSq() == 0 {
		return
	}
	c.SetRotation(math.Asin(dir.Y), math.Atan2(-dir.X, -dir.Z))
}

func clampPitch(p float64) float64 {
	return math.Max(-maxPitch, math.Min(maxPitch, p))
}

// ShootRay returns the ray through the center of pixel (x, y), bounded by
// maxDistance. It reports false for pixels outside the target.
func (c *Camera) ShootRay(x, y int, maxDistance float64) (math3d.Ray, bool) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return math3d.Ray{}, false
	}
	px := (2*(float64(x)+0.5)/float64(c.width) - 1) * c.tanHalfFOV * c.aspect
	py := (1 - 2*(float64(y)+0.5)/float64(c.height)) * c.tanHalfFOV
	dir := c.forward.Add(c.right.Scale(px)).Add(c.up.Scale(py))
	return math3d.NewRay(c.position, dir, maxDistance), true
}

// ViewMatrix returns the view matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 { return c.view }

// ProjectionMatrix returns the projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 { return c.proj }

// ViewProjectionMatrix returns the combined view-projection matrix.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 { return c.viewProj }

// WorldToScreen projects a world point to pixel coordinates of the
// camera's target. Returns (screenX, screenY, depth, visible).
func (c *Camera) WorldToScreen(worldPos math3d.Vec3) (x, y, depth float64, visible bool) {
	clipPos := c.viewProj.MulVec4(math3d.V4FromV3(worldPos, 1))
	if clipPos.W <= 0 {
		return 0, 0, 0, false
	}

	ndc := clipPos.PerspectiveDivide()
	if ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 || ndc.Z < -1 || ndc.Z > 1 {
		return 0, 0, 0, false
	}

	x = (ndc.X + 1) * 0.5 * float64(c.width)
	y = (1 - ndc.Y) * 0.5 * float64(c.height)
	return x, y, ndc.Z, true
}

// Frustum returns the volume primary rays can reach: the view frustum with
// its near plane moved back to the eye and its far plane at far. A
// non-positive far means rays are unbounded, and the far plane accepts
// everything.
func (c *Camera) Frustum(far float64) Frustum {
	f := NewFrustumFromMatrix(c.viewProj)
	if far > 0 {
		proj := math3d.Perspective(c.fov, c.aspect, c.near, math.Max(far, c.near*2))
		f = NewFrustumFromMatrix(proj.Mul(c.view))
	} else {
		f.Planes[FrustumFar] = ClipPlane{}
	}
	f.Planes[FrustumNear] = ClipPlane{Normal: c.forward, D: -c.forward.Dot(c.position)}
	return f
}
