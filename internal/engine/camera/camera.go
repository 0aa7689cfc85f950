// Package camera provides the orbit camera used to look at the field.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/meadow/pkg/math"
)

// Clip planes of the projection.
const (
	Near = 0.1
	Far  = 1000
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	CenterX, CenterY, CenterZ float32

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
	PanSpeed        float32 // fraction of Distance per second
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        10.0,
		RotationX:       0.3,
		RotationY:       0.0,
		MinDistance:     1.0,
		MaxDistance:     60.0,
		MinPitch:        0.02,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		PanSpeed:        0.6,
	}
}

// NewOrbitCameraAt creates an orbit camera placed at position and looking
// at target. Position is reproduced exactly unless it violates the limits.
func NewOrbitCameraAt(position, target math.Vec3, minDistance, maxDistance float32) *OrbitCamera {
	c := NewOrbitCamera()
	c.MinDistance = minDistance
	c.MaxDistance = maxDistance
	c.SetCenter(target.X, target.Y, target.Z)

	offset := position.Sub(target)
	c.Distance = offset.Length()
	if c.Distance > 0 {
		c.RotationX = math32.Asin(offset.Y / c.Distance)
		c.RotationY = math32.Atan2(offset.X, offset.Z)
	}
	c.clamp()
	return c
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sinPitch, cosPitch := math32.Sincos(c.RotationX)
	sinYaw, cosYaw := math32.Sincos(c.RotationY)

	return math.Vec3{
		X: c.CenterX + c.Distance*cosPitch*sinYaw,
		Y: c.CenterY + c.Distance*sinPitch,
		Z: c.CenterZ + c.Distance*cosPitch*cosYaw,
	}
}

// Center returns the orbit center.
func (c *OrbitCamera) Center() math.Vec3 {
	return math.Vec3{X: c.CenterX, Y: c.CenterY, Z: c.CenterZ}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center(), math.Up)
}

// ViewProjection returns projection * view for a vertical fov in degrees.
func (c *OrbitCamera) ViewProjection(fovDegrees, aspect float32) math.Mat4 {
	proj := math.Perspective(fovDegrees*math32.Pi/180, aspect, Near, Far)
	return proj.Mul(c.ViewMatrix())
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.clamp()
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.clamp()
}

// HandleMovement pans the center point on the ground plane. forward and
// right are in [-1, 1]; dt is the frame time in seconds.
func (c *OrbitCamera) HandleMovement(forward, right, up, dt float32) {
	speed := c.Distance * c.PanSpeed * dt

	sinYaw, cosYaw := math32.Sincos(c.RotationY)

	// The camera looks along -(sin, cos), so W moves into the scene.
	c.CenterX += (-sinYaw*forward + cosYaw*right) * speed
	c.CenterZ += (-cosYaw*forward - sinYaw*right) * speed
	c.CenterY += up * speed
}

// SetCenter sets the camera's center point.
func (c *OrbitCamera) SetCenter(x, y, z float32) {
	c.CenterX = x
	c.CenterY = y
	c.CenterZ = z
}

// FitToBounds widens the zoom-out limit so the whole box fits in view.
// The current position is left as is.
func (c *OrbitCamera) FitToBounds(lo, hi [3]float32) {
	dx := hi[0] - lo[0]
	dy := hi[1] - lo[1]
	dz := hi[2] - lo[2]
	diag := math32.Sqrt(dx*dx + dy*dy + dz*dz)

	if need := diag * 1.5; need > c.MaxDistance {
		c.MaxDistance = need
	}
}

func (c *OrbitCamera) clamp() {
	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}
