// Package camera provides a first-person fly camera for viewing terrain.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/isoterrain/config"
)

// Pitch is clamped short of vertical so the view basis never degenerates.
const maxPitch = 89.0

// InputState is a snapshot of the controls sampled once per frame.
type InputState struct {
	Forward, Back, Left, Right bool

	// Mouse movement since the previous frame, in pixels.
	// Positive MouseDY looks up.
	MouseDX, MouseDY float32
}

// Camera is a yaw/pitch fly camera.
type Camera struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Up       mgl32.Vec3

	// Orientation in degrees
	Yaw, Pitch float32

	MovementSpeed    float32 // World units per update
	MouseSensitivity float32 // Degrees per pixel
	Fovy             float32 // Vertical field of view in degrees
}

// New creates a camera at position looking along the direction given by yaw and pitch.
func New(position mgl32.Vec3, yaw, pitch float32) *Camera {
	c := &Camera{
		Position:         position,
		Up:               mgl32.Vec3{0, 1, 0},
		Yaw:              yaw,
		Pitch:            clamp(pitch, -maxPitch, maxPitch),
		MovementSpeed:    0.5,
		MouseSensitivity: 0.3,
		Fovy:             45,
	}
	c.updateFront()
	return c
}

// Default returns the standard starting camera: above the terrain at
// (50, 150, 3), looking down -Z.
func Default() *Camera {
	return New(mgl32.Vec3{50, 150, 3}, -90, 0)
}

// Update applies one frame of input: mouse look first, then movement.
func (c *Camera) Update(in InputState) {
	if in.MouseDX != 0 || in.MouseDY != 0 {
		c.Look(in.MouseDX, in.MouseDY)
	}

	if in.Forward {
		c.Position = c.Position.Add(c.Front.Mul(c.MovementSpeed))
	}
	if in.Back {
		c.Position = c.Position.Sub(c.Front.Mul(c.MovementSpeed))
	}
	right := c.Right()
	if in.Left {
		c.Position = c.Position.Sub(right.Mul(c.MovementSpeed))
	}
	if in.Right {
		c.Position = c.Position.Add(right.Mul(c.MovementSpeed))
	}
}

// Look turns the camera by a mouse offset in pixels.
func (c *Camera) Look(dx, dy float32) {
	c.Yaw += dx * c.MouseSensitivity
	c.Pitch = clamp(c.Pitch+dy*c.MouseSensitivity, -maxPitch, maxPitch)
	c.updateFront()
}

// Right returns the unit vector to the camera's right.
func (c *Camera) Right() mgl32.Vec3 {
	return c.Front.Cross(c.Up).Normalize()
}

// Target returns the point one unit in front of the camera.
func (c *Camera) Target() mgl32.Vec3 {
	return c.Position.Add(c.Front)
}

// updateFront recomputes the view direction from yaw and pitch.
func (c *Camera) updateFront() {
	yaw := mgl32.DegToRad(c.Yaw)
	pitch := mgl32.DegToRad(c.Pitch)
	c.Front = mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}.Normalize()
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

// FromConfig creates a camera from configured starting state.
func FromConfig(cfg config.CameraConfig) *Camera {
	c := New(mgl32.Vec3(cfg.Position), cfg.Yaw, cfg.Pitch)
	c.MovementSpeed = cfg.MovementSpeed
	c.MouseSensitivity = cfg.MouseSensitivity
	c.Fovy = cfg.Fovy
	return c
}
