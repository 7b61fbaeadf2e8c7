// Copyright 2017, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package main

import (
	"math"

	mgl "github.com/go-gl/mathgl/mgl32"
)

// CameraState is a snapshot of the camera transform. The session system
// captures one of these when an immersive session starts and restores it
// when the session ends.
type CameraState struct {
	Position    mgl.Vec3
	Orientation mgl.Quat
}

// WrapCamera is the single camera for the scene. In desktop mode it orbits
// the wrap axis at a fixed distance with the pitch locked to the horizontal
// plane; in immersive mode the navigation system translates it freely.
//
// The orientation is kept as a unit quaternion at all times.
type WrapCamera struct {
	// Target is the point the desktop orbit circles around.
	Target mgl.Vec3

	// Distance is the desktop orbit radius from Target.
	Distance float32

	yaw         float32
	position    mgl.Vec3
	orientation mgl.Quat
}

// NewWrapCamera creates a camera orbiting target at the given distance,
// starting at a yaw of zero.
func NewWrapCamera(target mgl.Vec3, distance float32) *WrapCamera {
	c := new(WrapCamera)
	c.Target = target
	c.Distance = distance
	c.orientation = mgl.QuatIdent()
	c.updateOrbit()
	return c
}

// RotateYaw spins the orbit around the vertical axis. There is no pitch
// counterpart; desktop viewing is yaw-only.
func (c *WrapCamera) RotateYaw(delta float32) {
	c.yaw += delta
	c.updateOrbit()
}

// Yaw returns the current orbit angle in radians.
func (c *WrapCamera) Yaw() float32 {
	return c.yaw
}

// Translate moves the camera without changing its orientation. Used by the
// immersive navigation system for joystick movement.
func (c *WrapCamera) Translate(delta mgl.Vec3) {
	c.position = c.position.Add(delta)
}

// Snapshot captures the current transform.
func (c *WrapCamera) Snapshot() CameraState {
	return CameraState{
		Position:    c.position,
		Orientation: c.orientation.Normalize(),
	}
}

// Restore puts the camera back at a previously captured transform. The
// orientation is renormalized so the unit quaternion invariant holds even if
// the snapshot was mutated.
func (c *WrapCamera) Restore(state CameraState) {
	c.position = state.Position
	c.orientation = state.Orientation.Normalize()
}

// GetViewMatrix returns the view matrix for the camera transform. This makes
// WrapCamera usable as a fizzle camera for DrawRenderable.
func (c *WrapCamera) GetViewMatrix() mgl.Mat4 {
	view := c.orientation.Inverse().Mat4()
	return view.Mul4(mgl.Translate3D(-c.position[0], -c.position[1], -c.position[2]))
}

// GetPosition returns the camera location in world space.
func (c *WrapCamera) GetPosition() mgl.Vec3 {
	return c.position
}

// GetOrientation returns the camera orientation quaternion.
func (c *WrapCamera) GetOrientation() mgl.Quat {
	return c.orientation
}

// updateOrbit recalculates position and orientation from the orbit yaw. With
// a yaw of zero the camera sits at Target+Z looking down -Z, so the
// orientation is just a rotation about the vertical axis.
func (c *WrapCamera) updateOrbit() {
	sin := float32(math.Sin(float64(c.yaw)))
	cos := float32(math.Cos(float64(c.yaw)))
	c.position = c.Target.Add(mgl.Vec3{sin * c.Distance, 0.0, cos * c.Distance})
	c.orientation = mgl.QuatRotate(c.yaw, mgl.Vec3{0.0, 1.0, 0.0}).Normalize()
}
