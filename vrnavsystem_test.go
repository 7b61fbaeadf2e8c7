// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package main

import (
	"testing"

	mgl "github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestApplyDeadzone(t *testing.T) {
	testCases := []struct {
		Value  float32
		Expect float32
	}{
		{0.0, 0.0},
		{0.05, 0.0},
		{-0.05, 0.0},
		{0.0999, 0.0},
		{-0.0999, 0.0},
		// the documented boundary: exactly the deadzone passes through
		{0.1, 0.1},
		{-0.1, -0.1},
		{0.5, 0.5},
		{-1.0, -1.0},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.Expect, applyDeadzone(tc.Value, defaultAxisDeadzone),
			"deadzone result for %f", tc.Value)
	}
}

func TestPanDeltasSuppressesNoise(t *testing.T) {
	// trackpad sample {0.5, -0.05}: X is real deflection, Y is jitter
	lateral, forward := panDeltas(0.5, -0.05, 0.1, 0.1, 0.1)
	assert.InDelta(t, 0.05, float64(lateral), 1e-6)
	assert.Equal(t, float32(0.0), forward)
}

func TestMoveCameraLateral(t *testing.T) {
	camera := NewWrapCamera(mgl.Vec3{0.0, 0.0, 0.0}, 0.0)
	nav := NewVRNavSystem()
	nav.Initialize(nil, camera, nil)

	// identity orientation: lateral movement is straight down +X
	nav.moveCamera(0.05, 0.0)

	pos := camera.GetPosition()
	assert.InDelta(t, 0.05, float64(pos[0]), 1e-6)
	assert.InDelta(t, 0.0, float64(pos[1]), 1e-6)
	assert.InDelta(t, 0.0, float64(pos[2]), 1e-6)
}

func TestMoveCameraForwardFollowsView(t *testing.T) {
	camera := NewWrapCamera(mgl.Vec3{0.0, 0.0, 0.0}, 0.0)
	nav := NewVRNavSystem()
	nav.Initialize(nil, camera, nil)

	// identity orientation looks down -Z, so forward movement is -Z
	nav.moveCamera(0.0, 0.1)

	pos := camera.GetPosition()
	assert.InDelta(t, 0.0, float64(pos[0]), 1e-6)
	assert.InDelta(t, -0.1, float64(pos[2]), 1e-6)
}

func TestMoveCameraZeroIsNoOp(t *testing.T) {
	camera := NewWrapCamera(mgl.Vec3{0.0, 0.0, 0.0}, 2.0)
	before := camera.GetPosition()

	nav := NewVRNavSystem()
	nav.Initialize(nil, camera, nil)
	nav.moveCamera(0.0, 0.0)

	assert.Equal(t, before, camera.GetPosition())
}

func TestMoveCameraBlockedByWrapWall(t *testing.T) {
	// park the camera just inside the wrap wall at +Z
	camera := NewWrapCamera(mgl.Vec3{0.0, 0.0, 0.0}, 9.4)

	wrapScene := NewWrapScene()
	wrapEntity := NewWrapEntity()
	wrapEntity.ID = wrapScene.GetNextID()
	wrapScene.AddEntity(wrapEntity)

	nav := NewVRNavSystem()
	nav.Initialize(nil, camera, wrapScene)

	// backing up (-forward is +Z here) would push the probe into the wall
	before := camera.GetPosition()
	nav.moveCamera(0.0, -0.2)
	assert.Equal(t, before, camera.GetPosition(), "movement into the wall should be rejected")

	// moving toward the wrap axis is fine
	nav.moveCamera(0.0, 0.2)
	pos := camera.GetPosition()
	assert.InDelta(t, 9.2, float64(pos[2]), 1e-5)
}

func TestVRNavUpdateWithoutHardware(t *testing.T) {
	camera := NewWrapCamera(mgl.Vec3{0.0, 0.0, 0.0}, 2.0)
	before := camera.GetPosition()

	nav := NewVRNavSystem()
	nav.Initialize(nil, camera, nil)
	nav.SetEnabled(true)

	// with no vr.System attached the frame must be a clean no-op
	nav.Update(0.016)

	assert.Equal(t, before, camera.GetPosition())
	assert.Empty(t, nav.ConnectedHands())
}
