// Copyright 2017, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package main

import (
	"math"
	"testing"

	mgl "github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestWrapCameraInitialOrbit(t *testing.T) {
	camera := NewWrapCamera(mgl.Vec3{0.0, 0.0, 0.0}, 2.0)

	// yaw zero places the camera on the +Z side of the target
	pos := camera.GetPosition()
	assert.InDelta(t, 0.0, float64(pos[0]), 1e-6)
	assert.InDelta(t, 0.0, float64(pos[1]), 1e-6)
	assert.InDelta(t, 2.0, float64(pos[2]), 1e-6)
}

func TestWrapCameraYawOrbitStaysLevel(t *testing.T) {
	camera := NewWrapCamera(mgl.Vec3{0.0, 0.0, 0.0}, 2.0)

	// orbit all the way around in small steps; the camera must stay on the
	// horizontal plane at the orbit distance the whole time
	for i := 0; i < 64; i++ {
		camera.RotateYaw(float32(2.0 * math.Pi / 64.0))
		pos := camera.GetPosition()
		assert.InDelta(t, 0.0, float64(pos[1]), 1e-5)

		dist := math.Sqrt(float64(pos[0]*pos[0] + pos[2]*pos[2]))
		assert.InDelta(t, 2.0, dist, 1e-4)
	}
}

func TestWrapCameraOrientationStaysUnit(t *testing.T) {
	camera := NewWrapCamera(mgl.Vec3{0.0, 0.0, 0.0}, 2.0)

	for i := 0; i < 1000; i++ {
		camera.RotateYaw(0.013)
		assert.InDelta(t, 1.0, float64(camera.GetOrientation().Len()), 1e-5)
	}
}

func TestWrapCameraSnapshotRestore(t *testing.T) {
	camera := NewWrapCamera(mgl.Vec3{0.0, 0.0, 0.0}, 2.0)
	camera.RotateYaw(0.9)
	state := camera.Snapshot()

	camera.Translate(mgl.Vec3{1.0, 2.0, 3.0})
	camera.RotateYaw(1.1)

	camera.Restore(state)
	assert.Equal(t, state.Position, camera.GetPosition())
	assert.Equal(t, state.Orientation, camera.GetOrientation())
}

func TestWrapCameraViewMatrixMatchesLookAt(t *testing.T) {
	camera := NewWrapCamera(mgl.Vec3{0.0, 0.0, 0.0}, 3.0)
	camera.RotateYaw(0.4)

	expected := mgl.LookAtV(camera.GetPosition(), camera.Target, mgl.Vec3{0.0, 1.0, 0.0})
	view := camera.GetViewMatrix()

	for i := 0; i < 16; i++ {
		assert.InDelta(t, float64(expected[i]), float64(view[i]), 1e-5,
			"view matrix element %d", i)
	}
}

func TestWrapCameraTranslate(t *testing.T) {
	camera := NewWrapCamera(mgl.Vec3{0.0, 0.0, 0.0}, 0.0)
	camera.Translate(mgl.Vec3{0.5, 0.0, -1.5})
	camera.Translate(mgl.Vec3{0.5, 0.25, 0.0})

	pos := camera.GetPosition()
	assert.InDelta(t, 1.0, float64(pos[0]), 1e-6)
	assert.InDelta(t, 0.25, float64(pos[1]), 1e-6)
	assert.InDelta(t, -1.5, float64(pos[2]), 1e-6)
}
