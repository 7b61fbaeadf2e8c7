// Copyright 2017, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package main

import (
	"testing"

	mgl "github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

// newTestSessionSystem builds a session system against stub systems that
// were never GL-initialized; the session logic only flips their enabled
// flags so no graphics context is needed.
func newTestSessionSystem(camera *WrapCamera) (*SessionSystem, *MouseNavSystem, *VRNavSystem) {
	mouseNav := NewMouseNavSystem()
	vrNav := NewVRNavSystem()
	session := NewSessionSystem(camera)
	session.Initialize(mouseNav, vrNav, nil, NewVRRenderSystem())
	return session, mouseNav, vrNav
}

func TestSessionEndWithoutStartIsNoOp(t *testing.T) {
	camera := NewWrapCamera(mgl.Vec3{0.0, 0.0, 0.0}, 2.0)
	camera.RotateYaw(0.7)
	before := camera.Snapshot()

	session, _, _ := newTestSessionSystem(camera)
	session.EndSession()

	assert.False(t, session.IsActive())
	assert.Equal(t, before, camera.Snapshot())
}

func TestSessionRoundTripRestoresCamera(t *testing.T) {
	camera := NewWrapCamera(mgl.Vec3{0.0, 0.0, 0.0}, 2.0)
	camera.RotateYaw(1.2)
	before := camera.Snapshot()

	session, _, _ := newTestSessionSystem(camera)
	session.StartSession()
	assert.True(t, session.IsActive())

	// simulate immersive-mode movement
	camera.Translate(mgl.Vec3{3.0, 0.5, -2.0})

	session.EndSession()
	assert.False(t, session.IsActive())

	restored := camera.Snapshot()
	assert.Equal(t, before.Position, restored.Position)
	assert.Equal(t, before.Orientation, restored.Orientation)
}

func TestSessionRestoredOrientationIsUnit(t *testing.T) {
	camera := NewWrapCamera(mgl.Vec3{0.0, 0.0, 0.0}, 2.0)
	camera.RotateYaw(2.6)

	session, _, _ := newTestSessionSystem(camera)
	session.StartSession()
	session.EndSession()

	assert.InDelta(t, 1.0, float64(camera.GetOrientation().Len()), 1e-6)
}

func TestSessionDoubleStartKeepsSavedState(t *testing.T) {
	camera := NewWrapCamera(mgl.Vec3{0.0, 0.0, 0.0}, 2.0)
	before := camera.Snapshot()

	session, _, _ := newTestSessionSystem(camera)
	session.StartSession()

	// a second start while active must not re-snapshot the moved camera
	camera.Translate(mgl.Vec3{5.0, 0.0, 0.0})
	session.StartSession()

	session.EndSession()
	assert.Equal(t, before, camera.Snapshot())
}

func TestSessionTogglesNavigationSystems(t *testing.T) {
	camera := NewWrapCamera(mgl.Vec3{0.0, 0.0, 0.0}, 2.0)
	session, mouseNav, vrNav := newTestSessionSystem(camera)

	assert.True(t, mouseNav.IsEnabled())
	assert.False(t, vrNav.IsEnabled())

	session.StartSession()
	assert.False(t, mouseNav.IsEnabled())
	assert.True(t, vrNav.IsEnabled())

	session.EndSession()
	assert.True(t, mouseNav.IsEnabled())
	assert.False(t, vrNav.IsEnabled())
}

func TestSessionUnavailableWithoutHeadset(t *testing.T) {
	camera := NewWrapCamera(mgl.Vec3{0.0, 0.0, 0.0}, 2.0)
	session := NewSessionSystem(camera)
	session.Initialize(NewMouseNavSystem(), NewVRNavSystem(), nil, nil)

	assert.False(t, session.CanStartSession())

	session.StartSession()
	assert.False(t, session.IsActive())
}

func TestSessionToggle(t *testing.T) {
	camera := NewWrapCamera(mgl.Vec3{0.0, 0.0, 0.0}, 2.0)
	session, _, _ := newTestSessionSystem(camera)

	session.ToggleSession()
	assert.True(t, session.IsActive())
	session.ToggleSession()
	assert.False(t, session.IsActive())
}
