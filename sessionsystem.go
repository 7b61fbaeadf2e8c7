// Copyright 2017, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package main

import (
	"fmt"

	"github.com/tbogdala/fizzle/scene"
)

const (
	sessionSystemPriority = 0.0
	sessionSystemName     = "SessionSystem"
)

// SessionSystem manages the transitions between desktop viewing and an
// immersive headset session. Starting a session snapshots the camera and
// hands navigation over to the VR controllers; ending it restores the camera
// exactly as it was, refreshes the desktop viewport and re-enables mouse
// navigation.
//
// Transitions are event driven; the per-frame Update is a no-op. Only one
// session can be active at a time and redundant start/end calls are guarded
// so the saved camera slot is never clobbered.
type SessionSystem struct {
	camera *WrapCamera

	mouseNav *MouseNavSystem
	vrNav    *VRNavSystem

	desktopRender *ForwardRenderSystem
	vrRender      *VRRenderSystem

	active      bool
	savedCamera CameraState
}

// NewSessionSystem creates a new SessionSystem object for the given camera.
func NewSessionSystem(camera *WrapCamera) *SessionSystem {
	system := new(SessionSystem)
	system.camera = camera
	return system
}

// Initialize wires up the systems toggled by session transitions. Any of
// them may be nil; a nil vrRender means immersive sessions are unavailable
// and StartSession will refuse to activate.
func (s *SessionSystem) Initialize(mouseNav *MouseNavSystem, vrNav *VRNavSystem, desktopRender *ForwardRenderSystem, vrRender *VRRenderSystem) {
	s.mouseNav = mouseNav
	s.vrNav = vrNav
	s.desktopRender = desktopRender
	s.vrRender = vrRender
}

// IsActive returns whether an immersive session is currently running.
func (s *SessionSystem) IsActive() bool {
	return s.active
}

// CanStartSession returns whether the immersive entry point should be
// offered at all.
func (s *SessionSystem) CanStartSession() bool {
	return s.vrRender != nil
}

// StartSession begins an immersive session. Starting while one is already
// active is a no-op and leaves the saved camera state alone.
func (s *SessionSystem) StartSession() {
	if s.active {
		return
	}
	if s.vrRender == nil {
		fmt.Printf("Immersive session requested but no VR system is available.\n")
		return
	}

	s.savedCamera = s.camera.Snapshot()

	if s.mouseNav != nil {
		s.mouseNav.SetEnabled(false)
	}
	if s.vrNav != nil {
		s.vrNav.SetEnabled(true)
	}
	if s.desktopRender != nil {
		s.desktopRender.SetEnabled(false)
	}
	s.vrRender.SetEnabled(true)

	s.active = true
	fmt.Printf("Immersive session started.\n")
}

// EndSession ends the immersive session, restoring the camera transform that
// was captured at session start. Ending while no session is active is a
// no-op and must not alter the camera.
func (s *SessionSystem) EndSession() {
	if !s.active {
		return
	}

	s.camera.Restore(s.savedCamera)

	if s.vrRender != nil {
		s.vrRender.SetEnabled(false)
	}
	if s.vrNav != nil {
		s.vrNav.SetEnabled(false)
	}
	if s.mouseNav != nil {
		s.mouseNav.SetEnabled(true)
	}
	if s.desktopRender != nil {
		s.desktopRender.SetEnabled(true)
		// window size may have changed while the headset owned the view
		s.desktopRender.RefreshViewport()
	}

	s.active = false
	fmt.Printf("Immersive session ended.\n")
}

// ToggleSession starts a session if none is active and ends the running one
// otherwise.
func (s *SessionSystem) ToggleSession() {
	if s.active {
		s.EndSession()
	} else {
		s.StartSession()
	}
}

// Update should get called to run updates for the system every frame
// by the owning Manager object. Session transitions happen in the event
// handlers, so there is no per-frame work.
func (s *SessionSystem) Update(frameDelta float32) {
	// NOP
}

// OnAddEntity should get called by the scene Manager each time a new entity
// has been added to the scene.
func (s *SessionSystem) OnAddEntity(newEntity scene.Entity) {
	// NOP
}

// OnRemoveEntity should get called by the scene Manager each time an entity
// has been removed from the scene.
func (s *SessionSystem) OnRemoveEntity(oldEntity scene.Entity) {
	// NOP
}

// GetRequestedPriority returns the requested priority level for the System
// which may be of significance to a Manager if they want to order Update() calls.
func (s *SessionSystem) GetRequestedPriority() float32 {
	return sessionSystemPriority
}

// GetName returns the name of the system that can be used to identify
// the System within Manager.
func (s *SessionSystem) GetName() string {
	return sessionSystemName
}
