// Copyright 2017, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package main

import (
	glfw "github.com/go-gl/glfw/v3.1/glfw"
	"github.com/tbogdala/fizzle/scene"
)

const (
	mouseNavSystemPriority = -100.0
	mouseNavSystemName     = "MouseNavSystem"
)

var (
	// radians of orbit yaw per pixel of horizontal mouse drag
	mouseDragSpeed = float32(0.005)
)

// MouseNavSystem implements the fizzle/scene/System interface and handles the
// desktop viewing controls: dragging with the left mouse button orbits the
// camera around the wrap axis. The orbit is yaw-only; vertical drag is
// ignored so the view stays level with the horizon.
type MouseNavSystem struct {
	mainWindow *glfw.Window
	camera     *WrapCamera

	enabled  bool
	dragging bool
	lastX    float64
}

// NewMouseNavSystem creates a new MouseNavSystem object.
func NewMouseNavSystem() *MouseNavSystem {
	system := new(MouseNavSystem)
	system.enabled = true
	return system
}

// Initialize sets the window to read cursor input from and the camera to
// drive.
func (s *MouseNavSystem) Initialize(w *glfw.Window, camera *WrapCamera) {
	s.mainWindow = w
	s.camera = camera
}

// SetEnabled controls whether the system reacts to input. The session system
// disables desktop navigation while an immersive session is active.
func (s *MouseNavSystem) SetEnabled(enabled bool) {
	s.enabled = enabled
	if !enabled {
		s.dragging = false
	}
}

// IsEnabled returns whether the system is reacting to input.
func (s *MouseNavSystem) IsEnabled() bool {
	return s.enabled
}

// Update should get called to run updates for the system every frame
// by the owning Manager object.
func (s *MouseNavSystem) Update(frameDelta float32) {
	if !s.enabled || s.mainWindow == nil || s.camera == nil {
		return
	}

	if s.mainWindow.GetMouseButton(glfw.MouseButtonLeft) != glfw.Press {
		s.dragging = false
		return
	}

	x, _ := s.mainWindow.GetCursorPos()
	if !s.dragging {
		// first frame of a drag just records the anchor point
		s.dragging = true
		s.lastX = x
		return
	}

	s.camera.RotateYaw(float32(x-s.lastX) * mouseDragSpeed)
	s.lastX = x
}

// OnAddEntity should get called by the scene Manager each time a new entity
// has been added to the scene.
func (s *MouseNavSystem) OnAddEntity(newEntity scene.Entity) {
	// NOP
}

// OnRemoveEntity should get called by the scene Manager each time an entity
// has been removed from the scene.
func (s *MouseNavSystem) OnRemoveEntity(oldEntity scene.Entity) {
	// NOP
}

// GetRequestedPriority returns the requested priority level for the System
// which may be of significance to a Manager if they want to order Update() calls.
func (s *MouseNavSystem) GetRequestedPriority() float32 {
	return mouseNavSystemPriority
}

// GetName returns the name of the system that can be used to identify
// the System within Manager.
func (s *MouseNavSystem) GetName() string {
	return mouseNavSystemName
}
