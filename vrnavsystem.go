// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package main

import (
	mgl "github.com/go-gl/mathgl/mgl32"
	"github.com/tbogdala/fizzle/scene"
	"github.com/tbogdala/glider"
	vr "github.com/tbogdala/openvr-go"
)

/* Notes on controller state:

Axis mapping
============
Axis 0 = Trackpad {X,Y} where vector <0,1> is up and <1,0> is right
Axis 1 = Trigger {X} where trigger is 0..1

Trackpad X strafes the camera sideways, trackpad Y moves it along the view
direction. Both are per-frame velocity offsets, not positions.

*/

const (
	vrNavSystemPriority = -100.0
	vrNavSystemName     = "VRNavSystem"

	// axis readings closer to zero than this are treated as sensor noise
	defaultAxisDeadzone = float32(0.1)

	// per-frame movement scale for the two trackpad directions
	defaultPanSpeed  = float32(0.1)
	defaultMoveSpeed = float32(0.1)

	// radius of the sphere used to test movement against the wrap walls
	cameraProbeRadius = float32(0.25)
)

// VRNavSystem implements the fizzle/scene/System interface and handles
// navigation while an immersive session is active. Each frame it scans the
// tracked devices for up to two connected controllers and turns their
// trackpad deflection into camera movement.
//
// NOTE: for purposes of this API, the left controller is the controller that
// is detected first and is probably the controller that was first powered on.
type VRNavSystem struct {
	// OnGripButtonL is a function that will get called when the grip side
	// button on the left controller gets pressed.
	OnGripButtonL func()

	// OnGripButtonR is a function that will get called when the grip side
	// button on the right controller gets pressed.
	OnGripButtonR func()

	// Deadzone is the axis magnitude below which input reads as zero.
	Deadzone float32

	// PanSpeed scales trackpad X into sideways movement per frame.
	PanSpeed float32

	// MoveSpeed scales trackpad Y into forward movement per frame.
	MoveSpeed float32

	// vrSystem is the IVRSystem interface for OpenVR set on Initialize().
	vrSystem *vr.System

	camera    *WrapCamera
	wrapScene *WrapScene
	enabled   bool

	// hands holds the handedness labels of the controllers found during the
	// last device scan, for status display only.
	hands []string
}

// NewVRNavSystem creates a new VRNavSystem object.
func NewVRNavSystem() *VRNavSystem {
	system := new(VRNavSystem)
	system.Deadzone = defaultAxisDeadzone
	system.PanSpeed = defaultPanSpeed
	system.MoveSpeed = defaultMoveSpeed
	return system
}

// Initialize sets up the system with the OpenVR interface, the camera to
// move and the scene whose colliders bound that movement. vrSystem may be
// nil when running without a headset; the system then never does anything.
func (s *VRNavSystem) Initialize(vrSystem *vr.System, camera *WrapCamera, wrapScene *WrapScene) {
	s.vrSystem = vrSystem
	s.camera = camera
	s.wrapScene = wrapScene
}

// SetEnabled controls whether controller input moves the camera. The session
// system enables this while an immersive session is active.
func (s *VRNavSystem) SetEnabled(enabled bool) {
	s.enabled = enabled
}

// IsEnabled returns whether controller input is being processed.
func (s *VRNavSystem) IsEnabled() bool {
	return s.enabled
}

// ConnectedHands returns the handedness labels for the controllers seen in
// the last scan. Meant for status display only.
func (s *VRNavSystem) ConnectedHands() []string {
	return s.hands
}

// Update should get called to run updates for the system every frame
// by the owning Manager object.
func (s *VRNavSystem) Update(frameDelta float32) {
	s.hands = s.hands[:0]
	if !s.enabled || s.vrSystem == nil || s.camera == nil {
		return
	}

	var controllerState vr.ControllerState

	var foundLeft bool
	// find the first controller connected and check its buttons
	for i := vr.TrackedDeviceIndexHmd + 1; i < vr.MaxTrackedDeviceCount; i++ {
		deviceClass := s.vrSystem.GetTrackedDeviceClass(int(i))
		if deviceClass != vr.TrackedDeviceClassController {
			continue
		}

		// we don't track controllers that are powered off
		if !s.vrSystem.IsTrackedDeviceConnected(uint32(i)) {
			continue
		}

		if foundLeft {
			s.hands = append(s.hands, "right")
		} else {
			s.hands = append(s.hands, "left")
		}

		// get the controller button state
		s.vrSystem.GetControllerState(int(i), &controllerState)

		// check for the grip button press
		if controllerState.ButtonPressed != 0 {
			const gripMask uint64 = 1 << vr.ButtonGrip
			if gripMask&controllerState.ButtonPressed > 0 {
				if foundLeft && s.OnGripButtonR != nil {
					s.OnGripButtonR()
				} else if s.OnGripButtonL != nil {
					s.OnGripButtonL()
				}
			}
		}

		// turn the trackpad deflection into camera movement. a controller
		// that reports no axes just yields zero deltas and is a no-op.
		lateral, forward := panDeltas(controllerState.Axis[0].X, controllerState.Axis[0].Y,
			s.Deadzone, s.PanSpeed, s.MoveSpeed)
		s.moveCamera(lateral, forward)

		// switch processing to the 'right' controller
		if foundLeft == true {
			break
		}
		foundLeft = true
	}
}

// applyDeadzone zeroes out axis readings with a magnitude under the deadzone
// threshold; a reading exactly at the threshold passes through.
func applyDeadzone(v, deadzone float32) float32 {
	if mgl.Abs(v) < deadzone {
		return 0.0
	}
	return v
}

// panDeltas maps a trackpad sample to per-frame lateral and forward movement
// amounts after deadzone filtering.
func panDeltas(x, y, deadzone, panSpeed, moveSpeed float32) (lateral, forward float32) {
	lateral = applyDeadzone(x, deadzone) * panSpeed
	forward = applyDeadzone(y, deadzone) * moveSpeed
	return lateral, forward
}

// moveCamera translates the camera along its own right and forward vectors,
// rejecting movement that would push the camera probe into a wall collider.
func (s *VRNavSystem) moveCamera(lateral, forward float32) {
	if lateral == 0.0 && forward == 0.0 {
		return
	}

	orientation := s.camera.GetOrientation()
	right := orientation.Rotate(mgl.Vec3{1.0, 0.0, 0.0})
	ahead := orientation.Rotate(mgl.Vec3{0.0, 0.0, -1.0})
	delta := right.Mul(lateral).Add(ahead.Mul(forward))

	proposed := s.camera.GetPosition().Add(delta)
	if s.collidesWithScene(proposed) {
		return
	}

	s.camera.Translate(delta)
}

// collidesWithScene tests a camera position against the coarse colliders of
// every scene entity.
func (s *VRNavSystem) collidesWithScene(position mgl.Vec3) bool {
	if s.wrapScene == nil {
		return false
	}

	probe := glider.NewSphere()
	probe.Center = position
	probe.Radius = cameraProbeRadius

	collisionFound := false
	s.wrapScene.MapEntities(func(id uint64, e scene.Entity) {
		collidable, okay := e.(CollidableEntity)
		if !okay {
			return
		}
		for _, colObject := range collidable.GetColliders() {
			if glider.Collide(probe, colObject) != glider.NoIntersect {
				collisionFound = true
				break
			}
		}
	})

	return collisionFound
}

// OnAddEntity should get called by the scene Manager each time a new entity
// has been added to the scene.
func (s *VRNavSystem) OnAddEntity(newEntity scene.Entity) {
	// NOP
}

// OnRemoveEntity should get called by the scene Manager each time an entity
// has been removed from the scene.
func (s *VRNavSystem) OnRemoveEntity(oldEntity scene.Entity) {
	// NOP
}

// GetRequestedPriority returns the requested priority level for the System
// which may be of significance to a Manager if they want to order Update() calls.
func (s *VRNavSystem) GetRequestedPriority() float32 {
	return vrNavSystemPriority
}

// GetName returns the name of the system that can be used to identify
// the System within Manager.
func (s *VRNavSystem) GetName() string {
	return vrNavSystemName
}
