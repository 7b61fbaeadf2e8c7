// Copyright 2017, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package main

import (
	"fmt"
	"strings"

	gui "github.com/tbogdala/eweygewey"
	fonts "github.com/tbogdala/eweygewey/embeddedfonts"
	glfwinput "github.com/tbogdala/eweygewey/glfwinput"
	"github.com/tbogdala/fizzle"
	"github.com/tbogdala/fizzle/scene"
)

const (
	uiSystemPriority = 100.0
	uiSystemName     = "UserInterface"
)

var (
	fontScale  = 14
	fontGlyphs = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890., :[]{}\\|<>;\"'~`?/-+_=()*&^%$#@!"
)

// UISystem implements fizzle/scene/System interface and renders the status
// overlay: whether a headset is available, which controllers are connected,
// what background is wrapped around the viewer, and the button to enter or
// leave the immersive session.
type UISystem struct {
	uiman     *gui.Manager
	statusWnd *gui.Window
	visible   bool

	session   *SessionSystem
	vrNav     *VRNavSystem
	wrapScene *WrapScene
}

// NewUISystem allocates a new UISystem object.
func NewUISystem() *UISystem {
	s := new(UISystem)
	s.visible = true
	return s
}

// Initialize creates the user interface manager and builds the status window.
func (s *UISystem) Initialize(rs RenderSystem, session *SessionSystem, vrNav *VRNavSystem, wrapScene *WrapScene) error {
	s.session = session
	s.vrNav = vrNav
	s.wrapScene = wrapScene

	// create the UI manager
	s.uiman = gui.NewManager(fizzle.GetGraphics())
	mainWin := rs.GetMainWindow()
	w, h := mainWin.GetSize()

	err := s.uiman.Initialize(gui.VertShader330, gui.FragShader330, int32(w), int32(h), int32(h))
	if err != nil {
		return fmt.Errorf("Failed to initialize the user interface! " + err.Error())
	}
	glfwinput.SetInputHandlers(s.uiman, mainWin)

	// load a font
	fontBytes, err := fonts.OswaldHeavyTtfBytes()
	if err != nil {
		return fmt.Errorf("Failed to load the embedded font: %v", err)
	}
	_, err = s.uiman.NewFontBytes("Default", fontBytes, fontScale, fontGlyphs)
	if err != nil {
		return fmt.Errorf("Failed to load the font file! " + err.Error())
	}

	s.buildStatusWindow()
	return nil
}

// SetVisible will control whether or not the user interface will draw on frame update.
func (s *UISystem) SetVisible(vis bool) {
	s.visible = vis
}

// buildStatusWindow creates the overlay window. The construction closure
// runs every frame, so the text always reflects the current session and
// controller state.
func (s *UISystem) buildStatusWindow() {
	s.statusWnd = s.uiman.NewWindow("Status", 0.01, 0.99, 0.28, 0.2, func(wnd *gui.Window) {
		switch {
		case s.session.IsActive():
			wnd.Text("Immersive session active")
		case s.session.CanStartSession():
			wnd.Text("Headset ready")
		default:
			wnd.Text("Desktop only; no headset found")
		}

		wnd.StartRow()
		hands := s.vrNav.ConnectedHands()
		if len(hands) > 0 {
			wnd.Text(fmt.Sprintf("Controllers: %s", strings.Join(hands, ", ")))
		} else {
			wnd.Text("Controllers: none")
		}

		wnd.StartRow()
		if bg := s.wrapScene.BackgroundName(); bg != "" {
			wnd.Text("Background: " + bg)
		} else {
			wnd.Text("Background: not loaded")
		}

		// only offer the immersive entry point when a headset exists
		if s.session.CanStartSession() {
			wnd.StartRow()
			label := "Enter VR"
			if s.session.IsActive() {
				label = "Exit VR"
			}
			pressed, _ := wnd.Button("SessionButton", label)
			if pressed {
				s.session.ToggleSession()
			}
		}
	})

	s.statusWnd.Title = "Status"
	s.statusWnd.ShowTitleBar = false
	s.statusWnd.IsMoveable = false
	s.statusWnd.AutoAdjustHeight = true
	s.statusWnd.ShowScrollBar = false
	s.statusWnd.IsScrollable = false
}

// Update should get called to run updates for the system every frame
// by the owning Manager object.
func (s *UISystem) Update(frameDelta float32) {
	// draw the user interface if visible
	if s.visible {
		gfx := fizzle.GetGraphics()
		width, height := s.uiman.GetResolution()
		gfx.Viewport(0, 0, int32(width), int32(height))

		s.uiman.Construct(float64(frameDelta))
		s.uiman.Draw()
	}
}

// OnAddEntity should get called by the scene Manager each time a new entity
// has been added to the scene.
func (s *UISystem) OnAddEntity(newEntity scene.Entity) {}

// OnRemoveEntity should get called by the scene Manager each time an entity
// has been removed from the scene.
func (s *UISystem) OnRemoveEntity(oldEntity scene.Entity) {}

// GetRequestedPriority returns the requested priority level for the System
// which may be of significance to a Manager if they want to order Update() calls.
func (s *UISystem) GetRequestedPriority() float32 { return uiSystemPriority }

// GetName returns the name of the system that can be used to identify
// the System within Manager.
func (s *UISystem) GetName() string { return uiSystemName }
