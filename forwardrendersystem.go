// Copyright 2017, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package main

import (
	"fmt"

	glfw "github.com/go-gl/glfw/v3.1/glfw"
	mgl "github.com/go-gl/mathgl/mgl32"

	fizzle "github.com/tbogdala/fizzle"
	graphics "github.com/tbogdala/fizzle/graphicsprovider"
	opengl "github.com/tbogdala/fizzle/graphicsprovider/opengl"
	renderer "github.com/tbogdala/fizzle/renderer"
	forward "github.com/tbogdala/fizzle/renderer/forward"
	"github.com/tbogdala/fizzle/scene"
)

const (
	forwardRenderSystemPriority = 100.0
	forwardRenderSystemName     = "RenderSystem"
)

// ForwardRenderSystem implements fizzle/scene/System interface and handles the
// rendering of entities in the scene in a forward renderer. This is the
// desktop view of the wrap; an immersive session disables it and the
// VRRenderSystem takes over until the session ends.
type ForwardRenderSystem struct {
	Renderer   *forward.ForwardRenderer
	MainWindow *glfw.Window

	// Camera is the scene camera used to build the view matrix.
	Camera *WrapCamera

	// Glow supplies the per-draw uniform binder for the wrap shader.
	Glow *GlowShader

	gfx     graphics.GraphicsProvider
	enabled bool

	visibleEntities []scene.Entity
}

// NewForwardRenderSystem allocates a new ForwardRenderSystem object.
func NewForwardRenderSystem() *ForwardRenderSystem {
	rs := new(ForwardRenderSystem)
	rs.visibleEntities = []scene.Entity{}
	rs.enabled = true
	return rs
}

// Initialize will create the main window using glfw and then create the
// underyling renderer.
func (rs *ForwardRenderSystem) Initialize(windowName string, w int, h int) error {
	// create the window and iniitialize opengl
	err := rs.initGraphics(windowName, w, h)
	if err != nil {
		return err
	}

	// setup the forward renderer
	rs.Renderer = forward.NewForwardRenderer(rs.gfx)
	rs.Renderer.ChangeResolution(int32(w), int32(h))

	// set some OpenGL flags
	rs.gfx.Enable(graphics.CULL_FACE)
	rs.gfx.Enable(graphics.DEPTH_TEST)
	rs.gfx.Enable(graphics.MIPMAP)
	rs.gfx.Enable(graphics.BLEND)
	rs.gfx.BlendFunc(graphics.SRC_ALPHA, graphics.ONE_MINUS_SRC_ALPHA)
	return nil
}

// InitializeShared sets the system up against a window and graphics provider
// that another render system already created. Used when VR hardware is
// present so the desktop and HMD renderers share one GL context.
func (rs *ForwardRenderSystem) InitializeShared(window *glfw.Window, gfx graphics.GraphicsProvider) {
	rs.MainWindow = window
	rs.gfx = gfx

	rs.Renderer = forward.NewForwardRenderer(gfx)
	w, h := window.GetSize()
	rs.Renderer.ChangeResolution(int32(w), int32(h))

	// resize tracking belongs to the desktop renderer in shared mode too;
	// the HMD renderer reads the window size directly each frame
	window.SetSizeCallback(func(wnd *glfw.Window, width int, height int) {
		rs.Renderer.ChangeResolution(int32(width), int32(height))
	})
}

// initGraphics creates an OpenGL window and initializes the required graphics libraries.
// It will either succeed or panic.
func (rs *ForwardRenderSystem) initGraphics(title string, w int, h int) error {
	// GLFW must be initialized before it's called
	err := glfw.Init()
	if err != nil {
		return fmt.Errorf("Failed to initialize GLFW. %v", err)
	}

	// request a OpenGL 3.3 core context
	glfw.WindowHint(glfw.Samples, glSamples)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	// do the actual window creation
	rs.MainWindow, err = glfw.CreateWindow(w, h, title, nil, nil)
	if err != nil {
		return fmt.Errorf("Failed to create the main window. %v", err)
	}

	// set a function to update the renderer on window resize
	rs.MainWindow.SetSizeCallback(func(w *glfw.Window, width int, height int) {
		rs.Renderer.ChangeResolution(int32(width), int32(height))
	})

	rs.MainWindow.MakeContextCurrent()

	// disable v-sync for max draw rate
	glfw.SwapInterval(0)

	// initialize OpenGL
	rs.gfx, err = opengl.InitOpenGL()
	if err != nil {
		return fmt.Errorf("Failed to initialize OpenGL. %v", err)
	}
	fizzle.SetGraphics(rs.gfx)

	return nil
}

// GetRenderer returns the internal renderer being used.
func (rs *ForwardRenderSystem) GetRenderer() *forward.ForwardRenderer {
	return rs.Renderer
}

// GetMainWindow returns the main application window.
func (rs *ForwardRenderSystem) GetMainWindow() *glfw.Window {
	return rs.MainWindow
}

// SetEnabled controls whether the system draws on Update.
func (rs *ForwardRenderSystem) SetEnabled(enabled bool) {
	rs.enabled = enabled
}

// RefreshViewport resizes the render target to the current window
// dimensions. Called when a session ends in case the window changed while
// the headset owned the view; the projection aspect follows automatically
// since it is rebuilt from the resolution every frame.
func (rs *ForwardRenderSystem) RefreshViewport() {
	if rs.MainWindow == nil || rs.Renderer == nil {
		return
	}
	w, h := rs.MainWindow.GetSize()
	rs.Renderer.ChangeResolution(int32(w), int32(h))
}

// GetRequestedPriority returns the requested priority level for the System
// which may be of significance to a Manager if they want to order Update() calls.
func (rs *ForwardRenderSystem) GetRequestedPriority() float32 {
	return forwardRenderSystemPriority
}

// GetName returns the name of the system that can be used to identify
// the System within Manager.
func (rs *ForwardRenderSystem) GetName() string {
	return forwardRenderSystemName
}

// OnAddEntity should get called by the scene Manager each time a new entity
// has been added to the scene.
func (rs *ForwardRenderSystem) OnAddEntity(newEntity scene.Entity) {
	_, okay := newEntity.(RenderableEntity)
	if okay {
		rs.visibleEntities = append(rs.visibleEntities, newEntity)
	}
}

// OnRemoveEntity should get called by the scene Manager each time an entity
// has been removed from the scene.
func (rs *ForwardRenderSystem) OnRemoveEntity(oldEntity scene.Entity) {
	surviving := rs.visibleEntities[:0]
	for _, e := range rs.visibleEntities {
		if e.GetID() != oldEntity.GetID() {
			surviving = append(surviving, e)
		}
	}
	rs.visibleEntities = surviving
}

// Update renders the known entities.
func (rs *ForwardRenderSystem) Update(frameDelta float32) {
	if !rs.enabled {
		return
	}

	// clear the screen
	width, height := rs.Renderer.GetResolution()
	rs.gfx.Viewport(0, 0, int32(width), int32(height))
	rs.gfx.ClearColor(0.0, 0.0, 0.0, 1.0)
	rs.gfx.Clear(graphics.COLOR_BUFFER_BIT | graphics.DEPTH_BUFFER_BIT)

	// make the projection and view matrixes
	projection := mgl.Perspective(fovyRads, float32(width)/float32(height), nearView, farView)
	view := rs.Camera.GetViewMatrix()

	var binder renderer.RenderBinder
	if rs.Glow != nil {
		binder = rs.Glow.BindUniforms
	}

	// draw the visible entities
	for _, e := range rs.visibleEntities {
		visibleEntity, okay := e.(RenderableEntity)
		if okay {
			if r := visibleEntity.GetRenderable(); r != nil {
				rs.Renderer.DrawRenderable(r, binder, projection, view, rs.Camera)
			}
		}
	}

	// draw the screen
	rs.MainWindow.SwapBuffers()
}
