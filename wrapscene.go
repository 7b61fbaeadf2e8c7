// Copyright 2017, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package main

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"os"

	// background images are plain png/jpeg files
	_ "image/jpeg"
	_ "image/png"

	mgl "github.com/go-gl/mathgl/mgl32"

	fizzle "github.com/tbogdala/fizzle"
	graphics "github.com/tbogdala/fizzle/graphicsprovider"
	forward "github.com/tbogdala/fizzle/renderer/forward"
	scene "github.com/tbogdala/fizzle/scene"
)

const (
	basicShaderName = "Basic"
	glowShaderName  = "Glow"
)

// backgroundResult is the one-shot result of an asynchronous background
// decode, delivered into the frame loop through a channel. The pixels arrive
// fully decoded so the frame loop only has to do the GL upload.
type backgroundResult struct {
	filepath string
	pix      []byte
	width    int
	height   int
}

// WrapScene is the scene for the wrap demo: a single cylindrical environment
// entity surrounding the camera, with a glow shader pulsing over whatever
// background image got selected. It also acts as the per-frame driver,
// advancing the glow clock before the registered systems run so navigation
// always happens before render submission.
type WrapScene struct {
	// embed the basic scene manager
	*scene.BasicSceneManager

	// Camera is the single scene camera, shared by every system.
	Camera *WrapCamera

	// Glow is the animated environment shader state.
	Glow *GlowShader

	// wrapEntity is the cached reference to the environment entity.
	wrapEntity *WrapEntity

	shaders map[string]*fizzle.RenderShader

	backgroundCh   chan backgroundResult
	backgroundName string
}

// NewWrapScene creates a new wrap scene object.
func NewWrapScene() *WrapScene {
	ws := new(WrapScene)
	ws.BasicSceneManager = scene.NewBasicSceneManager()
	ws.Camera = NewWrapCamera(mgl.Vec3{0.0, 0.0, 0.0}, 2.0)
	ws.Glow = NewGlowShader()
	ws.shaders = make(map[string]*fizzle.RenderShader)
	ws.backgroundCh = make(chan backgroundResult, 1)
	return ws
}

// Update should be called each frame to update the scene manager. Ordering
// matters here: the background poll and glow clock run before the base
// update so the frame's draw already reflects the new pulse value, and the
// navigation systems run at a lower priority than the render systems inside
// the base update.
func (s *WrapScene) Update(frameDelta float32) {
	// pick up a finished background decode, if one landed
	s.pollBackground()

	// advance the glow clock; holds at zero until a texture is active
	s.Glow.StepTime()

	// call the base version which will update the systems
	s.BasicSceneManager.Update(frameDelta)
}

// SetupScene initializes the scene's assets and sets up the environment
// entity.
// NOTE: A render System implementation will need to be added before this
// method is called.
func (s *WrapScene) SetupScene() error {
	// pull references to the registered render systems; both can be live at
	// once when a headset is present
	var renderSystems []RenderSystem
	if system := s.BasicSceneManager.GetSystemByName(vrRenderSystemName); system != nil {
		renderSystems = append(renderSystems, system.(*VRRenderSystem))
	}
	if system := s.BasicSceneManager.GetSystemByName(forwardRenderSystemName); system != nil {
		renderSystems = append(renderSystems, system.(*ForwardRenderSystem))
	}
	if len(renderSystems) == 0 {
		return fmt.Errorf("Need to add a render System implementation first")
	}

	// load the shaders necessary
	err := s.createShaders()
	if err != nil {
		return err
	}

	// put a light in there so the untextured wrap isn't a void
	for _, renderSystem := range renderSystems {
		renderer := renderSystem.GetRenderer()
		light := renderer.NewDirectionalLight(mgl.Vec3{1.0, -0.5, -1.0})
		light.DiffuseIntensity = 0.20
		light.SpecularIntensity = 0.10
		light.AmbientIntensity = 1.0
		renderer.ActiveLights[0] = light
	}

	// create the environment cylinder; it starts out on the basic shader
	// with a black diffuse until a background activates the glow
	s.wrapEntity = NewWrapEntity()
	s.wrapEntity.ID = s.GetNextID()
	s.wrapEntity.Renderable = CreateWrapRenderable(s.shaders[basicShaderName])
	s.wrapEntity.SetLocation(mgl.Vec3{0.0, 0.0, 0.0})
	s.AddEntity(s.wrapEntity)

	return nil
}

// createShaders will load the shaders necessary for the wrap scene.
func (s *WrapScene) createShaders() error {
	// the basic shader renders the uninitialized black environment
	basicShader, err := forward.CreateBasicShader()
	if err != nil {
		return fmt.Errorf("Failed to compile and link the basic shader program!\n%v", err)
	}
	s.shaders[basicShaderName] = basicShader

	glowShader, err := CreateGlowShader()
	if err != nil {
		return fmt.Errorf("Failed to compile and link the glow shader program!\n%v", err)
	}
	s.shaders[glowShaderName] = glowShader

	return nil
}

// BackgroundName returns the name of the active background image, or an
// empty string while the wrap is untextured.
func (s *WrapScene) BackgroundName() string {
	return s.backgroundName
}

// LoadBackgroundAsync kicks off reading and decoding the selected background
// on a separate goroutine. The full image decode happens there; only the GL
// upload runs later on the main thread when pollBackground receives the
// result. Failures are logged and leave the environment untextured; a load
// that never finishes just leaves the black wrap up indefinitely.
func (s *WrapScene) LoadBackgroundAsync(filepath string) {
	go func() {
		result, err := decodeBackground(filepath)
		if err != nil {
			fmt.Printf("%v\n", err)
			return
		}
		s.backgroundCh <- result
	}()
}

// decodeBackground reads a background image file and decodes it into RGBA
// pixel data. Runs off the frame loop so a large image never stalls a frame.
func decodeBackground(filepath string) (backgroundResult, error) {
	var result backgroundResult

	data, err := os.ReadFile(filepath)
	if err != nil {
		return result, fmt.Errorf("failed to read the background image %s: %v", filepath, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return result, fmt.Errorf("failed to decode the background image %s: %v", filepath, err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	result.filepath = filepath
	result.pix = rgba.Pix
	result.width = bounds.Dx()
	result.height = bounds.Dy()
	return result, nil
}

// pollBackground checks for a delivered background decode without blocking
// the frame.
func (s *WrapScene) pollBackground() {
	select {
	case result := <-s.backgroundCh:
		s.activateBackground(result)
	default:
	}
}

// activateBackground uploads the decoded background pixels to a texture and
// flips the wrap over to the glow shader. This is the one-way
// uninitialized->active transition. The pixels arrived already decoded, so
// the only work on the frame loop here is the GL upload itself.
func (s *WrapScene) activateBackground(result backgroundResult) {
	if s.wrapEntity == nil || s.wrapEntity.Renderable == nil {
		return
	}

	tex := fizzle.LoadRGBAToTextureExt(result.pix, int32(result.width), int32(result.height),
		graphics.LINEAR, graphics.LINEAR, graphics.REPEAT, graphics.REPEAT)

	s.wrapEntity.Renderable.Core.Tex0 = tex
	s.wrapEntity.Renderable.Core.DiffuseColor = mgl.Vec4{1.0, 1.0, 1.0, 1.0}
	s.wrapEntity.Renderable.Core.Shader = s.shaders[glowShaderName]
	s.backgroundName = result.filepath
	s.Glow.Activate()

	fmt.Printf("Background %s active (%dx%d).\n", result.filepath, result.width, result.height)
}

// RecenterCamera puts the camera back on the wrap axis. Wired to the
// controller grip buttons so a drifted viewer can reset their position.
func (s *WrapScene) RecenterCamera() {
	s.Camera.Translate(s.Camera.GetPosition().Mul(-1.0))
}
