// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	vr "github.com/tbogdala/openvr-go"

	glfw "github.com/go-gl/glfw/v3.1/glfw"

	input "github.com/tbogdala/fizzle/input/glfwinput"
)

const (
	windowWidth  = int(1280)
	windowHeight = int(720)
)

var (
	kbModel *input.KeyboardModel

	flagNoVR     = flag.Bool("novr", false, "run desktop-only even if a headset is present")
	flagManifest = flag.String("manifest", "assets/backgrounds.json", "path to the background manifest file")
)

func init() {
	runtime.LockOSThread()
}

func main() {
	flag.Parse()

	// try to bring up the headset first; if that fails for any reason the
	// demo degrades to a desktop-only viewer instead of quitting.
	var vrRenderSystem *VRRenderSystem
	if !*flagNoVR {
		vrRenderSystem = NewVRRenderSystem()
		err := vrRenderSystem.Initialize("WRAP", windowWidth, windowHeight)
		if err != nil {
			fmt.Printf("No immersive mode available: %v\n", err)
			vrRenderSystem = nil
		}
	}
	vrAvailable := vrRenderSystem != nil

	// the desktop renderer either shares the VR window's GL context or
	// creates its own window when there is no headset
	forwardRenderSystem := NewForwardRenderSystem()
	if vrAvailable {
		forwardRenderSystem.InitializeShared(vrRenderSystem.GetMainWindow(), vrRenderSystem.GetGraphics())
	} else {
		err := forwardRenderSystem.Initialize("WRAP", windowWidth, windowHeight)
		if err != nil {
			fmt.Printf("Failed to initialize the render system! %v\n", err)
			os.Exit(1)
		}
	}
	mainWindow := forwardRenderSystem.GetMainWindow()

	// create the scene manager and wire the render systems to its camera
	// and glow shader state
	wrapScene := NewWrapScene()
	forwardRenderSystem.Camera = wrapScene.Camera
	forwardRenderSystem.Glow = wrapScene.Glow
	wrapScene.AddSystem(forwardRenderSystem)
	if vrAvailable {
		vrRenderSystem.Camera = wrapScene.Camera
		vrRenderSystem.Glow = wrapScene.Glow
		wrapScene.AddSystem(vrRenderSystem)
	}

	// navigation: mouse orbit for the desktop, controllers for the headset
	mouseNavSystem := NewMouseNavSystem()
	mouseNavSystem.Initialize(mainWindow, wrapScene.Camera)
	wrapScene.AddSystem(mouseNavSystem)

	vrNavSystem := NewVRNavSystem()
	if vrAvailable {
		vrNavSystem.Initialize(vrRenderSystem.GetVRSystem(), wrapScene.Camera, wrapScene)
	}
	wrapScene.AddSystem(vrNavSystem)

	// squeezing either grip puts the viewer back on the wrap axis
	vrNavSystem.OnGripButtonL = wrapScene.RecenterCamera
	vrNavSystem.OnGripButtonR = wrapScene.RecenterCamera

	// the session system swaps between the two navigation/render pairs
	sessionSystem := NewSessionSystem(wrapScene.Camera)
	sessionSystem.Initialize(mouseNavSystem, vrNavSystem, forwardRenderSystem, vrRenderSystem)
	wrapScene.AddSystem(sessionSystem)

	// status overlay
	uiSystem := NewUISystem()
	err := uiSystem.Initialize(forwardRenderSystem, sessionSystem, vrNavSystem, wrapScene)
	if err != nil {
		fmt.Printf("Failed to initialize the user interface! %v\n", err)
		os.Exit(1)
	}
	wrapScene.AddSystem(uiSystem)

	// build the environment
	err = wrapScene.SetupScene()
	if err != nil {
		fmt.Printf("Failed to setup the scene! %v\n", err)
		os.Exit(1)
	}

	// pick a background from the manifest and start loading it; any failure
	// here just leaves the wrap untextured
	manifest, err := LoadAssetManifest(*flagManifest)
	if err != nil {
		fmt.Printf("%v\n", err)
	}
	if background, okay := manifest.ChooseBackground(); okay {
		wrapScene.LoadBackgroundAsync(background)
	} else {
		fmt.Printf("No backgrounds listed in the manifest; keeping the plain environment.\n")
	}

	////////////////////////////////////////////////////////////////////////////
	// set the callback functions for key input
	kbModel = input.NewKeyboardModel(mainWindow)
	kbModel.BindTrigger(glfw.KeyEscape, func() {
		mainWindow.SetShouldClose(true)
	})
	kbModel.BindTrigger(glfw.KeyV, sessionSystem.ToggleSession)
	kbModel.SetupCallbacks()

	////////////////////////////////////////////////////////////////////////////
	// the main application loop
	lastFrame := time.Now()
	for !mainWindow.ShouldClose() {
		// calculate the difference in time to control rotation speed
		thisFrame := time.Now()
		frameDelta := float32(thisFrame.Sub(lastFrame).Seconds())

		handleInput()

		// update the scene
		wrapScene.Update(frameDelta)

		// update our last frame time
		lastFrame = thisFrame
	}

	if vrAvailable {
		vr.Shutdown()
	}
}

func handleInput() {
	// advise GLFW to poll for input. without this the window appears to hang.
	glfw.PollEvents()

	// handle any keyboard input
	kbModel.CheckKeyPresses()
}
