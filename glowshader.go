// Copyright 2017, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package main

import (
	"math"

	fizzle "github.com/tbogdala/fizzle"
	renderer "github.com/tbogdala/fizzle/renderer"
)

const (
	// glowTimeStep is the fixed amount the glow clock advances each frame.
	// The pulse rate is tied to the display refresh rate rather than
	// wall-clock time.
	glowTimeStep = 0.05

	// defaultGlowWeight scales how much of the glow term is added back onto
	// the sampled texture color.
	defaultGlowWeight = 0.5
)

// glowShaderV transforms the wrap mesh and passes the texture coordinates
// through. Attribute and uniform names follow the fizzle forward renderer
// binding conventions.
const glowShaderV = `#version 330
uniform mat4 MVP_MATRIX;
in vec3 VERTEX_POSITION;
in vec2 VERTEX_UV_0;
out vec2 vs_uv;

void main()
{
	vs_uv = VERTEX_UV_0;
	gl_Position = MVP_MATRIX * vec4(VERTEX_POSITION, 1.0);
}
`

// glowShaderF samples the background texture and adds a pulsing glow that is
// strongest on the perceptually bright parts of the image. The alpha channel
// passes through untouched.
const glowShaderF = `#version 330
uniform sampler2D MATERIAL_TEX_0;
uniform float PULSE;
uniform float GLOW_WEIGHT;
in vec2 vs_uv;
out vec4 frag_color;

void main()
{
	vec4 color = texture(MATERIAL_TEX_0, vs_uv);
	float lum = dot(color.rgb, vec3(0.299, 0.587, 0.114));
	vec3 glow = color.rgb * lum * (1.0 + PULSE);
	frag_color = vec4(color.rgb + glow * GLOW_WEIGHT, color.a);
}
`

// GlowShader drives the animated glow on the wrap surface. It starts out
// uninitialized, where the wrap renders a plain opaque black, and becomes
// active once a background texture has been decoded and uploaded. Activation
// is one-way; the shader never returns to the uninitialized state.
type GlowShader struct {
	// Weight is the glow contribution factor uploaded as GLOW_WEIGHT.
	Weight float32

	elapsed float32
	active  bool
}

// NewGlowShader creates the glow state in its uninitialized form.
func NewGlowShader() *GlowShader {
	g := new(GlowShader)
	g.Weight = defaultGlowWeight
	return g
}

// CreateGlowShader compiles and links the glow shader program.
func CreateGlowShader() (*fizzle.RenderShader, error) {
	return fizzle.LoadShaderProgram(glowShaderV, glowShaderF, nil)
}

// Activate switches the glow into its animated state. Called once the
// background texture is ready for sampling.
func (g *GlowShader) Activate() {
	g.active = true
}

// IsActive returns whether a background texture has been bound yet.
func (g *GlowShader) IsActive() bool {
	return g.active
}

// StepTime advances the glow clock by the fixed per-frame step. Before
// activation there is nothing to animate, so the clock holds at zero.
func (g *GlowShader) StepTime() {
	if !g.active {
		return
	}
	g.elapsed += glowTimeStep
}

// ElapsedTime returns the accumulated glow clock value.
func (g *GlowShader) ElapsedTime() float32 {
	return g.elapsed
}

// Pulse returns the current glow pulse in [0,1], derived from the clock with
// a sine wave shifted up into positive range.
func (g *GlowShader) Pulse() float32 {
	return float32(math.Sin(float64(g.elapsed)))*0.5 + 0.5
}

// BindUniforms is a fizzle RenderBinder that uploads the pulse and glow
// weight before a draw. Shaders without these uniforms report a location of
// -1 and are left alone, so it is safe to pass for every renderable.
func (g *GlowShader) BindUniforms(rn renderer.Renderer, r *fizzle.Renderable, shader *fizzle.RenderShader) {
	gfx := fizzle.GetGraphics()

	pulseLoc := shader.GetUniformLocation("PULSE")
	if pulseLoc >= 0 {
		gfx.Uniform1f(pulseLoc, g.Pulse())
	}

	weightLoc := shader.GetUniformLocation("GLOW_WEIGHT")
	if weightLoc >= 0 {
		gfx.Uniform1f(weightLoc, g.Weight)
	}
}
