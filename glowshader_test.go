// Copyright 2017, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGlowShaderStartsUninitialized(t *testing.T) {
	glow := NewGlowShader()

	assert.False(t, glow.IsActive())
	assert.Equal(t, float32(0.0), glow.ElapsedTime())
	assert.Equal(t, float32(defaultGlowWeight), glow.Weight)
}

func TestGlowShaderHoldsTimeUntilActive(t *testing.T) {
	glow := NewGlowShader()

	// stepping before a texture is bound must not move the clock
	for i := 0; i < 100; i++ {
		glow.StepTime()
	}
	assert.Equal(t, float32(0.0), glow.ElapsedTime())

	glow.Activate()
	glow.StepTime()
	assert.InDelta(t, glowTimeStep, glow.ElapsedTime(), 1e-6)
}

func TestGlowShaderActivationIsOneWay(t *testing.T) {
	glow := NewGlowShader()
	glow.Activate()
	assert.True(t, glow.IsActive())

	// nothing on the type can deactivate it; repeated activation is a no-op
	glow.Activate()
	assert.True(t, glow.IsActive())
}

func TestGlowShaderPulseStaysInRange(t *testing.T) {
	glow := NewGlowShader()
	glow.Activate()

	// sweep a few thousand frames worth of clock and check the bounds
	for i := 0; i < 5000; i++ {
		pulse := glow.Pulse()
		assert.GreaterOrEqual(t, pulse, float32(0.0))
		assert.LessOrEqual(t, pulse, float32(1.0))
		glow.StepTime()
	}
}

func TestGlowShaderPulseAfterOneFrame(t *testing.T) {
	glow := NewGlowShader()
	glow.Activate()
	glow.StepTime()

	expected := math.Sin(float64(glowTimeStep))*0.5 + 0.5
	assert.InDelta(t, expected, float64(glow.Pulse()), 1e-6)
}

func TestGlowShaderTimeIsMonotonic(t *testing.T) {
	glow := NewGlowShader()
	glow.Activate()

	last := glow.ElapsedTime()
	for i := 0; i < 100; i++ {
		glow.StepTime()
		assert.Greater(t, glow.ElapsedTime(), last)
		last = glow.ElapsedTime()
	}
}
