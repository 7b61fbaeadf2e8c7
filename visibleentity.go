// Copyright 2017, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package main

import (
	mgl "github.com/go-gl/mathgl/mgl32"
	fizzle "github.com/tbogdala/fizzle"
	"github.com/tbogdala/glider"
)

// RenderableEntity is the interface render systems use to pull the drawable
// object out of a scene entity.
type RenderableEntity interface {
	GetRenderable() *fizzle.Renderable
}

// CollidableEntity is the interface movement checks use to pull the coarse
// colliders out of a scene entity.
type CollidableEntity interface {
	GetColliders() []glider.Collider
}

// VisibleEntity is the base scene entity with a renderable and optional
// coarse colliders.
type VisibleEntity struct {
	ID   uint64
	Name string

	// Renderable is the drawable object for the entity; may be nil for
	// entities that only exist for bookkeeping.
	Renderable *fizzle.Renderable

	// CoarseColliders are cheap collision volumes for the entity used by
	// movement checks.
	CoarseColliders []glider.Collider

	location    mgl.Vec3
	orientation mgl.Quat
}

// NewVisibleEntity returns a new visible entity object.
func NewVisibleEntity() *VisibleEntity {
	ve := new(VisibleEntity)
	ve.orientation = mgl.QuatIdent()
	return ve
}

// GetID returns the entity identifier assigned by the scene manager.
func (ve *VisibleEntity) GetID() uint64 {
	return ve.ID
}

// GetName returns the name of the entity.
func (ve *VisibleEntity) GetName() string {
	return ve.Name
}

// GetLocation returns the location of the entity in world space.
func (ve *VisibleEntity) GetLocation() mgl.Vec3 {
	return ve.location
}

// SetLocation moves the entity, keeping the renderable in sync.
func (ve *VisibleEntity) SetLocation(loc mgl.Vec3) {
	ve.location = loc
	if ve.Renderable != nil {
		ve.Renderable.Location = loc
	}
}

// GetOrientation returns the rotation of the entity.
func (ve *VisibleEntity) GetOrientation() mgl.Quat {
	return ve.orientation
}

// SetOrientation rotates the entity, keeping the renderable in sync.
func (ve *VisibleEntity) SetOrientation(q mgl.Quat) {
	ve.orientation = q
	if ve.Renderable != nil {
		ve.Renderable.LocalRotation = q
	}
}

// GetRenderable returns the drawable object for the entity.
func (ve *VisibleEntity) GetRenderable() *fizzle.Renderable {
	return ve.Renderable
}

// GetColliders should return all of the coarse colliders for an entity.
func (ve *VisibleEntity) GetColliders() []glider.Collider {
	return ve.CoarseColliders
}
