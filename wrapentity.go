// Copyright 2017, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package main

import (
	"math"

	mgl "github.com/go-gl/mathgl/mgl32"
	fizzle "github.com/tbogdala/fizzle"
	graphics "github.com/tbogdala/fizzle/graphicsprovider"
	"github.com/tbogdala/glider"
)

const (
	wrapEntityName = "Wrap"

	// dimensions of the cylindrical wrap surrounding the viewer
	wrapRadius   = float32(10.0)
	wrapHeight   = float32(8.0)
	wrapSegments = 32

	// wall colliders keep the camera from being navigated through the wrap
	wrapColliderCount = 8
	wrapColliderDepth = float32(0.5)
)

// WrapEntity is the scene entity for the cylindrical environment the camera
// sits inside of.
type WrapEntity struct {
	*VisibleEntity
}

// NewWrapEntity returns a new wrap entity object centered on the world
// origin, with wall colliders ringing the cylinder.
func NewWrapEntity() *WrapEntity {
	we := new(WrapEntity)
	we.VisibleEntity = NewVisibleEntity()
	we.Name = wrapEntityName
	we.CoarseColliders = buildWrapColliders(wrapRadius, wrapHeight, wrapColliderCount)
	return we
}

// CreateWrapRenderable builds the inward-facing cylinder mesh and uploads it
// to new GL buffers. Must be called with a current GL context.
func CreateWrapRenderable(shader *fizzle.RenderShader) *fizzle.Renderable {
	verts, uvs, normals, indexes := buildCylinderMesh(wrapRadius, wrapHeight, wrapSegments)

	const floatSize = 4
	const uintSize = 4

	r := fizzle.NewRenderable()
	r.Core = fizzle.NewRenderableCore()
	r.FaceCount = uint32(len(indexes) / 3)
	r.Core.Shader = shader
	r.Core.DiffuseColor = mgl.Vec4{0.0, 0.0, 0.0, 1.0}
	r.Core.SpecularColor = mgl.Vec4{0.0, 0.0, 0.0, 1.0}
	r.Core.Shininess = 0.0

	gfx := fizzle.GetGraphics()
	r.Core.VertVBO = gfx.GenBuffer()
	gfx.BindBuffer(graphics.ARRAY_BUFFER, r.Core.VertVBO)
	gfx.BufferData(graphics.ARRAY_BUFFER, floatSize*len(verts), gfx.Ptr(&verts[0]), graphics.STATIC_DRAW)

	r.Core.UvVBO = gfx.GenBuffer()
	gfx.BindBuffer(graphics.ARRAY_BUFFER, r.Core.UvVBO)
	gfx.BufferData(graphics.ARRAY_BUFFER, floatSize*len(uvs), gfx.Ptr(&uvs[0]), graphics.STATIC_DRAW)

	r.Core.NormsVBO = gfx.GenBuffer()
	gfx.BindBuffer(graphics.ARRAY_BUFFER, r.Core.NormsVBO)
	gfx.BufferData(graphics.ARRAY_BUFFER, floatSize*len(normals), gfx.Ptr(&normals[0]), graphics.STATIC_DRAW)

	r.Core.ElementsVBO = gfx.GenBuffer()
	gfx.BindBuffer(graphics.ELEMENT_ARRAY_BUFFER, r.Core.ElementsVBO)
	gfx.BufferData(graphics.ELEMENT_ARRAY_BUFFER, uintSize*len(indexes), gfx.Ptr(&indexes[0]), graphics.STATIC_DRAW)

	return r
}

// buildCylinderMesh generates an open-ended cylinder around the Y axis with
// the triangles wound so the inside surface is the visible one. UVs wrap the
// texture once around the circumference and once up the height.
func buildCylinderMesh(radius, height float32, segments int) (verts, uvs, normals []float32, indexes []uint32) {
	halfHeight := height / 2.0

	// two rings of segment+1 vertices; the seam vertex is doubled so the
	// texture U coordinate can run the full 0..1 range
	for ring := 0; ring < 2; ring++ {
		y := -halfHeight
		v := float32(0.0)
		if ring == 1 {
			y = halfHeight
			v = 1.0
		}
		for i := 0; i <= segments; i++ {
			angle := float64(i) / float64(segments) * 2.0 * math.Pi
			sin := float32(math.Sin(angle))
			cos := float32(math.Cos(angle))

			verts = append(verts, sin*radius, y, cos*radius)
			uvs = append(uvs, float32(i)/float32(segments), v)
			// normals point inward, toward the camera on the axis
			normals = append(normals, -sin, 0.0, -cos)
		}
	}

	ringStride := uint32(segments + 1)
	for i := uint32(0); i < uint32(segments); i++ {
		bottomA := i
		bottomB := i + 1
		topA := i + ringStride
		topB := i + 1 + ringStride

		// wound counter-clockwise as seen from inside the cylinder
		indexes = append(indexes, bottomA, topA, bottomB)
		indexes = append(indexes, bottomB, topA, topB)
	}

	return verts, uvs, normals, indexes
}

// buildWrapColliders rings the cylinder wall with axis-aligned boxes. The
// boxes are a coarse stand-in for the curved wall; they only need to be good
// enough to stop joystick movement from escaping the wrap.
func buildWrapColliders(radius, height float32, count int) []glider.Collider {
	halfHeight := height / 2.0
	halfChord := radius * float32(math.Sin(math.Pi/float64(count)))

	colliders := make([]glider.Collider, 0, count)
	for i := 0; i < count; i++ {
		angle := float64(i) / float64(count) * 2.0 * math.Pi
		sin := float32(math.Sin(angle))
		cos := float32(math.Cos(angle))
		cx := sin * radius
		cz := cos * radius

		// the wall segment runs tangent to the circle, so the box extents
		// blend between chord length and wall depth with the angle
		ex := halfChord*mgl.Abs(cos) + wrapColliderDepth*mgl.Abs(sin)
		ez := halfChord*mgl.Abs(sin) + wrapColliderDepth*mgl.Abs(cos)

		box := glider.NewAABBox()
		box.Min = mgl.Vec3{cx - ex, -halfHeight, cz - ez}
		box.Max = mgl.Vec3{cx + ex, halfHeight, cz + ez}
		colliders = append(colliders, box)
	}

	return colliders
}
