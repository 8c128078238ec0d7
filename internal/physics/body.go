// Package physics is a small 2-D rigid-body service: static and dynamic bodies
// with circle or rectangle shapes, category/contact/collision bitmasks, gravity,
// impulses, and per-step begin-contact events.
//
// Broad and narrow phase run through a resolv space; the collision response
// (pushing dynamic bodies out of solid ones) is computed here.
package physics

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-tucan/internal/core"
)

// ShapeKind identifies a body's collision shape.
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeRect
)

// MaskAll matches every category.
const MaskAll uint32 = 0xFFFFFFFF

// Body is a rigid body. Position is the shape center in scene points, y up.
type Body struct {
	Position core.Vec2
	Velocity core.Vec2

	// Dynamic bodies receive gravity, impulses and collision response.
	// Static bodies are only moved by whoever owns them.
	Dynamic bool
	Mass    float64

	Category      uint32 // What this body is
	ContactMask   uint32 // Categories that produce contact events with this body
	CollisionMask uint32 // Categories this body is physically blocked by

	// UserData lets the owner map a body back to its entity.
	UserData any

	kind   ShapeKind
	radius float64
	size   core.Vec2

	id    uint64
	shape resolv.IShape
	world *World
}

// NewCircleBody returns a dynamic circle body with unit mass.
func NewCircleBody(radius float64) *Body {
	return &Body{
		Dynamic:       true,
		Mass:          1,
		Category:      MaskAll,
		CollisionMask: MaskAll,
		kind:          ShapeCircle,
		radius:        radius,
		size:          core.V(radius*2, radius*2),
	}
}

// NewRectBody returns a dynamic axis-aligned rectangle body with unit mass.
func NewRectBody(w, h float64) *Body {
	return &Body{
		Dynamic:       true,
		Mass:          1,
		Category:      MaskAll,
		CollisionMask: MaskAll,
		kind:          ShapeRect,
		size:          core.V(w, h),
	}
}

// Kind returns the body's shape kind.
func (b *Body) Kind() ShapeKind {
	return b.kind
}

// Radius returns the circle radius, or 0 for rectangles.
func (b *Body) Radius() float64 {
	return b.radius
}

// Size returns the bounding box size.
func (b *Body) Size() core.Vec2 {
	return b.size
}

// Bounds returns the bounding box as min and max corners.
func (b *Body) Bounds() (lo, hi core.Vec2) {
	half := b.size.Scale(0.5)
	return b.Position.Sub(half), b.Position.Add(half)
}

// halfExtent is half the body's smallest side; the radius for circles.
func (b *Body) halfExtent() float64 {
	return math.Min(b.size.X, b.size.Y) / 2
}

// ApplyImpulse changes the velocity of a dynamic body by j/mass.
// Static bodies ignore impulses.
func (b *Body) ApplyImpulse(j core.Vec2) {
	if !b.Dynamic {
		return
	}
	mass := b.Mass
	if mass <= 0 {
		mass = 1
	}
	b.Velocity = b.Velocity.Add(j.Scale(1 / mass))
}

// World returns the world the body is in, or nil.
func (b *Body) World() *World {
	return b.world
}

// contactsWith reports whether a and b generate contact events.
func contactsWith(a, b *Body) bool {
	return a.Category&b.ContactMask != 0 || b.Category&a.ContactMask != 0
}

// blockedBy reports whether dynamic body a is physically stopped by b.
func blockedBy(a, b *Body) bool {
	return a.Dynamic && !b.Dynamic && b.Category&a.CollisionMask != 0
}
