package physics

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-tucan/internal/core"
)

// Contact is a begin-contact event between two bodies.
// A was added to the world before B.
type Contact struct {
	A, B *Body
}

// Pick returns the body of the given category and the other one.
// ok is false if neither body has the category.
func (c Contact) Pick(category uint32) (self, other *Body, ok bool) {
	switch {
	case c.A.Category&category != 0:
		return c.A, c.B, true
	case c.B.Category&category != 0:
		return c.B, c.A, true
	}
	return nil, nil, false
}

type pairKey struct{ a, b uint64 }

// World integrates bodies and reports contacts.
//
// The resolv space is padded by one scene size on every side so bodies that
// leave the visible area keep colliding.
type World struct {
	Gravity core.Vec2
	// TimeScale multiplies dt during integration. Zero means 1.
	TimeScale float64

	width, height float64
	space         *resolv.Space
	bodies        []*Body
	byShape       map[resolv.IShape]*Body
	touching      map[pairKey]bool
	nextID        uint64
}

// NewWorld creates a world covering a width x height scene with the given
// broad-phase cell size.
func NewWorld(width, height float64, cell int) *World {
	if cell <= 0 {
		cell = 32
	}
	resolvMu.Lock()
	defer resolvMu.Unlock()
	return &World{
		width:    width,
		height:   height,
		space:    resolv.NewSpace(int(width*3), int(height*3), cell, cell),
		byShape:  make(map[resolv.IShape]*Body),
		touching: make(map[pairKey]bool),
	}
}

// Add inserts a body. Adding a body twice is a no-op.
func (w *World) Add(b *Body) {
	resolvMu.Lock()
	defer resolvMu.Unlock()
	if b.world == w {
		return
	}
	if b.world != nil {
		b.world.remove(b)
	}
	w.nextID++
	b.id = w.nextID
	b.world = w

	x, y := w.toSpace(b.Position)
	switch b.kind {
	case ShapeCircle:
		b.shape = resolv.NewCircle(x, y, b.radius)
	default:
		b.shape = resolv.NewRectangle(x, y, b.size.X, b.size.Y)
	}
	for _, bit := range maskBits(b.Category) {
		b.shape.Tags().Set(categoryTag(bit))
	}
	w.space.Add(b.shape)
	w.byShape[b.shape] = b
	w.bodies = append(w.bodies, b)
}

// Remove takes a body out of the world. Pending contact pairs involving it
// are forgotten.
func (w *World) Remove(b *Body) {
	resolvMu.Lock()
	defer resolvMu.Unlock()
	w.remove(b)
}

func (w *World) remove(b *Body) {
	if b.world != w {
		return
	}
	w.space.Remove(b.shape)
	delete(w.byShape, b.shape)
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	for k := range w.touching {
		if k.a == b.id || k.b == b.id {
			delete(w.touching, k)
		}
	}
	b.world = nil
	b.shape = nil
}

// Bodies returns the bodies in insertion order.
func (w *World) Bodies() []*Body {
	out := make([]*Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// Step advances the simulation by dt seconds.
//
// Dynamic bodies are integrated under gravity, then every overlapping pair
// whose masks ask for it and that was not already touching is reported.
// Finally dynamic bodies are pushed out of the solid bodies they collide with.
// A step whose bodies would travel further than their own half extent is split
// into substeps, so fast bodies cannot pass through thin ones.
func (w *World) Step(dt float64) []Contact {
	if w.TimeScale > 0 {
		dt *= w.TimeScale
	}
	resolvMu.Lock()
	defer resolvMu.Unlock()

	if dt <= 0 {
		w.syncShapes()
		return w.detect(nil)
	}
	n := w.substeps(dt)
	h := dt / float64(n)
	var contacts []Contact
	for i := 0; i < n; i++ {
		for _, b := range w.bodies {
			if !b.Dynamic {
				continue
			}
			b.Velocity = b.Velocity.Add(w.Gravity.Scale(h))
			b.Position = b.Position.Add(b.Velocity.Scale(h))
		}
		w.syncShapes()
		contacts = w.detect(contacts)
	}
	sort.Slice(contacts, func(i, j int) bool {
		if contacts[i].A.id != contacts[j].A.id {
			return contacts[i].A.id < contacts[j].A.id
		}
		return contacts[i].B.id < contacts[j].B.id
	})
	return contacts
}

// maxSubsteps bounds the work of a single Step.
const maxSubsteps = 64

// substeps returns how many pieces dt must be cut into so that no dynamic body
// moves more than half its smallest extent per piece.
func (w *World) substeps(dt float64) int {
	n := 1
	g := w.Gravity.Len()
	for _, b := range w.bodies {
		if !b.Dynamic {
			continue
		}
		limit := b.halfExtent()
		if limit <= 0 {
			continue
		}
		travel := (b.Velocity.Len() + g*dt) * dt
		if k := int(math.Ceil(travel / limit)); k > n {
			n = k
		}
	}
	if n > maxSubsteps {
		n = maxSubsteps
	}
	return n
}

// detect reports new contacts, appending them to contacts unless the pair was
// already reported, and resolves collisions. The caller holds resolvMu.
func (w *World) detect(contacts []Contact) []Contact {
	overlaps := w.overlaps()
	now := make(map[pairKey]bool, len(overlaps))
	for _, c := range overlaps {
		if !contactsWith(c.A, c.B) {
			continue
		}
		k := pairKey{c.A.id, c.B.id}
		now[k] = true
		if !w.touching[k] && !reported(contacts, k) {
			contacts = append(contacts, c)
		}
	}
	w.touching = now

	resolved := false
	for _, c := range overlaps {
		switch {
		case blockedBy(c.A, c.B):
			resolved = separate(c.A, c.B) || resolved
		case blockedBy(c.B, c.A):
			resolved = separate(c.B, c.A) || resolved
		}
	}
	if resolved {
		w.syncShapes()
	}
	return contacts
}

func reported(contacts []Contact, k pairKey) bool {
	for _, c := range contacts {
		if c.A.id == k.a && c.B.id == k.b {
			return true
		}
	}
	return false
}

// Sync pushes current body positions into the broad phase without stepping.
func (w *World) Sync() {
	resolvMu.Lock()
	defer resolvMu.Unlock()
	w.syncShapes()
}

func (w *World) syncShapes() {
	for _, b := range w.bodies {
		x, y := w.toSpace(b.Position)
		b.shape.SetPosition(x, y)
	}
}

// overlaps returns every overlapping pair once, ordered by body id.
// resolv only narrows the candidates; the exact shape test decides.
func (w *World) overlaps() []Contact {
	seen := make(map[pairKey]bool)
	var out []Contact
	for _, b := range w.bodies {
		if b.ContactMask == 0 && !b.Dynamic {
			continue
		}
		wanted := b.ContactMask
		if b.Dynamic {
			wanted |= b.CollisionMask
		}
		for _, bit := range maskBits(wanted) {
			b.shape.SelectTouchingCells(1).FilterShapes().ByTags(categoryTag(bit)).ForEach(func(shape resolv.IShape) bool {
				other, ok := w.byShape[shape]
				if !ok || other == b {
					return true
				}
				a, c := b, other
				if c.id < a.id {
					a, c = c, a
				}
				k := pairKey{a.id, c.id}
				if seen[k] || !overlap(a, c) {
					return true
				}
				seen[k] = true
				out = append(out, Contact{A: a, B: c})
				return true
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A.id != out[j].A.id {
			return out[i].A.id < out[j].A.id
		}
		return out[i].B.id < out[j].B.id
	})
	return out
}

func (w *World) toSpace(p core.Vec2) (float64, float64) {
	return p.X + w.width, p.Y + w.height
}

// separate pushes dynamic body d out of static body s and drops the velocity
// component pointing into s.
func separate(d, s *Body) bool {
	normal, depth, ok := penetration(d, s)
	if !ok || depth <= 0 {
		return false
	}
	d.Position = d.Position.Add(normal.Scale(depth))
	if into := d.Velocity.X*normal.X + d.Velocity.Y*normal.Y; into < 0 {
		d.Velocity = d.Velocity.Sub(normal.Scale(into))
	}
	return true
}

// overlap is the exact shape test; touching edges do not count.
func overlap(a, b *Body) bool {
	_, depth, ok := penetration(a, b)
	return ok && depth > 0
}

// penetration returns the unit normal pointing from b towards a and the depth
// a must travel along it to stop overlapping b.
func penetration(a, b *Body) (core.Vec2, float64, bool) {
	switch {
	case a.kind == ShapeCircle && b.kind == ShapeCircle:
		d := a.Position.Sub(b.Position)
		dist := d.Len()
		depth := a.radius + b.radius - dist
		if depth <= 0 {
			return core.Vec2{}, 0, false
		}
		if dist == 0 {
			return core.V(0, 1), depth, true
		}
		return d.Scale(1 / dist), depth, true
	case a.kind == ShapeCircle:
		n, depth, ok := circleRect(a.Position, a.radius, b)
		return n, depth, ok
	case b.kind == ShapeCircle:
		n, depth, ok := circleRect(b.Position, b.radius, a)
		return n.Scale(-1), depth, ok
	default:
		return rectRect(a, b)
	}
}

func circleRect(center core.Vec2, radius float64, r *Body) (core.Vec2, float64, bool) {
	lo, hi := r.Bounds()
	closest := core.V(core.ClampF(center.X, lo.X, hi.X), core.ClampF(center.Y, lo.Y, hi.Y))
	d := center.Sub(closest)
	dist := d.Len()
	if dist > 0 {
		if dist >= radius {
			return core.Vec2{}, 0, false
		}
		return d.Scale(1 / dist), radius - dist, true
	}
	// Center inside the rectangle: leave through the nearest edge.
	exits := []struct {
		n     core.Vec2
		depth float64
	}{
		{core.V(-1, 0), center.X - lo.X + radius},
		{core.V(1, 0), hi.X - center.X + radius},
		{core.V(0, -1), center.Y - lo.Y + radius},
		{core.V(0, 1), hi.Y - center.Y + radius},
	}
	best := exits[0]
	for _, e := range exits[1:] {
		if e.depth < best.depth {
			best = e
		}
	}
	return best.n, best.depth, true
}

func rectRect(a, b *Body) (core.Vec2, float64, bool) {
	alo, ahi := a.Bounds()
	blo, bhi := b.Bounds()
	ox := math.Min(ahi.X, bhi.X) - math.Max(alo.X, blo.X)
	oy := math.Min(ahi.Y, bhi.Y) - math.Max(alo.Y, blo.Y)
	if ox <= 0 || oy <= 0 {
		return core.Vec2{}, 0, false
	}
	if ox < oy {
		if a.Position.X < b.Position.X {
			return core.V(-1, 0), ox, true
		}
		return core.V(1, 0), ox, true
	}
	if a.Position.Y < b.Position.Y {
		return core.V(0, -1), oy, true
	}
	return core.V(0, 1), oy, true
}

// resolv keeps its scratch buffers, shape ids and tag directory in package
// state, so every call into it from any World goes through resolvMu.
var (
	resolvMu sync.Mutex
	tags     = make(map[uint32]resolv.Tags)
)

// categoryTag maps a single category bit to a resolv tag.
// The caller holds resolvMu.
func categoryTag(bit uint32) resolv.Tags {
	if t, ok := tags[bit]; ok {
		return t
	}
	t := resolv.NewTag(fmt.Sprintf("category-%#x", bit))
	tags[bit] = t
	return t
}

// maskBits splits a mask into its set bits, lowest first.
func maskBits(mask uint32) []uint32 {
	var out []uint32
	for i := 0; i < 32; i++ {
		if bit := uint32(1) << i; mask&bit != 0 {
			out = append(out, bit)
		}
	}
	return out
}
