// Package scene holds the node tree the game world is built from.
//
// Nodes carry a position relative to their parent, a draw order, a speed
// multiplier and an optional physics body. Actions attached to a node advance
// by the frame delta scaled by the product of the speeds from the root down.
package scene

import (
	"sort"

	"github.com/vovakirdan/tui-tucan/internal/core"
	"github.com/vovakirdan/tui-tucan/internal/physics"
)

// Node is an element of the scene tree.
type Node struct {
	Name     string
	Position core.Vec2 // Relative to the parent
	Z        int       // Draw order, higher on top
	Hidden   bool
	Speed    float64 // Action time multiplier for the node and its subtree
	Frame    string  // Atlas frame to draw, empty for containers
	Tint     core.Color
	Body     *physics.Body

	parent   *Node
	children []*Node
	actions  []Action
	epoch    int
	scene    *Scene
}

// NewNode returns an empty container node running at normal speed.
func NewNode(name string) *Node {
	return &Node{Name: name, Speed: 1}
}

// NewSprite returns a node that draws the given atlas frame.
func NewSprite(name, frame string) *Node {
	n := NewNode(name)
	n.Frame = frame
	return n
}

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// Scene returns the scene the node is attached to, or nil.
func (n *Node) Scene() *Scene {
	return n.scene
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Len returns the number of direct children.
func (n *Node) Len() int {
	return len(n.children)
}

// AddChild attaches c to n, detaching it from any previous parent first.
// Bodies in the subtree join the scene's physics world.
func (n *Node) AddChild(c *Node) {
	if c.parent != nil {
		c.RemoveFromParent()
	}
	c.parent = n
	n.children = append(n.children, c)
	if n.scene != nil {
		c.attach(n.scene)
	}
}

// RemoveFromParent detaches n and its subtree.
// Bodies in the subtree leave the physics world.
func (n *Node) RemoveFromParent() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
	if n.scene != nil {
		n.detach()
	}
}

// RemoveAllChildren detaches every child of n.
func (n *Node) RemoveAllChildren() {
	for _, c := range n.Children() {
		c.RemoveFromParent()
	}
}

// Run starts a fresh copy of a on the node.
func (n *Node) Run(a Action) {
	n.actions = append(n.actions, a.clone())
}

// RemoveAllActions stops everything running on the node.
func (n *Node) RemoveAllActions() {
	n.actions = nil
	n.epoch++
}

// HasActions reports whether any action is running on the node.
func (n *Node) HasActions() bool {
	return len(n.actions) > 0
}

// WorldPosition returns the position in scene coordinates.
func (n *Node) WorldPosition() core.Vec2 {
	p := n.Position
	for a := n.parent; a != nil; a = a.parent {
		p = p.Add(a.Position)
	}
	return p
}

// SetWorldPosition moves the node so its scene position is p.
func (n *Node) SetWorldPosition(p core.Vec2) {
	if n.parent != nil {
		p = p.Sub(n.parent.WorldPosition())
	}
	n.Position = p
}

// EffectiveSpeed is the product of the speeds from the root to n.
func (n *Node) EffectiveSpeed() float64 {
	s := n.Speed
	for a := n.parent; a != nil; a = a.parent {
		s *= a.Speed
	}
	return s
}

// Visible reports whether neither n nor any ancestor is hidden.
func (n *Node) Visible() bool {
	for a := n; a != nil; a = a.parent {
		if a.Hidden {
			return false
		}
	}
	return true
}

// Walk visits n and its subtree depth first. Returning false from fn skips
// the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		c.Walk(fn)
	}
}

// Find returns the first node in the subtree with the given name.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Name == name {
			found = c
			return false
		}
		return true
	})
	return found
}

// Drawables returns visible nodes with a frame, sorted by Z.
// Nodes with equal Z keep tree order.
func (n *Node) Drawables() []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c.Hidden {
			return false
		}
		if c.Frame != "" {
			out = append(out, c)
		}
		return true
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Z < out[j].Z })
	return out
}

// update advances actions on n and then on its children.
// dt is the parent's effective delta.
func (n *Node) update(dt float64) {
	dt *= n.Speed
	if dt <= 0 {
		return
	}
	if len(n.actions) > 0 {
		running := n.actions
		n.actions = nil
		epoch := n.epoch
		var keep []Action
		for i, a := range running {
			_, done := a.step(n, dt)
			if n.epoch != epoch {
				// Actions were cleared from inside a callback.
				keep = nil
				break
			}
			if !done {
				keep = append(keep, a)
			}
			if n.removedDuringUpdate() {
				keep = append(keep, running[i+1:]...)
				n.actions = append(keep, n.actions...)
				return
			}
		}
		n.actions = append(keep, n.actions...)
		if n.removedDuringUpdate() {
			return
		}
	}
	for _, c := range n.Children() {
		if c.parent != n {
			continue
		}
		c.update(dt)
	}
}

func (n *Node) removedDuringUpdate() bool {
	return n.parent == nil && (n.scene == nil || n.scene.root != n)
}

func (n *Node) attach(s *Scene) {
	n.scene = s
	if n.Body != nil && s.world != nil {
		n.Body.Position = n.WorldPosition()
		s.world.Add(n.Body)
	}
	for _, c := range n.children {
		c.attach(s)
	}
}

func (n *Node) detach() {
	if n.Body != nil && n.scene.world != nil {
		n.scene.world.Remove(n.Body)
	}
	n.scene = nil
	for _, c := range n.children {
		c.detach()
	}
}
