package scene

import (
	"github.com/vovakirdan/tui-tucan/internal/core"
	"github.com/vovakirdan/tui-tucan/internal/physics"
)

// Scene owns the root node, the background color and the physics world that
// bodies of attached nodes live in.
type Scene struct {
	Size       core.Vec2
	Background core.Color

	root  *Node
	world *physics.World
}

// New creates a scene of the given size. world may be nil for scenes without
// physics.
func New(size core.Vec2, world *physics.World) *Scene {
	s := &Scene{Size: size, world: world}
	s.root = NewNode("scene")
	s.root.scene = s
	return s
}

// Root returns the root node.
func (s *Scene) Root() *Node {
	return s.root
}

// World returns the physics world, or nil.
func (s *Scene) World() *physics.World {
	return s.world
}

// Add attaches n to the root.
func (s *Scene) Add(n *Node) {
	s.root.AddChild(n)
}

// Update advances every action in the tree by dt seconds.
func (s *Scene) Update(dt float64) {
	s.root.update(dt)
}

// Simulate steps physics by dt. Body positions are taken from their nodes
// first and dynamic bodies write their result back afterwards.
func (s *Scene) Simulate(dt float64) []physics.Contact {
	if s.world == nil {
		return nil
	}
	var owners []*Node
	s.root.Walk(func(n *Node) bool {
		if n.Body != nil {
			n.Body.Position = n.WorldPosition()
			owners = append(owners, n)
		}
		return true
	})
	contacts := s.world.Step(dt)
	for _, n := range owners {
		if n.Body.Dynamic {
			n.SetWorldPosition(n.Body.Position)
		}
	}
	return contacts
}

// Count returns the number of nodes in the tree, root included.
func (s *Scene) Count() int {
	total := 0
	s.root.Walk(func(*Node) bool {
		total++
		return true
	})
	return total
}
