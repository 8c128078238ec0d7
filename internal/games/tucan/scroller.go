package tucan

import (
	"math"

	"github.com/vovakirdan/tui-tucan/internal/assets"
	"github.com/vovakirdan/tui-tucan/internal/core"
	"github.com/vovakirdan/tui-tucan/internal/physics"
	"github.com/vovakirdan/tui-tucan/internal/scene"
)

const (
	movingName  = "moving"
	segmentName = "ground"
	surfaceName = "surface"
)

// WorldScroller owns the moving-parts node whose speed is the world speed,
// the looping ground segments under it and the fixed ground surface body.
type WorldScroller struct {
	moving          *scene.Node
	frame           assets.Frame
	secondsPerPoint float64
	z               int

	segments []*scene.Node
	surface  *scene.Node
}

// NewWorldScroller creates the moving-parts node. Attach Node() to the scene.
func NewWorldScroller(frame assets.Frame, secondsPerPoint float64, z int) *WorldScroller {
	return &WorldScroller{
		moving:          scene.NewNode(movingName),
		frame:           frame,
		secondsPerPoint: secondsPerPoint,
		z:               z,
	}
}

// Node returns the moving-parts node.
func (s *WorldScroller) Node() *scene.Node {
	return s.moving
}

// Speed returns the world speed.
func (s *WorldScroller) Speed() float64 {
	return s.moving.Speed
}

// SetSpeed freezes (0) or resumes (1) everything under the moving-parts node.
func (s *WorldScroller) SetSpeed(speed float64) {
	s.moving.Speed = speed
}

// Tile lays ceil(screenW/segmentW) ground segments side by side. Each one
// slides left by its own width and snaps back, forever.
func (s *WorldScroller) Tile(screenW float64) []*scene.Node {
	w := s.frame.Width
	if w <= 0 {
		return nil
	}
	count := int(math.Ceil(screenW / w))
	loop := scene.RepeatForever(scene.Sequence(
		scene.MoveBy(core.V(-w, 0), w*s.secondsPerPoint),
		scene.MoveBy(core.V(w, 0), 0),
	))
	for i := 0; i < count; i++ {
		seg := scene.NewSprite(segmentName, s.frame.Name)
		seg.Position = core.V(float64(i)*w, s.frame.Height/2)
		seg.Z = s.z
		seg.Run(loop)
		s.moving.AddChild(seg)
		s.segments = append(s.segments, seg)
	}
	return s.segments
}

// Segments returns the ground segments created by Tile.
func (s *WorldScroller) Segments() []*scene.Node {
	return s.segments
}

// Surface builds the invisible static ground body: a screenW wide strip
// with the ground frame's height along the bottom edge. It does not scroll.
func (s *WorldScroller) Surface(screenW float64) *scene.Node {
	if s.surface != nil {
		return s.surface
	}
	n := scene.NewNode(surfaceName)
	n.Position = core.V(screenW/2, s.frame.Height/2)
	body := physics.NewRectBody(screenW, s.frame.Height)
	body.Dynamic = false
	body.Category = CategoryGround
	body.ContactMask = 0
	body.CollisionMask = 0
	body.UserData = n
	n.Body = body
	s.surface = n
	return n
}

// GroundHeight returns the height of the ground band.
func (s *WorldScroller) GroundHeight() float64 {
	return s.frame.Height
}
