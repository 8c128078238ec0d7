package tucan

import (
	"fmt"

	"github.com/vovakirdan/tui-tucan/internal/assets"
	"github.com/vovakirdan/tui-tucan/internal/config"
	"github.com/vovakirdan/tui-tucan/internal/core"
	"github.com/vovakirdan/tui-tucan/internal/physics"
	"github.com/vovakirdan/tui-tucan/internal/scene"
)

// Node names used inside the scene tree.
const (
	pairName  = "pair"
	upperName = "upper"
	lowerName = "lower"
)

// ObstaclePair is a container node holding an upper and a lower pole.
// The container's y is the gap center offset; the poles hang off the top
// and bottom edges of the screen relative to it.
type ObstaclePair struct {
	Node   *scene.Node
	Upper  *scene.Node
	Lower  *scene.Node
	Offset int
}

// YCenter returns the container's y for a gap offset.
func YCenter(offset, step, base int) float64 {
	return float64(offset*step - base)
}

// ObstacleFactory builds obstacle pairs and their scroll motion.
type ObstacleFactory struct {
	upper, lower    assets.Frame
	step, base      int
	secondsPerPoint float64
	z               int
}

// NewObstacleFactory looks up the pole frames and returns a factory.
func NewObstacleFactory(cfg config.Config, frames TextureProvider) (*ObstacleFactory, error) {
	upper, err := frames.Frame(cfg.Obstacles.UpperFrame)
	if err != nil {
		return nil, fmt.Errorf("tucan: upper pole: %w", err)
	}
	lower, err := frames.Frame(cfg.Obstacles.LowerFrame)
	if err != nil {
		return nil, fmt.Errorf("tucan: lower pole: %w", err)
	}
	return &ObstacleFactory{
		upper:           upper,
		lower:           lower,
		step:            cfg.Obstacles.OffsetStep,
		base:            cfg.Obstacles.OffsetBase,
		secondsPerPoint: cfg.Scene.SecondsPerPoint,
		z:               cfg.Obstacles.Z,
	}, nil
}

// PoleWidth returns the width of the upper pole.
func (f *ObstacleFactory) PoleWidth() float64 {
	return f.upper.Width
}

// Travel returns how far a pair moves before it is removed.
func (f *ObstacleFactory) Travel(screenW float64) float64 {
	return screenW + 2*f.PoleWidth()
}

// TravelTime returns how long a pair takes to cross the screen.
func (f *ObstacleFactory) TravelTime(screenW float64) float64 {
	return f.Travel(screenW) * f.secondsPerPoint
}

// Spawn builds a pair at the right screen edge and starts its motion.
// The pair removes itself once it has scrolled off the left edge.
func (f *ObstacleFactory) Spawn(screenW, screenH float64, offset int) *ObstaclePair {
	pair := scene.NewNode(pairName)
	pair.Position = core.V(screenW, YCenter(offset, f.step, f.base))

	upper := f.pole(upperName, f.upper)
	upper.Position = core.V(0, screenH)
	lower := f.pole(lowerName, f.lower)
	lower.Position = core.V(0, 0)
	pair.AddChild(upper)
	pair.AddChild(lower)

	distance := f.Travel(screenW)
	pair.Run(scene.Sequence(
		scene.MoveBy(core.V(-distance, 0), distance*f.secondsPerPoint),
		scene.RemoveFromParent(),
	))

	return &ObstaclePair{Node: pair, Upper: upper, Lower: lower, Offset: offset}
}

func (f *ObstacleFactory) pole(name string, frame assets.Frame) *scene.Node {
	n := scene.NewSprite(name, frame.Name)
	n.Z = f.z
	body := physics.NewRectBody(frame.Width, frame.Height)
	body.Dynamic = false
	body.Category = CategoryObstacle
	body.ContactMask = 0
	body.CollisionMask = 0
	body.UserData = n
	n.Body = body
	return n
}
