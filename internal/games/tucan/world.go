package tucan

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-tucan/internal/assets"
	"github.com/vovakirdan/tui-tucan/internal/config"
	"github.com/vovakirdan/tui-tucan/internal/core"
	"github.com/vovakirdan/tui-tucan/internal/physics"
	"github.com/vovakirdan/tui-tucan/internal/scene"
)

const (
	skyFrame      = "sky"
	skyName       = "sky"
	obstaclesName = "obstacles"
)

// TextureProvider resolves frame names. *assets.Atlas implements it.
type TextureProvider interface {
	Frame(name string) (assets.Frame, error)
}

// GameWorld is everything the state machine drives: the scene tree, the
// physics world inside it and the components that populate it.
//
//	scene root
//	├── sky
//	├── moving (speed = world speed)
//	│   ├── ground segments
//	│   └── obstacles
//	│       └── pair (upper, lower)...
//	├── surface (ground body)
//	└── tucan
type GameWorld struct {
	cfg       config.Config
	scene     *scene.Scene
	sky       *scene.Node
	scroller  *WorldScroller
	obstacles *scene.Node
	avatar    *Avatar
	factory   *ObstacleFactory
	planner   *GapPlanner
	spawner   *SpawnObstaclesTask
}

// NewGameWorld builds the scene for cfg. rng feeds the gap planner.
func NewGameWorld(cfg config.Config, frames TextureProvider, rng *rand.Rand) (*GameWorld, error) {
	width, height := cfg.Scene.Width, cfg.Scene.Height

	pw := physics.NewWorld(width, height, cfg.Physics.GridCell)
	pw.Gravity = core.V(0, -cfg.Physics.Gravity)
	pw.TimeScale = cfg.Physics.TimeScale
	sc := scene.New(core.V(width, height), pw)

	skyArt, err := frames.Frame(skyFrame)
	if err != nil {
		return nil, fmt.Errorf("tucan: sky: %w", err)
	}
	sc.Background = skyArt.Background
	sky := scene.NewSprite(skyName, skyArt.Name)
	sky.Position = core.V(width/2, height/2)
	sc.Add(sky)

	groundArt, err := frames.Frame(cfg.Ground.Frame)
	if err != nil {
		return nil, fmt.Errorf("tucan: ground: %w", err)
	}
	scroller := NewWorldScroller(groundArt, cfg.Scene.SecondsPerPoint, cfg.Ground.Z)
	sc.Add(scroller.Node())
	scroller.Tile(width)

	obstacles := scene.NewNode(obstaclesName)
	scroller.Node().AddChild(obstacles)
	sc.Add(scroller.Surface(width))

	factory, err := NewObstacleFactory(cfg, frames)
	if err != nil {
		return nil, err
	}

	avatar, err := NewAvatar(cfg, frames)
	if err != nil {
		return nil, err
	}
	sc.Add(avatar.Node())
	avatar.Place(core.V(width/2, height/2))

	w := &GameWorld{
		cfg:       cfg,
		scene:     sc,
		sky:       sky,
		scroller:  scroller,
		obstacles: obstacles,
		avatar:    avatar,
		factory:   factory,
		planner:   NewGapPlanner(rng, cfg.Obstacles.MinOffset, cfg.Obstacles.MaxOffset),
	}
	w.spawner = NewSpawnObstaclesTask(w.factory, w.planner, obstacles, width, height)

	// The spawn timer lives on the moving-parts node so it freezes with the
	// world, unless the config asks for it to keep ticking on the root.
	host := scroller.Node()
	if cfg.Policy.SpawnWhilePaused {
		host = sc.Root()
	}
	host.Run(w.spawner.Action(cfg.Timing.SpawnInterval))

	return w, nil
}

// Scene returns the scene tree.
func (w *GameWorld) Scene() *scene.Scene {
	return w.scene
}

// Config returns the config the world was built from.
func (w *GameWorld) Config() config.Config {
	return w.cfg
}

// Avatar returns the player's bird.
func (w *GameWorld) Avatar() *Avatar {
	return w.avatar
}

// Scroller returns the ground scroller.
func (w *GameWorld) Scroller() *WorldScroller {
	return w.scroller
}

// Factory returns the obstacle factory.
func (w *GameWorld) Factory() *ObstacleFactory {
	return w.factory
}

// Spawner returns the periodic obstacle spawn task.
func (w *GameWorld) Spawner() *SpawnObstaclesTask {
	return w.spawner
}

// Sky returns the sky node.
func (w *GameWorld) Sky() *scene.Node {
	return w.sky
}

// Obstacles returns the container of live obstacle pairs.
func (w *GameWorld) Obstacles() *scene.Node {
	return w.obstacles
}

// Pairs returns the live obstacle pair nodes, oldest first.
func (w *GameWorld) Pairs() []*scene.Node {
	return w.obstacles.Children()
}

// WorldSpeed returns the speed of the moving parts.
func (w *GameWorld) WorldSpeed() float64 {
	return w.scroller.Speed()
}

// Size returns the scene size.
func (w *GameWorld) Size() core.Vec2 {
	return w.scene.Size
}

// Center returns the middle of the scene.
func (w *GameWorld) Center() core.Vec2 {
	return w.scene.Size.Scale(0.5)
}
