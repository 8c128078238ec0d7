package tucan

import "github.com/vovakirdan/tui-tucan/internal/scene"

// SpawnObstaclesTask adds one obstacle pair to a container each time it runs.
type SpawnObstaclesTask struct {
	factory       *ObstacleFactory
	planner       *GapPlanner
	into          *scene.Node
	width, height float64
	spawned       int
}

// NewSpawnObstaclesTask returns a task spawning pairs for a width x height
// screen into the given container.
func NewSpawnObstaclesTask(factory *ObstacleFactory, planner *GapPlanner, into *scene.Node, width, height float64) *SpawnObstaclesTask {
	return &SpawnObstaclesTask{
		factory: factory,
		planner: planner,
		into:    into,
		width:   width,
		height:  height,
	}
}

// Run spawns one pair with a fresh gap offset.
func (t *SpawnObstaclesTask) Run() *ObstaclePair {
	pair := t.factory.Spawn(t.width, t.height, t.planner.NextOffset())
	t.into.AddChild(pair.Node)
	t.spawned++
	return pair
}

// Spawned returns how many pairs the task has created.
func (t *SpawnObstaclesTask) Spawned() int {
	return t.spawned
}

// Action spawns immediately and then every interval, forever.
func (t *SpawnObstaclesTask) Action(interval float64) scene.Action {
	return scene.RepeatForever(scene.Sequence(
		scene.Run(func() { t.Run() }),
		scene.Wait(interval),
	))
}
