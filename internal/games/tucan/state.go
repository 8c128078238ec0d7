package tucan

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tucan/internal/core"
)

// Phase is the game's state.
type Phase int

const (
	PhaseRunning Phase = iota
	PhaseGameOver
)

// String returns the phase name for logs.
func (p Phase) String() string {
	if p == PhaseGameOver {
		return "game_over"
	}
	return "running"
}

// StateMachine owns the phase and the world speed, routes taps and turns
// contacts into game overs. It is the only writer of either.
type StateMachine struct {
	world    *GameWorld
	resolver *CollisionResolver
	logger   *log.Logger

	phase      Phase
	lastHit    Hit
	deaths     int
	resets     int
	flourishes int
}

// NewStateMachine starts a machine in the running phase. A nil logger
// discards output.
func NewStateMachine(world *GameWorld, logger *log.Logger) *StateMachine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &StateMachine{world: world, logger: logger, phase: PhaseRunning}
	m.resolver = NewCollisionResolver(m.crash)
	world.scroller.SetSpeed(1)
	return m
}

// Phase returns the current phase.
func (m *StateMachine) Phase() Phase {
	return m.phase
}

// World returns the driven world.
func (m *StateMachine) World() *GameWorld {
	return m.world
}

// LastHit returns what ended the most recent run.
func (m *StateMachine) LastHit() Hit {
	return m.lastHit
}

// Deaths returns how many times the game has ended.
func (m *StateMachine) Deaths() int {
	return m.deaths
}

// Flourishes returns how many game-over flashes have been started.
func (m *StateMachine) Flourishes() int {
	return m.flourishes
}

// Tap flaps while running and resets after a game over.
func (m *StateMachine) Tap() {
	switch m.phase {
	case PhaseRunning:
		m.world.avatar.Flap()
	case PhaseGameOver:
		m.ResetGame()
	}
}

// Step runs one frame: the tap, then actions, then physics, then contact
// resolution. It returns the number of avatar contacts consumed.
func (m *StateMachine) Step(tap bool, dt float64) int {
	if tap {
		m.Tap()
	}
	sc := m.world.scene
	sc.Update(dt)
	contacts := sc.Simulate(dt)
	return m.resolver.Resolve(contacts)
}

// EndGame freezes the world, lets the bird drop through obstacles onto the
// ground and starts the flash. It does nothing after the first call until
// the next reset.
func (m *StateMachine) EndGame() {
	if m.phase != PhaseRunning {
		return
	}
	w := m.world
	m.phase = PhaseGameOver
	m.deaths++
	w.scroller.SetSpeed(0)
	w.avatar.SetCollisionMask(CategoryGround)

	fl := w.cfg.Flourish
	w.scene.Root().Run(Flourish(w.scene, w.sky, parseColors(fl.Colors), fl.Step))
	m.flourishes++

	m.logger.Debug("game over",
		"hit", m.lastHit,
		"pairs", w.obstacles.Len(),
		"x", w.avatar.Position().X,
		"y", w.avatar.Position().Y,
	)
}

// ResetGame puts the bird back in the middle, clears every pair and lets
// the world move again.
func (m *StateMachine) ResetGame() {
	w := m.world
	cleared := w.obstacles.Len()
	w.avatar.Place(w.Center())
	w.obstacles.RemoveAllChildren()
	if w.cfg.Policy.ResetRestoresAvatar {
		w.avatar.SetVelocity(core.Vec2{})
		w.avatar.SetCollisionMask(CategoryGround | CategoryObstacle)
	}
	w.scroller.SetSpeed(1)
	m.phase = PhaseRunning
	m.lastHit = HitNone
	m.resets++

	m.logger.Debug("reset", "cleared", cleared, "resets", m.resets)
}

func (m *StateMachine) crash(h Hit) {
	if m.phase != PhaseRunning {
		return
	}
	m.lastHit = h
	m.EndGame()
}
