package tucan

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tucan/internal/config"
	"github.com/vovakirdan/tui-tucan/internal/core"
)

// ID is the game identifier used by the CLI and the replay store.
const ID = "tucan"

var _ core.Game = (*Game)(nil)

// Game adapts the state machine to the platform's core.Game interface.
type Game struct {
	cfg     config.Config
	frames  TextureProvider
	logger  *log.Logger
	runtime core.RuntimeConfig

	world   *GameWorld
	machine *StateMachine
	tick    int
	paused  bool
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger state transitions are reported to.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		g.logger = l
	}
}

// New checks that cfg and frames can build a world and returns a game.
// Call Reset before the first Step.
func New(cfg config.Config, frames TextureProvider, opts ...Option) (*Game, error) {
	g := &Game{cfg: cfg, frames: frames, runtime: core.DefaultConfig()}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := g.build(g.runtime.Seed); err != nil {
		return nil, err
	}
	return g, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Tucany Bird"
}

// Reset rebuilds the world from scratch with the runtime's seed.
// If the world cannot be built the current one is kept.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	if err := g.build(cfg.Seed); err != nil {
		return fmt.Errorf("tucan: reset: %w", err)
	}
	g.runtime = cfg
	g.tick = 0
	g.paused = false
	return nil
}

func (g *Game) build(seed int64) error {
	world, err := NewGameWorld(g.cfg, g.frames, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}
	g.world = world
	g.machine = NewStateMachine(world, g.logger)
	return nil
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	hits := g.machine.Step(in.Has(core.ActionTap), g.runtime.TickSeconds())
	return core.StepResult{State: g.State(), Contacts: hits}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Tick:      g.tick,
		Running:   g.machine.Phase() == PhaseRunning,
		GameOver:  g.machine.Phase() == PhaseGameOver,
		Paused:    g.paused,
		Obstacles: g.world.Obstacles().Len(),
	}
}

// Machine returns the state machine driving the current world.
func (g *Game) Machine() *StateMachine {
	return g.machine
}

// World returns the current world.
func (g *Game) World() *GameWorld {
	return g.world
}

// Config returns the game config.
func (g *Game) Config() config.Config {
	return g.cfg
}
