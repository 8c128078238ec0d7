// Package replay records the taps of a run and feeds them back into a game.
//
// A run is fully determined by its config, its seed and the ticks at which
// the player tapped, so that is all a recording holds.
package replay

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/tui-tucan/internal/config"
	"github.com/vovakirdan/tui-tucan/internal/core"
	"github.com/vovakirdan/tui-tucan/internal/storage"
)

// Recorder watches a game's steps and collects the ticks of taps.
type Recorder struct {
	gameID  string
	cfg     config.Config
	runtime core.RuntimeConfig

	taps     []int
	ticks    int
	deaths   int
	gameOver bool
}

// NewRecorder starts a recording of a game running with cfg and runtime.
func NewRecorder(gameID string, cfg config.Config, runtime core.RuntimeConfig) *Recorder {
	return &Recorder{gameID: gameID, cfg: cfg, runtime: runtime}
}

// Observe records one Step call: the input it got and what it returned.
// Steps that did not advance the simulation (pause) are ignored.
func (r *Recorder) Observe(in core.InputFrame, res core.StepResult) {
	if res.State.Tick <= r.ticks {
		return
	}
	r.ticks = res.State.Tick
	if in.Has(core.ActionTap) {
		r.taps = append(r.taps, r.ticks)
	}
	if res.State.GameOver && !r.gameOver {
		r.deaths++
	}
	r.gameOver = res.State.GameOver
}

// Ticks returns the number of simulated ticks seen.
func (r *Recorder) Ticks() int {
	return r.ticks
}

// Taps returns the recorded tap ticks.
func (r *Recorder) Taps() []int {
	out := make([]int, len(r.taps))
	copy(out, r.taps)
	return out
}

// Deaths returns how many game overs were seen.
func (r *Recorder) Deaths() int {
	return r.deaths
}

// Replay packs the recording for storage.
func (r *Recorder) Replay() (storage.Replay, error) {
	data, err := config.Marshal(r.cfg)
	if err != nil {
		return storage.Replay{}, fmt.Errorf("replay: %w", err)
	}
	return storage.Replay{
		GameID:   r.gameID,
		Seed:     r.runtime.Seed,
		TickRate: r.runtime.TickRate,
		Ticks:    r.ticks,
		Deaths:   r.deaths,
		Config:   data,
		Taps:     r.Taps(),
		TapCount: len(r.taps),
	}, nil
}

// Player produces the inputs of a recorded run, one tick at a time.
type Player struct {
	cfg   config.Config
	seed  int64
	rate  int
	taps  []int
	next  int
	tick  int
	total int
}

// NewPlayer decodes a stored replay.
func NewPlayer(rep *storage.Replay) (*Player, error) {
	cfg, err := config.Parse(rep.Config)
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", rep.ID, err)
	}
	taps := make([]int, len(rep.Taps))
	copy(taps, rep.Taps)
	sort.Ints(taps)
	return &Player{
		cfg:   cfg,
		seed:  rep.Seed,
		rate:  rep.TickRate,
		taps:  taps,
		total: rep.Ticks,
	}, nil
}

// Config returns the config the run was recorded with.
func (p *Player) Config() config.Config {
	return p.cfg
}

// Runtime returns a runtime config for a screen of the given size that
// reproduces the recorded seed and tick rate.
func (p *Player) Runtime(screenW, screenH int) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: screenW, ScreenH: screenH, TickRate: p.rate, Seed: p.seed}
}

// Next returns the input for the next tick. ok is false once the recorded
// run is over.
func (p *Player) Next() (in core.InputFrame, ok bool) {
	if p.tick >= p.total {
		return core.NewInputFrame(), false
	}
	p.tick++
	in = core.NewInputFrame()
	for p.next < len(p.taps) && p.taps[p.next] < p.tick {
		p.next++
	}
	if p.next < len(p.taps) && p.taps[p.next] == p.tick {
		in.Set(core.ActionTap)
		p.next++
	}
	return in, true
}

// Tick returns the number of inputs produced so far.
func (p *Player) Tick() int {
	return p.tick
}

// Total returns the number of recorded ticks.
func (p *Player) Total() int {
	return p.total
}

// Done reports whether every recorded tick has been produced.
func (p *Player) Done() bool {
	return p.tick >= p.total
}

// Play runs the remaining ticks into g, which must already be Reset with
// Runtime's config. It returns the final state.
func (p *Player) Play(g core.Game) core.GameState {
	for {
		in, ok := p.Next()
		if !ok {
			return g.State()
		}
		g.Step(in)
	}
}
