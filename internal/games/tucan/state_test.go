package tucan

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-tucan/internal/assets"
	"github.com/vovakirdan/tui-tucan/internal/config"
	"github.com/vovakirdan/tui-tucan/internal/core"
)

func newMachine(t *testing.T, mutate func(*config.Config)) *StateMachine {
	t.Helper()
	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	w, err := NewGameWorld(cfg, assets.Default(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewGameWorld: %v", err)
	}
	return NewStateMachine(w, nil)
}

func run(m *StateMachine, frames int) {
	for i := 0; i < frames; i++ {
		m.Step(false, frame)
	}
}

func TestNewWorldLayout(t *testing.T) {
	m := newMachine(t, nil)
	w := m.World()
	if m.Phase() != PhaseRunning || w.WorldSpeed() != 1 {
		t.Fatalf("phase %v speed %v", m.Phase(), w.WorldSpeed())
	}
	if got := w.Avatar().Position(); got != core.V(320, 240) {
		t.Errorf("avatar at %v, want center", got)
	}
	if len(w.Scroller().Segments()) != 10 {
		t.Errorf("segments = %d", len(w.Scroller().Segments()))
	}
	if w.Obstacles().Parent() != w.Scroller().Node() {
		t.Error("obstacle container must live under the moving parts")
	}
	if len(w.Pairs()) != 0 {
		t.Errorf("pairs before first frame = %d", len(w.Pairs()))
	}
}

func TestFirstPairOnFirstFrame(t *testing.T) {
	m := newMachine(t, func(c *config.Config) { c.Physics.Gravity = 0 })
	run(m, 1)
	if got := len(m.World().Pairs()); got != 1 {
		t.Fatalf("pairs after one frame = %d, want 1", got)
	}
	run(m, 178)
	if got := m.World().Spawner().Spawned(); got != 1 {
		t.Fatalf("spawned before interval = %d, want 1", got)
	}
	run(m, 2)
	if got := m.World().Spawner().Spawned(); got != 2 {
		t.Fatalf("spawned after interval = %d, want 2", got)
	}
}

func TestFallingOntoGroundEndsGame(t *testing.T) {
	m := newMachine(t, nil)
	for i := 0; i < 600 && m.Phase() == PhaseRunning; i++ {
		m.Step(false, frame)
	}
	if m.Phase() != PhaseGameOver {
		t.Fatal("bird never hit the ground")
	}
	if m.LastHit() != HitGround {
		t.Errorf("hit = %v, want ground", m.LastHit())
	}
	w := m.World()
	if w.WorldSpeed() != 0 {
		t.Errorf("world speed = %v, want 0", w.WorldSpeed())
	}
	if w.Avatar().CollisionMask() != CategoryGround {
		t.Errorf("collision mask = %b, want ground only", w.Avatar().CollisionMask())
	}

	run(m, 120)
	ground := w.Scroller().GroundHeight()
	radius := w.Avatar().Body().Radius()
	if y := w.Avatar().Position().Y; y < ground+radius-0.01 || y > ground+radius+1 {
		t.Errorf("bird should rest on the ground, y = %v", y)
	}
}

func TestObstacleContactEndsGame(t *testing.T) {
	m := newMachine(t, nil)
	w := m.World()
	pair := w.Factory().Spawn(640, 480, 15)
	pair.Node.Position.X = w.Avatar().Position().X
	w.Obstacles().AddChild(pair.Node)

	hits := m.Step(false, frame)
	if hits == 0 || m.Phase() != PhaseGameOver {
		t.Fatalf("hits = %d, phase = %v", hits, m.Phase())
	}
	if m.LastHit() != HitObstacle {
		t.Errorf("hit = %v, want obstacle", m.LastHit())
	}
}

func TestFallAtLowTickRates(t *testing.T) {
	for _, fps := range []int{60, 30, 15, 10} {
		t.Run(fmt.Sprintf("%d fps", fps), func(t *testing.T) {
			m := newMachine(t, nil)
			dt := 1 / float64(fps)
			for i := 0; i < 10*fps && m.Phase() == PhaseRunning; i++ {
				m.Step(false, dt)
			}
			if m.Phase() != PhaseGameOver || m.LastHit() != HitGround {
				t.Fatalf("phase = %v hit = %v, want game over on the ground", m.Phase(), m.LastHit())
			}
			w := m.World()
			if y := w.Avatar().Position().Y; y < w.Scroller().GroundHeight() {
				t.Errorf("bird fell through the ground, y = %v", y)
			}
		})
	}
}

func TestAvatarInsidePoleEndsGame(t *testing.T) {
	m := newMachine(t, nil)
	w := m.World()
	pair := w.Factory().Spawn(640, 480, 8)
	w.Obstacles().AddChild(pair.Node)
	w.Avatar().Place(pair.Lower.WorldPosition())

	if hits := m.Step(false, frame); hits == 0 || m.Phase() != PhaseGameOver {
		t.Fatalf("hits = %d, phase = %v", hits, m.Phase())
	}
	if m.LastHit() != HitObstacle {
		t.Errorf("hit = %v, want obstacle", m.LastHit())
	}
}

func TestEndGameIdempotent(t *testing.T) {
	m := newMachine(t, nil)
	run(m, 1)
	m.EndGame()
	w := m.World()
	speed, mask := w.WorldSpeed(), w.Avatar().CollisionMask()

	m.EndGame()
	if m.Deaths() != 1 || m.Flourishes() != 1 {
		t.Errorf("deaths = %d, flourishes = %d, want 1 and 1", m.Deaths(), m.Flourishes())
	}
	if w.WorldSpeed() != speed || w.Avatar().CollisionMask() != mask || m.Phase() != PhaseGameOver {
		t.Error("second EndGame changed state")
	}
}

func TestGameOverFreezesWorld(t *testing.T) {
	m := newMachine(t, nil)
	run(m, 30)
	m.EndGame()
	w := m.World()

	pairs := w.Pairs()
	if len(pairs) == 0 {
		t.Fatal("expected a pair")
	}
	pairX := pairs[0].Position.X
	segX := w.Scroller().Segments()[2].Position.X

	run(m, 240)
	if pairs[0].Position.X != pairX || w.Scroller().Segments()[2].Position.X != segX {
		t.Error("moving parts changed while the world speed is 0")
	}
	if got := w.Spawner().Spawned(); got != 1 {
		t.Errorf("spawned while frozen: %d", got)
	}
}

func TestGameOverFlourish(t *testing.T) {
	m := newMachine(t, nil)
	w := m.World()
	sc := w.Scene()
	m.EndGame()

	run(m, 1)
	if !w.Sky().Hidden || sc.Background != core.ColorWhite {
		t.Fatalf("after 1 frame: hidden=%v bg=%v", w.Sky().Hidden, sc.Background)
	}
	run(m, 3)
	if sc.Background != core.ColorOrange {
		t.Fatalf("after 4 frames: bg=%v, want orange", sc.Background)
	}
	run(m, 3)
	if !w.Sky().Hidden || sc.Background != core.ColorOrange {
		t.Fatalf("after 7 frames: hidden=%v bg=%v", w.Sky().Hidden, sc.Background)
	}
	run(m, 1)
	if w.Sky().Hidden || sc.Background != core.ColorWhite {
		t.Fatalf("after 8 frames: hidden=%v bg=%v", w.Sky().Hidden, sc.Background)
	}
}

func TestTapFlapsWhileRunning(t *testing.T) {
	m := newMachine(t, nil)
	run(m, 10)
	m.Tap()
	if v := m.World().Avatar().Velocity(); v != core.V(0, 25) {
		t.Errorf("velocity after tap = %v, want (0,25)", v)
	}
	if m.Phase() != PhaseRunning {
		t.Error("tap while running must not change phase")
	}
}

func TestTapAfterGameOverResets(t *testing.T) {
	m := newMachine(t, nil)
	run(m, 200)
	for m.Phase() == PhaseRunning {
		m.Step(false, frame)
	}
	w := m.World()
	if len(w.Pairs()) == 0 {
		t.Fatal("expected pairs before reset")
	}

	m.Tap()
	if len(w.Pairs()) != 0 {
		t.Errorf("pairs after reset = %d", len(w.Pairs()))
	}
	if got := w.Avatar().Position(); got != core.V(320, 240) {
		t.Errorf("avatar at %v, want center", got)
	}
	if m.Phase() != PhaseRunning || w.WorldSpeed() != 1 {
		t.Errorf("phase %v speed %v", m.Phase(), w.WorldSpeed())
	}
	if m.LastHit() != HitNone {
		t.Errorf("last hit = %v", m.LastHit())
	}
}

func TestResetPolicy(t *testing.T) {
	tests := []struct {
		name     string
		restore  bool
		wantVel  core.Vec2
		wantMask uint32
	}{
		{"keeps avatar state", false, core.V(0, -7), CategoryGround},
		{"restores avatar", true, core.Vec2{}, CategoryGround | CategoryObstacle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMachine(t, func(c *config.Config) { c.Policy.ResetRestoresAvatar = tt.restore })
			m.EndGame()
			a := m.World().Avatar()
			a.SetVelocity(core.V(0, -7))

			m.ResetGame()
			if a.Velocity() != tt.wantVel {
				t.Errorf("velocity = %v, want %v", a.Velocity(), tt.wantVel)
			}
			if a.CollisionMask() != tt.wantMask {
				t.Errorf("mask = %b, want %b", a.CollisionMask(), tt.wantMask)
			}
		})
	}
}

func TestSpawnPolicy(t *testing.T) {
	tests := []struct {
		name          string
		whilePaused   bool
		wantSpawned   int
		wantPairMoves bool
	}{
		{"spawner freezes with world", false, 1, false},
		{"spawner keeps running", true, 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMachine(t, func(c *config.Config) { c.Policy.SpawnWhilePaused = tt.whilePaused })
			run(m, 1)
			m.EndGame()
			w := m.World()
			first := w.Pairs()[0]
			x := first.Position.X

			run(m, 600)
			if got := w.Spawner().Spawned(); got != tt.wantSpawned {
				t.Errorf("spawned = %d, want %d", got, tt.wantSpawned)
			}
			if moved := first.Position.X != x; moved != tt.wantPairMoves {
				t.Errorf("pair moved = %v", moved)
			}
		})
	}
}

func TestResumeAfterReset(t *testing.T) {
	m := newMachine(t, nil)
	run(m, 5)
	m.EndGame()
	run(m, 30)
	seg := m.World().Scroller().Segments()[4]
	frozen := seg.Position.X

	m.Tap()
	run(m, 1)
	if !core.ApproxEqual(seg.Position.X, frozen-frame/0.015, 1e-9) {
		t.Errorf("segment x = %v, want %v", seg.Position.X, frozen-frame/0.015)
	}
}
