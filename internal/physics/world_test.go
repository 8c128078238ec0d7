package physics

import (
	"sync"
	"testing"

	"github.com/vovakirdan/tui-tucan/internal/core"
)

const (
	catBall   uint32 = 1 << 0
	catFloor  uint32 = 1 << 1
	catSpikes uint32 = 1 << 2
)

func newBall(x, y float64) *Body {
	b := NewCircleBody(10)
	b.Position = core.V(x, y)
	b.Category = catBall
	b.ContactMask = catFloor | catSpikes
	b.CollisionMask = catFloor | catSpikes
	return b
}

func newSolid(x, y, w, h float64, cat uint32) *Body {
	b := NewRectBody(w, h)
	b.Dynamic = false
	b.Position = core.V(x, y)
	b.Category = cat
	b.ContactMask = 0
	return b
}

func TestGravityOnlyMovesDynamicBodies(t *testing.T) {
	w := NewWorld(400, 400, 32)
	w.Gravity = core.V(0, -10)
	ball := newBall(100, 200)
	wall := newSolid(300, 200, 20, 20, catFloor)
	w.Add(ball)
	w.Add(wall)

	w.Step(0.5)

	if !core.ApproxEqual(ball.Velocity.Y, -5, 1e-9) {
		t.Errorf("velocity = %v, want -5", ball.Velocity.Y)
	}
	if !core.ApproxEqual(ball.Position.Y, 197.5, 1e-9) {
		t.Errorf("position = %v, want 197.5", ball.Position.Y)
	}
	if wall.Position != core.V(300, 200) || wall.Velocity != (core.Vec2{}) {
		t.Errorf("static body moved: %+v", wall)
	}
}

func TestApplyImpulse(t *testing.T) {
	tests := []struct {
		name    string
		mass    float64
		dynamic bool
		want    core.Vec2
	}{
		{"unit mass", 1, true, core.V(0, 25)},
		{"heavy", 5, true, core.V(0, 5)},
		{"zero mass treated as one", 0, true, core.V(0, 25)},
		{"static ignores", 1, false, core.Vec2{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewCircleBody(4)
			b.Mass = tt.mass
			b.Dynamic = tt.dynamic
			b.ApplyImpulse(core.V(0, 25))
			if b.Velocity != tt.want {
				t.Errorf("velocity = %v, want %v", b.Velocity, tt.want)
			}
		})
	}
}

func TestBeginContactFiresOnce(t *testing.T) {
	w := NewWorld(400, 400, 32)
	ball := newBall(100, 100)
	ball.CollisionMask = 0
	spikes := newSolid(100, 100, 40, 40, catSpikes)
	w.Add(ball)
	w.Add(spikes)

	if got := len(w.Step(1.0 / 60)); got != 1 {
		t.Fatalf("first step contacts = %d, want 1", got)
	}
	if got := len(w.Step(1.0 / 60)); got != 0 {
		t.Fatalf("second step contacts = %d, want 0 while still touching", got)
	}

	ball.Position = core.V(300, 300)
	w.Step(1.0 / 60)
	ball.Position = core.V(100, 100)
	if got := len(w.Step(1.0 / 60)); got != 1 {
		t.Fatalf("re-entry contacts = %d, want 1", got)
	}
}

func TestContactRequiresMask(t *testing.T) {
	w := NewWorld(400, 400, 32)
	ball := newBall(100, 100)
	ball.ContactMask = catFloor
	ball.CollisionMask = 0
	spikes := newSolid(100, 100, 40, 40, catSpikes)
	w.Add(ball)
	w.Add(spikes)

	if got := w.Step(0); len(got) != 0 {
		t.Fatalf("contacts = %d, want 0", len(got))
	}

	// Either side's mask is enough.
	spikes.ContactMask = catBall
	if got := w.Step(0); len(got) != 1 {
		t.Fatalf("contacts = %d, want 1", len(got))
	}
}

func TestContactPick(t *testing.T) {
	w := NewWorld(400, 400, 32)
	spikes := newSolid(100, 100, 40, 40, catSpikes)
	spikes.ContactMask = catBall
	ball := newBall(100, 100)
	ball.CollisionMask = 0
	w.Add(spikes)
	w.Add(ball)

	contacts := w.Step(0)
	if len(contacts) != 1 {
		t.Fatalf("contacts = %d, want 1", len(contacts))
	}
	c := contacts[0]
	if c.A != spikes || c.B != ball {
		t.Fatalf("contact order = %v,%v want insertion order", c.A, c.B)
	}
	self, other, ok := c.Pick(catBall)
	if !ok || self != ball || other != spikes {
		t.Errorf("Pick(ball) = %v, %v, %v", self, other, ok)
	}
	if _, _, ok := c.Pick(catFloor); ok {
		t.Error("Pick(floor) should fail")
	}
}

func TestFloorStopsFall(t *testing.T) {
	w := NewWorld(400, 400, 32)
	w.Gravity = core.V(0, -50)
	ball := newBall(200, 60)
	floor := newSolid(200, 20, 400, 40, catFloor)
	w.Add(ball)
	w.Add(floor)

	for i := 0; i < 600; i++ {
		w.Step(1.0 / 60)
	}
	if ball.Position.Y < 50-1e-6 {
		t.Errorf("ball sank into floor: y = %v", ball.Position.Y)
	}
	if ball.Position.Y > 51 {
		t.Errorf("ball not resting on floor: y = %v", ball.Position.Y)
	}
	if ball.Velocity.Y < -1 {
		t.Errorf("ball still falling: vy = %v", ball.Velocity.Y)
	}
}

func TestCollisionMaskLetsBodiesPass(t *testing.T) {
	w := NewWorld(400, 400, 32)
	ball := newBall(100, 100)
	ball.CollisionMask = catFloor
	spikes := newSolid(100, 100, 40, 40, catSpikes)
	w.Add(ball)
	w.Add(spikes)

	w.Step(0)
	if ball.Position != core.V(100, 100) {
		t.Errorf("ball pushed by non-colliding body: %v", ball.Position)
	}
}

func TestBodiesOutsideSceneStillCollide(t *testing.T) {
	w := NewWorld(200, 200, 32)
	ball := newBall(250, 300)
	ball.CollisionMask = 0
	spikes := newSolid(260, 300, 20, 100, catSpikes)
	w.Add(ball)
	w.Add(spikes)

	if got := len(w.Step(0)); got != 1 {
		t.Errorf("contacts = %d, want 1", got)
	}
}

func TestRemoveForgetsBody(t *testing.T) {
	w := NewWorld(400, 400, 32)
	ball := newBall(100, 100)
	ball.CollisionMask = 0
	spikes := newSolid(100, 100, 40, 40, catSpikes)
	w.Add(ball)
	w.Add(spikes)
	w.Step(0)

	w.Remove(spikes)
	if w.Len() != 1 || spikes.World() != nil {
		t.Fatalf("remove failed: len=%d", w.Len())
	}
	if got := len(w.Step(0)); got != 0 {
		t.Errorf("contacts after remove = %d", got)
	}

	w.Add(spikes)
	if got := len(w.Step(0)); got != 1 {
		t.Errorf("contacts after re-add = %d, want 1", got)
	}
}

func TestPenetration(t *testing.T) {
	circle := NewCircleBody(5)
	rect := NewRectBody(10, 10)
	tests := []struct {
		name      string
		circleAt  core.Vec2
		wantOK    bool
		wantNorm  core.Vec2
		wantDepth float64
	}{
		{"apart", core.V(20, 0), false, core.Vec2{}, 0},
		{"touching edge", core.V(10, 0), false, core.Vec2{}, 0},
		{"overlap right", core.V(8, 0), true, core.V(1, 0), 2},
		{"overlap below", core.V(0, -9), true, core.V(0, -1), 1},
		{"center inside", core.V(0, 4), true, core.V(0, 1), 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			circle.Position = tt.circleAt
			n, depth, ok := penetration(circle, rect)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if n != tt.wantNorm || !core.ApproxEqual(depth, tt.wantDepth, 1e-9) {
				t.Errorf("got n=%v depth=%v, want n=%v depth=%v", n, depth, tt.wantNorm, tt.wantDepth)
			}
		})
	}
}

func TestMaskBits(t *testing.T) {
	got := maskBits(0b1011)
	want := []uint32{1, 2, 8}
	if len(got) != len(want) {
		t.Fatalf("maskBits = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("maskBits = %v, want %v", got, want)
		}
	}
}

func TestTimeScale(t *testing.T) {
	w := NewWorld(400, 400, 32)
	w.Gravity = core.V(0, -2)
	w.TimeScale = 4
	ball := newBall(100, 200)
	w.Add(ball)
	w.Step(0.5)
	if !core.ApproxEqual(ball.Velocity.Y, -4, 1e-9) {
		t.Errorf("velocity = %v, want -4", ball.Velocity.Y)
	}
}

func TestCircleInsideRectangle(t *testing.T) {
	w := NewWorld(400, 400, 32)
	ball := newBall(200, 200)
	block := newSolid(200, 210, 100, 100, catSpikes)
	w.Add(ball)
	w.Add(block)

	contacts := w.Step(0)
	if len(contacts) != 1 {
		t.Fatalf("contacts = %d, want 1", len(contacts))
	}
	if overlap(ball, block) {
		t.Errorf("ball not pushed out of block: %v", ball.Position)
	}
}

func TestFastBodyDoesNotTunnel(t *testing.T) {
	tests := []struct {
		name string
		dt   float64
		vy   float64
	}{
		{"60 fps", 1.0 / 60, -600},
		{"15 fps", 1.0 / 15, -600},
		{"one second step", 1, -600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorld(400, 400, 32)
			ball := newBall(200, 300)
			ball.Velocity = core.V(0, tt.vy)
			floor := newSolid(200, 100, 400, 4, catFloor)
			w.Add(ball)
			w.Add(floor)

			hits := 0
			for i := 0; i < 60; i++ {
				hits += len(w.Step(tt.dt))
			}
			if hits != 1 {
				t.Errorf("floor contacts = %d, want 1", hits)
			}
			if ball.Position.Y < 112-1e-6 {
				t.Errorf("ball passed through floor: y = %v", ball.Position.Y)
			}
		})
	}
}

func TestSubsteps(t *testing.T) {
	w := NewWorld(400, 400, 32)
	ball := newBall(200, 200)
	w.Add(ball)

	if n := w.substeps(1.0 / 60); n != 1 {
		t.Errorf("resting substeps = %d, want 1", n)
	}
	ball.Velocity = core.V(0, -640)
	if n := w.substeps(0.0625); n != 4 {
		t.Errorf("fast substeps = %d, want 4", n)
	}
	ball.Velocity = core.V(0, -1e9)
	if n := w.substeps(1); n != maxSubsteps {
		t.Errorf("capped substeps = %d, want %d", n, maxSubsteps)
	}
}

func TestWorldsStepConcurrently(t *testing.T) {
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := NewWorld(400, 400, 32)
			w.Gravity = core.V(0, -50)
			ball := newBall(200, 300)
			w.Add(ball)
			w.Add(newSolid(200, 20, 400, 40, catFloor))
			for i := 0; i < 200; i++ {
				pole := newSolid(float64(i%400), 200, 20, 60, catSpikes)
				w.Add(pole)
				w.Step(1.0 / 60)
				w.Remove(pole)
			}
			if ball.Position.Y < 50-1e-6 {
				t.Errorf("ball sank into floor: y = %v", ball.Position.Y)
			}
		}()
	}
	wg.Wait()
}
