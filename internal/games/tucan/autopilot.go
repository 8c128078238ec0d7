package tucan

// Autopilot taps so that the avatar tracks the gap of the next pair.
// It drives headless runs; the game itself never consults it.
type Autopilot struct {
	// Margin is how far below the target the avatar may sink before a flap.
	Margin float64
	// Retry taps straight after a crash to start the next round.
	Retry bool
}

// NewAutopilot returns an autopilot with a small margin that retries.
func NewAutopilot() *Autopilot {
	return &Autopilot{Margin: 10, Retry: true}
}

// Target returns the height the autopilot steers towards: the next gap
// center, or the scene's middle when no pair is ahead.
func (a *Autopilot) Target(w *GameWorld) float64 {
	if y, ok := w.NextGap(); ok {
		return y
	}
	return w.Center().Y
}

// Decide reports whether to tap on the coming tick.
func (a *Autopilot) Decide(m *StateMachine) bool {
	if m.Phase() == PhaseGameOver {
		return a.Retry
	}
	w := m.World()
	avatar := w.Avatar()
	return avatar.Position().Y < a.Target(w)-a.Margin && avatar.Velocity().Y <= 0
}

// NextGap returns the gap center of the oldest pair the avatar has not yet
// cleared. ok is false when there is none.
func (w *GameWorld) NextGap() (y float64, ok bool) {
	left := w.avatar.Position().X - w.avatar.Body().Radius()
	half := w.factory.PoleWidth() / 2
	for _, pair := range w.Pairs() {
		p := pair.WorldPosition()
		if p.X+half >= left {
			return p.Y + w.scene.Size.Y/2, true
		}
	}
	return 0, false
}
