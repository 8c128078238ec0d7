package scene

import (
	"math"

	"github.com/vovakirdan/tui-tucan/internal/core"
)

// Action is a timed behavior attached to a node.
//
// Values returned by the constructors are templates: Node.Run starts a copy,
// so the same action can be run on many nodes.
type Action interface {
	// step advances the action by dt on n and returns the time left over
	// after it finished, and whether it finished.
	step(n *Node, dt float64) (rest float64, done bool)
	clone() Action
}

type moveBy struct {
	delta    core.Vec2
	duration float64
	elapsed  float64
	applied  core.Vec2
}

// MoveBy translates the node by delta over duration seconds.
func MoveBy(delta core.Vec2, duration float64) Action {
	return &moveBy{delta: delta, duration: duration}
}

func (a *moveBy) step(n *Node, dt float64) (float64, bool) {
	if a.duration <= 0 || a.elapsed+dt >= a.duration {
		rest := dt - (a.duration - a.elapsed)
		n.Position = n.Position.Add(a.delta.Sub(a.applied))
		a.applied = a.delta
		a.elapsed = a.duration
		return math.Max(rest, 0), true
	}
	a.elapsed += dt
	target := a.delta.Scale(a.elapsed / a.duration)
	n.Position = n.Position.Add(target.Sub(a.applied))
	a.applied = target
	return 0, false
}

func (a *moveBy) clone() Action {
	return &moveBy{delta: a.delta, duration: a.duration}
}

type wait struct {
	duration float64
	elapsed  float64
}

// Wait does nothing for duration seconds.
func Wait(duration float64) Action {
	return &wait{duration: duration}
}

func (a *wait) step(_ *Node, dt float64) (float64, bool) {
	if a.elapsed+dt >= a.duration {
		rest := dt - (a.duration - a.elapsed)
		a.elapsed = a.duration
		return math.Max(rest, 0), true
	}
	a.elapsed += dt
	return 0, false
}

func (a *wait) clone() Action {
	return &wait{duration: a.duration}
}

type run struct {
	fn func()
}

// Run calls fn once, instantly.
func Run(fn func()) Action {
	return &run{fn: fn}
}

func (a *run) step(_ *Node, dt float64) (float64, bool) {
	a.fn()
	return dt, true
}

func (a *run) clone() Action {
	return &run{fn: a.fn}
}

type removeFromParent struct{}

// RemoveFromParent detaches the node running it.
func RemoveFromParent() Action {
	return removeFromParent{}
}

func (removeFromParent) step(n *Node, dt float64) (float64, bool) {
	n.RemoveFromParent()
	return dt, true
}

func (a removeFromParent) clone() Action {
	return a
}

type setHidden struct {
	hidden bool
}

// Hide hides the node instantly.
func Hide() Action {
	return setHidden{hidden: true}
}

// Unhide shows the node instantly.
func Unhide() Action {
	return setHidden{hidden: false}
}

func (a setHidden) step(n *Node, dt float64) (float64, bool) {
	n.Hidden = a.hidden
	return dt, true
}

func (a setHidden) clone() Action {
	return a
}

type animate struct {
	frames   []string
	perFrame float64
	elapsed  float64
}

// Animate shows each frame for perFrame seconds, then leaves the last one.
func Animate(frames []string, perFrame float64) Action {
	return &animate{frames: frames, perFrame: perFrame}
}

func (a *animate) step(n *Node, dt float64) (float64, bool) {
	if len(a.frames) == 0 {
		return dt, true
	}
	total := a.perFrame * float64(len(a.frames))
	if a.perFrame <= 0 || a.elapsed+dt >= total {
		rest := dt - (total - a.elapsed)
		a.elapsed = total
		n.Frame = a.frames[len(a.frames)-1]
		return math.Max(rest, 0), true
	}
	a.elapsed += dt
	idx := int(a.elapsed / a.perFrame)
	if idx >= len(a.frames) {
		idx = len(a.frames) - 1
	}
	n.Frame = a.frames[idx]
	return 0, false
}

func (a *animate) clone() Action {
	return &animate{frames: a.frames, perFrame: a.perFrame}
}

type sequence struct {
	actions []Action
	idx     int
}

// Sequence runs actions one after another. Time left over by one action is
// handed to the next within the same frame.
func Sequence(actions ...Action) Action {
	return &sequence{actions: actions}
}

func (a *sequence) step(n *Node, dt float64) (float64, bool) {
	rest := dt
	for a.idx < len(a.actions) {
		var done bool
		rest, done = a.actions[a.idx].step(n, rest)
		if !done {
			return 0, false
		}
		a.idx++
	}
	return rest, true
}

func (a *sequence) clone() Action {
	actions := make([]Action, len(a.actions))
	for i, c := range a.actions {
		actions[i] = c.clone()
	}
	return &sequence{actions: actions}
}

type repeatForever struct {
	template Action
	current  Action
}

// RepeatForever restarts action every time it finishes.
func RepeatForever(action Action) Action {
	return &repeatForever{template: action, current: action.clone()}
}

func (a *repeatForever) step(n *Node, dt float64) (float64, bool) {
	rest := dt
	for {
		start := rest
		var done bool
		rest, done = a.current.step(n, rest)
		if !done {
			return 0, false
		}
		a.current = a.template.clone()
		if rest >= start {
			// A full pass took no time; resume next frame.
			return 0, false
		}
	}
}

func (a *repeatForever) clone() Action {
	return &repeatForever{template: a.template, current: a.template.clone()}
}
