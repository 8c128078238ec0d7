// Package tucan implements the tucan game: a bird flapping through an endless
// row of tiki pole pairs over scrolling ground.
//
// The game is built on the scene and physics packages. GameWorld holds the
// scene, StateMachine drives it one tick at a time and Game adapts it to the
// platform's core.Game interface.
package tucan

import "math/rand"

// GapPlanner picks the vertical offset of each new obstacle pair.
// Draws are uniform and independent.
type GapPlanner struct {
	rng      *rand.Rand
	min, max int
}

// NewGapPlanner returns a planner drawing offsets in [min, max] from rng.
func NewGapPlanner(rng *rand.Rand, min, max int) *GapPlanner {
	if max < min {
		min, max = max, min
	}
	return &GapPlanner{rng: rng, min: min, max: max}
}

// NextOffset returns the next gap offset.
func (p *GapPlanner) NextOffset() int {
	return p.min + p.rng.Intn(p.max-p.min+1)
}

// Range returns the inclusive offset bounds.
func (p *GapPlanner) Range() (min, max int) {
	return p.min, p.max
}
