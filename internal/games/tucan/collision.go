package tucan

import "github.com/vovakirdan/tui-tucan/internal/physics"

// Hit classifies a contact from the avatar's point of view.
type Hit int

const (
	HitNone Hit = iota
	HitGround
	HitObstacle
)

// String returns the hit name for logs.
func (h Hit) String() string {
	switch h {
	case HitGround:
		return "ground"
	case HitObstacle:
		return "obstacle"
	default:
		return "none"
	}
}

// Classify reports what the avatar hit in c. Argument order does not matter.
func Classify(c physics.Contact) Hit {
	_, other, ok := c.Pick(CategoryAvatar)
	if !ok {
		return HitNone
	}
	switch {
	case other.Category&CategoryGround != 0:
		return HitGround
	case other.Category&CategoryObstacle != 0:
		return HitObstacle
	}
	return HitNone
}

// CollisionResolver turns avatar contacts into a game over.
type CollisionResolver struct {
	endGame func(Hit)
}

// NewCollisionResolver returns a resolver calling endGame for every avatar hit.
// endGame must be idempotent.
func NewCollisionResolver(endGame func(Hit)) *CollisionResolver {
	return &CollisionResolver{endGame: endGame}
}

// Resolve consumes one frame's contacts and returns how many involved the avatar.
func (r *CollisionResolver) Resolve(contacts []physics.Contact) int {
	hits := 0
	for _, c := range contacts {
		h := Classify(c)
		if h == HitNone {
			continue
		}
		hits++
		r.endGame(h)
	}
	return hits
}
