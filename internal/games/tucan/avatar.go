package tucan

import (
	"fmt"

	"github.com/vovakirdan/tui-tucan/internal/config"
	"github.com/vovakirdan/tui-tucan/internal/core"
	"github.com/vovakirdan/tui-tucan/internal/physics"
	"github.com/vovakirdan/tui-tucan/internal/scene"
)

const avatarName = "tucan"

// Physics categories.
const (
	CategoryAvatar   uint32 = 1 << 0
	CategoryGround   uint32 = 1 << 1
	CategoryObstacle uint32 = 1 << 2
)

// Avatar is the player's bird: an animated sprite with a dynamic circle body.
type Avatar struct {
	node    *scene.Node
	body    *physics.Body
	impulse float64
}

// NewAvatar builds the bird sprite, starts its wing animation and gives it
// a circle body of half the sprite height.
func NewAvatar(cfg config.Config, frames TextureProvider) (*Avatar, error) {
	first, err := frames.Frame(cfg.Avatar.Frames[0])
	if err != nil {
		return nil, fmt.Errorf("tucan: avatar: %w", err)
	}
	for _, name := range cfg.Avatar.Frames[1:] {
		if _, err := frames.Frame(name); err != nil {
			return nil, fmt.Errorf("tucan: avatar: %w", err)
		}
	}

	n := scene.NewSprite(avatarName, first.Name)
	n.Z = cfg.Avatar.Z
	n.Run(scene.RepeatForever(scene.Animate(cfg.Avatar.Frames, cfg.Avatar.FrameTime)))

	body := physics.NewCircleBody(first.Height / 2)
	body.Mass = cfg.Avatar.Mass
	body.Category = CategoryAvatar
	body.ContactMask = CategoryGround | CategoryObstacle
	body.CollisionMask = CategoryGround | CategoryObstacle
	body.UserData = n
	n.Body = body

	return &Avatar{node: n, body: body, impulse: cfg.Physics.FlapImpulse}, nil
}

// Node returns the avatar's scene node.
func (a *Avatar) Node() *scene.Node {
	return a.node
}

// Body returns the avatar's physics body.
func (a *Avatar) Body() *physics.Body {
	return a.body
}

// Flap cancels the current motion and kicks the bird upwards.
func (a *Avatar) Flap() {
	a.body.Velocity = core.Vec2{}
	a.body.ApplyImpulse(core.V(0, a.impulse))
}

// Place moves the bird to p, in scene coordinates.
func (a *Avatar) Place(p core.Vec2) {
	a.node.SetWorldPosition(p)
	a.body.Position = p
}

// Position returns the bird's scene position.
func (a *Avatar) Position() core.Vec2 {
	return a.node.WorldPosition()
}

// Velocity returns the bird's velocity.
func (a *Avatar) Velocity() core.Vec2 {
	return a.body.Velocity
}

// SetVelocity overrides the bird's velocity.
func (a *Avatar) SetVelocity(v core.Vec2) {
	a.body.Velocity = v
}

// CollisionMask returns which categories physically stop the bird.
func (a *Avatar) CollisionMask() uint32 {
	return a.body.CollisionMask
}

// SetCollisionMask changes which categories physically stop the bird.
func (a *Avatar) SetCollisionMask(mask uint32) {
	a.body.CollisionMask = mask
}
