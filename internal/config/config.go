// Package config provides YAML-based game configuration loading and
// validation for the tucan game.
package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config contains all tunable parameters of the game.
// Units are scene points and time-units (seconds of simulated time).
type Config struct {
	Scene     SceneConfig    `yaml:"scene"`
	Physics   PhysicsConfig  `yaml:"physics"`
	Avatar    AvatarConfig   `yaml:"avatar"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
	Ground    GroundConfig   `yaml:"ground"`
	Timing    TimingConfig   `yaml:"timing"`
	Flourish  FlourishConfig `yaml:"flourish"`
	Policy    PolicyConfig   `yaml:"policy"`
	Assets    AssetsConfig   `yaml:"assets"`
}

// SceneConfig defines the logical scene the game is simulated in.
type SceneConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	SecondsPerPoint float64 `yaml:"seconds_per_point"` // Scroll duration per point travelled
}

// PhysicsConfig defines the physics world.
type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"`      // Downward acceleration magnitude
	FlapImpulse float64 `yaml:"flap_impulse"` // Upward impulse applied on a tap
	GridCell    int     `yaml:"grid_cell"`    // Broad-phase cell size in points
	TimeScale   float64 `yaml:"time_scale"`   // Physics time per unit of simulated time
}

// AvatarConfig defines the player character.
type AvatarConfig struct {
	Mass      float64  `yaml:"mass"`
	Frames    []string `yaml:"frames"`     // Animation frame names
	FrameTime float64  `yaml:"frame_time"` // Time-units per animation frame
	Z         int      `yaml:"z"`
}

// ObstacleConfig defines obstacle pair generation.
type ObstacleConfig struct {
	MinOffset  int    `yaml:"min_offset"`
	MaxOffset  int    `yaml:"max_offset"`
	OffsetStep int    `yaml:"offset_step"` // yCenter = offset*step - base
	OffsetBase int    `yaml:"offset_base"`
	UpperFrame string `yaml:"upper_frame"`
	LowerFrame string `yaml:"lower_frame"`
	Z          int    `yaml:"z"`
}

// GroundConfig defines the scrolling ground.
type GroundConfig struct {
	Frame string `yaml:"frame"`
	Z     int    `yaml:"z"`
}

// TimingConfig defines scheduled task cadences.
type TimingConfig struct {
	SpawnInterval float64 `yaml:"spawn_interval"`
}

// FlourishConfig defines the game-over flash sequence.
type FlourishConfig struct {
	Step   float64  `yaml:"step"`   // Wait between color changes
	Colors []string `yaml:"colors"` // Background colors, in order
}

// PolicyConfig holds behavior switches for open design questions.
type PolicyConfig struct {
	// SpawnWhilePaused keeps the spawn timer running while the world is frozen.
	SpawnWhilePaused bool `yaml:"spawn_while_paused"`
	// ResetRestoresAvatar zeroes velocity and restores the collision mask on reset.
	ResetRestoresAvatar bool `yaml:"reset_restores_avatar"`
}

// AssetsConfig points at an optional custom sprite atlas.
type AssetsConfig struct {
	Atlas string `yaml:"atlas"`
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error

	if c.Scene.Width <= 0 || c.Scene.Height <= 0 {
		errs = append(errs, fmt.Errorf("scene size must be positive, got %gx%g", c.Scene.Width, c.Scene.Height))
	}
	if c.Scene.SecondsPerPoint <= 0 {
		errs = append(errs, fmt.Errorf("scene.seconds_per_point must be positive, got %g", c.Scene.SecondsPerPoint))
	}
	if c.Physics.GridCell <= 0 {
		errs = append(errs, fmt.Errorf("physics.grid_cell must be positive, got %d", c.Physics.GridCell))
	}
	if c.Physics.TimeScale <= 0 {
		errs = append(errs, fmt.Errorf("physics.time_scale must be positive, got %g", c.Physics.TimeScale))
	}
	if c.Avatar.Mass <= 0 {
		errs = append(errs, fmt.Errorf("avatar.mass must be positive, got %g", c.Avatar.Mass))
	}
	if len(c.Avatar.Frames) == 0 {
		errs = append(errs, errors.New("avatar.frames must not be empty"))
	}
	if c.Avatar.FrameTime <= 0 {
		errs = append(errs, fmt.Errorf("avatar.frame_time must be positive, got %g", c.Avatar.FrameTime))
	}
	if c.Obstacles.MinOffset > c.Obstacles.MaxOffset {
		errs = append(errs, fmt.Errorf("obstacles.min_offset %d exceeds max_offset %d", c.Obstacles.MinOffset, c.Obstacles.MaxOffset))
	}
	if c.Obstacles.UpperFrame == "" || c.Obstacles.LowerFrame == "" {
		errs = append(errs, errors.New("obstacles.upper_frame and lower_frame are required"))
	}
	if c.Ground.Frame == "" {
		errs = append(errs, errors.New("ground.frame is required"))
	}
	if c.Timing.SpawnInterval <= 0 {
		errs = append(errs, fmt.Errorf("timing.spawn_interval must be positive, got %g", c.Timing.SpawnInterval))
	}
	if c.Flourish.Step < 0 {
		errs = append(errs, fmt.Errorf("flourish.step must not be negative, got %g", c.Flourish.Step))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// Marshal encodes the config as YAML, e.g. for storing it next to a replay.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
// Fields missing from data keep their default values.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: cannot parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
