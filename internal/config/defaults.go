package config

import (
	_ "embed"
)

//go:embed defaults/tucan.yaml
var defaultTucanYAML []byte

// DefaultConfig returns the hardcoded default configuration.
// It mirrors defaults/tucan.yaml and is used when the embedded file cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Scene: SceneConfig{
			Width:           640,
			Height:          480,
			SecondsPerPoint: 0.015,
		},
		Physics: PhysicsConfig{
			Gravity:     3,
			FlapImpulse: 25,
			GridCell:    32,
			TimeScale:   16,
		},
		Avatar: AvatarConfig{
			Mass:      1,
			Frames:    []string{"tucan1", "tucan2", "tucan3"},
			FrameTime: 0.18,
			Z:         100,
		},
		Obstacles: ObstacleConfig{
			MinOffset:  1,
			MaxOffset:  15,
			OffsetStep: 20,
			OffsetBase: 100,
			UpperFrame: "tikiTop",
			LowerFrame: "tikiBottom",
			Z:          90,
		},
		Ground: GroundConfig{
			Frame: "groundPiece",
			Z:     100,
		},
		Timing: TimingConfig{
			SpawnInterval: 3,
		},
		Flourish: FlourishConfig{
			Step:   0.06,
			Colors: []string{"white", "orange", "white"},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultTucanYAML
}
