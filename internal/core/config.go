package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses this to size its viewport and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickSeconds returns the simulated time covered by one tick.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is the status the game reports to the platform after each tick.
type GameState struct {
	Tick      int  // Ticks simulated since the game was created
	Running   bool // Whether the world is scrolling
	GameOver  bool // Whether the avatar has crashed and is waiting for a tap
	Paused    bool // Whether the host has suspended the simulation
	Obstacles int  // Number of live obstacle pairs
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State    GameState
	Contacts int // Contact events consumed this tick
}
