package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed; 0 means seed from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// FrameMillis returns the duration of one tick in milliseconds.
func (c RuntimeConfig) FrameMillis() int {
	if c.TickRate <= 0 {
		return 1000 / 60
	}
	return 1000 / c.TickRate
}

// GameState is the status a game reports to the platform.
type GameState struct {
	Score       int
	SecondsLeft int
	Started     bool
	GameOver    bool
	Paused      bool
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState
}
