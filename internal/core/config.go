package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed; 0 means the platform picks one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// GameState is what a game reports to the platform after each tick.
type GameState struct {
	Score    int     // Points for the scoreboard
	Started  bool    // Whether the run has begun
	GameOver bool    // Whether the run has ended
	Won      bool    // Whether the run ended in a win
	TimeLeft float64 // Seconds remaining on the countdown
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
