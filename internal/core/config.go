package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and the chosen session layout.
type RuntimeConfig struct {
	ScreenW    int  // Screen width in characters
	ScreenH    int  // Screen height in characters
	TickRate   int  // Simulation ticks per second (default 60)
	Dual       bool // Start with both entity slots active
	StartLevel int  // 0-indexed level to begin the session on
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Level    int  // Current level, 1-indexed for display
	Levels   int  // Number of levels in the session
	Cleared  int  // Levels cleared this session
	Finished bool // Whether every level has been cleared
	Paused   bool // Whether the game is paused
	Dual     bool // Whether both entity slots are under control
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State GameState
	Clear *ClearRecord // Set when a level was cleared during this tick
}

// ClearRecord describes a cleared level, for the platform to persist.
type ClearRecord struct {
	LevelIndex int
	LevelID    string
	Ticks      uint64 // Simulation ticks spent on the level
	Dual       bool   // Cleared in two-player mode
}
