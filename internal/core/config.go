package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW int    // Screen width in characters
	ScreenH int    // Screen height in characters
	Player  string // Display name recorded with finished games
}

// DefaultConfig returns a RuntimeConfig for a standard 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}

// GameState is the summary a game reports to the platform after every step.
type GameState struct {
	WhiteScore int
	BlackScore int
	SideToMove string
	Winner     string // "white", "black", or empty for a draw or running game
	GameOver   bool
	Moves      int // Board-changing moves played
	Captured   int // Opponent pieces converted by attacks
	BonusMoves int
}

// Event is something a game wants the platform to log. KeyVals are
// alternating key/value pairs for a structured logger.
type Event struct {
	Name    string
	KeyVals []any
}

// StepResult is returned by Game.Step after each batch of input.
type StepResult struct {
	State   GameState
	Changed bool // The game state changed and the view should be redrawn
	Events  []Event
}
