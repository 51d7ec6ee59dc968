package turrets

import "github.com/vovakirdan/tui-turrets/internal/games/turrets/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying  GameStateType = "playing"
	StateArmed    GameStateType = "armed"
	StateGameOver GameStateType = "game_over"
	StateTooSmall GameStateType = "paused_small_window"
)

// Snapshot captures the adapter and engine state for tests and screenshots.
type Snapshot struct {
	Variant string
	Cursor  engine.Coord
	Status  string
	State   GameStateType
	Engine  engine.Snapshot
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.layout.TooSmall:
		state = StateTooSmall
	case g.session.Finished():
		state = StateGameOver
	case g.session.Phase() == engine.PhaseArmed:
		state = StateArmed
	}

	return Snapshot{
		Variant: g.id,
		Cursor:  g.cursor,
		Status:  g.status,
		State:   state,
		Engine:  g.session.Snapshot(),
	}
}
