// Package engine implements the Turrets rules: the board, turret detection,
// ray previews, flood-fill capture, star bonus moves and turn management.
// It has no external dependencies so the rules stay pure and testable; the
// platform layer drives it through Session.
package engine

// CellState is the value shown for a single board cell.
// The logical board only stores Empty, White and Black. PreviewHighlight and
// AttackTarget are overlays derived from the active preview by Session.Cell.
type CellState uint8

const (
	Empty CellState = iota
	White
	Black
	PreviewHighlight
	AttackTarget
)

// String returns a human-readable name for the cell state.
func (s CellState) String() string {
	switch s {
	case Empty:
		return "Empty"
	case White:
		return "White"
	case Black:
		return "Black"
	case PreviewHighlight:
		return "Preview"
	case AttackTarget:
		return "Target"
	default:
		return "Unknown"
	}
}

// Logical reports whether the state may be stored on the board.
func (s CellState) Logical() bool {
	return s == Empty || s == White || s == Black
}

// Side identifies one of the two players. White moves first.
type Side uint8

const (
	SideWhite Side = iota
	SideBlack
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SideWhite {
		return SideBlack
	}
	return SideWhite
}

// Cell returns the cell state occupied by this side.
func (s Side) Cell() CellState {
	if s == SideWhite {
		return White
	}
	return Black
}

// String returns "White" or "Black".
func (s Side) String() string {
	return s.Cell().String()
}

// SideOf returns the side owning a cell state, if any.
func SideOf(s CellState) (Side, bool) {
	switch s {
	case White:
		return SideWhite, true
	case Black:
		return SideBlack, true
	default:
		return SideWhite, false
	}
}
