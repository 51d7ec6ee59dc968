package engine

// IsStar reports whether c is the centre of a star for side: an interior cell
// owned by side whose four orthogonal neighbours are also side's and whose
// four diagonal neighbours are empty.
func IsStar(b *Board, c Coord, side Side) bool {
	if !b.InBounds(c) || b.IsBorder(c) || b.Get(c) != side.Cell() {
		return false
	}
	if b.CountNeighbors(c, side) != 4 {
		return false
	}
	for _, d := range diagonals {
		if b.Get(c.Add(d[0], d[1])) != Empty {
			return false
		}
	}
	return true
}

// FindStars scans the whole board and returns the linear index of every star
// centre owned by side, in row-major order. It does not modify the board.
func FindStars(b *Board, side Side) []int {
	var found []int
	for y := 1; y < Height-1; y++ {
		for x := 1; x < Width-1; x++ {
			c := C(x, y)
			if IsStar(b, c, side) {
				found = append(found, c.Index())
			}
		}
	}
	return found
}

// StarLedger tracks the stars found for the side to move and how many bonus
// moves that side has already taken this cycle.
type StarLedger struct {
	Stars []int
	Used  int
}

// Refresh replaces the recorded stars with a fresh scan for side.
func (l *StarLedger) Refresh(b *Board, side Side) {
	l.Stars = FindStars(b, side)
}

// Grant consumes a bonus move if more stars are recorded than bonus moves
// used. It returns true when the same side moves again.
func (l *StarLedger) Grant() bool {
	if len(l.Stars) > l.Used {
		l.Used++
		return true
	}
	return false
}

// Reset clears the ledger when a side's turn genuinely ends.
func (l *StarLedger) Reset() {
	l.Stars = nil
	l.Used = 0
}
