package engine

// IsTurret reports whether the piece at c can fire for side: it must be owned
// by side, lie off the border, and have exactly three same-side neighbours.
func IsTurret(b *Board, c Coord, side Side) bool {
	if !b.InBounds(c) || b.IsBorder(c) {
		return false
	}
	if b.Get(c) != side.Cell() {
		return false
	}
	return b.CountNeighbors(c, side) == 3
}

// FireDirection returns the first direction in FireOrder whose neighbour is
// empty or owned by the opponent. ok is false when c is not a turret.
func FireDirection(b *Board, c Coord, side Side) (dir Dir, ok bool) {
	if !IsTurret(b, c, side) {
		return 0, false
	}
	opp := side.Opponent().Cell()
	for _, d := range FireOrder {
		n := b.Get(c.Step(d)) // interior cell: every neighbour is on the board
		if n == Empty || n == opp {
			return d, true
		}
	}
	return 0, false
}

// CanFire reports whether side owns at least one turret with a fire direction.
func CanFire(b *Board, side Side) bool {
	for y := 1; y < Height-1; y++ {
		for x := 1; x < Width-1; x++ {
			if _, ok := FireDirection(b, C(x, y), side); ok {
				return true
			}
		}
	}
	return false
}

// HasLegalMove reports whether side can change the board: either an empty
// cell is available for placement or one of its turrets can fire.
func HasLegalMove(b *Board, side Side) bool {
	return b.HasEmpty() || CanFire(b, side)
}
