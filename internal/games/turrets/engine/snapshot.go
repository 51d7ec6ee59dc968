package engine

// Snapshot captures the complete session state for tests and screenshots.
type Snapshot struct {
	Board      string // Board.String() form
	SideToMove Side
	Phase      Phase
	Launch     *Coord
	Preview    []Coord
	Target     *Coord
	Score      Score
	Stars      int // Stars recorded for the side to move
	BonusUsed  int
	Stats      Stats
	GameOver   bool
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Board:      s.board.String(),
		SideToMove: s.side,
		Phase:      s.Phase(),
		Preview:    s.PreviewCells(),
		Score:      s.score,
		Stars:      len(s.ledger.Stars),
		BonusUsed:  s.ledger.Used,
		Stats:      s.stats,
		GameOver:   s.over,
	}
	if launch, ok := s.Launch(); ok {
		snap.Launch = &launch
	}
	if target, ok := s.AttackTarget(); ok {
		snap.Target = &target
	}
	return snap
}
