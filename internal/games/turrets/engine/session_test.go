package engine

import (
	"math/rand"
	"reflect"
	"testing"
)

// turretRows holds a white turret at (5,5) facing a black piece below it.
var turretRows = []string{".", ".", ".", ".", ".....W", "....WWW", ".....B"}

func TestPlacePassesTurn(t *testing.T) {
	s := New()

	out := s.HandleClick(C(5, 5))

	if out.Kind != MovePlace || !out.BoardChanged || !out.TurnAdvanced {
		t.Fatalf("outcome = %+v, want a placement that passes the turn", out)
	}
	if out.Mover != SideWhite || out.SideToMove != SideBlack {
		t.Errorf("mover/next = %v/%v, want white/black", out.Mover, out.SideToMove)
	}
	if out.WhiteScore != 1 || out.BlackScore != 0 {
		t.Errorf("score = %d/%d, want 1/0", out.WhiteScore, out.BlackScore)
	}
	if got := s.Cell(C(5, 5)); got != White {
		t.Errorf("cell (5,5) = %v, want White", got)
	}

	out = s.HandleClick(C(6, 6))
	if out.Mover != SideBlack || s.At(C(6, 6)) != Black {
		t.Errorf("black placement outcome = %+v", out)
	}
	if s.SideToMove() != SideWhite {
		t.Errorf("side to move = %v, want White", s.SideToMove())
	}
}

func TestArmShowsAttackTarget(t *testing.T) {
	s := New(WithBoard(mustParse(t, turretRows...)))
	before := s.Board()

	out := s.HandleClick(C(5, 5))

	if out.Kind != MoveArm || out.BoardChanged || out.TurnAdvanced {
		t.Fatalf("outcome = %+v, want arm only", out)
	}
	if s.Phase() != PhaseArmed {
		t.Errorf("phase = %v, want armed", s.Phase())
	}
	target, ok := s.AttackTarget()
	if !ok || target != C(5, 6) {
		t.Errorf("attack target = %v, %v, want (5,6)", target, ok)
	}
	if cells := s.PreviewCells(); len(cells) != 0 {
		t.Errorf("preview cells = %v, want none", cells)
	}
	if got := s.Cell(C(5, 6)); got != AttackTarget {
		t.Errorf("Cell(5,6) = %v, want AttackTarget overlay", got)
	}
	if s.Board() != before {
		t.Error("arming must not touch the logical board")
	}
	if s.SideToMove() != SideWhite {
		t.Error("arming must not pass the turn")
	}
}

func TestAttackCapturesAndClearsLauncher(t *testing.T) {
	s := New(WithBoard(mustParse(t,
		".",
		".",
		".",
		".",
		".....W",
		"....WWW",
		".....B",
		".....BBB",
		"..B",
	)))

	s.HandleClick(C(5, 5))
	out := s.HandleClick(C(5, 6))

	if out.Kind != MoveAttack || !out.BoardChanged || !out.TurnAdvanced {
		t.Fatalf("outcome = %+v, want an attack that passes the turn", out)
	}
	if out.Captured != 4 {
		t.Errorf("captured = %d, want 4", out.Captured)
	}
	b := s.Board()
	if b.Get(C(5, 5)) != Empty {
		t.Error("launch turret should be removed after attacking")
	}
	for _, c := range []Coord{C(5, 6), C(5, 7), C(6, 7), C(7, 7)} {
		if b.Get(c) != White {
			t.Errorf("%v = %v, want captured White", c, b.Get(c))
		}
	}
	if b.Get(C(2, 8)) != Black {
		t.Error("disconnected black piece must survive")
	}
	if out.WhiteScore != 7 || out.BlackScore != 1 {
		t.Errorf("score = %d/%d, want 7/1", out.WhiteScore, out.BlackScore)
	}
	if s.Phase() != PhaseIdle || out.SideToMove != SideBlack {
		t.Errorf("after attack phase=%v next=%v", s.Phase(), out.SideToMove)
	}
	if st := s.Stats(); st.Attacks != 1 || st.Captured != 4 {
		t.Errorf("stats = %+v", st)
	}
}

func TestAttackThroughEmptyCells(t *testing.T) {
	s := New(WithBoard(mustParse(t,
		".",
		".",
		".",
		".",
		".....W",
		"....WWW",
		".",
		".",
		".....BB",
	)))

	s.HandleClick(C(5, 5))
	want := []Coord{C(5, 6), C(5, 7)}
	if got := s.PreviewCells(); !reflect.DeepEqual(got, want) {
		t.Fatalf("preview cells = %v, want %v", got, want)
	}
	if s.Cell(C(5, 7)) != PreviewHighlight {
		t.Errorf("Cell(5,7) = %v, want PreviewHighlight", s.Cell(C(5, 7)))
	}

	out := s.HandleClick(C(5, 8))
	if out.Kind != MoveAttack || out.Captured != 2 {
		t.Fatalf("outcome = %+v, want attack capturing 2", out)
	}
	if s.At(C(5, 6)) != Empty || s.At(C(5, 7)) != Empty {
		t.Error("an attack leaves the ray cells empty")
	}
	if len(s.PreviewCells()) != 0 {
		t.Error("preview should be cleared after the attack")
	}
}

func TestCancelRestoresBoard(t *testing.T) {
	s := New(WithBoard(mustParse(t, turretRows...)))
	before := s.Board()

	s.HandleClick(C(5, 5))
	out := s.HandleClick(C(5, 5))

	if out.Kind != MoveCancel || out.BoardChanged || out.TurnAdvanced {
		t.Fatalf("outcome = %+v, want cancel", out)
	}
	if s.Board() != before {
		t.Error("cancel must leave the board exactly as before arming")
	}
	if s.Phase() != PhaseIdle || s.SideToMove() != SideWhite {
		t.Errorf("after cancel phase=%v side=%v", s.Phase(), s.SideToMove())
	}
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if got, want := s.Cell(C(x, y)), before.Get(C(x, y)); got != want {
				t.Fatalf("Cell(%d,%d) = %v after cancel, want %v", x, y, got, want)
			}
		}
	}
}

func TestCancelMethod(t *testing.T) {
	s := New(WithBoard(mustParse(t, turretRows...)))

	if out := s.Cancel(); out.Kind != MoveNone {
		t.Errorf("Cancel while idle = %v, want none", out.Kind)
	}
	s.HandleClick(C(5, 5))
	if out := s.Cancel(); out.Kind != MoveCancel {
		t.Errorf("Cancel while armed = %v, want cancel", out.Kind)
	}
	if s.Phase() != PhaseIdle {
		t.Error("Cancel should disarm")
	}
}

func TestConvertPreviewCell(t *testing.T) {
	s := New(WithBoard(mustParse(t, ".", ".", ".", ".", ".", "....WWW", ".....W")))

	out := s.HandleClick(C(5, 5))
	if out.Kind != MoveArm {
		t.Fatalf("outcome = %+v, want arm", out)
	}
	want := []Coord{C(5, 4), C(5, 3), C(5, 2), C(5, 1), C(5, 0)}
	if got := s.PreviewCells(); !reflect.DeepEqual(got, want) {
		t.Fatalf("preview = %v, want %v", got, want)
	}
	if _, ok := s.AttackTarget(); ok {
		t.Error("a ray into empty cells has no target")
	}

	out = s.HandleClick(C(5, 2))

	if out.Kind != MoveConvert || !out.BoardChanged || !out.TurnAdvanced {
		t.Fatalf("outcome = %+v, want convert", out)
	}
	b := s.Board()
	if b.Get(C(5, 5)) != Empty || b.Get(C(5, 2)) != White {
		t.Errorf("after convert launch=%v cell=%v", b.Get(C(5, 5)), b.Get(C(5, 2)))
	}
	if b.Get(C(5, 4)) != Empty || b.Get(C(5, 3)) != Empty {
		t.Error("only the clicked ray cell is converted")
	}
	if out.WhiteScore != 4 {
		t.Errorf("white score = %d, want 4", out.WhiteScore)
	}
	if s.Stats().Conversions != 1 {
		t.Errorf("conversions = %d, want 1", s.Stats().Conversions)
	}
}

func TestMissPolicies(t *testing.T) {
	tests := []struct {
		name      string
		policy    MissPolicy
		wantKind  MoveKind
		wantPhase Phase
	}{
		{"ignore keeps preview", MissIgnore, MoveNone, PhaseArmed},
		{"cancel clears preview", MissCancel, MoveCancel, PhaseIdle},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New(WithBoard(mustParse(t, turretRows...)), WithMissPolicy(tc.policy))
			before := s.Board()
			s.HandleClick(C(5, 5))

			for _, miss := range []Coord{C(12, 12), C(4, 5)} {
				out := s.HandleClick(miss)
				if out.Kind != tc.wantKind {
					t.Errorf("miss at %v kind = %v, want %v", miss, out.Kind, tc.wantKind)
				}
				if out.BoardChanged || out.TurnAdvanced {
					t.Errorf("miss at %v changed the game: %+v", miss, out)
				}
				if s.Phase() != tc.wantPhase {
					t.Errorf("miss at %v phase = %v, want %v", miss, s.Phase(), tc.wantPhase)
				}
				if s.Board() != before || s.SideToMove() != SideWhite {
					t.Errorf("miss at %v must not mutate or pass the turn", miss)
				}
				if tc.policy == MissCancel {
					s.HandleClick(C(5, 5))
				}
			}
		})
	}
}

func TestIdleNoOps(t *testing.T) {
	s := New(WithBoard(mustParse(t,
		".",
		".",
		".",
		".",
		"W....W",
		"WW..WWW",
		"W....B",
	)))
	before := s.Board()

	tests := []struct {
		name string
		c    Coord
	}{
		{"own border piece", C(0, 5)},
		{"own non-turret", C(5, 4)},
		{"opponent piece", C(5, 6)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := s.HandleClick(tc.c)
			if out.Kind != MoveNone || out.BoardChanged || out.TurnAdvanced {
				t.Errorf("click %v = %+v, want no-op", tc.c, out)
			}
			if s.Board() != before || s.Phase() != PhaseIdle {
				t.Errorf("click %v changed the session", tc.c)
			}
		})
	}
}

func TestStarGrantsOneBonusMove(t *testing.T) {
	s := New(WithBoard(mustParse(t,
		".",
		".",
		".",
		".",
		".....W",
		"....W.W",
		".....W",
	)))

	out := s.HandleClick(C(5, 5))
	if !out.BonusMoveGranted || out.TurnAdvanced {
		t.Fatalf("completing a star: %+v, want a bonus move", out)
	}
	if s.SideToMove() != SideWhite {
		t.Fatal("white should move again")
	}
	if l := s.Ledger(); len(l.Stars) != 1 || l.Used != 1 {
		t.Errorf("ledger = %+v, want one star used", l)
	}

	out = s.HandleClick(C(12, 12))
	if out.BonusMoveGranted || !out.TurnAdvanced || out.SideToMove != SideBlack {
		t.Fatalf("second move: %+v, want the turn to pass", out)
	}
	if l := s.Ledger(); len(l.Stars) != 0 || l.Used != 0 {
		t.Errorf("ledger after pass = %+v, want reset", l)
	}
	if st := s.Stats(); st.BonusMoves != 1 || st.Turns != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestTwoStarsGrantTwoBonusMoves(t *testing.T) {
	s := New(WithBoard(mustParse(t,
		".",
		".",
		".",
		".",
		".....W",
		"....W.W",
		".....W",
		".",
		".",
		"..........W",
		".........W.W",
		"..........W",
	)))

	if out := s.HandleClick(C(5, 5)); !out.BonusMoveGranted {
		t.Fatalf("first star: %+v", out)
	}
	if out := s.HandleClick(C(10, 10)); !out.BonusMoveGranted {
		t.Fatalf("second star: %+v", out)
	}
	if l := s.Ledger(); len(l.Stars) != 2 || l.Used != 2 {
		t.Errorf("ledger = %+v, want two stars used", l)
	}
	if out := s.HandleClick(C(0, 15)); !out.TurnAdvanced || out.BonusMoveGranted {
		t.Fatalf("third move: %+v, want the turn to pass", out)
	}
}

func TestOpponentStarsIgnored(t *testing.T) {
	s := New(WithBoard(mustParse(t,
		".",
		".",
		".",
		".",
		".....B",
		"....BBB",
		".....B",
	)))

	out := s.HandleClick(C(12, 12))
	if out.BonusMoveGranted || !out.TurnAdvanced {
		t.Errorf("white placement with only a black star: %+v", out)
	}
}

func TestGameOverWhenSideToMoveIsStuck(t *testing.T) {
	var b Board
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			b.Set(C(x, y), Black)
		}
	}
	b.Set(C(0, 0), Empty)
	s := New(WithBoard(b))

	out := s.HandleClick(C(0, 0))

	if !out.GameOver || !s.Finished() {
		t.Fatalf("outcome = %+v, want game over", out)
	}
	winner, ok := s.Winner()
	if !ok || winner != SideBlack {
		t.Errorf("winner = %v, %v, want black", winner, ok)
	}
	if out.WhiteScore != 1 || out.BlackScore != Width*Height-1 {
		t.Errorf("score = %d/%d", out.WhiteScore, out.BlackScore)
	}

	after := s.Board()
	out = s.HandleClick(C(8, 8))
	if out.Kind != MoveNone || !out.GameOver || s.Board() != after {
		t.Errorf("click after game over = %+v, want no-op", out)
	}
}

func TestWinnerWhileRunning(t *testing.T) {
	s := New()
	s.HandleClick(C(3, 3))
	if _, ok := s.Winner(); ok {
		t.Error("no winner while the game is running")
	}
}

func TestHandleClickOutOfRangePanics(t *testing.T) {
	s := New()
	expectPanic(t, "negative x", func() { s.HandleClick(C(-1, 0)) })
	expectPanic(t, "y past height", func() { s.HandleClick(C(0, Height)) })
}

func TestSnapshot(t *testing.T) {
	s := New(WithBoard(mustParse(t, turretRows...)))
	s.HandleClick(C(5, 5))

	snap := s.Snapshot()

	if snap.Phase != PhaseArmed || snap.SideToMove != SideWhite {
		t.Errorf("snapshot phase=%v side=%v", snap.Phase, snap.SideToMove)
	}
	if snap.Launch == nil || *snap.Launch != C(5, 5) {
		t.Errorf("snapshot launch = %v", snap.Launch)
	}
	if snap.Target == nil || *snap.Target != C(5, 6) {
		t.Errorf("snapshot target = %v", snap.Target)
	}
	if snap.Score.White != 4 || snap.Score.Black != 1 {
		t.Errorf("snapshot score = %+v", snap.Score)
	}
	b, err := ParseBoard(snap.Board)
	if err != nil || b != s.Board() {
		t.Errorf("snapshot board does not round-trip: %v", err)
	}
}

func TestRandomPlayKeepsInvariants(t *testing.T) {
	for _, policy := range []MissPolicy{MissIgnore, MissCancel} {
		rng := rand.New(rand.NewSource(7))
		s := New(WithMissPolicy(policy))

		for i := 0; i < 4000 && !s.Finished(); i++ {
			c := C(rng.Intn(Width), rng.Intn(Height))
			side := s.SideToMove()
			out := s.HandleClick(c)

			b := s.Board()
			score := b.Score()
			if score.White+score.Black+score.Empty != Width*Height {
				t.Fatalf("step %d: score %+v does not cover the board", i, score)
			}
			if score != s.Score() {
				t.Fatalf("step %d: cached score %+v, board score %+v", i, s.Score(), score)
			}
			if out.WhiteScore != score.White || out.BlackScore != score.Black {
				t.Fatalf("step %d: outcome score %d/%d, board %+v", i, out.WhiteScore, out.BlackScore, score)
			}
			if !out.BoardChanged && out.TurnAdvanced {
				t.Fatalf("step %d: turn advanced without a move: %+v", i, out)
			}
			if out.BonusMoveGranted && s.SideToMove() != side {
				t.Fatalf("step %d: bonus move handed the turn over", i)
			}
			if s.Phase() == PhaseIdle && (len(s.PreviewCells()) != 0) {
				t.Fatalf("step %d: idle session still has preview cells", i)
			}
		}
	}
}
