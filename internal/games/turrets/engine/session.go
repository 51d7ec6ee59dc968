package engine

import (
	"fmt"
	"strings"
)

// Phase is the interaction state of a session.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseArmed
)

// String returns the phase name.
func (p Phase) String() string {
	if p == PhaseArmed {
		return "armed"
	}
	return "idle"
}

// MissPolicy decides what a click that hits neither the launch square, the
// attack target nor a previewed cell does while a preview is armed.
type MissPolicy uint8

const (
	// MissIgnore leaves the preview armed and changes nothing.
	MissIgnore MissPolicy = iota
	// MissCancel clears the preview without consuming the turn.
	MissCancel
)

// String returns the policy name used in configuration files.
func (p MissPolicy) String() string {
	if p == MissCancel {
		return "cancel"
	}
	return "ignore"
}

// ParseMissPolicy parses "ignore" or "cancel". An empty string is MissIgnore.
func ParseMissPolicy(s string) (MissPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ignore":
		return MissIgnore, nil
	case "cancel":
		return MissCancel, nil
	default:
		return MissIgnore, fmt.Errorf("engine: unknown miss policy %q", s)
	}
}

// MoveKind classifies what a click did.
type MoveKind uint8

const (
	MoveNone MoveKind = iota
	MovePlace
	MoveArm
	MoveCancel
	MoveAttack
	MoveConvert
)

// String returns the move kind name.
func (k MoveKind) String() string {
	switch k {
	case MovePlace:
		return "place"
	case MoveArm:
		return "arm"
	case MoveCancel:
		return "cancel"
	case MoveAttack:
		return "attack"
	case MoveConvert:
		return "convert"
	default:
		return "none"
	}
}

// Outcome reports the effect of a single click.
type Outcome struct {
	Kind             MoveKind
	BoardChanged     bool // The logical board was mutated
	TurnAdvanced     bool // The side to move changed
	BonusMoveGranted bool // The mover moves again because of a star
	Mover            Side // Side that clicked
	SideToMove       Side
	WhiteScore       int
	BlackScore       int
	Captured         int // Opponent pieces converted by an attack
	GameOver         bool
}

// Stats counts what happened during a session.
type Stats struct {
	Placements  int
	Attacks     int
	Conversions int
	Captured    int
	BonusMoves  int
	Turns       int
}

// Moves returns the number of board-changing moves played.
func (s Stats) Moves() int {
	return s.Placements + s.Attacks + s.Conversions
}

// Option configures a new Session.
type Option func(*Session)

// WithMissPolicy selects how off-target clicks are handled while armed.
func WithMissPolicy(p MissPolicy) Option {
	return func(s *Session) {
		s.policy = p
	}
}

// WithBoard starts the session from the given position.
func WithBoard(b Board) Option {
	return func(s *Session) {
		s.board = b
	}
}

// WithSideToMove sets which side moves first.
func WithSideToMove(side Side) Option {
	return func(s *Session) {
		s.side = side
	}
}

// Session owns the board, the active preview, the star ledger and the side to
// move. It is driven one click at a time and is not safe for concurrent use;
// the caller must serialise HandleClick calls.
type Session struct {
	board   Board
	side    Side
	preview *Preview
	ledger  StarLedger
	score   Score
	policy  MissPolicy
	stats   Stats
	over    bool
}

// New creates a session on an empty board with White to move.
func New(opts ...Option) *Session {
	s := &Session{side: SideWhite}
	for _, opt := range opts {
		opt(s)
	}
	s.score = s.board.Score()
	return s
}

// HandleClick applies a click on cell c. Coordinates come from the shell
// after validation, so an out-of-range click panics.
func (s *Session) HandleClick(c Coord) Outcome {
	s.board.mustInBounds(c)

	if s.over {
		return s.outcome(Outcome{Mover: s.side})
	}
	if s.preview != nil {
		return s.handleArmed(c)
	}
	return s.handleIdle(c)
}

// Cancel clears an armed preview, exactly like clicking the launch square.
func (s *Session) Cancel() Outcome {
	if s.preview == nil || s.over {
		return s.outcome(Outcome{Mover: s.side})
	}
	return s.HandleClick(s.preview.Launch)
}

func (s *Session) handleIdle(c Coord) Outcome {
	mover := s.side

	switch s.board.Get(c) {
	case Empty:
		s.board.Set(c, mover.Cell())
		s.stats.Placements++
		s.score = s.board.Score()
		return s.advance(Outcome{Kind: MovePlace, BoardChanged: true, Mover: mover})

	case mover.Cell():
		dir, ok := FireDirection(&s.board, c, mover)
		if !ok {
			break
		}
		p := CastRay(&s.board, c, dir, mover)
		if !p.Armable() {
			break
		}
		s.preview = &p
		return s.outcome(Outcome{Kind: MoveArm, Mover: mover})
	}

	return s.outcome(Outcome{Mover: mover})
}

func (s *Session) handleArmed(c Coord) Outcome {
	mover := s.side
	p := s.preview

	switch {
	case c == p.Launch:
		s.preview = nil
		return s.outcome(Outcome{Kind: MoveCancel, Mover: mover})

	case p.HasTarget && c == p.Target:
		captured := Capture(&s.board, p.Target, mover)
		s.board.Set(p.Launch, Empty)
		s.stats.Attacks++
		s.stats.Captured += len(captured)
		s.score = s.board.Score()
		return s.advance(Outcome{
			Kind:         MoveAttack,
			BoardChanged: true,
			Mover:        mover,
			Captured:     len(captured),
		})

	case p.Contains(c):
		s.board.Set(p.Launch, Empty)
		s.board.Set(c, mover.Cell())
		i := p.indexOf(c)
		p.Cells = append(p.Cells[:i], p.Cells[i+1:]...)
		s.stats.Conversions++
		s.score = s.board.Score()
		return s.advance(Outcome{Kind: MoveConvert, BoardChanged: true, Mover: mover})
	}

	if s.policy == MissCancel {
		s.preview = nil
		return s.outcome(Outcome{Kind: MoveCancel, Mover: mover})
	}
	return s.outcome(Outcome{Mover: mover})
}

// advance runs turn advancement after a board-changing move. Stars are
// rescanned for the mover every time; each unused star grants one bonus move.
// A star always has empty diagonals, so a granted bonus move is playable. The
// game ends when the side to move has no legal move.
func (s *Session) advance(out Outcome) Outcome {
	mover := s.side
	s.preview = nil

	s.ledger.Refresh(&s.board, mover)
	if s.ledger.Grant() {
		s.stats.BonusMoves++
		out.BonusMoveGranted = true
		return s.outcome(out)
	}

	s.ledger.Reset()
	s.side = mover.Opponent()
	s.stats.Turns++
	out.TurnAdvanced = true

	if !HasLegalMove(&s.board, s.side) {
		s.over = true
	}
	return s.outcome(out)
}

func (s *Session) outcome(out Outcome) Outcome {
	out.SideToMove = s.side
	out.WhiteScore = s.score.White
	out.BlackScore = s.score.Black
	out.GameOver = s.over
	return out
}

// Cell returns the state to draw at c, with the preview overlays applied.
func (s *Session) Cell(c Coord) CellState {
	if p := s.preview; p != nil {
		if p.HasTarget && c == p.Target {
			return AttackTarget
		}
		if p.Contains(c) {
			return PreviewHighlight
		}
	}
	return s.board.Get(c)
}

// At returns the logical state of c, ignoring the preview.
func (s *Session) At(c Coord) CellState {
	return s.board.Get(c)
}

// Board returns a copy of the logical board.
func (s *Session) Board() Board {
	return s.board
}

// Phase returns PhaseArmed while a preview is active.
func (s *Session) Phase() Phase {
	if s.preview != nil {
		return PhaseArmed
	}
	return PhaseIdle
}

// Preview returns a copy of the active preview.
func (s *Session) Preview() (Preview, bool) {
	if s.preview == nil {
		return Preview{}, false
	}
	p := *s.preview
	p.Cells = append([]Coord(nil), s.preview.Cells...)
	return p, true
}

// PreviewCells returns the previewed (convertible) cells, nearest first.
func (s *Session) PreviewCells() []Coord {
	if s.preview == nil {
		return nil
	}
	return append([]Coord(nil), s.preview.Cells...)
}

// AttackTarget returns the attack target of the active preview.
func (s *Session) AttackTarget() (Coord, bool) {
	if s.preview == nil || !s.preview.HasTarget {
		return Coord{}, false
	}
	return s.preview.Target, true
}

// Launch returns the turret that fired the active preview.
func (s *Session) Launch() (Coord, bool) {
	if s.preview == nil {
		return Coord{}, false
	}
	return s.preview.Launch, true
}

// SideToMove returns the side whose click is expected next.
func (s *Session) SideToMove() Side {
	return s.side
}

// Score returns the score computed after the last board mutation.
func (s *Session) Score() Score {
	return s.score
}

// Stats returns move counters for the session.
func (s *Session) Stats() Stats {
	return s.stats
}

// Ledger returns a copy of the star ledger for the side to move.
func (s *Session) Ledger() StarLedger {
	return StarLedger{
		Stars: append([]int(nil), s.ledger.Stars...),
		Used:  s.ledger.Used,
	}
}

// MissPolicy returns the session's off-target click policy.
func (s *Session) MissPolicy() MissPolicy {
	return s.policy
}

// Finished returns true once the side to move has no legal move.
func (s *Session) Finished() bool {
	return s.over
}

// Winner returns the side with more pieces once the game is finished.
// ok is false while the game runs or when the scores are level.
func (s *Session) Winner() (side Side, ok bool) {
	if !s.over || s.score.White == s.score.Black {
		return SideWhite, false
	}
	if s.score.White > s.score.Black {
		return SideWhite, true
	}
	return SideBlack, true
}
