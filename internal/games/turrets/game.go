// Package turrets adapts the turrets rule engine to the arcade platform:
// screen layout, mouse and cursor input, HUD rendering and rule variants.
package turrets

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-turrets/internal/config"
	"github.com/vovakirdan/tui-turrets/internal/core"
	"github.com/vovakirdan/tui-turrets/internal/games/turrets/engine"
	"github.com/vovakirdan/tui-turrets/internal/registry"
)

// Variant IDs.
const (
	IDStandard = "turrets"
	IDStrict   = "turrets_strict"
)

// Game implements registry.Game for one rule variant.
type Game struct {
	id          string
	title       string
	description string
	forced      *engine.MissPolicy // Variant overrides the configured policy

	cfg     config.TurretsConfig
	palette Palette

	session *engine.Session
	layout  Layout
	cursor  engine.Coord
	screenW int
	screenH int
	status  string
}

// New creates the standard variant: clicks outside an armed preview are
// ignored unless the configuration says otherwise.
func New() *Game {
	return newGame(IDStandard, "Turrets",
		"16x16 turret battle; stray clicks keep the preview armed", nil)
}

// NewStrict creates the variant where any click outside an armed preview
// drops it.
func NewStrict() *Game {
	cancel := engine.MissCancel
	return newGame(IDStrict, "Turrets (Strict)",
		"stray clicks drop the armed preview", &cancel)
}

func newGame(id, title, description string, forced *engine.MissPolicy) *Game {
	cfg := config.DefaultTurretsConfig()
	palette, _ := NewPalette(cfg.Theme)
	g := &Game{
		id:          id,
		title:       title,
		description: description,
		forced:      forced,
		cfg:         cfg,
		palette:     palette,
	}
	g.Reset(core.DefaultConfig())
	return g
}

func init() {
	registry.Register(IDStandard, func() registry.Game {
		return New()
	})
	registry.Register(IDStrict, func() registry.Game {
		return NewStrict()
	})
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Description returns a one-line summary of the variant.
func (g *Game) Description() string {
	return g.description
}

// Configure applies layout, theme and rule settings. The change takes effect
// immediately for layout and colors and at the next Reset for rules.
func (g *Game) Configure(cfg config.TurretsConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	palette, err := NewPalette(cfg.Theme)
	if err != nil {
		return err
	}
	g.cfg = cfg
	g.palette = palette
	g.layout = NewLayout(g.screenW, g.screenH, cfg.Board)
	return nil
}

// MissPolicy returns the policy new sessions are created with.
func (g *Game) MissPolicy() engine.MissPolicy {
	if g.forced != nil {
		return *g.forced
	}
	return g.cfg.MissPolicy()
}

// Reset starts a new game on an empty board with White to move.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.session = engine.New(engine.WithMissPolicy(g.MissPolicy()))
	g.cursor = engine.C(engine.Width/2, engine.Height/2)
	g.status = "White to move"
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// ResetWithBoard starts a game from a given position.
func (g *Game) ResetWithBoard(b engine.Board, side engine.Side) {
	g.session = engine.New(
		engine.WithMissPolicy(g.MissPolicy()),
		engine.WithBoard(b),
		engine.WithSideToMove(side),
	)
	g.status = fmt.Sprintf("%s to move", side)
}

// Resize recomputes the layout; the game in progress is kept.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.layout = NewLayout(width, height, g.cfg.Board)
}

// Session exposes the rule engine for tests and tools.
func (g *Game) Session() *engine.Session {
	return g.session
}

// Layout returns the current screen layout.
func (g *Game) Layout() Layout {
	return g.layout
}

// Cursor returns the keyboard cursor position.
func (g *Game) Cursor() engine.Coord {
	return g.cursor
}

// Step applies cursor movement, cancel, keyboard clicks and mouse clicks in
// that order.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	res := core.StepResult{}

	moved := g.moveCursor(in)
	res.Changed = moved

	if in.Has(core.ActionCancel) {
		g.apply(&res, g.cursor, g.session.Cancel())
	}

	if in.Has(core.ActionSelect) {
		g.apply(&res, g.cursor, g.session.HandleClick(g.cursor))
	}

	if in.Click != nil {
		if c, ok := g.layout.CellAt(in.Click.X, in.Click.Y); ok {
			g.cursor = c
			res.Changed = true
			g.apply(&res, c, g.session.HandleClick(c))
		}
	}

	res.State = g.State()
	return res
}

func (g *Game) moveCursor(in core.InputFrame) bool {
	dx, dy := 0, 0
	if in.Has(core.ActionUp) {
		dy--
	}
	if in.Has(core.ActionDown) {
		dy++
	}
	if in.Has(core.ActionLeft) {
		dx--
	}
	if in.Has(core.ActionRight) {
		dx++
	}
	if dx == 0 && dy == 0 {
		return false
	}
	g.cursor = engine.C(
		core.Clamp(g.cursor.X+dx, 0, engine.Width-1),
		core.Clamp(g.cursor.Y+dy, 0, engine.Height-1),
	)
	return true
}

// apply turns an engine outcome into a status line and log events.
func (g *Game) apply(res *core.StepResult, c engine.Coord, out engine.Outcome) {
	if out.Kind == engine.MoveNone {
		if out.GameOver {
			return
		}
		if g.session.Phase() == engine.PhaseArmed {
			g.status = "Pick a green cell, the red target, or the turret to cancel"
		}
		res.Changed = true
		return
	}
	res.Changed = true

	mover := strings.ToLower(out.Mover.String())
	kv := []any{"side", mover, "cell", c.String()}

	switch out.Kind {
	case engine.MovePlace:
		g.status = fmt.Sprintf("%s placed at %s", out.Mover, c)
	case engine.MoveArm:
		p, _ := g.session.Preview()
		kv = append(kv, "dir", p.Dir.String(), "cells", len(p.Cells), "target", p.HasTarget)
		g.status = fmt.Sprintf("Turret %s aims %s", c, p.Dir)
	case engine.MoveCancel:
		g.status = "Shot cancelled"
	case engine.MoveAttack:
		kv = append(kv, "captured", out.Captured)
		g.status = fmt.Sprintf("%s captured %d", out.Mover, out.Captured)
	case engine.MoveConvert:
		g.status = fmt.Sprintf("%s converted %s", out.Mover, c)
	}
	kv = append(kv, "white", out.WhiteScore, "black", out.BlackScore)
	res.Events = append(res.Events, core.Event{Name: out.Kind.String(), KeyVals: kv})

	switch {
	case out.GameOver:
		winner, ok := g.session.Winner()
		result := "draw"
		if ok {
			result = strings.ToLower(winner.String())
			g.status = fmt.Sprintf("%s wins %d-%d", winner, out.WhiteScore, out.BlackScore)
		} else {
			g.status = fmt.Sprintf("Draw %d-%d", out.WhiteScore, out.BlackScore)
		}
		res.Events = append(res.Events, core.Event{
			Name:    "game_over",
			KeyVals: []any{"result", result, "white", out.WhiteScore, "black", out.BlackScore},
		})
	case out.BonusMoveGranted:
		g.status += fmt.Sprintf(" - star! %s moves again", out.Mover)
		res.Events = append(res.Events, core.Event{
			Name:    "bonus_move",
			KeyVals: []any{"side", mover, "stars", len(g.session.Ledger().Stars)},
		})
	case out.TurnAdvanced:
		g.status += fmt.Sprintf(" - %s to move", out.SideToMove)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := g.session.Score()
	stats := g.session.Stats()
	st := core.GameState{
		WhiteScore: score.White,
		BlackScore: score.Black,
		SideToMove: strings.ToLower(g.session.SideToMove().String()),
		GameOver:   g.session.Finished(),
		Moves:      stats.Moves(),
		Captured:   stats.Captured,
		BonusMoves: stats.BonusMoves,
	}
	if winner, ok := g.session.Winner(); ok {
		st.Winner = strings.ToLower(winner.String())
	}
	return st
}

// Status returns the current status line.
func (g *Game) Status() string {
	return g.status
}

// DebugState returns the board and session state as plain text.
func (g *Game) DebugState() string {
	var b strings.Builder
	snap := g.session.Snapshot()
	fmt.Fprintf(&b, "Variant: %s, Side: %s, Phase: %s\n", g.id, snap.SideToMove, snap.Phase)
	fmt.Fprintf(&b, "Score: white=%d black=%d empty=%d\n", snap.Score.White, snap.Score.Black, snap.Score.Empty)
	fmt.Fprintf(&b, "Stars: %d used %d, Moves: %d, GameOver: %v\n", snap.Stars, snap.BonusUsed, snap.Stats.Moves(), snap.GameOver)
	b.WriteString(snap.Board)
	b.WriteByte('\n')
	return b.String()
}
