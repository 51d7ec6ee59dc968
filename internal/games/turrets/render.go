package turrets

import (
	"fmt"

	"github.com/vovakirdan/tui-turrets/internal/config"
	"github.com/vovakirdan/tui-turrets/internal/core"
	"github.com/vovakirdan/tui-turrets/internal/games/turrets/engine"
)

// Visual characters for rendering
const (
	PieceChar  = '█'
	EmptyChar  = '░'
	CursorL    = '['
	CursorR    = ']'
	CursorChar = '▓' // Used when cells are too narrow for brackets
)

const helpLine = "arrows/hjkl move  space click  esc cancel  r new  b menu  q quit"

// Palette maps cell states to screen colors.
type Palette struct {
	Empty   core.Color
	White   core.Color
	Black   core.Color
	Preview core.Color
	Target  core.Color
	Cursor  core.Color
}

// NewPalette resolves the color names of a theme.
func NewPalette(t config.Theme) (Palette, error) {
	var p Palette
	fields := []struct {
		dst  *core.Color
		name string
	}{
		{&p.Empty, t.Empty},
		{&p.White, t.White},
		{&p.Black, t.Black},
		{&p.Preview, t.Preview},
		{&p.Target, t.Target},
		{&p.Cursor, t.Cursor},
	}
	for _, f := range fields {
		c, err := core.ParseColor(f.name)
		if err != nil {
			return Palette{}, fmt.Errorf("theme: %w", err)
		}
		*f.dst = c
	}
	return p, nil
}

// For returns the color of a cell state.
func (p Palette) For(s engine.CellState) core.Color {
	switch s {
	case engine.White:
		return p.White
	case engine.Black:
		return p.Black
	case engine.PreviewHighlight:
		return p.Preview
	case engine.AttackTarget:
		return p.Target
	default:
		return p.Empty
	}
}

// Render draws the HUD, the board and the key help.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.layout.TooSmall {
		renderOverlay(dst, "Window too small", fmt.Sprintf("Need room for a %dx%d board", engine.Width, engine.Height))
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)
	dst.DrawTextCenteredColor(g.layout.FooterY(), helpLine, core.ColorGray)

	if g.session.Finished() {
		line2 := "Press R for a new game"
		renderOverlay(dst, g.status, line2)
	}
}

// renderHUD draws the score line and the status line.
func (g *Game) renderHUD(dst *core.Screen) {
	score := g.session.Score()
	side := g.session.SideToMove()

	x := 1
	dst.DrawText(x, 0, g.title+" ")
	x += len([]rune(g.title)) + 1

	whiteText := fmt.Sprintf("White %d", score.White)
	blackText := fmt.Sprintf("Black %d", score.Black)
	dst.SetCell(x, 0, PieceChar, g.palette.White)
	dst.DrawText(x+2, 0, whiteText)
	x += len(whiteText) + 4
	dst.SetCell(x, 0, PieceChar, g.palette.Black)
	dst.DrawText(x+2, 0, blackText)
	x += len(blackText) + 4

	if !g.session.Finished() {
		turn := fmt.Sprintf("%s to move", side)
		dst.DrawTextColor(x, 0, turn, core.ColorBrightWhite)
		x += len(turn) + 2
		if l := g.session.Ledger(); l.Used > 0 {
			dst.DrawTextColor(x, 0, fmt.Sprintf("bonus %d/%d", l.Used, len(l.Stars)), core.ColorYellow)
		}
	}

	statusColor := core.ColorDefault
	if g.session.Phase() == engine.PhaseArmed {
		statusColor = g.palette.Preview
	}
	dst.DrawTextColor(1, 1, g.status, statusColor)
}

// renderBoard draws every cell with preview overlays and the cursor.
func (g *Game) renderBoard(dst *core.Screen) {
	for y := 0; y < engine.Height; y++ {
		for x := 0; x < engine.Width; x++ {
			c := engine.C(x, y)
			state := g.session.Cell(c)
			ch := PieceChar
			if state == engine.Empty {
				ch = EmptyChar
			}
			dst.DrawRect(g.layout.CellRect(c), ch, g.palette.For(state))
		}
	}

	r := g.layout.CellRect(g.cursor)
	if r.W >= 3 {
		for y := r.Y; y < r.Bottom(); y++ {
			dst.SetCell(r.X, y, CursorL, g.palette.Cursor)
			dst.SetCell(r.Right()-1, y, CursorR, g.palette.Cursor)
		}
		return
	}
	dst.DrawRect(r, CursorChar, g.palette.Cursor)
}

// renderOverlay draws a centered two-line message box.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	maxLen := core.Max(len([]rune(line1)), len([]rune(line2)))
	box := core.NewRect(0, 0, maxLen+4, 5)
	box.X = (dst.Width() - box.W) / 2
	box.Y = (dst.Height() - box.H) / 2

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)
	dst.DrawTextCenteredColor(box.Y+1, line1, core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, line2)
}
