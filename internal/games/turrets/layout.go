package turrets

import (
	"github.com/vovakirdan/tui-turrets/internal/config"
	"github.com/vovakirdan/tui-turrets/internal/core"
	"github.com/vovakirdan/tui-turrets/internal/games/turrets/engine"
)

const (
	hudHeight    = 2 // Title and status lines above the board
	footerHeight = 1 // Key help below the board
)

// Layout places the 16x16 grid on screen and maps screen positions back to
// board cells.
type Layout struct {
	Board    core.Rect // Area covered by the grid, gaps included
	CellW    int
	CellH    int
	GapX     int
	GapY     int
	TooSmall bool
}

// NewLayout fits the grid into a screen of the given size. When the
// configured sizes do not fit it drops the gaps first and then shrinks cells
// to one character; if even that does not fit the layout is TooSmall.
func NewLayout(screenW, screenH int, b config.BoardLayout) Layout {
	availW := screenW
	availH := screenH - hudHeight - footerHeight

	l := Layout{
		CellW: core.Max(b.CellWidth, 1),
		CellH: core.Max(b.CellHeight, 1),
		GapX:  core.Max(b.ColumnGap, 0),
		GapY:  core.Max(b.RowGap, 0),
	}

	if l.gridW() > availW {
		l.GapX = 0
	}
	if l.gridW() > availW {
		l.CellW = core.Max(availW/engine.Width, 1)
	}
	if l.gridH() > availH {
		l.GapY = 0
	}
	if l.gridH() > availH {
		l.CellH = core.Max(availH/engine.Height, 1)
	}

	w, h := l.gridW(), l.gridH()
	l.TooSmall = w > availW || h > availH
	l.Board = core.NewRect(core.Max((screenW-w)/2, 0), hudHeight, w, h)
	return l
}

func (l Layout) gridW() int {
	return engine.Width*l.CellW + (engine.Width-1)*l.GapX
}

func (l Layout) gridH() int {
	return engine.Height*l.CellH + (engine.Height-1)*l.GapY
}

// CellRect returns the screen area of board cell c.
func (l Layout) CellRect(c engine.Coord) core.Rect {
	return core.NewRect(
		l.Board.X+c.X*(l.CellW+l.GapX),
		l.Board.Y+c.Y*(l.CellH+l.GapY),
		l.CellW,
		l.CellH,
	)
}

// CellAt maps a screen position to the board cell under it. Positions in a
// gap or outside the grid report false.
func (l Layout) CellAt(x, y int) (engine.Coord, bool) {
	if l.TooSmall || !l.Board.Contains(x, y) {
		return engine.Coord{}, false
	}

	rx, ry := x-l.Board.X, y-l.Board.Y
	pitchX, pitchY := l.CellW+l.GapX, l.CellH+l.GapY
	if rx%pitchX >= l.CellW || ry%pitchY >= l.CellH {
		return engine.Coord{}, false
	}

	c := engine.C(rx/pitchX, ry/pitchY)
	if c.X >= engine.Width || c.Y >= engine.Height {
		return engine.Coord{}, false
	}
	return c, true
}

// FooterY returns the screen row of the key help line.
func (l Layout) FooterY() int {
	return l.Board.Bottom()
}
