package engine

import (
	"fmt"
	"strings"
)

// Board dimensions. The board size is fixed.
const (
	Width  = 16
	Height = 16
)

// Board is the logical grid of Empty/White/Black cells in row-major order.
// It is a value type: copying a Board copies every cell, and two boards can be
// compared with ==.
type Board struct {
	cells [Width * Height]CellState
}

// Score holds the number of cells owned by each side and the empty remainder.
// White + Black + Empty is always Width*Height.
type Score struct {
	White int
	Black int
	Empty int
}

// Of returns the number of cells owned by side.
func (s Score) Of(side Side) int {
	if side == SideWhite {
		return s.White
	}
	return s.Black
}

// NewBoard returns an all-empty board.
func NewBoard() Board {
	return Board{}
}

// InBounds returns true if the coordinate lies on the board.
func (b *Board) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < Width && c.Y >= 0 && c.Y < Height
}

// IsBorder returns true for cells in the first or last row or column.
func (b *Board) IsBorder(c Coord) bool {
	return c.X == 0 || c.Y == 0 || c.X == Width-1 || c.Y == Height-1
}

// Get returns the cell at c. Callers derive coordinates from validated input,
// so an out-of-range coordinate is a bug and panics.
func (b *Board) Get(c Coord) CellState {
	b.mustInBounds(c)
	return b.cells[c.Index()]
}

// Set stores a logical state at c. Overlay states never reach the board.
func (b *Board) Set(c Coord, s CellState) {
	b.mustInBounds(c)
	if !s.Logical() {
		panic(fmt.Sprintf("engine: cannot store %s on the board at %v", s, c))
	}
	b.cells[c.Index()] = s
}

// lookup returns the cell at c, or Empty with ok=false when off the board.
func (b *Board) lookup(c Coord) (CellState, bool) {
	if !b.InBounds(c) {
		return Empty, false
	}
	return b.cells[c.Index()], true
}

func (b *Board) mustInBounds(c Coord) {
	if !b.InBounds(c) {
		panic(fmt.Sprintf("engine: coordinate %v out of range", c))
	}
}

// CountNeighbors counts the orthogonal neighbours of c owned by side.
// Neighbours off the board contribute nothing.
func (b *Board) CountNeighbors(c Coord, side Side) int {
	want := side.Cell()
	n := 0
	for _, d := range FireOrder {
		if s, ok := b.lookup(c.Step(d)); ok && s == want {
			n++
		}
	}
	return n
}

// Score tallies the board with a full scan.
func (b *Board) Score() Score {
	var s Score
	for _, cell := range b.cells {
		switch cell {
		case White:
			s.White++
		case Black:
			s.Black++
		default:
			s.Empty++
		}
	}
	return s
}

// HasEmpty returns true if at least one cell is empty.
func (b *Board) HasEmpty() bool {
	for _, cell := range b.cells {
		if cell == Empty {
			return true
		}
	}
	return false
}

// String renders the board as Height lines of '.', 'W' and 'B'.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow((Width + 1) * Height)
	for y := 0; y < Height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < Width; x++ {
			sb.WriteByte(cellRune(b.cells[C(x, y).Index()]))
		}
	}
	return sb.String()
}

func cellRune(s CellState) byte {
	switch s {
	case White:
		return 'W'
	case Black:
		return 'B'
	default:
		return '.'
	}
}

// ParseBoard reads the format produced by Board.String. Blank lines and
// surrounding whitespace are ignored; rows shorter than Width are padded with
// empty cells, and fewer than Height rows leave the remainder empty.
func ParseBoard(text string) (Board, error) {
	var b Board
	y := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if y >= Height {
			return Board{}, fmt.Errorf("engine: board has more than %d rows", Height)
		}
		if len(line) > Width {
			return Board{}, fmt.Errorf("engine: row %d has %d cells, max %d", y, len(line), Width)
		}
		for x, r := range []byte(line) {
			switch r {
			case '.':
			case 'W', 'w':
				b.cells[C(x, y).Index()] = White
			case 'B', 'b':
				b.cells[C(x, y).Index()] = Black
			default:
				return Board{}, fmt.Errorf("engine: row %d: unexpected %q at column %d", y, r, x)
			}
		}
		y++
	}
	return b, nil
}
