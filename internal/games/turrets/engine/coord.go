package engine

import "fmt"

// Coord is a cell position. X increases to the right, Y increases downward.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Step returns the neighbouring Coord in the given direction.
func (c Coord) Step(d Dir) Coord {
	dx, dy := d.Delta()
	return c.Add(dx, dy)
}

// Index returns the linear index y*Width + x used by the star ledger.
func (c Coord) Index() int {
	return c.Y*Width + c.X
}

// CoordAt is the inverse of Coord.Index.
func CoordAt(index int) Coord {
	return Coord{X: index % Width, Y: index / Width}
}

// Dir is one of the four orthogonal directions.
type Dir uint8

const (
	DirUp Dir = iota
	DirDown
	DirRight
	DirLeft
)

// FireOrder is the order in which a turret's directions are tested.
// The first open direction wins even if several are open.
var FireOrder = [4]Dir{DirUp, DirDown, DirRight, DirLeft}

// Delta returns the (dx, dy) step for the direction.
func (d Dir) Delta() (int, int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirRight:
		return 1, 0
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// String returns the direction name.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirRight:
		return "right"
	case DirLeft:
		return "left"
	default:
		return "none"
	}
}

var diagonals = [4][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
