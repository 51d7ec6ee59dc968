package engine

// Preview is the result of firing a turret: the empty cells the ray crosses
// and, if the ray hit an opposing piece, the attack target.
type Preview struct {
	Launch    Coord
	Dir       Dir
	Cells     []Coord // Empty cells between launch and target, nearest first
	Target    Coord
	HasTarget bool
}

// Armable reports whether the preview offers the mover anything to click.
func (p Preview) Armable() bool {
	return len(p.Cells) > 0 || p.HasTarget
}

// Contains reports whether c is one of the previewed (convertible) cells.
func (p Preview) Contains(c Coord) bool {
	return p.indexOf(c) >= 0
}

func (p Preview) indexOf(c Coord) int {
	for i, cell := range p.Cells {
		if cell == c {
			return i
		}
	}
	return -1
}

// CastRay walks from launch in dir for side. Empty cells are collected, the
// first opposing piece becomes the target, and a friendly piece or the board
// edge ends the walk. The edge cell itself is still considered.
func CastRay(b *Board, launch Coord, dir Dir, side Side) Preview {
	p := Preview{Launch: launch, Dir: dir}
	own := side.Cell()
	opp := side.Opponent().Cell()

	for c := launch.Step(dir); b.InBounds(c); c = c.Step(dir) {
		switch b.Get(c) {
		case opp:
			p.Target = c
			p.HasTarget = true
			return p
		case own:
			return p
		default:
			p.Cells = append(p.Cells, c)
		}
	}
	return p
}
