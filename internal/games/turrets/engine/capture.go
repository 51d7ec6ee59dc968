package engine

// Capture converts the contiguous region of the opponent's pieces reachable
// from start to side and returns the converted cells in conversion order.
//
// The worklist is a FIFO queue. Each dequeued cell is recoloured before its
// neighbours are inspected, so a converted cell never matches the opponent
// test again; a cell queued twice is skipped on its second dequeue.
func Capture(b *Board, start Coord, side Side) []Coord {
	opp := side.Opponent().Cell()
	own := side.Cell()
	if b.Get(start) != opp {
		return nil
	}

	queue := []Coord{start}
	var converted []Coord
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		if b.Get(cur) != opp {
			continue
		}
		b.Set(cur, own)
		converted = append(converted, cur)

		for _, d := range FireOrder {
			n := cur.Step(d)
			if s, ok := b.lookup(n); ok && s == opp {
				queue = append(queue, n)
			}
		}
	}
	return converted
}
