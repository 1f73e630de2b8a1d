package board

import (
	"fmt"
	"iter"
)

type Position struct {
	X, Y int
}

// Position implements [fmt.Stringer]
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

func (b *Board) Contains(p Position) bool {
	return 0 <= p.X && p.X < b.width && 0 <= p.Y && p.Y < b.height
}

/*
Neighbors yields the cells surrounding p that lie on the board, p excluded:
3 for a corner, 5 for an edge, 8 otherwise. The window is walked row by row.
Dimensions never change, so the sequence needs no lock and can be ranged
over again.
*/
func (b *Board) Neighbors(p Position) iter.Seq[Position] {
	fromX, toX := max(p.X-1, 0), min(p.X+1, b.width-1)
	fromY, toY := max(p.Y-1, 0), min(p.Y+1, b.height-1)
	return func(yield func(Position) bool) {
		for y := fromY; y <= toY; y++ {
			for x := fromX; x <= toX; x++ {
				n := Position{x, y}
				if n == p {
					continue
				}
				if !yield(n) {
					return
				}
			}
		}
	}
}

func (b *Board) countNeighbors(p Position, s set[Position]) int {
	count := 0
	for n := range b.Neighbors(p) {
		if s.has(n) {
			count++
		}
	}
	return count
}

func (b *Board) NeighborMineCount(p Position) int {
	return b.countNeighbors(p, b.mines)
}

func (b *Board) NeighborFlagCount(p Position) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.countNeighbors(p, b.flagged)
}
