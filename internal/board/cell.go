package board

import "strconv"

type CellState int8

const (
	Hidden       CellState = -2
	Flagged      CellState = -1
	RevealedMine CellState = 64 // hidden mine shown once the game is lost
	ExplodedMine CellState = 65
	// 0-8 for an opened cell with given number of mined neighbors
)

func (s CellState) Opened() bool {
	return 0 <= s && s <= 8 || s == ExplodedMine
}

// CellState implements [fmt.Stringer]
func (s CellState) String() string {
	switch {
	case s == Hidden:
		return "#"
	case s == Flagged:
		return "F"
	case s == RevealedMine, s == ExplodedMine:
		return "*"
	case s == 0:
		return "."
	case 0 < s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

// Cell reports what a player may see at p.
func (b *Board) Cell(p Position) CellState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cell(p)
}

func (b *Board) cell(p Position) CellState {
	if !b.opened.has(p) {
		switch {
		case b.lost && b.mines.has(p):
			return RevealedMine
		case b.flagged.has(p):
			return Flagged
		default:
			return Hidden
		}
	}
	if b.mines.has(p) {
		return ExplodedMine
	}
	return CellState(b.NeighborMineCount(p))
}

type Grid []CellState

// Grid returns a row-major snapshot of every cell.
func (b *Board) Grid() Grid {
	b.mu.RLock()
	defer b.mu.RUnlock()
	grid := make(Grid, 0, b.width*b.height)
	for y := range b.height {
		for x := range b.width {
			grid = append(grid, b.cell(Position{x, y}))
		}
	}
	return grid
}
