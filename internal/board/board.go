package board

import (
	"fmt"
	"math"
	"sync"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// Rand is the randomness consumed once to place mines. [*math/rand/v2.Rand]
// satisfies it.
type Rand interface {
	IntN(n int) int
}

/*
Board tracks which cells are mined, opened and flagged on a fixed grid.

Mines never change after construction, opened cells only accumulate, and a
cell is never opened and flagged at once. Once a mine is opened the board is
lost and refuses any further move. All exported methods are safe for
concurrent use; a move, cascade included, runs under one lock.
*/
type Board struct {
	mu            sync.RWMutex
	width, height int
	mines         set[Position]
	opened        set[Position]
	flagged       set[Position]
	lost          bool
}

func newBoard(width, height int) (*Board, error) {
	if width < 1 || height < 1 {
		return nil, ErrInvalidSize
	}
	if width > math.MaxInt/height {
		return nil, fmt.Errorf("%w: %dx%d", ErrBoardTooLarge, width, height)
	}
	b := &Board{
		width:   width,
		height:  height,
		mines:   make(set[Position]),
		opened:  make(set[Position]),
		flagged: make(set[Position]),
	}
	return b, nil
}

// New places mineCount mines uniformly at random without replacement.
func New(width, height, mineCount int, r Rand) (*Board, error) {
	b, err := newBoard(width, height)
	if err != nil {
		return nil, err
	}
	if mineCount < 0 {
		return nil, ErrInvalidMineCount
	}
	if mineCount > width*height {
		return nil, ErrTooManyMines
	}

	// Candidate cells are the indices 0..k-1; moved only lists the ones
	// swap-remove has displaced, so memory grows with mineCount.
	moved := make(map[int]int, mineCount)
	candidate := func(i int) int {
		if c, ok := moved[i]; ok {
			return c
		}
		return i
	}
	k := width * height
	for range mineCount {
		i := r.IntN(k)
		c := candidate(i)
		b.mines.add(Position{c % width, c / width})
		k--
		moved[i] = candidate(k)
	}

	return b, nil
}

// NewWithMines builds a board with a fixed mine layout. Duplicates collapse.
func NewWithMines(width, height int, mines []Position) (*Board, error) {
	b, err := newBoard(width, height)
	if err != nil {
		return nil, err
	}
	for _, p := range mines {
		if !b.Contains(p) {
			return nil, outOfBounds(p, width, height)
		}
		b.mines.add(p)
	}
	return b, nil
}

func (b *Board) Width() int {
	return b.width
}

func (b *Board) Height() int {
	return b.height
}

func (b *Board) MineCount() int {
	return len(b.mines)
}

func (b *Board) Lost() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lost
}

// Won reports whether every safe cell is open. A lost board never wins.
func (b *Board) Won() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.won()
}

func (b *Board) won() bool {
	return !b.lost && len(b.opened) == b.width*b.height-len(b.mines)
}

func (b *Board) IsMine(p Position) bool {
	return b.mines.has(p)
}

func (b *Board) IsOpened(p Position) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.opened.has(p)
}

func (b *Board) IsFlagged(p Position) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.flagged.has(p)
}

func (b *Board) OpenedCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.opened)
}

func (b *Board) FlagCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.flagged)
}
