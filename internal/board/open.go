package board

import (
	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"
)

type Outcome int

const (
	NoMine Outcome = iota
	Mine
)

// Outcome implements [fmt.Stringer]
func (o Outcome) String() string {
	if o == Mine {
		return "mine"
	}
	return "no_mine"
}

// OpenResult describes a cell revealed for the first time. MineCount is the
// number of mined neighbors and is only meaningful for [NoMine].
type OpenResult struct {
	Outcome   Outcome
	MineCount int
}

/*
Open reveals p.

If p is already open this is a chord: when as many neighbors are flagged as
are mined, every neighbor that is neither flagged nor open gets revealed.
A chord never yields a result.

Otherwise p is revealed unless the board is lost or p is flagged, in which
case nothing happens and the result is nil. Revealing a cell with no mined
neighbors cascades into its neighbors until the region is bounded by
numbered cells.
*/
func (b *Board) Open(p Position) (*OpenResult, error) {
	if !b.Contains(p) {
		return nil, outOfBounds(p, b.width, b.height)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.opened.has(p) {
		b.chord(p)
		return nil, nil
	}
	return b.reveal(p), nil
}

func (b *Board) chord(p Position) {
	if b.NeighborMineCount(p) != b.countNeighbors(p, b.flagged) {
		return
	}
	for n := range b.Neighbors(p) {
		if !b.flagged.has(n) && !b.opened.has(n) {
			b.reveal(n)
		}
	}
}

// reveal opens start and floods through cells with no mined neighbors.
// Only start is reported.
func (b *Board) reveal(start Position) *OpenResult {
	if b.lost || b.flagged.has(start) {
		return nil
	}

	var (
		todo   deque.Deque[Position]
		result *OpenResult
		count  int
	)
	todo.PushBack(start)

	for todo.Len() > 0 {
		p := todo.PopBack()
		if b.opened.has(p) || b.flagged.has(p) {
			continue
		}
		b.opened.add(p)
		count++

		if b.mines.has(p) {
			/*
			 * Neighbors of a zero cell are never mined, so only start
			 * can end up here.
			 */
			b.lost = true
			Log.WithField("position", p).Debug("mine opened")
			return &OpenResult{Outcome: Mine}
		}

		mines := b.NeighborMineCount(p)
		if p == start {
			result = &OpenResult{Outcome: NoMine, MineCount: mines}
		}
		if mines != 0 {
			continue
		}
		for n := range b.Neighbors(p) {
			if !b.opened.has(n) {
				todo.PushBack(n)
			}
		}
	}

	if count > 1 {
		Log.WithFields(logrus.Fields{
			"start":  start,
			"opened": count,
		}).Debug("cascade finished")
	}
	return result
}

// ToggleFlag flags or unflags p. Open cells and lost boards are left alone.
func (b *Board) ToggleFlag(p Position) error {
	if !b.Contains(p) {
		return outOfBounds(p, b.width, b.height)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.lost || b.opened.has(p) {
		return nil
	}
	if b.flagged.has(p) {
		b.flagged.remove(p)
	} else {
		b.flagged.add(p)
	}
	return nil
}
