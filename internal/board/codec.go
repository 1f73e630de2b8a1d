package board

import (
	"bytes"
	"encoding/gob"
)

type snapshot struct {
	Width, Height int
	Mines         []Position
	Opened        []Position
	Flagged       []Position
	Lost          bool
}

func (b *Board) Bytes() ([]byte, error) {
	b.mu.RLock()
	s := snapshot{
		Width:   b.width,
		Height:  b.height,
		Mines:   b.mines.keys(),
		Opened:  b.opened.keys(),
		Flagged: b.flagged.keys(),
		Lost:    b.lost,
	}
	b.mu.RUnlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode restores a board written by [Board.Bytes] and checks that the
// restored state is one a sequence of moves could have produced.
func Decode(buf []byte) (*Board, error) {
	var s snapshot
	if err := gob.NewDecoder(bytes.NewReader(buf)).Decode(&s); err != nil {
		return nil, err
	}

	b, err := NewWithMines(s.Width, s.Height, s.Mines)
	if err != nil {
		return nil, corrupt(err.Error())
	}

	openedMines := 0
	for _, p := range s.Opened {
		if !b.Contains(p) {
			return nil, corrupt("opened cell " + p.String() + " off the board")
		}
		if b.mines.has(p) {
			openedMines++
		}
		b.opened.add(p)
	}
	for _, p := range s.Flagged {
		if !b.Contains(p) {
			return nil, corrupt("flagged cell " + p.String() + " off the board")
		}
		if b.opened.has(p) {
			return nil, corrupt("cell " + p.String() + " both opened and flagged")
		}
		b.flagged.add(p)
	}
	if s.Lost != (openedMines == 1) || openedMines > 1 {
		return nil, corrupt("lost flag does not match opened mines")
	}
	b.lost = s.Lost

	return b, nil
}
