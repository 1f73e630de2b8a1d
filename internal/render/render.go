// Package render draws a board as text using nothing but its public view.
package render

import (
	"bufio"
	"io"
	"strconv"

	"github.com/vancomm/minesweeper-engine/internal/board"
)

type View interface {
	Width() int
	Height() int
	Cell(p board.Position) board.CellState
}

type Glyphs struct {
	Hidden  string
	Flag    string
	Mine    string
	Blank   string
	Numbers [9]string
}

func numbers() (n [9]string) {
	for i := range n {
		n[i] = strconv.Itoa(i)
	}
	return
}

var (
	Emoji = Glyphs{
		Hidden:  "🟪",
		Flag:    "🚩",
		Mine:    "💣",
		Blank:   "⬜",
		Numbers: numbers(),
	}
	ASCII = ascii()
)

// ascii uses the cell states' own String forms.
func ascii() Glyphs {
	g := Glyphs{
		Hidden: board.Hidden.String(),
		Flag:   board.Flagged.String(),
		Mine:   board.ExplodedMine.String(),
		Blank:  board.CellState(0).String(),
	}
	for i := range g.Numbers {
		g.Numbers[i] = board.CellState(i).String()
	}
	return g
}

func (g Glyphs) Glyph(s board.CellState) string {
	switch {
	case s == board.Hidden:
		return g.Hidden
	case s == board.Flagged:
		return g.Flag
	case s == board.RevealedMine, s == board.ExplodedMine:
		return g.Mine
	case s == 0:
		return g.Blank
	case 0 < s && s <= 8:
		return g.Numbers[s]
	default:
		return "?"
	}
}

// Text writes one line per row, every cell followed by a space.
func Text(w io.Writer, v View, g Glyphs) error {
	bw := bufio.NewWriter(w)
	for y := range v.Height() {
		for x := range v.Width() {
			bw.WriteString(g.Glyph(v.Cell(board.Position{X: x, Y: y})))
			bw.WriteByte(' ')
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
