// Package tui plays a board full screen with tcell.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/vancomm/minesweeper-engine/internal/board"
)

var numberColors = [9]tcell.Color{
	tcell.ColorGray,
	tcell.ColorBlue,
	tcell.ColorGreen,
	tcell.ColorRed,
	tcell.ColorNavy,
	tcell.ColorMaroon,
	tcell.ColorTeal,
	tcell.ColorWhite,
	tcell.ColorSilver,
}

type UI struct {
	screen tcell.Screen
	Board  *board.Board
	rnd    board.Rand
	cursor board.Position
	status string
}

func New(screen tcell.Screen, b *board.Board, rnd board.Rand) *UI {
	return &UI{
		screen: screen,
		Board:  b,
		rnd:    rnd,
	}
}

func (u *UI) Cursor() board.Position {
	return u.cursor
}

func (u *UI) Status() string {
	return u.status
}

func cellStyle(s board.CellState) (rune, tcell.Style) {
	style := tcell.StyleDefault
	switch {
	case s == board.Hidden:
		return '#', style.Foreground(tcell.ColorGray)
	case s == board.Flagged:
		return 'F', style.Foreground(tcell.ColorRed).Bold(true)
	case s == board.ExplodedMine:
		return '*', style.Foreground(tcell.ColorWhite).Background(tcell.ColorRed)
	case s == board.RevealedMine:
		return '*', style.Foreground(tcell.ColorRed)
	case s == 0:
		return '.', style.Foreground(numberColors[0])
	case 0 < s && s <= 8:
		return rune('0' + s), style.Foreground(numberColors[s])
	}
	return '?', style
}

// Draw paints cells two columns apart with the status line below the board.
func (u *UI) Draw() {
	u.screen.Clear()
	for y := range u.Board.Height() {
		for x := range u.Board.Width() {
			p := board.Position{X: x, Y: y}
			r, style := cellStyle(u.Board.Cell(p))
			if p == u.cursor {
				style = style.Reverse(true)
			}
			u.screen.SetContent(2*x, y, r, nil, style)
		}
	}

	status := u.status
	if status == "" {
		status = fmt.Sprintf(
			"%d/%d flagged  arrows/hjkl move  space open  f flag  n new  q quit",
			u.Board.FlagCount(), u.Board.MineCount(),
		)
	}
	for i, r := range []rune(status) {
		u.screen.SetContent(i, u.Board.Height()+1, r, nil, tcell.StyleDefault)
	}
	u.screen.Show()
}

func (u *UI) move(dx, dy int) {
	p := board.Position{X: u.cursor.X + dx, Y: u.cursor.Y + dy}
	if u.Board.Contains(p) {
		u.cursor = p
	}
}

func (u *UI) afterMove(res *board.OpenResult) {
	switch {
	case res != nil && res.Outcome == board.Mine:
		u.status = "BOOM! You lost. n for a new board, q to quit"
	case u.Board.Won():
		u.status = "You won! n for a new board, q to quit"
	default:
		u.status = ""
	}
}

func (u *UI) open() {
	res, err := u.Board.Open(u.cursor)
	if err != nil {
		u.status = err.Error()
		return
	}
	u.afterMove(res)
}

func (u *UI) flag() {
	if err := u.Board.ToggleFlag(u.cursor); err != nil {
		u.status = err.Error()
		return
	}
	u.afterMove(nil)
}

func (u *UI) renew() {
	b, err := board.New(u.Board.Width(), u.Board.Height(), u.Board.MineCount(), u.rnd)
	if err != nil {
		u.status = err.Error()
		return
	}
	u.Board = b
	u.cursor = board.Position{}
	u.status = ""
}

// HandleKey applies one key press and reports whether the player quit.
func (u *UI) HandleKey(ev *tcell.EventKey) (quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		u.move(0, -1)
	case tcell.KeyDown:
		u.move(0, 1)
	case tcell.KeyLeft:
		u.move(-1, 0)
	case tcell.KeyRight:
		u.move(1, 0)
	case tcell.KeyEnter:
		u.open()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'k':
			u.move(0, -1)
		case 'j':
			u.move(0, 1)
		case 'h':
			u.move(-1, 0)
		case 'l':
			u.move(1, 0)
		case ' ':
			u.open()
		case 'f':
			u.flag()
		case 'n':
			u.renew()
		}
	}
	return false
}

// Run draws and handles events until the player quits or the screen closes.
func (u *UI) Run() error {
	for {
		u.Draw()
		switch ev := u.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			u.screen.Sync()
		case *tcell.EventKey:
			if u.HandleKey(ev) {
				return nil
			}
		}
	}
}
