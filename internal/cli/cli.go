// Package cli plays a board through a line based command loop.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/board"
	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/render"
)

var Log = logrus.New()

type Saves interface {
	Save(name string, b *board.Board) error
	Load(name string) (*board.Board, error)
	Delete(name string) error
	Names() ([]string, error)
}

var (
	ErrUnknownCommand = fmt.Errorf("unknown command")
	ErrArgCount       = fmt.Errorf("invalid number of arguments")
	ErrNoSaves        = fmt.Errorf("saving is disabled")
)

const help = `commands:
  o X Y      open a cell, or chord an open one
  f X Y      toggle a flag
  n W H M    new board W wide, H high with M mines
  s NAME     save the board
  l NAME     load a saved board
  d NAME     delete a save
  ls         list saves
  p          print the board
  h          this help
  q          quit
`

type Game struct {
	Board  *board.Board
	saves  Saves
	rnd    board.Rand
	limits config.GameLimits
	glyphs render.Glyphs
	out    io.Writer
}

// New starts a session on b. saves may be nil. limits bounds the boards the
// n command may create.
func New(
	b *board.Board,
	saves Saves,
	rnd board.Rand,
	limits config.GameLimits,
	glyphs render.Glyphs,
	out io.Writer,
) *Game {
	return &Game{
		Board:  b,
		saves:  saves,
		rnd:    rnd,
		limits: limits,
		glyphs: glyphs,
		out:    out,
	}
}

func parseInts(args []string, n int) ([]int, error) {
	if len(args) != n {
		return nil, ErrArgCount
	}
	result := make([]int, n)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d must be an int", i+1)
		}
		result[i] = v
	}
	return result, nil
}

func parseName(args []string) (string, error) {
	if len(args) != 1 {
		return "", ErrArgCount
	}
	return args[0], nil
}

func (g *Game) print() error {
	return render.Text(g.out, g.Board, g.glyphs)
}

func (g *Game) status(res *board.OpenResult) {
	switch {
	case res != nil && res.Outcome == board.Mine:
		fmt.Fprintln(g.out, "BOOM! You lost.")
	case g.Board.Lost():
		fmt.Fprintln(g.out, "You lost.")
	case g.Board.Won():
		fmt.Fprintln(g.out, "You won!")
	}
}

// Exec runs one command line. quit is set once the player asks to leave.
func (g *Game) Exec(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := fields[0], fields[1:]
	Log.WithField("command", line).Debug("exec")

	switch cmd {
	case "q", "quit":
		return true, nil

	case "h", "help":
		_, err = io.WriteString(g.out, help)
		return false, err

	case "p":
		return false, g.print()

	case "o", "f":
		xy, err := parseInts(args, 2)
		if err != nil {
			return false, err
		}
		p := board.Position{X: xy[0], Y: xy[1]}
		var res *board.OpenResult
		if cmd == "o" {
			res, err = g.Board.Open(p)
		} else {
			err = g.Board.ToggleFlag(p)
		}
		if err != nil {
			return false, err
		}
		if res != nil {
			Log.WithFields(logrus.Fields{
				"position": p,
				"outcome":  res.Outcome,
				"mines":    res.MineCount,
			}).Info("opened")
		}
		if err := g.print(); err != nil {
			return false, err
		}
		g.status(res)
		return false, nil

	case "n":
		whm, err := parseInts(args, 3)
		if err != nil {
			return false, err
		}
		if err := g.limits.Check(whm[0], whm[1]); err != nil {
			return false, err
		}
		b, err := board.New(whm[0], whm[1], whm[2], g.rnd)
		if err != nil {
			return false, err
		}
		g.Board = b
		Log.WithFields(logrus.Fields{
			"width": whm[0], "height": whm[1], "mines": whm[2],
		}).Info("new board")
		return false, g.print()

	case "s", "l":
		if g.saves == nil {
			return false, ErrNoSaves
		}
		name, err := parseName(args)
		if err != nil {
			return false, err
		}
		if cmd == "s" {
			if err := g.saves.Save(name, g.Board); err != nil {
				return false, err
			}
			fmt.Fprintf(g.out, "saved %s\n", name)
			return false, nil
		}
		b, err := g.saves.Load(name)
		if err != nil {
			return false, err
		}
		g.Board = b
		if err := g.print(); err != nil {
			return false, err
		}
		g.status(nil)
		return false, nil

	case "d":
		if g.saves == nil {
			return false, ErrNoSaves
		}
		name, err := parseName(args)
		if err != nil {
			return false, err
		}
		if err := g.saves.Delete(name); err != nil {
			return false, err
		}
		fmt.Fprintf(g.out, "deleted %s\n", name)
		return false, nil

	case "ls":
		if g.saves == nil {
			return false, ErrNoSaves
		}
		names, err := g.saves.Names()
		if err != nil {
			return false, err
		}
		for _, name := range names {
			fmt.Fprintln(g.out, name)
		}
		return false, nil
	}

	return false, fmt.Errorf("%w %q", ErrUnknownCommand, cmd)
}

// Run reads commands from in until it is exhausted or the player quits.
// Command errors are reported to the player and do not stop the loop.
func (g *Game) Run(in io.Reader) error {
	if err := g.print(); err != nil {
		return err
	}
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(g.out, "> ")
		if !scanner.Scan() {
			break
		}
		quit, err := g.Exec(scanner.Text())
		if err != nil {
			Log.WithError(err).Warn("command failed")
			fmt.Fprintf(g.out, "error: %s\n", err)
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}
