package tui

import (
	"math/rand/v2"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/board"
)

func setupUI(t *testing.T, mines ...board.Position) (*UI, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	b, err := board.NewWithMines(3, 3, mines)
	require.NoError(t, err)
	return New(screen, b, rand.New(rand.NewPCG(1, 2))), screen
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func TestCursorStaysOnBoard(t *testing.T) {
	ui, _ := setupUI(t)

	ui.HandleKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	ui.HandleKey(key('k'))
	assert.Equal(t, board.Position{}, ui.Cursor())

	for range 5 {
		ui.HandleKey(key('l'))
		ui.HandleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	}
	assert.Equal(t, board.Position{X: 2, Y: 2}, ui.Cursor())
}

func TestFlagAndOpen(t *testing.T) {
	ui, screen := setupUI(t, board.Position{X: 2, Y: 2})

	ui.HandleKey(key('l'))
	ui.HandleKey(key('l'))
	ui.HandleKey(key('j'))
	ui.HandleKey(key('j'))
	ui.HandleKey(key('f'))
	assert.True(t, ui.Board.IsFlagged(board.Position{X: 2, Y: 2}))

	// space on a flagged cell does nothing
	ui.HandleKey(key(' '))
	assert.False(t, ui.Board.IsOpened(board.Position{X: 2, Y: 2}))

	ui.HandleKey(key('h'))
	ui.HandleKey(key('h'))
	ui.HandleKey(key('k'))
	ui.HandleKey(key('k'))
	ui.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.True(t, ui.Board.Won())
	assert.Contains(t, ui.Status(), "You won!")

	ui.Draw()
	assert.Equal(t, '.', runeAt(screen, 0, 0))
	assert.Equal(t, '1', runeAt(screen, 2, 1))
	assert.Equal(t, 'F', runeAt(screen, 4, 2))
	assert.Equal(t, 'Y', runeAt(screen, 0, 4))
}

func TestOpenMine(t *testing.T) {
	ui, screen := setupUI(t, board.Position{X: 0, Y: 0})

	ui.HandleKey(key(' '))
	assert.True(t, ui.Board.Lost())
	assert.Contains(t, ui.Status(), "BOOM")

	ui.Draw()
	assert.Equal(t, '*', runeAt(screen, 0, 0))
	assert.Equal(t, '#', runeAt(screen, 2, 0))
}

func TestNewBoard(t *testing.T) {
	ui, _ := setupUI(t, board.Position{X: 0, Y: 0})
	ui.HandleKey(key(' '))
	require.True(t, ui.Board.Lost())

	ui.HandleKey(key('n'))
	assert.False(t, ui.Board.Lost())
	assert.Equal(t, 1, ui.Board.MineCount())
	assert.Empty(t, ui.Status())
}

func TestQuit(t *testing.T) {
	ui, _ := setupUI(t)
	assert.False(t, ui.HandleKey(key('x')))
	assert.True(t, ui.HandleKey(key('q')))
	assert.True(t, ui.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestRunStopsOnQuit(t *testing.T) {
	ui, screen := setupUI(t)
	screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	require.NoError(t, ui.Run())
	assert.True(t, ui.Board.Won())
}
