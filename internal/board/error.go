package board

import "fmt"

var (
	ErrInvalidSize      = fmt.Errorf("board width and height must be positive")
	ErrBoardTooLarge    = fmt.Errorf("board has more cells than fit in an int")
	ErrInvalidMineCount = fmt.Errorf("mine count must not be negative")
	ErrTooManyMines     = fmt.Errorf("mine count exceeds number of cells")
	ErrOutOfBounds      = fmt.Errorf("position out of bounds")
	ErrCorruptState     = fmt.Errorf("corrupt board state")
)

func outOfBounds(p Position, w, h int) error {
	return fmt.Errorf("%w: %s not in %dx%d", ErrOutOfBounds, p, w, h)
}

func corrupt(reason string) error {
	return fmt.Errorf("%w: %s", ErrCorruptState, reason)
}
