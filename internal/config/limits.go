package config

import (
	"fmt"
	"os"
	"strconv"
)

var ErrBoardTooLarge = fmt.Errorf("board exceeds size limits")

// GameLimits caps the boards clients may request.
type GameLimits struct {
	MaxWidth  int
	MaxHeight int
}

func lookupPositiveInt(key string, fallback int) (int, error) {
	s, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unable to parse %s: %w", key, err)
	}
	if v < 1 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, v)
	}
	return v, nil
}

func NewGameLimits() (*GameLimits, error) {
	maxWidth, err := lookupPositiveInt("MINES_MAX_WIDTH", 100)
	if err != nil {
		return nil, err
	}
	maxHeight, err := lookupPositiveInt("MINES_MAX_HEIGHT", 100)
	if err != nil {
		return nil, err
	}
	limits := &GameLimits{
		MaxWidth:  maxWidth,
		MaxHeight: maxHeight,
	}
	return limits, nil
}

func (l GameLimits) Allow(width, height int) bool {
	return width <= l.MaxWidth && height <= l.MaxHeight
}

// Check returns [ErrBoardTooLarge] when the board is not allowed.
func (l GameLimits) Check(width, height int) error {
	if !l.Allow(width, height) {
		return fmt.Errorf(
			"%w: %dx%d, max %dx%d", ErrBoardTooLarge,
			width, height, l.MaxWidth, l.MaxHeight,
		)
	}
	return nil
}
