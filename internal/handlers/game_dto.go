package handlers

import (
	"fmt"
	"strings"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-engine/internal/board"
	"github.com/vancomm/minesweeper-engine/internal/repository"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

type CreateNewGameDTO struct {
	Width     int     `schema:"width,required"`
	Height    int     `schema:"height,required"`
	MineCount int     `schema:"mine_count,required"`
	Seed      *uint64 `schema:"seed"`
}

func ParseCreateNewGameDTO(src map[string][]string) (CreateNewGameDTO, error) {
	var dto CreateNewGameDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type Move int

const (
	Open Move = iota
	Flag
)

func ParseMove(s string) (Move, error) {
	switch strings.ToLower(s) {
	case "o", "open":
		return Open, nil
	case "f", "flag":
		return Flag, nil
	}
	return 0, fmt.Errorf("unknown move %q", s)
}

type MoveDTO struct {
	Move string `schema:"move,required"`
	X    int    `schema:"x,required"`
	Y    int    `schema:"y,required"`
}

func ParseMoveDTO(src map[string][]string) (Move, board.Position, error) {
	var dto MoveDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return 0, board.Position{}, err
	}
	move, err := ParseMove(dto.Move)
	return move, board.Position{X: dto.X, Y: dto.Y}, err
}

// applyMove plays one move. Only an open can produce a result.
func applyMove(b *board.Board, move Move, p board.Position) (*board.OpenResult, error) {
	switch move {
	case Open:
		return b.Open(p)
	case Flag:
		return nil, b.ToggleFlag(p)
	}
	return nil, fmt.Errorf("unknown move %d", move)
}

type OpenResultDTO struct {
	Outcome   string `json:"outcome"`
	MineCount int    `json:"mine_count"`
}

type GameSessionDTO struct {
	GameSessionId string            `json:"game_session_id"`
	Grid          []board.CellState `json:"grid"`
	Width         int               `json:"width"`
	Height        int               `json:"height"`
	MineCount     int               `json:"mine_count"`
	Lost          bool              `json:"lost"`
	Won           bool              `json:"won"`
	StartedAt     int64             `json:"started_at"`
	EndedAt       *int64            `json:"ended_at,omitempty"`
	Result        *OpenResultDTO    `json:"result,omitempty"`
}

func NewGameSessionDTO(
	session *repository.GameSession, result *board.OpenResult,
) (*GameSessionDTO, error) {
	b, err := session.Board()
	if err != nil {
		return nil, err
	}

	var endedAt *int64
	if session.EndedAt != nil {
		e := session.EndedAt.UnixMilli()
		endedAt = &e
	}

	dto := &GameSessionDTO{
		GameSessionId: session.GameSessionId.String(),
		Grid:          b.Grid(),
		Width:         session.Width,
		Height:        session.Height,
		MineCount:     session.MineCount,
		Lost:          session.Lost,
		Won:           session.Won,
		StartedAt:     session.StartedAt.UnixMilli(),
		EndedAt:       endedAt,
	}
	if result != nil {
		dto.Result = &OpenResultDTO{
			Outcome:   result.Outcome.String(),
			MineCount: result.MineCount,
		}
	}
	return dto, nil
}
