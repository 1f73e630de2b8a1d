package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper-engine/internal/board"
	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/repository"
)

type Sessions interface {
	CreateGameSession(ctx context.Context, b *board.Board) (*repository.GameSession, error)
	FetchGameSession(ctx context.Context, id uuid.UUID) (*repository.GameSession, error)
	UpdateGameSession(ctx context.Context, id uuid.UUID, move func(*board.Board) error) (*repository.GameSession, error)
}

var ErrBadSessionId = fmt.Errorf("malformed game session id")

type GameHandler struct {
	logger   *slog.Logger
	sessions Sessions
	limits   *config.GameLimits
	ws       *config.WebSocket
	rnd      board.Rand
}

func NewGameHandler(
	logger *slog.Logger,
	sessions Sessions,
	limits *config.GameLimits,
	ws *config.WebSocket,
	rnd board.Rand,
) *GameHandler {
	handler := &GameHandler{
		logger:   logger,
		sessions: sessions,
		limits:   limits,
		ws:       ws,
		rnd:      rnd,
	}
	return handler
}

func (g *GameHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /game", g.NewGame)
	mux.HandleFunc("GET /game/{id}", g.Fetch)
	mux.HandleFunc("POST /game/{id}/move", g.MakeAMove)
	mux.HandleFunc("GET /game/{id}/connect", g.ConnectWS)
}

// isClientError reports errors caused by the request rather than the server.
func isClientError(err error) bool {
	return errors.Is(err, board.ErrOutOfBounds) ||
		errors.Is(err, board.ErrInvalidSize) ||
		errors.Is(err, board.ErrInvalidMineCount) ||
		errors.Is(err, board.ErrTooManyMines) ||
		errors.Is(err, board.ErrBoardTooLarge) ||
		errors.Is(err, config.ErrBoardTooLarge) ||
		errors.Is(err, repository.ErrInvalidSession)
}

// respondError maps err to a status code and logs what the client cannot fix.
func (g GameHandler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		sendErrorOrLog(w, g.logger, http.StatusNotFound, err)
	case isClientError(err):
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
	default:
		g.logger.Error("unable to handle request", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func parseSessionId(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, ErrBadSessionId
	}
	return id, nil
}

func (g GameHandler) newBoard(dto CreateNewGameDTO) (*board.Board, error) {
	if err := g.limits.Check(dto.Width, dto.Height); err != nil {
		return nil, err
	}
	rnd := g.rnd
	if dto.Seed != nil {
		rnd = rand.New(rand.NewPCG(*dto.Seed, *dto.Seed))
	}
	return board.New(dto.Width, dto.Height, dto.MineCount, rnd)
}

func (g GameHandler) sendSession(
	w http.ResponseWriter, session *repository.GameSession, result *board.OpenResult,
) {
	dto, err := NewGameSessionDTO(session, result)
	if err != nil {
		g.respondError(w, fmt.Errorf("db returned invalid game_session.state: %w", err))
		return
	}
	sendJSONOrLog(w, g.logger, dto)
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseCreateNewGameDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	b, err := g.newBoard(dto)
	if err != nil {
		g.respondError(w, err)
		return
	}

	session, err := g.sessions.CreateGameSession(r.Context(), b)
	if err != nil {
		g.respondError(w, err)
		return
	}

	g.logger.Debug(
		"created game session",
		slog.String("id", session.GameSessionId.String()),
		slog.Int("width", b.Width()),
		slog.Int("height", b.Height()),
		slog.Int("mines", b.MineCount()),
	)
	g.sendSession(w, session, nil)
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	id, err := parseSessionId(r)
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	session, err := g.sessions.FetchGameSession(r.Context(), id)
	if err != nil {
		g.respondError(w, err)
		return
	}

	g.sendSession(w, session, nil)
}

func (g GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	move, pos, err := ParseMoveDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	id, err := parseSessionId(r)
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	var result *board.OpenResult
	session, err := g.sessions.UpdateGameSession(
		r.Context(), id, func(b *board.Board) (err error) {
			result, err = applyMove(b, move, pos)
			return
		},
	)
	if err != nil {
		g.respondError(w, err)
		return
	}

	g.sendSession(w, session, result)
}
