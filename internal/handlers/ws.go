package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper-engine/internal/board"
	"github.com/vancomm/minesweeper-engine/internal/repository"
)

// parseCommand reads "o x y" or "f x y".
func parseCommand(c string) (Move, board.Position, error) {
	parts := strings.Fields(c)
	if len(parts) != 3 {
		return 0, board.Position{}, fmt.Errorf("invalid number of arguments")
	}
	move, err := ParseMove(parts[0])
	if err != nil {
		return 0, board.Position{}, err
	}
	x, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, board.Position{}, fmt.Errorf("first argument must be an int")
	}
	y, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, board.Position{}, fmt.Errorf("second argument must be an int")
	}
	return move, board.Position{X: x, Y: y}, nil
}

func (g GameHandler) writeJSON(c *websocket.Conn, v any) error {
	c.SetWriteDeadline(time.Now().Add(g.ws.WriteTimeout))
	return c.WriteJSON(v)
}

/*
ConnectWS plays a session over a websocket. Every text frame carries one or
more newline separated commands; the reply is the session after the last of
them, or an error object for the first command that failed.
*/
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	id, err := parseSessionId(r)
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	if _, err := g.sessions.FetchGameSession(r.Context(), id); err != nil {
		g.respondError(w, err)
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer c.Close()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.logger.Warn("abnormal ws break", slog.Any("error", err))
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}

		var reply any
		if dto, err := g.playFrame(r, id, string(message)); err != nil {
			reply = wrapError(err)
		} else {
			reply = dto
		}

		if err := g.writeJSON(c, reply); err != nil {
			g.logger.Error("unable to write json", slog.Any("error", err))
			return
		}
	}
}

func (g GameHandler) playFrame(r *http.Request, id uuid.UUID, text string) (*GameSessionDTO, error) {
	var (
		session *repository.GameSession
		result  *board.OpenResult
	)
	for line := range strings.Lines(strings.TrimSpace(text)) {
		g.logger.Debug("ws command", slog.String("command", strings.TrimSpace(line)))
		move, pos, err := parseCommand(line)
		if err != nil {
			return nil, err
		}
		session, err = g.sessions.UpdateGameSession(
			r.Context(), id, func(b *board.Board) (err error) {
				result, err = applyMove(b, move, pos)
				return
			},
		)
		if err != nil {
			return nil, err
		}
	}
	if session == nil {
		return nil, fmt.Errorf("empty command")
	}
	return NewGameSessionDTO(session, result)
}
