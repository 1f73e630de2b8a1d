package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vancomm/minesweeper-engine/internal/board"
)

type GameSession struct {
	GameSessionId uuid.UUID  `db:"game_session_id"`
	Width         int        `db:"width"`
	Height        int        `db:"height"`
	MineCount     int        `db:"mine_count"`
	Lost          bool       `db:"lost"`
	Won           bool       `db:"won"`
	State         []byte     `db:"state"`
	StartedAt     time.Time  `db:"started_at"`
	EndedAt       *time.Time `db:"ended_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

func (s GameSession) Board() (*board.Board, error) {
	return board.Decode(s.State)
}

func (s GameSession) Ended() bool {
	return s.EndedAt != nil
}

func (q Queries) CreateGameSession(
	ctx context.Context, b *board.Board,
) (*GameSession, error) {
	state, err := b.Bytes()
	if err != nil {
		return nil, err
	}

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_session (
			game_session_id, width, height, mine_count, lost, won, state
		)
		VALUES (
			@game_session_id, @width, @height, @mine_count, @lost, @won, @state
		)
		RETURNING *;`,
		pgx.NamedArgs{
			"game_session_id": uuid.New(),
			"width":           b.Width(),
			"height":          b.Height(),
			"mine_count":      b.MineCount(),
			"lost":            b.Lost(),
			"won":             b.Won(),
			"state":           state,
		},
	)
	session, err := pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameSession],
	)
	return session, mapError(err)
}

func (q Queries) FetchGameSession(
	ctx context.Context, gameSessionId uuid.UUID,
) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_session WHERE game_session_id = $1",
		gameSessionId,
	)
	session, err := pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameSession],
	)
	return session, mapError(err)
}

/*
UpdateGameSession applies move to the stored board and writes it back. The
row stays locked from read to write, so moves on one session never
interleave. An error returned by move aborts the transaction and is passed
through unchanged.
*/
func (q Queries) UpdateGameSession(
	ctx context.Context, gameSessionId uuid.UUID, move func(*board.Board) error,
) (*GameSession, error) {
	var session *GameSession

	err := pgx.BeginFunc(ctx, q.db, func(tx pgx.Tx) error {
		rows, _ := tx.Query(
			ctx,
			"SELECT * FROM game_session WHERE game_session_id = $1 FOR UPDATE",
			gameSessionId,
		)
		current, err := pgx.CollectExactlyOneRow(
			rows, pgx.RowToAddrOfStructByName[GameSession],
		)
		if err != nil {
			return err
		}

		b, err := current.Board()
		if err != nil {
			return err
		}
		if err := move(b); err != nil {
			return err
		}
		state, err := b.Bytes()
		if err != nil {
			return err
		}

		endedAt := current.EndedAt
		if endedAt == nil && (b.Lost() || b.Won()) {
			now := time.Now().UTC()
			endedAt = &now
		}

		rows, _ = tx.Query(
			ctx,
			`UPDATE game_session
			SET lost = @lost, won = @won, state = @state,
				ended_at = @ended_at, updated_at = now()
			WHERE game_session_id = @game_session_id
			RETURNING *;`,
			pgx.NamedArgs{
				"game_session_id": gameSessionId,
				"lost":            b.Lost(),
				"won":             b.Won(),
				"state":           state,
				"ended_at":        endedAt,
			},
		)
		session, err = pgx.CollectExactlyOneRow(
			rows, pgx.RowToAddrOfStructByName[GameSession],
		)
		return err
	})

	if err != nil {
		return nil, mapError(err)
	}
	return session, nil
}
