package repository_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/board"
	"github.com/vancomm/minesweeper-engine/internal/database"
	"github.com/vancomm/minesweeper-engine/internal/repository"
	"github.com/vancomm/minesweeper-engine/migrations"
)

// setupRepo needs a disposable postgres reachable at TEST_DATABASE_URL.
func setupRepo(t *testing.T) *repository.Queries {
	t.Helper()
	url, ok := os.LookupEnv("TEST_DATABASE_URL")
	if !ok {
		t.Skip("TEST_DATABASE_URL not set")
	}

	_, err := database.Migrate(url, migrations.FS)
	require.NoError(t, err)

	pool, err := pgxpool.New(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return repository.New(pool)
}

func TestGameSessionLifecycle(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	b, err := board.NewWithMines(3, 3, []board.Position{{X: 2, Y: 2}})
	require.NoError(t, err)

	created, err := repo.CreateGameSession(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, 3, created.Width)
	assert.Equal(t, 1, created.MineCount)
	assert.False(t, created.Ended())

	updated, err := repo.UpdateGameSession(ctx, created.GameSessionId, func(b *board.Board) error {
		_, err := b.Open(board.Position{X: 2, Y: 2})
		return err
	})
	require.NoError(t, err)
	assert.True(t, updated.Lost)
	assert.True(t, updated.Ended())

	fetched, err := repo.FetchGameSession(ctx, created.GameSessionId)
	require.NoError(t, err)
	restored, err := fetched.Board()
	require.NoError(t, err)
	assert.True(t, restored.Lost())
}

func TestGameSessionNotFound(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.FetchGameSession(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGameSessionMoveError(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	b, err := board.NewWithMines(2, 2, nil)
	require.NoError(t, err)
	created, err := repo.CreateGameSession(ctx, b)
	require.NoError(t, err)

	_, err = repo.UpdateGameSession(ctx, created.GameSessionId, func(b *board.Board) error {
		_, err := b.Open(board.Position{X: 5, Y: 5})
		return err
	})
	assert.ErrorIs(t, err, board.ErrOutOfBounds)
}

func TestGameSessionConcurrentMoves(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	b, err := board.NewWithMines(4, 4, []board.Position{{X: 3, Y: 3}})
	require.NoError(t, err)
	created, err := repo.CreateGameSession(ctx, b)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for x := range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.UpdateGameSession(ctx, created.GameSessionId, func(b *board.Board) error {
				return b.ToggleFlag(board.Position{X: x, Y: 3})
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	fetched, err := repo.FetchGameSession(ctx, created.GameSessionId)
	require.NoError(t, err)
	restored, err := fetched.Board()
	require.NoError(t, err)
	assert.Equal(t, 3, restored.FlagCount())
}
