package app

import (
	"hash/maphash"
	"math/rand/v2"
	"sync"

	"github.com/vancomm/minesweeper-engine/internal/handlers"
	"github.com/vancomm/minesweeper-engine/internal/repository"
)

// lockedRand shares one generator between request goroutines.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func createRand() *lockedRand {
	return &lockedRand{r: rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))}
}

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.logger, repository.New(a.db), a.limits, a.ws, createRand(),
	)
	game.Register(a.router)
}
