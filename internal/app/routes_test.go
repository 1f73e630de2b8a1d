package app

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockedRandConcurrent(t *testing.T) {
	r := createRand()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				v := r.IntN(10)
				assert.True(t, 0 <= v && v < 10)
			}
		}()
	}
	wg.Wait()
}
