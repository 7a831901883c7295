package service

import (
	"math/rand"
	"sync"
	"time"
)

// WinnerPicker draws the index of the winning participant
type WinnerPicker interface {
	// Pick returns an index uniformly distributed over [0, n)
	Pick(n int) int
}

type randomWinnerPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomWinnerPicker creates a picker backed by a seeded source.
// A zero seed uses the current time.
func NewRandomWinnerPicker(seed int64) WinnerPicker {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &randomWinnerPicker{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Pick returns an index uniformly distributed over [0, n)
func (p *randomWinnerPicker) Pick(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Intn(n)
}
