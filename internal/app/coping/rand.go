package coping

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Picker returns a uniform integer in [0, n). *rand.Rand satisfies it.
type Picker interface {
	IntN(n int) int
}

// LockedRand is a seedable Picker safe for concurrent use.
type LockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewLockedRand seeds a PCG source. Seed 0 seeds from the clock.
func NewLockedRand(seed uint64) *LockedRand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &LockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *LockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// Pick returns a uniformly chosen element of items. items must be non-empty.
func Pick(p Picker, items []string) string {
	return items[p.IntN(len(items))]
}
