package random

import (
	"math/rand/v2"
	"sync"
)

// runtimeSource draws from the runtime's global generator, which is safe
// for concurrent use.
type runtimeSource struct{}

func (runtimeSource) Uint64() uint64 {
	return rand.Uint64()
}

// lockedSource serialises access to a seeded source.
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

// NewSource returns a deterministic source for seed that may be shared by
// concurrent callers.
func NewSource(seed uint64) rand.Source {
	return &lockedSource{src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)}
}
