package memory

import (
	"context"
	"sync"

	"terminalpet/internal/app/ports"
	"terminalpet/internal/domain/pet"
)

type txKeyType struct{}

var txKey = txKeyType{}

// Store keeps one pet and its history in process memory. Every repository
// call holds mu, except inside TxManager.RunInTx, which already holds it.
type Store struct {
	mu     sync.Mutex
	state  *pet.State
	events []ports.EventRecord
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) SeedState(state pet.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = &state
}

func (s *Store) locked(ctx context.Context, fn func()) {
	if owner, ok := ctx.Value(txKey).(*Store); ok && owner == s {
		fn()
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}
