package filerepo

import (
	"context"
	"sync"
)

// TxManager serialises read-modify-write cycles inside one process. Separate
// processes are not coordinated: the last writer wins.
type TxManager struct {
	mu *sync.Mutex
}

func NewTxManager() TxManager {
	return TxManager{mu: &sync.Mutex{}}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}
