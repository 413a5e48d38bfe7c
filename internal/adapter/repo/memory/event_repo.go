package memory

import (
	"context"

	"terminalpet/internal/app/ports"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(ctx context.Context, record ports.EventRecord) error {
	r.store.locked(ctx, func() {
		r.store.events = append(r.store.events, record)
	})
	return nil
}

func (r EventRepo) ListRecent(ctx context.Context, limit int) ([]ports.EventRecord, error) {
	var out []ports.EventRecord
	r.store.locked(ctx, func() {
		n := len(r.store.events)
		if n == 0 {
			return
		}
		if limit <= 0 || limit > n {
			limit = n
		}
		out = make([]ports.EventRecord, 0, limit)
		for i := n - 1; i >= n-limit; i-- {
			out = append(out, r.store.events[i])
		}
	})
	if len(out) == 0 {
		return nil, ports.ErrNotFound
	}
	return out, nil
}
