package ports

import (
	"context"
	"time"

	"terminalpet/internal/domain/pet"
)

// PetStateRepository returns ErrNotFound from Load when nothing was saved yet.
type PetStateRepository interface {
	Load(ctx context.Context) (pet.State, error)
	Save(ctx context.Context, state pet.State) error
}

type EventRecord struct {
	ID         string    `json:"id"`
	Event      pet.Event `json:"event"`
	OccurredAt time.Time `json:"occurred_at"`
	Before     pet.State `json:"before"`
	After      pet.State `json:"after"`
}

// EventRepository lists records newest first.
type EventRepository interface {
	Append(ctx context.Context, record EventRecord) error
	ListRecent(ctx context.Context, limit int) ([]EventRecord, error)
}
