package ports

import (
	"context"

	"terminalpet/internal/domain/pet"
)

type Renderer interface {
	Render(ctx context.Context, mood pet.Mood) error
	Farewell(ctx context.Context) error
}
