package status

import (
	"context"
	"errors"

	"terminalpet/internal/app/ports"
	"terminalpet/internal/domain/pet"
	"terminalpet/internal/platform/logging"

	"github.com/charmbracelet/log"
)

var ErrInvalidRequest = errors.New("invalid status request")

type UseCase struct {
	StateRepo ports.PetStateRepository
	Logger    *log.Logger
}

// Execute never fails on storage problems: an absent or unreadable record is
// reported as the default pet with Persisted=false.
func (u UseCase) Execute(ctx context.Context, _ Request) (Response, error) {
	if u.StateRepo == nil {
		return Response{}, ErrInvalidRequest
	}
	state, err := u.StateRepo.Load(ctx)
	if err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			logging.OrDiscard(u.Logger).Warn("load pet state", "err", err)
		}
		return Response{State: pet.New()}, nil
	}
	return Response{State: pet.Normalize(state), Persisted: true}, nil
}
