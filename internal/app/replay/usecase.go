package replay

import (
	"context"
	"errors"

	"terminalpet/internal/app/ports"
	"terminalpet/internal/domain/pet"
)

const DefaultLimit = 10

var ErrInvalidRequest = errors.New("invalid replay request")

type UseCase struct {
	Events ports.EventRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if u.Events == nil || req.Limit < 0 {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	events, err := u.Events.ListRecent(ctx, limit)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return Response{Events: []ports.EventRecord{}, LatestState: pet.New()}, nil
		}
		return Response{}, err
	}
	return Response{Events: events, LatestState: latest(events)}, nil
}

func latest(events []ports.EventRecord) pet.State {
	if len(events) == 0 {
		return pet.New()
	}
	return pet.Normalize(events[0].After)
}
