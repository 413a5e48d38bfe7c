package feed

import (
	"context"
	"errors"
	"strings"
	"time"

	"terminalpet/internal/app/ports"
	"terminalpet/internal/domain/pet"
	"terminalpet/internal/platform/logging"

	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"
)

var ErrInvalidRequest = errors.New("invalid feed request")

type UseCase struct {
	TxManager ports.TxManager
	StateRepo ports.PetStateRepository
	EventRepo ports.EventRepository
	Metrics   ports.EventMetrics
	Logger    *log.Logger
	Now       func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	name := strings.TrimSpace(req.EventName)
	if name == "" {
		u.recordRejected()
		return Response{}, ErrInvalidRequest
	}
	event, err := pet.ParseEvent(name)
	if err != nil {
		u.recordRejected()
		return Response{}, err
	}
	if u.StateRepo == nil {
		return Response{}, ErrInvalidRequest
	}

	logger := logging.OrDiscard(u.Logger)
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var out Response
	run := func(txCtx context.Context) error {
		before := u.loadOrDefault(txCtx, logger)
		after := pet.ApplyEvent(before, event)
		out = Response{Event: event, Before: before, State: after}

		if err := u.StateRepo.Save(txCtx, after); err != nil {
			logger.Warn("save pet state", "err", err)
			out.SaveErr = err
			if u.Metrics != nil {
				u.Metrics.RecordSaveFailure()
			}
			return nil
		}
		out.Saved = true

		if u.EventRepo != nil {
			record := ports.EventRecord{
				ID:         ulid.Make().String(),
				Event:      event,
				OccurredAt: nowFn().UTC(),
				Before:     before,
				After:      after,
			}
			if err := u.EventRepo.Append(txCtx, record); err != nil {
				logger.Warn("append event history", "err", err)
				out.HistoryErr = err
			}
		}
		return nil
	}

	if u.TxManager != nil {
		err = u.TxManager.RunInTx(ctx, run)
	} else {
		err = run(ctx)
	}
	if err != nil {
		return Response{}, err
	}

	if u.Metrics != nil {
		u.Metrics.RecordApplied(event)
	}
	logger.Debug("event applied", "event", event, "mood", out.State.Mood, "xp", out.State.XP, "level", out.State.Level)
	return out, nil
}

func (u UseCase) loadOrDefault(ctx context.Context, logger *log.Logger) pet.State {
	state, err := u.StateRepo.Load(ctx)
	if err == nil {
		return pet.Normalize(state)
	}
	if !errors.Is(err, ports.ErrNotFound) {
		logger.Warn("load pet state, starting fresh", "err", err)
	}
	return pet.New()
}

func (u UseCase) recordRejected() {
	if u.Metrics != nil {
		u.Metrics.RecordRejected()
	}
}
