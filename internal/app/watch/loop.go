// Package watch re-renders the persisted pet on a timer until it is stopped.
//
// The loop never writes state. Cancellation is observed through a stop flag
// (set from a signal handler via Stop) and through the run context; both are
// checked before every sleep slice, so shutdown latency is bounded by Slice
// rather than by Interval.
package watch

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"terminalpet/internal/app/ports"
	"terminalpet/internal/domain/pet"
	"terminalpet/internal/platform/logging"

	"github.com/charmbracelet/log"
)

const (
	DefaultInterval = 5 * time.Second
	DefaultSlice    = 200 * time.Millisecond
)

var ErrInvalidLoop = errors.New("watch loop requires a state repository and a renderer")

type Loop struct {
	StateRepo ports.PetStateRepository
	Renderer  ports.Renderer
	Interval  time.Duration
	Slice     time.Duration
	Logger    *log.Logger

	stopped atomic.Bool
}

// Stop asks a running loop to finish. Safe to call from any goroutine.
func (l *Loop) Stop() {
	l.stopped.Store(true)
}

// Run blocks until Stop is called or ctx is done, then plays the farewell.
func (l *Loop) Run(ctx context.Context) error {
	if l.StateRepo == nil || l.Renderer == nil {
		return ErrInvalidLoop
	}
	logger := logging.OrDiscard(l.Logger)
	interval, slice := l.timing()
	logger.Debug("watch loop started", "interval", interval, "slice", slice)

	for !l.done(ctx) {
		mood := l.currentMood(ctx, logger)
		if err := l.Renderer.Render(ctx, mood); err != nil && ctx.Err() == nil {
			logger.Warn("render pet", "mood", mood, "err", err)
		}
		l.sleep(ctx, interval, slice)
	}

	logger.Debug("watch loop stopping")
	if err := l.Renderer.Farewell(context.WithoutCancel(ctx)); err != nil {
		logger.Warn("render farewell", "err", err)
	}
	return nil
}

func (l *Loop) timing() (time.Duration, time.Duration) {
	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	slice := l.Slice
	if slice <= 0 {
		slice = DefaultSlice
	}
	return interval, slice
}

func (l *Loop) done(ctx context.Context) bool {
	return l.stopped.Load() || ctx.Err() != nil
}

// currentMood falls back to the default pet for display only; nothing is saved.
func (l *Loop) currentMood(ctx context.Context, logger *log.Logger) pet.Mood {
	state, err := l.StateRepo.Load(ctx)
	if err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			logger.Debug("load pet state", "err", err)
		}
		return pet.New().Mood
	}
	return pet.Normalize(state).Mood
}

func (l *Loop) sleep(ctx context.Context, interval, slice time.Duration) {
	for remaining := interval; remaining > 0; remaining -= slice {
		if l.done(ctx) {
			return
		}
		t := time.NewTimer(min(slice, remaining))
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}
	}
}
