// Package terminal draws the pet as ASCII frames on an ANSI terminal.
package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"terminalpet/internal/domain/pet"

	"github.com/muesli/termenv"
)

const (
	DefaultFrameDelay    = 350 * time.Millisecond
	DefaultFarewellDelay = 250 * time.Millisecond
	DefaultCycles        = 4
)

// Renderer cycles a mood's frames Cycles times, pausing FrameDelay between
// frames. Zero values fall back to the defaults above.
type Renderer struct {
	Out           io.Writer
	FrameDelay    time.Duration
	FarewellDelay time.Duration
	Cycles        int
	NoClear       bool
}

func (r Renderer) Render(ctx context.Context, mood pet.Mood) error {
	return r.play(ctx, Frames(mood), r.frameDelay())
}

func (r Renderer) Farewell(ctx context.Context) error {
	return r.play(ctx, FarewellFrames(), r.farewellDelay())
}

func (r Renderer) play(ctx context.Context, frames []string, delay time.Duration) error {
	if len(frames) == 0 {
		return nil
	}
	out := r.Out
	if out == nil {
		out = os.Stdout
	}
	cycles := r.Cycles
	if cycles <= 0 {
		cycles = DefaultCycles
	}
	screen := termenv.NewOutput(out)
	for i := 0; i < cycles; i++ {
		if !r.NoClear {
			screen.ClearScreen()
		}
		if _, err := fmt.Fprintln(out, frames[i%len(frames)]); err != nil {
			return fmt.Errorf("write frame: %w", err)
		}
		if err := pause(ctx, delay); err != nil {
			return err
		}
	}
	return nil
}

func (r Renderer) frameDelay() time.Duration {
	if r.FrameDelay > 0 {
		return r.FrameDelay
	}
	return DefaultFrameDelay
}

func (r Renderer) farewellDelay() time.Duration {
	if r.FarewellDelay > 0 {
		return r.FarewellDelay
	}
	return DefaultFarewellDelay
}

func pause(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
