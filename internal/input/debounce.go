// Package input turns raw button levels into at most one ButtonEvent per cycle.
//
// Sampling is stateless: a button counts as pressed when it reads pressed,
// and still reads pressed after a short settle delay. Buttons are checked in
// priority order A, B, Control; the first one that reads pressed decides the
// outcome of the cycle.
package input

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/oshokin/chess-clock/internal/domain/match"
	"github.com/oshokin/chess-clock/internal/wait"
)

// DefaultSettleDelay is the gap between the first read and the confirmation read.
const DefaultSettleDelay = 10 * time.Millisecond

// Source reports the logical level of a button. Drivers handle active-low wiring.
type Source interface {
	ReadButton(b match.Button) match.Level
}

// Flusher is implemented by sources that buffer presses between samples.
type Flusher interface {
	Flush()
}

// Debouncer samples a Source once per cycle.
type Debouncer struct {
	// source provides the button levels.
	source Source
	// clock drives the settle wait.
	clock clockwork.Clock
	// settle is the delay before the confirmation read.
	settle time.Duration
}

// NewDebouncer creates a Debouncer. A nil clock means the real clock.
func NewDebouncer(source Source, clock clockwork.Clock, settle time.Duration) *Debouncer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Debouncer{
		source: source,
		clock:  clock,
		settle: settle,
	}
}

// Sample returns the event of this cycle. The candidate is the first button
// in priority order that reads pressed; if it reads released after the settle
// delay the cycle yields EventNone. The only error is ctx ending mid-wait.
func (d *Debouncer) Sample(ctx context.Context) (match.ButtonEvent, error) {
	for _, b := range match.Buttons {
		if d.source.ReadButton(b) != match.LevelPressed {
			continue
		}

		if err := wait.For(ctx, d.clock, d.settle); err != nil {
			return match.EventNone, err
		}

		if d.source.ReadButton(b) != match.LevelPressed {
			return match.EventNone, nil
		}

		return b.Event(), nil
	}

	return match.EventNone, nil
}

// Discard drops the presses a buffering source collected while input was
// frozen. It is a no-op for plain level sources such as GPIO pins.
func (d *Debouncer) Discard() {
	if f, ok := d.source.(Flusher); ok {
		f.Flush()
	}
}
