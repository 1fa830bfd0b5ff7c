// Package wait provides the blocking waits of the clock loop on top of an
// injectable clockwork.Clock.
package wait

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// For blocks for d on clk or until ctx is done. Non-positive durations return
// immediately without touching the clock.
func For(ctx context.Context, clk clockwork.Clock, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if d <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-clk.After(d):
		return nil
	}
}
