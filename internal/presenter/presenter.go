// Package presenter applies clock state, transition effects and alert plans to
// the display, buzzer and indicator LED. It holds no game state of its own.
package presenter

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/oshokin/chess-clock/internal/clock"
	"github.com/oshokin/chess-clock/internal/domain/match"
	"github.com/oshokin/chess-clock/internal/expiry"
	"github.com/oshokin/chess-clock/internal/wait"
)

// Display shows rows of text, replacing whatever was shown before.
type Display interface {
	Render(lines []string) error
}

// Buzzer switches the audible alert.
type Buzzer interface {
	Tone(on bool) error
}

// Indicator sets the RGB LED.
type Indicator interface {
	SetColor(c match.Color) error
}

// Presenter drives the three output peripherals.
type Presenter struct {
	display   Display
	buzzer    Buzzer
	indicator Indicator
	clock     clockwork.Clock
}

// New creates a Presenter. A nil clock means the real clock.
func New(display Display, buzzer Buzzer, indicator Indicator, clock clockwork.Clock) *Presenter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Presenter{
		display:   display,
		buzzer:    buzzer,
		indicator: indicator,
		clock:     clock,
	}
}

// Frame returns the live readout of s.
func Frame(s match.State) []string {
	return []string{
		FormatSide(match.PlayerA, s.Remaining[match.PlayerA]),
		FormatSide(match.PlayerB, s.Remaining[match.PlayerB]),
	}
}

// FormatSide renders one readout row, e.g. "A: 09:59".
func FormatSide(p match.Player, seconds int) string {
	return p.String() + ": " + FormatClock(seconds)
}

// FormatClock renders seconds as MM:SS. Negative values show as 00:00.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}

	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Render shows the live readout.
func (p *Presenter) Render(s match.State) error {
	if err := p.display.Render(Frame(s)); err != nil {
		return fmt.Errorf("render readout: %w", err)
	}

	return nil
}

// ApplyEffect applies the LED change requested by a transition.
func (p *Presenter) ApplyEffect(e clock.Effect) error {
	if !e.SetIndicator {
		return nil
	}

	if err := p.indicator.SetColor(e.Indicator); err != nil {
		return fmt.Errorf("set indicator %s: %w", e.Indicator, err)
	}

	return nil
}

// Banner shows lines with the alert color for hold, then turns the LED off.
func (p *Presenter) Banner(ctx context.Context, lines []string, hold time.Duration) error {
	if err := p.display.Render(lines); err != nil {
		return fmt.Errorf("render banner: %w", err)
	}

	if err := p.indicator.SetColor(match.ColorAlert); err != nil {
		return fmt.Errorf("banner indicator: %w", err)
	}

	if err := wait.For(ctx, p.clock, hold); err != nil {
		return err
	}

	if err := p.indicator.SetColor(match.ColorOff); err != nil {
		return fmt.Errorf("banner indicator: %w", err)
	}

	return nil
}

// Announce plays an expiry plan: tone, alert color, every message for its
// hold, then LED off. An empty plan does nothing.
func (p *Presenter) Announce(ctx context.Context, plan expiry.Plan) error {
	if plan.Empty() {
		return nil
	}

	if err := p.buzzer.Tone(true); err != nil {
		return fmt.Errorf("tone on: %w", err)
	}

	waitErr := wait.For(ctx, p.clock, plan.Tone)

	// The buzzer must not stay on, even if the wait was interrupted.
	if err := p.buzzer.Tone(false); err != nil {
		return fmt.Errorf("tone off: %w", err)
	}

	if waitErr != nil {
		return waitErr
	}

	if err := p.indicator.SetColor(plan.Color); err != nil {
		return fmt.Errorf("alert indicator: %w", err)
	}

	for _, a := range plan.Announcements {
		if err := p.display.Render(a.Lines); err != nil {
			return fmt.Errorf("render loss of %s: %w", a.Loser, err)
		}

		if err := wait.For(ctx, p.clock, a.Hold); err != nil {
			return err
		}
	}

	if err := p.indicator.SetColor(match.ColorOff); err != nil {
		return fmt.Errorf("alert indicator: %w", err)
	}

	return nil
}
