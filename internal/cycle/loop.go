// Package cycle runs the chess clock: a boot banner followed by a fixed-period
// loop of tick, render, input sampling, event application and expiry
// resolution. The Loop is the single owner of the match state.
package cycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/oshokin/chess-clock/internal/clock"
	"github.com/oshokin/chess-clock/internal/domain/match"
	"github.com/oshokin/chess-clock/internal/expiry"
	"github.com/oshokin/chess-clock/internal/input"
	"github.com/oshokin/chess-clock/internal/presenter"
	"github.com/oshokin/chess-clock/internal/wait"
)

const (
	// DefaultPeriod is the time between two cycles.
	DefaultPeriod = time.Second
	// DefaultBootHold is how long the startup banner stays up.
	DefaultBootHold = 3 * time.Second
)

var (
	// ErrInvariant wraps a state that broke a match invariant.
	ErrInvariant = errors.New("match invariant violated")
	// errMissingPeripheral is returned when a required collaborator is nil.
	errMissingPeripheral = errors.New("peripheral is not provided")
)

// Settings controls the loop timings and the time budget.
type Settings struct {
	// Budget is the number of seconds each side starts with.
	Budget int
	// Period is the time between two cycles.
	Period time.Duration
	// SettleDelay is the debounce confirmation delay.
	SettleDelay time.Duration
	// BootHold is how long the startup banner is shown.
	BootHold time.Duration
	// Alert holds the expiry tone and message durations.
	Alert expiry.Timing
}

// DefaultSettings returns the stock timings: 600 s per side, 1 s cycles.
func DefaultSettings() Settings {
	return Settings{
		Budget:      match.InitialSeconds,
		Period:      DefaultPeriod,
		SettleDelay: input.DefaultSettleDelay,
		BootHold:    DefaultBootHold,
		Alert:       expiry.DefaultTiming(),
	}
}

// Peripherals are the collaborators the loop drives.
type Peripherals struct {
	Buttons   input.Source
	Display   presenter.Display
	Buzzer    presenter.Buzzer
	Indicator presenter.Indicator
}

// Observer receives a copy of the state after every step.
type Observer func(s match.State)

// Loop is the main loop of the device.
type Loop struct {
	settings  Settings
	state     match.State
	debouncer *input.Debouncer
	presenter *presenter.Presenter
	clock     clockwork.Clock
	log       Logger
	observers []Observer
}

// Option configures a Loop.
type Option func(*Loop)

// WithClock replaces the real clock, mostly for tests.
func WithClock(c clockwork.Clock) Option {
	return func(l *Loop) {
		if c != nil {
			l.clock = c
		}
	}
}

// WithLogger sets the loop logger.
func WithLogger(log Logger) Option {
	return func(l *Loop) {
		if log != nil {
			l.log = log
		}
	}
}

// WithObserver registers a callback invoked after every step.
func WithObserver(o Observer) Option {
	return func(l *Loop) {
		if o != nil {
			l.observers = append(l.observers, o)
		}
	}
}

// New validates the settings and peripherals and builds a Loop holding the initial state.
func New(settings Settings, p Peripherals, opts ...Option) (*Loop, error) {
	if settings.Budget <= 0 {
		return nil, fmt.Errorf("budget %d: %w", settings.Budget, match.ErrInvalidBudget)
	}

	switch {
	case p.Buttons == nil:
		return nil, fmt.Errorf("buttons: %w", errMissingPeripheral)
	case p.Display == nil:
		return nil, fmt.Errorf("display: %w", errMissingPeripheral)
	case p.Buzzer == nil:
		return nil, fmt.Errorf("buzzer: %w", errMissingPeripheral)
	case p.Indicator == nil:
		return nil, fmt.Errorf("indicator: %w", errMissingPeripheral)
	}

	l := &Loop{
		settings: settings,
		state:    match.New(settings.Budget),
		clock:    clockwork.NewRealClock(),
		log:      nopLogger{},
	}

	for _, opt := range opts {
		opt(l)
	}

	l.debouncer = input.NewDebouncer(p.Buttons, l.clock, settings.SettleDelay)
	l.presenter = presenter.New(p.Display, p.Buzzer, p.Indicator, l.clock)

	return l, nil
}

// State returns a copy of the current state. It must only be called from the
// goroutine running the loop; other goroutines should use an Observer.
func (l *Loop) State() match.State {
	return l.state
}

// BannerLines returns the startup banner for the given budget.
func BannerLines(budget int) []string {
	return []string{
		"",
		"",
		"  Chess Clock",
		"",
		"",
		" " + presenter.FormatClock(budget) + " per side",
	}
}

// Boot shows the startup banner. A failure here means the device cannot show
// the match and must not run.
func (l *Loop) Boot(ctx context.Context) error {
	l.log.Infof("booting: %d s per side, %s cycle", l.settings.Budget, l.settings.Period)

	if err := l.presenter.Banner(ctx, BannerLines(l.settings.Budget), l.settings.BootHold); err != nil {
		return fmt.Errorf("boot: %w", err)
	}

	l.notify()

	return nil
}

// Step runs one cycle: tick, render, sample, apply, resolve. The state is
// validated before the tick too, since Tick clamps out-of-range values.
func (l *Loop) Step(ctx context.Context) error {
	if err := l.state.Validate(); err != nil {
		l.log.Warnf("state before tick: %v", err)

		return fmt.Errorf("%w: %w", ErrInvariant, err)
	}

	l.state = clock.Tick(l.state)

	if err := l.presenter.Render(l.state); err != nil {
		return err
	}

	ev, err := l.debouncer.Sample(ctx)
	if err != nil {
		return fmt.Errorf("sample input: %w", err)
	}

	if ev != match.EventNone {
		var effect clock.Effect

		l.state, effect = clock.Apply(l.state, ev)
		l.log.Debugf("event %s -> %s", ev, l.state)

		if err = l.presenter.ApplyEffect(effect); err != nil {
			return err
		}
	}

	if err = l.state.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvariant, err)
	}

	var plan expiry.Plan

	l.state, plan = expiry.Resolve(l.state, l.settings.Alert)
	if !plan.Empty() {
		l.log.Infof("time expired, losers: %v", plan.Losers())

		if err = l.presenter.Announce(ctx, plan); err != nil {
			return fmt.Errorf("announce expiry: %w", err)
		}

		// Input is frozen during the alert.
		l.debouncer.Discard()
	}

	if err = l.state.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvariant, err)
	}

	l.notify()

	return nil
}

// Run steps the loop once per period until ctx ends. It returns nil on
// cancellation and the first step error otherwise.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := l.Step(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}

			l.log.Errorf("cycle failed: %v", err)

			return err
		}

		if err := wait.For(ctx, l.clock, l.settings.Period); err != nil {
			return nil //nolint:nilerr // Cancellation is the normal way to stop the loop.
		}
	}
}

// notify hands the current state to every observer.
func (l *Loop) notify() {
	for _, o := range l.observers {
		o(l.state)
	}
}
