package cycle

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/chess-clock/internal/domain/match"
	"github.com/oshokin/chess-clock/internal/expiry"
	"github.com/oshokin/chess-clock/internal/hal/virtual"
)

// bench is a fake board: queued presses as input, recorded calls as output.
type bench struct {
	// presses are consumed one per cycle; each is held for two reads.
	presses []match.Button
	// holding is the button currently held and its remaining reads.
	holding match.Button
	// reads is the number of pressed reads left for holding.
	reads int
	// calls logs every output call.
	calls []string
}

// ReadButton reports the queued press for the current cycle.
func (b *bench) ReadButton(btn match.Button) match.Level {
	if b.reads == 0 || b.holding != btn {
		return match.LevelReleased
	}

	b.reads--

	return match.LevelPressed
}

// Render logs the rows and, on each readout, arms the next queued press.
func (b *bench) Render(lines []string) error {
	b.calls = append(b.calls, "render "+strings.Join(lines, "|"))

	if len(lines) == 2 && len(b.presses) > 0 {
		b.holding, b.presses, b.reads = b.presses[0], b.presses[1:], 2
	}

	return nil
}

// Tone logs the buzzer state.
func (b *bench) Tone(on bool) error {
	if on {
		b.calls = append(b.calls, "tone on")
	} else {
		b.calls = append(b.calls, "tone off")
	}

	return nil
}

// SetColor logs the LED color.
func (b *bench) SetColor(c match.Color) error {
	b.calls = append(b.calls, "led "+c.String())

	return nil
}

// displayFunc adapts a function to the Display interface.
type displayFunc func(lines []string) error

// Render calls f.
func (f displayFunc) Render(lines []string) error {
	return f(lines)
}

// fastSettings returns settings with every wait disabled.
func fastSettings(budget int) Settings {
	return Settings{
		Budget: budget,
		Period: time.Second,
	}
}

// newBenchLoop builds a loop wired to a bench on a fake clock.
func newBenchLoop(t *testing.T, settings Settings, opts ...Option) (*Loop, *bench) {
	t.Helper()

	b := new(bench)
	opts = append([]Option{WithClock(clockwork.NewFakeClock())}, opts...)

	l, err := New(settings, Peripherals{Buttons: b, Display: b, Buzzer: b, Indicator: b}, opts...)
	require.NoError(t, err)

	return l, b
}

// TestNew_Validation rejects a bad budget and missing peripherals.
func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := New(Settings{}, Peripherals{})
	require.ErrorIs(t, err, match.ErrInvalidBudget)

	b := new(bench)
	_, err = New(DefaultSettings(), Peripherals{Buttons: b, Display: b, Buzzer: b})
	require.ErrorIs(t, err, errMissingPeripheral)
}

// TestBoot shows the banner with the alert color.
func TestBoot(t *testing.T) {
	t.Parallel()

	l, b := newBenchLoop(t, fastSettings(600))

	require.NoError(t, l.Boot(context.Background()))
	require.Equal(t, []string{
		"render " + strings.Join(BannerLines(600), "|"),
		"led red",
		"led off",
	}, b.calls)
	require.Contains(t, BannerLines(600), " 10:00 per side")
}

// TestStep_Order ticks before rendering and applies input after rendering.
func TestStep_Order(t *testing.T) {
	t.Parallel()

	l, b := newBenchLoop(t, fastSettings(600))
	b.presses = []match.Button{match.ButtonB}

	ctx := context.Background()

	// Paused: no tick, then B starts A's clock.
	require.NoError(t, l.Step(ctx))
	require.Equal(t, []string{"render A: 10:00|B: 10:00", "led green"}, b.calls)
	require.Equal(t, [2]bool{true, false}, l.State().Running)

	// Next cycle: A ticks before the readout.
	require.NoError(t, l.Step(ctx))
	require.Equal(t, "render A: 09:59|B: 10:00", b.calls[2])
	require.Equal(t, [2]int{599, 600}, l.State().Remaining)
}

// TestStep_PauseReset walks the control button through pause and reset.
func TestStep_PauseReset(t *testing.T) {
	t.Parallel()

	l, b := newBenchLoop(t, fastSettings(600))
	b.presses = []match.Button{match.ButtonA, match.ButtonControl, match.ButtonControl}

	ctx := context.Background()
	for range 4 {
		require.NoError(t, l.Step(ctx))
	}

	// A, tick B + pause, reset, idle.
	require.Equal(t, match.New(600), l.State())
	require.Equal(t, []string{
		"render A: 10:00|B: 10:00",
		"led blue",
		"render A: 10:00|B: 09:59",
		"led off",
		"render A: 10:00|B: 09:59",
		"render A: 10:00|B: 10:00",
	}, b.calls)
}

// TestStep_Expiry runs A out of time and checks the alert and auto-reset.
func TestStep_Expiry(t *testing.T) {
	t.Parallel()

	var seen []match.State

	l, b := newBenchLoop(t, fastSettings(2), WithObserver(func(s match.State) {
		seen = append(seen, s)
	}))
	b.presses = []match.Button{match.ButtonB}

	ctx := context.Background()
	for range 3 {
		require.NoError(t, l.Step(ctx))
	}

	require.Equal(t, match.New(2), l.State())
	require.Len(t, seen, 3)
	require.Equal(t, [2]int{1, 2}, seen[1].Remaining)
	require.Equal(t, match.New(2), seen[2])

	require.Equal(t, []string{
		"render A: 00:02|B: 00:02",
		"led green",
		"render A: 00:01|B: 00:02",
		"render A: 00:00|B: 00:02",
		"tone on",
		"tone off",
		"led red",
		"render " + strings.Join(expiry.Message(match.PlayerA), "|"),
		"led off",
	}, b.calls)
}

// TestStep_CorruptedState reports an out-of-range countdown instead of clamping it.
func TestStep_CorruptedState(t *testing.T) {
	t.Parallel()

	l, b := newBenchLoop(t, fastSettings(10))

	l.state.Remaining[match.PlayerB] = 11
	require.ErrorIs(t, l.Step(context.Background()), ErrInvariant)
	require.Empty(t, b.calls)

	l.state.Remaining[match.PlayerB] = -1
	require.ErrorIs(t, l.Step(context.Background()), ErrInvariant)
}

// TestStep_AlertDropsPresses ignores presses made while the loss message is shown.
func TestStep_AlertDropsPresses(t *testing.T) {
	t.Parallel()

	panel := virtual.NewPanel()
	b := new(bench)

	display := displayFunc(func(lines []string) error {
		if strings.Contains(strings.Join(lines, "|"), "loses") {
			panel.Press(match.ButtonA)
		}

		return nil
	})

	l, err := New(fastSettings(1), Peripherals{Buttons: panel, Display: display, Buzzer: b, Indicator: b},
		WithClock(clockwork.NewFakeClock()))
	require.NoError(t, err)

	ctx := context.Background()

	// B hands the turn to A, whose single second runs out on the next cycle.
	panel.Press(match.ButtonB)
	require.NoError(t, l.Step(ctx))
	require.Equal(t, [2]bool{true, false}, l.State().Running)

	require.NoError(t, l.Step(ctx))
	require.Equal(t, match.New(1), l.State())

	// The press made during the alert does not start B's clock.
	require.NoError(t, l.Step(ctx))
	require.Equal(t, match.New(1), l.State())
}

// TestRun_FakeClock advances the fake clock one period at a time and observes each cycle.
func TestRun_FakeClock(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clk := clockwork.NewFakeClock()
	states := make(chan match.State, 16)

	l, b := newBenchLoop(t, fastSettings(600), WithClock(clk), WithObserver(func(s match.State) {
		states <- s
	}))
	b.presses = []match.Button{match.ButtonA}

	done := make(chan error, 1)

	go func() {
		done <- l.Run(ctx)
	}()

	first := <-states
	require.Equal(t, [2]bool{false, true}, first.Running)

	for want := 599; want >= 597; want-- {
		require.NoError(t, clk.BlockUntilContext(ctx, 1))
		clk.Advance(time.Second)

		s := <-states
		require.Equal(t, want, s.Remaining[match.PlayerB])
		require.Equal(t, 600, s.Remaining[match.PlayerA])
	}

	cancel()
	require.NoError(t, <-done)
}
