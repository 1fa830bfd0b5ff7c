package expiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/chess-clock/internal/clock"
	"github.com/oshokin/chess-clock/internal/domain/match"
)

// TestResolve_NoExpiry returns the state unchanged with an empty plan.
func TestResolve_NoExpiry(t *testing.T) {
	t.Parallel()

	s := match.New(match.InitialSeconds)
	s, _ = clock.Apply(s, match.EventPressB)

	out, plan := Resolve(s, DefaultTiming())
	require.Equal(t, s, out)
	require.True(t, plan.Empty())
	require.Empty(t, plan.Losers())
}

// TestResolve_AutoReset ticks A to zero and checks the loss is announced and the match reset.
func TestResolve_AutoReset(t *testing.T) {
	t.Parallel()

	s := match.New(match.InitialSeconds)
	s.Remaining = [2]int{1, 50}
	s.Running = [2]bool{true, false}
	s.Paused = false

	s = clock.Tick(s)
	require.Equal(t, [2]int{0, 50}, s.Remaining)

	out, plan := Resolve(s, DefaultTiming())
	require.Equal(t, [2]int{600, 600}, out.Remaining)
	require.Equal(t, [2]bool{false, false}, out.Running)
	require.True(t, out.Paused)

	require.False(t, plan.Empty())
	require.Equal(t, []match.Player{match.PlayerA}, plan.Losers())
	require.Equal(t, time.Second, plan.Tone)
	require.Equal(t, match.ColorAlert, plan.Color)
	require.Equal(t, 5*time.Second, plan.Announcements[0].Hold)
	require.Contains(t, plan.Announcements[0].Lines, "  A loses")
}

// TestResolve_BothExpired announces both sides in order before resetting.
func TestResolve_BothExpired(t *testing.T) {
	t.Parallel()

	s := match.State{Remaining: [2]int{0, 0}, Paused: true, Budget: 90}
	timing := Timing{Tone: time.Millisecond, Hold: 2 * time.Millisecond}

	out, plan := Resolve(s, timing)
	require.Equal(t, match.New(90), out)
	require.Equal(t, []match.Player{match.PlayerA, match.PlayerB}, plan.Losers())
	require.Equal(t, time.Millisecond, plan.Tone)
	require.Equal(t, 2*time.Millisecond, plan.Announcements[1].Hold)
	require.Contains(t, plan.Announcements[1].Lines, "  B loses")
}
