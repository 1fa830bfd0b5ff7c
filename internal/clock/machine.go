// Package clock implements the chess clock state machine: one-second ticks and
// the four button events. Both operations are pure functions over
// match.State; side effects are returned as an Effect for the presenter.
package clock

import (
	"github.com/oshokin/chess-clock/internal/domain/match"
)

// Effect describes the peripheral change a transition asks for.
type Effect struct {
	// SetIndicator is true when Indicator must be applied to the LED.
	SetIndicator bool
	// Indicator is the color to show.
	Indicator match.Color
}

// indicator builds an Effect that switches the LED to c.
func indicator(c match.Color) Effect {
	return Effect{
		SetIndicator: true,
		Indicator:    c,
	}
}

// Apply processes one button event.
//
// Pressing your own button passes the turn: PressA starts B's clock and
// PressB starts A's. Control pauses a running match and resets a paused one.
func Apply(s match.State, ev match.ButtonEvent) (match.State, Effect) {
	switch ev {
	case match.EventPressA:
		return startTurn(s, match.PlayerA.Opponent())
	case match.EventPressB:
		return startTurn(s, match.PlayerB.Opponent())
	case match.EventPressControl:
		if !s.Paused {
			s.Paused = true
			s.Running = [2]bool{}

			return s, indicator(match.ColorOff)
		}

		return s.Reset(), Effect{}
	default:
		return s, Effect{}
	}
}

// startTurn makes p the only running side.
func startTurn(s match.State, p match.Player) (match.State, Effect) {
	s.Paused = false
	s.Running = [2]bool{}
	s.Running[p] = true

	return s, indicator(match.TurnColor(p))
}

// Tick advances time by one second for the running side.
//
// The countdown is floored at zero and a side that reaches zero keeps its
// running flag; clearing it belongs to expiry resolution.
func Tick(s match.State) match.State {
	for _, p := range match.Players {
		if s.Running[p] && !s.Paused {
			s.Remaining[p]--
		}

		s.Remaining[p] = clamp(s.Remaining[p], s.Budget)
	}

	return s
}

// clamp bounds v to [0, budget].
func clamp(v, budget int) int {
	switch {
	case v < 0:
		return 0
	case v > budget:
		return budget
	default:
		return v
	}
}
