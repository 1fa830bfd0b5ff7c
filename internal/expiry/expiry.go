// Package expiry resolves a time-out: it announces every side whose clock hit
// zero and returns the match to its initial state, so a new match starts with
// the next player press.
package expiry

import (
	"time"

	"github.com/oshokin/chess-clock/internal/domain/match"
)

const (
	// DefaultToneDuration is how long the buzzer sounds on expiry.
	DefaultToneDuration = time.Second
	// DefaultMessageHold is how long each loss message stays on the display.
	DefaultMessageHold = 5 * time.Second
)

// Timing holds the durations of an expiry alert.
type Timing struct {
	// Tone is how long the buzzer sounds.
	Tone time.Duration
	// Hold is how long each loss message is shown.
	Hold time.Duration
}

// DefaultTiming returns the stock alert durations.
func DefaultTiming() Timing {
	return Timing{
		Tone: DefaultToneDuration,
		Hold: DefaultMessageHold,
	}
}

// Announcement is one loss message.
type Announcement struct {
	// Loser is the side whose clock expired.
	Loser match.Player
	// Lines are the display rows of the message.
	Lines []string
	// Hold is how long the message stays up.
	Hold time.Duration
}

// Plan is the alert the presenter must play for a resolved expiry.
type Plan struct {
	// Tone is how long the buzzer sounds before any message.
	Tone time.Duration
	// Color is the indicator color while messages are shown.
	Color match.Color
	// Announcements are shown in order, one per expired side.
	Announcements []Announcement
}

// Empty reports whether the plan has nothing to play.
func (p Plan) Empty() bool {
	return len(p.Announcements) == 0
}

// Losers returns the sides named by the plan.
func (p Plan) Losers() []match.Player {
	losers := make([]match.Player, 0, len(p.Announcements))
	for _, a := range p.Announcements {
		losers = append(losers, a.Loser)
	}

	return losers
}

// Resolve checks for an expired side. With none it returns s unchanged and an
// empty plan. Otherwise every expired side gets an announcement (both, in A, B
// order, if both hit zero) and the returned state is the initial one.
func Resolve(s match.State, timing Timing) (match.State, Plan) {
	expired := s.ExpiredPlayers()
	if len(expired) == 0 {
		return s, Plan{}
	}

	plan := Plan{
		Tone:          timing.Tone,
		Color:         match.ColorAlert,
		Announcements: make([]Announcement, 0, len(expired)),
	}

	for _, p := range expired {
		plan.Announcements = append(plan.Announcements, Announcement{
			Loser: p,
			Lines: Message(p),
			Hold:  timing.Hold,
		})
	}

	return s.Reset(), plan
}

// Message returns the display rows announcing that p lost on time.
func Message(p match.Player) []string {
	return []string{
		"",
		" ............",
		"",
		"  TIME'S UP!",
		"",
		"",
		"  " + p.String() + " loses",
	}
}
