package match

import (
	"errors"
	"fmt"
)

// InitialSeconds is the default time budget per side (10 minutes).
const InitialSeconds = 600

// Player identifies one side of the match.
type Player uint8

const (
	// PlayerA is the first side; its countdown is Remaining[0].
	PlayerA Player = iota
	// PlayerB is the second side; its countdown is Remaining[1].
	PlayerB
)

// Players lists both sides in announcement order.
//
//nolint:gochecknoglobals // Read-only ordering shared by the core packages.
var Players = [2]Player{PlayerA, PlayerB}

// String returns the display label of the player.
func (p Player) String() string {
	switch p {
	case PlayerA:
		return "A"
	case PlayerB:
		return "B"
	default:
		return "INVALID"
	}
}

// Opponent returns the other side.
func (p Player) Opponent() Player {
	if p == PlayerA {
		return PlayerB
	}

	return PlayerA
}

var (
	// ErrBothRunning is returned when both countdowns are marked as running.
	ErrBothRunning = errors.New("both clocks are running")
	// ErrRunningWhilePaused is returned when a countdown runs while the match is paused.
	ErrRunningWhilePaused = errors.New("clock is running while paused")
	// ErrRemainingOutOfRange is returned when a countdown leaves [0, Budget].
	ErrRemainingOutOfRange = errors.New("remaining time out of range")
	// ErrInvalidBudget is returned when the time budget is not positive.
	ErrInvalidBudget = errors.New("time budget must be positive")
)

// State is the whole mutable state of a match.
type State struct {
	// Remaining holds the seconds left for player A and player B.
	Remaining [2]int
	// Running marks which countdown decrements on the next tick.
	Running [2]bool
	// Paused blocks both countdowns.
	Paused bool
	// Budget is the number of seconds each side starts with.
	Budget int
}

// New returns the initial state: both sides at budget, paused, nothing running.
func New(budget int) State {
	return State{
		Remaining: [2]int{budget, budget},
		Paused:    true,
		Budget:    budget,
	}
}

// Reset returns the initial state for the same budget.
func (s State) Reset() State {
	return New(s.Budget)
}

// Expired reports whether either countdown has reached zero.
func (s State) Expired() bool {
	return s.Remaining[PlayerA] == 0 || s.Remaining[PlayerB] == 0
}

// ExpiredPlayers returns the sides whose countdown is zero, in A, B order.
func (s State) ExpiredPlayers() []Player {
	var expired []Player

	for _, p := range Players {
		if s.Remaining[p] == 0 {
			expired = append(expired, p)
		}
	}

	return expired
}

// Active returns the side whose countdown is running, if any.
func (s State) Active() (Player, bool) {
	for _, p := range Players {
		if s.Running[p] {
			return p, true
		}
	}

	return PlayerA, false
}

// Validate checks the invariants every transition must preserve.
func (s State) Validate() error {
	if s.Budget <= 0 {
		return fmt.Errorf("budget %d: %w", s.Budget, ErrInvalidBudget)
	}

	if s.Running[PlayerA] && s.Running[PlayerB] {
		return ErrBothRunning
	}

	if s.Paused && (s.Running[PlayerA] || s.Running[PlayerB]) {
		return ErrRunningWhilePaused
	}

	for _, p := range Players {
		if s.Remaining[p] < 0 || s.Remaining[p] > s.Budget {
			return fmt.Errorf("player %s has %d of %d seconds: %w", p, s.Remaining[p], s.Budget, ErrRemainingOutOfRange)
		}
	}

	return nil
}

// String renders the state for logs.
func (s State) String() string {
	return fmt.Sprintf("A=%d(%t) B=%d(%t) paused=%t",
		s.Remaining[PlayerA], s.Running[PlayerA],
		s.Remaining[PlayerB], s.Running[PlayerB],
		s.Paused)
}
