package device

import (
	"context"
	"sync"

	"github.com/google/uuid"

	api "github.com/oshokin/chess-clock/internal/api/grpc/clock"
	"github.com/oshokin/chess-clock/internal/domain/match"
	"github.com/oshokin/chess-clock/internal/logger"
)

// presser is the part of the virtual panel the service drives.
type presser interface {
	Press(b match.Button)
}

// service publishes loop snapshots to the remote API and forwards remote
// presses to the panel. It is unexported to keep the transport decoupled
// from the implementation.
type service struct {
	// panel receives remote presses.
	panel presser
	// newID generates match identifiers.
	newID func() string
	// mu protects matchID and state.
	mu sync.RWMutex
	// matchID identifies the match since the last reset.
	matchID string
	// state is the latest observed match state.
	state match.State
}

// newService creates a service for a fresh match with the given budget.
func newService(panel presser, budget int) *service {
	s := &service{
		panel: panel,
		newID: uuid.NewString,
		state: match.New(budget),
	}

	s.matchID = s.newID()

	return s
}

// observe stores the state after a loop step. A return to the initial
// state after any change starts a new match.
func (s *service) observe(st match.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st == st.Reset() && s.state != st {
		s.matchID = s.newID()
	}

	s.state = st
}

// Snapshot returns the latest match state.
func (s *service) Snapshot(ctx context.Context) api.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logger.DebugKV(ctx, "Match state requested", "match_id", s.matchID, "state", s.state.String())

	return api.Snapshot{
		MatchID: s.matchID,
		State:   s.state,
	}
}

// Press latches button on the panel; the loop picks it up on its next cycle.
func (s *service) Press(ctx context.Context, button match.Button) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.panel.Press(button)

	logger.InfoKV(ctx, "Remote button press", "button", button.String())

	return nil
}
