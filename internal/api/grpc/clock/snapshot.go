package clock

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/chess-clock/internal/domain/match"
	"github.com/oshokin/chess-clock/internal/presenter"
)

// Names of the fields of the GetState response.
const (
	FieldRemainingA = "remaining_a"
	FieldRemainingB = "remaining_b"
	FieldRunningA   = "running_a"
	FieldRunningB   = "running_b"
	FieldPaused     = "paused"
	FieldExpired    = "expired"
	FieldBudget     = "budget"
	FieldMatchID    = "match_id"
	FieldDisplayA   = "display_a"
	FieldDisplayB   = "display_b"
)

// errMissingField is returned when a GetState response lacks a field.
var errMissingField = errors.New("snapshot field is missing")

// Snapshot is the live view of a match.
type Snapshot struct {
	// MatchID identifies the match since the last reset.
	MatchID string
	// State is a copy of the match state after the latest cycle.
	State match.State
}

// ToStruct encodes the snapshot as a GetState response.
func ToStruct(s Snapshot) (*structpb.Struct, error) {
	frame := presenter.Frame(s.State)

	return structpb.NewStruct(map[string]any{
		FieldRemainingA: s.State.Remaining[match.PlayerA],
		FieldRemainingB: s.State.Remaining[match.PlayerB],
		FieldRunningA:   s.State.Running[match.PlayerA],
		FieldRunningB:   s.State.Running[match.PlayerB],
		FieldPaused:     s.State.Paused,
		FieldExpired:    s.State.Expired(),
		FieldBudget:     s.State.Budget,
		FieldMatchID:    s.MatchID,
		FieldDisplayA:   frame[match.PlayerA],
		FieldDisplayB:   frame[match.PlayerB],
	})
}

// FromStruct decodes a GetState response. Derived fields are ignored.
func FromStruct(st *structpb.Struct) (Snapshot, error) {
	fields := st.GetFields()

	for _, name := range []string{
		FieldRemainingA, FieldRemainingB,
		FieldRunningA, FieldRunningB,
		FieldPaused, FieldBudget, FieldMatchID,
	} {
		if _, ok := fields[name]; !ok {
			return Snapshot{}, fmt.Errorf("%s: %w", name, errMissingField)
		}
	}

	return Snapshot{
		MatchID: fields[FieldMatchID].GetStringValue(),
		State: match.State{
			Remaining: [2]int{
				int(fields[FieldRemainingA].GetNumberValue()),
				int(fields[FieldRemainingB].GetNumberValue()),
			},
			Running: [2]bool{
				fields[FieldRunningA].GetBoolValue(),
				fields[FieldRunningB].GetBoolValue(),
			},
			Paused: fields[FieldPaused].GetBoolValue(),
			Budget: int(fields[FieldBudget].GetNumberValue()),
		},
	}, nil
}
