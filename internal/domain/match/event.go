package match

import (
	"errors"
	"fmt"
	"strings"
)

// Button identifies one of the three physical buttons.
type Button uint8

const (
	// ButtonA ends player A's turn.
	ButtonA Button = iota
	// ButtonB ends player B's turn.
	ButtonB
	// ButtonControl pauses a running match or resets a paused one.
	ButtonControl
)

// Buttons lists the buttons in sampling priority order.
//
//nolint:gochecknoglobals // Read-only ordering shared by the input packages.
var Buttons = [3]Button{ButtonA, ButtonB, ButtonControl}

// ErrUnknownButton is returned when a button name cannot be parsed.
var ErrUnknownButton = errors.New("unknown button")

// String returns the lowercase button name.
func (b Button) String() string {
	switch b {
	case ButtonA:
		return "a"
	case ButtonB:
		return "b"
	case ButtonControl:
		return "control"
	default:
		return "INVALID"
	}
}

// Event returns the event a confirmed press of the button produces.
func (b Button) Event() ButtonEvent {
	switch b {
	case ButtonA:
		return EventPressA
	case ButtonB:
		return EventPressB
	case ButtonControl:
		return EventPressControl
	default:
		return EventNone
	}
}

// ParseButton converts "a", "b", "c" or "control" (any case) into a Button.
func ParseButton(s string) (Button, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a":
		return ButtonA, nil
	case "b":
		return ButtonB, nil
	case "c", "control":
		return ButtonControl, nil
	default:
		return ButtonA, fmt.Errorf("%q: %w", s, ErrUnknownButton)
	}
}

// Level is the logical level of a button after active-low inversion.
type Level uint8

const (
	// LevelReleased means the button is not held.
	LevelReleased Level = iota
	// LevelPressed means the button is held.
	LevelPressed
)

// ButtonEvent is the single input a cycle feeds into the state machine.
type ButtonEvent uint8

const (
	// EventNone means nothing was pressed this cycle.
	EventNone ButtonEvent = iota
	// EventPressA means player A pressed their button.
	EventPressA
	// EventPressB means player B pressed their button.
	EventPressB
	// EventPressControl means the control button was pressed.
	EventPressControl
)

func (e ButtonEvent) String() string {
	switch e {
	case EventNone:
		return "none"
	case EventPressA:
		return "press-a"
	case EventPressB:
		return "press-b"
	case EventPressControl:
		return "press-control"
	default:
		return "INVALID"
	}
}
