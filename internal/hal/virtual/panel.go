// Package virtual provides a software button panel for the host simulator.
//
// A press is latched and reported as pressed for exactly the two reads the
// debouncer makes (sample and confirmation), so one press produces one event
// no matter when it arrives within a cycle. Presses come from stdin, a serial
// port or the remote API; all of them only touch the latches.
//
// A press made during the period wait stays latched and is taken by the next
// cycle, as a held hardware button would be. A press made during an expiry
// alert is dropped: the loop flushes the panel when the alert ends.
package virtual

import (
	"sync"

	"github.com/oshokin/chess-clock/internal/domain/match"
)

// confirmReads is how many pressed reads one press yields.
const confirmReads = 2

// Panel is a set of three latched virtual buttons.
type Panel struct {
	// mu protects latches.
	mu sync.Mutex
	// latches holds the pressed reads left per button.
	latches [len(match.Buttons)]int
}

// NewPanel creates a panel with every button released.
func NewPanel() *Panel {
	return new(Panel)
}

// Press latches b until the debouncer has confirmed it.
func (p *Panel) Press(b match.Button) {
	if int(b) >= len(p.latches) {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.latches[b] = confirmReads
}

// ReadButton reports b as pressed while its latch lasts.
func (p *Panel) ReadButton(b match.Button) match.Level {
	if int(b) >= len(p.latches) {
		return match.LevelReleased
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.latches[b] == 0 {
		return match.LevelReleased
	}

	p.latches[b]--

	return match.LevelPressed
}

// Flush releases every latched button.
func (p *Panel) Flush() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.latches = [len(match.Buttons)]int{}
}
