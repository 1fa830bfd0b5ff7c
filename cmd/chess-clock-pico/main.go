//go:build tinygo

// Command chess-clock-pico is the chess clock firmware for a Raspberry Pi
// Pico. Build it with:
//
//	tinygo flash -target pico ./cmd/chess-clock-pico
package main

import (
	"context"

	"github.com/oshokin/chess-clock/internal/cycle"
	"github.com/oshokin/chess-clock/internal/hal/pico"
)

func main() {
	log := cycle.PrintLogger{}

	board, err := pico.Configure()
	if err != nil {
		log.Errorf("configure board: %v", err)

		// Nothing to blink without a board.
		select {}
	}

	loop, err := cycle.New(
		cycle.DefaultSettings(),
		cycle.Peripherals{
			Buttons:   board,
			Display:   board,
			Buzzer:    board,
			Indicator: board,
		},
		cycle.WithLogger(log),
	)
	if err != nil {
		log.Errorf("build loop: %v", err)
		board.Halt()
	}

	ctx := context.Background()

	if err = loop.Boot(ctx); err != nil {
		log.Errorf("%v", err)
		board.Halt()
	}

	if err = loop.Run(ctx); err != nil {
		log.Errorf("%v", err)
	}

	board.Halt()
}
