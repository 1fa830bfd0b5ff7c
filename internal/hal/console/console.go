// Package console implements the simulator's output peripherals on a
// terminal: the display is drawn as a framed text box, and the LED and
// buzzer states are shown in a status line under it.
package console

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/oshokin/chess-clock/internal/domain/match"
	"github.com/oshokin/chess-clock/internal/logger"
)

const (
	// DefaultWidth is the number of text columns of the simulated display
	// (128 px of 6x8 glyphs on the real OLED, rounded down).
	DefaultWidth = 21

	// clearScreen moves the cursor home and clears the terminal.
	clearScreen = "\x1b[H\x1b[2J"
)

// Board is a terminal display with LED and buzzer status.
type Board struct {
	// mu serializes writes to out.
	mu sync.Mutex
	// ctx carries the logger for peripheral events.
	ctx context.Context //nolint:containedctx // Peripheral calls have no context of their own.
	// out receives the drawn frames.
	out io.Writer
	// width is the number of columns inside the frame.
	width int
	// clear redraws in place using ANSI escapes.
	clear bool
	// lines is the last rendered content.
	lines []string
	// color is the current LED color.
	color match.Color
	// tone is the current buzzer state.
	tone bool
}

// Option configures a Board.
type Option func(*Board)

// WithClear redraws every frame in place.
func WithClear(clear bool) Option {
	return func(b *Board) {
		b.clear = clear
	}
}

// WithWidth sets the number of columns inside the frame.
func WithWidth(width int) Option {
	return func(b *Board) {
		if width > 0 {
			b.width = width
		}
	}
}

// New creates a Board drawing to out. Peripheral events are logged with the logger from ctx.
func New(ctx context.Context, out io.Writer, opts ...Option) *Board {
	b := &Board{
		ctx:   logger.WithName(ctx, "console"),
		out:   out,
		width: DefaultWidth,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Render replaces the display content and redraws.
func (b *Board) Render(lines []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lines = append(b.lines[:0], lines...)

	return b.draw()
}

// Tone switches the simulated buzzer and redraws the status line.
func (b *Board) Tone(on bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tone = on
	logger.DebugKV(b.ctx, "Buzzer switched", "on", on)

	return b.draw()
}

// SetColor switches the simulated LED and redraws the status line.
func (b *Board) SetColor(c match.Color) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.color = c
	logger.DebugKV(b.ctx, "Indicator switched", "color", c.String())

	return b.draw()
}

// draw writes the frame and status line. Callers hold mu.
func (b *Board) draw() error {
	var sb strings.Builder

	if b.clear {
		sb.WriteString(clearScreen)
	}

	border := "+" + strings.Repeat("-", b.width) + "+\n"

	sb.WriteString(border)

	for _, line := range b.lines {
		if len(line) > b.width {
			line = line[:b.width]
		}

		fmt.Fprintf(&sb, "|%-*s|\n", b.width, line)
	}

	sb.WriteString(border)

	buzzer := "off"
	if b.tone {
		buzzer = "ON"
	}

	fmt.Fprintf(&sb, " LED: %-6s BUZZER: %s\n", b.color, buzzer)

	if _, err := io.WriteString(b.out, sb.String()); err != nil {
		return fmt.Errorf("write console frame: %w", err)
	}

	return nil
}
