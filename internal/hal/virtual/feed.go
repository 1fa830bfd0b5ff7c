package virtual

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/tarm/serial"

	"github.com/oshokin/chess-clock/internal/domain/match"
	"github.com/oshokin/chess-clock/internal/logger"
)

// DefaultSerialBaud is the baud rate of the serial button panel.
const DefaultSerialBaud = 115200

// Feed reads button names from r and presses them on p until r is exhausted
// or ctx ends. Input is split on whitespace; single letters may be run
// together ("ab" presses A then B). Unknown words are logged and skipped.
func Feed(ctx context.Context, r io.Reader, p *Panel) error {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}

		for _, name := range splitWord(scanner.Text()) {
			b, err := match.ParseButton(name)
			if err != nil {
				logger.WarnKV(ctx, "Ignoring panel input", "input", name, "error", err)

				continue
			}

			logger.DebugKV(ctx, "Panel button pressed", "button", b.String())
			p.Press(b)
		}
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read panel input: %w", err)
	}

	return nil
}

// splitWord expands a run of single-letter presses into separate names.
func splitWord(word string) []string {
	if strings.EqualFold(word, match.ButtonControl.String()) {
		return []string{word}
	}

	names := make([]string, 0, len(word))

	for _, r := range word {
		if unicode.IsLetter(r) {
			names = append(names, string(r))
		}
	}

	return names
}

// OpenSerial opens a serial port whose peer sends button letters.
func OpenSerial(name string, baud int) (io.ReadCloser, error) {
	if baud <= 0 {
		baud = DefaultSerialBaud
	}

	port, err := serial.OpenPort(&serial.Config{
		Name: name,
		Baud: baud,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial panel %s: %w", name, err)
	}

	return port, nil
}
