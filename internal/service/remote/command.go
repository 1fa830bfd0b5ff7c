package remote

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	api "github.com/oshokin/chess-clock/internal/api/grpc/clock"
	"github.com/oshokin/chess-clock/internal/config"
	"github.com/oshokin/chess-clock/internal/domain/match"
	"github.com/oshokin/chess-clock/internal/logger"
	"github.com/oshokin/chess-clock/internal/presenter"
)

// Options configures the remote commands.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string
	// ServerAddress overrides the listen address from config when specified.
	ServerAddress string
	// Output receives the status report, os.Stdout when nil.
	Output io.Writer
	// Interval repeats the status report until canceled when positive.
	Interval time.Duration
}

// connect loads the settings and dials the simulator.
func connect(ctx context.Context, opts *Options) (context.Context, *Client, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return ctx, nil, fmt.Errorf("load settings: %w", err)
	}

	// Use server address from options if provided, otherwise use config.
	serverAddress := cfg.ListenAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	client, err := Dial(serverAddress, WithCallTimeout(cfg.CallTimeout))
	if err != nil {
		return ctx, nil, err
	}

	return logger.WithKV(ctx, "server_address", serverAddress), client, nil
}

// Press presses the named buttons in order, one call each.
func Press(ctx context.Context, opts *Options, names ...string) error {
	ctx = logger.WithName(ctx, "chess-clock-press")

	buttons := make([]match.Button, 0, len(names))

	for _, name := range names {
		button, err := match.ParseButton(name)
		if err != nil {
			return err
		}

		buttons = append(buttons, button)
	}

	ctx, client, err := connect(ctx, opts)
	if err != nil {
		return err
	}

	// Close connection on function exit.
	defer func() {
		_ = client.Close()
	}()

	for _, button := range buttons {
		if err = client.Press(ctx, button); err != nil {
			return err
		}

		logger.InfoKV(ctx, "Button pressed", "button", button.String())
	}

	return nil
}

// Status prints the live match state once, or every Interval until ctx ends.
func Status(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "chess-clock-status")

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	ctx, client, err := connect(ctx, opts)
	if err != nil {
		return err
	}

	// Close connection on function exit.
	defer func() {
		_ = client.Close()
	}()

	report := func() error {
		snapshot, getErr := client.GetState(ctx)
		if getErr != nil {
			return getErr
		}

		_, getErr = io.WriteString(out, FormatSnapshot(snapshot))

		return getErr
	}

	if err = report(); err != nil || opts.Interval <= 0 {
		return err
	}

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err = report(); err != nil {
				if ctx.Err() != nil {
					return nil
				}

				logger.ErrorKV(ctx, "Status request failed", "error", err)
			}
		}
	}
}

// FormatSnapshot renders a snapshot as a short human readable report.
func FormatSnapshot(s api.Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "match %s: %s\n", s.MatchID, phase(s.State))

	active, running := s.State.Active()

	for i, line := range presenter.Frame(s.State) {
		marker := " "
		if running && match.Player(i) == active {
			marker = "*"
		}

		fmt.Fprintf(&b, "%s %s\n", marker, line)
	}

	return b.String()
}

// phase names the state of the match.
func phase(s match.State) string {
	switch {
	case s.Paused && s == s.Reset():
		return "ready"
	case s.Paused:
		return "paused"
	default:
		return "running"
	}
}
