package device

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/mitchellh/go-ps"
	"google.golang.org/grpc"

	api "github.com/oshokin/chess-clock/internal/api/grpc/clock"
	"github.com/oshokin/chess-clock/internal/config"
	"github.com/oshokin/chess-clock/internal/cycle"
	"github.com/oshokin/chess-clock/internal/hal/console"
	"github.com/oshokin/chess-clock/internal/hal/framebuffer"
	"github.com/oshokin/chess-clock/internal/hal/textdisplay"
	"github.com/oshokin/chess-clock/internal/hal/virtual"
	"github.com/oshokin/chess-clock/internal/logger"
	"github.com/oshokin/chess-clock/internal/presenter"
	"github.com/oshokin/chess-clock/internal/version"
)

// Options controls the simulator process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress overrides the gRPC listen address from config.
	ListenAddress string
	// SerialPort overrides the serial button panel from config.
	SerialPort string
	// Input is read for button letters when set, usually os.Stdin.
	Input io.Reader
	// Output receives the console board, os.Stdout when nil.
	Output io.Writer
	// Clear redraws the console board in place.
	Clear bool
	// SnapshotPath mirrors the OLED framebuffer to a PNG file when set.
	SnapshotPath string
	// AllowMultiple skips the single-instance check.
	AllowMultiple bool
	// LockPath is the PID file of the single-instance check, a per-user
	// file in the temp directory when empty.
	LockPath string
	// Clock drives every wait of the loop, the real clock when nil.
	Clock clockwork.Clock
}

// Run starts the simulator and blocks until ctx is canceled or the loop fails.
//
//nolint:cyclop,funlen // Wiring reads best top to bottom.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "chess-clock")

	// Load configuration first to get loop settings.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}

	if !opts.AllowMultiple {
		lockPath := opts.LockPath
		if lockPath == "" {
			lockPath = defaultLockPath()
		}

		lock, lockErr := ensureSingleInstance(lockPath, ps.FindProcess, currentExecutable(), os.Getpid())
		if lockErr != nil {
			return lockErr
		}

		defer func() {
			if releaseErr := lock.Release(); releaseErr != nil {
				logger.WarnKV(ctx, "Instance lock not released", "error", releaseErr)
			}
		}()
	}

	listenAddress := cfg.ListenAddress
	if opts.ListenAddress != "" {
		listenAddress = opts.ListenAddress
	}

	serialPort := cfg.SerialPort
	if opts.SerialPort != "" {
		serialPort = opts.SerialPort
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	clk := opts.Clock
	if clk == nil {
		clk = clockwork.NewRealClock()
	}

	var wg sync.WaitGroup

	defer wg.Wait()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Virtual peripherals: the console board shows everything, the
	// framebuffer renders the OLED the firmware drives.
	panel := virtual.NewPanel()
	board := console.New(ctx, out, console.WithClear(opts.Clear))
	oled := textdisplay.New(framebuffer.New(framebuffer.DefaultWidth, framebuffer.DefaultHeight, opts.SnapshotPath))

	svc := newService(panel, cfg.InitialSeconds)

	loop, err := cycle.New(
		cfg.Settings(),
		cycle.Peripherals{
			Buttons:   panel,
			Display:   presenter.MultiDisplay(board, oled),
			Buzzer:    board,
			Indicator: board,
		},
		cycle.WithClock(clk),
		cycle.WithLogger(logger.FromContext(ctx)),
		cycle.WithObserver(svc.observe),
	)
	if err != nil {
		return fmt.Errorf("build loop: %w", err)
	}

	if opts.Input != nil {
		// Stdin reads block past cancellation, so this feed is not waited for.
		go runFeed(ctx, "input", opts.Input, panel)
	}

	if serialPort != "" {
		port, openErr := virtual.OpenSerial(serialPort, cfg.SerialBaud)
		if openErr != nil {
			return openErr
		}

		defer func() {
			_ = port.Close()
		}()

		wg.Add(1)

		go func() {
			defer wg.Done()

			runFeed(ctx, serialPort, port, panel)
		}()
	}

	if listenAddress != "" {
		lc := net.ListenConfig{}

		lis, listenErr := lc.Listen(ctx, "tcp", listenAddress)
		if listenErr != nil {
			return fmt.Errorf("listen on %s: %w", listenAddress, listenErr)
		}

		grpcServer := grpc.NewServer()
		api.Register(grpcServer, api.NewServer(svc))

		logger.InfoKV(ctx, "Chess clock API listening", "listen_address", lis.Addr().String())

		wg.Add(1)

		go func() {
			defer wg.Done()

			serve(ctx, grpcServer, lis)
		}()
	}

	logger.InfoKV(ctx, "Chess clock started",
		"version", version.Short(),
		"match_id", svc.Snapshot(ctx).MatchID,
		"initial_seconds", cfg.InitialSeconds,
		"cycle_period", cfg.CyclePeriod.String(),
	)

	if err = loop.Boot(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}

		return err
	}

	err = loop.Run(ctx)

	// Stop the API and the feeds before returning.
	cancel()

	if err != nil {
		return fmt.Errorf("run loop: %w", err)
	}

	logger.Info(ctx, "Chess clock stopped")

	return nil
}

// serve runs the gRPC server until ctx ends.
func serve(ctx context.Context, grpcServer *grpc.Server, lis net.Listener) {
	// Done channel is closed after GracefulStop finishes to ensure we block
	// until the server fully stops before returning.
	done := make(chan struct{})

	go func() {
		<-ctx.Done()
		grpcServer.GracefulStop()
		close(done)
	}()

	if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		logger.ErrorKV(ctx, "Chess clock API failed", "error", err)
	}

	<-done
	logger.Info(ctx, "Chess clock API stopped")
}

// runFeed presses panel buttons read from r until it ends and logs the outcome.
func runFeed(ctx context.Context, source string, r io.Reader, panel *virtual.Panel) {
	ctx = logger.WithKV(ctx, "source", source)

	if err := virtual.Feed(ctx, r, panel); err != nil && ctx.Err() == nil {
		logger.ErrorKV(ctx, "Button input failed", "error", err)

		return
	}

	logger.DebugKV(ctx, "Button input closed")
}
