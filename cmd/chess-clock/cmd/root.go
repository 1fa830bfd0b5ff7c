package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/chess-clock/internal/config"
	"github.com/oshokin/chess-clock/internal/service/device"
	"github.com/oshokin/chess-clock/internal/version"
)

var (
	// configPath to the configuration YAML file, shared by every subcommand.
	configPath string
	// serialPort overrides the serial button panel.
	serialPort string
	// snapshotPath mirrors the OLED to a PNG file.
	snapshotPath string
	// noInput disables button letters on stdin.
	noInput bool
	// redraw redraws the board in place.
	redraw bool
	// allowMultiple skips the single-instance check.
	allowMultiple bool

	// rootCmd runs the simulator.
	rootCmd = &cobra.Command{
		Use:   "chess-clock [listen-address]",
		Short: "Run the two-player chess clock simulator.",
		Long: `Runs the chess clock on a simulated board.

The display, the RGB LED and the buzzer are drawn on the terminal. Buttons
are pressed by typing their letters on stdin (a, b, c or "control"), over an
optional serial panel, or remotely with "chess-clock press".

A press of A starts B's clock, a press of B starts A's clock. Control pauses
a running match and resets a paused one. When a side reaches zero the buzzer
sounds, the loser is announced and the match resets.

The remote API is served when a listen address is given as argument or in
the configuration file (e.g., :50051).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use listen address argument if provided, otherwise rely on config.
			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			options := &device.Options{
				ConfigPath:    configPath,
				ListenAddress: listenAddress,
				SerialPort:    serialPort,
				Output:        cmd.OutOrStdout(),
				Clear:         redraw,
				SnapshotPath:  snapshotPath,
				AllowMultiple: allowMultiple,
			}

			if !noInput {
				options.Input = cmd.InOrStdin()
			}

			return device.Run(ctx, options)
		},
	}
)

// Execute runs the chess-clock CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")

	rootCmd.Flags().StringVarP(&serialPort, "serial", "s", "", "serial device sending button letters")
	rootCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "write every OLED frame to this PNG file")
	rootCmd.Flags().BoolVar(&noInput, "no-input", false, "do not read button letters from stdin")
	rootCmd.Flags().BoolVar(&redraw, "clear", true, "redraw the board in place")
	rootCmd.Flags().BoolVar(&allowMultiple, "allow-multiple", false, "skip the single-instance check")

	rootCmd.AddCommand(pressCmd, statusCmd)
}
