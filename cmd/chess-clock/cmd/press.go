package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/chess-clock/internal/service/remote"
)

var (
	// pressAddress overrides the simulator address.
	pressAddress string

	// pressCmd presses buttons on a running simulator.
	pressCmd = &cobra.Command{
		Use:   "press button...",
		Short: "Press buttons on a running simulator.",
		Long: `Presses the named buttons on a running simulator, in order.

Buttons are a, b and control (or c). The simulator address is taken from
--address or from listen_address in the configuration file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &remote.Options{
				ConfigPath:    configPath,
				ServerAddress: pressAddress,
			}

			return remote.Press(ctx, options, args...)
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	pressCmd.Flags().StringVarP(&pressAddress, "address", "a", "", "simulator address (host:port)")
}
