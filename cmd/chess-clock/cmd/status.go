package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/chess-clock/internal/service/remote"
)

var (
	// statusAddress overrides the simulator address.
	statusAddress string
	// watchInterval repeats the report when positive.
	watchInterval time.Duration

	// statusCmd prints the state of a running simulator.
	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Print the match state of a running simulator.",
		Long: `Prints the match identifier, the phase and both readouts of a running
simulator. The running side is marked with "*". With --watch the report is
repeated until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &remote.Options{
				ConfigPath:    configPath,
				ServerAddress: statusAddress,
				Output:        cmd.OutOrStdout(),
				Interval:      watchInterval,
			}

			return remote.Status(ctx, options)
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	statusCmd.Flags().StringVarP(&statusAddress, "address", "a", "", "simulator address (host:port)")
	statusCmd.Flags().DurationVarP(&watchInterval, "watch", "w", 0, "repeat the report at this interval")
}
