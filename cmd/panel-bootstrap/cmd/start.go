package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lmcosta/panel-bootstrap/internal/service/launcher"
)

var (
	// startWait keeps the panel attached until it answers HTTP.
	startWait bool
	// startWaitTimeout bounds the supervised wait.
	startWaitTimeout time.Duration

	// startCmd launches the panel without touching dependencies or the env file.
	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Launch the panel in the background.",
		Long: `Starts the panel web application as a detached background process.
Combined stdout/stderr goes to the log file, which is truncated on every
launch. Without --wait the exit code is never observed.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &launcher.Options{
				ConfigPath:  configPath,
				Wait:        startWait,
				WaitTimeout: startWaitTimeout,
			}

			return launcher.Run(ctx, options)
		},
	}

	// statusCmd reports whether the recorded panel process is alive.
	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Report whether the panel is running.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launcher.Status(context.Background(), &launcher.Options{ConfigPath: configPath})
		},
	}

	// stopCmd terminates the recorded panel process.
	stopCmd = &cobra.Command{
		Use:   "stop",
		Short: "Stop the running panel.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launcher.Stop(context.Background(), &launcher.Options{ConfigPath: configPath})
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	startCmd.Flags().BoolVar(&startWait, "wait", false, "wait until the panel answers HTTP instead of detaching")
	startCmd.Flags().
		DurationVar(&startWaitTimeout, "wait-timeout", 0, "supervised wait timeout (0 uses the configured default)")

	rootCmd.AddCommand(startCmd, statusCmd, stopCmd)
}
