package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lmcosta/panel-bootstrap/internal/config"
	"github.com/lmcosta/panel-bootstrap/internal/logger"
	"github.com/lmcosta/panel-bootstrap/internal/service/bootstrap"
	"github.com/lmcosta/panel-bootstrap/internal/version"
)

var (
	// configPath stores the path to the tool settings YAML file.
	configPath string
	// logLevel sets the minimum log level for all commands.
	logLevel string
	// skipDeps skips the pip step for fast re-runs.
	skipDeps bool
	// wait keeps the panel attached until it answers HTTP.
	wait bool
	// waitTimeout bounds the supervised wait.
	waitTimeout time.Duration

	// rootCmd represents the base command: the full bootstrap sequence.
	rootCmd = &cobra.Command{
		Use:   "panel-bootstrap",
		Short: "Bootstrap the SP-API panel development environment.",
		Long: `Installs the panel's Python dependencies, materializes a default .env
configuration file if none exists, and launches the panel web application in
the background with its output redirected to the log file.

The default launch is fire-and-forget: the panel's exit code is never
observed and failures after detach only show up in the log file. Use --wait
to keep the process attached until it answers HTTP.`,
		Args: cobra.NoArgs,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &bootstrap.Options{
				ConfigPath:  configPath,
				SkipDeps:    skipDeps,
				Wait:        wait,
				WaitTimeout: waitTimeout,
			}

			return bootstrap.Run(ctx, options)
		},
	}
)

// Execute runs the panel-bootstrap CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to tool settings file")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "minimum log level")

	rootCmd.Flags().BoolVar(&skipDeps, "skip-deps", false, "skip the pip install step")
	rootCmd.Flags().BoolVar(&wait, "wait", false, "wait until the panel answers HTTP instead of detaching")
	rootCmd.Flags().DurationVar(&waitTimeout, "wait-timeout", 0, "supervised wait timeout (0 uses the configured default)")
}
