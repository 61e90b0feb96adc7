package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lmcosta/panel-bootstrap/internal/service/deps"
)

var (
	// pythonOverride replaces the configured interpreter for this run.
	pythonOverride string
	// requirementsOverride replaces the configured manifest for this run.
	requirementsOverride string

	// depsCmd installs the panel's Python dependencies without launching anything.
	depsCmd = &cobra.Command{
		Use:   "deps",
		Short: "Install the panel's Python dependencies.",
		Long: `Upgrades pip and installs every dependency from the manifest file.
A missing manifest is a fatal error. Safe to re-run.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &deps.Options{
				ConfigPath:   configPath,
				Python:       pythonOverride,
				Requirements: requirementsOverride,
			}

			return deps.Run(ctx, options)
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	depsCmd.Flags().StringVar(&pythonOverride, "python", "", "interpreter override")
	depsCmd.Flags().StringVarP(&requirementsOverride, "requirements", "r", "", "dependency manifest override")

	rootCmd.AddCommand(depsCmd)
}
