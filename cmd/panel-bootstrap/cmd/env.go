package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lmcosta/panel-bootstrap/internal/config"
	"github.com/lmcosta/panel-bootstrap/internal/envfile"
	"github.com/lmcosta/panel-bootstrap/internal/logger"
)

var (
	// envCmd materializes the default .env file when absent.
	envCmd = &cobra.Command{
		Use:   "env",
		Short: "Create the default .env file if it does not exist.",
		Long: `Writes the default panel configuration template on first run.
An existing file is never overwritten or merged; edit it by hand.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := logger.WithName(context.Background(), "env")

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load settings: %w", err)
			}

			created, err := envfile.Ensure(cfg.EnvFile)
			if err != nil {
				return fmt.Errorf("ensure env file: %w", err)
			}

			if created {
				logger.InfoKV(ctx, "Created default env file, fill in the SP-API credentials", "path", cfg.EnvFile)
			} else {
				logger.InfoKV(ctx, "Env file already exists, leaving it untouched", "path", cfg.EnvFile)
			}

			return nil
		},
	}

	// envShowCmd prints the effective panel settings with secrets masked.
	envShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Print the effective panel settings with secrets masked.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load settings: %w", err)
			}

			settings, err := envfile.LoadSettings(cfg.EnvFile)
			if err != nil {
				return fmt.Errorf("load env file: %w", err)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "bind:            %s\n", config.HostPort(settings.Host, settings.Port))
			_, _ = fmt.Fprintf(out, "max upload (MB): %d\n", settings.MaxUploadMB)
			_, _ = fmt.Fprintf(out, "dry run:         %t\n", settings.DryRun)
			_, _ = fmt.Fprintf(out, "simulate SP-API: %t\n", settings.SimulateSPAPI)
			_, _ = fmt.Fprintf(out, "seller id:       %s\n", orUnset(settings.SellerID))
			_, _ = fmt.Fprintf(out, "marketplace id:  %s\n", orUnset(settings.MarketplaceID))
			_, _ = fmt.Fprintf(out, "LWA client id:   %s\n", mask(settings.LWAClientID))
			_, _ = fmt.Fprintf(out, "LWA secret:      %s\n", mask(settings.LWAClientSecret))
			_, _ = fmt.Fprintf(out, "LWA token:       %s\n", mask(settings.LWARefreshToken))
			_, _ = fmt.Fprintf(out, "AWS key id:      %s\n", mask(settings.AWSAccessKeyID))
			_, _ = fmt.Fprintf(out, "AWS secret:      %s\n", mask(settings.AWSSecretAccessKey))
			_, _ = fmt.Fprintf(out, "AWS region:      %s\n", settings.AWSRegion)
			_, _ = fmt.Fprintf(out, "SP-API endpoint: %s\n", settings.SPAPIEndpoint)

			return nil
		},
	}
)

// mask hides secret values, leaving just enough to recognize which
// credential is configured.
func mask(s string) string {
	const visible = 4

	if s == "" {
		return "(unset)"
	}

	if len(s) <= visible {
		return strings.Repeat("*", len(s))
	}

	return s[:visible] + strings.Repeat("*", len(s)-visible)
}

// orUnset renders empty non-secret values readably.
func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}

	return s
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	envCmd.AddCommand(envShowCmd)
	rootCmd.AddCommand(envCmd)
}
