package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/lmcosta/panel-bootstrap/internal/config"
	"github.com/lmcosta/panel-bootstrap/internal/envfile"
	"github.com/lmcosta/panel-bootstrap/internal/logger"
	"github.com/lmcosta/panel-bootstrap/internal/service/deps"
	"github.com/lmcosta/panel-bootstrap/internal/service/launcher"
)

// Options are inputs accepted by the bootstrap entry point.
type Options struct {
	// ConfigPath is the optional path to the tool settings YAML file.
	ConfigPath string
	// SkipDeps skips the pip step for fast re-runs.
	SkipDeps bool
	// Wait launches the panel in supervised mode instead of fire-and-forget.
	Wait bool
	// WaitTimeout bounds the supervised wait. Zero means the configured default.
	WaitTimeout time.Duration
}

// Run executes the full bootstrap sequence: install dependencies, materialize
// the default .env if absent, launch the panel. The sequence stops at the
// first error, so a failed install never reaches the launch step and never
// touches the log file.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "bootstrap")

	if opts.SkipDeps {
		logger.Info(ctx, "Skipping dependency installation")
	} else {
		if err := deps.Run(ctx, &deps.Options{ConfigPath: opts.ConfigPath}); err != nil {
			return fmt.Errorf("install dependencies: %w", err)
		}
	}

	cfg, err := config.Load(opts.ConfigPath)
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
		logger.InfoKV(ctx, "Keeping existing env file", "path", cfg.EnvFile)
	}

	launchOptions := &launcher.Options{
		ConfigPath:  opts.ConfigPath,
		Wait:        opts.Wait,
		WaitTimeout: opts.WaitTimeout,
	}

	if err = launcher.Run(ctx, launchOptions); err != nil {
		return fmt.Errorf("launch panel: %w", err)
	}

	return nil
}
