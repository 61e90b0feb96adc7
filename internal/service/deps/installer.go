package deps

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/lmcosta/panel-bootstrap/internal/config"
	"github.com/lmcosta/panel-bootstrap/internal/logger"
)

// Options are inputs accepted by the dependency installer.
type Options struct {
	// ConfigPath is the optional path to the tool settings YAML file.
	ConfigPath string
	// Python overrides the configured interpreter.
	Python string
	// Requirements overrides the configured dependency manifest path.
	Requirements string
}

// errManifestNotFound is returned when the dependency manifest is missing.
// This aborts the whole bootstrap before any subprocess runs.
var errManifestNotFound = errors.New("dependency manifest not found")

// Run upgrades pip and installs the manifest. pip's output goes straight to
// the terminal; any non-zero exit propagates as an error. Safe to re-run.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "deps")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	python := cfg.PythonInterpreter
	if opts.Python != "" {
		python = opts.Python
	}

	manifest := cfg.RequirementsFile
	if opts.Requirements != "" {
		manifest = opts.Requirements
	}

	manifest = filepath.Clean(manifest)
	if _, err = os.Stat(manifest); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", manifest, errManifestNotFound)
		}

		return fmt.Errorf("stat manifest: %w", err)
	}

	logger.InfoKV(ctx, "Upgrading pip", "python", python)

	if err = runPip(ctx, python, "install", "--upgrade", "pip"); err != nil {
		return fmt.Errorf("upgrade pip: %w", err)
	}

	logger.InfoKV(ctx, "Installing dependencies", "manifest", manifest)

	if err = runPip(ctx, python, "install", "-r", manifest); err != nil {
		return fmt.Errorf("install dependencies: %w", err)
	}

	logger.Info(ctx, "Dependencies are up to date")

	return nil
}

// runPip executes `<python> -m pip <args>` with output inherited from the
// terminal, so pip's progress is visible to the operator.
func runPip(ctx context.Context, python string, args ...string) error {
	cmd := exec.CommandContext(ctx, python, pipArgs(args...)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

// pipArgs prefixes pip arguments with the module invocation.
func pipArgs(args ...string) []string {
	return append([]string{"-m", "pip"}, args...)
}
