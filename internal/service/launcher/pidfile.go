package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/lmcosta/panel-bootstrap/internal/config"
	"github.com/lmcosta/panel-bootstrap/internal/logger"
)

// errNotRunning is returned by Stop when no live panel process is recorded.
var errNotRunning = errors.New("panel is not running")

// panelExecutable returns the process name the panel runs under: the
// interpreter's basename, since the panel is started as `<python> <entrypoint>`.
// Pids get recycled, so a recorded pid is only trusted when the live
// process's executable still matches.
func panelExecutable(cfg *config.Config) string {
	return filepath.Base(cfg.PythonInterpreter)
}

// pidFilePermissions applies to the pid file.
const pidFilePermissions os.FileMode = 0o600

// Status reports whether the recorded panel process is alive.
func Status(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "launcher")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	pid, err := readPidFile(cfg.PidFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info(ctx, "Panel is not running (no pid file)")
			return nil
		}

		return fmt.Errorf("read pid file: %w", err)
	}

	process, err := ps.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("find process: %w", err)
	}

	if process == nil || process.Executable() != panelExecutable(cfg) {
		logger.InfoKV(ctx, "Panel is not running (stale pid file)", "pid", pid)
		return nil
	}

	logger.InfoKV(ctx, "Panel is running", "pid", pid, "executable", process.Executable())

	return nil
}

// Stop terminates the recorded panel process and removes the pid file.
func Stop(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "launcher")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	pid, err := readPidFile(cfg.PidFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return errNotRunning
		}

		return fmt.Errorf("read pid file: %w", err)
	}

	process, err := ps.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("find process: %w", err)
	}

	// Never kill a process the pid file does not describe anymore: after pid
	// recycling the number may belong to something else entirely.
	if process == nil || process.Executable() != panelExecutable(cfg) {
		_ = os.Remove(cfg.PidFile)

		return fmt.Errorf("pid %d: %w", pid, errNotRunning)
	}

	runningProcess, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("find process: %w", err)
	}

	if err = runningProcess.Kill(); err != nil {
		return fmt.Errorf("kill pid %d: %w", pid, err)
	}

	if err = os.Remove(cfg.PidFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.WarnKV(ctx, "Could not remove pid file", "error", err)
	}

	logger.InfoKV(ctx, "Panel stopped", "pid", pid)

	return nil
}

// runningPid reports the pid recorded in the pid file if that process is
// still alive and still runs the expected executable. Stale pid files,
// including pids recycled by unrelated processes, are removed so a crashed
// panel does not block the next launch.
func runningPid(path, executable string) (int, bool) {
	pid, err := readPidFile(path)
	if err != nil {
		return 0, false
	}

	process, err := ps.FindProcess(pid)
	if err != nil || process == nil || process.Executable() != executable {
		_ = os.Remove(path)

		return 0, false
	}

	return pid, true
}

// writePidFile records the launched process pid.
func writePidFile(path string, pid int) error {
	return os.WriteFile(filepath.Clean(path), []byte(strconv.Itoa(pid)+"\n"), pidFilePermissions)
}

// readPidFile parses the recorded pid.
func readPidFile(path string) (int, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return 0, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(contents)))
	if err != nil {
		return 0, fmt.Errorf("parse pid file: %w", err)
	}

	return pid, nil
}
