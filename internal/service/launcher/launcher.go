package launcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/lmcosta/panel-bootstrap/internal/config"
	"github.com/lmcosta/panel-bootstrap/internal/envfile"
	"github.com/lmcosta/panel-bootstrap/internal/logger"
)

// Options are inputs accepted by the launcher entry points.
type Options struct {
	// ConfigPath is the optional path to the tool settings YAML file.
	ConfigPath string
	// Wait keeps the panel process attached and waits until it answers HTTP
	// or exits. Off by default: the normal launch is fire-and-forget.
	Wait bool
	// WaitTimeout bounds the supervised wait. Zero means the configured default.
	WaitTimeout time.Duration
}

var (
	// errAlreadyRunning is returned when the pid file names a live process.
	errAlreadyRunning = errors.New("panel is already running")
	// errEarlyExit is returned in supervised mode when the panel dies before
	// answering HTTP.
	errEarlyExit = errors.New("panel exited before becoming healthy")
	// errHealthTimeout is returned in supervised mode when the panel never
	// answers within the configured window.
	errHealthTimeout = errors.New("panel did not answer within the health timeout")
)

// healthPollInterval is how often supervised mode probes the panel.
const healthPollInterval = 500 * time.Millisecond

// logFilePermissions applies to the freshly truncated log file.
const logFilePermissions os.FileMode = 0o644

// Run launches the panel application in the background with stdout and
// stderr combined into the log file, which is truncated on every launch.
// By default the process is released immediately and its exit code is never
// observed; failures after detach only show up in the log file.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "launcher")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if pid, running := runningPid(cfg.PidFile, panelExecutable(cfg)); running {
		return fmt.Errorf("pid %d: %w", pid, errAlreadyRunning)
	}

	logFile, err := openLog(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	// The child gets its own descriptor on Start; the parent's handle is
	// closed before returning either way.
	cmd := exec.Command(cfg.PythonInterpreter, cfg.AppEntrypoint) //nolint:gosec // Interpreter and entrypoint come from the operator's own settings.
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.Env = childEnv(cfg.EnvFile)

	if err = cmd.Start(); err != nil {
		_ = logFile.Close()

		return fmt.Errorf("start panel: %w", err)
	}

	_ = logFile.Close()

	pid := cmd.Process.Pid
	if err = writePidFile(cfg.PidFile, pid); err != nil {
		logger.WarnKV(ctx, "Could not record pid file", "error", err)
	}

	logger.InfoKV(ctx, "Panel started", "pid", pid, "log", cfg.LogFile)

	if !opts.Wait {
		// Fire-and-forget: detach and return without observing the exit code.
		if err = cmd.Process.Release(); err != nil {
			return fmt.Errorf("release panel process: %w", err)
		}

		return nil
	}

	timeout := opts.WaitTimeout
	if timeout <= 0 {
		timeout = cfg.HealthTimeout
	}

	return supervise(ctx, cmd, cfg, timeout)
}

// supervise keeps the launched process attached until it either answers
// HTTP on its bind address or exits, surfacing the exit code the default
// mode deliberately ignores.
func supervise(ctx context.Context, cmd *exec.Cmd, cfg *config.Config, timeout time.Duration) error {
	healthURL := "http://" + config.HostPort(bindAddress(cfg.EnvFile)) + "/"

	logger.InfoKV(ctx, "Waiting for panel to answer", "url", healthURL, "timeout", timeout.String())

	waitCh := make(chan error, 1)

	go func() {
		waitCh <- cmd.Wait()
	}()

	ticker := time.NewTicker(healthPollInterval)
	defer ticker.Stop()

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-waitCh:
			if err != nil {
				return fmt.Errorf("%w: %v", errEarlyExit, err)
			}

			return errEarlyExit
		case <-deadline.C:
			return errHealthTimeout
		case <-ticker.C:
			if probe(ctx, healthURL) {
				logger.InfoKV(ctx, "Panel is up", "url", healthURL)

				// Leave the panel running; from here on it is on its own.
				// No Release here: the waiter goroutine still owns cmd.Wait,
				// and both go away when this process exits.
				return nil
			}
		}
	}
}

// probe performs one health request. Any HTTP answer counts as alive.
func probe(ctx context.Context, url string) bool {
	reqCtx, cancel := context.WithTimeout(ctx, healthPollInterval)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return false
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}

	_ = resp.Body.Close()

	return true
}

// bindAddress derives the panel's bind host and port from its .env file,
// falling back to the panel's own defaults when the file is absent.
func bindAddress(envPath string) (string, int) {
	settings, err := envfile.LoadSettings(envPath)
	if err != nil {
		return "0.0.0.0", 5000
	}

	return settings.Host, settings.Port
}

// childEnv builds the launched process environment: the parent environment
// plus the .env file's pairs. Values already present in the parent
// environment win, matching dotenv semantics inside the panel itself.
func childEnv(envPath string) []string {
	env := os.Environ()

	values, err := godotenv.Read(envPath)
	if err != nil {
		return env
	}

	present := make(map[string]struct{}, len(env))

	for _, kv := range env {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				present[kv[:i]] = struct{}{}
				break
			}
		}
	}

	for key, value := range values {
		if _, found := present[key]; found {
			continue
		}

		env = append(env, key+"="+value)
	}

	return env
}

// openLog opens the log file for writing, truncating previous content so the
// log only ever holds the latest run.
func openLog(path string) (*os.File, error) {
	return os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, logFilePermissions)
}
