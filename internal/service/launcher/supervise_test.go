package launcher

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lmcosta/panel-bootstrap/internal/config"
)

// superviseFixture lays out a temp directory with tool settings pointing at
// a shell script standing in for the panel, plus an .env binding the panel
// to the given host and port.
func superviseFixture(t *testing.T, script, host string, port int) (settingsPath, pidPath string) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fixture runs the panel stand-in through /bin/sh")
	}

	dir := t.TempDir()

	scriptPath := filepath.Join(dir, "app.sh")
	require.NoError(t, os.WriteFile(scriptPath, []byte(script), 0o755))

	envPath := filepath.Join(dir, ".env")
	envContents := "FLASK_RUN_HOST=" + host + "\nFLASK_RUN_PORT=" + strconv.Itoa(port) + "\n"
	require.NoError(t, os.WriteFile(envPath, []byte(envContents), 0o600))

	pidPath = filepath.Join(dir, "panel.pid")
	settingsPath = filepath.Join(dir, "panel-bootstrap.yaml")
	cfg := &config.Config{
		PythonInterpreter: "/bin/sh",
		AppEntrypoint:     scriptPath,
		EnvFile:           envPath,
		LogFile:           filepath.Join(dir, "panel.log"),
		PidFile:           pidPath,
	}
	require.NoError(t, config.Save(settingsPath, cfg))

	// The stand-in may outlive the test on the non-exiting paths.
	t.Cleanup(func() {
		pid, err := readPidFile(pidPath)
		if err != nil {
			return
		}

		if process, err := os.FindProcess(pid); err == nil {
			_ = process.Kill()
		}
	})

	return settingsPath, pidPath
}

// closedPort reserves a port and releases it, so probes against it fail fast.
func closedPort(t *testing.T) int {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	return port
}

// TestRun_WaitSurfacesEarlyExit checks supervised mode reports a panel that
// dies before answering HTTP instead of staying silent like the default mode.
func TestRun_WaitSurfacesEarlyExit(t *testing.T) {
	t.Parallel()

	settingsPath, _ := superviseFixture(t, "#!/bin/sh\nexit 3\n", "127.0.0.1", closedPort(t))

	err := Run(context.Background(), &Options{
		ConfigPath:  settingsPath,
		Wait:        true,
		WaitTimeout: 10 * time.Second,
	})
	require.ErrorIs(t, err, errEarlyExit)
}

// TestRun_WaitTimesOut checks supervised mode gives up when the panel never
// answers on its bind address.
func TestRun_WaitTimesOut(t *testing.T) {
	t.Parallel()

	settingsPath, _ := superviseFixture(t, "#!/bin/sh\nsleep 30\n", "127.0.0.1", closedPort(t))

	err := Run(context.Background(), &Options{
		ConfigPath:  settingsPath,
		Wait:        true,
		WaitTimeout: time.Second,
	})
	require.ErrorIs(t, err, errHealthTimeout)
}

// TestRun_WaitSucceedsOnceHealthy checks supervised mode returns cleanly as
// soon as something answers HTTP on the panel's bind address, leaving the
// process running.
func TestRun_WaitSucceedsOnceHealthy(t *testing.T) {
	t.Parallel()

	// Stand-in for the listening panel: the launched script just sleeps
	// while the test server answers the health probes.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	serverURL, err := url.Parse(server.URL)
	require.NoError(t, err)

	port, err := strconv.Atoi(serverURL.Port())
	require.NoError(t, err)

	settingsPath, pidPath := superviseFixture(t, "#!/bin/sh\nsleep 30\n", serverURL.Hostname(), port)

	err = Run(context.Background(), &Options{
		ConfigPath:  settingsPath,
		Wait:        true,
		WaitTimeout: 10 * time.Second,
	})
	require.NoError(t, err)

	// The launch was recorded; the panel stand-in is still alive.
	pid, err := readPidFile(pidPath)
	require.NoError(t, err)
	require.Greater(t, pid, 0)
}
