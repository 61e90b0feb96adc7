package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lmcosta/panel-bootstrap/internal/config"
)

// TestRun_MissingManifestStopsBeforeLaunch verifies strict-fail ordering:
// a missing dependency manifest aborts the bootstrap before the env file is
// materialized and before the log file is touched.
func TestRun_MissingManifestStopsBeforeLaunch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	settingsPath := filepath.Join(dir, "panel-bootstrap.yaml")

	cfg := &config.Config{
		RequirementsFile: filepath.Join(dir, "requirements.txt"),
		EnvFile:          filepath.Join(dir, ".env"),
		LogFile:          filepath.Join(dir, "panel.log"),
		PidFile:          filepath.Join(dir, "panel.pid"),
	}
	require.NoError(t, config.Save(settingsPath, cfg))

	err := Run(context.Background(), &Options{ConfigPath: settingsPath})
	require.Error(t, err)

	// Neither the env file nor the log file were created.
	_, err = os.Stat(cfg.EnvFile)
	require.ErrorIs(t, err, os.ErrNotExist)
	_, err = os.Stat(cfg.LogFile)
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestRun_SkipDepsMaterializesEnv checks the env file appears with safe
// defaults when the deps step is skipped, even if the launch itself fails
// because there is no panel entrypoint in the directory.
func TestRun_SkipDepsMaterializesEnv(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	settingsPath := filepath.Join(dir, "panel-bootstrap.yaml")

	cfg := &config.Config{
		// An interpreter that cannot exist, so the launch step fails fast
		// without starting anything.
		PythonInterpreter: filepath.Join(dir, "no-such-python"),
		RequirementsFile:  filepath.Join(dir, "requirements.txt"),
		EnvFile:           filepath.Join(dir, ".env"),
		LogFile:           filepath.Join(dir, "panel.log"),
		PidFile:           filepath.Join(dir, "panel.pid"),
	}
	require.NoError(t, config.Save(settingsPath, cfg))

	err := Run(context.Background(), &Options{ConfigPath: settingsPath, SkipDeps: true})
	require.Error(t, err)

	contents, err := os.ReadFile(cfg.EnvFile)
	require.NoError(t, err)
	require.Contains(t, string(contents), "DRY_RUN=true")
	require.Contains(t, string(contents), "SPAPI_SIMULATE=true")
	require.Contains(t, string(contents), "SELLER_ID=\n")
}
