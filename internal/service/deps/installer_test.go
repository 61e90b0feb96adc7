package deps

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRun_MissingManifestIsFatal ensures the installer refuses to proceed
// without a manifest and fails before running anything.
func TestRun_MissingManifestIsFatal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	err := Run(context.Background(), &Options{
		ConfigPath:   filepath.Join(dir, "no-settings.yaml"),
		Requirements: filepath.Join(dir, "requirements.txt"),
	})
	require.ErrorIs(t, err, errManifestNotFound)
}

// TestPipArgs builds the module invocation prefix.
func TestPipArgs(t *testing.T) {
	t.Parallel()

	require.Equal(t,
		[]string{"-m", "pip", "install", "-r", "requirements.txt"},
		pipArgs("install", "-r", "requirements.txt"))
	require.Equal(t,
		[]string{"-m", "pip", "install", "--upgrade", "pip"},
		pipArgs("install", "--upgrade", "pip"))
}
