package envfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLoadSettings_Template loads the default template and checks the
// decoded values match the panel application's defaults.
func TestLoadSettings_Template(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".env")

	_, err := Ensure(path)
	require.NoError(t, err)

	s, err := LoadSettings(path)
	require.NoError(t, err)

	require.Equal(t, "dev-secret", s.FlaskSecret)
	require.Equal(t, 300, s.MaxUploadMB)
	require.Equal(t, "0.0.0.0", s.Host)
	require.Equal(t, 5000, s.Port)
	require.True(t, s.DryRun)
	require.True(t, s.SimulateSPAPI)
	require.Empty(t, s.SellerID)
	require.Empty(t, s.LWAClientID)
	require.Equal(t, "eu-west-1", s.AWSRegion)
	require.Equal(t, "https://sellingpartnerapi-eu.amazon.com", s.SPAPIEndpoint)
}

// TestLoadSettings_Overrides verifies explicit values win over defaults and
// boolean-as-string flags parse the way the panel parses them.
func TestLoadSettings_Overrides(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".env")
	contents := "FLASK_RUN_PORT=8080\nDRY_RUN=off\nSPAPI_SIMULATE=YES\nSELLER_ID=A2TESTSELLER\nMAX_CONTENT_LENGTH_MB=garbage\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	s, err := LoadSettings(path)
	require.NoError(t, err)

	require.Equal(t, 8080, s.Port)
	require.False(t, s.DryRun)
	require.True(t, s.SimulateSPAPI)
	require.Equal(t, "A2TESTSELLER", s.SellerID)
	// Unparsable numbers fall back, same as the panel's getenv-with-default.
	require.Equal(t, 300, s.MaxUploadMB)
	// Absent keys take defaults.
	require.Equal(t, "0.0.0.0", s.Host)
}

// TestLoadSettings_MissingFile surfaces the read error.
func TestLoadSettings_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadSettings(filepath.Join(t.TempDir(), "absent.env"))
	require.Error(t, err)
}
