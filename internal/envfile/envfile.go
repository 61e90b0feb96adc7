package envfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// defaultTemplate is the content written on first run. Comment lines are part
// of the contract and are written verbatim; keys left blank are meant to be
// filled in by hand before real SP-API calls are enabled.
const defaultTemplate = `# Panel runtime settings.
FLASK_SECRET=dev-secret
MAX_CONTENT_LENGTH_MB=300
FLASK_RUN_HOST=0.0.0.0
FLASK_RUN_PORT=5000

# Safe mode: with both flags on, nothing is sent to Amazon.
DRY_RUN=true
SPAPI_SIMULATE=true

# Amazon Selling Partner credentials. Fill in manually.
SELLER_ID=
MARKETPLACE_ID=
LWA_CLIENT_ID=
LWA_CLIENT_SECRET=
LWA_REFRESH_TOKEN=
AWS_ACCESS_KEY_ID=
AWS_SECRET_ACCESS_KEY=
AWS_REGION=eu-west-1
SPAPI_ENDPOINT=https://sellingpartnerapi-eu.amazon.com
`

// templatePermissions restricts access to the secret-bearing file.
const templatePermissions os.FileMode = 0o600

// templateKeys lists every key of the default template, in file order.
//
//nolint:gochecknoglobals // Fixed template contract, shared by Ensure and the env command.
var templateKeys = []string{
	"FLASK_SECRET",
	"MAX_CONTENT_LENGTH_MB",
	"FLASK_RUN_HOST",
	"FLASK_RUN_PORT",
	"DRY_RUN",
	"SPAPI_SIMULATE",
	"SELLER_ID",
	"MARKETPLACE_ID",
	"LWA_CLIENT_ID",
	"LWA_CLIENT_SECRET",
	"LWA_REFRESH_TOKEN",
	"AWS_ACCESS_KEY_ID",
	"AWS_SECRET_ACCESS_KEY",
	"AWS_REGION",
	"SPAPI_ENDPOINT",
}

// DefaultTemplate returns the content written when no .env file exists.
func DefaultTemplate() []byte {
	return []byte(defaultTemplate)
}

// Keys returns the template's key names in file order.
func Keys() []string {
	keys := make([]string, len(templateKeys))
	copy(keys, templateKeys)

	return keys
}

// Ensure writes the default template to path unless a file is already there.
// An existing file is never rewritten, merged or inspected. Returns whether
// the file was created.
func Ensure(path string) (bool, error) {
	path = filepath.Clean(path)

	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat env file: %w", err)
	}

	if err := os.WriteFile(path, DefaultTemplate(), templatePermissions); err != nil {
		return false, fmt.Errorf("write env file: %w", err)
	}

	return true, nil
}
