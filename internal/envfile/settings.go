package envfile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings is the panel application's environment, decoded into one immutable
// value at startup instead of ambient os.Getenv lookups. The bootstrap tool
// only reads it; the panel process itself consumes the raw file.
type Settings struct {
	FlaskSecret string
	MaxUploadMB int
	Host        string
	Port        int

	DryRun        bool
	SimulateSPAPI bool

	SellerID        string
	MarketplaceID   string
	LWAClientID     string
	LWAClientSecret string
	LWARefreshToken string

	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	SPAPIEndpoint      string
}

// Defaults mirror what the panel application falls back to when a key is
// absent, so "effective settings" shown by the tool match its behavior.
const (
	defaultFlaskSecret   = "dev-secret"
	defaultMaxUploadMB   = 300
	defaultHost          = "0.0.0.0"
	defaultPort          = 5000
	defaultAWSRegion     = "eu-west-1"
	defaultSPAPIEndpoint = "https://sellingpartnerapi-eu.amazon.com"
)

// LoadSettings reads the .env file at path into a Settings value.
// Missing keys take the panel application's defaults.
func LoadSettings(path string) (*Settings, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read env file: %w", err)
	}

	s := &Settings{
		FlaskSecret:        stringValue(values, "FLASK_SECRET", defaultFlaskSecret),
		MaxUploadMB:        intValue(values, "MAX_CONTENT_LENGTH_MB", defaultMaxUploadMB),
		Host:               stringValue(values, "FLASK_RUN_HOST", defaultHost),
		Port:               intValue(values, "FLASK_RUN_PORT", defaultPort),
		DryRun:             boolValue(values, "DRY_RUN", true),
		SimulateSPAPI:      boolValue(values, "SPAPI_SIMULATE", true),
		SellerID:           stringValue(values, "SELLER_ID", ""),
		MarketplaceID:      stringValue(values, "MARKETPLACE_ID", ""),
		LWAClientID:        stringValue(values, "LWA_CLIENT_ID", ""),
		LWAClientSecret:    stringValue(values, "LWA_CLIENT_SECRET", ""),
		LWARefreshToken:    stringValue(values, "LWA_REFRESH_TOKEN", ""),
		AWSAccessKeyID:     stringValue(values, "AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: stringValue(values, "AWS_SECRET_ACCESS_KEY", ""),
		AWSRegion:          stringValue(values, "AWS_REGION", defaultAWSRegion),
		SPAPIEndpoint:      stringValue(values, "SPAPI_ENDPOINT", defaultSPAPIEndpoint),
	}

	return s, nil
}

// stringValue returns the trimmed value for key or fallback when absent/empty.
func stringValue(values map[string]string, key, fallback string) string {
	if v, ok := values[key]; ok {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}

	return fallback
}

// intValue parses the value for key as an integer, falling back on absence
// or garbage.
func intValue(values map[string]string, key string, fallback int) int {
	v, ok := values[key]
	if !ok {
		return fallback
	}

	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}

	return n
}

// boolValue parses boolean-as-string flags the way the panel application
// does: 1/true/yes/on enable, anything else disables, absence means fallback.
func boolValue(values map[string]string, key string, fallback bool) bool {
	v, ok := values[key]
	if !ok {
		return fallback
	}

	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
