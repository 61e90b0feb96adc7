package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the bootstrap tool's own settings. The panel application's
// environment lives in the .env file and is handled by the envfile package.
type Config struct {
	// PythonInterpreter is the interpreter used for pip and for the panel process.
	PythonInterpreter string `yaml:"python"`
	// RequirementsFile is the pip dependency manifest.
	RequirementsFile string `yaml:"requirements_file"`
	// EnvFile is the path to the panel's .env configuration file.
	EnvFile string `yaml:"env_file"`
	// AppEntrypoint is the panel application's entry script.
	AppEntrypoint string `yaml:"app_entrypoint"`
	// LogFile receives the panel's combined stdout/stderr, truncated per launch.
	LogFile string `yaml:"log_file"`
	// PidFile records the pid of the last launched panel process.
	PidFile string `yaml:"pid_file"`
	// HealthTimeout bounds the supervised-launch wait for the panel to answer HTTP.
	HealthTimeout time.Duration `yaml:"health_timeout"`
}

const (
	// DefaultConfigFilename is the default filename for tool settings.
	DefaultConfigFilename = "panel-bootstrap.yaml"

	// DefaultPythonInterpreter is used when no interpreter is configured.
	DefaultPythonInterpreter = "python3"

	// DefaultRequirementsFile is the default pip dependency manifest.
	DefaultRequirementsFile = "requirements.txt"

	// DefaultEnvFilename is the default path of the panel's .env file.
	DefaultEnvFilename = ".env"

	// DefaultAppEntrypoint is the default panel entry script.
	DefaultAppEntrypoint = "app_flask.py"

	// DefaultLogFilename is the default log path. Absolute so the log lands in
	// the same place regardless of where the tool is invoked from.
	DefaultLogFilename = "/tmp/panel.log"

	// DefaultPidFilename is the default pid file path.
	DefaultPidFilename = "panel-bootstrap.pid"

	// DefaultHealthTimeout is the default supervised-launch wait.
	DefaultHealthTimeout = 30 * time.Second

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

// errConfigIsNotSet is returned when a nil configuration is provided.
var errConfigIsNotSet = errors.New("configuration is not set")

// Default returns a configuration filled with default values.
func Default() *Config {
	cfg := new(Config)
	applyDefaults(cfg)

	return cfg
}

// Load reads configuration from the provided path and fills in defaults.
// A missing file is not an error: the tool must work on a fresh checkout
// with nothing but the dependency manifest present.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills empty fields with defaults and checks the rest for sanity.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	applyDefaults(cfg)

	return nil
}

// applyDefaults replaces zero values with the documented defaults.
func applyDefaults(cfg *Config) {
	if cfg.PythonInterpreter == "" {
		cfg.PythonInterpreter = DefaultPythonInterpreter
	}

	if cfg.RequirementsFile == "" {
		cfg.RequirementsFile = DefaultRequirementsFile
	}

	if cfg.EnvFile == "" {
		cfg.EnvFile = DefaultEnvFilename
	}

	if cfg.AppEntrypoint == "" {
		cfg.AppEntrypoint = DefaultAppEntrypoint
	}

	if cfg.LogFile == "" {
		cfg.LogFile = DefaultLogFilename
	}

	if cfg.PidFile == "" {
		cfg.PidFile = DefaultPidFilename
	}

	if cfg.HealthTimeout <= 0 {
		cfg.HealthTimeout = DefaultHealthTimeout
	}
}

// HostPort joins the panel's bind host and port into a dialable address,
// substituting loopback for the all-interfaces host.
func HostPort(host string, port int) string {
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}

	return net.JoinHostPort(host, strconv.Itoa(port))
}
