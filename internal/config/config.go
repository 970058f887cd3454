package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/mealwiz/internal/fsops"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const (
	// DefaultProfile is the profile used when none is configured.
	DefaultProfile = "default"

	// DefaultQuotaBytes mirrors the usual per-origin browser storage limit.
	DefaultQuotaBytes int64 = 5 << 20
)

// Environment variables consulted by Load.
const (
	EnvBackend = "MEALWIZ_BACKEND"
	EnvProfile = "MEALWIZ_PROFILE"
)

// ErrInvalidConfig is returned for config values that cannot be used.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the user-level settings read from config.yaml.
type Config struct {
	// Backend selects the storage backend: file, sqlite or memory
	Backend string `yaml:"backend"`

	// Profile is the client scope a session lives in
	Profile string `yaml:"profile"`

	// QuotaBytes caps the stored bytes per profile; 0 means unlimited
	QuotaBytes int64 `yaml:"quotaBytes"`

	// Verbosity is the default log verbosity
	Verbosity int `yaml:"verbosity"`
}

// Defaults returns the configuration used when nothing is configured.
func Defaults() *Config {
	return &Config{
		Backend:    BackendFile,
		Profile:    DefaultProfile,
		QuotaBytes: DefaultQuotaBytes,
	}
}

// Load builds the configuration from defaults, config.yaml, the .env file and
// the process environment, each overriding the previous. Variables already
// set in the environment win over the .env file. The result is not validated:
// callers apply their own overrides first and then call Validate.
func Load(paths *Paths) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(paths.Config)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", paths.Config, err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read %s: %w", paths.Config, err)
	}

	if _, err := os.Stat(paths.EnvFile); err == nil {
		if err := godotenv.Load(paths.EnvFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", paths.EnvFile, err)
		}
	}

	if v := os.Getenv(EnvBackend); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv(EnvProfile); v != "" {
		cfg.Profile = v
	}

	return cfg, nil
}

// Validate checks that the backend is known and the profile is usable as a
// file name.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("%w: unknown backend %q (want file, sqlite or memory)", ErrInvalidConfig, c.Backend)
	}
	if err := fsops.ValidateIdentifier(c.Profile); err != nil {
		return fmt.Errorf("%w: profile: %w", ErrInvalidConfig, err)
	}
	if c.QuotaBytes < 0 {
		return fmt.Errorf("%w: quotaBytes must not be negative", ErrInvalidConfig)
	}
	return nil
}
