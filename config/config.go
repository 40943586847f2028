// Package config loads client configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds environment-driven settings for an embedding front-end.
type Config struct {
	// APIBaseURL is the root of the platform API.
	APIBaseURL string `env:"PORTAL_API_URL" envDefault:"http://localhost:8080/api"`

	// StoragePath is where the durable session record lives. Defaults to
	// portal/session.json under the user config directory.
	StoragePath string `env:"PORTAL_STORAGE_PATH"`

	// MetricsEnabled turns on Prometheus metrics registration.
	MetricsEnabled bool `env:"PORTAL_METRICS_ENABLED" envDefault:"false"`

	// ListenAddr is the bind address for front-ends that serve HTTP.
	ListenAddr string `env:"PORTAL_LISTEN_ADDR" envDefault:":3000"`
}

// Load parses configuration from the environment and fills defaults
// that need runtime lookup.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("portal/config: parse env: %w", err)
	}

	if cfg.StoragePath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("portal/config: resolve storage path: %w", err)
		}
		cfg.StoragePath = filepath.Join(dir, "portal", "session.json")
	}

	return cfg, nil
}
