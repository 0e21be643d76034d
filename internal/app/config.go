package app

import (
	"os"
	"path/filepath"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Backend names for Config.Backend.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Config holds the application configuration, loadable from environment
// variables (ORDERDESK_ prefix) or YAML config files.
type Config struct {
	Backend     string `default:"file" usage:"storage backend: file or postgres"`
	DataDir     string `usage:"data directory for the file backend (defaults under the user config dir)" flag:"data-dir"`
	DatabaseURL string `usage:"PostgreSQL connection URL for the postgres backend (ORDERDESK_DATABASE_URL or DATABASE_URL)" flag:"database-url"`
}

// LoadConfig loads configuration from environment variables and YAML
// config files, then applies platform defaults and validates the backend
// selection. Command-line flags are left to the subcommands.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "ORDERDESK",
		SkipFlags: true,
		Files:     []string{"config.yaml", "/etc/orderdesk/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case BackendFile:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("database URL is required: set ORDERDESK_DATABASE_URL or DATABASE_URL")
		}
	default:
		return nil, errors.Errorf("unknown backend %q", cfg.Backend)
	}

	return &cfg, nil
}

// applyDefaults fills in the data directory and maps the conventional
// DATABASE_URL variable onto the prefixed configuration.
func (c *Config) applyDefaults() error {
	if c.DatabaseURL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.DatabaseURL = v
		}
	}
	if c.DataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return errors.Wrap(err, "resolve user config dir")
		}
		c.DataDir = filepath.Join(base, "orderdesk")
	}
	return nil
}
