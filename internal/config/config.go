// Package config loads the CLI configuration. Values are layered:
// built-in defaults, overridden by the TOML config file, overridden by
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"github.com/inkpress/inkpress/internal/core/domain"
)

// Config is the full CLI configuration.
type Config struct {
	// DataDir roots the database, key file and imported images.
	DataDir string `toml:"data_dir" env:"INKPRESS_DATA_DIR"`

	Verbose bool `toml:"verbose" env:"INKPRESS_VERBOSE"`

	Notion     Notion     `toml:"notion"`
	Generation Generation `toml:"generation"`

	// Providers carries per-provider overrides keyed by provider name.
	Providers map[string]Provider `toml:"providers"`
}

// Notion configures the remote source connection.
type Notion struct {
	// DatabaseID selects the database queried for publishable items.
	DatabaseID string `toml:"database_id" env:"INKPRESS_NOTION_DATABASE_ID"`

	// ImportImages downloads remote images locally during sync.
	ImportImages bool `toml:"import_images" env:"INKPRESS_NOTION_IMPORT_IMAGES"`
}

// Generation configures article generation defaults.
type Generation struct {
	DefaultProvider string `toml:"default_provider" env:"INKPRESS_DEFAULT_PROVIDER"`
	PerHour         int    `toml:"per_hour" env:"INKPRESS_GENERATIONS_PER_HOUR"`
	Language        string `toml:"language" env:"INKPRESS_LANGUAGE"`
	Style           string `toml:"style" env:"INKPRESS_STYLE"`
}

// Provider holds one backend's overrides.
type Provider struct {
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Endpoint       string `toml:"endpoint"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Generation: Generation{
			DefaultProvider: domain.ProviderDeepseek,
			PerHour:         10,
			Language:        "en-US",
			Style:           "informative",
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".inkpress", "config.toml")
}

// Load builds the configuration from defaults, the TOML file at path
// (skipped when absent) and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No file is fine; defaults plus env apply.
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		var fileCfg Config
		if err := toml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
		if err := mergo.Merge(&cfg, fileCfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merging config file: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate normalises and rejects invalid values.
func (c *Config) Validate() error {
	if !domain.KnownProvider(c.Generation.DefaultProvider) {
		return fmt.Errorf("%w: unknown default provider %q",
			domain.ErrInvalidInput, c.Generation.DefaultProvider)
	}
	if c.Generation.PerHour <= 0 {
		c.Generation.PerHour = 10
	}
	for name, p := range c.Providers {
		if !domain.KnownProvider(name) {
			return fmt.Errorf("%w: unknown provider %q in config", domain.ErrInvalidInput, name)
		}
		p.TimeoutSeconds = domain.ClampTimeoutSeconds(p.TimeoutSeconds)
		c.Providers[name] = p
	}
	return nil
}

// ProviderConfigs converts the overrides into per-provider domain
// configs.
func (c *Config) ProviderConfigs() map[string]domain.ProviderConfig {
	configs := make(map[string]domain.ProviderConfig, len(c.Providers))
	for name, p := range c.Providers {
		configs[name] = domain.ProviderConfig{
			Provider:       name,
			Model:          p.Model,
			TimeoutSeconds: p.TimeoutSeconds,
			Endpoint:       p.Endpoint,
		}
	}
	return configs
}
