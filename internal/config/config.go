package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the exporter configuration, populated from the
// environment.
type Config struct {
	StashURL      string        `env:"STASH_GRAPHQL_URL" envDefault:"http://stash:9999/graphql"`
	StashAPIKey   string        `env:"STASH_API_KEY"`
	ListenPort    int           `env:"EXPORTER_LISTEN_PORT" envDefault:"9100"`
	ScrapeTimeout time.Duration `env:"SCRAPE_TIMEOUT" envDefault:"10s"`
	Timezone      string        `env:"EXPORTER_TIMEZONE" envDefault:"Local"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`

	// Location is resolved from Timezone during Load.
	Location *time.Location `env:"-"`
}

// Load parses the environment and validates the result. It returns an
// error rather than logging so the caller decides how fatal it is.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.StashAPIKey == "" {
		return fmt.Errorf("STASH_API_KEY is required")
	}

	c.StashURL = strings.TrimRight(c.StashURL, "/")
	u, err := url.Parse(c.StashURL)
	if err != nil {
		return fmt.Errorf("invalid STASH_GRAPHQL_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("STASH_GRAPHQL_URL must be an http or https URL, got %q", c.StashURL)
	}
	if u.Host == "" {
		return fmt.Errorf("STASH_GRAPHQL_URL is missing a host: %q", c.StashURL)
	}

	if c.ListenPort < 1 || c.ListenPort > 65535 {
		return fmt.Errorf("EXPORTER_LISTEN_PORT must be between 1 and 65535, got %d", c.ListenPort)
	}

	if c.ScrapeTimeout <= 0 {
		return fmt.Errorf("SCRAPE_TIMEOUT must be positive, got %s", c.ScrapeTimeout)
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid EXPORTER_TIMEZONE %q: %w", c.Timezone, err)
	}
	c.Location = loc

	return nil
}

// ListenAddr returns the address the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.ListenPort)
}
