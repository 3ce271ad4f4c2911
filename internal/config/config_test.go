package config

import (
	"os"
	"testing"
	"time"
)

var configVars = []string{
	"STASH_GRAPHQL_URL",
	"STASH_API_KEY",
	"EXPORTER_LISTEN_PORT",
	"SCRAPE_TIMEOUT",
	"EXPORTER_TIMEZONE",
	"LOG_LEVEL",
}

// setEnv clears every exporter variable, then applies the given ones.
// t.Setenv registers the restore even though the value is immediately
// unset again.
func setEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	for _, key := range configVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoadDefaults(t *testing.T) {
	setEnv(t, map[string]string{
		"STASH_API_KEY": "secret",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.StashURL != "http://stash:9999/graphql" {
		t.Errorf("StashURL = %q, want default", cfg.StashURL)
	}
	if cfg.StashAPIKey != "secret" {
		t.Errorf("StashAPIKey = %q", cfg.StashAPIKey)
	}
	if cfg.ListenPort != 9100 {
		t.Errorf("ListenPort = %d, want 9100", cfg.ListenPort)
	}
	if cfg.ScrapeTimeout != 10*time.Second {
		t.Errorf("ScrapeTimeout = %s, want 10s", cfg.ScrapeTimeout)
	}
	if cfg.Location != time.Local {
		t.Errorf("Location = %v, want time.Local", cfg.Location)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.ListenAddr() != ":9100" {
		t.Errorf("ListenAddr() = %q, want :9100", cfg.ListenAddr())
	}
}

func TestLoadOverrides(t *testing.T) {
	setEnv(t, map[string]string{
		"STASH_GRAPHQL_URL":    "https://stash.example.com/graphql",
		"STASH_API_KEY":        "secret",
		"EXPORTER_LISTEN_PORT": "9200",
		"SCRAPE_TIMEOUT":       "30s",
		"EXPORTER_TIMEZONE":    "UTC",
		"LOG_LEVEL":            "debug",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.StashURL != "https://stash.example.com/graphql" {
		t.Errorf("StashURL = %q", cfg.StashURL)
	}
	if cfg.ListenPort != 9200 {
		t.Errorf("ListenPort = %d, want 9200", cfg.ListenPort)
	}
	if cfg.ScrapeTimeout != 30*time.Second {
		t.Errorf("ScrapeTimeout = %s, want 30s", cfg.ScrapeTimeout)
	}
	if cfg.Location != time.UTC {
		t.Errorf("Location = %v, want time.UTC", cfg.Location)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadTrimsTrailingSlash(t *testing.T) {
	setEnv(t, map[string]string{
		"STASH_GRAPHQL_URL": "http://localhost:9999/graphql///",
		"STASH_API_KEY":     "secret",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.StashURL != "http://localhost:9999/graphql" {
		t.Errorf("StashURL = %q, want trailing slashes trimmed", cfg.StashURL)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{
			name: "missing API key",
			vars: map[string]string{},
		},
		{
			name: "port zero",
			vars: map[string]string{
				"STASH_API_KEY":        "secret",
				"EXPORTER_LISTEN_PORT": "0",
			},
		},
		{
			name: "port out of range",
			vars: map[string]string{
				"STASH_API_KEY":        "secret",
				"EXPORTER_LISTEN_PORT": "70000",
			},
		},
		{
			name: "negative timeout",
			vars: map[string]string{
				"STASH_API_KEY":  "secret",
				"SCRAPE_TIMEOUT": "-5s",
			},
		},
		{
			name: "zero timeout",
			vars: map[string]string{
				"STASH_API_KEY":  "secret",
				"SCRAPE_TIMEOUT": "0s",
			},
		},
		{
			name: "URL without scheme",
			vars: map[string]string{
				"STASH_API_KEY":     "secret",
				"STASH_GRAPHQL_URL": "stash:9999/graphql",
			},
		},
		{
			name: "URL with unsupported scheme",
			vars: map[string]string{
				"STASH_API_KEY":     "secret",
				"STASH_GRAPHQL_URL": "ftp://stash:9999/graphql",
			},
		},
		{
			name: "unknown timezone",
			vars: map[string]string{
				"STASH_API_KEY":     "secret",
				"EXPORTER_TIMEZONE": "Not/AZone",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.vars)
			if _, err := Load(); err == nil {
				t.Error("Load() should have returned an error")
			}
		})
	}
}
