package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stash-exporter/internal/config"
	"stash-exporter/internal/stash"
)

// =============================================================================
// Test Fixtures
// =============================================================================

const statsJSON = `{
	"data": {
		"stats": {
			"scene_count": 3,
			"scenes_size": 1000,
			"scenes_duration": 3600,
			"image_count": 2,
			"images_size": 24,
			"gallery_count": 1,
			"performer_count": 4,
			"studio_count": 1,
			"group_count": 1,
			"tag_count": 9,
			"total_o_count": 7,
			"total_play_duration": 1200,
			"total_play_count": 5,
			"scenes_played": 2
		}
	}
}`

const scenesJSON = `{
	"data": {
		"findScenes": {
			"scenes": [
				{
					"id": "1",
					"title": "First",
					"organized": false,
					"stash_ids": [],
					"tags": [{"name": "blue"}],
					"performers": [],
					"studio": null,
					"scene_markers": [],
					"o_counter": 2,
					"play_count": 1,
					"play_duration": 300,
					"play_history": []
				}
			]
		}
	}
}`

func newStubServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("Reading request body failed: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		if bytes.Contains(body, []byte("LibraryStats")) {
			io.WriteString(w, statsJSON) //nolint:errcheck
			return
		}
		io.WriteString(w, scenesJSON) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)

	return srv
}

func newTestConfig(url string) *config.Config {
	return &config.Config{
		StashURL:      url,
		StashAPIKey:   "test-key",
		ScrapeTimeout: 2 * time.Second,
		Timezone:      "UTC",
		Location:      time.UTC,
	}
}

// =============================================================================
// Unit Tests
// =============================================================================

// TestPrintUsage tests that printUsage doesn't panic
func TestPrintUsage(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("printUsage panicked: %v", r)
		}
	}()

	printUsage()
}

func TestSanitizeCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain command", "scrape", "scrape"},
		{"hyphen and underscore kept", "my-cmd_1", "my-cmd_1"},
		{"spaces replaced", "do thing", "do_thing"},
		{"control characters replaced", "cmd\x1b[31m", "cmd__31m"},
		{"newline replaced", "cmd\nrm -rf", "cmd_rm_-rf"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := sanitizeCommand(tt.input); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

// =============================================================================
// Command Tests
// =============================================================================

func TestRunPing(t *testing.T) {
	t.Parallel()

	srv := newStubServer(t)
	cfg := newTestConfig(srv.URL)
	client := stash.New(cfg.StashURL, cfg.StashAPIKey, cfg.ScrapeTimeout)

	var buf bytes.Buffer
	if err := runPing(context.Background(), &buf, cfg, client); err != nil {
		t.Fatalf("runPing returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "is up") {
		t.Errorf("Expected up message, got %q", out)
	}
	if !strings.Contains(out, "scenes=3") {
		t.Errorf("Expected scene count in summary, got %q", out)
	}
	if !strings.Contains(out, "scene records fetched: 1") {
		t.Errorf("Expected fetched record count, got %q", out)
	}
}

func TestRunPingUnreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	cfg := newTestConfig(srv.URL)
	cfg.ScrapeTimeout = 500 * time.Millisecond
	client := stash.New(cfg.StashURL, cfg.StashAPIKey, cfg.ScrapeTimeout)

	var buf bytes.Buffer
	err := runPing(context.Background(), &buf, cfg, client)
	if err == nil {
		t.Fatal("Expected error for unreachable Stash")
	}
	if !strings.Contains(err.Error(), "unreachable") {
		t.Errorf("Expected unreachable in error, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected no summary output on failure, got %q", buf.String())
	}
}

func TestRunScrape(t *testing.T) {
	t.Parallel()

	srv := newStubServer(t)
	cfg := newTestConfig(srv.URL)
	client := stash.New(cfg.StashURL, cfg.StashAPIKey, cfg.ScrapeTimeout)

	var buf bytes.Buffer
	if err := runScrape(&buf, cfg, client); err != nil {
		t.Fatalf("runScrape returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "# HELP") {
		t.Error("Expected exposition comments in output")
	}
	if !strings.Contains(out, "stash_up 1") {
		t.Error("Expected stash_up 1 in output")
	}
	if !strings.Contains(out, "stash_scenes_total 3") {
		t.Error("Expected stash_scenes_total 3 in output")
	}
}

func TestRunScrapeStashDown(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	cfg := newTestConfig(srv.URL)
	cfg.ScrapeTimeout = 500 * time.Millisecond
	client := stash.New(cfg.StashURL, cfg.StashAPIKey, cfg.ScrapeTimeout)

	var buf bytes.Buffer
	if err := runScrape(&buf, cfg, client); err != nil {
		t.Fatalf("runScrape returned error: %v", err)
	}

	// The command mirrors /metrics semantics: downtime is data, not a
	// failed scrape.
	if !strings.Contains(buf.String(), "stash_up 0") {
		t.Error("Expected stash_up 0 when Stash is down")
	}
}
