package stash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// =============================================================================
// Test Fixtures
// =============================================================================

const statsResponse = `{
	"data": {
		"stats": {
			"scene_count": 42,
			"scenes_size": 1500000000.0,
			"scenes_duration": 86400.5,
			"image_count": 8,
			"images_size": 250000000,
			"gallery_count": 3,
			"performer_count": 12,
			"studio_count": 5,
			"group_count": 2,
			"tag_count": 150,
			"total_o_count": 17,
			"total_play_duration": 7200.25,
			"total_play_count": 31,
			"scenes_played": 19
		}
	}
}`

const scenesResponse = `{
	"data": {
		"findScenes": {
			"scenes": [
				{
					"id": "1",
					"title": "First Scene",
					"organized": true,
					"stash_ids": [{"endpoint": "https://stashdb.org/graphql", "stash_id": "abc"}],
					"tags": [{"name": "blue"}, {"name": "green"}],
					"performers": [{"id": "7"}],
					"studio": {"id": "3"},
					"scene_markers": [{"id": "m1"}, {"id": "m2"}],
					"o_counter": 2,
					"play_count": 3,
					"play_duration": 1800.5,
					"play_history": ["2025-06-01T10:00:00Z", "2025-06-02T22:30:00Z"]
				},
				{
					"id": "2",
					"title": null,
					"organized": false,
					"stash_ids": [],
					"tags": null,
					"performers": [],
					"studio": null,
					"scene_markers": [],
					"o_counter": 0,
					"play_count": 0,
					"play_duration": 0,
					"play_history": null
				}
			]
		}
	}
}`

// newStashStub returns a server that answers both exporter queries
// with the canned fixtures and reports request details to t.
func newStashStub(t *testing.T, wantAPIKey string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Expected application/json content type, got %q", got)
		}
		if got := r.Header.Get("ApiKey"); got != wantAPIKey {
			t.Errorf("Expected ApiKey header %q, got %q", wantAPIKey, got)
		}

		var req struct {
			Query string `json:"query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.Contains(req.Query, "LibraryStats"):
			fmt.Fprint(w, statsResponse)
		case strings.Contains(req.Query, "ScenePlayHistory"):
			fmt.Fprint(w, scenesResponse)
		default:
			t.Errorf("Unexpected query: %s", req.Query)
			http.Error(w, "unknown query", http.StatusBadRequest)
		}
	}))
}

// =============================================================================
// Snapshot Tests
// =============================================================================

func TestSnapshot(t *testing.T) {
	t.Parallel()

	srv := newStashStub(t, "test-key")
	defer srv.Close()

	client := New(srv.URL, "test-key", 5*time.Second)
	snap, err := client.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() returned error: %v", err)
	}

	if snap.Stats.SceneCount != 42 {
		t.Errorf("SceneCount = %d, want 42", snap.Stats.SceneCount)
	}
	if snap.Stats.ScenesSize != 1500000000.0 {
		t.Errorf("ScenesSize = %f, want 1500000000", snap.Stats.ScenesSize)
	}
	if snap.Stats.TotalPlayDuration != 7200.25 {
		t.Errorf("TotalPlayDuration = %f, want 7200.25", snap.Stats.TotalPlayDuration)
	}
	if snap.Stats.ScenesPlayed != 19 {
		t.Errorf("ScenesPlayed = %d, want 19", snap.Stats.ScenesPlayed)
	}

	if len(snap.Scenes) != 2 {
		t.Fatalf("Expected 2 scenes, got %d", len(snap.Scenes))
	}

	first := snap.Scenes[0]
	if first.ID != "1" || first.Title != "First Scene" {
		t.Errorf("Unexpected first scene identity: %+v", first)
	}
	if !first.Organized {
		t.Error("Expected first scene to be organized")
	}
	if len(first.StashIDs) != 1 || first.StashIDs[0].StashID != "abc" {
		t.Errorf("Unexpected stash_ids: %+v", first.StashIDs)
	}
	if len(first.Tags) != 2 || first.Tags[0].Name != "blue" {
		t.Errorf("Unexpected tags: %+v", first.Tags)
	}
	if first.Studio == nil || first.Studio.ID != "3" {
		t.Errorf("Unexpected studio: %+v", first.Studio)
	}
	if len(first.SceneMarkers) != 2 {
		t.Errorf("Expected 2 scene markers, got %d", len(first.SceneMarkers))
	}
	if first.OCounter != 2 || first.PlayCount != 3 || first.PlayDuration != 1800.5 {
		t.Errorf("Unexpected play fields: %+v", first)
	}
	if len(first.PlayHistory) != 2 {
		t.Errorf("Expected 2 history entries, got %d", len(first.PlayHistory))
	}

	// Null upstream fields decode to zero values.
	second := snap.Scenes[1]
	if second.Title != "" {
		t.Errorf("Expected empty title, got %q", second.Title)
	}
	if second.Studio != nil {
		t.Errorf("Expected nil studio, got %+v", second.Studio)
	}
	if second.Tags != nil {
		t.Errorf("Expected nil tags, got %+v", second.Tags)
	}
	if second.PlayHistory != nil {
		t.Errorf("Expected nil play history, got %+v", second.PlayHistory)
	}
}

func TestSnapshotWithoutAPIKey(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Header["Apikey"]; ok {
			t.Error("Expected no ApiKey header when the key is empty")
		}
		w.Header().Set("Content-Type", "application/json")
		var req struct {
			Query string `json:"query"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if strings.Contains(req.Query, "LibraryStats") {
			fmt.Fprint(w, statsResponse)
		} else {
			fmt.Fprint(w, scenesResponse)
		}
	}))
	defer srv.Close()

	client := New(srv.URL, "", 5*time.Second)
	if _, err := client.Snapshot(context.Background()); err != nil {
		t.Fatalf("Snapshot() returned error: %v", err)
	}
}

// =============================================================================
// Error Handling Tests
// =============================================================================

func TestSnapshotErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "upstream 500",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "internal error", http.StatusInternalServerError)
			},
		},
		{
			name: "upstream 401",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			},
		},
		{
			name: "invalid JSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, "{not json")
			},
		},
		{
			name: "graphql errors",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"errors": [{"message": "access denied"}]}`)
			},
		},
		{
			name: "missing data field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{}`)
			},
		},
		{
			name: "null data field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"data": null}`)
			},
		},
		{
			name: "schema mismatch",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"data": {"stats": {"scene_count": "not a number"}, "findScenes": {"scenes": []}}}`)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := New(srv.URL, "key", 5*time.Second)
			_, err := client.Snapshot(context.Background())
			if err == nil {
				t.Fatal("Snapshot() should have failed")
			}
			if !errors.Is(err, ErrUpstream) {
				t.Errorf("Expected error to wrap ErrUpstream, got %v", err)
			}
		})
	}
}

func TestSnapshotConnectionRefused(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := New(srv.URL, "key", time.Second)
	_, err := client.Snapshot(context.Background())
	if err == nil {
		t.Fatal("Snapshot() should have failed against a closed server")
	}
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("Expected error to wrap ErrUpstream, got %v", err)
	}
}

func TestSnapshotTimeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := New(srv.URL, "key", 20*time.Millisecond)
	_, err := client.Snapshot(context.Background())
	if err == nil {
		t.Fatal("Snapshot() should have timed out")
	}
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("Expected error to wrap ErrUpstream, got %v", err)
	}
}

func TestSnapshotContextCanceled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := New(srv.URL, "key", 5*time.Second)
	_, err := client.Snapshot(ctx)
	if err == nil {
		t.Fatal("Snapshot() should have failed with a canceled context")
	}
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("Expected error to wrap ErrUpstream, got %v", err)
	}
}
