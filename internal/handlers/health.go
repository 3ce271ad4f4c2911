package handlers

import (
	"net/http"
	"runtime"
	"time"

	"stash-exporter/internal/startup"
)

const statusHealthy = "healthy"

// HealthResponse contains the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Uptime   string `json:"uptime"`
	StashURL string `json:"stashUrl"`

	// Scrape totals since startup
	ScrapesSucceeded uint64 `json:"scrapesSucceeded"`
	ScrapesFailed    uint64 `json:"scrapesFailed"`

	// System info
	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`
}

// HealthCheck reports exporter process health. It never contacts
// Stash: upstream reachability is visible in the stash_up metric
// instead, so probes cannot trigger upstream load.
func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	succeeded, failed := h.exporter.ScrapeCounts()

	response := HealthResponse{
		Status:           statusHealthy,
		Version:          startup.Version,
		Uptime:           time.Since(h.started).Round(time.Second).String(),
		StashURL:         h.stashURL,
		ScrapesSucceeded: succeeded,
		ScrapesFailed:    failed,
		GoVersion:        runtime.Version(),
		NumCPU:           runtime.NumCPU(),
		NumGoroutine:     runtime.NumGoroutine(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	writeJSON(w, response)
}

// LivenessCheck is a simple liveness probe (always returns 200 if server is running)
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	// For HEAD requests, only send headers (no body)
	if r.Method != http.MethodHead {
		writeJSONStatus(w, "alive")
	}
}

// ReadinessCheck returns 200 once the exporter is serving. There is no
// deferred initialization: configuration is validated before the
// listener starts, so a running exporter is a ready exporter.
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	writeJSONStatus(w, "ready")
}
