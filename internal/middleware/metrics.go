package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"stash-exporter/internal/metrics"
)

// metricsResponseWriter wraps http.ResponseWriter to capture status code
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newMetricsResponseWriter(w http.ResponseWriter) *metricsResponseWriter {
	return &metricsResponseWriter{w, http.StatusOK}
}

func (rw *metricsResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// MetricsConfig holds configuration for the metrics middleware
type MetricsConfig struct {
	// SkipPaths are path prefixes that should not be recorded
	SkipPaths []string
}

// DefaultMetricsConfig returns the default metrics configuration.
// Probe endpoints are excluded. Scrapes of /metrics are not: they are
// the traffic this server exists for.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		SkipPaths: []string{"/healthz", "/livez", "/readyz"},
	}
}

// Metrics returns a middleware that records requests into set. The
// request counter only moves after the response completes, so a scrape
// of /metrics reports the scrapes before it, never itself.
func Metrics(set *metrics.Set, config MetricsConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip metrics for certain paths
			for _, path := range config.SkipPaths {
				if strings.HasPrefix(r.URL.Path, path) {
					next.ServeHTTP(w, r)
					return
				}
			}

			// Track in-flight requests
			set.HTTPRequestsInFlight.Inc()
			defer set.HTTPRequestsInFlight.Dec()

			// Wrap response writer to capture status code
			wrapped := newMetricsResponseWriter(w)

			start := time.Now()
			next.ServeHTTP(wrapped, r)
			duration := time.Since(start).Seconds()

			path := normalizePath(r.URL.Path)
			status := strconv.Itoa(wrapped.statusCode)

			set.HTTPRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
			set.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
		})
	}
}

// knownPaths is the fixed route surface of the exporter.
var knownPaths = map[string]bool{
	"/":        true,
	"/metrics": true,
	"/healthz": true,
	"/livez":   true,
	"/readyz":  true,
	"/version": true,
}

// normalizePath collapses anything outside the fixed route surface
// into a single label value so stray requests cannot blow up the
// series cardinality.
func normalizePath(path string) string {
	if knownPaths[path] {
		return path
	}
	return "other"
}
