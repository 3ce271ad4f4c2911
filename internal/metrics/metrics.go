package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Set holds the instruments that describe the exporter process itself
// rather than the Stash library it scrapes. The stash_exporter_ prefix
// keeps them apart from the stash_ series derived from upstream data.
type Set struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	BuildInfo            *prometheus.GaugeVec
}

// New creates the self-telemetry instruments and registers them with
// reg. Nothing is ever registered on the package-global default
// registry; the exporter serves a private one.
func New(reg prometheus.Registerer) *Set {
	factory := promauto.With(reg)

	return &Set{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stash_exporter_http_requests_total",
				Help: "Total number of HTTP requests served by the exporter",
			},
			[]string{"method", "path", "status"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stash_exporter_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "stash_exporter_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		BuildInfo: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stash_exporter_build_info",
				Help: "Build information about the running exporter binary",
			},
			[]string{"version", "commit", "go_version"},
		),
	}
}

// SetBuildInfo pins the build info series to 1 for the running binary.
func (s *Set) SetBuildInfo(version, commit, goVersion string) {
	s.BuildInfo.WithLabelValues(version, commit, goVersion).Set(1)
}
