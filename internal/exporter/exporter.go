package exporter

import (
	"bytes"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// Exporter owns the metric registry and renders the exposition
// payload on demand. Rendering is what triggers a Stash scrape: there
// is no background polling.
type Exporter struct {
	registry *prometheus.Registry
	scrapes  *prometheus.CounterVec
}

// New builds a registry containing the Stash collector and the
// standard Go runtime, process and build info collectors. The
// cross-scrape counter is exported by the Stash collector itself, not
// registered on its own.
func New(client snapshotter, loc *time.Location, timeout time.Duration) (*Exporter, error) {
	scrapes := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stash_scrapes_total",
			Help: "Total number of scrapes attempted.",
		},
		[]string{"status"},
	)

	registry := prometheus.NewRegistry()
	for _, c := range []prometheus.Collector{
		NewCollector(client, loc, timeout, scrapes),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("registering collector: %w", err)
		}
	}

	return &Exporter{registry: registry, scrapes: scrapes}, nil
}

// Registerer exposes the underlying registry so callers can attach
// their own instruments, such as the HTTP telemetry middleware.
func (e *Exporter) Registerer() prometheus.Registerer {
	return e.registry
}

// ScrapeCounts reports how many scrapes have succeeded and failed
// since startup. It reads the existing counter children without
// creating them, so it never changes the exposition and never
// contacts Stash.
func (e *Exporter) ScrapeCounts() (success, failure uint64) {
	ch := make(chan prometheus.Metric, 4)
	e.scrapes.Collect(ch)
	close(ch)

	for m := range ch {
		var out dto.Metric
		if m.Write(&out) != nil {
			continue
		}
		for _, label := range out.GetLabel() {
			if label.GetName() != "status" {
				continue
			}
			switch label.GetValue() {
			case "success":
				success = uint64(out.GetCounter().GetValue())
			case "failure":
				failure = uint64(out.GetCounter().GetValue())
			}
		}
	}
	return success, failure
}

// Render gathers all metrics, triggering a fresh Stash scrape, and
// encodes them in the given exposition format. The payload is
// returned rather than written to a transport so callers stay free to
// choose one.
func (e *Exporter) Render(format expfmt.Format) ([]byte, error) {
	families, err := e.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gathering metrics: %w", err)
	}

	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, format)
	for _, fam := range families {
		if err := enc.Encode(fam); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", fam.GetName(), err)
		}
	}
	// OpenMetrics encoders append an EOF marker on close.
	if closer, ok := enc.(expfmt.Closer); ok {
		if err := closer.Close(); err != nil {
			return nil, fmt.Errorf("finalizing payload: %w", err)
		}
	}
	return buf.Bytes(), nil
}
