package handlers

import (
	"time"

	"stash-exporter/internal/exporter"
)

type Handlers struct {
	exporter *exporter.Exporter
	stashURL string
	started  time.Time
}

// New returns the handler set. stashURL is reported by the health
// endpoint only; scraping goes through exp.
func New(exp *exporter.Exporter, stashURL string) *Handlers {
	return &Handlers{
		exporter: exp,
		stashURL: stashURL,
		started:  time.Now(),
	}
}
