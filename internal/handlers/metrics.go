package handlers

import (
	"net/http"

	"github.com/prometheus/common/expfmt"

	"stash-exporter/internal/logging"
)

// Metrics serves the Prometheus exposition payload. Rendering scrapes
// Stash synchronously, so the response time includes the upstream
// round trip.
func (h *Handlers) Metrics(w http.ResponseWriter, r *http.Request) {
	format := expfmt.Negotiate(r.Header)

	payload, err := h.exporter.Render(format)
	if err != nil {
		logging.Error("Rendering metrics failed: %v", err)
		http.Error(w, "rendering metrics failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", string(format))
	if _, err := w.Write(payload); err != nil {
		logging.Error("Writing metrics response failed: %v", err)
	}
}
