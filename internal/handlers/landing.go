package handlers

import (
	"fmt"
	"net/http"

	"stash-exporter/internal/logging"
	"stash-exporter/internal/startup"
)

const landingPage = `<!DOCTYPE html>
<html>
<head><title>Stash Exporter</title></head>
<body>
<h1>Stash Exporter</h1>
<p>Version: %s</p>
<ul>
<li><a href="/metrics">Metrics</a></li>
<li><a href="/healthz">Health</a></li>
<li><a href="/version">Version</a></li>
</ul>
</body>
</html>
`

// Landing serves a small index page linking to the exporter endpoints.
func (h *Handlers) Landing(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := fmt.Fprintf(w, landingPage, startup.Version); err != nil {
		logging.Error("Writing landing page failed: %v", err)
	}
}
