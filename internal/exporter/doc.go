// Package exporter turns a Stash library snapshot into Prometheus
// metrics.
//
// The Collector scrapes Stash synchronously on every collect cycle
// and emits const metrics only, so series for tags or scenes that
// disappear upstream vanish from the next scrape instead of going
// stale. The Exporter owns the registry and renders the exposition
// payload on demand.
package exporter
