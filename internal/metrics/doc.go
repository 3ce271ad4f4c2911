// Package metrics provides the exporter's self-telemetry instruments.
//
// The stash_ metric families describing the Stash library are built by
// the exporter package from fresh upstream data on every scrape; this
// package only covers the exporter process itself:
//
//   - HTTPRequestsTotal: counter of requests by method, path and status
//   - HTTPRequestDuration: histogram of request duration by method and path
//   - HTTPRequestsInFlight: gauge of requests currently being processed
//   - BuildInfo: version, commit and Go version of the running binary
//
// All instruments carry the stash_exporter_ prefix and register on the
// registry passed to New, never on the client_golang default registry.
package metrics
