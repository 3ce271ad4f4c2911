// Package handlers provides HTTP request handlers for the exporter.
//
// It includes handlers for:
//   - Prometheus metrics exposition
//   - Health, liveness and readiness checks
//   - Version and build information
//   - A small landing page
package handlers
