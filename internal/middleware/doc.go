// Package middleware provides HTTP middleware for the exporter's
// serving endpoints.
//
// It includes:
//   - Request logging in W3C Extended Log Format
//   - Response compression (gzip)
//   - Request counting and timing fed into the exporter's own registry
//   - Configurable filtering for health check probes
package middleware
