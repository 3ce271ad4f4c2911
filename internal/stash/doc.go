// Package stash is a thin HTTP client for the Stash GraphQL API.
//
// It issues the two fixed queries the exporter needs (library
// statistics and the full scene listing) and returns the results as a
// typed Snapshot. Transport errors, non-200 responses, malformed JSON,
// GraphQL errors and unexpected response shapes all wrap ErrUpstream
// so callers can treat upstream trouble uniformly.
package stash
