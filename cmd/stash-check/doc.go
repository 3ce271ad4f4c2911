// Command stash-check provides a CLI utility for diagnosing an
// exporter deployment without a running Prometheus server.
//
// It supports the following operations:
//   - ping: check that Stash answers GraphQL queries
//   - scrape: run one scrape and print the exposition text
//
// Usage:
//
//	stash-check <command>
//
// Commands:
//
//	ping    Issue the same GraphQL queries the exporter uses and print
//	        a one line library summary. Exits non-zero when Stash is
//	        unreachable or rejects the API key.
//
//	scrape  Build the full exporter pipeline, perform one scrape and
//	        write the text exposition to stdout. The output is exactly
//	        what Prometheus would receive from /metrics.
//
// Environment:
//
//	Reads the same variables as the exporter itself, most importantly
//	STASH_GRAPHQL_URL and STASH_API_KEY.
//
// Notes:
//
// A scrape succeeds even when Stash is down; the failure shows up as
// stash_up 0 in the output. Use ping when the exit code should track
// upstream health.
package main
