// Package config loads and validates the exporter configuration from
// environment variables.
//
// All settings have working defaults except STASH_API_KEY, which is
// required. Validation happens at load time so a misconfigured
// exporter fails at startup instead of on the first scrape.
package config
