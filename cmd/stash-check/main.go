package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/common/expfmt"

	"stash-exporter/internal/config"
	"stash-exporter/internal/exporter"
	"stash-exporter/internal/stash"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted, shutting down...")
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	client := stash.New(cfg.StashURL, cfg.StashAPIKey, cfg.ScrapeTimeout)

	switch command {
	case "ping":
		if err := runPing(ctx, os.Stdout, cfg, client); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "scrape":
		if err := runScrape(os.Stdout, cfg, client); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		// Sanitize command input using allowlist to break taint chain
		sanitized := sanitizeCommand(command)
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", sanitized) //nolint:gosec // G705 - input is sanitized via allowlist in sanitizeCommand; only [a-zA-Z0-9_-] characters pass through
		printUsage()
		os.Exit(1)
	}
}

// sanitizeCommand returns a safe representation of a command string for display.
// It uses an allowlist approach, replacing any character that is not alphanumeric,
// a hyphen, or an underscore with '_'.
func sanitizeCommand(cmd string) string {
	var b strings.Builder
	b.Grow(len(cmd))
	for _, r := range cmd {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

func printUsage() {
	fmt.Println("Stash Exporter Diagnostics")
	fmt.Println("")
	fmt.Println("Usage: stash-check <command>")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  ping    - Check that Stash answers GraphQL queries")
	fmt.Println("  scrape  - Run one scrape and print the exposition text")
	fmt.Println("")
	fmt.Println("Environment:")
	fmt.Println("  Reads the same STASH_GRAPHQL_URL and STASH_API_KEY the exporter uses.")
}

// runPing fetches one snapshot and prints a short library summary.
// Unlike scrape, the returned error tracks upstream health.
func runPing(ctx context.Context, w io.Writer, cfg *config.Config, client *stash.Client) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.ScrapeTimeout)
	defer cancel()

	start := time.Now()
	snap, err := client.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("stash at %s is unreachable: %w", cfg.StashURL, err)
	}

	stats := snap.Stats
	fmt.Fprintf(w, "Stash at %s is up (%d ms)\n", cfg.StashURL, time.Since(start).Milliseconds())
	fmt.Fprintf(w, "  scenes=%d images=%d galleries=%d performers=%d studios=%d tags=%d\n",
		stats.SceneCount, stats.ImageCount, stats.GalleryCount,
		stats.PerformerCount, stats.StudioCount, stats.TagCount)
	fmt.Fprintf(w, "  scene records fetched: %d\n", len(snap.Scenes))
	return nil
}

// runScrape renders one full exposition payload. Upstream failures do
// not fail the command; they surface as stash_up 0 in the output,
// exactly as Prometheus would see them.
func runScrape(w io.Writer, cfg *config.Config, client *stash.Client) error {
	exp, err := exporter.New(client, cfg.Location, cfg.ScrapeTimeout)
	if err != nil {
		return fmt.Errorf("building exporter: %w", err)
	}

	payload, err := exp.Render(expfmt.NewFormat(expfmt.TypeTextPlain))
	if err != nil {
		return fmt.Errorf("rendering metrics: %w", err)
	}

	_, err = w.Write(payload)
	return err
}
