package exporter

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"stash-exporter/internal/logging"
	"stash-exporter/internal/stash"
)

// snapshotter is the slice of the Stash client the collector needs.
type snapshotter interface {
	Snapshot(ctx context.Context) (*stash.Snapshot, error)
}

// Collector scrapes Stash synchronously: metrics are fetched when
// Prometheus asks for them, never on a timer. It keeps no state
// between scrapes and emits const metrics only, so label sets that
// disappear upstream vanish from the next scrape instead of going
// stale.
type Collector struct {
	client  snapshotter
	loc     *time.Location
	timeout time.Duration
	scrapes *prometheus.CounterVec
}

// NewCollector returns a Collector that scrapes via client, bucketing
// play history timestamps in loc and giving each upstream fetch at
// most timeout. The collector increments and exports scrapes itself,
// so every rendered payload already counts the scrape that produced
// it.
func NewCollector(client snapshotter, loc *time.Location, timeout time.Duration, scrapes *prometheus.CounterVec) *Collector {
	return &Collector{
		client:  client,
		loc:     loc,
		timeout: timeout,
		scrapes: scrapes,
	}
}

// Describe sends the static descriptors. It deliberately does not
// scrape: the registry calls Describe at registration time.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range allDescs {
		ch <- d
	}
	c.scrapes.Describe(ch)
}

// Collect fetches a fresh snapshot and converts it to const metrics.
// Every sample is built and validated before anything is sent, so a
// scrape exports either the full consistent set or, on failure, only
// the health series.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	start := time.Now()

	// Emitted last on every path. Registry collection order is not
	// deterministic, so the counter rides in this collector to
	// guarantee the payload counts its own scrape.
	defer c.scrapes.Collect(ch)

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	snap, err := c.client.Snapshot(ctx)
	if err != nil {
		logging.Error("Scraping Stash failed: %v", err)
		c.scrapes.WithLabelValues("failure").Inc()
		c.sendHealth(ch, 0, time.Since(start))
		return
	}

	metrics, err := buildMetrics(snap, c.loc)
	if err != nil {
		logging.Error("Building metrics from snapshot failed: %v", err)
		c.scrapes.WithLabelValues("failure").Inc()
		c.sendHealth(ch, 0, time.Since(start))
		return
	}

	c.scrapes.WithLabelValues("success").Inc()
	for _, m := range metrics {
		ch <- m
	}

	elapsed := time.Since(start)
	logging.Debug("Scrape completed: %d samples in %s", len(metrics), elapsed)
	c.sendHealth(ch, 1, elapsed)
}

// sendHealth emits the scrape health pair. These are the only series
// exported by the collector when a scrape fails.
func (c *Collector) sendHealth(ch chan<- prometheus.Metric, up float64, elapsed time.Duration) {
	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, up)
	ch <- prometheus.MustNewConstMetric(scrapeDurationDesc, prometheus.GaugeValue, elapsed.Seconds())
}

// metricBuilder accumulates const metrics and remembers the first
// construction error so callers can validate a whole batch before
// sending any of it.
type metricBuilder struct {
	metrics []prometheus.Metric
	err     error
}

func (b *metricBuilder) gauge(desc *prometheus.Desc, value float64, labels ...string) {
	if b.err != nil {
		return
	}
	m, err := prometheus.NewConstMetric(desc, prometheus.GaugeValue, value, labels...)
	if err != nil {
		b.err = fmt.Errorf("building %s: %w", desc, err)
		return
	}
	b.metrics = append(b.metrics, m)
}

// buildMetrics converts a snapshot into the full set of library
// metrics. Both playtime bucket families are fully enumerated, with
// explicit zeros for empty buckets, so dashboards always see every
// day and hour.
func buildMetrics(snap *stash.Snapshot, loc *time.Location) ([]prometheus.Metric, error) {
	stats := snap.Stats
	agg := aggregateScenes(snap.Scenes, loc)

	var b metricBuilder

	b.gauge(scenesTotalDesc, float64(stats.SceneCount))
	b.gauge(imagesTotalDesc, float64(stats.ImageCount))
	b.gauge(performersTotalDesc, float64(stats.PerformerCount))
	b.gauge(studiosTotalDesc, float64(stats.StudioCount))
	b.gauge(galleriesTotalDesc, float64(stats.GalleryCount))
	b.gauge(tagsTotalDesc, float64(stats.TagCount))
	b.gauge(groupsTotalDesc, float64(stats.GroupCount))

	// File totals approximate the library footprint by combining
	// scene and image stats.
	b.gauge(filesTotalDesc, float64(stats.SceneCount+stats.ImageCount))
	b.gauge(filesSizeDesc, stats.ScenesSize+stats.ImagesSize)
	b.gauge(scenesDurationDesc, stats.ScenesDuration)

	b.gauge(totalOCountDesc, float64(stats.TotalOCount))
	b.gauge(totalPlayDurationDesc, stats.TotalPlayDuration)
	b.gauge(totalPlayCountDesc, float64(stats.TotalPlayCount))
	b.gauge(scenesPlayedDesc, float64(stats.ScenesPlayed))

	for i, name := range dowNames {
		b.gauge(playDurationByDowDesc, agg.DowSeconds[i], name)
	}
	for hour := 0; hour < 24; hour++ {
		b.gauge(playDurationByHourDesc, agg.HourSeconds[hour], strconv.Itoa(hour))
	}

	b.gauge(scenesOrganizedDesc, float64(agg.Organized))
	b.gauge(scenesWithStashIDDesc, float64(agg.WithStashID))
	b.gauge(scenesTaggedDesc, float64(agg.Tagged))
	b.gauge(scenesWithPerformersDesc, float64(agg.WithPerformers))
	b.gauge(scenesWithStudioDesc, float64(agg.WithStudio))
	b.gauge(scenesWatchedDesc, float64(agg.Watched))
	b.gauge(scenesWithMarkersDesc, float64(agg.WithMarkers))
	b.gauge(sceneMarkersDesc, float64(agg.MarkerCount))

	for _, tc := range agg.TagUsage {
		b.gauge(tagUsageDesc, float64(tc.Count), tc.Name)
	}
	for _, oc := range agg.OCounters {
		b.gauge(sceneOCounterDesc, float64(oc.Value), oc.SceneID, oc.Name)
	}

	return b.metrics, b.err
}
