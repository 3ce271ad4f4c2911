package exporter

import (
	"sort"
	"time"

	"stash-exporter/internal/stash"
)

// maxTagLabels caps the tag_usage label cardinality.
const maxTagLabels = 100

// dowNames are the day_of_week label values, Monday first.
var dowNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// aggregates holds everything derived from one scene listing. All
// fields are computed in a single pass over the snapshot so a scrape
// exports one coherent view.
type aggregates struct {
	DowSeconds  [7]float64
	HourSeconds [24]float64

	Organized      int
	WithStashID    int
	Tagged         int
	WithPerformers int
	WithStudio     int
	Watched        int
	WithMarkers    int
	MarkerCount    int

	TagUsage  []tagCount
	OCounters []sceneOCount
}

// tagCount is one tag's played-scene usage.
type tagCount struct {
	Name  string
	Count int
}

// sceneOCount is one scene's o_counter sample.
type sceneOCount struct {
	SceneID string
	Name    string
	Value   int
}

// aggregateScenes reduces the scene listing to playtime buckets,
// coverage counters, tag usage and per-scene o_counter samples.
// Timestamps are bucketed in loc.
func aggregateScenes(scenes []stash.Scene, loc *time.Location) aggregates {
	var agg aggregates
	tagUsage := make(map[string]int)

	for _, scene := range scenes {
		if scene.Organized {
			agg.Organized++
		}
		if len(scene.StashIDs) > 0 {
			agg.WithStashID++
		}
		if len(scene.Tags) > 0 {
			agg.Tagged++
		}
		if len(scene.Performers) > 0 {
			agg.WithPerformers++
		}
		if scene.Studio != nil {
			agg.WithStudio++
		}
		if scene.PlayCount > 0 {
			agg.Watched++
		}
		if len(scene.SceneMarkers) > 0 {
			agg.WithMarkers++
			agg.MarkerCount += len(scene.SceneMarkers)
		}

		// Tag usage counts played scenes only.
		if scene.PlayCount > 0 {
			for _, tag := range scene.Tags {
				if tag.Name != "" {
					tagUsage[tag.Name]++
				}
			}
		}

		if scene.ID != "" && scene.OCounter > 0 {
			name := scene.Title
			if name == "" {
				name = scene.ID
			}
			agg.OCounters = append(agg.OCounters, sceneOCount{
				SceneID: scene.ID,
				Name:    name,
				Value:   scene.OCounter,
			})
		}

		bucketPlaytime(&agg, scene, loc)
	}

	agg.TagUsage = topTags(tagUsage, maxTagLabels)
	return agg
}

// bucketPlaytime spreads a scene's total play duration evenly across
// its history entries and adds the shares to the day-of-week and
// hour-of-day buckets. Scenes without a positive play count, a
// positive duration and at least one history entry contribute
// nothing; history entries that fail to parse are skipped.
func bucketPlaytime(agg *aggregates, scene stash.Scene, loc *time.Location) {
	if scene.PlayCount <= 0 || scene.PlayDuration <= 0 || len(scene.PlayHistory) == 0 {
		return
	}

	divisor := scene.PlayCount
	if len(scene.PlayHistory) > divisor {
		divisor = len(scene.PlayHistory)
	}
	perPlay := scene.PlayDuration / float64(divisor)

	for _, raw := range scene.PlayHistory {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			continue
		}
		local := ts.In(loc)
		agg.DowSeconds[mondayIndex(local.Weekday())] += perPlay
		agg.HourSeconds[local.Hour()] += perPlay
	}
}

// mondayIndex converts time.Weekday (Sunday = 0) to a Monday-first
// index matching dowNames.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// topTags returns the n most-used tags, breaking count ties by name
// so the exported set is deterministic.
func topTags(usage map[string]int, n int) []tagCount {
	tags := make([]tagCount, 0, len(usage))
	for name, count := range usage {
		tags = append(tags, tagCount{Name: name, Count: count})
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Name < tags[j].Name
	})
	if len(tags) > n {
		tags = tags[:n]
	}
	return tags
}
