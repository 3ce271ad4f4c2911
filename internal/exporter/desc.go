package exporter

import "github.com/prometheus/client_golang/prometheus"

// Metric names and help strings are part of the exporter's public
// interface. Dashboards and alert rules reference them verbatim, so
// changing any of them is a breaking change.
var (
	scenesTotalDesc = prometheus.NewDesc(
		"stash_scenes_total",
		"Total number of scenes in the Stash library.",
		nil, nil,
	)
	imagesTotalDesc = prometheus.NewDesc(
		"stash_images_total",
		"Total number of images in the Stash library.",
		nil, nil,
	)
	performersTotalDesc = prometheus.NewDesc(
		"stash_performers_total",
		"Total number of performers in the Stash library.",
		nil, nil,
	)
	studiosTotalDesc = prometheus.NewDesc(
		"stash_studios_total",
		"Total number of studios in the Stash library.",
		nil, nil,
	)
	galleriesTotalDesc = prometheus.NewDesc(
		"stash_galleries_total",
		"Total number of galleries in the Stash library.",
		nil, nil,
	)
	tagsTotalDesc = prometheus.NewDesc(
		"stash_tags_total",
		"Total number of tags in the Stash library.",
		nil, nil,
	)
	groupsTotalDesc = prometheus.NewDesc(
		"stash_groups_total",
		"Total number of groups in the Stash library.",
		nil, nil,
	)
	filesTotalDesc = prometheus.NewDesc(
		"stash_files_total",
		"Total number of files tracked by Stash.",
		nil, nil,
	)
	filesSizeDesc = prometheus.NewDesc(
		"stash_files_size_bytes",
		"Total size of all files tracked by Stash in bytes.",
		nil, nil,
	)
	scenesDurationDesc = prometheus.NewDesc(
		"stash_scenes_duration_seconds",
		"Total duration of all scenes in the Stash library in seconds.",
		nil, nil,
	)
	totalOCountDesc = prometheus.NewDesc(
		"stash_total_o_count",
		"Total orgasm counter across all scenes (Stash o_counter aggregate).",
		nil, nil,
	)
	totalPlayDurationDesc = prometheus.NewDesc(
		"stash_total_play_duration_seconds",
		"Total play duration across all scenes in seconds.",
		nil, nil,
	)
	totalPlayCountDesc = prometheus.NewDesc(
		"stash_total_play_count",
		"Total number of scene plays recorded in Stash.",
		nil, nil,
	)
	scenesPlayedDesc = prometheus.NewDesc(
		"stash_scenes_played_total",
		"Total number of scenes that have at least one recorded play.",
		nil, nil,
	)

	playDurationByDowDesc = prometheus.NewDesc(
		"stash_play_duration_seconds_by_dow",
		"Total play duration bucketed by day of week in seconds.",
		[]string{"day_of_week"}, nil,
	)
	playDurationByHourDesc = prometheus.NewDesc(
		"stash_play_duration_seconds_by_hour",
		"Total play duration bucketed by hour of day in seconds.",
		[]string{"hour_of_day"}, nil,
	)

	scenesOrganizedDesc = prometheus.NewDesc(
		"stash_scenes_organized_total",
		"Total number of scenes marked as organized.",
		nil, nil,
	)
	scenesWithStashIDDesc = prometheus.NewDesc(
		"stash_scenes_with_stashid_total",
		"Total number of scenes that have at least one StashID entry.",
		nil, nil,
	)
	scenesTaggedDesc = prometheus.NewDesc(
		"stash_scenes_tagged_total",
		"Total number of scenes that have at least one tag.",
		nil, nil,
	)
	scenesWithPerformersDesc = prometheus.NewDesc(
		"stash_scenes_with_performers_total",
		"Total number of scenes that have at least one performer.",
		nil, nil,
	)
	scenesWithStudioDesc = prometheus.NewDesc(
		"stash_scenes_with_studio_total",
		"Total number of scenes that have an associated studio.",
		nil, nil,
	)
	scenesWatchedDesc = prometheus.NewDesc(
		"stash_scenes_watched_total",
		"Total number of scenes that have at least one play.",
		nil, nil,
	)
	scenesWithMarkersDesc = prometheus.NewDesc(
		"stash_scenes_with_markers_total",
		"Total number of scenes that have at least one scene marker.",
		nil, nil,
	)
	sceneMarkersDesc = prometheus.NewDesc(
		"stash_scene_markers_total",
		"Total number of scene markers across all scenes.",
		nil, nil,
	)

	tagUsageDesc = prometheus.NewDesc(
		"stash_tag_usage_count",
		"Number of played scenes using each tag. Only top 100 tags by usage are exported.",
		[]string{"tag_name"}, nil,
	)
	sceneOCounterDesc = prometheus.NewDesc(
		"stash_scene_o_counter",
		"Current orgasm counter value per scene (only scenes with o_counter > 0 are exported). Use increase() in PromQL to calculate new events over time windows.",
		[]string{"scene_id", "scene_name"}, nil,
	)

	upDesc = prometheus.NewDesc(
		"stash_up",
		"Whether the last scrape of Stash GraphQL succeeded (1 for success, 0 for failure).",
		nil, nil,
	)
	scrapeDurationDesc = prometheus.NewDesc(
		"stash_scrape_duration_seconds",
		"Time spent on the last scrape in seconds.",
		nil, nil,
	)
)

// allDescs is what Describe advertises. Every descriptor a Collect
// call can emit must be listed here.
var allDescs = []*prometheus.Desc{
	scenesTotalDesc,
	imagesTotalDesc,
	performersTotalDesc,
	studiosTotalDesc,
	galleriesTotalDesc,
	tagsTotalDesc,
	groupsTotalDesc,
	filesTotalDesc,
	filesSizeDesc,
	scenesDurationDesc,
	totalOCountDesc,
	totalPlayDurationDesc,
	totalPlayCountDesc,
	scenesPlayedDesc,
	playDurationByDowDesc,
	playDurationByHourDesc,
	scenesOrganizedDesc,
	scenesWithStashIDDesc,
	scenesTaggedDesc,
	scenesWithPerformersDesc,
	scenesWithStudioDesc,
	scenesWatchedDesc,
	scenesWithMarkersDesc,
	sceneMarkersDesc,
	tagUsageDesc,
	sceneOCounterDesc,
	upDesc,
	scrapeDurationDesc,
}
