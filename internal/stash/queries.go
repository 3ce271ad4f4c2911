package stash

// The queries below are written against the public Stash GraphQL API.
// If a different Stash version or a customised schema is in use,
// validate them in the Stash GraphQL playground (Settings > Tools >
// GraphQL playground) and adjust as needed.

// libraryStatsQuery returns cheap, pre-aggregated library statistics.
const libraryStatsQuery = `
query LibraryStats {
  stats {
    scene_count
    scenes_size
    scenes_duration

    image_count
    images_size

    gallery_count
    performer_count
    studio_count
    group_count
    tag_count

    total_o_count
    total_play_duration
    total_play_count
    scenes_played
  }
}
`

// scenePlayHistoryQuery powers the playtime buckets and the
// metadata/coverage metrics. It fetches only the fields needed for
// aggregate calculations inside the exporter.
const scenePlayHistoryQuery = `
query ScenePlayHistory {
  findScenes(filter: { per_page: -1 }) {
    scenes {
      id
      title
      organized
      stash_ids { endpoint stash_id }
      tags { name }
      performers { id }
      studio { id }
      scene_markers { id }

      o_counter
      play_count
      play_duration
      play_history
    }
  }
}
`
