package stash

// LibraryStats mirrors the stats object returned by the LibraryStats
// query. Counts are integers; sizes and durations come back as JSON
// numbers that may exceed integer precision, so they stay float64.
type LibraryStats struct {
	SceneCount     int     `json:"scene_count"`
	ScenesSize     float64 `json:"scenes_size"`
	ScenesDuration float64 `json:"scenes_duration"`

	ImageCount int     `json:"image_count"`
	ImagesSize float64 `json:"images_size"`

	GalleryCount   int `json:"gallery_count"`
	PerformerCount int `json:"performer_count"`
	StudioCount    int `json:"studio_count"`
	GroupCount     int `json:"group_count"`
	TagCount       int `json:"tag_count"`

	TotalOCount       int     `json:"total_o_count"`
	TotalPlayDuration float64 `json:"total_play_duration"`
	TotalPlayCount    int     `json:"total_play_count"`
	ScenesPlayed      int     `json:"scenes_played"`
}

// StashID is an external identifier attached to a scene.
type StashID struct {
	Endpoint string `json:"endpoint"`
	StashID  string `json:"stash_id"`
}

// Tag is a scene tag. Only the name is needed for usage counting.
type Tag struct {
	Name string `json:"name"`
}

// Performer identifies a performer attached to a scene.
type Performer struct {
	ID string `json:"id"`
}

// Studio identifies the studio a scene belongs to.
type Studio struct {
	ID string `json:"id"`
}

// SceneMarker identifies a marker within a scene.
type SceneMarker struct {
	ID string `json:"id"`
}

// Scene is one entry of the ScenePlayHistory listing. Nullable
// upstream fields decode to their zero values, which downstream
// aggregation treats the same as absent.
type Scene struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Organized    bool          `json:"organized"`
	StashIDs     []StashID     `json:"stash_ids"`
	Tags         []Tag         `json:"tags"`
	Performers   []Performer   `json:"performers"`
	Studio       *Studio       `json:"studio"`
	SceneMarkers []SceneMarker `json:"scene_markers"`
	OCounter     int           `json:"o_counter"`
	PlayCount    int           `json:"play_count"`
	PlayDuration float64       `json:"play_duration"`
	PlayHistory  []string      `json:"play_history"`
}

// Snapshot is one coherent view of the Stash library, produced by a
// single scrape.
type Snapshot struct {
	Stats  LibraryStats
	Scenes []Scene
}
