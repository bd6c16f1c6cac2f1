// Package ingest submits normalized content records to the catalog's
// ingestion endpoint.
package ingest

// Default durations used when a file was not probed. Placeholder heuristics,
// overwritten on a later probing scan.
const (
	DefaultMovieMinutes  = 120
	DefaultSeriesMinutes = 45
)

// Placeholder descriptions distinguishing movie vs. series entries.
const (
	MovieDescription  = "Movie added automatically"
	SeriesDescription = "Series added automatically"
)

// ContentRecord is the payload for POST /api/scan-media. FilePath is the
// stable identity key (media-root-relative); VideoURL is always
// mount-relative, never an absolute filesystem path.
type ContentRecord struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	ContentType     string   `json:"content_type"`
	FilePath        string   `json:"file_path,omitempty"`
	VideoURL        string   `json:"video_url"`
	PosterURL       string   `json:"poster_url,omitempty"`
	BannerURL       string   `json:"banner_url,omitempty"`
	ReleaseYear     int      `json:"release_year"`
	SeasonNumber    int      `json:"season_number,omitempty"`
	EpisodeNumber   int      `json:"episode_number,omitempty"`
	DurationMinutes int      `json:"duration_minutes"`
	Genres          []string `json:"genres"`
	CastMembers     []string `json:"cast_members"`
	Director        string   `json:"director"`
	Resolution      string   `json:"resolution,omitempty"`
	Codec           string   `json:"codec,omitempty"`
}

// SubmitResponse is the ingestion endpoint's reply.
type SubmitResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}
