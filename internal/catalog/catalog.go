// Package catalog manages the persisted media catalog (movies and series).
package catalog

import (
	"strings"
	"time"
)

// ContentType distinguishes movies from series.
type ContentType string

const (
	ContentTypeMovie  ContentType = "movie"
	ContentTypeSeries ContentType = "series"
)

// Valid reports whether the content type is one of the known values.
func (t ContentType) Valid() bool {
	return t == ContentTypeMovie || t == ContentTypeSeries
}

// ContentStatus tracks the visibility of a catalog entry.
type ContentStatus string

const (
	StatusPublished ContentStatus = "published"
	StatusHidden    ContentStatus = "hidden"
)

// Content represents one catalog entry.
type Content struct {
	ID              int64
	Title           string
	Description     string
	Type            ContentType
	Status          ContentStatus
	FilePath        string // media-root-relative source path; "" when unknown
	VideoURL        string // mount-relative, e.g. /media/movies/...
	PosterURL       string
	BannerURL       string
	DurationMinutes int
	ReleaseYear     int
	SeasonNumber    *int // nil for movies or unparsed series
	EpisodeNumber   *int
	Genres          []string
	CastMembers     []string
	Director        string
	Resolution      string // e.g. 1920x1080, "" when not probed
	Codec           string // e.g. h264, "" when not probed
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// joinList flattens a string list into the comma-joined form stored in SQLite.
func joinList(items []string) string {
	return strings.Join(items, ",")
}

// splitList parses the comma-joined storage form back into a list.
// Empty storage yields a nil slice, not a one-element slice of "".
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
