package ingest

import (
	"context"

	"github.com/vmunix/massflix/internal/catalog"
)

// LocalSubmitter writes records straight into the catalog store. The daemon's
// own scan loop uses it instead of looping back over HTTP.
type LocalSubmitter struct {
	store *catalog.Store
}

// NewLocalSubmitter creates a submitter over the given store.
func NewLocalSubmitter(store *catalog.Store) *LocalSubmitter {
	return &LocalSubmitter{store: store}
}

// Submit upserts the record into the catalog.
func (l *LocalSubmitter) Submit(_ context.Context, rec *ContentRecord) (*SubmitResponse, error) {
	c := &catalog.Content{
		Title:           rec.Title,
		Description:     rec.Description,
		Type:            catalog.ContentType(rec.ContentType),
		FilePath:        rec.FilePath,
		VideoURL:        rec.VideoURL,
		PosterURL:       rec.PosterURL,
		BannerURL:       rec.BannerURL,
		DurationMinutes: rec.DurationMinutes,
		ReleaseYear:     rec.ReleaseYear,
		Genres:          rec.Genres,
		CastMembers:     rec.CastMembers,
		Director:        rec.Director,
		Resolution:      rec.Resolution,
		Codec:           rec.Codec,
	}
	if rec.SeasonNumber > 0 {
		n := rec.SeasonNumber
		c.SeasonNumber = &n
	}
	if rec.EpisodeNumber > 0 {
		n := rec.EpisodeNumber
		c.EpisodeNumber = &n
	}

	if err := l.store.Upsert(c); err != nil {
		return nil, err
	}
	return &SubmitResponse{Success: true, ID: c.ID}, nil
}
