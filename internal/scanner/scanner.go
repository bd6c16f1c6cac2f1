// Package scanner walks a media directory tree and registers discovered
// video files with the catalog's ingestion endpoint.
package scanner

import (
	"context"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/vmunix/massflix/internal/ingest"
	"github.com/vmunix/massflix/internal/probe"
	"github.com/vmunix/massflix/pkg/title"
)

// Submitter submits one content record to the catalog.
type Submitter interface {
	Submit(ctx context.Context, rec *ingest.ContentRecord) (*ingest.SubmitResponse, error)
}

// Prober extracts technical metadata from a video file.
type Prober interface {
	Probe(ctx context.Context, path string) (*probe.Result, error)
}

// Config for the scanner.
type Config struct {
	MediaRoot   string   // contains the movies/ and series/ directories
	MountPrefix string   // public URL prefix, e.g. /media
	Strategy    Strategy // shallow or recursive
}

// Scanner runs one full scan pass over the media root.
type Scanner struct {
	cfg       Config
	submitter Submitter
	prober    Prober // nil disables metadata enrichment
	log       *slog.Logger
}

// New creates a scanner. prober may be nil to skip probing.
func New(cfg Config, submitter Submitter, prober Prober, log *slog.Logger) *Scanner {
	if log == nil {
		log = slog.Default()
	}
	if cfg.Strategy == "" {
		cfg.Strategy = StrategyShallow
	}
	if cfg.MountPrefix == "" {
		cfg.MountPrefix = "/media"
	}
	return &Scanner{cfg: cfg, submitter: submitter, prober: prober, log: log}
}

// Stats summarizes one scan pass.
type Stats struct {
	Scanned   int // items discovered and processed
	Submitted int // records accepted by the catalog
	Failed    int // submissions that errored; the pass continues past them
}

// Run performs one full scan of both categories. Items are processed
// strictly sequentially; a per-item failure never aborts the pass. The error
// return reflects only cancellation, not per-item outcomes.
func (s *Scanner) Run(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	for _, cat := range []Category{CategoryMovie, CategorySeries} {
		target := ScanTarget{
			Root:     filepath.Join(s.cfg.MediaRoot, cat.DirName()),
			Category: cat,
		}

		if _, err := os.Stat(target.Root); os.IsNotExist(err) {
			s.log.Info("media directory not found, skipping", "dir", target.Root)
			continue
		}

		s.log.Info("scanning", "dir", target.Root, "category", cat, "strategy", s.cfg.Strategy)

		for _, item := range s.walkTarget(target) {
			if err := ctx.Err(); err != nil {
				return stats, err
			}

			stats.Scanned++
			rec := s.buildRecord(ctx, item)

			resp, err := s.submitter.Submit(ctx, rec)
			if err != nil {
				s.log.Error("submit failed", "title", rec.Title, "path", rec.FilePath, "error", err)
				stats.Failed++
				continue
			}
			stats.Submitted++
			s.log.Info("content registered", "title", rec.Title, "id", resp.ID)
		}
	}

	s.log.Info("scan complete",
		"scanned", stats.Scanned,
		"submitted", stats.Submitted,
		"failed", stats.Failed,
	)
	return stats, nil
}

// buildRecord normalizes a discovered item into the ingestion payload.
func (s *Scanner) buildRecord(ctx context.Context, item MediaItem) *ingest.ContentRecord {
	parsed := title.Parse(item.RawName, item.Category == CategorySeries)

	rec := &ingest.ContentRecord{
		Title:       parsed.Title,
		ContentType: string(item.Category),
		FilePath:    s.relPath(item.VideoPath),
		VideoURL:    s.mountURL(item.VideoPath),
		ReleaseYear: parsed.Year,
		Genres:      []string{},
		CastMembers: []string{},
	}

	if item.PosterPath != "" {
		rec.PosterURL = s.mountURL(item.PosterPath)
	}
	if item.BannerPath != "" {
		rec.BannerURL = s.mountURL(item.BannerPath)
	}

	if item.Category == CategoryMovie {
		rec.Description = ingest.MovieDescription
		rec.DurationMinutes = ingest.DefaultMovieMinutes
	} else {
		rec.Description = ingest.SeriesDescription
		rec.DurationMinutes = ingest.DefaultSeriesMinutes
		rec.SeasonNumber = parsed.Season
		rec.EpisodeNumber = parsed.Episode
	}

	// Every record carries a release year; untagged files get the scan year.
	if rec.ReleaseYear == 0 {
		rec.ReleaseYear = time.Now().Year()
	}

	if s.prober != nil {
		res, err := s.prober.Probe(ctx, item.VideoPath)
		if err != nil {
			s.log.Warn("probe failed, continuing without metadata", "path", item.VideoPath, "error", err)
		} else {
			if res.DurationMinutes > 0 {
				rec.DurationMinutes = res.DurationMinutes
			}
			rec.Resolution = res.Resolution
			rec.Codec = res.Codec
		}
	}

	return rec
}

// relPath converts an absolute path under the media root to the root-relative
// identity key stored in the catalog.
func (s *Scanner) relPath(abs string) string {
	rel, err := filepath.Rel(s.cfg.MediaRoot, abs)
	if err != nil {
		return filepath.Base(abs)
	}
	return filepath.ToSlash(rel)
}

// mountURL converts an absolute path under the media root to its public
// mount-relative URL. Host filesystem structure never leaks to clients.
func (s *Scanner) mountURL(abs string) string {
	return path.Join(s.cfg.MountPrefix, s.relPath(abs))
}
