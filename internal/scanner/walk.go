package scanner

import (
	"os"
	"path/filepath"
	"strings"
)

// Strategy selects the traversal behavior for a media root.
type Strategy string

const (
	// StrategyShallow treats each top-level directory as a single title
	// bundle and inspects only its immediate children; loose video files at
	// the top level are emitted directly.
	StrategyShallow Strategy = "shallow"

	// StrategyRecursive descends to arbitrary depth and emits every video
	// file found as its own item.
	StrategyRecursive Strategy = "recursive"
)

// maxDepth bounds recursive traversal so a pathological tree degrades into a
// logged skip instead of unbounded recursion.
const maxDepth = 32

// Category is a top-level content category of the media root.
type Category string

const (
	CategoryMovie  Category = "movie"
	CategorySeries Category = "series"
)

// DirName returns the category's subdirectory under the media root.
func (c Category) DirName() string {
	if c == CategoryMovie {
		return "movies"
	}
	return "series"
}

// ScanTarget is one (root directory, category) traversal unit.
type ScanTarget struct {
	Root     string
	Category Category
}

// MediaItem is one discovered unit of content: a bundle directory's primary
// video, or a loose video file. Emitted only when a video file was found.
type MediaItem struct {
	VideoPath  string // absolute path to the primary video file
	RawName    string // directory name or filename stem
	Category   Category
	PosterPath string // absolute path, "" when no companion found
	BannerPath string
	Bundle     bool
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mkv": true, ".avi": true, ".mov": true,
	".wmv": true, ".flv": true, ".webm": true, ".m4v": true,
}

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

func isVideoFile(name string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(name))]
}

func isImageFile(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// stem returns the filename without its extension.
func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// walkTarget discovers media items under one scan target. Traversal errors
// are logged and shrink the result, never abort it.
func (s *Scanner) walkTarget(t ScanTarget) []MediaItem {
	if s.cfg.Strategy == StrategyRecursive {
		return s.walkRecursive(t.Root, t.Category, 0)
	}
	return s.walkShallow(t)
}

func (s *Scanner) walkShallow(t ScanTarget) []MediaItem {
	entries, err := os.ReadDir(t.Root)
	if err != nil {
		s.log.Error("read dir failed", "dir", t.Root, "error", err)
		return nil
	}

	var items []MediaItem
	for _, entry := range entries {
		full := filepath.Join(t.Root, entry.Name())

		if entry.IsDir() {
			if item, ok := s.scanBundle(full, entry.Name(), t.Category); ok {
				items = append(items, item)
			}
			continue
		}

		if !isVideoFile(entry.Name()) {
			continue
		}

		base := stem(entry.Name())
		item := MediaItem{VideoPath: full, RawName: base, Category: t.Category}
		item.PosterPath, item.BannerPath = findArtifacts(entries, t.Root, base)
		items = append(items, item)
	}
	return items
}

// scanBundle inspects a bundle directory's immediate children. The first
// video file in listing order becomes the primary; additional videos in the
// same bundle are ignored. Returns false when the bundle holds no video.
func (s *Scanner) scanBundle(dir, name string, cat Category) (MediaItem, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		s.log.Error("read bundle failed", "dir", dir, "error", err)
		return MediaItem{}, false
	}

	var video string
	for _, e := range entries {
		if !e.IsDir() && isVideoFile(e.Name()) {
			video = filepath.Join(dir, e.Name())
			break
		}
	}
	if video == "" {
		return MediaItem{}, false
	}

	poster, banner := findArtifacts(entries, dir, "")
	return MediaItem{
		VideoPath:  video,
		RawName:    name,
		Category:   cat,
		PosterPath: poster,
		BannerPath: banner,
		Bundle:     true,
	}, true
}

func (s *Scanner) walkRecursive(dir string, cat Category, depth int) []MediaItem {
	if depth > maxDepth {
		s.log.Error("max depth exceeded, skipping subtree", "dir", dir)
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		s.log.Error("read dir failed", "dir", dir, "error", err)
		return nil
	}

	var items []MediaItem
	for _, e := range entries {
		full := filepath.Join(dir, e.Name())

		if e.IsDir() {
			items = append(items, s.walkRecursive(full, cat, depth+1)...)
			continue
		}

		if !isVideoFile(e.Name()) {
			continue
		}

		base := stem(e.Name())
		poster, banner := findArtifacts(entries, dir, base)
		items = append(items, MediaItem{
			VideoPath:  full,
			RawName:    base,
			Category:   cat,
			PosterPath: poster,
			BannerPath: banner,
		})
	}
	return items
}
