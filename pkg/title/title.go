// Package title parses media filenames to extract a display title,
// release year, and season/episode numbers.
package title

// Parsed contains information extracted from a raw file or folder name.
type Parsed struct {
	Title   string // cleaned display title, never empty for non-empty input
	Year    int    // 4-digit release year, 0 if not found
	Season  int    // 0 if not episodic or not found
	Episode int    // 0 if not episodic or not found
}

// HasEpisode reports whether both season and episode were extracted.
func (p *Parsed) HasEpisode() bool {
	return p.Season > 0 && p.Episode > 0
}
