package title

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// parenYearRegex matches a 4-digit year in parentheses, e.g. "(2021)".
	parenYearRegex = regexp.MustCompile(`\((\d{4})\)`)

	// bareYearRegex matches a plausible standalone release year (1900-2099).
	bareYearRegex = regexp.MustCompile(`\b(19|20)\d{2}\b`)

	// groupRegex matches bracketed annotation groups, which typically hold
	// year and quality tags, e.g. "(2021)" or "[1080p]".
	groupRegex = regexp.MustCompile(`\(.*?\)|\[.*?\]`)

	// seasonEpisodeRegex matches the SxxEyy convention for episodic content.
	seasonEpisodeRegex = regexp.MustCompile(`(?i)\bS(\d{1,2})E(\d{1,3})\b`)

	// separatorRegex matches runs of dot/underscore/hyphen filler characters.
	separatorRegex = regexp.MustCompile(`[._\-]+`)

	// whitespaceRegex matches runs of whitespace for collapsing.
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// Parse extracts a cleaned title, release year and (for episodic content)
// season/episode numbers from a raw file or folder name. The name should be
// passed without its extension. A year in parentheses takes precedence over a
// bare 4-digit token; Year is 0 when neither is present.
func Parse(name string, episodic bool) *Parsed {
	p := &Parsed{}

	// Year is extracted from the original name before any stripping, so
	// "(2021)" survives group removal.
	if m := parenYearRegex.FindStringSubmatch(name); m != nil {
		p.Year, _ = strconv.Atoi(m[1])
	} else if m := bareYearRegex.FindString(name); m != "" {
		p.Year, _ = strconv.Atoi(m)
	}

	work := name

	// Season/episode must be matched before separators are normalized away;
	// everything after the SxxEyy token (episode titles, quality tags) is
	// dropped from the display title.
	if episodic {
		if loc := seasonEpisodeRegex.FindStringSubmatchIndex(work); loc != nil {
			p.Season, _ = strconv.Atoi(work[loc[2]:loc[3]])
			p.Episode, _ = strconv.Atoi(work[loc[4]:loc[5]])
			work = work[:loc[0]]
		}
	}

	// Drop bracketed annotation groups entirely.
	work = groupRegex.ReplaceAllString(work, " ")

	// Drop the first bare year token so "Movie.Name.2023.1080p" does not
	// carry the year into the display title.
	if p.Year > 0 {
		work = strings.Replace(work, strconv.Itoa(p.Year), "", 1)
	}

	p.Title = normalizeSeparators(work)

	// A name consisting only of annotations or separators must still yield a
	// non-empty title; fall back to the raw name.
	if p.Title == "" {
		p.Title = normalizeSeparators(name)
	}
	if p.Title == "" {
		p.Title = strings.TrimSpace(name)
	}

	return p
}

// normalizeSeparators converts dot/underscore/hyphen runs to single spaces,
// collapses whitespace and trims.
func normalizeSeparators(s string) string {
	s = separatorRegex.ReplaceAllString(s, " ")
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
