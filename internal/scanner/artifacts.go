package scanner

import (
	"os"
	"path/filepath"
	"strings"
)

// findArtifacts locates poster/banner companion images in a directory
// listing. baseName is the video's filename stem for loose-file matching;
// pass "" for bundle directories, where the convention names alone decide.
//
// The poster predicate is checked before the banner predicate, so a name
// matching both claims poster. First match wins per category, in listing
// order; each file is claimed at most once.
func findArtifacts(entries []os.DirEntry, dir, baseName string) (poster, banner string) {
	base := strings.ToLower(baseName)

	for _, e := range entries {
		if e.IsDir() || !isImageFile(e.Name()) {
			continue
		}

		name := strings.ToLower(stem(e.Name()))
		full := filepath.Join(dir, e.Name())

		switch {
		case poster == "" && isPosterName(name, base):
			poster = full
		case banner == "" && isBannerName(name):
			banner = full
		}

		if poster != "" && banner != "" {
			break
		}
	}
	return poster, banner
}

func isPosterName(name, base string) bool {
	if strings.Contains(name, "poster") || strings.Contains(name, "cover") {
		return true
	}
	// Loose-file mode: an image named after the video counts as its poster.
	return base != "" && strings.Contains(name, base)
}

func isBannerName(name string) bool {
	return strings.Contains(name, "banner") || strings.Contains(name, "backdrop")
}
