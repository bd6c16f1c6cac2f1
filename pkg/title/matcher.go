package title

import (
	"github.com/hbollon/go-edlib"
)

// MatchConfidence represents the confidence level of a title match.
type MatchConfidence int

const (
	ConfidenceNone   MatchConfidence = iota // Score < 0.70
	ConfidenceLow                           // Score >= 0.70
	ConfidenceMedium                        // Score >= 0.85
	ConfidenceHigh                          // Score >= 0.95
)

func (c MatchConfidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// MatchResult is the outcome of a fuzzy title match.
type MatchResult struct {
	Title      string          // the matched candidate title, verbatim
	Score      float64         // Jaro-Winkler similarity (0.0-1.0)
	Confidence MatchConfidence
}

// Match finds the best candidate for a title using Jaro-Winkler similarity
// over normalized forms. Jaro-Winkler favors prefix agreement, which suits
// media titles where noise accumulates at the end of the name.
func Match(parsed string, candidates []string) MatchResult {
	if len(candidates) == 0 {
		return MatchResult{Confidence: ConfidenceNone}
	}

	normalized := Normalize(parsed)

	best := MatchResult{Confidence: ConfidenceNone}
	for _, candidate := range candidates {
		score := float64(edlib.JaroWinklerSimilarity(normalized, Normalize(candidate)))
		if score > best.Score {
			best.Title = candidate
			best.Score = score
		}
	}

	switch {
	case best.Score >= 0.95:
		best.Confidence = ConfidenceHigh
	case best.Score >= 0.85:
		best.Confidence = ConfidenceMedium
	case best.Score >= 0.70:
		best.Confidence = ConfidenceLow
	}

	return best
}
