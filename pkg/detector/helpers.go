package detector

import (
	"path"
	"strings"

	"stackplan/pkg/rules"
)

// clamp constrains a value between lo and hi
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// pickBest selects the highest scoring category. Ties go to the category
// declared first, so the result never depends on file order.
func pickBest(card *scoreCard, order []rules.AppType) (rules.AppType, float64) {
	best := rules.TypeUnknown
	bestScore := 0.0
	for _, c := range order {
		if s := card.Score(c); s > bestScore {
			best = c
			bestScore = s
		}
	}
	return best, bestScore
}

// baseName returns the final element of a slash or backslash separated path
func baseName(p string) string {
	return path.Base(strings.ReplaceAll(p, "\\", "/"))
}

// hasContent reports whether a file carries any signal at all
func hasContent(f FileArtifact) bool {
	return strings.TrimSpace(f.Content) != ""
}
