package detector

import (
	"fmt"
	"strings"
)

// matchDescription runs the phrase table against free text, case-insensitive.
// Matches add description-sourced frameworks and databases and may raise the
// bundle size floor, whose ladder index is returned (-1 when no hint).
func (c *Classifier) matchDescription(description string, card *scoreCard, frameworks *frameworkSet, databases *databaseSet) int {
	text := strings.ToLower(description)
	hint := -1

	for _, p := range c.tables.Phrases {
		if !strings.Contains(text, p.Phrase) {
			continue
		}

		if p.Framework != "" {
			added := frameworks.add(Framework{
				Name:       p.Framework,
				Category:   p.Category,
				Confidence: p.Confidence,
				Source:     SourceDescription,
			})
			if added {
				card.Add(p.Category, p.Confidence, fmt.Sprintf("description mentions %q", p.Phrase))
			}
		}

		if p.Database != "" && !databases.has(p.Database) {
			databases.add(Database{Name: p.Database, Kind: p.Database, Confidence: c.tables.Weights.DescriptionDatabase})
			card.Note(fmt.Sprintf("description mentions %q (%s)", p.Phrase, p.Database))
		}

		if p.BundleHint != "" {
			if i := c.tables.BundleIndex(p.BundleHint); i > hint {
				hint = i
			}
		}
	}

	return hint
}
