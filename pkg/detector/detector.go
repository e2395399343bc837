package detector

import (
	"fmt"
	"strings"

	"stackplan/pkg/rules"
)

// Classifier turns collected project files into an Analysis. It holds only
// the read-only rule tables and is safe for concurrent use.
type Classifier struct {
	tables *rules.Tables
}

// NewClassifier creates a classifier over the given tables. A nil value
// selects the built-in rule set.
func NewClassifier(tables *rules.Tables) *Classifier {
	if tables == nil {
		tables = rules.Default()
	}
	return &Classifier{tables: tables}
}

// Classify detects the application type, frameworks, databases and
// infrastructure needs of a project. It never fails: files without content
// contribute nothing and an empty file list yields an unknown type with zero
// confidence.
func (c *Classifier) Classify(files []FileArtifact, description string) Analysis {
	card := newScoreCard()
	frameworks := newFrameworkSet()
	databases := newDatabaseSet()
	dockerMarker := false

	for _, f := range files {
		if !hasContent(f) {
			continue
		}
		c.matchFrameworks(f, card, frameworks)
		c.matchDatabases(f, card, databases)
		if c.isDockerMarker(f.Path) {
			dockerMarker = true
			card.Note(fmt.Sprintf("%s present", baseName(f.Path)))
		}
	}

	c.orderDatabases(databases)

	storage := c.detectStorage(files)
	security := c.detectSecurity(files, storage)
	needs := c.detectInfrastructure(files)

	hintIndex := -1
	if strings.TrimSpace(description) != "" {
		hintIndex = c.matchDescription(description, card, frameworks, databases)
	}

	detected, score := pickBest(card, c.tables.Categories)
	confidence := clamp(score, 0, 1)

	if confidence < c.tables.Fallback.Threshold {
		switch {
		case dockerMarker:
			detected = rules.TypeDocker
			confidence = c.tables.Fallback.DockerConfidence
			card.Note("fallback: docker marker without a stronger framework signal")
		case databases.len() > 0:
			detected = c.tables.Fallback.DatabaseType
			confidence = c.tables.Fallback.DatabaseConfidence
			card.Note("fallback: database detected without a framework match")
		}
	}

	if detected == rules.TypeUnknown {
		confidence = 0
	}

	var sizeIndex int
	needs.BundleSizeHint, sizeIndex = c.sizeHint(detected, needs, databases.len(), hintIndex)

	analysis := Analysis{
		DetectedType:           detected,
		Confidence:             confidence,
		Frameworks:             frameworks.items,
		Databases:              databases.items,
		StorageNeeds:           storage,
		SecurityConsiderations: security,
		InfrastructureNeeds:    needs,
		Signals:                card.Signals(),
		PackageManager:         detectPackageManager(detected, files),
	}
	analysis.DeploymentComplexity = complexityOf(analysis)
	analysis.EstimatedCost = c.estimateCost(analysis, sizeIndex)

	return analysis
}

func (c *Classifier) matchFrameworks(f FileArtifact, card *scoreCard, frameworks *frameworkSet) {
	apply := func(ruleSet []rules.FrameworkRule, weight float64) {
		for _, r := range ruleSet {
			if !r.AppliesTo(f.Path) {
				continue
			}
			found, ok := r.Found(f.Content)
			if !ok {
				continue
			}
			card.Add(r.Category, weight, fmt.Sprintf("%s has %s", f.Path, found))
			frameworks.add(Framework{
				Name:       r.Name,
				Category:   r.Category,
				Confidence: weight,
				Source:     SourceFile,
			})
		}
	}

	apply(c.tables.Frameworks, c.tables.Weights.Framework)
	apply(c.tables.InfraHints, c.tables.Weights.InfraHint)
}

func (c *Classifier) matchDatabases(f FileArtifact, card *scoreCard, databases *databaseSet) {
	for _, r := range c.tables.Databases {
		if databases.has(r.Name) || !r.AppliesTo(f.Path) {
			continue
		}
		found, ok := r.Found(f.Content)
		if !ok {
			continue
		}
		databases.add(Database{Name: r.Name, Kind: r.Kind, Confidence: c.tables.Weights.Database})
		card.Note(fmt.Sprintf("%s references %s (%s)", f.Path, found, r.Kind))
	}
}

// orderDatabases puts file-detected databases in rule declaration order
func (c *Classifier) orderDatabases(databases *databaseSet) {
	ordered := make([]Database, 0, databases.len())
	for _, r := range c.tables.Databases {
		for _, db := range databases.items {
			if db.Name == r.Name {
				ordered = append(ordered, db)
			}
		}
	}
	databases.items = ordered
}

func (c *Classifier) isDockerMarker(p string) bool {
	base := baseName(p)
	for _, m := range c.tables.DockerMarkers {
		if base == m {
			return true
		}
	}
	return strings.HasPrefix(base, "Dockerfile.")
}

func complexityOf(a Analysis) Complexity {
	switch {
	case a.DetectedType == rules.TypeDocker:
		return ComplexityComplex
	case a.HasDatabase() || a.StorageNeeds.NeedsBucket:
		return ComplexityModerate
	default:
		return ComplexitySimple
	}
}
