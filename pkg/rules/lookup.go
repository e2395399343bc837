package rules

// BundleIndex returns the ladder position of the named bundle, or -1
func (t *Tables) BundleIndex(name string) int {
	for i, b := range t.Ladder {
		if b.Name == name {
			return i
		}
	}
	return -1
}

// BundleAt returns the bundle at position i, clamped to the ladder ends
func (t *Tables) BundleAt(i int) Bundle {
	return t.Ladder[t.ClampIndex(i)]
}

// ClampIndex constrains i to a valid ladder position
func (t *Tables) ClampIndex(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(t.Ladder) {
		return len(t.Ladder) - 1
	}
	return i
}

// BaseBundleIndex returns the ladder position of the base bundle for an
// application type, falling back to DefaultBundle for unlisted types
func (t *Tables) BaseBundleIndex(appType AppType) int {
	name, ok := t.BaseBundles[appType]
	if !ok {
		name = t.DefaultBundle
	}
	if i := t.BundleIndex(name); i >= 0 {
		return i
	}
	return t.ClampIndex(t.BundleIndex(t.DefaultBundle))
}

// BudgetCeilingIndex returns the highest ladder position allowed for a
// budget tier; budgets without a ceiling get the top of the ladder
func (t *Tables) BudgetCeilingIndex(budget string) int {
	if name, ok := t.BudgetCeilings[budget]; ok {
		if i := t.BundleIndex(name); i >= 0 {
			return i
		}
	}
	return len(t.Ladder) - 1
}

// DatabaseCost returns the monthly price for an engine and size. Engines
// without an entry run co-located with the instance and have no separate
// billing line.
func (t *Tables) DatabaseCost(kind, size string) float64 {
	sizes, ok := t.DatabaseCosts[kind]
	if !ok {
		return 0
	}
	return sizes[size]
}

// Bucket returns the bucket plan for a size, defaulting to the smallest plan
func (t *Tables) Bucket(size string) BucketPlan {
	for _, b := range t.Buckets {
		if b.Size == size {
			return b
		}
	}
	return t.Buckets[0]
}

// HealthCheckFor returns the health check for an application type
func (t *Tables) HealthCheckFor(appType AppType) HealthCheck {
	if hc, ok := t.HealthChecks[appType]; ok {
		return hc
	}
	return t.DefaultHealthCheck
}

// FilesFor returns the deployment file inclusion list for an application type
func (t *Tables) FilesFor(appType AppType) []string {
	if files, ok := t.FileInclusions[appType]; ok {
		return files
	}
	return t.DefaultFileInclusion
}

// DependenciesFor returns the runtime components an application type needs
func (t *Tables) DependenciesFor(appType AppType) []string {
	if deps, ok := t.TypeDependencies[appType]; ok {
		return deps
	}
	return t.TypeDependencies[TypeUnknown]
}

// RateLimited reports whether an application type serves dynamic requests
// that should sit behind rate limiting
func (t *Tables) RateLimited(appType AppType) bool {
	for _, rt := range t.RateLimitedTypes {
		if rt == appType {
			return true
		}
	}
	return false
}

// CategoryRank returns the tie-break position of a category, or -1
func (t *Tables) CategoryRank(appType AppType) int {
	for i, c := range t.Categories {
		if c == appType {
			return i
		}
	}
	return -1
}
