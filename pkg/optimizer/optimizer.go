package optimizer

import (
	"fmt"

	"stackplan/pkg/detector"
	"stackplan/pkg/rules"
)

// Optimizer maps an Analysis and a Preference to a sized bundle, database
// and bucket. It performs no I/O and is safe for concurrent use.
type Optimizer struct {
	tables *rules.Tables
}

// NewOptimizer creates an optimizer over the given tables. A nil value
// selects the built-in rule set.
func NewOptimizer(tables *rules.Tables) *Optimizer {
	if tables == nil {
		tables = rules.Default()
	}
	return &Optimizer{tables: tables}
}

var scaleSteps = map[Scale]int{
	ScaleSmall:  0,
	ScaleMedium: 1,
	ScaleLarge:  2,
}

// Optimize sizes infrastructure for an analysed project
func (o *Optimizer) Optimize(a detector.Analysis, pref Preference) Optimization {
	pref = pref.Normalize()

	bundle := o.selectBundle(a, pref)
	db := o.sizeDatabase(a, pref)
	bucket := o.sizeBucket(a, pref)
	cost := costOf(bundle, db, bucket)

	perf, efficiency := o.score(a, bundle, db, cost)

	return Optimization{
		RecommendedBundle:   bundle,
		DatabaseConfig:      db,
		BucketConfig:        bucket,
		CostBreakdown:       cost,
		PerformanceScore:    perf,
		CostEfficiencyScore: efficiency,
		Recommendations:     o.recommend(a, bundle, db, cost),
		Environment:         pref.Environment,
	}
}

// selectBundle walks the ladder from the type's base bundle. Each stage
// clamps at the ladder ends before the next one applies.
func (o *Optimizer) selectBundle(a detector.Analysis, pref Preference) rules.Bundle {
	t := o.tables
	idx := t.BaseBundleIndex(a.DetectedType)

	idx = t.ClampIndex(idx + scaleSteps[pref.Scale])

	if a.InfrastructureNeeds.MemoryIntensive {
		idx = t.ClampIndex(idx + 1)
	}
	if a.InfrastructureNeeds.CPUIntensive {
		idx = t.ClampIndex(idx + 1)
	}

	switch pref.Priority {
	case PriorityCost:
		idx = t.ClampIndex(idx - 1)
	case PriorityPerformance:
		idx = t.ClampIndex(idx + 1)
	}

	if ceiling := t.BudgetCeilingIndex(string(pref.Budget)); idx > ceiling {
		idx = ceiling
	}

	return t.BundleAt(idx)
}

func (o *Optimizer) sizeDatabase(a detector.Analysis, pref Preference) *DatabaseConfig {
	if !a.HasDatabase() {
		return nil
	}

	size := string(pref.Scale)
	switch pref.Priority {
	case PriorityCost:
		size = "small"
	case PriorityPerformance:
		if size == "small" {
			size = "medium"
		}
	}

	engine := a.Databases[0].Kind
	return &DatabaseConfig{
		Engine:      engine,
		Size:        size,
		External:    pref.Scale != ScaleSmall,
		MultiAZ:     pref.Scale == ScaleLarge,
		MonthlyCost: o.tables.DatabaseCost(engine, size),
	}
}

func (o *Optimizer) sizeBucket(a detector.Analysis, pref Preference) *BucketConfig {
	if !a.StorageNeeds.NeedsBucket {
		return nil
	}

	size := "small"
	switch {
	case pref.Scale == ScaleLarge:
		size = "large"
	case a.StorageNeeds.ImageProcessing || pref.Scale == ScaleMedium:
		size = "medium"
	}

	plan := o.tables.Bucket(size)
	return &BucketConfig{
		Size:        plan.Size,
		StorageGB:   plan.StorageGB,
		MonthlyCost: plan.PriceMonthly,
	}
}

func costOf(bundle rules.Bundle, db *DatabaseConfig, bucket *BucketConfig) CostBreakdown {
	cost := CostBreakdown{Instance: bundle.PriceMonthly}
	if db != nil {
		cost.Database = db.MonthlyCost
	}
	if bucket != nil {
		cost.Storage = bucket.MonthlyCost
	}
	cost.Total = cost.Instance + cost.Database + cost.Storage
	return cost
}

// recommend runs four independent checks. The list keeps check order, not
// priority order.
func (o *Optimizer) recommend(a detector.Analysis, bundle rules.Bundle, db *DatabaseConfig, cost CostBreakdown) []Recommendation {
	recs := []Recommendation{}

	if bundle.RAMGB < o.tables.MemoryIntensiveRAMGB {
		recs = append(recs, Recommendation{
			Type:     "performance",
			Priority: "medium",
			Message:  fmt.Sprintf("The %s bundle has %.1f GB of RAM; move up a bundle if the application caches data or processes media", bundle.Name, bundle.RAMGB),
			Impact:   "Better response times under load",
		})
	}

	if db != nil && !db.External {
		recs = append(recs, Recommendation{
			Type:     "reliability",
			Priority: "medium",
			Message:  fmt.Sprintf("%s runs on the application instance; use a managed database for automated backups and failover", db.Engine),
			Impact:   "Lower risk of data loss",
		})
	}

	if a.SecurityConsiderations.HandlesUserData {
		recs = append(recs, Recommendation{
			Type:     "security",
			Priority: "high",
			Message:  "The application handles user data; enforce HTTPS, encrypt data at rest and restrict database access to the instance",
			Impact:   "Protects user data",
		})
	}

	if cost.Total > o.tables.CostAlertTotal {
		recs = append(recs, Recommendation{
			Type:     "cost",
			Priority: "low",
			Message:  fmt.Sprintf("Estimated monthly cost is $%.2f; consider a smaller bundle for non-production environments", cost.Total),
			Impact:   "Potential monthly savings",
		})
	}

	return recs
}

// score compares the chosen bundle against the estimated need of the
// application type. Need is the type's base bundle, doubled per intensity.
func (o *Optimizer) score(a detector.Analysis, bundle rules.Bundle, db *DatabaseConfig, cost CostBreakdown) (int, int) {
	base := o.tables.BundleAt(o.tables.BaseBundleIndex(a.DetectedType))

	ramNeed := base.RAMGB
	if a.InfrastructureNeeds.MemoryIntensive {
		ramNeed *= 2
	}
	cpuNeed := float64(base.VCPU)
	if a.InfrastructureNeeds.CPUIntensive {
		cpuNeed *= 2
	}

	ram := bundle.RAMGB
	cpu := float64(bundle.VCPU)

	perf := 50
	switch {
	case ram >= ramNeed*1.5:
		perf += 20
	case ram >= ramNeed:
		perf += 10
	}
	switch {
	case cpu >= cpuNeed*1.5:
		perf += 15
	case cpu >= cpuNeed:
		perf += 7
	}
	if db != nil && db.External {
		perf += 10
	}
	if db != nil && db.MultiAZ {
		perf += 5
	}

	efficiency := 50
	switch {
	case cost.Total < 20:
		efficiency += 30
	case cost.Total < 50:
		efficiency += 20
	case cost.Total < 100:
		efficiency += 10
	}
	if ram >= ramNeed && ram <= ramNeed*1.5 {
		efficiency += 20
	}

	return clampScore(perf), clampScore(efficiency)
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
