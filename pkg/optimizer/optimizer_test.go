package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackplan/pkg/detector"
	"stackplan/pkg/rules"
)

func bundleIndex(t *testing.T, o Optimization) int {
	t.Helper()
	idx := rules.Default().BundleIndex(o.RecommendedBundle.Name)
	require.GreaterOrEqual(t, idx, 0, "bundle %q not on the ladder", o.RecommendedBundle.Name)
	return idx
}

func recTypes(recs []Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Type)
	}
	return out
}

func TestOptimize_DockerStartsAboveNodeJS(t *testing.T) {
	o := NewOptimizer(nil)
	pref := Preference{Scale: ScaleSmall}

	docker := o.Optimize(detector.Analysis{DetectedType: rules.TypeDocker}, pref)
	node := o.Optimize(detector.Analysis{DetectedType: rules.TypeNodeJS}, pref)

	assert.Equal(t, "medium", docker.RecommendedBundle.Name)
	assert.Equal(t, "micro", node.RecommendedBundle.Name)
	assert.Greater(t, bundleIndex(t, docker), bundleIndex(t, node))
}

func TestOptimize_CostPriorityForcesSmallDatabase(t *testing.T) {
	o := NewOptimizer(nil)
	a := detector.Analysis{Databases: []detector.Database{{Name: "mysql", Kind: "mysql"}}}

	for _, scale := range []Scale{"", ScaleSmall, ScaleMedium, ScaleLarge} {
		t.Run(string(scale), func(t *testing.T) {
			opt := o.Optimize(a, Preference{Priority: PriorityCost, Scale: scale})
			require.NotNil(t, opt.DatabaseConfig)
			assert.Equal(t, "small", opt.DatabaseConfig.Size)
			assert.Equal(t, "mysql", opt.DatabaseConfig.Engine)
			assert.Equal(t, 15.0, opt.DatabaseConfig.MonthlyCost)
		})
	}
}

func TestOptimize_SmallNodeWithMySQL(t *testing.T) {
	a := detector.Analysis{
		DetectedType: rules.TypeNodeJS,
		Databases:    []detector.Database{{Name: "mysql", Kind: "mysql"}},
	}

	opt := NewOptimizer(nil).Optimize(a, Preference{})

	assert.Equal(t, "micro", opt.RecommendedBundle.Name)
	require.NotNil(t, opt.DatabaseConfig)
	assert.Equal(t, DatabaseConfig{Engine: "mysql", Size: "small", MonthlyCost: 15}, *opt.DatabaseConfig)
	assert.Nil(t, opt.BucketConfig)
	assert.Equal(t, CostBreakdown{Instance: 5, Database: 15, Total: 20}, opt.CostBreakdown)
	assert.Equal(t, []string{"performance", "reliability"}, recTypes(opt.Recommendations))
	assert.Equal(t, 67, opt.PerformanceScore)
	assert.Equal(t, 90, opt.CostEfficiencyScore)
	assert.Equal(t, EnvProduction, opt.Environment)
}

func TestOptimize_LargeScaleExternalDatabase(t *testing.T) {
	a := detector.Analysis{
		DetectedType: rules.TypeNodeJS,
		Databases:    []detector.Database{{Name: "postgresql", Kind: "postgresql"}},
	}

	opt := NewOptimizer(nil).Optimize(a, Preference{Scale: ScaleLarge, Environment: EnvStaging})

	assert.Equal(t, "medium", opt.RecommendedBundle.Name)
	require.NotNil(t, opt.DatabaseConfig)
	assert.True(t, opt.DatabaseConfig.External)
	assert.True(t, opt.DatabaseConfig.MultiAZ)
	assert.Equal(t, "large", opt.DatabaseConfig.Size)
	assert.Equal(t, 80.0, opt.CostBreakdown.Total)
	assert.Equal(t, []string{"cost"}, recTypes(opt.Recommendations))
	assert.Equal(t, 92, opt.PerformanceScore)
	assert.Equal(t, 60, opt.CostEfficiencyScore)
	assert.Equal(t, EnvStaging, opt.Environment)
}

func TestOptimize_PerformancePriorityPromotesDatabase(t *testing.T) {
	a := detector.Analysis{
		DetectedType: rules.TypePython,
		Databases:    []detector.Database{{Name: "postgresql", Kind: "postgresql"}},
	}

	opt := NewOptimizer(nil).Optimize(a, Preference{Priority: PriorityPerformance})

	require.NotNil(t, opt.DatabaseConfig)
	assert.Equal(t, "medium", opt.DatabaseConfig.Size)
	assert.Equal(t, 30.0, opt.DatabaseConfig.MonthlyCost)
	assert.False(t, opt.DatabaseConfig.External)
	assert.Equal(t, "small", opt.RecommendedBundle.Name)
}

func TestOptimize_UnpricedEngine(t *testing.T) {
	a := detector.Analysis{
		DetectedType: rules.TypeNodeJS,
		Databases:    []detector.Database{{Name: "mongodb", Kind: "mongodb"}, {Name: "mysql", Kind: "mysql"}},
	}

	opt := NewOptimizer(nil).Optimize(a, Preference{})

	require.NotNil(t, opt.DatabaseConfig)
	assert.Equal(t, "mongodb", opt.DatabaseConfig.Engine)
	assert.Zero(t, opt.DatabaseConfig.MonthlyCost)
}

func TestOptimize_Buckets(t *testing.T) {
	tests := []struct {
		name    string
		storage detector.StorageNeeds
		scale   Scale
		want    *BucketConfig
	}{
		{"no bucket", detector.StorageNeeds{}, ScaleLarge, nil},
		{"small", detector.StorageNeeds{NeedsBucket: true}, ScaleSmall, &BucketConfig{Size: "small", StorageGB: 5, MonthlyCost: 1}},
		{"images", detector.StorageNeeds{NeedsBucket: true, ImageProcessing: true}, ScaleSmall, &BucketConfig{Size: "medium", StorageGB: 100, MonthlyCost: 3}},
		{"medium scale", detector.StorageNeeds{NeedsBucket: true}, ScaleMedium, &BucketConfig{Size: "medium", StorageGB: 100, MonthlyCost: 3}},
		{"large scale", detector.StorageNeeds{NeedsBucket: true, ImageProcessing: true}, ScaleLarge, &BucketConfig{Size: "large", StorageGB: 250, MonthlyCost: 5}},
	}

	o := NewOptimizer(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt := o.Optimize(detector.Analysis{DetectedType: rules.TypeReact, StorageNeeds: tt.storage}, Preference{Scale: tt.scale})
			assert.Equal(t, tt.want, opt.BucketConfig)
			if tt.want != nil {
				assert.Equal(t, tt.want.MonthlyCost, opt.CostBreakdown.Storage)
			}
		})
	}
}

func TestOptimize_LadderClampsAndBudgetCeiling(t *testing.T) {
	o := NewOptimizer(nil)

	heavy := detector.Analysis{
		DetectedType:        rules.TypeDocker,
		InfrastructureNeeds: detector.InfrastructureNeeds{MemoryIntensive: true, CPUIntensive: true},
	}

	top := o.Optimize(heavy, Preference{Scale: ScaleLarge, Priority: PriorityPerformance})
	assert.Equal(t, "2xlarge", top.RecommendedBundle.Name)

	capped := o.Optimize(heavy, Preference{Scale: ScaleLarge, Priority: PriorityPerformance, Budget: BudgetMinimal})
	assert.Equal(t, "medium", capped.RecommendedBundle.Name)

	bottom := o.Optimize(detector.Analysis{DetectedType: rules.TypeReact}, Preference{Priority: PriorityCost})
	assert.Equal(t, "nano", bottom.RecommendedBundle.Name)
	assert.Equal(t, []string{"performance"}, recTypes(bottom.Recommendations))
}

func TestOptimize_Monotone(t *testing.T) {
	o := NewOptimizer(nil)
	types := []rules.AppType{
		rules.TypeNodeJS, rules.TypeReact, rules.TypePython, rules.TypeLAMP,
		rules.TypeDocker, rules.TypeNginx, rules.TypeUnknown,
	}
	scales := []Scale{ScaleSmall, ScaleMedium, ScaleLarge}
	budgets := []Budget{BudgetMinimal, BudgetStandard, BudgetPerformance}
	priorities := []Priority{PriorityCost, PriorityBalanced, PriorityPerformance}

	for _, typ := range types {
		for _, budget := range budgets {
			for _, priority := range priorities {
				prev := -1
				for _, scale := range scales {
					opt := o.Optimize(detector.Analysis{DetectedType: typ}, Preference{Scale: scale, Budget: budget, Priority: priority})
					idx := bundleIndex(t, opt)
					assert.GreaterOrEqual(t, idx, prev, "%s/%s/%s at scale %s went down the ladder", typ, budget, priority, scale)
					prev = idx
				}
			}
		}

		plain := bundleIndex(t, o.Optimize(detector.Analysis{DetectedType: typ}, Preference{}))
		memory := bundleIndex(t, o.Optimize(detector.Analysis{
			DetectedType:        typ,
			InfrastructureNeeds: detector.InfrastructureNeeds{MemoryIntensive: true},
		}, Preference{}))
		assert.GreaterOrEqual(t, memory, plain, "memory intensity lowered the bundle for %s", typ)
	}
}

func TestOptimize_ScoresBounded(t *testing.T) {
	o := NewOptimizer(nil)
	a := detector.Analysis{
		DetectedType:           rules.TypePython,
		Databases:              []detector.Database{{Name: "postgresql", Kind: "postgresql"}},
		StorageNeeds:           detector.StorageNeeds{NeedsBucket: true},
		SecurityConsiderations: detector.SecurityConsiderations{HandlesUserData: true},
	}

	for _, scale := range []Scale{ScaleSmall, ScaleMedium, ScaleLarge} {
		for _, priority := range []Priority{PriorityCost, PriorityBalanced, PriorityPerformance} {
			opt := o.Optimize(a, Preference{Scale: scale, Priority: priority})
			assert.GreaterOrEqual(t, opt.PerformanceScore, 0)
			assert.LessOrEqual(t, opt.PerformanceScore, 100)
			assert.GreaterOrEqual(t, opt.CostEfficiencyScore, 0)
			assert.LessOrEqual(t, opt.CostEfficiencyScore, 100)
			assert.InDelta(t, opt.CostBreakdown.Instance+opt.CostBreakdown.Database+opt.CostBreakdown.Storage, opt.CostBreakdown.Total, 1e-9)
		}
	}
}

func TestOptimize_RecommendationOrder(t *testing.T) {
	a := detector.Analysis{
		DetectedType:           rules.TypeNodeJS,
		Databases:              []detector.Database{{Name: "mysql", Kind: "mysql"}},
		SecurityConsiderations: detector.SecurityConsiderations{HandlesUserData: true},
	}

	opt := NewOptimizer(nil).Optimize(a, Preference{Priority: PriorityPerformance})

	// small bundle, local medium database at $30: 10 + 30 is under the alert
	assert.Equal(t, []string{"reliability", "security"}, recTypes(opt.Recommendations))
	assert.Equal(t, "high", opt.Recommendations[1].Priority)
}

func TestPreference_NormalizeAndValidate(t *testing.T) {
	assert.Equal(t, DefaultPreference, Preference{}.Normalize())

	odd := Preference{Budget: "lavish", Scale: ScaleLarge, Environment: "qa", Priority: "speed"}
	assert.Equal(t, Preference{Budget: BudgetStandard, Scale: ScaleLarge, Environment: EnvProduction, Priority: PriorityBalanced}, odd.Normalize())
	assert.Error(t, odd.Validate())

	assert.NoError(t, Preference{}.Validate())
	assert.NoError(t, Preference{Budget: BudgetMinimal, Environment: EnvDevelopment}.Validate())

	// unknown values optimize the same way as defaults
	o := NewOptimizer(nil)
	a := detector.Analysis{DetectedType: rules.TypeLAMP}
	assert.Equal(t, o.Optimize(a, Preference{}), o.Optimize(a, Preference{Budget: "lavish", Priority: "speed"}))
}
