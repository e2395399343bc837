package optimizer

import (
	"fmt"

	"stackplan/pkg/rules"
)

type Budget string

const (
	BudgetMinimal     Budget = "minimal"
	BudgetStandard    Budget = "standard"
	BudgetPerformance Budget = "performance"
)

type Scale string

const (
	ScaleSmall  Scale = "small"
	ScaleMedium Scale = "medium"
	ScaleLarge  Scale = "large"
)

type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

type Priority string

const (
	PriorityCost        Priority = "cost"
	PriorityPerformance Priority = "performance"
	PriorityBalanced    Priority = "balanced"
)

// Environments lists every deployment environment in promotion order
var Environments = []Environment{EnvDevelopment, EnvStaging, EnvProduction}

// Preference captures what the user wants from the deployment. Every field
// is optional.
type Preference struct {
	Budget      Budget      `json:"budget,omitempty" mapstructure:"budget"`
	Scale       Scale       `json:"scale,omitempty" mapstructure:"scale"`
	Environment Environment `json:"environment,omitempty" mapstructure:"environment"`
	Priority    Priority    `json:"priority,omitempty" mapstructure:"priority"`
}

// DefaultPreference is used for any field left empty
var DefaultPreference = Preference{
	Budget:      BudgetStandard,
	Scale:       ScaleSmall,
	Environment: EnvProduction,
	Priority:    PriorityBalanced,
}

// Validate rejects values outside the known tiers. Empty fields are valid.
func (p Preference) Validate() error {
	if p.Budget != "" && !oneOf(p.Budget, BudgetMinimal, BudgetStandard, BudgetPerformance) {
		return fmt.Errorf("invalid budget %q (want minimal, standard or performance)", p.Budget)
	}
	if p.Scale != "" && !oneOf(p.Scale, ScaleSmall, ScaleMedium, ScaleLarge) {
		return fmt.Errorf("invalid scale %q (want small, medium or large)", p.Scale)
	}
	if p.Environment != "" && !oneOf(p.Environment, Environments...) {
		return fmt.Errorf("invalid environment %q (want development, staging or production)", p.Environment)
	}
	if p.Priority != "" && !oneOf(p.Priority, PriorityCost, PriorityPerformance, PriorityBalanced) {
		return fmt.Errorf("invalid priority %q (want cost, performance or balanced)", p.Priority)
	}
	return nil
}

// Normalize fills empty or unrecognised fields with their defaults
func (p Preference) Normalize() Preference {
	if !oneOf(p.Budget, BudgetMinimal, BudgetStandard, BudgetPerformance) {
		p.Budget = DefaultPreference.Budget
	}
	if !oneOf(p.Scale, ScaleSmall, ScaleMedium, ScaleLarge) {
		p.Scale = DefaultPreference.Scale
	}
	if !oneOf(p.Environment, Environments...) {
		p.Environment = DefaultPreference.Environment
	}
	if !oneOf(p.Priority, PriorityCost, PriorityPerformance, PriorityBalanced) {
		p.Priority = DefaultPreference.Priority
	}
	return p
}

func oneOf[T comparable](v T, options ...T) bool {
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}

// DatabaseConfig is the sized database topology
type DatabaseConfig struct {
	Engine      string  `json:"engine"`
	Size        string  `json:"size"`
	External    bool    `json:"external"`
	MultiAZ     bool    `json:"multi_az"`
	MonthlyCost float64 `json:"monthly_cost"`
}

// BucketConfig is the sized object storage
type BucketConfig struct {
	Size        string  `json:"size"`
	StorageGB   int     `json:"storage_gb"`
	MonthlyCost float64 `json:"monthly_cost"`
}

type CostBreakdown struct {
	Instance float64 `json:"instance"`
	Database float64 `json:"database"`
	Storage  float64 `json:"storage"`
	Total    float64 `json:"total"`
}

// Recommendation is a non-blocking advisory note
type Recommendation struct {
	Type     string `json:"type"`
	Priority string `json:"priority"`
	Message  string `json:"message"`
	Impact   string `json:"impact"`
}

// Optimization is the optimizer's decision for one analysis and preference
type Optimization struct {
	RecommendedBundle   rules.Bundle     `json:"recommended_bundle"`
	DatabaseConfig      *DatabaseConfig  `json:"database_config"`
	BucketConfig        *BucketConfig    `json:"bucket_config"`
	CostBreakdown       CostBreakdown    `json:"cost_breakdown"`
	PerformanceScore    int              `json:"performance_score"`
	CostEfficiencyScore int              `json:"cost_efficiency_score"`
	Recommendations     []Recommendation `json:"recommendations"`
	Environment         Environment      `json:"environment"`
}
