package emitter

import (
	"fmt"
	"sort"

	"stackplan/pkg/detector"
	"stackplan/pkg/emitter/document"
	"stackplan/pkg/optimizer"
	"stackplan/pkg/rules"
)

const (
	backupSchedule          = "0 3 * * *"
	productionRetentionDays = 7
	defaultRetentionDays    = 1
	healthCheckInterval     = 30
	healthCheckTimeout      = 5
)

var baseFirewallPorts = []int{22, 80, 443}

// descriptor builds the deployment document. Blocks that do not apply are
// left nil so the formatter drops them.
func (e *Emitter) descriptor(a detector.Analysis, opt optimizer.Optimization, n Naming, env optimizer.Environment) document.Map {
	appType := a.DetectedType
	if appType == "" {
		appType = rules.TypeUnknown
	}
	health := e.tables.HealthCheckFor(appType)

	deployment := document.Map{}.
		Set("name", n.AppName).
		Set("environment", string(env)).
		Set("region", n.Region).
		Set("instance", instanceBlock(opt.RecommendedBundle, n)).
		Set("application", e.applicationBlock(a, appType, n)).
		Set("dependencies", e.dependenciesBlock(a, appType)).
		Set("database", databaseBlock(opt.DatabaseConfig)).
		Set("bucket", bucketBlock(opt.BucketConfig, n, env)).
		Set("steps", e.stepsBlock()).
		Set("monitoring", document.Map{}.Set("healthCheck", document.Map{}.
			Set("path", health.Path).
			Set("port", health.Port).
			Set("expectedContent", health.ExpectedContent).
			Set("intervalSeconds", healthCheckInterval).
			Set("timeoutSeconds", healthCheckTimeout))).
		Set("security", e.securityBlock(a, appType, health)).
		Set("backup", backupBlock(opt.DatabaseConfig, env)).
		Set("cost", costBlock(opt)).
		Set("recommendations", recommendationsBlock(opt.Recommendations))

	return document.Map{}.Set("deployment", deployment)
}

func packageManagerBlock(pm *detector.PackageManager) document.Map {
	if pm == nil {
		return nil
	}
	block := document.Map{}.
		Set("name", pm.Name).
		Set("install", pm.Install)
	if pm.Build != "" {
		block = block.Set("build", pm.Build)
	}
	return block
}

func instanceBlock(b rules.Bundle, n Naming) document.Map {
	return document.Map{}.
		Set("name", n.InstanceName).
		Set("bundle", b.Name).
		Set("bundleId", b.ID).
		Set("vcpu", b.VCPU).
		Set("ramGb", b.RAMGB).
		Set("diskGb", b.DiskGB).
		Set("ec2Equivalent", string(b.EC2Equivalent))
}

func (e *Emitter) applicationBlock(a detector.Analysis, appType rules.AppType, n Naming) document.Map {
	var frameworks []string
	for _, f := range a.Frameworks {
		frameworks = append(frameworks, f.Name)
	}

	block := document.Map{}.
		Set("type", string(appType)).
		Set("confidence", a.Confidence).
		Set("frameworks", frameworks).
		Set("sourceDir", n.SourceDir).
		Set("files", e.tables.FilesFor(appType)).
		Set("packageManager", packageManagerBlock(a.PackageManager))

	if n.Repository != "" {
		block = block.Set("repository", n.Repository)
	}
	if len(n.EnvKeys) > 0 {
		keys := append([]string(nil), n.EnvKeys...)
		sort.Strings(keys)
		block = block.Set("environmentVariables", keys)
	}
	return block
}

// dependenciesBlock lists every catalogued component. Versions appear only
// for enabled components.
func (e *Emitter) dependenciesBlock(a detector.Analysis, appType rules.AppType) document.Map {
	enabled := make(map[string]bool)
	for _, name := range e.tables.DependenciesFor(appType) {
		enabled[name] = true
	}
	for _, db := range a.Databases {
		enabled[db.Kind] = true
	}
	if a.SecurityConsiderations.NeedsSSL {
		enabled["certbot"] = true
	}

	deps := document.Map{}
	for _, d := range e.tables.Dependencies {
		block := document.Map{}.Set("enabled", enabled[d.Name])
		if enabled[d.Name] && d.Version != "" {
			block = block.Set("version", d.Version)
		}
		deps = deps.Set(d.Name, block)
	}
	return deps
}

func databaseBlock(db *optimizer.DatabaseConfig) document.Map {
	if db == nil {
		return nil
	}
	return document.Map{}.
		Set("engine", db.Engine).
		Set("size", db.Size).
		Set("external", db.External).
		Set("multiAz", db.MultiAZ).
		Set("monthlyCost", db.MonthlyCost)
}

func bucketBlock(b *optimizer.BucketConfig, n Naming, env optimizer.Environment) document.Map {
	if b == nil {
		return nil
	}
	return document.Map{}.
		Set("name", fmt.Sprintf("%s-%s-assets", n.AppName, env)).
		Set("size", b.Size).
		Set("storageGb", b.StorageGB).
		Set("monthlyCost", b.MonthlyCost)
}

func (e *Emitter) stepsBlock() []document.Map {
	steps := make([]document.Map, 0, len(e.tables.DeploymentPhases))
	for i, phase := range e.tables.DeploymentPhases {
		steps = append(steps, document.Map{}.Set("name", phase).Set("order", i+1))
	}
	return steps
}

func (e *Emitter) securityBlock(a detector.Analysis, appType rules.AppType, health rules.HealthCheck) document.Map {
	sec := a.SecurityConsiderations

	ports := append([]int(nil), baseFirewallPorts...)
	if !containsPort(ports, health.Port) {
		ports = append(ports, health.Port)
	}
	sort.Ints(ports)

	return document.Map{}.
		Set("strictMode", sec.HandlesUserData || sec.NeedsAuth).
		Set("rateLimiting", e.tables.RateLimited(appType)).
		Set("ssl", sec.NeedsSSL).
		Set("fileUploads", sec.FileUploads).
		Set("firewall", document.Map{}.Set("allowedPorts", ports))
}

func containsPort(ports []int, port int) bool {
	for _, p := range ports {
		if p == port {
			return true
		}
	}
	return false
}

func backupBlock(db *optimizer.DatabaseConfig, env optimizer.Environment) document.Map {
	retention := defaultRetentionDays
	if env == optimizer.EnvProduction {
		retention = productionRetentionDays
	}
	return document.Map{}.
		Set("enabled", env == optimizer.EnvProduction || db != nil).
		Set("schedule", backupSchedule).
		Set("retentionDays", retention)
}

func costBlock(opt optimizer.Optimization) document.Map {
	c := opt.CostBreakdown
	return document.Map{}.
		Set("instance", c.Instance).
		Set("database", c.Database).
		Set("storage", c.Storage).
		Set("monthlyTotal", c.Total).
		Set("performanceScore", opt.PerformanceScore).
		Set("costEfficiencyScore", opt.CostEfficiencyScore)
}

func recommendationsBlock(recs []optimizer.Recommendation) []document.Map {
	if len(recs) == 0 {
		return nil
	}
	out := make([]document.Map, 0, len(recs))
	for _, r := range recs {
		out = append(out, document.Map{}.
			Set("type", r.Type).
			Set("priority", r.Priority).
			Set("message", r.Message))
	}
	return out
}
