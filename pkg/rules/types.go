package rules

import (
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// AppType is an application category the classifier can settle on
type AppType string

const (
	TypeNodeJS  AppType = "nodejs"
	TypeReact   AppType = "react"
	TypePython  AppType = "python"
	TypeLAMP    AppType = "lamp"
	TypeDocker  AppType = "docker"
	TypeNginx   AppType = "nginx"
	TypeUnknown AppType = "unknown"
)

// Match describes which files a rule looks at and what it looks for.
// Filenames entries of the form "*.ext" match by extension.
type Match struct {
	Filenames  []string
	Substrings []string
}

// AppliesTo reports whether the file is a candidate for this rule
func (m Match) AppliesTo(filePath string) bool {
	p := strings.ReplaceAll(filePath, "\\", "/")
	base := path.Base(p)
	for _, name := range m.Filenames {
		if strings.HasPrefix(name, "*.") {
			if strings.HasSuffix(base, name[1:]) {
				return true
			}
			continue
		}
		if base == name || strings.Contains(p, name) {
			return true
		}
	}
	return false
}

// Found returns the first substring present in content, case-sensitive
func (m Match) Found(content string) (string, bool) {
	if content == "" {
		return "", false
	}
	for _, s := range m.Substrings {
		if strings.Contains(content, s) {
			return s, true
		}
	}
	return "", false
}

// FrameworkRule feeds a category score when it fires on a file
type FrameworkRule struct {
	Name     string
	Category AppType
	Match
}

// DatabaseRule populates the detected database list
type DatabaseRule struct {
	Name string
	Kind string
	Match
}

// KeywordSet is an unordered bag of case-sensitive keywords
type KeywordSet []string

// Any reports whether content contains any keyword in the set
func (k KeywordSet) Any(content string) bool {
	for _, kw := range k {
		if strings.Contains(content, kw) {
			return true
		}
	}
	return false
}

// Phrase maps a lowercase free-text phrase to a synthetic framework,
// database or bundle hint
type Phrase struct {
	Phrase     string
	Framework  string
	Category   AppType
	Database   string
	Confidence float64
	BundleHint string
}

// CostRange is a monthly USD band
type CostRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Bundle is one rung of the compute ladder
type Bundle struct {
	Name          string             `json:"name"`
	ID            string             `json:"id"`
	VCPU          int                `json:"vcpu"`
	RAMGB         float64            `json:"ram_gb"`
	DiskGB        int                `json:"disk_gb"`
	PriceMonthly  float64            `json:"price_monthly"`
	EC2Equivalent types.InstanceType `json:"ec2_equivalent"`
	CostBand      CostRange          `json:"-"`
}

// BucketPlan is an object storage size
type BucketPlan struct {
	Size         string  `json:"size"`
	StorageGB    int     `json:"storage_gb"`
	PriceMonthly float64 `json:"price_monthly"`
}

// HealthCheck describes how a deployed application type is probed
type HealthCheck struct {
	Path            string
	Port            int
	ExpectedContent string
}

// Dependency is a runtime component the descriptor can enable
type Dependency struct {
	Name    string
	Version string
}

// Weights are the fixed per-family hit confidences
type Weights struct {
	Framework           float64
	Database            float64
	InfraHint           float64
	DescriptionDatabase float64
}

// Fallback is applied when the primary signal is too weak to classify.
// A database-only project is treated as a traditional server-rendered stack;
// this is a crude default and callers needing precision should read
// Analysis.Confidence instead.
type Fallback struct {
	Threshold          float64
	DockerConfidence   float64
	DatabaseType       AppType
	DatabaseConfidence float64
}
