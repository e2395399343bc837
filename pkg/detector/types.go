package detector

import "stackplan/pkg/rules"

// FileArtifact is one collected project file. Content may be a truncated
// prefix of the file.
type FileArtifact struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Source records where a framework signal came from
type Source string

const (
	SourceFile        Source = "file"
	SourceDescription Source = "description"
)

// Complexity is the deployment complexity tier
type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderate"
	ComplexityComplex  Complexity = "complex"
)

// Framework is a detected framework or platform
type Framework struct {
	Name       string        `json:"name"`
	Category   rules.AppType `json:"category"`
	Confidence float64       `json:"confidence"`
	Source     Source        `json:"source"`
}

// Database is a detected database engine
type Database struct {
	Name       string  `json:"name"`
	Kind       string  `json:"kind"`
	Confidence float64 `json:"confidence"`
}

type StorageNeeds struct {
	FileUploads     bool `json:"file_uploads"`
	ImageProcessing bool `json:"image_processing"`
	NeedsBucket     bool `json:"needs_bucket"`
}

type SecurityConsiderations struct {
	HandlesUserData bool `json:"handles_user_data"`
	NeedsAuth       bool `json:"needs_auth"`
	NeedsSSL        bool `json:"needs_ssl"`
	FileUploads     bool `json:"file_uploads"`
}

type InfrastructureNeeds struct {
	MemoryIntensive  bool   `json:"memory_intensive"`
	CPUIntensive     bool   `json:"cpu_intensive"`
	NetworkIntensive bool   `json:"network_intensive"`
	BundleSizeHint   string `json:"bundle_size_hint"`
}

type EstimatedCost struct {
	MonthlyMin float64 `json:"monthly_min"`
	MonthlyMax float64 `json:"monthly_max"`
}

// Analysis is the classifier's view of a project
type Analysis struct {
	DetectedType           rules.AppType          `json:"detected_type"`
	Confidence             float64                `json:"confidence"`
	Frameworks             []Framework            `json:"frameworks"`
	Databases              []Database             `json:"databases"`
	StorageNeeds           StorageNeeds           `json:"storage_needs"`
	SecurityConsiderations SecurityConsiderations `json:"security_considerations"`
	InfrastructureNeeds    InfrastructureNeeds    `json:"infrastructure_needs"`
	DeploymentComplexity   Complexity             `json:"deployment_complexity"`
	EstimatedCost          EstimatedCost          `json:"estimated_cost"`
	Signals                []string               `json:"signals"`
	PackageManager         *PackageManager        `json:"package_manager,omitempty"`
}

// HasDatabase reports whether any database was detected
func (a Analysis) HasDatabase() bool {
	return len(a.Databases) > 0
}
