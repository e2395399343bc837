package emitter

import (
	"fmt"
	"path"
	"strings"

	"stackplan/pkg/util"
)

const (
	DefaultRegion           = "us-east-1"
	DefaultReusableWorkflow = "./.github/workflows/reusable-deploy.yml"
)

// Naming carries the caller-chosen names and locations for the artifacts.
// Only AppName is required.
type Naming struct {
	AppName          string
	InstanceName     string
	Region           string
	SourceDir        string
	DescriptorPath   string
	ReusableWorkflow string

	// Optional project metadata copied into the descriptor
	Repository string
	EnvKeys    []string
}

// Validate checks the required fields
func (n Naming) Validate() error {
	if strings.TrimSpace(n.AppName) == "" {
		return &ValidationError{Field: "appName", Reason: "is required"}
	}
	if !util.ValidAppName(n.AppName) {
		return &ValidationError{
			Field:  "appName",
			Reason: fmt.Sprintf("%q must use letters, digits, dots and hyphens only", n.AppName),
		}
	}
	if n.SourceDir != "" && (path.IsAbs(n.SourceDir) || strings.Contains(n.SourceDir, "..")) {
		return &ValidationError{Field: "sourceDir", Reason: fmt.Sprintf("%q must be a path inside the repository", n.SourceDir)}
	}
	return nil
}

// WithDefaults fills optional fields from AppName
func (n Naming) WithDefaults() Naming {
	if n.InstanceName == "" {
		n.InstanceName = n.AppName + "-instance"
	}
	if n.Region == "" {
		n.Region = DefaultRegion
	}
	if n.SourceDir == "" {
		n.SourceDir = n.AppName
	}
	n.SourceDir = strings.Trim(path.Clean(n.SourceDir), "/")
	if n.DescriptorPath == "" {
		n.DescriptorPath = fmt.Sprintf("deployment-%s.config.yml", n.AppName)
	}
	if n.ReusableWorkflow == "" {
		n.ReusableWorkflow = DefaultReusableWorkflow
	}
	return n
}

// PipelinePath is where the workflow lives relative to the repository root
func (n Naming) PipelinePath() string {
	return fmt.Sprintf(".github/workflows/deploy-%s.yml", n.AppName)
}
