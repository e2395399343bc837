package config

// File Permissions
const (
	// PermDirectory is the file permission for directories
	PermDirectory = 0755

	// PermConfigFile is the file permission for config files
	PermConfigFile = 0644

	// PermArtifact is the file permission for generated descriptors and workflows
	PermArtifact = 0644
)

// Path Constants - Local
const (
	// LocalConfigDir is the base directory for stackplan configuration
	LocalConfigDir = ".stackplan"

	// LocalConfigFile is the filename for the main config
	LocalConfigFile = "config.json"

	// WorkflowsDir is where GitHub looks for workflow files
	WorkflowsDir = ".github/workflows"
)

// Environment
const (
	// EnvPrefix prefixes every environment override, e.g. STACKPLAN_REGION
	EnvPrefix = "STACKPLAN"

	// EnvAWSRegion and EnvAWSDefaultRegion are read when no region is configured
	EnvAWSRegion        = "AWS_REGION"
	EnvAWSDefaultRegion = "AWS_DEFAULT_REGION"

	// EnvAWSProfile selects the shared config profile
	EnvAWSProfile = "AWS_PROFILE"

	// EnvAWSConfigFile overrides the shared config location
	EnvAWSConfigFile = "AWS_CONFIG_FILE"
)

// Default Values
const (
	// DefaultRegion is used when nothing else names a region
	DefaultRegion = "us-east-1"

	// DefaultLogLevel keeps the CLI quiet unless asked
	DefaultLogLevel = "warn"

	// DefaultLogFormat is the logrus formatter name
	DefaultLogFormat = "text"

	// DefaultLogOutput is where logs go
	DefaultLogOutput = "stderr"
)
