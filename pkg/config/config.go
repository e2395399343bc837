package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"stackplan/pkg/detector"
	"stackplan/pkg/optimizer"
)

// LoggingConfig controls logrus setup
type LoggingConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"`
	Output string `json:"output" mapstructure:"output"`
}

// ScanConfig bounds directory scans
type ScanConfig struct {
	MaxDepth        int `json:"max_depth" mapstructure:"max_depth"`
	MaxContentChars int `json:"max_content_chars" mapstructure:"max_content_chars"`
	MaxFiles        int `json:"max_files" mapstructure:"max_files"`
	Concurrency     int `json:"concurrency" mapstructure:"concurrency"`
}

// Options converts the scan settings for the detector
func (s ScanConfig) Options() detector.ScanOptions {
	return detector.ScanOptions{
		MaxDepth:        s.MaxDepth,
		MaxContentChars: s.MaxContentChars,
		MaxFiles:        s.MaxFiles,
		Concurrency:     s.Concurrency,
	}
}

// WorkflowConfig controls the generated CI workflow
type WorkflowConfig struct {
	Reusable string `json:"reusable,omitempty" mapstructure:"reusable"`
}

type Config struct {
	Region     string               `json:"region,omitempty" mapstructure:"region"`
	Preference optimizer.Preference `json:"preference" mapstructure:"preference"`
	Scan       ScanConfig           `json:"scan" mapstructure:"scan"`
	Workflow   WorkflowConfig       `json:"workflow" mapstructure:"workflow"`
	Logging    LoggingConfig        `json:"logging" mapstructure:"logging"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	scan := detector.DefaultScanOptions()
	return &Config{
		Preference: optimizer.DefaultPreference,
		Scan: ScanConfig{
			MaxDepth:        scan.MaxDepth,
			MaxContentChars: scan.MaxContentChars,
			MaxFiles:        scan.MaxFiles,
			Concurrency:     scan.Concurrency,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			Output: DefaultLogOutput,
		},
	}
}

func GetConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(LocalConfigDir, LocalConfigFile)
	}
	return filepath.Join(homeDir, LocalConfigDir, LocalConfigFile)
}

func LoadConfig() (*Config, error) {
	return LoadConfigFrom(GetConfigPath())
}

// LoadConfigFrom reads a JSON config file. A missing file yields the
// defaults. STACKPLAN_* environment variables override file values, with
// dots in keys written as underscores (STACKPLAN_LOGGING_LEVEL).
func LoadConfigFrom(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")

	if _, err := os.Stat(configPath); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := config.Preference.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	d := Default()

	v.SetDefault("region", d.Region)
	v.SetDefault("preference.budget", string(d.Preference.Budget))
	v.SetDefault("preference.scale", string(d.Preference.Scale))
	v.SetDefault("preference.environment", string(d.Preference.Environment))
	v.SetDefault("preference.priority", string(d.Preference.Priority))
	v.SetDefault("scan.max_depth", d.Scan.MaxDepth)
	v.SetDefault("scan.max_content_chars", d.Scan.MaxContentChars)
	v.SetDefault("scan.max_files", d.Scan.MaxFiles)
	v.SetDefault("scan.concurrency", d.Scan.Concurrency)
	v.SetDefault("workflow.reusable", d.Workflow.Reusable)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func (c *Config) SaveConfig() error {
	return c.SaveConfigTo(GetConfigPath())
}

func (c *Config) SaveConfigTo(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), PermDirectory); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, PermConfigFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

var logLevels = []string{"trace", "debug", "info", "warn", "warning", "error", "fatal", "panic"}

// Set updates a single dotted key after validating the value
func (c *Config) Set(key, value string) error {
	switch key {
	case "region":
		c.Region = value
	case "preference.budget":
		p := c.Preference
		p.Budget = optimizer.Budget(value)
		return c.setPreference(p)
	case "preference.scale":
		p := c.Preference
		p.Scale = optimizer.Scale(value)
		return c.setPreference(p)
	case "preference.environment":
		p := c.Preference
		p.Environment = optimizer.Environment(value)
		return c.setPreference(p)
	case "preference.priority":
		p := c.Preference
		p.Priority = optimizer.Priority(value)
		return c.setPreference(p)
	case "scan.max_depth":
		return setPositive(&c.Scan.MaxDepth, key, value)
	case "scan.max_content_chars":
		return setPositive(&c.Scan.MaxContentChars, key, value)
	case "scan.max_files":
		return setPositive(&c.Scan.MaxFiles, key, value)
	case "scan.concurrency":
		return setPositive(&c.Scan.Concurrency, key, value)
	case "workflow.reusable":
		c.Workflow.Reusable = value
	case "logging.level":
		if !contains(logLevels, strings.ToLower(value)) {
			return fmt.Errorf("invalid log level %q", value)
		}
		c.Logging.Level = strings.ToLower(value)
	case "logging.format":
		if value != "text" && value != "json" {
			return fmt.Errorf("invalid log format %q (want text or json)", value)
		}
		c.Logging.Format = value
	case "logging.output":
		c.Logging.Output = value
	default:
		return fmt.Errorf("unknown config key %q (known keys: %s)", key, strings.Join(Keys(), ", "))
	}
	return nil
}

func (c *Config) setPreference(p optimizer.Preference) error {
	if err := p.Validate(); err != nil {
		return err
	}
	c.Preference = p
	return nil
}

func setPositive(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fmt.Errorf("%s must be a positive integer, got %q", key, value)
	}
	*dst = n
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// Keys lists every settable key in sorted order
func Keys() []string {
	keys := []string{
		"region",
		"preference.budget", "preference.scale", "preference.environment", "preference.priority",
		"scan.max_depth", "scan.max_content_chars", "scan.max_files", "scan.concurrency",
		"workflow.reusable",
		"logging.level", "logging.format", "logging.output",
	}
	sort.Strings(keys)
	return keys
}
