package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// AWSConfigPath returns the shared AWS config file location
func AWSConfigPath() string {
	if p := os.Getenv(EnvAWSConfigFile); p != "" {
		return p
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".aws", "config")
}

// RegionFromAWSConfig reads the region of a profile from a shared config
// file. Named profiles live under "[profile NAME]"; plain "[NAME]" sections
// are accepted too.
func RegionFromAWSConfig(configPath, profile string) (string, error) {
	if profile == "" {
		profile = "default"
	}

	cfg, err := ini.Load(configPath)
	if err != nil {
		return "", fmt.Errorf("failed to load AWS config file: %w", err)
	}

	names := []string{"profile " + profile, profile}
	if profile == "default" {
		names = []string{"default", "profile default"}
	}

	for _, name := range names {
		section, err := cfg.GetSection(name)
		if err != nil {
			continue
		}
		if region := strings.TrimSpace(section.Key("region").String()); region != "" {
			return region, nil
		}
	}
	return "", fmt.Errorf("no region for profile '%s' in %s", profile, configPath)
}

// ResolveRegion picks the deployment region. The first non-empty source
// wins: explicit flag, stackplan config, AWS_REGION, AWS_DEFAULT_REGION,
// the AWS shared config profile, then the default.
func ResolveRegion(flag string, cfg *Config) string {
	if flag != "" {
		return flag
	}
	if cfg != nil && cfg.Region != "" {
		return cfg.Region
	}
	for _, env := range []string{EnvAWSRegion, EnvAWSDefaultRegion} {
		if region := os.Getenv(env); region != "" {
			return region
		}
	}
	if path := AWSConfigPath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			if region, err := RegionFromAWSConfig(path, os.Getenv(EnvAWSProfile)); err == nil {
				return region
			}
		}
	}
	return DefaultRegion
}
