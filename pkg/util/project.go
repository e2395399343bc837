package util

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultAppName is used when a name sanitizes to nothing
const DefaultAppName = "app"

var appNamePattern = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)

// ValidateProjectPath validates and cleans a project path
// Returns the cleaned absolute path or an error
func ValidateProjectPath(projectPath string) (string, error) {
	projectPath = filepath.Clean(projectPath)

	info, err := os.Stat(projectPath)
	if err != nil {
		return "", fmt.Errorf("cannot access path '%s': %w", projectPath, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path '%s' is not a directory", projectPath)
	}

	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return projectPath, nil
	}
	return absPath, nil
}

// SanitizeAppName reduces a name to letters, digits, dots and hyphens.
// Underscores become hyphens; anything else is dropped.
func SanitizeAppName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		case r == '_':
			b.WriteRune('-')
		}
	}

	sanitized := strings.Trim(b.String(), ".-")
	if sanitized == "" {
		return DefaultAppName
	}
	return sanitized
}

// AppNameFromPath derives an application name from a project directory
func AppNameFromPath(projectPath string) string {
	return SanitizeAppName(filepath.Base(filepath.Clean(projectPath)))
}

// ValidAppName reports whether name is already in sanitized form
func ValidAppName(name string) bool {
	return appNamePattern.MatchString(name)
}
