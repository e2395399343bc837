package util

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	githubSSH   = regexp.MustCompile(`^git@github\.com:([^/]+)/(.+?)(\.git)?$`)
	githubHTTPS = regexp.MustCompile(`^https://github\.com/([^/]+)/(.+?)(\.git)?$`)
)

// IsGitRepository checks if the given path is a Git repository
func IsGitRepository(projectPath string) bool {
	info, err := os.Stat(filepath.Join(projectPath, ".git"))
	if err != nil {
		return false
	}
	return info.IsDir()
}

// GetGitRemoteURL returns the remote origin URL for the Git repository
func GetGitRemoteURL(projectPath string) (string, error) {
	if !IsGitRepository(projectPath) {
		return "", fmt.Errorf("not a git repository: %s", projectPath)
	}

	output, err := exec.Command("git", "-C", projectPath, "config", "--get", "remote.origin.url").Output()
	if err != nil {
		return "", fmt.Errorf("failed to get git remote URL: %w", err)
	}

	remoteURL := strings.TrimSpace(string(output))
	if remoteURL == "" {
		return "", fmt.Errorf("no remote origin URL configured")
	}
	return remoteURL, nil
}

// ParseGitHubRepo extracts the organization and repository name from a GitHub URL
// Supports both SSH (git@github.com:org/repo.git) and HTTPS (https://github.com/org/repo.git) formats
func ParseGitHubRepo(remoteURL string) (org, repo string, err error) {
	remoteURL = strings.TrimSpace(remoteURL)

	for _, re := range []*regexp.Regexp{githubSSH, githubHTTPS} {
		if m := re.FindStringSubmatch(remoteURL); len(m) >= 3 {
			return m[1], strings.TrimSuffix(m[2], ".git"), nil
		}
	}
	return "", "", fmt.Errorf("not a valid GitHub repository URL: %s", remoteURL)
}

// GitHubRepository returns "org/repo" for a project hosted on GitHub, or an
// empty string when the origin is missing or elsewhere
func GitHubRepository(projectPath string) string {
	remoteURL, err := GetGitRemoteURL(projectPath)
	if err != nil {
		return ""
	}
	org, repo, err := ParseGitHubRepo(remoteURL)
	if err != nil {
		return ""
	}
	return org + "/" + repo
}
