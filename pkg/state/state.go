package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"stackplan/pkg/config"
	"stackplan/pkg/rules"
)

// PlanState records the last plan generated for an application
type PlanState struct {
	Digest       string        `json:"digest"`
	LastPlan     time.Time     `json:"last_plan"`
	DetectedType rules.AppType `json:"detected_type"`
	Bundle       string        `json:"bundle"`
	MonthlyTotal float64       `json:"monthly_total"`
	Artifacts    []string      `json:"artifacts,omitempty"`
}

// Store keeps one state file per application under a directory
type Store struct {
	dir string
}

// GetStatePath returns the default state directory
func GetStatePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(config.LocalConfigDir, "state")
	}
	return filepath.Join(homeDir, config.LocalConfigDir, "state")
}

func NewStore(dir string) *Store {
	if dir == "" {
		dir = GetStatePath()
	}
	return &Store{dir: dir}
}

func (s *Store) path(appName string) string {
	return filepath.Join(s.dir, appName+".json")
}

// Load returns the saved state for appName, or nil when none exists
func (s *Store) Load(appName string) (*PlanState, error) {
	data, err := os.ReadFile(s.path(appName))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var st PlanState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	return &st, nil
}

func (s *Store) Save(appName string, st *PlanState) error {
	if err := os.MkdirAll(s.dir, config.PermDirectory); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(s.path(appName), data, config.PermConfigFile); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// Record saves st and reports whether the project changed since the
// previous plan. A first plan counts as changed.
func (s *Store) Record(appName string, st *PlanState) (changed bool, err error) {
	prev, err := s.Load(appName)
	if err != nil {
		return true, err
	}
	if st.LastPlan.IsZero() {
		st.LastPlan = time.Now()
	}
	if err := s.Save(appName, st); err != nil {
		return true, err
	}
	return prev == nil || prev.Digest != st.Digest, nil
}
