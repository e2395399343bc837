package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"stackplan/pkg/rules"
)

func TestLoad_Missing(t *testing.T) {
	store := NewStore(t.TempDir())

	st, err := store.Load("shop")
	if err != nil {
		t.Fatalf("Expected no error for missing state, got: %v", err)
	}
	if st != nil {
		t.Errorf("Expected nil state, got %+v", st)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	store := NewStore(dir)

	when := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	want := &PlanState{
		Digest:       "0123456789abcdef",
		LastPlan:     when,
		DetectedType: rules.TypeNodeJS,
		Bundle:       "micro",
		MonthlyTotal: 20,
		Artifacts:    []string{"deployment-shop.config.yml"},
	}
	if err := store.Save("shop", want); err != nil {
		t.Fatalf("Failed to save state: %v", err)
	}

	got, err := store.Load("shop")
	if err != nil {
		t.Fatalf("Failed to load state: %v", err)
	}
	if got.Digest != want.Digest || got.Bundle != want.Bundle || got.DetectedType != want.DetectedType {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
	if !got.LastPlan.Equal(when) {
		t.Errorf("Expected LastPlan %v, got %v", when, got.LastPlan)
	}
}

func TestLoad_Corrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "shop.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := NewStore(dir).Load("shop"); err == nil {
		t.Error("Expected error for corrupt state file")
	}
}

func TestRecord_DetectsChanges(t *testing.T) {
	store := NewStore(t.TempDir())

	changed, err := store.Record("shop", &PlanState{Digest: "aaaa"})
	if err != nil || !changed {
		t.Fatalf("Expected first plan to count as changed, got %v (err %v)", changed, err)
	}

	changed, err = store.Record("shop", &PlanState{Digest: "aaaa"})
	if err != nil || changed {
		t.Errorf("Expected identical digest to be unchanged, got %v (err %v)", changed, err)
	}

	changed, err = store.Record("shop", &PlanState{Digest: "bbbb"})
	if err != nil || !changed {
		t.Errorf("Expected new digest to count as changed, got %v (err %v)", changed, err)
	}

	st, err := store.Load("shop")
	if err != nil {
		t.Fatalf("Failed to load state: %v", err)
	}
	if st.LastPlan.IsZero() {
		t.Error("Expected LastPlan to be stamped")
	}
}
