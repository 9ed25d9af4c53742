package bucket_test

import (
	"testing"

	"github.com/edgesplit/edgesplit/internal/bucket"
)

func fixedDraw(v int) bucket.DrawFunc {
	return func(string, int) int { return v }
}

// A draw source that fails the test if consulted. Used to prove that valid
// existing assignments are reused without touching randomness.
func forbiddenDraw(t *testing.T) bucket.DrawFunc {
	return func(name string, total int) int {
		t.Fatalf("draw consulted for %s despite valid existing assignment", name)
		return 0
	}
}

func TestResolve_NewVisitor(t *testing.T) {
	cat, err := bucket.Build(demoConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	set := bucket.Resolve(bucket.AssignmentSet{}, cat, fixedDraw(0))

	if len(set) != 2 {
		t.Fatalf("expected assignments for 2 tests, got %d", len(set))
	}
	if a := set["itemcount"]; a.Label != "10" || a.Index != 0 {
		t.Errorf("itemcount: expected index 0 label 10, got %d %s", a.Index, a.Label)
	}
	if a := set["buttonsize"]; a.Label != "small" {
		t.Errorf("buttonsize: expected small for draw 0, got %s", a.Label)
	}
}

func TestResolve_Sticky(t *testing.T) {
	cat, err := bucket.Build(demoConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	existing := bucket.AssignmentSet{
		"itemcount":  {Test: "itemcount", Index: 1, Label: "15"},
		"buttonsize": {Test: "buttonsize", Index: 2, Label: "large"},
	}

	set := bucket.Resolve(existing, cat, forbiddenDraw(t))

	if a := set["itemcount"]; a.Index != 1 || a.Label != "15" {
		t.Errorf("itemcount assignment changed: got %d %s", a.Index, a.Label)
	}
	if a := set["buttonsize"]; a.Index != 2 || a.Label != "large" {
		t.Errorf("buttonsize assignment changed: got %d %s", a.Index, a.Label)
	}
}

func TestResolve_ReassignsOnLabelMismatch(t *testing.T) {
	// Bucket list was reordered between reloads: the stored index now points
	// at a different label, so the assignment is stale.
	cat, err := bucket.Build(bucket.RawConfig{
		Active: []string{"itemcount"},
		Tests: map[string]bucket.RawTest{
			"itemcount": {Buckets: []string{"15", "10"}, Weight: "1:1"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	existing := bucket.AssignmentSet{
		"itemcount": {Test: "itemcount", Index: 0, Label: "10"},
	}

	set := bucket.Resolve(existing, cat, fixedDraw(1))

	if a := set["itemcount"]; a.Index != 1 || a.Label != "10" {
		t.Errorf("expected fresh assignment index 1 label 10, got %d %s", a.Index, a.Label)
	}
}

func TestResolve_ReassignsOnOutOfRangeIndex(t *testing.T) {
	cat, err := bucket.Build(demoConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	existing := bucket.AssignmentSet{
		"itemcount": {Test: "itemcount", Index: 5, Label: "20"},
	}

	set := bucket.Resolve(existing, cat, fixedDraw(0))

	if a := set["itemcount"]; a.Index != 0 || a.Label != "10" {
		t.Errorf("expected fresh assignment, got %d %s", a.Index, a.Label)
	}
}

func TestResolve_DropsInactiveTests(t *testing.T) {
	cat, err := bucket.Build(demoConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	existing := bucket.AssignmentSet{
		"retired": {Test: "retired", Index: 0, Label: "a"},
	}

	set := bucket.Resolve(existing, cat, fixedDraw(0))

	if _, ok := set["retired"]; ok {
		t.Error("inactive test should be dropped from the resolved set")
	}
	if len(set) != 2 {
		t.Errorf("expected exactly the 2 active tests, got %d assignments", len(set))
	}
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	cat, err := bucket.Build(demoConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	existing := bucket.AssignmentSet{
		"retired": {Test: "retired", Index: 0, Label: "a"},
	}

	bucket.Resolve(existing, cat, fixedDraw(0))

	if len(existing) != 1 {
		t.Error("input assignment set was mutated")
	}
}
