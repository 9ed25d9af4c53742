package stats_test

import (
	"math"
	"testing"

	"github.com/edgesplit/edgesplit/internal/bucket"
	"github.com/edgesplit/edgesplit/internal/stats"
)

func buildDef(t *testing.T, buckets []string, weight string) *bucket.TestDefinition {
	t.Helper()

	cat, err := bucket.Build(bucket.RawConfig{
		Active: []string{"t"},
		Tests:  map[string]bucket.RawTest{"t": {Buckets: buckets, Weight: weight}},
	})
	if err != nil {
		t.Fatalf("failed to build definition: %v", err)
	}
	def, _ := cat.Get("t")
	return def
}

func TestAnalyze_MatchingDistribution(t *testing.T) {
	def := buildDef(t, []string{"small", "medium", "large"}, "7:3:2")

	// Counts exactly proportional to 7:3:2.
	result := stats.Analyze(def, map[string]int{"small": 700, "medium": 300, "large": 200})

	if result.Total != 1200 {
		t.Errorf("expected total 1200, got %d", result.Total)
	}
	if result.Mismatch {
		t.Error("exact proportional counts flagged as mismatch")
	}
	if result.ChiSq != 0 {
		t.Errorf("expected chi-squared 0 for exact counts, got %f", result.ChiSq)
	}

	wantExpected := []float64{7.0 / 12, 3.0 / 12, 2.0 / 12}
	for i, s := range result.Shares {
		if math.Abs(s.Expected-wantExpected[i]) > 1e-9 {
			t.Errorf("bucket %s: expected share %f, got %f", s.Bucket, wantExpected[i], s.Expected)
		}
		if math.Abs(s.Observed-wantExpected[i]) > 1e-9 {
			t.Errorf("bucket %s: observed share %f, want %f", s.Bucket, s.Observed, wantExpected[i])
		}
	}
}

func TestAnalyze_DetectsGrossMismatch(t *testing.T) {
	def := buildDef(t, []string{"a", "b"}, "1:1")

	// A 1:1 test where one side got 10x the traffic is broken.
	result := stats.Analyze(def, map[string]int{"a": 1000, "b": 100})

	if !result.Mismatch {
		t.Errorf("gross imbalance not flagged (chi-squared %f)", result.ChiSq)
	}
}

func TestAnalyze_SmallNoiseNotFlagged(t *testing.T) {
	def := buildDef(t, []string{"a", "b"}, "1:1")

	result := stats.Analyze(def, map[string]int{"a": 505, "b": 495})

	if result.Mismatch {
		t.Errorf("normal sampling noise flagged as mismatch (chi-squared %f)", result.ChiSq)
	}
}

func TestAnalyze_NoData(t *testing.T) {
	def := buildDef(t, []string{"a", "b"}, "1:1")

	result := stats.Analyze(def, nil)

	if result.Total != 0 || result.Mismatch {
		t.Errorf("empty counts should not flag a mismatch: %+v", result)
	}
	if len(result.Shares) != 2 {
		t.Errorf("expected shares for both buckets, got %d", len(result.Shares))
	}
}

func TestAnalyze_ZeroWeightBucketWithTraffic(t *testing.T) {
	def := buildDef(t, []string{"off", "on"}, "0:1")

	result := stats.Analyze(def, map[string]int{"off": 5, "on": 100})

	if !result.Mismatch {
		t.Error("visitors in an unreachable bucket must be flagged")
	}
}
