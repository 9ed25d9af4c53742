package stats

import (
	"github.com/edgesplit/edgesplit/internal/bucket"
)

// Result compares observed bucket counts against the configured weight
// ratios for one test.
type Result struct {
	Total    int
	Shares   []BucketShare
	ChiSq    float64
	Mismatch bool // sample ratio mismatch at p < 0.001
}

// BucketShare contains observed and expected traffic share for one bucket.
type BucketShare struct {
	Bucket   string
	Weight   int
	Visitors int
	Observed float64
	Expected float64
}

// Critical values of the chi-squared distribution at p = 0.001 for degrees of
// freedom 1..10. Beyond 10 buckets the last entry is reused, which only makes
// the check more conservative.
var chiSqCritical001 = []float64{
	10.828, 13.816, 16.266, 18.467, 20.515,
	22.458, 24.322, 26.124, 27.877, 29.588,
}

// Analyze computes per-bucket shares and a chi-squared goodness-of-fit test
// of the observed counts against the configured weights. A significant
// deviation (sample ratio mismatch) usually means the assignment path is
// broken somewhere, not that one variant is winning.
func Analyze(def *bucket.TestDefinition, counts map[string]int) Result {
	result := Result{
		Shares: make([]BucketShare, len(def.Buckets)),
	}

	for _, n := range counts {
		result.Total += n
	}

	for i, b := range def.Buckets {
		share := BucketShare{
			Bucket:   b,
			Weight:   def.Weights[i],
			Visitors: counts[b],
			Expected: float64(def.Weights[i]) / float64(def.Total),
		}
		if result.Total > 0 {
			share.Observed = float64(share.Visitors) / float64(result.Total)
		}
		result.Shares[i] = share
	}

	if result.Total == 0 {
		return result
	}

	df := 0
	for _, s := range result.Shares {
		expected := s.Expected * float64(result.Total)
		if expected == 0 {
			// Zero-weight buckets are unreachable; any visitor recorded there
			// is a mismatch by definition, but they contribute no df.
			if s.Visitors > 0 {
				result.Mismatch = true
			}
			continue
		}
		diff := float64(s.Visitors) - expected
		result.ChiSq += diff * diff / expected
		df++
	}
	df--

	if df >= 1 {
		idx := df - 1
		if idx >= len(chiSqCritical001) {
			idx = len(chiSqCritical001) - 1
		}
		if result.ChiSq > chiSqCritical001[idx] {
			result.Mismatch = true
		}
	}

	return result
}
