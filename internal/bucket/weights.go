package bucket

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Config errors, raised only while building a catalog. A failed build is
// operator-facing: callers keep serving the previous catalog snapshot.
var (
	ErrWeightCountMismatch = errors.New("weight count does not match bucket count")
	ErrInvalidWeight       = errors.New("invalid weight")
	ErrZeroTotalWeight     = errors.New("total weight is zero")
	ErrDuplicateBucket     = errors.New("duplicate bucket label")
	ErrEmptyBucketList     = errors.New("test has no buckets")
)

// ParseWeights parses a weight ratio expression like "7:3:2" into a list of
// non-negative integers, one per bucket.
func ParseWeights(spec string, bucketCount int) ([]int, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != bucketCount {
		return nil, fmt.Errorf("%w: %q has %d weights for %d buckets",
			ErrWeightCountMismatch, spec, len(parts), bucketCount)
	}

	weights := make([]int, 0, len(parts))
	total := 0
	for _, p := range parts {
		w, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q in %q", ErrInvalidWeight, p, spec)
		}
		if w < 0 {
			return nil, fmt.Errorf("%w: %d in %q is negative", ErrInvalidWeight, w, spec)
		}
		weights = append(weights, w)
		total += w
	}

	if total == 0 {
		return nil, fmt.Errorf("%w: %q", ErrZeroTotalWeight, spec)
	}

	return weights, nil
}
