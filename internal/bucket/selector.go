package bucket

// Select maps a draw in [0, def.Total) to a bucket index by finding the
// smallest i with draw < Cumulative[i]. The draw is supplied by the caller;
// this function never touches a random source itself, which keeps the
// weighted selection exhaustively testable.
//
// A zero-weight bucket occupies an empty slice of the distribution and is
// unreachable, but is legal here: an all-zero weight list is rejected at
// catalog build time.
func Select(def *TestDefinition, draw int) int {
	for i, c := range def.Cumulative {
		if draw < c {
			return i
		}
	}
	// Out-of-range draw; clamp to the last bucket rather than panic.
	return len(def.Cumulative) - 1
}
