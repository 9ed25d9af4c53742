package bucket

import (
	"crypto/md5"
	"encoding/binary"
)

// HashDraw returns a DrawFunc that derives the draw from the visitor ID and
// test name instead of a random source. The same visitor always re-derives
// the same draw for a given test, so assignments survive even when the token
// cookie is lost, and different tests for one visitor stay independent.
//
// The digest of the visitor ID is combined with the digest of the test name
// and folded into a uint64 reduced mod total. Modulo bias is negligible:
// totals are small weight sums, many orders of magnitude below 2^64.
func HashDraw(visitorID string) DrawFunc {
	return func(testName string, total int) int {
		h := md5.New()
		idSum := md5.Sum([]byte(visitorID))
		nameSum := md5.Sum([]byte(testName))
		h.Write(idSum[:])
		h.Write(nameSum[:])
		digest := h.Sum(nil)

		v := binary.BigEndian.Uint64(digest[:8])
		return int(v % uint64(total))
	}
}
