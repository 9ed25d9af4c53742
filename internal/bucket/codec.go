package bucket

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Token format: "test=index.label" pairs joined with "&", e.g.
// "buttonsize=1.medium&itemcount=0.10". Pairs are sorted by test name so the
// same set always encodes to the same token.

const (
	pairSep  = "&"
	kvSep    = "="
	fieldSep = "."
)

// EncodeAssignments serializes a visitor's assignment set into the token
// carried in the persisted cookie.
func EncodeAssignments(set AssignmentSet) string {
	if len(set) == 0 {
		return ""
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		a := set[name]
		pairs = append(pairs, fmt.Sprintf("%s%s%d%s%s", name, kvSep, a.Index, fieldSep, a.Label))
	}
	return strings.Join(pairs, pairSep)
}

// DecodeAssignments parses a token back into an assignment set. Decoding is
// deliberately tolerant: a malformed or tampered token yields an empty set
// and the visitor is treated as new. Token damage must never fail a request.
func DecodeAssignments(token string) AssignmentSet {
	set := make(AssignmentSet)
	if token == "" {
		return set
	}

	for _, pair := range strings.Split(token, pairSep) {
		name, rest, ok := strings.Cut(pair, kvSep)
		if !ok || name == "" {
			continue
		}
		idxStr, label, ok := strings.Cut(rest, fieldSep)
		if !ok || label == "" {
			continue
		}
		idx, err := strconv.Atoi(idxStr)
		if err != nil || idx < 0 {
			continue
		}
		set[name] = Assignment{Test: name, Index: idx, Label: label}
	}

	return set
}
