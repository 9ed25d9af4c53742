package bucket

// Assignment records which bucket a visitor landed in for one test. Label is
// the bucket label at assignment time; it is checked against the current
// definition on every read so a reordered or shrunk bucket list invalidates
// the assignment instead of silently pointing at a different variant.
type Assignment struct {
	Test  string
	Index int
	Label string
}

// AssignmentSet is one visitor's assignments across all tests, keyed by test
// name. It is the unit encoded into and decoded from the persisted token.
type AssignmentSet map[string]Assignment

// DrawFunc produces a uniformly distributed integer in [0, total). It is
// consulted exactly once per new assignment, never for assignments that are
// reused, so stickiness does not depend on the draw being stable.
type DrawFunc func(testName string, total int) int

// Resolve returns the visitor's assignment set against the current catalog:
// valid existing assignments are kept unchanged, missing or stale ones are
// drawn fresh, and tests no longer active are dropped. The output covers
// exactly the active tests.
func Resolve(existing AssignmentSet, cat *Catalog, draw DrawFunc) AssignmentSet {
	resolved := make(AssignmentSet, cat.Len())

	for _, name := range cat.ActiveTests() {
		def, _ := cat.Get(name)

		if prior, ok := existing[name]; ok && valid(prior, def) {
			resolved[name] = prior
			continue
		}

		idx := Select(def, draw(name, def.Total))
		resolved[name] = Assignment{
			Test:  name,
			Index: idx,
			Label: def.Buckets[idx],
		}
	}

	return resolved
}

// valid reports whether a stored assignment still resolves to the same label
// under the current definition.
func valid(a Assignment, def *TestDefinition) bool {
	return a.Index >= 0 && a.Index < len(def.Buckets) && def.Buckets[a.Index] == a.Label
}
