package bucket

import "fmt"

// RawTest is one test entry as it arrives from the configuration source:
// ordered bucket labels plus an unparsed weight ratio like "7:3:2".
type RawTest struct {
	Buckets []string
	Weight  string
}

// RawConfig is the full configuration snapshot handed to Build. Active lists
// which test entries are live, in declared order.
type RawConfig struct {
	Active []string
	Tests  map[string]RawTest
}

// TestDefinition is the immutable in-memory form of one test. Bucket order is
// significant: it defines the index-to-label mapping and the layout of the
// cumulative distribution.
type TestDefinition struct {
	Name       string
	Buckets    []string
	Weights    []int
	Cumulative []int
	Total      int
}

// Catalog holds the definitions for all active tests, built atomically from
// one configuration snapshot. It is never mutated after Build returns;
// reloads replace it wholesale.
type Catalog struct {
	active []string
	tests  map[string]*TestDefinition
}

// Build validates every active test and returns a complete catalog, or the
// first config error. A build is all-or-nothing: no partially valid catalog
// is ever published.
func Build(raw RawConfig) (*Catalog, error) {
	cat := &Catalog{
		active: make([]string, 0, len(raw.Active)),
		tests:  make(map[string]*TestDefinition, len(raw.Active)),
	}

	for _, name := range raw.Active {
		if _, ok := cat.tests[name]; ok {
			// Listed twice; the first occurrence already built it.
			continue
		}
		rt, ok := raw.Tests[name]
		if !ok {
			return nil, fmt.Errorf("test %q: listed as active but not defined", name)
		}
		def, err := buildDefinition(name, rt)
		if err != nil {
			return nil, fmt.Errorf("test %q: %w", name, err)
		}
		cat.active = append(cat.active, name)
		cat.tests[name] = def
	}

	return cat, nil
}

func buildDefinition(name string, rt RawTest) (*TestDefinition, error) {
	if len(rt.Buckets) == 0 {
		return nil, ErrEmptyBucketList
	}

	seen := make(map[string]bool, len(rt.Buckets))
	for _, b := range rt.Buckets {
		if seen[b] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateBucket, b)
		}
		seen[b] = true
	}

	weights, err := ParseWeights(rt.Weight, len(rt.Buckets))
	if err != nil {
		return nil, err
	}

	cumulative := make([]int, len(weights))
	total := 0
	for i, w := range weights {
		total += w
		cumulative[i] = total
	}

	return &TestDefinition{
		Name:       name,
		Buckets:    append([]string(nil), rt.Buckets...),
		Weights:    weights,
		Cumulative: cumulative,
		Total:      total,
	}, nil
}

// Get returns the definition for a test name, if it is active.
func (c *Catalog) Get(name string) (*TestDefinition, bool) {
	def, ok := c.tests[name]
	return def, ok
}

// ActiveTests returns the active test names in declared order.
func (c *Catalog) ActiveTests() []string {
	return append([]string(nil), c.active...)
}

// Len returns the number of active tests.
func (c *Catalog) Len() int {
	return len(c.active)
}
