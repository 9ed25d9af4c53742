package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/edgesplit/edgesplit/internal/bucket"
)

// The config file mirrors the edge dictionary format: a top-level "tests"
// value naming the active tests, plus one entry per test.
//
//	{
//	    "tests": "itemcount, buttonsize",
//	    "itemcount":  { "buckets": ["10", "15"], "weight": "1:1" },
//	    "buttonsize": { "buckets": ["small", "medium", "large"], "weight": "7:3:2" }
//	}

const activeKey = "tests"

type testEntry struct {
	Buckets []string `json:"buckets"`
	Weight  string   `json:"weight"`
}

// Load reads a config file into the raw form consumed by bucket.Build. It
// validates JSON shape only; semantic validation (weights, duplicates) is
// the catalog's job.
func Load(path string) (bucket.RawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return bucket.RawConfig{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes the dictionary document from raw bytes.
func Parse(data []byte) (bucket.RawConfig, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return bucket.RawConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}

	rawActive, ok := doc[activeKey]
	if !ok {
		return bucket.RawConfig{}, fmt.Errorf("config has no %q entry", activeKey)
	}
	var activeList string
	if err := json.Unmarshal(rawActive, &activeList); err != nil {
		return bucket.RawConfig{}, fmt.Errorf("%q entry must be a string: %w", activeKey, err)
	}

	raw := bucket.RawConfig{
		Tests: make(map[string]bucket.RawTest, len(doc)-1),
	}
	for _, name := range strings.Split(activeList, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			raw.Active = append(raw.Active, name)
		}
	}

	for name, msg := range doc {
		if name == activeKey {
			continue
		}
		var entry testEntry
		if err := json.Unmarshal(msg, &entry); err != nil {
			return bucket.RawConfig{}, fmt.Errorf("test %q: %w", name, err)
		}
		raw.Tests[name] = bucket.RawTest{Buckets: entry.Buckets, Weight: entry.Weight}
	}

	return raw, nil
}

// LoadCatalog is the load-then-build convenience used by the CLI.
func LoadCatalog(path string) (*bucket.Catalog, error) {
	raw, err := Load(path)
	if err != nil {
		return nil, err
	}
	return bucket.Build(raw)
}
