// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package names

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/listic-lab/pubgraph/pkg/types"
)

// DefaultThreshold is the partial-ratio score a roster entry must exceed.
const DefaultThreshold = 80

// Matcher matches raw author names against a fixed roster. Matching is
// first-above-threshold in roster order, not best-match: when two roster
// entries both exceed the threshold, the earlier one wins. Callers that
// care about ambiguous names must order the roster accordingly.
type Matcher struct {
	roster     []string
	normalized []string
	threshold  int
}

// NewMatcher builds a matcher over roster. Roster order is preserved.
// A non-positive threshold falls back to DefaultThreshold.
func NewMatcher(roster []string, cfg types.MatchConfig) *Matcher {
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	normalized := make([]string, len(roster))
	for i, entry := range roster {
		normalized[i] = Normalize(entry)
	}

	return &Matcher{
		roster:     roster,
		normalized: normalized,
		threshold:  threshold,
	}
}

// Threshold returns the active similarity threshold.
func (m *Matcher) Threshold() int {
	return m.threshold
}

// Match returns the first roster entry whose partial-ratio similarity to
// rawName exceeds the threshold, or ok=false when no entry does. An empty
// roster or a whitespace-only name never matches.
func (m *Matcher) Match(rawName string) (canonical string, ok bool) {
	q := Normalize(rawName)
	if q == "" {
		return "", false
	}

	for i, entry := range m.normalized {
		if entry == "" {
			continue
		}
		if fuzzy.PartialRatio(q, entry) > m.threshold {
			return m.roster[i], true
		}
	}
	return "", false
}
