// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve reconciles raw publication records against the canonical
// researcher roster and deduplicates them into the resolved entity set. A
// Resolver owns its entity tables and is scoped to one pipeline run; nothing
// is shared across runs.
// See docs/ARCHITECTURE.md § Entity Resolution.
package resolve

import (
	"fmt"
	"io"
	"sort"

	"github.com/listic-lab/pubgraph/internal/names"
	"github.com/listic-lab/pubgraph/pkg/types"
)

// Config holds the resolver settings.
type Config struct {
	// Match controls the fuzzy author matching.
	Match types.MatchConfig

	// Countries maps an institution name (as scraped) to its country.
	// Lookup happens on the normalized institution name.
	Countries map[string]string

	// Log receives per-record diagnostics (skips, merges, unmatched
	// authors). Nil discards them.
	Log io.Writer
}

// Resolver resolves one batch of publications against a fixed roster.
type Resolver struct {
	matcher   *names.Matcher
	countries map[string]string // normalized institution name -> country
	log       io.Writer

	researchers  map[string]*researcherEntry // canonical name
	institutions map[string]*types.Institution
	pubs         map[string]*pubEntry // normalized title
	pubOrder     []string

	diags types.Diagnostics
}

type researcherEntry struct {
	canonical    string
	aka          map[string]struct{}
	institutions map[string]struct{}
}

type pubEntry struct {
	title        string
	rawAuthors   []string
	rawSeen      map[string]struct{}
	resolved     map[string]struct{} // canonical researcher names
	institutions map[string]struct{} // institution display names
	year         *int
	citations    *int
	openAccess   *bool
	domain       string
	source       types.SourceSystem
}

// New builds a resolver for one run over the given roster. Roster order is
// preserved; it determines which entry wins when several exceed the match
// threshold.
func New(roster []string, cfg Config) *Resolver {
	countries := make(map[string]string, len(cfg.Countries))
	for name, country := range cfg.Countries {
		countries[names.Normalize(name)] = country
	}

	log := cfg.Log
	if log == nil {
		log = io.Discard
	}

	return &Resolver{
		matcher:      names.NewMatcher(roster, cfg.Match),
		countries:    countries,
		log:          log,
		researchers:  make(map[string]*researcherEntry),
		institutions: make(map[string]*types.Institution),
		pubs:         make(map[string]*pubEntry),
	}
}

// Resolve processes publications in input order and returns the resolved
// entity set. Given identical input ordering the output is fully
// deterministic; a different ordering can change which value wins a merge
// conflict (counted, not failed).
func (r *Resolver) Resolve(publications []types.Publication) types.Resolution {
	for i := range publications {
		r.add(&publications[i])
	}
	return r.resolution()
}

func (r *Resolver) add(pub *types.Publication) {
	titleKey := names.Normalize(pub.Title)
	if titleKey == "" {
		r.diags.RecordsSkipped++
		fmt.Fprintf(r.log, "skipped record without title (source %s)\n", pub.Source)
		return
	}

	entry, exists := r.pubs[titleKey]
	if !exists {
		entry = &pubEntry{
			title:        pub.Title,
			rawSeen:      make(map[string]struct{}),
			resolved:     make(map[string]struct{}),
			institutions: make(map[string]struct{}),
			domain:       pub.Domain,
			source:       pub.Source,
		}
		r.pubs[titleKey] = entry
		r.pubOrder = append(r.pubOrder, titleKey)
	} else {
		r.diags.DuplicatesMerged++
		fmt.Fprintf(r.log, "merging duplicate %q\n", pub.Title)
	}

	for _, raw := range pub.RawAuthorNames {
		if _, seen := entry.rawSeen[raw]; !seen {
			entry.rawSeen[raw] = struct{}{}
			entry.rawAuthors = append(entry.rawAuthors, raw)
		}

		canonical, ok := r.matcher.Match(raw)
		if !ok {
			r.diags.UnmatchedAuthors++
			fmt.Fprintf(r.log, "no roster match for %q\n", raw)
			continue
		}
		res := r.researcher(canonical)
		res.aka[raw] = struct{}{}
		entry.resolved[canonical] = struct{}{}
	}

	for _, instName := range pub.Institutions {
		if inst := r.institution(instName); inst != nil {
			entry.institutions[inst.Name] = struct{}{}
		}
	}

	if exists {
		r.merge(entry, pub)
	} else {
		entry.year = pub.Year
		entry.citations = pub.CitationCount
		entry.openAccess = pub.OpenAccess
	}
}

// researcher looks up or creates the entry for a canonical name.
func (r *Resolver) researcher(canonical string) *researcherEntry {
	if res, ok := r.researchers[canonical]; ok {
		return res
	}
	res := &researcherEntry{
		canonical:    canonical,
		aka:          make(map[string]struct{}),
		institutions: make(map[string]struct{}),
	}
	r.researchers[canonical] = res
	return res
}

// institution looks up or creates an institution. Dedup is exact on the
// normalized name; the first-encountered spelling becomes the display name.
// No fuzzy matching is applied to institution names.
func (r *Resolver) institution(name string) *types.Institution {
	key := names.Normalize(name)
	if key == "" {
		return nil
	}
	if inst, ok := r.institutions[key]; ok {
		return inst
	}
	inst := &types.Institution{
		Name:    name,
		Country: r.countries[key],
	}
	r.institutions[key] = inst
	return inst
}

// merge folds a duplicate-title record's scalars into the existing entry.
// The first non-nil value wins; a later disagreeing value is counted as a
// conflict and dropped.
func (r *Resolver) merge(entry *pubEntry, pub *types.Publication) {
	switch {
	case entry.year == nil:
		entry.year = pub.Year
	case pub.Year != nil && *pub.Year != *entry.year:
		r.diags.MergeConflicts++
	}

	switch {
	case entry.citations == nil:
		entry.citations = pub.CitationCount
	case pub.CitationCount != nil && *pub.CitationCount != *entry.citations:
		r.diags.MergeConflicts++
	}

	switch {
	case entry.openAccess == nil:
		entry.openAccess = pub.OpenAccess
	case pub.OpenAccess != nil && *pub.OpenAccess != *entry.openAccess:
		r.diags.MergeConflicts++
	}

	switch {
	case entry.domain == "" || entry.domain == "Unknown":
		if pub.Domain != "" {
			entry.domain = pub.Domain
		}
	case pub.Domain != "" && pub.Domain != "Unknown" && pub.Domain != entry.domain:
		r.diags.MergeConflicts++
	}
}

// resolution assembles the final sorted entity set. Researcher institution
// sets and collaborator counts are derived from the merged publications, so
// duplicate raw records never double-count.
func (r *Resolver) resolution() types.Resolution {
	collabs := make(map[string]map[string]int, len(r.researchers))

	for _, titleKey := range r.pubOrder {
		entry := r.pubs[titleKey]

		for canonical := range entry.resolved {
			res := r.researchers[canonical]
			for instName := range entry.institutions {
				res.institutions[instName] = struct{}{}
			}
			for other := range entry.resolved {
				if other == canonical {
					continue
				}
				if collabs[canonical] == nil {
					collabs[canonical] = make(map[string]int)
				}
				collabs[canonical][other]++
			}
		}
	}

	out := types.Resolution{Diagnostics: r.diags}

	for _, titleKey := range r.pubOrder {
		entry := r.pubs[titleKey]
		out.Publications = append(out.Publications, types.Publication{
			Title:           entry.title,
			RawAuthorNames:  entry.rawAuthors,
			ResolvedAuthors: sortedKeys(entry.resolved),
			Year:            entry.year,
			Domain:          entry.domain,
			Institutions:    sortedKeys(entry.institutions),
			CitationCount:   entry.citations,
			OpenAccess:      entry.openAccess,
			Source:          entry.source,
		})
	}
	sort.Slice(out.Publications, func(i, j int) bool {
		return names.Normalize(out.Publications[i].Title) < names.Normalize(out.Publications[j].Title)
	})

	for canonical, res := range r.researchers {
		out.Researchers = append(out.Researchers, types.Researcher{
			CanonicalName:      canonical,
			AkaNames:           sortedKeys(res.aka),
			Institutions:       sortedKeys(res.institutions),
			CollaboratorCounts: collabs[canonical],
		})
	}
	sort.Slice(out.Researchers, func(i, j int) bool {
		return out.Researchers[i].CanonicalName < out.Researchers[j].CanonicalName
	})

	for _, inst := range r.institutions {
		out.Institutions = append(out.Institutions, *inst)
	}
	sort.Slice(out.Institutions, func(i, j int) bool {
		return out.Institutions[i].Name < out.Institutions[j].Name
	})

	return out
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
