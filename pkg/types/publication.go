// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pubgraph pipeline:
// the raw and resolved entity records (Publication, Researcher, Institution),
// the derived aggregate views, and the stage configuration structs.
// See docs/ARCHITECTURE.md § Data Model.
package types

// SourceSystem identifies the shape of a raw bibliographic record.
type SourceSystem string

const (
	// SourceHAL is the HAL open-archive JSON shape: one entry per roster
	// query, each carrying the documents HAL returned for that name.
	SourceHAL SourceSystem = "hal"

	// SourceScholarCSV is the Google Scholar export shape: one CSV row per
	// publication with a comma-separated authors field.
	SourceScholarCSV SourceSystem = "scholar_csv"

	// SourceRelational is the typed relational shape: rows from the
	// publication/author/country tables of an upstream SQL database.
	SourceRelational SourceSystem = "relational"
)

// Publication is a single bibliographic record after parsing. Authors are
// unresolved until the record passes through the resolver; ResolvedAuthors
// stays empty when no raw author name matched the roster.
type Publication struct {
	// Title is the publication title as scraped. The normalized title is the
	// natural deduplication key for the run.
	Title string `json:"title" yaml:"title"`

	// RawAuthorNames lists the author names exactly as scraped, in source order.
	RawAuthorNames []string `json:"raw_author_names" yaml:"raw_author_names"`

	// ResolvedAuthors lists the canonical names of roster researchers matched
	// to this publication, sorted ascending. Possibly empty.
	ResolvedAuthors []string `json:"resolved_authors,omitempty" yaml:"resolved_authors,omitempty"`

	// Year is the publication year. Nil when the source carried no parseable year.
	Year *int `json:"year,omitempty" yaml:"year,omitempty"`

	// Domain is a free-text research-area tag (e.g. "info", "Unknown").
	Domain string `json:"domain,omitempty" yaml:"domain,omitempty"`

	// Institutions lists the names of institutions attached to this
	// publication, sorted ascending after resolution.
	Institutions []string `json:"institutions,omitempty" yaml:"institutions,omitempty"`

	// CitationCount is the citation count reported by the source. Nil when
	// absent or unparseable; never coerced to zero.
	CitationCount *int `json:"citation_count,omitempty" yaml:"citation_count,omitempty"`

	// OpenAccess reports whether the source flagged the publication as open
	// access. Nil when the source carries no such flag.
	OpenAccess *bool `json:"open_access,omitempty" yaml:"open_access,omitempty"`

	// Source identifies which shape the record was parsed from.
	Source SourceSystem `json:"source" yaml:"source"`
}

// Researcher is a canonical identity from the roster, accumulated over a
// single pipeline run.
type Researcher struct {
	// CanonicalName is the roster entry this researcher resolves to. Unique
	// within a run.
	CanonicalName string `json:"canonical_name" yaml:"canonical_name"`

	// AkaNames lists every raw author-name variant ever matched to this
	// researcher, sorted ascending.
	AkaNames []string `json:"aka_names,omitempty" yaml:"aka_names,omitempty"`

	// Institutions lists institution names drawn from all of this
	// researcher's resolved publications, sorted ascending.
	Institutions []string `json:"institutions,omitempty" yaml:"institutions,omitempty"`

	// CollaboratorCounts maps a co-author's canonical name to the number of
	// shared publications.
	CollaboratorCounts map[string]int `json:"collaborator_counts,omitempty" yaml:"collaborator_counts,omitempty"`
}

// Institution is a deduplicated affiliation. Institutions are keyed by exact
// normalized name; no fuzzy matching is applied to institution names.
type Institution struct {
	// Name is the institution name as first encountered.
	Name string `json:"name" yaml:"name"`

	// Country is the institution's country, when known. Empty otherwise.
	Country string `json:"country,omitempty" yaml:"country,omitempty"`
}

// Diagnostics holds the non-fatal counters accumulated across a run. The
// pipeline never aborts on bad data; callers surface these as warnings.
type Diagnostics struct {
	// RecordsSkipped counts raw records dropped during parsing (e.g. missing title).
	RecordsSkipped int `json:"records_skipped" yaml:"records_skipped"`

	// DuplicatesMerged counts raw records folded into an earlier publication
	// with the same normalized title.
	DuplicatesMerged int `json:"duplicates_merged" yaml:"duplicates_merged"`

	// MergeConflicts counts duplicate pairs that disagreed on a scalar field.
	// The first non-nil value wins; the loser is recorded here, not applied.
	MergeConflicts int `json:"merge_conflicts" yaml:"merge_conflicts"`

	// UnmatchedAuthors counts raw author names with no roster match above
	// the similarity threshold. A normal outcome, not an error.
	UnmatchedAuthors int `json:"unmatched_authors" yaml:"unmatched_authors"`
}

// Resolution is the resolved entity set produced by one pipeline run.
type Resolution struct {
	// Researchers is sorted by canonical name.
	Researchers []Researcher `json:"researchers" yaml:"researchers"`

	// Publications is sorted by normalized title.
	Publications []Publication `json:"publications" yaml:"publications"`

	// Institutions is sorted by name.
	Institutions []Institution `json:"institutions" yaml:"institutions"`

	Diagnostics Diagnostics `json:"diagnostics" yaml:"diagnostics"`
}
