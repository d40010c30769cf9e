// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CollaborationEdge is a weighted link between two researchers. Endpoints
// are ordered lexicographically (A < B) so each unordered pair appears once;
// self-loops are never materialized.
type CollaborationEdge struct {
	// A is the lexicographically smaller canonical name.
	A string `json:"a" yaml:"a"`

	// B is the lexicographically larger canonical name.
	B string `json:"b" yaml:"b"`

	// Weight is the number of distinct publications where both researchers
	// appear as resolved authors. Always >= 1.
	Weight int `json:"weight" yaml:"weight"`
}

// InstitutionFlow is a weighted link between a researcher and an institution.
type InstitutionFlow struct {
	// Researcher is the canonical researcher name.
	Researcher string `json:"researcher" yaml:"researcher"`

	// Institution is the institution name.
	Institution string `json:"institution" yaml:"institution"`

	// Weight is the number of distinct publications linking the pair.
	Weight int `json:"weight" yaml:"weight"`
}

// CountryYearCount is a per-(country, year) publication rollup. Publications
// lacking a year or lacking any institution with a known country are
// excluded, never imputed.
type CountryYearCount struct {
	Country string `json:"country" yaml:"country"`
	Year    int    `json:"year" yaml:"year"`
	Count   int    `json:"count" yaml:"count"`
}

// ResearcherRank is one row of the citation ranking.
type ResearcherRank struct {
	// CanonicalName is the researcher's canonical name.
	CanonicalName string `json:"canonical_name" yaml:"canonical_name"`

	// Citations is the sum of citation counts across the researcher's
	// resolved publications, with missing counts treated as zero.
	Citations int `json:"citations" yaml:"citations"`

	// Publications is the number of resolved publications contributing.
	Publications int `json:"publications" yaml:"publications"`
}

// AggregateSet holds every derived view over a resolved entity set. All
// views are recomputed from scratch on each aggregation pass; none is
// maintained incrementally.
type AggregateSet struct {
	// Edges is sorted by (A, B).
	Edges []CollaborationEdge `json:"edges" yaml:"edges"`

	// Flows is sorted by (Researcher, Institution).
	Flows []InstitutionFlow `json:"flows" yaml:"flows"`

	// CountryYears is sorted by (Country, Year).
	CountryYears []CountryYearCount `json:"country_years" yaml:"country_years"`

	// Rankings is sorted by citations descending, ties broken by canonical
	// name ascending. Truncate for a top-N view.
	Rankings []ResearcherRank `json:"rankings" yaml:"rankings"`
}
