// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query is the read-only facade the presentation layer consumes:
// thin filters over the resolved entity set and its aggregate views. A miss
// (unknown researcher, empty year range) yields an empty result, never an
// error, matching what chart-rendering callers expect.
// See docs/ARCHITECTURE.md § Query Facade.
package query

import (
	"github.com/listic-lab/pubgraph/internal/graph"
	"github.com/listic-lab/pubgraph/internal/names"
	"github.com/listic-lab/pubgraph/pkg/types"
)

// Facade wraps one run's resolution and aggregates.
type Facade struct {
	res types.Resolution
	agg types.AggregateSet
}

// New builds a facade over a resolved entity set and its aggregates.
func New(res types.Resolution, agg types.AggregateSet) *Facade {
	return &Facade{res: res, agg: agg}
}

// ResearcherView is the slice of every view involving one researcher.
type ResearcherView struct {
	Researcher   types.Researcher          `json:"researcher" yaml:"researcher"`
	Edges        []types.CollaborationEdge `json:"edges,omitempty" yaml:"edges,omitempty"`
	Flows        []types.InstitutionFlow   `json:"flows,omitempty" yaml:"flows,omitempty"`
	Publications []types.Publication       `json:"publications,omitempty" yaml:"publications,omitempty"`
}

// Found reports whether the view names a known researcher.
func (v ResearcherView) Found() bool {
	return v.Researcher.CanonicalName != ""
}

// ByResearcher returns everything involving the named researcher. The name
// is compared in normalized form against canonical names. An unknown name
// returns an empty view.
func (f *Facade) ByResearcher(name string) ResearcherView {
	target := names.Normalize(name)

	var view ResearcherView
	found := false
	for _, res := range f.res.Researchers {
		if names.Normalize(res.CanonicalName) == target {
			view.Researcher = res
			found = true
			break
		}
	}
	if !found {
		return ResearcherView{}
	}

	canonical := view.Researcher.CanonicalName
	for _, e := range f.agg.Edges {
		if e.A == canonical || e.B == canonical {
			view.Edges = append(view.Edges, e)
		}
	}
	for _, fl := range f.agg.Flows {
		if fl.Researcher == canonical {
			view.Flows = append(view.Flows, fl)
		}
	}
	for _, pub := range f.res.Publications {
		for _, author := range pub.ResolvedAuthors {
			if author == canonical {
				view.Publications = append(view.Publications, pub)
				break
			}
		}
	}
	return view
}

// ByYearRange returns publications whose year falls within [from, to],
// inclusive. A zero bound is open on that side. Publications without a year
// never match a bounded range.
func (f *Facade) ByYearRange(from, to int) []types.Publication {
	var out []types.Publication
	for _, pub := range f.res.Publications {
		if pub.Year == nil {
			if from == 0 && to == 0 {
				out = append(out, pub)
			}
			continue
		}
		if from != 0 && *pub.Year < from {
			continue
		}
		if to != 0 && *pub.Year > to {
			continue
		}
		out = append(out, pub)
	}
	return out
}

// ByCountry returns the per-year counts for one country. The name is
// compared in normalized form; an unknown country returns an empty slice.
func (f *Facade) ByCountry(country string) []types.CountryYearCount {
	target := names.Normalize(country)
	var out []types.CountryYearCount
	for _, cy := range f.agg.CountryYears {
		if names.Normalize(cy.Country) == target {
			out = append(out, cy)
		}
	}
	return out
}

// TopN returns the first n rows of the citation ranking.
func (f *Facade) TopN(n int) []types.ResearcherRank {
	return graph.TopN(f.agg.Rankings, n)
}
