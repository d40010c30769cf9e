// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graph builds the derived aggregate views over a resolved entity
// set: collaboration edges, researcher-institution flows, country/year
// publication counts, and citation rankings. Every view is recomputed from
// scratch on each pass; re-running after any change to the resolved set
// yields a consistent result.
// See docs/ARCHITECTURE.md § Aggregation.
package graph

import (
	"sort"

	"github.com/listic-lab/pubgraph/pkg/types"
)

// Aggregate computes all derived views. Output slices are deterministically
// sorted regardless of input map iteration order.
func Aggregate(res types.Resolution) types.AggregateSet {
	return types.AggregateSet{
		Edges:        collaborationEdges(res.Publications),
		Flows:        institutionFlows(res.Researchers, res.Publications),
		CountryYears: countryYearCounts(res.Institutions, res.Publications),
		Rankings:     rankings(res.Researchers, res.Publications),
	}
}

// TopN truncates a ranking to its first n rows. Non-positive n returns the
// full ranking.
func TopN(rankings []types.ResearcherRank, n int) []types.ResearcherRank {
	if n <= 0 || n >= len(rankings) {
		return rankings
	}
	return rankings[:n]
}

type pair struct{ a, b string }

// collaborationEdges counts, for every unordered researcher pair, the
// distinct publications where both appear as resolved authors. Publications
// with fewer than two resolved authors contribute nothing; zero-weight edges
// are never materialized and self-loops cannot occur.
func collaborationEdges(pubs []types.Publication) []types.CollaborationEdge {
	weights := make(map[pair]int)

	for _, pub := range pubs {
		authors := pub.ResolvedAuthors
		if len(authors) < 2 {
			continue
		}
		for i := 0; i < len(authors); i++ {
			for j := i + 1; j < len(authors); j++ {
				a, b := authors[i], authors[j]
				if b < a {
					a, b = b, a
				}
				weights[pair{a, b}]++
			}
		}
	}

	edges := make([]types.CollaborationEdge, 0, len(weights))
	for p, w := range weights {
		edges = append(edges, types.CollaborationEdge{A: p.a, B: p.b, Weight: w})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})
	return edges
}

// institutionFlows counts distinct publications linking each researcher to
// each of that publication's institutions.
func institutionFlows(researchers []types.Researcher, pubs []types.Publication) []types.InstitutionFlow {
	weights := make(map[pair]int)

	for _, pub := range pubs {
		for _, author := range pub.ResolvedAuthors {
			for _, inst := range pub.Institutions {
				weights[pair{author, inst}]++
			}
		}
	}

	flows := make([]types.InstitutionFlow, 0, len(weights))
	for p, w := range weights {
		flows = append(flows, types.InstitutionFlow{Researcher: p.a, Institution: p.b, Weight: w})
	}
	sort.Slice(flows, func(i, j int) bool {
		if flows[i].Researcher != flows[j].Researcher {
			return flows[i].Researcher < flows[j].Researcher
		}
		return flows[i].Institution < flows[j].Institution
	})
	return flows
}

// countryYearCounts groups publications by (institution country, year).
// A publication with institutions in several countries counts once per
// country. Publications lacking a year or lacking any institution with a
// known country are excluded, not imputed.
func countryYearCounts(institutions []types.Institution, pubs []types.Publication) []types.CountryYearCount {
	countryOf := make(map[string]string, len(institutions))
	for _, inst := range institutions {
		if inst.Country != "" {
			countryOf[inst.Name] = inst.Country
		}
	}

	type group struct {
		country string
		year    int
	}
	counts := make(map[group]int)

	for _, pub := range pubs {
		if pub.Year == nil {
			continue
		}
		seen := make(map[string]struct{})
		for _, instName := range pub.Institutions {
			country, ok := countryOf[instName]
			if !ok {
				continue
			}
			if _, dup := seen[country]; dup {
				continue
			}
			seen[country] = struct{}{}
			counts[group{country, *pub.Year}]++
		}
	}

	out := make([]types.CountryYearCount, 0, len(counts))
	for g, n := range counts {
		out = append(out, types.CountryYearCount{Country: g.country, Year: g.year, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Country != out[j].Country {
			return out[i].Country < out[j].Country
		}
		return out[i].Year < out[j].Year
	})
	return out
}

// rankings sums citation counts per researcher across resolved publications,
// treating missing counts as zero. Sorted by citations descending, ties by
// canonical name ascending.
func rankings(researchers []types.Researcher, pubs []types.Publication) []types.ResearcherRank {
	rows := make(map[string]*types.ResearcherRank, len(researchers))
	for _, res := range researchers {
		rows[res.CanonicalName] = &types.ResearcherRank{CanonicalName: res.CanonicalName}
	}

	for _, pub := range pubs {
		citations := 0
		if pub.CitationCount != nil {
			citations = *pub.CitationCount
		}
		for _, author := range pub.ResolvedAuthors {
			row, ok := rows[author]
			if !ok {
				continue
			}
			row.Citations += citations
			row.Publications++
		}
	}

	out := make([]types.ResearcherRank, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Citations != out[j].Citations {
			return out[i].Citations > out[j].Citations
		}
		return out[i].CanonicalName < out[j].CanonicalName
	})
	return out
}
