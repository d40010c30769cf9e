// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"testing"

	"github.com/listic-lab/pubgraph/pkg/types"
)

func intPtr(n int) *int { return &n }

func testResolution() types.Resolution {
	return types.Resolution{
		Researchers: []types.Researcher{
			{CanonicalName: "Emmanuel Trouvé"},
			{CanonicalName: "Flavien VERNIER"},
			{CanonicalName: "Ilham ALLOUI"},
		},
		Publications: []types.Publication{
			{
				Title:           "P1",
				ResolvedAuthors: []string{"Flavien VERNIER", "Ilham ALLOUI"},
				Institutions:    []string{"LISTIC"},
				Year:            intPtr(2019),
				CitationCount:   intPtr(10),
			},
			{
				Title:           "P2",
				ResolvedAuthors: []string{"Emmanuel Trouvé", "Flavien VERNIER", "Ilham ALLOUI"},
				Institutions:    []string{"ETH Zurich", "LISTIC"},
				Year:            intPtr(2019),
				CitationCount:   intPtr(5),
			},
			{
				Title:           "Solo",
				ResolvedAuthors: []string{"Emmanuel Trouvé"},
				Institutions:    []string{"LISTIC"},
				Year:            intPtr(2020),
			},
			{
				Title:           "Orphan",
				RawAuthorNames:  []string{"Unknown Person"},
				ResolvedAuthors: nil,
				Year:            intPtr(2020),
				CitationCount:   intPtr(99),
			},
			{
				Title:           "No Year",
				ResolvedAuthors: []string{"Ilham ALLOUI"},
				Institutions:    []string{"LISTIC"},
			},
		},
		Institutions: []types.Institution{
			{Name: "ETH Zurich", Country: "Switzerland"},
			{Name: "LISTIC", Country: "France"},
			{Name: "Mystery Lab"},
		},
	}
}

func TestCollaborationEdges(t *testing.T) {
	agg := Aggregate(testResolution())

	want := map[[2]string]int{
		{"Flavien VERNIER", "Ilham ALLOUI"}:    2, // P1 and P2
		{"Emmanuel Trouvé", "Flavien VERNIER"}: 1,
		{"Emmanuel Trouvé", "Ilham ALLOUI"}:    1,
	}
	if len(agg.Edges) != len(want) {
		t.Fatalf("len(Edges) = %d, want %d: %+v", len(agg.Edges), len(want), agg.Edges)
	}
	for _, e := range agg.Edges {
		if e.A == e.B {
			t.Errorf("self-loop edge %+v", e)
		}
		if e.A > e.B {
			t.Errorf("edge endpoints out of order: %+v", e)
		}
		if w := want[[2]string{e.A, e.B}]; w != e.Weight {
			t.Errorf("edge (%s, %s) weight = %d, want %d", e.A, e.B, e.Weight, w)
		}
	}
}

func TestEdgesExcludeUnresolvedPublications(t *testing.T) {
	agg := Aggregate(testResolution())
	for _, e := range agg.Edges {
		if e.A == "Unknown Person" || e.B == "Unknown Person" {
			t.Errorf("unresolved author leaked into edges: %+v", e)
		}
	}
}

func TestInstitutionFlows(t *testing.T) {
	agg := Aggregate(testResolution())

	want := map[[2]string]int{
		{"Emmanuel Trouvé", "ETH Zurich"}: 1,
		{"Emmanuel Trouvé", "LISTIC"}:     2, // P2 and Solo
		{"Flavien VERNIER", "ETH Zurich"}: 1,
		{"Flavien VERNIER", "LISTIC"}:     2,
		{"Ilham ALLOUI", "ETH Zurich"}:    1,
		{"Ilham ALLOUI", "LISTIC"}:        3, // P1, P2, No Year
	}
	if len(agg.Flows) != len(want) {
		t.Fatalf("len(Flows) = %d, want %d: %+v", len(agg.Flows), len(want), agg.Flows)
	}
	for _, f := range agg.Flows {
		if w := want[[2]string{f.Researcher, f.Institution}]; w != f.Weight {
			t.Errorf("flow (%s, %s) = %d, want %d", f.Researcher, f.Institution, f.Weight, w)
		}
	}
}

func TestCountryYearCounts(t *testing.T) {
	agg := Aggregate(testResolution())

	// P1: France 2019. P2: France+Switzerland 2019. Solo: France 2020.
	// Orphan has no institutions and "No Year" has no year; both are excluded.
	want := []types.CountryYearCount{
		{Country: "France", Year: 2019, Count: 2},
		{Country: "France", Year: 2020, Count: 1},
		{Country: "Switzerland", Year: 2019, Count: 1},
	}
	if len(agg.CountryYears) != len(want) {
		t.Fatalf("CountryYears = %+v, want %+v", agg.CountryYears, want)
	}
	for i := range want {
		if agg.CountryYears[i] != want[i] {
			t.Errorf("CountryYears[%d] = %+v, want %+v", i, agg.CountryYears[i], want[i])
		}
	}
}

func TestRankings(t *testing.T) {
	agg := Aggregate(testResolution())

	// Vernier and Alloui both total 15; the tie breaks by name ascending.
	// Trouvé totals 5. The orphan publication's 99 citations count nobody.
	want := []types.ResearcherRank{
		{CanonicalName: "Flavien VERNIER", Citations: 15, Publications: 2},
		{CanonicalName: "Ilham ALLOUI", Citations: 15, Publications: 3},
		{CanonicalName: "Emmanuel Trouvé", Citations: 5, Publications: 2},
	}
	if len(agg.Rankings) != len(want) {
		t.Fatalf("Rankings = %+v", agg.Rankings)
	}
	for i := range want {
		if agg.Rankings[i] != want[i] {
			t.Errorf("Rankings[%d] = %+v, want %+v", i, agg.Rankings[i], want[i])
		}
	}
}

func TestTopN(t *testing.T) {
	agg := Aggregate(testResolution())

	top := TopN(agg.Rankings, 2)
	if len(top) != 2 {
		t.Fatalf("len(TopN(2)) = %d", len(top))
	}
	if TopN(agg.Rankings, 0) == nil || len(TopN(agg.Rankings, 0)) != 3 {
		t.Error("TopN(0) should return the full ranking")
	}
	if len(TopN(agg.Rankings, 10)) != 3 {
		t.Error("TopN beyond length should return the full ranking")
	}
}

func TestAggregateEmptyResolution(t *testing.T) {
	agg := Aggregate(types.Resolution{})
	if len(agg.Edges) != 0 || len(agg.Flows) != 0 || len(agg.CountryYears) != 0 || len(agg.Rankings) != 0 {
		t.Errorf("empty resolution should aggregate to empty views: %+v", agg)
	}
}
