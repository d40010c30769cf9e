// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"testing"

	"github.com/listic-lab/pubgraph/internal/graph"
	"github.com/listic-lab/pubgraph/pkg/types"
)

func intPtr(n int) *int { return &n }

func testFacade() *Facade {
	res := types.Resolution{
		Researchers: []types.Researcher{
			{CanonicalName: "Flavien VERNIER"},
			{CanonicalName: "Ilham ALLOUI"},
		},
		Publications: []types.Publication{
			{
				Title:           "Joint Work",
				ResolvedAuthors: []string{"Flavien VERNIER", "Ilham ALLOUI"},
				Institutions:    []string{"LISTIC"},
				Year:            intPtr(2019),
				CitationCount:   intPtr(7),
			},
			{
				Title:           "Solo Work",
				ResolvedAuthors: []string{"Ilham ALLOUI"},
				Year:            intPtr(2021),
			},
			{
				Title:           "Undated",
				ResolvedAuthors: []string{"Flavien VERNIER"},
			},
		},
		Institutions: []types.Institution{
			{Name: "LISTIC", Country: "France"},
		},
	}
	return New(res, graph.Aggregate(res))
}

func TestByResearcher(t *testing.T) {
	f := testFacade()

	view := f.ByResearcher("ilham alloui") // normalized lookup
	if !view.Found() {
		t.Fatal("known researcher not found")
	}
	if view.Researcher.CanonicalName != "Ilham ALLOUI" {
		t.Errorf("CanonicalName = %q", view.Researcher.CanonicalName)
	}
	if len(view.Publications) != 2 {
		t.Errorf("len(Publications) = %d, want 2", len(view.Publications))
	}
	if len(view.Edges) != 1 || view.Edges[0].Weight != 1 {
		t.Errorf("Edges = %+v", view.Edges)
	}
	if len(view.Flows) != 1 || view.Flows[0].Institution != "LISTIC" {
		t.Errorf("Flows = %+v", view.Flows)
	}
}

func TestByResearcherUnknownIsEmpty(t *testing.T) {
	f := testFacade()
	view := f.ByResearcher("Nobody Anywhere")
	if view.Found() || len(view.Publications) != 0 || len(view.Edges) != 0 {
		t.Errorf("unknown researcher should yield an empty view: %+v", view)
	}
}

func TestByYearRange(t *testing.T) {
	f := testFacade()

	tests := []struct {
		name     string
		from, to int
		want     int
	}{
		{"bounded both sides", 2019, 2020, 1},
		{"open lower bound", 0, 2020, 1},
		{"open upper bound", 2020, 0, 1},
		{"fully open includes undated", 0, 0, 3},
		{"empty range", 2025, 2030, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.ByYearRange(tt.from, tt.to); len(got) != tt.want {
				t.Errorf("ByYearRange(%d, %d) returned %d publications, want %d",
					tt.from, tt.to, len(got), tt.want)
			}
		})
	}
}

func TestByCountry(t *testing.T) {
	f := testFacade()

	counts := f.ByCountry("france")
	if len(counts) != 1 || counts[0].Year != 2019 || counts[0].Count != 1 {
		t.Errorf("ByCountry = %+v", counts)
	}

	if got := f.ByCountry("Atlantis"); len(got) != 0 {
		t.Errorf("unknown country should yield empty counts: %+v", got)
	}
}

func TestTopN(t *testing.T) {
	f := testFacade()

	top := f.TopN(1)
	if len(top) != 1 {
		t.Fatalf("len(TopN(1)) = %d", len(top))
	}
	// Both researchers share the Joint Work citations; tie breaks by name.
	if top[0].CanonicalName != "Flavien VERNIER" || top[0].Citations != 7 {
		t.Errorf("TopN(1)[0] = %+v", top[0])
	}
}
