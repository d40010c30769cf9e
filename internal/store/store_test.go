// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/listic-lab/pubgraph/pkg/types"
)

func intPtr(n int) *int    { return &n }
func boolPtr(b bool) *bool { return &b }

func testSetup(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.StoreConfig{DataDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleResolution() types.Resolution {
	return types.Resolution{
		Researchers: []types.Researcher{
			{
				CanonicalName:      "Flavien VERNIER",
				AkaNames:           []string{"F VERNIER", "Flavien Vernier"},
				Institutions:       []string{"LISTIC"},
				CollaboratorCounts: map[string]int{"Ilham ALLOUI": 2},
			},
			{
				CanonicalName:      "Ilham ALLOUI",
				AkaNames:           []string{"ILHAM ALLOUI"},
				Institutions:       []string{"LISTIC"},
				CollaboratorCounts: map[string]int{"Flavien VERNIER": 2},
			},
		},
		Publications: []types.Publication{
			{
				Title:           "Adaptive Systems Survey",
				RawAuthorNames:  []string{"ILHAM ALLOUI", "F VERNIER"},
				ResolvedAuthors: []string{"Flavien VERNIER", "Ilham ALLOUI"},
				Year:            intPtr(2019),
				Domain:          "info",
				Institutions:    []string{"LISTIC"},
				CitationCount:   intPtr(12),
				OpenAccess:      boolPtr(true),
				Source:          types.SourceHAL,
			},
			{
				Title:          "Unmatched Work",
				RawAuthorNames: []string{"Unknown Person"},
				Source:         types.SourceScholarCSV,
			},
		},
		Institutions: []types.Institution{
			{Name: "LISTIC", Country: "France"},
		},
		Diagnostics: types.Diagnostics{
			RecordsSkipped:   1,
			DuplicatesMerged: 2,
			MergeConflicts:   1,
			UnmatchedAuthors: 3,
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := testSetup(t)
	ctx := context.Background()

	want := sampleResolution()
	if err := s.Save(ctx, want); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestSaveReplacesPreviousRun(t *testing.T) {
	s := testSetup(t)
	ctx := context.Background()

	if err := s.Save(ctx, sampleResolution()); err != nil {
		t.Fatal(err)
	}

	smaller := types.Resolution{
		Publications: []types.Publication{
			{Title: "Only Survivor", Source: types.SourceRelational},
		},
	}
	if err := s.Save(ctx, smaller); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Publications) != 1 || got.Publications[0].Title != "Only Survivor" {
		t.Errorf("Publications = %+v", got.Publications)
	}
	if len(got.Researchers) != 0 || len(got.Institutions) != 0 {
		t.Errorf("previous run leaked: %+v", got)
	}
}

func TestLoadEmptyDatabase(t *testing.T) {
	s := testSetup(t)

	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Publications) != 0 || len(got.Researchers) != 0 {
		t.Errorf("empty database should load empty: %+v", got)
	}
}

func TestExportResolutionYAML(t *testing.T) {
	s := testSetup(t)
	ctx := context.Background()

	if err := s.Save(ctx, sampleResolution()); err != nil {
		t.Fatal(err)
	}

	path, err := s.ExportResolution(ctx, "yaml")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "resolution.yaml" {
		t.Errorf("export path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded types.Resolution
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("export is not valid YAML: %v", err)
	}
	if len(decoded.Publications) != 2 {
		t.Errorf("exported publications = %d, want 2", len(decoded.Publications))
	}
}

func TestExportAggregatesJSON(t *testing.T) {
	s := testSetup(t)

	agg := types.AggregateSet{
		Edges: []types.CollaborationEdge{
			{A: "Flavien VERNIER", B: "Ilham ALLOUI", Weight: 2},
		},
	}
	path, err := s.ExportAggregates(agg, "json")
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Ilham ALLOUI") {
		t.Errorf("export missing edge data: %s", data)
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	s := testSetup(t)
	if _, err := s.ExportAggregates(types.AggregateSet{}, "xml"); err == nil {
		t.Error("unsupported format should fail")
	}
}
