// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/listic-lab/pubgraph/internal/graph"
	"github.com/listic-lab/pubgraph/internal/query"
	"github.com/listic-lab/pubgraph/internal/store"
	"github.com/listic-lab/pubgraph/pkg/types"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Filter a finished run by researcher, year range, or country",
	Long: `Query loads the resolved entity set from the working store and applies
one facade filter: everything involving a researcher, publications within a
year range, a country's per-year counts, or the top-N citation ranking.
A miss yields an empty result, never an error.`,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().String("researcher", "", "show everything involving one researcher")
	queryCmd.Flags().Int("from", 0, "year range start, inclusive (0 = open)")
	queryCmd.Flags().Int("to", 0, "year range end, inclusive (0 = open)")
	queryCmd.Flags().String("country", "", "show per-year publication counts for one country")
	queryCmd.Flags().Int("top", 0, "show the top N researchers by citations")
	queryCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	researcher, _ := cmd.Flags().GetString("researcher")
	from, _ := cmd.Flags().GetInt("from")
	to, _ := cmd.Flags().GetInt("to")
	country, _ := cmd.Flags().GetString("country")
	top, _ := cmd.Flags().GetInt("top")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	s, err := store.Open(pipelineConfig(cmd).Store)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.Load(context.Background())
	if err != nil {
		return err
	}
	f := query.New(res, graph.Aggregate(res))

	switch {
	case researcher != "":
		view := f.ByResearcher(researcher)
		if !view.Found() {
			fmt.Println("No such researcher.")
			return nil
		}
		if jsonOutput {
			return printJSON(view)
		}
		printResearcherView(view)
		return nil

	case country != "":
		counts := f.ByCountry(country)
		if jsonOutput {
			return printJSON(counts)
		}
		printCountryCounts(counts)
		return nil

	case top > 0:
		rankings := f.TopN(top)
		if jsonOutput {
			return printJSON(rankings)
		}
		printRankings(rankings)
		return nil

	case from != 0 || to != 0:
		pubs := f.ByYearRange(from, to)
		if jsonOutput {
			return printJSON(pubs)
		}
		printPublications(pubs)
		return nil

	default:
		return fmt.Errorf("filter required: provide --researcher, --country, --top, or --from/--to")
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printResearcherView(view query.ResearcherView) {
	r := view.Researcher
	fmt.Println(r.CanonicalName)
	if len(r.AkaNames) > 0 {
		fmt.Println("Also seen as:", strings.Join(r.AkaNames, ", "))
	}
	if len(r.Institutions) > 0 {
		fmt.Println("Institutions:", strings.Join(r.Institutions, ", "))
	}

	if len(view.Edges) > 0 {
		fmt.Println("\nCollaborators:")
		for _, e := range view.Edges {
			other := e.A
			if other == r.CanonicalName {
				other = e.B
			}
			fmt.Printf("  %-40s  %d shared publication(s)\n", other, e.Weight)
		}
	}

	fmt.Println()
	printPublications(view.Publications)
}

func printPublications(pubs []types.Publication) {
	if len(pubs) == 0 {
		fmt.Println("No publications found.")
		return
	}

	fmt.Printf("%-50s  %-6s  %-10s  %s\n", "Title", "Year", "Citations", "Source")
	fmt.Println(strings.Repeat("-", 80))
	for _, p := range pubs {
		title := p.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		year := "-"
		if p.Year != nil {
			year = fmt.Sprintf("%d", *p.Year)
		}
		citations := "-"
		if p.CitationCount != nil {
			citations = fmt.Sprintf("%d", *p.CitationCount)
		}
		fmt.Printf("%-50s  %-6s  %-10s  %s\n", title, year, citations, p.Source)
	}
	fmt.Printf("\n%d publication(s)\n", len(pubs))
}

func printCountryCounts(counts []types.CountryYearCount) {
	if len(counts) == 0 {
		fmt.Println("No counts found.")
		return
	}

	fmt.Printf("%-20s  %-6s  %s\n", "Country", "Year", "Publications")
	fmt.Println(strings.Repeat("-", 42))
	for _, cy := range counts {
		fmt.Printf("%-20s  %-6d  %d\n", cy.Country, cy.Year, cy.Count)
	}
}

func printRankings(rankings []types.ResearcherRank) {
	if len(rankings) == 0 {
		fmt.Println("No rankings found.")
		return
	}

	fmt.Printf("%-4s  %-40s  %-10s  %s\n", "Rank", "Researcher", "Citations", "Publications")
	fmt.Println(strings.Repeat("-", 72))
	for i, r := range rankings {
		fmt.Printf("%-4d  %-40s  %-10d  %d\n", i+1, r.CanonicalName, r.Citations, r.Publications)
	}
}
