// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/listic-lab/pubgraph/internal/graph"
	"github.com/listic-lab/pubgraph/internal/store"
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Derive chart views from the resolved entity set",
	Long: `Aggregate loads the resolved entity set from the working store and
derives the chart views: collaboration edges, researcher-institution flows,
country publication counts per year, and the citation ranking. The result
is exported to data/export/aggregates.yaml or .json.`,
	RunE: runAggregate,
}

func init() {
	aggregateCmd.Flags().Int("top", 0, "truncate the citation ranking to the top N researchers (0 = all)")
	aggregateCmd.Flags().String("format", "yaml", "export format: yaml or json")

	rootCmd.AddCommand(aggregateCmd)
}

func runAggregate(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)

	s, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.Load(context.Background())
	if err != nil {
		return err
	}

	top, _ := cmd.Flags().GetInt("top")
	if top == 0 {
		top = cfg.Aggregate.TopN
	}

	agg := graph.Aggregate(res)
	if top > 0 {
		agg.Rankings = graph.TopN(agg.Rankings, top)
	}

	format, _ := cmd.Flags().GetString("format")
	path, err := s.ExportAggregates(agg, format)
	if err != nil {
		return err
	}

	fmt.Printf("Aggregated %d edge(s), %d flow(s), %d country-year count(s), %d ranked researcher(s)\n",
		len(agg.Edges), len(agg.Flows), len(agg.CountryYears), len(agg.Rankings))
	fmt.Println("Exported to", path)
	return nil
}
