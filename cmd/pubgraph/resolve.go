// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/listic-lab/pubgraph/internal/ingest"
	"github.com/listic-lab/pubgraph/internal/resolve"
	"github.com/listic-lab/pubgraph/internal/roster"
	"github.com/listic-lab/pubgraph/internal/store"
	"github.com/listic-lab/pubgraph/pkg/types"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Link ingested records against the lab roster",
	Long: `Resolve loads every ingested record file, fuzzy-matches raw author
names against the lab roster, merges duplicate publications by normalized
title, and saves the resolved entity set to the working store. Unmatched
authors and merge conflicts are counted, never fatal.`,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().String("roster", "", "roster file, one researcher per line")
	resolveCmd.Flags().Int("threshold", 0, "fuzzy match threshold 0-100 (0 = default)")
	resolveCmd.Flags().String("export", "", "also export the resolution: yaml or json")

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)

	rosterPath, _ := cmd.Flags().GetString("roster")
	if rosterPath == "" {
		rosterPath = cfg.Resolve.RosterPath
	}
	if rosterPath == "" {
		return fmt.Errorf("roster file required: pass --roster or set resolve.roster_path")
	}

	entries, err := roster.Load(rosterPath)
	if err != nil {
		return err
	}

	dir := recordsDir(cfg)
	records, err := ingest.ReadRecordFiles(dir)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no ingested records under %s: run ingest first", dir)
	}

	// Configured countries first, then source-carried ones on top: the
	// relational database knows its own institutions best.
	countries := map[string]string{}
	for name, country := range cfg.Resolve.Countries {
		countries[name] = country
	}
	var pubs []types.Publication
	for _, rf := range records {
		pubs = append(pubs, rf.Publications...)
		for name, country := range rf.Countries {
			countries[name] = country
		}
	}

	match := cfg.Match
	if threshold, _ := cmd.Flags().GetInt("threshold"); threshold > 0 {
		match.Threshold = threshold
	}

	resolver := resolve.New(entries, resolve.Config{
		Match:     match,
		Countries: countries,
		Log:       os.Stdout,
	})
	res := resolver.Resolve(pubs)

	s, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.Save(ctx, res); err != nil {
		return err
	}

	d := res.Diagnostics
	fmt.Printf("Resolved %d publication(s) into %d researcher(s) and %d institution(s)\n",
		len(res.Publications), len(res.Researchers), len(res.Institutions))
	fmt.Printf("Skipped: %d  Merged: %d  Conflicts: %d  Unmatched authors: %d\n",
		d.RecordsSkipped, d.DuplicatesMerged, d.MergeConflicts, d.UnmatchedAuthors)

	if format, _ := cmd.Flags().GetString("export"); format != "" {
		path, err := s.ExportResolution(ctx, format)
		if err != nil {
			return err
		}
		fmt.Println("Exported to", path)
	}
	return nil
}
