// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pubgraph CLI.
// See docs/ARCHITECTURE.md § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/listic-lab/pubgraph/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pubgraph CLI.
var rootCmd = &cobra.Command{
	Use:   "pubgraph",
	Short: "Link and aggregate academic publication records",
	Long: `pubgraph unifies publication records exported from HAL, Google Scholar,
and relational lab databases into one entity set: raw author names are
fuzzy-matched against a lab roster, duplicate records are merged, and the
result is aggregated into collaboration, institution, and citation views.

Each pipeline stage is a subcommand: ingest parses raw exports into uniform
records, resolve links them against the roster, aggregate derives the chart
views, and query filters a finished run.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pubgraph.yaml or ~/.config/pubgraph/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "data", "base directory for pipeline data (contains records/, index/, export/)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pubgraph")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pubgraph"))
		}
	}

	viper.SetEnvPrefix("PUBGRAPH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig assembles the stage settings from the config file, with the
// --data-dir flag taking precedence over store.data_dir.
func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	cfg := types.PipelineConfig{
		Match:  types.MatchConfig{Threshold: viper.GetInt("match.threshold")},
		Ingest: types.IngestConfig{RecordsDir: viper.GetString("ingest.records_dir")},
		Resolve: types.ResolveConfig{
			RosterPath: viper.GetString("resolve.roster_path"),
			Countries:  viper.GetStringMapString("resolve.countries"),
		},
		Store:     types.StoreConfig{DataDir: viper.GetString("store.data_dir")},
		Aggregate: types.AggregateConfig{TopN: viper.GetInt("aggregate.top_n")},
	}
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" && dir != "data" {
		cfg.Store.DataDir = dir
	}
	if cfg.Store.DataDir == "" {
		cfg.Store.DataDir = "data"
	}
	return cfg
}

// recordsDir resolves the directory for parsed uniform records.
func recordsDir(cfg types.PipelineConfig) string {
	if cfg.Ingest.RecordsDir != "" {
		return cfg.Ingest.RecordsDir
	}
	return filepath.Join(cfg.Store.DataDir, "records")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
