// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// MatchConfig holds settings for fuzzy author-name matching.
type MatchConfig struct {
	// Threshold is the partial-ratio score (0-100) a roster entry must
	// exceed to count as a match (default 80). Matching is first roster
	// entry above threshold, in roster order.
	Threshold int `json:"threshold" yaml:"threshold"`
}

// IngestConfig holds settings for the ingestion stage.
type IngestConfig struct {
	// RecordsDir is the directory for parsed uniform records (default "data/records").
	RecordsDir string `json:"records_dir" yaml:"records_dir"`
}

// ResolveConfig holds settings for the resolution stage.
type ResolveConfig struct {
	// RosterPath is the plain-text canonical researcher list (default
	// "researchers.txt"). One name per line; the labeled
	// "First Name: ... , Last Name: ..." form is also accepted.
	RosterPath string `json:"roster_path" yaml:"roster_path"`

	// Countries maps an institution name (as scraped) to its country.
	// HAL and Scholar payloads carry no country; this lookup supplies it.
	Countries map[string]string `json:"countries,omitempty" yaml:"countries,omitempty"`
}

// StoreConfig holds settings for the working store.
type StoreConfig struct {
	// DataDir is the base directory for pipeline data (contains records/,
	// index/, export/). Default "data".
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// AggregateConfig holds settings for the aggregation stage.
type AggregateConfig struct {
	// TopN is the default ranking truncation for exports (default 10).
	TopN int `json:"top_n" yaml:"top_n"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Match     MatchConfig     `json:"match" yaml:"match"`
	Ingest    IngestConfig    `json:"ingest" yaml:"ingest"`
	Resolve   ResolveConfig   `json:"resolve" yaml:"resolve"`
	Store     StoreConfig     `json:"store" yaml:"store"`
	Aggregate AggregateConfig `json:"aggregate" yaml:"aggregate"`
}
