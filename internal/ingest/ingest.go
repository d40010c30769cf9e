// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest parses heterogeneous raw bibliographic records into uniform
// publication records. Each source system (HAL JSON, Scholar CSV, relational
// rows) has its own parser behind a single dispatch entry point; authors are
// left unresolved for the resolver stage.
// See docs/ARCHITECTURE.md § Ingestion.
package ingest

import (
	"fmt"
	"io"

	"github.com/listic-lab/pubgraph/pkg/types"
)

// ParseOutput holds the parsed records and ingestion diagnostics. Malformed
// rows are dropped and counted, never fatal.
type ParseOutput struct {
	// Publications are the parsed records in source order, authors unresolved.
	Publications []types.Publication

	// Skipped counts raw records dropped for missing a title.
	Skipped int

	// Countries maps institution name to country for sources that carry
	// one (relational only). Empty for HAL and Scholar input.
	Countries map[string]string
}

// Parse decodes raw records of the given source shape from r.
// Relational records come from a database, not a stream; use ParseRelational.
func Parse(source types.SourceSystem, r io.Reader) (ParseOutput, error) {
	switch source {
	case types.SourceHAL:
		return parseHAL(r)
	case types.SourceScholarCSV:
		return parseScholarCSV(r)
	case types.SourceRelational:
		return ParseOutput{}, fmt.Errorf("relational records are read from a database: use ParseRelational")
	default:
		return ParseOutput{}, fmt.Errorf("unknown source system %q", source)
	}
}
