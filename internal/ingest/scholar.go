// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/listic-lab/pubgraph/internal/names"
	"github.com/listic-lab/pubgraph/pkg/types"
)

// Scholar export column names, as written by the scraping tooling.
const (
	colResearcher = "researcher"
	colTitle      = "title"
	colAuthors    = "authors"
	colCitations  = "value of cited by"
	colYear       = "year"
)

// parseScholarCSV decodes a Google Scholar export. The authors column is a
// single comma-separated string; the researcher column names the scraped
// profile owner, who is always an author even when the truncated authors
// field omits them. Unparseable citation counts and years are left unset,
// not zeroed. Rows without a title are skipped and counted.
func parseScholarCSV(r io.Reader) (ParseOutput, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return ParseOutput{}, fmt.Errorf("reading CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols[colTitle]; !ok {
		return ParseOutput{}, fmt.Errorf("CSV header missing %q column", colTitle)
	}

	var out ParseOutput
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A malformed row is a local problem, not a fatal one.
			out.Skipped++
			continue
		}

		title := field(row, cols, colTitle)
		if title == "" {
			out.Skipped++
			continue
		}

		authors := splitAuthors(field(row, cols, colAuthors))
		if owner := field(row, cols, colResearcher); owner != "" && !containsName(authors, owner) {
			authors = append([]string{owner}, authors...)
		}

		out.Publications = append(out.Publications, types.Publication{
			Title:          title,
			RawAuthorNames: authors,
			Year:           parseOptionalInt(field(row, cols, colYear)),
			CitationCount:  parseOptionalInt(field(row, cols, colCitations)),
			Source:         types.SourceScholarCSV,
		})
	}
	return out, nil
}

func field(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func splitAuthors(s string) []string {
	if s == "" {
		return nil
	}
	var authors []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			authors = append(authors, part)
		}
	}
	return authors
}

func containsName(authors []string, name string) bool {
	target := names.Normalize(name)
	for _, a := range authors {
		if names.Normalize(a) == target {
			return true
		}
	}
	return false
}

// parseOptionalInt returns nil for empty or non-numeric input; absence is a
// normal data case, never coerced to zero.
func parseOptionalInt(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
