// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists the resolved entity set between pipeline stages
// and exports it for downstream dashboards and loaders. The SQLite database
// under data/index/ is a working copy, not authoritative state: re-running
// resolve replaces it wholesale.
// See docs/ARCHITECTURE.md § Working Store.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/listic-lab/pubgraph/internal/names"
	"github.com/listic-lab/pubgraph/pkg/types"
)

const (
	indexDir  = "index"
	exportDir = "export"
	dbFile    = "pubgraph.db"
)

// Store manages the pipeline's working SQLite database.
type Store struct {
	db      *sql.DB
	dataDir string
}

// Open opens or creates the working database at dataDir/index/pubgraph.db,
// creating the schema if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}

	dbDir := filepath.Join(dataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dataDir: dataDir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS researchers (
			canonical_name TEXT PRIMARY KEY,
			aka_names TEXT,
			institutions TEXT,
			collaborator_counts TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS publications (
			title_key TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			raw_author_names TEXT,
			resolved_authors TEXT,
			year INTEGER,
			domain TEXT,
			institutions TEXT,
			citation_count INTEGER,
			open_access INTEGER,
			source TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_publications_year ON publications(year)`,
		`CREATE TABLE IF NOT EXISTS institutions (
			name TEXT PRIMARY KEY,
			country TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS diagnostics (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			records_skipped INTEGER NOT NULL,
			duplicates_merged INTEGER NOT NULL,
			merge_conflicts INTEGER NOT NULL,
			unmatched_authors INTEGER NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save replaces the stored run with res inside one transaction.
func (s *Store) Save(ctx context.Context, res types.Resolution) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"researchers", "publications", "institutions", "diagnostics"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for _, r := range res.Researchers {
		akaJSON, _ := json.Marshal(r.AkaNames)
		instJSON, _ := json.Marshal(r.Institutions)
		collabJSON, _ := json.Marshal(r.CollaboratorCounts)
		_, err := tx.ExecContext(ctx,
			`INSERT INTO researchers (canonical_name, aka_names, institutions, collaborator_counts)
			 VALUES (?, ?, ?, ?)`,
			r.CanonicalName, string(akaJSON), string(instJSON), string(collabJSON))
		if err != nil {
			return fmt.Errorf("inserting researcher %s: %w", r.CanonicalName, err)
		}
	}

	for _, p := range res.Publications {
		rawJSON, _ := json.Marshal(p.RawAuthorNames)
		resolvedJSON, _ := json.Marshal(p.ResolvedAuthors)
		instJSON, _ := json.Marshal(p.Institutions)
		_, err := tx.ExecContext(ctx,
			`INSERT INTO publications
			 (title_key, title, raw_author_names, resolved_authors, year, domain,
			  institutions, citation_count, open_access, source)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			names.Normalize(p.Title), p.Title, string(rawJSON), string(resolvedJSON),
			nullableInt(p.Year), p.Domain, string(instJSON),
			nullableInt(p.CitationCount), nullableBool(p.OpenAccess), string(p.Source))
		if err != nil {
			return fmt.Errorf("inserting publication %q: %w", p.Title, err)
		}
	}

	for _, inst := range res.Institutions {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO institutions (name, country) VALUES (?, ?)`,
			inst.Name, inst.Country)
		if err != nil {
			return fmt.Errorf("inserting institution %s: %w", inst.Name, err)
		}
	}

	d := res.Diagnostics
	_, err = tx.ExecContext(ctx,
		`INSERT INTO diagnostics (id, records_skipped, duplicates_merged, merge_conflicts, unmatched_authors)
		 VALUES (1, ?, ?, ?, ?)`,
		d.RecordsSkipped, d.DuplicatesMerged, d.MergeConflicts, d.UnmatchedAuthors)
	if err != nil {
		return fmt.Errorf("inserting diagnostics: %w", err)
	}

	return tx.Commit()
}

// Load reads the stored run back. An empty database yields an empty
// resolution, not an error.
func (s *Store) Load(ctx context.Context) (types.Resolution, error) {
	var res types.Resolution

	rows, err := s.db.QueryContext(ctx,
		`SELECT canonical_name, aka_names, institutions, collaborator_counts
		 FROM researchers ORDER BY canonical_name`)
	if err != nil {
		return res, fmt.Errorf("querying researchers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var r types.Researcher
		var akaJSON, instJSON, collabJSON string
		if err := rows.Scan(&r.CanonicalName, &akaJSON, &instJSON, &collabJSON); err != nil {
			return res, fmt.Errorf("scanning researcher: %w", err)
		}
		if err := decodeJSON(akaJSON, &r.AkaNames); err != nil {
			return res, fmt.Errorf("decoding researcher %s: %w", r.CanonicalName, err)
		}
		if err := decodeJSON(instJSON, &r.Institutions); err != nil {
			return res, fmt.Errorf("decoding researcher %s: %w", r.CanonicalName, err)
		}
		if err := decodeJSON(collabJSON, &r.CollaboratorCounts); err != nil {
			return res, fmt.Errorf("decoding researcher %s: %w", r.CanonicalName, err)
		}
		res.Researchers = append(res.Researchers, r)
	}
	if err := rows.Err(); err != nil {
		return res, fmt.Errorf("iterating researchers: %w", err)
	}

	pubRows, err := s.db.QueryContext(ctx,
		`SELECT title, raw_author_names, resolved_authors, year, domain,
		        institutions, citation_count, open_access, source
		 FROM publications ORDER BY title_key`)
	if err != nil {
		return res, fmt.Errorf("querying publications: %w", err)
	}
	defer pubRows.Close()
	for pubRows.Next() {
		var p types.Publication
		var rawJSON, resolvedJSON, instJSON, source string
		var year, citations sql.NullInt64
		var openAccess sql.NullBool
		if err := pubRows.Scan(&p.Title, &rawJSON, &resolvedJSON, &year, &p.Domain,
			&instJSON, &citations, &openAccess, &source); err != nil {
			return res, fmt.Errorf("scanning publication: %w", err)
		}
		if err := decodeJSON(rawJSON, &p.RawAuthorNames); err != nil {
			return res, fmt.Errorf("decoding publication %q: %w", p.Title, err)
		}
		if err := decodeJSON(resolvedJSON, &p.ResolvedAuthors); err != nil {
			return res, fmt.Errorf("decoding publication %q: %w", p.Title, err)
		}
		if err := decodeJSON(instJSON, &p.Institutions); err != nil {
			return res, fmt.Errorf("decoding publication %q: %w", p.Title, err)
		}
		if year.Valid {
			y := int(year.Int64)
			p.Year = &y
		}
		if citations.Valid {
			c := int(citations.Int64)
			p.CitationCount = &c
		}
		if openAccess.Valid {
			o := openAccess.Bool
			p.OpenAccess = &o
		}
		p.Source = types.SourceSystem(source)
		res.Publications = append(res.Publications, p)
	}
	if err := pubRows.Err(); err != nil {
		return res, fmt.Errorf("iterating publications: %w", err)
	}

	instRows, err := s.db.QueryContext(ctx,
		`SELECT name, country FROM institutions ORDER BY name`)
	if err != nil {
		return res, fmt.Errorf("querying institutions: %w", err)
	}
	defer instRows.Close()
	for instRows.Next() {
		var inst types.Institution
		if err := instRows.Scan(&inst.Name, &inst.Country); err != nil {
			return res, fmt.Errorf("scanning institution: %w", err)
		}
		res.Institutions = append(res.Institutions, inst)
	}
	if err := instRows.Err(); err != nil {
		return res, fmt.Errorf("iterating institutions: %w", err)
	}

	d := &res.Diagnostics
	err = s.db.QueryRowContext(ctx,
		`SELECT records_skipped, duplicates_merged, merge_conflicts, unmatched_authors
		 FROM diagnostics WHERE id = 1`).
		Scan(&d.RecordsSkipped, &d.DuplicatesMerged, &d.MergeConflicts, &d.UnmatchedAuthors)
	if err != nil && err != sql.ErrNoRows {
		return res, fmt.Errorf("querying diagnostics: %w", err)
	}

	return res, nil
}

// ExportResolution writes the stored run to data/export/resolution.yaml or
// resolution.json and returns the written path.
func (s *Store) ExportResolution(ctx context.Context, format string) (string, error) {
	res, err := s.Load(ctx)
	if err != nil {
		return "", err
	}
	return s.export("resolution", format, res)
}

// ExportAggregates writes an aggregate set to data/export/aggregates.yaml
// or aggregates.json and returns the written path.
func (s *Store) ExportAggregates(agg types.AggregateSet, format string) (string, error) {
	return s.export("aggregates", format, agg)
}

func (s *Store) export(stem, format string, v any) (string, error) {
	dir := filepath.Join(s.dataDir, exportDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	var data []byte
	var err error
	switch format {
	case "yaml", "":
		format = "yaml"
		data, err = yaml.Marshal(v)
	case "json":
		data, err = json.MarshalIndent(v, "", "  ")
	default:
		return "", fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return "", fmt.Errorf("marshaling %s export: %w", stem, err)
	}

	path := filepath.Join(dir, stem+"."+format)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

func decodeJSON(raw string, dst any) error {
	if raw == "" || raw == "null" {
		return nil
	}
	return json.Unmarshal([]byte(raw), dst)
}

func nullableInt(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}

func nullableBool(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}
