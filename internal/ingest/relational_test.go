// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func setupRelationalDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	statements := []string{
		`CREATE TABLE publication (
			id INTEGER PRIMARY KEY,
			titre TEXT,
			annee INTEGER,
			domaine TEXT,
			nb_citations INTEGER,
			acces_ouvert INTEGER
		)`,
		`CREATE TABLE publication_auteur (publication_id INTEGER, nom TEXT)`,
		`CREATE TABLE institution (nom TEXT PRIMARY KEY, pays TEXT)`,
		`CREATE TABLE publication_institution (publication_id INTEGER, institution_nom TEXT)`,

		`INSERT INTO publication VALUES (1, 'Radar Imaging Advances', 2018, 'signal', 42, 1)`,
		`INSERT INTO publication VALUES (2, 'Untitled Row Stand-In', NULL, NULL, NULL, NULL)`,
		`INSERT INTO publication VALUES (3, '', 2020, 'info', 3, 0)`,

		`INSERT INTO publication_auteur VALUES (1, 'Emmanuel Trouvé')`,
		`INSERT INTO publication_auteur VALUES (1, 'Flavien VERNIER')`,
		`INSERT INTO publication_auteur VALUES (2, 'Ilham ALLOUI')`,

		`INSERT INTO institution VALUES ('LISTIC', 'France')`,
		`INSERT INTO institution VALUES ('ETH Zurich', 'Switzerland')`,
		`INSERT INTO institution VALUES ('Mystery Lab', NULL)`,
		`INSERT INTO publication_institution VALUES (1, 'LISTIC')`,
		`INSERT INTO publication_institution VALUES (1, 'ETH Zurich')`,
		`INSERT INTO publication_institution VALUES (2, 'Mystery Lab')`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("executing %q: %v", stmt, err)
		}
	}
	return db
}

func TestParseRelational(t *testing.T) {
	db := setupRelationalDB(t)

	out, err := ParseRelational(context.Background(), db)
	if err != nil {
		t.Fatal(err)
	}

	if out.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1 (empty title row)", out.Skipped)
	}
	if len(out.Publications) != 2 {
		t.Fatalf("len(Publications) = %d, want 2", len(out.Publications))
	}

	first := out.Publications[0]
	if first.Title != "Radar Imaging Advances" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Year == nil || *first.Year != 2018 {
		t.Errorf("Year = %v, want 2018", first.Year)
	}
	if first.CitationCount == nil || *first.CitationCount != 42 {
		t.Errorf("CitationCount = %v, want 42", first.CitationCount)
	}
	if first.OpenAccess == nil || !*first.OpenAccess {
		t.Errorf("OpenAccess = %v, want true", first.OpenAccess)
	}
	if len(first.RawAuthorNames) != 2 || first.RawAuthorNames[0] != "Emmanuel Trouvé" {
		t.Errorf("RawAuthorNames = %v", first.RawAuthorNames)
	}
	if len(first.Institutions) != 2 {
		t.Errorf("Institutions = %v", first.Institutions)
	}

	second := out.Publications[1]
	if second.Year != nil || second.CitationCount != nil || second.OpenAccess != nil {
		t.Errorf("NULL columns should stay unset: %+v", second)
	}

	if out.Countries["LISTIC"] != "France" || out.Countries["ETH Zurich"] != "Switzerland" {
		t.Errorf("Countries = %v", out.Countries)
	}
	if _, ok := out.Countries["Mystery Lab"]; ok {
		t.Error("NULL country should not appear in the lookup")
	}
}
