// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/listic-lab/pubgraph/pkg/types"
)

// The relational shape mirrors the lab's SQL dashboard schema:
//
//	publication(id, titre, annee, domaine, nb_citations, acces_ouvert)
//	publication_auteur(publication_id, nom)
//	institution(nom, pays)
//	publication_institution(publication_id, institution_nom)
//
// Fields are already typed; NULL columns map to unset optionals.

// ParseRelational reads publication rows and their author/institution links
// from db. Rows with an empty title are skipped and counted. Institution
// countries are returned in ParseOutput.Countries for the resolver's lookup.
func ParseRelational(ctx context.Context, db *sql.DB) (ParseOutput, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, titre, annee, domaine, nb_citations, acces_ouvert
		 FROM publication ORDER BY id`)
	if err != nil {
		return ParseOutput{}, fmt.Errorf("querying publications: %w", err)
	}
	defer rows.Close()

	type pubRow struct {
		id  int64
		pub types.Publication
	}
	var parsed []pubRow
	var out ParseOutput

	for rows.Next() {
		var (
			id        int64
			titre     sql.NullString
			annee     sql.NullInt64
			domaine   sql.NullString
			citations sql.NullInt64
			openAcc   sql.NullBool
		)
		if err := rows.Scan(&id, &titre, &annee, &domaine, &citations, &openAcc); err != nil {
			return ParseOutput{}, fmt.Errorf("scanning publication row: %w", err)
		}

		if !titre.Valid || titre.String == "" {
			out.Skipped++
			continue
		}

		pub := types.Publication{
			Title:  titre.String,
			Domain: domaine.String,
			Source: types.SourceRelational,
		}
		if annee.Valid {
			year := int(annee.Int64)
			pub.Year = &year
		}
		if citations.Valid {
			count := int(citations.Int64)
			pub.CitationCount = &count
		}
		if openAcc.Valid {
			open := openAcc.Bool
			pub.OpenAccess = &open
		}

		parsed = append(parsed, pubRow{id: id, pub: pub})
	}
	if err := rows.Err(); err != nil {
		return ParseOutput{}, fmt.Errorf("iterating publications: %w", err)
	}

	out.Countries = make(map[string]string)
	for i := range parsed {
		if err := loadAuthors(ctx, db, parsed[i].id, &parsed[i].pub); err != nil {
			return ParseOutput{}, err
		}
		if err := loadInstitutions(ctx, db, parsed[i].id, &parsed[i].pub, out.Countries); err != nil {
			return ParseOutput{}, err
		}
		out.Publications = append(out.Publications, parsed[i].pub)
	}

	return out, nil
}

func loadAuthors(ctx context.Context, db *sql.DB, pubID int64, pub *types.Publication) error {
	rows, err := db.QueryContext(ctx,
		`SELECT nom FROM publication_auteur WHERE publication_id = ? ORDER BY rowid`, pubID)
	if err != nil {
		return fmt.Errorf("querying authors for publication %d: %w", pubID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var nom string
		if err := rows.Scan(&nom); err != nil {
			return fmt.Errorf("scanning author row: %w", err)
		}
		pub.RawAuthorNames = append(pub.RawAuthorNames, nom)
	}
	return rows.Err()
}

func loadInstitutions(ctx context.Context, db *sql.DB, pubID int64, pub *types.Publication, countries map[string]string) error {
	rows, err := db.QueryContext(ctx,
		`SELECT i.nom, i.pays
		 FROM publication_institution pi
		 JOIN institution i ON i.nom = pi.institution_nom
		 WHERE pi.publication_id = ?
		 ORDER BY i.nom`, pubID)
	if err != nil {
		return fmt.Errorf("querying institutions for publication %d: %w", pubID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var nom string
		var pays sql.NullString
		if err := rows.Scan(&nom, &pays); err != nil {
			return fmt.Errorf("scanning institution row: %w", err)
		}
		pub.Institutions = append(pub.Institutions, nom)
		if pays.Valid && pays.String != "" {
			countries[nom] = pays.String
		}
	}
	return rows.Err()
}
