// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/materials-miner/pkg/types"
)

// QueryOptions holds parameters for record queries.
type QueryOptions struct {
	// Chemical filters by the attributed chemical (exact match).
	Chemical string

	// Property filters by profile name.
	Property string

	// DocumentID filters by source document.
	DocumentID string

	// Text filters by a case-insensitive substring of the sentence.
	Text string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Chemical == "" && q.Property == "" && q.DocumentID == "" && q.Text == ""
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Retrieve returns the records matching opts joined with their document
// provenance, ordered by document and insertion order.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]types.ExtractionRecord, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)

	qb.WriteString(
		`SELECT r.id, r.run_id, r.property, r.chemical, r.value, r.unit,
			r.source_value, r.source_unit, r.mention, r.sentence,
			d.id, d.title, d.doi, d.authors, d.journal, d.volume, d.page,
			d.cover_date, d.access_date, d.source
		FROM records r
		LEFT JOIN documents d ON r.document_id = d.id
		WHERE 1=1`)

	if opts.Chemical != "" {
		qb.WriteString(` AND r.chemical = ?`)
		args = append(args, opts.Chemical)
	}
	if opts.Property != "" {
		qb.WriteString(` AND r.property = ?`)
		args = append(args, opts.Property)
	}
	if opts.DocumentID != "" {
		qb.WriteString(` AND r.document_id = ?`)
		args = append(args, opts.DocumentID)
	}
	if opts.Text != "" {
		qb.WriteString(` AND r.sentence LIKE ? ESCAPE '\'`)
		args = append(args, "%"+likeEscaper.Replace(opts.Text)+"%")
	}

	qb.WriteString(` ORDER BY r.document_id, r.rowid LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var results []types.ExtractionRecord
	for rows.Next() {
		var (
			r           types.ExtractionRecord
			runID       sql.NullString
			chemical    sql.NullString
			sourceValue sql.NullFloat64
			sourceUnit  sql.NullString
			mention     sql.NullString
			doc         [9]sql.NullString
			authorsJSON sql.NullString
		)

		if err := rows.Scan(
			&r.ID, &runID, &r.Property, &chemical, &r.Quantity.Value, &r.Quantity.Unit,
			&sourceValue, &sourceUnit, &mention, &r.Sentence,
			&doc[0], &doc[1], &doc[2], &authorsJSON, &doc[3], &doc[4], &doc[5],
			&doc[6], &doc[7], &doc[8],
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		r.RunID = runID.String
		if chemical.Valid {
			c := types.Chemical(chemical.String)
			r.Chemical = &c
		}
		r.Quantity.SourceValue = sourceValue.Float64
		r.Quantity.SourceUnit = sourceUnit.String
		r.Quantity.Mention = mention.String

		r.Provenance = types.Provenance{
			DocumentID: doc[0].String,
			Title:      doc[1].String,
			DOI:        doc[2].String,
			Journal:    doc[3].String,
			Volume:     doc[4].String,
			Page:       doc[5].String,
			CoverDate:  doc[6].String,
			AccessDate: doc[7].String,
			Source:     doc[8].String,
		}
		if authorsJSON.Valid {
			json.Unmarshal([]byte(authorsJSON.String), &r.Provenance.Authors)
		}

		results = append(results, r)
	}

	return results, rows.Err()
}
