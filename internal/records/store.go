// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package records persists mined ExtractionRecords in a SQLite database
// and serves queries, exports and per-chemical summaries over them.
package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/materials-miner/internal/mine"
	"github.com/pdiddy/materials-miner/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "records.db"

	defaultMaxResults = 20
)

// Store manages the record SQLite database.
type Store struct {
	db         *sql.DB
	recordsDir string
	maxResults int
}

// NewStore opens or creates the record database at
// recordsDir/index/records.db and creates the schema if it does not exist.
func NewStore(cfg types.RecordStoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.RecordsDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{
		db:         db,
		recordsDir: cfg.RecordsDir,
		maxResults: maxResults,
	}

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
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			title TEXT,
			doi TEXT,
			authors TEXT,
			journal TEXT,
			volume TEXT,
			page TEXT,
			cover_date TEXT,
			access_date TEXT,
			source TEXT,
			run_id TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			document_id TEXT NOT NULL REFERENCES documents(id),
			property TEXT NOT NULL,
			chemical TEXT,
			value REAL NOT NULL,
			unit TEXT NOT NULL,
			source_value REAL,
			source_unit TEXT,
			mention TEXT,
			sentence TEXT NOT NULL,
			run_id TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_document_id ON records(document_id)`,
		`CREATE INDEX IF NOT EXISTS idx_records_property ON records(property)`,
		`CREATE INDEX IF NOT EXISTS idx_records_chemical ON records(chemical)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			document_id TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestSummary holds counts from a record indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of documents processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest reads the per-document result files in recordsDir/extracted/ and
// loads them into the database. Files whose modification time matches the
// last indexing are skipped; changed files replace the document's records.
// On success it writes export.yaml.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	extractDir := filepath.Join(s.recordsDir, mine.ExtractedDir)

	entries, err := os.ReadDir(extractDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading extraction directory %s: %w", extractDir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), mine.RecordsSuffix) {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		docID := strings.TrimSuffix(entry.Name(), mine.RecordsSuffix)

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE document_id = ?`, docID,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", docID)
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		result, err := mine.ReadResult(filepath.Join(extractDir, entry.Name()))
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}

		if err := s.ingestDocument(ctx, docID, result, modTime); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d records)\n", docID, len(result.Records))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s (%d records)\n", docID, len(result.Records))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	if summary.Indexed > 0 || summary.Updated > 0 {
		if _, err := s.ExportYAML(ctx, QueryOptions{}); err != nil {
			fmt.Fprintf(w, "warning: export.yaml write failed: %v\n", err)
		}
	}

	return summary, nil
}

func (s *Store) ingestDocument(ctx context.Context, docID string, result *types.DocumentResult, modTime string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE document_id = ?`, docID); err != nil {
		return fmt.Errorf("deleting old records: %w", err)
	}

	prov := result.Provenance
	authorsJSON, _ := json.Marshal(prov.Authors)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (id, title, doi, authors, journal, volume, page, cover_date, access_date, source, run_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, doi=excluded.doi, authors=excluded.authors,
			journal=excluded.journal, volume=excluded.volume, page=excluded.page,
			cover_date=excluded.cover_date, access_date=excluded.access_date,
			source=excluded.source, run_id=excluded.run_id`,
		docID, prov.Title, prov.DOI, string(authorsJSON), prov.Journal, prov.Volume,
		prov.Page, prov.CoverDate, prov.AccessDate, prov.Source, result.RunID,
	)
	if err != nil {
		return fmt.Errorf("upserting document: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO records (id, document_id, property, chemical, value, unit,
			source_value, source_unit, mention, sentence, run_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range result.Records {
		var chemical sql.NullString
		if r.Chemical != nil {
			chemical = sql.NullString{String: string(*r.Chemical), Valid: true}
		}
		q := r.Quantity
		_, err := stmt.ExecContext(ctx,
			r.ID, docID, r.Property, chemical, q.Value, q.Unit,
			q.SourceValue, q.SourceUnit, q.Mention, r.Sentence, r.RunID,
		)
		if err != nil {
			return fmt.Errorf("inserting record %s: %w", r.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO indexing_status (document_id, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(document_id) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		docID, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating indexing status: %w", err)
	}

	return tx.Commit()
}
