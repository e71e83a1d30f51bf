// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package records

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/materials-miner/pkg/types"
)

const exportLimit = 1000000

// CSVHeader is the column layout of the CSV export.
var CSVHeader = []string{
	"Compound", "Property", "Value", "Unit", "Original Value", "Original Unit",
	"Sentence", "Title", "DOI", "Author(s)", "Journal", "Volume", "Page",
	"Cover Date", "Access Date",
}

// ExportYAML writes the matching records to records/index/export.yaml and
// returns the file path.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) (string, error) {
	recs, err := s.exportRecords(ctx, opts)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(recs)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return s.writeExport("export.yaml", data)
}

// ExportJSON writes the matching records to records/index/export.json and
// returns the file path.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) (string, error) {
	recs, err := s.exportRecords(ctx, opts)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return s.writeExport("export.json", data)
}

// ExportCSV writes the matching records to records/index/export.csv, one
// row per record, and returns the file path.
func (s *Store) ExportCSV(ctx context.Context, opts QueryOptions) (string, error) {
	recs, err := s.exportRecords(ctx, opts)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := WriteCSV(&sb, recs); err != nil {
		return "", err
	}
	return s.writeExport("export.csv", []byte(sb.String()))
}

// WriteCSV writes recs to w with CSVHeader as the first row. A record with
// no chemical has an empty Compound column.
func WriteCSV(w io.Writer, recs []types.ExtractionRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range recs {
		p := r.Provenance
		row := []string{
			r.ChemicalName(),
			r.Property,
			formatFloat(r.Quantity.Value),
			r.Quantity.Unit,
			formatFloat(r.Quantity.SourceValue),
			r.Quantity.SourceUnit,
			r.Sentence,
			p.Title,
			p.DOI,
			strings.Join(p.Authors, "; "),
			p.Journal,
			p.Volume,
			p.Page,
			p.CoverDate,
			p.AccessDate,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %s: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (s *Store) exportRecords(ctx context.Context, opts QueryOptions) ([]types.ExtractionRecord, error) {
	opts.MaxResults = exportLimit
	recs, err := s.Retrieve(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	if recs == nil {
		recs = []types.ExtractionRecord{}
	}
	return recs, nil
}

func (s *Store) writeExport(name string, data []byte) (string, error) {
	path := filepath.Join(s.recordsDir, indexDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
