// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mine

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/materials-miner/internal/document"
	"github.com/pdiddy/materials-miner/pkg/types"
)

// Directory layout under PapersDir and RecordsDir.
const (
	TextDir      = "text"
	MetadataDir  = "metadata"
	ExtractedDir = "extracted"

	// RecordsSuffix ends every per-document result file name.
	RecordsSuffix = "-records.yaml"
)

// BatchSummary holds counts from a batch mining run.
type BatchSummary struct {
	Mined   int
	Skipped int
	Failed  int
	Records int
}

// Total returns the number of documents processed.
func (s BatchSummary) Total() int {
	return s.Mined + s.Skipped + s.Failed
}

// HasFailures reports whether any document failed.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// job is one document to mine.
type job struct {
	id       string
	textPath string
	metaPath string
	outPath  string
}

// MineAll mines every supported document in PapersDir/text/ and writes one
// result file per document to RecordsDir/extracted/. Documents whose result
// is newer than their text and metadata are skipped unless Rewrite is set.
// Up to Workers documents are mined at once. A failing document is counted
// and reported on w; it never stops the batch.
func (m *Miner) MineAll(ctx context.Context, w io.Writer) (BatchSummary, error) {
	textDir := filepath.Join(m.cfg.PapersDir, TextDir)
	metaDir := filepath.Join(m.cfg.PapersDir, MetadataDir)
	outDir := filepath.Join(m.cfg.RecordsDir, ExtractedDir)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return BatchSummary{}, fmt.Errorf("creating output directory: %w", err)
	}

	entries, err := os.ReadDir(textDir)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("reading text directory %s: %w", textDir, err)
	}

	var jobs []job
	for _, entry := range entries {
		if entry.IsDir() || !document.IsSupported(entry.Name()) {
			continue
		}
		id := document.ID(entry.Name())
		jobs = append(jobs, job{
			id:       id,
			textPath: filepath.Join(textDir, entry.Name()),
			metaPath: filepath.Join(metaDir, id+".yaml"),
			outPath:  filepath.Join(outDir, id+RecordsSuffix),
		})
	}

	var (
		mu      sync.Mutex
		summary BatchSummary
	)
	report := func(update func(*BatchSummary), format string, args ...any) {
		mu.Lock()
		defer mu.Unlock()
		update(&summary)
		fmt.Fprintf(w, format, args...)
	}

	workers := m.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, j := range jobs {
		if gctx.Err() != nil {
			break
		}
		j := j
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			if !m.cfg.Rewrite {
				changed, err := hasChanged(j.outPath, j.textPath, j.metaPath)
				if err != nil {
					report(func(s *BatchSummary) { s.Failed++ }, "failed  %s: %v\n", j.id, err)
					return nil
				}
				if !changed {
					report(func(s *BatchSummary) { s.Skipped++ }, "skipped %s\n", j.id)
					return nil
				}
			}

			report(func(*BatchSummary) {}, "mining %s\n", j.id)
			result, err := m.mineFile(j)
			if err != nil {
				m.logger.Warn("mining failed", zap.String("document", j.id), zap.Error(err))
				report(func(s *BatchSummary) { s.Failed++ }, "failed  %s: %v\n", j.id, err)
				return nil
			}
			if err := writeResult(j.outPath, result); err != nil {
				report(func(s *BatchSummary) { s.Failed++ }, "failed  %s: write error: %v\n", j.id, err)
				return nil
			}
			report(func(s *BatchSummary) {
				s.Mined++
				s.Records += len(result.Records)
			}, "mined %s (%d records)\n", j.id, len(result.Records))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary, err
	}
	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("mining interrupted: %w", err)
	}
	return summary, nil
}

func (m *Miner) mineFile(j job) (*types.DocumentResult, error) {
	doc, err := document.Load(j.textPath, j.metaPath)
	if err != nil {
		return nil, err
	}
	return m.MineDocument(doc), nil
}

// hasChanged reports whether any existing input is newer than the output.
// Returns true if the output does not exist. Missing inputs are ignored.
func hasChanged(outPath string, inputs ...string) (bool, error) {
	outInfo, err := os.Stat(outPath)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat output %s: %w", outPath, err)
	}

	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return false, fmt.Errorf("stat input %s: %w", in, err)
		}
		if info.ModTime().After(outInfo.ModTime()) {
			return true, nil
		}
	}
	return false, nil
}

// writeResult marshals the DocumentResult to a YAML file.
func writeResult(path string, result *types.DocumentResult) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadResult reads a DocumentResult YAML file written by MineAll.
func ReadResult(path string) (*types.DocumentResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var result types.DocumentResult
	if err := yaml.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &result, nil
}
