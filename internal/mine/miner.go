// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mine runs the extraction engine over whole documents. For each
// property profile it segments the document into sentences, selects the
// sentences that mention the property, recognizes chemicals and quantities
// in them and aligns the two into records stamped with provenance.
package mine

import (
	"crypto/sha256"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/pdiddy/materials-miner/internal/align"
	"github.com/pdiddy/materials-miner/internal/document"
	"github.com/pdiddy/materials-miner/internal/formula"
	"github.com/pdiddy/materials-miner/internal/quantity"
	"github.com/pdiddy/materials-miner/internal/segment"
	"github.com/pdiddy/materials-miner/pkg/types"
)

const (
	defaultMaxSentenceLength = 1500

	chemicalCacheTTL     = 30 * time.Minute
	chemicalCacheCleanup = time.Hour
)

// DefaultSourceMaxSentenceLength holds per-source sentence limits. Elsevier
// full text opens with a long run-on block that the lower limit drops.
var DefaultSourceMaxSentenceLength = map[string]int{
	"elsevier": 1100,
}

// Miner mines documents for the configured property profiles. A Miner is
// safe for concurrent use by multiple goroutines.
type Miner struct {
	cfg        types.MinerConfig
	profiles   []types.PropertyProfile
	scanners   map[string]*quantity.Scanner
	recognizer *formula.Recognizer
	splitter   segment.Splitter
	logger     *zap.Logger
	runID      string

	// chemicals caches the chemical list of each document text, keyed by
	// content hash, so every profile reuses one recognition pass.
	chemicals *gocache.Cache
}

// New returns a Miner for cfg. When cfg.Profiles is empty the built-in
// profiles are used. A nil logger disables diagnostics.
func New(cfg types.MinerConfig, splitter segment.Splitter, logger *zap.Logger) (*Miner, error) {
	if splitter == nil {
		return nil, fmt.Errorf("miner needs a sentence splitter")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	profiles := cfg.Profiles
	if len(profiles) == 0 {
		profiles = DefaultProfiles()
	}
	scanners := make(map[string]*quantity.Scanner, len(profiles))
	for _, p := range profiles {
		if err := ValidateProfile(p); err != nil {
			return nil, err
		}
		scanners[p.Name] = quantity.NewScannerFromConfig(p.QuantityConfig)
	}

	runID := uuid.New().String()
	return &Miner{
		cfg:        cfg,
		profiles:   profiles,
		scanners:   scanners,
		recognizer: formula.NewFromConfig(cfg.ChemicalConfig),
		splitter:   splitter,
		logger:     logger.With(zap.String("run_id", runID)),
		runID:      runID,
		chemicals:  gocache.New(chemicalCacheTTL, chemicalCacheCleanup),
	}, nil
}

// RunID identifies this miner's run. It is stamped on every record.
func (m *Miner) RunID() string { return m.runID }

// Profiles returns the profiles the miner runs.
func (m *Miner) Profiles() []types.PropertyProfile { return m.profiles }

// MineDocument runs every profile over doc.
func (m *Miner) MineDocument(doc *document.Document) *types.DocumentResult {
	result := &types.DocumentResult{
		DocumentID: doc.ID,
		RunID:      m.runID,
		Provenance: doc.Provenance,
		Chemicals:  formula.Rank(m.documentChemicals(doc)),
	}
	for _, p := range m.profiles {
		result.Records = append(result.Records, m.MineProfile(doc, p)...)
	}
	return result
}

// MineProfile mines doc for a single property profile.
func (m *Miner) MineProfile(doc *document.Document, p types.PropertyProfile) []types.ExtractionRecord {
	docChems := m.documentChemicals(doc)

	cfg := align.NewConfig(p)
	cfg.MaxSentenceLength = m.maxSentenceLength(doc.Provenance.Source)
	cfg.DocumentChemical = types.Chemical(ResolveMaterial(m.cfg.Material, docChems, doc.Provenance.Title))
	cfg.Material = m.cfg.Material
	cfg.Provenance = doc.Provenance

	scanner, ok := m.scanners[p.Name]
	if !ok {
		scanner = quantity.NewScannerFromConfig(p.QuantityConfig)
	}
	log := m.logger.With(zap.String("document", doc.ID), zap.String("property", p.Name))

	sentences := align.SelectSentences(m.splitter.Split(doc.Text), cfg, m.recognizer)
	log.Debug("selected sentences", zap.Int("count", len(sentences)))

	var records []types.ExtractionRecord
	for si, sent := range sentences {
		mentions := scanner.Find(sent)
		quantities, errs := quantity.NormalizeAll(mentions, p.TargetUnit, quantity.RoundToPtr(p.RoundTo))
		for _, err := range errs {
			log.Warn("skipping quantity", zap.Error(err))
		}

		aligned := align.Align(sent, m.recognizer.Find(sent), quantities, cfg)
		for i := range aligned {
			aligned[i].ID = stableID(doc.ID, p.Name, strconv.Itoa(si), sent, strconv.Itoa(i))
			aligned[i].RunID = m.runID
		}
		records = append(records, aligned...)
	}
	log.Debug("mined records", zap.Int("count", len(records)))
	return records
}

// documentChemicals returns the chemicals of the whole document text.
func (m *Miner) documentChemicals(doc *document.Document) []types.Chemical {
	key := contentKey(doc.Text)
	if cached, ok := m.chemicals.Get(key); ok {
		return cached.([]types.Chemical)
	}
	chems := m.recognizer.Find(doc.Text)
	m.chemicals.SetDefault(key, chems)
	return chems
}

func (m *Miner) maxSentenceLength(source string) int {
	if n, ok := m.cfg.SourceMaxSentenceLength[source]; ok && n > 0 {
		return n
	}
	if n, ok := DefaultSourceMaxSentenceLength[source]; ok {
		return n
	}
	if m.cfg.MaxSentenceLength > 0 {
		return m.cfg.MaxSentenceLength
	}
	return defaultMaxSentenceLength
}

func contentKey(text string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(text)))
}

// stableID generates a deterministic ID from its parts. The ID is the
// first 12 hex characters of SHA-256 over the concatenated parts.
func stableID(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
	}
	return fmt.Sprintf("%x", h.Sum(nil))[:12]
}
