// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Provenance identifies the document a record was mined from. It is built
// once per document and never mutated by the engine.
type Provenance struct {
	// DocumentID is a slug derived from the input file name.
	DocumentID string `json:"document_id" yaml:"document_id"`

	Title      string   `json:"title" yaml:"title"`
	DOI        string   `json:"doi" yaml:"doi"`
	Authors    []string `json:"authors" yaml:"authors"`
	Journal    string   `json:"journal" yaml:"journal"`
	Volume     string   `json:"volume" yaml:"volume"`
	Page       string   `json:"page" yaml:"page"`
	CoverDate  string   `json:"cover_date" yaml:"cover_date"`
	AccessDate string   `json:"access_date" yaml:"access_date"`

	// Source names the publisher feed the text came from (e.g. "elsevier",
	// "springer"). It selects the maximum sentence length.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// ExtractionRecord pairs one normalized quantity with the chemical it was
// attributed to. Chemical is nil when no chemical could be determined for
// the sentence or the document.
type ExtractionRecord struct {
	// ID is stable across re-mining of unchanged input.
	ID string `json:"id" yaml:"id"`

	// RunID identifies the mining run that produced the record.
	RunID string `json:"run_id,omitempty" yaml:"run_id,omitempty"`

	// Property is the profile name (e.g. "curie_temperature").
	Property string `json:"property" yaml:"property"`

	Chemical *Chemical         `json:"chemical" yaml:"chemical"`
	Quantity NormalizedQuantity `json:"quantity" yaml:"quantity"`
	Sentence string             `json:"sentence" yaml:"sentence"`

	Provenance Provenance `json:"provenance" yaml:"provenance"`
}

// ChemicalName returns the record's chemical, or "" when it is unset.
func (r ExtractionRecord) ChemicalName() string {
	if r.Chemical == nil {
		return ""
	}
	return string(*r.Chemical)
}

// DocumentResult holds every record mined from a single document.
type DocumentResult struct {
	// DocumentID identifies the source document.
	DocumentID string `json:"document_id" yaml:"document_id"`

	// RunID identifies the mining run.
	RunID string `json:"run_id" yaml:"run_id"`

	// Provenance is the document metadata attached to every record.
	Provenance Provenance `json:"provenance" yaml:"provenance"`

	// Chemicals ranks the chemicals recognized in the whole document.
	Chemicals Ranking `json:"chemicals" yaml:"chemicals"`

	// Records contains the mined records, in sentence order.
	Records []ExtractionRecord `json:"records" yaml:"records"`

	// Error records a mining failure message. Empty on success.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}
