// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document loads full-text documents and their provenance metadata.
// Text is extracted from plain text, Markdown, HTML or XML files and
// normalized to NFKC so that compatibility characters (the micro sign,
// the ångström sign, subscript digits) reach the recognizers in the form
// they expect.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/materials-miner/pkg/types"
)

// ErrInputType is returned for input that is not text.
var ErrInputType = errors.New("input is not text")

// Document is one loaded full-text document. It is built once and never
// mutated by the mining stages.
type Document struct {
	ID         string
	Text       string
	Provenance types.Provenance
}

// markupExts are the extensions whose content is parsed as markup.
var markupExts = map[string]bool{
	".html": true,
	".htm":  true,
	".xml":  true,
}

var textExts = map[string]bool{
	".txt": true,
	".md":  true,
}

// IsSupported reports whether name has an extension Load can read.
func IsSupported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return markupExts[ext] || textExts[ext]
}

// ID derives a document ID from a file name by dropping its extension.
func ID(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Normalize applies NFKC normalization to text.
func Normalize(text string) string {
	return norm.NFKC.String(text)
}

// New builds a Document from already extracted text.
func New(id, text string, prov types.Provenance) *Document {
	prov.DocumentID = id
	return &Document{ID: id, Text: Normalize(text), Provenance: prov}
}

// Load reads the document at textPath and, when metadataPath names an
// existing file, its provenance. A missing metadata file is not an error.
func Load(textPath, metadataPath string) (*Document, error) {
	data, err := os.ReadFile(textPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", textPath, err)
	}
	if !isText(data) {
		return nil, fmt.Errorf("loading %s: %w", textPath, ErrInputType)
	}

	text := string(data)
	if markupExts[strings.ToLower(filepath.Ext(textPath))] {
		text, err = ExtractText(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("extracting text from %s: %w", textPath, err)
		}
	}

	var prov types.Provenance
	if metadataPath != "" {
		prov, err = LoadMetadata(metadataPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	if prov.AccessDate == "" {
		prov.AccessDate = time.Now().Format(time.DateOnly)
	}

	return New(ID(textPath), text, prov), nil
}

// isText reports whether data is valid UTF-8 without NUL bytes.
func isText(data []byte) bool {
	return utf8.Valid(data) && bytes.IndexByte(data, 0) < 0
}

// LoadMetadata reads a provenance YAML file.
func LoadMetadata(path string) (types.Provenance, error) {
	var prov types.Provenance
	data, err := os.ReadFile(path)
	if err != nil {
		return prov, fmt.Errorf("reading metadata %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &prov); err != nil {
		return prov, fmt.Errorf("parsing metadata %s: %w", path, err)
	}
	return prov, nil
}

// WriteMetadata writes prov as YAML to path.
func WriteMetadata(path string, prov types.Provenance) error {
	data, err := yaml.Marshal(prov)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
