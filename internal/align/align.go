// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package align pairs the chemicals recognized in a sentence with the
// quantities recognized in the same sentence, producing ExtractionRecords.
//
// A sentence yields records only when it passes two gates: it contains
// none of the configured exclusion substrings, and it satisfies at least
// one keyword group. When the sentence names exactly as many chemicals as
// quantities they are paired in order of appearance. Otherwise every
// quantity is attributed to a single dominant chemical, falling back to
// the document's dominant chemical and then to an explicit material.
// When no chemical can be determined the record keeps a nil chemical.
package align

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/materials-miner/pkg/types"
)

// KeywordGroup is a set of terms that must all occur in a sentence.
type KeywordGroup []string

var andRe = regexp.MustCompile(`[ ]?AND[ ]?`)

// ParseKeywordGroups parses keywords of the form "A AND B" into groups.
// Terms are not trimmed: a leading space in " FM order" is significant.
func ParseKeywordGroups(keywords []string) []KeywordGroup {
	groups := make([]KeywordGroup, 0, len(keywords))
	for _, k := range keywords {
		groups = append(groups, KeywordGroup(andRe.Split(k, -1)))
	}
	return groups
}

// Matches reports whether every term of g occurs in sentence.
func (g KeywordGroup) Matches(sentence string) bool {
	for _, term := range g {
		if !strings.Contains(sentence, term) {
			return false
		}
	}
	return true
}

// Config controls sentence selection and alignment for one property.
type Config struct {
	// Property is stamped on every record.
	Property string

	// Keywords are the parsed keyword groups. An empty list disables the
	// keyword gate.
	Keywords []KeywordGroup

	// Exclusions are substrings that disqualify a sentence.
	Exclusions []string

	// Quantitative requires a digit in a qualifying sentence.
	Quantitative bool

	// MaterialInSentence requires a recognized chemical in a selected sentence.
	MaterialInSentence bool

	// MaxSentenceLength drops sentences of this many characters or more.
	// Zero disables the limit.
	MaxSentenceLength int

	// DocumentChemical and Material are the fallbacks used when a sentence
	// names no chemical.
	DocumentChemical types.Chemical
	Material         string

	// Provenance is copied onto every record.
	Provenance types.Provenance
}

// NewConfig builds a Config from a property profile. Document-level fields
// (fallbacks, provenance, sentence length) are left for the caller.
func NewConfig(p types.PropertyProfile) Config {
	return Config{
		Property:           p.Name,
		Keywords:           ParseKeywordGroups(p.Keywords),
		Exclusions:         p.Exclusions,
		Quantitative:       p.Quantitative,
		MaterialInSentence: p.MaterialInSentence,
	}
}

var digitRe = regexp.MustCompile(`\d`)

// Excluded reports whether sentence contains an exclusion substring.
func (c Config) Excluded(sentence string) bool {
	for _, e := range c.Exclusions {
		if e != "" && strings.Contains(sentence, e) {
			return true
		}
	}
	return false
}

// Qualifies reports whether sentence satisfies a keyword group and, for a
// quantitative property, contains a digit.
func (c Config) Qualifies(sentence string) bool {
	if c.Quantitative && !digitRe.MatchString(sentence) {
		return false
	}
	if len(c.Keywords) == 0 {
		return true
	}
	for _, g := range c.Keywords {
		if g.Matches(sentence) {
			return true
		}
	}
	return false
}

// ChemicalFinder recognizes chemicals in text.
type ChemicalFinder interface {
	Find(text string) []types.Chemical
}

// SelectSentences returns the sentences worth aligning, in order: shorter
// than the length limit, qualifying under c, and, when MaterialInSentence
// is set, naming at least one chemical. Exclusions are left to Align.
func SelectSentences(sentences []string, c Config, finder ChemicalFinder) []string {
	var out []string
	for _, s := range sentences {
		if c.MaxSentenceLength > 0 && utf8.RuneCountInString(s) >= c.MaxSentenceLength {
			continue
		}
		if !c.Qualifies(s) {
			continue
		}
		if c.MaterialInSentence && finder != nil && len(finder.Find(s)) == 0 {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Align pairs chemicals with quantities found in sentence. It returns nil
// when the sentence is excluded, fails the keyword gate, or holds no
// quantity.
func Align(sentence string, chemicals []types.Chemical, quantities []types.NormalizedQuantity, c Config) []types.ExtractionRecord {
	if c.Excluded(sentence) || !c.Qualifies(sentence) || len(quantities) == 0 {
		return nil
	}

	records := make([]types.ExtractionRecord, 0, len(quantities))
	if len(chemicals) == len(quantities) {
		for i, q := range quantities {
			records = append(records, c.record(sentence, &chemicals[i], q))
		}
		return records
	}

	chem := c.fallback(chemicals)
	for _, q := range quantities {
		records = append(records, c.record(sentence, chem, q))
	}
	return records
}

// fallback picks the chemical for every quantity of an unbalanced
// sentence, or nil when none can be determined.
func (c Config) fallback(chemicals []types.Chemical) *types.Chemical {
	if d, ok := Dominant(chemicals); ok {
		return &d
	}
	if c.DocumentChemical != "" {
		d := c.DocumentChemical
		return &d
	}
	if c.Material != "" {
		d := types.Chemical(c.Material)
		return &d
	}
	return nil
}

func (c Config) record(sentence string, chem *types.Chemical, q types.NormalizedQuantity) types.ExtractionRecord {
	var own *types.Chemical
	if chem != nil {
		v := *chem
		own = &v
	}
	return types.ExtractionRecord{
		Property:   c.Property,
		Chemical:   own,
		Quantity:   q,
		Sentence:   sentence,
		Provenance: c.Provenance,
	}
}

// Dominant returns the most frequent chemical. Ties go to the chemical
// that appears first. It reports false for an empty list.
func Dominant(chemicals []types.Chemical) (types.Chemical, bool) {
	counts := make(map[types.Chemical]int, len(chemicals))
	var best types.Chemical
	bestCount := 0
	for _, c := range chemicals {
		counts[c]++
	}
	for _, c := range chemicals {
		if counts[c] > bestCount {
			best, bestCount = c, counts[c]
		}
	}
	return best, bestCount > 0
}
