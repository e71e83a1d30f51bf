// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package formula recognizes chemical formulae in free scientific text.
//
// Recognition runs in three stages: Lex scans the text into offset-tagged
// fragments, Merge joins touching fragments into candidate formulae with a
// two-state machine, and Clean validates and normalizes each candidate.
// The recognizer is tuned for inorganic compounds written as element
// symbols with optional numeric subscripts (MnSi, Cu2OSeO3, Mn1.4PtSn); it
// does not parse chemical names, isotopes or oxidation states.
package formula

import (
	"sort"

	"github.com/pdiddy/materials-miner/pkg/types"
)

// Recognizer finds chemical formulae in text. Its tables are read-only after
// construction, so one Recognizer may be shared across goroutines.
type Recognizer struct {
	excluded map[string]bool
}

// New returns a Recognizer that rejects DefaultExcludedUnits plus any
// extra entries.
func New(extraExcluded ...string) *Recognizer {
	return &Recognizer{excluded: toSet(DefaultExcludedUnits, extraExcluded)}
}

// NewFromConfig returns a Recognizer configured by cfg.
func NewFromConfig(cfg types.ChemicalConfig) *Recognizer {
	return New(cfg.ExcludedUnits...)
}

// IsExcluded reports whether s is in the recognizer's excluded-unit set.
func (r *Recognizer) IsExcluded(s string) bool {
	return r.excluded[s]
}

// Find returns the chemicals in text in order of appearance. Repeated
// mentions are kept. It returns nil when text holds no formula.
func (r *Recognizer) Find(text string) []types.Chemical {
	var result []types.Chemical
	for _, candidate := range Merge(Lex(text), r.excluded) {
		if chem, ok := Clean(candidate, r.excluded); ok {
			result = append(result, chem)
		}
	}
	return result
}

// Rank counts the chemicals in text and orders them ascending by count.
// Callers that want the most frequent chemical take the last entry.
func (r *Recognizer) Rank(text string) types.Ranking {
	return Rank(r.Find(text))
}

// Rank counts chems and orders them ascending by count, keeping first
// appearance order among equal counts.
func Rank(chems []types.Chemical) types.Ranking {
	index := make(map[types.Chemical]int)
	var ranking types.Ranking
	for _, c := range chems {
		if i, ok := index[c]; ok {
			ranking[i].Count++
			continue
		}
		index[c] = len(ranking)
		ranking = append(ranking, types.RankedChemical{Chemical: c, Count: 1})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count < ranking[j].Count
	})
	return ranking
}

var defaultRecognizer = New()

// FindChemicals returns the chemicals in text using the default excluded-unit set.
func FindChemicals(text string) []types.Chemical {
	return defaultRecognizer.Find(text)
}

// FindChemicalsRanked returns the chemicals in text with their counts,
// ascending by count.
func FindChemicalsRanked(text string) types.Ranking {
	return defaultRecognizer.Rank(text)
}
