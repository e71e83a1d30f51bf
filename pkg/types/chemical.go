// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Chemical is a validated formula string as it appears in the source text
// with whitespace removed (e.g. "Mn0.75Fe0.25Si", "Cu2OSeO3").
type Chemical string

// String returns the formula text.
func (c Chemical) String() string { return string(c) }

// RankedChemical pairs a chemical with the number of times it was recognized.
type RankedChemical struct {
	Chemical Chemical `json:"chemical" yaml:"chemical"`
	Count    int      `json:"count" yaml:"count"`
}

// Ranking is a list of RankedChemical ordered ascending by Count. Ties keep
// the order in which the chemicals first appeared in the text.
type Ranking []RankedChemical

// Count returns the occurrence count for c, or zero when c is absent.
func (r Ranking) Count(c Chemical) int {
	for _, rc := range r {
		if rc.Chemical == c {
			return rc.Count
		}
	}
	return 0
}
