// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package align

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/materials-miner/pkg/types"
)

func kelvin(values ...float64) []types.NormalizedQuantity {
	out := make([]types.NormalizedQuantity, len(values))
	for i, v := range values {
		out[i] = types.NormalizedQuantity{Value: v, Unit: "K", SourceValue: v, SourceUnit: "K"}
	}
	return out
}

func curieConfig() Config {
	return Config{
		Property:     "curie_temperature",
		Keywords:     ParseKeywordGroups([]string{"Tc", "Curie temperature", "transition temperature AND ferromagnet"}),
		Exclusions:   []string{"nanostruct", "wire", "film", "quantum dot", "substrate"},
		Quantitative: true,
		Provenance:   types.Provenance{DocumentID: "doc-1", Title: "Helimagnets"},
	}
}

func chemNames(records []types.ExtractionRecord) []string {
	var out []string
	for _, r := range records {
		out = append(out, r.ChemicalName())
	}
	return out
}

func values(records []types.ExtractionRecord) []float64 {
	var out []float64
	for _, r := range records {
		out = append(out, r.Quantity.Value)
	}
	return out
}

// --- keyword groups ---

func TestParseKeywordGroups(t *testing.T) {
	groups := ParseKeywordGroups([]string{"Tc", "skyrmion AND size", " FM order", "heli AND wavelength"})
	require.Len(t, groups, 4)
	assert.Equal(t, KeywordGroup{"Tc"}, groups[0])
	assert.Equal(t, KeywordGroup{"skyrmion", "size"}, groups[1])
	assert.Equal(t, KeywordGroup{" FM order"}, groups[2], "leading space is kept")
	assert.Equal(t, KeywordGroup{"heli", "wavelength"}, groups[3])
}

func TestKeywordGroupMatches(t *testing.T) {
	g := KeywordGroup{"skyrmion", "size"}
	assert.True(t, g.Matches("The skyrmion size is 18 nm."))
	assert.False(t, g.Matches("The skyrmion lattice is hexagonal."))
}

// --- Align ---

func TestAlign_Positional(t *testing.T) {
	sentence := "The Curie temperatures of MnSi and FeGe are 29.5 K and 278 K."
	records := Align(sentence, []types.Chemical{"MnSi", "FeGe"}, kelvin(29.5, 278), curieConfig())

	require.Len(t, records, 2)
	assert.Equal(t, []string{"MnSi", "FeGe"}, chemNames(records))
	assert.Equal(t, []float64{29.5, 278}, values(records))
	for _, r := range records {
		assert.Equal(t, "curie_temperature", r.Property)
		assert.Equal(t, sentence, r.Sentence)
		assert.Equal(t, "doc-1", r.Provenance.DocumentID)
	}
}

func TestAlign_OneChemicalManyQuantities(t *testing.T) {
	sentence := "The Curie temperature of MnSi is between 29 and 30 K."
	records := Align(sentence, []types.Chemical{"MnSi"}, kelvin(29, 30), curieConfig())

	assert.Equal(t, []string{"MnSi", "MnSi"}, chemNames(records))
	assert.Equal(t, []float64{29, 30}, values(records))
}

func TestAlign_DominantChemical(t *testing.T) {
	sentence := "Doping MnSi with Fe lowers the Tc of MnSi to 20 K."
	records := Align(sentence, []types.Chemical{"MnSi", "Fe", "MnSi"}, kelvin(20), curieConfig())

	assert.Equal(t, []string{"MnSi"}, chemNames(records))
}

func TestAlign_NoKeyword(t *testing.T) {
	sentence := "MnSi and FeGe were annealed at 900 K and 1000 K."
	records := Align(sentence, []types.Chemical{"MnSi", "FeGe"}, kelvin(900, 1000), curieConfig())
	assert.Empty(t, records)
}

func TestAlign_Excluded(t *testing.T) {
	sentence := "The Curie temperature of MnSi film is 43 K."
	records := Align(sentence, []types.Chemical{"MnSi"}, kelvin(43), curieConfig())
	assert.Empty(t, records)
}

func TestAlign_NotQuantitative(t *testing.T) {
	cfg := curieConfig()
	sentence := "The Curie temperature of MnSi is low."
	assert.False(t, cfg.Qualifies(sentence))

	cfg.Quantitative = false
	assert.True(t, cfg.Qualifies(sentence))
}

func TestAlign_NoQuantities(t *testing.T) {
	records := Align("The Curie temperature of MnSi is 29 K.", []types.Chemical{"MnSi"}, nil, curieConfig())
	assert.Empty(t, records)
}

func TestAlign_Fallbacks(t *testing.T) {
	sentence := "The Curie temperature is 29.5 K."

	tests := []struct {
		name     string
		docChem  types.Chemical
		material string
		want     string
		wantNil  bool
	}{
		{name: "document chemical", docChem: "MnSi", material: "FeGe", want: "MnSi"},
		{name: "explicit material", material: "FeGe", want: "FeGe"},
		{name: "nothing known", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := curieConfig()
			cfg.DocumentChemical = tt.docChem
			cfg.Material = tt.material

			records := Align(sentence, nil, kelvin(29.5), cfg)
			require.Len(t, records, 1, "a quantity is never dropped for lack of a chemical")
			if tt.wantNil {
				assert.Nil(t, records[0].Chemical)
				return
			}
			require.NotNil(t, records[0].Chemical)
			assert.Equal(t, tt.want, records[0].ChemicalName())
		})
	}
}

func TestAlign_RecordsOwnChemicals(t *testing.T) {
	chems := []types.Chemical{"MnSi", "FeGe"}
	records := Align("Tc of MnSi and FeGe: 29 K, 278 K.", chems, kelvin(29, 278), curieConfig())
	require.Len(t, records, 2)

	chems[0] = "CoSi"
	assert.Equal(t, "MnSi", records[0].ChemicalName())
}

func TestAlign_NoKeywordsConfigured(t *testing.T) {
	cfg := Config{Property: "any"}
	records := Align("MnSi at 29 K.", []types.Chemical{"MnSi"}, kelvin(29), cfg)
	assert.Len(t, records, 1)
}

// --- Dominant ---

func TestDominant(t *testing.T) {
	tests := []struct {
		name   string
		in     []types.Chemical
		want   types.Chemical
		wantOK bool
	}{
		{"mode", []types.Chemical{"Fe", "MnSi", "MnSi"}, "MnSi", true},
		{"tie goes to first", []types.Chemical{"FeGe", "MnSi"}, "FeGe", true},
		{"later tie", []types.Chemical{"Fe", "MnSi", "MnSi", "Fe"}, "Fe", true},
		{"empty", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Dominant(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// --- SelectSentences ---

type fakeFinder map[string][]types.Chemical

func (f fakeFinder) Find(text string) []types.Chemical { return f[text] }

func TestSelectSentences(t *testing.T) {
	withChem := "The Curie temperature of MnSi is 29.5 K."
	noChem := "The Curie temperature is 29.5 K."
	noDigit := "The Curie temperature of MnSi is low."
	offTopic := "MnSi crystals were grown at 1300 K."
	long := "The Curie temperature of MnSi is 29.5 K " + strings.Repeat("and more ", 200) + "."

	finder := fakeFinder{
		withChem: {"MnSi"},
		noDigit:  {"MnSi"},
		offTopic: {"MnSi"},
		long:     {"MnSi"},
	}

	cfg := curieConfig()
	cfg.MaxSentenceLength = 1500
	cfg.MaterialInSentence = true

	got := SelectSentences([]string{withChem, noChem, noDigit, offTopic, long}, cfg, finder)
	assert.Equal(t, []string{withChem}, got)

	cfg.MaterialInSentence = false
	got = SelectSentences([]string{withChem, noChem, noDigit, offTopic}, cfg, finder)
	assert.Equal(t, []string{withChem, noChem}, got)
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig(types.PropertyProfile{
		Name:         "skyrmion_size",
		Keywords:     []string{"skyrmion AND size"},
		Exclusions:   []string{"film"},
		Quantitative: true,
	})
	assert.Equal(t, "skyrmion_size", cfg.Property)
	assert.Equal(t, []KeywordGroup{{"skyrmion", "size"}}, cfg.Keywords)
	assert.True(t, cfg.Excluded("a thin film"))
	assert.True(t, cfg.Quantitative)
}
