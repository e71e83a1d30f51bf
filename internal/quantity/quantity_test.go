// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quantity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/materials-miner/pkg/types"
)

func mentionTexts(ms []types.QuantityMention) []string {
	var out []string
	for _, m := range ms {
		out = append(out, m.Text)
	}
	return out
}

// --- Find ---

func TestFind(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		domain types.UnitDomain
		want   []string
	}{
		{"temperature", "The Curie temperature of the material is 400 K.", types.DomainTemperature, []string{" 400 K."}},
		{"no space before unit", "MnSi orders below T c =29.6K [11] helimagnetically.", types.DomainTemperature, []string{"=29.6K "}},
		{"uncertainty", "Tc = 300 K and TN = 20±2 K", types.DomainTemperature, []string{" 300 K ", " 20±2 K"}},
		{"degree sign", "heated to 100°C for 2 h", types.DomainTemperature, []string{" to 100°C "}},
		{"at start of text", "100 K", types.DomainTemperature, []string{"100 K"}},
		{"range with and", "between 50 and 100 nm.", types.DomainLength, []string{" 50 and 100 nm."}},
		{"two lengths", "The helical period of MnSi is 18 nm, FeGe is 70 nm.", types.DomainLength, []string{" 18 nm,", " 70 nm."}},
		{"hyphen range", "size of 10-20 nm", types.DomainLength, []string{" 10-20 nm"}},
		{"length units ignored for temperature", "between 50 and 100 nm.", types.DomainTemperature, nil},
		{"no quantity", "MnSi is a chiral magnet.", types.DomainLength, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mentionTexts(Find(tt.text, tt.domain)))
		})
	}
}

func TestFind_Offsets(t *testing.T) {
	text := "The Curie temperature of the material is 400 K."
	mentions := Find(text, types.DomainTemperature)
	require.Len(t, mentions, 1)
	assert.Equal(t, 40, mentions[0].Start)
	assert.Equal(t, 47, mentions[0].End)
	assert.Equal(t, types.DomainTemperature, mentions[0].Domain)

	text = "a 1.5 μm film"
	mentions = Find(text, types.DomainLength)
	require.Len(t, mentions, 1)
	assert.Equal(t, mentions[0].Text, text[mentions[0].Start:mentions[0].End])
}

func TestFind_CustomUnits(t *testing.T) {
	mentions := Find("The Curie temperature is 400 K or 127 C.", types.DomainTemperature, "C")
	assert.Equal(t, []string{" 127 C."}, mentionTexts(mentions))
}

func TestFind_UnknownDomain(t *testing.T) {
	assert.Nil(t, NewScanner("pressure"))
	assert.Nil(t, Find("5 GPa", "pressure"))
}

// --- Numbers / Unit ---

func TestNumbers(t *testing.T) {
	tests := []struct {
		span string
		want []float64
	}{
		{" 100 to 200 nm", []float64{100, 200}},
		{" 400 K.", []float64{400}},
		{" 20±2 K", []float64{20}},
		{" 1,5 K", []float64{1.5}},
		{" 50 and 100 nm.", []float64{50, 100}},
		{" K ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.span, func(t *testing.T) {
			assert.Equal(t, tt.want, Numbers(tt.span))
		})
	}
}

func TestUnit(t *testing.T) {
	length := DefaultUnits(types.DomainLength)
	temperature := DefaultUnits(types.DomainTemperature)

	assert.Equal(t, "nm", Unit("The skyrmion size in the material is 50nm.", length...))
	assert.Equal(t, "μm", Unit(" 1.5 μm ", length...))
	assert.Equal(t, "C", Unit("100°C", temperature...))
	assert.Equal(t, "K", Unit(" 50 to 100 K.", temperature...))
	assert.Equal(t, "k", Unit(" 70 km", length...), "unrecognized units fall back to the trailing letters")
	assert.Equal(t, "", Unit("no digits here", length...))
}

func TestScannerUnit(t *testing.T) {
	s := NewScanner(types.DomainLength)
	assert.Equal(t, "Å", s.Unit(" 100 to 200 Å "))
	assert.Equal(t, DefaultUnits(types.DomainLength), s.Units())
}

// --- Normalize ---

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		span       string
		target     string
		opts       []Option
		want       []float64
		wantUnit   string
		wantSource string
	}{
		{"celsius", "100°C", "K", nil, []float64{373.15}, "K", "C"},
		{"celsius range", "50 to 100°C", "K", nil, []float64{323.15, 373.15}, "K", "C"},
		{"fahrenheit", " 100°F ", "K", nil, []float64{310.92777777777775}, "K", "F"},
		{"kelvin identity", " 400 K.", "K", nil, []float64{400}, "K", "K"},
		{"micrometer to nm", "100 μm", "nm", nil, []float64{100000}, "nm", "μm"},
		{"um to nm", " 100 um ", "nm", nil, []float64{100000}, "nm", "um"},
		{"angstrom to nm", " 100 to 200 Å ", "nm", nil, []float64{10, 20}, "nm", "Å"},
		{"nm to angstrom", "100 nm", "Å", nil, []float64{1000}, "Å", "nm"},
		{"angstrom alias", "100 nm", "A", nil, []float64{1000}, "Å", "nm"},
		{"rounding", " 1.15981705987201 um ", "nm", []Option{RoundTo(2)}, []float64{1159.82}, "nm", "um"},
		{"uncertainty keeps estimate", " 20±2 K", "K", nil, []float64{20}, "K", "K"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.span, tt.target, tt.opts...)
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i, q := range got {
				assert.InDelta(t, tt.want[i], q.Value, 1e-9)
				assert.Equal(t, tt.wantUnit, q.Unit)
				assert.Equal(t, tt.wantSource, q.SourceUnit)
				assert.Equal(t, tt.span, q.Mention)
			}
		})
	}
}

func TestNormalize_SourceValue(t *testing.T) {
	got, err := Normalize("50 to 100°C", "K")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 50.0, got[0].SourceValue)
	assert.Equal(t, 100.0, got[1].SourceValue)
}

func TestNormalize_UnitError(t *testing.T) {
	got, err := Normalize(" 70 km", "nm")
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, ErrUnknownUnit))

	var ue *UnitError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "k", ue.Unit)
	assert.Equal(t, "nm", ue.Target)
}

func TestNormalize_UnsupportedTarget(t *testing.T) {
	_, err := Normalize("100 K", "C")
	var ue *UnitError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "", ue.Unit)
	assert.Equal(t, "C", ue.Target)
	assert.Contains(t, err.Error(), "unsupported target")
}

func TestNormalize_CrossDomain(t *testing.T) {
	_, err := Normalize(" 400 K.", "nm")
	assert.ErrorIs(t, err, ErrUnknownUnit)
}

func TestNormalizeAll(t *testing.T) {
	mentions := []types.QuantityMention{
		{Text: " 50 and 100 nm."},
		{Text: " 70 km"},
		{Text: " 2 μm "},
	}
	got, errs := NormalizeAll(mentions, "nm", RoundToPtr(nil))
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrUnknownUnit)

	var values []float64
	for _, q := range got {
		values = append(values, q.Value)
	}
	assert.Equal(t, []float64{50, 100, 2000}, values)
}
