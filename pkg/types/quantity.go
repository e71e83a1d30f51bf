// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// UnitDomain names a family of physical units sharing one canonical unit.
type UnitDomain string

const (
	DomainTemperature UnitDomain = "temperature"
	DomainLength      UnitDomain = "length"
)

// QuantityMention is a raw span of text holding one or two numbers, an
// optional range or uncertainty connector, and a trailing unit symbol.
type QuantityMention struct {
	// Text is the matched span, including the leading boundary character
	// and any trailing punctuation (e.g. " 50 and 100 nm.").
	Text string `json:"text" yaml:"text"`

	// Start and End are byte offsets of Text in the scanned string.
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`

	// Domain is the unit family the mention was scanned for.
	Domain UnitDomain `json:"domain" yaml:"domain"`
}

// NormalizedQuantity is one numeric value of a QuantityMention converted to a
// canonical unit. A range mention ("50 to 100°C") yields one NormalizedQuantity
// per value.
type NormalizedQuantity struct {
	// Value is the converted value, rounded when the caller asked for it.
	Value float64 `json:"value" yaml:"value"`

	// Unit is the canonical target unit (K, nm or Å).
	Unit string `json:"unit" yaml:"unit"`

	// SourceValue and SourceUnit are the value and unit as written.
	SourceValue float64 `json:"source_value" yaml:"source_value"`
	SourceUnit  string  `json:"source_unit" yaml:"source_unit"`

	// Mention is the raw span the value was read from.
	Mention string `json:"mention" yaml:"mention"`
}
