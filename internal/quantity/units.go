// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quantity

import "github.com/pdiddy/materials-miner/pkg/types"

// Canonical target units.
const (
	Kelvin    = "K"
	Nanometer = "nm"
	Angstrom  = "Å"
)

var defaultUnits = map[types.UnitDomain][]string{
	types.DomainTemperature: {"K", "C", "F"},
	types.DomainLength:      {"Å", "Angstrom", "nm", "μm", "um", "μ m"},
}

// DefaultUnits returns the unit symbols scanned for in domain, or nil for
// an unknown domain.
func DefaultUnits(domain types.UnitDomain) []string {
	return append([]string(nil), defaultUnits[domain]...)
}

// targetAliases maps alternative spellings of a target unit to its canonical form.
var targetAliases = map[string]string{
	"A":        Angstrom,
	"Angstrom": Angstrom,
	"kelvin":   Kelvin,
}

type conversion func(float64) float64

func scale(f float64) conversion {
	return func(v float64) float64 { return v * f }
}

func identity(v float64) float64 { return v }

// conversions maps target unit → source unit → conversion.
var conversions = map[string]map[string]conversion{
	Kelvin: {
		"K": identity,
		"C": func(v float64) float64 { return v + 273.15 },
		"F": func(v float64) float64 { return (v-32)*5/9 + 273.15 },
	},
	Nanometer: {
		"nm":       identity,
		"μm":       scale(1000),
		"um":       scale(1000),
		"μ m":      scale(1000),
		"Å":        scale(0.1),
		"Angstrom": scale(0.1),
	},
	Angstrom: {
		"Å":        identity,
		"Angstrom": identity,
		"nm":       scale(10),
		"μm":       scale(10000),
		"um":       scale(10000),
		"μ m":      scale(10000),
	},
}

// targetDomain is the domain whose unit table is used to read the source
// unit of a mention being converted to a target.
var targetDomain = map[string]types.UnitDomain{
	Kelvin:    types.DomainTemperature,
	Nanometer: types.DomainLength,
	Angstrom:  types.DomainLength,
}

// CanonicalTarget resolves aliases ("A", "Angstrom") and reports whether
// target is a supported conversion target.
func CanonicalTarget(target string) (string, bool) {
	if alias, ok := targetAliases[target]; ok {
		target = alias
	}
	_, ok := conversions[target]
	return target, ok
}
