// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mine

import (
	"fmt"
	"sort"

	"github.com/pdiddy/materials-miner/internal/quantity"
	"github.com/pdiddy/materials-miner/pkg/types"
)

// Built-in profile names.
const (
	CurieTemperature = "curie_temperature"
	NeelTemperature  = "neel_temperature"
	SkyrmionSize     = "skyrmion_size"
)

var magneticExclusions = []string{"nanostruct", "wire", "film", "quantum dot", "substrate"}

// DefaultProfiles returns the built-in property profiles.
func DefaultProfiles() []types.PropertyProfile {
	return []types.PropertyProfile{
		{
			Name: CurieTemperature,
			QuantityConfig: types.QuantityConfig{
				Domain:     types.DomainTemperature,
				TargetUnit: quantity.Kelvin,
			},
			Keywords: []string{
				"Tc", "T_c", "T c", "TC", "T_C", "T C", "Curie temperature",
				"transition temperature AND ferromagnet", " ferromagnetic order", " FM order",
			},
			Exclusions:         append([]string(nil), magneticExclusions...),
			Quantitative:       true,
			MaterialInSentence: true,
		},
		{
			Name: NeelTemperature,
			QuantityConfig: types.QuantityConfig{
				Domain:     types.DomainTemperature,
				TargetUnit: quantity.Kelvin,
			},
			Keywords: []string{
				"Tn", "T_n", "T n", "TN", "T_N", "T N", "Neel temperature", "Néel temperature",
				"antiferromagnet AND transition temperature", "AFM order", "antiferromagnetic order",
			},
			Exclusions:         append([]string(nil), magneticExclusions...),
			Quantitative:       true,
			MaterialInSentence: true,
		},
		{
			Name: SkyrmionSize,
			QuantityConfig: types.QuantityConfig{
				Domain:     types.DomainLength,
				TargetUnit: quantity.Nanometer,
			},
			Keywords: []string{
				"skyrmion AND size", "skyrmion AND radius", "skyrmion AND diameter",
				"heli AND wavelength", "helical pitch", "helical period",
			},
			Exclusions: []string{
				"nanostruct", "wire", "film", "quantum dot", "nanoparticle",
				"grain size", "particle size", "cell size", "nanodisk",
			},
			Quantitative:       true,
			MaterialInSentence: true,
		},
	}
}

// MergeProfiles returns base with every override applied: an override
// replaces the base profile of the same name or is appended. The result is
// sorted by name.
func MergeProfiles(base, overrides []types.PropertyProfile) []types.PropertyProfile {
	byName := make(map[string]types.PropertyProfile, len(base)+len(overrides))
	for _, p := range base {
		byName[p.Name] = p
	}
	for _, p := range overrides {
		byName[p.Name] = p
	}

	merged := make([]types.PropertyProfile, 0, len(byName))
	for _, p := range byName {
		merged = append(merged, p)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Name < merged[j].Name })
	return merged
}

// SelectProfiles returns the profiles named in names, in that order. An
// empty names list selects all profiles.
func SelectProfiles(profiles []types.PropertyProfile, names []string) ([]types.PropertyProfile, error) {
	if len(names) == 0 {
		return profiles, nil
	}
	byName := make(map[string]types.PropertyProfile, len(profiles))
	for _, p := range profiles {
		byName[p.Name] = p
	}
	selected := make([]types.PropertyProfile, 0, len(names))
	for _, n := range names {
		p, ok := byName[n]
		if !ok {
			return nil, fmt.Errorf("unknown profile %q", n)
		}
		selected = append(selected, p)
	}
	return selected, nil
}

// ValidateProfile checks that p names a property, has units to scan for,
// and converts to a supported target.
func ValidateProfile(p types.PropertyProfile) error {
	if p.Name == "" {
		return fmt.Errorf("profile has no name")
	}
	if len(p.Units) == 0 && len(quantity.DefaultUnits(p.Domain)) == 0 {
		return fmt.Errorf("profile %s: unknown domain %q and no units", p.Name, p.Domain)
	}
	if _, ok := quantity.CanonicalTarget(p.TargetUnit); !ok {
		return fmt.Errorf("profile %s: %w", p.Name, &quantity.UnitError{Target: p.TargetUnit})
	}
	if p.RoundTo != nil && *p.RoundTo < 0 {
		return fmt.Errorf("profile %s: round_to must not be negative", p.Name)
	}
	return nil
}
