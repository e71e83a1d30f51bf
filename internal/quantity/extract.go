// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package quantity finds numeric value-plus-unit mentions in text and
// converts them to canonical units. Temperatures normalize to kelvin;
// lengths normalize to nanometers or ångström.
package quantity

import (
	"regexp"
	"strings"

	"github.com/pdiddy/materials-miner/pkg/types"
)

// numberSpan matches an optional first number, an optional range or
// uncertainty connector, a required second number, and one optional
// separator character before the unit ("°" in "100°C").
const numberSpan = `\d*[.]?\d*(?:[ ]?and[ ]?|[ ]?to[ ]?|[ ]?±[ ]?|[ ]?-[ ]?|[ ]?–[ ]?|)?\d+[.]?\d*[^A-Za-z0-9μ]?`

// Scanner finds quantity mentions for one set of unit symbols. A Scanner is
// immutable and safe for concurrent use.
type Scanner struct {
	domain types.UnitDomain
	units  []string
	re     *regexp.Regexp
	unitRe *regexp.Regexp
}

// NewScanner returns a Scanner for units, or for the domain's default units
// when none are given. It returns nil when no units are known.
func NewScanner(domain types.UnitDomain, units ...string) *Scanner {
	if len(units) == 0 {
		units = DefaultUnits(domain)
	}
	if len(units) == 0 {
		return nil
	}
	return &Scanner{
		domain: domain,
		units:  units,
		re:     regexp.MustCompile(`(?:^|\W)` + numberSpan + unitAlternation(units) + `(?:\W|$)`),
		unitRe: unitRe(units),
	}
}

// NewScannerFromConfig returns a Scanner for cfg's domain and units.
func NewScannerFromConfig(cfg types.QuantityConfig) *Scanner {
	return NewScanner(cfg.Domain, cfg.Units...)
}

// Units returns the unit symbols the scanner looks for.
func (s *Scanner) Units() []string {
	return append([]string(nil), s.units...)
}

// Unit returns the unit of a mention found by s. See Unit.
func (s *Scanner) Unit(span string) string {
	return unitIn(span, s.unitRe)
}

// Find returns the quantity mentions in text, in order of appearance.
func (s *Scanner) Find(text string) []types.QuantityMention {
	if s == nil {
		return nil
	}
	var mentions []types.QuantityMention
	for _, loc := range s.re.FindAllStringIndex(text, -1) {
		mentions = append(mentions, types.QuantityMention{
			Text:   text[loc[0]:loc[1]],
			Start:  loc[0],
			End:    loc[1],
			Domain: s.domain,
		})
	}
	return mentions
}

// Find returns the quantity mentions in text for domain. When units is
// empty the domain's default unit symbols are used.
func Find(text string, domain types.UnitDomain, units ...string) []types.QuantityMention {
	return NewScanner(domain, units...).Find(text)
}

func unitAlternation(units []string) string {
	quoted := make([]string, len(units))
	for i, u := range units {
		quoted[i] = regexp.QuoteMeta(u)
	}
	return "(?:" + strings.Join(quoted, "|") + ")"
}
