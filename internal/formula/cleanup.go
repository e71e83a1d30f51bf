// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package formula

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/materials-miner/pkg/types"
)

var (
	// symbolRe matches a genuine two-letter element-like pair.
	symbolRe = regexp.MustCompile(`[A-Z][a-z]`)

	// multiplierRe matches a stoichiometric bracket such as "(Fe0.5Co0.5)2".
	multiplierRe = regexp.MustCompile(`[(][A-Za-z0-9.]+[)]\d`)

	leadingDigitRe = regexp.MustCompile(`^\d`)

	formulaCharsRe = regexp.MustCompile(`[^A-Za-z0-9.()]`)
	exclusionKeyRe = regexp.MustCompile(`[^A-Za-z0-9.()\-+]`)
)

// Clean validates a merged candidate and returns the accepted chemical.
// The steps run in a fixed order; the exclusion check runs last because
// the earlier steps can turn a candidate into an excluded unit.
func Clean(candidate string, excluded map[string]bool) (types.Chemical, bool) {
	t := candidate

	// A bracket that is not a stoichiometric multiplier wraps stray text:
	// keep the last part that holds an element symbol.
	if strings.Contains(t, "(") && strings.Contains(t, ")") && !multiplierRe.MatchString(t) {
		for _, part := range strings.Split(t, "(") {
			if symbolRe.MatchString(part) {
				t = part
			}
		}
	}

	if leadingDigitRe.MatchString(formulaCharsRe.ReplaceAllString(t, "")) {
		return "", false
	}

	// Leading x or y is a stoichiometric variable captured from the
	// preceding subscript.
	if compact := stripSpace(t); strings.HasPrefix(compact, "x") || strings.HasPrefix(compact, "y") {
		t = strings.TrimLeftFunc(t, unicode.IsSpace)[1:]
	}

	if !symbolRe.MatchString(t) {
		return "", false
	}

	if strings.Contains(t, ")") && !strings.Contains(t, "(") {
		t = strings.ReplaceAll(t, ")", "")
	}
	t = strings.TrimPrefix(t, ".")
	t = strings.TrimSuffix(t, ".")
	if strings.Contains(t, "(") && !strings.Contains(t, ")") {
		t = strings.ReplaceAll(t, "(", "")
	}

	compact := stripSpace(t)
	if compact == "" || excluded[exclusionKeyRe.ReplaceAllString(compact, "")] {
		return "", false
	}
	return types.Chemical(compact), true
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
