// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quantity

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	numberRe        = regexp.MustCompile(`\d+[.]?\d*`)
	digitRe         = regexp.MustCompile(`\d`)
	trailingLetters = regexp.MustCompile(`\D+$`)
)

// Numbers returns the numeric values in span, left to right. A comma is read
// as a decimal separator. When span states an uncertainty ("±") only the
// point estimate is returned. It returns nil when span holds no number.
func Numbers(span string) []float64 {
	span = strings.ReplaceAll(span, ",", ".")
	found := numberRe.FindAllString(span, -1)
	if len(found) == 0 {
		return nil
	}
	if strings.Contains(span, "±") {
		found = found[:1]
	}

	values := make([]float64, 0, len(found))
	for _, f := range found {
		v, err := strconv.ParseFloat(strings.TrimSuffix(f, "."), 64)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	return values
}

// Unit returns the leftmost of units that appears in span followed by a
// boundary. When none does, it guesses from the trailing non-digit run of a
// span that holds a number, dropping the run's last character: " 70 km"
// yields "k". Normalize rejects a guess that is not in its conversion table.
// It returns "" when nothing can be guessed.
func Unit(span string, units ...string) string {
	if len(units) > 0 {
		return unitIn(span, unitRe(units))
	}
	return guessUnit(span)
}

func unitRe(units []string) *regexp.Regexp {
	return regexp.MustCompile("(" + unitAlternation(units) + `)(?:\W|$)`)
}

func unitIn(span string, re *regexp.Regexp) string {
	if m := re.FindStringSubmatch(span); m != nil {
		return m[1]
	}
	return guessUnit(span)
}

func guessUnit(span string) string {
	if !digitRe.MatchString(span) {
		return ""
	}
	run := trailingLetters.FindString(span)
	if run == "" {
		return ""
	}
	_, size := utf8.DecodeLastRuneInString(run)
	return strings.Join(strings.Fields(run[:len(run)-size]), "")
}
