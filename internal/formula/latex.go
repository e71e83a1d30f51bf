// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package formula

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/materials-miner/pkg/types"
)

var (
	elementPhraseRe = regexp.MustCompile(`[A-Z][^A-Z]*`)
	subscriptRe     = regexp.MustCompile(`\d+[.]?\d*`)
	nonDigitRe      = regexp.MustCompile(`\D+`)
)

// LaTeX renders a chemical with LaTeX subscripts for plotting labels:
// "Fe0.5Co0.5Si" becomes "Fe$_{0.5}$Co$_{0.5}$Si". Each element phrase keeps
// only its first number.
func LaTeX(c types.Chemical) string {
	chem := strings.ReplaceAll(string(c), " ", "")
	if chem == "" {
		return ""
	}

	var b strings.Builder
	if i := strings.IndexFunc(chem, unicode.IsUpper); i > 0 {
		b.WriteString(chem[:i])
	}
	for _, phrase := range elementPhraseRe.FindAllString(chem, -1) {
		if num := subscriptRe.FindString(phrase); num != "" {
			phrase = nonDigitRe.FindString(phrase) + "$_{" + num + "}$"
		}
		b.WriteString(phrase)
	}
	// A subscripted last phrase drops its closing bracket.
	if strings.HasSuffix(chem, ")") && !strings.HasSuffix(b.String(), ")") {
		b.WriteString(")")
	}
	return b.String()
}
