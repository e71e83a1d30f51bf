// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package formula

import "regexp"

// TokenKind is the coarse class of a lexed fragment.
type TokenKind int

const (
	// ElementFragment is a capitalized fragment: an optional leading space
	// or "(", one uppercase letter, lowercase letters or parentheses, and an
	// optional trailing space.
	ElementFragment TokenKind = iota

	// NumericFragment is a number with an optional decimal point and closing
	// parenthesis, or a lone x/y stoichiometric placeholder.
	NumericFragment
)

func (k TokenKind) String() string {
	switch k {
	case ElementFragment:
		return "element"
	case NumericFragment:
		return "numeric"
	}
	return "unknown"
}

// Token is a lexed fragment with byte offsets into the scanned text.
type Token struct {
	Text  string
	Start int
	End   int
	Kind  TokenKind
}

var (
	fragmentRe = regexp.MustCompile(`[ ]?[(]?[A-Z][a-z()]*[ ]?|(?:\d+[.]?\d*[)]?|[-+]?[xy])`)

	// Two lowercase letters in a row mark an ordinary word, not a symbol.
	wordRe = regexp.MustCompile(`[a-z]{2}`)

	upperRe = regexp.MustCompile(`[A-Z]`)
	digitRe = regexp.MustCompile(`\d`)
)

// Lex scans text into element and numeric fragments, in source order.
// Fragments containing two consecutive lowercase letters are dropped.
func Lex(text string) []Token {
	var tokens []Token
	for _, loc := range fragmentRe.FindAllStringIndex(text, -1) {
		frag := text[loc[0]:loc[1]]
		if wordRe.MatchString(frag) {
			continue
		}
		kind := NumericFragment
		if upperRe.MatchString(frag) {
			kind = ElementFragment
		}
		tokens = append(tokens, Token{Text: frag, Start: loc[0], End: loc[1], Kind: kind})
	}
	return tokens
}
