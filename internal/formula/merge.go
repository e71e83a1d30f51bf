// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package formula

import (
	"strings"
	"unicode"
)

// state is the merge machine state.
type state int

const (
	// idle: no candidate is open for extension.
	idle state = iota
	// accumulating: the last candidate ends at the cursor and absorbs any
	// token starting exactly there.
	accumulating
)

// action is what a transition does with the current token.
type action int

const (
	actExtend action = iota // append the token to the last candidate
	actOpen                 // start a new candidate with the token
	actDrop                 // discard the token
)

// transition fires when guard holds for token i.
type transition struct {
	guard func(m *merger, i int) bool
	act   action
	next  state
}

// transitions is evaluated top to bottom; the first matching guard wins.
// Every list ends with an unconditional drop.
var transitions = map[state][]transition{
	accumulating: {
		{guard: (*merger).startsAtCursor, act: actExtend, next: accumulating},
		{guard: (*merger).opensRun, act: actOpen, next: accumulating},
		{guard: (*merger).isElementToken, act: actOpen, next: idle},
		{guard: always, act: actDrop, next: idle},
	},
	idle: {
		{guard: (*merger).opensRun, act: actOpen, next: accumulating},
		{guard: (*merger).isElementToken, act: actOpen, next: idle},
		{guard: always, act: actDrop, next: idle},
	},
}

func always(*merger, int) bool { return true }

// merger folds a token stream into candidate formula strings.
type merger struct {
	tokens   []Token
	excluded map[string]bool
	state    state
	cursor   int
	out      []string
}

// startsAtCursor reports whether token i continues the open candidate.
func (m *merger) startsAtCursor(i int) bool {
	return m.tokens[i].Start == m.cursor
}

// opensRun reports whether token i has no digit and is immediately followed
// by the next token, so the pair belongs to one multi-symbol sequence.
func (m *merger) opensRun(i int) bool {
	if i == len(m.tokens)-1 {
		return false
	}
	tok := m.tokens[i]
	return !digitRe.MatchString(tok.Text) && tok.End == m.tokens[i+1].Start
}

// isElementToken reports whether token i holds a whole-word element symbol
// and is not itself an excluded unit.
func (m *merger) isElementToken(i int) bool {
	text := m.tokens[i].Text
	if m.excluded[text] {
		return false
	}
	for _, word := range strings.FieldsFunc(text, isNonWord) {
		if IsElement(word) {
			return true
		}
	}
	return false
}

func isNonWord(r rune) bool {
	return !(r == '_' || r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
}

func (m *merger) step(i int) {
	for _, tr := range transitions[m.state] {
		if !tr.guard(m, i) {
			continue
		}
		tok := m.tokens[i]
		switch tr.act {
		case actExtend:
			m.out[len(m.out)-1] += tok.Text
		case actOpen:
			m.out = append(m.out, tok.Text)
		}
		if tok.End > m.cursor {
			m.cursor = tok.End
		}
		m.state = tr.next
		return
	}
}

// Merge runs the merge state machine over tokens and returns the candidate
// formulae in order of first appearance. Only tokens that touch in the
// source text are ever joined into one candidate.
func Merge(tokens []Token, excluded map[string]bool) []string {
	m := &merger{tokens: tokens, excluded: excluded}
	for i := range tokens {
		m.step(i)
	}
	return m.out
}
