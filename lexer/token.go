// Package lexer turns a regular-expression pattern into a linear sequence
// of tokens and folds bracketed character classes into a single nested
// token. It mirrors the zero-allocation, pool-backed style of a
// hand-rolled SQL lexer, adapted to the much smaller token alphabet of a
// regex pattern.
package lexer

import (
	"fmt"

	"github.com/oarkflow/goregex/errs"
)

// Kind identifies a lexeme produced by the lexer. The taxonomy is closed:
// no new kinds are introduced downstream of the lexer.
type Kind uint8

const (
	// Quantifiers, in the precedence order the original source enumerated
	// them (highest first) — kept only as documentation here, since the
	// postfix translator derives precedence from its own algorithm, not
	// from this ordering.
	PLUS Kind = iota
	STAR
	QUESTION

	CONCAT // internal sentinel, never produced by the lexer itself
	PIPE

	RANGE_START // reserved, not acted on
	RANGE_END   // reserved, not acted on
	GROUP_START
	GROUP_END
	CCLASS_START
	CCLASS_END

	CARET
	END // $, reserved, not acted on

	BACKSLASH // reserved, not acted on
	DOT
	CHAR

	DIGIT         // \d
	NON_DIGIT     // \D
	ALPHA_NUM     // \w
	NON_ALPHA_NUM // \W
	SPACE         // \s
	NON_SPACE     // \S

	HYPHEN
	RANGE // an "A-B" lexeme, produced by the lexer

	CCLASS
	CCLASS_NEGATED
)

var kindNames = [...]string{
	PLUS:           "PLUS",
	STAR:           "STAR",
	QUESTION:       "QUESTION",
	CONCAT:         "CONCAT",
	PIPE:           "PIPE",
	RANGE_START:    "RANGE_START",
	RANGE_END:      "RANGE_END",
	GROUP_START:    "GROUP_START",
	GROUP_END:      "GROUP_END",
	CCLASS_START:   "CCLASS_START",
	CCLASS_END:     "CCLASS_END",
	CARET:          "CARET",
	END:            "END",
	BACKSLASH:      "BACKSLASH",
	DOT:            "DOT",
	CHAR:           "CHAR",
	DIGIT:          "DIGIT",
	NON_DIGIT:      "NON_DIGIT",
	ALPHA_NUM:      "ALPHA_NUM",
	NON_ALPHA_NUM:  "NON_ALPHA_NUM",
	SPACE:          "SPACE",
	NON_SPACE:      "NON_SPACE",
	HYPHEN:         "HYPHEN",
	RANGE:          "RANGE",
	CCLASS:         "CCLASS",
	CCLASS_NEGATED: "CCLASS_NEGATED",
}

// String returns a human-readable representation of the token kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// IsQuantifier reports whether k binds to the immediately preceding atom.
func (k Kind) IsQuantifier() bool {
	return k == PLUS || k == STAR || k == QUESTION
}

// IsClassLetter reports whether k is one of the built-in \d \D \w \W \s \S
// escapes, which behave as atoms both at the top level and as character
// class members.
func (k Kind) IsClassLetter() bool {
	switch k {
	case DIGIT, NON_DIGIT, ALPHA_NUM, NON_ALPHA_NUM, SPACE, NON_SPACE:
		return true
	default:
		return false
	}
}

// Token is an immutable record drawn from the Kind taxonomy. C0 and C1
// hold up to two literal character payloads used by CHAR, RANGE, and
// class-letter tokens. Next chains the members of a CCLASS/CCLASS_NEGATED
// token in left-to-right order; it is nil for every other kind.
//
// Tokens are owned by a Pool belonging to the enclosing compiled pattern
// and are valid for its lifetime.
type Token struct {
	Kind Kind
	C0   byte
	C1   byte
	Next *Token
}

// Accepts reports whether the token, used as the label of a NONE state,
// matches the input byte c. CCLASS/CCLASS_NEGATED delegate to their
// member chain; every other kind is evaluated directly. This is the
// single source of truth for §4.5's character-predicate table.
func (t *Token) Accepts(c byte) bool {
	switch t.Kind {
	case CHAR:
		return c == t.C0
	case RANGE:
		return c >= t.C0 && c <= t.C1
	case DOT:
		return c != '\n' && c != '\r'
	case DIGIT:
		return isDigit(c)
	case NON_DIGIT:
		return !isDigit(c)
	case ALPHA_NUM:
		return isAlpha(c)
	case NON_ALPHA_NUM:
		return !isAlpha(c)
	case SPACE:
		return c == ' ' || c == '\t'
	case NON_SPACE:
		return !(c == ' ' || c == '\t')
	case CCLASS:
		for m := t.Next; m != nil; m = m.Next {
			if m.Accepts(c) {
				return true
			}
		}
		return false
	case CCLASS_NEGATED:
		for m := t.Next; m != nil; m = m.Next {
			if m.Accepts(c) {
				return false
			}
		}
		return true
	default:
		// CARET past position 0, and every reserved/structural kind that
		// should never be compiled into a consuming state, match nothing.
		return false
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAlpha(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

// Pool is a fixed-capacity arena of Tokens belonging to one compiled
// pattern. Unlike the original source's state pool it never needs to
// reclaim a slot within a single compile (tokens are never freed
// individually), so allocation is a simple bump of len against cap; the
// backing array is sized once, up front, and never regrown, per §5's
// resource policy.
type Pool struct {
	toks []Token
}

// NewPool allocates a Pool with room for exactly capacity tokens.
func NewPool(capacity int) *Pool {
	return &Pool{toks: make([]Token, 0, capacity)}
}

// Alloc hands out a new Token initialized to kind/c0/c1, or reports
// PoolExhausted if the pool's fixed capacity has been reached.
func (p *Pool) Alloc(kind Kind, c0, c1 byte) (*Token, error) {
	if len(p.toks) == cap(p.toks) {
		return nil, errs.New(errs.PoolExhausted, len(p.toks), "token pool exhausted (capacity %d)", cap(p.toks))
	}
	p.toks = append(p.toks, Token{Kind: kind, C0: c0, C1: c1})
	return &p.toks[len(p.toks)-1], nil
}

// Len reports how many tokens have been allocated so far.
func (p *Pool) Len() int { return len(p.toks) }

// Cap reports the pool's fixed capacity.
func (p *Pool) Cap() int { return cap(p.toks) }
