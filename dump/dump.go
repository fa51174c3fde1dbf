// Package dump renders a token list or compiled NFA as human-readable
// text, for debugging a pattern outside of the matching hot path. It is
// grounded on the original source's re_token_to_str/re_state_debug pair:
// a flat token-to-text renderer and a recursive graph printer, the
// latter guarding against the loops '*'/'+' introduce.
package dump

import (
	"fmt"
	"strconv"
	"strings"

	"bitbucket.org/creachadair/stringset"

	"github.com/oarkflow/goregex/lexer"
	"github.com/oarkflow/goregex/nfa"
)

// Sprint renders tokens back to pattern-like text, one lexeme at a time.
// It is not guaranteed to round-trip byte-for-byte with the original
// pattern (e.g. an escaped literal such as `\.` renders as the bare
// character "."), but every token kind has a rendering.
func Sprint(tokens *lexer.List) string {
	var b strings.Builder
	for _, t := range tokens.Slice() {
		b.WriteString(tokenToStr(t))
	}
	return b.String()
}

func tokenToStr(t *lexer.Token) string {
	switch t.Kind {
	case lexer.CHAR:
		return string(t.C0)
	case lexer.RANGE:
		return string(t.C0) + "-" + string(t.C1)
	case lexer.DOT:
		return "."
	case lexer.STAR:
		return "*"
	case lexer.PLUS:
		return "+"
	case lexer.QUESTION:
		return "?"
	case lexer.PIPE:
		return "|"
	case lexer.CONCAT:
		return "" // the implicit operator; nothing to render
	case lexer.GROUP_START:
		return "("
	case lexer.GROUP_END:
		return ")"
	case lexer.CARET:
		return "^"
	case lexer.END:
		return "$"
	case lexer.HYPHEN:
		return "-"
	case lexer.DIGIT:
		return `\d`
	case lexer.NON_DIGIT:
		return `\D`
	case lexer.ALPHA_NUM:
		return `\w`
	case lexer.NON_ALPHA_NUM:
		return `\W`
	case lexer.SPACE:
		return `\s`
	case lexer.NON_SPACE:
		return `\S`
	case lexer.CCLASS, lexer.CCLASS_NEGATED:
		var b strings.Builder
		b.WriteByte('[')
		if t.Kind == lexer.CCLASS_NEGATED {
			b.WriteByte('^')
		}
		for m := t.Next; m != nil; m = m.Next {
			b.WriteString(tokenToStr(m))
		}
		b.WriteByte(']')
		return b.String()
	default:
		return fmt.Sprintf("<%s>", t.Kind)
	}
}

// DumpGraph renders the NFA rooted at start as indented text, one state
// per line. Unlike the original's recursive printer — which special-cased
// '*'/'+' splits to avoid looping forever — this version tracks every
// visited state index in a set and stops descending into one it has
// already printed, which handles any cycle shape uniformly.
func DumpGraph(pool *nfa.Pool, start int) string {
	var b strings.Builder
	visited := stringset.New()
	var walk func(idx, level int)
	walk = func(idx, level int) {
		if idx == nfa.NoState {
			return
		}
		key := strconv.Itoa(idx)
		indent := strings.Repeat("  ", level)
		if visited.Contains(key) {
			fmt.Fprintf(&b, "%s-> state %d (visited)\n", indent, idx)
			return
		}
		visited.Add(key)

		s := pool.Get(idx)
		switch s.Kind {
		case nfa.MATCH:
			fmt.Fprintf(&b, "%sstate %d: MATCH\n", indent, idx)
			return
		case nfa.SPLIT:
			fmt.Fprintf(&b, "%sstate %d: SPLIT\n", indent, idx)
		default:
			fmt.Fprintf(&b, "%sstate %d: %s %s\n", indent, idx, s.Token.Kind, tokenToStr(s.Token))
		}
		walk(s.Out, level+1)
		walk(s.Out1, level+1)
	}
	walk(start, 0)
	return b.String()
}
