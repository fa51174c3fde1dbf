package lexer

import (
	"go.uber.org/zap"

	"github.com/oarkflow/goregex/errs"
)

// escEntry is one row of the two-byte escape dispatch table: \X maps to
// a built-in class-letter Kind, or CHAR for any other X. A flat array
// indexed by byte value gives O(1), allocation-free dispatch over the
// lexer's small escape alphabet.
type escEntry struct {
	kind Kind
	ok   bool
}

var escapeTable = [256]escEntry{
	'd': {DIGIT, true},
	'D': {NON_DIGIT, true},
	'w': {ALPHA_NUM, true},
	'W': {NON_ALPHA_NUM, true},
	's': {SPACE, true},
	'S': {NON_SPACE, true},
}

func lookupEscape(c byte) (Kind, bool) {
	e := escapeTable[c]
	return e.kind, e.ok
}

// Lex translates a pattern string into a flat token List, using pool to
// allocate every Token it produces. It is greedy and left-to-right: it
// never backtracks, and it reads the entire string before returning,
// save for a terminal error.
func Lex(pattern string, pool *Pool, log *zap.Logger) (*List, error) {
	if log == nil {
		log = zap.NewNop()
	}
	list := NewList(len(pattern))
	i := 0
	for i < len(pattern) {
		b := pattern[i]
		switch {
		case b == '\\':
			if i+1 >= len(pattern) {
				return nil, errs.New(errs.SyntaxError, i, "trailing backslash")
			}
			x := pattern[i+1]
			if kind, ok := lookupEscape(x); ok {
				tok, err := pool.Alloc(kind, x, 0)
				if err != nil {
					return nil, errs.Annotate(err, "lexing escape sequence")
				}
				list.Append(tok)
				log.Debug("lex escape", zap.String("kind", kind.String()), zap.Int("pos", i))
			} else {
				tok, err := pool.Alloc(CHAR, x, 0)
				if err != nil {
					return nil, errs.Annotate(err, "lexing escaped literal")
				}
				list.Append(tok)
			}
			i += 2

		case isRangeStart(pattern, i):
			a, c := pattern[i], pattern[i+2]
			if !validRangeEndpoints(a, c) {
				return nil, errs.New(errs.BadRange, i, "invalid range endpoints %q-%q", a, c)
			}
			tok, err := pool.Alloc(RANGE, a, c)
			if err != nil {
				return nil, errs.Annotate(err, "lexing range")
			}
			list.Append(tok)
			log.Debug("lex range", zap.Uint8("lo", a), zap.Uint8("hi", c), zap.Int("pos", i))
			i += 3

		default:
			kind := singleByteKind(b)
			tok, err := pool.Alloc(kind, b, 0)
			if err != nil {
				return nil, errs.Annotate(err, "lexing token")
			}
			list.Append(tok)
			i++
		}
	}
	return list, nil
}

// isRangeStart reports whether pattern[i:] begins an "A-B" range lexeme:
// three bytes, middle byte '-', neither endpoint itself a metacharacter.
// The lexer has no bracket-depth state of its own (that is the class
// folder's job downstream); a RANGE token produced here inside "[...]"
// is left untouched by the class folder — a range inside a class is
// still a range, per §4.2.
func isRangeStart(pattern string, i int) bool {
	if i+2 >= len(pattern) {
		return false
	}
	a, mid, c := pattern[i], pattern[i+1], pattern[i+2]
	if mid != '-' {
		return false
	}
	if isMeta(a) || isMeta(c) {
		return false
	}
	return true
}

func isMeta(b byte) bool {
	switch b {
	case '*', '+', '?', '|', '(', ')', '[', ']', '{', '}', '^', '$', '.', '\\', '-':
		return true
	default:
		return false
	}
}

// validRangeEndpoints enforces §4.1: both endpoints must be digits, both
// lowercase letters, or both uppercase letters, and an inverted range
// (first endpoint above the second) is rejected.
func validRangeEndpoints(a, c byte) bool {
	if a > c {
		return false
	}
	switch {
	case isDigit(a) && isDigit(c):
		return true
	case a >= 'a' && a <= 'z' && c >= 'a' && c <= 'z':
		return true
	case a >= 'A' && a <= 'Z' && c >= 'A' && c <= 'Z':
		return true
	default:
		return false
	}
}

func singleByteKind(b byte) Kind {
	switch b {
	case '*':
		return STAR
	case '+':
		return PLUS
	case '?':
		return QUESTION
	case '|':
		return PIPE
	case '(':
		return GROUP_START
	case ')':
		return GROUP_END
	case '[':
		return CCLASS_START
	case ']':
		return CCLASS_END
	case '{':
		return RANGE_START
	case '}':
		return RANGE_END
	case '^':
		return CARET
	case '$':
		return END
	case '.':
		return DOT
	case '\\':
		return BACKSLASH
	case '-':
		return HYPHEN
	default:
		return CHAR
	}
}
