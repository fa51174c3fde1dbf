// Package errs defines the engine's closed error-kind taxonomy (spec §7)
// and the single concrete error type every pipeline stage returns. It is
// imported by every pipeline package (lexer, postfix, nfa, sim) and
// re-exported from the root package so callers only ever need to import
// the top-level module.
package errs

import (
	stderrors "errors"
	"fmt"

	"github.com/juju/errors"
)

// Kind is one of the closed set of error kinds the engine can report.
// It names a failure mode, not a Go type — every Kind is carried by the
// single Error type below.
type Kind uint8

const (
	// BadRange: invalid or mixed-class range endpoints (e.g. "9-a", "Z-a").
	BadRange Kind = iota
	// MalformedClass: an unmatched '[' or ']'.
	MalformedClass
	// SyntaxError: unbalanced groups, a misplaced '|', a quantifier with
	// no preceding atom, a reserved token ($, {m,n}, bare backslash), or
	// group nesting beyond the fixed limit.
	SyntaxError
	// PoolExhausted: a fixed-size pool (tokens, states, out-list nodes,
	// group stack, match list) ran out of room.
	PoolExhausted
	// BufferFull: the caller's result buffer is too small for the input
	// bytes the simulation consumed.
	BufferFull
	// InternalError: an invariant was violated during compilation — a
	// bug in the translator or compiler, never in the input pattern.
	InternalError
)

func (k Kind) String() string {
	switch k {
	case BadRange:
		return "BadRange"
	case MalformedClass:
		return "MalformedClass"
	case SyntaxError:
		return "SyntaxError"
	case PoolExhausted:
		return "PoolExhausted"
	case BufferFull:
		return "BufferFull"
	case InternalError:
		return "InternalError"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Error is the single concrete error type returned by every pipeline
// stage: a Msg and byte Pos with a Kind field added so callers can
// switch on failure mode without string-matching messages.
type Error struct {
	Kind Kind
	Msg  string
	Pos  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at byte %d: %s", e.Kind, e.Pos, e.Msg)
}

// New constructs an *Error of the given kind at the given byte position.
func New(kind Kind, pos int, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Annotate wraps err with additional context using juju/errors, preserving
// the original Kind for callers that inspect it with As. Used when a
// lower-level failure (e.g. pool exhaustion inside a nested class fold)
// needs a stage-level explanation layered on top.
func Annotate(err error, context string) error {
	if err == nil {
		return nil
	}
	return errors.Annotate(err, context)
}

// As reports whether err (or any error it wraps) is an *Error, and if so
// returns it. Thin wrapper kept here so callers don't need to import both
// this package and the standard errors package just to unwrap a Kind.
func As(err error) (*Error, bool) {
	var target *Error
	if stderrors.As(err, &target) {
		return target, true
	}
	return nil, false
}
