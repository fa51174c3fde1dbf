package regex

import "github.com/oarkflow/goregex/errs"

// Re-export the error taxonomy so callers only import the root package.
type (
	ErrorKind = errs.Kind
	Error     = errs.Error
)

const (
	BadRange       = errs.BadRange
	MalformedClass = errs.MalformedClass
	SyntaxError    = errs.SyntaxError
	PoolExhausted  = errs.PoolExhausted
	BufferFull     = errs.BufferFull
	InternalError  = errs.InternalError
)

// AsError reports whether err (or any error it wraps) is an *Error, and
// if so returns it.
func AsError(err error) (*Error, bool) {
	return errs.As(err)
}
