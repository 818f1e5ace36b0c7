package lang

import (
	"errors"
	"log/slog"
	"strings"
)

// Predefined errors (sentinel values).
//
// Every failure surfaced by the engine derives from exactly one of these, so
// callers can dispatch on kind with errors.Is while still receiving a
// human-readable message.
var (
	// Lexical errors.
	ErrUnexpectedChar       = NewError("unexpected character")
	ErrUnterminatedString   = NewError("unterminated string literal")
	ErrInvalidEscape        = NewError("invalid escape sequence in string literal")
	ErrUnterminatedVariable = NewError("unterminated variable placeholder")
	ErrEmptyVariable        = NewError("empty variable placeholder")
	ErrInvalidNumber        = NewError("invalid number literal")

	// Syntax errors.
	ErrUnexpectedToken  = NewError("unexpected token")
	ErrExpectedToken    = NewError("expected token not found")
	ErrBareIdentifier   = NewError("unexpected identifier (variables must use {{name}} notation)")
	ErrEmptyFormula     = NewError("formula is empty")
	ErrMaxDepthExceeded = NewError("maximum expression depth exceeded")

	// Evaluation errors.
	ErrUnknownVariable = NewError("unknown variable")
	ErrUnknownFunction = NewError("unknown function")
	ErrDivisionByZero  = NewError("division by zero")
	ErrNotNumeric      = NewError("unsupported value type for numeric coercion")
	ErrNotDateTime     = NewError("cannot interpret as a date/time value")
	ErrInvalidArgument = NewError("invalid function arguments")
	ErrNoMatch         = NewError("no condition matched")
	ErrInvalidPattern  = NewError("invalid regular expression")
	ErrFunctionFailed  = NewError("error executing function")
)

// Error represents a formula error with optional structured logging
// attributes. It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel this error derives from.
// Errors created with Wrap and With share their sentinel's message, which is
// the identity errors.Is dispatches on.
func (e *Error) Is(target error) bool {
	te := &Error{}
	if !errors.As(target, &te) {
		return false
	}

	return e.msg == te.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}
