package pkg

// Sentinel errors for the jexpr packages that fail outside of expression
// parsing and evaluation. Expression failures are classified by ErrorCode.

import (
	"fmt"
	"slices"
	"strings"
)

// Error represents a chain of errors.
type Error []error

// ErrParse is returned by the high-level entry points when an expression
// fails to parse. It wraps the underlying *lang.ParseError.
var ErrParse = MakeErrorf("parse error")

// ErrRender is returned when evaluating a parsed expression fails.
// It wraps the underlying *render.RuntimeError.
var ErrRender = MakeErrorf("render error")

// ErrJSONMarshal is returned when building or encoding a JSON document fails.
var ErrJSONMarshal = MakeErrorf("JSON marshal error")

// ErrYAMLMarshal is returned when decoding or encoding YAML fails.
var ErrYAMLMarshal = MakeErrorf("YAML marshal error")

// ErrInvalidFormat is returned when an invalid log format or level is named
// in configuration.
var ErrInvalidFormat = MakeErrorf("invalid format")

// ErrReadInput is returned when reading a configuration or bindings
// document fails.
var ErrReadInput = MakeErrorf("failed to read input")

// ErrDefinition is returned when a compiled callable cannot be defined,
// for example when its body does not compile.
var ErrDefinition = MakeErrorf("invalid definition")

// MakeError constructs an Error from the given errors.
// The first argument is the innermost error in the chain.
// Nil errors are skipped.
func MakeError(errs ...error) Error {
	var e Error

	for _, err := range errs {
		if err != nil {
			e = append(e, UnwrapErrors(err)...)
		}
	}

	return e
}

// MakeErrorf constructs an Error from a formatted error message.
func MakeErrorf(format string, args ...any) Error {
	return MakeError(fmt.Errorf(format, args...))
}

// Error joins the chain from innermost to outermost with ": ".
func (e Error) Error() string {
	var sb strings.Builder

	for i, err := range slices.All(e) {
		if i > 0 {
			sb.WriteString(": ")
		}

		sb.WriteString(err.Error())
	}

	return sb.String()
}

// Wrap returns a copy of the receiver with err appended.
func (e Error) Wrap(err ...error) Error {
	return append(slices.Clip(e), err...)
}

// Wrapf returns a copy of the receiver with a formatted error appended.
func (e Error) Wrapf(format string, args ...any) Error {
	return append(slices.Clip(e), fmt.Errorf(format, args...))
}

// Unwrap returns the errors contained in the receiver.
func (e Error) Unwrap() []error {
	return e
}

// UnwrapErrors flattens an error tree into a chain, innermost first.
func UnwrapErrors(err error) Error {
	if err == nil {
		return nil
	}

	chain := Error{}

	switch e := err.(type) {
	case Error:
		return slices.Clone(e)
	case interface{ Unwrap() []error }:
		for _, wrapped := range e.Unwrap() {
			chain = append(chain, UnwrapErrors(wrapped)...)
		}
	case interface{ Unwrap() error }:
		chain = append(chain, UnwrapErrors(e.Unwrap())...)
	}

	return append(chain, err)
}

// Is reports whether target is a single-entry sentinel contained in the
// receiver's chain, so errors.Is(ErrParse.Wrap(err), ErrParse) holds.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok || len(t) != 1 {
		return false
	}

	return slices.Contains(e, t[0])
}
