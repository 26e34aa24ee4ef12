package render

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/ardnew/jexpr/pkg"
	"github.com/ardnew/jexpr/value"
)

// Callback receives every runtime error raised through a Context before
// the error is returned to the caller.
type Callback interface {
	ThrowRuntimeError(code pkg.ErrorCode, details []value.Value)
}

// CallbackFunc adapts a function to the Callback interface.
type CallbackFunc func(code pkg.ErrorCode, details []value.Value)

// ThrowRuntimeError calls f.
func (f CallbackFunc) ThrowRuntimeError(code pkg.ErrorCode, details []value.Value) {
	f(code, details)
}

// RuntimeError is a fatal evaluation error. It matches its Code with
// errors.Is.
type RuntimeError struct {
	Details []value.Value
	Code    pkg.ErrorCode
}

func (e *RuntimeError) Error() string {
	var sb strings.Builder

	sb.WriteString(e.Code.Error())

	for i, d := range e.Details {
		if i == 0 {
			sb.WriteString(": ")
		} else {
			sb.WriteString(", ")
		}

		sb.WriteString(value.Text(d))
	}

	return sb.String()
}

// Unwrap returns the error code.
func (e *RuntimeError) Unwrap() error { return e.Code }

// LogValue implements [slog.LogValuer].
func (e *RuntimeError) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("code", e.Code.String())}

	if len(e.Details) > 0 {
		details := make([]string, len(e.Details))
		for i, d := range e.Details {
			details[i] = value.Repr(d)
		}

		attrs = append(attrs, slog.Any("details", details))
	}

	return slog.GroupValue(attrs...)
}

// CodeOf returns the error code carried by err, or Unspecified.
func CodeOf(err error) pkg.ErrorCode {
	var code pkg.ErrorCode
	if errors.As(err, &code) {
		return code
	}

	return pkg.Unspecified
}
