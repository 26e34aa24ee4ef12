package lang

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/jexpr/lang/token"
	"github.com/ardnew/jexpr/pkg"
)

// ParseError describes the first syntax error in an expression.
type ParseError struct {
	// Found is the offending token.
	Found token.Token
	// Expected names what the parser was looking for, if anything.
	Expected string
	// Detail carries the message of an underlying failure, such as a
	// filter that could not be constructed.
	Detail string
	// Source is the expression text, when known. It enables the source
	// snippet in Error.
	Source string
	Pos    token.Position
	Code   pkg.ErrorCode
}

func (e *ParseError) Error() string {
	var sb strings.Builder

	sb.WriteString("parse error at line ")
	sb.WriteString(strconv.Itoa(e.Pos.Line))
	sb.WriteString(", column ")
	sb.WriteString(strconv.Itoa(e.Pos.Column))
	sb.WriteString(": ")
	sb.WriteString(e.Code.Error())

	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	} else if e.Found.Kind != token.EOF || e.Code != pkg.UnexpectedEOF {
		sb.WriteString(" (found ")
		sb.WriteString(e.Found.String())
		sb.WriteByte(')')
	}

	if e.Expected != "" {
		sb.WriteString("; expected ")
		sb.WriteString(e.Expected)
	}

	sb.WriteString(e.snippet())

	return sb.String()
}

// snippet renders the offending source line with a caret under the error
// column.
func (e *ParseError) snippet() string {
	lines := strings.Split(e.Source, "\n")
	if e.Source == "" || e.Pos.Line < 1 || e.Pos.Line > len(lines) {
		return ""
	}

	num := strconv.Itoa(e.Pos.Line)

	var sb strings.Builder

	sb.WriteString("\n  ")
	sb.WriteString(num)
	sb.WriteString(" | ")
	sb.WriteString(lines[e.Pos.Line-1])
	sb.WriteByte('\n')
	// 2 leading spaces + " | "
	sb.WriteString(strings.Repeat(" ", len(num)+5+max(e.Pos.Column-1, 0)))
	sb.WriteByte('^')

	return sb.String()
}

// Unwrap returns the error code so errors.Is(err, pkg.UnexpectedToken)
// matches.
func (e *ParseError) Unwrap() error { return e.Code }

func (e *ParseError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("code", e.Code.String()),
		slog.String("pos", e.Pos.String()),
		slog.String("found", e.Found.String()),
	}

	if e.Expected != "" {
		attrs = append(attrs, slog.String("expected", e.Expected))
	}

	if e.Detail != "" {
		attrs = append(attrs, slog.String("detail", e.Detail))
	}

	return slog.GroupValue(attrs...)
}
