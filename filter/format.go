package filter

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/ardnew/jexpr/lang/ast"
	"github.com/ardnew/jexpr/pkg"
	"github.com/ardnew/jexpr/render"
	"github.com/ardnew/jexpr/value"
)

// Syntax selects the placeholder syntax of a StringFormat pattern.
type Syntax uint8

const (
	// Native patterns use {}-placeholders directly.
	Native Syntax = iota
	// CStyle patterns use %-directives, rewritten by RewriteC.
	CStyle
)

// StringFormat formats its input, taken as the pattern, with the filter
// arguments.
type StringFormat struct {
	params ast.Params
	syntax Syntax
}

// NewStringFormat binds the format arguments.
func NewStringFormat(params ast.Params, syntax Syntax) *StringFormat {
	return &StringFormat{params: params, syntax: syntax}
}

func (f *StringFormat) Apply(v value.Value, ctx *render.Context) (value.Value, error) {
	// Params.Eval copies every argument into storage owned by args, with
	// starred lists already spread.
	args, err := f.params.Eval(ctx)
	if err != nil {
		return nil, err
	}

	pattern := value.Text(v)
	if f.syntax == CStyle {
		pattern = RewriteC(pattern)
	}

	ctx.Logger().TraceContext(ctx.Context(), "format",
		slog.String("pattern", pattern),
		slog.Int("positional", len(args.Positional)),
		slog.Int("keyword", len(args.Keyword)))

	out, err := formatString(pattern, convertArgs(args))
	if err != nil {
		return nil, ctx.Error(pkg.InvalidArgument, value.String(err.Error()), value.String(pattern))
	}

	return value.String(out), nil
}

func convertArgs(args value.Args) formatArgs {
	fa := formatArgs{positional: make([]any, len(args.Positional))}

	for i, v := range args.Positional {
		fa.positional[i] = value.Apply[any](v, argConverter{})
	}

	if len(args.Keyword) > 0 {
		fa.named = make(map[string]any, len(args.Keyword))
		for _, kv := range args.Keyword {
			fa.named[kv.Key] = value.Apply[any](kv.Value, argConverter{})
		}
	}

	return fa
}

// argConverter maps a value onto the three argument types the formatter
// understands. Containers are pretty-printed.
type argConverter struct{}

func (argConverter) VisitEmpty() any                        { return "none" }
func (argConverter) VisitBool(v value.Bool) any             { return value.Text(v) }
func (argConverter) VisitInt(v value.Int) any               { return int64(v) }
func (argConverter) VisitDouble(v value.Double) any         { return float64(v) }
func (argConverter) VisitString(v value.String) any         { return string(v) }
func (argConverter) VisitWideString(v value.WideString) any { return string(v) }
func (argConverter) VisitList(v value.List) any             { return value.Repr(v) }
func (argConverter) VisitMap(v value.Map) any               { return value.Repr(v) }
func (argConverter) VisitCallable(value.Callable) any       { return "<callable>" }

func (argConverter) VisitKeyValuePair(v value.KeyValuePair) any {
	return value.Repr(v)
}

// RewriteC converts %-directives into {}-placeholders:
//
//	%%              becomes  %
//	%[-+ 0][0-9]X   becomes  {:[-+ 0][0-9]X}
//
// where X is copied verbatim. Literal braces are doubled so that the
// formatter prints them as-is. A directive cut short by the end of the
// pattern is copied unchanged.
func RewriteC(pattern string) string {
	var sb strings.Builder

	sb.Grow(len(pattern) + 8)

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c == '{' || c == '}' {
			sb.WriteByte(c)
			sb.WriteByte(c)

			continue
		}

		if c != '%' {
			sb.WriteByte(c)

			continue
		}

		j := i + 1
		if j < len(pattern) && pattern[j] == '%' {
			sb.WriteByte('%')

			i = j

			continue
		}

		if j < len(pattern) && strings.IndexByte("-+ 0", pattern[j]) >= 0 {
			j++
		}

		if j < len(pattern) && pattern[j] >= '0' && pattern[j] <= '9' {
			j++
		}

		if j >= len(pattern) {
			sb.WriteString(pattern[i:])

			break
		}

		_, n := utf8.DecodeRuneInString(pattern[j:])

		sb.WriteString("{:")
		sb.WriteString(pattern[i+1 : j+n])
		sb.WriteByte('}')

		i = j + n - 1
	}

	return sb.String()
}
