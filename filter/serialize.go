package filter

import (
	"bytes"
	"log/slog"
	"math"
	"strings"

	"github.com/goccy/go-json"

	"github.com/ardnew/jexpr/lang/ast"
	"github.com/ardnew/jexpr/pkg"
	"github.com/ardnew/jexpr/render"
	"github.com/ardnew/jexpr/value"
)

// Mode selects the output document format of Serialize.
type Mode uint8

const (
	JSON Mode = iota
	XML
	YAML
)

//nolint:gochecknoglobals
var modeNames = [...]string{JSON: "json", XML: "xml", YAML: "yaml"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}

	return "unknown"
}

// scriptSafe rewrites the characters that could close or confuse an
// HTML script block.
//
//nolint:gochecknoglobals
var scriptSafe = strings.NewReplacer(
	"<", "\\u003c",
	">", "\\u003e",
	"&", "\\u0026",
	"'", "\\u0027",
)

// Serialize encodes its input as a document. Only JSON is implemented;
// the other modes yield Empty.
type Serialize struct {
	indent ast.Expr
	mode   Mode
}

// NewSerialize binds the optional indent argument.
func NewSerialize(params ast.Params, mode Mode) *Serialize {
	return &Serialize{indent: bind(params, "indent")[0], mode: mode}
}

func (s *Serialize) Apply(v value.Value, ctx *render.Context) (value.Value, error) {
	if s.mode != JSON {
		return value.Empty{}, nil
	}

	indent, err := s.indentWidth(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalNoEscape(value.Apply[any](v, jsonBuilder{}))
	if err != nil {
		return nil, pkg.ErrJSONMarshal.Wrap(err)
	}

	if indent > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", strings.Repeat(" ", indent)); err != nil {
			return nil, pkg.ErrJSONMarshal.Wrap(err)
		}

		data = buf.Bytes()
	}

	ctx.Logger().TraceContext(ctx.Context(), "serialize",
		slog.String("mode", s.mode.String()),
		slog.Int("indent", indent),
		slog.Int("bytes", len(data)))

	return value.String(scriptSafe.Replace(string(data))), nil
}

func (s *Serialize) indentWidth(ctx *render.Context) (int, error) {
	if s.indent == nil {
		return 0, nil
	}

	v, err := s.indent.Eval(ctx)
	if err != nil {
		return 0, err
	}

	n, ok := value.ToInt(v)
	if !ok {
		return 0, ctx.Error(pkg.InvalidArgument, value.String("indent"), v)
	}

	return max(int(n), 0), nil
}

// member is one entry of an object. Objects are slices so that map key
// order survives encoding.
type member struct {
	val any
	key string
}

type object []member

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}

		k, err := json.MarshalNoEscape(m.key)
		if err != nil {
			return nil, err
		}

		v, err := json.MarshalNoEscape(m.val)
		if err != nil {
			return nil, err
		}

		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// jsonBuilder converts a value into a tree of Go values that go-json
// encodes. Callables and non-finite doubles become null.
type jsonBuilder struct{}

func (jsonBuilder) VisitEmpty() any                  { return nil }
func (jsonBuilder) VisitBool(v value.Bool) any       { return bool(v) }
func (jsonBuilder) VisitInt(v value.Int) any         { return int64(v) }
func (jsonBuilder) VisitString(v value.String) any   { return string(v) }
func (jsonBuilder) VisitCallable(value.Callable) any { return nil }

func (jsonBuilder) VisitWideString(v value.WideString) any { return string(v) }

func (jsonBuilder) VisitDouble(v value.Double) any {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}

	return f
}

func (b jsonBuilder) VisitList(v value.List) any {
	out := make([]any, 0, v.Len())
	for e := range v.Values() {
		out = append(out, value.Apply[any](e, b))
	}

	return out
}

func (b jsonBuilder) VisitMap(v value.Map) any {
	out := make(object, 0, v.Len())
	for k, e := range v.All() {
		out = append(out, member{key: k, val: value.Apply[any](e, b)})
	}

	return out
}

func (b jsonBuilder) VisitKeyValuePair(v value.KeyValuePair) any {
	return object{{key: v.Key, val: value.Apply[any](v.Value, b)}}
}
