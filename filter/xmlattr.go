package filter

import (
	"html"
	"strconv"
	"strings"

	"github.com/ardnew/jexpr/pkg"
	"github.com/ardnew/jexpr/render"
	"github.com/ardnew/jexpr/value"
)

// XMLAttr renders a map as an XML attribute list: key="value" pairs in
// key order separated by single spaces. Entries whose text is empty are
// omitted. Values below the top level are pretty-printed and escaped as a
// whole. Any input other than a map is an InvalidValueType error.
type XMLAttr struct{}

func (XMLAttr) Apply(v value.Value, ctx *render.Context) (value.Value, error) {
	m, ok := v.(value.Map)
	if !ok {
		return nil, ctx.Error(pkg.InvalidValueType, value.String("xmlattr"), v)
	}

	var sb strings.Builder

	for k, e := range m.All() {
		text := value.Apply[string](e, attrPrinter{})
		if text == "" {
			continue
		}

		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}

		sb.WriteString(k)
		sb.WriteString(`="`)
		sb.WriteString(text)
		sb.WriteByte('"')
	}

	return value.String(sb.String()), nil
}

// attrPrinter renders one attribute value. html.EscapeString maps
// < > & ' " to &lt; &gt; &amp; &#39; &#34;.
type attrPrinter struct{}

func (attrPrinter) VisitEmpty() string                  { return "" }
func (attrPrinter) VisitCallable(value.Callable) string { return "" }
func (attrPrinter) VisitBool(v value.Bool) string       { return strconv.FormatBool(bool(v)) }
func (attrPrinter) VisitInt(v value.Int) string         { return strconv.FormatInt(int64(v), 10) }

func (attrPrinter) VisitDouble(v value.Double) string {
	return value.Printer{}.VisitDouble(v)
}

func (attrPrinter) VisitString(v value.String) string {
	return html.EscapeString(string(v))
}

func (attrPrinter) VisitWideString(v value.WideString) string {
	return html.EscapeString(string(v))
}

func (attrPrinter) VisitList(v value.List) string {
	return html.EscapeString(value.Repr(v))
}

func (attrPrinter) VisitMap(v value.Map) string {
	return html.EscapeString(value.Repr(v))
}

func (attrPrinter) VisitKeyValuePair(v value.KeyValuePair) string {
	return html.EscapeString(value.Repr(v))
}
