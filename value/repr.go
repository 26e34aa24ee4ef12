package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Printer renders values in a Python repr style: strings single-quoted,
// Empty as none, booleans as true/false, doubles with eight significant
// digits, lists as [a, b] and maps as {'k': v} in key order.
type Printer struct{}

// Repr returns the pretty-printed form of v.
func Repr(v Value) string {
	return Apply[string](v, Printer{})
}

func (Printer) VisitEmpty() string      { return "none" }
func (Printer) VisitBool(v Bool) string { return strconv.FormatBool(bool(v)) }
func (Printer) VisitInt(v Int) string   { return strconv.FormatInt(int64(v), 10) }
func (Printer) VisitDouble(v Double) string {
	return fmt.Sprintf("%.8g", float64(v))
}
func (Printer) VisitString(v String) string         { return "'" + string(v) + "'" }
func (Printer) VisitWideString(v WideString) string { return "'" + string(v) + "'" }
func (Printer) VisitCallable(Callable) string       { return "<callable>" }

func (p Printer) VisitList(v List) string {
	var sb strings.Builder

	sb.WriteByte('[')

	for i, e := range v.All() {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(Apply[string](e, p))
	}

	sb.WriteByte(']')

	return sb.String()
}

func (p Printer) VisitMap(v Map) string {
	var sb strings.Builder

	sb.WriteByte('{')

	first := true
	for k, e := range v.All() {
		if !first {
			sb.WriteString(", ")
		}

		first = false

		sb.WriteString(p.VisitKeyValuePair(KeyValuePair{Key: k, Value: e}))
	}

	sb.WriteByte('}')

	return sb.String()
}

func (p Printer) VisitKeyValuePair(v KeyValuePair) string {
	return "'" + v.Key + "': " + Apply[string](v.Value, p)
}
