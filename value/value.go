// Package value implements the closed set of run-time values produced by
// expression evaluation and the visitor dispatch used to traverse them.
//
// A [Value] is exactly one of [Empty], [Bool], [Int], [Double], [String],
// [WideString], [List], [Map], [KeyValuePair] or [Callable]. The set is
// closed: the interface carries an unexported method, so no other package
// can add variants, and [Apply] is exhaustive over it.
//
// [List] and [Map] are non-owning views. They reference a [Sequence] or
// [Mapping] owned by someone else and never copy it. The owner must keep
// the collection alive and unmodified for as long as any view derived from
// it is in use. Building with the jexpr_debug tag turns violations against
// [Array] and [Dict] into panics carrying [ErrStaleView].
package value

// Kind identifies the active variant of a Value.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindBool
	KindInt
	KindDouble
	KindString
	KindWideString
	KindList
	KindMap
	KindKeyValuePair
	KindCallable
)

//nolint:gochecknoglobals
var kindNames = [...]string{
	KindEmpty:        "empty",
	KindBool:         "bool",
	KindInt:          "int",
	KindDouble:       "double",
	KindString:       "string",
	KindWideString:   "wstring",
	KindList:         "list",
	KindMap:          "map",
	KindKeyValuePair: "pair",
	KindCallable:     "callable",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "invalid"
}

// Value is the result of evaluating an expression. A nil Value is treated
// as Empty everywhere.
type Value interface {
	Kind() Kind
	value()
}

// Empty is the absence of a value: undefined names, missing keys and
// out-of-range indexes evaluate to Empty.
type Empty struct{}

// Bool is a boolean.
type Bool bool

// Int is a 64-bit signed integer.
type Int int64

// Double is a 64-bit float.
type Double float64

// String is a UTF-8 string.
type String string

// WideString is a string held as code points. It may alias a rune slice
// owned by the caller.
type WideString []rune

// KeyValuePair is a single named entry, as produced by iterating a Map.
type KeyValuePair struct {
	Value Value
	Key   string
}

func (Empty) Kind() Kind        { return KindEmpty }
func (Bool) Kind() Kind         { return KindBool }
func (Int) Kind() Kind          { return KindInt }
func (Double) Kind() Kind       { return KindDouble }
func (String) Kind() Kind       { return KindString }
func (WideString) Kind() Kind   { return KindWideString }
func (List) Kind() Kind         { return KindList }
func (Map) Kind() Kind          { return KindMap }
func (KeyValuePair) Kind() Kind { return KindKeyValuePair }
func (Callable) Kind() Kind     { return KindCallable }

func (Empty) value()        {}
func (Bool) value()         {}
func (Int) value()          {}
func (Double) value()       {}
func (String) value()       {}
func (WideString) value()   {}
func (List) value()         {}
func (Map) value()          {}
func (KeyValuePair) value() {}
func (Callable) value()     {}

// KindOf returns the kind of v, treating nil as KindEmpty.
func KindOf(v Value) Kind {
	if v == nil {
		return KindEmpty
	}

	return v.Kind()
}

// IsEmpty reports whether v is nil or Empty.
func IsEmpty(v Value) bool { return KindOf(v) == KindEmpty }
