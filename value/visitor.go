package value

import "fmt"

// Visitor is a total function over the variants of Value. Implementations
// usually embed [Base] and override the methods they care about.
// Visitors must not retain the values they are given after returning.
type Visitor[R any] interface {
	VisitEmpty() R
	VisitBool(Bool) R
	VisitInt(Int) R
	VisitDouble(Double) R
	VisitString(String) R
	VisitWideString(WideString) R
	VisitList(List) R
	VisitMap(Map) R
	VisitKeyValuePair(KeyValuePair) R
	VisitCallable(Callable) R
}

// Apply dispatches v to the method of vis matching its active variant.
// A nil v is dispatched as Empty.
func Apply[R any](v Value, vis Visitor[R]) R {
	switch x := v.(type) {
	case nil, Empty:
		return vis.VisitEmpty()
	case Bool:
		return vis.VisitBool(x)
	case Int:
		return vis.VisitInt(x)
	case Double:
		return vis.VisitDouble(x)
	case String:
		return vis.VisitString(x)
	case WideString:
		return vis.VisitWideString(x)
	case List:
		return vis.VisitList(x)
	case Map:
		return vis.VisitMap(x)
	case KeyValuePair:
		return vis.VisitKeyValuePair(x)
	case Callable:
		return vis.VisitCallable(x)
	default:
		panic(fmt.Sprintf("value: unhandled variant %T", v))
	}
}

// Base implements every Visitor method by calling Fallback with the
// visited value. A nil Fallback yields the zero R.
type Base[R any] struct {
	Fallback func(Value) R
}

func (b Base[R]) fallback(v Value) R {
	if b.Fallback == nil {
		var zero R

		return zero
	}

	return b.Fallback(v)
}

func (b Base[R]) VisitEmpty() R                      { return b.fallback(Empty{}) }
func (b Base[R]) VisitBool(v Bool) R                 { return b.fallback(v) }
func (b Base[R]) VisitInt(v Int) R                   { return b.fallback(v) }
func (b Base[R]) VisitDouble(v Double) R             { return b.fallback(v) }
func (b Base[R]) VisitString(v String) R             { return b.fallback(v) }
func (b Base[R]) VisitWideString(v WideString) R     { return b.fallback(v) }
func (b Base[R]) VisitList(v List) R                 { return b.fallback(v) }
func (b Base[R]) VisitMap(v Map) R                   { return b.fallback(v) }
func (b Base[R]) VisitKeyValuePair(v KeyValuePair) R { return b.fallback(v) }
func (b Base[R]) VisitCallable(v Callable) R         { return b.fallback(v) }
