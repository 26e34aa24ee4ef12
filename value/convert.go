package value

import (
	"cmp"
	"math"
	"strconv"
	"strings"
)

// Truthy reports the boolean interpretation of v: Empty, false, zero,
// and empty strings and collections are false.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case nil, Empty:
		return false
	case Bool:
		return bool(x)
	case Int:
		return x != 0
	case Double:
		return x != 0
	case String:
		return x != ""
	case WideString:
		return len(x) > 0
	case List:
		return x.Len() > 0
	case Map:
		return x.Len() > 0
	default:
		return true
	}
}

// Text returns the rendered text of v: strings verbatim, Empty as "",
// numbers in their shortest form and containers as [Repr].
func Text(v Value) string {
	switch x := v.(type) {
	case nil, Empty:
		return ""
	case Bool:
		return strconv.FormatBool(bool(x))
	case Int:
		return strconv.FormatInt(int64(x), 10)
	case Double:
		return strconv.FormatFloat(float64(x), 'g', -1, 64)
	case String:
		return string(x)
	case WideString:
		return string(x)
	default:
		return Repr(v)
	}
}

// AsString returns the contents of a String or WideString.
func AsString(v Value) (string, bool) {
	switch x := v.(type) {
	case String:
		return string(x), true
	case WideString:
		return string(x), true
	default:
		return "", false
	}
}

// ToInt converts Int, Bool and integral Double values.
func ToInt(v Value) (int64, bool) {
	switch x := v.(type) {
	case Int:
		return int64(x), true
	case Bool:
		if x {
			return 1, true
		}

		return 0, true
	case Double:
		f := float64(x)
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, false
		}

		return int64(f), true
	default:
		return 0, false
	}
}

// ToDouble converts Int, Bool and Double values.
func ToDouble(v Value) (float64, bool) {
	switch x := v.(type) {
	case Double:
		return float64(x), true
	case Int:
		return float64(x), true
	case Bool:
		if x {
			return 1, true
		}

		return 0, true
	default:
		return 0, false
	}
}

// ToList reports whether v converts to a list. Only List values do;
// strings and maps are not spread.
func ToList(v Value) (List, bool) {
	l, ok := v.(List)

	return l, ok
}

// Len returns the length of strings (in code points) and collections.
func Len(v Value) (int, bool) {
	switch x := v.(type) {
	case String:
		return len([]rune(string(x))), true
	case WideString:
		return len(x), true
	case List:
		return x.Len(), true
	case Map:
		return x.Len(), true
	default:
		return 0, false
	}
}

// Equal reports deep equality. Numbers compare by value across Int and
// Double, String and WideString compare by contents, and callables are
// never equal.
func Equal(a, b Value) bool {
	if sa, ok := AsString(a); ok {
		sb, ok := AsString(b)

		return ok && sa == sb
	}

	if isNumber(a) && isNumber(b) {
		c, _ := Compare(a, b)

		return c == 0
	}

	switch x := a.(type) {
	case nil, Empty:
		return IsEmpty(b)
	case Bool:
		y, ok := b.(Bool)

		return ok && x == y
	case List:
		y, ok := b.(List)
		if !ok || x.Len() != y.Len() {
			return false
		}

		for i, v := range x.All() {
			if !Equal(v, y.At(i)) {
				return false
			}
		}

		return true
	case Map:
		y, ok := b.(Map)
		if !ok || x.Len() != y.Len() {
			return false
		}

		for k, v := range x.All() {
			w, ok := y.Get(k)
			if !ok || !Equal(v, w) {
				return false
			}
		}

		return true
	case KeyValuePair:
		y, ok := b.(KeyValuePair)

		return ok && x.Key == y.Key && Equal(x.Value, y.Value)
	default:
		return false
	}
}

// Compare orders two numbers or two strings. The boolean is false when
// the operands are not mutually ordered.
func Compare(a, b Value) (int, bool) {
	if sa, ok := AsString(a); ok {
		if sb, ok := AsString(b); ok {
			return strings.Compare(sa, sb), true
		}

		return 0, false
	}

	if !isNumber(a) || !isNumber(b) {
		return 0, false
	}

	ia, aInt := a.(Int)
	ib, bInt := b.(Int)

	if aInt && bInt {
		return cmp.Compare(ia, ib), true
	}

	fa, _ := ToDouble(a)
	fb, _ := ToDouble(b)

	if math.IsNaN(fa) || math.IsNaN(fb) {
		return 0, false
	}

	return cmp.Compare(fa, fb), true
}

func isNumber(v Value) bool {
	switch v.(type) {
	case Int, Double:
		return true
	default:
		return false
	}
}
