package value

import (
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"

	"github.com/goccy/go-yaml"
)

// FromNative converts a Go value into a Value. Slices become lists and
// maps become dicts; map[string]... keys are sorted, while yaml.MapSlice
// keeps document order. Values that already implement Value pass through.
// Other types are rendered with fmt.
func FromNative(x any) Value {
	switch t := x.(type) {
	case nil:
		return Empty{}
	case Value:
		return t
	case bool:
		return Bool(t)
	case int:
		return Int(t)
	case int8:
		return Int(t)
	case int16:
		return Int(t)
	case int32:
		return Int(t)
	case int64:
		return Int(t)
	case uint:
		return fromUint(uint64(t))
	case uint8:
		return Int(t)
	case uint16:
		return Int(t)
	case uint32:
		return Int(t)
	case uint64:
		return fromUint(t)
	case float32:
		return Double(t)
	case float64:
		return Double(t)
	case string:
		return String(t)
	case []rune:
		return WideString(t)
	case []byte:
		return String(t)
	case []any:
		arr := NewArray(make([]Value, 0, len(t))...)
		for _, e := range t {
			arr.Append(FromNative(e))
		}

		return arr.List()
	case yaml.MapSlice:
		d := NewDict()
		for _, item := range t {
			d.Set(fmt.Sprint(item.Key), FromNative(item.Value))
		}

		return d.Map()
	case map[string]any:
		d := NewDict()
		for _, k := range slices.Sorted(maps.Keys(t)) {
			d.Set(k, FromNative(t[k]))
		}

		return d.Map()
	}

	return fromReflect(reflect.ValueOf(x))
}

func fromUint(u uint64) Value {
	if u > math.MaxInt64 {
		return Double(u)
	}

	return Int(u)
}

func fromReflect(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		arr := NewArray(make([]Value, 0, rv.Len())...)
		for i := range rv.Len() {
			arr.Append(FromNative(rv.Index(i).Interface()))
		}

		return arr.List()

	case reflect.Map:
		keys := make([]string, 0, rv.Len())
		vals := make(map[string]reflect.Value, rv.Len())

		for it := rv.MapRange(); it.Next(); {
			k := fmt.Sprint(it.Key().Interface())
			keys = append(keys, k)
			vals[k] = it.Value()
		}

		slices.Sort(keys)

		d := NewDict()
		for _, k := range keys {
			d.Set(k, FromNative(vals[k].Interface()))
		}

		return d.Map()

	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Empty{}
		}

		return FromNative(rv.Elem().Interface())

	case reflect.Invalid:
		return Empty{}

	default:
		return String(fmt.Sprint(rv.Interface()))
	}
}

// ToNative converts v into plain Go values: nil, bool, int, float64,
// string, []any and map[string]any. A pair becomes a one-entry map and a
// Callable becomes func(...any) (any, error).
func ToNative(v Value) any {
	switch x := v.(type) {
	case nil, Empty:
		return nil
	case Bool:
		return bool(x)
	case Int:
		return int(x)
	case Double:
		return float64(x)
	case String:
		return string(x)
	case WideString:
		return string(x)
	case List:
		out := make([]any, 0, x.Len())
		for e := range x.Values() {
			out = append(out, ToNative(e))
		}

		return out
	case Map:
		out := make(map[string]any, x.Len())
		for k, e := range x.All() {
			out[k] = ToNative(e)
		}

		return out
	case KeyValuePair:
		return map[string]any{x.Key: ToNative(x.Value)}
	case Callable:
		return func(args ...any) (any, error) {
			in := Args{Positional: make([]Value, len(args))}
			for i, a := range args {
				in.Positional[i] = FromNative(a)
			}

			out, err := x.Call(in)

			return ToNative(out), err
		}
	default:
		return nil
	}
}
