package value

import (
	"errors"
	"iter"
	"maps"
	"slices"
)

// ErrStaleView is the panic value raised, in builds with the jexpr_debug
// tag, when a List or Map is read after its backing Array or Dict changed.
var ErrStaleView = errors.New("value: collection modified while a view is alive")

// Sequence is an indexable collection a List can view.
type Sequence interface {
	Len() int
	At(i int) Value
}

// Mapping is a keyed collection a Map can view. Keys must report the same
// order on every call while the mapping is unmodified.
type Mapping interface {
	Len() int
	Keys() []string
	Get(key string) (Value, bool)
}

// List is a non-owning view over a Sequence. The zero List is empty.
type List struct {
	src   Sequence
	guard guard
}

// ListOf returns a List viewing src.
func ListOf(src Sequence) List {
	return List{src: src, guard: guardOf(src)}
}

// Slice returns a List viewing items without copying them.
func Slice(items ...Value) List {
	return ListOf(slice(items))
}

// Len returns the number of elements.
func (l List) Len() int {
	if l.src == nil {
		return 0
	}

	l.guard.check()

	return l.src.Len()
}

// At returns element i. Negative i counts from the end. Out-of-range
// indexes yield Empty.
func (l List) At(i int) Value {
	n := l.Len()
	if i < 0 {
		i += n
	}

	if i < 0 || i >= n {
		return Empty{}
	}

	return l.src.At(i)
}

// All iterates the elements with their indexes.
func (l List) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i := range l.Len() {
			if !yield(i, l.src.At(i)) {
				return
			}
		}
	}
}

// Values iterates the elements.
func (l List) Values() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for _, v := range l.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Map is a non-owning view over a Mapping. The zero Map is empty.
type Map struct {
	src   Mapping
	guard guard
}

// MapOf returns a Map viewing src.
func MapOf(src Mapping) Map {
	return Map{src: src, guard: guardOf(src)}
}

// GoMap returns a Map viewing m. Keys are reported in sorted order.
func GoMap(m map[string]Value) Map {
	return MapOf(goMap(m))
}

// Len returns the number of entries.
func (m Map) Len() int {
	if m.src == nil {
		return 0
	}

	m.guard.check()

	return m.src.Len()
}

// Get returns the value stored under key.
func (m Map) Get(key string) (Value, bool) {
	if m.src == nil {
		return Empty{}, false
	}

	m.guard.check()

	v, ok := m.src.Get(key)
	if !ok || v == nil {
		return Empty{}, ok
	}

	return v, true
}

// Keys iterates the keys in the mapping's reported order.
func (m Map) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		if m.src == nil {
			return
		}

		m.guard.check()

		for _, k := range m.src.Keys() {
			if !yield(k) {
				return
			}
		}
	}
}

// All iterates the entries in key order.
func (m Map) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for k := range m.Keys() {
			v, _ := m.Get(k)
			if !yield(k, v) {
				return
			}
		}
	}
}

type slice []Value

func (s slice) Len() int       { return len(s) }
func (s slice) At(i int) Value { return s[i] }

type goMap map[string]Value

func (m goMap) Len() int { return len(m) }

func (m goMap) Keys() []string { return slices.Sorted(maps.Keys(m)) }

func (m goMap) Get(key string) (Value, bool) {
	v, ok := m[key]

	return v, ok
}

// Array is an owned, growable Sequence. Every mutation advances its
// version, which debug builds use to detect stale views.
type Array struct {
	items   []Value
	version uint64
}

// NewArray returns an Array holding items. The slice is retained.
func NewArray(items ...Value) *Array {
	return &Array{items: items}
}

func (a *Array) Len() int       { return len(a.items) }
func (a *Array) At(i int) Value { return a.items[i] }

// Version returns the mutation counter.
func (a *Array) Version() uint64 { return a.version }

// Append adds values to the end.
func (a *Array) Append(vs ...Value) {
	a.items = append(a.items, vs...)
	a.version++
}

// Set replaces element i.
func (a *Array) Set(i int, v Value) {
	a.items[i] = v
	a.version++
}

// Reset discards every element.
func (a *Array) Reset() {
	clear(a.items)
	a.items = a.items[:0]
	a.version++
}

// List returns a view of a.
func (a *Array) List() List { return ListOf(a) }

// Dict is an owned Mapping that reports keys in insertion order.
type Dict struct {
	index   map[string]int
	keys    []string
	vals    []Value
	version uint64
}

// NewDict returns an empty Dict.
func NewDict() *Dict {
	return &Dict{index: map[string]int{}}
}

func (d *Dict) Len() int { return len(d.keys) }

func (d *Dict) Keys() []string { return d.keys }

func (d *Dict) Get(key string) (Value, bool) {
	i, ok := d.index[key]
	if !ok {
		return nil, false
	}

	return d.vals[i], true
}

// Version returns the mutation counter.
func (d *Dict) Version() uint64 { return d.version }

// Set stores v under key. A new key is appended to the key order; an
// existing key keeps its position.
func (d *Dict) Set(key string, v Value) {
	if d.index == nil {
		d.index = map[string]int{}
	}

	if i, ok := d.index[key]; ok {
		d.vals[i] = v
	} else {
		d.index[key] = len(d.keys)
		d.keys = append(d.keys, key)
		d.vals = append(d.vals, v)
	}

	d.version++
}

// Delete removes key, preserving the order of the remaining keys.
func (d *Dict) Delete(key string) {
	i, ok := d.index[key]
	if !ok {
		return
	}

	d.keys = slices.Delete(d.keys, i, i+1)
	d.vals = slices.Delete(d.vals, i, i+1)

	delete(d.index, key)

	for j := i; j < len(d.keys); j++ {
		d.index[d.keys[j]] = j
	}

	d.version++
}

// Map returns a view of d.
func (d *Dict) Map() Map { return MapOf(d) }
