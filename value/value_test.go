package value

import (
	"errors"
	"math"
	"testing"

	"github.com/goccy/go-yaml"
)

// kindVisitor overrides nothing, so every variant reaches the fallback.
type kindVisitor struct{ Base[Kind] }

func TestApplyTotal(t *testing.T) {
	vis := kindVisitor{Base[Kind]{Fallback: KindOf}}

	values := []Value{
		nil,
		Empty{},
		Bool(true),
		Int(1),
		Double(1.5),
		String("s"),
		WideString("w"),
		Slice(Int(1)),
		GoMap(map[string]Value{"a": Int(1)}),
		KeyValuePair{Key: "k", Value: Int(1)},
		NewCallable("f", nil),
	}

	want := []Kind{
		KindEmpty, KindEmpty, KindBool, KindInt, KindDouble, KindString,
		KindWideString, KindList, KindMap, KindKeyValuePair, KindCallable,
	}

	for i, v := range values {
		if got := Apply[Kind](v, vis); got != want[i] {
			t.Errorf("Apply(%T) = %v, want %v", v, got, want[i])
		}
	}

	if got := Apply[int](Int(3), Base[int]{}); got != 0 {
		t.Errorf("Base without fallback = %d, want 0", got)
	}
}

func TestRepr(t *testing.T) {
	d := NewDict()
	d.Set("b", Int(2))
	d.Set("a", Slice(String("x"), Empty{}))

	tests := []struct {
		name string
		in   Value
		want string
	}{
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"empty", Empty{}, "none"},
		{"nil", nil, "none"},
		{"string", String("x"), "'x'"},
		{"wide", WideString("wé"), "'wé'"},
		{"list", Slice(Int(1), Int(2)), "[1, 2]"},
		{"empty list", Slice(), "[]"},
		{"double", Double(3.14159265358979), "3.1415927"},
		{"double int", Double(2), "2"},
		{"double exp", Double(1e20), "1e+20"},
		{"map order", d.Map(), "{'b': 2, 'a': ['x', none]}"},
		{"pair", KeyValuePair{Key: "k", Value: Bool(false)}, "'k': false"},
		{"callable", NewCallable("f", nil), "<callable>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Repr(tt.in); got != tt.want {
				t.Errorf("Repr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruthyText(t *testing.T) {
	tests := []struct {
		in     Value
		truthy bool
		text   string
	}{
		{Empty{}, false, ""},
		{Bool(true), true, "true"},
		{Int(0), false, "0"},
		{Int(-3), true, "-3"},
		{Double(0.5), true, "0.5"},
		{String(""), false, ""},
		{String("a"), true, "a"},
		{WideString("ü"), true, "ü"},
		{Slice(), false, "[]"},
		{Slice(Int(1)), true, "[1]"},
		{GoMap(nil), false, "{}"},
		{NewCallable("f", nil), true, "<callable>"},
	}

	for _, tt := range tests {
		if got := Truthy(tt.in); got != tt.truthy {
			t.Errorf("Truthy(%#v) = %v", tt.in, got)
		}

		if got := Text(tt.in); got != tt.text {
			t.Errorf("Text(%#v) = %q, want %q", tt.in, got, tt.text)
		}
	}
}

func TestEqualCompare(t *testing.T) {
	eq := []struct {
		a, b Value
		want bool
	}{
		{Int(1), Double(1), true},
		{Int(1), Int(2), false},
		{String("a"), WideString("a"), true},
		{String("1"), Int(1), false},
		{Empty{}, nil, true},
		{Slice(Int(1), String("x")), Slice(Double(1), String("x")), true},
		{Slice(Int(1)), Slice(Int(1), Int(2)), false},
		{GoMap(map[string]Value{"a": Int(1)}), GoMap(map[string]Value{"a": Int(1)}), true},
		{GoMap(map[string]Value{"a": Int(1)}), GoMap(map[string]Value{"b": Int(1)}), false},
		{Bool(true), Bool(true), true},
		{NewCallable("f", nil), NewCallable("f", nil), false},
	}

	for _, tt := range eq {
		if got := Equal(tt.a, tt.b); got != tt.want {
			t.Errorf("Equal(%v, %v) = %v", Repr(tt.a), Repr(tt.b), got)
		}
	}

	cmp := []struct {
		a, b Value
		want int
		ok   bool
	}{
		{Int(1), Int(2), -1, true},
		{Double(2.5), Int(2), 1, true},
		{String("b"), String("a"), 1, true},
		{String("a"), Int(1), 0, false},
		{Double(math.NaN()), Int(1), 0, false},
		{Slice(), Slice(), 0, false},
	}

	for _, tt := range cmp {
		got, ok := Compare(tt.a, tt.b)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Compare(%v, %v) = %d, %v", Repr(tt.a), Repr(tt.b), got, ok)
		}
	}
}

func TestConversions(t *testing.T) {
	if n, ok := ToInt(Double(4)); !ok || n != 4 {
		t.Errorf("ToInt(4.0) = %d, %v", n, ok)
	}

	if _, ok := ToInt(Double(4.5)); ok {
		t.Error("ToInt(4.5) converted")
	}

	if _, ok := ToInt(String("4")); ok {
		t.Error("ToInt(string) converted")
	}

	if f, ok := ToDouble(Bool(true)); !ok || f != 1 {
		t.Errorf("ToDouble(true) = %v, %v", f, ok)
	}

	if _, ok := ToList(String("abc")); ok {
		t.Error("strings must not convert to lists")
	}

	if n, ok := Len(String("héllo")); !ok || n != 5 {
		t.Errorf("Len() = %d, %v", n, ok)
	}
}

func TestListAdapter(t *testing.T) {
	backing := []Value{Int(1), Int(2), Int(3)}
	l := Slice(backing...)

	if l.Len() != 3 || !Equal(l.At(-1), Int(3)) || !IsEmpty(l.At(3)) {
		t.Errorf("List view misreports: len=%d last=%v", l.Len(), l.At(-1))
	}

	// views share storage with their source
	backing[0] = Int(9)
	if !Equal(l.At(0), Int(9)) {
		t.Error("List copied its source")
	}

	var zero List
	if zero.Len() != 0 || !IsEmpty(zero.At(0)) {
		t.Error("zero List is not empty")
	}

	n := 0
	for range l.Values() {
		n++

		break
	}

	if n != 1 {
		t.Error("Values did not stop on break")
	}
}

func TestDict(t *testing.T) {
	d := NewDict()
	d.Set("z", Int(1))
	d.Set("a", Int(2))
	d.Set("m", Int(3))
	d.Set("z", Int(4))
	d.Delete("a")
	d.Delete("missing")

	var keys []string
	for k := range d.Map().Keys() {
		keys = append(keys, k)
	}

	if len(keys) != 2 || keys[0] != "z" || keys[1] != "m" {
		t.Errorf("keys = %v, want [z m]", keys)
	}

	if v, ok := d.Map().Get("z"); !ok || !Equal(v, Int(4)) {
		t.Errorf("Get(z) = %v, %v", v, ok)
	}

	if v, ok := d.Map().Get("a"); ok || !IsEmpty(v) {
		t.Errorf("Get(a) after delete = %v, %v", v, ok)
	}

	if d.Version() != 5 {
		t.Errorf("Version() = %d, want 5", d.Version())
	}
}

func TestCallable(t *testing.T) {
	sum := NewCallable("sum", func(args Args) (Value, error) {
		var n Int
		for _, a := range args.Positional {
			n += a.(Int)
		}

		if v, ok := args.Kwarg("extra"); ok {
			n += v.(Int)
		}

		return n, nil
	})

	got, err := sum.Call(Args{
		Positional: []Value{Int(1), Int(2)},
		Keyword:    []KeyValuePair{{Key: "extra", Value: Int(10)}},
	})
	if err != nil || !Equal(got, Int(13)) {
		t.Errorf("Call() = %v, %v", got, err)
	}

	if sum.Name() != "sum" {
		t.Errorf("Name() = %q", sum.Name())
	}

	if _, err := (Callable{}).Call(Args{}); !errors.Is(err, ErrNilCallable) {
		t.Errorf("zero Callable error = %v", err)
	}

	args := Args{Positional: []Value{Int(1)}, Keyword: []KeyValuePair{{Key: "b", Value: Int(2)}}}
	if v, ok := args.Arg(1, "b"); !ok || !Equal(v, Int(2)) {
		t.Errorf("Arg(1, b) = %v, %v", v, ok)
	}
}

func TestNative(t *testing.T) {
	var doc yaml.MapSlice
	if err := yaml.UnmarshalWithOptions([]byte("b: 1\na: [x, 2.5, true]\nc: ~\n"), &doc, yaml.UseOrderedMap()); err != nil {
		t.Fatal(err)
	}

	v := FromNative(doc)
	if got, want := Repr(v), "{'b': 1, 'a': ['x', 2.5, true], 'c': none}"; got != want {
		t.Errorf("FromNative(yaml) = %s, want %s", got, want)
	}

	tests := []struct {
		in   any
		want string
	}{
		{map[string]any{"y": 1, "x": "s"}, "{'x': 's', 'y': 1}"},
		{[]string{"a", "b"}, "['a', 'b']"},
		{map[int]bool{2: true, 1: false}, "{'1': false, '2': true}"},
		{uint64(math.MaxUint64), "1.8446744e+19"},
		{(*int)(nil), "none"},
		{struct{}{}, "'{}'"},
	}

	for _, tt := range tests {
		if got := Repr(FromNative(tt.in)); got != tt.want {
			t.Errorf("FromNative(%#v) = %s, want %s", tt.in, got, tt.want)
		}
	}

	back := ToNative(v).(map[string]any)
	if back["b"] != 1 || back["c"] != nil || len(back["a"].([]any)) != 3 {
		t.Errorf("ToNative() = %#v", back)
	}

	double := NewCallable("double", func(args Args) (Value, error) {
		return args.Positional[0].(Int) * 2, nil
	})

	fn := ToNative(double).(func(...any) (any, error))
	if out, err := fn(21); err != nil || out != 42 {
		t.Errorf("native callable = %v, %v", out, err)
	}
}
