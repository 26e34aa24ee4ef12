//go:build jexpr_debug

package value

import "testing"

// Reading a view after its backing collection changed is undefined
// behavior in production builds. Debug builds detect it.
func TestStaleViewDetected(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Array, *Dict)
		read   func(List, Map)
	}{
		{"array append", func(a *Array, _ *Dict) { a.Append(Int(4)) }, func(l List, _ Map) { l.Len() }},
		{"array reset", func(a *Array, _ *Dict) { a.Reset() }, func(l List, _ Map) { l.At(0) }},
		{"dict set", func(_ *Array, d *Dict) { d.Set("k", Int(2)) }, func(_ List, m Map) { m.Get("k") }},
		{"dict delete", func(_ *Array, d *Dict) { d.Delete("k") }, func(_ List, m Map) {
			for range m.Keys() {
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arr := NewArray(Int(1), Int(2), Int(3))
			dict := NewDict()
			dict.Set("k", Int(1))

			l, m := arr.List(), dict.Map()
			tt.mutate(arr, dict)

			defer func() {
				if r := recover(); r != ErrStaleView {
					t.Errorf("recover() = %v, want ErrStaleView", r)
				}
			}()

			tt.read(l, m)
		})
	}
}

func TestFreshViewAfterMutation(t *testing.T) {
	arr := NewArray(Int(1))
	arr.Append(Int(2))

	if n := arr.List().Len(); n != 2 {
		t.Errorf("fresh view Len() = %d", n)
	}
}
