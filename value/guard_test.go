//go:build !jexpr_debug

package value

import "testing"

// Mutating an Array or Dict while a view of it is alive is outside the
// contract of List and Map. Production builds do not detect it: the view
// observes whatever state the collection is in. This test pins that the
// behavior is undefined rather than guarded, and that the debug build
// (-tags jexpr_debug) is where detection lives.
func TestStaleViewUndefined(t *testing.T) {
	if DebugViews {
		t.Fatal("guard compiled in without the jexpr_debug tag")
	}

	arr := NewArray(Int(1), Int(2))
	l := arr.List()
	arr.Reset()

	if l.Len() != 0 {
		t.Logf("stale view reported %d elements", l.Len())
	}
}
