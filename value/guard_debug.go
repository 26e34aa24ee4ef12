//go:build jexpr_debug

package value

// DebugViews reports whether stale-view detection is compiled in.
const DebugViews = true

type versioned interface {
	Version() uint64
}

// guard records the version of a versioned collection when a view is
// created and panics if a later read observes a different one.
type guard struct {
	src versioned
	at  uint64
}

func guardOf(src any) guard {
	if v, ok := src.(versioned); ok {
		return guard{src: v, at: v.Version()}
	}

	return guard{}
}

func (g guard) check() {
	if g.src != nil && g.src.Version() != g.at {
		panic(ErrStaleView)
	}
}
