package filter

import (
	"maps"
	"slices"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/jexpr/lang/ast"
	"github.com/ardnew/jexpr/pkg"
)

// Factory builds a filter from its unevaluated arguments. The arguments
// have already been checked against the Arity it was registered with.
type Factory func(params ast.Params) (ast.Filter, error)

// Arity describes the arguments a filter accepts.
type Arity struct {
	// Names are the parameter names in positional order. A keyword
	// argument must name one of them.
	Names []string
	// Required is the number of leading Names that must be bound.
	Required int
	// Variadic accepts any positional and keyword arguments.
	Variadic bool
}

// Check reports InvalidFilterArguments when params do not fit a.
func (a Arity) Check(name string, params ast.Params) error {
	if a.Variadic {
		return nil
	}

	if len(params.Positional) > len(a.Names) {
		return arityError(name, "too many positional arguments")
	}

	bound := make([]bool, len(a.Names))
	for i, arg := range params.Positional {
		if arg.Starred {
			return arityError(name, "starred argument")
		}

		bound[i] = true
	}

	for _, kw := range params.Keyword {
		i := slices.Index(a.Names, kw.Name)

		switch {
		case i < 0:
			return arityError(name, "unexpected keyword "+kw.Name)
		case bound[i]:
			return arityError(name, "duplicate argument "+kw.Name)
		}

		bound[i] = true
	}

	for i := range a.Required {
		if !bound[i] {
			return arityError(name, "missing argument "+a.Names[i])
		}
	}

	return nil
}

func arityError(name, reason string) error {
	return pkg.MakeError(pkg.InvalidFilterArguments).Wrapf("%s: %s", name, reason)
}

type entry struct {
	factory Factory
	arity   Arity
}

// Registry maps filter names to factories. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: map[string]entry{}}
}

//nolint:gochecknoglobals
var builtin = sync.OnceValue(func() *Registry {
	r := NewRegistry()
	r.Register("pprint", Arity{}, func(ast.Params) (ast.Filter, error) {
		return PrettyPrint{}, nil
	})
	r.Register("tojson", Arity{Names: []string{"indent"}}, func(p ast.Params) (ast.Filter, error) {
		return NewSerialize(p, JSON), nil
	})
	r.Register("format", Arity{Variadic: true}, func(p ast.Params) (ast.Filter, error) {
		return NewStringFormat(p, CStyle), nil
	})
	r.Register("fmt", Arity{Variadic: true}, func(p ast.Params) (ast.Filter, error) {
		return NewStringFormat(p, Native), nil
	})
	r.Register("xmlattr", Arity{}, func(ast.Params) (ast.Filter, error) {
		return XMLAttr{}, nil
	})

	return r
})

// Default returns the shared registry of builtin filters. Use Clone
// before registering additional filters.
func Default() *Registry { return builtin() }

// Clone returns an independent copy of r.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return &Registry{entries: maps.Clone(r.entries)}
}

// Register binds name to f, replacing any previous binding.
func (r *Registry) Register(name string, arity Arity, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[name] = entry{factory: f, arity: arity}
}

// Names returns the registered filter names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.entries))
}

// New constructs the filter called name. It fails with UnknownFilter or
// InvalidFilterArguments.
func (r *Registry) New(name string, params ast.Params) (ast.Filter, error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		if alt := r.suggest(name); alt != "" {
			return nil, pkg.MakeError(pkg.UnknownFilter).Wrapf("%q (did you mean %q?)", name, alt)
		}

		return nil, pkg.MakeError(pkg.UnknownFilter).Wrapf("%q", name)
	}

	if err := e.arity.Check(name, params); err != nil {
		return nil, err
	}

	return e.factory(params)
}

// suggest returns the registered name that best matches name, or "" if
// none does.
func (r *Registry) suggest(name string) string {
	matches := fuzzy.Find(name, r.Names())
	if len(matches) == 0 {
		return ""
	}

	return matches[0].Str
}

// bind returns the expression bound to each of names, from positional
// arguments first and keywords second. Unbound names map to nil.
func bind(params ast.Params, names ...string) []ast.Expr {
	out := make([]ast.Expr, len(names))

	for i, arg := range params.Positional {
		if i < len(out) {
			out[i] = arg.Expr
		}
	}

	for _, kw := range params.Keyword {
		if i := slices.Index(names, kw.Name); i >= 0 {
			out[i] = kw.Expr
		}
	}

	return out
}
