package value

import "errors"

// ErrNilCallable is returned when calling the zero Callable.
var ErrNilCallable = errors.New("value: call of nil callable")

// Func is the body of a Callable.
type Func func(args Args) (Value, error)

// Callable is an opaque invocable value. Callables may be invoked from
// concurrent evaluations, so fn must be reentrant.
type Callable struct {
	fn   Func
	name string
}

// NewCallable returns a Callable named name that runs fn.
func NewCallable(name string, fn Func) Callable {
	return Callable{fn: fn, name: name}
}

// Name returns the name the callable was registered with.
func (c Callable) Name() string { return c.name }

// Call invokes the callable.
func (c Callable) Call(args Args) (Value, error) {
	if c.fn == nil {
		return Empty{}, ErrNilCallable
	}

	v, err := c.fn(args)
	if v == nil {
		v = Empty{}
	}

	return v, err
}

// Args are the evaluated arguments of a call: positional values in order
// (starred arguments already spread) and keyword values in source order.
type Args struct {
	Positional []Value
	Keyword    []KeyValuePair
}

// Kwarg returns the keyword argument called name.
func (a Args) Kwarg(name string) (Value, bool) {
	for _, kv := range a.Keyword {
		if kv.Key == name {
			return kv.Value, true
		}
	}

	return Empty{}, false
}

// Arg returns positional argument i, or the keyword argument called name
// when fewer than i+1 positional arguments were given.
func (a Args) Arg(i int, name string) (Value, bool) {
	if i < len(a.Positional) {
		return a.Positional[i], true
	}

	return a.Kwarg(name)
}
