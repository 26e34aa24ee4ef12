package render

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ardnew/jexpr/log"
	"github.com/ardnew/jexpr/pkg"
	"github.com/ardnew/jexpr/value"
)

// Context holds the state of one evaluation.
type Context struct {
	ctx    context.Context
	sink   Callback
	logger log.Logger
	scopes []value.Map
	strict bool
}

// Option configures a Context.
type Option func(*Context)

// New returns a Context with the builtin functions in its outermost scope.
// Without [WithLogger] the package-level [log.Default] logger is used.
func New(opts ...Option) *Context {
	c := &Context{
		ctx:    context.Background(),
		logger: log.Default(),
		scopes: []value.Map{builtins()},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithContext sets the context.Context passed to loggers and callables.
func WithContext(ctx context.Context) Option {
	return func(c *Context) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// WithBindings adds a scope. Later scopes shadow earlier ones.
func WithBindings(m value.Map) Option {
	return func(c *Context) { c.scopes = append(c.scopes, m) }
}

// WithValues adds a scope converted from plain Go values.
func WithValues(m map[string]any) Option {
	return func(c *Context) {
		if v, ok := value.FromNative(m).(value.Map); ok {
			c.scopes = append(c.scopes, v)
		}
	}
}

// WithFuncs binds each callable under its name in a new scope.
func WithFuncs(fns ...value.Callable) Option {
	return func(c *Context) {
		d := value.NewDict()
		for _, fn := range fns {
			d.Set(fn.Name(), fn)
		}

		c.scopes = append(c.scopes, d.Map())
	}
}

// WithCallback sets the sink notified of every runtime error.
func WithCallback(cb Callback) Option {
	return func(c *Context) { c.sink = cb }
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option {
	return func(c *Context) { c.logger = l }
}

// WithStrictUndefined makes references to unbound names fail with
// UndefinedValue instead of evaluating to Empty.
func WithStrictUndefined(strict bool) Option {
	return func(c *Context) { c.strict = strict }
}

// Context returns the context.Context of the evaluation.
func (c *Context) Context() context.Context { return c.ctx }

// Logger returns the evaluation logger.
func (c *Context) Logger() log.Logger { return c.logger }

// Strict reports whether unbound names are errors.
func (c *Context) Strict() bool { return c.strict }

// Push returns a child Context with m as its innermost scope. The child
// shares the sink and logger of c.
func (c *Context) Push(m value.Map) *Context {
	child := *c
	child.scopes = append(c.scopes[:len(c.scopes):len(c.scopes)], m)

	return &child
}

// Lookup returns the innermost binding of name.
func (c *Context) Lookup(name string) (value.Value, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if v, ok := c.scopes[i].Get(name); ok {
			return v, true
		}
	}

	return value.Empty{}, false
}

// Resolve looks up name, reporting UndefinedValue in strict mode.
func (c *Context) Resolve(name string) (value.Value, error) {
	v, ok := c.Lookup(name)
	if !ok && c.strict {
		return v, c.Error(pkg.UndefinedValue, value.String(name))
	}

	return v, nil
}

// Error reports a runtime error to the sink and returns it.
func (c *Context) Error(code pkg.ErrorCode, details ...value.Value) error {
	err := &RuntimeError{Code: code, Details: details}

	c.logger.DebugContext(c.ctx, "runtime error", slog.Any("error", err))

	if c.sink != nil {
		c.sink.ThrowRuntimeError(code, details)
	}

	return err
}

// Report converts err into a *RuntimeError delivered through the sink.
// Errors that already are runtime errors are returned unchanged, since
// they were reported when created.
func (c *Context) Report(err error) error {
	if err == nil {
		return nil
	}

	var rt *RuntimeError
	if errors.As(err, &rt) {
		return err
	}

	code := CodeOf(err)
	if code == pkg.Unspecified {
		code = pkg.InvalidOperation
	}

	return c.Error(code, value.String(err.Error()))
}
