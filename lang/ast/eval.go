package ast

import (
	"fmt"
	"log/slog"

	"github.com/ardnew/jexpr/pkg"
	"github.com/ardnew/jexpr/render"
	"github.com/ardnew/jexpr/value"
)

func (n *Literal) Eval(*render.Context) (value.Value, error) {
	if n.Value == nil {
		return value.Empty{}, nil
	}

	return n.Value, nil
}

func (n *Name) Eval(ctx *render.Context) (value.Value, error) {
	return ctx.Resolve(n.Ident)
}

func (n *Unary) Eval(ctx *render.Context) (value.Value, error) {
	x, err := n.X.Eval(ctx)
	if err != nil {
		return nil, err
	}

	return unary(ctx, n.Op, x)
}

func (n *Binary) Eval(ctx *render.Context) (value.Value, error) {
	x, err := n.X.Eval(ctx)
	if err != nil {
		return nil, err
	}

	y, err := n.Y.Eval(ctx)
	if err != nil {
		return nil, err
	}

	return binary(ctx, n.Op, x, y)
}

func (n *Logical) Eval(ctx *render.Context) (value.Value, error) {
	x, err := n.X.Eval(ctx)
	if err != nil {
		return nil, err
	}

	lhs := value.Truthy(x)

	switch {
	case n.Op == OpAnd && !lhs:
		return value.Bool(false), nil
	case n.Op == OpOr && lhs:
		return value.Bool(true), nil
	}

	y, err := n.Y.Eval(ctx)
	if err != nil {
		return nil, err
	}

	return value.Bool(value.Truthy(y)), nil
}

// Eval evaluates each operand at most once and stops at the first false
// comparison.
func (n *Compare) Eval(ctx *render.Context) (value.Value, error) {
	x, err := n.Operands[0].Eval(ctx)
	if err != nil {
		return nil, err
	}

	for i, op := range n.Ops {
		y, err := n.Operands[i+1].Eval(ctx)
		if err != nil {
			return nil, err
		}

		ok, err := compare(ctx, op, x, y)
		if err != nil {
			return nil, err
		}

		if !ok {
			return value.Bool(false), nil
		}

		x = y
	}

	return value.Bool(true), nil
}

func (n *Call) Eval(ctx *render.Context) (value.Value, error) {
	callee, err := n.Callee.Eval(ctx)
	if err != nil {
		return nil, err
	}

	fn, ok := callee.(value.Callable)
	if !ok {
		return nil, ctx.Error(pkg.NotCallable, value.String(n.Callee.String()))
	}

	args, err := n.Args.Eval(ctx)
	if err != nil {
		return nil, err
	}

	ctx.Logger().TraceContext(ctx.Context(), "call",
		slog.String("name", fn.Name()),
		slog.Int("args", len(args.Positional)+len(args.Keyword)))

	v, err := fn.Call(args)
	if err != nil {
		return nil, ctx.Report(err)
	}

	return v, nil
}

func (n *Subscript) Eval(ctx *render.Context) (value.Value, error) {
	x, err := n.X.Eval(ctx)
	if err != nil {
		return nil, err
	}

	idx, err := n.Index.Eval(ctx)
	if err != nil {
		return nil, err
	}

	return subscript(x, idx), nil
}

func (n *List) Eval(ctx *render.Context) (value.Value, error) {
	return evalItems(ctx, n.Items)
}

func (n *Tuple) Eval(ctx *render.Context) (value.Value, error) {
	return evalItems(ctx, n.Items)
}

func evalItems(ctx *render.Context, items []Expr) (value.Value, error) {
	out := make([]value.Value, len(items))

	for i, e := range items {
		v, err := e.Eval(ctx)
		if err != nil {
			return nil, err
		}

		out[i] = v
	}

	return value.NewArray(out...).List(), nil
}

// Eval evaluates keys and values in source order. Non-string keys are
// converted with value.Text; a repeated key keeps its first position and
// its last value.
func (n *Dict) Eval(ctx *render.Context) (value.Value, error) {
	d := value.NewDict()

	for i, ke := range n.Keys {
		k, err := ke.Eval(ctx)
		if err != nil {
			return nil, err
		}

		v, err := n.Values[i].Eval(ctx)
		if err != nil {
			return nil, err
		}

		d.Set(value.Text(k), v)
	}

	return d.Map(), nil
}

func (n *Conditional) Eval(ctx *render.Context) (value.Value, error) {
	c, err := n.Cond.Eval(ctx)
	if err != nil {
		return nil, err
	}

	if value.Truthy(c) {
		return n.Then.Eval(ctx)
	}

	return n.Else.Eval(ctx)
}

func (n *Pipe) Eval(ctx *render.Context) (value.Value, error) {
	x, err := n.X.Eval(ctx)
	if err != nil {
		return nil, err
	}

	v, err := n.Filter.Apply(x, ctx)
	if err != nil {
		return nil, ctx.Report(err)
	}

	return v, nil
}

// Eval evaluates e against ctx. A nil ctx evaluates against an empty
// render.Context. A panic raised by a host callable or adapter is
// recovered and reported through ctx as InvalidOperation.
func Eval(e Expr, ctx *render.Context) (v value.Value, err error) {
	if ctx == nil {
		ctx = render.New()
	}

	defer func() {
		if r := recover(); r != nil {
			ctx.Logger().ErrorContext(ctx.Context(), "recovered from panic",
				slog.Any("panic", r),
				slog.String("expr", e.String()))

			v, err = value.Empty{}, ctx.Error(pkg.InvalidOperation, value.String(fmt.Sprint(r)))
		}
	}()

	v, err = e.Eval(ctx)
	if err != nil {
		return value.Empty{}, err
	}

	if v == nil {
		v = value.Empty{}
	}

	return v, nil
}
