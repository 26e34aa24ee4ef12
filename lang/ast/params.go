package ast

import (
	"github.com/ardnew/jexpr/render"
	"github.com/ardnew/jexpr/value"
)

// Arg is a positional argument. A starred argument whose value is a list
// is spread into one positional slot per element.
type Arg struct {
	Expr    Expr
	Starred bool
}

// Keyword is a name=expr argument.
type Keyword struct {
	Expr Expr
	Name string
}

// Params are the unevaluated arguments of a call or filter.
type Params struct {
	Positional []Arg
	Keyword    []Keyword
}

// Len returns the number of argument expressions.
func (p Params) Len() int { return len(p.Positional) + len(p.Keyword) }

// Eval evaluates the arguments in source order, positional first. The
// returned Args own their storage.
func (p Params) Eval(ctx *render.Context) (value.Args, error) {
	var args value.Args

	if len(p.Positional) > 0 {
		args.Positional = make([]value.Value, 0, len(p.Positional))
	}

	for _, a := range p.Positional {
		v, err := a.Expr.Eval(ctx)
		if err != nil {
			return value.Args{}, err
		}

		if l, ok := value.ToList(v); a.Starred && ok {
			for e := range l.Values() {
				args.Positional = append(args.Positional, e)
			}

			continue
		}

		args.Positional = append(args.Positional, v)
	}

	if len(p.Keyword) > 0 {
		args.Keyword = make([]value.KeyValuePair, 0, len(p.Keyword))
	}

	for _, k := range p.Keyword {
		v, err := k.Expr.Eval(ctx)
		if err != nil {
			return value.Args{}, err
		}

		args.Keyword = append(args.Keyword, value.KeyValuePair{Key: k.Name, Value: v})
	}

	return args, nil
}

func (p Params) strings() []string {
	out := make([]string, 0, p.Len())

	for _, a := range p.Positional {
		if a.Starred {
			out = append(out, "*"+a.Expr.String())
		} else {
			out = append(out, a.Expr.String())
		}
	}

	for _, k := range p.Keyword {
		out = append(out, k.Name+"="+k.Expr.String())
	}

	return out
}

func (p Params) exprs() []Expr {
	out := make([]Expr, 0, p.Len())

	for _, a := range p.Positional {
		out = append(out, a.Expr)
	}

	for _, k := range p.Keyword {
		out = append(out, k.Expr)
	}

	return out
}
