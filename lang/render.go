package lang

import (
	"context"
	"io"

	"github.com/ardnew/jexpr/lang/ast"
	"github.com/ardnew/jexpr/pkg"
	"github.com/ardnew/jexpr/render"
	"github.com/ardnew/jexpr/value"
)

// ParseReader reads all of r and parses it as one expression. When
// opts include WithCache the tree is taken from, or added to, the cache.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (ast.Expr, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, pkg.ErrReadInput.Wrap(err)
	}

	return parse(ctx, string(data), opts...)
}

// parse consults the configured cache, if any.
func parse(ctx context.Context, src string, opts ...Option) (ast.Expr, error) {
	if c := makeOptions(opts...).cache; c != nil {
		return c.Parse(ctx, src, opts...)
	}

	return ParseString(ctx, src, opts...)
}

// Render parses src and evaluates it in rc. A nil rc evaluates with only
// the builtin callables bound.
//
// Parse failures wrap pkg.ErrParse around a *ParseError; evaluation
// failures wrap pkg.ErrRender around a *render.RuntimeError.
func Render(ctx context.Context, src string, rc *render.Context, opts ...Option) (value.Value, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	e, err := parse(ctx, src, opts...)
	if err != nil {
		return nil, pkg.ErrParse.Wrap(err)
	}

	if rc == nil {
		rc = render.New(render.WithContext(ctx), render.WithLogger(makeOptions(opts...).logger))
	}

	v, err := ast.Eval(e, rc)
	if err != nil {
		return nil, pkg.ErrRender.Wrap(err)
	}

	return v, nil
}
