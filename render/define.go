package render

import (
	"fmt"
	"slices"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/jexpr/pkg"
	"github.com/ardnew/jexpr/value"
)

// Define compiles body as an expr-lang program and returns a Callable
// that runs it. Arguments bind to params by position or by keyword;
// missing parameters are nil inside the body. The program is compiled
// once and is safe to run concurrently.
//
//	add, _ := render.Define("add", "a + b", "a", "b")
func Define(name, body string, params ...string) (value.Callable, error) {
	program, err := expr.Compile(body, expr.AllowUndefinedVariables())
	if err != nil {
		return value.Callable{}, pkg.ErrDefinition.Wrapf("%s: %w", name, err)
	}

	return value.NewCallable(name, func(args value.Args) (value.Value, error) {
		env, err := bind(name, params, args)
		if err != nil {
			return nil, err
		}

		return run(name, program, env)
	}), nil
}

func bind(name string, params []string, args value.Args) (map[string]any, error) {
	if len(args.Positional) > len(params) {
		return nil, fmt.Errorf("%s: %w: takes %d, got %d",
			name, pkg.TooManyArguments, len(params), len(args.Positional))
	}

	for _, kv := range args.Keyword {
		if !slices.Contains(params, kv.Key) {
			return nil, fmt.Errorf("%s: %w: unexpected keyword %q", name, pkg.InvalidArgument, kv.Key)
		}
	}

	env := make(map[string]any, len(params))

	for i, p := range params {
		v, _ := args.Arg(i, p)
		env[p] = value.ToNative(v)
	}

	return env, nil
}

func run(name string, program *vm.Program, env map[string]any) (value.Value, error) {
	out, err := expr.Run(program, env)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", name, pkg.InvalidOperation, err)
	}

	return value.FromNative(out), nil
}
