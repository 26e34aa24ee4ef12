package render

import (
	"fmt"
	"sync"

	"github.com/ardnew/jexpr/pkg"
	"github.com/ardnew/jexpr/value"
)

//nolint:gochecknoglobals
var (
	builtinOnce sync.Once
	builtinDict *value.Dict
)

// builtins returns a view of the functions every Context starts with.
// The dict is built once and never modified afterwards, so views of it
// stay valid for the life of the process.
func builtins() value.Map {
	builtinOnce.Do(func() {
		builtinDict = value.NewDict()
		for _, fn := range []value.Callable{
			value.NewCallable("range", rangeFunc),
			value.NewCallable("dict", dictFunc),
			value.NewCallable("len", lenFunc),
		} {
			builtinDict.Set(fn.Name(), fn)
		}
	})

	return builtinDict.Map()
}

// Builtins returns the names of the builtin functions.
func Builtins() []string {
	var names []string
	for k := range builtins().Keys() {
		names = append(names, k)
	}

	return names
}

// rangeFunc implements range(stop) and range(start, stop[, step]) as a
// lazy sequence; no elements are materialized.
func rangeFunc(args value.Args) (value.Value, error) {
	if len(args.Keyword) > 0 {
		return nil, fmt.Errorf("range: %w: keyword arguments", pkg.InvalidArgument)
	}

	bounds := make([]int64, len(args.Positional))
	for i, a := range args.Positional {
		n, ok := value.ToInt(a)
		if !ok {
			return nil, fmt.Errorf("range: %w: %s", pkg.InvalidValueType, value.Repr(a))
		}

		bounds[i] = n
	}

	var start, stop, step int64 = 0, 0, 1

	switch len(bounds) {
	case 1:
		stop = bounds[0]
	case 2:
		start, stop = bounds[0], bounds[1]
	case 3:
		start, stop, step = bounds[0], bounds[1], bounds[2]
	case 0:
		return nil, fmt.Errorf("range: %w: missing stop", pkg.InvalidArgument)
	default:
		return nil, fmt.Errorf("range: %w", pkg.TooManyArguments)
	}

	if step == 0 {
		return nil, fmt.Errorf("range: %w: step must not be zero", pkg.InvalidArgument)
	}

	return value.ListOf(rangeSeq{start: start, step: step, n: rangeLen(start, stop, step)}), nil
}

func rangeLen(start, stop, step int64) int {
	switch {
	case step > 0 && start < stop:
		return int((stop - start + step - 1) / step)
	case step < 0 && start > stop:
		return int((start - stop - step - 1) / -step)
	default:
		return 0
	}
}

type rangeSeq struct {
	start, step int64
	n           int
}

func (r rangeSeq) Len() int { return r.n }

func (r rangeSeq) At(i int) value.Value {
	return value.Int(r.start + int64(i)*r.step)
}

// dictFunc builds a dict from keyword arguments in call order.
func dictFunc(args value.Args) (value.Value, error) {
	if len(args.Positional) > 0 {
		return nil, fmt.Errorf("dict: %w: positional arguments", pkg.InvalidArgument)
	}

	d := value.NewDict()
	for _, kv := range args.Keyword {
		d.Set(kv.Key, kv.Value)
	}

	return d.Map(), nil
}

func lenFunc(args value.Args) (value.Value, error) {
	if len(args.Positional) != 1 || len(args.Keyword) > 0 {
		return nil, fmt.Errorf("len: %w: expected one argument", pkg.InvalidArgument)
	}

	n, ok := value.Len(args.Positional[0])
	if !ok {
		return nil, fmt.Errorf("len: %w: %s", pkg.InvalidValueType, value.Repr(args.Positional[0]))
	}

	return value.Int(n), nil
}
