package ast

import (
	"math"
	"math/bits"
	"strings"

	"github.com/ardnew/jexpr/pkg"
	"github.com/ardnew/jexpr/render"
	"github.com/ardnew/jexpr/value"
)

func unary(ctx *render.Context, op Op, x value.Value) (value.Value, error) {
	switch op {
	case OpNot:
		return value.Bool(!value.Truthy(x)), nil
	case OpNeg:
		switch v := x.(type) {
		case value.Int:
			if v == math.MinInt64 {
				return -value.Double(v), nil
			}

			return -v, nil
		case value.Double:
			return -v, nil
		}
	case OpPos:
		switch x.(type) {
		case value.Int, value.Double:
			return x, nil
		}
	}

	return nil, ctx.Error(pkg.InvalidValueType, value.String(op.String()), x)
}

func binary(ctx *render.Context, op Op, x, y value.Value) (value.Value, error) {
	switch op {
	case OpConcat:
		return value.String(value.Text(x) + value.Text(y)), nil
	case OpAdd:
		if v, ok := join(x, y); ok {
			return v, nil
		}
	case OpMul:
		if v, ok, err := repeat(ctx, x, y); ok || err != nil {
			return v, err
		}
	case OpShl, OpShr, OpBitOr, OpBitXor, OpBitAnd:
		return bitwise(ctx, op, x, y)
	}

	xi, xInt := x.(value.Int)
	yi, yInt := y.(value.Int)

	if xInt && yInt {
		return intArith(ctx, op, int64(xi), int64(yi))
	}

	xf, xok := number(x)
	yf, yok := number(y)

	if !xok || !yok {
		return nil, ctx.Error(pkg.InvalidValueType, value.String(op.String()), x, y)
	}

	return floatArith(ctx, op, xf, yf)
}

// number accepts only Int and Double; booleans are not numbers here.
func number(v value.Value) (float64, bool) {
	switch x := v.(type) {
	case value.Int:
		return float64(x), true
	case value.Double:
		return float64(x), true
	default:
		return 0, false
	}
}

func join(x, y value.Value) (value.Value, bool) {
	if xs, ok := value.AsString(x); ok {
		if ys, ok := value.AsString(y); ok {
			return value.String(xs + ys), true
		}
	}

	xl, xok := x.(value.List)
	yl, yok := y.(value.List)

	if !xok || !yok {
		return nil, false
	}

	out := make([]value.Value, 0, xl.Len()+yl.Len())
	for e := range xl.Values() {
		out = append(out, e)
	}

	for e := range yl.Values() {
		out = append(out, e)
	}

	return value.NewArray(out...).List(), true
}

// maxRepeat bounds the length of a string or list built by repetition.
// Strings count bytes and lists count elements.
const maxRepeat = 1 << 24

func repeat(ctx *render.Context, x, y value.Value) (value.Value, bool, error) {
	if _, ok := x.(value.Int); ok {
		x, y = y, x
	}

	n, ok := y.(value.Int)
	if !ok {
		return nil, false, nil
	}

	count := int64(max(n, 0))

	if s, ok := value.AsString(x); ok {
		if count == 0 || s == "" {
			return value.String(""), true, nil
		}

		if int64(len(s)) > maxRepeat/count {
			return nil, false, repeatLimit(ctx, x, n)
		}

		return value.String(strings.Repeat(s, int(count))), true, nil
	}

	l, ok := x.(value.List)
	if !ok {
		return nil, false, nil
	}

	if count == 0 || l.Len() == 0 {
		return value.NewArray().List(), true, nil
	}

	if int64(l.Len()) > maxRepeat/count {
		return nil, false, repeatLimit(ctx, x, n)
	}

	out := make([]value.Value, 0, l.Len()*int(count))
	for range count {
		for e := range l.Values() {
			out = append(out, e)
		}
	}

	return value.NewArray(out...).List(), true, nil
}

func repeatLimit(ctx *render.Context, x value.Value, n value.Int) error {
	return ctx.Error(pkg.InvalidOperation, value.String("repetition too large"), x, n)
}

func divByZero(ctx *render.Context, op Op, x value.Value) error {
	return ctx.Error(pkg.InvalidOperation, value.String("division by zero"), value.String(op.String()), x)
}

func intArith(ctx *render.Context, op Op, x, y int64) (value.Value, error) {
	switch op {
	case OpAdd:
		if r, ok := addInt(x, y); ok {
			return value.Int(r), nil
		}

		return value.Double(float64(x) + float64(y)), nil
	case OpSub:
		if r, ok := subInt(x, y); ok {
			return value.Int(r), nil
		}

		return value.Double(float64(x) - float64(y)), nil
	case OpMul:
		if r, ok := mulInt(x, y); ok {
			return value.Int(r), nil
		}

		return value.Double(float64(x) * float64(y)), nil
	case OpDiv:
		if y == 0 {
			return nil, divByZero(ctx, op, value.Int(x))
		}

		return value.Double(float64(x) / float64(y)), nil
	case OpFloorDiv:
		if y == 0 {
			return nil, divByZero(ctx, op, value.Int(x))
		}

		if x == math.MinInt64 && y == -1 {
			return value.Double(-float64(x)), nil
		}

		q := x / y
		if x%y != 0 && (x < 0) != (y < 0) {
			q--
		}

		return value.Int(q), nil
	case OpMod:
		if y == 0 {
			return nil, divByZero(ctx, op, value.Int(x))
		}

		r := x % y
		if r != 0 && (r < 0) != (y < 0) {
			r += y
		}

		return value.Int(r), nil
	case OpPow:
		if y < 0 {
			return value.Double(math.Pow(float64(x), float64(y))), nil
		}

		if r, ok := ipow(x, y); ok {
			return value.Int(r), nil
		}

		return value.Double(math.Pow(float64(x), float64(y))), nil
	}

	return nil, ctx.Error(pkg.InvalidOperation, value.String(op.String()))
}

// ipow reports false if base**exp does not fit in an int64.
func ipow(base, exp int64) (int64, bool) {
	result := int64(1)

	for {
		if exp&1 == 1 {
			r, ok := mulInt(result, base)
			if !ok {
				return 0, false
			}

			result = r
		}

		exp >>= 1
		if exp == 0 {
			return result, true
		}

		b, ok := mulInt(base, base)
		if !ok {
			return 0, false
		}

		base = b
	}
}

// addInt, subInt and mulInt report false when the result overflows; the
// caller then falls back to Double arithmetic.
func addInt(x, y int64) (int64, bool) {
	r := x + y

	return r, (r > x) == (y > 0)
}

func subInt(x, y int64) (int64, bool) {
	r := x - y

	return r, (r < x) == (y > 0)
}

func mulInt(x, y int64) (int64, bool) {
	if x == 0 || y == 0 {
		return 0, true
	}

	hi, lo := bits.Mul64(uint64(abs(x)), uint64(abs(y)))
	neg := (x < 0) != (y < 0)

	if hi != 0 || lo > math.MaxInt64+boolBit(neg) {
		return 0, false
	}

	if neg {
		return int64(-lo), true
	}

	return int64(lo), true
}

// abs maps MinInt64 to itself, which as a uint64 is its true magnitude.
func abs(x int64) int64 {
	if x < 0 {
		return -x
	}

	return x
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}

	return 0
}

func floatArith(ctx *render.Context, op Op, x, y float64) (value.Value, error) {
	switch op {
	case OpAdd:
		return value.Double(x + y), nil
	case OpSub:
		return value.Double(x - y), nil
	case OpMul:
		return value.Double(x * y), nil
	case OpDiv:
		if y == 0 {
			return nil, divByZero(ctx, op, value.Double(x))
		}

		return value.Double(x / y), nil
	case OpFloorDiv:
		if y == 0 {
			return nil, divByZero(ctx, op, value.Double(x))
		}

		return value.Double(math.Floor(x / y)), nil
	case OpMod:
		if y == 0 {
			return nil, divByZero(ctx, op, value.Double(x))
		}

		r := math.Mod(x, y)
		if r != 0 && (r < 0) != (y < 0) {
			r += y
		}

		return value.Double(r), nil
	case OpPow:
		return value.Double(math.Pow(x, y)), nil
	}

	return nil, ctx.Error(pkg.InvalidOperation, value.String(op.String()))
}

func bitwise(ctx *render.Context, op Op, x, y value.Value) (value.Value, error) {
	xi, xok := x.(value.Int)
	yi, yok := y.(value.Int)

	if !xok || !yok {
		return nil, ctx.Error(pkg.InvalidValueType, value.String(op.String()), x, y)
	}

	switch op {
	case OpShl, OpShr:
		if yi < 0 {
			return nil, ctx.Error(pkg.InvalidOperation, value.String("negative shift count"), y)
		}

		if op == OpShl {
			return xi << uint64(yi), nil
		}

		return xi >> uint64(yi), nil
	case OpBitOr:
		return xi | yi, nil
	case OpBitXor:
		return xi ^ yi, nil
	default:
		return xi & yi, nil
	}
}

func compare(ctx *render.Context, op Op, x, y value.Value) (bool, error) {
	switch op {
	case OpEq:
		return value.Equal(x, y), nil
	case OpNe:
		return !value.Equal(x, y), nil
	case OpIn, OpNotIn:
		found, err := contains(ctx, y, x)
		if err != nil {
			return false, err
		}

		return found == (op == OpIn), nil
	}

	c, ok := value.Compare(x, y)
	if !ok {
		return false, ctx.Error(pkg.InvalidValueType, value.String(op.String()), x, y)
	}

	switch op {
	case OpLt:
		return c < 0, nil
	case OpLe:
		return c <= 0, nil
	case OpGt:
		return c > 0, nil
	default:
		return c >= 0, nil
	}
}

func contains(ctx *render.Context, container, item value.Value) (bool, error) {
	switch c := container.(type) {
	case value.List:
		for e := range c.Values() {
			if value.Equal(e, item) {
				return true, nil
			}
		}

		return false, nil

	case value.Map:
		if k, ok := value.AsString(item); ok {
			_, found := c.Get(k)

			return found, nil
		}

	case value.String, value.WideString:
		if s, ok := value.AsString(item); ok {
			hay, _ := value.AsString(c)

			return strings.Contains(hay, s), nil
		}
	}

	return false, ctx.Error(pkg.InvalidValueType, value.String("in"), item, container)
}

// subscript never fails: missing keys, bad index types and out-of-range
// indexes yield Empty.
func subscript(x, idx value.Value) value.Value {
	switch c := x.(type) {
	case value.List:
		if i, ok := idx.(value.Int); ok {
			return c.At(int(i))
		}

	case value.Map:
		v, _ := c.Get(value.Text(idx))

		return v

	case value.String, value.WideString:
		i, ok := idx.(value.Int)
		if !ok {
			break
		}

		s, _ := value.AsString(c)
		runes := []rune(s)

		n := int(i)
		if n < 0 {
			n += len(runes)
		}

		if n >= 0 && n < len(runes) {
			return value.String(runes[n])
		}

	case value.KeyValuePair:
		switch value.Text(idx) {
		case "key":
			return value.String(c.Key)
		case "value":
			if c.Value == nil {
				return value.Empty{}
			}

			return c.Value
		}
	}

	return value.Empty{}
}
