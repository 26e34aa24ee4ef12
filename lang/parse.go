package lang

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/jexpr/filter"
	"github.com/ardnew/jexpr/lang/ast"
	"github.com/ardnew/jexpr/lang/lexer"
	"github.com/ardnew/jexpr/lang/token"
	"github.com/ardnew/jexpr/log"
	"github.com/ardnew/jexpr/pkg"
	"github.com/ardnew/jexpr/render"
	"github.com/ardnew/jexpr/value"
)

// Parse reads one expression from src. The expression must span the
// whole stream; any token after it is an ExpectedEndOfExpression error.
// Errors are *ParseError values.
func Parse(ctx context.Context, src TokenSource, opts ...Option) (ast.Expr, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	o := makeOptions(opts...)

	p := &parser{
		ctx:      ctx,
		src:      src,
		logger:   o.logger,
		filters:  o.filters,
		maxDepth: o.maxDepth,
	}

	e, err := p.parseExpr()
	if err != nil {
		p.logger.DebugContext(ctx, "parse failed", slog.Any("error", err))

		return nil, err
	}

	if t := src.Peek(); t.Kind != token.EOF {
		return nil, p.fail(t, pkg.ExpectedEndOfExpression, "end of input")
	}

	p.trace("parse complete", slog.String("tree", e.String()))

	return e, nil
}

// ParseString parses the expression s. A returned *ParseError includes s
// so that its message shows the offending line.
func ParseString(ctx context.Context, s string, opts ...Option) (ast.Expr, error) {
	e, err := Parse(ctx, lexer.New(s), opts...)

	var pe *ParseError
	if errors.As(err, &pe) {
		pe.Source = s
	}

	return e, err
}

type parser struct {
	ctx      context.Context
	src      TokenSource
	filters  *filter.Registry
	logger   log.Logger
	depth    int
	maxDepth int
}

//nolint:gochecknoglobals
var (
	orOps     = map[token.Kind]ast.Op{token.Or: ast.OpOr}
	andOps    = map[token.Kind]ast.Op{token.And: ast.OpAnd}
	bitOrOps  = map[token.Kind]ast.Op{token.BitOr: ast.OpBitOr}
	bitXorOps = map[token.Kind]ast.Op{token.BitXor: ast.OpBitXor}
	bitAndOps = map[token.Kind]ast.Op{token.BitAnd: ast.OpBitAnd}
	concatOps = map[token.Kind]ast.Op{token.Tilde: ast.OpConcat}
	addOps    = map[token.Kind]ast.Op{token.Plus: ast.OpAdd, token.Minus: ast.OpSub}
	shiftOps  = map[token.Kind]ast.Op{token.Shl: ast.OpShl, token.Shr: ast.OpShr}
	mulOps    = map[token.Kind]ast.Op{
		token.Star:        ast.OpMul,
		token.Slash:       ast.OpDiv,
		token.DoubleSlash: ast.OpFloorDiv,
		token.Percent:     ast.OpMod,
	}
	compareOps = map[token.Kind]ast.Op{
		token.Eq: ast.OpEq,
		token.Ne: ast.OpNe,
		token.Lt: ast.OpLt,
		token.Le: ast.OpLe,
		token.Gt: ast.OpGt,
		token.Ge: ast.OpGe,
		token.In: ast.OpIn,
	}
)

func (p *parser) trace(msg string, attrs ...slog.Attr) {
	p.logger.TraceContext(p.ctx, msg, attrs...)
}

// fail builds the error for token t. An invalid token reports its own
// lexical fault instead of code.
func (p *parser) fail(t token.Token, code pkg.ErrorCode, expected string) *ParseError {
	if t.Kind == token.Invalid && t.Code != pkg.Unspecified {
		code = t.Code
	}

	return &ParseError{Found: t, Pos: t.Pos, Code: code, Expected: expected}
}

func (p *parser) expect(kind token.Kind, code pkg.ErrorCode) (token.Token, error) {
	t := p.src.Next()
	if t.Kind == kind {
		return t, nil
	}

	want := kind.String()
	if kind.IsOperator() || kind.IsKeyword() {
		want = "'" + want + "'"
	}

	return t, p.fail(t, code, want)
}

// enter guards recursion. Every successful enter must be paired with a
// call to leave.
func (p *parser) enter() error {
	if p.depth >= p.maxDepth {
		return p.fail(p.src.Peek(), pkg.MaxDepthExceeded, "")
	}

	p.depth++

	return nil
}

func (p *parser) leave() { p.depth-- }

func (p *parser) parseExpr() (ast.Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	then, err := p.parsePipe()
	if err != nil {
		return nil, err
	}

	if !p.src.Peek().Is(token.If) {
		return then, nil
	}

	p.src.Next()

	cond, err := p.parsePipe()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Else, pkg.ExpectedToken); err != nil {
		return nil, err
	}

	other, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	p.trace("conditional", slog.String("pos", then.Pos().String()))

	return &ast.Conditional{Then: then, Cond: cond, Else: other, At: then.Pos()}, nil
}

func (p *parser) parsePipe() (ast.Expr, error) {
	x, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	for p.src.Peek().Is(token.Pipe) {
		p.src.Next()

		name, err := p.expect(token.Name, pkg.ExpectedIdentifier)
		if err != nil {
			return nil, err
		}

		var params ast.Params

		if p.src.Peek().Is(token.LParen) {
			p.src.Next()

			if params, err = p.parseArgs(); err != nil {
				return nil, err
			}
		}

		f, err := p.filters.New(name.Text, params)
		if err != nil {
			return nil, p.filterError(name, err)
		}

		p.trace("filter",
			slog.String("name", name.Text),
			slog.Int("args", params.Len()),
			slog.String("pos", name.Pos.String()))

		x = &ast.Pipe{X: x, Filter: f, Name: name.Text, Params: params, At: x.Pos()}
	}

	return x, nil
}

func (p *parser) filterError(name token.Token, err error) *ParseError {
	code := render.CodeOf(err)
	if !code.IsParse() || code == pkg.Unspecified {
		code = pkg.InvalidFilterArguments
	}

	pe := p.fail(name, code, "")

	// The last link of the chain is the message added to the code.
	chain := pkg.UnwrapErrors(err)
	pe.Detail = chain[len(chain)-1].Error()

	return pe
}

// parseBinary parses a left-associative level whose operators are ops and
// whose operands are parsed by next.
func (p *parser) parseBinary(next func() (ast.Expr, error), ops map[token.Kind]ast.Op) (ast.Expr, error) {
	x, err := next()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := ops[p.src.Peek().Kind]
		if !ok {
			return x, nil
		}

		t := p.src.Next()

		y, err := next()
		if err != nil {
			return nil, err
		}

		p.trace("binary", slog.String("op", op.String()), slog.String("pos", t.Pos.String()))

		if op == ast.OpAnd || op == ast.OpOr {
			x = &ast.Logical{X: x, Y: y, Op: op, At: x.Pos()}
		} else {
			x = &ast.Binary{X: x, Y: y, Op: op, At: x.Pos()}
		}
	}
}

func (p *parser) parseOr() (ast.Expr, error)  { return p.parseBinary(p.parseAnd, orOps) }
func (p *parser) parseAnd() (ast.Expr, error) { return p.parseBinary(p.parseNot, andOps) }

func (p *parser) parseNot() (ast.Expr, error) {
	t := p.src.Peek()
	if !t.Is(token.Not) {
		return p.parseBitOr()
	}

	p.src.Next()

	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	x, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	return &ast.Unary{X: x, Op: ast.OpNot, At: t.Pos}, nil
}

func (p *parser) parseBitOr() (ast.Expr, error)  { return p.parseBinary(p.parseBitXor, bitOrOps) }
func (p *parser) parseBitXor() (ast.Expr, error) { return p.parseBinary(p.parseBitAnd, bitXorOps) }
func (p *parser) parseBitAnd() (ast.Expr, error) { return p.parseBinary(p.parseComparison, bitAndOps) }

func (p *parser) parseComparison() (ast.Expr, error) {
	x, err := p.parseConcat()
	if err != nil {
		return nil, err
	}

	operands := []ast.Expr{x}

	var ops []ast.Op

	for {
		t := p.src.Peek()

		op, ok := compareOps[t.Kind]

		switch {
		case ok:
			p.src.Next()
		case t.Is(token.Not):
			p.src.Next()

			if _, err := p.expect(token.In, pkg.ExpectedToken); err != nil {
				return nil, err
			}

			op = ast.OpNotIn
		default:
			if len(ops) == 0 {
				return x, nil
			}

			p.trace("compare", slog.Int("ops", len(ops)), slog.String("pos", x.Pos().String()))

			return &ast.Compare{Operands: operands, Ops: ops, At: x.Pos()}, nil
		}

		y, err := p.parseConcat()
		if err != nil {
			return nil, err
		}

		operands = append(operands, y)
		ops = append(ops, op)
	}
}

func (p *parser) parseConcat() (ast.Expr, error) {
	return p.parseBinary(p.parsePower, concatOps)
}

// parsePower makes ** right-associative by recursing on its right operand.
// Both operands are additive expressions, so 2 * 3 ** 2 is (2 * 3) ** 2.
func (p *parser) parsePower() (ast.Expr, error) {
	x, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	if !p.src.Peek().Is(token.Power) {
		return x, nil
	}

	p.src.Next()

	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	y, err := p.parsePower()
	if err != nil {
		return nil, err
	}

	return &ast.Binary{X: x, Y: y, Op: ast.OpPow, At: x.Pos()}, nil
}

func (p *parser) parseAdditive() (ast.Expr, error) {
	return p.parseBinary(p.parseMultiplicative, addOps)
}

func (p *parser) parseMultiplicative() (ast.Expr, error) {
	return p.parseBinary(p.parseShift, mulOps)
}

func (p *parser) parseShift() (ast.Expr, error) {
	return p.parseBinary(p.parseUnary, shiftOps)
}

func (p *parser) parseUnary() (ast.Expr, error) {
	t := p.src.Peek()
	if !t.Is(token.Plus, token.Minus) {
		return p.parsePostfix()
	}

	p.src.Next()

	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	op := ast.OpNeg
	if t.Kind == token.Plus {
		op = ast.OpPos
	}

	return &ast.Unary{X: x, Op: op, At: t.Pos}, nil
}

func (p *parser) parsePostfix() (ast.Expr, error) {
	x, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for {
		switch p.src.Peek().Kind {
		case token.LParen:
			p.src.Next()

			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}

			p.trace("call", slog.String("callee", x.String()), slog.Int("args", args.Len()))

			x = &ast.Call{Callee: x, Args: args, At: x.Pos()}

		case token.LBracket:
			p.src.Next()

			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			if _, err := p.expect(token.RBracket, pkg.ExpectedSquareBracket); err != nil {
				return nil, err
			}

			x = &ast.Subscript{X: x, Index: idx, At: x.Pos()}

		case token.Dot:
			p.src.Next()

			idx, err := p.parseAttr()
			if err != nil {
				return nil, err
			}

			x = &ast.Subscript{X: x, Index: idx, At: x.Pos(), Dotted: true}

		default:
			return x, nil
		}
	}
}

// parseAttr parses the name after a dot. Keywords are accepted as names
// and an integer selects a list element.
func (p *parser) parseAttr() (ast.Expr, error) {
	t := p.src.Next()

	switch {
	case t.Kind == token.Name || t.Kind.IsKeyword():
		return &ast.Literal{Value: value.String(t.Text), At: t.Pos}, nil
	case t.Kind == token.Int:
		return p.intLiteral(t)
	default:
		return nil, p.fail(t, pkg.ExpectedIdentifier, "name")
	}
}

// parseArgs parses a call argument list after its opening parenthesis:
// positional arguments, optionally starred, then name=expr keywords.
func (p *parser) parseArgs() (ast.Params, error) {
	var params ast.Params

	for !p.src.Peek().Is(token.RParen) {
		t := p.src.Peek()

		switch {
		case t.Is(token.Star):
			if len(params.Keyword) > 0 {
				return params, p.fail(t, pkg.UnexpectedToken, "keyword argument")
			}

			p.src.Next()

			e, err := p.parseExpr()
			if err != nil {
				return params, err
			}

			params.Positional = append(params.Positional, ast.Arg{Expr: e, Starred: true})

		case t.Is(token.Name):
			name := p.src.Next()
			if p.src.Peek().Is(token.Assign) {
				p.src.Next()

				e, err := p.parseExpr()
				if err != nil {
					return params, err
				}

				params.Keyword = append(params.Keyword, ast.Keyword{Name: name.Text, Expr: e})

				break
			}

			p.src.Unread(name)

			fallthrough

		default:
			if len(params.Keyword) > 0 {
				return params, p.fail(t, pkg.UnexpectedToken, "keyword argument")
			}

			e, err := p.parseExpr()
			if err != nil {
				return params, err
			}

			params.Positional = append(params.Positional, ast.Arg{Expr: e})
		}

		if !p.src.Peek().Is(token.Comma) {
			break
		}

		p.src.Next()
	}

	if _, err := p.expect(token.RParen, pkg.ExpectedRoundBracket); err != nil {
		return params, err
	}

	return params, nil
}

func (p *parser) parseAtom() (ast.Expr, error) {
	t := p.src.Next()

	switch t.Kind {
	case token.Int:
		return p.intLiteral(t)
	case token.Float:
		f, err := strconv.ParseFloat(strings.ReplaceAll(t.Text, "_", ""), 64)
		if err != nil {
			return nil, p.fail(t, pkg.InvalidNumber, "")
		}

		return &ast.Literal{Value: value.Double(f), At: t.Pos}, nil
	case token.String:
		return &ast.Literal{Value: value.String(t.Text), At: t.Pos}, nil
	case token.True:
		return &ast.Literal{Value: value.Bool(true), At: t.Pos}, nil
	case token.False:
		return &ast.Literal{Value: value.Bool(false), At: t.Pos}, nil
	case token.None:
		return &ast.Literal{Value: value.Empty{}, At: t.Pos}, nil
	case token.Name:
		return &ast.Name{Ident: t.Text, At: t.Pos}, nil
	case token.LParen:
		return p.parseParen(t)
	case token.LBracket:
		return p.parseSequence(t, token.RBracket, pkg.ExpectedSquareBracket)
	case token.LBrace:
		return p.parseSequence(t, token.RBrace, pkg.ExpectedCurlyBracket)
	case token.EOF:
		return nil, p.fail(t, pkg.UnexpectedEOF, "expression")
	default:
		return nil, p.fail(t, pkg.ExpectedExpression, "expression")
	}
}

func (p *parser) intLiteral(t token.Token) (ast.Expr, error) {
	n, err := strconv.ParseInt(strings.ReplaceAll(t.Text, "_", ""), 10, 64)
	if err != nil {
		return nil, p.fail(t, pkg.InvalidNumber, "")
	}

	return &ast.Literal{Value: value.Int(n), At: t.Pos}, nil
}

// parseParen parses what follows "(": the empty tuple, a parenthesized
// expression, or a tuple when a comma follows the first element.
func (p *parser) parseParen(open token.Token) (ast.Expr, error) {
	if p.src.Peek().Is(token.RParen) {
		p.src.Next()

		return &ast.Tuple{At: open.Pos}, nil
	}

	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if !p.src.Peek().Is(token.Comma) {
		if _, err := p.expect(token.RParen, pkg.ExpectedRoundBracket); err != nil {
			return nil, err
		}

		return first, nil
	}

	items, err := p.parseItems(first, token.RParen)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RParen, pkg.ExpectedRoundBracket); err != nil {
		return nil, err
	}

	p.trace("tuple", slog.Int("len", len(items)), slog.String("pos", open.Pos.String()))

	return &ast.Tuple{Items: items, At: open.Pos}, nil
}

// parseSequence parses the body of a bracket or brace form. A colon after
// the first element commits to a dict.
func (p *parser) parseSequence(open token.Token, closer token.Kind, code pkg.ErrorCode) (ast.Expr, error) {
	if p.src.Peek().Is(closer) {
		p.src.Next()

		if closer == token.RBrace {
			return &ast.Dict{At: open.Pos}, nil
		}

		return &ast.List{At: open.Pos}, nil
	}

	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if p.src.Peek().Is(token.Colon) {
		return p.parseDict(open, first, closer, code)
	}

	items, err := p.parseItems(first, closer)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(closer, code); err != nil {
		return nil, err
	}

	p.trace("list", slog.Int("len", len(items)), slog.String("pos", open.Pos.String()))

	return &ast.List{Items: items, At: open.Pos}, nil
}

// parseItems parses ", item" repetitions after first, allowing a trailing
// comma before closer. The closer itself is left unconsumed.
func (p *parser) parseItems(first ast.Expr, closer token.Kind) ([]ast.Expr, error) {
	items := []ast.Expr{first}

	for p.src.Peek().Is(token.Comma) {
		p.src.Next()

		if p.src.Peek().Is(closer) {
			break
		}

		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		items = append(items, e)
	}

	return items, nil
}

func (p *parser) parseDict(open token.Token, key ast.Expr, closer token.Kind, code pkg.ErrorCode) (ast.Expr, error) {
	d := &ast.Dict{At: open.Pos}

	for {
		if _, err := p.expect(token.Colon, pkg.ExpectedToken); err != nil {
			return nil, err
		}

		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		d.Keys = append(d.Keys, key)
		d.Values = append(d.Values, val)

		if !p.src.Peek().Is(token.Comma) {
			break
		}

		p.src.Next()

		if p.src.Peek().Is(closer) {
			break
		}

		if key, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(closer, code); err != nil {
		return nil, err
	}

	p.trace("dict", slog.Int("len", len(d.Keys)), slog.String("pos", open.Pos.String()))

	return d, nil
}
