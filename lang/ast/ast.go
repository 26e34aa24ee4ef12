// Package ast defines the evaluator tree produced by the parser.
//
// Every node owns its children exclusively; trees have no sharing and no
// cycles and are never modified after construction, so one tree can be
// evaluated by many goroutines at once, each with its own render.Context.
package ast

import (
	"strings"

	"github.com/ardnew/jexpr/lang/token"
	"github.com/ardnew/jexpr/render"
	"github.com/ardnew/jexpr/value"
)

// Expr is a node of the evaluator tree.
type Expr interface {
	// Eval computes the value of the node. Errors are *render.RuntimeError
	// values that were already delivered to the context's callback.
	Eval(ctx *render.Context) (value.Value, error)
	// Pos returns the position of the first token of the node.
	Pos() token.Position
	// String returns a canonical, fully parenthesized rendering. Two trees
	// are structurally identical iff their strings are equal.
	String() string
}

// Filter is a named transformation applied by a Pipe node.
type Filter interface {
	Apply(v value.Value, ctx *render.Context) (value.Value, error)
}

type (
	// Literal is a constant.
	Literal struct {
		Value value.Value
		At    token.Position
	}

	// Name is a reference to a binding.
	Name struct {
		Ident string
		At    token.Position
	}

	// Unary applies OpNeg, OpPos or OpNot.
	Unary struct {
		X  Expr
		At token.Position
		Op Op
	}

	// Binary applies an arithmetic, concatenation, shift or bitwise
	// operator.
	Binary struct {
		X, Y Expr
		At   token.Position
		Op   Op
	}

	// Logical applies OpAnd or OpOr, evaluating Y only when needed.
	Logical struct {
		X, Y Expr
		At   token.Position
		Op   Op
	}

	// Compare is a comparison chain: Operands[i] Ops[i] Operands[i+1] for
	// each i, combined with and. len(Operands) == len(Ops)+1.
	Compare struct {
		Operands []Expr
		Ops      []Op
		At       token.Position
	}

	// Call invokes Callee.
	Call struct {
		Callee Expr
		Args   Params
		At     token.Position
	}

	// Subscript indexes X. Dotted records the x.name spelling.
	Subscript struct {
		X, Index Expr
		At       token.Position
		Dotted   bool
	}

	// List is a [a, b] literal.
	List struct {
		Items []Expr
		At    token.Position
	}

	// Tuple is a (a, b) literal.
	Tuple struct {
		Items []Expr
		At    token.Position
	}

	// Dict is a {k: v} literal.
	Dict struct {
		Keys   []Expr
		Values []Expr
		At     token.Position
	}

	// Conditional is Then if Cond else Else.
	Conditional struct {
		Then, Cond, Else Expr
		At               token.Position
	}

	// Pipe applies a filter to X.
	Pipe struct {
		X      Expr
		Filter Filter
		Name   string
		Params Params
		At     token.Position
	}
)

func (n *Literal) Pos() token.Position     { return n.At }
func (n *Name) Pos() token.Position        { return n.At }
func (n *Unary) Pos() token.Position       { return n.At }
func (n *Binary) Pos() token.Position      { return n.At }
func (n *Logical) Pos() token.Position     { return n.At }
func (n *Compare) Pos() token.Position     { return n.At }
func (n *Call) Pos() token.Position        { return n.At }
func (n *Subscript) Pos() token.Position   { return n.At }
func (n *List) Pos() token.Position        { return n.At }
func (n *Tuple) Pos() token.Position       { return n.At }
func (n *Dict) Pos() token.Position        { return n.At }
func (n *Conditional) Pos() token.Position { return n.At }
func (n *Pipe) Pos() token.Position        { return n.At }

func (n *Literal) String() string { return value.Repr(n.Value) }
func (n *Name) String() string    { return n.Ident }

func (n *Unary) String() string {
	return sexpr(n.Op.String(), n.X.String())
}

func (n *Binary) String() string {
	return sexpr(n.Op.String(), n.X.String(), n.Y.String())
}

func (n *Logical) String() string {
	return sexpr(n.Op.String(), n.X.String(), n.Y.String())
}

func (n *Compare) String() string {
	if len(n.Ops) == 1 {
		return sexpr(n.Ops[0].String(), n.Operands[0].String(), n.Operands[1].String())
	}

	parts := []string{n.Operands[0].String()}
	for i, op := range n.Ops {
		parts = append(parts, op.String(), n.Operands[i+1].String())
	}

	return sexpr("chain", parts...)
}

func (n *Call) String() string {
	return sexpr("call", append([]string{n.Callee.String()}, n.Args.strings()...)...)
}

func (n *Subscript) String() string {
	return sexpr("index", n.X.String(), n.Index.String())
}

func (n *List) String() string {
	return "[" + joinExprs(n.Items) + "]"
}

func (n *Tuple) String() string {
	if len(n.Items) == 1 {
		return "(" + n.Items[0].String() + ",)"
	}

	return "(" + joinExprs(n.Items) + ")"
}

func (n *Dict) String() string {
	parts := make([]string, len(n.Keys))
	for i := range n.Keys {
		parts[i] = n.Keys[i].String() + ": " + n.Values[i].String()
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

func (n *Conditional) String() string {
	return sexpr("if", n.Cond.String(), n.Then.String(), n.Else.String())
}

func (n *Pipe) String() string {
	return sexpr("|", append([]string{n.X.String(), n.Name}, n.Params.strings()...)...)
}

func sexpr(head string, args ...string) string {
	return "(" + head + " " + strings.Join(args, " ") + ")"
}

func joinExprs(es []Expr) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.String()
	}

	return strings.Join(parts, ", ")
}
