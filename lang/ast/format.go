package ast

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/jexpr/value"
)

// Fprint writes an indented dump of the tree rooted at e, one node per
// line, each prefixed with its source position.
func Fprint(w io.Writer, e Expr) error {
	return fprint(w, e, 0)
}

func fprint(w io.Writer, e Expr, depth int) error {
	if _, err := fmt.Fprintf(w, "%s%s %s\n",
		strings.Repeat("  ", depth), e.Pos(), label(e)); err != nil {
		return err
	}

	for _, c := range children(e) {
		if err := fprint(w, c, depth+1); err != nil {
			return err
		}
	}

	return nil
}

// label describes a node without its children.
func label(e Expr) string {
	switch n := e.(type) {
	case *Literal:
		return "Literal " + value.KindOf(n.Value).String() + " " + n.String()
	case *Name:
		return "Name " + n.Ident
	case *Unary:
		return "Unary " + n.Op.String()
	case *Binary:
		return "Binary " + n.Op.String()
	case *Logical:
		return "Logical " + n.Op.String()
	case *Compare:
		ops := make([]string, len(n.Ops))
		for i, op := range n.Ops {
			ops[i] = op.String()
		}

		return "Compare " + strings.Join(ops, " ")
	case *Call:
		return fmt.Sprintf("Call args=%d", n.Args.Len())
	case *Subscript:
		if n.Dotted {
			return "Subscript dotted"
		}

		return "Subscript"
	case *List:
		return fmt.Sprintf("List len=%d", len(n.Items))
	case *Tuple:
		return fmt.Sprintf("Tuple len=%d", len(n.Items))
	case *Dict:
		return fmt.Sprintf("Dict len=%d", len(n.Keys))
	case *Conditional:
		return "Conditional"
	case *Pipe:
		return "Pipe " + n.Name
	default:
		return fmt.Sprintf("%T", e)
	}
}

// children returns the direct children of e in evaluation order.
func children(e Expr) []Expr {
	switch n := e.(type) {
	case *Unary:
		return []Expr{n.X}
	case *Binary:
		return []Expr{n.X, n.Y}
	case *Logical:
		return []Expr{n.X, n.Y}
	case *Compare:
		return n.Operands
	case *Call:
		return append([]Expr{n.Callee}, n.Args.exprs()...)
	case *Subscript:
		return []Expr{n.X, n.Index}
	case *List:
		return n.Items
	case *Tuple:
		return n.Items
	case *Dict:
		out := make([]Expr, 0, 2*len(n.Keys))
		for i := range n.Keys {
			out = append(out, n.Keys[i], n.Values[i])
		}

		return out
	case *Conditional:
		return []Expr{n.Cond, n.Then, n.Else}
	case *Pipe:
		return append([]Expr{n.X}, n.Params.exprs()...)
	default:
		return nil
	}
}

// Walk calls fn for e and every descendant, parents first. Returning false
// from fn skips the children of that node.
func Walk(e Expr, fn func(Expr) bool) {
	if !fn(e) {
		return
	}

	for _, c := range children(e) {
		Walk(c, fn)
	}
}

// FormatYAML writes the tree rooted at e as a YAML document. An indent of
// zero selects flow style.
func FormatYAML(ctx context.Context, w io.Writer, e Expr, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, toMap(e), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

func toMap(e Expr) yaml.MapSlice {
	m := yaml.MapSlice{
		{Key: "node", Value: label(e)},
		{Key: "pos", Value: e.Pos().String()},
	}

	if kids := children(e); len(kids) > 0 {
		list := make([]yaml.MapSlice, len(kids))
		for i, c := range kids {
			list[i] = toMap(c)
		}

		m = append(m, yaml.MapItem{Key: "children", Value: list})
	}

	return m
}
