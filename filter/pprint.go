package filter

import (
	"github.com/ardnew/jexpr/render"
	"github.com/ardnew/jexpr/value"
)

// PrettyPrint renders its input the way Python's repr would, using the
// value.Printer visitor.
type PrettyPrint struct{}

func (PrettyPrint) Apply(v value.Value, _ *render.Context) (value.Value, error) {
	return value.String(value.Apply[string](v, value.Printer{})), nil
}
