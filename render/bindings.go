package render

import (
	"io"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/jexpr/pkg"
	"github.com/ardnew/jexpr/value"
)

// LoadBindings decodes a YAML mapping into a Map suitable for
// [WithBindings]. Keys keep their document order.
func LoadBindings(r io.Reader) (value.Map, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return value.Map{}, pkg.ErrReadInput.Wrap(err)
	}

	var doc yaml.MapSlice
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return value.Map{}, pkg.ErrYAMLMarshal.Wrap(err)
	}

	m, _ := value.FromNative(doc).(value.Map)

	return m, nil
}
