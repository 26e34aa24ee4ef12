package config

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/jexpr/lang"
	"github.com/ardnew/jexpr/log"
	"github.com/ardnew/jexpr/pkg"
	"github.com/ardnew/jexpr/render"
	"github.com/ardnew/jexpr/value"
)

const document = `
log:
  level: debug
  format: json
parser:
  max_depth: 8
  cache: false
render:
  strict_undefined: true
  functions:
    - name: double
      params: [x]
      body: x * 2
    - {name: greet, params: [who], body: '"hi " + who'}
`

func TestLoad(t *testing.T) {
	t.Parallel()

	c, err := Load(strings.NewReader(document))
	if err != nil {
		t.Fatal(err)
	}

	if c.Log.Level != "debug" || c.Log.Format != "json" {
		t.Errorf("Log = %+v", c.Log)
	}

	if c.Parser.MaxDepth != 8 || c.Parser.Cache {
		t.Errorf("Parser = %+v", c.Parser)
	}

	if !c.Render.StrictUndefined || len(c.Render.Functions) != 2 {
		t.Fatalf("Render = %+v", c.Render)
	}

	if fn := c.Render.Functions[1]; fn.Name != "greet" || len(fn.Params) != 1 || fn.Params[0] != "who" {
		t.Errorf("Functions[1] = %+v", fn)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"", "parser:\n  cache: true\n"} {
		c, err := Load(strings.NewReader(src))
		if err != nil {
			t.Fatalf("Load(%q): %v", src, err)
		}

		if c.Parser.MaxDepth != lang.DefaultMaxDepth || c.Log.Level != "info" || c.Log.Format != "text" {
			t.Errorf("Load(%q) = %+v", src, c)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want error
	}{
		{"unknown field", "parser:\n  depth: 3\n", pkg.ErrYAMLMarshal},
		{"malformed", "log: [", pkg.ErrYAMLMarshal},
		{"bad level", "log:\n  level: loud\n", pkg.ErrInvalidFormat},
		{"bad format", "log:\n  format: xml\n", pkg.ErrInvalidFormat},
		{"unnamed function", "render:\n  functions:\n    - {body: '1'}\n", pkg.ErrDefinition},
		{
			"duplicate function",
			"render:\n  functions:\n    - {name: f, body: '1'}\n    - {name: f, body: '2'}\n",
			pkg.ErrDefinition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Load(strings.NewReader(tt.src)); !errors.Is(err, tt.want) {
				t.Errorf("Load error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLogger(t *testing.T) {
	t.Parallel()

	c := Default()
	c.Log.Level = "warn"
	c.Log.Format = "json"

	var buf bytes.Buffer

	logger, err := c.Logger(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if logger.Level() != log.LevelWarn || logger.Format() != log.FormatJSON {
		t.Errorf("Logger = %s %s", logger.Level(), logger.Format())
	}

	logger.Info("dropped")
	logger.Warn("kept")

	if out := buf.String(); strings.Contains(out, "dropped") || !strings.Contains(out, `"msg":"kept"`) {
		t.Errorf("output = %s", out)
	}
}

func TestOptions(t *testing.T) {
	t.Parallel()

	c, err := Load(strings.NewReader(document))
	if err != nil {
		t.Fatal(err)
	}

	c.Parser.Cache = true

	ctx := context.Background()

	ropts, err := c.RenderOptions(ctx, log.Logger{})
	if err != nil {
		t.Fatal(err)
	}

	popts := c.ParseOptions(log.Logger{})

	tests := []struct {
		src  string
		want value.Value
	}{
		{"double(21)", value.Int(42)},
		{"greet('bob')", value.String("hi bob")},
		{"double(double(1)) + 1", value.Int(5)},
	}

	for _, tt := range tests {
		v, err := lang.Render(ctx, tt.src, render.New(ropts...), popts...)
		if err != nil {
			t.Fatalf("Render(%q): %v", tt.src, err)
		}

		if !value.Equal(v, tt.want) {
			t.Errorf("Render(%q) = %s, want %s", tt.src, value.Repr(v), value.Repr(tt.want))
		}
	}

	if _, err := lang.Render(ctx, "missing", render.New(ropts...), popts...); !errors.Is(err, pkg.UndefinedValue) {
		t.Errorf("strict undefined: error = %v", err)
	}

	if _, err := lang.Render(ctx, "[[[[[[[[[1]]]]]]]]]", nil, popts...); !errors.Is(err, pkg.MaxDepthExceeded) {
		t.Errorf("max depth: error = %v", err)
	}

	// Both option sets share the config's cache.
	again := c.ParseOptions(log.Logger{})
	if _, err := lang.Render(ctx, "double(21)", render.New(ropts...), again...); err != nil {
		t.Fatal(err)
	}

	if c.cache == nil || c.cache.Len() != 5 {
		t.Errorf("cache = %v", c.cache)
	}
}

func TestRenderOptionsBadBody(t *testing.T) {
	t.Parallel()

	c := Default()
	c.Render.Functions = []Function{{Name: "bad", Body: "1 +"}}

	if _, err := c.RenderOptions(context.Background(), log.Logger{}); !errors.Is(err, pkg.ErrDefinition) {
		t.Errorf("error = %v, want ErrDefinition", err)
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	c, err := Load(strings.NewReader(document))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := c.Encode(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"log:\n  level: debug\n", "max_depth: 8", "params: [x]", "strict_undefined: true"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("Encode missing %q:\n%s", want, buf.String())
		}
	}

	back, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load(Encode()): %v", err)
	}

	if back.Parser != c.Parser || back.Log != c.Log || len(back.Render.Functions) != 2 {
		t.Errorf("round trip = %+v", back)
	}
}
