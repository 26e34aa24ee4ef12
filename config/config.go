// Package config loads the YAML document that configures logging, parsing
// and rendering.
//
//	log:
//	  level: debug
//	  format: json
//	parser:
//	  max_depth: 64
//	  cache: true
//	render:
//	  strict_undefined: true
//	  functions:
//	    - {name: double, params: [x], body: "x * 2"}
//
// Fields that are absent keep their [Default] values.
package config

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/jexpr/lang"
	"github.com/ardnew/jexpr/log"
	"github.com/ardnew/jexpr/pkg"
	"github.com/ardnew/jexpr/render"
	"github.com/ardnew/jexpr/value"
)

// indent is the number of spaces per level in encoded documents.
const indent = 2

// Config is the decoded configuration document.
type Config struct {
	cache     *lang.Cache
	Log       Log    `yaml:"log"`
	Parser    Parser `yaml:"parser"`
	Render    Render `yaml:"render"`
	cacheOnce sync.Once
}

// Log configures the logger returned by [Config.Logger].
type Log struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	TimeLayout string `yaml:"time_layout"`
	Caller     bool   `yaml:"caller"`
	Pretty     bool   `yaml:"pretty"`
}

// Parser configures expression parsing.
type Parser struct {
	MaxDepth int  `yaml:"max_depth"`
	Cache    bool `yaml:"cache"`
}

// Render configures evaluation contexts.
type Render struct {
	Functions       []Function `yaml:"functions,omitempty"`
	StrictUndefined bool       `yaml:"strict_undefined"`
}

// Function is a callable bound in every render context. Body is an
// expr-lang program over Params.
type Function struct {
	Name   string   `yaml:"name"`
	Body   string   `yaml:"body"`
	Params []string `yaml:"params,flow"`
}

// Default returns the configuration used when no document is given.
func Default() *Config {
	return &Config{
		Log: Log{
			Level:  log.DefaultLevel.String(),
			Format: log.DefaultFormat.String(),
		},
		Parser: Parser{
			MaxDepth: lang.DefaultMaxDepth,
			Cache:    true,
		},
	}
}

// Load decodes a document from r over [Default]. Unknown fields are
// errors. An empty document yields the defaults.
func Load(r io.Reader) (*Config, error) {
	c := Default()

	dec := yaml.NewDecoder(r, yaml.DisallowUnknownField())
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, pkg.ErrYAMLMarshal.Wrap(err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return err
	}

	if _, err := log.ParseFormat(c.Log.Format); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Render.Functions))

	for i, fn := range c.Render.Functions {
		switch {
		case fn.Name == "":
			return pkg.ErrDefinition.Wrapf("function %d has no name", i)
		case seen[fn.Name]:
			return pkg.ErrDefinition.Wrapf("function %q defined twice", fn.Name)
		}

		seen[fn.Name] = true
	}

	return nil
}

// Logger returns a logger writing to w as configured.
func (c *Config) Logger(w io.Writer) (log.Logger, error) {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.Logger{}, err
	}

	format, err := log.ParseFormat(c.Log.Format)
	if err != nil {
		return log.Logger{}, err
	}

	opts := []log.Option{
		log.WithLevel(level),
		log.WithFormat(format),
		log.WithCaller(c.Log.Caller),
		log.WithPretty(c.Log.Pretty),
	}

	if c.Log.TimeLayout != "" {
		opts = append(opts, log.WithTimeLayout(c.Log.TimeLayout))
	}

	return log.Make(w, opts...), nil
}

// ParseOptions returns the parser options. When caching is enabled every
// call shares one cache owned by c.
func (c *Config) ParseOptions(logger log.Logger) []lang.Option {
	opts := []lang.Option{
		lang.WithLogger(logger),
		lang.WithMaxDepth(c.Parser.MaxDepth),
	}

	if c.Parser.Cache {
		c.cacheOnce.Do(func() { c.cache = lang.NewCache() })

		opts = append(opts, lang.WithCache(c.cache))
	}

	return opts
}

// RenderOptions returns the render context options, compiling each
// configured function.
func (c *Config) RenderOptions(ctx context.Context, logger log.Logger) ([]render.Option, error) {
	fns := make([]value.Callable, 0, len(c.Render.Functions))

	for _, fn := range c.Render.Functions {
		callable, err := render.Define(fn.Name, fn.Body, fn.Params...)
		if err != nil {
			return nil, err
		}

		logger.DebugContext(ctx, "defined function",
			slog.String("name", fn.Name),
			slog.Any("params", fn.Params))

		fns = append(fns, callable)
	}

	opts := []render.Option{
		render.WithContext(ctx),
		render.WithLogger(logger),
		render.WithStrictUndefined(c.Render.StrictUndefined),
	}

	if len(fns) > 0 {
		opts = append(opts, render.WithFuncs(fns...))
	}

	return opts, nil
}

// Encode writes c as a YAML document.
func (c *Config) Encode(ctx context.Context, w io.Writer) error {
	data, err := yaml.MarshalContext(ctx, c, yaml.Indent(indent))
	if err != nil {
		return pkg.ErrYAMLMarshal.Wrap(err)
	}

	if _, err := w.Write(data); err != nil {
		return err
	}

	return nil
}
