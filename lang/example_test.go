package lang_test

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ardnew/jexpr/lang"
	"github.com/ardnew/jexpr/lang/ast"
	"github.com/ardnew/jexpr/render"
	"github.com/ardnew/jexpr/value"
)

func ExampleRender() {
	rc := render.New(render.WithValues(map[string]any{
		"user": map[string]any{"name": "ada", "langs": []any{"go", "c"}},
	}))

	v, err := lang.Render(context.Background(), "user | tojson", rc)
	if err != nil {
		fmt.Println(err)

		return
	}

	fmt.Println(value.Text(v))
	// Output: {"langs":["go","c"],"name":"ada"}
}

func ExampleParseString() {
	e, err := lang.ParseString(context.Background(), "a + b * 2 if ok else -1")
	if err != nil {
		fmt.Println(err)

		return
	}

	fmt.Println(e)
	// Output: (if ok (+ a (* b 2)) (- 1))
}

func ExampleParseString_error() {
	_, err := lang.ParseString(context.Background(), "[1, 2")

	var pe *lang.ParseError
	if errors.As(err, &pe) {
		fmt.Println(pe.Code, pe.Pos)
	}
	// Output: ExpectedSquareBracket 1:6
}

func ExampleCache() {
	cache := lang.NewCache()

	for _, n := range []int{1, 2, 3} {
		rc := render.New(render.WithValues(map[string]any{"n": n}))

		v, _ := lang.Render(context.Background(), "n ** 2", rc, lang.WithCache(cache))
		fmt.Print(value.Repr(v), " ")
	}

	hits, misses := cache.Stats()
	fmt.Println(hits, misses)
	// Output: 1 4 9 2 1
}

func Example_format() {
	v, _ := lang.Render(context.Background(), "'%s=%5d' | format('n', 42)", nil)
	fmt.Println(value.Text(v))
	// Output: n=   42
}

func Example_fprint() {
	e, _ := lang.ParseString(context.Background(), "f(x)[0]")
	_ = ast.Fprint(os.Stdout, e)
	// Output:
	// 1:1 Subscript
	//   1:1 Call args=1
	//     1:1 Name f
	//     1:3 Name x
	//   1:6 Literal int 0
}
