package lang

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/jexpr/lang/ast"
	"github.com/ardnew/jexpr/lang/lexer"
	"github.com/ardnew/jexpr/pkg"
)

func TestParseString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"precedence", "1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"left assoc", "1 - 2 - 3", "(- (- 1 2) 3)"},
		{"power right assoc", "2 ** 3 ** 2", "(** 2 (** 3 2))"},
		{"unary over power", "-2 ** 2", "(** (- 2) 2)"},
		{"power unary exponent", "2 ** -1", "(** 2 (- 1))"},
		{"multiplicative over power", "2 * 3 ** 2", "(** (* 2 3) 2)"},
		{"additive over power", "1 + 2 ** 2", "(** (+ 1 2) 2)"},
		{"power over concat", "'a' ~ 2 ** 2 ~ 'b'", "(~ (~ 'a' (** 2 2)) 'b')"},
		{"shift over additive", "1 << 2 + 3", "(+ (<< 1 2) 3)"},
		{"concat", "'a' ~ 1 + 2", "(~ 'a' (+ 1 2))"},
		{"chain", "a < b < c", "(chain a < b < c)"},
		{"single compare", "a == b", "(== a b)"},
		{"not in", "a not in b", "(not in a b)"},
		{"in chain", "a in b not in c", "(chain a in b not in c)"},
		{"not binds looser", "not a == b", "(not (== a b))"},
		{"not not", "not not a", "(not (not a))"},
		{"logical", "a or b and not c", "(or a (and b (not c)))"},
		{"bitwise", "1 bitor 2 bitxor 3 bitand 4", "(bitor 1 (bitxor 2 (bitand 3 4)))"},
		{"conditional", "x if c else y", "(if c x y)"},
		{"conditional nested", "a if b else c if d else e", "(if b a (if d c e))"},
		{"attribute", "a.b[0]", "(index (index a 'b') 0)"},
		{"keyword attribute", "a.if", "(index a 'if')"},
		{"numeric attribute", "a.0", "(index a 0)"},
		{"call", "f(1, *xs, k=2)", "(call f 1 *xs k=2)"},
		{"call trailing comma", "f(1,)", "(call f 1)"},
		{"call chain", "f()(2)", "(call (call f ) 2)"},
		{"empty tuple", "()", "()"},
		{"singleton tuple", "(1,)", "(1,)"},
		{"paren", "(1)", "1"},
		{"tuple", "(1, 2,)", "(1, 2)"},
		{"empty list", "[]", "[]"},
		{"list", "[1, 'a',]", "[1, 'a']"},
		{"empty dict", "{}", "{}"},
		{"dict", "{'a': 1, 'b': [2]}", "{'a': 1, 'b': [2]}"},
		{"bracket dict", "['a': 1]", "{'a': 1}"},
		{"brace list", "{1, 2}", "[1, 2]"},
		{"literals", "[true, false, none, True, None, 1.5, 1_000]", "[true, false, none, true, none, 1.5, 1000]"},
		{"pipe", "x | pprint", "(| x pprint)"},
		{"pipe args", "d | tojson(indent=2)", "(| d tojson indent=2)"},
		{"pipe chain", "x | tojson | pprint", "(| (| x tojson) pprint)"},
		{"pipe looser than or", "a or b | pprint", "(| (or a b) pprint)"},
		{"pipe tighter than if", "a | pprint if c else b", "(if c (| a pprint) b)"},
		{"format", "'%s' | format(a, *b)", "(| '%s' format a *b)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, err := ParseString(context.Background(), tt.src)
			if err != nil {
				t.Fatalf("ParseString(%q): %v", tt.src, err)
			}

			if got := e.String(); got != tt.want {
				t.Errorf("ParseString(%q) = %s, want %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestParseShapes(t *testing.T) {
	t.Parallel()

	parse := func(src string) ast.Expr {
		t.Helper()

		e, err := ParseString(context.Background(), src)
		if err != nil {
			t.Fatalf("ParseString(%q): %v", src, err)
		}

		return e
	}

	if tup, ok := parse("(1,)").(*ast.Tuple); !ok || len(tup.Items) != 1 {
		t.Errorf("(1,) = %#v, want one-element tuple", tup)
	}

	if _, ok := parse("(1)").(*ast.Literal); !ok {
		t.Error("(1) is not a literal")
	}

	if d, ok := parse("{'a': 1}").(*ast.Dict); !ok || len(d.Keys) != 1 {
		t.Errorf("{'a': 1} = %#v, want one-entry dict", d)
	}

	if tup, ok := parse("(1, 2)").(*ast.Tuple); !ok || len(tup.Items) != 2 {
		t.Errorf("(1, 2) = %#v, want two-element tuple", tup)
	}

	call, ok := parse("f(*a, b)").(*ast.Call)
	if !ok || len(call.Args.Positional) != 2 || !call.Args.Positional[0].Starred {
		t.Errorf("f(*a, b) = %#v", call)
	}

	sub, ok := parse("a.b").(*ast.Subscript)
	if !ok || !sub.Dotted {
		t.Errorf("a.b = %#v, want dotted subscript", sub)
	}
}

func TestParseDeterministic(t *testing.T) {
	t.Parallel()

	srcs := []string{
		"a.b(1, k=2)[0] | tojson(2) if x < y <= z else {'k': [1, (2,)]}",
		"not a or b and c in d ~ 'x' ** 2",
	}

	for _, src := range srcs {
		a, err := ParseString(context.Background(), src)
		if err != nil {
			t.Fatalf("ParseString(%q): %v", src, err)
		}

		b, err := Parse(context.Background(), lexer.New(src))
		if err != nil {
			t.Fatalf("Parse(%q): %v", src, err)
		}

		if a.String() != b.String() {
			t.Errorf("parses differ: %s != %s", a, b)
		}
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want pkg.ErrorCode
		col  int
	}{
		{"missing else", "1 if 2", pkg.ExpectedToken, 7},
		{"trailing token", "1 2", pkg.ExpectedEndOfExpression, 3},
		{"unclosed paren", "(1", pkg.ExpectedRoundBracket, 3},
		{"unclosed tuple", "(1, 2", pkg.ExpectedRoundBracket, 6},
		{"unclosed call", "f(1 2)", pkg.ExpectedRoundBracket, 5},
		{"unclosed list", "[1", pkg.ExpectedSquareBracket, 3},
		{"unclosed subscript", "a[1", pkg.ExpectedSquareBracket, 4},
		{"unclosed dict", "{1: 2", pkg.ExpectedCurlyBracket, 6},
		{"dict missing colon", "{1: 2, 3}", pkg.ExpectedToken, 9},
		{"dot without name", "a.", pkg.ExpectedIdentifier, 3},
		{"dot string", "a.'b'", pkg.ExpectedIdentifier, 3},
		{"pipe without name", "x | 1", pkg.ExpectedIdentifier, 5},
		{"unknown filter", "x | nope", pkg.UnknownFilter, 5},
		{"filter arity", "x | pprint(1)", pkg.InvalidFilterArguments, 5},
		{"filter keyword", "x | tojson(width=1)", pkg.InvalidFilterArguments, 5},
		{"positional after keyword", "f(k=1, 2)", pkg.UnexpectedToken, 8},
		{"starred after keyword", "f(k=1, *a)", pkg.UnexpectedToken, 8},
		{"dangling operator", "1 +", pkg.UnexpectedEOF, 4},
		{"empty", "", pkg.UnexpectedEOF, 1},
		{"stray bracket", ")", pkg.ExpectedExpression, 1},
		{"not without in", "a not b", pkg.ExpectedToken, 7},
		{"unterminated string", "'abc", pkg.UnterminatedString, 1},
		{"bad number", "12ab", pkg.InvalidNumber, 1},
		{"int overflow", "99999999999999999999", pkg.InvalidNumber, 1},
		{"bad character", "1 @ 2", pkg.UnexpectedCharacter, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseString(context.Background(), tt.src)
			if !errors.Is(err, tt.want) {
				t.Fatalf("ParseString(%q) error = %v, want %v", tt.src, err, tt.want)
			}

			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %T is not a *ParseError", err)
			}

			if pe.Pos.Line != 1 || pe.Pos.Column != tt.col {
				t.Errorf("position = %s, want 1:%d", pe.Pos, tt.col)
			}
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	t.Parallel()

	_, err := ParseString(context.Background(), "1 2")
	if err == nil {
		t.Fatal("expected error")
	}

	want := "parse error at line 1, column 3: expected end of expression " +
		"(found integer \"2\"); expected end of input\n" +
		"  1 | 1 2\n" +
		"        ^"
	if got := err.Error(); got != want {
		t.Errorf("Error() =\n%s\nwant\n%s", got, want)
	}

	_, err = ParseString(context.Background(), "x | tojsn")

	if msg := err.Error(); !strings.Contains(msg, `unknown filter: "tojsn" (did you mean "tojson"?)`) {
		t.Errorf("Error() = %s", msg)
	}

	_, err = ParseString(context.Background(), "1 +")

	if msg := err.Error(); strings.Contains(msg, "found") {
		t.Errorf("Error() = %s", msg)
	}
}

func TestParseMaxDepth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		ok   bool
	}{
		{"parens within", "((1))", true},
		{"parens beyond", "(((1)))", false},
		{"unary within", "--1", true},
		{"unary beyond", "---1", false},
		{"not beyond", "not not not a", false},
		{"list beyond", "[[[1]]]", false},
		{"power within", "2 ** 2 ** 2", true},
		{"power beyond", "2 ** 2 ** 2 ** 2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseString(context.Background(), tt.src, WithMaxDepth(3))
			if tt.ok && err != nil {
				t.Fatalf("ParseString(%q): %v", tt.src, err)
			}

			if !tt.ok && !errors.Is(err, pkg.MaxDepthExceeded) {
				t.Errorf("ParseString(%q) error = %v, want MaxDepthExceeded", tt.src, err)
			}
		})
	}

	chain := strings.Repeat("2**", 300) + "2"
	if _, err := ParseString(context.Background(), chain, WithMaxDepth(8)); !errors.Is(err, pkg.MaxDepthExceeded) {
		t.Errorf("power chain: error = %v, want MaxDepthExceeded", err)
	}

	deep := strings.Repeat("(", DefaultMaxDepth+1) + "1" + strings.Repeat(")", DefaultMaxDepth+1)
	if _, err := ParseString(context.Background(), deep); !errors.Is(err, pkg.MaxDepthExceeded) {
		t.Errorf("default depth: error = %v", err)
	}
}
