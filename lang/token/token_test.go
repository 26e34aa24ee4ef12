package token

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		ident string
		want  Kind
	}{
		{"and", And},
		{"True", True},
		{"none", None},
		{"None", None},
		{"bitxor", BitXor},
		{"iff", Name},
		{"AND", Name},
	}

	for _, tt := range tests {
		if got := Lookup(tt.ident); got != tt.want {
			t.Errorf("Lookup(%q) = %v, want %v", tt.ident, got, tt.want)
		}
	}
}

func TestKindClasses(t *testing.T) {
	for k := EOF; k <= BitAnd; k++ {
		n := 0
		for _, in := range []bool{k.IsKeyword(), k.IsOperator()} {
			if in {
				n++
			}
		}

		if n > 1 {
			t.Errorf("%v is both keyword and operator", k)
		}

		if k.String() == "" {
			t.Errorf("Kind(%d) has no text", k)
		}
	}

	if !Int.IsLiteral() || !None.IsLiteral() || Name.IsLiteral() {
		t.Error("IsLiteral misclassifies")
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Kind: EOF}, "end of input"},
		{Token{Kind: Name, Text: "x"}, `name "x"`},
		{Token{Kind: String, Text: "a'b"}, `"a'b"`},
		{Token{Kind: Power, Text: "**"}, "'**'"},
	}

	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}

	if got := (Position{Offset: 4, Line: 2, Column: 3}).String(); got != "2:3" {
		t.Errorf("Position.String() = %q", got)
	}
}
