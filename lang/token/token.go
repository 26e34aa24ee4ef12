// Package token defines the lexical tokens of the expression language and
// the source positions attached to them.
package token

import (
	"fmt"

	"github.com/ardnew/jexpr/pkg"
)

// Kind classifies a token.
type Kind uint8

const (
	EOF Kind = iota
	Invalid

	Name
	Int
	Float
	String

	// operators and punctuation
	Plus        // +
	Minus       // -
	Star        // *
	Slash       // /
	DoubleSlash // //
	Percent     // %
	Power       // **
	Tilde       // ~
	Eq          // ==
	Ne          // !=
	Lt          // <
	Le          // <=
	Gt          // >
	Ge          // >=
	Shl         // <<
	Shr         // >>
	Assign      // =
	Pipe        // |
	Dot         // .
	Comma       // ,
	Colon       // :
	LParen      // (
	RParen      // )
	LBracket    // [
	RBracket    // ]
	LBrace      // {
	RBrace      // }

	// keywords
	And
	Or
	Not
	In
	If
	Else
	True
	False
	None
	BitOr
	BitXor
	BitAnd
)

//nolint:gochecknoglobals
var kindText = [...]string{
	EOF:         "end of input",
	Invalid:     "invalid token",
	Name:        "name",
	Int:         "integer",
	Float:       "float",
	String:      "string",
	Plus:        "+",
	Minus:       "-",
	Star:        "*",
	Slash:       "/",
	DoubleSlash: "//",
	Percent:     "%",
	Power:       "**",
	Tilde:       "~",
	Eq:          "==",
	Ne:          "!=",
	Lt:          "<",
	Le:          "<=",
	Gt:          ">",
	Ge:          ">=",
	Shl:         "<<",
	Shr:         ">>",
	Assign:      "=",
	Pipe:        "|",
	Dot:         ".",
	Comma:       ",",
	Colon:       ":",
	LParen:      "(",
	RParen:      ")",
	LBracket:    "[",
	RBracket:    "]",
	LBrace:      "{",
	RBrace:      "}",
	And:         "and",
	Or:          "or",
	Not:         "not",
	In:          "in",
	If:          "if",
	Else:        "else",
	True:        "true",
	False:       "false",
	None:        "none",
	BitOr:       "bitor",
	BitXor:      "bitxor",
	BitAnd:      "bitand",
}

// String returns the operator or keyword spelling of k, or a description
// for the other kinds.
func (k Kind) String() string {
	if int(k) < len(kindText) {
		return kindText[k]
	}

	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsKeyword reports whether k is spelled as a reserved word.
func (k Kind) IsKeyword() bool { return k >= And && k <= BitAnd }

// IsOperator reports whether k is an operator or punctuation token.
func (k Kind) IsOperator() bool { return k >= Plus && k <= RBrace }

// IsLiteral reports whether k carries a literal payload.
func (k Kind) IsLiteral() bool {
	switch k {
	case Int, Float, String, True, False, None:
		return true
	default:
		return false
	}
}

//nolint:gochecknoglobals
var keywords = map[string]Kind{
	"and":    And,
	"or":     Or,
	"not":    Not,
	"in":     In,
	"if":     If,
	"else":   Else,
	"true":   True,
	"True":   True,
	"false":  False,
	"False":  False,
	"none":   None,
	"None":   None,
	"bitor":  BitOr,
	"bitxor": BitXor,
	"bitand": BitAnd,
}

// Lookup returns the keyword kind of ident, or Name.
func Lookup(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}

	return Name
}

// Position identifies a location in the source text. Line and Column are
// 1-based; Column counts runes. Offset is the 0-based byte offset.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String returns "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether p was set by a scanner.
func (p Position) IsValid() bool { return p.Line > 0 }

// Token is a single lexeme. For String tokens Text holds the decoded
// contents; for every other kind it is the source slice. Invalid tokens
// carry the reason in Code.
type Token struct {
	Text string
	Pos  Position
	Kind Kind
	Code pkg.ErrorCode
}

// String describes the token for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return t.Kind.String()
	case String:
		return fmt.Sprintf("%q", t.Text)
	case Name, Int, Float, Invalid:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	default:
		return fmt.Sprintf("'%s'", t.Text)
	}
}

// Is reports whether t has one of kinds.
func (t Token) Is(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}

	return false
}
