package lang

import "github.com/ardnew/jexpr/lang/token"

// TokenSource supplies tokens to the parser. The parser looks at most one
// token ahead and pushes back at most one token at a time.
// *lexer.Lexer implements TokenSource.
type TokenSource interface {
	// Peek returns the next token without consuming it.
	Peek() token.Token
	// Next consumes the next token.
	Next() token.Token
	// Unread pushes t back onto the stream.
	Unread(t token.Token)
	// Pos returns the position of the next token.
	Pos() token.Position
}
