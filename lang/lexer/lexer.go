// Package lexer scans expression source text into tokens on demand.
package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ardnew/jexpr/lang/token"
	"github.com/ardnew/jexpr/pkg"
)

// Lexer produces tokens from a source string. Tokens are scanned lazily:
// nothing is read beyond what Peek and Next request. Up to two tokens may
// be held back (one lookahead plus one Unread).
type Lexer struct {
	src  string
	pos  token.Position
	back []token.Token
}

// New returns a Lexer positioned at the start of src.
func New(src string) *Lexer {
	return &Lexer{
		src:  src,
		pos:  token.Position{Line: 1, Column: 1},
		back: make([]token.Token, 0, 2),
	}
}

// Source returns the text being scanned.
func (l *Lexer) Source() string { return l.src }

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() token.Token {
	if n := len(l.back); n > 0 {
		return l.back[n-1]
	}

	t := l.scan()
	l.back = append(l.back, t)

	return t
}

// Next consumes and returns the next token. After EOF it keeps returning
// EOF.
func (l *Lexer) Next() token.Token {
	if n := len(l.back); n > 0 {
		t := l.back[n-1]
		l.back = l.back[:n-1]

		return t
	}

	return l.scan()
}

// Unread pushes t back so the following Peek or Next returns it.
// At most two tokens can be outstanding; a third push panics.
func (l *Lexer) Unread(t token.Token) {
	if len(l.back) == cap(l.back) {
		panic("lexer: pushback buffer full")
	}

	l.back = append(l.back, t)
}

// Pos returns the position of the next unconsumed token.
func (l *Lexer) Pos() token.Position {
	return l.Peek().Pos
}

func (l *Lexer) peekRune(ahead int) rune {
	off := l.pos.Offset
	for range ahead {
		if off >= len(l.src) {
			return -1
		}

		_, w := utf8.DecodeRuneInString(l.src[off:])
		off += w
	}

	if off >= len(l.src) {
		return -1
	}

	r, _ := utf8.DecodeRuneInString(l.src[off:])

	return r
}

func (l *Lexer) advance() rune {
	if l.pos.Offset >= len(l.src) {
		return -1
	}

	r, w := utf8.DecodeRuneInString(l.src[l.pos.Offset:])
	l.pos.Offset += w

	if r == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}

	return r
}

func (l *Lexer) skipSpace() {
	for {
		switch l.peekRune(0) {
		case ' ', '\t', '\n', '\r':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) scan() token.Token {
	l.skipSpace()

	start := l.pos
	r := l.peekRune(0)

	switch {
	case r < 0:
		return token.Token{Kind: token.EOF, Pos: start}
	case r == '_' || unicode.IsLetter(r):
		return l.scanName(start)
	case isDigit(r):
		return l.scanNumber(start)
	case r == '\'' || r == '"':
		return l.scanString(start)
	}

	if k, n := operator(l.src[start.Offset:]); n > 0 {
		for range n {
			l.advance()
		}

		return token.Token{Kind: k, Text: l.src[start.Offset:l.pos.Offset], Pos: start}
	}

	l.advance()

	return token.Token{
		Kind: token.Invalid,
		Text: l.src[start.Offset:l.pos.Offset],
		Pos:  start,
		Code: pkg.UnexpectedCharacter,
	}
}

func (l *Lexer) scanName(start token.Position) token.Token {
	for r := l.peekRune(0); r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r); r = l.peekRune(0) {
		l.advance()
	}

	text := l.src[start.Offset:l.pos.Offset]

	return token.Token{Kind: token.Lookup(text), Text: text, Pos: start}
}

func (l *Lexer) scanNumber(start token.Position) token.Token {
	kind := token.Int

	l.digits()

	if l.peekRune(0) == '.' && isDigit(l.peekRune(1)) {
		kind = token.Float

		l.advance()
		l.digits()
	}

	if r := l.peekRune(0); r == 'e' || r == 'E' {
		kind = token.Float

		l.advance()

		if r := l.peekRune(0); r == '+' || r == '-' {
			l.advance()
		}

		if !isDigit(l.peekRune(0)) {
			return l.invalid(start, pkg.InvalidNumber)
		}

		l.digits()
	}

	if r := l.peekRune(0); r == '_' || unicode.IsLetter(r) {
		for r := l.peekRune(0); r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r); r = l.peekRune(0) {
			l.advance()
		}

		return l.invalid(start, pkg.InvalidNumber)
	}

	return token.Token{Kind: kind, Text: l.src[start.Offset:l.pos.Offset], Pos: start}
}

func (l *Lexer) digits() {
	for r := l.peekRune(0); isDigit(r) || (r == '_' && isDigit(l.peekRune(1))); r = l.peekRune(0) {
		l.advance()
	}
}

func (l *Lexer) scanString(start token.Position) token.Token {
	quote := l.advance()

	var sb strings.Builder

	for {
		r := l.advance()

		switch r {
		case -1:
			return l.invalid(start, pkg.UnterminatedString)
		case quote:
			return token.Token{Kind: token.String, Text: sb.String(), Pos: start}
		case '\\':
			if !l.escape(&sb) {
				return l.invalid(start, pkg.UnterminatedString)
			}
		default:
			sb.WriteRune(r)
		}
	}
}

// escape decodes the sequence following a backslash. Unknown escapes are
// kept verbatim, backslash included.
func (l *Lexer) escape(sb *strings.Builder) bool {
	r := l.advance()

	switch r {
	case -1:
		return false
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case '0':
		sb.WriteByte(0)
	case '\\', '\'', '"':
		sb.WriteRune(r)
	case 'u':
		hex := l.src[l.pos.Offset:min(l.pos.Offset+4, len(l.src))]
		if n, err := strconv.ParseUint(hex, 16, 32); err == nil && len(hex) == 4 {
			for range 4 {
				l.advance()
			}

			sb.WriteRune(rune(n))

			return true
		}

		sb.WriteString(`\u`)
	default:
		sb.WriteByte('\\')
		sb.WriteRune(r)
	}

	return true
}

func (l *Lexer) invalid(start token.Position, code pkg.ErrorCode) token.Token {
	return token.Token{
		Kind: token.Invalid,
		Text: l.src[start.Offset:l.pos.Offset],
		Pos:  start,
		Code: code,
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// operator matches the longest operator at the start of s.
func operator(s string) (token.Kind, int) {
	if len(s) >= 2 {
		switch s[:2] {
		case "**":
			return token.Power, 2
		case "//":
			return token.DoubleSlash, 2
		case "==":
			return token.Eq, 2
		case "!=":
			return token.Ne, 2
		case "<=":
			return token.Le, 2
		case ">=":
			return token.Ge, 2
		case "<<":
			return token.Shl, 2
		case ">>":
			return token.Shr, 2
		}
	}

	if s == "" {
		return token.EOF, 0
	}

	switch s[0] {
	case '+':
		return token.Plus, 1
	case '-':
		return token.Minus, 1
	case '*':
		return token.Star, 1
	case '/':
		return token.Slash, 1
	case '%':
		return token.Percent, 1
	case '~':
		return token.Tilde, 1
	case '<':
		return token.Lt, 1
	case '>':
		return token.Gt, 1
	case '=':
		return token.Assign, 1
	case '|':
		return token.Pipe, 1
	case '.':
		return token.Dot, 1
	case ',':
		return token.Comma, 1
	case ':':
		return token.Colon, 1
	case '(':
		return token.LParen, 1
	case ')':
		return token.RParen, 1
	case '[':
		return token.LBracket, 1
	case ']':
		return token.RBracket, 1
	case '{':
		return token.LBrace, 1
	case '}':
		return token.RBrace, 1
	}

	return token.EOF, 0
}
