package pkg

import "strconv"

// ErrorCode classifies a failure raised while parsing or evaluating an
// expression. Every code is itself an error, so a ParseError or
// RuntimeError can be matched with errors.Is(err, pkg.InvalidValueType).
type ErrorCode uint8

// Parse error codes.
const (
	Unspecified ErrorCode = iota
	UnexpectedCharacter
	UnterminatedString
	InvalidNumber
	UnexpectedToken
	UnexpectedEOF
	ExpectedIdentifier
	ExpectedRoundBracket
	ExpectedSquareBracket
	ExpectedCurlyBracket
	ExpectedToken
	ExpectedExpression
	ExpectedEndOfExpression
	UnknownFilter
	InvalidFilterArguments
	MaxDepthExceeded
)

// Runtime error codes.
const (
	InvalidValueType ErrorCode = iota + 64
	InvalidOperation
	UndefinedValue
	NotCallable
	InvalidArgument
	TooManyArguments
)

type codeInfo struct {
	name string
	desc string
}

//nolint:gochecknoglobals
var codes = map[ErrorCode]codeInfo{
	Unspecified:             {"Unspecified", "unspecified error"},
	UnexpectedCharacter:     {"UnexpectedCharacter", "unexpected character"},
	UnterminatedString:      {"UnterminatedString", "unterminated string literal"},
	InvalidNumber:           {"InvalidNumber", "invalid numeric literal"},
	UnexpectedToken:         {"UnexpectedToken", "unexpected token"},
	UnexpectedEOF:           {"UnexpectedEOF", "unexpected end of expression"},
	ExpectedIdentifier:      {"ExpectedIdentifier", "expected identifier"},
	ExpectedRoundBracket:    {"ExpectedRoundBracket", "expected ')'"},
	ExpectedSquareBracket:   {"ExpectedSquareBracket", "expected ']'"},
	ExpectedCurlyBracket:    {"ExpectedCurlyBracket", "expected '}'"},
	ExpectedToken:           {"ExpectedToken", "expected token"},
	ExpectedExpression:      {"ExpectedExpression", "expected expression"},
	ExpectedEndOfExpression: {"ExpectedEndOfExpression", "expected end of expression"},
	UnknownFilter:           {"UnknownFilter", "unknown filter"},
	InvalidFilterArguments:  {"InvalidFilterArguments", "invalid filter arguments"},
	MaxDepthExceeded:        {"MaxDepthExceeded", "maximum nesting depth exceeded"},
	InvalidValueType:        {"InvalidValueType", "invalid value type"},
	InvalidOperation:        {"InvalidOperation", "invalid operation"},
	UndefinedValue:          {"UndefinedValue", "undefined value"},
	NotCallable:             {"NotCallable", "value is not callable"},
	InvalidArgument:         {"InvalidArgument", "invalid argument"},
	TooManyArguments:        {"TooManyArguments", "too many arguments"},
}

// String returns the identifier of the code, e.g. "InvalidValueType".
func (c ErrorCode) String() string {
	if info, ok := codes[c]; ok {
		return info.name
	}

	return "ErrorCode(" + strconv.Itoa(int(c)) + ")"
}

// Error returns the human-readable description of the code.
func (c ErrorCode) Error() string {
	if info, ok := codes[c]; ok {
		return info.desc
	}

	return "unknown error " + strconv.Itoa(int(c))
}

// IsParse reports whether c is raised by the parser.
func (c ErrorCode) IsParse() bool {
	return c > Unspecified && c <= MaxDepthExceeded
}

// IsRuntime reports whether c is raised during evaluation.
func (c ErrorCode) IsRuntime() bool {
	return c >= InvalidValueType && c <= TooManyArguments
}
