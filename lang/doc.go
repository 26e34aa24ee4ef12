// Package lang parses expressions into evaluator trees.
//
// The grammar, from loosest to tightest binding:
//
//	expr        := pipe ("if" pipe "else" expr)?
//	pipe        := or ("|" NAME call_args?)*
//	or          := and ("or" and)*
//	and         := not ("and" not)*
//	not         := "not" not | bitor
//	bitor       := bitxor ("bitor" bitxor)*
//	bitxor      := bitand ("bitxor" bitand)*
//	bitand      := comparison ("bitand" comparison)*
//	comparison  := concat (cmp_op concat)*
//	concat      := power ("~" power)*
//	power       := additive ("**" power)?
//	additive    := multiplicative (("+" | "-") multiplicative)*
//	multiplicative := shift (("*" | "/" | "//" | "%") shift)*
//	shift       := unary (("<<" | ">>") unary)*
//	unary       := ("+" | "-") unary | postfix
//	postfix     := atom (call_args | "[" expr "]" | "." NAME)*
//	atom        := literal | NAME | "(" ... ")" | "[" ... "]" | "{" ... "}"
//
// The right operand of ** is itself a power expression, so 2 ** 3 ** 2 is
// 2 ** 9. Arithmetic and unary minus bind tighter than **: -2 ** 2 is 4 and
// 1 + 2 ** 2 is 9.
//
// cmp_op is one of == != < <= > >= in "not in". A chain such as a < b < c
// means a < b and b < c, with b evaluated once.
//
// Inside parentheses a trailing comma makes a tuple: (1,) is a tuple and
// (1) is the integer 1. Inside brackets and braces a colon after the first
// element makes a dict; otherwise the form is a list.
//
// Parsing stops at the first error, which is returned as a *ParseError.
package lang
