// Package filter implements the named transformations applied by pipe
// expressions such as x | tojson(indent=2).
//
// A filter is built once per pipe from its unevaluated arguments and then
// applied on every evaluation of the tree. Arguments are evaluated lazily,
// at apply time, against the render.Context of that evaluation. Each
// filter walks its input with a value.Visitor, so every variant of
// value.Value has a defined rendering.
//
// The builtin filters are:
//
//	pprint             Python-repr rendering
//	tojson(indent=0)   JSON safe for embedding in HTML script blocks
//	format(args...)    printf-style formatting of the input string
//	fmt(args...)       {}-placeholder formatting of the input string
//	xmlattr            XML attribute list from a map
package filter
