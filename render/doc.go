// Package render supplies the run-time environment an expression tree is
// evaluated against: variable bindings arranged in scopes, the error
// channel used to report fatal type mismatches, and a logger.
//
// A Context is cheap to create and must not be shared between concurrent
// evaluations. Parsed trees are immutable and can be evaluated against
// many Contexts at once.
package render
