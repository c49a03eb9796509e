// Package afed implements the expression engine behind afed, the
// arithmetic file editor: a Shunting-Yard infix parser that compiles into
// a small stack-machine bytecode, a rational/real scalar arithmetic
// abstraction, and a namespace of named variables and functions with
// forward declaration and cycle detection.
//
// The engine itself does not read or write files or documents; see the
// document subpackage for the layer that rewrites embedded expressions
// in place, and cmd/afed for the command line tool built on top of it.
package afed
