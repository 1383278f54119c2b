// Package lox implements the front end and tree-walking evaluator for a
// small dynamically-typed scripting language. The supported constructs are:
//   - Number, string, boolean and nil literals.
//   - Arithmetic and comparison expressions (+, -, *, /, >, >=, <, <=) and
//     equality (==, !=), unary negation and logical not, parentheses.
//   - Variable declarations via `var name = expr;` and assignment, which is
//     itself an expression.
//   - `print expr;` statements and `{ ... }` blocks with lexical scoping.
//
// Comments beginning with `//` run to the end of the line. Source is turned
// into tokens by Scan, into statements by Parse, and executed by an
// Interpreter whose global scope persists across calls. Runner ties the three
// together the way a command-line driver or REPL uses them.
package lox
