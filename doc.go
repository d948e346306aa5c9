// Package calc implements a calculator's expression evaluator.
//
// Expressions are infix arithmetic on decimal numbers with + - * / % and ^,
// parentheses, unary minus, the constants pi and e, and functions of one
// argument such as sin, ln, sqrt, and factorial. "2^3^2" is 512 and "-3^2"
// is -9. Functions apply to a parenthesized argument, as in "sin(pi/2)", or
// to the value immediately following them, as in "sqrt 16".
//
// Compile translates an expression to a postfix Program once, which can
// then be evaluated with float64 arithmetic or at any precision. Evaluate
// is the simplest entry point: it reports either a value or one of three
// kinds of failure.
package calc
