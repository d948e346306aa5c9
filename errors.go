package calc

import (
	"strconv"
)

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the error occurred. For
	// an unexpected character, it is that character.
	Text string
	// Kind is the type of token the lexer was scanning. This is "number" or
	// the empty string if a token kind hadn't been decided.
	Kind string
	// Col is the position of the start of the token.
	Col int
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Col, "unexpected character "+strconv.Quote(err.Text))
	}
	return errpos(err.Col, "invalid "+err.Kind+" "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}

// BracketError is an unmatched parenthesis.
type BracketError struct {
	Col int
	// Left is "(" for a parenthesis never closed.
	Left string
	// Right is ")" for a parenthesis never opened.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "unmatched "+err.Right)
	}
	return errpos(err.Col, err.Left+" is never closed")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// SeparatorError is an argument separator outside any parentheses.
type SeparatorError struct {
	Col int
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, strconv.Quote(err.Sep)+" outside parentheses")
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

// NameError is an error indicating an identifier that is neither a function
// nor a constant. It implements InputError.
type NameError struct {
	// Col is the position of the name.
	Col int
	// Name is the unknown name.
	Name string
}

func (err *NameError) Error() string {
	return errpos(err.Col, "unknown name "+strconv.Quote(err.Name))
}

func (err *NameError) Pos() int {
	return err.Col
}

// StackError is an error indicating an expression which does not reduce to
// exactly one value, e.g. an operator missing an operand. It implements
// InputError.
type StackError struct {
	// Col is the position of the operator or function that lacked operands,
	// or 0 if the program ended with the wrong number of values.
	Col int
	// Item is the operator or function name that lacked operands.
	Item string
	// Len is the number of values on the stack at the end, when Item is
	// empty.
	Len int
}

func (err *StackError) Error() string {
	if err.Item != "" {
		return errpos(err.Col, "missing operand for "+strconv.Quote(err.Item))
	}
	if err.Len == 0 {
		return "no expression"
	}
	return strconv.Itoa(err.Len) + " values with no operator between them"
}

func (err *StackError) Pos() int {
	return err.Col
}

func errpos(col int, msg string) string {
	return "col " + strconv.Itoa(col) + ": " + msg
}

// InputError is a malformed-expression error. Every error with Kind Malformed
// from this package is an InputError.
type InputError interface {
	error
	// Pos is the 1-based rune column of the offending token, or 0 when the
	// expression as a whole is at fault.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*NameError)(nil)
	_ InputError = (*StackError)(nil)
)

// DomainError is an error returned when an operator or function is applied to
// arguments for which its result is undefined or not finite.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Func is a name identifying the function or operator.
	Func string
}

func (err *DomainError) Error() string {
	r := strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}

// OverflowError is an error returned when a function's result for a finite
// argument is too large to represent.
type OverflowError struct {
	// X is the argument.
	X float64
	// Func is a name identifying the function.
	Func string
}

func (err *OverflowError) Error() string {
	return err.Func + "(" + strconv.FormatFloat(err.X, 'g', -1, 64) + ") overflows"
}
