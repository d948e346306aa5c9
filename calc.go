package calc

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// AngleUnit is the unit in which trigonometric functions take angles.
type AngleUnit int8

const (
	Radians AngleUnit = iota
	Degrees
)

// ParseAngleUnit parses "DEG" or "RAD", in any case.
func ParseAngleUnit(s string) (AngleUnit, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "RAD":
		return Radians, nil
	case "DEG":
		return Degrees, nil
	default:
		return Radians, errors.Errorf("unknown angle unit %q", s)
	}
}

func (u AngleUnit) String() string {
	if u == Degrees {
		return "DEG"
	}
	return "RAD"
}

// Program is a compiled expression in postfix order. A Program is immutable
// and safe to evaluate concurrently.
type Program struct {
	rpn []item
}

// Compile lexes and translates an expression.
func Compile(src string) (*Program, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	rpn, err := translate(toks)
	if err != nil {
		return nil, err
	}
	return &Program{rpn: rpn}, nil
}

// Eval evaluates the program with float64 arithmetic.
func (p *Program) Eval(unit AngleUnit) (float64, error) {
	m := machine{stack: make([]float64, 0, len(p.rpn)), unit: unit}
	return m.run(p.rpn)
}

// EvalPrec evaluates the program with arithmetic to prec bits. Trigonometric
// and hyperbolic functions are computed to float64 precision.
func (p *Program) EvalPrec(unit AngleUnit, prec uint) (*big.Float, error) {
	if prec == 0 {
		prec = 64
	}
	m := bigmachine{stack: make([]*big.Float, 0, len(p.rpn)), unit: unit, prec: prec}
	return m.run(p.rpn)
}

// String returns the program as space-separated postfix items. Negation is
// written as neg.
func (p *Program) String() string {
	return formatRPN(p.rpn)
}

// Eval is a shortcut to compile and evaluate an expression.
func Eval(src string, unit AngleUnit) (float64, error) {
	p, err := Compile(src)
	if err != nil {
		return 0, err
	}
	return p.Eval(unit)
}

// Kind classifies evaluation failures.
type Kind int8

const (
	// OK is the absence of an error.
	OK Kind = iota
	// Malformed is a lexical or structural failure: an unexpected character,
	// mismatched parentheses, an unknown name, or operators and values that
	// don't reduce to one result.
	Malformed
	// Domain is a mathematically undefined or non-finite result for finite
	// inputs.
	Domain
	// Overflow is a finite result too large to represent.
	Overflow
)

func (k Kind) String() string {
	switch k {
	case OK:
		return ""
	case Malformed:
		return "error_malformed"
	case Domain:
		return "error_domain"
	case Overflow:
		return "error_overflow"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// KindOf classifies an error. Nil is OK. Any error not produced by
// evaluation is Malformed.
func KindOf(err error) Kind {
	if err == nil {
		return OK
	}
	var (
		de *DomainError
		oe *OverflowError
	)
	switch {
	case errors.As(err, &de):
		return Domain
	case errors.As(err, &oe):
		return Overflow
	default:
		return Malformed
	}
}

// Result is the outcome of Evaluate. Value is meaningful only if Err is OK.
type Result struct {
	Value float64
	Err   Kind
}

// OK reports whether the evaluation succeeded.
func (r Result) OK() bool {
	return r.Err == OK
}

// Evaluate compiles and evaluates an expression, reporting only the class of
// any failure. It never panics.
func Evaluate(src string, unit AngleUnit) (r Result) {
	defer func() {
		if recover() != nil {
			r = Result{Err: Malformed}
		}
	}()
	v, err := Eval(src, unit)
	if err != nil {
		return Result{Err: KindOf(err)}
	}
	return Result{Value: v}
}
