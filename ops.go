package calc

import (
	"math"
	"strconv"
)

// Op is an operator.
type Op int8

const (
	OpNone Op = iota
	OpAdd     // a + b
	OpSub     // a - b
	OpMul     // a * b
	OpDiv     // a / b
	OpMod     // a % b, truncated remainder
	OpPow     // a ^ b
	OpNeg     // -a
)

type operator struct {
	// sym is the source text of the operator, or the name used when
	// printing RPN for operators sharing a source character.
	sym string
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// arity is the number of operands.
	arity int8
	// apply computes the operator. Unary operators ignore b.
	apply func(a, b float64) float64
}

var operators = [...]operator{
	OpNone: {},
	OpAdd:  {"+", 2, false, 2, func(a, b float64) float64 { return a + b }},
	OpSub:  {"-", 2, false, 2, func(a, b float64) float64 { return a - b }},
	OpMul:  {"*", 3, false, 2, func(a, b float64) float64 { return a * b }},
	OpDiv:  {"/", 3, false, 2, quo},
	OpMod:  {"%", 3, false, 2, math.Mod},
	OpPow:  {"^", 4, true, 2, math.Pow},
	OpNeg:  {"neg", 5, true, 1, func(a, _ float64) float64 { return -a }},
}

// quo divides, giving NaN instead of an infinity for a zero divisor.
func quo(a, b float64) float64 {
	if b == 0 {
		return math.NaN()
	}
	return a / b
}

func (op Op) String() string {
	if op <= OpNone || int(op) >= len(operators) {
		return "Op(" + strconv.Itoa(int(op)) + ")"
	}
	return operators[op].sym
}

// binop gets the binary operator for a token string. If there is no such
// operator, the result is OpNone.
func binop(text string) Op {
	switch text {
	case "+":
		return OpAdd
	case "-":
		return OpSub
	case "*":
		return OpMul
	case "/":
		return OpDiv
	case "%":
		return OpMod
	case "^":
		return OpPow
	default:
		return OpNone
	}
}

// Func is a function of one argument.
type Func int8

const (
	FuncNone Func = iota
	FuncSin
	FuncCos
	FuncTan
	FuncAsin
	FuncAcos
	FuncAtan
	FuncSinh
	FuncCosh
	FuncTanh
	FuncLn
	FuncLog10
	FuncExp
	FuncTenPow
	FuncEPow
	FuncSquare
	FuncCube
	FuncSqrt
	FuncCbrt
	FuncInv
	FuncAbs
	FuncFloor
	FuncCeil
	FuncFactorial
	funcCount
)

type function struct {
	name string
	// angular indicates that the argument is an angle in the evaluation's
	// angle unit.
	angular bool
	// apply computes the function. It returns an error only for factorial.
	apply func(x float64) (float64, error)
}

// monadic adapts a plain float64 function.
func monadic(f func(float64) float64) func(float64) (float64, error) {
	return func(x float64) (float64, error) { return f(x), nil }
}

var functions = [funcCount]function{
	FuncNone:      {},
	FuncSin:       {"sin", true, monadic(math.Sin)},
	FuncCos:       {"cos", true, monadic(math.Cos)},
	FuncTan:       {"tan", true, monadic(math.Tan)},
	FuncAsin:      {"asin", false, monadic(math.Asin)},
	FuncAcos:      {"acos", false, monadic(math.Acos)},
	FuncAtan:      {"atan", false, monadic(math.Atan)},
	FuncSinh:      {"sinh", false, monadic(math.Sinh)},
	FuncCosh:      {"cosh", false, monadic(math.Cosh)},
	FuncTanh:      {"tanh", false, monadic(math.Tanh)},
	FuncLn:        {"ln", false, monadic(math.Log)},
	FuncLog10:     {"log10", false, monadic(math.Log10)},
	FuncExp:       {"exp", false, monadic(math.Exp)},
	FuncTenPow:    {"tenpow", false, monadic(func(x float64) float64 { return math.Pow(10, x) })},
	FuncEPow:      {"epow", false, monadic(func(x float64) float64 { return math.Pow(math.E, x) })},
	FuncSquare:    {"square", false, monadic(func(x float64) float64 { return x * x })},
	FuncCube:      {"cube", false, monadic(func(x float64) float64 { return x * x * x })},
	FuncSqrt:      {"sqrt", false, monadic(math.Sqrt)},
	FuncCbrt:      {"cbrt", false, monadic(math.Cbrt)},
	FuncInv:       {"inv", false, monadic(func(x float64) float64 { return 1 / x })},
	FuncAbs:       {"abs", false, monadic(math.Abs)},
	FuncFloor:     {"floor", false, monadic(math.Floor)},
	FuncCeil:      {"ceil", false, monadic(math.Ceil)},
	FuncFactorial: {"factorial", false, factorial},
}

// funcnames maps function names to functions.
var funcnames = func() map[string]Func {
	m := make(map[string]Func, funcCount)
	for f := FuncNone + 1; f < funcCount; f++ {
		m[functions[f].name] = f
	}
	return m
}()

// LookupFunc gets the function with the given name. The result is FuncNone
// if there is no such function.
func LookupFunc(name string) Func {
	return funcnames[name]
}

func (f Func) String() string {
	if f <= FuncNone || f >= funcCount {
		return "Func(" + strconv.Itoa(int(f)) + ")"
	}
	return functions[f].name
}

// Angular reports whether f takes an angle.
func (f Func) Angular() bool {
	return f > FuncNone && f < funcCount && functions[f].angular
}

// MaxFactorial is the largest argument whose factorial is a finite float64.
const MaxFactorial = 170

func factorial(x float64) (float64, error) {
	if math.IsInf(x, 0) || math.IsNaN(x) || x < 0 || math.Floor(x) != x {
		return 0, &DomainError{X: x, Func: "factorial"}
	}
	if x > MaxFactorial {
		return 0, &OverflowError{X: x, Func: "factorial"}
	}
	r := 1.0
	for i := 2.0; i <= x; i++ {
		r *= i
	}
	return r, nil
}

// constants are the names which translate to literal values.
var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// Constants returns the names of the constants understood in expressions
// and their values.
func Constants() map[string]float64 {
	m := make(map[string]float64, len(constants))
	for k, v := range constants {
		m[k] = v
	}
	return m
}

// toRad converts an angle in degrees to radians.
func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
