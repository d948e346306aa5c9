package calc

import (
	"math"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/zephyrtronium/bigfloat"
)

// bigmachine holds the value stack for one evaluation of a program at
// arbitrary precision.
type bigmachine struct {
	stack []*big.Float
	unit  AngleUnit
	prec  uint
}

func (m *bigmachine) fresh() *big.Float {
	return new(big.Float).SetPrec(m.prec)
}

func (m *bigmachine) pop() *big.Float {
	r := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return r
}

// run evaluates an RPN program.
func (m *bigmachine) run(rpn []item) (r *big.Float, err error) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		// big.Float operations which would produce NaN panic with ErrNaN.
		e, ok := v.(error)
		if !ok || !errors.As(e, &big.ErrNaN{}) {
			panic(v)
		}
		r, err = nil, &DomainError{X: math.NaN()}
	}()
	for _, it := range rpn {
		if err := m.step(it); err != nil {
			return nil, err
		}
	}
	if len(m.stack) != 1 {
		return nil, &StackError{Len: len(m.stack)}
	}
	return m.stack[0], nil
}

func (m *bigmachine) step(it item) error {
	switch it.kind {
	case itemNum:
		m.stack = append(m.stack, m.literal(it))
		return nil
	case itemOp:
		op := operators[it.op]
		if len(m.stack) < int(op.arity) {
			return &StackError{Col: it.pos, Item: op.sym}
		}
		var a, b *big.Float
		if op.arity == 2 {
			b = m.pop()
		}
		a = m.pop()
		r, err := m.op(it.op, a, b)
		if err != nil {
			return err
		}
		return m.push(r, a, op.sym)
	case itemFunc:
		fn := functions[it.fn]
		if len(m.stack) < 1 {
			return &StackError{Col: it.pos, Item: fn.name}
		}
		x := m.pop()
		r, err := m.call(it.fn, x)
		if err != nil {
			return err
		}
		return m.push(r, x, fn.name)
	default:
		panic("calc: invalid RPN item " + it.String())
	}
}

// push adds r to the stack if it is finite.
func (m *bigmachine) push(r, arg *big.Float, name string) error {
	if r.IsInf() {
		x, _ := arg.Float64()
		return &DomainError{X: x, Func: name}
	}
	m.stack = append(m.stack, r)
	return nil
}

// literal produces the value of a number item at the machine's precision.
func (m *bigmachine) literal(it item) *big.Float {
	z := m.fresh()
	switch it.text {
	case "pi":
		return bigfloat.Pi(z)
	case "e":
		return bigfloat.Exp(z, big.NewFloat(1))
	}
	if _, _, err := z.Parse(strings.ReplaceAll(it.text, "_", ""), 10); err != nil {
		// The lexer already accepted the text as a float64.
		return z.SetFloat64(it.num)
	}
	return z
}

func (m *bigmachine) op(op Op, a, b *big.Float) (*big.Float, error) {
	z := m.fresh()
	switch op {
	case OpAdd:
		return z.Add(a, b), nil
	case OpSub:
		return z.Sub(a, b), nil
	case OpMul:
		return z.Mul(a, b), nil
	case OpDiv:
		if b.Sign() == 0 {
			return nil, &DomainError{X: 0, Func: "/"}
		}
		return z.Quo(a, b), nil
	case OpMod:
		if b.Sign() == 0 {
			return nil, &DomainError{X: 0, Func: "%"}
		}
		return z.SetRat(rem(a, b)), nil
	case OpPow:
		return m.pow(z, a, b)
	case OpNeg:
		return z.Neg(a), nil
	default:
		panic("calc: invalid operator " + op.String())
	}
}

// rem is the truncated remainder a - b*trunc(a/b), taking the sign of a. It
// is exact regardless of how many integer bits a/b has. Both operands must be
// finite and b nonzero.
func rem(a, b *big.Float) *big.Rat {
	x, _ := a.Rat(nil)
	y, _ := b.Rat(nil)
	q := new(big.Rat).Quo(x, y)
	// Int.Quo truncates toward zero.
	n := new(big.Int).Quo(q.Num(), q.Denom())
	t := new(big.Rat).SetInt(n)
	t.Mul(t, y)
	return t.Sub(x, t)
}

// pow computes a^b into z, handling the cases bigfloat.Pow does not.
func (m *bigmachine) pow(z, a, b *big.Float) (*big.Float, error) {
	switch {
	case b.Sign() == 0:
		return z.SetInt64(1), nil
	case a.Sign() == 0:
		if b.Sign() < 0 {
			return nil, &DomainError{X: 0, Func: "^"}
		}
		return z.SetInt64(0), nil
	case a.Sign() < 0:
		if !b.IsInt() {
			x, _ := a.Float64()
			return nil, &DomainError{X: x, Func: "^"}
		}
		bigfloat.Pow(z, new(big.Float).Abs(a), b)
		if n, _ := b.Int(nil); n.Bit(0) == 1 {
			z.Neg(z)
		}
		return z, nil
	default:
		return bigfloat.Pow(z, a, b), nil
	}
}

func (m *bigmachine) call(fn Func, x *big.Float) (*big.Float, error) {
	z := m.fresh()
	fx, _ := x.Float64()
	switch fn {
	case FuncLn, FuncLog10:
		if x.Sign() <= 0 {
			return nil, &DomainError{X: fx, Func: fn.String()}
		}
		bigfloat.Log(z, x)
		if fn == FuncLog10 {
			ten := bigfloat.Log(m.fresh(), big.NewFloat(10))
			z.Quo(z, ten)
		}
		return z, nil
	case FuncExp, FuncEPow:
		return bigfloat.Exp(z, x), nil
	case FuncTenPow:
		return bigfloat.Pow(z, big.NewFloat(10), x), nil
	case FuncSquare:
		return z.Mul(x, x), nil
	case FuncCube:
		z.Mul(x, x)
		return z.Mul(z, x), nil
	case FuncSqrt:
		if x.Sign() < 0 {
			return nil, &DomainError{X: fx, Func: fn.String()}
		}
		return z.Sqrt(x), nil
	case FuncCbrt:
		if x.Sign() == 0 {
			return z, nil
		}
		third := m.fresh().Quo(big.NewFloat(1), big.NewFloat(3))
		bigfloat.Pow(z, new(big.Float).Abs(x), third)
		if x.Sign() < 0 {
			z.Neg(z)
		}
		return z, nil
	case FuncInv:
		if x.Sign() == 0 {
			return nil, &DomainError{X: 0, Func: fn.String()}
		}
		return z.Quo(big.NewFloat(1), x), nil
	case FuncAbs:
		return z.Abs(x), nil
	case FuncFloor, FuncCeil:
		n, acc := x.Int(nil)
		// Int truncates toward zero, so adjust when it went the wrong way.
		if fn == FuncFloor && acc == big.Above {
			n.Sub(n, big.NewInt(1))
		}
		if fn == FuncCeil && acc == big.Below {
			n.Add(n, big.NewInt(1))
		}
		return z.SetInt(n), nil
	case FuncFactorial:
		if x.Sign() < 0 || x.IsInf() || !x.IsInt() {
			return nil, &DomainError{X: fx, Func: fn.String()}
		}
		if x.Cmp(big.NewFloat(MaxFactorial)) > 0 {
			return nil, &OverflowError{X: fx, Func: fn.String()}
		}
		n, _ := x.Int64()
		return z.SetInt(new(big.Int).MulRange(1, n)), nil
	default:
		// No arbitrary-precision implementation. Use float64.
		f := functions[fn]
		if f.angular && m.unit == Degrees {
			fx = toRad(fx)
		}
		r, err := f.apply(fx)
		if err != nil {
			return nil, err
		}
		if math.IsInf(r, 0) || math.IsNaN(r) {
			x, _ := x.Float64()
			return nil, &DomainError{X: x, Func: f.name}
		}
		return z.SetFloat64(r), nil
	}
}
