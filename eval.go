package calc

import (
	"math"
)

// machine holds the value stack for one evaluation of a program.
type machine struct {
	stack []float64
	unit  AngleUnit
}

// push adds a value to the stack.
func (m *machine) push(x float64) {
	m.stack = append(m.stack, x)
}

// pop removes the top from the stack and returns it.
func (m *machine) pop() float64 {
	r := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return r
}

// run evaluates an RPN program.
func (m *machine) run(rpn []item) (float64, error) {
	for _, it := range rpn {
		if err := m.step(it); err != nil {
			return 0, err
		}
	}
	if len(m.stack) != 1 {
		return 0, &StackError{Len: len(m.stack)}
	}
	return m.stack[0], nil
}

// step evaluates a single item.
func (m *machine) step(it item) error {
	switch it.kind {
	case itemNum:
		m.push(it.num)
	case itemOp:
		op := operators[it.op]
		if len(m.stack) < int(op.arity) {
			return &StackError{Col: it.pos, Item: op.sym}
		}
		var a, b float64
		if op.arity == 2 {
			b = m.pop()
		}
		a = m.pop()
		r := op.apply(a, b)
		if math.IsInf(r, 0) || math.IsNaN(r) {
			// Report the divisor for divisions and the left operand
			// otherwise.
			x := a
			if it.op == OpDiv || it.op == OpMod {
				x = b
			}
			return &DomainError{X: x, Func: op.sym}
		}
		m.push(r)
	case itemFunc:
		fn := functions[it.fn]
		if len(m.stack) < 1 {
			return &StackError{Col: it.pos, Item: fn.name}
		}
		x := m.pop()
		in := x
		if fn.angular && m.unit == Degrees {
			in = toRad(x)
		}
		r, err := fn.apply(in)
		if err != nil {
			return err
		}
		if math.IsInf(r, 0) || math.IsNaN(r) {
			return &DomainError{X: x, Func: fn.name}
		}
		m.push(r)
	default:
		panic("calc: invalid RPN item " + it.String())
	}
	return nil
}
