package calc

import "strings"

// item is an element of an RPN program. On the translator's operator stack,
// it may also be an open parenthesis.
type item struct {
	kind itemKind
	// pos is the column of the token that produced the item.
	pos int
	// num is the value of an itemNum.
	num float64
	// text is the source text of an itemNum, or the constant name it came
	// from. Precision evaluation reparses it.
	text string
	op   Op
	fn   Func
}

type itemKind int8

const (
	itemNone itemKind = iota
	itemNum           // push num
	itemOp            // apply op to the top one or two values
	itemFunc          // apply fn to the top value
	itemOpen          // only on the operator stack
)

func (it item) String() string {
	switch it.kind {
	case itemNum:
		return it.text
	case itemOp:
		return it.op.String()
	case itemFunc:
		return it.fn.String()
	case itemOpen:
		return "("
	default:
		return "$"
	}
}

// prev is the kind of the previous token for the purposes of deciding
// whether a minus sign is negation.
type prev int8

const (
	prevStart prev = iota
	prevValue      // number, constant, or function name
	prevOpen
	prevClose
	prevOp
)

// translate converts a token sequence to RPN using the shunting-yard
// algorithm.
func translate(toks []token) ([]item, error) {
	out := make([]item, 0, len(toks))
	var stack []item
	last := prevStart
	for _, tok := range toks {
		switch tok.kind {
		case tokenNum:
			out = append(out, item{kind: itemNum, pos: tok.pos, num: tok.num, text: tok.text})
			last = prevValue
		case tokenIdent:
			if fn := LookupFunc(tok.text); fn != FuncNone {
				stack = append(stack, item{kind: itemFunc, pos: tok.pos, fn: fn})
			} else if v, ok := constants[tok.text]; ok {
				out = append(out, item{kind: itemNum, pos: tok.pos, num: v, text: tok.text})
			} else {
				return nil, &NameError{Col: tok.pos, Name: tok.text}
			}
			last = prevValue
		case tokenPunct:
			switch tok.text {
			case "(":
				stack = append(stack, item{kind: itemOpen, pos: tok.pos})
				last = prevOpen
			case ")":
				var ok bool
				out, stack, ok = popUntilOpen(out, stack)
				if !ok {
					return nil, &BracketError{Col: tok.pos, Right: ")"}
				}
				// Discard the open bracket. If a function is under it, this
				// closes the call.
				stack = stack[:len(stack)-1]
				if n := len(stack); n > 0 && stack[n-1].kind == itemFunc {
					out = append(out, stack[n-1])
					stack = stack[:n-1]
				}
				last = prevClose
			case ",":
				// Arguments are separated, but all functions are monadic, so
				// extra arguments are left over at evaluation.
				var ok bool
				out, stack, ok = popUntilOpen(out, stack)
				if !ok {
					return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
				}
			default:
				op := binop(tok.text)
				if op == OpSub && (last == prevStart || last == prevOpen || last == prevOp) {
					op = OpNeg
				}
				if op == OpNone {
					panic("calc: unknown operator " + tok.String())
				}
				out, stack = popFor(op, out, stack)
				stack = append(stack, item{kind: itemOp, pos: tok.pos, op: op})
				last = prevOp
			}
		default:
			panic("calc: unknown token: " + tok.String())
		}
	}
	for len(stack) > 0 {
		n := len(stack) - 1
		it := stack[n]
		stack = stack[:n]
		if it.kind == itemOpen {
			return nil, &BracketError{Col: it.pos, Left: "("}
		}
		out = append(out, it)
	}
	return out, nil
}

// popUntilOpen moves operators and functions from the stack to the output
// until an open bracket is on top. The bracket stays on the stack. If there
// is no open bracket, the result is false.
func popUntilOpen(out, stack []item) ([]item, []item, bool) {
	for n := len(stack); n > 0; n = len(stack) {
		if stack[n-1].kind == itemOpen {
			return out, stack, true
		}
		out = append(out, stack[n-1])
		stack = stack[:n-1]
	}
	return out, stack, false
}

// popFor moves the functions and operators from the stack to the output
// which must complete before op.
func popFor(op Op, out, stack []item) ([]item, []item) {
	if operators[op].arity == 1 {
		// A prefix operator has no left operand, so nothing it could complete
		// is on the stack.
		return out, stack
	}
	for n := len(stack); n > 0; n = len(stack) {
		top := stack[n-1]
		switch top.kind {
		case itemFunc:
		case itemOp:
			if !top.op.yields(op) {
				return out, stack
			}
		default:
			return out, stack
		}
		out = append(out, top)
		stack = stack[:n-1]
	}
	return out, stack
}

// yields reports whether op, already on the operator stack, must be output
// before pushing next. A prefix operator waits for a right-associative
// operator, so -3^2 is -(3^2).
func (op Op) yields(next Op) bool {
	p, q := operators[op], operators[next]
	if q.right {
		if p.arity == 1 {
			return false
		}
		return p.prec > q.prec
	}
	return p.prec >= q.prec
}

// formatRPN writes a program as space-separated items.
func formatRPN(rpn []item) string {
	var b strings.Builder
	for i, it := range rpn {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(it.String())
	}
	return b.String()
}
