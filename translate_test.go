package calc

import (
	"errors"
	"testing"
)

func TestTranslate(t *testing.T) {
	cases := []struct {
		name string
		src  string
		rpn  string
	}{
		{"num", "1", "1"},
		{"add", "1+2", "1 2 +"},
		{"prec", "1+2*3", "1 2 3 * +"},
		{"parens", "(1+2)*3", "1 2 + 3 *"},
		{"left-assoc", "1-2-3", "1 2 - 3 -"},
		{"left-assoc-mul", "8/4*2", "8 4 / 2 *"},
		{"mod", "7%4*2", "7 4 % 2 *"},
		{"right-assoc", "2^3^2", "2 3 2 ^ ^"},
		{"neg", "-1", "1 neg"},
		{"neg-pow", "-3^2", "3 2 ^ neg"},
		{"neg-mul", "-3*2", "3 neg 2 *"},
		{"neg-add", "-3+2", "3 neg 2 +"},
		{"neg-neg", "--3", "3 neg neg"},
		{"pow-neg", "2^-3", "2 3 neg ^"},
		{"pow-neg-pow", "2^-3^2", "2 3 2 ^ neg ^"},
		{"mul-neg", "2*-3", "2 3 neg *"},
		{"paren-neg", "(-3)^2", "3 neg 2 ^"},
		{"sub", "2-3", "2 3 -"},
		{"sub-paren", "(2)-3", "2 3 -"},
		{"const", "pi", "pi"},
		{"const-e", "2*e", "2 e *"},
		{"call", "sin(1)", "1 sin"},
		{"call-expr", "sqrt(1+2)*3", "1 2 + sqrt 3 *"},
		{"call-bare", "sqrt 16", "16 sqrt"},
		{"call-bare-op", "sqrt 16 + 9", "16 sqrt 9 +"},
		{"call-nested", "abs(floor(-1.5))", "1.5 neg floor abs"},
		{"call-pow", "sin(1)^2", "1 sin 2 ^"},
		{"neg-call", "-cos(0)", "0 cos neg"},
		{"separator", "sin(1,2)", "1 2 sin"},
		// A separator does not reset minus disambiguation, so the minus after
		// it takes the value before it as its left operand.
		{"separator-minus", "(1,-2)", "1 2 -"},
		{"separator-neg", "(1,(-2))", "1 2 neg"},
		// Structurally invalid, but the translator accepts them and leaves
		// the failure to evaluation.
		{"empty", "", ""},
		{"ops", "1+*2", "1 2 * +"},
		{"juxtaposed", "2 3", "2 3"},
		{"empty-parens", "()", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := lex(c.src)
			if err != nil {
				t.Fatalf("%q failed to lex: %v", c.src, err)
			}
			rpn, err := translate(toks)
			if err != nil {
				t.Fatalf("%q failed to translate: %v", c.src, err)
			}
			if got := formatRPN(rpn); got != c.rpn {
				t.Errorf("%q: wrong RPN: want %q, got %q", c.src, c.rpn, got)
			}
		})
	}
}

func TestTranslateErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  InputError
		col  int
	}{
		{"unclosed", "(1+2", &BracketError{}, 1},
		{"unclosed-inner", "2*(3*(4)", &BracketError{}, 3},
		{"unopened", "1+2)", &BracketError{}, 4},
		{"unopened-first", ")", &BracketError{}, 1},
		{"unknown-func", "foo(1)", &NameError{}, 1},
		{"unknown-name", "1+x", &NameError{}, 3},
		{"case", "PI", &NameError{}, 1},
		{"separator", "1,2", &SeparatorError{}, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := lex(c.src)
			if err != nil {
				t.Fatalf("%q failed to lex: %v", c.src, err)
			}
			rpn, err := translate(toks)
			if err == nil {
				t.Fatalf("%q: expected error, got %q", c.src, formatRPN(rpn))
			}
			var ie InputError
			if !errors.As(err, &ie) {
				t.Fatalf("%q: expected InputError, got %T (%v)", c.src, err, err)
			}
			if want, got := typename(c.err), typename(ie); want != got {
				t.Errorf("%q: wrong error type: want %s, got %s (%v)", c.src, want, got, err)
			}
			if ie.Pos() != c.col {
				t.Errorf("%q: wrong position: want %d, got %d", c.src, c.col, ie.Pos())
			}
		})
	}
}

func typename(err error) string {
	switch err.(type) {
	case *BracketError:
		return "BracketError"
	case *NameError:
		return "NameError"
	case *SeparatorError:
		return "SeparatorError"
	case *StackError:
		return "StackError"
	case *LexError:
		return "LexError"
	default:
		return "unknown"
	}
}
