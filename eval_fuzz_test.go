//go:build go1.18
// +build go1.18

package calc_test

import (
	"testing"

	"github.com/zephyrtronium/calc"
)

func FuzzEvaluate(f *testing.F) {
	f.Add("1+2*3")
	f.Add("-3^2")
	f.Add("sin(90)")
	f.Add("factorial(171)")
	f.Add("(1,2)")
	f.Fuzz(func(t *testing.T, s string) {
		r := calc.Evaluate(s, calc.Degrees)
		if !r.OK() && r.Value != 0 {
			t.Errorf("%q: failed with value %g", s, r.Value)
		}
	})
}

func FuzzCompile(f *testing.F) {
	f.Add("1+2*3")
	f.Add("sqrt 16 + 9")
	f.Add("1e+3_0")
	f.Fuzz(func(t *testing.T, s string) {
		p, err := calc.Compile(s)
		if err != nil {
			if calc.KindOf(err) != calc.Malformed {
				t.Errorf("%q: compile error %v is not malformed", s, err)
			}
			return
		}
		p.Eval(calc.Radians)
		p.EvalPrec(calc.Radians, 32)
	})
}
