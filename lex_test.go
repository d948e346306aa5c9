package calc

import (
	"errors"
	"reflect"
	"testing"
)

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []token
	}{
		// spaces
		{"", nil},
		{" \t \r\n ", nil},
		// numbers
		{"0", []token{{text: "0", kind: tokenNum, pos: 1}}},
		{"9876543210", []token{{text: "9876543210", kind: tokenNum, pos: 1, num: 9876543210}}},
		{"1 0", []token{{text: "1", kind: tokenNum, pos: 1, num: 1}, {text: "0", kind: tokenNum, pos: 3}}},
		{"1.5", []token{{text: "1.5", kind: tokenNum, pos: 1, num: 1.5}}},
		{".5", []token{{text: ".5", kind: tokenNum, pos: 1, num: 0.5}}},
		{"5.", []token{{text: "5.", kind: tokenNum, pos: 1, num: 5}}},
		{"1_000_000", []token{{text: "1_000_000", kind: tokenNum, pos: 1, num: 1e6}}},
		{"1e3", []token{{text: "1e3", kind: tokenNum, pos: 1, num: 1000}}},
		{"1e+3", []token{{text: "1e+3", kind: tokenNum, pos: 1, num: 1000}}},
		{"1E-3", []token{{text: "1E-3", kind: tokenNum, pos: 1, num: 0.001}}},
		{"1e-400", []token{{text: "1e-400", kind: tokenNum, pos: 1}}},
		{"1e3+2", []token{{text: "1e3", kind: tokenNum, pos: 1, num: 1000}, {text: "+", kind: tokenPunct, pos: 4}, {text: "2", kind: tokenNum, pos: 5, num: 2}}},
		{"2-1", []token{{text: "2", kind: tokenNum, pos: 1, num: 2}, {text: "-", kind: tokenPunct, pos: 2}, {text: "1", kind: tokenNum, pos: 3, num: 1}}},
		{"2pi", []token{{text: "2", kind: tokenNum, pos: 1, num: 2}, {text: "pi", kind: tokenIdent, pos: 2}}},
		// identifiers
		{"e", []token{{text: "e", kind: tokenIdent, pos: 1}}},
		{"log10", []token{{text: "log10", kind: tokenIdent, pos: 1}}},
		{"a_1", []token{{text: "a_1", kind: tokenIdent, pos: 1}}},
		{"Sin", []token{{text: "Sin", kind: tokenIdent, pos: 1}}},
		{"e(", []token{{text: "e", kind: tokenIdent, pos: 1}, {text: "(", kind: tokenPunct, pos: 2}}},
		// punctuation
		{"+-*/%^(),", []token{
			{text: "+", kind: tokenPunct, pos: 1},
			{text: "-", kind: tokenPunct, pos: 2},
			{text: "*", kind: tokenPunct, pos: 3},
			{text: "/", kind: tokenPunct, pos: 4},
			{text: "%", kind: tokenPunct, pos: 5},
			{text: "^", kind: tokenPunct, pos: 6},
			{text: "(", kind: tokenPunct, pos: 7},
			{text: ")", kind: tokenPunct, pos: 8},
			{text: ",", kind: tokenPunct, pos: 9},
		}},
		{" ( 1 ) ", []token{{text: "(", kind: tokenPunct, pos: 2}, {text: "1", kind: tokenNum, pos: 4, num: 1}, {text: ")", kind: tokenPunct, pos: 6}}},
	}
	for _, c := range cases {
		got, err := lex(c.src)
		if err != nil {
			t.Errorf("scanning %q: unexpected error %v", c.src, err)
			continue
		}
		if !reflect.DeepEqual(got, c.tokens) {
			t.Errorf("scanning %q: want %v, got %v", c.src, c.tokens, got)
		}
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		src  string
		kind string
		col  int
	}{
		{"1e", "number", 1},
		{"1e+", "number", 1},
		{"1.2.3", "number", 1},
		{".", "number", 1},
		{"2+1e400", "number", 3},
		{"$", "", 1},
		{"1 $", "", 3},
		{"π", "", 1},
		{"a$", "", 2},
		{"[1]", "", 1},
	}
	for _, c := range cases {
		toks, err := lex(c.src)
		if err == nil {
			t.Errorf("scanning %q: expected error, got tokens %v", c.src, toks)
			continue
		}
		var le *LexError
		if !errors.As(err, &le) {
			t.Errorf("scanning %q: expected *LexError, got %T (%v)", c.src, err, err)
			continue
		}
		if le.Kind != c.kind {
			t.Errorf("scanning %q: wrong kind: want %q, got %q", c.src, c.kind, le.Kind)
		}
		if le.Pos() != c.col {
			t.Errorf("scanning %q: wrong position: want %d, got %d", c.src, c.col, le.Pos())
		}
	}
}
