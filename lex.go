package calc

import (
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
)

type token struct {
	text string
	kind tokenKind
	pos  int
	// num is the value of a tokenNum.
	num float64
}

func (t token) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenNum is a decimal literal, possibly with a fraction and exponent.
	tokenNum
	// tokenIdent is a function or constant name.
	tokenIdent
	// tokenPunct is an operator, a parenthesis, or a comma.
	tokenPunct
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenNum:
		return "Num"
	case tokenIdent:
		return "Ident"
	case tokenPunct:
		return "Punct"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Punctuation contains the runes which lex as single-character tokens.
const Punctuation = "+-*/%^(),"

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
}

// lex scans all of src into tokens.
func lex(src string) ([]token, error) {
	l := lexer{src: strings.NewReader(src)}
	var toks []token
	for {
		tok, err := l.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return toks, nil
			}
			return nil, err
		}
		toks = append(toks, tok)
	}
}

// readRune reads one rune and advances the column.
func (l *lexer) readRune() (rune, error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune backs up one column. The source is a strings.Reader, which
// always permits unreading the last rune read.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic("calc: " + err.Error())
	}
	l.rune--
}

// next scans the next token from the input. At the end of the input, the
// error is io.EOF.
func (l *lexer) next() (token, error) {
	defer l.buf.Reset()
	for {
		r, err := l.readRune()
		if err != nil {
			return token{}, err
		}
		tok := token{pos: l.rune}
		switch {
		case unicode.IsSpace(r):
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			if err := l.scanNum(); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenNum
			// Underscores group digits and don't count.
			v, err := strconv.ParseFloat(strings.ReplaceAll(tok.text, "_", ""), 64)
			if err != nil && !errors.Is(err, strconv.ErrRange) || math.IsInf(v, 0) {
				// Underflow to zero is fine. Overflow to infinity is not.
				return tok, l.error("number", tok.pos)
			}
			tok.num = v
			return tok, nil
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
			l.unreadRune()
			l.scanIdent()
			tok.text = l.buf.String()
			tok.kind = tokenIdent
			return tok, nil
		case strings.ContainsRune(Punctuation, r):
			tok.text = string(r)
			tok.kind = tokenPunct
			return tok, nil
		default:
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, l.error("", tok.pos)
		}
	}
}

// scanNum collects the text of a number. Validity is decided by the caller
// when it converts the text.
func (l *lexer) scanNum() error {
	// le is whether the last rune was an exponent marker.
	var le bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		switch {
		case '0' <= r && r <= '9', r == '.', r == '_':
			le = false
		case r == 'e', r == 'E':
			le = true
		case r == '+', r == '-':
			// + or - anywhere other than immediately following an exponent
			// marker means a new token, as it is an operator.
			if !le {
				l.unreadRune()
				return nil
			}
			le = false
		default:
			l.unreadRune()
			return nil
		}
		l.buf.WriteRune(r)
	}
}

func (l *lexer) scanIdent() {
	for {
		r, err := l.readRune()
		if err != nil {
			// next unreads the rune that decides ident scanning before
			// calling scanIdent, so we have scanned at least one rune.
			return
		}
		switch {
		case r == '_', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
			l.buf.WriteRune(r)
		default:
			l.unreadRune()
			return
		}
	}
}

func (l *lexer) error(kind string, col int) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  col,
	}
}
