package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"math"
	"math/big"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/word"
)

func main() {
	c, args, err := load(os.Args[1:], os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().
		Level(level)

	s, err := c.settings()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid settings")
	}
	e := &evaluator{settings: s, out: os.Stdout, log: logger}

	switch {
	case c.Bits:
		r, err := bitwise(args, s)
		if err != nil {
			logger.Fatal().Err(err).Strs("args", args).Msg("bitwise operation failed")
		}
		fmt.Println(r)
	case c.Interactive:
		if err := repl(e); err != nil {
			logger.Fatal().Err(err).Msg("interactive session failed")
		}
	default:
		srcs, err := inputs(c.In, args, c.Lines)
		if err != nil {
			logger.Fatal().Err(err).Msg("reading input")
		}
		for _, src := range srcs {
			e.eval(src)
		}
	}
}

// inputs collects the expressions to evaluate: the contents of the named
// input file, or stdin if there is none and no arguments, followed by each
// argument. With lines, each non-blank line of a file is its own expression.
func inputs(inname string, args []string, lines bool) ([]string, error) {
	var srcs []string
	f, err := infile(inname, len(args) == 0)
	if err != nil {
		return nil, err
	}
	if f != nil {
		defer f.Close()
		s, err := expressions(f, lines)
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, s...)
	}
	return append(srcs, args...), nil
}

func infile(inname string, std bool) (io.ReadCloser, error) {
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, errors.Wrap(err, "opening input")
		}
		return f, nil
	case inname == "-", std:
		return io.NopCloser(os.Stdin), nil
	}
	return nil, nil
}

// expressions reads expressions from r, one per non-blank line if lines is
// set and otherwise all of r as one.
func expressions(r io.Reader, lines bool) ([]string, error) {
	if !lines {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.Wrap(err, "reading input")
		}
		if strings.TrimSpace(string(b)) == "" {
			return nil, nil
		}
		return []string{string(b)}, nil
	}
	var srcs []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		srcs = append(srcs, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading input")
	}
	return srcs, nil
}

// evaluator evaluates expressions and writes their results.
type evaluator struct {
	settings
	out io.Writer
	log zerolog.Logger
}

// eval evaluates src and writes one line of output: the value, or the error
// kind on failure. With echo, the compiled RPN is printed first.
func (e *evaluator) eval(src string) {
	p, err := calc.Compile(src)
	if err != nil {
		e.fail(src, err)
		return
	}
	e.log.Debug().Str("expr", src).Str("rpn", p.String()).Msg("compiled")
	if e.echo {
		fmt.Fprintf(e.out, "%v : ", p)
	}
	if e.prec != 0 {
		r, err := p.EvalPrec(e.unit, e.prec)
		if err != nil {
			e.fail(src, err)
			return
		}
		f, _ := r.Float64()
		e.result(r, f, r.IsInt())
		return
	}
	r, err := p.Eval(e.unit)
	if err != nil {
		e.fail(src, err)
		return
	}
	e.result(r, r, r == math.Trunc(r))
}

// result writes a value with the result format, followed by its rendering in
// the integer base if it is integral and the base is not decimal.
func (e *evaluator) result(v interface{}, f float64, integral bool) {
	fmt.Fprintf(e.out, e.verb, v)
	if integral && e.base != word.Dec {
		n := word.Truncate(f)
		if b, ok := v.(*big.Float); ok {
			i, _ := b.Int(nil)
			n = word.FromInt(i)
		}
		fmt.Fprintf(e.out, " (%v %s)", e.base, word.Format(n, e.base, e.size, e.signed))
	}
	fmt.Fprintln(e.out)
}

func (e *evaluator) fail(src string, err error) {
	k := calc.KindOf(err)
	e.log.Warn().Err(err).Str("expr", src).Stringer("kind", k).Msg("evaluation failed")
	fmt.Fprintln(e.out, k)
}

var binaryOps = map[string]func(a, b uint64, w word.Size) uint64{
	"and": word.And,
	"or":  word.Or,
	"xor": word.Xor,
	"shl": word.Shl,
	"shr": word.Shr,
}

// bitwise evaluates OP A [B], with operands parsed and the result formatted in
// the configured base and word size.
func bitwise(args []string, s settings) (string, error) {
	if len(args) < 2 {
		return "", errors.New("usage: OP A [B]")
	}
	op := strings.ToLower(args[0])
	a, err := word.Parse(args[1], s.base)
	if err != nil {
		return "", err
	}
	if op == "not" {
		if len(args) != 2 {
			return "", errors.Errorf("%s takes one operand, have %d", op, len(args)-1)
		}
		return word.Format(word.Not(a, s.size), s.base, s.size, s.signed), nil
	}
	f := binaryOps[op]
	if f == nil {
		return "", errors.Errorf("unknown operator %q", args[0])
	}
	if len(args) != 3 {
		return "", errors.Errorf("%s takes two operands, have %d", op, len(args)-1)
	}
	b, err := word.Parse(args[2], s.base)
	if err != nil {
		return "", err
	}
	return word.Format(f(a, b, s.size), s.base, s.size, s.signed), nil
}
