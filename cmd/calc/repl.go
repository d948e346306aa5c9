package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/word"
)

// errQuit is returned by command for :quit.
var errQuit = errors.New("quit")

func repl(e *evaluator) error {
	rl, err := readline.New(e.prompt())
	if err != nil {
		return errors.Wrap(err, "starting readline")
	}
	defer rl.Close()
	e.out = rl.Stdout()
	for {
		line, err := rl.Readline()
		switch {
		case err == readline.ErrInterrupt:
			if line == "" {
				return nil
			}
			continue
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, ":"):
			err := e.command(line)
			if err == errQuit {
				return nil
			}
			if err != nil {
				fmt.Fprintln(e.out, err)
			}
			rl.SetPrompt(e.prompt())
		default:
			e.eval(line)
		}
	}
}

func (e *evaluator) prompt() string {
	if e.base == word.Dec {
		return fmt.Sprintf("%v> ", e.unit)
	}
	return fmt.Sprintf("%v %v/%d> ", e.unit, e.base, e.size)
}

// command applies a session command that changes the evaluator's settings.
func (e *evaluator) command(line string) error {
	f := strings.Fields(strings.TrimPrefix(line, ":"))
	if len(f) == 0 {
		return errors.New("empty command")
	}
	arg := func() (string, error) {
		if len(f) != 2 {
			return "", errors.Errorf(":%s takes one argument", f[0])
		}
		return f[1], nil
	}
	switch strings.ToLower(f[0]) {
	case "deg":
		e.unit = calc.Degrees
	case "rad":
		e.unit = calc.Radians
	case "base":
		a, err := arg()
		if err != nil {
			return err
		}
		b, err := word.ParseBase(a)
		if err != nil {
			return err
		}
		e.base = b
	case "word":
		a, err := arg()
		if err != nil {
			return err
		}
		w, err := word.ParseSize(a)
		if err != nil {
			return err
		}
		e.size = w
	case "signed":
		e.signed = true
	case "unsigned":
		e.signed = false
	case "echo":
		e.echo = !e.echo
	case "quit", "q":
		return errQuit
	default:
		return errors.Errorf("unknown command :%s", f[0])
	}
	return nil
}
