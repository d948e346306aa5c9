package main

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/word"
)

// config holds the command's options as given by flags and config files.
type config struct {
	Config      string `toml:"-" json:"-"`
	In          string `toml:"in" json:"in"`
	Fmt         string `toml:"fmt" json:"fmt"`
	Lines       bool   `toml:"lines" json:"lines"`
	Echo        bool   `toml:"echo" json:"echo"`
	Prec        uint   `toml:"prec" json:"prec"`
	Angle       string `toml:"angle" json:"angle"`
	Base        string `toml:"base" json:"base"`
	Word        int    `toml:"word" json:"word"`
	Signed      bool   `toml:"signed" json:"signed"`
	Bits        bool   `toml:"bits" json:"bits"`
	Interactive bool   `toml:"interactive" json:"interactive"`
	LogLevel    string `toml:"log_level" json:"log_level"`
}

func defaults() config {
	return config{
		Fmt:      "%g",
		Angle:    "RAD",
		Base:     "DEC",
		Word:     64,
		LogLevel: "info",
	}
}

func flags(c *config, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("calc", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&c.Config, "config", c.Config, "config file (.toml, .yaml, .yml, or .json)")
	fs.StringVar(&c.In, "in", c.In, "input file (default stdin if no args given)")
	fs.StringVar(&c.Fmt, "fmt", c.Fmt, "result formatting string")
	fs.BoolVar(&c.Lines, "n", c.Lines, "evaluate separate input lines as separate expressions")
	fs.BoolVar(&c.Echo, "echo", c.Echo, "print compiled RPN")
	fs.UintVar(&c.Prec, "p", c.Prec, "precision of calculations in bits (0 for float64)")
	fs.StringVar(&c.Angle, "angle", c.Angle, "angle unit, DEG or RAD")
	fs.StringVar(&c.Base, "base", c.Base, "integer base, HEX, DEC, OCT, or BIN")
	fs.IntVar(&c.Word, "word", c.Word, "integer word size in bits, 8, 16, 32, or 64")
	fs.BoolVar(&c.Signed, "signed", c.Signed, "interpret integers as two's complement")
	fs.BoolVar(&c.Bits, "bits", c.Bits, "evaluate a bitwise operation OP A [B] in the integer base")
	fs.BoolVar(&c.Interactive, "i", c.Interactive, "start an interactive session")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
	return fs
}

// load parses command-line arguments. If they name a config file, its values
// replace the defaults, and the flags are parsed again over them so that
// explicitly set flags win. It returns the remaining arguments.
func load(args []string, out io.Writer) (*config, []string, error) {
	c := defaults()
	fs := flags(&c, out)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if c.Config == "" {
		return &c, fs.Args(), nil
	}
	d := defaults()
	if err := decodeFile(c.Config, &d); err != nil {
		return nil, nil, err
	}
	fs = flags(&d, out)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return &d, fs.Args(), nil
}

// decodeFile decodes the named file into c, choosing the format by extension.
// Unknown keys are errors.
func decodeFile(name string, c *config) error {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".toml":
		md, err := toml.DecodeFile(name, c)
		if err != nil {
			return errors.Wrapf(err, "reading config %s", name)
		}
		if u := md.Undecoded(); len(u) != 0 {
			return errors.Errorf("reading config %s: unknown keys %v", name, u)
		}
	case ".yaml", ".yml", ".json":
		b, err := os.ReadFile(name)
		if err != nil {
			return errors.Wrap(err, "reading config")
		}
		if err := yaml.UnmarshalStrict(b, c); err != nil {
			return errors.Wrapf(err, "reading config %s", name)
		}
	default:
		return errors.Errorf("config %s: unknown format %q", name, ext)
	}
	return nil
}

// settings are the validated evaluation options.
type settings struct {
	unit   calc.AngleUnit
	base   word.Base
	size   word.Size
	signed bool
	prec   uint
	verb   string
	echo   bool
}

func (c *config) settings() (settings, error) {
	unit, err := calc.ParseAngleUnit(c.Angle)
	if err != nil {
		return settings{}, err
	}
	base, err := word.ParseBase(c.Base)
	if err != nil {
		return settings{}, err
	}
	size := word.Size(c.Word)
	if c.Word < 0 || c.Word > 64 || !size.Valid() {
		return settings{}, errors.Errorf("invalid word size %d", c.Word)
	}
	if c.Fmt == "" {
		return settings{}, errors.New("empty result format")
	}
	s := settings{
		unit:   unit,
		base:   base,
		size:   size,
		signed: c.Signed,
		prec:   c.Prec,
		verb:   c.Fmt,
		echo:   c.Echo,
	}
	return s, nil
}
