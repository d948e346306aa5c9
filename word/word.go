// Package word implements fixed-width integer arithmetic for a programmer's
// calculator: parsing and formatting in bases 2, 8, 10, and 16, masking to a
// word size, two's complement interpretation, and bitwise operators.
//
// Values are uint64 bit patterns. Operations mask their operands and results
// to the word size, so any uint64 is a valid input.
package word

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Base is a radix for parsing and formatting.
type Base int8

const (
	Dec Base = iota
	Hex
	Oct
	Bin
)

// ParseBase parses "HEX", "DEC", "OCT", or "BIN", in any case.
func ParseBase(s string) (Base, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HEX":
		return Hex, nil
	case "DEC":
		return Dec, nil
	case "OCT":
		return Oct, nil
	case "BIN":
		return Bin, nil
	default:
		return Dec, errors.Errorf("unknown base %q", s)
	}
}

// Radix returns the numeric radix of the base.
func (b Base) Radix() int {
	switch b {
	case Hex:
		return 16
	case Oct:
		return 8
	case Bin:
		return 2
	default:
		return 10
	}
}

func (b Base) String() string {
	switch b {
	case Hex:
		return "HEX"
	case Oct:
		return "OCT"
	case Bin:
		return "BIN"
	default:
		return "DEC"
	}
}

// prefix is the conventional literal prefix for the base.
func (b Base) prefix() string {
	switch b {
	case Hex:
		return "0X"
	case Oct:
		return "0O"
	case Bin:
		return "0B"
	default:
		return ""
	}
}

// Size is a word size in bits.
type Size uint8

const (
	Bits8  Size = 8
	Bits16 Size = 16
	Bits32 Size = 32
	Bits64 Size = 64
)

// ParseSize parses a word size of 8, 16, 32, or 64.
func ParseSize(s string) (Size, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > 64 || !Size(n).Valid() {
		return Bits64, errors.Errorf("invalid word size %q", s)
	}
	return Size(n), nil
}

// Valid reports whether w is 8, 16, 32, or 64.
func (w Size) Valid() bool {
	switch w {
	case Bits8, Bits16, Bits32, Bits64:
		return true
	default:
		return false
	}
}

// bits is the number of bits in w, treating invalid sizes as 64.
func (w Size) bits() uint {
	if !w.Valid() {
		return 64
	}
	return uint(w)
}

// Mask returns the all-ones pattern of the word size.
func (w Size) Mask() uint64 {
	return math.MaxUint64 >> (64 - w.bits())
}

var (
	// ErrInvalidNumber is the error for text which is not a number in the
	// requested base or which does not fit in 64 bits.
	ErrInvalidNumber = errors.New("invalid number")
	// ErrFraction is the error for a fractional point in a non-decimal
	// number.
	ErrFraction = errors.New("fraction in non-decimal number")
)

// Parse parses text as an integer in the given base. The text may have
// surrounding space, a sign, and the base's conventional prefix (0x, 0o, or
// 0b, in any case). A decimal fraction truncates toward zero. Negative
// values are returned in two's complement. Values must lie in
// [-2^63, 2^64-1].
func Parse(text string, base Base) (uint64, error) {
	clean := strings.ToUpper(strings.TrimSpace(text))
	if strings.Contains(clean, ".") {
		if base != Dec {
			return 0, errors.Wrapf(ErrFraction, "parsing %q as %v", text, base)
		}
		i := strings.IndexByte(clean, '.')
		if strings.Trim(clean[i+1:], "0123456789") != "" {
			return 0, errors.Wrapf(ErrInvalidNumber, "parsing %q as %v", text, base)
		}
		clean = clean[:i]
	}
	neg := false
	switch {
	case strings.HasPrefix(clean, "-"):
		neg = true
		clean = clean[1:]
	case strings.HasPrefix(clean, "+"):
		clean = clean[1:]
	}
	if p := base.prefix(); p != "" {
		clean = strings.TrimPrefix(clean, p)
	}
	if clean == "" || clean[0] == '+' || clean[0] == '-' {
		return 0, errors.Wrapf(ErrInvalidNumber, "parsing %q as %v", text, base)
	}
	n, err := strconv.ParseUint(clean, base.Radix(), 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidNumber, "parsing %q as %v", text, base)
	}
	if neg {
		if n > 1<<63 {
			return 0, errors.Wrapf(ErrInvalidNumber, "parsing %q as %v: out of range", text, base)
		}
		n = -n
	}
	return n, nil
}

// two64 is 2^64.
var two64 = new(big.Int).Lsh(big.NewInt(1), 64)

// Truncate converts a float to an integer bit pattern by truncating toward
// zero and reducing modulo 2^64, so negative values are two's complement.
// NaN and infinities give 0.
func Truncate(f float64) uint64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Trunc(f)
	if f >= math.MinInt64 && f < math.MaxInt64 {
		return uint64(int64(f))
	}
	n, _ := big.NewFloat(f).Int(nil)
	return FromInt(n)
}

// FromInt reduces n modulo 2^64, so negative values are two's complement.
func FromInt(n *big.Int) uint64 {
	// Mod is Euclidean, so the result is in [0, 2^64).
	return new(big.Int).Mod(n, two64).Uint64()
}

// Mask reduces n modulo 2^w.
func Mask(n uint64, w Size) uint64 {
	return n & w.Mask()
}

// Signed interprets the low w bits of v as a two's complement integer.
func Signed(v uint64, w Size) int64 {
	v = Mask(v, w)
	s := 64 - w.bits()
	return int64(v<<s) >> s
}

// Format renders n in the given base after masking it to w bits. If signed,
// the pattern is interpreted as two's complement, and negative values are
// written as a minus sign followed by the magnitude. Hexadecimal digits are
// uppercase. There is no prefix.
func Format(n uint64, base Base, w Size, signed bool) string {
	v := Mask(n, w)
	if signed {
		if s := Signed(v, w); s < 0 {
			// The negation is correct for MinInt64 as an unsigned value.
			return "-" + format(-uint64(s), base)
		}
	}
	return format(v, base)
}

func format(v uint64, base Base) string {
	return strings.ToUpper(strconv.FormatUint(v, base.Radix()))
}

// And is the bitwise conjunction of a and b masked to w bits.
func And(a, b uint64, w Size) uint64 {
	return Mask(a, w) & Mask(b, w)
}

// Or is the bitwise disjunction of a and b masked to w bits.
func Or(a, b uint64, w Size) uint64 {
	return Mask(a, w) | Mask(b, w)
}

// Xor is the bitwise exclusive disjunction of a and b masked to w bits.
func Xor(a, b uint64, w Size) uint64 {
	return Mask(a, w) ^ Mask(b, w)
}

// Not is the bitwise complement of a masked to w bits.
func Not(a uint64, w Size) uint64 {
	return Mask(^a, w)
}

// Shl shifts a left by n, both masked to w bits. Bits shifted past the word
// size are discarded, so a count of w or more gives 0.
func Shl(a, n uint64, w Size) uint64 {
	return Mask(Mask(a, w)<<Mask(n, w), w)
}

// Shr shifts a right by n, both masked to w bits. It is a logical shift; the
// sign bit is not extended. A count of w or more gives 0.
func Shr(a, n uint64, w Size) uint64 {
	return Mask(a, w) >> Mask(n, w)
}
