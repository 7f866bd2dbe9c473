package ntpfp

import (
	"math"
	"math/bits"

	"github.com/yanun0323/errors"

	"github.com/tparks5/ntpsec/pkg/exception"
	"github.com/tparks5/ntpsec/pkg/scanner"
)

// maxParseFracDigits keeps the scaled fraction inside one uint64 division.
const maxParseFracDigits = 19

var pow10 = [maxParseFracDigits + 1]uint64{
	1, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9,
	1e10, 1e11, 1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18, 1e19,
}

// Parse reads s as hex when it carries a 0x prefix and as decimal otherwise.
// Surrounding whitespace is ignored.
func Parse(s string) (Short, error) {
	s = scanner.TrimSpace(s)
	if scanner.HasHexPrefix(s) {
		return ParseHex(s)
	}

	return ParseDecimal(s)
}

// ParseHex reads the raw 32 bit pattern, with or without a 0x prefix.
func ParseHex(s string) (Short, error) {
	s = scanner.TrimSpace(s)
	hex := s
	if scanner.HasHexPrefix(hex) {
		hex = hex[2:]
	}

	n := scanner.ScanHexDigits(hex)
	if n == 0 || n != len(hex) {
		return 0, errors.Wrapf(exception.ErrSyntax, "parse hex %q", s)
	}

	var v uint64
	for i := 0; i < n; i++ {
		v = v<<4 | uint64(scanner.HexValue(hex[i]))
		if v > math.MaxUint32 {
			return 0, errors.Wrapf(exception.ErrOutOfRange, "parse hex %q", s)
		}
	}

	return Short(v), nil
}

// ParseDecimal reads int[.frac] and rounds the fraction to the nearest
// 1/65536, ties up. Either side of the point may be empty but not both.
func ParseDecimal(s string) (Short, error) {
	s = scanner.TrimSpace(s)
	intLen := scanner.ScanDigits(s)

	var frac string
	if rest := s[intLen:]; len(rest) != 0 {
		if rest[0] != '.' {
			return 0, errors.Wrapf(exception.ErrSyntax, "parse decimal %q", s)
		}
		frac = rest[1:]
		if scanner.ScanDigits(frac) != len(frac) {
			return 0, errors.Wrapf(exception.ErrSyntax, "parse decimal %q", s)
		}
	}

	if intLen == 0 && len(frac) == 0 {
		return 0, errors.Wrapf(exception.ErrSyntax, "parse decimal %q", s)
	}

	var integer uint64
	for i := 0; i < intLen; i++ {
		integer = integer*10 + uint64(s[i]-'0')
		if integer > math.MaxUint16 {
			return 0, errors.Wrapf(exception.ErrOutOfRange, "parse decimal %q", s)
		}
	}

	for len(frac) != 0 && frac[len(frac)-1] == '0' {
		frac = frac[:len(frac)-1]
	}
	if len(frac) > maxParseFracDigits {
		return 0, errors.Wrapf(exception.ErrOutOfRange, "parse decimal %q: more than %d fraction digits", s, maxParseFracDigits)
	}

	fraction, carry := scaleFraction(frac)
	integer += carry
	if integer > math.MaxUint16 {
		return 0, errors.Wrapf(exception.ErrOutOfRange, "parse decimal %q", s)
	}

	return New(uint16(integer), fraction), nil
}

// scaleFraction converts the digits after a decimal point into units of
// 1/65536. carry is 1 when the fraction rounds up to a whole unit.
func scaleFraction(digits string) (fraction uint16, carry uint64) {
	if len(digits) == 0 {
		return 0, 0
	}

	var num uint64
	for i := 0; i < len(digits); i++ {
		num = num*10 + uint64(digits[i]-'0')
	}

	den := pow10[len(digits)]
	hi, lo := bits.Mul64(num, 1<<fracBits)
	q, r := bits.Div64(hi, lo, den)
	if r >= den-r {
		q++
	}

	return uint16(q & fracMask), q >> fracBits
}
