// Package ntpfp renders NTP short-format fixed-point values (16 bit integer
// part, 16 bit binary fraction) as decimal ASCII without touching floating
// point.
package ntpfp

// Short is an unsigned 16.16 fixed-point value:
// value = Integer() + Fraction()/65536.
type Short uint32

const (
	fracBits = 16
	fracMask = 1<<fracBits - 1
)

// New builds a Short from its integer and fraction halves.
func New(integer, fraction uint16) Short {
	return Short(uint32(integer)<<fracBits | uint32(fraction))
}

// Integer returns the upper 16 bits.
func (v Short) Integer() uint16 {
	return uint16(v >> fracBits)
}

// Fraction returns the lower 16 bits, in units of 1/65536.
func (v Short) Fraction() uint16 {
	return uint16(v & fracMask)
}

// String renders v with six fractional digits.
func (v Short) String() string {
	return Seconds(v, maxFracDigits)
}

// AppendText appends the String form of v to b.
func (v Short) AppendText(b []byte) ([]byte, error) {
	return Append(b, v, false, maxFracDigits, false), nil
}

func (v Short) MarshalText() ([]byte, error) {
	return v.AppendText(make([]byte, 0, MaxLen))
}

// UnmarshalText accepts anything Parse accepts.
func (v *Short) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*v = parsed
	return nil
}
