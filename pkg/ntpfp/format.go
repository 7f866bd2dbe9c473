package ntpfp

// MaxLen is the longest text Append can produce: sign, six integer digits
// (five plus a carry), the point and six fractional digits.
const MaxLen = 1 + maxIntDigits + 1 + 1 + maxFracDigits

// Format renders v in decimal.
//
// fractionDigits is the number of digits after the point, capped at 6; zero
// or less drops the point. In msec mode the first three fractional digits
// are shown before the point as a millisecond count, at least those three
// digits are always generated and at most six in total. The last digit is
// rounded half up.
func Format(v Short, negative bool, fractionDigits int, msec bool) string {
	return string(Append(make([]byte, 0, MaxLen), v, negative, fractionDigits, msec))
}

// Append is Format writing into dst. At most MaxLen bytes are appended.
func Append(dst []byte, v Short, negative bool, fractionDigits int, msec bool) []byte {
	var d digits
	d.extractInteger(v.Integer())

	count := fractionDigits
	d.point = boundary
	if msec {
		count = max(min(fractionDigits, maxFracDigits)+msecDigits, msecDigits)
		d.point = boundary + msecDigits
	}
	count = min(count, maxFracDigits)

	d.round(d.generateFraction(v.Fraction(), count))
	d.trim()
	return d.render(dst, negative)
}

// Seconds renders an unsigned value with the given number of fractional
// digits.
func Seconds(v Short, fractionDigits int) string {
	return Format(v, false, fractionDigits, false)
}

// Millis renders an unsigned value as milliseconds with the given number of
// digits after the point.
func Millis(v Short, fractionDigits int) string {
	return Format(v, false, fractionDigits, true)
}

// Request bundles the arguments of Format.
type Request struct {
	Value          Short
	Negative       bool
	FractionDigits int
	Msec           bool
}

func (r Request) String() string {
	return Format(r.Value, r.Negative, r.FractionDigits, r.Msec)
}

// AppendTo is Append driven by r.
func (r Request) AppendTo(dst []byte) []byte {
	return Append(dst, r.Value, r.Negative, r.FractionDigits, r.Msec)
}
