package ntpfp

const (
	digitCap = 12

	// carrySlot is never written by digit extraction. It only receives the
	// carry out of a full run of nines.
	carrySlot = 0

	// boundary is the index of the first fractional digit. Integer digits
	// occupy [boundary-maxIntDigits, boundary).
	boundary = carrySlot + 1 + maxIntDigits

	maxIntDigits  = 5
	maxFracDigits = 6
	msecDigits    = 3
)

// digits is the scratch area of one conversion. Digits live in
// buf[start:end], the '.' is rendered in front of buf[point].
type digits struct {
	buf   [digitCap]uint8
	start int
	end   int
	point int
}

// extractInteger writes the decimal digits of n right-aligned against the
// boundary. A zero integer part claims the pre-zeroed cell left of the
// boundary.
func (d *digits) extractInteger(n uint16) {
	d.start, d.end = boundary, boundary
	if n == 0 {
		d.start--
		return
	}

	for n != 0 {
		if d.start <= carrySlot+1 {
			panic("ntpfp: integer digits overflow scratch buffer")
		}
		d.start--
		d.buf[d.start] = uint8(n % 10)
		n /= 10
	}
}

// generateFraction appends count digits of frac/65536 and returns the
// working value left after the last step. Bit 0x8000 of the result tells
// whether the remainder is at least half a unit in the last place. With no
// digits requested the raw fraction is returned.
func (d *digits) generateFraction(frac uint16, count int) uint32 {
	val := uint32(frac)
	for ; count > 0; count-- {
		if d.end >= digitCap {
			panic("ntpfp: fraction digits overflow scratch buffer")
		}
		val &= fracMask
		val *= 10
		d.buf[d.end] = uint8(val >> fracBits)
		d.end++
	}

	return val
}

// round adds one unit in the last place when the working value says so and
// ripples the carry left, widening start when it lands outside.
func (d *digits) round(work uint32) {
	if work&0x8000 == 0 {
		return
	}

	i := d.end - 1
	for {
		if i < carrySlot {
			panic("ntpfp: carry walked past scratch buffer start")
		}
		d.buf[i]++
		if d.buf[i] < 10 {
			break
		}
		d.buf[i] = 0
		i--
	}

	if i < d.start {
		d.start = i
	}
}

// trim drops leading zeros but keeps at least one digit before the point.
func (d *digits) trim() {
	for d.start < d.point-1 && d.buf[d.start] == 0 {
		d.start++
	}
}

func (d *digits) render(dst []byte, negative bool) []byte {
	if negative {
		dst = append(dst, '-')
	}

	for i := d.start; i < d.end; i++ {
		if i == d.point {
			dst = append(dst, '.')
		}
		dst = append(dst, '0'+d.buf[i])
	}

	return dst
}
