package ntpfp

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yanun0323/pkg/sys"
)

func TestFormat(t *testing.T) {
	testCases := []struct {
		desc     string
		value    Short
		negative bool
		digits   int
		msec     bool
		expected string
	}{
		{"one with three digits", New(1, 0), false, 3, false, "1.000"},
		{"half with one digit", New(0, 0x8000), false, 1, false, "0.5"},
		{"half rounds integer up without digits", New(0, 0x8000), false, 0, false, "1"},
		{"just below half keeps integer", New(0, 0x7fff), false, 0, false, "0"},
		{"zero", 0, false, 0, false, "0"},
		{"zero with digits", 0, false, 3, false, "0.000"},
		{"negative digits drop point", New(12, 0x4000), false, -3, false, "12"},
		{"quarter", New(2, 0x4000), false, 2, false, "2.25"},
		{"carry into integer zero", New(0, 0xffff), false, 4, false, "1.0000"},
		{"no carry at six digits", New(0, 0xffff), false, 6, false, "0.999985"},
		{"carry widens integer", New(9, 0xffff), false, 4, false, "10.0000"},
		{"carry through max integer", New(65535, 0xffff), false, 4, false, "65536.0000"},
		{"max value", Short(0xffffffff), false, 6, false, "65535.999985"},
		{"clamped to six digits", New(3, 0x8000), false, 40, false, "3.500000"},
		{"negative", New(65535, 0xffff), true, 4, false, "-65536.0000"},
		{"negative zero", 0, true, 0, false, "-0"},
		{"msec whole", New(1, 0x8000), false, 0, true, "1500"},
		{"msec floors at three digits", New(1, 0x8000), false, -4, true, "1500"},
		{"msec with digits", New(1, 0x8000), false, 2, true, "1500.00"},
		{"msec clamped", New(1, 0x8000), false, 10, true, "1500.000"},
		{"msec trims leading zeros", New(0, 786), false, 0, true, "12"},
		{"msec half second", New(0, 0x8000), false, 0, true, "500"},
		{"msec zero", 0, false, 0, true, "0"},
		{"msec zero with digits", 0, false, 2, true, "0.00"},
		{"msec max value", Short(0xffffffff), false, 3, true, "65535999.985"},
		{"msec negative", New(2, 0), true, 1, true, "-2000.0"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			got := Format(tc.value, tc.negative, tc.digits, tc.msec)
			assert.Equal(t, tc.expected, got)
			assert.LessOrEqual(t, len(got), MaxLen)
		})
	}
}

func TestFormatIntegerSweep(t *testing.T) {
	for i := 0; i <= 0xffff; i++ {
		expected := strconv.Itoa(i)
		if got := Format(New(uint16(i), 0), false, 0, false); got != expected {
			t.Fatalf("integer %d: should be %s but got %s", i, expected, got)
		}
		if got := Format(New(uint16(i), 0x7fff), false, 0, false); got != expected {
			t.Fatalf("integer %d below half: should be %s but got %s", i, expected, got)
		}
	}
}

func TestFormatZero(t *testing.T) {
	for digits := -2; digits <= 10; digits++ {
		got := Format(0, false, digits, false)
		n := min(max(digits, 0), maxFracDigits)
		if n == 0 {
			assert.Equal(t, "0", got)
			continue
		}
		assert.Equal(t, "0."+strings.Repeat("0", n), got)
	}
}

func TestFormatNegativeOnlyAddsSign(t *testing.T) {
	for v := uint64(0); v <= 0xffffffff; v += 104729 {
		for digits := -1; digits <= 7; digits++ {
			for _, msec := range []bool{false, true} {
				pos := Format(Short(v), false, digits, msec)
				neg := Format(Short(v), true, digits, msec)
				require.Equal(t, "-"+pos, neg, "value %#x digits %d msec %v", v, digits, msec)
			}
		}
	}
}

func TestFormatFractionDigitCount(t *testing.T) {
	v := New(42, 0x1234)
	for digits := -3; digits <= 12; digits++ {
		got := Format(v, false, digits, false)
		_, frac, found := strings.Cut(got, ".")
		want := min(max(digits, 0), maxFracDigits)
		assert.Equal(t, want != 0, found, "digits %d: %s", digits, got)
		assert.Len(t, frac, want, "digits %d: %s", digits, got)

		got = Format(v, false, digits, true)
		whole, frac, _ := strings.Cut(got, ".")
		assert.Len(t, frac, min(max(digits, 0), maxFracDigits-msecDigits), "msec digits %d: %s", digits, got)
		assert.True(t, strings.HasPrefix(whole, "42"), "msec digits %d: %s", digits, got)
		assert.Len(t, whole, 5, "msec digits %d: %s", digits, got)
	}
}

func TestFormatMatchesParse(t *testing.T) {
	for v := uint64(0); v <= 0xffffffff; v += 7919 {
		parsed, err := Parse(Format(Short(v), false, 6, false))
		require.NoError(t, err)
		require.Equal(t, Short(v), parsed, "value %#x", v)
	}
}

func TestAppendReusesBuffer(t *testing.T) {
	buf := make([]byte, 0, MaxLen)
	buf = Append(buf, New(7, 0x2000), true, 3, false)
	assert.Equal(t, "-7.125", string(buf))

	buf = Append(buf[:0], New(7, 0x2000), false, 1, true)
	assert.Equal(t, "7125.0", string(buf))

	allocs := testing.AllocsPerRun(100, func() {
		buf = Append(buf[:0], Short(0xffffffff), true, 6, false)
	})
	assert.Zero(t, allocs)

	alloc, bytes := sys.MeasureMem(func() {
		for i := 0; i < 1000; i++ {
			buf = Append(buf[:0], Short(i), false, 6, false)
		}
	})
	t.Logf("a: %d, b: %d", alloc, bytes)
}

func TestWrappers(t *testing.T) {
	v := New(3, 0x8000)
	assert.Equal(t, "3.50", Seconds(v, 2))
	assert.Equal(t, "3500.0", Millis(v, 1))
	assert.Equal(t, "3.500000", v.String())
	assert.Equal(t, uint16(3), v.Integer())
	assert.Equal(t, uint16(0x8000), v.Fraction())
}

func TestTextMarshaling(t *testing.T) {
	text, err := New(1, 0x4000).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1.250000", string(text))

	var v Short
	require.NoError(t, v.UnmarshalText([]byte("0x00018000")))
	assert.Equal(t, New(1, 0x8000), v)

	require.NoError(t, v.UnmarshalText(text))
	assert.Equal(t, New(1, 0x4000), v)

	require.Error(t, v.UnmarshalText([]byte("one")))
	assert.Equal(t, New(1, 0x4000), v)
}

func BenchmarkFormat(b *testing.B) {
	for b.Loop() {
		s := Format(Short(0xffffffff), true, 6, false)
		_ = s
	}
}

func BenchmarkAppend(b *testing.B) {
	buf := make([]byte, 0, MaxLen)
	for b.Loop() {
		buf = Append(buf[:0], Short(0xffffffff), true, 6, false)
	}
}

func TestRequest(t *testing.T) {
	r := Request{Value: New(1, 0x8000), Negative: true, FractionDigits: 1, Msec: true}
	assert.Equal(t, "-1500.0", r.String())
	assert.Equal(t, "x=-1500.0", string(r.AppendTo([]byte("x="))))
}
