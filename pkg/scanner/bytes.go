package scanner

// ScanDigits returns the length of the leading run of decimal digits.
func ScanDigits(s string) int {
	i := 0
	for i < len(s) && IsDigit(s[i]) {
		i++
	}
	return i
}

// ScanHexDigits returns the length of the leading run of hex digits.
func ScanHexDigits(s string) int {
	i := 0
	for i < len(s) && HexValue(s[i]) >= 0 {
		i++
	}
	return i
}

// HasHexPrefix reports whether s starts with 0x or 0X.
func HasHexPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// HexValue returns the value of a hex digit, or -1.
func HexValue(b byte) int {
	switch {
	case IsDigit(b):
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	default:
		return -1
	}
}

func IsDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func IsSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// TrimSpace strips IsSpace bytes from both ends.
func TrimSpace(s string) string {
	for len(s) > 0 && IsSpace(s[0]) {
		s = s[1:]
	}
	for len(s) > 0 && IsSpace(s[len(s)-1]) {
		s = s[:len(s)-1]
	}
	return s
}
