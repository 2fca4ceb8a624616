// Package hexfmt converts bytes to and from the textual digit forms the
// editor's cells display.
package hexfmt

import (
	"fmt"
	"strings"
)

// UpperHex formats a byte as two uppercase hex digits.
func UpperHex(b byte) string {
	return fmt.Sprintf("%02X", b)
}

// PaddedDec formats a byte as three decimal digits.
func PaddedDec(b byte) string {
	return fmt.Sprintf("%03d", b)
}

// DigitVal returns the numeric value of an ASCII hex digit. ok is false for
// non-digits.
func DigitVal(c byte) (v byte, ok bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// MergeHexHalves combines two ASCII hex digit characters into one byte,
// hi being the high nibble. Panics on non-digit input: validation happens
// at entry time, so a bad digit here is a caller bug.
func MergeHexHalves(hi, lo byte) byte {
	h, ok := DigitVal(hi)
	if !ok {
		panic(fmt.Sprintf("hexfmt: invalid hex digit %q", hi))
	}
	l, ok := DigitVal(lo)
	if !ok {
		panic(fmt.Sprintf("hexfmt: invalid hex digit %q", lo))
	}
	return h<<4 | l
}

// IsHexDigit reports whether c is a valid lowercase-or-digit hex character
// as typed in a hex cell.
func IsHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
}

// IsDecDigit reports whether c is a decimal digit.
func IsDecDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// ParseHexPattern converts a user-typed hex string into bytes. Accepts an
// optional 0x prefix, mixed case, and whitespace between byte pairs:
// "deadbeef", "0xDEADBEEF" and "de ad be ef" all parse to the same bytes.
func ParseHexPattern(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	compact := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' || c == '\t' {
			continue
		}
		compact = append(compact, c)
	}

	if len(compact) == 0 {
		return nil, fmt.Errorf("empty hex pattern")
	}
	if len(compact)%2 != 0 {
		return nil, fmt.Errorf("hex pattern has odd digit count %d", len(compact))
	}

	out := make([]byte, 0, len(compact)/2)
	for i := 0; i < len(compact); i += 2 {
		hi, ok := DigitVal(compact[i])
		if !ok {
			return nil, fmt.Errorf("invalid hex digit %q", compact[i])
		}
		lo, ok := DigitVal(compact[i+1])
		if !ok {
			return nil, fmt.Errorf("invalid hex digit %q", compact[i+1])
		}
		out = append(out, hi<<4|lo)
	}
	return out, nil
}

// Printable returns the glyph a text cell shows for b: the character itself
// for printable ASCII, a dot placeholder otherwise.
func Printable(b byte) byte {
	if b >= 0x20 && b < 0x7F {
		return b
	}
	return '.'
}
