// Package escape turns backslash escapes typed on the command line into the
// control bytes they name, so ANSI test input can be given as a plain string.
package escape

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

var simple = map[byte]byte{
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'a':  0x07,
	'b':  '\b',
	'f':  '\f',
	'v':  '\v',
	'e':  0x1b,
	'E':  0x1b,
	'\\': '\\',
}

// Interpret expands escape sequences in s.
//
//	\n \r \t \a \b \f \v  - the usual C escapes
//	\e, \E                - ESC (0x1B)
//	\\                    - literal backslash
//	\xNN                  - hex byte, e.g. \x1b
//	\0, \NNN              - octal byte of up to three digits, e.g. \033
//	\uNNNN                - unicode code point, written as UTF-8
//
// Any other escaped character is kept without its backslash, so \[ becomes [.
// A backslash at the very end of s is an error.
func Interpret(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			i++
			continue
		}
		if i+1 >= len(s) {
			return "", fmt.Errorf("incomplete escape sequence at end of string")
		}

		c := s[i+1]
		if v, ok := simple[c]; ok {
			b.WriteByte(v)
			i += 2
			continue
		}

		switch {
		case c == 'x':
			if i+4 > len(s) {
				return "", fmt.Errorf("incomplete hex escape sequence at position %d", i)
			}
			val, err := strconv.ParseUint(s[i+2:i+4], 16, 8)
			if err != nil {
				return "", fmt.Errorf("invalid hex escape \\x%s at position %d", s[i+2:i+4], i)
			}
			b.WriteByte(byte(val))
			i += 4

		case c == 'u':
			if i+6 > len(s) {
				return "", fmt.Errorf("incomplete unicode escape sequence at position %d", i)
			}
			val, err := strconv.ParseUint(s[i+2:i+6], 16, 32)
			if err != nil {
				return "", fmt.Errorf("invalid unicode escape \\u%s at position %d", s[i+2:i+6], i)
			}
			b.WriteRune(rune(val))
			i += 6

		case isOctal(c):
			j := i + 1
			for j < len(s) && j < i+4 && isOctal(s[j]) {
				j++
			}
			val, err := strconv.ParseUint(s[i+1:j], 8, 16)
			if err != nil || val > 0xFF {
				return "", fmt.Errorf("invalid octal escape \\%s at position %d", s[i+1:j], i)
			}
			b.WriteByte(byte(val))
			i = j

		default:
			r, size := utf8.DecodeRuneInString(s[i+1:])
			b.WriteRune(r)
			i += 1 + size
		}
	}

	return b.String(), nil
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}
