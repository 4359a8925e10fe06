// Package decode turns raw process output into text for the ANSI processor.
//
// Invalid UTF-8 is replaced with U+FFFD rather than rejected, and a UTF-8
// sequence split across two reads is held back until it is complete.
package decode

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Bytes decodes b as UTF-8, replacing invalid sequences with U+FFFD.
func Bytes(b []byte) string {
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return string([]rune(string(b)))
	}
	return string(out)
}

// Latin1 decodes b as ISO-8859-1. Every byte maps to a rune, so this never
// fails and is the fallback for output that is not UTF-8 at all.
func Latin1(b []byte) string {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}

// Auto decodes b as UTF-8 unless more than half of it is invalid, in which
// case it is treated as Latin-1.
func Auto(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	invalid := 0
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			invalid++
		}
		i += max(size, 1)
	}
	if invalid*2 > len(b) {
		return Latin1(b)
	}
	return Bytes(b)
}

// Decoder decodes a stream of chunks, carrying an incomplete trailing UTF-8
// sequence over to the next Write.
type Decoder struct {
	pending []byte
}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// Write decodes chunk and returns the text that is complete so far.
func (d *Decoder) Write(chunk []byte) string {
	data := chunk
	if len(d.pending) > 0 {
		data = make([]byte, 0, len(d.pending)+len(chunk))
		data = append(data, d.pending...)
		data = append(data, chunk...)
		d.pending = nil
	}

	cut := incompleteTail(data)
	if cut < len(data) {
		d.pending = append([]byte(nil), data[cut:]...)
		data = data[:cut]
	}
	return Bytes(data)
}

// Flush returns whatever is still pending, decoded with replacement.
func (d *Decoder) Flush() string {
	pending := d.pending
	d.pending = nil
	if len(pending) == 0 {
		return ""
	}
	return Bytes(pending)
}

// incompleteTail returns the index where a truncated but otherwise valid
// UTF-8 sequence starts at the end of b, or len(b) if there is none.
func incompleteTail(b []byte) int {
	// A UTF-8 sequence is at most 4 bytes, so only the last 3 can be a
	// truncated prefix.
	for i := len(b) - 1; i >= 0 && i >= len(b)-3; i-- {
		c := b[i]
		if c < 0x80 {
			return len(b)
		}
		if utf8.RuneStart(c) {
			if !utf8.FullRune(b[i:]) {
				return i
			}
			return len(b)
		}
	}
	return len(b)
}
