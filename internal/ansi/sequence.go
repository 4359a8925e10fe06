package ansi

import "strings"

const (
	esc = 0x1B
	bel = 0x07

	// maxParam caps numeric parameters, so one sequence moves the cursor at
	// most this many rows or columns.
	maxParam = 9999
)

// Kind classifies a scanned escape sequence.
type Kind int

const (
	// KindCSI is a complete ESC [ ... final sequence.
	KindCSI Kind = iota
	// KindOSC is a complete ESC ] ... BEL|ST sequence.
	KindOSC
	// KindString is a complete DCS, SOS, PM or APC string.
	KindString
	// KindEscape is a two or three byte ESC sequence (ESC 7, ESC ( B, ...).
	KindEscape
	// KindMalformed is a sequence interrupted by a byte that cannot appear in it.
	KindMalformed
	// KindPartial is a sequence cut off by the end of input.
	KindPartial
)

func (k Kind) String() string {
	switch k {
	case KindCSI:
		return "csi"
	case KindOSC:
		return "osc"
	case KindString:
		return "string"
	case KindEscape:
		return "escape"
	case KindMalformed:
		return "malformed"
	case KindPartial:
		return "partial"
	}
	return "unknown"
}

// Sequence is one escape sequence found in the input. Start and End are byte
// offsets, so input[Start:End] == Raw.
type Sequence struct {
	Kind    Kind
	Final   byte
	Private byte
	Params  string
	Raw     string
	Start   int
	End     int
}

// Param returns the i-th numeric parameter, or def when it is missing,
// empty or not a number.
func (s Sequence) Param(i, def int) int {
	if s.Params == "" {
		return def
	}
	fields := strings.Split(s.Params, ";")
	if i >= len(fields) {
		return def
	}
	return parseParam(fields[i], def)
}

func parseParam(field string, def int) int {
	// Sub-parameters (38:5:196) only matter for SGR, which is absorbed.
	if i := strings.IndexByte(field, ':'); i >= 0 {
		field = field[:i]
	}
	if field == "" {
		return def
	}
	n := 0
	for i := 0; i < len(field); i++ {
		c := field[i]
		if c < '0' || c > '9' {
			return def
		}
		n = n*10 + int(c-'0')
		if n > maxParam {
			n = maxParam
		}
	}
	return n
}

func isParamByte(c byte) bool        { return c >= 0x30 && c <= 0x3F }
func isIntermediateByte(c byte) bool { return c >= 0x20 && c <= 0x2F }
func isFinalByte(c byte) bool        { return c >= 0x40 && c <= 0x7E }
func isPrintableASCII(c byte) bool   { return c >= 0x20 && c <= 0x7E }

// scanAt parses the escape sequence beginning at s[i], which must be ESC.
func scanAt(s string, i int) Sequence {
	seq := Sequence{Start: i}
	j := i + 1
	if j >= len(s) {
		return finish(s, seq, KindPartial, len(s))
	}

	switch c := s[j]; c {
	case '[':
		return scanCSI(s, seq, j+1)
	case ']':
		seq.Final = ']'
		return scanString(s, seq, KindOSC, j+1)
	case 'P', 'X', '^', '_':
		seq.Final = c
		return scanString(s, seq, KindString, j+1)
	case '(', ')', '*', '+', '#', '%':
		if j+1 >= len(s) {
			return finish(s, seq, KindPartial, len(s))
		}
		if !isPrintableASCII(s[j+1]) {
			return finish(s, seq, KindMalformed, j+1)
		}
		seq.Private = c
		seq.Final = s[j+1]
		return finish(s, seq, KindEscape, j+2)
	default:
		// ESC followed by a control or a non-ASCII byte: drop the lone ESC
		// and let the following byte be handled as text.
		if !isPrintableASCII(c) {
			return finish(s, seq, KindMalformed, j)
		}
		seq.Final = c
		return finish(s, seq, KindEscape, j+1)
	}
}

func scanCSI(s string, seq Sequence, j int) Sequence {
	paramStart := j
	if j < len(s) && s[j] >= '<' && s[j] <= '?' {
		seq.Private = s[j]
		j++
		paramStart = j
	}
	for j < len(s) && isParamByte(s[j]) {
		j++
	}
	paramEnd := j
	for j < len(s) && isIntermediateByte(s[j]) {
		j++
	}
	seq.Params = s[paramStart:paramEnd]
	if j >= len(s) {
		return finish(s, seq, KindPartial, len(s))
	}
	if !isFinalByte(s[j]) {
		return finish(s, seq, KindMalformed, j)
	}
	seq.Final = s[j]
	return finish(s, seq, KindCSI, j+1)
}

func scanString(s string, seq Sequence, kind Kind, j int) Sequence {
	bodyStart := j
	for j < len(s) {
		switch {
		case s[j] == bel:
			seq.Params = s[bodyStart:j]
			return finish(s, seq, kind, j+1)
		case s[j] == esc && j+1 < len(s) && s[j+1] == '\\':
			seq.Params = s[bodyStart:j]
			return finish(s, seq, kind, j+2)
		case s[j] == esc && j+1 < len(s):
			// A new sequence aborts the string.
			seq.Params = s[bodyStart:j]
			return finish(s, seq, KindMalformed, j)
		}
		j++
	}
	seq.Params = s[bodyStart:]
	return finish(s, seq, KindPartial, len(s))
}

func finish(s string, seq Sequence, kind Kind, end int) Sequence {
	seq.Kind = kind
	seq.End = end
	seq.Raw = s[seq.Start:end]
	return seq
}

// Scan returns every escape sequence in s in input order.
func Scan(s string) []Sequence {
	var out []Sequence
	for i := 0; i < len(s); {
		if s[i] != esc {
			i++
			continue
		}
		seq := scanAt(s, i)
		out = append(out, seq)
		i = seq.End
	}
	return out
}
