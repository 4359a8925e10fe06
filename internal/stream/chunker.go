package stream

import "strings"

// DefaultMaxPending bounds how much text without a newline is held back
// before it is released as a unit anyway.
const DefaultMaxPending = 16 * 1024

// Chunker accumulates decoded output and releases it as complete lines.
// Text after the last newline is held until more input arrives.
type Chunker struct {
	pending    strings.Builder
	maxPending int
}

func NewChunker(maxPending int) *Chunker {
	if maxPending <= 0 {
		maxPending = DefaultMaxPending
	}
	return &Chunker{maxPending: maxPending}
}

// Push adds text and returns every line completed by it, each ending in "\n".
func (c *Chunker) Push(text string) []string {
	c.pending.WriteString(text)
	data := c.pending.String()

	var units []string
	last := strings.LastIndexByte(data, '\n')
	if last >= 0 {
		complete := data[:last+1]
		for len(complete) > 0 {
			i := strings.IndexByte(complete, '\n')
			units = append(units, complete[:i+1])
			complete = complete[i+1:]
		}
		data = data[last+1:]
	}

	if len(data) > c.maxPending {
		cut := heldSequenceStart(data)
		if cut == 0 && len(data) > 2*c.maxPending {
			// A string sequence that never terminates is released as is.
			cut = len(data)
		}
		if cut > 0 {
			units = append(units, data[:cut])
			data = data[cut:]
		}
	}

	c.pending.Reset()
	c.pending.WriteString(data)
	return units
}

// Flush returns the held text, if any.
func (c *Chunker) Flush() string {
	data := c.pending.String()
	c.pending.Reset()
	return data
}

// heldSequenceStart returns where a trailing escape sequence that may still
// be incomplete starts, so it is not split from the rest of its bytes.
func heldSequenceStart(s string) int {
	i := strings.LastIndexByte(s, 0x1B)
	if i < 0 {
		return len(s)
	}
	// A lone trailing ESC may be the first half of the ST ending an
	// earlier string sequence.
	if i == len(s)-1 {
		if j := strings.LastIndexByte(s[:i], 0x1B); j >= 0 && j+1 < i &&
			strings.IndexByte("]PX^_", s[j+1]) >= 0 && strings.IndexByte(s[j:i], 0x07) < 0 {
			return j
		}
	}
	if sequenceComplete(s[i:]) {
		return len(s)
	}
	return i
}

func sequenceComplete(s string) bool {
	if len(s) < 2 {
		return false
	}
	switch s[1] {
	case '[':
		for j := 2; j < len(s); j++ {
			// A final byte ends it, and so does any byte a CSI cannot hold.
			if s[j] >= 0x40 || s[j] < 0x20 {
				return true
			}
		}
		return false
	case ']', 'P', 'X', '^', '_':
		return strings.ContainsRune(s, 0x07) || strings.Contains(s[2:], "\x1b\\")
	case '(', ')', '*', '+', '#', '%':
		return len(s) >= 3
	}
	return true
}
