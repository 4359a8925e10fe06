package render

import (
	"bytes"
	"io"
)

// CRLF translates bare \n to \r\n. A terminal in raw mode does not return
// the carriage on line feed, so output written while the child owns the tty
// would otherwise drift right one line at a time.
type CRLF struct {
	w    io.Writer
	prev byte
}

func NewCRLF(w io.Writer) *CRLF {
	return &CRLF{w: w}
}

func (c *CRLF) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	var b bytes.Buffer
	b.Grow(len(p) + bytes.Count(p, []byte{'\n'}))
	prev := c.prev
	for _, ch := range p {
		if ch == '\n' && prev != '\r' {
			b.WriteByte('\r')
		}
		b.WriteByte(ch)
		prev = ch
	}
	if _, err := c.w.Write(b.Bytes()); err != nil {
		return 0, err
	}
	c.prev = prev
	return len(p), nil
}
