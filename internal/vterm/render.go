// Package vterm renders text through a full VT emulator. Its output is the
// reference the line-oriented processor is compared against.
package vterm

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/vt"
)

const (
	DefaultCols = 200
	minRows     = 24
	maxRows     = 5000
)

// Render feeds s to a fresh emulator cols wide and returns the plain screen
// with trailing blank lines and trailing spaces removed. Content scrolled
// off the top of a maxRows screen is lost.
func Render(s string, cols int) string {
	if s == "" {
		return ""
	}
	if cols <= 0 {
		cols = DefaultCols
	}
	rows := min(max(strings.Count(s, "\n")+minRows, minRows), maxRows)

	emu := vt.NewEmulator(cols, rows)

	// Query responses (DA1, DSR) are written to the emulator's pipe and
	// block the writer unless drained.
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		io.Copy(io.Discard, emu) //nolint:errcheck
	}()

	emu.WriteString(normalizeNewlines(s))
	out := emu.String()

	if pw, ok := emu.InputPipe().(io.Closer); ok {
		pw.Close()
	}
	<-drained
	emu.Close()

	out = strings.ReplaceAll(out, "\r\n", "\n")
	out = strings.ReplaceAll(out, "\r", "")
	return trimLines(out)
}

// normalizeNewlines turns every lone \n into \r\n, as a tty with ONLCR does.
func normalizeNewlines(s string) string {
	if !strings.Contains(s, "\n") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + strings.Count(s, "\n"))
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' && (i == 0 || s[i-1] != '\r') {
			b.WriteByte('\r')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	last := len(lines) - 1
	for last >= 0 && lines[last] == "" {
		last--
	}
	return strings.Join(lines[:last+1], "\n")
}
