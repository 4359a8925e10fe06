// Package render holds the sinks that display processed output.
package render

import (
	"fmt"
	"io"
	"strings"
)

// Console writes each rendered unit as plain text.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Emit trims trailing whitespace and terminates the text with one newline.
func (c *Console) Emit(text string) error {
	text = strings.TrimRight(text, " \t\r\n")
	if text == "" {
		return nil
	}
	if _, err := fmt.Fprintln(c.w, text); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
