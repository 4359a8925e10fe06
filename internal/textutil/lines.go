// Package textutil holds small helpers for shaping rendered output.
package textutil

import "strings"

// LimitLines keeps the first head lines, or the last tail lines when head is
// zero. A trailing newline is not counted as a line and is preserved.
func LimitLines(s string, head, tail int) string {
	if s == "" || (head <= 0 && tail <= 0) {
		return s
	}

	body, hadNewline := strings.CutSuffix(s, "\n")
	lines := strings.Split(body, "\n")
	switch {
	case head > 0 && head < len(lines):
		lines = lines[:head]
	case head <= 0 && tail > 0 && tail < len(lines):
		lines = lines[len(lines)-tail:]
	}

	out := strings.Join(lines, "\n")
	if hadNewline {
		out += "\n"
	}
	return out
}
