package vterm

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "hello world", "hello world"},
		{"colors dropped", "\x1b[31mred\x1b[0m text\n", "red text"},
		{"line update", "Line1\nLine2\x1b[1A\x1b[6GUpdated\n", "Line1Updated\nLine2"},
		{"erase line", "Hello World\x1b[6G\x1b[K\n", "Hello"},
		{"clear screen", "junk\x1b[2J\x1b[HClean screen\n", "Clean screen"},
		{"carriage return overwrites", "Loading...\rDone\n", "Doneing..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.input, 80)
			if got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRender_TallInputKeepsLines(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 100; i++ {
		b.WriteString("line\n")
	}
	got := Render(b.String(), 40)
	if n := strings.Count(got, "line"); n != 100 {
		t.Errorf("Render kept %d lines, want 100", n)
	}
}

func TestRender_AnswersQueriesWithoutBlocking(t *testing.T) {
	got := Render(strings.Repeat("\x1b[c\x1b[6n", 200)+"after", 80)
	if got != "after" {
		t.Errorf("Render with queries = %q, want %q", got, "after")
	}
}

func TestNormalizeNewlines(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a\nb", "a\r\nb"},
		{"a\r\nb", "a\r\nb"},
		{"\n", "\r\n"},
		{"none", "none"},
	}
	for _, tt := range tests {
		if got := normalizeNewlines(tt.input); got != tt.want {
			t.Errorf("normalizeNewlines(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
