package ansi

import (
	"strings"
	"testing"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text unchanged",
			input:    "hello world",
			expected: "hello world",
		},
		{
			name:     "strip color codes",
			input:    "\x1b[31mred\x1b[0m",
			expected: "red",
		},
		{
			name:     "strip bold color",
			input:    "\x1b[1;32mgreen bold\x1b[0m",
			expected: "green bold",
		},
		{
			name:     "strip cursor movement",
			input:    "\x1b[2Aup two lines",
			expected: "up two lines",
		},
		{
			name:     "strip clear screen",
			input:    "\x1b[2Jcleared",
			expected: "cleared",
		},
		{
			name:     "strip OSC with BEL",
			input:    "\x1b]0;window title\x07text",
			expected: "text",
		},
		{
			name:     "strip OSC with string terminator",
			input:    "\x1b]8;;https://example.com\x1b\\link\x1b]8;;\x1b\\",
			expected: "link",
		},
		{
			name:     "carriage return kept",
			input:    "line1\rline2",
			expected: "line1\rline2",
		},
		{
			name:     "strip DEC private mode",
			input:    "\x1b[?25hvisible cursor",
			expected: "visible cursor",
		},
		{
			name:     "strip character set selection",
			input:    "\x1b(Btext",
			expected: "text",
		},
		{
			name:     "complex mixed sequences",
			input:    "\x1b[1;34m\x1b[2Juser@host:\x1b[0m$ ls\r\n",
			expected: "user@host:$ ls\r\n",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "only escape sequences",
			input:    "\x1b[31m\x1b[0m",
			expected: "",
		},
		{
			name:     "strip reverse index (ESC M)",
			input:    "\x1bMline content",
			expected: "line content",
		},
		{
			name:     "strip save cursor (ESC 7)",
			input:    "\x1b7line content\x1b8",
			expected: "line content",
		},
		{
			name:     "partial CSI at end kept",
			input:    "text\x1b[31",
			expected: "text\x1b[31",
		},
		{
			name:     "partial OSC at end kept",
			input:    "text\x1b]0;tit",
			expected: "text\x1b]0;tit",
		},
		{
			name:     "lone ESC at end kept",
			input:    "text\x1b",
			expected: "text\x1b",
		},
		{
			name:     "interrupted CSI removed",
			input:    "a\x1b[12\nb",
			expected: "a\nb",
		},
		{
			name:     "OSC aborted by new sequence",
			input:    "\x1b]0;title\x1b[1mbold",
			expected: "bold",
		},
		{
			name:     "unicode preserved",
			input:    "\x1b[1;32m➜\x1b[0m ~ ❯",
			expected: "➜ ~ ❯",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Strip(tt.input)
			if got != tt.expected {
				t.Errorf("Strip(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStrip_LeavesNoCompleteSequences(t *testing.T) {
	inputs := []string{
		"\x1b[31mRed text\x1b[0m\n",
		"Hello\x1b[1GWorld\n",
		"\x1b[s\x1b[2J\x1b[H\x1b[32mSaved state\x1b[u restored\n",
		"\x1b[?25l\x1b[s\x1b[H\x1b[2J\x1b[u\x1b[?25h\n",
		"\x1bPq#0;2\x1b\\after",
	}
	for _, in := range inputs {
		got := Strip(in)
		if strings.ContainsRune(got, esc) {
			t.Errorf("Strip(%q) = %q, still contains ESC", in, got)
		}
	}
}

func TestStrip_KeepsOtherCharactersInOrder(t *testing.T) {
	in := "a\x1b[1mb\x1b]0;t\x07c\td\re\x1b(Bf"
	want := "abc\td\ref"
	if got := Strip(in); got != want {
		t.Errorf("Strip(%q) = %q, want %q", in, got, want)
	}
}
