package ptyrun

import (
	"bytes"
	"testing"
)

func TestQueryResponder_Filter(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantOut   string
		wantReply string
	}{
		{"no escape", "plain text", "plain text", ""},
		{"DA1", "before\x1b[cafter", "beforeafter", "\x1b[?62;1;2;6;7;8;9;15;22c"},
		{"DA1 with zero", "\x1b[0c", "", "\x1b[?62;1;2;6;7;8;9;15;22c"},
		{"DA2", "\x1b[>c", "", "\x1b[>1;1;0c"},
		{"cursor position report", "x\x1b[6ny", "xy", "\x1b[1;1R"},
		{"status report", "\x1b[5n", "", "\x1b[0n"},
		{"window size", "\x1b[18t", "", "\x1b[8;30;100t"},
		{"kitty keyboard", "\x1b[?u", "", "\x1b[?0u"},
		{"mode query", "\x1b[?2026$p", "", "\x1b[?2026;0$y"},
		{"colors untouched", "\x1b[31mred\x1b[0m", "\x1b[31mred\x1b[0m", ""},
		{"private mode set untouched", "\x1b[?25l", "\x1b[?25l", ""},
		{"two queries", "\x1b[c\x1b[6n", "", "\x1b[?62;1;2;6;7;8;9;15;22c\x1b[1;1R"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var replies bytes.Buffer
			r := newQueryResponder(&replies, 100, 30)

			got := r.Filter([]byte(tt.input))
			if string(got) != tt.wantOut {
				t.Errorf("Filter(%q) = %q, want %q", tt.input, got, tt.wantOut)
			}
			if replies.String() != tt.wantReply {
				t.Errorf("reply to %q = %q, want %q", tt.input, replies.String(), tt.wantReply)
			}
		})
	}
}
