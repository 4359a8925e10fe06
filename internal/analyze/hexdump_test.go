package analyze

import "testing"

func TestHexDump(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		width int
		want  string
	}{
		{"empty", nil, 16, "No data"},
		{"short line padded", []byte("\x1b[31mA"), 8, "00000000: 1b 5b 33 31 6d 41       |.[31mA|"},
		{"two lines", []byte("abcdef"), 4, "00000000: 61 62 63 64 |abcd|\n00000004: 65 66       |ef|"},
		{"default width", []byte("x"), 0, "00000000: 78" + spaces(45) + " |x|"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HexDump(tt.data, tt.width); got != tt.want {
				t.Errorf("HexDump(%q, %d) =\n%q\nwant\n%q", tt.data, tt.width, got, tt.want)
			}
		})
	}
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
