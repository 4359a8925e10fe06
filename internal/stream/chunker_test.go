package stream

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunker(t *testing.T) {
	tests := []struct {
		name      string
		chunks    []string
		wantUnits []string
		wantRest  string
	}{
		{
			name:      "single complete line",
			chunks:    []string{"hello\n"},
			wantUnits: []string{"hello\n"},
		},
		{
			name:      "partial line held",
			chunks:    []string{"hel"},
			wantUnits: nil,
			wantRest:  "hel",
		},
		{
			name:      "line split across chunks",
			chunks:    []string{"hel", "lo\nwor"},
			wantUnits: []string{"hello\n"},
			wantRest:  "wor",
		},
		{
			name:      "several lines in one chunk",
			chunks:    []string{"a\nb\nc\n"},
			wantUnits: []string{"a\n", "b\n", "c\n"},
		},
		{
			name:      "escape sequence split across chunks",
			chunks:    []string{"x\x1b[3", "1mred\x1b[0m\n"},
			wantUnits: []string{"x\x1b[31mred\x1b[0m\n"},
		},
		{
			name:      "crlf stays with its line",
			chunks:    []string{"a\r", "\nb"},
			wantUnits: []string{"a\r\n"},
			wantRest:  "b",
		},
		{
			name:      "empty chunk",
			chunks:    []string{""},
			wantUnits: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChunker(0)
			var units []string
			for _, chunk := range tt.chunks {
				units = append(units, c.Push(chunk)...)
			}
			assert.Equal(t, tt.wantUnits, units)
			assert.Equal(t, tt.wantRest, c.Flush())
			assert.Empty(t, c.Flush(), "flush drains")
		})
	}
}

func TestChunker_ReleasesLongPartialLine(t *testing.T) {
	c := NewChunker(8)
	units := c.Push("0123456789")
	assert.Equal(t, []string{"0123456789"}, units)
	assert.Empty(t, c.Flush())
}

func TestChunker_HoldsIncompleteSequenceOnRelease(t *testing.T) {
	c := NewChunker(8)
	units := c.Push("progress 50%\x1b[2")
	assert.Equal(t, []string{"progress 50%"}, units)

	units = c.Push("K\rprogress 60%\n")
	assert.Equal(t, []string{"\x1b[2K\rprogress 60%\n"}, units)
}

func TestChunker_CompleteTrailingSequenceReleased(t *testing.T) {
	c := NewChunker(4)
	units := c.Push("abcdef\x1b[0m")
	assert.Equal(t, []string{"abcdef\x1b[0m"}, units)
}

func TestChunker_IncompleteOSCHeld(t *testing.T) {
	c := NewChunker(4)
	units := c.Push("abcdef\x1b]0;tit")
	assert.Equal(t, []string{"abcdef"}, units)
	assert.Equal(t, "\x1b]0;tit", c.Flush())
}

func TestChunker_PreservesAllText(t *testing.T) {
	input := "line one\n\x1b[1mbold\x1b[0m\npartial\x1b[3"
	for size := 1; size <= len(input); size++ {
		c := NewChunker(0)
		var got strings.Builder
		for i := 0; i < len(input); i += size {
			for _, u := range c.Push(input[i:min(i+size, len(input))]) {
				got.WriteString(u)
			}
		}
		got.WriteString(c.Flush())
		assert.Equal(t, input, got.String(), "chunk size %d", size)
	}
}

func TestChunker_HoldsLongHyperlinkOnRelease(t *testing.T) {
	link := "\x1b]8;;https://example.com/" + strings.Repeat("a", 100)
	c := NewChunker(8)
	units := c.Push("see here " + link)
	assert.Equal(t, []string{"see here "}, units)

	units = c.Push("\x1b\\link\x1b]8;;\x1b\\\n")
	assert.Equal(t, []string{link + "\x1b\\link\x1b]8;;\x1b\\\n"}, units)
}

func TestChunker_HoldsStringSequenceBeforeSplitTerminator(t *testing.T) {
	c := NewChunker(4)
	units := c.Push("abcdef\x1b]0;title\x1b")
	assert.Equal(t, []string{"abcdef"}, units)
	assert.Equal(t, "\x1b]0;title\x1b", c.Flush())
}

func TestChunker_ReleasesUnterminatedSequenceEventually(t *testing.T) {
	c := NewChunker(4)
	assert.Empty(t, c.Push("\x1b]0;ti"))
	units := c.Push("tle never ends")
	assert.Equal(t, []string{"\x1b]0;title never ends"}, units)
	assert.Empty(t, c.Flush())
}

func TestHeldSequenceStart(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"plain", 5},
		{"a\x1b", 1},
		{"a\x1b[", 1},
		{"a\x1b[31", 1},
		{"a\x1b[31m", 6},
		{"a\x1b[3\n", 5},
		{"a\x1b]0;t", 1},
		{"a\x1b]0;t\x07", 7},
		{"a\x1b]0;t\x1b", 1},
		{"a\x1b]0;t\x1b\\", 8},
		{"a\x1b(", 1},
		{"a\x1b(B", 4},
		{"a\x1b7", 3},
	}
	for _, tt := range tests {
		if got := heldSequenceStart(tt.input); got != tt.want {
			t.Errorf("heldSequenceStart(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
