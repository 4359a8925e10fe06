package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsole_Emit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"adds newline", "hello", "hello\n"},
		{"trims trailing whitespace", "hello  \n\n", "hello\n"},
		{"keeps leading indent", "  indented\n", "  indented\n"},
		{"multi line", "a\nb\n", "a\nb\n"},
		{"blank writes nothing", " \n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewConsole(&buf).Emit(tt.input))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestConsole_WriteError(t *testing.T) {
	err := NewConsole(failingWriter{}).Emit("x")
	assert.ErrorContains(t, err, "broken pipe")
}

func TestMarkdown_Emit(t *testing.T) {
	var buf bytes.Buffer
	md, err := NewMarkdown(&buf, 60)
	require.NoError(t, err)

	require.NoError(t, md.Emit("# Title\n\nsome **bold** text\n"))
	out := buf.String()
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "bold")
}

func TestTerminalWidth_NotATerminal(t *testing.T) {
	// go test runs with stdout redirected
	assert.Positive(t, TerminalWidth())
}
