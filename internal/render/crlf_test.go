package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCRLF(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		want   string
	}{
		{"plain", []string{"abc"}, "abc"},
		{"bare newlines", []string{"a\nb\n"}, "a\r\nb\r\n"},
		{"existing crlf kept", []string{"a\r\nb"}, "a\r\nb"},
		{"crlf split across writes", []string{"a\r", "\nb"}, "a\r\nb"},
		{"newline first", []string{"\n"}, "\r\n"},
		{"empty write", []string{"", "x"}, "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewCRLF(&buf)
			for _, c := range tt.chunks {
				n, err := w.Write([]byte(c))
				require.NoError(t, err)
				assert.Equal(t, len(c), n)
			}
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestCRLF_WithConsole(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(NewCRLF(&buf))
	require.NoError(t, c.Emit("one\ntwo  "))
	assert.Equal(t, "one\r\ntwo\r\n", buf.String())
}
