package analyze

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	a := Analyze("printf red", []byte("\x1b[31mRed\x1b[0m\n"), 0, Options{Reference: true, Cols: 40})
	out := Report(a, ReportOptions{Compare: true, Hex: true})

	for _, want := range []string{
		"Raw ANSI Analyzer",
		"Command:    printf red",
		"Exit Code:  0",
		"ANSI Sequences Found: 2",
		`\x1b[31m`,
		"Set Graphics Mode 31",
		"Reference Output (VT emulator)",
		"Processed Output",
		"Raw == Processed:       false",
		"Reference == Processed: true",
		"Hex Dump",
		"00000000: 1b 5b 33 31 6d",
		"Visual Output",
		"Red",
	} {
		assert.Contains(t, out, want)
	}
}

func TestReport_Limits(t *testing.T) {
	var raw strings.Builder
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&raw, "\x1b[1mline %d\x1b[0m\n", i)
	}
	a := Analyze("many", []byte(raw.String()), 0, Options{})
	out := Report(a, ReportOptions{})

	assert.Contains(t, out, "... and 20 more sequences")
	assert.Contains(t, out, "... and 11 more lines", "raw section shows five rows")
	assert.Contains(t, out, "... and 5 more lines", "visual section shows ten rows")
	assert.NotContains(t, out, "Comparison")
	assert.NotContains(t, out, "Hex Dump")
}

func TestReport_TimedOutAndEmpty(t *testing.T) {
	a := Analyze("sleep", nil, 143, Options{TimedOut: true})
	out := Report(a, ReportOptions{})

	assert.Contains(t, out, "Exit Code:  143")
	assert.Contains(t, out, "timed out")
	assert.Contains(t, out, "(empty)")
	assert.Contains(t, out, "(no visible output)")
}

func TestReport_NoSequencesHint(t *testing.T) {
	a := Analyze("ls", []byte(strings.Repeat("file ", 20)), 0, Options{})
	assert.Contains(t, Report(a, ReportOptions{}), "only emit colour when they detect a terminal")
}

func TestLogWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	lw := NewLogWriter(dir)
	lw.now = func() time.Time { return time.Unix(1700000000, 0) }

	a := Analyze("ls --color=always | head", []byte("\x1b[34mdir\x1b[0m\n"), 0, Options{})
	path, err := lw.Write(a, "\x1b[1mreport body\x1b[0m\n")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "1700000000_ls_--coloralways_head.log"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.True(t, strings.HasPrefix(content, "# Raw ANSI Analysis Log\n"))
	assert.Contains(t, content, "# Command: ls --color=always | head\n")
	assert.Contains(t, content, "# Timestamp: 1700000000\n")
	assert.Contains(t, content, "# Run ID: "+a.RunID+"\n")
	assert.Contains(t, content, "report body\n")
	assert.NotContains(t, content, "\x1b[", "styling is stripped")
}

func TestSafeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"echo hello", "echo_hello"},
		{"  ls   -la  ", "ls_-la"},
		{"printf '\\033[31m'", "printf_03331m"},
		{"!!!", "command"},
		{strings.Repeat("a", 80), strings.Repeat("a", 50)},
	}
	for _, tt := range tests {
		if got := safeName(tt.input); got != tt.want {
			t.Errorf("safeName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
