package analyze

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/schovi/mdsh/internal/ansi"
)

const maxNameLen = 50

var (
	unsafeChars = regexp.MustCompile(`[^\w\s-]`)
	spaceRuns   = regexp.MustCompile(`\s+`)
)

// LogWriter stores reports as <dir>/<unix time>_<command>.log.
type LogWriter struct {
	dir string
	now func() time.Time
}

func NewLogWriter(dir string) *LogWriter {
	return &LogWriter{dir: dir, now: time.Now}
}

// Write saves report for a and returns the file path. Styling is stripped.
func (l *LogWriter) Write(a *Analysis, report string) (string, error) {
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return "", fmt.Errorf("create log dir: %w", err)
	}

	now := l.now()
	path := filepath.Join(l.dir, fmt.Sprintf("%d_%s.log", now.Unix(), safeName(a.Command)))

	var b strings.Builder
	b.WriteString("# Raw ANSI Analysis Log\n")
	fmt.Fprintf(&b, "# Generated: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "# Command: %s\n", a.Command)
	fmt.Fprintf(&b, "# Timestamp: %d\n", now.Unix())
	fmt.Fprintf(&b, "# Run ID: %s\n", a.RunID)
	b.WriteString("# " + strings.Repeat("=", 60) + "\n\n")
	b.WriteString(ansi.Strip(report))

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("write log: %w", err)
	}
	return path, nil
}

// safeName reduces a command line to a file name fragment.
func safeName(command string) string {
	name := unsafeChars.ReplaceAllString(command, "")
	name = spaceRuns.ReplaceAllString(strings.TrimSpace(name), "_")
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}
	if name == "" {
		return "command"
	}
	return name
}
