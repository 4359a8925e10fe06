// Package logger provides namespaced debug loggers.
//
// Loggers are silent unless the DEBUG environment variable selects their
// namespace: DEBUG=mdsh:* enables everything, DEBUG=stream,ptyrun enables two
// namespaces, and a leading '-' excludes one (DEBUG=*,-stream).
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

const prefix = "mdsh:"

var (
	mu     sync.Mutex
	output io.Writer = os.Stderr
)

// Logger writes debug lines for one namespace.
type Logger struct {
	namespace string
	enabled   bool
	last      time.Time
}

func New(namespace string) *Logger {
	return &Logger{
		namespace: namespace,
		enabled:   enabledFor(os.Getenv("DEBUG"), namespace),
	}
}

// Enabled reports whether the logger produces output.
func (l *Logger) Enabled() bool {
	return l.enabled
}

func (l *Logger) Printf(format string, args ...any) {
	if !l.enabled {
		return
	}
	l.write(fmt.Sprintf(format, args...))
}

func (l *Logger) Print(args ...any) {
	if !l.enabled {
		return
	}
	l.write(fmt.Sprint(args...))
}

func (l *Logger) write(msg string) {
	mu.Lock()
	defer mu.Unlock()

	now := time.Now()
	var elapsed time.Duration
	if !l.last.IsZero() {
		elapsed = now.Sub(l.last)
	}
	l.last = now
	fmt.Fprintf(output, "%s%s %s +%s\n", prefix, l.namespace, strings.TrimRight(msg, "\n"), elapsed.Round(time.Millisecond))
}

// SetOutput redirects all loggers and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := output
	output = w
	return prev
}

func enabledFor(patterns, namespace string) bool {
	if patterns == "" {
		return false
	}
	enabled := false
	for _, pattern := range strings.Split(patterns, ",") {
		pattern = strings.TrimSpace(pattern)
		exclude := strings.HasPrefix(pattern, "-")
		pattern = strings.TrimPrefix(strings.TrimPrefix(pattern, "-"), prefix)
		if !matches(pattern, namespace) {
			continue
		}
		if exclude {
			return false
		}
		enabled = true
	}
	return enabled
}

func matches(pattern, namespace string) bool {
	if pattern == "*" || pattern == namespace {
		return true
	}
	if base, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(namespace, base)
	}
	return false
}
