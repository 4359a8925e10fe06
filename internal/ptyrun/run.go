// Package ptyrun launches a shell command and streams its output.
//
// Three modes are supported: under a pseudo-terminal (the command sees a
// tty and behaves interactively), through a merged stdout/stderr pipe, and
// captured in full before anything is handed over.
package ptyrun

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"syscall"
	"time"

	"github.com/schovi/mdsh/internal/logger"
)

var log = logger.New("ptyrun")

const (
	ReadBufferSize  = 4096
	KillGracePeriod = 3 * time.Second
	// drainTimeout bounds reading after the command exited, for when a
	// background child still holds the terminal open.
	drainTimeout = 200 * time.Millisecond
)

type Mode int

const (
	ModePTY Mode = iota
	ModePipe
	ModeCapture
)

func (m Mode) String() string {
	switch m {
	case ModePipe:
		return "pipe"
	case ModeCapture:
		return "capture"
	}
	return "pty"
}

// ParseMode accepts "pty", "pipe" or "capture".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "pty":
		return ModePTY, nil
	case "pipe":
		return ModePipe, nil
	case "capture":
		return ModeCapture, nil
	}
	return ModePTY, fmt.Errorf("unknown mode %q (want pty, pipe or capture)", s)
}

type Config struct {
	Command string
	// Shell runs Command as `shell -c command`. Defaults to /bin/sh.
	Shell   string
	Mode    Mode
	Timeout time.Duration
	// Cols and Rows size the pseudo-terminal when Stdin is not a terminal.
	Cols int
	Rows int
	// Stdin is forwarded to the command. In pty mode a terminal stdin is
	// switched to raw mode for the duration of the run.
	Stdin io.Reader
	Env   []string
	// AnswerQueries replies to terminal capability queries in pty mode so
	// programs waiting for an answer do not stall.
	AnswerQueries bool
}

type Result struct {
	ExitCode int
	TimedOut bool
	Duration time.Duration
	// Output is every byte the command wrote, undecoded.
	Output []byte
	// Stderr is only separate in capture mode.
	Stderr []byte
}

// ChunkFunc receives decoded output as it arrives.
type ChunkFunc func(text string) error

// Run starts the command and blocks until it exits, the timeout expires or
// ctx is cancelled. On expiry the whole process group is terminated and the
// result is returned with TimedOut set.
func Run(ctx context.Context, cfg Config, onChunk ChunkFunc) (*Result, error) {
	if cfg.Command == "" {
		return nil, errors.New("no command given")
	}
	if cfg.Shell == "" {
		cfg.Shell = "/bin/sh"
	}
	if onChunk == nil {
		onChunk = func(string) error { return nil }
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	log.Printf("run %s mode: %s -c %q", cfg.Mode, cfg.Shell, cfg.Command)
	cmd := exec.Command(cfg.Shell, "-c", cfg.Command)
	cmd.Env = append(cmd.Environ(), cfg.Env...)

	start := time.Now()
	var res *Result
	var err error
	switch cfg.Mode {
	case ModePipe:
		res, err = runPipe(ctx, cmd, cfg, onChunk)
	case ModeCapture:
		res, err = runCapture(ctx, cmd, cfg, onChunk)
	default:
		res, err = runPTY(ctx, cmd, cfg, onChunk)
	}
	if res != nil {
		res.Duration = time.Since(start)
		res.TimedOut = errors.Is(ctx.Err(), context.DeadlineExceeded)
		log.Printf("exit %d after %s (timed out: %v)", res.ExitCode, res.Duration, res.TimedOut)
	}
	return res, err
}

// exitCode maps a Wait error to a shell-style exit status: the command's
// own code, or 128+signal when it was killed.
func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return -1, fmt.Errorf("wait: %w", err)
	}
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal()), nil
	}
	return exitErr.ExitCode(), nil
}
