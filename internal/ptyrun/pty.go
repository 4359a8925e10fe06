package ptyrun

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/creack/pty"
	"github.com/sourcegraph/conc"
	"golang.org/x/term"
)

func runPTY(ctx context.Context, cmd *exec.Cmd, cfg Config, onChunk ChunkFunc) (*Result, error) {
	cmd.Env = append(cmd.Env, "TERM=xterm-256color")

	var ptmx *os.File
	var err error
	if cfg.Cols > 0 && cfg.Rows > 0 {
		ptmx, err = pty.StartWithSize(cmd, &pty.Winsize{Cols: uint16(cfg.Cols), Rows: uint16(cfg.Rows)})
	} else {
		ptmx, err = pty.Start(cmd)
	}
	if err != nil {
		return nil, fmt.Errorf("start pty: %w", err)
	}
	defer ptmx.Close()

	done := make(chan struct{})

	if in, ok := terminal(cfg.Stdin); ok {
		restore, err := attachTerminal(in, ptmx, done)
		if err != nil {
			log.Printf("terminal stays cooked: %v", err)
		} else {
			defer restore()
		}
	}
	if cfg.Stdin != nil {
		// Blocks on stdin until the next keystroke after exit; not waited for.
		go func() {
			io.Copy(ptmx, cfg.Stdin) //nolint:errcheck
		}()
	}

	var filter func([]byte) []byte
	if cfg.AnswerQueries {
		filter = newQueryResponder(ptmx, cfg.Cols, cfg.Rows).Filter
	}

	var out bytes.Buffer
	var pumpErr error
	var wg conc.WaitGroup
	wg.Go(func() { watch(ctx, cmd.Process.Pid, done) })
	wg.Go(func() { pumpErr = pump(ptmx, &out, filter, onChunk) })

	waitErr := cmd.Wait()
	ptmx.SetReadDeadline(time.Now().Add(drainTimeout)) //nolint:errcheck
	close(done)
	wg.Wait()

	code, err := exitCode(waitErr)
	res := &Result{ExitCode: code, Output: out.Bytes()}
	if err != nil {
		return res, err
	}
	return res, pumpErr
}

func terminal(r io.Reader) (*os.File, bool) {
	f, ok := r.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil, false
	}
	return f, true
}

// attachTerminal puts in into raw mode and keeps the pty sized like it
// until done is closed. The returned func restores the terminal.
func attachTerminal(in, ptmx *os.File, done <-chan struct{}) (func(), error) {
	if err := pty.InheritSize(in, ptmx); err != nil {
		log.Printf("inherit size: %v", err)
	}

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	go func() {
		for {
			select {
			case <-done:
				return
			case <-winch:
				if err := pty.InheritSize(in, ptmx); err != nil {
					log.Printf("resize: %v", err)
				}
			}
		}
	}()

	fd := int(in.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		signal.Stop(winch)
		return nil, err
	}
	return func() {
		signal.Stop(winch)
		term.Restore(fd, state) //nolint:errcheck
	}, nil
}
